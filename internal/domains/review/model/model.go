package model

import (
	"time"

	"rentdesk/shared/model"
)

const (
	TableName  = "reviews"
	EntityName = "review"

	FieldID         = "id"
	FieldBookingID  = "booking_id"
	FieldContactID  = "contact_id"
	FieldUnitID     = "unit_id"
	FieldRating     = "rating"
	FieldFeedback   = "feedback"
	FieldReviewedOn = "reviewed_on"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a guest's rating of a stay. The booking, contact and unit it points at may
// have been deleted since.
type Review struct {
	ID         string    `db:"id"`
	BookingID  string    `db:"booking_id"`
	ContactID  string    `db:"contact_id"`
	UnitID     string    `db:"unit_id"`
	Rating     int       `db:"rating"`
	Feedback   string    `db:"feedback"`
	ReviewedOn time.Time `db:"reviewed_on"`
	model.Metadata
}

type Stats struct {
	Total   int     `db:"total"`
	Average float64 `db:"average"`
}
