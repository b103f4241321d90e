package dto

import (
	"fmt"
	"net/http"
	"strings"

	bookingModel "rentdesk/internal/domains/booking/model"
	contactModel "rentdesk/internal/domains/contact/model"
	"rentdesk/internal/domains/review/model"
	"rentdesk/shared"
	"rentdesk/shared/constant"
	"rentdesk/shared/daterange"
	gDto "rentdesk/shared/dto"
	gModel "rentdesk/shared/model"
	"rentdesk/shared/scope"
	"rentdesk/shared/timezone"
)

// Missing stands in for a booking, contact or unit that no longer resolves.
const Missing = "N/A"

type CreateReviewRequest struct {
	BookingID  string `json:"booking_id"  validate:"required,max=36"`
	Rating     int    `json:"rating"      validate:"required,min=1,max=5"`
	Feedback   string `json:"feedback"    validate:"omitempty,max=5000"`
	ReviewedOn string `json:"reviewed_on" validate:"omitempty,isodate"`
}

// ToModel attributes the review to the booking's guest and unit. A missing date is today.
func (c *CreateReviewRequest) ToModel(booking bookingModel.Booking, user string) model.Review {
	now := timezone.Now()

	reviewedOn := timezone.Today()
	if day, err := daterange.Parse(c.ReviewedOn); err == nil {
		reviewedOn = day
	}

	return model.Review{
		ID:         shared.NewID(),
		BookingID:  booking.ID,
		ContactID:  booking.ClientID,
		UnitID:     booking.UnitID,
		Rating:     c.Rating,
		Feedback:   strings.TrimSpace(c.Feedback),
		ReviewedOn: reviewedOn,
		Metadata:   gModel.NewMetadata(user, now),
	}
}

// ListQuery selects reviews of units in Scope, optionally one unit. Sorting is by
// reviewed_on or rating, newest first by default.
type ListQuery struct {
	Params gDto.QueryParams
	Scope  scope.GroupScope
	UnitID string
}

func (q *ListQuery) FromRequest(r *http.Request) {
	q.Params.FromRequest(r, true)
	q.Params.Sanitize(model.FieldReviewedOn, model.FieldRating)

	if q.Params.SortBy == constant.Empty {
		q.Params.SortBy = model.FieldReviewedOn
		q.Params.SortDir = gDto.SortDirDesc
	}

	q.Scope = scope.FromRequest(r)
	q.UnitID = strings.TrimSpace(r.URL.Query().Get(model.FieldUnitID))
}

// Related carries what a review points at. Absent entries render as Missing.
type Related struct {
	Bookings map[string]bookingModel.Booking
	Contacts map[string]contactModel.Contact
	Units    map[string]string
}

type ReviewResponse struct {
	ID           string `json:"id"`
	BookingID    string `json:"booking_id"`
	BookingDates string `json:"booking_dates"`
	ContactID    string `json:"contact_id"`
	ClientName   string `json:"client_name"`
	ClientPhone  string `json:"client_phone"`
	UnitID       string `json:"unit_id"`
	UnitName     string `json:"unit_name"`
	Rating       int    `json:"rating"`
	Feedback     string `json:"feedback"`
	ReviewedOn   string `json:"reviewed_on"`
	gDto.Metadata
}

func (r *ReviewResponse) FromModel(model model.Review, related Related) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.ContactID = model.ContactID
	r.UnitID = model.UnitID
	r.Rating = model.Rating
	r.Feedback = model.Feedback
	r.ReviewedOn = daterange.Format(model.ReviewedOn)

	r.BookingDates = Missing
	if booking, ok := related.Bookings[model.BookingID]; ok {
		r.BookingDates = daterange.Format(booking.CheckIn) + " - " + daterange.Format(booking.CheckOut)
	}

	r.ClientName, r.ClientPhone = Missing, Missing
	if contact, ok := related.Contacts[model.ContactID]; ok {
		r.ClientName = orMissing(contact.Name)
		r.ClientPhone = orMissing(contact.Phone)
	}

	r.UnitName = orMissing(related.Units[model.UnitID])

	r.Metadata.FromModel(model.Metadata)
}

func orMissing(value string) string {
	if value == constant.Empty {
		return Missing
	}

	return value
}

type Stats struct {
	TotalReviews  int    `json:"total_reviews"`
	AverageRating string `json:"average_rating"`
}

func (s *Stats) FromModel(stats model.Stats) {
	s.TotalReviews = stats.Total
	s.AverageRating = fmt.Sprintf("%.2f", stats.Average)
}

type GetReviewsResponse struct {
	Reviews   []ReviewResponse `json:"reviews"`
	Stats     Stats            `json:"stats"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetReviewsResponse) FromModels(models []model.Review, related Related, stats model.Stats, limit int) {
	r.Stats.FromModel(stats)
	r.TotalData = stats.Total
	r.TotalPage = shared.CalculateTotalPage(stats.Total, limit)

	r.Reviews = make([]ReviewResponse, len(models))
	for i, mod := range models {
		r.Reviews[i].FromModel(mod, related)
	}
}
