package model

import (
	"time"

	"rentdesk/shared/daterange"
	"rentdesk/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldClientID      = "client_id"
	FieldClientName    = "client_name"
	FieldUnitID        = "unit_id"
	FieldCheckIn       = "check_in"
	FieldCheckOut      = "check_out"
	FieldStatus        = "status"
	FieldPrice         = "price"
	FieldPaidAmount    = "paid_amount"
	FieldBookingSource = "booking_source"
	FieldPaymentMethod = "payment_method"
)

const (
	StatusConfirmed  = "Confirmed"
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCancelled  = "Cancelled"
)

const (
	SourceWebsite = "Website"
	SourcePhone   = "Phone"
	SourceWalkIn  = "Walk-in"
	SourceAgent   = "Agent"

	PaymentMethodCreditCard   = "Credit Card"
	PaymentMethodCash         = "Cash"
	PaymentMethodBankTransfer = "Bank Transfer"
)

const (
	// ClientIDClosedUnit marks an operator closure rather than a guest stay.
	ClientIDClosedUnit   = "closed"
	ClientNameClosedUnit = "Unit closed"
)

type Booking struct {
	ID            string    `db:"id"`
	ClientID      string    `db:"client_id"`
	ClientName    string    `db:"client_name"`
	UnitID        string    `db:"unit_id"`
	CheckIn       time.Time `db:"check_in"`
	CheckOut      time.Time `db:"check_out"`
	Status        string    `db:"status"`
	Price         float64   `db:"price"`
	PaidAmount    *float64  `db:"paid_amount"`
	BookingSource *string   `db:"booking_source"`
	PaymentMethod *string   `db:"payment_method"`
	Notes         *string   `db:"notes"`
	model.Metadata
}

// Stay is the half-open interval of nights the booking occupies.
func (b Booking) Stay() daterange.Range {
	return daterange.New(b.CheckIn, b.CheckOut)
}

func (b Booking) IsClosure() bool {
	return b.ClientID == ClientIDClosedUnit
}

// IsPaid reports whether the paid amount covers the price. A missing amount counts as zero.
func (b Booking) IsPaid() bool {
	var paid float64
	if b.PaidAmount != nil {
		paid = *b.PaidAmount
	}

	return paid >= b.Price
}
