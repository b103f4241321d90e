package engine

import (
	"strings"
	"time"

	bookingModel "rentdesk/internal/domains/booking/model"
	contactModel "rentdesk/internal/domains/contact/model"
	"rentdesk/shared/daterange"
)

// BookingInput is what the booking form collects.
type BookingInput struct {
	ClientName    string
	ClientEmail   string
	ClientPhone   string
	UnitID        string
	CheckIn       time.Time
	CheckOut      time.Time
	Price         float64
	PaidAmount    *float64
	BookingSource *string
	PaymentMethod *string
	Notes         *string
}

// ContactResolution is the contact a booking is linked to.
// Guest contacts have no email, carry a throwaway id and are not stored.
type ContactResolution struct {
	Contact contactModel.Contact
	IsNew   bool
	Guest   bool
}

// PaymentStatus is Paid when paid covers price. A missing amount counts as nothing paid.
func PaymentStatus(paid *float64, price float64) string {
	var amount float64
	if paid != nil {
		amount = finite(*paid)
	}

	if amount >= finite(price) {
		return contactModel.PaymentPaid
	}

	return contactModel.PaymentPending
}

// ResolveOrCreateContact links input to an existing contact by email, ignoring case and
// surrounding space, or drafts a new one. newID supplies identities for drafts.
func ResolveOrCreateContact(input BookingInput, contacts []contactModel.Contact, newID func() string) ContactResolution {
	email := contactModel.NormalizeEmail(input.ClientEmail)

	if email == "" {
		return ContactResolution{
			Contact: draftContact(input, "", newID()),
			IsNew:   true,
			Guest:   true,
		}
	}

	for _, contact := range contacts {
		if contact.SameEmail(email) {
			return ContactResolution{Contact: contact}
		}
	}

	return ContactResolution{
		Contact: draftContact(input, email, newID()),
		IsNew:   true,
	}
}

// BuildBooking assembles a booking for contactID. It is always Pending; payment does not confirm it.
func BuildBooking(input BookingInput, contactID string, newID func() string) bookingModel.Booking {
	return bookingModel.Booking{
		ID:            newID(),
		ClientID:      contactID,
		ClientName:    strings.TrimSpace(input.ClientName),
		UnitID:        input.UnitID,
		CheckIn:       daterange.Day(input.CheckIn),
		CheckOut:      daterange.Day(input.CheckOut),
		Status:        bookingModel.StatusPending,
		Price:         finite(input.Price),
		PaidAmount:    input.PaidAmount,
		BookingSource: input.BookingSource,
		PaymentMethod: input.PaymentMethod,
		Notes:         input.Notes,
	}
}

// BuildClosure blocks unitID for the single night of day.
func BuildClosure(unitID string, day time.Time, newID func() string) bookingModel.Booking {
	night := daterange.Day(day)

	return bookingModel.Booking{
		ID:         newID(),
		ClientID:   bookingModel.ClientIDClosedUnit,
		ClientName: bookingModel.ClientNameClosedUnit,
		UnitID:     unitID,
		CheckIn:    night,
		CheckOut:   night.AddDate(0, 0, 1),
		Status:     bookingModel.StatusConfirmed,
	}
}

// Cancellable reports whether b may move to Cancelled. Closures and cancelled bookings may not.
func Cancellable(b bookingModel.Booking) bool {
	return !b.IsClosure() && b.Status != bookingModel.StatusCancelled
}

func draftContact(input BookingInput, email, id string) contactModel.Contact {
	return contactModel.Contact{
		ID:      id,
		Name:    strings.TrimSpace(input.ClientName),
		Phone:   strings.TrimSpace(input.ClientPhone),
		Email:   email,
		Payment: PaymentStatus(input.PaidAmount, input.Price),
	}
}
