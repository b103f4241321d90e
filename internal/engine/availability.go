package engine

import (
	"time"

	bookingModel "rentdesk/internal/domains/booking/model"
	overrideModel "rentdesk/internal/domains/override/model"
	unitModel "rentdesk/internal/domains/unit/model"
	"rentdesk/shared/daterange"
)

// BookingFilter keeps a booking when it returns true.
type BookingFilter func(bookingModel.Booking) bool

// Blocking is the canonical occupancy rule: cancelled stays free the unit, closures never do.
func Blocking(b bookingModel.Booking) bool {
	return b.IsClosure() || b.Status != bookingModel.StatusCancelled
}

// ForUnit keeps bookings of unitID.
func ForUnit(unitID string) BookingFilter {
	return func(b bookingModel.Booking) bool {
		return b.UnitID == unitID
	}
}

// BookingsOnDate returns the bookings whose stay contains date and that pass every keep filter.
func BookingsOnDate(date time.Time, bookings []bookingModel.Booking, keep ...BookingFilter) []bookingModel.Booking {
	out := []bookingModel.Booking{}

	for _, b := range bookings {
		if b.Stay().Contains(date) && passes(b, keep) {
			out = append(out, b)
		}
	}

	return out
}

// IsUnitAvailable reports whether no booking kept by keep occupies unitID on date.
// Without filters the Blocking rule applies.
func IsUnitAvailable(unitID string, date time.Time, bookings []bookingModel.Booking, keep ...BookingFilter) bool {
	if len(keep) == 0 {
		keep = []BookingFilter{Blocking}
	}

	for _, b := range bookings {
		if b.UnitID == unitID && b.Stay().Contains(date) && passes(b, keep) {
			return false
		}
	}

	return true
}

// IsUnitAvailableForRange reports whether unitID is free for every night of stay.
// An empty or reversed stay is never available.
func IsUnitAvailableForRange(unitID string, stay daterange.Range, bookings []bookingModel.Booking, keep ...BookingFilter) bool {
	if !stay.Valid() {
		return false
	}

	if len(keep) == 0 {
		keep = []BookingFilter{Blocking}
	}

	for _, b := range bookings {
		if b.UnitID == unitID && daterange.Overlaps(b.Stay(), stay) && passes(b, keep) {
			return false
		}
	}

	return true
}

// AvailableUnits returns the units with no blocking booking on date, in input order.
func AvailableUnits(date time.Time, units []unitModel.Unit, bookings []bookingModel.Booking) []unitModel.Unit {
	out := []unitModel.Unit{}

	for _, unit := range units {
		if IsUnitAvailable(unit.ID, date, bookings) {
			out = append(out, unit)
		}
	}

	return out
}

// CheapestAvailablePrice is the lowest resolved price among units free on date.
// ok is false when every unit is taken.
func CheapestAvailablePrice(
	date time.Time,
	units []unitModel.Unit,
	bookings []bookingModel.Booking,
	overrides []overrideModel.Override,
) (price float64, ok bool) {
	for _, unit := range AvailableUnits(date, units, bookings) {
		resolved := ResolvePrice(unit, date, overrides)
		if !ok || resolved < price {
			price = resolved
			ok = true
		}
	}

	return price, ok
}

func passes(b bookingModel.Booking, keep []BookingFilter) bool {
	for _, filter := range keep {
		if !filter(b) {
			return false
		}
	}

	return true
}
