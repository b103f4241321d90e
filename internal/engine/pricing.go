package engine

import (
	"math"
	"time"

	overrideModel "rentdesk/internal/domains/override/model"
	unitModel "rentdesk/internal/domains/unit/model"
	"rentdesk/shared/daterange"
)

// Tier names the rule that produced a nightly price.
type Tier string

const (
	TierSpecial Tier = "special"
	TierPeriod  Tier = "period"
	TierWeekday Tier = "weekday"
	TierBase    Tier = "base"
)

// Resolution is the price of one night and where it came from.
type Resolution struct {
	Date       time.Time `json:"date"`
	Price      float64   `json:"price"`
	Tier       Tier      `json:"tier"`
	OverrideID string    `json:"override_id,omitempty"`
}

// Quote is the nightly breakdown of a stay.
type Quote struct {
	Nights []Resolution `json:"nights"`
	Total  float64      `json:"total"`
}

// Resolve prices unit on date: special date, then period override, then weekday price, then base rate.
func Resolve(unit unitModel.Unit, date time.Time, overrides []overrideModel.Override) Resolution {
	day := daterange.Day(date)

	if price, ok := unit.SpecialDates.PriceOn(day); ok {
		return Resolution{Date: day, Price: finite(price), Tier: TierSpecial}
	}

	if override, ok := winningOverride(unit.ID, day, overrides); ok {
		return Resolution{Date: day, Price: finite(override.Price), Tier: TierPeriod, OverrideID: override.ID}
	}

	if price := finite(unit.WeekdayPrice(day.Weekday())); price > 0 {
		return Resolution{Date: day, Price: price, Tier: TierWeekday}
	}

	return Resolution{Date: day, Price: finite(unit.BaseRate), Tier: TierBase}
}

func ResolvePrice(unit unitModel.Unit, date time.Time, overrides []overrideModel.Override) float64 {
	return Resolve(unit, date, overrides).Price
}

// TotalPrice sums the nightly price of every night in [checkIn, checkOut). Zero when checkOut <= checkIn.
func TotalPrice(unit unitModel.Unit, checkIn, checkOut time.Time, overrides []overrideModel.Override) float64 {
	return QuoteStay(unit, checkIn, checkOut, overrides).Total
}

func QuoteStay(unit unitModel.Unit, checkIn, checkOut time.Time, overrides []overrideModel.Override) Quote {
	stay := daterange.New(checkIn, checkOut)
	quote := Quote{Nights: make([]Resolution, 0, stay.Days())}

	for night := range stay.Nights() {
		resolution := Resolve(unit, night, overrides)

		quote.Nights = append(quote.Nights, resolution)
		quote.Total += resolution.Price
	}

	return quote
}

// winningOverride picks the applicable override with the greatest id. Ids are time ordered,
// so this is the most recently created one.
func winningOverride(unitID string, day time.Time, overrides []overrideModel.Override) (overrideModel.Override, bool) {
	var (
		winner overrideModel.Override
		found  bool
	)

	for _, override := range overrides {
		if !override.AppliesTo(unitID, day) {
			continue
		}

		if !found || override.ID > winner.ID {
			winner = override
			found = true
		}
	}

	return winner, found
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	return v
}
