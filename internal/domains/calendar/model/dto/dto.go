package dto

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	bookingModel "rentdesk/internal/domains/booking/model"
	overrideModel "rentdesk/internal/domains/override/model"
	unitModel "rentdesk/internal/domains/unit/model"
	"rentdesk/internal/engine"
	"rentdesk/shared/constant"
	"rentdesk/shared/daterange"
	"rentdesk/shared/failure"
	"rentdesk/shared/scope"
	"rentdesk/shared/timezone"
)

// MonthQuery selects the month to render and, optionally, a subset of units.
type MonthQuery struct {
	Year    int
	Month   time.Month
	Scope   scope.GroupScope
	UnitIDs []string
}

// FromRequest defaults to the current month. unit_ids is a comma separated list.
func (q *MonthQuery) FromRequest(r *http.Request) error {
	query := r.URL.Query()
	today := timezone.Today()

	q.Year = today.Year()
	q.Month = today.Month()
	q.Scope = scope.FromRequest(r)

	if raw := query.Get(constant.RequestParamYear); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year < 1 || year > 9999 {
			return failure.BadRequestFromString("year must be a number between 1 and 9999") // nolint:wrapcheck
		}

		q.Year = year
	}

	if raw := query.Get(constant.RequestParamMonth); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil || month < 1 || month > 12 {
			return failure.BadRequestFromString("month must be a number between 1 and 12") // nolint:wrapcheck
		}

		q.Month = time.Month(month)
	}

	q.UnitIDs = nil

	for _, id := range strings.Split(query.Get(constant.RequestParamUnitIDs), ",") {
		if id = strings.TrimSpace(id); id != "" {
			q.UnitIDs = append(q.UnitIDs, id)
		}
	}

	return nil
}

// Grid is the Sunday-aligned run of whole weeks that contains the month.
func (q *MonthQuery) Grid() daterange.Range {
	month := daterange.Month(q.Year, q.Month)
	last := month.End.AddDate(0, 0, -1)

	first := month.Start.AddDate(0, 0, -int(month.Start.Weekday()))
	final := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	return daterange.Inclusive(first, final)
}

type UnitSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Status string `json:"status"`
}

type DayBooking struct {
	ID         string `json:"id"`
	UnitID     string `json:"unit_id"`
	ClientName string `json:"client_name"`
	Status     string `json:"status"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Closure    bool   `json:"closure"`
}

func (d *DayBooking) FromModel(model bookingModel.Booking) {
	d.ID = model.ID
	d.UnitID = model.UnitID
	d.ClientName = model.ClientName
	d.Status = model.Status
	d.CheckIn = daterange.Format(model.CheckIn)
	d.CheckOut = daterange.Format(model.CheckOut)
	d.Closure = model.IsClosure()
}

type DayResponse struct {
	Date           string       `json:"date"`
	InMonth        bool         `json:"in_month"`
	Bookings       []DayBooking `json:"bookings"`
	AvailableUnits int          `json:"available_units"`
	FromPrice      *float64     `json:"from_price"`
}

type MonthResponse struct {
	Year     int             `json:"year"`
	Month    int             `json:"month"`
	Label    string          `json:"label"`
	Currency string          `json:"currency"`
	Units    []UnitSummary   `json:"units"`
	Weeks    [][]DayResponse `json:"weeks"`
}

// Build lays out every day of the grid. Day bookings include cancelled ones; the price and
// availability only consider blocking bookings.
func (r *MonthResponse) Build(
	query MonthQuery,
	units []unitModel.Unit,
	bookings []bookingModel.Booking,
	overrides []overrideModel.Override,
) {
	month := daterange.Month(query.Year, query.Month)

	r.Year = query.Year
	r.Month = int(query.Month)
	r.Label = month.Start.Format("January 2006")

	r.Units = make([]UnitSummary, len(units))
	for i, unit := range units {
		r.Units[i] = UnitSummary{ID: unit.ID, Name: unit.Name, Type: unit.Type, Status: unit.Status}
	}

	r.Weeks = [][]DayResponse{}
	week := make([]DayResponse, 0, 7)

	for day := range query.Grid().Nights() {
		week = append(week, r.day(day, month, units, bookings, overrides))

		if len(week) == 7 {
			r.Weeks = append(r.Weeks, week)
			week = make([]DayResponse, 0, 7)
		}
	}
}

func (r *MonthResponse) day(
	day time.Time,
	month daterange.Range,
	units []unitModel.Unit,
	bookings []bookingModel.Booking,
	overrides []overrideModel.Override,
) DayResponse {
	onDate := engine.BookingsOnDate(day, bookings)

	res := DayResponse{
		Date:           daterange.Format(day),
		InMonth:        month.Contains(day),
		Bookings:       make([]DayBooking, len(onDate)),
		AvailableUnits: len(engine.AvailableUnits(day, units, bookings)),
	}

	for i, booking := range onDate {
		res.Bookings[i].FromModel(booking)
	}

	if price, ok := engine.CheapestAvailablePrice(day, units, bookings, overrides); ok {
		res.FromPrice = &price
	}

	return res
}

type UnitPrice struct {
	UnitID string   `json:"unit_id" validate:"required,uuid"`
	Price  *float64 `json:"price"   validate:"omitempty,gte=0"`
}

// AdjustPricesRequest pins per-unit prices on one date. A null price clears the pin.
type AdjustPricesRequest struct {
	Date   string      `json:"date"   validate:"required,isodate"`
	Prices []UnitPrice `json:"prices" validate:"required,min=1,dive"`
}

func (a *AdjustPricesRequest) UnitIDs() []string {
	ids := make([]string, 0, len(a.Prices))
	seen := make(map[string]struct{}, len(a.Prices))

	for _, price := range a.Prices {
		if _, ok := seen[price.UnitID]; ok {
			continue
		}

		seen[price.UnitID] = struct{}{}
		ids = append(ids, price.UnitID)
	}

	return ids
}

type CloseUnitsRequest struct {
	Date    string   `json:"date"     validate:"required,isodate"`
	UnitIDs []string `json:"unit_ids" validate:"required,min=1,dive,uuid"`
}

type CloseUnitsResponse struct {
	Date    string   `json:"date"`
	Closed  []string `json:"closed"`
	Skipped []string `json:"skipped"`
}

// Feed is a unit's occupancy rendered as an .ics attachment.
type Feed struct {
	FileName string
	Content  []byte
}
