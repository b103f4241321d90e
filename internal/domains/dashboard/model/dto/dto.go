package dto

import (
	"net/http"

	bookingModel "rentdesk/internal/domains/booking/model"
	"rentdesk/internal/engine"
	"rentdesk/shared/constant"
	"rentdesk/shared/daterange"
	"rentdesk/shared/failure"
	"rentdesk/shared/scope"
	"rentdesk/shared/timezone"
)

const RecentLimit = 5

// Query is a group scope plus an inclusive [From, To] window. It defaults to the current month.
type Query struct {
	Scope scope.GroupScope
	From  string
	To    string
}

func (q *Query) FromRequest(r *http.Request) error {
	query := r.URL.Query()
	month := daterange.Month(timezone.Today().Year(), timezone.Today().Month())

	q.Scope = scope.FromRequest(r)
	q.From = daterange.Format(month.Start)
	q.To = daterange.Format(month.End.AddDate(0, 0, -1))

	if raw := query.Get(constant.RequestParamFrom); raw != "" {
		q.From = raw
	}

	if raw := query.Get(constant.RequestParamTo); raw != "" {
		q.To = raw
	}

	if _, err := q.Window(); err != nil {
		return err
	}

	return nil
}

// Window is the half-open range [From, To+1). A To before From gives an empty range,
// which the stats treat as a window without nights.
func (q *Query) Window() (daterange.Range, error) {
	from, err := daterange.Parse(q.From)
	if err != nil {
		return daterange.Range{}, failure.BadRequestFromString("from must be formatted as YYYY-MM-DD") // nolint:wrapcheck
	}

	to, err := daterange.Parse(q.To)
	if err != nil {
		return daterange.Range{}, failure.BadRequestFromString("to must be formatted as YYYY-MM-DD") // nolint:wrapcheck
	}

	return daterange.Inclusive(from, to), nil
}

type StatsResponse struct {
	TotalBookings   int     `json:"total_bookings"`
	TotalRevenue    float64 `json:"total_revenue"`
	TotalUnits      int     `json:"total_units"`
	NightsBooked    int     `json:"nights_booked"`
	NightsAvailable int     `json:"nights_available"`
	OccupancyRate   float64 `json:"occupancy_rate"`
	Occupancy       string  `json:"occupancy"`
}

func (s *StatsResponse) FromStats(stats engine.Stats) {
	s.TotalBookings = stats.TotalBookings
	s.TotalRevenue = stats.TotalRevenue
	s.TotalUnits = stats.TotalUnits
	s.NightsBooked = stats.NightsBooked
	s.NightsAvailable = stats.NightsAvailable
	s.OccupancyRate = stats.OccupancyRate
	s.Occupancy = engine.FormatPercent(stats.OccupancyRate)
}

type ChartPoint struct {
	Name     string  `json:"name"`
	Revenue  float64 `json:"revenue"`
	Bookings int     `json:"bookings"`
}

type RecentBooking struct {
	ID         string  `json:"id"`
	ClientName string  `json:"client_name"`
	UnitID     string  `json:"unit_id"`
	CheckIn    string  `json:"check_in"`
	CheckOut   string  `json:"check_out"`
	Status     string  `json:"status"`
	Price      float64 `json:"price"`
}

type OverviewResponse struct {
	Scope    string          `json:"group_id"`
	From     string          `json:"from"`
	To       string          `json:"to"`
	Currency string          `json:"currency"`
	Stats    StatsResponse   `json:"stats"`
	Chart    []ChartPoint    `json:"chart"`
	Recent   []RecentBooking `json:"recent_bookings"`
}

func (o *OverviewResponse) Build(query Query, stats engine.Stats, chart []engine.MonthBucket, recent []bookingModel.Booking) {
	o.Scope = query.Scope.String()
	o.From = query.From
	o.To = query.To
	o.Stats.FromStats(stats)

	o.Chart = make([]ChartPoint, len(chart))
	for i, bucket := range chart {
		o.Chart[i] = ChartPoint{Name: bucket.Label, Revenue: bucket.Revenue, Bookings: bucket.Bookings}
	}

	o.Recent = make([]RecentBooking, len(recent))
	for i, b := range recent {
		o.Recent[i] = RecentBooking{
			ID:         b.ID,
			ClientName: b.ClientName,
			UnitID:     b.UnitID,
			CheckIn:    daterange.Format(b.CheckIn),
			CheckOut:   daterange.Format(b.CheckOut),
			Status:     b.Status,
			Price:      b.Price,
		}
	}
}
