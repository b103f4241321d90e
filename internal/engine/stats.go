package engine

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	bookingModel "rentdesk/internal/domains/booking/model"
	unitModel "rentdesk/internal/domains/unit/model"
	"rentdesk/shared/daterange"
)

const monthLabelFormat = "Jan 2006"

type Stats struct {
	TotalBookings   int     `json:"total_bookings"`
	TotalRevenue    float64 `json:"total_revenue"`
	TotalUnits      int     `json:"total_units"`
	NightsBooked    int     `json:"nights_booked"`
	NightsAvailable int     `json:"nights_available"`
	OccupancyRate   float64 `json:"occupancy_rate"`
}

// MonthBucket aggregates confirmed bookings by the month they check in.
type MonthBucket struct {
	Month    time.Time `json:"month"`
	Label    string    `json:"label"`
	Revenue  float64   `json:"revenue"`
	Bookings int       `json:"bookings"`
}

// ComputeStats summarizes confirmed bookings of units over window.
//
// Bookings and revenue are attributed to the window their check-in falls in. Occupancy
// uses the nights each stay overlaps the window, over units times window days, and is
// clamped to [0, 1]. Closures are confirmed bookings and count as occupied.
// An empty or reversed window yields zero stats.
func ComputeStats(bookings []bookingModel.Booking, units []unitModel.Unit, window daterange.Range) Stats {
	stats := Stats{TotalUnits: len(units)}

	if !window.Valid() || len(units) == 0 {
		return stats
	}

	known := make(map[string]struct{}, len(units))
	for _, unit := range units {
		known[unit.ID] = struct{}{}
	}

	for _, b := range bookings {
		if b.Status != bookingModel.StatusConfirmed {
			continue
		}

		if _, ok := known[b.UnitID]; !ok {
			continue
		}

		if window.Contains(b.CheckIn) {
			stats.TotalBookings++
			stats.TotalRevenue += finite(b.Price)
		}

		stats.NightsBooked += daterange.OverlapDays(b.Stay(), window)
	}

	stats.NightsAvailable = len(units) * window.Days()
	stats.OccupancyRate = min(float64(stats.NightsBooked)/float64(stats.NightsAvailable), 1)

	return stats
}

// FormatPercent renders a ratio as a percentage with one decimal, e.g. 0.1234 -> "12.3%".
func FormatPercent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", finite(ratio)*100)
}

// MonthlyBreakdown buckets confirmed bookings checking in within window by month, oldest first.
func MonthlyBreakdown(bookings []bookingModel.Booking, window daterange.Range) []MonthBucket {
	buckets := map[time.Time]*MonthBucket{}

	for _, b := range bookings {
		if b.Status != bookingModel.StatusConfirmed || !window.Contains(b.CheckIn) {
			continue
		}

		checkIn := daterange.Day(b.CheckIn)
		month := time.Date(checkIn.Year(), checkIn.Month(), 1, 0, 0, 0, 0, time.UTC)

		bucket, ok := buckets[month]
		if !ok {
			bucket = &MonthBucket{Month: month, Label: month.Format(monthLabelFormat)}
			buckets[month] = bucket
		}

		bucket.Revenue += finite(b.Price)
		bucket.Bookings++
	}

	out := make([]MonthBucket, 0, len(buckets))
	for _, bucket := range buckets {
		out = append(out, *bucket)
	}

	slices.SortFunc(out, func(a, b MonthBucket) int {
		return a.Month.Compare(b.Month)
	})

	return out
}

// RecentBookings returns up to n bookings, latest check-in first. Ties fall back to id, newest first.
func RecentBookings(bookings []bookingModel.Booking, n int) []bookingModel.Booking {
	if n <= 0 {
		return []bookingModel.Booking{}
	}

	sorted := slices.Clone(bookings)
	slices.SortStableFunc(sorted, func(a, b bookingModel.Booking) int {
		if c := daterange.Day(b.CheckIn).Compare(daterange.Day(a.CheckIn)); c != 0 {
			return c
		}

		return cmp.Compare(b.ID, a.ID)
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}

	return sorted
}
