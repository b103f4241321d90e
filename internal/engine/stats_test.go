package engine_test

import (
	"testing"

	bookingModel "rentdesk/internal/domains/booking/model"
	unitModel "rentdesk/internal/domains/unit/model"
	"rentdesk/internal/engine"
	"rentdesk/shared/daterange"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStats(t *testing.T) {
	units := []unitModel.Unit{{ID: "unit-1"}, {ID: "unit-2"}}
	october := daterange.Month(2025, 10)

	t.Run("revenue by check-in, occupancy by overlap", func(t *testing.T) {
		bookings := []bookingModel.Booking{
			// Starts in September, overlaps October by 2 nights, not counted as revenue.
			stay(t, "b1", "unit-1", "2025-09-29", "2025-10-03", bookingModel.StatusConfirmed),
			// Starts in October, spills 3 nights into November.
			stay(t, "b2", "unit-2", "2025-10-30", "2025-11-04", bookingModel.StatusConfirmed),
			stay(t, "b3", "unit-1", "2025-10-10", "2025-10-12", bookingModel.StatusPending),
			stay(t, "b4", "unit-1", "2025-10-15", "2025-10-16", bookingModel.StatusCancelled),
		}

		stats := engine.ComputeStats(bookings, units, october)

		assert.Equal(t, 1, stats.TotalBookings)
		assert.Equal(t, 300.0, stats.TotalRevenue)
		assert.Equal(t, 2, stats.TotalUnits)
		assert.Equal(t, 4, stats.NightsBooked)
		assert.Equal(t, 62, stats.NightsAvailable)
		assert.InDelta(t, 4.0/62.0, stats.OccupancyRate, 1e-9)
	})

	t.Run("closures count as occupied but add no revenue", func(t *testing.T) {
		closure := engine.BuildClosure("unit-1", date(t, "2025-10-05"), func() string { return "c1" })

		stats := engine.ComputeStats([]bookingModel.Booking{closure}, units, october)

		assert.Equal(t, 1, stats.TotalBookings)
		assert.Zero(t, stats.TotalRevenue)
		assert.Equal(t, 1, stats.NightsBooked)
	})

	t.Run("bookings of unknown units are ignored", func(t *testing.T) {
		bookings := []bookingModel.Booking{stay(t, "b1", "unit-9", "2025-10-01", "2025-10-03", bookingModel.StatusConfirmed)}

		stats := engine.ComputeStats(bookings, units, october)

		assert.Zero(t, stats.TotalBookings)
		assert.Zero(t, stats.NightsBooked)
	})

	t.Run("occupancy never exceeds one", func(t *testing.T) {
		bookings := []bookingModel.Booking{
			stay(t, "b1", "unit-1", "2025-10-01", "2025-10-03", bookingModel.StatusConfirmed),
			stay(t, "b2", "unit-1", "2025-10-01", "2025-10-03", bookingModel.StatusConfirmed),
			stay(t, "b3", "unit-1", "2025-10-01", "2025-10-03", bookingModel.StatusConfirmed),
		}

		window := daterange.New(date(t, "2025-10-01"), date(t, "2025-10-03"))
		stats := engine.ComputeStats(bookings, units[:1], window)

		assert.Equal(t, 6, stats.NightsBooked)
		assert.Equal(t, 1.0, stats.OccupancyRate)
	})

	t.Run("zero length window", func(t *testing.T) {
		bookings := []bookingModel.Booking{stay(t, "b1", "unit-1", "2025-10-01", "2025-10-03", bookingModel.StatusConfirmed)}
		window := daterange.New(date(t, "2025-10-01"), date(t, "2025-10-01"))

		stats := engine.ComputeStats(bookings, units, window)

		assert.Zero(t, stats.OccupancyRate)
		assert.Zero(t, stats.TotalBookings)
	})

	t.Run("reversed window", func(t *testing.T) {
		bookings := []bookingModel.Booking{stay(t, "b1", "unit-1", "2025-10-01", "2025-10-03", bookingModel.StatusConfirmed)}
		window := daterange.New(date(t, "2025-10-31"), date(t, "2025-10-01"))

		stats := engine.ComputeStats(bookings, units, window)

		assert.Equal(t, engine.Stats{TotalUnits: 2}, stats)
	})

	t.Run("no units", func(t *testing.T) {
		bookings := []bookingModel.Booking{stay(t, "b1", "unit-1", "2025-10-01", "2025-10-03", bookingModel.StatusConfirmed)}

		assert.Equal(t, engine.Stats{}, engine.ComputeStats(bookings, nil, october))
	})
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "12.3%", engine.FormatPercent(0.1234))
	assert.Equal(t, "0.0%", engine.FormatPercent(0))
	assert.Equal(t, "100.0%", engine.FormatPercent(1))
}

func TestMonthlyBreakdown(t *testing.T) {
	bookings := []bookingModel.Booking{
		stay(t, "b1", "unit-1", "2025-11-02", "2025-11-04", bookingModel.StatusConfirmed),
		stay(t, "b2", "unit-1", "2025-10-02", "2025-10-04", bookingModel.StatusConfirmed),
		stay(t, "b3", "unit-2", "2025-10-20", "2025-10-21", bookingModel.StatusConfirmed),
		stay(t, "b4", "unit-2", "2025-10-22", "2025-10-23", bookingModel.StatusPending),
		stay(t, "b5", "unit-2", "2026-01-05", "2026-01-07", bookingModel.StatusConfirmed),
	}

	window := daterange.Inclusive(date(t, "2025-10-01"), date(t, "2025-12-31"))
	got := engine.MonthlyBreakdown(bookings, window)

	require.Len(t, got, 2)
	assert.Equal(t, "Oct 2025", got[0].Label)
	assert.Equal(t, 2, got[0].Bookings)
	assert.Equal(t, 600.0, got[0].Revenue)
	assert.Equal(t, "Nov 2025", got[1].Label)
	assert.Equal(t, 1, got[1].Bookings)
}

func TestRecentBookings(t *testing.T) {
	bookings := []bookingModel.Booking{
		stay(t, "b1", "unit-1", "2025-10-02", "2025-10-04", bookingModel.StatusConfirmed),
		stay(t, "b2", "unit-1", "2025-10-20", "2025-10-22", bookingModel.StatusCancelled),
		stay(t, "b3", "unit-2", "2025-10-20", "2025-10-21", bookingModel.StatusPending),
		stay(t, "b4", "unit-2", "2025-09-01", "2025-09-03", bookingModel.StatusConfirmed),
	}

	got := engine.RecentBookings(bookings, 3)

	require.Len(t, got, 3)
	assert.Equal(t, "b3", got[0].ID)
	assert.Equal(t, "b2", got[1].ID)
	assert.Equal(t, "b1", got[2].ID)
	assert.Equal(t, "b1", bookings[0].ID, "input order is left alone")

	assert.Empty(t, engine.RecentBookings(bookings, 0))
	assert.Len(t, engine.RecentBookings(bookings, 10), 4)
}
