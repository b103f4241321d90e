package engine_test

import (
	"math"
	"testing"
	"time"

	"rentdesk/internal/domains/override/model"
	unitModel "rentdesk/internal/domains/unit/model"
	"rentdesk/internal/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse(time.DateOnly, value)
	require.NoError(t, err)

	return parsed
}

func chalet() unitModel.Unit {
	return unitModel.Unit{ID: "unit-1", Name: "Chalet A", BaseRate: 100}
}

func TestResolve_Cascade(t *testing.T) {
	// 2025-10-06 is a Monday.
	monday := date(t, "2025-10-06")

	unit := chalet()
	unit.MondayPrice = 120

	period := model.Override{
		ID:        "1",
		StartDate: date(t, "2025-10-01"),
		EndDate:   date(t, "2025-10-31"),
		UnitIDs:   []string{unit.ID},
		Price:     90,
	}

	t.Run("special date wins over everything", func(t *testing.T) {
		special := unit
		special.SpecialDates = unitModel.SpecialDates{{Date: "2025-10-06", Price: 50}}

		res := engine.Resolve(special, monday, []model.Override{period})

		assert.Equal(t, 50.0, res.Price)
		assert.Equal(t, engine.TierSpecial, res.Tier)
	})

	t.Run("period override wins over weekday", func(t *testing.T) {
		res := engine.Resolve(unit, monday, []model.Override{period})

		assert.Equal(t, 90.0, res.Price)
		assert.Equal(t, engine.TierPeriod, res.Tier)
		assert.Equal(t, "1", res.OverrideID)
	})

	t.Run("weekday wins over base", func(t *testing.T) {
		res := engine.Resolve(unit, monday, nil)

		assert.Equal(t, 120.0, res.Price)
		assert.Equal(t, engine.TierWeekday, res.Tier)
	})

	t.Run("unset weekday falls back to base", func(t *testing.T) {
		res := engine.Resolve(unit, date(t, "2025-10-07"), nil)

		assert.Equal(t, 100.0, res.Price)
		assert.Equal(t, engine.TierBase, res.Tier)
	})

	t.Run("override for another unit is ignored", func(t *testing.T) {
		other := period
		other.UnitIDs = []string{"unit-2"}

		assert.Equal(t, 120.0, engine.ResolvePrice(unit, monday, []model.Override{other}))
	})

	t.Run("override end date is inclusive", func(t *testing.T) {
		assert.Equal(t, 90.0, engine.ResolvePrice(unit, date(t, "2025-10-31"), []model.Override{period}))
		assert.Equal(t, 100.0, engine.ResolvePrice(unit, date(t, "2025-11-01"), []model.Override{period}))
	})

	t.Run("time of day is ignored", func(t *testing.T) {
		special := unit
		special.SpecialDates = unitModel.SpecialDates{{Date: "2025-10-06", Price: 50}}

		evening := monday.Add(23 * time.Hour)

		assert.Equal(t, 50.0, engine.ResolvePrice(special, evening, nil))
	})
}

func TestResolve_PeriodTieBreak(t *testing.T) {
	unit := chalet()
	day := date(t, "2025-10-08")

	low := model.Override{ID: "1", StartDate: day, EndDate: day, UnitIDs: []string{unit.ID}, Price: 80}
	high := model.Override{ID: "2", StartDate: day, EndDate: day, UnitIDs: []string{unit.ID}, Price: 95}

	for range 5 {
		assert.Equal(t, 95.0, engine.ResolvePrice(unit, day, []model.Override{low, high}))
		assert.Equal(t, 95.0, engine.ResolvePrice(unit, day, []model.Override{high, low}))
	}
}

func TestResolve_NonFinitePrices(t *testing.T) {
	day := date(t, "2025-10-07")

	unit := chalet()
	unit.TuesdayPrice = math.NaN()

	assert.Equal(t, 100.0, engine.ResolvePrice(unit, day, nil))

	unit.BaseRate = math.Inf(1)

	assert.Equal(t, 0.0, engine.ResolvePrice(unit, day, nil))

	unit = chalet()
	unit.SpecialDates = unitModel.SpecialDates{{Date: "2025-10-07", Price: math.NaN()}}

	assert.Equal(t, 0.0, engine.ResolvePrice(unit, day, nil))
}

func TestTotalPrice(t *testing.T) {
	unit := chalet()
	unit.SaturdayPrice = 150

	// 2025-10-02 Thursday, 2025-10-03 Friday, 2025-10-04 Saturday.
	checkIn := date(t, "2025-10-02")
	checkOut := date(t, "2025-10-05")

	assert.Equal(t, 350.0, engine.TotalPrice(unit, checkIn, checkOut, nil))
	assert.Equal(t, 0.0, engine.TotalPrice(unit, checkIn, checkIn, nil))
	assert.Equal(t, 0.0, engine.TotalPrice(unit, checkOut, checkIn, nil))
}

func TestQuoteStay(t *testing.T) {
	unit := chalet()
	unit.SpecialDates = unitModel.SpecialDates{{Date: "2025-10-03", Price: 200}}

	quote := engine.QuoteStay(unit, date(t, "2025-10-02"), date(t, "2025-10-04"), nil)

	require.Len(t, quote.Nights, 2)
	assert.Equal(t, engine.TierBase, quote.Nights[0].Tier)
	assert.Equal(t, engine.TierSpecial, quote.Nights[1].Tier)
	assert.Equal(t, date(t, "2025-10-03"), quote.Nights[1].Date)
	assert.Equal(t, 300.0, quote.Total)

	empty := engine.QuoteStay(unit, date(t, "2025-10-04"), date(t, "2025-10-02"), nil)

	assert.Empty(t, empty.Nights)
	assert.Zero(t, empty.Total)
}
