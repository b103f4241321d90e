package model_test

import (
	"math"
	"testing"
	"time"

	"rentdesk/internal/domains/unit/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnit_WeekdayPrice(t *testing.T) {
	unit := model.Unit{SundayPrice: 1, MondayPrice: 2, TuesdayPrice: 3, WednesdayPrice: 4, ThursdayPrice: 5, FridayPrice: 6, SaturdayPrice: 7}

	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		assert.Equal(t, float64(weekday+1), unit.WeekdayPrice(weekday))
	}
}

func TestSpecialDates(t *testing.T) {
	day := time.Date(2025, 10, 6, 18, 30, 0, 0, time.UTC)
	next := day.AddDate(0, 0, 1)

	dates := model.SpecialDates{}.With(next, 200).With(day, 150)

	require.Len(t, dates, 2)
	assert.Equal(t, "2025-10-06", dates[0].Date)

	price, ok := dates.PriceOn(day)
	assert.True(t, ok)
	assert.Equal(t, 150.0, price)

	replaced := dates.With(day, 175)
	require.Len(t, replaced, 2)

	price, _ = replaced.PriceOn(day)
	assert.Equal(t, 175.0, price)

	removed := replaced.Without(day)
	_, ok = removed.PriceOn(day)
	assert.False(t, ok)
	assert.Len(t, removed, 1)
	assert.Len(t, replaced, 2, "Without does not touch the receiver")
}

func TestSpecialDates_ValueScan(t *testing.T) {
	dates := model.SpecialDates{{Date: "2025-10-06", Price: 150}}

	value, err := dates.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"date":"2025-10-06","price":150}]`, string(value.([]byte)))

	var scanned model.SpecialDates
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, dates, scanned)

	require.NoError(t, scanned.Scan(nil))
	assert.Empty(t, scanned)

	require.NoError(t, scanned.Scan(`[]`))
	assert.Empty(t, scanned)

	assert.Error(t, scanned.Scan(42))
	assert.Error(t, scanned.Scan(`{"broken"`))

	empty, err := model.SpecialDates(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), empty)

	_, err = model.SpecialDates{{Date: "2025-10-06", Price: math.NaN()}}.Value()
	assert.Error(t, err)
}
