package daterange_test

import (
	"slices"
	"testing"
	"time"

	"rentdesk/shared/daterange"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := daterange.Parse(value)
	require.NoError(t, err)

	return parsed
}

func span(t *testing.T, start, end string) daterange.Range {
	t.Helper()

	return daterange.New(date(t, start), date(t, end))
}

func TestDay(t *testing.T) {
	riyadh := time.FixedZone("AST", 3*60*60)
	lateEvening := time.Date(2025, 10, 2, 23, 30, 0, 0, riyadh)

	assert.Equal(t, time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC), daterange.Day(lateEvening))
	assert.Equal(t, "2025-10-02", daterange.Format(lateEvening))
}

func TestDays(t *testing.T) {
	assert.Equal(t, 3, span(t, "2025-10-02", "2025-10-05").Days())
	assert.Equal(t, 0, span(t, "2025-10-05", "2025-10-05").Days())
	assert.Equal(t, 0, span(t, "2025-10-05", "2025-10-02").Days())
	assert.Equal(t, 29, daterange.Month(2024, time.February).Days())
	assert.Equal(t, 31, daterange.Month(2025, time.March).Days())
}

func TestDaysAcrossDST(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skip("tzdata not available")
	}

	r := daterange.New(
		time.Date(2025, 3, 29, 12, 0, 0, 0, berlin),
		time.Date(2025, 3, 31, 12, 0, 0, 0, berlin),
	)

	assert.Equal(t, 2, r.Days())
}

func TestOverlapDays(t *testing.T) {
	tests := []struct {
		name string
		a    daterange.Range
		b    daterange.Range
		want int
	}{
		{name: "partial", a: span(t, "2025-10-01", "2025-10-05"), b: span(t, "2025-10-03", "2025-10-10"), want: 2},
		{name: "contained", a: span(t, "2025-10-01", "2025-10-31"), b: span(t, "2025-10-10", "2025-10-12"), want: 2},
		{name: "touching is disjoint", a: span(t, "2025-10-01", "2025-10-05"), b: span(t, "2025-10-05", "2025-10-07"), want: 0},
		{name: "disjoint", a: span(t, "2025-10-01", "2025-10-02"), b: span(t, "2025-11-01", "2025-11-02"), want: 0},
		{name: "reversed", a: span(t, "2025-10-05", "2025-10-01"), b: span(t, "2025-10-01", "2025-10-05"), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, daterange.OverlapDays(tt.a, tt.b))
			assert.Equal(t, tt.want, daterange.OverlapDays(tt.b, tt.a))
			assert.Equal(t, tt.want > 0, daterange.Overlaps(tt.a, tt.b))
		})
	}
}

func TestOverlapWithSelfEqualsDuration(t *testing.T) {
	ranges := []daterange.Range{
		span(t, "2025-10-01", "2025-10-05"),
		span(t, "2025-12-30", "2026-01-02"),
		span(t, "2025-10-05", "2025-10-05"),
		span(t, "2025-10-05", "2025-10-01"),
	}

	for _, r := range ranges {
		assert.Equal(t, r.Days(), daterange.OverlapDays(r, r), r.String())
	}
}

func TestContains(t *testing.T) {
	stay := span(t, "2025-10-02", "2025-10-05")

	assert.False(t, stay.Contains(date(t, "2025-10-01")))
	assert.True(t, stay.Contains(date(t, "2025-10-02")))
	assert.True(t, stay.Contains(date(t, "2025-10-04").Add(23*time.Hour)))
	assert.False(t, stay.Contains(date(t, "2025-10-05")))
	assert.True(t, stay.Valid())
	assert.False(t, span(t, "2025-10-05", "2025-10-05").Valid())
}

func TestNightsAndBetween(t *testing.T) {
	nights := slices.Collect(span(t, "2025-12-30", "2026-01-02").Nights())
	assert.Equal(t, []time.Time{date(t, "2025-12-30"), date(t, "2025-12-31"), date(t, "2026-01-01")}, nights)

	days := slices.Collect(daterange.Between(date(t, "2025-10-01"), date(t, "2025-10-03")))
	assert.Len(t, days, 3)
	assert.Equal(t, date(t, "2025-10-03"), days[2])

	assert.Empty(t, slices.Collect(daterange.Between(date(t, "2025-10-03"), date(t, "2025-10-01"))))
	assert.Len(t, slices.Collect(daterange.Between(date(t, "2025-10-03"), date(t, "2025-10-03"))), 1)

	count := 0
	for range span(t, "2025-01-01", "2026-01-01").Nights() {
		count++
		if count == 5 {
			break
		}
	}
	assert.Equal(t, 5, count)
}

func TestInclusive(t *testing.T) {
	window := daterange.Inclusive(date(t, "2025-10-01"), date(t, "2025-10-31"))

	assert.Equal(t, 31, window.Days())
	assert.True(t, window.Contains(date(t, "2025-10-31")))
	assert.Equal(t, 0, daterange.Inclusive(date(t, "2025-10-05"), date(t, "2025-10-01")).Days())
}

func TestParse(t *testing.T) {
	_, err := daterange.Parse("2025-02-30")
	assert.Error(t, err)

	parsed, err := daterange.Parse("2025-02-28")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, parsed.Location())
}
