// Package daterange implements day-granular, half-open date intervals.
//
// Every value is normalized to midnight UTC of its own calendar date before
// comparison, so a time of day or a zone offset never moves a stay by a night
// and every day is exactly 24 hours long.
package daterange

import (
	"fmt"
	"iter"
	"time"

	"rentdesk/shared/constant"
)

const day = 24 * time.Hour

// Range is the half-open day interval [Start, End).
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Day truncates t to midnight of its calendar date, expressed in UTC.
func Day(t time.Time) time.Time {
	year, month, date := t.Date()

	return time.Date(year, month, date, 0, 0, 0, 0, time.UTC)
}

func New(start, end time.Time) Range {
	return Range{Start: Day(start), End: Day(end)}
}

// Inclusive converts the closed window [first, last] into [first, last+1).
func Inclusive(first, last time.Time) Range {
	return Range{Start: Day(first), End: Day(last).AddDate(0, 0, 1)}
}

// Month returns the range covering every day of the given month.
func Month(year int, month time.Month) Range {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	return Range{Start: start, End: start.AddDate(0, 1, 0)}
}

// DaysBetween counts whole days from a to b; negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)) / day)
}

// Days is the number of nights in the range, 0 when reversed or empty.
func (r Range) Days() int {
	return max(DaysBetween(r.Start, r.End), 0)
}

func (r Range) Valid() bool {
	return Day(r.End).After(Day(r.Start))
}

func (r Range) Contains(t time.Time) bool {
	d := Day(t)

	return !d.Before(Day(r.Start)) && d.Before(Day(r.End))
}

// Nights yields every day in [Start, End).
func (r Range) Nights() iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		end := Day(r.End)

		for d := Day(r.Start); d.Before(end); d = d.AddDate(0, 0, 1) {
			if !yield(d) {
				return
			}
		}
	}
}

func (r Range) String() string {
	return fmt.Sprintf("[%s, %s)", Format(r.Start), Format(r.End))
}

// OverlapDays counts the days shared by a and b. Disjoint or reversed ranges share none.
func OverlapDays(a, b Range) int {
	start := Day(a.Start)
	if bs := Day(b.Start); bs.After(start) {
		start = bs
	}

	end := Day(a.End)
	if be := Day(b.End); be.Before(end) {
		end = be
	}

	return max(DaysBetween(start, end), 0)
}

func Overlaps(a, b Range) bool {
	return OverlapDays(a, b) > 0
}

// Between yields every day from from to to, both included. Empty when to precedes from.
func Between(from, to time.Time) iter.Seq[time.Time] {
	return Inclusive(from, to).Nights()
}

// Parse reads an ISO calendar date (YYYY-MM-DD).
func Parse(value string) (time.Time, error) {
	parsed, err := time.Parse(constant.DateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}

	return parsed, nil
}

func Format(t time.Time) string {
	return Day(t).Format(constant.DateFormat)
}
