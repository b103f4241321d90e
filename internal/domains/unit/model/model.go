package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"rentdesk/shared/daterange"
	"rentdesk/shared/model"
)

const (
	TableName  = "units"
	EntityName = "unit"

	FieldID           = "id"
	FieldName         = "name"
	FieldGroupID      = "group_id"
	FieldType         = "unit_type"
	FieldStatus       = "status"
	FieldBaseRate     = "base_rate"
	FieldSpecialDates = "special_dates"
)

const (
	TypeChalet    = "Chalets"
	TypeApartment = "Apartments"
	TypeHotelRoom = "Hotel Rooms"

	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

var errUnsupportedSpecialDates = errors.New("unsupported special dates source")

type Unit struct {
	ID                 string       `db:"id"`
	Name               string       `db:"name"`
	GroupID            string       `db:"group_id"`
	Type               string       `db:"unit_type"`
	Status             string       `db:"status"`
	ShortDescription   string       `db:"short_description"`
	LongDescription    string       `db:"long_description"`
	Area               float64      `db:"area"`
	MaxGuests          int          `db:"max_guests"`
	ParkingAvailable   bool         `db:"parking_available"`
	CheckInHour        string       `db:"check_in_hour"`
	CheckOutHour       string       `db:"check_out_hour"`
	CancellationPolicy string       `db:"cancellation_policy"`
	BaseRate           float64      `db:"base_rate"`
	SundayPrice        float64      `db:"sunday_price"`
	MondayPrice        float64      `db:"monday_price"`
	TuesdayPrice       float64      `db:"tuesday_price"`
	WednesdayPrice     float64      `db:"wednesday_price"`
	ThursdayPrice      float64      `db:"thursday_price"`
	FridayPrice        float64      `db:"friday_price"`
	SaturdayPrice      float64      `db:"saturday_price"`
	SpecialDates       SpecialDates `db:"special_dates"`
	model.Metadata
}

// WeekdayPrice returns the configured price for weekday, zero when unset.
func (u Unit) WeekdayPrice(weekday time.Weekday) float64 {
	switch weekday {
	case time.Sunday:
		return u.SundayPrice
	case time.Monday:
		return u.MondayPrice
	case time.Tuesday:
		return u.TuesdayPrice
	case time.Wednesday:
		return u.WednesdayPrice
	case time.Thursday:
		return u.ThursdayPrice
	case time.Friday:
		return u.FridayPrice
	case time.Saturday:
		return u.SaturdayPrice
	default:
		return 0
	}
}

// SpecialDate pins the nightly price of a single calendar date.
type SpecialDate struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// SpecialDates is stored as a JSONB array on the unit row.
type SpecialDates []SpecialDate

// PriceOn returns the special price for day. The last entry wins when a date repeats.
func (s SpecialDates) PriceOn(day time.Time) (float64, bool) {
	key := daterange.Format(day)

	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Date == key {
			return s[i].Price, true
		}
	}

	return 0, false
}

// With returns a copy where day is priced at price, replacing any previous entry.
func (s SpecialDates) With(day time.Time, price float64) SpecialDates {
	out := s.Without(day)
	out = append(out, SpecialDate{Date: daterange.Format(day), Price: price})

	slices.SortFunc(out, func(a, b SpecialDate) int {
		return strings.Compare(a.Date, b.Date)
	})

	return out
}

// Without returns a copy with every entry for day removed.
func (s SpecialDates) Without(day time.Time) SpecialDates {
	key := daterange.Format(day)
	out := make(SpecialDates, 0, len(s))

	for _, entry := range s {
		if entry.Date != key {
			out = append(out, entry)
		}
	}

	return out
}

func (s SpecialDates) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}

	for _, entry := range s {
		if math.IsNaN(entry.Price) || math.IsInf(entry.Price, 0) {
			return nil, fmt.Errorf("special date %s has a non-finite price", entry.Date)
		}
	}

	data, err := json.Marshal([]SpecialDate(s))
	if err != nil {
		return nil, fmt.Errorf("failed to encode special dates: %w", err)
	}

	return data, nil
}

func (s *SpecialDates) Scan(src any) error {
	var data []byte

	switch v := src.(type) {
	case nil:
		*s = SpecialDates{}

		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("%w: %T", errUnsupportedSpecialDates, src)
	}

	var entries []SpecialDate
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to decode special dates: %w", err)
	}

	*s = entries

	return nil
}
