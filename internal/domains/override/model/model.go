package model

import (
	"slices"
	"time"

	"rentdesk/shared/daterange"
	"rentdesk/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "pricing_overrides"
	EntityName = "override"

	FieldID        = "id"
	FieldName      = "name"
	FieldStartDate = "start_date"
	FieldEndDate   = "end_date"
	FieldUnitIDs   = "unit_ids"
	FieldPrice     = "price"
)

// Override prices every night from StartDate to EndDate, both included, for the listed units.
type Override struct {
	ID        string         `db:"id"`
	Name      string         `db:"name"`
	StartDate time.Time      `db:"start_date"`
	EndDate   time.Time      `db:"end_date"`
	UnitIDs   pq.StringArray `db:"unit_ids"`
	Price     float64        `db:"price"`
	model.Metadata
}

// Period is the half-open range the override covers.
func (o Override) Period() daterange.Range {
	return daterange.Inclusive(o.StartDate, o.EndDate)
}

// AppliesTo reports whether the override prices unitID on day.
func (o Override) AppliesTo(unitID string, day time.Time) bool {
	return slices.Contains(o.UnitIDs, unitID) && o.Period().Contains(day)
}
