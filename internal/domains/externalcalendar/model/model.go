package model

import (
	"net/url"
	"strings"
	"time"

	"rentdesk/shared/model"
)

const (
	TableName  = "external_calendars"
	EntityName = "external_calendar"

	FieldID         = "id"
	FieldUnitID     = "unit_id"
	FieldName       = "name"
	FieldURL        = "url"
	FieldLastSynced = "last_synced"
)

const feedExtension = ".ics"

// ExternalCalendar is a feed published by another booking channel whose busy
// days are imported onto one unit as closures.
type ExternalCalendar struct {
	ID         string     `db:"id"`
	UnitID     string     `db:"unit_id"`
	Name       string     `db:"name"`
	URL        string     `db:"url"`
	LastSynced *time.Time `db:"last_synced"`
	model.Metadata
}

// IsFeedURL accepts absolute http(s) URLs whose path names an .ics file. The
// query string is ignored since channels put access tokens there.
func IsFeedURL(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Host == "" {
		return false
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}

	return strings.HasSuffix(strings.ToLower(parsed.Path), feedExtension)
}
