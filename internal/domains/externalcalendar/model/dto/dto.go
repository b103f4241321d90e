package dto

import (
	"time"

	"rentdesk/internal/domains/externalcalendar/model"
	"rentdesk/shared"
	"rentdesk/shared/constant"
	gDto "rentdesk/shared/dto"
	gModel "rentdesk/shared/model"
	"rentdesk/shared/timezone"
)

// SyncHorizonDays bounds how far ahead imported events block nights.
const SyncHorizonDays = 365

// UnitNameMissing labels calendars whose unit no longer resolves.
const UnitNameMissing = "N/A"

type CreateExternalCalendarRequest struct {
	UnitID string `json:"unit_id" validate:"required,max=36"`
	Name   string `json:"name"    validate:"required,max=255"`
	URL    string `json:"url"     validate:"required,url,max=2048"`
}

func (c *CreateExternalCalendarRequest) ToModel(user string) model.ExternalCalendar {
	return model.ExternalCalendar{
		ID:       shared.NewID(),
		UnitID:   c.UnitID,
		Name:     c.Name,
		URL:      c.URL,
		Metadata: gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateExternalCalendarRequest struct {
	UnitID string `db:"unit_id" json:"unit_id" validate:"omitempty,max=36"`
	Name   string `db:"name"    json:"name"    validate:"omitempty,max=255"`
	URL    string `db:"url"     json:"url"     validate:"omitempty,url,max=2048"`
}

type ExternalCalendarResponse struct {
	ID         string  `json:"id"`
	UnitID     string  `json:"unit_id"`
	UnitName   string  `json:"unit_name"`
	Name       string  `json:"name"`
	URL        string  `json:"url"`
	LastSynced *string `json:"last_synced"`
	gDto.Metadata
}

func (r *ExternalCalendarResponse) FromModel(model model.ExternalCalendar, unitName string) {
	r.ID = model.ID
	r.UnitID = model.UnitID
	r.UnitName = unitName
	r.Name = model.Name
	r.URL = model.URL
	r.LastSynced = nil

	if unitName == constant.Empty {
		r.UnitName = UnitNameMissing
	}

	if model.LastSynced != nil {
		synced := timezone.Format(*model.LastSynced, constant.DateTimeFormat)
		r.LastSynced = &synced
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetExternalCalendarsResponse struct {
	Calendars []ExternalCalendarResponse `json:"calendars"`
	TotalPage int                        `json:"total_page"`
	TotalData int                        `json:"total_data"`
}

func (r *GetExternalCalendarsResponse) FromModels(models []model.ExternalCalendar, unitNames map[string]string, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Calendars = make([]ExternalCalendarResponse, len(models))
	for i, mod := range models {
		r.Calendars[i].FromModel(mod, unitNames[mod.UnitID])
	}
}

// SyncResponse reports one import. Closed lists the nights newly blocked; nights
// already occupied on the unit are counted in Skipped.
type SyncResponse struct {
	LastSynced string   `json:"last_synced"`
	Events     int      `json:"events"`
	Closed     []string `json:"closed"`
	Skipped    int      `json:"skipped"`
}

func (r *SyncResponse) FromSync(syncedAt time.Time, events int, closed []string, skipped int) {
	r.LastSynced = timezone.Format(syncedAt, constant.DateTimeFormat)
	r.Events = events
	r.Closed = closed
	r.Skipped = skipped
}
