package dto

import (
	"time"

	"rentdesk/internal/domains/override/model"
	"rentdesk/shared"
	"rentdesk/shared/daterange"
	gDto "rentdesk/shared/dto"
	gModel "rentdesk/shared/model"
	"rentdesk/shared/timezone"

	"github.com/lib/pq"
)

type CreateOverrideRequest struct {
	Name      string   `json:"name"       validate:"required,max=255"`
	StartDate string   `json:"start_date" validate:"required,isodate"`
	EndDate   string   `json:"end_date"   validate:"required,isodate"`
	UnitIDs   []string `json:"unit_ids"   validate:"required,min=1,dive,uuid"`
	Price     float64  `json:"price"      validate:"gte=0"`
}

// Period parses the inclusive start and end dates. ok is false when end precedes start.
func (c *CreateOverrideRequest) Period() (start, end time.Time, ok bool) {
	return parsePeriod(c.StartDate, c.EndDate)
}

func (c *CreateOverrideRequest) ToModel(user string) model.Override {
	start, end, _ := c.Period()

	return model.Override{
		ID:        shared.NewID(),
		Name:      c.Name,
		StartDate: start,
		EndDate:   end,
		UnitIDs:   pq.StringArray(uniqueIDs(c.UnitIDs)),
		Price:     c.Price,
		Metadata:  gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateOverrideRequest struct {
	Name      string   `json:"name"       validate:"omitempty,max=255"`
	StartDate string   `json:"start_date" validate:"omitempty,isodate"`
	EndDate   string   `json:"end_date"   validate:"omitempty,isodate"`
	UnitIDs   []string `json:"unit_ids"   validate:"omitempty,min=1,dive,uuid"`
	Price     *float64 `json:"price"      validate:"omitempty,gte=0"`
}

func (u UpdateOverrideRequest) IsEmpty() bool {
	return u.Name == "" && u.StartDate == "" && u.EndDate == "" && len(u.UnitIDs) == 0 && u.Price == nil
}

// Apply merges the request into current and returns the columns that changed.
// ok is false when the merged period ends before it starts.
func (u UpdateOverrideRequest) Apply(current model.Override) (merged model.Override, fields map[string]any, ok bool) {
	merged = current
	fields = map[string]any{}

	if u.Name != "" {
		merged.Name = u.Name
		fields[model.FieldName] = u.Name
	}

	startDate := daterange.Format(current.StartDate)
	if u.StartDate != "" {
		startDate = u.StartDate
	}

	endDate := daterange.Format(current.EndDate)
	if u.EndDate != "" {
		endDate = u.EndDate
	}

	start, end, ok := parsePeriod(startDate, endDate)
	if !ok {
		return merged, fields, false
	}

	if u.StartDate != "" {
		merged.StartDate = start
		fields[model.FieldStartDate] = start
	}

	if u.EndDate != "" {
		merged.EndDate = end
		fields[model.FieldEndDate] = end
	}

	if len(u.UnitIDs) > 0 {
		merged.UnitIDs = pq.StringArray(uniqueIDs(u.UnitIDs))
		fields[model.FieldUnitIDs] = merged.UnitIDs
	}

	if u.Price != nil {
		merged.Price = *u.Price
		fields[model.FieldPrice] = *u.Price
	}

	return merged, fields, true
}

type OverrideResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	UnitIDs   []string `json:"unit_ids"`
	Price     float64  `json:"price"`
	gDto.Metadata
}

func (r *OverrideResponse) FromModel(model model.Override) {
	r.ID = model.ID
	r.Name = model.Name
	r.StartDate = daterange.Format(model.StartDate)
	r.EndDate = daterange.Format(model.EndDate)
	r.UnitIDs = append([]string{}, model.UnitIDs...)
	r.Price = model.Price
	r.Metadata.FromModel(model.Metadata)
}

type GetOverridesResponse struct {
	Overrides []OverrideResponse `json:"overrides"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetOverridesResponse) FromModels(models []model.Override, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Overrides = make([]OverrideResponse, len(models))
	for i, mod := range models {
		r.Overrides[i].FromModel(mod)
	}
}

func parsePeriod(startDate, endDate string) (start, end time.Time, ok bool) {
	start, err := daterange.Parse(startDate)
	if err != nil {
		return start, end, false
	}

	end, err = daterange.Parse(endDate)
	if err != nil {
		return start, end, false
	}

	return start, end, !end.Before(start)
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
