package dto

import (
	"mime/multipart"
	"time"

	"rentdesk/internal/domains/campaign/model"
	"rentdesk/shared"
	gDto "rentdesk/shared/dto"
	gModel "rentdesk/shared/model"
	"rentdesk/shared/timezone"
)

// EstimateRequest selects recipients by contact id. An empty list means every contact.
type EstimateRequest struct {
	ContactIDs []string `json:"contact_ids" validate:"omitempty,dive,uuid"`
}

type EstimateResponse struct {
	Recipients       int     `json:"recipients"`
	CostPerRecipient float64 `json:"cost_per_recipient"`
	TotalCost        float64 `json:"total_cost"`
	Currency         string  `json:"currency"`
}

// ScheduleCampaignRequest arrives as a multipart form: the JSON payload plus an optional file.
type ScheduleCampaignRequest struct {
	Name        string                `json:"name"         validate:"required,max=255"`
	Message     string                `json:"message"      validate:"required"`
	ContactIDs  []string              `json:"contact_ids"  validate:"omitempty,dive,uuid"`
	ScheduledAt time.Time             `json:"scheduled_at" validate:"required"`
	Attachment  *multipart.FileHeader `json:"-"            swaggerignore:"true" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg application/pdf video/mp4"`
	File        multipart.File        `json:"-"            swaggerignore:"true" validate:"-"`
}

func (c *ScheduleCampaignRequest) AttachmentSize() int64 {
	if c.Attachment == nil {
		return 0
	}

	return c.Attachment.Size
}

func (c *ScheduleCampaignRequest) ToModel(user, currency string, contactIDs []string, cost float64) model.Campaign {
	return model.Campaign{
		ID:             shared.NewID(),
		Name:           c.Name,
		Message:        c.Message,
		ContactIDs:     contactIDs,
		RecipientCount: len(contactIDs),
		EstimatedCost:  cost,
		Currency:       currency,
		ScheduledAt:    c.ScheduledAt.UTC(),
		Status:         model.StatusScheduled,
		Metadata:       gModel.NewMetadata(user, timezone.Now()),
	}
}

type CampaignResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Message        string  `json:"message"`
	RecipientCount int     `json:"recipient_count"`
	EstimatedCost  float64 `json:"estimated_cost"`
	Currency       string  `json:"currency"`
	AttachmentURL  string  `json:"attachment_url,omitempty"`
	AttachmentName string  `json:"attachment_name,omitempty"`
	ScheduledAt    string  `json:"scheduled_at"`
	Status         string  `json:"status"`
	gDto.Metadata
}

func (r *CampaignResponse) FromModel(model model.Campaign) {
	r.ID = model.ID
	r.Name = model.Name
	r.Message = model.Message
	r.RecipientCount = model.RecipientCount
	r.EstimatedCost = model.EstimatedCost
	r.Currency = model.Currency
	r.AttachmentURL = model.AttachmentURL
	r.AttachmentName = model.AttachmentName
	r.ScheduledAt = timezone.Format(model.ScheduledAt, time.RFC3339)
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetCampaignsResponse struct {
	Campaigns []CampaignResponse `json:"campaigns"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetCampaignsResponse) FromModels(models []model.Campaign, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Campaigns = make([]CampaignResponse, len(models))
	for i, mod := range models {
		r.Campaigns[i].FromModel(mod)
	}
}
