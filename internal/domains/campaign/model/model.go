package model

import (
	"time"

	"rentdesk/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "campaigns"
	EntityName = "campaign"

	FieldID          = "id"
	FieldName        = "name"
	FieldStatus      = "status"
	FieldScheduledAt = "scheduled_at"
)

const (
	StatusScheduled = "Scheduled"
	StatusCancelled = "Cancelled"
	StatusSent      = "Sent"
)

type Campaign struct {
	ID             string         `db:"id"`
	Name           string         `db:"name"`
	Message        string         `db:"message"`
	ContactIDs     pq.StringArray `db:"contact_ids"`
	RecipientCount int            `db:"recipient_count"`
	EstimatedCost  float64        `db:"estimated_cost"`
	Currency       string         `db:"currency"`
	AttachmentURL  string         `db:"attachment_url"`
	AttachmentName string         `db:"attachment_name"`
	ScheduledAt    time.Time      `db:"scheduled_at"`
	Status         string         `db:"status"`
	model.Metadata
}

func (c Campaign) HasAttachment() bool {
	return c.AttachmentURL != ""
}
