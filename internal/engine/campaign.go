package engine

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	DefaultCostPerRecipient    = 0.195
	DefaultMaxMessageLength    = 500
	DefaultMaxAttachmentSizeMB = 10
	DefaultMinScheduleHours    = 48
)

var (
	ErrCampaignMessageEmpty    = errors.New("message is required")
	ErrCampaignMessageTooLong  = errors.New("message is too long")
	ErrCampaignAttachmentLarge = errors.New("attachment is too large")
	ErrCampaignScheduleTooSoon = errors.New("schedule time is too soon")
	ErrCampaignNoRecipients    = errors.New("campaign has no recipients")
)

// EstimateCost prices a campaign, rounded to cents. Negative or non-finite input costs nothing.
func EstimateCost(recipients int, perRecipient float64) float64 {
	perRecipient = finite(perRecipient)
	if recipients <= 0 || perRecipient <= 0 {
		return 0
	}

	return math.Round(float64(recipients)*perRecipient*100) / 100
}

// CampaignRules are the limits a campaign must satisfy before it is scheduled.
type CampaignRules struct {
	MaxMessageLength   int
	MaxAttachmentBytes int64
	MinLead            time.Duration
}

func DefaultCampaignRules() CampaignRules {
	return CampaignRules{
		MaxMessageLength:   DefaultMaxMessageLength,
		MaxAttachmentBytes: DefaultMaxAttachmentSizeMB << 20,
		MinLead:            DefaultMinScheduleHours * time.Hour,
	}
}

// Check validates a campaign draft against the rules. Message length counts characters, not bytes.
func (r CampaignRules) Check(message string, recipients int, attachmentSize int64, scheduledAt, now time.Time) error {
	if strings.TrimSpace(message) == "" {
		return ErrCampaignMessageEmpty
	}

	if length := utf8.RuneCountInString(message); r.MaxMessageLength > 0 && length > r.MaxMessageLength {
		return fmt.Errorf("%w: %d characters, at most %d allowed", ErrCampaignMessageTooLong, length, r.MaxMessageLength)
	}

	if recipients <= 0 {
		return ErrCampaignNoRecipients
	}

	if r.MaxAttachmentBytes > 0 && attachmentSize > r.MaxAttachmentBytes {
		return fmt.Errorf("%w: at most %d MB allowed", ErrCampaignAttachmentLarge, r.MaxAttachmentBytes>>20)
	}

	if earliest := now.Add(r.MinLead); scheduledAt.Before(earliest) {
		return fmt.Errorf("%w: must be at least %s from now", ErrCampaignScheduleTooSoon, r.MinLead)
	}

	return nil
}
