// Package events defines the change notifications the services publish and
// the listener that keeps derived read caches in step with them.
package events

import (
	"context"

	"rentdesk/infras/kafka"
	"rentdesk/shared"
	"rentdesk/shared/cache"
	"rentdesk/shared/constant"

	"github.com/rs/zerolog/log"
)

type BookingChanged struct {
	BookingID string `json:"booking_id"`
	UnitID    string `json:"unit_id"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	Status    string `json:"status"`
}

type UnitChanged struct {
	UnitID  string `json:"unit_id"`
	GroupID string `json:"group_id,omitempty"`
	Date    string `json:"date,omitempty"`
}

type PricingChanged struct {
	OverrideID string   `json:"override_id,omitempty"`
	UnitIDs    []string `json:"unit_ids"`
}

type CampaignChanged struct {
	CampaignID  string `json:"campaign_id"`
	Recipients  int    `json:"recipients"`
	ScheduledAt string `json:"scheduled_at"`
	Attachment  string `json:"attachment,omitempty"`
}

// Publish sends messages in the background. Failures are logged and never reach the caller.
func Publish(ctx context.Context, client kafka.Client, topic string, messages ...kafka.Message) {
	if len(messages) == 0 {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := client.SendMessages(c, topic, messages...); err != nil {
			log.Error().Err(err).Str("topic", topic).Str("type", messages[0].Type).Msg("failed to publish change notification")
		}
	}()
}

// Notify drops this instance's calendar and dashboard caches for the messages before
// publishing them, so reads right after a write are fresh even when Kafka is disabled
// or the publish fails. Other instances catch up through the Listener.
func Notify(ctx context.Context, client kafka.Client, redisCache cache.RedisCache, topic string, messages ...kafka.Message) {
	eventTypes := make([]string, len(messages))
	for i, message := range messages {
		eventTypes[i] = message.Type
	}

	Invalidate(ctx, redisCache, eventTypes...)
	Publish(ctx, client, topic, messages...)
}

// Invalidate clears every derived cache prefix the event types affect, once each.
func Invalidate(ctx context.Context, redisCache cache.RedisCache, eventTypes ...string) {
	cleared := make(map[string]struct{})

	for _, eventType := range eventTypes {
		for _, prefix := range PrefixesFor(eventType) {
			if _, ok := cleared[prefix]; ok {
				continue
			}

			cleared[prefix] = struct{}{}
			shared.InvalidateCaches(ctx, redisCache, prefix)
		}
	}
}

// PrefixesFor lists the read caches built from the data an event type changes.
func PrefixesFor(eventType string) []string {
	switch eventType {
	case kafka.EventBookingCreated, kafka.EventBookingCancelled, kafka.EventUnitClosed, kafka.EventUnitChanged:
		return []string{constant.CacheKeyCalendar, constant.CacheKeyDashboard}
	case kafka.EventPricingChanged:
		return []string{constant.CacheKeyCalendar}
	default:
		return nil
	}
}
