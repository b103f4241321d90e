package events_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"rentdesk/config"
	"rentdesk/infras/kafka"
	kafkaMocks "rentdesk/infras/kafka/mocks"
	"rentdesk/infras/otel/mocks"
	"rentdesk/internal/events"
	cacheMocks "rentdesk/shared/cache/mocks"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func envelope(t *testing.T, eventType string) kafkaGo.Message {
	t.Helper()

	msg := kafka.Message{Key: "u-1", Type: eventType, Value: events.UnitChanged{UnitID: "u-1"}}

	out, err := msg.ToKafkaMessage()
	require.NoError(t, err)

	return out
}

func TestListenerHandle(t *testing.T) {
	cfg := &config.Config{}

	t.Run("booking events clear calendar and dashboard", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockCache := cacheMocks.NewMockRedisCache(ctrl)

		mockCache.EXPECT().Clear(gomock.Any(), "calendar*").Return(nil)
		mockCache.EXPECT().Clear(gomock.Any(), "dashboard*").Return(nil)

		listener := events.NewListener(kafkaMocks.NewMockClient(ctrl), mockCache, cfg, mocks.NewOtel())
		listener.Handle(context.Background(), envelope(t, kafka.EventBookingCreated))
	})

	t.Run("pricing events clear only the calendar", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockCache := cacheMocks.NewMockRedisCache(ctrl)

		mockCache.EXPECT().Clear(gomock.Any(), "calendar*").Return(nil)

		listener := events.NewListener(kafkaMocks.NewMockClient(ctrl), mockCache, cfg, mocks.NewOtel())
		listener.Handle(context.Background(), envelope(t, kafka.EventPricingChanged))
	})

	t.Run("campaign events are ignored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockCache := cacheMocks.NewMockRedisCache(ctrl)

		listener := events.NewListener(kafkaMocks.NewMockClient(ctrl), mockCache, cfg, mocks.NewOtel())
		listener.Handle(context.Background(), envelope(t, kafka.EventCampaignScheduled))
	})

	t.Run("undecodable messages are skipped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockCache := cacheMocks.NewMockRedisCache(ctrl)

		listener := events.NewListener(kafkaMocks.NewMockClient(ctrl), mockCache, cfg, mocks.NewOtel())

		assert.NotPanics(t, func() {
			listener.Handle(context.Background(), kafkaGo.Message{Value: []byte("not json")})
		})
	})
}

func TestListenerRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := kafkaMocks.NewMockClient(ctrl)
	cfg := &config.Config{}
	cfg.Kafka.ConsumerGroup = "rentdesk"
	cfg.Kafka.Topics.Booking = "rentdesk.bookings"

	mockClient.EXPECT().Consume(gomock.Any(), "rentdesk", "rentdesk.bookings", gomock.Any())

	events.NewListener(mockClient, cacheMocks.NewMockRedisCache(ctrl), cfg, mocks.NewOtel()).Run(context.Background())
}

func TestPublish(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := kafkaMocks.NewMockClient(ctrl)

	sent := make(chan kafka.Message, 1)

	mockClient.EXPECT().
		SendMessages(gomock.Any(), "rentdesk.bookings", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			sent <- messages[0]

			return nil
		})

	events.Publish(context.Background(), mockClient, "rentdesk.bookings", kafka.Message{
		Key:   "b-1",
		Type:  kafka.EventBookingCreated,
		Value: events.BookingChanged{BookingID: "b-1", UnitID: "u-1"},
	})

	select {
	case msg := <-sent:
		assert.Equal(t, kafka.EventBookingCreated, msg.Type)

		body, err := json.Marshal(msg.Value)
		require.NoError(t, err)
		assert.Contains(t, string(body), `"booking_id":"b-1"`)
	case <-time.After(time.Second):
		t.Fatal("message was not published")
	}
}

func TestPublishWithoutMessages(t *testing.T) {
	ctrl := gomock.NewController(t)

	assert.NotPanics(t, func() {
		events.Publish(context.Background(), kafkaMocks.NewMockClient(ctrl), "rentdesk.bookings")
	})
}

func TestNotify(t *testing.T) {
	tests := []struct {
		name     string
		types    []string
		expected []string
	}{
		{
			name:     "closures clear calendar and dashboard once",
			types:    []string{kafka.EventUnitClosed, kafka.EventUnitClosed},
			expected: []string{"calendar*", "dashboard*"},
		},
		{
			name:     "price changes clear only the calendar",
			types:    []string{kafka.EventPricingChanged},
			expected: []string{"calendar*"},
		},
		{
			name:  "campaign events clear nothing",
			types: []string{kafka.EventCampaignScheduled},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockCache := cacheMocks.NewMockRedisCache(ctrl)

			var cleared []string

			mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, pattern string) error {
				cleared = append(cleared, pattern)

				return nil
			}).AnyTimes()

			messages := make([]kafka.Message, len(tt.types))
			for i, eventType := range tt.types {
				messages[i] = kafka.Message{Key: "u-1", Type: eventType}
			}

			// the no-op client stands in for a deployment without brokers
			events.Notify(context.Background(), kafka.New(&config.Config{}), mockCache, "rentdesk.bookings", messages...)

			assert.Equal(t, tt.expected, cleared)
		})
	}
}
