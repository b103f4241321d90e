package events

import (
	"context"

	"rentdesk/config"
	"rentdesk/infras/kafka"
	"rentdesk/infras/otel"
	"rentdesk/shared/cache"
	"rentdesk/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Listener drops calendar and dashboard caches when bookings, units or prices change,
// including changes made by other instances.
type Listener struct {
	client kafka.Client
	cache  cache.RedisCache
	cfg    *config.Config
	otel   otel.Otel
}

func NewListener(client kafka.Client, cache cache.RedisCache, cfg *config.Config, otel otel.Otel) *Listener {
	return &Listener{
		client: client,
		cache:  cache,
		cfg:    cfg,
		otel:   otel,
	}
}

// Run consumes the booking topic until ctx is done.
func (l *Listener) Run(ctx context.Context) {
	log.Info().Str("topic", l.cfg.Kafka.Topics.Booking).Msg("Starting cache invalidation listener")

	l.client.Consume(ctx, l.cfg.Kafka.ConsumerGroup, l.cfg.Kafka.Topics.Booking, l.Handle)
}

func (l *Listener) Handle(ctx context.Context, message kafkaGo.Message) {
	ctx, scope := l.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Handle")
	defer scope.End()

	envelope, err := kafka.DecodeEnvelope(message)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", string(message.Key)).Msg("skipping undecodable change notification")

		return
	}

	scope.SetAttribute("event.type", envelope.Type)

	Invalidate(ctx, l.cache, envelope.Type)
}
