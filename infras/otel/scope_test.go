package otel_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"rentdesk/infras/otel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestScopeRecordsAttributes(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "booking.Quote")
	scope := otel.NewScope(span)

	scope.SetAttributes(map[string]any{
		"booking.check_in":  time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC),
		"booking.nights":    3,
		"booking.total":     412.5,
		"booking.units":     []string{"u-1", "u-2"},
		"booking.confirmed": false,
	})
	scope.TraceIfError(errors.New("unit is already booked"))
	scope.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range ended[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}

	assert.Equal(t, "2025-10-03", attrs["booking.check_in"].AsString())
	assert.Equal(t, int64(3), attrs["booking.nights"].AsInt64())
	assert.InDelta(t, 412.5, attrs["booking.total"].AsFloat64(), 0.0001)
	assert.Equal(t, []string{"u-1", "u-2"}, attrs["booking.units"].AsStringSlice())
	assert.False(t, attrs["booking.confirmed"].AsBool())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "unit is already booked", ended[0].Status().Description)
}
