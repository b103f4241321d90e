package ical

//go:generate go run go.uber.org/mock/mockgen -source=./ical.go -destination=./mocks/ical_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"rentdesk/config"
	"rentdesk/infras/otel"
	"rentdesk/shared/constant"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrURL      = "url"
	otelAttrEvents   = "events"
	retryInterval    = 200 * time.Millisecond
	bytesPerMegabyte = 1 << 20
)

var (
	ErrNotCalendar = errors.New("response is not an iCalendar document")
	ErrTooLarge    = errors.New("calendar exceeds the size limit")
)

// Client downloads external calendars published as .ics feeds.
type Client interface {
	Fetch(ctx context.Context, url string) (Calendar, error)
}

type clientImpl struct {
	http     *http.Client
	maxTries uint
	maxBody  int64
	otel     otel.Otel
}

func New(config *config.Config, otel otel.Otel) Client {
	return &clientImpl{
		http:     &http.Client{Timeout: time.Duration(config.External.ICal.TimeoutSeconds) * time.Second},
		maxTries: max(config.External.ICal.MaxTries, 1),
		maxBody:  max(config.External.ICal.MaxBodyMB, 1) * bytesPerMegabyte,
		otel:     otel,
	}
}

// Fetch downloads and parses url. Network failures and 5xx answers are retried with
// exponential backoff; 4xx answers and documents that are not calendars are not.
func (c *clientImpl) Fetch(ctx context.Context, url string) (cal Calendar, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelICalScopeName, constant.OtelICalScopeName+".Fetch")
	defer scope.End()
	defer scope.TraceIfError(err)

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = retryInterval

	body, err := backoff.Retry(ctx, func() ([]byte, error) {
		return c.download(ctx, url)
	},
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(c.maxTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Warn().Err(err).Str("url", url).Dur("retryIn", next).Msg("retrying calendar download")
		}),
	)
	if err != nil {
		log.Error().Err(err).Str("url", url).Msg("failed to download calendar")

		return cal, fmt.Errorf("failed to download calendar: %w", err)
	}

	cal, err = Parse(body)
	if err != nil {
		return cal, err
	}

	scope.SetAttributes(map[string]any{
		otelAttrURL:    url,
		otelAttrEvents: len(cal.Events),
	})

	return cal, nil
}

func (c *clientImpl) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("invalid calendar url: %w", err))
	}

	req.Header.Set("Accept", "text/calendar")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calendar request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("calendar host answered %d", resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, backoff.Permanent(fmt.Errorf("calendar host answered %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read calendar: %w", err)
	}

	if int64(len(body)) > c.maxBody {
		return nil, backoff.Permanent(ErrTooLarge)
	}

	return body, nil
}
