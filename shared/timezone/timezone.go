package timezone

import (
	"time"

	"rentdesk/config"

	"github.com/rs/zerolog/log"
)

const defaultZone = "UTC"

var appLocation = time.UTC

func init() {
	appLocation = load(config.Get().App.Timezone)
}

// load resolves an IANA zone name. Anything unknown falls back to UTC.
func load(name string) *time.Location {
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC")

		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).
			Msg("Unknown timezone, falling back to UTC. Use IANA names like 'Asia/Riyadh'")

		return time.UTC
	}

	log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")

	return loc
}

// Now is the wall clock in the operator's timezone.
func Now() time.Time {
	return time.Now().In(appLocation)
}

// Today returns the operator's current calendar date as UTC midnight, the form
// every stay and pricing date takes.
func Today() time.Time {
	return DateOf(Now())
}

// DateOf drops the clock part of t, keeping the date as seen in t's own location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func Location() *time.Location {
	return appLocation
}

// Format renders t in the operator's timezone.
func Format(t time.Time, layout string) string {
	return t.In(appLocation).Format(layout)
}
