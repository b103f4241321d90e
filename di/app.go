package di

import (
	"rentdesk/internal/events"
	"rentdesk/transport/http"
)

// App is everything cmd/app runs: the API server and the cache invalidation listener.
type App struct {
	HTTP     *http.HTTP
	Listener *events.Listener
}
