package permissions

import (
	_ "embed"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission marks one route pattern. Skip lets it through without a bearer token.
type Permission struct {
	Path   string `json:"path"`
	Method string `json:"method"`
	Skip   bool   `json:"skip"`
}

// PermissionData is the embedded route table. A top-level Skip disables authentication entirely.
type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]Permission
}

func routeKey(path, method string) string {
	return strings.ToUpper(method) + " " + path
}

// FindPermissions looks up a chi route pattern such as /v1/units/{id}.
// Unknown routes get the zero Permission, which requires a token.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	if r.index == nil {
		r.buildIndex()
	}

	return r.index[routeKey(path, method)]
}

func (r *PermissionData) buildIndex() {
	r.index = make(map[string]Permission, len(r.Endpoints))
	for _, endpoint := range r.Endpoints {
		r.index[routeKey(endpoint.Path, endpoint.Method)] = endpoint
	}
}

func Get() *PermissionData {
	var data PermissionData

	if err := json.Unmarshal(permissionsData, &data); err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	data.buildIndex()

	if data.Skip {
		log.Warn().Msg("Authentication is disabled for every route")
	}

	log.Info().Int("endpoints", len(data.Endpoints)).Msg("Loaded route permissions")

	return &data
}
