// Package scope models the operator's group selection: every group, or exactly one.
package scope

import (
	"net/http"
	"strings"

	"rentdesk/shared/constant"
	"rentdesk/shared/dto"
)

const allSentinel = "all"

// GroupScope is either All or Specific(id). The zero value is All.
type GroupScope struct {
	groupID string
}

func All() GroupScope {
	return GroupScope{}
}

// Specific scopes to one group. An empty id degrades to All.
func Specific(groupID string) GroupScope {
	return GroupScope{groupID: strings.TrimSpace(groupID)}
}

// Parse reads the wire form: "" or "all" (any case) is All, anything else a group id.
func Parse(raw string) GroupScope {
	raw = strings.TrimSpace(raw)
	if strings.EqualFold(raw, allSentinel) {
		return All()
	}

	return Specific(raw)
}

func FromRequest(r *http.Request) GroupScope {
	return Parse(r.URL.Query().Get(constant.RequestParamGroupID))
}

func (s GroupScope) IsAll() bool {
	return s.groupID == ""
}

func (s GroupScope) GroupID() (string, bool) {
	return s.groupID, s.groupID != ""
}

// Includes reports whether a record owned by groupID is visible in this scope.
func (s GroupScope) Includes(groupID string) bool {
	return s.IsAll() || s.groupID == groupID
}

func (s GroupScope) String() string {
	if s.IsAll() {
		return allSentinel
	}

	return s.groupID
}

// Filter narrows a query on field to the scoped group. All adds no condition.
func (s GroupScope) Filter(field, table string) dto.FilterGroup {
	if s.IsAll() {
		return dto.FilterGroup{}
	}

	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: field, Value: s.groupID, Operator: dto.FilterOperatorEq, Table: table},
		},
	}
}

func (s GroupScope) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *GroupScope) UnmarshalText(text []byte) error {
	*s = Parse(string(text))

	return nil
}
