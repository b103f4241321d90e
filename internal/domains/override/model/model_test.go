package model_test

import (
	"testing"
	"time"

	"rentdesk/internal/domains/override/model"

	"github.com/stretchr/testify/assert"
)

func TestOverride_AppliesTo(t *testing.T) {
	override := model.Override{
		StartDate: time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		UnitIDs:   []string{"unit-1", "unit-2"},
	}

	assert.True(t, override.AppliesTo("unit-1", time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC)))
	assert.True(t, override.AppliesTo("unit-2", time.Date(2025, 12, 31, 22, 0, 0, 0, time.UTC)))
	assert.False(t, override.AppliesTo("unit-1", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, override.AppliesTo("unit-1", time.Date(2025, 12, 19, 0, 0, 0, 0, time.UTC)))
	assert.False(t, override.AppliesTo("unit-3", time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 12, override.Period().Days())
}
