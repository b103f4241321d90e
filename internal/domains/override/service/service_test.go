package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"rentdesk/config"
	kafkaMocks "rentdesk/infras/kafka/mocks"
	"rentdesk/infras/otel/mocks"
	overrideMocks "rentdesk/internal/domains/override/mocks"
	"rentdesk/internal/domains/override/model"
	"rentdesk/internal/domains/override/model/dto"
	"rentdesk/internal/domains/override/service"
	unitMocks "rentdesk/internal/domains/unit/mocks"
	cacheMocks "rentdesk/shared/cache/mocks"
	"rentdesk/shared/constant"
	gDto "rentdesk/shared/dto"
	"rentdesk/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	unitA = "0199a0c4-0000-7000-8000-000000000001"
	unitB = "0199a0c4-0000-7000-8000-000000000002"
)

type fixture struct {
	repo  *overrideMocks.MockOverride
	units *unitMocks.MockUnit
	svc   service.Override
}

func setup(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockKafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f := fixture{
		repo:  overrideMocks.NewMockOverride(ctrl),
		units: unitMocks.NewMockUnit(ctrl),
	}
	f.svc = service.New(f.repo, f.units, mockKafka, cfg, mockCache, mocks.NewOtel())

	return f
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "operator")
}

func TestOverrideService_Create(t *testing.T) {
	t.Run("creates with deduplicated units", func(t *testing.T) {
		f := setup(t)

		f.units.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, o model.Override) error {
			assert.Equal(t, pq.StringArray{unitA, unitB}, o.UnitIDs)
			assert.Equal(t, time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC), o.StartDate)

			return nil
		})

		id, err := f.svc.Create(userContext(), dto.CreateOverrideRequest{
			Name:      "Winter holiday",
			StartDate: "2025-12-20",
			EndDate:   "2025-12-31",
			UnitIDs:   []string{unitA, unitB, unitA},
			Price:     800,
		})

		require.NoError(t, err)
		assert.NotEmpty(t, id)
	})

	t.Run("single day period is valid", func(t *testing.T) {
		f := setup(t)

		f.units.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.Create(userContext(), dto.CreateOverrideRequest{
			Name: "National day", StartDate: "2025-09-23", EndDate: "2025-09-23", UnitIDs: []string{unitA}, Price: 700,
		})

		assert.NoError(t, err)
	})

	t.Run("end before start", func(t *testing.T) {
		f := setup(t)

		_, err := f.svc.Create(userContext(), dto.CreateOverrideRequest{
			Name: "Broken", StartDate: "2025-12-31", EndDate: "2025-12-20", UnitIDs: []string{unitA},
		})

		assert.ErrorIs(t, err, failure.InvalidDateRange)
	})

	t.Run("unknown unit", func(t *testing.T) {
		f := setup(t)

		f.units.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)

		_, err := f.svc.Create(userContext(), dto.CreateOverrideRequest{
			Name: "Winter", StartDate: "2025-12-20", EndDate: "2025-12-31", UnitIDs: []string{unitA, unitB},
		})

		assert.True(t, failure.Is(err, http.StatusBadRequest))
	})
}

func TestOverrideService_Update(t *testing.T) {
	current := model.Override{
		ID:        "o-1",
		Name:      "Winter",
		StartDate: time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		UnitIDs:   pq.StringArray{unitA},
		Price:     800,
	}

	t.Run("moving the end before the start", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)

		err := f.svc.Update(userContext(), dto.UpdateOverrideRequest{EndDate: "2025-12-01"}, "o-1")

		assert.ErrorIs(t, err, failure.InvalidDateRange)
	})

	t.Run("price only", func(t *testing.T) {
		f := setup(t)
		price := 950.0

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.InDelta(t, 950, fields[model.FieldPrice], 0)
				assert.NotContains(t, fields, model.FieldUnitIDs)
				assert.Equal(t, "operator", fields[constant.FieldModifiedBy])

				return nil
			})

		assert.NoError(t, f.svc.Update(userContext(), dto.UpdateOverrideRequest{Price: &price}, "o-1"))
	})

	t.Run("not found", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Override{}, nil)

		err := f.svc.Update(userContext(), dto.UpdateOverrideRequest{Name: "x"}, "o-9")

		assert.True(t, failure.Is(err, http.StatusNotFound))
	})
}

func TestOverrideService_Delete(t *testing.T) {
	f := setup(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Override{ID: "o-1"}, nil)
	f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

	assert.NoError(t, f.svc.Delete(userContext(), "o-1"))
}

func TestOverrideService_ClearsCalendarBeforeReturning(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	repo := overrideMocks.NewMockOverride(ctrl)
	units := unitMocks.NewMockUnit(ctrl)

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), "calendar*").Return(nil)
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Not("calendar*")).Return(nil).AnyTimes()
	mockKafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	units.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(repo, units, mockKafka, cfg, mockCache, mocks.NewOtel())

	_, err := svc.Create(userContext(), dto.CreateOverrideRequest{
		Name:      "Eid",
		StartDate: "2026-03-19",
		EndDate:   "2026-03-22",
		UnitIDs:   []string{unitA},
		Price:     900,
	})

	require.NoError(t, err)
}
