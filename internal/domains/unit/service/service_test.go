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
	groupMocks "rentdesk/internal/domains/group/mocks"
	unitMocks "rentdesk/internal/domains/unit/mocks"
	"rentdesk/internal/domains/unit/model"
	"rentdesk/internal/domains/unit/model/dto"
	"rentdesk/internal/domains/unit/service"
	cacheMocks "rentdesk/shared/cache/mocks"
	"rentdesk/shared/constant"
	gDto "rentdesk/shared/dto"
	"rentdesk/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo   *unitMocks.MockUnit
	groups *groupMocks.MockGroup
	svc    service.Unit
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
		repo:   unitMocks.NewMockUnit(ctrl),
		groups: groupMocks.NewMockGroup(ctrl),
	}
	f.svc = service.New(f.repo, f.groups, mockKafka, cfg, mockCache, mocks.NewOtel())

	return f
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "operator")
}

func validRequest() dto.CreateUnitRequest {
	return dto.CreateUnitRequest{
		Name:    "Chalet 1",
		GroupID: "g-1",
		Type:    model.TypeChalet,
		Pricing: dto.Pricing{
			BaseRate:      300,
			WeekdayPrices: dto.WeekdayPrices{Friday: 450},
			SpecialDates:  []dto.SpecialDate{{Date: "2025-12-31", Price: 900}},
		},
	}
}

func TestUnitService_Create(t *testing.T) {
	t.Run("stores pricing and defaults status", func(t *testing.T) {
		f := setup(t)

		f.groups.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u model.Unit) error {
			assert.Equal(t, model.StatusActive, u.Status)
			assert.InDelta(t, 450, u.FridayPrice, 0)
			assert.Equal(t, model.SpecialDates{{Date: "2025-12-31", Price: 900}}, u.SpecialDates)

			return nil
		})

		id, err := f.svc.Create(userContext(), validRequest())

		require.NoError(t, err)
		assert.NotEmpty(t, id)
	})

	t.Run("unknown group", func(t *testing.T) {
		f := setup(t)

		f.groups.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.Create(userContext(), validRequest())

		assert.True(t, failure.Is(err, http.StatusBadRequest))
	})
}

func TestUnitService_GetAll(t *testing.T) {
	f := setup(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Unit{{ID: "u-1", BaseRate: 300}}, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	require.NoError(t, err)
	require.Len(t, res.Units, 1)
	assert.InDelta(t, 300, res.Units[0].Pricing.BaseRate, 0)
	assert.NotNil(t, res.Units[0].Pricing.SpecialDates)
}

func TestUnitService_Update(t *testing.T) {
	t.Run("moving to a missing group", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.groups.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Update(userContext(), dto.UpdateUnitRequest{GroupID: "g-9"}, "u-1")

		assert.True(t, failure.Is(err, http.StatusBadRequest))
	})

	t.Run("zero price is written", func(t *testing.T) {
		f := setup(t)
		zero := 0.0

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, &zero, fields["monday_price"])

				return nil
			})

		assert.NoError(t, f.svc.Update(userContext(), dto.UpdateUnitRequest{MondayPrice: &zero}, "u-1"))
	})
}

func TestUnitService_SetSpecialPrice(t *testing.T) {
	t.Run("pins a date for the unit", func(t *testing.T) {
		f := setup(t)
		price := 650.0

		f.repo.EXPECT().SetSpecialPrices(gomock.Any(), gomock.Any(), gomock.Any(), "operator").DoAndReturn(
			func(_ context.Context, day time.Time, prices map[string]*float64, _ string) ([]string, error) {
				assert.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), day)
				require.Contains(t, prices, "u-1")
				assert.InDelta(t, 650, *prices["u-1"], 1e-9)

				return []string{"u-1"}, nil
			})

		assert.NoError(t, f.svc.SetSpecialPrice(userContext(), dto.SpecialPriceRequest{Date: "2025-10-01", Price: &price}, "u-1"))
	})

	t.Run("nil price clears the date", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().SetSpecialPrices(gomock.Any(), gomock.Any(), map[string]*float64{"u-1": nil}, "operator").
			Return([]string{"u-1"}, nil)

		assert.NoError(t, f.svc.SetSpecialPrice(userContext(), dto.SpecialPriceRequest{Date: "2025-10-03"}, "u-1"))
	})

	t.Run("unknown unit", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().SetSpecialPrices(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]string{}, nil)

		err := f.svc.SetSpecialPrice(userContext(), dto.SpecialPriceRequest{Date: "2025-10-03"}, "u-9")

		assert.True(t, failure.Is(err, http.StatusNotFound))
	})

	t.Run("bad date", func(t *testing.T) {
		f := setup(t)

		err := f.svc.SetSpecialPrice(userContext(), dto.SpecialPriceRequest{Date: "03/10/2025"}, "u-1")

		assert.True(t, failure.Is(err, http.StatusBadRequest))
	})
}

func TestUnitService_Delete(t *testing.T) {
	t.Run("cascades", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().DeleteCascade(gomock.Any(), "u-1").Return(nil)

		assert.NoError(t, f.svc.Delete(userContext(), "u-1"))
	})

	t.Run("not found", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Delete(userContext(), "u-1")

		assert.True(t, failure.Is(err, http.StatusNotFound))
	})
}
