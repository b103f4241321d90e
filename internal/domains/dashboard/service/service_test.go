package service_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"rentdesk/config"
	"rentdesk/infras/otel/mocks"
	bookingMocks "rentdesk/internal/domains/booking/mocks"
	bookingModel "rentdesk/internal/domains/booking/model"
	"rentdesk/internal/domains/dashboard/model/dto"
	"rentdesk/internal/domains/dashboard/service"
	unitMocks "rentdesk/internal/domains/unit/mocks"
	unitModel "rentdesk/internal/domains/unit/model"
	cacheMocks "rentdesk/shared/cache/mocks"
	"rentdesk/shared/constant"
	gDto "rentdesk/shared/dto"
	"rentdesk/shared/failure"
	"rentdesk/shared/scope"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	units    *unitMocks.MockUnit
	bookings *bookingMocks.MockBooking
	svc      service.Dashboard
}

func setup(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.App.Currency = "SAR"

	f := fixture{
		units:    unitMocks.NewMockUnit(ctrl),
		bookings: bookingMocks.NewMockBooking(ctrl),
	}
	f.svc = service.New(f.units, f.bookings, cfg, mockCache, mocks.NewOtel())

	return f
}

func day(value string) time.Time {
	parsed, _ := time.Parse(constant.DateFormat, value)

	return parsed
}

func october() dto.Query {
	return dto.Query{Scope: scope.All(), From: "2025-10-01", To: "2025-10-10"}
}

func (f fixture) expectData(units []unitModel.Unit, window, recent []bookingModel.Booking) {
	f.units.EXPECT().GetAll(gomock.Any(), gDto.QueryParams{}, gomock.Any()).Return(units, nil)
	f.bookings.EXPECT().GetAll(gomock.Any(), gDto.QueryParams{}, gomock.Any()).Return(window, nil)
	f.bookings.EXPECT().
		GetAll(gomock.Any(), gDto.QueryParams{Page: 1, Limit: dto.RecentLimit, SortBy: bookingModel.FieldCheckIn, SortDir: gDto.SortDirDesc}, gomock.Any()).
		Return(recent, nil)
}

func sampleData() ([]unitModel.Unit, []bookingModel.Booking) {
	units := []unitModel.Unit{
		{ID: "u-1", Name: "Chalet 1"},
		{ID: "u-2", Name: "Chalet 2"},
	}
	bookings := []bookingModel.Booking{
		{ID: "b-1", ClientName: "Sara", UnitID: "u-1", CheckIn: day("2025-10-02"), CheckOut: day("2025-10-05"), Status: bookingModel.StatusConfirmed, Price: 900},
		{ID: "b-2", ClientName: "Omar", UnitID: "u-2", CheckIn: day("2025-10-03"), CheckOut: day("2025-10-04"), Status: bookingModel.StatusCancelled, Price: 400},
	}

	return units, bookings
}

func TestDashboardService_Overview(t *testing.T) {
	t.Run("summarizes confirmed bookings", func(t *testing.T) {
		f := setup(t)
		units, bookings := sampleData()
		f.expectData(units, bookings, bookings)

		res, err := f.svc.Overview(context.Background(), october())

		require.NoError(t, err)
		assert.Equal(t, "all", res.Scope)
		assert.Equal(t, "SAR", res.Currency)
		assert.Equal(t, 1, res.Stats.TotalBookings)
		assert.InDelta(t, 900.0, res.Stats.TotalRevenue, 0.001)
		assert.Equal(t, 2, res.Stats.TotalUnits)
		assert.Equal(t, 3, res.Stats.NightsBooked)
		assert.Equal(t, 20, res.Stats.NightsAvailable)
		assert.Equal(t, "15.0%", res.Stats.Occupancy)
		require.Len(t, res.Chart, 1)
		assert.Equal(t, 1, res.Chart[0].Bookings)
		require.Len(t, res.Recent, 2)
		assert.Equal(t, "b-2", res.Recent[0].ID)
		assert.Equal(t, "2025-10-03", res.Recent[0].CheckIn)
	})

	t.Run("no units skips booking lookups", func(t *testing.T) {
		f := setup(t)
		f.units.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]unitModel.Unit{}, nil)

		res, err := f.svc.Overview(context.Background(), october())

		require.NoError(t, err)
		assert.Zero(t, res.Stats.TotalUnits)
		assert.Equal(t, "0.0%", res.Stats.Occupancy)
		assert.Empty(t, res.Recent)
	})

	t.Run("reversed window yields zero stats", func(t *testing.T) {
		f := setup(t)
		units, bookings := sampleData()
		f.expectData(units, nil, bookings)

		res, err := f.svc.Overview(context.Background(), dto.Query{Scope: scope.All(), From: "2025-10-10", To: "2025-10-01"})

		require.NoError(t, err)
		assert.Equal(t, 2, res.Stats.TotalUnits)
		assert.Zero(t, res.Stats.TotalBookings)
		assert.Zero(t, res.Stats.TotalRevenue)
		assert.Zero(t, res.Stats.NightsBooked)
		assert.Zero(t, res.Stats.NightsAvailable)
		assert.Equal(t, "0.0%", res.Stats.Occupancy)
		assert.Empty(t, res.Chart)
	})

	t.Run("repository error", func(t *testing.T) {
		f := setup(t)
		f.units.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

		_, err := f.svc.Overview(context.Background(), october())

		require.Error(t, err)
		assert.False(t, failure.Is(err, http.StatusBadRequest))
	})
}

func TestDashboardService_Export(t *testing.T) {
	f := setup(t)
	units, bookings := sampleData()
	f.expectData(units, bookings, bookings)

	report, err := f.svc.Export(context.Background(), october())

	require.NoError(t, err)
	assert.Equal(t, "dashboard_all_2025-10-01_2025-10-10.xlsx", report.FileName)

	book, err := excelize.OpenReader(bytes.NewReader(report.Content))
	require.NoError(t, err)

	defer book.Close()

	assert.Equal(t, []string{"Summary", "Monthly", "Bookings"}, book.GetSheetList())

	occupancy, err := book.GetCellValue("Summary", "B10")
	require.NoError(t, err)
	assert.Equal(t, "15.0%", occupancy)

	rows, err := book.GetRows("Bookings")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Client", rows[0][1])
	assert.Equal(t, "Chalet 1", rows[1][2])
	assert.Equal(t, "3", rows[1][5])
}
