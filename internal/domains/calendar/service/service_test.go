package service_test

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"rentdesk/config"
	kafkaMocks "rentdesk/infras/kafka/mocks"
	"rentdesk/infras/otel/mocks"
	bookingMocks "rentdesk/internal/domains/booking/mocks"
	bookingModel "rentdesk/internal/domains/booking/model"
	"rentdesk/internal/domains/calendar/model/dto"
	"rentdesk/internal/domains/calendar/service"
	overrideMocks "rentdesk/internal/domains/override/mocks"
	unitMocks "rentdesk/internal/domains/unit/mocks"
	unitModel "rentdesk/internal/domains/unit/model"
	cacheMocks "rentdesk/shared/cache/mocks"
	"rentdesk/shared/constant"
	"rentdesk/shared/failure"
	"rentdesk/shared/scope"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	units     *unitMocks.MockUnit
	bookings  *bookingMocks.MockBooking
	overrides *overrideMocks.MockOverride
	cleared   *clearLog
	svc       service.Calendar
}

// clearLog records the cache prefixes a call clears.
type clearLog struct {
	mu       sync.Mutex
	patterns []string
}

func (l *clearLog) record(_ context.Context, pattern string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.patterns = append(l.patterns, pattern)

	return nil
}

func (l *clearLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return slices.Clone(l.patterns)
}

func setup(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockKafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.App.Currency = "SAR"
	cfg.External.ICal.ProductID = "-//rentdesk//calendar//EN"

	f := fixture{
		units:     unitMocks.NewMockUnit(ctrl),
		bookings:  bookingMocks.NewMockBooking(ctrl),
		overrides: overrideMocks.NewMockOverride(ctrl),
		cleared:   &clearLog{},
	}

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).DoAndReturn(f.cleared.record).AnyTimes()
	f.svc = service.New(f.units, f.bookings, f.overrides, mockKafka, cfg, mockCache, mocks.NewOtel())

	return f
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "operator")
}

func day(value string) time.Time {
	parsed, _ := time.Parse(constant.DateFormat, value)

	return parsed
}

func TestCalendarService_Month(t *testing.T) {
	t.Run("grid with bookings and from prices", func(t *testing.T) {
		f := setup(t)

		units := []unitModel.Unit{
			{ID: "u-1", Name: "Chalet 1", BaseRate: 300},
			{ID: "u-2", Name: "Chalet 2", BaseRate: 500},
		}

		f.units.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(units, nil)
		f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]bookingModel.Booking{
			{ID: "b-1", UnitID: "u-1", ClientName: "Sara", CheckIn: day("2025-10-10"), CheckOut: day("2025-10-12"), Status: bookingModel.StatusConfirmed},
		}, nil)
		f.overrides.EXPECT().GetCovering(gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := f.svc.Month(context.Background(), dto.MonthQuery{Year: 2025, Month: time.October})

		require.NoError(t, err)
		assert.Equal(t, "October 2025", res.Label)
		assert.Equal(t, "SAR", res.Currency)
		require.Len(t, res.Weeks, 5)

		// October 2025 starts on a Wednesday.
		assert.Equal(t, "2025-09-28", res.Weeks[0][0].Date)
		assert.False(t, res.Weeks[0][0].InMonth)
		assert.Equal(t, "2025-11-01", res.Weeks[4][6].Date)

		// 2025-10-10 is the Friday of the second week.
		tenth := res.Weeks[1][5]
		assert.Equal(t, "2025-10-10", tenth.Date)
		require.Len(t, tenth.Bookings, 1)
		assert.Equal(t, "Sara", tenth.Bookings[0].ClientName)
		assert.Equal(t, 1, tenth.AvailableUnits)
		require.NotNil(t, tenth.FromPrice)
		assert.InDelta(t, 500, *tenth.FromPrice, 0)

		ninth := res.Weeks[1][4]
		assert.Empty(t, ninth.Bookings)
		require.NotNil(t, ninth.FromPrice)
		assert.InDelta(t, 300, *ninth.FromPrice, 0)
	})

	t.Run("group without units skips bookings", func(t *testing.T) {
		f := setup(t)

		f.units.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		f.overrides.EXPECT().GetCovering(gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := f.svc.Month(context.Background(), dto.MonthQuery{Year: 2026, Month: time.February, Scope: scope.Specific("g-1")})

		require.NoError(t, err)
		// February 2026 starts on a Sunday and has exactly four weeks.
		require.Len(t, res.Weeks, 4)
		assert.Nil(t, res.Weeks[0][0].FromPrice)
		assert.Equal(t, 0, res.Weeks[0][0].AvailableUnits)
	})
}

func TestCalendarService_AdjustPrices(t *testing.T) {
	price := 999.0

	t.Run("sets and clears in one write", func(t *testing.T) {
		f := setup(t)

		f.units.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]unitModel.Unit{{ID: "u-1"}, {ID: "u-2"}}, nil)
		f.units.EXPECT().SetSpecialPrices(gomock.Any(), day("2025-10-10"), gomock.Any(), "operator").DoAndReturn(
			func(_ context.Context, _ time.Time, prices map[string]*float64, _ string) ([]string, error) {
				require.Len(t, prices, 2)
				assert.InDelta(t, 999, *prices["u-1"], 1e-9)
				assert.Nil(t, prices["u-2"])

				return []string{"u-1", "u-2"}, nil
			})

		err := f.svc.AdjustPrices(userContext(), dto.AdjustPricesRequest{
			Date:   "2025-10-10",
			Prices: []dto.UnitPrice{{UnitID: "u-1", Price: &price}, {UnitID: "u-2"}},
		})

		require.NoError(t, err)
		assert.Contains(t, f.cleared.list(), "calendar*")
		assert.NotContains(t, f.cleared.list(), "dashboard*")
	})

	t.Run("unknown unit", func(t *testing.T) {
		f := setup(t)

		f.units.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]unitModel.Unit{{ID: "u-1"}}, nil)

		err := f.svc.AdjustPrices(userContext(), dto.AdjustPricesRequest{
			Date:   "2025-10-10",
			Prices: []dto.UnitPrice{{UnitID: "u-1", Price: &price}, {UnitID: "u-9", Price: &price}},
		})

		assert.True(t, failure.Is(err, http.StatusBadRequest))
	})

	t.Run("unit removed while adjusting", func(t *testing.T) {
		f := setup(t)

		f.units.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]unitModel.Unit{{ID: "u-1"}, {ID: "u-2"}}, nil)
		f.units.EXPECT().SetSpecialPrices(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]string{"u-1"}, nil)

		err := f.svc.AdjustPrices(userContext(), dto.AdjustPricesRequest{
			Date:   "2025-10-10",
			Prices: []dto.UnitPrice{{UnitID: "u-1", Price: &price}, {UnitID: "u-2", Price: &price}},
		})

		assert.True(t, failure.Is(err, http.StatusBadRequest))
	})

	t.Run("storage failure changes nothing it reports", func(t *testing.T) {
		f := setup(t)

		f.units.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]unitModel.Unit{{ID: "u-1"}}, nil)
		f.units.EXPECT().SetSpecialPrices(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("tx aborted"))

		err := f.svc.AdjustPrices(userContext(), dto.AdjustPricesRequest{
			Date:   "2025-10-10",
			Prices: []dto.UnitPrice{{UnitID: "u-1", Price: &price}},
		})

		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
		assert.Empty(t, f.cleared.list())
	})
}

func TestCalendarService_CloseUnits(t *testing.T) {
	t.Run("closes free units and skips taken ones", func(t *testing.T) {
		f := setup(t)

		f.units.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]unitModel.Unit{{ID: "u-1"}, {ID: "u-2"}}, nil)
		f.bookings.EXPECT().InsertClosures(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, drafts []bookingModel.Booking) ([]bookingModel.Booking, error) {
				require.Len(t, drafts, 2)

				for _, draft := range drafts {
					assert.True(t, draft.IsClosure())
					assert.Equal(t, day("2025-10-10"), draft.CheckIn)
					assert.Equal(t, day("2025-10-11"), draft.CheckOut)
					assert.Equal(t, "operator", draft.CreatedBy)
				}

				// u-2 was booked for the night by the time its lock was taken
				return drafts[:1], nil
			})

		res, err := f.svc.CloseUnits(userContext(), dto.CloseUnitsRequest{Date: "2025-10-10", UnitIDs: []string{"u-1", "u-2", "u-1"}})

		require.NoError(t, err)
		assert.Equal(t, []string{"u-1"}, res.Closed)
		assert.Equal(t, []string{"u-2"}, res.Skipped)
		assert.Contains(t, f.cleared.list(), "calendar*")
		assert.Contains(t, f.cleared.list(), "dashboard*")
	})

	t.Run("nothing to close", func(t *testing.T) {
		f := setup(t)

		f.units.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]unitModel.Unit{{ID: "u-1"}}, nil)
		f.bookings.EXPECT().InsertClosures(gomock.Any(), gomock.Any()).Return([]bookingModel.Booking{}, nil)

		res, err := f.svc.CloseUnits(userContext(), dto.CloseUnitsRequest{Date: "2025-10-10", UnitIDs: []string{"u-1"}})

		require.NoError(t, err)
		assert.Empty(t, res.Closed)
		assert.Equal(t, []string{"u-1"}, res.Skipped)
	})

	t.Run("unknown unit", func(t *testing.T) {
		f := setup(t)

		f.units.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]unitModel.Unit{{ID: "u-1"}}, nil)

		_, err := f.svc.CloseUnits(userContext(), dto.CloseUnitsRequest{Date: "2025-10-10", UnitIDs: []string{"u-1", "u-9"}})

		assert.True(t, failure.Is(err, http.StatusBadRequest))
	})
}

func TestCalendarService_Feed(t *testing.T) {
	t.Run("publishes held nights without guest names", func(t *testing.T) {
		f := setup(t)

		f.units.EXPECT().Get(gomock.Any(), gomock.Any(), unitModel.FieldID, unitModel.FieldName).
			Return(unitModel.Unit{ID: "u-1", Name: "Chalet 1"}, nil)
		f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]bookingModel.Booking{
			{ID: "b-1", ClientName: "Sara", UnitID: "u-1", CheckIn: day("2025-10-10"), CheckOut: day("2025-10-12"), Status: bookingModel.StatusConfirmed},
			{ID: "b-2", ClientName: "Omar", UnitID: "u-1", CheckIn: day("2025-10-12"), CheckOut: day("2025-10-13"), Status: bookingModel.StatusCancelled},
			{
				ID: "b-3", ClientID: bookingModel.ClientIDClosedUnit, ClientName: bookingModel.ClientNameClosedUnit,
				UnitID: "u-1", CheckIn: day("2025-10-20"), CheckOut: day("2025-10-21"), Status: bookingModel.StatusConfirmed,
			},
		}, nil)

		feed, err := f.svc.Feed(context.Background(), "u-1")

		require.NoError(t, err)
		assert.Equal(t, "u-1.ics", feed.FileName)

		doc := string(feed.Content)
		assert.True(t, strings.HasPrefix(doc, "BEGIN:VCALENDAR\r\n"))
		assert.Contains(t, doc, "X-WR-CALNAME:Chalet 1")
		assert.Contains(t, doc, "UID:b-1@rentdesk")
		assert.Contains(t, doc, "DTSTART;VALUE=DATE:20251010\r\nDTEND;VALUE=DATE:20251012")
		assert.Contains(t, doc, "UID:b-3@rentdesk")
		assert.Contains(t, doc, "SUMMARY:Closed")
		assert.NotContains(t, doc, "b-2@rentdesk")
		assert.NotContains(t, doc, "Sara")
		assert.Equal(t, 2, strings.Count(doc, "BEGIN:VEVENT"))
	})

	t.Run("unknown unit", func(t *testing.T) {
		f := setup(t)

		f.units.EXPECT().Get(gomock.Any(), gomock.Any(), unitModel.FieldID, unitModel.FieldName).Return(unitModel.Unit{}, nil)

		_, err := f.svc.Feed(context.Background(), "u-9")

		assert.True(t, failure.Is(err, http.StatusNotFound))
	})
}
