package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"rentdesk/config"
	"rentdesk/infras/ical"
	icalMocks "rentdesk/infras/ical/mocks"
	kafkaMocks "rentdesk/infras/kafka/mocks"
	"rentdesk/infras/otel/mocks"
	bookingMocks "rentdesk/internal/domains/booking/mocks"
	bookingModel "rentdesk/internal/domains/booking/model"
	calendarMocks "rentdesk/internal/domains/externalcalendar/mocks"
	"rentdesk/internal/domains/externalcalendar/model"
	"rentdesk/internal/domains/externalcalendar/model/dto"
	"rentdesk/internal/domains/externalcalendar/service"
	unitMocks "rentdesk/internal/domains/unit/mocks"
	unitModel "rentdesk/internal/domains/unit/model"
	cacheMocks "rentdesk/shared/cache/mocks"
	"rentdesk/shared/constant"
	"rentdesk/shared/daterange"
	gDto "rentdesk/shared/dto"
	"rentdesk/shared/failure"
	"rentdesk/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const feedURL = "https://www.airbnb.com/calendar/ical/123.ics?s=token"

type fixture struct {
	repo     *calendarMocks.MockExternalCalendar
	units    *unitMocks.MockUnit
	bookings *bookingMocks.MockBooking
	ical     *icalMocks.MockClient
	svc      service.ExternalCalendar
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
		repo:     calendarMocks.NewMockExternalCalendar(ctrl),
		units:    unitMocks.NewMockUnit(ctrl),
		bookings: bookingMocks.NewMockBooking(ctrl),
		ical:     icalMocks.NewMockClient(ctrl),
	}
	f.svc = service.New(f.repo, f.units, f.bookings, f.ical, mockKafka, cfg, mockCache, mocks.NewOtel())

	return f
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "operator")
}

func TestExternalCalendarService_Create(t *testing.T) {
	t.Run("registers the feed", func(t *testing.T) {
		f := setup(t)

		f.units.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c model.ExternalCalendar) error {
			assert.Equal(t, "u-1", c.UnitID)
			assert.Nil(t, c.LastSynced)

			return nil
		})

		id, err := f.svc.Create(userContext(), dto.CreateExternalCalendarRequest{UnitID: "u-1", Name: "Airbnb", URL: feedURL})

		require.NoError(t, err)
		assert.NotEmpty(t, id)
	})

	t.Run("url without .ics file", func(t *testing.T) {
		f := setup(t)

		_, err := f.svc.Create(userContext(), dto.CreateExternalCalendarRequest{UnitID: "u-1", Name: "Airbnb", URL: "https://example.com/calendar"})

		assert.True(t, failure.Is(err, http.StatusBadRequest))
	})

	t.Run("unknown unit", func(t *testing.T) {
		f := setup(t)

		f.units.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.Create(userContext(), dto.CreateExternalCalendarRequest{UnitID: "u-9", Name: "Airbnb", URL: feedURL})

		assert.True(t, failure.Is(err, http.StatusBadRequest))
	})
}

func TestExternalCalendarService_GetAll(t *testing.T) {
	f := setup(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.ExternalCalendar{
		{ID: "c-1", UnitID: "u-1", Name: "Airbnb", URL: feedURL},
		{ID: "c-2", UnitID: "u-gone", Name: "Booking.com", URL: feedURL},
	}, nil)
	f.units.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), unitModel.FieldID, unitModel.FieldName).
		Return([]unitModel.Unit{{ID: "u-1", Name: "Chalet 1"}}, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	require.NoError(t, err)
	require.Len(t, res.Calendars, 2)
	assert.Equal(t, "Chalet 1", res.Calendars[0].UnitName)
	assert.Equal(t, dto.UnitNameMissing, res.Calendars[1].UnitName)
	assert.Nil(t, res.Calendars[0].LastSynced)
}

func TestExternalCalendarService_Sync(t *testing.T) {
	registered := model.ExternalCalendar{ID: "c-1", UnitID: "u-1", Name: "Airbnb", URL: feedURL}
	today := timezone.Today()

	t.Run("closes upcoming nights and skips taken ones", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(registered, nil)
		f.ical.EXPECT().Fetch(gomock.Any(), feedURL).Return(ical.Calendar{Events: []ical.Event{
			{UID: "past", Start: today.AddDate(0, 0, -5), End: today.AddDate(0, 0, -3)},
			{UID: "next", Start: today.AddDate(0, 0, 10), End: today.AddDate(0, 0, 12)},
			{UID: "overlap", Start: today.AddDate(0, 0, 11), End: today.AddDate(0, 0, 12)},
		}}, nil)
		f.bookings.EXPECT().InsertClosures(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, drafts []bookingModel.Booking) ([]bookingModel.Booking, error) {
				require.Len(t, drafts, 2)

				for _, draft := range drafts {
					assert.True(t, draft.IsClosure())
					assert.Equal(t, "u-1", draft.UnitID)
					require.NotNil(t, draft.Notes)
					assert.Equal(t, "Synced from Airbnb", *draft.Notes)
				}

				return drafts[:1], nil
			})
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Contains(t, fields, model.FieldLastSynced)

				return nil
			})

		res, err := f.svc.Sync(userContext(), "c-1")

		require.NoError(t, err)
		assert.Equal(t, 3, res.Events)
		assert.Equal(t, []string{daterange.Format(today.AddDate(0, 0, 10))}, res.Closed)
		assert.Equal(t, 1, res.Skipped)
		assert.NotEmpty(t, res.LastSynced)
	})

	t.Run("feed is not a calendar", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(registered, nil)
		f.ical.EXPECT().Fetch(gomock.Any(), feedURL).Return(ical.Calendar{}, ical.ErrNotCalendar)

		_, err := f.svc.Sync(userContext(), "c-1")

		assert.True(t, failure.Is(err, http.StatusBadRequest))
	})

	t.Run("host unreachable", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(registered, nil)
		f.ical.EXPECT().Fetch(gomock.Any(), feedURL).Return(ical.Calendar{}, errors.New("dial tcp: timeout"))

		_, err := f.svc.Sync(userContext(), "c-1")

		assert.True(t, failure.Is(err, http.StatusBadGateway))
	})

	t.Run("not found", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.ExternalCalendar{}, nil)

		_, err := f.svc.Sync(userContext(), "c-9")

		assert.True(t, failure.Is(err, http.StatusNotFound))
	})
}
