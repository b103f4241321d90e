package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"testing"
	"time"

	"rentdesk/config"
	kafkaMocks "rentdesk/infras/kafka/mocks"
	"rentdesk/infras/otel/mocks"
	bookingMocks "rentdesk/internal/domains/booking/mocks"
	"rentdesk/internal/domains/booking/model"
	"rentdesk/internal/domains/booking/model/dto"
	"rentdesk/internal/domains/booking/repository"
	"rentdesk/internal/domains/booking/service"
	contactMocks "rentdesk/internal/domains/contact/mocks"
	contactModel "rentdesk/internal/domains/contact/model"
	overrideMocks "rentdesk/internal/domains/override/mocks"
	overrideModel "rentdesk/internal/domains/override/model"
	unitMocks "rentdesk/internal/domains/unit/mocks"
	unitModel "rentdesk/internal/domains/unit/model"
	cacheMocks "rentdesk/shared/cache/mocks"
	"rentdesk/shared/constant"
	gDto "rentdesk/shared/dto"
	"rentdesk/shared/failure"
	"rentdesk/shared/scope"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const unitID = "0199a0c4-0000-7000-8000-000000000001"

type fixture struct {
	repo      *bookingMocks.MockBooking
	units     *unitMocks.MockUnit
	overrides *overrideMocks.MockOverride
	contacts  *contactMocks.MockContact
	cleared   *clearLog
	svc       service.Booking
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
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockKafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.App.Currency = "SAR"

	f := fixture{
		repo:      bookingMocks.NewMockBooking(ctrl),
		units:     unitMocks.NewMockUnit(ctrl),
		overrides: overrideMocks.NewMockOverride(ctrl),
		contacts:  contactMocks.NewMockContact(ctrl),
		cleared:   &clearLog{},
	}

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).DoAndReturn(f.cleared.record).AnyTimes()
	f.svc = service.New(f.repo, f.units, f.overrides, f.contacts, mockKafka, cfg, mockCache, mocks.NewOtel())

	return f
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "operator")
}

func day(value string) time.Time {
	parsed, _ := time.Parse(constant.DateFormat, value)

	return parsed
}

func chalet() unitModel.Unit {
	return unitModel.Unit{ID: unitID, Name: "Chalet 1", BaseRate: 300, FridayPrice: 450}
}

// 2025-10-02 is a Thursday, so the stay covers Thursday, Friday and Saturday.
func request(email string) dto.CreateBookingRequest {
	paid := 100.0

	return dto.CreateBookingRequest{
		ClientName:  "Sara",
		ClientEmail: email,
		ClientPhone: "0500000000",
		UnitID:      unitID,
		CheckIn:     "2025-10-02",
		CheckOut:    "2025-10-05",
		PaidAmount:  &paid,
	}
}

func TestBookingService_Create(t *testing.T) {
	t.Run("new email creates a contact with the booking", func(t *testing.T) {
		f := setup(t)

		f.units.EXPECT().Get(gomock.Any(), gomock.Any()).Return(chalet(), nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		f.overrides.EXPECT().GetCovering(gomock.Any(), gomock.Any()).Return(nil, nil)
		f.contacts.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		f.repo.EXPECT().CreateWithContact(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, b model.Booking, c *contactModel.Contact) error {
				require.NotNil(t, c)
				assert.Equal(t, c.ID, b.ClientID)
				assert.Equal(t, "sara@example.com", c.Email)
				assert.Equal(t, contactModel.PaymentPending, c.Payment)
				assert.Equal(t, "operator", c.CreatedBy)
				assert.Equal(t, model.StatusPending, b.Status)
				assert.InDelta(t, 300+450+300, b.Price, 1e-9)

				return nil
			})

		res, err := f.svc.Create(userContext(), request(" Sara@Example.com "))

		require.NoError(t, err)
		assert.Equal(t, 3, res.Nights)
		assert.Equal(t, contactModel.PaymentPending, res.PaymentStatus)
		assert.Subset(t, f.cleared.list(), []string{"calendar*", "dashboard*"})
	})

	t.Run("known email links the existing contact", func(t *testing.T) {
		f := setup(t)

		f.units.EXPECT().Get(gomock.Any(), gomock.Any()).Return(chalet(), nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		f.overrides.EXPECT().GetCovering(gomock.Any(), gomock.Any()).Return(nil, nil)
		f.contacts.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]contactModel.Contact{{ID: "c-1", Email: "sara@example.com"}}, nil)
		f.repo.EXPECT().CreateWithContact(gomock.Any(), gomock.Any(), nil).DoAndReturn(
			func(_ context.Context, b model.Booking, _ *contactModel.Contact) error {
				assert.Equal(t, "c-1", b.ClientID)

				return nil
			})

		_, err := f.svc.Create(userContext(), request("sara@example.com"))

		assert.NoError(t, err)
	})

	t.Run("guest without email is not stored as a contact", func(t *testing.T) {
		f := setup(t)

		f.units.EXPECT().Get(gomock.Any(), gomock.Any()).Return(chalet(), nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		f.overrides.EXPECT().GetCovering(gomock.Any(), gomock.Any()).Return(nil, nil)
		f.repo.EXPECT().CreateWithContact(gomock.Any(), gomock.Any(), nil).DoAndReturn(
			func(_ context.Context, b model.Booking, _ *contactModel.Contact) error {
				assert.NotEmpty(t, b.ClientID)

				return nil
			})

		_, err := f.svc.Create(userContext(), request(""))

		assert.NoError(t, err)
	})

	t.Run("overrides price the covered nights", func(t *testing.T) {
		f := setup(t)

		f.units.EXPECT().Get(gomock.Any(), gomock.Any()).Return(chalet(), nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		f.overrides.EXPECT().GetCovering(gomock.Any(), gomock.Any()).Return([]overrideModel.Override{{
			ID: "o-1", StartDate: day("2025-10-03"), EndDate: day("2025-10-03"), UnitIDs: pq.StringArray{unitID}, Price: 1000,
		}}, nil)
		f.repo.EXPECT().CreateWithContact(gomock.Any(), gomock.Any(), nil).DoAndReturn(
			func(_ context.Context, b model.Booking, _ *contactModel.Contact) error {
				assert.InDelta(t, 300+1000+300, b.Price, 1e-9)

				return nil
			})

		_, err := f.svc.Create(userContext(), request(""))

		assert.NoError(t, err)
	})

	t.Run("double booking conflicts", func(t *testing.T) {
		f := setup(t)

		f.units.EXPECT().Get(gomock.Any(), gomock.Any()).Return(chalet(), nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{{
			ID: "b-1", UnitID: unitID, CheckIn: day("2025-10-04"), CheckOut: day("2025-10-06"), Status: model.StatusConfirmed,
		}}, nil)

		_, err := f.svc.Create(userContext(), request(""))

		assert.True(t, failure.Is(err, http.StatusConflict))
	})

	t.Run("losing a race for the same nights conflicts", func(t *testing.T) {
		f := setup(t)

		f.units.EXPECT().Get(gomock.Any(), gomock.Any()).Return(chalet(), nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		f.overrides.EXPECT().GetCovering(gomock.Any(), gomock.Any()).Return(nil, nil)
		f.repo.EXPECT().CreateWithContact(gomock.Any(), gomock.Any(), nil).Return(repository.ErrUnitTaken)

		_, err := f.svc.Create(userContext(), request(""))

		assert.True(t, failure.Is(err, http.StatusConflict))
	})

	t.Run("contact created concurrently is linked on retry", func(t *testing.T) {
		f := setup(t)

		f.units.EXPECT().Get(gomock.Any(), gomock.Any()).Return(chalet(), nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		f.overrides.EXPECT().GetCovering(gomock.Any(), gomock.Any()).Return(nil, nil)
		gomock.InOrder(
			f.contacts.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil),
			f.repo.EXPECT().CreateWithContact(gomock.Any(), gomock.Any(), gomock.Not(gomock.Nil())).
				Return(fmt.Errorf("failed to create booking with contact: %w", &pq.Error{Code: "23505"})),
			f.contacts.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
				Return([]contactModel.Contact{{ID: "c-7", Email: "sara@example.com"}}, nil),
			f.repo.EXPECT().CreateWithContact(gomock.Any(), gomock.Any(), nil).DoAndReturn(
				func(_ context.Context, b model.Booking, _ *contactModel.Contact) error {
					assert.Equal(t, "c-7", b.ClientID)

					return nil
				}),
		)

		res, err := f.svc.Create(userContext(), request("sara@example.com"))

		require.NoError(t, err)
		assert.Equal(t, "c-7", res.ClientID)
	})

	t.Run("contact still missing after the email clash conflicts", func(t *testing.T) {
		f := setup(t)

		f.units.EXPECT().Get(gomock.Any(), gomock.Any()).Return(chalet(), nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		f.overrides.EXPECT().GetCovering(gomock.Any(), gomock.Any()).Return(nil, nil)
		f.contacts.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
		f.repo.EXPECT().CreateWithContact(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&pq.Error{Code: "23505"})

		_, err := f.svc.Create(userContext(), request("sara@example.com"))

		assert.True(t, failure.Is(err, http.StatusConflict))
	})

	t.Run("cancelled bookings do not block", func(t *testing.T) {
		f := setup(t)

		f.units.EXPECT().Get(gomock.Any(), gomock.Any()).Return(chalet(), nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{{
			ID: "b-1", UnitID: unitID, CheckIn: day("2025-10-02"), CheckOut: day("2025-10-05"), Status: model.StatusCancelled,
		}}, nil)
		f.overrides.EXPECT().GetCovering(gomock.Any(), gomock.Any()).Return(nil, nil)
		f.repo.EXPECT().CreateWithContact(gomock.Any(), gomock.Any(), nil).Return(nil)

		_, err := f.svc.Create(userContext(), request(""))

		assert.NoError(t, err)
	})

	t.Run("check-out not after check-in", func(t *testing.T) {
		f := setup(t)

		req := request("")
		req.CheckOut = req.CheckIn

		_, err := f.svc.Create(userContext(), req)

		assert.True(t, failure.Is(err, http.StatusBadRequest))
	})

	t.Run("unknown unit", func(t *testing.T) {
		f := setup(t)

		f.units.EXPECT().Get(gomock.Any(), gomock.Any()).Return(unitModel.Unit{}, nil)

		_, err := f.svc.Create(userContext(), request(""))

		assert.True(t, failure.Is(err, http.StatusBadRequest))
	})
}

func TestBookingService_GetAll(t *testing.T) {
	t.Run("group without units is empty", func(t *testing.T) {
		f := setup(t)

		f.units.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, dto.ListFilter{Scope: scope.Specific("g-1")})

		require.NoError(t, err)
		assert.Empty(t, res.Bookings)
		assert.NotNil(t, res.Bookings)
		assert.Equal(t, 0, res.TotalData)
	})

	t.Run("group scope narrows to its units", func(t *testing.T) {
		f := setup(t)

		f.units.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]unitModel.Unit{{ID: "u-1"}, {ID: "u-2"}}, nil)
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			where, args := filter.GetWhereClause()
			assert.Contains(t, where, "bookings.unit_id IN")
			assert.Equal(t, "u-2", args["unit_ids_1"])

			return 1, nil
		})
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{{ID: "b-1", UnitID: "u-1"}}, nil)

		res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, dto.ListFilter{Scope: scope.Specific("g-1")})

		require.NoError(t, err)
		assert.Len(t, res.Bookings, 1)
	})

	t.Run("all groups skips the unit lookup", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, dto.ListFilter{})

		assert.NoError(t, err)
	})
}

func TestBookingService_Cancel(t *testing.T) {
	t.Run("pending booking", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "b-1", ClientID: "c-1", Status: model.StatusPending}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])

				return nil
			})

		assert.NoError(t, f.svc.Cancel(userContext(), "b-1"))
		assert.Subset(t, f.cleared.list(), []string{"calendar*", "dashboard*"})
	})

	t.Run("closure is refused", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "b-1", ClientID: model.ClientIDClosedUnit, Status: model.StatusConfirmed}, nil)

		err := f.svc.Cancel(userContext(), "b-1")

		assert.True(t, failure.Is(err, http.StatusBadRequest))
		assert.Empty(t, f.cleared.list())
	})

	t.Run("already cancelled is refused", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "b-1", Status: model.StatusCancelled}, nil)

		err := f.svc.Cancel(userContext(), "b-1")

		assert.True(t, failure.Is(err, http.StatusBadRequest))
	})

	t.Run("not found", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		err := f.svc.Cancel(userContext(), "b-9")

		assert.True(t, failure.Is(err, http.StatusNotFound))
	})
}

func TestBookingService_Quote(t *testing.T) {
	f := setup(t)

	f.units.EXPECT().Get(gomock.Any(), gomock.Any()).Return(chalet(), nil)
	f.overrides.EXPECT().GetCovering(gomock.Any(), gomock.Any()).Return(nil, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{{
		ID: "b-1", UnitID: unitID, CheckIn: day("2025-10-04"), CheckOut: day("2025-10-05"), Status: model.StatusPending,
	}}, nil)

	res, err := f.svc.Quote(context.Background(), dto.QuoteRequest{UnitID: unitID, CheckIn: "2025-10-02", CheckOut: "2025-10-05"})

	require.NoError(t, err)
	assert.InDelta(t, 1050, res.Total, 1e-9)
	assert.Len(t, res.Nights, 3)
	assert.Equal(t, "SAR", res.Currency)
	assert.False(t, res.Available)
}
