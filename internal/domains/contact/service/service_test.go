package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"rentdesk/config"
	"rentdesk/infras/otel/mocks"
	contactMocks "rentdesk/internal/domains/contact/mocks"
	"rentdesk/internal/domains/contact/model"
	"rentdesk/internal/domains/contact/model/dto"
	"rentdesk/internal/domains/contact/service"
	cacheMocks "rentdesk/shared/cache/mocks"
	"rentdesk/shared/constant"
	gDto "rentdesk/shared/dto"
	"rentdesk/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*contactMocks.MockContact, service.Contact) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := contactMocks.NewMockContact(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return mockRepo, service.New(mockRepo, cfg, mockCache, mocks.NewOtel())
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "operator")
}

func TestContactService_Create(t *testing.T) {
	t.Run("normalizes email and defaults payment", func(t *testing.T) {
		mockRepo, svc := setup(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
			_, args := filter.GetWhereClause()
			assert.Equal(t, "sara@example.com", args[model.FieldEmail])

			return false, nil
		})
		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c model.Contact) error {
			assert.Equal(t, "sara@example.com", c.Email)
			assert.Equal(t, model.PaymentPending, c.Payment)

			return nil
		})

		id, err := svc.Create(userContext(), dto.CreateContactRequest{Name: "Sara", Phone: "0500000000", Email: " Sara@Example.com "})

		require.NoError(t, err)
		assert.NotEmpty(t, id)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		mockRepo, svc := setup(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := svc.Create(userContext(), dto.CreateContactRequest{Name: "Sara", Phone: "0500000000", Email: "sara@example.com"})

		assert.True(t, failure.Is(err, http.StatusConflict))
	})

	t.Run("losing an insert race on the email conflicts", func(t *testing.T) {
		mockRepo, svc := setup(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(fmt.Errorf("insert: %w", &pq.Error{Code: "23505"}))

		_, err := svc.Create(userContext(), dto.CreateContactRequest{Name: "Sara", Phone: "0500000000", Email: "sara@example.com"})

		assert.True(t, failure.Is(err, http.StatusConflict))
	})

	t.Run("contacts without email skip the duplicate check", func(t *testing.T) {
		mockRepo, svc := setup(t)

		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		_, err := svc.Create(userContext(), dto.CreateContactRequest{Name: "Walk-in", Phone: "0500000000"})

		assert.NoError(t, err)
	})
}

func TestContactService_Get(t *testing.T) {
	mockRepo, svc := setup(t)

	mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Contact{}, nil)

	_, err := svc.Get(context.Background(), "missing")

	assert.True(t, failure.Is(err, http.StatusNotFound))
}

func TestContactService_GetAll(t *testing.T) {
	mockRepo, svc := setup(t)

	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("database error"))

	_, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	assert.Error(t, err)
}

func TestContactService_Update(t *testing.T) {
	t.Run("empty request", func(t *testing.T) {
		_, svc := setup(t)

		err := svc.Update(userContext(), dto.UpdateContactRequest{}, "c-1")

		assert.True(t, failure.Is(err, http.StatusBadRequest))
	})

	t.Run("email used by someone else", func(t *testing.T) {
		mockRepo, svc := setup(t)

		gomock.InOrder(
			mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil),
			mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil),
		)

		err := svc.Update(userContext(), dto.UpdateContactRequest{Email: "taken@example.com"}, "c-1")

		assert.True(t, failure.Is(err, http.StatusConflict))
	})

	t.Run("zero review is written", func(t *testing.T) {
		mockRepo, svc := setup(t)
		zero := 0.0

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, &zero, fields[model.FieldReview])

				return nil
			})

		assert.NoError(t, svc.Update(userContext(), dto.UpdateContactRequest{Review: &zero}, "c-1"))
	})
}
