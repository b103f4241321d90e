package service_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"rentdesk/config"
	kafkaMocks "rentdesk/infras/kafka/mocks"
	"rentdesk/infras/otel/mocks"
	s3Mocks "rentdesk/infras/s3/mocks"
	campaignMocks "rentdesk/internal/domains/campaign/mocks"
	"rentdesk/internal/domains/campaign/model"
	"rentdesk/internal/domains/campaign/model/dto"
	"rentdesk/internal/domains/campaign/service"
	contactMocks "rentdesk/internal/domains/contact/mocks"
	contactModel "rentdesk/internal/domains/contact/model"
	cacheMocks "rentdesk/shared/cache/mocks"
	"rentdesk/shared/constant"
	"rentdesk/shared/failure"
	"rentdesk/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo     *campaignMocks.MockCampaign
	contacts *contactMocks.MockContact
	s3       *s3Mocks.MockS3
	svc      service.Campaign
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
	cfg.App.Currency = "SAR"
	cfg.Campaign.CostPerRecipient = 0.195
	cfg.Campaign.MaxMessageLength = 500
	cfg.Campaign.MaxAttachmentSizeMB = 10
	cfg.Campaign.MinScheduleHours = 48
	cfg.Campaign.AttachmentDirectory = "campaigns"

	f := fixture{
		repo:     campaignMocks.NewMockCampaign(ctrl),
		contacts: contactMocks.NewMockContact(ctrl),
		s3:       s3Mocks.NewMockS3(ctrl),
	}
	f.svc = service.New(f.repo, f.contacts, f.s3, mockKafka, cfg, mockCache, mocks.NewOtel())

	return f
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "operator")
}

func contacts(ids ...string) []contactModel.Contact {
	out := make([]contactModel.Contact, len(ids))
	for i, id := range ids {
		out[i] = contactModel.Contact{ID: id}
	}

	return out
}

type memoryFile struct {
	*bytes.Reader
}

func (memoryFile) Close() error { return nil }

func attachment(name, contentType string, size int) (*multipart.FileHeader, multipart.File) {
	header := &multipart.FileHeader{
		Filename: name,
		Size:     int64(size),
		Header:   textproto.MIMEHeader{constant.RequestHeaderContentType: {contentType}},
	}

	return header, memoryFile{bytes.NewReader(make([]byte, size))}
}

func TestCampaignService_Estimate(t *testing.T) {
	t.Run("every contact", func(t *testing.T) {
		f := setup(t)
		f.contacts.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), contactModel.FieldID).Return(contacts("c-1", "c-2", "c-3"), nil)

		res, err := f.svc.Estimate(context.Background(), dto.EstimateRequest{})

		require.NoError(t, err)
		assert.Equal(t, 3, res.Recipients)
		assert.InDelta(t, 0.59, res.TotalCost, 0.0001)
		assert.Equal(t, "SAR", res.Currency)
	})

	t.Run("duplicate selection counts once", func(t *testing.T) {
		f := setup(t)
		f.contacts.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), contactModel.FieldID).Return(contacts("c-1"), nil)

		res, err := f.svc.Estimate(context.Background(), dto.EstimateRequest{ContactIDs: []string{"c-1", "c-1"}})

		require.NoError(t, err)
		assert.Equal(t, 1, res.Recipients)
		assert.InDelta(t, 0.2, res.TotalCost, 0.0001)
	})

	t.Run("unknown contact", func(t *testing.T) {
		f := setup(t)
		f.contacts.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), contactModel.FieldID).Return(contacts("c-1"), nil)

		_, err := f.svc.Estimate(context.Background(), dto.EstimateRequest{ContactIDs: []string{"c-1", "c-9"}})

		require.Error(t, err)
		assert.True(t, failure.Is(err, http.StatusBadRequest))
	})

	t.Run("no contacts costs nothing", func(t *testing.T) {
		f := setup(t)
		f.contacts.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), contactModel.FieldID).Return(nil, nil)

		res, err := f.svc.Estimate(context.Background(), dto.EstimateRequest{})

		require.NoError(t, err)
		assert.Zero(t, res.Recipients)
		assert.Zero(t, res.TotalCost)
	})
}

func TestCampaignService_Schedule(t *testing.T) {
	later := timezone.Now().Add(72 * time.Hour)

	t.Run("with attachment", func(t *testing.T) {
		f := setup(t)
		header, file := attachment("flyer.png", "image/png", 2048)

		f.contacts.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), contactModel.FieldID).Return(contacts("c-1", "c-2"), nil)
		f.s3.EXPECT().
			UploadFile(gomock.Any(), "campaigns", gomock.Any(), "image/png", file, int64(2048)).
			DoAndReturn(func(_ context.Context, _, fileName, _ string, _ any, _ int64) (string, error) {
				assert.True(t, strings.HasSuffix(fileName, ".png"))

				return "https://cdn.example.com/campaigns/" + fileName, nil
			})
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c model.Campaign) error {
			assert.Equal(t, 2, c.RecipientCount)
			assert.InDelta(t, 0.39, c.EstimatedCost, 0.0001)
			assert.Equal(t, model.StatusScheduled, c.Status)
			assert.Equal(t, "flyer.png", c.AttachmentName)
			assert.Equal(t, "operator", c.CreatedBy)

			return nil
		})

		id, err := f.svc.Schedule(userContext(), dto.ScheduleCampaignRequest{
			Name:        "Eid offer",
			Message:     "20% off this weekend",
			ScheduledAt: later,
			Attachment:  header,
			File:        file,
		})

		require.NoError(t, err)
		assert.NotEmpty(t, id)
	})

	t.Run("too soon", func(t *testing.T) {
		f := setup(t)
		f.contacts.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), contactModel.FieldID).Return(contacts("c-1"), nil)

		_, err := f.svc.Schedule(userContext(), dto.ScheduleCampaignRequest{
			Name:        "Eid offer",
			Message:     "hello",
			ScheduledAt: timezone.Now().Add(time.Hour),
		})

		require.Error(t, err)
		assert.True(t, failure.Is(err, http.StatusBadRequest))
	})

	t.Run("message too long", func(t *testing.T) {
		f := setup(t)
		f.contacts.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), contactModel.FieldID).Return(contacts("c-1"), nil)

		_, err := f.svc.Schedule(userContext(), dto.ScheduleCampaignRequest{
			Name:        "Eid offer",
			Message:     strings.Repeat("ع", 501),
			ScheduledAt: later,
		})

		require.Error(t, err)
		assert.True(t, failure.Is(err, http.StatusBadRequest))
	})

	t.Run("attachment too large", func(t *testing.T) {
		f := setup(t)
		header, file := attachment("tour.mp4", "video/mp4", 11<<20)
		f.contacts.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), contactModel.FieldID).Return(contacts("c-1"), nil)

		_, err := f.svc.Schedule(userContext(), dto.ScheduleCampaignRequest{
			Name:        "Tour",
			Message:     "watch",
			ScheduledAt: later,
			Attachment:  header,
			File:        file,
		})

		require.Error(t, err)
		assert.True(t, failure.Is(err, http.StatusBadRequest))
	})

	t.Run("no recipients", func(t *testing.T) {
		f := setup(t)
		f.contacts.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), contactModel.FieldID).Return(nil, nil)

		_, err := f.svc.Schedule(userContext(), dto.ScheduleCampaignRequest{Name: "x", Message: "hello", ScheduledAt: later})

		require.Error(t, err)
		assert.True(t, failure.Is(err, http.StatusBadRequest))
	})

	t.Run("insert failure removes the upload", func(t *testing.T) {
		f := setup(t)
		header, file := attachment("flyer.pdf", "application/pdf", 100)

		f.contacts.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), contactModel.FieldID).Return(contacts("c-1"), nil)
		f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("https://cdn.example.com/campaigns/x.pdf", nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
		f.s3.EXPECT().ObjectKeyFromURL("https://cdn.example.com/campaigns/x.pdf").Return("campaigns/x.pdf")
		f.s3.EXPECT().DeleteFile(gomock.Any(), "campaigns/x.pdf").Return(nil)

		_, err := f.svc.Schedule(userContext(), dto.ScheduleCampaignRequest{
			Name:        "x",
			Message:     "hello",
			ScheduledAt: later,
			Attachment:  header,
			File:        file,
		})

		require.Error(t, err)
		assert.False(t, failure.Is(err, http.StatusBadRequest))
	})
}

func TestCampaignService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Campaign{ID: "cp-1", Name: "Eid", Status: model.StatusScheduled}, nil)

		res, err := f.svc.Get(context.Background(), "cp-1")

		require.NoError(t, err)
		assert.Equal(t, "Eid", res.Name)
	})

	t.Run("not found", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Campaign{}, nil)

		_, err := f.svc.Get(context.Background(), "cp-1")

		require.Error(t, err)
		assert.True(t, failure.Is(err, http.StatusNotFound))
	})
}

func TestCampaignService_Cancel(t *testing.T) {
	t.Run("scheduled with attachment", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Campaign{
			ID:            "cp-1",
			Status:        model.StatusScheduled,
			AttachmentURL: "https://cdn.example.com/campaigns/cp-1.png",
		}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
			assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])
			assert.Equal(t, "operator", fields[constant.FieldModifiedBy])

			return nil
		})
		f.s3.EXPECT().ObjectKeyFromURL(gomock.Any()).Return("campaigns/cp-1.png")
		f.s3.EXPECT().DeleteFile(gomock.Any(), "campaigns/cp-1.png").Return(nil)

		require.NoError(t, f.svc.Cancel(userContext(), "cp-1"))
	})

	t.Run("already sent", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Campaign{ID: "cp-1", Status: model.StatusSent}, nil)

		err := f.svc.Cancel(userContext(), "cp-1")

		require.Error(t, err)
		assert.True(t, failure.Is(err, http.StatusBadRequest))
	})

	t.Run("not found", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Campaign{}, nil)

		err := f.svc.Cancel(userContext(), "cp-1")

		require.Error(t, err)
		assert.True(t, failure.Is(err, http.StatusNotFound))
	})
}
