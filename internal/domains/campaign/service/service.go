package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"rentdesk/config"
	"rentdesk/infras/kafka"
	"rentdesk/infras/otel"
	"rentdesk/infras/s3"
	"rentdesk/internal/domains/campaign/model"
	"rentdesk/internal/domains/campaign/model/dto"
	"rentdesk/internal/domains/campaign/repository"
	contactModel "rentdesk/internal/domains/contact/model"
	contactRepo "rentdesk/internal/domains/contact/repository"
	"rentdesk/internal/engine"
	"rentdesk/internal/events"
	"rentdesk/shared"
	"rentdesk/shared/cache"
	"rentdesk/shared/constant"
	gDto "rentdesk/shared/dto"
	"rentdesk/shared/failure"
	"rentdesk/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetCampaign    = "campaign:get"
	cacheGetAllCampaign = "campaign:gets"
	cacheCountCampaign  = "campaign:count"
)

type Campaign interface {
	Estimate(ctx context.Context, req dto.EstimateRequest) (dto.EstimateResponse, error)
	Schedule(ctx context.Context, req dto.ScheduleCampaignRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCampaignsResponse, error)
	Get(ctx context.Context, id string) (dto.CampaignResponse, error)
	Cancel(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.Campaign
	contactRepo contactRepo.Contact
	s3          s3.S3
	kafka       kafka.Client
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.Campaign,
	contactRepo contactRepo.Contact,
	s3 s3.S3,
	kafka kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Campaign {
	return &serviceImpl{
		repo:        repo,
		contactRepo: contactRepo,
		s3:          s3,
		kafka:       kafka,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) rules() engine.CampaignRules {
	return engine.CampaignRules{
		MaxMessageLength:   s.cfg.Campaign.MaxMessageLength,
		MaxAttachmentBytes: int64(s.cfg.Campaign.MaxAttachmentSizeMB) << 20,
		MinLead:            time.Duration(s.cfg.Campaign.MinScheduleHours) * time.Hour,
	}
}

// recipients resolves the selection to contact ids. An empty selection is every contact.
func (s *serviceImpl) recipients(ctx context.Context, selected []string) ([]string, error) {
	var filter gDto.FilterGroup

	unique := slices.Clone(selected)
	slices.Sort(unique)
	unique = slices.Compact(unique)

	if len(unique) > 0 {
		filter.Filters = []any{
			gDto.Filter{Field: contactModel.FieldID, Value: unique, Operator: gDto.FilterOperatorIn, Table: contactModel.TableName},
		}
	}

	contacts, err := s.contactRepo.GetAll(ctx, gDto.QueryParams{}, filter, contactModel.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get campaign recipients")

		return nil, fmt.Errorf("failed to get campaign recipients: %w", err)
	}

	if len(unique) > 0 && len(contacts) != len(unique) {
		return nil, failure.BadRequestFromString("one or more contacts do not exist") // nolint:wrapcheck
	}

	ids := make([]string, len(contacts))
	for i, contact := range contacts {
		ids[i] = contact.ID
	}

	return ids, nil
}

func (s *serviceImpl) Estimate(ctx context.Context, req dto.EstimateRequest) (res dto.EstimateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Estimate")
	defer scope.End()
	defer scope.TraceIfError(err)

	ids, err := s.recipients(ctx, req.ContactIDs)
	if err != nil {
		return res, err
	}

	res.Recipients = len(ids)
	res.CostPerRecipient = s.cfg.Campaign.CostPerRecipient
	res.TotalCost = engine.EstimateCost(len(ids), s.cfg.Campaign.CostPerRecipient)
	res.Currency = s.cfg.App.Currency

	return res, nil
}

// Schedule validates the draft, stores its attachment and records it as Scheduled.
func (s *serviceImpl) Schedule(ctx context.Context, req dto.ScheduleCampaignRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Schedule")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	ids, err := s.recipients(ctx, req.ContactIDs)
	if err != nil {
		return "", err
	}

	err = s.rules().Check(req.Message, len(ids), req.AttachmentSize(), req.ScheduledAt, timezone.Now())
	if err != nil {
		return "", failure.BadRequest(err) // nolint:wrapcheck
	}

	campaign := req.ToModel(user, s.cfg.App.Currency, ids, engine.EstimateCost(len(ids), s.cfg.Campaign.CostPerRecipient))

	if req.Attachment != nil && req.File != nil {
		fileName := campaign.ID + filepath.Ext(req.Attachment.Filename)

		campaign.AttachmentURL, err = s.s3.UploadFile(ctx,
			s.cfg.Campaign.AttachmentDirectory,
			fileName,
			req.Attachment.Header.Get(constant.RequestHeaderContentType),
			req.File,
			req.Attachment.Size,
		)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload campaign attachment")

			return "", fmt.Errorf("failed to upload campaign attachment: %w", err)
		}

		campaign.AttachmentName = req.Attachment.Filename
	}

	if err = s.repo.Insert(ctx, campaign); err != nil {
		log.Error().Err(err).Msg("failed to create campaign")

		if campaign.HasAttachment() {
			s.removeAttachment(ctx, campaign.AttachmentURL)
		}

		return "", fmt.Errorf("failed to create campaign: %w", err)
	}

	scope.SetAttribute("campaign.recipients", campaign.RecipientCount)

	s.changed(ctx, campaign, kafka.EventCampaignScheduled)

	return campaign.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCampaignsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllCampaign, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for campaigns")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count campaigns")

		return res, fmt.Errorf("failed to count campaigns: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get campaigns")

		return res, fmt.Errorf("failed to get campaigns: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save campaigns to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.CampaignResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetCampaign, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for campaign")

		return res, nil
	}

	campaign, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get campaign")

		return res, fmt.Errorf("failed to get campaign: %w", err)
	}

	if campaign.ID == constant.Empty {
		return res, failure.NotFound("campaign not found") // nolint:wrapcheck
	}

	res.FromModel(campaign)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save campaign to cache")
		}
	}()

	return res, nil
}

// Cancel withdraws a campaign that has not been sent and drops its attachment.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	campaign, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get campaign")

		return fmt.Errorf("failed to get campaign: %w", err)
	}

	if campaign.ID == constant.Empty {
		return failure.NotFound("campaign not found") // nolint:wrapcheck
	}

	if campaign.Status != model.StatusScheduled {
		return failure.BadRequestFromString("only scheduled campaigns can be cancelled") // nolint:wrapcheck
	}

	fields := shared.TransformFields(struct{}{}, user)
	fields[model.FieldStatus] = model.StatusCancelled

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to cancel campaign")

		return fmt.Errorf("failed to cancel campaign: %w", err)
	}

	if campaign.HasAttachment() {
		s.removeAttachment(ctx, campaign.AttachmentURL)
	}

	campaign.Status = model.StatusCancelled
	s.changed(ctx, campaign, kafka.EventCampaignCancelled)

	return nil
}

func (s *serviceImpl) removeAttachment(ctx context.Context, url string) {
	key := s.s3.ObjectKeyFromURL(url)
	if key == constant.Empty {
		log.Warn().Str("url", url).Msg("failed to extract object key from attachment URL")

		return
	}

	if err := s.s3.DeleteFile(context.WithoutCancel(ctx), key); err != nil {
		log.Error().Err(err).Str("objectKey", key).Msg("failed to delete campaign attachment")
	}
}

func (s *serviceImpl) changed(ctx context.Context, campaign model.Campaign, eventType string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetCampaign, campaign.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete campaign from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllCampaign)
		shared.InvalidateCaches(c, s.cache, cacheCountCampaign)
	}()

	events.Publish(ctx, s.kafka, s.cfg.Kafka.Topics.Campaign, kafka.Message{
		Key:  campaign.ID,
		Type: eventType,
		Value: events.CampaignChanged{
			CampaignID:  campaign.ID,
			Recipients:  campaign.RecipientCount,
			ScheduledAt: timezone.Format(campaign.ScheduledAt, time.RFC3339),
			Attachment:  campaign.AttachmentName,
		},
	})
}
