package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"rentdesk/infras/otel"
	"rentdesk/infras/postgres"
	"rentdesk/internal/domains/externalcalendar/model"
	gDto "rentdesk/shared/dto"
	gRepo "rentdesk/shared/repository"
)

type ExternalCalendar interface {
	Insert(ctx context.Context, calendar model.ExternalCalendar) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.ExternalCalendar, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ExternalCalendar, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.ExternalCalendar]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) ExternalCalendar {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.ExternalCalendar](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
