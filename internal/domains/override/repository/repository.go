package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"rentdesk/infras/otel"
	"rentdesk/infras/postgres"
	"rentdesk/internal/domains/override/model"
	"rentdesk/shared/constant"
	"rentdesk/shared/daterange"
	gDto "rentdesk/shared/dto"
	gRepo "rentdesk/shared/repository"
)

type Override interface {
	Insert(ctx context.Context, override model.Override) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Override, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Override, error)
	GetCovering(ctx context.Context, window daterange.Range) ([]model.Override, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Override]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Override {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Override](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// CoveringFilter matches overrides whose inclusive period shares a day with window.
func CoveringFilter(window daterange.Range) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStartDate,
				ArgName:  "window_end",
				Value:    daterange.Day(window.End),
				Operator: gDto.FilterOperatorLess,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldEndDate,
				ArgName:  "window_start",
				Value:    daterange.Day(window.Start),
				Operator: gDto.FilterOperatorGreaterEq,
				Table:    model.TableName,
			},
		},
	}
}

// GetCovering loads every override that prices at least one night of window.
func (r *repositoryImpl) GetCovering(ctx context.Context, window daterange.Range) ([]model.Override, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".override.GetCovering")
	defer scope.End()

	overrides, err := r.Repository.GetAll(ctx, gDto.QueryParams{}, CoveringFilter(window))
	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get covering overrides: %w", err)
	}

	return overrides, nil
}
