package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"rentdesk/infras/otel"
	"rentdesk/infras/postgres"
	"rentdesk/internal/domains/review/model"
	"rentdesk/shared/constant"
	gDto "rentdesk/shared/dto"
	gRepo "rentdesk/shared/repository"
)

type Review interface {
	Insert(ctx context.Context, review model.Review) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Review, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Review, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	Stats(ctx context.Context, filter gDto.FilterGroup) (model.Stats, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Review]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Review {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Review](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Stats counts the reviews matching filter and averages their rating. No match averages to zero.
func (r *repositoryImpl) Stats(ctx context.Context, filter gDto.FilterGroup) (stats model.Stats, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".review.Stats")
	defer scope.End()
	defer scope.TraceIfError(err)

	where, args := r.BuildWhereClause(ctx, filter)

	query := fmt.Sprintf("SELECT COUNT(%[1]s.%[2]s) AS total, COALESCE(AVG(%[1]s.%[3]s), 0) AS average FROM %[1]s %[4]s",
		model.TableName, model.FieldID, model.FieldRating, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := r.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		return stats, fmt.Errorf("failed to prepare review stats: %w", err)
	}
	defer prepare.Close()

	if err = prepare.GetContext(ctx, &stats, args); err != nil {
		return stats, fmt.Errorf("failed to get review stats: %w", err)
	}

	return stats, nil
}
