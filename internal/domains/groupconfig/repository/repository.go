package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"rentdesk/infras/otel"
	"rentdesk/infras/postgres"
	"rentdesk/internal/domains/groupconfig/model"
	"rentdesk/shared"
	"rentdesk/shared/constant"
	gDto "rentdesk/shared/dto"
	gRepo "rentdesk/shared/repository"

	"github.com/jmoiron/sqlx"
)

type AIConfig interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.AIConfig, error)
	Upsert(ctx context.Context, config model.AIConfig) (bool, error)
}

type WebsiteConfig interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.WebsiteConfig, error)
	Upsert(ctx context.Context, config model.WebsiteConfig) (bool, error)
}

type aiConfigImpl struct {
	gRepo.Repository[model.AIConfig]
	db   *postgres.Connection
	otel otel.Otel
}

func NewAIConfig(db *postgres.Connection, otel otel.Otel) AIConfig {
	return &aiConfigImpl{
		Repository: gRepo.NewRepository[model.AIConfig](model.AIEntityName, model.AITableName, model.FieldScopeKey, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Upsert stores config under its scope key, replacing any earlier one. It reports whether
// the key was new.
func (r *aiConfigImpl) Upsert(ctx context.Context, config model.AIConfig) (created bool, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".ai_config.Upsert")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		created, err = upsert(ctx, tx, &r.Repository, config.ScopeKey, model.AITableName, config,
			config.Columns(config.ModifiedBy, config.ModifiedAt))

		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to save ai config: %w", err)
	}

	return created, nil
}

type websiteConfigImpl struct {
	gRepo.Repository[model.WebsiteConfig]
	db   *postgres.Connection
	otel otel.Otel
}

func NewWebsiteConfig(db *postgres.Connection, otel otel.Otel) WebsiteConfig {
	return &websiteConfigImpl{
		Repository: gRepo.NewRepository[model.WebsiteConfig](model.WebsiteEntityName, model.WebsiteTableName, model.FieldScopeKey, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *websiteConfigImpl) Upsert(ctx context.Context, config model.WebsiteConfig) (created bool, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".website_config.Upsert")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		created, err = upsert(ctx, tx, &r.Repository, config.ScopeKey, model.WebsiteTableName, config,
			config.Columns(config.ModifiedBy, config.ModifiedAt))

		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to save website config: %w", err)
	}

	return created, nil
}

// upsert serializes writers of key with an advisory lock, then updates the row or inserts it.
func upsert[T any](ctx context.Context, tx *sqlx.Tx, repo *gRepo.Repository[T], key, table string, row T, columns map[string]any) (bool, error) {
	if err := repo.LockTx(ctx, tx, key); err != nil {
		return false, err //nolint:wrapcheck
	}

	filter := shared.FilterByID(key, model.FieldScopeKey, table)

	exist, err := repo.ExistTx(ctx, tx, filter)
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	if exist {
		return false, repo.UpdateTx(ctx, tx, columns, filter) //nolint:wrapcheck
	}

	return true, repo.InsertTx(ctx, tx, row) //nolint:wrapcheck
}
