package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"rentdesk/infras/otel"
	"rentdesk/infras/postgres"
	bookingModel "rentdesk/internal/domains/booking/model"
	overrideModel "rentdesk/internal/domains/override/model"
	"rentdesk/internal/domains/unit/model"
	"rentdesk/shared"
	"rentdesk/shared/constant"
	gDto "rentdesk/shared/dto"
	gRepo "rentdesk/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Unit interface {
	Insert(ctx context.Context, unit model.Unit) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Unit, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Unit, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	DeleteCascade(ctx context.Context, id string) error
	SetSpecialPrices(ctx context.Context, day time.Time, prices map[string]*float64, modifiedBy string) ([]string, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Unit]
	bookings gRepo.Repository[bookingModel.Booking]
	db       *postgres.Connection
	otel     otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Unit {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Unit](model.EntityName, model.TableName, model.FieldID, db, otel),
		bookings: gRepo.NewRepository[bookingModel.Booking](
			bookingModel.EntityName, bookingModel.TableName, bookingModel.FieldID, db, otel,
		),
		db:   db,
		otel: otel,
	}
}

// DeleteCascade removes the unit, its bookings and its membership in pricing overrides in one transaction.
func (r *repositoryImpl) DeleteCascade(ctx context.Context, id string) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".unit.DeleteCascade")
	defer scope.End()
	defer scope.TraceIfError(err)

	unlinkOverrides := fmt.Sprintf(
		"UPDATE %s SET %s = array_remove(%s, :unit_id) WHERE :unit_id = ANY(%s)",
		overrideModel.TableName, overrideModel.FieldUnitIDs, overrideModel.FieldUnitIDs, overrideModel.FieldUnitIDs,
	)

	err = r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := r.bookings.DeleteTx(ctx, tx, shared.FilterByID(id, bookingModel.FieldUnitID, bookingModel.TableName)); err != nil {
			return err //nolint:wrapcheck
		}

		if _, err := tx.NamedExecContext(ctx, unlinkOverrides, map[string]any{"unit_id": id}); err != nil {
			return fmt.Errorf("failed to unlink unit from overrides: %w", err)
		}

		return r.Repository.DeleteTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
	})
	if err != nil {
		return fmt.Errorf("failed to delete unit %s: %w", id, err)
	}

	return nil
}

// SetSpecialPrices pins the price of day on every unit in prices, or clears it where the price is
// nil, in one transaction. The unit rows stay locked from read to write so concurrent adjustments
// of the same units apply one after another. It returns the ids of the units that exist.
func (r *repositoryImpl) SetSpecialPrices(ctx context.Context, day time.Time, prices map[string]*float64, modifiedBy string) (updated []string, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".unit.SetSpecialPrices")
	defer scope.End()
	defer scope.TraceIfError(err)

	ids := slices.Sorted(maps.Keys(prices))
	if len(ids) == 0 {
		return nil, nil
	}

	filter := gDto.FilterGroup{Filters: []any{
		gDto.Filter{Field: model.FieldID, ArgName: "unit_ids", Value: ids, Operator: gDto.FilterOperatorIn, Table: model.TableName},
	}}
	order := gDto.QueryParams{SortBy: model.FieldID, SortDir: gDto.SortDirAsc}

	err = r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		units, err := r.GetAllForUpdateTx(ctx, tx, order, filter, model.FieldID, model.FieldSpecialDates)
		if err != nil {
			return err //nolint:wrapcheck
		}

		updated = make([]string, 0, len(units))

		for _, unit := range units {
			special := unit.SpecialDates.Without(day)
			if price := prices[unit.ID]; price != nil {
				special = unit.SpecialDates.With(day, *price)
			}

			fields := shared.TransformFields(struct{}{}, modifiedBy)
			fields[model.FieldSpecialDates] = special

			if err := r.UpdateTx(ctx, tx, fields, shared.FilterByID(unit.ID, model.FieldID, model.TableName)); err != nil {
				return err //nolint:wrapcheck
			}

			updated = append(updated, unit.ID)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set special prices: %w", err)
	}

	return updated, nil
}
