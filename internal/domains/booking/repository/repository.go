package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"rentdesk/infras/otel"
	"rentdesk/infras/postgres"
	"rentdesk/internal/domains/booking/model"
	contactModel "rentdesk/internal/domains/contact/model"
	"rentdesk/shared/constant"
	"rentdesk/shared/daterange"
	gDto "rentdesk/shared/dto"
	gRepo "rentdesk/shared/repository"

	"github.com/jmoiron/sqlx"
)

// ErrUnitTaken reports that another blocking booking already holds one of the requested nights.
var ErrUnitTaken = errors.New("unit is already booked for some of the selected nights")

type Booking interface {
	Insert(ctx context.Context, booking model.Booking) error
	CreateWithContact(ctx context.Context, booking model.Booking, contact *contactModel.Contact) error
	InsertClosures(ctx context.Context, closures []model.Booking) ([]model.Booking, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	contacts gRepo.Repository[contactModel.Contact]
	db       *postgres.Connection
	otel     otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		contacts: gRepo.NewRepository[contactModel.Contact](
			contactModel.EntityName, contactModel.TableName, contactModel.FieldID, db, otel,
		),
		db:   db,
		otel: otel,
	}
}

// CreateWithContact stores the booking and, when one is given, its new contact in one transaction.
// The unit is locked and its nights checked again first, so two requests racing for the same nights
// cannot both succeed: the loser gets ErrUnitTaken.
func (r *repositoryImpl) CreateWithContact(ctx context.Context, booking model.Booking, contact *contactModel.Contact) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CreateWithContact")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := r.LockTx(ctx, tx, booking.UnitID); err != nil {
			return err //nolint:wrapcheck
		}

		taken, err := r.ExistTx(ctx, tx, BlockingFilter(booking.UnitID, booking.Stay()))
		if err != nil {
			return err //nolint:wrapcheck
		}

		if taken {
			return ErrUnitTaken
		}

		if contact != nil {
			if err := r.contacts.InsertTx(ctx, tx, *contact); err != nil {
				return err //nolint:wrapcheck
			}
		}

		return r.Repository.InsertTx(ctx, tx, booking) //nolint:wrapcheck
	})
	if errors.Is(err, ErrUnitTaken) {
		return err
	}

	if err != nil {
		return fmt.Errorf("failed to create booking with contact: %w", err)
	}

	return nil
}

// InsertClosures stores the closures whose night is still free and returns them. Each unit is
// locked before its night is checked, in id order so concurrent batches cannot deadlock, which
// keeps closures and booking creation from taking the same night.
func (r *repositoryImpl) InsertClosures(ctx context.Context, closures []model.Booking) (closed []model.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.InsertClosures")
	defer scope.End()
	defer scope.TraceIfError(err)

	ordered := slices.SortedFunc(slices.Values(closures), func(a, b model.Booking) int {
		return strings.Compare(a.UnitID, b.UnitID)
	})

	err = r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		closed = make([]model.Booking, 0, len(ordered))

		for _, closure := range ordered {
			if err := r.LockTx(ctx, tx, closure.UnitID); err != nil {
				return err //nolint:wrapcheck
			}

			taken, err := r.ExistTx(ctx, tx, BlockingFilter(closure.UnitID, closure.Stay()))
			if err != nil {
				return err //nolint:wrapcheck
			}

			if !taken {
				closed = append(closed, closure)
			}
		}

		if len(closed) == 0 {
			return nil
		}

		return r.InsertBulkTx(ctx, tx, closed) //nolint:wrapcheck
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert closures: %w", err)
	}

	return closed, nil
}

// BlockingFilter matches bookings of unitID that hold any night of stay. Cancelled stays do not
// block, closures always do.
func BlockingFilter(unitID string, stay daterange.Range) gDto.FilterGroup {
	filter := OverlapFilter(stay)
	filter.Filters = append(filter.Filters,
		gDto.Filter{Field: model.FieldUnitID, Value: unitID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{Field: model.FieldStatus, Value: model.StatusCancelled, Operator: gDto.FilterOperatorNotEq, Table: model.TableName},
				gDto.Filter{Field: model.FieldClientID, Value: model.ClientIDClosedUnit, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			},
		},
	)

	return filter
}

// OverlapFilter matches bookings whose stay shares a night with window.
func OverlapFilter(window daterange.Range) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldCheckIn,
				ArgName:  "window_end",
				Value:    daterange.Day(window.End),
				Operator: gDto.FilterOperatorLess,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldCheckOut,
				ArgName:  "window_start",
				Value:    daterange.Day(window.Start),
				Operator: gDto.FilterOperatorGreater,
				Table:    model.TableName,
			},
		},
	}
}

// UnitsFilter matches bookings of any of unitIDs. Callers must not pass an empty list.
func UnitsFilter(unitIDs []string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUnitID,
				ArgName:  "unit_ids",
				Value:    unitIDs,
				Operator: gDto.FilterOperatorIn,
				Table:    model.TableName,
			},
		},
	}
}
