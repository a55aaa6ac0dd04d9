package repository

import (
	"context"

	"table-booking/internal/domain/notification"
	"table-booking/internal/domain/reservation"
	"table-booking/internal/infra"
	"table-booking/internal/infra/query"
	"table-booking/internal/infra/repository/converter"
	"table-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type DirectoryQueries interface {
	GetTable(ctx context.Context, db query.DBTX, id uuid.UUID) (query.TableRow, error)
	LockTable(ctx context.Context, db query.DBTX, id uuid.UUID) (query.TableRow, error)
	GetRecipient(ctx context.Context, db query.DBTX, id uuid.UUID) (query.RecipientRow, error)
	ListManagers(ctx context.Context, db query.DBTX) ([]query.RecipientRow, error)
}

// TableReadStore reads tables owned by the restaurant directory.
type TableReadStore struct {
	queries DirectoryQueries
	db      query.DBTX
}

var _ shared.TableReadStore = (*TableReadStore)(nil)

func NewTableReadStore(queries DirectoryQueries, db query.DBTX) *TableReadStore {
	return &TableReadStore{queries: queries, db: db}
}

func (s *TableReadStore) FindByID(ctx context.Context, id uuid.UUID) (reservation.TableSpec, error) {
	row, err := s.queries.GetTable(ctx, s.db, id)
	if err != nil {
		return reservation.TableSpec{}, infra.WrapRepoErr("failed to find table", err)
	}
	return converter.TableSpecFromRow(row), nil
}

func (s *TableReadStore) LockForBooking(ctx context.Context, id uuid.UUID) (reservation.TableSpec, error) {
	row, err := s.queries.LockTable(ctx, s.db, id)
	if err != nil {
		return reservation.TableSpec{}, infra.WrapRepoErr("failed to lock table", err)
	}
	return converter.TableSpecFromRow(row), nil
}

// RecipientReadStore reads users owned by the user directory.
type RecipientReadStore struct {
	queries DirectoryQueries
	db      query.DBTX
}

var _ shared.RecipientReadStore = (*RecipientReadStore)(nil)

func NewRecipientReadStore(queries DirectoryQueries, db query.DBTX) *RecipientReadStore {
	return &RecipientReadStore{queries: queries, db: db}
}

func (s *RecipientReadStore) FindByID(ctx context.Context, id uuid.UUID) (notification.Recipient, error) {
	row, err := s.queries.GetRecipient(ctx, s.db, id)
	if err != nil {
		return notification.Recipient{}, infra.WrapRepoErr("failed to find recipient", err)
	}
	return converter.RecipientFromRow(row), nil
}

func (s *RecipientReadStore) ListManagers(ctx context.Context) ([]notification.Recipient, error) {
	rows, err := s.queries.ListManagers(ctx, s.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list managers", err)
	}
	out := make([]notification.Recipient, 0, len(rows))
	for _, row := range rows {
		out = append(out, converter.RecipientFromRow(row))
	}
	return out, nil
}
