package repository

//go:generate mockgen -source=notification_log.go -destination=mocks/notification_log_mock.go -package=mocks

import (
	"context"
	"math"

	"table-booking/internal/domain/notification"
	"table-booking/internal/infra"
	"table-booking/internal/infra/query"
	"table-booking/internal/infra/repository/converter"
	"table-booking/internal/pkg/pgconv"
	"table-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type NotificationLogQueries interface {
	BeginNotificationAttempt(ctx context.Context, db query.DBTX, arg query.BeginNotificationAttemptParams) (query.NotificationLog, error)
	RecordNotificationAttempt(ctx context.Context, db query.DBTX, arg query.RecordNotificationAttemptParams) (query.NotificationLog, error)
	ListNotificationLogs(ctx context.Context, db query.DBTX, arg query.ListNotificationLogsParams) ([]query.NotificationLog, error)
}

type NotificationLogRepository struct {
	queries NotificationLogQueries
	db      query.DBTX
}

var _ shared.NotificationLogRepository = (*NotificationLogRepository)(nil)

func NewNotificationLogRepository(queries NotificationLogQueries, db query.DBTX) *NotificationLogRepository {
	return &NotificationLogRepository{queries: queries, db: db}
}

func (r *NotificationLogRepository) BeginAttempt(ctx context.Context, p shared.BeginAttemptParams) (notification.LogEntry, error) {
	row, err := r.queries.BeginNotificationAttempt(ctx, r.db, query.BeginNotificationAttemptParams{
		ID:          uuid.New(),
		RecipientID: p.RecipientID,
		Channel:     p.Channel.String(),
		Reason:      p.Reason.String(),
		SubjectKey:  p.SubjectKey,
		Description: p.Description,
		At:          pgconv.TimeToPgtype(p.At),
	})
	if err != nil {
		return notification.LogEntry{}, infra.WrapRepoErr("failed to begin notification attempt", err)
	}
	return r.toDomain(row)
}

func (r *NotificationLogRepository) RecordAttempt(ctx context.Context, p shared.RecordAttemptParams) (notification.LogEntry, error) {
	row, err := r.queries.RecordNotificationAttempt(ctx, r.db, query.RecordNotificationAttemptParams{
		ID:        p.ID,
		Status:    p.Status.String(),
		Attempts:  clampInt32(p.Attempts),
		LastError: pgconv.StringPtrToPgtype(p.LastError),
		At:        pgconv.TimeToPgtype(p.At),
	})
	if err != nil {
		return notification.LogEntry{}, infra.WrapRepoErr("failed to record notification attempt", err)
	}
	return r.toDomain(row)
}

func (r *NotificationLogRepository) List(ctx context.Context, filter shared.NotificationLogFilter) ([]notification.LogEntry, error) {
	params := query.ListNotificationLogsParams{
		RecipientID: pgconv.UUIDPtrToPgtype(filter.RecipientID),
		Limit:       clampInt32(filter.Limit),
	}
	if filter.Status != nil {
		params.Status = pgtype.Text{String: filter.Status.String(), Valid: true}
	}
	if filter.BeforeCreatedAt != nil && filter.BeforeID != nil {
		params.BeforeCreatedAt = pgconv.TimePtrToPgtype(filter.BeforeCreatedAt)
		params.BeforeID = pgconv.UUIDPtrToPgtype(filter.BeforeID)
	}
	if params.Limit <= 0 {
		params.Limit = math.MaxInt32
	}

	rows, err := r.queries.ListNotificationLogs(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list notification logs", err)
	}
	entries := make([]notification.LogEntry, 0, len(rows))
	for _, row := range rows {
		e, err := r.toDomain(row)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (r *NotificationLogRepository) toDomain(row query.NotificationLog) (notification.LogEntry, error) {
	e, err := converter.NotificationLogFromRow(row)
	if err != nil {
		return notification.LogEntry{}, infra.WrapRepoErr("failed to decode notification log", err)
	}
	return e, nil
}

func clampInt32(v int) int32 {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < 0 {
		return 0
	}
	return int32(v) // #nosec G115 -- range checked above
}
