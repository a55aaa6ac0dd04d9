package repository_test

import (
	"context"
	"testing"
	"time"

	"table-booking/internal/domain/notification"
	"table-booking/internal/infra"
	"table-booking/internal/infra/query"
	"table-booking/internal/infra/repository"
	"table-booking/internal/infra/repository/mocks"
	"table-booking/internal/pkg/pgconv"
	"table-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var logTime = time.Date(2030, 6, 1, 11, 0, 0, 0, time.UTC)

func logRow(status string, attempts int32) query.NotificationLog {
	return query.NotificationLog{
		ID:          uuid.New(),
		RecipientID: uuid.New(),
		Channel:     "telegram",
		Reason:      "Emergency Closure",
		SubjectKey:  uuid.NewString(),
		Description: "Flood",
		Status:      status,
		Attempts:    attempts,
		CreatedAt:   pgconv.TimeToPgtype(logTime),
		UpdatedAt:   pgconv.TimeToPgtype(logTime),
	}
}

func TestNotificationLogRepository_BeginAttempt(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockQueries := mocks.NewMockNotificationLogQueries(ctrl)
	db := &mockDBTX{}
	repo := repository.NewNotificationLogRepository(mockQueries, db)

	row := logRow("attempting", 0)
	mockQueries.EXPECT().BeginNotificationAttempt(ctx, db, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ query.DBTX, arg query.BeginNotificationAttemptParams) (query.NotificationLog, error) {
			assert.NotEqual(t, uuid.Nil, arg.ID)
			assert.Equal(t, "telegram", arg.Channel)
			assert.Equal(t, "Emergency Closure", arg.Reason)
			return row, nil
		})

	entry, err := repo.BeginAttempt(ctx, shared.BeginAttemptParams{
		RecipientID: row.RecipientID,
		Channel:     notification.ChannelTelegram,
		Reason:      notification.ReasonEmergencyClosure,
		SubjectKey:  row.SubjectKey,
		Description: row.Description,
		At:          logTime,
	})
	require.NoError(t, err)
	assert.Equal(t, row.ID, entry.ID)
	assert.Equal(t, notification.StatusAttempting, entry.Status)
	assert.Nil(t, entry.LastError)
}

func TestNotificationLogRepository_RecordAttempt(t *testing.T) {
	ctx := context.Background()

	t.Run("success: failure is recorded with last error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := mocks.NewMockNotificationLogQueries(ctrl)
		db := &mockDBTX{}
		repo := repository.NewNotificationLogRepository(mockQueries, db)

		row := logRow("failed", 3)
		row.LastError = pgtype.Text{String: "bot blocked", Valid: true}
		lastErr := "bot blocked"
		mockQueries.EXPECT().RecordNotificationAttempt(ctx, db, query.RecordNotificationAttemptParams{
			ID:        row.ID,
			Status:    "failed",
			Attempts:  3,
			LastError: pgtype.Text{String: lastErr, Valid: true},
			At:        pgconv.TimeToPgtype(logTime),
		}).Return(row, nil)

		entry, err := repo.RecordAttempt(ctx, shared.RecordAttemptParams{
			ID: row.ID, Status: notification.StatusFailed, Attempts: 3, LastError: &lastErr, At: logTime,
		})
		require.NoError(t, err)
		assert.Equal(t, 3, entry.Attempts)
		require.NotNil(t, entry.LastError)
		assert.Equal(t, "bot blocked", *entry.LastError)
	})

	t.Run("error: row vanished", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := mocks.NewMockNotificationLogQueries(ctrl)
		db := &mockDBTX{}
		repo := repository.NewNotificationLogRepository(mockQueries, db)

		mockQueries.EXPECT().RecordNotificationAttempt(ctx, db, gomock.Any()).Return(query.NotificationLog{}, pgx.ErrNoRows)

		_, err := repo.RecordAttempt(ctx, shared.RecordAttemptParams{ID: uuid.New(), Status: notification.StatusSent, Attempts: 1, At: logTime})
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestNotificationLogRepository_List(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockQueries := mocks.NewMockNotificationLogQueries(ctrl)
	db := &mockDBTX{}
	repo := repository.NewNotificationLogRepository(mockQueries, db)

	recipient := uuid.New()
	status := notification.StatusSent
	before := logTime
	beforeID := uuid.New()

	mockQueries.EXPECT().ListNotificationLogs(ctx, db, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ query.DBTX, arg query.ListNotificationLogsParams) ([]query.NotificationLog, error) {
			assert.Equal(t, recipient, uuid.UUID(arg.RecipientID.Bytes))
			assert.Equal(t, pgtype.Text{String: "sent", Valid: true}, arg.Status)
			assert.True(t, arg.BeforeCreatedAt.Valid)
			assert.Equal(t, beforeID, uuid.UUID(arg.BeforeID.Bytes))
			assert.Equal(t, int32(11), arg.Limit)
			return []query.NotificationLog{logRow("sent", 1), logRow("sent", 2)}, nil
		})

	entries, err := repo.List(ctx, shared.NotificationLogFilter{
		RecipientID:     &recipient,
		Status:          &status,
		BeforeCreatedAt: &before,
		BeforeID:        &beforeID,
		Limit:           11,
	})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
