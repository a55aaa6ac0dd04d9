package memstore

import (
	"context"
	"sort"
	"time"

	"table-booking/internal/domain/notification"
	"table-booking/internal/infra"
	"table-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type notificationLogRepo struct {
	state *state
}

func (r *notificationLogRepo) BeginAttempt(_ context.Context, p shared.BeginAttemptParams) (notification.LogEntry, error) {
	for i, e := range r.state.logs {
		if e.RecipientID == p.RecipientID && e.Reason == p.Reason && e.SubjectKey == p.SubjectKey {
			e.Channel = p.Channel
			e.Description = p.Description
			e.Status = notification.StatusAttempting
			e.UpdatedAt = p.At
			r.state.logs[i] = e
			return e, nil
		}
	}
	entry := notification.LogEntry{
		ID:          uuid.New(),
		RecipientID: p.RecipientID,
		Channel:     p.Channel,
		Reason:      p.Reason,
		SubjectKey:  p.SubjectKey,
		Description: p.Description,
		Status:      notification.StatusAttempting,
		CreatedAt:   p.At,
		UpdatedAt:   p.At,
	}
	r.state.logs = append(r.state.logs, entry)
	return entry, nil
}

func (r *notificationLogRepo) RecordAttempt(_ context.Context, p shared.RecordAttemptParams) (notification.LogEntry, error) {
	for i, e := range r.state.logs {
		if e.ID != p.ID {
			continue
		}
		e.Status = p.Status
		e.Attempts = p.Attempts
		e.LastError = p.LastError
		e.UpdatedAt = p.At
		r.state.logs[i] = e
		return e, nil
	}
	return notification.LogEntry{}, infra.NewRepoErr(infra.KindNotFound, "notification log not found")
}

func (r *notificationLogRepo) List(_ context.Context, filter shared.NotificationLogFilter) ([]notification.LogEntry, error) {
	var out []notification.LogEntry
	for _, e := range r.state.logs {
		if filter.RecipientID != nil && e.RecipientID != *filter.RecipientID {
			continue
		}
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		if filter.BeforeCreatedAt != nil && filter.BeforeID != nil && !newer(*filter.BeforeCreatedAt, *filter.BeforeID, e) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return newer(out[i].CreatedAt, out[i].ID, out[j])
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// newer reports whether (t, id) sorts after e in (created_at, id) order.
func newer(t time.Time, id uuid.UUID, e notification.LogEntry) bool {
	if t.Equal(e.CreatedAt) {
		return id.String() > e.ID.String()
	}
	return t.After(e.CreatedAt)
}
