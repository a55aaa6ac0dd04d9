package memstore

import (
	"context"
	"sort"

	"table-booking/internal/domain/emergency"
	"table-booking/internal/domain/notification"
	"table-booking/internal/domain/reservation"
	"table-booking/internal/infra"

	"github.com/google/uuid"
)

type emergencyRepo struct {
	state *state
}

func (r *emergencyRepo) Create(_ context.Context, w *emergency.Window) error {
	if _, ok := r.state.emergencies[w.ID()]; ok {
		return infra.NewRepoErr(infra.KindDuplicateKey, "emergency already exists")
	}
	r.state.emergencies[w.ID()] = emergencyRow{
		ID:          w.ID(),
		Name:        w.Name(),
		Description: w.Description(),
		StartAt:     w.Interval().Start(),
		EndAt:       w.Interval().End(),
		CreatedBy:   w.CreatedBy(),
		CreatedAt:   w.CreatedAt(),
	}
	return nil
}

func (r *emergencyRepo) FindByID(_ context.Context, id uuid.UUID) (*emergency.Window, error) {
	row, ok := r.state.emergencies[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "emergency not found")
	}
	return emergency.Reconstruct(row.ID, row.Name, row.Description, row.StartAt, row.EndAt, row.CreatedBy, row.CreatedAt)
}

type tableStore struct {
	state *state
}

func (s *tableStore) FindByID(_ context.Context, id uuid.UUID) (reservation.TableSpec, error) {
	t, ok := s.state.tables[id]
	if !ok {
		return reservation.TableSpec{}, infra.NewRepoErr(infra.KindNotFound, "table not found")
	}
	return t, nil
}

func (s *tableStore) LockForBooking(ctx context.Context, id uuid.UUID) (reservation.TableSpec, error) {
	return s.FindByID(ctx, id)
}

type recipientStore struct {
	state *state
}

func (s *recipientStore) FindByID(_ context.Context, id uuid.UUID) (notification.Recipient, error) {
	r, ok := s.state.recipients[id]
	if !ok {
		return notification.Recipient{}, infra.NewRepoErr(infra.KindNotFound, "recipient not found")
	}
	return r, nil
}

func (s *recipientStore) ListManagers(_ context.Context) ([]notification.Recipient, error) {
	out := make([]notification.Recipient, 0, len(s.state.managers))
	for id := range s.state.managers {
		out = append(out, s.state.recipients[id])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}
