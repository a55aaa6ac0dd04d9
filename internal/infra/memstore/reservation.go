package memstore

import (
	"context"
	"sort"

	"table-booking/internal/domain/reservation"
	"table-booking/internal/infra"

	"github.com/google/uuid"
)

type reservationRepo struct {
	state *state
}

func (r *reservationRepo) Create(_ context.Context, res *reservation.Reservation) error {
	snap := res.Snapshot()
	if _, ok := r.state.reservations[snap.ID]; ok {
		return infra.NewRepoErr(infra.KindDuplicateKey, "reservation already exists")
	}
	if _, ok := r.state.tables[snap.TableID]; !ok {
		return infra.NewRepoErr(infra.KindForeignKeyViolated, "table does not exist")
	}
	if err := r.checkExclusion(snap); err != nil {
		return err
	}
	r.state.reservations[snap.ID] = snap
	return nil
}

func (r *reservationRepo) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	snap, ok := r.state.reservations[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "reservation not found")
	}
	return reservation.Reconstruct(snap)
}

// LockByID is FindByID: the store mutex already serializes transactions.
func (r *reservationRepo) LockByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return r.FindByID(ctx, id)
}

func (r *reservationRepo) Save(_ context.Context, res *reservation.Reservation) error {
	snap := res.Snapshot()
	if _, ok := r.state.reservations[snap.ID]; !ok {
		return infra.NewRepoErr(infra.KindNotFound, "reservation not found")
	}
	if err := r.checkExclusion(snap); err != nil {
		return err
	}
	r.state.reservations[snap.ID] = snap
	return nil
}

func (r *reservationRepo) FindOverlapping(_ context.Context, tableID uuid.UUID, interval reservation.Interval, excludeID *uuid.UUID) ([]*reservation.Reservation, error) {
	return r.collect(func(s reservation.Snapshot) bool {
		if s.TableID != tableID {
			return false
		}
		if excludeID != nil && s.ID == *excludeID {
			return false
		}
		return isBlocking(s) && overlaps(s, interval)
	})
}

func (r *reservationRepo) FindOverlappingAcrossWindow(_ context.Context, interval reservation.Interval) ([]*reservation.Reservation, error) {
	return r.collect(func(s reservation.Snapshot) bool {
		return isBlocking(s) && overlaps(s, interval)
	})
}

func (r *reservationRepo) ListByManager(_ context.Context, managerID uuid.UUID, interval reservation.Interval) ([]*reservation.Reservation, error) {
	return r.collect(func(s reservation.Snapshot) bool {
		if s.DeletedAt != nil || s.ManagerID == nil || *s.ManagerID != managerID {
			return false
		}
		return !s.StartAt.Before(interval.Start()) && s.StartAt.Before(interval.End())
	})
}

// checkExclusion mirrors the postgres exclusion constraint.
func (r *reservationRepo) checkExclusion(snap reservation.Snapshot) error {
	if !isBlocking(snap) {
		return nil
	}
	interval, err := reservation.NewInterval(snap.StartAt, snap.EndAt)
	if err != nil {
		return err
	}
	for _, other := range r.state.reservations {
		if other.ID == snap.ID || other.TableID != snap.TableID {
			continue
		}
		if isBlocking(other) && overlaps(other, interval) {
			return infra.NewRepoErr(infra.KindConflict, "overlapping reservation on table")
		}
	}
	return nil
}

func (r *reservationRepo) collect(match func(reservation.Snapshot) bool) ([]*reservation.Reservation, error) {
	var out []*reservation.Reservation
	for _, s := range r.state.reservations {
		if !match(s) {
			continue
		}
		res, err := reservation.Reconstruct(s)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool {
		si, sj := out[i].Interval().Start(), out[j].Interval().Start()
		if si.Equal(sj) {
			return out[i].ID().String() < out[j].ID().String()
		}
		return si.Before(sj)
	})
	return out, nil
}

func isBlocking(s reservation.Snapshot) bool {
	return s.DeletedAt == nil && s.Status.IsBlocking()
}

func overlaps(s reservation.Snapshot, interval reservation.Interval) bool {
	return s.StartAt.Before(interval.End()) && interval.Start().Before(s.EndAt)
}
