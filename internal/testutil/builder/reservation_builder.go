package builder

import (
	"time"

	"table-booking/internal/domain/actor"
	"table-booking/internal/domain/reservation"

	"github.com/google/uuid"
)

var BaseTime = time.Date(2030, 6, 1, 9, 0, 0, 0, time.UTC)

type ReservationBuilder struct {
	TableID    uuid.UUID
	ManagerID  *uuid.UUID
	Capacity   int
	CustomerID uuid.UUID
	Start      time.Time
	End        time.Time
	Guests     int
	Services   string
	Now        time.Time
	Status     reservation.Status
}

func NewReservationBuilder() *ReservationBuilder {
	managerID := uuid.New()
	return &ReservationBuilder{
		TableID:    uuid.New(),
		ManagerID:  &managerID,
		Capacity:   4,
		CustomerID: uuid.New(),
		Start:      BaseTime.Add(2 * time.Hour),
		End:        BaseTime.Add(3 * time.Hour),
		Guests:     2,
		Services:   "birthday cake",
		Now:        BaseTime,
		Status:     reservation.StatusPending,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) WithInterval(start, end time.Time) *ReservationBuilder {
	b.Start = start
	b.End = end
	return b
}

func (b *ReservationBuilder) WithTable(id uuid.UUID) *ReservationBuilder {
	b.TableID = id
	return b
}

func (b *ReservationBuilder) WithStatus(s reservation.Status) *ReservationBuilder {
	b.Status = s
	return b
}

func (b *ReservationBuilder) Customer() actor.Actor {
	return actor.New(b.CustomerID, []actor.Role{actor.RoleCustomer}, []actor.Permission{actor.PermissionBookTable})
}

func (b *ReservationBuilder) Manager() actor.Actor {
	return actor.New(*b.ManagerID, []actor.Role{actor.RoleManager}, nil)
}

func (b *ReservationBuilder) Table() reservation.TableSpec {
	return reservation.TableSpec{ID: b.TableID, ManagerID: b.ManagerID, Capacity: b.Capacity}
}

// BuildDomain runs the booking rules and returns a pending reservation.
func (b *ReservationBuilder) BuildDomain() (*reservation.Reservation, error) {
	interval, err := reservation.NewInterval(b.Start, b.End)
	if err != nil {
		return nil, err
	}
	guests, err := reservation.NewGuestCount(b.Guests)
	if err != nil {
		return nil, err
	}
	services, err := reservation.NewServices(b.Services)
	if err != nil {
		return nil, err
	}
	return reservation.NewReservation(b.Table(), b.Customer(), interval, guests, services, b.Now)
}

// BuildStored rebuilds a reservation in the configured status, as if loaded from storage.
func (b *ReservationBuilder) BuildStored() *reservation.Reservation {
	r, err := reservation.Reconstruct(b.Snapshot())
	if err != nil {
		panic(err)
	}
	return r
}

func (b *ReservationBuilder) Snapshot() reservation.Snapshot {
	return reservation.Snapshot{
		ID:         uuid.New(),
		TableID:    b.TableID,
		CustomerID: b.CustomerID,
		ManagerID:  b.ManagerID,
		StartAt:    b.Start,
		EndAt:      b.End,
		GuestCount: b.Guests,
		Services:   b.Services,
		Status:     b.Status,
		CreatedAt:  b.Now,
		UpdatedAt:  b.Now,
	}
}
