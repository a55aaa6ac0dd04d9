package reservation_test

import (
	"testing"
	"time"

	"table-booking/internal/domain/actor"
	"table-booking/internal/domain/reservation"
	"table-booking/internal/testutil/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservation_Apply(t *testing.T) {
	b := builder.NewReservationBuilder()
	admin := actor.New(uuid.New(), []actor.Role{actor.RoleAdmin}, nil)
	otherManager := actor.New(uuid.New(), []actor.Role{actor.RoleManager}, nil)
	staff := actor.New(uuid.New(), []actor.Role{actor.RoleStaff},
		[]actor.Permission{actor.PermissionStartService, actor.PermissionCompleteService})
	stranger := actor.New(uuid.New(), []actor.Role{actor.RoleCustomer}, nil)

	tests := []struct {
		name  string
		from  reservation.Status
		cmd   reservation.Command
		want  reservation.Status
		errIs error
	}{
		{name: "department manager confirms", from: reservation.StatusPending,
			cmd: reservation.Command{Event: reservation.EventConfirm, Actor: b.Manager()}, want: reservation.StatusConfirmed},
		{name: "admin confirms", from: reservation.StatusPending,
			cmd: reservation.Command{Event: reservation.EventConfirm, Actor: admin}, want: reservation.StatusConfirmed},
		{name: "other manager cannot confirm", from: reservation.StatusPending,
			cmd: reservation.Command{Event: reservation.EventConfirm, Actor: otherManager}, errIs: reservation.ErrUnauthorized},
		{name: "customer cannot confirm", from: reservation.StatusPending,
			cmd: reservation.Command{Event: reservation.EventConfirm, Actor: b.Customer()}, errIs: reservation.ErrUnauthorized},
		{name: "confirm on completed", from: reservation.StatusCompleted,
			cmd: reservation.Command{Event: reservation.EventConfirm, Actor: admin}, errIs: reservation.ErrInvalidTransition},
		{name: "source state checked before guard", from: reservation.StatusCompleted,
			cmd: reservation.Command{Event: reservation.EventConfirm, Actor: stranger}, errIs: reservation.ErrInvalidTransition},
		{name: "manager rejects", from: reservation.StatusPending,
			cmd: reservation.Command{Event: reservation.EventReject, Actor: b.Manager()}, want: reservation.StatusRejected},
		{name: "reject confirmed", from: reservation.StatusConfirmed,
			cmd: reservation.Command{Event: reservation.EventReject, Actor: admin}, errIs: reservation.ErrInvalidTransition},
		{name: "owner cancels pending", from: reservation.StatusPending,
			cmd: reservation.Command{Event: reservation.EventCancel, Actor: b.Customer(), Reason: "plans changed"}, want: reservation.StatusCancelled},
		{name: "owner cancels confirmed", from: reservation.StatusConfirmed,
			cmd: reservation.Command{Event: reservation.EventCancel, Actor: b.Customer(), Reason: "ill"}, want: reservation.StatusCancelled},
		{name: "cancel without reason", from: reservation.StatusPending,
			cmd: reservation.Command{Event: reservation.EventCancel, Actor: b.Customer(), Reason: "  "}, errIs: reservation.ErrReasonRequired},
		{name: "stranger cancels", from: reservation.StatusPending,
			cmd: reservation.Command{Event: reservation.EventCancel, Actor: stranger, Reason: "x"}, errIs: reservation.ErrUnauthorized},
		{name: "cancel in service", from: reservation.StatusInService,
			cmd: reservation.Command{Event: reservation.EventCancel, Actor: b.Customer(), Reason: "x"}, errIs: reservation.ErrInvalidTransition},
		{name: "staff starts service", from: reservation.StatusConfirmed,
			cmd: reservation.Command{Event: reservation.EventStartService, Actor: staff}, want: reservation.StatusInService},
		{name: "start service from pending", from: reservation.StatusPending,
			cmd: reservation.Command{Event: reservation.EventStartService, Actor: staff}, errIs: reservation.ErrInvalidTransition},
		{name: "start service without permission", from: reservation.StatusConfirmed,
			cmd: reservation.Command{Event: reservation.EventStartService, Actor: otherManager}, errIs: reservation.ErrUnauthorized},
		{name: "staff completes service", from: reservation.StatusInService,
			cmd: reservation.Command{Event: reservation.EventCompleteService, Actor: staff}, want: reservation.StatusCompleted},
		{name: "system emergency cancel", from: reservation.StatusConfirmed,
			cmd: reservation.Command{Event: reservation.EventEmergencyCancel, Actor: actor.System(), Reason: "Emergency closure: flood"}, want: reservation.StatusCancelled},
		{name: "admin cannot emergency cancel directly", from: reservation.StatusPending,
			cmd: reservation.Command{Event: reservation.EventEmergencyCancel, Actor: admin}, errIs: reservation.ErrUnauthorized},
		{name: "emergency cancel in service", from: reservation.StatusInService,
			cmd: reservation.Command{Event: reservation.EventEmergencyCancel, Actor: actor.System()}, errIs: reservation.ErrInvalidTransition},
		{name: "unknown event", from: reservation.StatusPending,
			cmd: reservation.Command{Event: "archive", Actor: admin}, errIs: reservation.ErrInvalidEvent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := builder.NewReservationBuilder().With(func(rb *builder.ReservationBuilder) {
				rb.CustomerID = b.CustomerID
				rb.ManagerID = b.ManagerID
				rb.Status = tt.from
			}).BuildStored()
			before := r.Snapshot()
			now := b.Now.Add(time.Minute)

			tr, err := r.Apply(tt.cmd, now)

			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				assert.Equal(t, before, r.Snapshot(), "failed transition must not mutate")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Status())
			assert.Equal(t, tt.from, tr.From)
			assert.Equal(t, tt.want, tr.To)
			assert.Equal(t, r.ID(), tr.ReservationID)
			assert.Equal(t, now, tr.At)
			assert.Equal(t, tt.cmd.Actor.AuditID(), tr.ActorID)
		})
	}
}

func TestReservation_ApplyRecordsCancellationReason(t *testing.T) {
	r := builder.NewReservationBuilder().WithStatus(reservation.StatusConfirmed).BuildStored()

	_, err := r.Apply(reservation.Command{
		Event:  reservation.EventEmergencyCancel,
		Actor:  actor.System(),
		Reason: "Emergency closure: Flood",
	}, builder.BaseTime)
	require.NoError(t, err)

	require.NotNil(t, r.CancellationReason())
	assert.Equal(t, "Emergency closure: Flood", *r.CancellationReason())
	assert.False(t, r.IsBlocking())
}

func TestReservation_ApplyOnDeleted(t *testing.T) {
	admin := actor.New(uuid.New(), []actor.Role{actor.RoleAdmin}, nil)
	r := builder.NewReservationBuilder().BuildStored()
	require.NoError(t, r.SoftDelete(admin, builder.BaseTime))

	_, err := r.Apply(reservation.Command{Event: reservation.EventConfirm, Actor: admin}, builder.BaseTime)
	require.ErrorIs(t, err, reservation.ErrInvalidTransition)
}

func TestReservation_AvailableEvents(t *testing.T) {
	tests := map[reservation.Status][]reservation.Event{
		reservation.StatusPending:   {reservation.EventConfirm, reservation.EventReject, reservation.EventCancel},
		reservation.StatusConfirmed: {reservation.EventCancel, reservation.EventStartService},
		reservation.StatusInService: {reservation.EventCompleteService},
		reservation.StatusCompleted: nil,
	}
	for status, want := range tests {
		r := builder.NewReservationBuilder().WithStatus(status).BuildStored()
		assert.Equal(t, want, r.AvailableEvents(), status.String())
	}
}

func TestParseEvent(t *testing.T) {
	ev, err := reservation.ParseEvent("start_service")
	require.NoError(t, err)
	assert.Equal(t, reservation.EventStartService, ev)

	_, err = reservation.ParseEvent("pause")
	require.ErrorIs(t, err, reservation.ErrInvalidEvent)
}

func TestStatus(t *testing.T) {
	for _, s := range reservation.BlockingStatuses() {
		assert.True(t, s.IsBlocking())
		assert.False(t, s.IsTerminal())
	}
	for _, s := range []reservation.Status{reservation.StatusRejected, reservation.StatusCancelled, reservation.StatusCompleted} {
		assert.False(t, s.IsBlocking())
		assert.True(t, s.IsTerminal())
	}
	_, err := reservation.ParseStatus("unknown")
	require.ErrorIs(t, err, reservation.ErrInvalidStatus)
}
