package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"table-booking/internal/domain/actor"
	"table-booking/internal/domain/reservation"
	"table-booking/internal/handler/api"
	"table-booking/internal/handler/httperr"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/testutil/builder"
	"table-booking/internal/usecase/commands"
	cmdmocks "table-booking/internal/usecase/commands/mocks"
	"table-booking/internal/usecase/queries"
	querymocks "table-booking/internal/usecase/queries/mocks"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *cmdmocks.MockReservationCommands
	mockQueries  *querymocks.MockReservationQueries
	handler      *api.ReservationHandler
	builder      *builder.ReservationBuilder
	caller       actor.Actor
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = cmdmocks.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = querymocks.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries)
	s.builder = builder.NewReservationBuilder()
	s.caller = s.builder.Customer()

	auth := fakeAuth(s.caller)
	s.router.POST("/reservations", auth, s.handler.Create)
	s.router.GET("/reservations/:id", auth, s.handler.Get)
	s.router.PATCH("/reservations/:id", auth, s.handler.Update)
	s.router.POST("/reservations/:id/transitions", auth, s.handler.Transition)
	s.router.DELETE("/reservations/:id", auth, s.handler.Delete)
	s.router.POST("/reservations/:id/restore", auth, s.handler.Restore)
	s.router.GET("/reservations/:id/audit", auth, s.handler.Audit)
	// no auth middleware: the handler must refuse on its own
	s.router.GET("/open/reservations/:id", s.handler.Get)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func (s *ReservationHandlerTestSuite) createBody() map[string]any {
	return map[string]any{
		"table_id":    s.builder.TableID.String(),
		"start_at":    s.builder.Start.Format(time.RFC3339),
		"end_at":      s.builder.End.Format(time.RFC3339),
		"guest_count": s.builder.Guests,
		"services":    s.builder.Services,
	}
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCreate() {
	url := "/reservations"
	stored := s.builder.BuildStored()

	s.Run("success: returns 201 with Location", func() {
		s.mockCommands.EXPECT().
			CreateReservation(gomock.Any(), s.caller, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ actor.Actor, in commands.CreateReservationInput) (*reservation.Reservation, error) {
				s.Equal(s.builder.TableID, in.TableID)
				s.True(in.Start.Equal(s.builder.Start))
				s.True(in.End.Equal(s.builder.End))
				s.Equal(2, in.GuestCount)
				return stored, nil
			}).Times(1)

		rec := performRequest(s.T(), s.router, http.MethodPost, url, s.createBody())

		var view queries.ReservationView
		assertSuccess(s.T(), rec, http.StatusCreated, &view)
		s.Equal(stored.ID(), view.ID)
		s.Equal("pending", view.Status)
		s.Equal("/api/reservations/"+stored.ID().String(), rec.Header().Get("Location"))
	})

	cases := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{name: "missing table_id", mutate: field("table_id", nil)},
		{name: "missing start_at", mutate: field("start_at", nil)},
		{name: "missing guest_count", mutate: field("guest_count", nil)},
		{name: "guest_count zero", mutate: field("guest_count", 0)},
		{name: "services too long", mutate: field("services", strings.Repeat("a", 2001))},
		{name: "start_at not a timestamp", mutate: field("start_at", "tomorrow")},
	}
	for _, tc := range cases {
		s.Run("validation: "+tc.name, func() {
			body := s.createBody()
			tc.mutate(body)
			rec := performRequest(s.T(), s.router, http.MethodPost, url, body)
			assertError(s.T(), rec, http.StatusBadRequest, "Invalid request")
		})
	}

	s.Run("malformed JSON returns 400", func() {
		rec := performRequest(s.T(), s.router, http.MethodPost, url, "{not json")
		assertError(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("overlap returns 409 with the conflicting intervals", func() {
		existing := builder.NewReservationBuilder().WithTable(s.builder.TableID).
			WithStatus(reservation.StatusConfirmed).BuildStored()
		conflict := reservation.NewConflictError(s.builder.TableID, existing.Interval(), []*reservation.Reservation{existing})
		s.mockCommands.EXPECT().CreateReservation(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Wrap(conflict, "create reservation")).Times(1)

		rec := performRequest(s.T(), s.router, http.MethodPost, url, s.createBody())
		body := assertError(s.T(), rec, http.StatusConflict, "unavailable")

		var detail httperr.ConflictDetail
		s.Require().NoError(json.Unmarshal(body.Detail, &detail))
		s.Equal(s.builder.TableID.String(), detail.TableID)
		s.Require().Len(detail.Conflicts, 1)
		s.Equal(existing.ID().String(), detail.Conflicts[0].ReservationID)
		s.Equal("confirmed", detail.Conflicts[0].Status)
	})

	s.Run("capacity exceeded returns 422", func() {
		s.mockCommands.EXPECT().CreateReservation(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, reservation.ErrCapacityExceeded).Times(1)
		rec := performRequest(s.T(), s.router, http.MethodPost, url, s.createBody())
		assertError(s.T(), rec, http.StatusUnprocessableEntity, "capacity")
	})

	s.Run("unknown table returns 404", func() {
		s.mockCommands.EXPECT().CreateReservation(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.New("no rows"), errs.ErrTableNotFound)).Times(1)
		rec := performRequest(s.T(), s.router, http.MethodPost, url, s.createBody())
		assertError(s.T(), rec, http.StatusNotFound, "table not found")
	})

	s.Run("missing booking permission returns 403", func() {
		s.mockCommands.EXPECT().CreateReservation(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, reservation.ErrUnauthorized).Times(1)
		rec := performRequest(s.T(), s.router, http.MethodPost, url, s.createBody())
		assertError(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("store failure returns 500", func() {
		s.mockCommands.EXPECT().CreateReservation(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrDatabaseOperationFailed).Times(1)
		rec := performRequest(s.T(), s.router, http.MethodPost, url, s.createBody())
		assertError(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGet() {
	stored := s.builder.BuildStored()
	view := queries.NewReservationView(stored)

	s.Run("success", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.caller, stored.ID()).Return(view, nil).Times(1)
		rec := performRequest(s.T(), s.router, http.MethodGet, "/reservations/"+stored.ID().String(), nil)

		var got queries.ReservationView
		assertSuccess(s.T(), rec, http.StatusOK, &got)
		s.Equal(stored.ID(), got.ID)
		s.ElementsMatch([]string{"confirm", "reject", "cancel"}, got.AvailableEvents)
	})

	s.Run("invalid id returns 400", func() {
		rec := performRequest(s.T(), s.router, http.MethodGet, "/reservations/not-a-uuid", nil)
		assertError(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("not visible returns 404", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), id).
			Return(nil, errs.ErrReservationNotFound).Times(1)
		rec := performRequest(s.T(), s.router, http.MethodGet, "/reservations/"+id.String(), nil)
		assertError(s.T(), rec, http.StatusNotFound, "reservation not found")
	})

	s.Run("no actor in context returns 401", func() {
		rec := performRequest(s.T(), s.router, http.MethodGet, "/open/reservations/"+uuid.NewString(), nil)
		assertError(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

// ================================================================================
// TestUpdate
// ================================================================================

func (s *ReservationHandlerTestSuite) TestUpdate() {
	stored := s.builder.BuildStored()
	current := queries.NewReservationView(stored)
	url := "/reservations/" + stored.ID().String()

	s.Run("absent fields keep their current value", func() {
		newEnd := s.builder.End.Add(30 * time.Minute)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.caller, stored.ID()).Return(current, nil).Times(1)
		s.mockCommands.EXPECT().
			UpdateReservation(gomock.Any(), s.caller, stored.ID(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ actor.Actor, _ uuid.UUID, in commands.UpdateReservationInput) (*reservation.Reservation, error) {
				s.True(in.Start.Equal(s.builder.Start))
				s.True(in.End.Equal(newEnd))
				s.Equal(4, in.GuestCount)
				s.Equal(s.builder.Services, in.Services)
				return stored, nil
			}).Times(1)

		rec := performRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{
			"end_at":      newEnd.Format(time.RFC3339),
			"guest_count": 4,
		})
		assertSuccess(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("empty patch returns 400", func() {
		rec := performRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{})
		assertError(s.T(), rec, http.StatusBadRequest, "No fields to update")
	})

	s.Run("guest_count below one returns 400", func() {
		rec := performRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"guest_count": 0})
		assertError(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("not editable returns 422", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), stored.ID()).Return(current, nil).Times(1)
		s.mockCommands.EXPECT().UpdateReservation(gomock.Any(), gomock.Any(), stored.ID(), gomock.Any()).
			Return(nil, reservation.ErrNotEditable).Times(1)
		rec := performRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"services": "window seat"})
		assertError(s.T(), rec, http.StatusUnprocessableEntity, "edited")
	})

	s.Run("lookup failure stops before the command", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), stored.ID()).
			Return(nil, errs.ErrReservationNotFound).Times(1)
		rec := performRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"services": "x"})
		assertError(s.T(), rec, http.StatusNotFound, "")
	})
}

// ================================================================================
// TestTransition
// ================================================================================

func (s *ReservationHandlerTestSuite) TestTransition() {
	stored := s.builder.BuildStored()
	url := "/reservations/" + stored.ID().String() + "/transitions"

	s.Run("cancel passes event and reason", func() {
		cancelled := builder.NewReservationBuilder().WithStatus(reservation.StatusCancelled).BuildStored()
		s.mockCommands.EXPECT().
			Transition(gomock.Any(), s.caller, stored.ID(), commands.TransitionInput{Event: reservation.EventCancel, Reason: "plans changed"}).
			Return(cancelled, nil).Times(1)

		rec := performRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"event": "cancel", "reason": "plans changed"})
		var got queries.ReservationView
		assertSuccess(s.T(), rec, http.StatusOK, &got)
		s.Equal("cancelled", got.Status)
		s.Empty(got.AvailableEvents)
	})

	s.Run("unknown event returns 400 without calling the command", func() {
		rec := performRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"event": "teleport"})
		assertError(s.T(), rec, http.StatusBadRequest, "invalid reservation event")
	})

	s.Run("missing event returns 400", func() {
		rec := performRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": "x"})
		assertError(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("illegal transition returns 422", func() {
		s.mockCommands.EXPECT().Transition(gomock.Any(), gomock.Any(), stored.ID(), gomock.Any()).
			Return(nil, errs.Wrap(reservation.ErrInvalidTransition, "complete_service from pending")).Times(1)
		rec := performRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"event": "complete_service"})
		assertError(s.T(), rec, http.StatusUnprocessableEntity, "transition not allowed")
	})

	s.Run("reason required returns 400", func() {
		s.mockCommands.EXPECT().Transition(gomock.Any(), gomock.Any(), stored.ID(), gomock.Any()).
			Return(nil, reservation.ErrReasonRequired).Times(1)
		rec := performRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"event": "reject"})
		assertError(s.T(), rec, http.StatusBadRequest, "reason is required")
	})

	s.Run("wrong actor returns 403", func() {
		s.mockCommands.EXPECT().Transition(gomock.Any(), gomock.Any(), stored.ID(), gomock.Any()).
			Return(nil, reservation.ErrUnauthorized).Times(1)
		rec := performRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"event": "confirm"})
		assertError(s.T(), rec, http.StatusForbidden, "")
	})
}

// ================================================================================
// TestDeleteRestore
// ================================================================================

func (s *ReservationHandlerTestSuite) TestDeleteRestore() {
	stored := s.builder.BuildStored()
	url := "/reservations/" + stored.ID().String()

	s.Run("delete returns 204", func() {
		s.mockCommands.EXPECT().SoftDelete(gomock.Any(), s.caller, stored.ID()).Return(nil).Times(1)
		rec := performRequest(s.T(), s.router, http.MethodDelete, url, nil)
		s.Equal(http.StatusNoContent, rec.Code)
		s.Empty(rec.Body.String())
	})

	s.Run("delete twice returns 422", func() {
		s.mockCommands.EXPECT().SoftDelete(gomock.Any(), gomock.Any(), stored.ID()).
			Return(reservation.ErrAlreadyDeleted).Times(1)
		rec := performRequest(s.T(), s.router, http.MethodDelete, url, nil)
		assertError(s.T(), rec, http.StatusUnprocessableEntity, "already deleted")
	})

	s.Run("restore returns the reservation", func() {
		s.mockCommands.EXPECT().Restore(gomock.Any(), s.caller, stored.ID()).Return(stored, nil).Times(1)
		rec := performRequest(s.T(), s.router, http.MethodPost, url+"/restore", nil)
		var got queries.ReservationView
		assertSuccess(s.T(), rec, http.StatusOK, &got)
		s.Equal(stored.ID(), got.ID)
	})

	s.Run("restore into an occupied slot returns 409", func() {
		s.mockCommands.EXPECT().Restore(gomock.Any(), gomock.Any(), stored.ID()).
			Return(nil, reservation.NewConflictError(stored.TableID(), stored.Interval(), nil)).Times(1)
		rec := performRequest(s.T(), s.router, http.MethodPost, url+"/restore", nil)
		assertError(s.T(), rec, http.StatusConflict, "")
	})
}

// ================================================================================
// TestAudit
// ================================================================================

func (s *ReservationHandlerTestSuite) TestAudit() {
	id := uuid.New()

	s.Run("success", func() {
		trail := &queries.AuditTrailView{ReservationID: id}
		s.mockQueries.EXPECT().AuditTrail(gomock.Any(), s.caller, id).Return(trail, nil).Times(1)
		rec := performRequest(s.T(), s.router, http.MethodGet, "/reservations/"+id.String()+"/audit", nil)
		var got queries.AuditTrailView
		assertSuccess(s.T(), rec, http.StatusOK, &got)
		s.Equal(id, got.ReservationID)
	})

	s.Run("forbidden", func() {
		s.mockQueries.EXPECT().AuditTrail(gomock.Any(), gomock.Any(), id).
			Return(nil, reservation.ErrUnauthorized).Times(1)
		rec := performRequest(s.T(), s.router, http.MethodGet, "/reservations/"+id.String()+"/audit", nil)
		assertError(s.T(), rec, http.StatusForbidden, "")
	})
}
