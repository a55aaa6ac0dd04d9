package httperr

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"table-booking/internal/domain/actor"
	"table-booking/internal/domain/emergency"
	"table-booking/internal/domain/notification"
	"table-booking/internal/domain/reservation"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// ConflictDetail lists the blocking reservations behind a 409.
type ConflictDetail struct {
	TableID   string             `json:"table_id"`
	Conflicts []ConflictInterval `json:"conflicts"`
}

type ConflictInterval struct {
	ReservationID string `json:"reservation_id"`
	Start         string `json:"start"`
	End           string `json:"end"`
	Status        string `json:"status"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(&gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

var badRequest = []error{
	reservation.ErrInvalidInterval,
	reservation.ErrInvalidGuestCount,
	reservation.ErrServicesTooLong,
	reservation.ErrInvalidEvent,
	reservation.ErrInvalidStatus,
	reservation.ErrReasonRequired,
	emergency.ErrInvalidName,
	emergency.ErrNameTooLong,
	notification.ErrInvalidChannel,
	notification.ErrInvalidReason,
	notification.ErrMissingSubjectKey,
	actor.ErrInvalidRole,
	actor.ErrInvalidPermission,
	queries.ErrInvalidCursor,
}

var unprocessable = []error{
	reservation.ErrInvalidTransition,
	reservation.ErrCapacityExceeded,
	reservation.ErrNotEditable,
	reservation.ErrAlreadyDeleted,
	reservation.ErrNotDeleted,
}

var notFound = []error{
	errs.ErrReservationNotFound,
	errs.ErrTableNotFound,
	errs.ErrEmergencyNotFound,
	errs.ErrRecipientNotFound,
}

// AbortWithUseCaseError maps command and query errors to a status code.
// Unknown errors become a 500 and are logged.
func AbortWithUseCaseError(c *gin.Context, err error) {
	var conflict *reservation.ConflictError
	switch {
	case errors.As(err, &conflict):
		AbortWithError(c, http.StatusConflict, err, "Table is unavailable for the requested interval", conflictDetail(conflict))
	case errors.Is(err, reservation.ErrTableUnavailable):
		AbortWithError(c, http.StatusConflict, err, "Table is unavailable for the requested interval", nil)
	case errors.Is(err, reservation.ErrUnauthorized), errors.Is(err, emergency.ErrUnauthorized):
		AbortWithError(c, http.StatusForbidden, err, "Insufficient permissions", nil)
	case matchAny(err, notFound):
		AbortWithError(c, http.StatusNotFound, err, messageOf(err, notFound), nil)
	case matchAny(err, badRequest):
		AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
	case matchAny(err, unprocessable):
		AbortWithError(c, http.StatusUnprocessableEntity, err, err.Error(), nil)
	default:
		slog.Error("unhandled usecase error",
			"path", c.FullPath(),
			"error", err.Error(),
			"stack", errs.ExtractStackLines(err, 10))
		AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func matchAny(err error, refs []error) bool {
	for _, ref := range refs {
		if errs.Is(err, ref) {
			return true
		}
	}
	return false
}

func messageOf(err error, refs []error) string {
	for _, ref := range refs {
		if errs.Is(err, ref) {
			return ref.Error()
		}
	}
	return err.Error()
}

func conflictDetail(e *reservation.ConflictError) ConflictDetail {
	d := ConflictDetail{TableID: e.TableID.String(), Conflicts: make([]ConflictInterval, 0, len(e.Conflicts))}
	for _, c := range e.Conflicts {
		d.Conflicts = append(d.Conflicts, ConflictInterval{
			ReservationID: c.ReservationID.String(),
			Start:         c.Interval.Start().Format(time.RFC3339),
			End:           c.Interval.End().Format(time.RFC3339),
			Status:        c.Status.String(),
		})
	}
	return d
}
