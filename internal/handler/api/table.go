package api

import (
	"net/http"
	"time"

	"table-booking/internal/handler/httperr"
	"table-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TableHandler struct {
	q   queries.AvailabilityQueries
	loc *time.Location
}

func NewTableHandler(q queries.AvailabilityQueries, loc *time.Location) *TableHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &TableHandler{q: q, loc: loc}
}

// @Summary Table availability
// @Description Blocking reservations on the table for one calendar day in the booking time zone
// @Tags tables
// @Produce json
// @Security BearerAuth
// @Param id path string true "Table ID"
// @Param date query string true "Day (YYYY-MM-DD)"
// @Success 200 {object} queries.AvailabilityView
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /tables/{id}/availability [get]
func (h *TableHandler) Availability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	day, err := time.ParseInLocation(time.DateOnly, c.Query("date"), h.loc)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date, expected YYYY-MM-DD", nil)
		return
	}
	view, err := h.q.TableAvailability(c.Request.Context(), id, day)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
