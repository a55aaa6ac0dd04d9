package api

import (
	"net/http"

	reqdto "table-booking/internal/handler/dto/request"
	resdto "table-booking/internal/handler/dto/response"
	"table-booking/internal/handler/httperr"
	"table-booking/internal/usecase/commands"
	"table-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	cmds commands.NotificationCommands
	q    queries.NotificationQueries
}

func NewNotificationHandler(cmds commands.NotificationCommands, q queries.NotificationQueries) *NotificationHandler {
	return &NotificationHandler{cmds: cmds, q: q}
}

// @Summary Dispatch a notification
// @Description Sends one message synchronously. Delivery failures are reported in the body, not as an error status.
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.DispatchNotificationRequest true "Message"
// @Success 200 {object} resdto.DispatchResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /notifications [post]
func (h *NotificationHandler) Dispatch(c *gin.Context) {
	var req reqdto.DispatchNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	channel, reason, payload, err := req.Parse()
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	outcome, err := h.cmds.DispatchTo(c.Request.Context(), req.RecipientID, channel, reason, payload)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOutcome(outcome))
}

// @Summary List notification log
// @Description Admins see every row; other callers only their own
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param recipient_id query string false "Recipient ID"
// @Param status query string false "attempting | sent | failed"
// @Param cursor query string false "Opaque cursor from a previous page"
// @Param limit query int false "Page size (1-100)"
// @Success 200 {object} queries.NotificationLogPage
// @Failure 400 {object} httperr.Response
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	var form reqdto.ListNotificationsQuery
	if err := c.ShouldBindQuery(&form); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	q, err := form.ToQuery()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	page, err := h.q.ListLogs(c.Request.Context(), a, q)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
