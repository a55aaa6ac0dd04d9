package api

import (
	"net/http"

	reqdto "table-booking/internal/handler/dto/request"
	resdto "table-booking/internal/handler/dto/response"
	"table-booking/internal/handler/httperr"
	"table-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type EmergencyHandler struct {
	cmds commands.EmergencyCommands
}

func NewEmergencyHandler(cmds commands.EmergencyCommands) *EmergencyHandler {
	return &EmergencyHandler{cmds: cmds}
}

// @Summary Declare an emergency closure
// @Description Stores the window and cancels every blocking reservation overlapping it, notifying the customers
// @Tags emergencies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateEmergencyRequest true "Closure window"
// @Success 201 {object} resdto.CascadeResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /emergencies [post]
func (h *EmergencyHandler) Declare(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	var req reqdto.CreateEmergencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	w, result, err := h.cmds.DeclareEmergency(c.Request.Context(), a, req.ToInput())
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.Header("Location", "/api/emergencies/"+w.ID().String())
	c.JSON(http.StatusCreated, resdto.FromCascade(w, result))
}

// @Summary Re-run a stored emergency closure
// @Tags emergencies
// @Produce json
// @Security BearerAuth
// @Param id path string true "Emergency ID"
// @Success 200 {object} resdto.CascadeResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /emergencies/{id}/trigger [post]
func (h *EmergencyHandler) Trigger(c *gin.Context) {
	a, id, ok := actorAndID(c)
	if !ok {
		return
	}
	w, result, err := h.cmds.TriggerEmergencyByID(c.Request.Context(), id, a)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCascade(w, result))
}
