package api

import (
	"errors"
	"net/http"

	"table-booking/internal/domain/actor"
	"table-booking/internal/handler/httperr"
	"table-booking/internal/handler/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errUnauthenticated = errors.New("no authenticated actor in context")

func currentActor(c *gin.Context) (actor.Actor, bool) {
	a, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
	}
	return a, ok
}

func actorAndID(c *gin.Context) (actor.Actor, uuid.UUID, bool) {
	a, ok := currentActor(c)
	if !ok {
		return a, uuid.Nil, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return a, uuid.Nil, false
	}
	return a, id, true
}
