package handler

import (
	"net/http"

	"table-booking/internal/domain/actor"
	"table-booking/internal/handler/api"
	"table-booking/internal/handler/middleware"
	"table-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Reservations  *api.ReservationHandler
	Tables        *api.TableHandler
	Emergencies   *api.EmergencyHandler
	Notifications *api.NotificationHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		reservations := apiGroup.Group("/reservations")
		addRoutes(reservations, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Reservations.Create},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Reservations.Get},
			{Method: http.MethodPatch, Path: "/:id", Handler: h.Reservations.Update},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.Reservations.Delete},
			{Method: http.MethodPost, Path: "/:id/transitions", Handler: h.Reservations.Transition},
			{Method: http.MethodPost, Path: "/:id/restore", Handler: h.Reservations.Restore},
			{Method: http.MethodGet, Path: "/:id/audit", Handler: h.Reservations.Audit},
		})

		tables := apiGroup.Group("/tables")
		addRoutes(tables, []route{
			{Method: http.MethodGet, Path: "/:id/availability", Handler: h.Tables.Availability},
		})

		emergencies := apiGroup.Group("/emergencies")
		triggerOnly := authMiddleware.RequirePermissionOrRole(actor.PermissionTriggerEmergency, actor.RoleAdmin)
		addRoutes(emergencies, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Emergencies.Declare, Mw: []gin.HandlerFunc{triggerOnly}},
			{Method: http.MethodPost, Path: "/:id/trigger", Handler: h.Emergencies.Trigger, Mw: []gin.HandlerFunc{triggerOnly}},
		})

		notifications := apiGroup.Group("/notifications")
		dispatchOnly := authMiddleware.RequirePermissionOrRole(actor.PermissionDispatchNotification, actor.RoleAdmin)
		addRoutes(notifications, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Notifications.Dispatch, Mw: []gin.HandlerFunc{dispatchOnly}},
			{Method: http.MethodGet, Path: "", Handler: h.Notifications.List},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
