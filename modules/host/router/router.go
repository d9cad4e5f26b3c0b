package router

import (
	"team-schedule-api/core/middleware"
	"team-schedule-api/modules/host/controller"

	"github.com/labstack/echo/v4"
)

// HostRouter handles host routes
type HostRouter struct {
	HostController *controller.HostController
}

// NewHostRouter creates a new router
func NewHostRouter(hostController *controller.HostController) *HostRouter {
	return &HostRouter{
		HostController: hostController,
	}
}

// Setup registers host routes
func (r *HostRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	hostRoutes := v1.Group("/hosts")
	hostRoutes.POST("", r.HostController.CreateHost, mw.RateLimitMiddleware())
	hostRoutes.GET("", r.HostController.ListHosts)
	hostRoutes.GET("/:id", r.HostController.GetHost)
	hostRoutes.PUT("/:id/settings", r.HostController.UpdateSettings, mw.RateLimitMiddleware())
	hostRoutes.DELETE("/:id", r.HostController.DeactivateHost, mw.RateLimitMiddleware())
}
