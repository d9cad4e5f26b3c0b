package router

import (
	"team-schedule-api/core/middleware"
	"team-schedule-api/modules/availability/controller"

	"github.com/labstack/echo/v4"
)

// AvailabilityRouter handles schedule and block routes
type AvailabilityRouter struct {
	AvailabilityController *controller.AvailabilityController
}

// NewAvailabilityRouter creates a new router
func NewAvailabilityRouter(availabilityController *controller.AvailabilityController) *AvailabilityRouter {
	return &AvailabilityRouter{
		AvailabilityController: availabilityController,
	}
}

// Setup registers availability routes under the host resource
func (r *AvailabilityRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	hostRoutes := v1.Group("/hosts")
	hostRoutes.PUT("/:id/schedule", r.AvailabilityController.SetWeeklySchedule, mw.RateLimitMiddleware())
	hostRoutes.GET("/:id/schedule", r.AvailabilityController.GetWeeklySchedule)
	hostRoutes.POST("/:id/blocks", r.AvailabilityController.CreateBlockedDate, mw.RateLimitMiddleware())
	hostRoutes.GET("/:id/blocks", r.AvailabilityController.ListBlockedDates)
	hostRoutes.DELETE("/:id/blocks/:blockId", r.AvailabilityController.DeleteBlockedDate, mw.RateLimitMiddleware())
	hostRoutes.GET("/:id/slots", r.AvailabilityController.GetHostSlots)
}
