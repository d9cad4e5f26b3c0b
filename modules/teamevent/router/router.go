package router

import (
	"team-schedule-api/core/middleware"
	"team-schedule-api/modules/teamevent/controller"

	"github.com/labstack/echo/v4"
)

// TeamEventRouter handles team event routes
type TeamEventRouter struct {
	TeamEventController *controller.TeamEventController
}

// NewTeamEventRouter creates a new router
func NewTeamEventRouter(teamEventController *controller.TeamEventController) *TeamEventRouter {
	return &TeamEventRouter{
		TeamEventController: teamEventController,
	}
}

// Setup registers team event routes
func (r *TeamEventRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	teamRoutes := v1.Group("/team-event-types")
	teamRoutes.POST("", r.TeamEventController.CreateTeamEventType, mw.RateLimitMiddleware())
	teamRoutes.GET("", r.TeamEventController.ListTeamEventTypes)
	teamRoutes.POST("/validate-hosts", r.TeamEventController.ValidateHosts)
	teamRoutes.GET("/:id", r.TeamEventController.GetTeamEventType)
	teamRoutes.PUT("/:id", r.TeamEventController.UpdateTeamEventType, mw.RateLimitMiddleware())
	teamRoutes.DELETE("/:id", r.TeamEventController.DeleteTeamEventType, mw.RateLimitMiddleware())
	teamRoutes.PATCH("/:id/active", r.TeamEventController.SetActive, mw.RateLimitMiddleware())
	teamRoutes.GET("/:id/slots", r.TeamEventController.GetTeamSlots)
	teamRoutes.GET("/:id/slots/individual", r.TeamEventController.GetIndividualSlots)
	teamRoutes.GET("/:id/slots/check", r.TeamEventController.CheckSlot)
	teamRoutes.POST("/:id/next-host", r.TeamEventController.NextHost, mw.RateLimitMiddleware())
	teamRoutes.POST("/:id/bookings", r.TeamEventController.CreateTeamBooking, mw.RateLimitMiddleware())
}
