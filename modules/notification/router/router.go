package router

import (
	"team-schedule-api/core/middleware"
	"team-schedule-api/modules/notification/controller"

	"github.com/labstack/echo/v4"
)

type NotificationRouter struct {
	controller *controller.NotificationController
}

func NewNotificationRouter(controller *controller.NotificationController) *NotificationRouter {
	return &NotificationRouter{controller: controller}
}

// Setup registers notification routes
func (r *NotificationRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	group := v1.Group("/hosts/:id/notifications")
	group.GET("", r.controller.GetHostNotifications)
	group.GET("/unread-count", r.controller.CountUnread)
	group.PUT("/mark-read", r.controller.MarkAsRead, mw.RateLimitMiddleware())
	group.PUT("/mark-all-read", r.controller.MarkAllAsRead, mw.RateLimitMiddleware())
}
