package router

import (
	"team-schedule-api/core/middleware"
	"team-schedule-api/modules/booking/controller"

	"github.com/labstack/echo/v4"
)

// BookingRouter handles booking routes
type BookingRouter struct {
	BookingController *controller.BookingController
}

// NewBookingRouter creates a new router
func NewBookingRouter(bookingController *controller.BookingController) *BookingRouter {
	return &BookingRouter{
		BookingController: bookingController,
	}
}

// Setup registers booking routes
func (r *BookingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	bookingRoutes := v1.Group("/bookings")
	bookingRoutes.GET("/:id", r.BookingController.GetBooking)
	bookingRoutes.GET("/ref/:code", r.BookingController.GetBookingByReference)
	bookingRoutes.POST("/:id/cancel", r.BookingController.CancelBooking, mw.RateLimitMiddleware())
	bookingRoutes.POST("/:id/reschedule", r.BookingController.RescheduleBooking, mw.RateLimitMiddleware())

	v1.GET("/hosts/:id/bookings", r.BookingController.ListHostBookings)
}
