package booking

import (
	"team-schedule-api/core/database"
	"team-schedule-api/core/middleware"
	"team-schedule-api/modules/booking/controller"
	"team-schedule-api/modules/booking/repository"
	"team-schedule-api/modules/booking/router"
	"team-schedule-api/modules/booking/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the booking module and registers routes. The repository
// is returned alongside the service: the availability module reads bookings
// through it, and the team event module persists through the service.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) (service.BookingServiceInterface, *repository.BookingRepository) {
	repo := repository.NewBookingRepository(db)
	svc := service.NewBookingService(repo)
	ctrl := controller.NewBookingController(svc)
	rtr := router.NewBookingRouter(ctrl)

	rtr.Setup(e, mw)

	return svc, repo
}
