package availability

import (
	"team-schedule-api/core/database"
	"team-schedule-api/core/middleware"
	"team-schedule-api/modules/availability/controller"
	"team-schedule-api/modules/availability/repository"
	"team-schedule-api/modules/availability/router"
	"team-schedule-api/modules/availability/service"
	hostRepository "team-schedule-api/modules/host/repository"

	"github.com/labstack/echo/v4"
)

// Init initializes the availability module and registers routes. The
// returned service feeds the team event module's per-host slot sets.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, bookings service.BookingReader) service.AvailabilityServiceInterface {
	repo := repository.NewAvailabilityRepository(db)
	hostRepo := hostRepository.NewHostRepository(db)
	svc := service.NewAvailabilityService(repo, hostRepo, bookings)
	ctrl := controller.NewAvailabilityController(svc)
	rtr := router.NewAvailabilityRouter(ctrl)

	rtr.Setup(e, mw)

	return svc
}
