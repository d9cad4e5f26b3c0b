package teamevent

import (
	"team-schedule-api/core/cache"
	"team-schedule-api/core/config"
	"team-schedule-api/core/database"
	"team-schedule-api/core/middleware"
	availabilityService "team-schedule-api/modules/availability/service"
	bookingService "team-schedule-api/modules/booking/service"
	hostRepository "team-schedule-api/modules/host/repository"
	"team-schedule-api/modules/teamevent/controller"
	"team-schedule-api/modules/teamevent/repository"
	"team-schedule-api/modules/teamevent/router"
	"team-schedule-api/modules/teamevent/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the team event module and registers routes. It sits on
// top of the host, availability and booking modules.
func Init(
	e *echo.Echo,
	db database.Database,
	redisCache cache.Cache,
	mw *middleware.Middleware,
	lockCfg config.LockConfig,
	availability availabilityService.AvailabilityServiceInterface,
	bookings bookingService.BookingServiceInterface,
	notifier service.BookingNotifier,
) service.TeamScheduleServiceInterface {
	repo := repository.NewTeamEventRepository(db)
	hostRepo := hostRepository.NewHostRepository(db)

	lock := service.NewBookingLock(redisCache, lockCfg.TTL)
	coordinator := service.NewTeamCoordinator(availability, repo, lock,
		lockCfg.MaxAttempts, lockCfg.BackoffBase)

	svc := service.NewTeamScheduleService(repo, hostRepo, availability, bookings, coordinator, lock, notifier)
	ctrl := controller.NewTeamEventController(svc)
	rtr := router.NewTeamEventRouter(ctrl)

	rtr.Setup(e, mw)

	return svc
}
