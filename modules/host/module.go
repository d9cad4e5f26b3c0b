package host

import (
	"team-schedule-api/core/database"
	"team-schedule-api/core/middleware"
	"team-schedule-api/modules/host/controller"
	"team-schedule-api/modules/host/repository"
	"team-schedule-api/modules/host/router"
	"team-schedule-api/modules/host/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the host module and registers routes. The returned
// service is consumed by the team event module for host validation.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) service.HostServiceInterface {
	repo := repository.NewHostRepository(db)
	svc := service.NewHostService(repo)
	ctrl := controller.NewHostController(svc)
	rtr := router.NewHostRouter(ctrl)

	rtr.Setup(e, mw)

	return svc
}
