package notification

import (
	"team-schedule-api/core/database"
	"team-schedule-api/core/middleware"
	"team-schedule-api/modules/notification/controller"
	"team-schedule-api/modules/notification/repository"
	"team-schedule-api/modules/notification/router"
	"team-schedule-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the notification module and registers routes. The
// returned service doubles as the booking notifier for the team event
// module and the task handler registry for the worker.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, enqueuer service.TaskEnqueuer) *service.NotificationService {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo, enqueuer)
	ctrl := controller.NewNotificationController(svc)
	rtr := router.NewNotificationRouter(ctrl)

	rtr.Setup(e, mw)

	return svc
}
