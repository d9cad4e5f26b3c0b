package main

import (
	"team-schedule-api/core/logger"
	"team-schedule-api/core/server"

	_ "team-schedule-api/docs" // Swagger docs
)

// @title Team Schedule API
// @version 1.0
// @description API Backend cho hệ thống đặt lịch nhóm - team availability và booking coordination
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@teamschedule.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:7070
// @BasePath /api/v1

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
