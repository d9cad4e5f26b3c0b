package controller

import (
	"team-schedule-api/core/controller"
	"team-schedule-api/core/errors"
	"team-schedule-api/core/params"
	"team-schedule-api/modules/notification/dto"
	"team-schedule-api/modules/notification/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type NotificationController struct {
	service *service.NotificationService
	controller.BaseController
}

func NewNotificationController(service *service.NotificationService) *NotificationController {
	return &NotificationController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// GetHostNotifications handles GET /hosts/:id/notifications
// @Summary Lấy danh sách thông báo của host
// @Tags Notification
// @Produce json
// @Param id path string true "Host ID"
// @Param page_number query int false "Số trang"
// @Param page_size query int false "Số lượng mỗi trang"
// @Success 200 {object} entity.PaginatedNotifications
// @Failure 400 {object} errors.AppError
// @Router /hosts/{id}/notifications [get]
func (c *NotificationController) GetHostNotifications(ctx echo.Context) error {
	hostID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid host ID")
	}

	var queryParams params.QueryParams
	if err := ctx.Bind(&queryParams); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid query parameters")
	}

	result, appErr := c.service.GetHostNotifications(ctx.Request().Context(), hostID, queryParams)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Notifications retrieved successfully")
}

// MarkAsRead handles PUT /hosts/:id/notifications/mark-read
// @Summary Đánh dấu đã đọc
// @Tags Notification
// @Accept json
// @Produce json
// @Param id path string true "Host ID"
// @Param request body dto.MarkAsReadRequest true "Danh sách ID thông báo"
// @Success 200 {object} controller.SuccessResponse
// @Failure 400 {object} errors.AppError
// @Router /hosts/{id}/notifications/mark-read [put]
func (c *NotificationController) MarkAsRead(ctx echo.Context) error {
	hostID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid host ID")
	}

	req := new(dto.MarkAsReadRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	if appErr := c.service.MarkAsRead(ctx.Request().Context(), hostID, req.IDs); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Marked as read successfully")
}

// MarkAllAsRead handles PUT /hosts/:id/notifications/mark-all-read
// @Summary Đánh dấu tất cả đã đọc
// @Tags Notification
// @Produce json
// @Param id path string true "Host ID"
// @Success 200 {object} controller.SuccessResponse
// @Failure 400 {object} errors.AppError
// @Router /hosts/{id}/notifications/mark-all-read [put]
func (c *NotificationController) MarkAllAsRead(ctx echo.Context) error {
	hostID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid host ID")
	}

	if appErr := c.service.MarkAllAsRead(ctx.Request().Context(), hostID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Marked all as read successfully")
}

// CountUnread handles GET /hosts/:id/notifications/unread-count
// @Summary Đếm thông báo chưa đọc
// @Tags Notification
// @Produce json
// @Param id path string true "Host ID"
// @Success 200 {object} map[string]int
// @Failure 400 {object} errors.AppError
// @Router /hosts/{id}/notifications/unread-count [get]
func (c *NotificationController) CountUnread(ctx echo.Context) error {
	hostID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid host ID")
	}

	count, appErr := c.service.CountUnread(ctx.Request().Context(), hostID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, map[string]int{"count": count}, "Unread count retrieved")
}
