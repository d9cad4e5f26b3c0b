package controller

import (
	"team-schedule-api/core/controller"
	"team-schedule-api/core/errors"
	"team-schedule-api/core/params"
	"team-schedule-api/modules/host/dto"
	"team-schedule-api/modules/host/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HostController handles scheduling-user HTTP requests
type HostController struct {
	controller.BaseController
	HostService service.HostServiceInterface
}

// NewHostController creates a new controller
func NewHostController(svc service.HostServiceInterface) *HostController {
	return &HostController{
		BaseController: controller.NewBaseController(),
		HostService:    svc,
	}
}

// CreateHost handles POST /hosts
// @Summary Tạo host mới
// @Description Đăng ký một scheduling user mới với múi giờ
// @Tags Host
// @Accept json
// @Produce json
// @Param request body dto.CreateHostRequest true "Thông tin host"
// @Success 200 {object} dto.HostResponse
// @Failure 400 {object} errors.AppError
// @Router /hosts [post]
func (c *HostController) CreateHost(ctx echo.Context) error {
	var req dto.CreateHostRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if req.Name == "" || req.Email == "" || req.Timezone == "" {
		return c.BadRequest(errors.ErrInvalidRequestData, "name, email and timezone are required")
	}

	result, appErr := c.HostService.CreateHost(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Host created successfully")
}

// GetHost handles GET /hosts/:id
// @Summary Lấy thông tin host
// @Tags Host
// @Produce json
// @Param id path string true "Host ID"
// @Success 200 {object} dto.HostResponse
// @Failure 404 {object} errors.AppError
// @Router /hosts/{id} [get]
func (c *HostController) GetHost(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid host ID")
	}

	result, appErr := c.HostService.GetHost(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Host retrieved successfully")
}

// ListHosts handles GET /hosts
// @Summary Danh sách host
// @Tags Host
// @Produce json
// @Param page_number query int false "Page number"
// @Param page_size query int false "Page size"
// @Param search query string false "Search by name or email"
// @Success 200 {object} entity.PaginatedHosts
// @Router /hosts [get]
func (c *HostController) ListHosts(ctx echo.Context) error {
	var queryParams params.QueryParams
	if err := ctx.Bind(&queryParams); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid query parameters")
	}

	result, appErr := c.HostService.ListHosts(ctx.Request().Context(), queryParams)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Hosts retrieved successfully")
}

// UpdateSettings handles PUT /hosts/:id/settings
// @Summary Cập nhật cài đặt host
// @Description Cập nhật notice/buffer/booking-window/daily-limit mặc định của host
// @Tags Host
// @Accept json
// @Produce json
// @Param id path string true "Host ID"
// @Param request body dto.UpdateHostSettingsRequest true "Cài đặt"
// @Success 200 {object} dto.HostResponse
// @Failure 404 {object} errors.AppError
// @Router /hosts/{id}/settings [put]
func (c *HostController) UpdateSettings(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid host ID")
	}

	var req dto.UpdateHostSettingsRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.HostService.UpdateSettings(ctx.Request().Context(), id, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Host settings updated successfully")
}

// DeactivateHost handles DELETE /hosts/:id
// @Summary Vô hiệu hoá host
// @Tags Host
// @Produce json
// @Param id path string true "Host ID"
// @Success 200 {object} controller.SuccessResponse
// @Failure 404 {object} errors.AppError
// @Router /hosts/{id} [delete]
func (c *HostController) DeactivateHost(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid host ID")
	}

	if appErr := c.HostService.DeactivateHost(ctx.Request().Context(), id); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Host deactivated successfully")
}
