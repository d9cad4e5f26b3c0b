package controller

import (
	"strconv"
	"time"

	"team-schedule-api/core/controller"
	"team-schedule-api/core/errors"
	"team-schedule-api/modules/availability/dto"
	"team-schedule-api/modules/availability/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AvailabilityController handles schedule and blocked-date HTTP requests
type AvailabilityController struct {
	controller.BaseController
	AvailabilityService service.AvailabilityServiceInterface
}

// NewAvailabilityController creates a new controller
func NewAvailabilityController(svc service.AvailabilityServiceInterface) *AvailabilityController {
	return &AvailabilityController{
		BaseController:      controller.NewBaseController(),
		AvailabilityService: svc,
	}
}

// SetWeeklySchedule handles PUT /hosts/:id/schedule
// @Summary Cập nhật lịch tuần
// @Description Thay toàn bộ lịch rảnh hàng tuần của host
// @Tags Availability
// @Accept json
// @Produce json
// @Param id path string true "Host ID"
// @Param request body dto.SetWeeklyScheduleRequest true "Các khung giờ"
// @Success 200 {array} entity.WeeklySchedule
// @Failure 400 {object} errors.AppError
// @Router /hosts/{id}/schedule [put]
func (c *AvailabilityController) SetWeeklySchedule(ctx echo.Context) error {
	hostID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid host ID")
	}

	var req dto.SetWeeklyScheduleRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.AvailabilityService.SetWeeklySchedule(ctx.Request().Context(), hostID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Weekly schedule updated successfully")
}

// GetWeeklySchedule handles GET /hosts/:id/schedule
// @Summary Lấy lịch tuần
// @Tags Availability
// @Produce json
// @Param id path string true "Host ID"
// @Success 200 {array} entity.WeeklySchedule
// @Router /hosts/{id}/schedule [get]
func (c *AvailabilityController) GetWeeklySchedule(ctx echo.Context) error {
	hostID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid host ID")
	}

	result, appErr := c.AvailabilityService.GetWeeklySchedule(ctx.Request().Context(), hostID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Weekly schedule retrieved successfully")
}

// CreateBlockedDate handles POST /hosts/:id/blocks
// @Summary Chặn ngày
// @Description Chặn một khoảng ngày (cả ngày hoặc theo giờ)
// @Tags Availability
// @Accept json
// @Produce json
// @Param id path string true "Host ID"
// @Param request body dto.CreateBlockedDateRequest true "Khoảng chặn"
// @Success 200 {object} entity.BlockedDate
// @Failure 400 {object} errors.AppError
// @Router /hosts/{id}/blocks [post]
func (c *AvailabilityController) CreateBlockedDate(ctx echo.Context) error {
	hostID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid host ID")
	}

	var req dto.CreateBlockedDateRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.AvailabilityService.CreateBlockedDate(ctx.Request().Context(), hostID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Blocked date created successfully")
}

// ListBlockedDates handles GET /hosts/:id/blocks
// @Summary Danh sách ngày chặn
// @Tags Availability
// @Produce json
// @Param id path string true "Host ID"
// @Param from query string false "From date YYYY-MM-DD"
// @Param to query string false "To date YYYY-MM-DD"
// @Success 200 {array} entity.BlockedDate
// @Router /hosts/{id}/blocks [get]
func (c *AvailabilityController) ListBlockedDates(ctx echo.Context) error {
	hostID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid host ID")
	}

	from := time.Now().AddDate(0, 0, -30)
	to := time.Now().AddDate(0, 1, 0)
	if v := ctx.QueryParam("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.BadRequest(errors.ErrInvalidInput, "from must be YYYY-MM-DD")
		}
		from = parsed
	}
	if v := ctx.QueryParam("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.BadRequest(errors.ErrInvalidInput, "to must be YYYY-MM-DD")
		}
		to = parsed
	}

	result, appErr := c.AvailabilityService.ListBlockedDates(ctx.Request().Context(), hostID, from, to)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Blocked dates retrieved successfully")
}

// DeleteBlockedDate handles DELETE /hosts/:id/blocks/:blockId
// @Summary Bỏ chặn ngày
// @Tags Availability
// @Produce json
// @Param id path string true "Host ID"
// @Param blockId path string true "Block ID"
// @Success 200 {object} controller.SuccessResponse
// @Failure 404 {object} errors.AppError
// @Router /hosts/{id}/blocks/{blockId} [delete]
func (c *AvailabilityController) DeleteBlockedDate(ctx echo.Context) error {
	hostID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid host ID")
	}
	blockID, err := uuid.Parse(ctx.Param("blockId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid block ID")
	}

	if appErr := c.AvailabilityService.DeleteBlockedDate(ctx.Request().Context(), hostID, blockID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Blocked date deleted successfully")
}

// GetHostSlots handles GET /hosts/:id/slots
// @Summary Slot trống của host
// @Description Tính các slot có thể đặt của một host cho một ngày
// @Tags Availability
// @Produce json
// @Param id path string true "Host ID"
// @Param date query string true "Date YYYY-MM-DD"
// @Param duration query int true "Duration minutes"
// @Param timezone query string false "Display timezone (IANA)"
// @Success 200 {object} dto.SlotListResponse
// @Failure 400 {object} errors.AppError
// @Router /hosts/{id}/slots [get]
func (c *AvailabilityController) GetHostSlots(ctx echo.Context) error {
	hostID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid host ID")
	}

	date := ctx.QueryParam("date")
	if date == "" {
		return c.BadRequest(errors.ErrInvalidRequestData, "date is required")
	}

	duration := 30
	if v := ctx.QueryParam("duration"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return c.BadRequest(errors.ErrInvalidInput, "duration must be minutes")
		}
		duration = parsed
	}
	if duration < 15 || duration > 480 {
		return c.BadRequest(errors.ErrInvalidInput, "duration must be between 15 and 480 minutes")
	}

	timezone := ctx.QueryParam("timezone")
	if timezone == "" {
		timezone = "UTC"
	}

	result, appErr := c.AvailabilityService.GetHostAvailableSlots(ctx.Request().Context(), hostID, date, duration, timezone)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Slots retrieved successfully")
}
