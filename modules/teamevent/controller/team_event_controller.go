package controller

import (
	"time"

	"team-schedule-api/core/controller"
	"team-schedule-api/core/errors"
	"team-schedule-api/core/params"
	"team-schedule-api/modules/teamevent/dto"
	"team-schedule-api/modules/teamevent/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TeamEventController handles team event type and team booking requests
type TeamEventController struct {
	controller.BaseController
	TeamScheduleService service.TeamScheduleServiceInterface
}

// NewTeamEventController creates a new controller
func NewTeamEventController(svc service.TeamScheduleServiceInterface) *TeamEventController {
	return &TeamEventController{
		BaseController:      controller.NewBaseController(),
		TeamScheduleService: svc,
	}
}

// CreateTeamEventType handles POST /team-event-types
// @Summary Tạo team event type
// @Description Tạo loại sự kiện nhóm với mode round_robin, collective hoặc individual
// @Tags TeamEvent
// @Accept json
// @Produce json
// @Param request body dto.CreateTeamEventTypeRequest true "Thông tin event type"
// @Success 200 {object} dto.TeamEventTypeResponse
// @Failure 400 {object} errors.AppError
// @Router /team-event-types [post]
func (c *TeamEventController) CreateTeamEventType(ctx echo.Context) error {
	var req dto.CreateTeamEventTypeRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if req.Name == "" || req.Mode == "" {
		return c.BadRequest(errors.ErrInvalidRequestData, "name and mode are required")
	}

	result, appErr := c.TeamScheduleService.CreateTeamEventType(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Team event type created successfully")
}

// GetTeamEventType handles GET /team-event-types/:id
// @Summary Lấy thông tin team event type
// @Tags TeamEvent
// @Produce json
// @Param id path string true "Team event type ID"
// @Success 200 {object} dto.TeamEventTypeResponse
// @Failure 404 {object} errors.AppError
// @Router /team-event-types/{id} [get]
func (c *TeamEventController) GetTeamEventType(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid team event type ID")
	}

	result, appErr := c.TeamScheduleService.GetTeamEventType(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Team event type retrieved successfully")
}

// ListTeamEventTypes handles GET /team-event-types
// @Summary Danh sách team event type
// @Tags TeamEvent
// @Produce json
// @Param page_number query int false "Page number"
// @Param page_size query int false "Page size"
// @Param search query string false "Search by name"
// @Success 200 {object} entity.PaginatedTeamEventTypes
// @Router /team-event-types [get]
func (c *TeamEventController) ListTeamEventTypes(ctx echo.Context) error {
	var queryParams params.QueryParams
	if err := ctx.Bind(&queryParams); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid query parameters")
	}

	result, appErr := c.TeamScheduleService.ListTeamEventTypes(ctx.Request().Context(), queryParams)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Team event types retrieved successfully")
}

// UpdateTeamEventType handles PUT /team-event-types/:id
// @Summary Cập nhật team event type
// @Tags TeamEvent
// @Accept json
// @Produce json
// @Param id path string true "Team event type ID"
// @Param request body dto.UpdateTeamEventTypeRequest true "Thông tin cập nhật"
// @Success 200 {object} dto.TeamEventTypeResponse
// @Failure 404 {object} errors.AppError
// @Router /team-event-types/{id} [put]
func (c *TeamEventController) UpdateTeamEventType(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid team event type ID")
	}

	var req dto.UpdateTeamEventTypeRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.TeamScheduleService.UpdateTeamEventType(ctx.Request().Context(), id, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Team event type updated successfully")
}

// DeleteTeamEventType handles DELETE /team-event-types/:id
// @Summary Xoá team event type
// @Tags TeamEvent
// @Produce json
// @Param id path string true "Team event type ID"
// @Success 200 {object} controller.SuccessResponse
// @Failure 404 {object} errors.AppError
// @Router /team-event-types/{id} [delete]
func (c *TeamEventController) DeleteTeamEventType(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid team event type ID")
	}

	if appErr := c.TeamScheduleService.DeleteTeamEventType(ctx.Request().Context(), id); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Team event type deleted successfully")
}

// SetActive handles PATCH /team-event-types/:id/active
// @Summary Bật/tắt team event type
// @Tags TeamEvent
// @Accept json
// @Produce json
// @Param id path string true "Team event type ID"
// @Param request body dto.SetActiveRequest true "Trạng thái"
// @Success 200 {object} controller.SuccessResponse
// @Failure 404 {object} errors.AppError
// @Router /team-event-types/{id}/active [patch]
func (c *TeamEventController) SetActive(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid team event type ID")
	}

	var req dto.SetActiveRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	if appErr := c.TeamScheduleService.SetActive(ctx.Request().Context(), id, req.Active); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Team event type updated successfully")
}

// GetTeamSlots handles GET /team-event-types/:id/slots
// @Summary Slot khả dụng của nhóm
// @Description Collective trả về giao các host, round_robin/individual trả về hợp
// @Tags TeamEvent
// @Produce json
// @Param id path string true "Team event type ID"
// @Param date query string true "Ngày (YYYY-MM-DD)"
// @Param timezone query string true "IANA timezone"
// @Success 200 {object} dto.TeamSlotListResponse
// @Failure 400 {object} errors.AppError
// @Router /team-event-types/{id}/slots [get]
func (c *TeamEventController) GetTeamSlots(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid team event type ID")
	}

	date := ctx.QueryParam("date")
	timezone := ctx.QueryParam("timezone")
	if date == "" || timezone == "" {
		return c.BadRequest(errors.ErrInvalidRequestData, "date and timezone are required")
	}

	result, appErr := c.TeamScheduleService.GetTeamAvailableSlots(ctx.Request().Context(), id, date, timezone)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Team slots retrieved successfully")
}

// GetIndividualSlots handles GET /team-event-types/:id/slots/individual
// @Summary Slot khả dụng theo từng host
// @Tags TeamEvent
// @Produce json
// @Param id path string true "Team event type ID"
// @Param date query string true "Ngày (YYYY-MM-DD)"
// @Param timezone query string true "IANA timezone"
// @Success 200 {object} dto.IndividualSlotsResponse
// @Failure 400 {object} errors.AppError
// @Router /team-event-types/{id}/slots/individual [get]
func (c *TeamEventController) GetIndividualSlots(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid team event type ID")
	}

	date := ctx.QueryParam("date")
	timezone := ctx.QueryParam("timezone")
	if date == "" || timezone == "" {
		return c.BadRequest(errors.ErrInvalidRequestData, "date and timezone are required")
	}

	result, appErr := c.TeamScheduleService.GetIndividualSlots(ctx.Request().Context(), id, date, timezone)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Individual slots retrieved successfully")
}

// CheckSlot handles GET /team-event-types/:id/slots/check
// @Summary Kiểm tra slot còn khả dụng không
// @Description Tính lại availability tại thời điểm gọi, không dùng cache
// @Tags TeamEvent
// @Produce json
// @Param id path string true "Team event type ID"
// @Param start query string true "Thời điểm bắt đầu (RFC3339)"
// @Param end query string true "Thời điểm kết thúc (RFC3339)"
// @Success 200 {object} dto.SlotAvailableResponse
// @Failure 400 {object} errors.AppError
// @Router /team-event-types/{id}/slots/check [get]
func (c *TeamEventController) CheckSlot(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid team event type ID")
	}

	start, err := time.Parse(time.RFC3339, ctx.QueryParam("start"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "start must be RFC3339")
	}
	end, err := time.Parse(time.RFC3339, ctx.QueryParam("end"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "end must be RFC3339")
	}

	available, appErr := c.TeamScheduleService.IsTeamSlotAvailable(ctx.Request().Context(), id, start, end)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, &dto.SlotAvailableResponse{Available: available}, "Slot checked successfully")
}

// NextHost handles POST /team-event-types/:id/next-host
// @Summary Chọn host kế tiếp theo round-robin
// @Description Host là null khi không host nào phục vụ được slot
// @Tags TeamEvent
// @Accept json
// @Produce json
// @Param id path string true "Team event type ID"
// @Param request body dto.NextHostRequest true "Slot cần phục vụ"
// @Success 200 {object} dto.NextHostResponse
// @Failure 400 {object} errors.AppError
// @Router /team-event-types/{id}/next-host [post]
func (c *TeamEventController) NextHost(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid team event type ID")
	}

	var req dto.NextHostRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "start must be RFC3339")
	}
	end, err := time.Parse(time.RFC3339, req.End)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "end must be RFC3339")
	}

	result, appErr := c.TeamScheduleService.GetNextRoundRobinHost(ctx.Request().Context(), id, start, end)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	if result == nil {
		return c.SuccessResponse(ctx, &dto.NextHostResponse{}, "No host available for this slot")
	}

	return c.SuccessResponse(ctx, result, "Next host selected successfully")
}

// ValidateHosts handles POST /team-event-types/validate-hosts
// @Summary Kiểm tra danh sách host
// @Description Trả về danh sách id không tồn tại hoặc inactive, không ném lỗi
// @Tags TeamEvent
// @Accept json
// @Produce json
// @Param request body dto.ValidateHostsRequest true "Danh sách host"
// @Success 200 {object} dto.HostValidationResponse
// @Failure 400 {object} errors.AppError
// @Router /team-event-types/validate-hosts [post]
func (c *TeamEventController) ValidateHosts(ctx echo.Context) error {
	var req dto.ValidateHostsRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	hostIDs := make([]uuid.UUID, 0, len(req.HostIDs))
	invalid := []string{}
	for _, raw := range req.HostIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			invalid = append(invalid, raw)
			continue
		}
		hostIDs = append(hostIDs, id)
	}

	result, appErr := c.TeamScheduleService.ValidateTeamHosts(ctx.Request().Context(), hostIDs)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	// Unparseable ids count as invalid too.
	if len(invalid) > 0 {
		result.Valid = false
		result.InvalidIDs = append(invalid, result.InvalidIDs...)
	}

	return c.SuccessResponse(ctx, result, "Hosts validated successfully")
}

// CreateTeamBooking handles POST /team-event-types/:id/bookings
// @Summary Đặt lịch trên team event type
// @Description Khoá slot, kiểm tra lại availability rồi mới ghi booking
// @Tags TeamEvent
// @Accept json
// @Produce json
// @Param id path string true "Team event type ID"
// @Param request body dto.CreateTeamBookingRequest true "Thông tin đặt lịch"
// @Success 200 {object} dto.TeamBookingResponse
// @Failure 409 {object} errors.AppError
// @Failure 423 {object} errors.AppError
// @Router /team-event-types/{id}/bookings [post]
func (c *TeamEventController) CreateTeamBooking(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid team event type ID")
	}

	var req dto.CreateTeamBookingRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.TeamScheduleService.CreateTeamBooking(ctx.Request().Context(), id, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Team booking created successfully")
}
