package controller

import (
	"time"

	"team-schedule-api/core/controller"
	"team-schedule-api/core/errors"
	"team-schedule-api/modules/booking/dto"
	"team-schedule-api/modules/booking/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// BookingController handles booking HTTP requests
type BookingController struct {
	controller.BaseController
	BookingService service.BookingServiceInterface
}

// NewBookingController creates a new controller
func NewBookingController(svc service.BookingServiceInterface) *BookingController {
	return &BookingController{
		BaseController: controller.NewBaseController(),
		BookingService: svc,
	}
}

// GetBooking handles GET /bookings/:id
// @Summary Lấy booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 404 {object} errors.AppError
// @Router /bookings/{id} [get]
func (c *BookingController) GetBooking(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid booking ID")
	}

	result, appErr := c.BookingService.GetBooking(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Booking retrieved successfully")
}

// GetBookingByReference handles GET /bookings/ref/:code
// @Summary Lấy booking theo mã tham chiếu
// @Tags Booking
// @Produce json
// @Param code path string true "Reference code"
// @Success 200 {object} dto.BookingResponse
// @Failure 404 {object} errors.AppError
// @Router /bookings/ref/{code} [get]
func (c *BookingController) GetBookingByReference(ctx echo.Context) error {
	code := ctx.Param("code")
	if code == "" {
		return c.BadRequest(errors.ErrInvalidRequestData, "reference code is required")
	}

	result, appErr := c.BookingService.GetBookingByReference(ctx.Request().Context(), code)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Booking retrieved successfully")
}

// ListHostBookings handles GET /hosts/:id/bookings
// @Summary Danh sách booking của host
// @Tags Booking
// @Produce json
// @Param id path string true "Host ID"
// @Param from query string false "From date YYYY-MM-DD"
// @Param to query string false "To date YYYY-MM-DD"
// @Success 200 {array} dto.BookingResponse
// @Router /hosts/{id}/bookings [get]
func (c *BookingController) ListHostBookings(ctx echo.Context) error {
	hostID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid host ID")
	}

	from := time.Now().AddDate(0, 0, -7)
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

	result, appErr := c.BookingService.ListHostBookings(ctx.Request().Context(), hostID, from, to)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Bookings retrieved successfully")
}

// CancelBooking handles POST /bookings/:id/cancel
// @Summary Huỷ booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 404 {object} errors.AppError
// @Router /bookings/{id}/cancel [post]
func (c *BookingController) CancelBooking(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid booking ID")
	}

	result, appErr := c.BookingService.CancelBooking(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Booking cancelled successfully")
}

// RescheduleBooking handles POST /bookings/:id/reschedule
// @Summary Dời lịch booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.RescheduleBookingRequest true "Khoảng thời gian mới"
// @Success 200 {object} dto.BookingResponse
// @Failure 400 {object} errors.AppError
// @Router /bookings/{id}/reschedule [post]
func (c *BookingController) RescheduleBooking(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid booking ID")
	}

	var req dto.RescheduleBookingRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.BookingService.RescheduleBooking(ctx.Request().Context(), id, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Booking rescheduled successfully")
}
