package service

import (
	"context"
	"time"

	"team-schedule-api/core/constants"
	"team-schedule-api/core/errors"
	"team-schedule-api/core/logger"
	"team-schedule-api/core/utils"
	"team-schedule-api/modules/booking/dto"
	"team-schedule-api/modules/booking/entity"
	"team-schedule-api/modules/booking/repository"

	"github.com/google/uuid"
)

type BookingServiceInterface interface {
	CreateBooking(ctx context.Context, booking *entity.Booking) (*entity.Booking, *errors.AppError)
	GetBooking(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, *errors.AppError)
	GetBookingByReference(ctx context.Context, code string) (*dto.BookingResponse, *errors.AppError)
	ListHostBookings(ctx context.Context, hostID uuid.UUID, from, to time.Time) ([]dto.BookingResponse, *errors.AppError)
	CancelBooking(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, *errors.AppError)
	RescheduleBooking(ctx context.Context, id uuid.UUID, req *dto.RescheduleBookingRequest) (*dto.BookingResponse, *errors.AppError)
}

type bookingService struct {
	repo repository.BookingRepositoryInterface
}

func NewBookingService(repo repository.BookingRepositoryInterface) BookingServiceInterface {
	return &bookingService{repo: repo}
}

// CreateBooking persists a booking record; the availability re-check and
// locking happen in the team schedule service before this is called.
func (s *bookingService) CreateBooking(ctx context.Context, booking *entity.Booking) (*entity.Booking, *errors.AppError) {
	logger.Info("BookingService:CreateBooking:Start",
		"host_id", booking.HostID,
		"start", booking.StartTime.UTC().Format(time.RFC3339))

	if !booking.StartTime.Before(booking.EndTime) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "booking start must be before end", nil)
	}

	if booking.Status == "" {
		booking.Status = entity.BookingStatusConfirmed
	}
	if booking.ReferenceCode == "" {
		booking.ReferenceCode = utils.NewReferenceCode()
	}

	created, err := s.repo.Create(ctx, booking)
	if err != nil {
		logger.Error("BookingService:CreateBooking:Create:Error", err, "host_id", booking.HostID)
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create booking", err)
	}

	logger.Info("BookingService:CreateBooking:Success", "booking_id", created.ID, "reference", created.ReferenceCode)
	return created, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load booking", err)
	}
	if booking == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "booking not found", nil)
	}

	return dto.ToBookingResponse(booking), nil
}

func (s *bookingService) GetBookingByReference(ctx context.Context, code string) (*dto.BookingResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	booking, err := s.repo.GetByReference(ctx, code)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load booking", err)
	}
	if booking == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "booking not found", nil)
	}

	return dto.ToBookingResponse(booking), nil
}

func (s *bookingService) ListHostBookings(ctx context.Context, hostID uuid.UUID, from, to time.Time) ([]dto.BookingResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	bookings, err := s.repo.ListForHost(ctx, hostID, from, to)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list bookings", err)
	}

	return dto.ToBookingResponses(bookings), nil
}

// CancelBooking is a soft status change; availability derives freshly per
// query, so the instant reopens automatically.
func (s *bookingService) CancelBooking(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load booking", err)
	}
	if booking == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "booking not found", nil)
	}
	if booking.Status == entity.BookingStatusCancelled {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "booking is already cancelled", nil)
	}

	if err := s.repo.UpdateStatus(ctx, id, entity.BookingStatusCancelled); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to cancel booking", err)
	}

	booking.Status = entity.BookingStatusCancelled
	logger.Info("BookingService:CancelBooking:Success", "booking_id", id)
	return dto.ToBookingResponse(booking), nil
}

func (s *bookingService) RescheduleBooking(ctx context.Context, id uuid.UUID, req *dto.RescheduleBookingRequest) (*dto.BookingResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	start, errStart := time.Parse(time.RFC3339, req.Start)
	end, errEnd := time.Parse(time.RFC3339, req.End)
	if errStart != nil || errEnd != nil || !start.Before(end) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "start and end must be RFC3339 with start before end", nil)
	}

	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load booking", err)
	}
	if booking == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "booking not found", nil)
	}
	if booking.Status == entity.BookingStatusCancelled {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "cancelled bookings cannot be rescheduled", nil)
	}

	if err := s.repo.Reschedule(ctx, id, start, end); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to reschedule booking", err)
	}

	booking.StartTime = start.UTC()
	booking.EndTime = end.UTC()
	booking.Status = entity.BookingStatusRescheduled
	logger.Info("BookingService:RescheduleBooking:Success", "booking_id", id)
	return dto.ToBookingResponse(booking), nil
}
