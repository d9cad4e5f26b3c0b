package service

import (
	"context"
	"time"

	"team-schedule-api/core/constants"
	"team-schedule-api/core/errors"
	"team-schedule-api/core/logger"
	"team-schedule-api/core/utils"
	"team-schedule-api/modules/availability/dto"
	"team-schedule-api/modules/availability/entity"
	"team-schedule-api/modules/availability/repository"
	bookingEntity "team-schedule-api/modules/booking/entity"
	hostEntity "team-schedule-api/modules/host/entity"
	hostRepository "team-schedule-api/modules/host/repository"

	"github.com/google/uuid"
)

// BookingReader is the slice of the booking repository this module needs.
type BookingReader interface {
	ListBlockingForHostInRange(ctx context.Context, hostID uuid.UUID, from, to time.Time) ([]bookingEntity.Booking, error)
}

type AvailabilityServiceInterface interface {
	SetWeeklySchedule(ctx context.Context, hostID uuid.UUID, req *dto.SetWeeklyScheduleRequest) ([]entity.WeeklySchedule, *errors.AppError)
	GetWeeklySchedule(ctx context.Context, hostID uuid.UUID) ([]entity.WeeklySchedule, *errors.AppError)
	CreateBlockedDate(ctx context.Context, hostID uuid.UUID, req *dto.CreateBlockedDateRequest) (*entity.BlockedDate, *errors.AppError)
	ListBlockedDates(ctx context.Context, hostID uuid.UUID, from, to time.Time) ([]entity.BlockedDate, *errors.AppError)
	DeleteBlockedDate(ctx context.Context, hostID, blockID uuid.UUID) *errors.AppError

	GetHostAvailableSlots(ctx context.Context, hostID uuid.UUID, date string, durationMinutes int, timezone string) (*dto.SlotListResponse, *errors.AppError)
	HostSlotsForDate(ctx context.Context, host *hostEntity.SchedulingUser, date time.Time, durationMinutes int, overrides *entity.SettingsOverrides, busyTimes []entity.TimeRange, now time.Time) ([]entity.AvailableSlot, *errors.AppError)
}

type availabilityService struct {
	repo       repository.AvailabilityRepositoryInterface
	hostRepo   hostRepository.HostRepositoryInterface
	bookings   BookingReader
	calculator *SlotCalculator
}

func NewAvailabilityService(repo repository.AvailabilityRepositoryInterface, hostRepo hostRepository.HostRepositoryInterface, bookings BookingReader) AvailabilityServiceInterface {
	return &availabilityService{
		repo:       repo,
		hostRepo:   hostRepo,
		bookings:   bookings,
		calculator: NewSlotCalculator(),
	}
}

// ResolveEffectiveSettings merges per-event-type overrides over the host's
// defaults, field by field.
func ResolveEffectiveSettings(host *hostEntity.SchedulingUser, overrides *entity.SettingsOverrides) entity.EffectiveSettings {
	settings := entity.EffectiveSettings{
		MinimumNoticeHours:  host.MinimumNoticeHours,
		BookingWindowDays:   host.BookingWindowDays,
		BufferBeforeMinutes: host.BufferBeforeMinutes,
		BufferAfterMinutes:  host.BufferAfterMinutes,
		DailyBookingLimit:   host.DailyBookingLimit,
	}
	if overrides == nil {
		return settings
	}
	if overrides.MinimumNoticeHours != nil {
		settings.MinimumNoticeHours = *overrides.MinimumNoticeHours
	}
	if overrides.BookingWindowDays != nil {
		settings.BookingWindowDays = *overrides.BookingWindowDays
	}
	if overrides.BufferBeforeMinutes != nil {
		settings.BufferBeforeMinutes = *overrides.BufferBeforeMinutes
	}
	if overrides.BufferAfterMinutes != nil {
		settings.BufferAfterMinutes = *overrides.BufferAfterMinutes
	}
	if overrides.DailyBookingLimit != nil {
		settings.DailyBookingLimit = overrides.DailyBookingLimit
	}
	return settings
}

// ===================== Weekly schedule =====================

func (s *availabilityService) SetWeeklySchedule(ctx context.Context, hostID uuid.UUID, req *dto.SetWeeklyScheduleRequest) ([]entity.WeeklySchedule, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	logger.Info("AvailabilityService:SetWeeklySchedule:Start", "host_id", hostID, "windows", len(req.Windows))

	host, err := s.hostRepo.GetByID(ctx, hostID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load host", err)
	}
	if host == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "host not found", nil)
	}

	windows := make([]entity.WeeklySchedule, 0, len(req.Windows))
	for _, w := range req.Windows {
		if w.Weekday < 0 || w.Weekday > 6 {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "weekday must be between 0 and 6", nil)
		}
		startMin, errStart := utils.ParseClock(w.StartTime)
		endMin, errEnd := utils.ParseClock(w.EndTime)
		if errStart != nil || errEnd != nil || startMin >= endMin {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "window times must be valid HH:MM with start before end", nil)
		}
		windows = append(windows, entity.WeeklySchedule{
			HostID:    hostID,
			Weekday:   w.Weekday,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
		})
	}

	created, err := s.repo.ReplaceWeeklySchedule(ctx, hostID, windows)
	if err != nil {
		logger.Error("AvailabilityService:SetWeeklySchedule:Replace:Error", err, "host_id", hostID)
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to update weekly schedule", err)
	}

	logger.Info("AvailabilityService:SetWeeklySchedule:Success", "host_id", hostID)
	return created, nil
}

func (s *availabilityService) GetWeeklySchedule(ctx context.Context, hostID uuid.UUID) ([]entity.WeeklySchedule, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	windows, err := s.repo.GetWeeklySchedule(ctx, hostID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load weekly schedule", err)
	}
	return windows, nil
}

// ===================== Blocked dates =====================

func (s *availabilityService) CreateBlockedDate(ctx context.Context, hostID uuid.UUID, req *dto.CreateBlockedDateRequest) (*entity.BlockedDate, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	host, err := s.hostRepo.GetByID(ctx, hostID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load host", err)
	}
	if host == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "host not found", nil)
	}

	loc, locErr := time.LoadLocation(host.Timezone)
	if locErr != nil {
		loc = time.UTC
	}

	startDate, errStart := utils.ParseDate(req.StartDate, loc)
	endDate, errEnd := utils.ParseDate(req.EndDate, loc)
	if errStart != nil || errEnd != nil || endDate.Before(startDate) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid blocked date range", nil)
	}

	if !req.AllDay {
		if req.StartTime == nil || req.EndTime == nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "partial-day block requires start_time and end_time", nil)
		}
		startMin, errS := utils.ParseClock(*req.StartTime)
		endMin, errE := utils.ParseClock(*req.EndTime)
		if errS != nil || errE != nil || startMin >= endMin {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "block times must be valid HH:MM with start before end", nil)
		}
	}

	block := &entity.BlockedDate{
		HostID:    hostID,
		StartDate: startDate,
		EndDate:   endDate,
		AllDay:    req.AllDay,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
	}
	if req.AllDay {
		block.StartTime = nil
		block.EndTime = nil
	}

	created, err := s.repo.CreateBlockedDate(ctx, block)
	if err != nil {
		logger.Error("AvailabilityService:CreateBlockedDate:Error", err, "host_id", hostID)
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create blocked date", err)
	}

	logger.Info("AvailabilityService:CreateBlockedDate:Success", "host_id", hostID, "block_id", created.ID)
	return created, nil
}

func (s *availabilityService) ListBlockedDates(ctx context.Context, hostID uuid.UUID, from, to time.Time) ([]entity.BlockedDate, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	blocks, err := s.repo.ListBlockedDates(ctx, hostID, from, to)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list blocked dates", err)
	}
	return blocks, nil
}

func (s *availabilityService) DeleteBlockedDate(ctx context.Context, hostID, blockID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	block, err := s.repo.GetBlockedDateByID(ctx, blockID)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "failed to load blocked date", err)
	}
	if block == nil || block.HostID != hostID {
		return errors.NewAppError(errors.ErrNotFound, "blocked date not found", nil)
	}

	if err := s.repo.DeleteBlockedDate(ctx, blockID); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "failed to delete blocked date", err)
	}
	return nil
}

// ===================== Slot derivation =====================

// GetHostAvailableSlots is the single-host display endpoint; only available
// slots are returned.
func (s *availabilityService) GetHostAvailableSlots(ctx context.Context, hostID uuid.UUID, date string, durationMinutes int, timezone string) (*dto.SlotListResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	host, err := s.hostRepo.GetByID(ctx, hostID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load host", err)
	}
	if host == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "host not found", nil)
	}

	hostLoc, locErr := time.LoadLocation(host.Timezone)
	if locErr != nil {
		hostLoc = time.UTC
	}
	displayLoc, locErr := time.LoadLocation(timezone)
	if locErr != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "unknown timezone: "+timezone, locErr)
	}

	day, errDate := utils.ParseDate(date, hostLoc)
	if errDate != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "date must be YYYY-MM-DD", errDate)
	}

	slots, appErr := s.HostSlotsForDate(ctx, host, day, durationMinutes, nil, nil, time.Now())
	if appErr != nil {
		return nil, appErr
	}

	return &dto.SlotListResponse{
		HostID:   hostID.String(),
		Date:     date,
		Timezone: timezone,
		Slots:    dto.ToSlotResponses(slots, displayLoc),
	}, nil
}

// HostSlotsForDate returns the full candidate set (available and not) for
// one host and date. The team coordinator builds its views from this.
func (s *availabilityService) HostSlotsForDate(ctx context.Context, host *hostEntity.SchedulingUser, date time.Time, durationMinutes int, overrides *entity.SettingsOverrides, busyTimes []entity.TimeRange, now time.Time) ([]entity.AvailableSlot, *errors.AppError) {
	settings := ResolveEffectiveSettings(host, overrides)

	schedule, err := s.repo.GetWeeklySchedule(ctx, host.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load weekly schedule", err)
	}

	blocks, err := s.repo.ListBlockedDates(ctx, host.ID, date.AddDate(0, 0, -1), date.AddDate(0, 0, 1))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load blocked dates", err)
	}

	// A day of bookings can spill past midnight UTC in either direction, so
	// fetch with a day of margin on both sides.
	bookings, err := s.bookings.ListBlockingForHostInRange(ctx, host.ID, date.AddDate(0, 0, -1), date.AddDate(0, 0, 2))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load bookings", err)
	}

	slots := s.calculator.CalculateSlots(date, host, durationMinutes, settings, schedule, blocks, bookings, busyTimes, now)
	return slots, nil
}
