package service

import (
	"context"
	"time"

	"team-schedule-api/core/constants"
	"team-schedule-api/core/errors"
	"team-schedule-api/core/logger"
	"team-schedule-api/core/params"
	"team-schedule-api/core/utils"
	availabilityEntity "team-schedule-api/modules/availability/entity"
	bookingEntity "team-schedule-api/modules/booking/entity"
	bookingService "team-schedule-api/modules/booking/service"
	hostDto "team-schedule-api/modules/host/dto"
	hostEntity "team-schedule-api/modules/host/entity"
	"team-schedule-api/modules/teamevent/dto"
	"team-schedule-api/modules/teamevent/entity"
	"team-schedule-api/modules/teamevent/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// HostStore is the slice of the host repository this module needs.
type HostStore interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]hostEntity.SchedulingUser, error)
}

// BookingNotifier is notified after a booking is persisted. Failures are
// the notifier's own problem; the booking flow never fails on it.
type BookingNotifier interface {
	NotifyBookingCreated(ctx context.Context, booking *bookingEntity.Booking)
}

type TeamScheduleServiceInterface interface {
	CreateTeamEventType(ctx context.Context, req *dto.CreateTeamEventTypeRequest) (*dto.TeamEventTypeResponse, *errors.AppError)
	GetTeamEventType(ctx context.Context, id uuid.UUID) (*dto.TeamEventTypeResponse, *errors.AppError)
	ListTeamEventTypes(ctx context.Context, queryParams params.QueryParams) (*entity.PaginatedTeamEventTypes, *errors.AppError)
	UpdateTeamEventType(ctx context.Context, id uuid.UUID, req *dto.UpdateTeamEventTypeRequest) (*dto.TeamEventTypeResponse, *errors.AppError)
	DeleteTeamEventType(ctx context.Context, id uuid.UUID) *errors.AppError
	SetActive(ctx context.Context, id uuid.UUID, active bool) *errors.AppError

	GetTeamAvailableSlots(ctx context.Context, teamEventTypeID uuid.UUID, date, timezone string) (*dto.TeamSlotListResponse, *errors.AppError)
	GetIndividualSlots(ctx context.Context, teamEventTypeID uuid.UUID, date, timezone string) (*dto.IndividualSlotsResponse, *errors.AppError)
	IsTeamSlotAvailable(ctx context.Context, teamEventTypeID uuid.UUID, start, end time.Time) (bool, *errors.AppError)
	GetNextRoundRobinHost(ctx context.Context, teamEventTypeID uuid.UUID, start, end time.Time) (*dto.NextHostResponse, *errors.AppError)
	ValidateTeamHosts(ctx context.Context, hostIDs []uuid.UUID) (*dto.HostValidationResponse, *errors.AppError)
	CreateTeamBooking(ctx context.Context, teamEventTypeID uuid.UUID, req *dto.CreateTeamBookingRequest) (*dto.TeamBookingResponse, *errors.AppError)

	AcquireBookingLock(ctx context.Context, key LockKey) (string, bool, *errors.AppError)
	ReleaseBookingLock(ctx context.Context, key LockKey, token string) *errors.AppError
}

type teamScheduleService struct {
	repo        repository.TeamEventRepositoryInterface
	hosts       HostStore
	slots       HostSlotProvider
	bookings    bookingService.BookingServiceInterface
	coordinator *TeamCoordinator
	lock        *BookingLock
	notifier    BookingNotifier
}

func NewTeamScheduleService(
	repo repository.TeamEventRepositoryInterface,
	hosts HostStore,
	slots HostSlotProvider,
	bookings bookingService.BookingServiceInterface,
	coordinator *TeamCoordinator,
	lock *BookingLock,
	notifier BookingNotifier,
) TeamScheduleServiceInterface {
	return &teamScheduleService{
		repo:        repo,
		hosts:       hosts,
		slots:       slots,
		bookings:    bookings,
		coordinator: coordinator,
		lock:        lock,
		notifier:    notifier,
	}
}

// ===================== Event type CRUD =====================

func (s *teamScheduleService) CreateTeamEventType(ctx context.Context, req *dto.CreateTeamEventTypeRequest) (*dto.TeamEventTypeResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	logger.Info("TeamScheduleService:CreateTeamEventType:Start", "name", req.Name, "mode", req.Mode)

	eventType, appErr := s.eventTypeFromRequest(ctx, req.Name, req.DurationMinutes, req.Mode, req.HostIDs, req.Overrides)
	if appErr != nil {
		return nil, appErr
	}
	eventType.IsActive = true

	created, err := s.repo.Create(ctx, eventType)
	if err != nil {
		logger.Error("TeamScheduleService:CreateTeamEventType:Create:Error", err)
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create team event type", err)
	}

	logger.Info("TeamScheduleService:CreateTeamEventType:Success", "team_event_type_id", created.ID)
	return dto.ToTeamEventTypeResponse(created), nil
}

func (s *teamScheduleService) GetTeamEventType(ctx context.Context, id uuid.UUID) (*dto.TeamEventTypeResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	eventType, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load team event type", err)
	}
	if eventType == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "team event type not found", nil)
	}

	return dto.ToTeamEventTypeResponse(eventType), nil
}

func (s *teamScheduleService) ListTeamEventTypes(ctx context.Context, queryParams params.QueryParams) (*entity.PaginatedTeamEventTypes, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	page, err := s.repo.List(ctx, queryParams)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list team event types", err)
	}
	return page, nil
}

func (s *teamScheduleService) UpdateTeamEventType(ctx context.Context, id uuid.UUID, req *dto.UpdateTeamEventTypeRequest) (*dto.TeamEventTypeResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load team event type", err)
	}
	if existing == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "team event type not found", nil)
	}

	eventType, appErr := s.eventTypeFromRequest(ctx, req.Name, req.DurationMinutes, req.Mode, req.HostIDs, req.Overrides)
	if appErr != nil {
		return nil, appErr
	}
	eventType.ID = id
	eventType.IsActive = existing.IsActive

	if err := s.repo.Update(ctx, eventType); err != nil {
		logger.Error("TeamScheduleService:UpdateTeamEventType:Error", err, "team_event_type_id", id)
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to update team event type", err)
	}

	logger.Info("TeamScheduleService:UpdateTeamEventType:Success", "team_event_type_id", id)
	return dto.ToTeamEventTypeResponse(eventType), nil
}

func (s *teamScheduleService) DeleteTeamEventType(ctx context.Context, id uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "failed to load team event type", err)
	}
	if existing == nil {
		return errors.NewAppError(errors.ErrNotFound, "team event type not found", nil)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "failed to delete team event type", err)
	}

	logger.Info("TeamScheduleService:DeleteTeamEventType:Success", "team_event_type_id", id)
	return nil
}

func (s *teamScheduleService) SetActive(ctx context.Context, id uuid.UUID, active bool) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "failed to load team event type", err)
	}
	if existing == nil {
		return errors.NewAppError(errors.ErrNotFound, "team event type not found", nil)
	}

	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "failed to toggle team event type", err)
	}
	return nil
}

func (s *teamScheduleService) eventTypeFromRequest(ctx context.Context, name string, durationMinutes int, mode string, hostIDStrings []string, overrides *dto.SettingsOverridesRequest) (*entity.TeamEventType, *errors.AppError) {
	schedulingMode := entity.SchedulingMode(mode)
	if !schedulingMode.Valid() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "mode must be round_robin, collective or individual", nil)
	}
	if durationMinutes < 15 || durationMinutes > 480 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "duration must be between 15 and 480 minutes", nil)
	}

	hostIDs := make([]uuid.UUID, 0, len(hostIDStrings))
	for _, raw := range hostIDStrings {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid host id: "+raw, err)
		}
		hostIDs = append(hostIDs, id)
	}

	if schedulingMode.RequiresHosts() && len(hostIDs) == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "round_robin and collective event types need at least one host", nil)
	}

	validation, appErr := s.ValidateTeamHosts(ctx, hostIDs)
	if appErr != nil {
		return nil, appErr
	}
	if !validation.Valid {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "host list contains missing or inactive hosts", nil)
	}

	eventType := &entity.TeamEventType{
		Name:            name,
		Slug:            slug.Make(name),
		DurationMinutes: durationMinutes,
		Mode:            schedulingMode,
		HostIDs:         hostIDs,
	}
	if overrides != nil {
		eventType.SettingsOverrides = availabilityEntity.SettingsOverrides{
			MinimumNoticeHours:  overrides.MinimumNoticeHours,
			BookingWindowDays:   overrides.BookingWindowDays,
			BufferBeforeMinutes: overrides.BufferBeforeMinutes,
			BufferAfterMinutes:  overrides.BufferAfterMinutes,
			DailyBookingLimit:   overrides.DailyBookingLimit,
		}
	}
	return eventType, nil
}

// ===================== Availability views =====================

// GetTeamAvailableSlots dispatches to the collective view for collective
// mode and the round-robin union view otherwise.
func (s *teamScheduleService) GetTeamAvailableSlots(ctx context.Context, teamEventTypeID uuid.UUID, date, timezone string) (*dto.TeamSlotListResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	displayLoc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "unknown timezone: "+timezone, err)
	}

	eventType, hosts, appErr := s.loadEventTypeWithHosts(ctx, teamEventTypeID)
	if appErr != nil {
		return nil, appErr
	}

	perHost, appErr := s.perHostSlotSets(ctx, eventType, hosts, date, time.Now())
	if appErr != nil {
		return nil, appErr
	}

	var view []availabilityEntity.AvailableSlot
	if eventType.Mode == entity.ModeCollective {
		view = s.coordinator.CollectiveView(perHost)
	} else {
		view = s.coordinator.RoundRobinView(perHost)
	}

	return &dto.TeamSlotListResponse{
		TeamEventTypeID: teamEventTypeID.String(),
		Date:            date,
		Timezone:        timezone,
		Mode:            string(eventType.Mode),
		Slots:           dto.ToSlotResponses(view, displayLoc),
	}, nil
}

// GetIndividualSlots returns the raw per-host map regardless of mode.
func (s *teamScheduleService) GetIndividualSlots(ctx context.Context, teamEventTypeID uuid.UUID, date, timezone string) (*dto.IndividualSlotsResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	displayLoc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "unknown timezone: "+timezone, err)
	}

	eventType, hosts, appErr := s.loadEventTypeWithHosts(ctx, teamEventTypeID)
	if appErr != nil {
		return nil, appErr
	}

	perHost, appErr := s.perHostSlotSets(ctx, eventType, hosts, date, time.Now())
	if appErr != nil {
		return nil, appErr
	}

	slotsByHost := make(map[string][]dto.SlotResponse, len(perHost))
	for hostID, slots := range perHost {
		slotsByHost[hostID.String()] = dto.ToSlotResponses(slots, displayLoc)
	}

	return &dto.IndividualSlotsResponse{
		TeamEventTypeID: teamEventTypeID.String(),
		Date:            date,
		Timezone:        timezone,
		SlotsByHost:     slotsByHost,
	}, nil
}

// IsTeamSlotAvailable re-derives the relevant view fresh and checks whether
// the exact [start, end) slot is in it. Never cached.
func (s *teamScheduleService) IsTeamSlotAvailable(ctx context.Context, teamEventTypeID uuid.UUID, start, end time.Time) (bool, *errors.AppError) {
	eventType, hosts, appErr := s.loadEventTypeWithHosts(ctx, teamEventTypeID)
	if appErr != nil {
		if appErr.Code == errors.ErrNotFound {
			return false, nil
		}
		return false, appErr
	}

	perHost, appErr := s.perHostSlotSetsForInstant(ctx, eventType, hosts, start, time.Now())
	if appErr != nil {
		return false, appErr
	}

	var view []availabilityEntity.AvailableSlot
	if eventType.Mode == entity.ModeCollective {
		view = s.coordinator.CollectiveView(perHost)
	} else {
		view = s.coordinator.RoundRobinView(perHost)
	}

	for _, slot := range view {
		if slot.Start.Equal(start) && slot.End.Equal(end) {
			return slot.Available, nil
		}
	}
	return false, nil
}

// GetNextRoundRobinHost performs a guarded fair selection. A nil result
// means no host can serve the slot.
func (s *teamScheduleService) GetNextRoundRobinHost(ctx context.Context, teamEventTypeID uuid.UUID, start, end time.Time) (*dto.NextHostResponse, *errors.AppError) {
	eventType, hosts, appErr := s.loadEventTypeWithHosts(ctx, teamEventTypeID)
	if appErr != nil {
		if appErr.Code == errors.ErrNotFound {
			return nil, nil
		}
		return nil, appErr
	}
	if eventType.Mode != entity.ModeRoundRobin {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "event type is not round_robin", nil)
	}

	selected, appErr := s.coordinator.SelectNextHost(ctx, eventType, hosts, start, end, time.Now())
	if appErr != nil {
		return nil, appErr
	}
	if selected == nil {
		return nil, nil
	}

	return &dto.NextHostResponse{
		Host:     hostDto.ToHostResponse(selected.Host),
		NewIndex: selected.NewIndex,
	}, nil
}

// ValidateTeamHosts reports per-host problems instead of failing: an id is
// invalid when it resolves to no scheduling user or to an inactive one.
func (s *teamScheduleService) ValidateTeamHosts(ctx context.Context, hostIDs []uuid.UUID) (*dto.HostValidationResponse, *errors.AppError) {
	if len(hostIDs) == 0 {
		return &dto.HostValidationResponse{Valid: true, InvalidIDs: []string{}}, nil
	}

	hosts, err := s.hosts.GetByIDs(ctx, hostIDs)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load hosts", err)
	}

	active := make(map[uuid.UUID]bool, len(hosts))
	for _, h := range hosts {
		active[h.ID] = h.IsActive
	}

	invalid := []string{}
	for _, id := range hostIDs {
		if isActive, found := active[id]; !found || !isActive {
			invalid = append(invalid, id.String())
		}
	}

	return &dto.HostValidationResponse{
		Valid:      len(invalid) == 0,
		InvalidIDs: invalid,
	}, nil
}

// ===================== Booking =====================

// CreateTeamBooking runs the full guarded sequence: slot lock, fresh
// availability re-check, mode-specific host resolution, persist, release.
func (s *teamScheduleService) CreateTeamBooking(ctx context.Context, teamEventTypeID uuid.UUID, req *dto.CreateTeamBookingRequest) (*dto.TeamBookingResponse, *errors.AppError) {
	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "start must be RFC3339", err)
	}
	if req.InviteeName == "" || req.InviteeEmail == "" {
		return nil, errors.NewAppError(errors.ErrInvalidRequestData, "invitee_name and invitee_email are required", nil)
	}

	eventType, hosts, appErr := s.loadEventTypeWithHosts(ctx, teamEventTypeID)
	if appErr != nil {
		return nil, appErr
	}
	if !eventType.IsActive {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "team event type is inactive", nil)
	}

	end := start.Add(time.Duration(eventType.DurationMinutes) * time.Minute)

	logger.Info("TeamScheduleService:CreateTeamBooking:Start",
		"team_event_type_id", teamEventTypeID,
		"mode", eventType.Mode,
		"start", start.UTC().Format(time.RFC3339))

	// 1. Serialize on this exact slot instant.
	slotKey := SlotLockKey(teamEventTypeID, start)
	slotToken, appErr := s.coordinator.AcquireWithRetry(ctx, slotKey)
	if appErr != nil {
		return nil, appErr
	}
	defer func() {
		if err := s.lock.Release(ctx, slotKey, slotToken); err != nil {
			logger.Warn("TeamScheduleService:CreateTeamBooking:ReleaseSlotLock", "key", slotKey.String(), "error", err)
		}
	}()

	// 2. Close the check-then-act gap: the slot shown earlier may be gone.
	available, appErr := s.IsTeamSlotAvailable(ctx, teamEventTypeID, start, end)
	if appErr != nil {
		return nil, appErr
	}
	if !available {
		return nil, errors.NewAppError(errors.ErrSlotTaken, "slot is no longer available", nil)
	}

	// 3. Resolve the hosts actually being booked.
	var targetHosts []hostEntity.SchedulingUser
	switch eventType.Mode {
	case entity.ModeRoundRobin:
		selected, appErr := s.coordinator.SelectNextHost(ctx, eventType, hosts, start, end, time.Now())
		if appErr != nil {
			return nil, appErr
		}
		if selected == nil {
			return nil, errors.NewAppError(errors.ErrSlotTaken, "no host can serve this slot", nil)
		}
		targetHosts = []hostEntity.SchedulingUser{*selected.Host}

	case entity.ModeIndividual:
		if req.HostID == nil {
			return nil, errors.NewAppError(errors.ErrInvalidRequestData, "host_id is required for individual event types", nil)
		}
		hostID, err := uuid.Parse(*req.HostID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid host_id", err)
		}
		var chosen *hostEntity.SchedulingUser
		for i := range hosts {
			if hosts[i].ID == hostID {
				chosen = &hosts[i]
				break
			}
		}
		if chosen == nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "host is not part of this event type", nil)
		}
		ok, appErr := s.coordinator.HostHasSlot(ctx, chosen, eventType, start, end, time.Now())
		if appErr != nil {
			return nil, appErr
		}
		if !ok {
			return nil, errors.NewAppError(errors.ErrSlotTaken, "host is not available for this slot", nil)
		}
		targetHosts = []hostEntity.SchedulingUser{*chosen}

	case entity.ModeCollective:
		targetHosts = hosts
	}

	// 4. Persist one record per booked host, under a shared reference. A
	// partial multi-host booking must not survive: a failed insert cancels
	// every row already written so no host keeps a slot blocked for a
	// booking that never completed.
	reference := utils.NewReferenceCode()
	persisted := make([]*bookingEntity.Booking, 0, len(targetHosts))

	for i := range targetHosts {
		booking := &bookingEntity.Booking{
			HostID:          targetHosts[i].ID,
			TeamEventTypeID: &eventType.ID,
			StartTime:       start.UTC(),
			EndTime:         end.UTC(),
			Status:          bookingEntity.BookingStatusConfirmed,
			InviteeName:     req.InviteeName,
			InviteeEmail:    req.InviteeEmail,
			ReferenceCode:   reference,
		}
		created, appErr := s.bookings.CreateBooking(ctx, booking)
		if appErr != nil {
			s.rollbackBookings(ctx, persisted, reference)
			return nil, appErr
		}
		persisted = append(persisted, created)
	}

	bookingIDs := make([]string, 0, len(persisted))
	hostIDs := make([]string, 0, len(persisted))
	var first *bookingEntity.Booking
	for _, created := range persisted {
		bookingIDs = append(bookingIDs, created.ID.String())
		hostIDs = append(hostIDs, created.HostID.String())
		if first == nil {
			first = created
		}
	}

	// 5. Fire-and-forget notification.
	if s.notifier != nil && first != nil {
		s.notifier.NotifyBookingCreated(ctx, first)
	}

	logger.Info("TeamScheduleService:CreateTeamBooking:Success",
		"team_event_type_id", teamEventTypeID,
		"reference", reference,
		"hosts", len(targetHosts))

	return &dto.TeamBookingResponse{
		ReferenceCode: reference,
		BookingIDs:    bookingIDs,
		HostIDs:       hostIDs,
		Start:         start.UTC().Format(time.RFC3339),
		End:           end.UTC().Format(time.RFC3339),
	}, nil
}

// rollbackBookings cancels booking rows written before a multi-host
// persist failed. Cancellation failures are logged, not returned; the
// caller already carries the original error.
func (s *teamScheduleService) rollbackBookings(ctx context.Context, persisted []*bookingEntity.Booking, reference string) {
	for _, b := range persisted {
		if _, appErr := s.bookings.CancelBooking(ctx, b.ID); appErr != nil {
			logger.Error("TeamScheduleService:CreateTeamBooking:Rollback",
				"booking_id", b.ID, "reference", reference, "error", appErr)
		}
	}
}

// ===================== Lock passthrough =====================

func (s *teamScheduleService) AcquireBookingLock(ctx context.Context, key LockKey) (string, bool, *errors.AppError) {
	token, acquired, err := s.lock.Acquire(ctx, key)
	if err != nil {
		return "", false, errors.NewAppError(errors.ErrInternalServer, "lock acquire failed", err)
	}
	return token, acquired, nil
}

func (s *teamScheduleService) ReleaseBookingLock(ctx context.Context, key LockKey, token string) *errors.AppError {
	if err := s.lock.Release(ctx, key, token); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "lock release failed", err)
	}
	return nil
}

// ===================== internal =====================

// loadEventTypeWithHosts loads the event type plus its hosts in the
// configured rotation order.
func (s *teamScheduleService) loadEventTypeWithHosts(ctx context.Context, teamEventTypeID uuid.UUID) (*entity.TeamEventType, []hostEntity.SchedulingUser, *errors.AppError) {
	eventType, err := s.repo.GetByID(ctx, teamEventTypeID)
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrGetFailed, "failed to load team event type", err)
	}
	if eventType == nil {
		return nil, nil, errors.NewAppError(errors.ErrNotFound, "team event type not found", nil)
	}

	loaded, err := s.hosts.GetByIDs(ctx, eventType.HostIDs)
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrGetFailed, "failed to load hosts", err)
	}

	byID := make(map[uuid.UUID]hostEntity.SchedulingUser, len(loaded))
	for _, h := range loaded {
		byID[h.ID] = h
	}

	hosts := make([]hostEntity.SchedulingUser, 0, len(eventType.HostIDs))
	for _, id := range eventType.HostIDs {
		if h, ok := byID[id]; ok && h.IsActive {
			hosts = append(hosts, h)
		}
	}

	return eventType, hosts, nil
}

// perHostSlotSets computes the full candidate set of each host for the
// labeled calendar date, interpreted in each host's own timezone.
func (s *teamScheduleService) perHostSlotSets(ctx context.Context, eventType *entity.TeamEventType, hosts []hostEntity.SchedulingUser, date string, now time.Time) (map[uuid.UUID][]availabilityEntity.AvailableSlot, *errors.AppError) {
	perHost := make(map[uuid.UUID][]availabilityEntity.AvailableSlot, len(hosts))
	for i := range hosts {
		host := &hosts[i]

		loc, err := time.LoadLocation(host.Timezone)
		if err != nil {
			loc = time.UTC
		}
		day, err := utils.ParseDate(date, loc)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "date must be YYYY-MM-DD", err)
		}

		slots, appErr := s.slots.HostSlotsForDate(ctx, host, day, eventType.DurationMinutes, eventType.Overrides(), nil, now)
		if appErr != nil {
			return nil, appErr
		}
		perHost[host.ID] = slots
	}
	return perHost, nil
}

// perHostSlotSetsForInstant computes each host's set for the calendar day
// containing start in that host's timezone.
func (s *teamScheduleService) perHostSlotSetsForInstant(ctx context.Context, eventType *entity.TeamEventType, hosts []hostEntity.SchedulingUser, start time.Time, now time.Time) (map[uuid.UUID][]availabilityEntity.AvailableSlot, *errors.AppError) {
	perHost := make(map[uuid.UUID][]availabilityEntity.AvailableSlot, len(hosts))
	for i := range hosts {
		host := &hosts[i]

		loc, err := time.LoadLocation(host.Timezone)
		if err != nil {
			loc = time.UTC
		}
		day := start.In(loc)
		date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)

		slots, appErr := s.slots.HostSlotsForDate(ctx, host, date, eventType.DurationMinutes, eventType.Overrides(), nil, now)
		if appErr != nil {
			return nil, appErr
		}
		perHost[host.ID] = slots
	}
	return perHost, nil
}
