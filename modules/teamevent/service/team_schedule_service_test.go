package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"team-schedule-api/core/errors"
	"team-schedule-api/core/params"
	availabilityEntity "team-schedule-api/modules/availability/entity"
	bookingDto "team-schedule-api/modules/booking/dto"
	bookingEntity "team-schedule-api/modules/booking/entity"
	hostEntity "team-schedule-api/modules/host/entity"
	"team-schedule-api/modules/teamevent/dto"
	"team-schedule-api/modules/teamevent/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// teamEventRepoMock keeps event types and counters in memory.
type teamEventRepoMock struct {
	mu       sync.Mutex
	types    map[uuid.UUID]*entity.TeamEventType
	counters map[uuid.UUID]int
}

func newTeamEventRepoMock() *teamEventRepoMock {
	return &teamEventRepoMock{
		types:    map[uuid.UUID]*entity.TeamEventType{},
		counters: map[uuid.UUID]int{},
	}
}

func (m *teamEventRepoMock) Create(ctx context.Context, eventType *entity.TeamEventType) (*entity.TeamEventType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if eventType.ID == uuid.Nil {
		eventType.ID = uuid.New()
	}
	m.types[eventType.ID] = eventType
	m.counters[eventType.ID] = 0
	return eventType, nil
}

func (m *teamEventRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*entity.TeamEventType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.types[id]
	if !ok {
		return nil, nil
	}
	return t, nil
}

func (m *teamEventRepoMock) List(ctx context.Context, queryParams params.QueryParams) (*entity.PaginatedTeamEventTypes, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	page := &entity.PaginatedTeamEventTypes{}
	for _, t := range m.types {
		page.EventTypes = append(page.EventTypes, *t)
	}
	page.TotalCount = len(page.EventTypes)
	return page, nil
}

func (m *teamEventRepoMock) Update(ctx context.Context, eventType *entity.TeamEventType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.types[eventType.ID] = eventType
	return nil
}

func (m *teamEventRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.types, id)
	delete(m.counters, id)
	return nil
}

func (m *teamEventRepoMock) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.types[id]; ok {
		t.IsActive = active
	}
	return nil
}

func (m *teamEventRepoMock) GetCounter(ctx context.Context, teamEventTypeID uuid.UUID) (*entity.RoundRobinCounter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &entity.RoundRobinCounter{TeamEventTypeID: teamEventTypeID, CurrentIndex: m.counters[teamEventTypeID]}, nil
}

func (m *teamEventRepoMock) UpdateCounter(ctx context.Context, teamEventTypeID uuid.UUID, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[teamEventTypeID] = index
	return nil
}

// hostStoreMock serves a fixed host set.
type hostStoreMock struct {
	hosts map[uuid.UUID]hostEntity.SchedulingUser
}

func newHostStoreMock(hosts []hostEntity.SchedulingUser) *hostStoreMock {
	m := &hostStoreMock{hosts: map[uuid.UUID]hostEntity.SchedulingUser{}}
	for _, h := range hosts {
		m.hosts[h.ID] = h
	}
	return m
}

func (m *hostStoreMock) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]hostEntity.SchedulingUser, error) {
	out := make([]hostEntity.SchedulingUser, 0, len(ids))
	for _, id := range ids {
		if h, ok := m.hosts[id]; ok {
			out = append(out, h)
		}
	}
	return out, nil
}

// bookingServiceMock records created bookings in memory. Setting failOnCall
// makes that CreateBooking call (1-based) fail, for partial-persist paths.
type bookingServiceMock struct {
	mu          sync.Mutex
	created     []bookingEntity.Booking
	failOnCall  int
	createCalls int
}

func (m *bookingServiceMock) CreateBooking(ctx context.Context, booking *bookingEntity.Booking) (*bookingEntity.Booking, *errors.AppError) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	if m.failOnCall > 0 && m.createCalls == m.failOnCall {
		return nil, errors.NewAppError(errors.ErrInternalServer, "insert failed", nil)
	}
	b := *booking
	b.ID = uuid.New()
	m.created = append(m.created, b)
	return &b, nil
}

func (m *bookingServiceMock) blockingFor(hostID uuid.UUID, start, end time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.created {
		if b.HostID == hostID && b.Status.Blocking() && b.StartTime.Before(end) && b.EndTime.After(start) {
			return true
		}
	}
	return false
}

func (m *bookingServiceMock) blockingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, b := range m.created {
		if b.Status.Blocking() {
			n++
		}
	}
	return n
}

func (m *bookingServiceMock) GetBooking(ctx context.Context, id uuid.UUID) (*bookingDto.BookingResponse, *errors.AppError) {
	return nil, nil
}

func (m *bookingServiceMock) GetBookingByReference(ctx context.Context, code string) (*bookingDto.BookingResponse, *errors.AppError) {
	return nil, nil
}

func (m *bookingServiceMock) ListHostBookings(ctx context.Context, hostID uuid.UUID, from, to time.Time) ([]bookingDto.BookingResponse, *errors.AppError) {
	return nil, nil
}

func (m *bookingServiceMock) CancelBooking(ctx context.Context, id uuid.UUID) (*bookingDto.BookingResponse, *errors.AppError) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.created {
		if m.created[i].ID == id {
			m.created[i].Status = bookingEntity.BookingStatusCancelled
		}
	}
	return nil, nil
}

func (m *bookingServiceMock) RescheduleBooking(ctx context.Context, id uuid.UUID, req *bookingDto.RescheduleBookingRequest) (*bookingDto.BookingResponse, *errors.AppError) {
	return nil, nil
}

// notifierMock counts fire-and-forget notifications.
type notifierMock struct {
	mu    sync.Mutex
	calls int
}

func (m *notifierMock) NotifyBookingCreated(ctx context.Context, booking *bookingEntity.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
}

// scheduleFixture wires the façade against in-memory collaborators. Each
// host has the 09:00 slot unless an existing booking claims it.
type scheduleFixture struct {
	svc      TeamScheduleServiceInterface
	repo     *teamEventRepoMock
	hosts    []hostEntity.SchedulingUser
	bookings *bookingServiceMock
	notifier *notifierMock
	cache    *memoryCache
}

func newScheduleFixture(t *testing.T, hostCount int, mode entity.SchedulingMode) (*scheduleFixture, *entity.TeamEventType) {
	t.Helper()

	hosts := coordinatorTestHosts(hostCount)
	repo := newTeamEventRepoMock()
	bookings := &bookingServiceMock{}
	notifier := &notifierMock{}
	cache := newMemoryCache()

	provider := &slotProviderMock{
		slotsFunc: func(_ context.Context, host *hostEntity.SchedulingUser, _ time.Time, _ int, _ *availabilityEntity.SettingsOverrides, _ []availabilityEntity.TimeRange, _ time.Time) ([]availabilityEntity.AvailableSlot, *errors.AppError) {
			available := !bookings.blockingFor(host.ID, slotStart, slotEnd)
			return slotsFor(map[time.Time]bool{slotStart: available}), nil
		},
	}

	lock := NewBookingLock(cache, time.Minute)
	coordinator := NewTeamCoordinator(provider, repo, lock, 3, time.Millisecond)
	svc := NewTeamScheduleService(repo, newHostStoreMock(hosts), provider, bookings, coordinator, lock, notifier)

	eventType := roundRobinType(hosts)
	eventType.Mode = mode
	_, err := repo.Create(context.Background(), eventType)
	require.NoError(t, err)

	return &scheduleFixture{
		svc:      svc,
		repo:     repo,
		hosts:    hosts,
		bookings: bookings,
		notifier: notifier,
		cache:    cache,
	}, eventType
}

func bookingRequest() *dto.CreateTeamBookingRequest {
	return &dto.CreateTeamBookingRequest{
		Start:        slotStart.Format(time.RFC3339),
		InviteeName:  "Alice",
		InviteeEmail: "alice@example.com",
	}
}

// ===================== Host validation =====================

func TestValidateTeamHosts_ReportsMissingAndInactive(t *testing.T) {
	t.Parallel()

	active := hostEntity.SchedulingUser{ID: uuid.New(), Timezone: "UTC", IsActive: true}
	inactive := hostEntity.SchedulingUser{ID: uuid.New(), Timezone: "UTC", IsActive: false}
	missing := uuid.New()

	repo := newTeamEventRepoMock()
	svc := NewTeamScheduleService(repo, newHostStoreMock([]hostEntity.SchedulingUser{active, inactive}),
		nil, nil, nil, NewBookingLock(newMemoryCache(), time.Minute), nil)

	result, appErr := svc.ValidateTeamHosts(context.Background(), []uuid.UUID{active.ID, inactive.ID, missing})
	require.Nil(t, appErr)

	assert.False(t, result.Valid)
	assert.ElementsMatch(t, []string{inactive.ID.String(), missing.String()}, result.InvalidIDs)
}

func TestValidateTeamHosts_EmptyListIsValid(t *testing.T) {
	t.Parallel()

	svc := NewTeamScheduleService(newTeamEventRepoMock(), newHostStoreMock(nil),
		nil, nil, nil, NewBookingLock(newMemoryCache(), time.Minute), nil)

	result, appErr := svc.ValidateTeamHosts(context.Background(), nil)
	require.Nil(t, appErr)
	assert.True(t, result.Valid)
	assert.Empty(t, result.InvalidIDs)
}

// ===================== Event type validation =====================

func TestCreateTeamEventType_RejectsUnknownMode(t *testing.T) {
	t.Parallel()

	fixture, _ := newScheduleFixture(t, 1, entity.ModeRoundRobin)

	_, appErr := fixture.svc.CreateTeamEventType(context.Background(), &dto.CreateTeamEventTypeRequest{
		Name:            "Broken",
		DurationMinutes: 30,
		Mode:            "first_come_first_served",
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestCreateTeamEventType_RoundRobinNeedsHosts(t *testing.T) {
	t.Parallel()

	fixture, _ := newScheduleFixture(t, 1, entity.ModeRoundRobin)

	_, appErr := fixture.svc.CreateTeamEventType(context.Background(), &dto.CreateTeamEventTypeRequest{
		Name:            "Empty Team",
		DurationMinutes: 30,
		Mode:            string(entity.ModeRoundRobin),
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestCreateTeamEventType_SlugsName(t *testing.T) {
	t.Parallel()

	fixture, _ := newScheduleFixture(t, 2, entity.ModeRoundRobin)

	hostIDs := make([]string, 0, len(fixture.hosts))
	for _, h := range fixture.hosts {
		hostIDs = append(hostIDs, h.ID.String())
	}

	result, appErr := fixture.svc.CreateTeamEventType(context.Background(), &dto.CreateTeamEventTypeRequest{
		Name:            "Sales Intro Call",
		DurationMinutes: 30,
		Mode:            string(entity.ModeRoundRobin),
		HostIDs:         hostIDs,
	})
	require.Nil(t, appErr)
	assert.Equal(t, "sales-intro-call", result.Slug)
	assert.True(t, result.IsActive)
}

// ===================== Booking =====================

func TestCreateTeamBooking_RoundRobin(t *testing.T) {
	t.Parallel()

	fixture, eventType := newScheduleFixture(t, 3, entity.ModeRoundRobin)

	result, appErr := fixture.svc.CreateTeamBooking(context.Background(), eventType.ID, bookingRequest())
	require.Nil(t, appErr)

	require.Len(t, result.BookingIDs, 1, "round robin books exactly one host")
	assert.Equal(t, fixture.hosts[0].ID.String(), result.HostIDs[0], "rotation starts at the first configured host")
	assert.NotEmpty(t, result.ReferenceCode)
	assert.Equal(t, 1, fixture.repo.counters[eventType.ID], "counter advanced past the booked host")
	assert.Equal(t, 1, fixture.notifier.calls)
}

func TestCreateTeamBooking_ThenSlotNoLongerAvailable(t *testing.T) {
	t.Parallel()

	fixture, eventType := newScheduleFixture(t, 1, entity.ModeRoundRobin)
	ctx := context.Background()

	available, appErr := fixture.svc.IsTeamSlotAvailable(ctx, eventType.ID, slotStart, slotEnd)
	require.Nil(t, appErr)
	require.True(t, available)

	_, appErr = fixture.svc.CreateTeamBooking(ctx, eventType.ID, bookingRequest())
	require.Nil(t, appErr)

	available, appErr = fixture.svc.IsTeamSlotAvailable(ctx, eventType.ID, slotStart, slotEnd)
	require.Nil(t, appErr)
	assert.False(t, available, "booked slot disappears on the next check")

	_, appErr = fixture.svc.CreateTeamBooking(ctx, eventType.ID, bookingRequest())
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrSlotTaken, appErr.Code)
}

func TestCreateTeamBooking_CollectiveBooksEveryHost(t *testing.T) {
	t.Parallel()

	fixture, eventType := newScheduleFixture(t, 3, entity.ModeCollective)

	result, appErr := fixture.svc.CreateTeamBooking(context.Background(), eventType.ID, bookingRequest())
	require.Nil(t, appErr)

	require.Len(t, result.BookingIDs, 3, "collective books one record per host")
	assert.Len(t, result.HostIDs, 3)

	for _, b := range fixture.bookings.created {
		assert.Equal(t, result.ReferenceCode, b.ReferenceCode, "all records share the reference code")
		require.NotNil(t, b.TeamEventTypeID)
		assert.Equal(t, eventType.ID, *b.TeamEventTypeID)
	}
	assert.Equal(t, 1, fixture.notifier.calls, "one notification per booking flow, not per host")
}

func TestCreateTeamBooking_FailedInsertRollsBackEarlierHosts(t *testing.T) {
	t.Parallel()

	fixture, eventType := newScheduleFixture(t, 2, entity.ModeCollective)
	fixture.bookings.failOnCall = 2

	result, appErr := fixture.svc.CreateTeamBooking(context.Background(), eventType.ID, bookingRequest())
	require.NotNil(t, appErr)
	assert.Nil(t, result)

	assert.Equal(t, 0, fixture.bookings.blockingCount(),
		"no booking rows survive a failed collective booking")
	assert.Equal(t, 0, fixture.notifier.calls)

	// The slot is still bookable once the backend recovers.
	fixture.bookings.failOnCall = 0
	result, appErr = fixture.svc.CreateTeamBooking(context.Background(), eventType.ID, bookingRequest())
	require.Nil(t, appErr)
	assert.Len(t, result.BookingIDs, 2)
}

func TestCreateTeamBooking_CollectiveBlockedByOneBusyHost(t *testing.T) {
	t.Parallel()

	fixture, eventType := newScheduleFixture(t, 2, entity.ModeCollective)
	ctx := context.Background()

	// One host already has the slot booked elsewhere.
	_, appErr := fixture.bookings.CreateBooking(ctx, &bookingEntity.Booking{
		HostID:    fixture.hosts[1].ID,
		StartTime: slotStart,
		EndTime:   slotEnd,
		Status:    bookingEntity.BookingStatusConfirmed,
	})
	require.Nil(t, appErr)

	_, appErr = fixture.svc.CreateTeamBooking(ctx, eventType.ID, bookingRequest())
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrSlotTaken, appErr.Code)
}

func TestCreateTeamBooking_IndividualRequiresHostID(t *testing.T) {
	t.Parallel()

	fixture, eventType := newScheduleFixture(t, 2, entity.ModeIndividual)

	_, appErr := fixture.svc.CreateTeamBooking(context.Background(), eventType.ID, bookingRequest())
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidRequestData, appErr.Code)
}

func TestCreateTeamBooking_IndividualBooksChosenHost(t *testing.T) {
	t.Parallel()

	fixture, eventType := newScheduleFixture(t, 2, entity.ModeIndividual)

	req := bookingRequest()
	chosen := fixture.hosts[1].ID.String()
	req.HostID = &chosen

	result, appErr := fixture.svc.CreateTeamBooking(context.Background(), eventType.ID, req)
	require.Nil(t, appErr)
	require.Len(t, result.HostIDs, 1)
	assert.Equal(t, chosen, result.HostIDs[0])
}

func TestCreateTeamBooking_IndividualRejectsOutsideHost(t *testing.T) {
	t.Parallel()

	fixture, eventType := newScheduleFixture(t, 2, entity.ModeIndividual)

	req := bookingRequest()
	outsider := uuid.New().String()
	req.HostID = &outsider

	_, appErr := fixture.svc.CreateTeamBooking(context.Background(), eventType.ID, req)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestCreateTeamBooking_InactiveTypeRefuses(t *testing.T) {
	t.Parallel()

	fixture, eventType := newScheduleFixture(t, 1, entity.ModeRoundRobin)
	ctx := context.Background()

	require.Nil(t, fixture.svc.SetActive(ctx, eventType.ID, false))

	_, appErr := fixture.svc.CreateTeamBooking(ctx, eventType.ID, bookingRequest())
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestCreateTeamBooking_ReleasesSlotLock(t *testing.T) {
	t.Parallel()

	fixture, eventType := newScheduleFixture(t, 1, entity.ModeRoundRobin)
	ctx := context.Background()

	_, appErr := fixture.svc.CreateTeamBooking(ctx, eventType.ID, bookingRequest())
	require.Nil(t, appErr)

	fixture.cache.mu.Lock()
	remaining := len(fixture.cache.data)
	fixture.cache.mu.Unlock()
	assert.Zero(t, remaining, "no lock keys survive the booking flow")
}

// ===================== Views through the façade =====================

func TestGetTeamAvailableSlots_ModeDispatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	// Union view: one busy host does not hide the slot.
	rr, rrType := newScheduleFixture(t, 2, entity.ModeRoundRobin)
	_, appErr := rr.bookings.CreateBooking(ctx, &bookingEntity.Booking{
		HostID:    rr.hosts[0].ID,
		StartTime: slotStart,
		EndTime:   slotEnd,
		Status:    bookingEntity.BookingStatusConfirmed,
	})
	require.Nil(t, appErr)

	view, appErr := rr.svc.GetTeamAvailableSlots(ctx, rrType.ID, "2026-03-02", "UTC")
	require.Nil(t, appErr)
	assert.Len(t, view.Slots, 1)

	// Intersection view: the same busy host hides it.
	coll, collType := newScheduleFixture(t, 2, entity.ModeCollective)
	_, appErr = coll.bookings.CreateBooking(ctx, &bookingEntity.Booking{
		HostID:    coll.hosts[0].ID,
		StartTime: slotStart,
		EndTime:   slotEnd,
		Status:    bookingEntity.BookingStatusConfirmed,
	})
	require.Nil(t, appErr)

	view, appErr = coll.svc.GetTeamAvailableSlots(ctx, collType.ID, "2026-03-02", "UTC")
	require.Nil(t, appErr)
	assert.Empty(t, view.Slots)
}

func TestGetIndividualSlots_PerHostBreakdown(t *testing.T) {
	t.Parallel()

	fixture, eventType := newScheduleFixture(t, 2, entity.ModeIndividual)
	ctx := context.Background()

	_, appErr := fixture.bookings.CreateBooking(ctx, &bookingEntity.Booking{
		HostID:    fixture.hosts[0].ID,
		StartTime: slotStart,
		EndTime:   slotEnd,
		Status:    bookingEntity.BookingStatusConfirmed,
	})
	require.Nil(t, appErr)

	result, appErr := fixture.svc.GetIndividualSlots(ctx, eventType.ID, "2026-03-02", "UTC")
	require.Nil(t, appErr)

	require.Len(t, result.SlotsByHost, 2)
	assert.Empty(t, result.SlotsByHost[fixture.hosts[0].ID.String()], "busy host shows no slots")
	assert.Len(t, result.SlotsByHost[fixture.hosts[1].ID.String()], 1)
}

func TestGetNextRoundRobinHost_RejectsOtherModes(t *testing.T) {
	t.Parallel()

	fixture, eventType := newScheduleFixture(t, 2, entity.ModeCollective)

	_, appErr := fixture.svc.GetNextRoundRobinHost(context.Background(), eventType.ID, slotStart, slotEnd)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestGetNextRoundRobinHost_NilWhenNobodyServes(t *testing.T) {
	t.Parallel()

	fixture, eventType := newScheduleFixture(t, 1, entity.ModeRoundRobin)
	ctx := context.Background()

	_, appErr := fixture.bookings.CreateBooking(ctx, &bookingEntity.Booking{
		HostID:    fixture.hosts[0].ID,
		StartTime: slotStart,
		EndTime:   slotEnd,
		Status:    bookingEntity.BookingStatusConfirmed,
	})
	require.Nil(t, appErr)

	result, appErr := fixture.svc.GetNextRoundRobinHost(ctx, eventType.ID, slotStart, slotEnd)
	require.Nil(t, appErr)
	assert.Nil(t, result)
}
