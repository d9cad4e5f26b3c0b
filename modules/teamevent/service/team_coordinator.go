package service

import (
	"context"
	"sort"
	"time"

	"team-schedule-api/core/errors"
	"team-schedule-api/core/logger"
	availabilityEntity "team-schedule-api/modules/availability/entity"
	hostEntity "team-schedule-api/modules/host/entity"
	"team-schedule-api/modules/teamevent/entity"

	"github.com/google/uuid"
)

// HostSlotProvider is the slice of the availability service the coordinator
// needs: the full per-host candidate set for one date.
type HostSlotProvider interface {
	HostSlotsForDate(ctx context.Context, host *hostEntity.SchedulingUser, date time.Time, durationMinutes int, overrides *availabilityEntity.SettingsOverrides, busyTimes []availabilityEntity.TimeRange, now time.Time) ([]availabilityEntity.AvailableSlot, *errors.AppError)
}

// CounterStore is the slice of the team event repository the coordinator
// needs for the rotation counter.
type CounterStore interface {
	GetCounter(ctx context.Context, teamEventTypeID uuid.UUID) (*entity.RoundRobinCounter, error)
	UpdateCounter(ctx context.Context, teamEventTypeID uuid.UUID, index int) error
}

// TeamCoordinator builds team-level availability views from per-host slot
// sets and performs fair round-robin host selection.
type TeamCoordinator struct {
	slots       HostSlotProvider
	counters    CounterStore
	lock        *BookingLock
	maxAttempts int
	backoffBase time.Duration
}

func NewTeamCoordinator(slots HostSlotProvider, counters CounterStore, lock *BookingLock, maxAttempts int, backoffBase time.Duration) *TeamCoordinator {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &TeamCoordinator{
		slots:       slots,
		counters:    counters,
		lock:        lock,
		maxAttempts: maxAttempts,
		backoffBase: backoffBase,
	}
}

// SelectedHost is the outcome of a round-robin selection.
type SelectedHost struct {
	Host     *hostEntity.SchedulingUser
	NewIndex int
}

// ===================== Views =====================

// RoundRobinView is the union view: a slot start is available when at least
// one host has it available. Hosts are not revealed to the caller.
func (c *TeamCoordinator) RoundRobinView(perHost map[uuid.UUID][]availabilityEntity.AvailableSlot) []availabilityEntity.AvailableSlot {
	merged := map[int64]availabilityEntity.AvailableSlot{}
	for _, slots := range perHost {
		for _, s := range slots {
			key := s.Start.Unix()
			existing, seen := merged[key]
			if !seen {
				merged[key] = s
				continue
			}
			if s.Available && !existing.Available {
				merged[key] = s
			}
		}
	}
	return sortedSlots(merged)
}

// CollectiveView is the intersection view: a slot start is available only
// when every host has it available simultaneously.
func (c *TeamCoordinator) CollectiveView(perHost map[uuid.UUID][]availabilityEntity.AvailableSlot) []availabilityEntity.AvailableSlot {
	if len(perHost) == 0 {
		return nil
	}

	availableCount := map[int64]int{}
	candidates := map[int64]availabilityEntity.AvailableSlot{}
	for _, slots := range perHost {
		for _, s := range slots {
			key := s.Start.Unix()
			if _, seen := candidates[key]; !seen {
				candidates[key] = s
			}
			if s.Available {
				availableCount[key]++
			}
		}
	}

	merged := map[int64]availabilityEntity.AvailableSlot{}
	for key, s := range candidates {
		s.Available = availableCount[key] == len(perHost)
		merged[key] = s
	}
	return sortedSlots(merged)
}

func sortedSlots(merged map[int64]availabilityEntity.AvailableSlot) []availabilityEntity.AvailableSlot {
	out := make([]availabilityEntity.AvailableSlot, 0, len(merged))
	for _, s := range merged {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

// ===================== Fair host selection =====================

// SelectNextHost picks the host to serve [start, end) for a round-robin
// event type. Hosts are tried in rotation order from the counter index; the
// first whose individual availability contains the exact slot wins, and the
// counter moves to exactly one past the selected host. Skipped hosts keep
// their turn for the next selection. The whole read-search-write spans one
// hold of the rotation lock. A nil result with nil error means no host can
// serve the slot.
func (c *TeamCoordinator) SelectNextHost(ctx context.Context, eventType *entity.TeamEventType, hosts []hostEntity.SchedulingUser, start, end time.Time, now time.Time) (*SelectedHost, *errors.AppError) {
	if len(hosts) == 0 {
		return nil, nil
	}

	key := RotationLockKey(eventType.ID)
	token, appErr := c.AcquireWithRetry(ctx, key)
	if appErr != nil {
		return nil, appErr
	}
	defer func() {
		if err := c.lock.Release(ctx, key, token); err != nil {
			logger.Warn("TeamCoordinator:SelectNextHost:Release", "key", key.String(), "error", err)
		}
	}()

	counter, err := c.counters.GetCounter(ctx, eventType.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load rotation counter", err)
	}
	if counter == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "rotation counter not found", nil)
	}

	n := len(hosts)
	startIndex := counter.CurrentIndex % n

	for i := 0; i < n; i++ {
		idx := (startIndex + i) % n
		host := &hosts[idx]

		ok, appErr := c.HostHasSlot(ctx, host, eventType, start, end, now)
		if appErr != nil {
			return nil, appErr
		}
		if !ok {
			continue
		}

		newIndex := (idx + 1) % n
		if err := c.counters.UpdateCounter(ctx, eventType.ID, newIndex); err != nil {
			return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to advance rotation counter", err)
		}

		logger.Info("TeamCoordinator:SelectNextHost:Selected",
			"team_event_type_id", eventType.ID,
			"host_id", host.ID,
			"new_index", newIndex)
		return &SelectedHost{Host: host, NewIndex: newIndex}, nil
	}

	logger.Info("TeamCoordinator:SelectNextHost:NoHostAvailable",
		"team_event_type_id", eventType.ID,
		"start", start.UTC().Format(time.RFC3339))
	return nil, nil
}

// HostHasSlot reports whether the host's own availability contains the
// exact [start, end) slot, marked available.
func (c *TeamCoordinator) HostHasSlot(ctx context.Context, host *hostEntity.SchedulingUser, eventType *entity.TeamEventType, start, end time.Time, now time.Time) (bool, *errors.AppError) {
	loc, err := time.LoadLocation(host.Timezone)
	if err != nil {
		loc = time.UTC
	}
	day := start.In(loc)
	date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)

	slots, appErr := c.slots.HostSlotsForDate(ctx, host, date, eventType.DurationMinutes, eventType.Overrides(), nil, now)
	if appErr != nil {
		return false, appErr
	}

	for _, s := range slots {
		if s.Start.Equal(start) && s.End.Equal(end) {
			return s.Available, nil
		}
	}
	return false, nil
}

// AcquireWithRetry wraps the non-blocking lock in a bounded retry loop with
// exponential backoff. After the final failed attempt it surfaces
// ErrLockContention; it never recurses.
func (c *TeamCoordinator) AcquireWithRetry(ctx context.Context, key LockKey) (string, *errors.AppError) {
	backoff := c.backoffBase

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		token, acquired, err := c.lock.Acquire(ctx, key)
		if err != nil {
			return "", errors.NewAppError(errors.ErrInternalServer, "lock acquire failed", err)
		}
		if acquired {
			return token, nil
		}

		if attempt == c.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return "", errors.NewAppError(errors.ErrLockContention, "cancelled while waiting for lock", ctx.Err())
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	logger.Warn("TeamCoordinator:AcquireWithRetry:Exhausted", "key", key.String(), "attempts", c.maxAttempts)
	return "", errors.NewAppError(errors.ErrLockContention, "lock is held by another operation", nil)
}
