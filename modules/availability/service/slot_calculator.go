package service

import (
	"sort"
	"time"

	"team-schedule-api/core/constants"
	"team-schedule-api/core/utils"
	"team-schedule-api/modules/availability/entity"
	bookingEntity "team-schedule-api/modules/booking/entity"
	hostEntity "team-schedule-api/modules/host/entity"
)

// SlotCalculator derives a host's candidate slots for one calendar date.
type SlotCalculator struct {
	// GranularityMinutes between consecutive candidate starts
	GranularityMinutes int
}

// NewSlotCalculator creates a calculator with the standard granularity
func NewSlotCalculator() *SlotCalculator {
	return &SlotCalculator{
		GranularityMinutes: constants.SlotGranularityMinutes,
	}
}

// CalculateSlots produces the full ordered candidate list, available and
// unavailable alike, for one date. date must be midnight of the target day
// in the host's timezone. Callers that only want bookable times filter on
// Available.
func (sc *SlotCalculator) CalculateSlots(
	date time.Time,
	host *hostEntity.SchedulingUser,
	durationMinutes int,
	settings entity.EffectiveSettings,
	schedule []entity.WeeklySchedule,
	blocks []entity.BlockedDate,
	bookings []bookingEntity.Booking,
	busyTimes []entity.TimeRange,
	now time.Time,
) []entity.AvailableSlot {

	loc, err := time.LoadLocation(host.Timezone)
	if err != nil {
		loc = time.UTC
	}

	// 1. Reject dates beyond the booking window outright.
	horizon := utils.StartOfDay(now, loc).AddDate(0, 0, settings.BookingWindowDays)
	if utils.StartOfDay(date, loc).After(horizon) {
		return nil
	}

	// 2. Resolve the weekly windows for this weekday.
	windows := sc.windowsForWeekday(schedule, int(date.In(loc).Weekday()))
	if len(windows) == 0 {
		return nil
	}

	// 3. A whole-day block removes the date entirely.
	dayBlocks := []entity.BlockedDate{}
	for _, b := range blocks {
		if !b.CoversDate(date, loc) {
			continue
		}
		if b.AllDay {
			return nil
		}
		dayBlocks = append(dayBlocks, b)
	}

	notice := now.Add(time.Duration(settings.MinimumNoticeHours) * time.Hour)
	duration := time.Duration(durationMinutes) * time.Minute
	granularity := time.Duration(sc.GranularityMinutes) * time.Minute

	// 4. Generate candidates per window; a slot ending exactly on the window
	// boundary is valid.
	var slots []entity.AvailableSlot
	for _, w := range windows {
		startMin, err := utils.ParseClock(w.StartTime)
		if err != nil {
			continue
		}
		endMin, err := utils.ParseClock(w.EndTime)
		if err != nil {
			continue
		}

		windowStart := utils.AtMinutes(date, startMin, loc)
		windowEnd := utils.AtMinutes(date, endMin, loc)

		for cur := windowStart; !cur.Add(duration).After(windowEnd); cur = cur.Add(granularity) {
			slot := entity.AvailableSlot{
				Start:     cur,
				End:       cur.Add(duration),
				Available: true,
			}

			if cur.Before(notice) {
				slot.Available = false
			}
			if slot.Available && sc.hitsBlock(slot, dayBlocks, date, loc) {
				slot.Available = false
			}
			if slot.Available && sc.hitsBooking(slot, bookings, settings) {
				slot.Available = false
			}
			if slot.Available && sc.hitsBusy(slot, busyTimes) {
				slot.Available = false
			}

			slots = append(slots, slot)
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})

	// 5. Daily cap: once reached, every slot of the date goes unavailable.
	if settings.DailyBookingLimit != nil &&
		sc.countBlockingOnDate(bookings, date, loc) >= *settings.DailyBookingLimit {
		for i := range slots {
			slots[i].Available = false
		}
	}

	return slots
}

func (sc *SlotCalculator) windowsForWeekday(schedule []entity.WeeklySchedule, weekday int) []entity.WeeklySchedule {
	var windows []entity.WeeklySchedule
	for _, s := range schedule {
		if s.Weekday == weekday {
			windows = append(windows, s)
		}
	}
	sort.Slice(windows, func(i, j int) bool {
		return windows[i].StartTime < windows[j].StartTime
	})
	return windows
}

// hitsBlock tests the candidate against partial-day blocks on this date.
func (sc *SlotCalculator) hitsBlock(slot entity.AvailableSlot, dayBlocks []entity.BlockedDate, date time.Time, loc *time.Location) bool {
	for _, b := range dayBlocks {
		if b.StartTime == nil || b.EndTime == nil {
			continue
		}
		startMin, err := utils.ParseClock(*b.StartTime)
		if err != nil {
			continue
		}
		endMin, err := utils.ParseClock(*b.EndTime)
		if err != nil {
			continue
		}
		blockStart := utils.AtMinutes(date, startMin, loc)
		blockEnd := utils.AtMinutes(date, endMin, loc)
		if utils.Overlaps(slot.Start, slot.End, blockStart, blockEnd) {
			return true
		}
	}
	return false
}

// hitsBooking tests the candidate against the host's blocking bookings with
// the buffers applied around each booking.
func (sc *SlotCalculator) hitsBooking(slot entity.AvailableSlot, bookings []bookingEntity.Booking, settings entity.EffectiveSettings) bool {
	for _, b := range bookings {
		if !b.Status.Blocking() {
			continue
		}
		bufferedStart, bufferedEnd := utils.ApplyBuffers(
			b.StartTime, b.EndTime,
			settings.BufferBeforeMinutes, settings.BufferAfterMinutes)
		if utils.Overlaps(slot.Start, slot.End, bufferedStart, bufferedEnd) {
			return true
		}
	}
	return false
}

func (sc *SlotCalculator) hitsBusy(slot entity.AvailableSlot, busyTimes []entity.TimeRange) bool {
	for _, busy := range busyTimes {
		if utils.Overlaps(slot.Start, slot.End, busy.Start, busy.End) {
			return true
		}
	}
	return false
}

func (sc *SlotCalculator) countBlockingOnDate(bookings []bookingEntity.Booking, date time.Time, loc *time.Location) int {
	count := 0
	for _, b := range bookings {
		if b.Status.Blocking() && utils.SameDay(b.StartTime, date, loc) {
			count++
		}
	}
	return count
}
