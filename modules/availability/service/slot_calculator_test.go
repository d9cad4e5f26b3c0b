package service

import (
	"testing"
	"time"

	"team-schedule-api/modules/availability/entity"
	bookingEntity "team-schedule-api/modules/booking/entity"
	hostEntity "team-schedule-api/modules/host/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHost(tz string) *hostEntity.SchedulingUser {
	return &hostEntity.SchedulingUser{
		ID:                 uuid.New(),
		Name:               "Test Host",
		Email:              "host@example.com",
		Timezone:           tz,
		IsActive:           true,
		MinimumNoticeHours: 0,
		BookingWindowDays:  30,
	}
}

func nineToFive(weekday int) []entity.WeeklySchedule {
	return []entity.WeeklySchedule{
		{HostID: uuid.New(), Weekday: weekday, StartTime: "09:00", EndTime: "17:00"},
	}
}

// Monday 2026-03-02 in UTC, with "now" well before so notice never filters.
var (
	testDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
)

func defaultSettings() entity.EffectiveSettings {
	return entity.EffectiveSettings{
		MinimumNoticeHours: 0,
		BookingWindowDays:  30,
	}
}

func TestCalculateSlots_NineToFiveThirtyMinutes(t *testing.T) {
	t.Parallel()

	sc := NewSlotCalculator()
	host := testHost("UTC")

	slots := sc.CalculateSlots(testDate, host, 30, defaultSettings(), nineToFive(1), nil, nil, nil, testNow)

	require.Len(t, slots, 31, "candidates every 15 minutes from 09:00 through 16:30")

	// First candidate starts at the window start.
	assert.Equal(t, 9, slots[0].Start.UTC().Hour())
	assert.Equal(t, 0, slots[0].Start.UTC().Minute())

	// Last candidate is 16:30 and ends exactly on the window boundary.
	last := slots[len(slots)-1]
	assert.Equal(t, 16, last.Start.UTC().Hour())
	assert.Equal(t, 30, last.Start.UTC().Minute())
	assert.Equal(t, 17, last.End.UTC().Hour())
	assert.Equal(t, 0, last.End.UTC().Minute())

	for _, s := range slots {
		assert.True(t, s.Available)
		assert.Equal(t, 30*time.Minute, s.End.Sub(s.Start))
	}

	// On-the-hour and on-the-half candidates total 16 (09:00, 09:30 ... 16:30).
	onHalfHour := 0
	for _, s := range slots {
		if m := s.Start.UTC().Minute(); m == 0 || m == 30 {
			onHalfHour++
		}
	}
	assert.Equal(t, 16, onHalfHour)
}

func TestCalculateSlots_NoScheduleForWeekday(t *testing.T) {
	t.Parallel()

	sc := NewSlotCalculator()
	host := testHost("UTC")

	// Schedule only covers Tuesday; the date is a Monday.
	schedule := nineToFive(2)
	slots := sc.CalculateSlots(testDate, host, 30, defaultSettings(), schedule, nil, nil, nil, testNow)

	assert.Empty(t, slots)
}

func TestCalculateSlots_AllDayBlock(t *testing.T) {
	t.Parallel()

	sc := NewSlotCalculator()
	host := testHost("UTC")

	blocks := []entity.BlockedDate{
		{HostID: host.ID, StartDate: testDate, EndDate: testDate, AllDay: true},
	}

	booking := bookingEntity.Booking{
		HostID:    host.ID,
		StartTime: testDate.Add(10 * time.Hour),
		EndTime:   testDate.Add(10*time.Hour + 30*time.Minute),
		Status:    bookingEntity.BookingStatusConfirmed,
	}

	// Empty regardless of schedule or booking state.
	slots := sc.CalculateSlots(testDate, host, 30, defaultSettings(), nineToFive(1), blocks, []bookingEntity.Booking{booking}, nil, testNow)
	assert.Empty(t, slots)
}

func TestCalculateSlots_PartialDayBlock(t *testing.T) {
	t.Parallel()

	sc := NewSlotCalculator()
	host := testHost("UTC")

	blockStart, blockEnd := "12:00", "13:00"
	blocks := []entity.BlockedDate{
		{HostID: host.ID, StartDate: testDate, EndDate: testDate, AllDay: false, StartTime: &blockStart, EndTime: &blockEnd},
	}

	slots := sc.CalculateSlots(testDate, host, 30, defaultSettings(), nineToFive(1), blocks, nil, nil, testNow)
	require.NotEmpty(t, slots)

	for _, s := range slots {
		h, m := s.Start.UTC().Hour(), s.Start.UTC().Minute()
		inBlock := (h == 12) || (h == 11 && m > 30)
		if inBlock {
			assert.False(t, s.Available, "slot at %02d:%02d should hit the block", h, m)
		}
	}

	// 11:30 ends exactly at 12:00 and must stay available.
	for _, s := range slots {
		if s.Start.UTC().Hour() == 11 && s.Start.UTC().Minute() == 30 {
			assert.True(t, s.Available)
		}
	}
}

func TestCalculateSlots_BookingWithBuffers(t *testing.T) {
	t.Parallel()

	sc := NewSlotCalculator()
	host := testHost("UTC")

	booking := bookingEntity.Booking{
		HostID:    host.ID,
		StartTime: testDate.Add(10 * time.Hour), // 10:00-10:30
		EndTime:   testDate.Add(10*time.Hour + 30*time.Minute),
		Status:    bookingEntity.BookingStatusConfirmed,
	}

	for _, buffer := range []int{0, 15, 30} {
		settings := defaultSettings()
		settings.BufferBeforeMinutes = buffer
		settings.BufferAfterMinutes = buffer

		slots := sc.CalculateSlots(testDate, host, 30, settings, nineToFive(1), nil, []bookingEntity.Booking{booking}, nil, testNow)
		require.NotEmpty(t, slots)

		bufferedStart := booking.StartTime.Add(-time.Duration(buffer) * time.Minute)
		bufferedEnd := booking.EndTime.Add(time.Duration(buffer) * time.Minute)

		for _, s := range slots {
			overlapping := s.Start.Before(bufferedEnd) && s.End.After(bufferedStart)
			if overlapping {
				assert.False(t, s.Available, "buffer=%d slot %v must be unavailable", buffer, s.Start)
			} else {
				assert.True(t, s.Available, "buffer=%d slot %v must stay available", buffer, s.Start)
			}
		}
	}
}

func TestCalculateSlots_CancelledBookingDoesNotBlock(t *testing.T) {
	t.Parallel()

	sc := NewSlotCalculator()
	host := testHost("UTC")

	booking := bookingEntity.Booking{
		HostID:    host.ID,
		StartTime: testDate.Add(10 * time.Hour),
		EndTime:   testDate.Add(10*time.Hour + 30*time.Minute),
		Status:    bookingEntity.BookingStatusCancelled,
	}

	slots := sc.CalculateSlots(testDate, host, 30, defaultSettings(), nineToFive(1), nil, []bookingEntity.Booking{booking}, nil, testNow)
	require.NotEmpty(t, slots)
	for _, s := range slots {
		assert.True(t, s.Available)
	}
}

func TestCalculateSlots_MinimumNotice(t *testing.T) {
	t.Parallel()

	sc := NewSlotCalculator()
	host := testHost("UTC")

	settings := defaultSettings()
	settings.MinimumNoticeHours = 2

	// Now is 09:00 on the target date; with 2h notice everything before
	// 11:00 is out.
	now := testDate.Add(9 * time.Hour)
	slots := sc.CalculateSlots(testDate, host, 30, settings, nineToFive(1), nil, nil, nil, now)
	require.NotEmpty(t, slots)

	for _, s := range slots {
		if s.Start.Before(now.Add(2 * time.Hour)) {
			assert.False(t, s.Available, "slot %v is inside the notice period", s.Start)
		} else {
			assert.True(t, s.Available, "slot %v is past the notice period", s.Start)
		}
	}
}

func TestCalculateSlots_BeyondBookingWindow(t *testing.T) {
	t.Parallel()

	sc := NewSlotCalculator()
	host := testHost("UTC")

	settings := defaultSettings()
	settings.BookingWindowDays = 7

	farDate := testDate.AddDate(0, 0, 60)
	slots := sc.CalculateSlots(farDate, host, 30, settings, nineToFive(int(farDate.Weekday())), nil, nil, nil, testNow)
	assert.Empty(t, slots)
}

func TestCalculateSlots_WindowShorterThanDuration(t *testing.T) {
	t.Parallel()

	sc := NewSlotCalculator()
	host := testHost("UTC")

	schedule := []entity.WeeklySchedule{
		{HostID: host.ID, Weekday: 1, StartTime: "09:00", EndTime: "09:20"},
	}

	slots := sc.CalculateSlots(testDate, host, 30, defaultSettings(), schedule, nil, nil, nil, testNow)
	assert.Empty(t, slots)
}

func TestCalculateSlots_DailyCapMarksAllUnavailable(t *testing.T) {
	t.Parallel()

	sc := NewSlotCalculator()
	host := testHost("UTC")

	limit := 1
	settings := defaultSettings()
	settings.DailyBookingLimit = &limit

	booking := bookingEntity.Booking{
		HostID:    host.ID,
		StartTime: testDate.Add(9 * time.Hour),
		EndTime:   testDate.Add(9*time.Hour + 30*time.Minute),
		Status:    bookingEntity.BookingStatusConfirmed,
	}

	slots := sc.CalculateSlots(testDate, host, 30, settings, nineToFive(1), nil, []bookingEntity.Booking{booking}, nil, testNow)
	require.NotEmpty(t, slots)
	for _, s := range slots {
		assert.False(t, s.Available)
	}
}

func TestCalculateSlots_BusyTimes(t *testing.T) {
	t.Parallel()

	sc := NewSlotCalculator()
	host := testHost("UTC")

	busy := []entity.TimeRange{
		{Start: testDate.Add(14 * time.Hour), End: testDate.Add(15 * time.Hour)},
	}

	slots := sc.CalculateSlots(testDate, host, 30, defaultSettings(), nineToFive(1), nil, nil, busy, testNow)
	require.NotEmpty(t, slots)

	for _, s := range slots {
		overlapping := s.Start.Before(busy[0].End) && s.End.After(busy[0].Start)
		assert.Equal(t, !overlapping, s.Available, "slot %v", s.Start)
	}
}

func TestCalculateSlots_HostTimezone(t *testing.T) {
	t.Parallel()

	sc := NewSlotCalculator()
	host := testHost("America/New_York")

	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, loc)
	slots := sc.CalculateSlots(date, host, 30, defaultSettings(), nineToFive(1), nil, nil, nil, testNow)
	require.NotEmpty(t, slots)

	// 09:00 New York is 14:00 UTC in early March.
	assert.Equal(t, 14, slots[0].Start.UTC().Hour())
}
