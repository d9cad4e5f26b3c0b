package entity

import (
	"time"

	coreEntity "team-schedule-api/core/entity"

	"github.com/google/uuid"
)

// WeeklySchedule is one recurring window in a host's week. Times are wall
// clock "HH:MM" strings interpreted in the host's timezone.
type WeeklySchedule struct {
	ID        uuid.UUID `db:"id" json:"id"`
	HostID    uuid.UUID `db:"host_id" json:"host_id"`
	Weekday   int       `db:"weekday" json:"weekday"` // 0 = Sunday ... 6 = Saturday
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	coreEntity.BaseEntity
}

// BlockedDate removes availability for a date range, either whole days or a
// wall-clock window within each day.
type BlockedDate struct {
	ID        uuid.UUID `db:"id" json:"id"`
	HostID    uuid.UUID `db:"host_id" json:"host_id"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	AllDay    bool      `db:"all_day" json:"all_day"`
	StartTime *string   `db:"start_time" json:"start_time,omitempty"` // "HH:MM", nil when AllDay
	EndTime   *string   `db:"end_time" json:"end_time,omitempty"`
	Reason    *string   `db:"reason" json:"reason,omitempty"`
	coreEntity.BaseEntity
}

// CoversDate reports whether the block applies to the calendar day of date
// (compared date-only, in the host's location).
func (b *BlockedDate) CoversDate(date time.Time, loc *time.Location) bool {
	d := date.In(loc)
	y, m, day := d.Date()
	day0 := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)

	sy, sm, sd := b.StartDate.In(loc).Date()
	ey, em, ed := b.EndDate.In(loc).Date()
	start := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	end := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)

	return !day0.Before(start) && !day0.After(end)
}

// AvailableSlot is a candidate [Start, End) whose length always equals the
// event duration. Never persisted; recomputed on every query.
type AvailableSlot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
}

// TimeRange is a generic busy interval (external calendar, holds, etc).
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// EffectiveSettings is the merge of a host's defaults with per-event-type
// overrides.
type EffectiveSettings struct {
	MinimumNoticeHours  int
	BookingWindowDays   int
	BufferBeforeMinutes int
	BufferAfterMinutes  int
	DailyBookingLimit   *int // nil = unlimited
}

// SettingsOverrides carries per-event-type overrides; nil fields fall
// through to the host's own defaults.
type SettingsOverrides struct {
	MinimumNoticeHours  *int `db:"override_minimum_notice_hours" json:"minimum_notice_hours,omitempty"`
	BookingWindowDays   *int `db:"override_booking_window_days" json:"booking_window_days,omitempty"`
	BufferBeforeMinutes *int `db:"override_buffer_before_minutes" json:"buffer_before_minutes,omitempty"`
	BufferAfterMinutes  *int `db:"override_buffer_after_minutes" json:"buffer_after_minutes,omitempty"`
	DailyBookingLimit   *int `db:"override_daily_booking_limit" json:"daily_booking_limit,omitempty"`
}
