package entity

import (
	coreEntity "team-schedule-api/core/entity"

	"github.com/google/uuid"
)

// SchedulingUser is a bookable host. The five settings fields are the host's
// own defaults; team event types may override them per type.
type SchedulingUser struct {
	ID                  uuid.UUID `db:"id" json:"id"`
	Name                string    `db:"name" json:"name"`
	Email               string    `db:"email" json:"email"`
	Timezone            string    `db:"timezone" json:"timezone"`
	IsActive            bool      `db:"is_active" json:"is_active"`
	MinimumNoticeHours  int       `db:"minimum_notice_hours" json:"minimum_notice_hours"`
	BookingWindowDays   int       `db:"booking_window_days" json:"booking_window_days"`
	BufferBeforeMinutes int       `db:"buffer_before_minutes" json:"buffer_before_minutes"`
	BufferAfterMinutes  int       `db:"buffer_after_minutes" json:"buffer_after_minutes"`
	DailyBookingLimit   *int      `db:"daily_booking_limit" json:"daily_booking_limit,omitempty"` // nil = unlimited
	coreEntity.BaseEntity
}

// PaginatedHosts wraps a host page with its total count.
type PaginatedHosts struct {
	Hosts      []SchedulingUser `json:"hosts"`
	TotalCount int              `json:"total_count"`
	PageNumber int              `json:"page_number"`
	PageSize   int              `json:"page_size"`
}
