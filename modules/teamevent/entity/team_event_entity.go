package entity

import (
	coreEntity "team-schedule-api/core/entity"
	availabilityEntity "team-schedule-api/modules/availability/entity"

	"github.com/google/uuid"
)

// SchedulingMode decides how a team event type assigns hosts
type SchedulingMode string

const (
	ModeRoundRobin SchedulingMode = "round_robin"
	ModeCollective SchedulingMode = "collective"
	ModeIndividual SchedulingMode = "individual"
)

func (m SchedulingMode) Valid() bool {
	switch m {
	case ModeRoundRobin, ModeCollective, ModeIndividual:
		return true
	}
	return false
}

// RequiresHosts reports whether the mode demands a non-empty host list.
func (m SchedulingMode) RequiresHosts() bool {
	return m == ModeRoundRobin || m == ModeCollective
}

// TeamEventType is a bookable meeting type served by a team of hosts.
// HostIDs preserves the configured rotation order.
type TeamEventType struct {
	ID              uuid.UUID      `db:"id" json:"id"`
	Name            string         `db:"name" json:"name"`
	Slug            string         `db:"slug" json:"slug"`
	DurationMinutes int            `db:"duration_minutes" json:"duration_minutes"`
	Mode            SchedulingMode `db:"mode" json:"mode"`
	IsActive        bool           `db:"is_active" json:"is_active"`
	HostIDs         []uuid.UUID    `db:"-" json:"host_ids"`
	availabilityEntity.SettingsOverrides
	coreEntity.BaseEntity
}

// Overrides returns the per-type setting overrides, or nil when none is set.
func (t *TeamEventType) Overrides() *availabilityEntity.SettingsOverrides {
	o := t.SettingsOverrides
	if o.MinimumNoticeHours == nil && o.BookingWindowDays == nil &&
		o.BufferBeforeMinutes == nil && o.BufferAfterMinutes == nil &&
		o.DailyBookingLimit == nil {
		return nil
	}
	return &o
}

// RoundRobinCounter holds the rotation position for one team event type.
// CurrentIndex is always in [0, hostCount). Created with its event type at 0
// and mutated only under the rotation lock.
type RoundRobinCounter struct {
	TeamEventTypeID uuid.UUID `db:"team_event_type_id" json:"team_event_type_id"`
	CurrentIndex    int       `db:"current_index" json:"current_index"`
	coreEntity.BaseEntity
}

// PaginatedTeamEventTypes wraps a page with its total count.
type PaginatedTeamEventTypes struct {
	EventTypes []TeamEventType `json:"event_types"`
	TotalCount int             `json:"total_count"`
	PageNumber int             `json:"page_number"`
	PageSize   int             `json:"page_size"`
}
