package dto

import (
	"time"

	availabilityEntity "team-schedule-api/modules/availability/entity"
	hostDto "team-schedule-api/modules/host/dto"
	"team-schedule-api/modules/teamevent/entity"
)

// ===================== Request DTOs =====================

// SettingsOverridesRequest carries optional per-type setting overrides
type SettingsOverridesRequest struct {
	MinimumNoticeHours  *int `json:"minimum_notice_hours"`
	BookingWindowDays   *int `json:"booking_window_days"`
	BufferBeforeMinutes *int `json:"buffer_before_minutes"`
	BufferAfterMinutes  *int `json:"buffer_after_minutes"`
	DailyBookingLimit   *int `json:"daily_booking_limit"`
}

// CreateTeamEventTypeRequest for creating a new team event type
type CreateTeamEventTypeRequest struct {
	Name            string                    `json:"name" validate:"required"`
	DurationMinutes int                       `json:"duration_minutes" validate:"required,min=15,max=480"`
	Mode            string                    `json:"mode" validate:"required"` // round_robin | collective | individual
	HostIDs         []string                  `json:"host_ids"`
	Overrides       *SettingsOverridesRequest `json:"overrides"`
}

// UpdateTeamEventTypeRequest mirrors the create shape
type UpdateTeamEventTypeRequest struct {
	Name            string                    `json:"name" validate:"required"`
	DurationMinutes int                       `json:"duration_minutes" validate:"required,min=15,max=480"`
	Mode            string                    `json:"mode" validate:"required"`
	HostIDs         []string                  `json:"host_ids"`
	Overrides       *SettingsOverridesRequest `json:"overrides"`
}

// SetActiveRequest toggles the soft active flag
type SetActiveRequest struct {
	Active bool `json:"active"`
}

// ValidateHostsRequest checks a host id list
type ValidateHostsRequest struct {
	HostIDs []string `json:"host_ids" validate:"required"`
}

// NextHostRequest asks for the round-robin host serving [start, end)
type NextHostRequest struct {
	Start string `json:"start" validate:"required"` // RFC3339
	End   string `json:"end" validate:"required"`
}

// CreateTeamBookingRequest books a slot on a team event type. HostID is
// required for individual mode and ignored otherwise.
type CreateTeamBookingRequest struct {
	Start        string  `json:"start" validate:"required"` // RFC3339
	InviteeName  string  `json:"invitee_name" validate:"required"`
	InviteeEmail string  `json:"invitee_email" validate:"required,email"`
	HostID       *string `json:"host_id"`
}

// ===================== Response DTOs =====================

// TeamEventTypeResponse for event type details
type TeamEventTypeResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	DurationMinutes int       `json:"duration_minutes"`
	Mode            string    `json:"mode"`
	IsActive        bool      `json:"is_active"`
	HostIDs         []string  `json:"host_ids"`
	CreatedAt       time.Time `json:"created_at"`
}

// ToTeamEventTypeResponse maps the entity to its API shape
func ToTeamEventTypeResponse(t *entity.TeamEventType) *TeamEventTypeResponse {
	if t == nil {
		return nil
	}
	hostIDs := make([]string, 0, len(t.HostIDs))
	for _, id := range t.HostIDs {
		hostIDs = append(hostIDs, id.String())
	}
	return &TeamEventTypeResponse{
		ID:              t.ID.String(),
		Name:            t.Name,
		Slug:            t.Slug,
		DurationMinutes: t.DurationMinutes,
		Mode:            string(t.Mode),
		IsActive:        t.IsActive,
		HostIDs:         hostIDs,
		CreatedAt:       t.CreatedAt,
	}
}

// SlotResponse is one bookable slot rendered in the requested timezone
type SlotResponse struct {
	Start string `json:"start"` // RFC3339
	End   string `json:"end"`
}

// TeamSlotListResponse for a team's slots on one date
type TeamSlotListResponse struct {
	TeamEventTypeID string         `json:"team_event_type_id"`
	Date            string         `json:"date"`
	Timezone        string         `json:"timezone"`
	Mode            string         `json:"mode"`
	Slots           []SlotResponse `json:"slots"`
}

// IndividualSlotsResponse maps host id to that host's available slots
type IndividualSlotsResponse struct {
	TeamEventTypeID string                    `json:"team_event_type_id"`
	Date            string                    `json:"date"`
	Timezone        string                    `json:"timezone"`
	SlotsByHost     map[string][]SlotResponse `json:"slots_by_host"`
}

// SlotAvailableResponse answers a membership check
type SlotAvailableResponse struct {
	Available bool `json:"available"`
}

// NextHostResponse names the selected host and the counter position after
// the selection
type NextHostResponse struct {
	Host     *hostDto.HostResponse `json:"host"`
	NewIndex int                   `json:"new_index"`
}

// HostValidationResponse reports per-host validation detail
type HostValidationResponse struct {
	Valid      bool     `json:"valid"`
	InvalidIDs []string `json:"invalid_ids"`
}

// TeamBookingResponse wraps the created booking(s); collective mode creates
// one record per host under a shared reference code.
type TeamBookingResponse struct {
	ReferenceCode string   `json:"reference_code"`
	BookingIDs    []string `json:"booking_ids"`
	HostIDs       []string `json:"host_ids"`
	Start         string   `json:"start"`
	End           string   `json:"end"`
}

// ToSlotResponses renders only the available slots in loc.
func ToSlotResponses(slots []availabilityEntity.AvailableSlot, loc *time.Location) []SlotResponse {
	out := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		if !s.Available {
			continue
		}
		out = append(out, SlotResponse{
			Start: s.Start.In(loc).Format(time.RFC3339),
			End:   s.End.In(loc).Format(time.RFC3339),
		})
	}
	return out
}
