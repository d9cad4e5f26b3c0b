package dto

import (
	"time"

	"team-schedule-api/modules/availability/entity"
)

// ===================== Request DTOs =====================

// ScheduleWindow is a single weekly window in a schedule update
type ScheduleWindow struct {
	Weekday   int    `json:"weekday" validate:"min=0,max=6"`
	StartTime string `json:"start_time" validate:"required"` // "HH:MM"
	EndTime   string `json:"end_time" validate:"required"`
}

// SetWeeklyScheduleRequest replaces the host's whole week
type SetWeeklyScheduleRequest struct {
	Windows []ScheduleWindow `json:"windows"`
}

// CreateBlockedDateRequest blocks a date range
type CreateBlockedDateRequest struct {
	StartDate string  `json:"start_date" validate:"required"` // YYYY-MM-DD
	EndDate   string  `json:"end_date" validate:"required"`
	AllDay    bool    `json:"all_day"`
	StartTime *string `json:"start_time"` // required when all_day is false
	EndTime   *string `json:"end_time"`
	Reason    *string `json:"reason"`
}

// ===================== Response DTOs =====================

// SlotResponse is one bookable slot rendered in the requested timezone
type SlotResponse struct {
	Start string `json:"start"` // RFC3339
	End   string `json:"end"`
}

// SlotListResponse for a host's slots on one date
type SlotListResponse struct {
	HostID   string         `json:"host_id"`
	Date     string         `json:"date"`
	Timezone string         `json:"timezone"`
	Slots    []SlotResponse `json:"slots"`
}

// ToSlotResponses renders the available slots of the full candidate set in loc.
func ToSlotResponses(slots []entity.AvailableSlot, loc *time.Location) []SlotResponse {
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
