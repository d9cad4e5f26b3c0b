package dto

import (
	"time"

	"team-schedule-api/modules/host/entity"
)

// ===================== Request DTOs =====================

// CreateHostRequest for registering a new scheduling user
type CreateHostRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Timezone string `json:"timezone" validate:"required"`
}

// UpdateHostSettingsRequest updates the host's default scheduling settings.
// Nil fields are left unchanged.
type UpdateHostSettingsRequest struct {
	MinimumNoticeHours  *int `json:"minimum_notice_hours"`
	BookingWindowDays   *int `json:"booking_window_days"`
	BufferBeforeMinutes *int `json:"buffer_before_minutes"`
	BufferAfterMinutes  *int `json:"buffer_after_minutes"`
	DailyBookingLimit   *int `json:"daily_booking_limit"`
}

// ===================== Response DTOs =====================

// HostResponse for host details
type HostResponse struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	Timezone            string    `json:"timezone"`
	IsActive            bool      `json:"is_active"`
	MinimumNoticeHours  int       `json:"minimum_notice_hours"`
	BookingWindowDays   int       `json:"booking_window_days"`
	BufferBeforeMinutes int       `json:"buffer_before_minutes"`
	BufferAfterMinutes  int       `json:"buffer_after_minutes"`
	DailyBookingLimit   *int      `json:"daily_booking_limit,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// ToHostResponse maps the entity to its API shape
func ToHostResponse(h *entity.SchedulingUser) *HostResponse {
	if h == nil {
		return nil
	}
	return &HostResponse{
		ID:                  h.ID.String(),
		Name:                h.Name,
		Email:               h.Email,
		Timezone:            h.Timezone,
		IsActive:            h.IsActive,
		MinimumNoticeHours:  h.MinimumNoticeHours,
		BookingWindowDays:   h.BookingWindowDays,
		BufferBeforeMinutes: h.BufferBeforeMinutes,
		BufferAfterMinutes:  h.BufferAfterMinutes,
		DailyBookingLimit:   h.DailyBookingLimit,
		CreatedAt:           h.CreatedAt,
	}
}
