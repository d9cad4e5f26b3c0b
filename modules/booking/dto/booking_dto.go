package dto

import (
	"time"

	"team-schedule-api/modules/booking/entity"
)

// ===================== Request DTOs =====================

// RescheduleBookingRequest moves a booking to a new interval
type RescheduleBookingRequest struct {
	Start string `json:"start" validate:"required"` // RFC3339
	End   string `json:"end" validate:"required"`
}

// ===================== Response DTOs =====================

// BookingResponse for booking details
type BookingResponse struct {
	ID              string    `json:"id"`
	HostID          string    `json:"host_id"`
	TeamEventTypeID *string   `json:"team_event_type_id,omitempty"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	Status          string    `json:"status"`
	InviteeName     string    `json:"invitee_name"`
	InviteeEmail    string    `json:"invitee_email"`
	ReferenceCode   string    `json:"reference_code"`
	CreatedAt       time.Time `json:"created_at"`
}

// ToBookingResponse maps the entity to its API shape
func ToBookingResponse(b *entity.Booking) *BookingResponse {
	if b == nil {
		return nil
	}
	resp := &BookingResponse{
		ID:            b.ID.String(),
		HostID:        b.HostID.String(),
		Start:         b.StartTime,
		End:           b.EndTime,
		Status:        string(b.Status),
		InviteeName:   b.InviteeName,
		InviteeEmail:  b.InviteeEmail,
		ReferenceCode: b.ReferenceCode,
		CreatedAt:     b.CreatedAt,
	}
	if b.TeamEventTypeID != nil {
		id := b.TeamEventTypeID.String()
		resp.TeamEventTypeID = &id
	}
	return resp
}

// ToBookingResponses maps a slice of bookings
func ToBookingResponses(bookings []entity.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, *ToBookingResponse(&bookings[i]))
	}
	return out
}
