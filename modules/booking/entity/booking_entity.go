package entity

import (
	"time"

	coreEntity "team-schedule-api/core/entity"

	"github.com/google/uuid"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusConfirmed   BookingStatus = "confirmed"
	BookingStatusRescheduled BookingStatus = "rescheduled"
	BookingStatusCancelled   BookingStatus = "cancelled"
)

// Blocking reports whether the booking still occupies its host's calendar.
func (s BookingStatus) Blocking() bool {
	return s == BookingStatusConfirmed || s == BookingStatusRescheduled
}

// Booking is a confirmed reservation of one host for [StartTime, EndTime).
// StartTime and EndTime are stored in UTC.
type Booking struct {
	ID              uuid.UUID     `db:"id" json:"id"`
	HostID          uuid.UUID     `db:"host_id" json:"host_id"`
	TeamEventTypeID *uuid.UUID    `db:"team_event_type_id" json:"team_event_type_id,omitempty"`
	StartTime       time.Time     `db:"start_time" json:"start_time"`
	EndTime         time.Time     `db:"end_time" json:"end_time"`
	Status          BookingStatus `db:"status" json:"status"`
	InviteeName     string        `db:"invitee_name" json:"invitee_name"`
	InviteeEmail    string        `db:"invitee_email" json:"invitee_email"`
	ReferenceCode   string        `db:"reference_code" json:"reference_code"`
	coreEntity.BaseEntity
}
