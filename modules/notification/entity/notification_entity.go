package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	coreEntity "team-schedule-api/core/entity"

	"github.com/google/uuid"
)

const (
	TypeBookingCreated   = "booking_created"
	TypeBookingCancelled = "booking_cancelled"
	TypeBookingReminder  = "booking_reminder"
)

// Notification is one inbox entry for a host.
type Notification struct {
	ID      uuid.UUID `db:"id" json:"id"`
	HostID  uuid.UUID `db:"host_id" json:"host_id"`
	Title   string    `db:"title" json:"title"`
	Message string    `db:"message" json:"message"`
	Type    string    `db:"type" json:"type"`
	Data    JSONB     `db:"data" json:"data"`
	IsRead  bool      `db:"is_read" json:"is_read"`
	coreEntity.BaseEntity
}

type JSONB map[string]interface{}

func (a JSONB) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *JSONB) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &a)
}

// PaginatedNotifications wraps a page with its total count.
type PaginatedNotifications struct {
	Notifications []Notification `json:"notifications"`
	TotalCount    int            `json:"total_count"`
	PageNumber    int            `json:"page_number"`
	PageSize      int            `json:"page_size"`
}

// ReminderDue computes when the pre-meeting reminder should fire.
func ReminderDue(start time.Time, lead time.Duration) time.Time {
	return start.Add(-lead)
}
