package service

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// Task type names routed through the shared redis queue.
const (
	TaskBookingCreated  = "notification:booking_created"
	TaskBookingReminder = "notification:booking_reminder"
)

// BookingTaskPayload is the wire payload for booking notification tasks.
type BookingTaskPayload struct {
	BookingID     string    `json:"booking_id"`
	HostID        string    `json:"host_id"`
	ReferenceCode string    `json:"reference_code"`
	InviteeName   string    `json:"invitee_name"`
	InviteeEmail  string    `json:"invitee_email"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
}

func NewBookingCreatedTask(payload BookingTaskPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskBookingCreated, data, asynq.MaxRetry(3)), nil
}

func NewBookingReminderTask(payload BookingTaskPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskBookingReminder, data, asynq.MaxRetry(3)), nil
}
