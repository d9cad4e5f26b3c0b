package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"team-schedule-api/core/constants"
	"team-schedule-api/core/errors"
	"team-schedule-api/core/logger"
	"team-schedule-api/core/params"
	bookingEntity "team-schedule-api/modules/booking/entity"
	"team-schedule-api/modules/notification/entity"
	"team-schedule-api/modules/notification/repository"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// TaskEnqueuer is the slice of the asynq client this service needs.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type NotificationService struct {
	repo         repository.NotificationRepositoryInterface
	enqueuer     TaskEnqueuer
	reminderLead time.Duration
}

func NewNotificationService(repo repository.NotificationRepositoryInterface, enqueuer TaskEnqueuer) *NotificationService {
	return &NotificationService{
		repo:         repo,
		enqueuer:     enqueuer,
		reminderLead: constants.ReminderLeadTime,
	}
}

// NotifyBookingCreated enqueues the created-booking task and, when the
// meeting is far enough out, a delayed reminder. Fire-and-forget: enqueue
// failures are logged and swallowed so the booking flow never fails on
// notification plumbing.
func (s *NotificationService) NotifyBookingCreated(ctx context.Context, booking *bookingEntity.Booking) {
	if s.enqueuer == nil {
		return
	}

	payload := BookingTaskPayload{
		BookingID:     booking.ID.String(),
		HostID:        booking.HostID.String(),
		ReferenceCode: booking.ReferenceCode,
		InviteeName:   booking.InviteeName,
		InviteeEmail:  booking.InviteeEmail,
		Start:         booking.StartTime,
		End:           booking.EndTime,
	}

	task, err := NewBookingCreatedTask(payload)
	if err != nil {
		logger.Error("NotificationService:NotifyBookingCreated:BuildTask", err)
		return
	}
	if _, err := s.enqueuer.EnqueueContext(ctx, task); err != nil {
		logger.Error("NotificationService:NotifyBookingCreated:Enqueue", err, "booking_id", payload.BookingID)
		return
	}

	due := entity.ReminderDue(booking.StartTime, s.reminderLead)
	if due.After(time.Now()) {
		reminder, err := NewBookingReminderTask(payload)
		if err != nil {
			logger.Error("NotificationService:NotifyBookingCreated:BuildReminder", err)
			return
		}
		if _, err := s.enqueuer.EnqueueContext(ctx, reminder, asynq.ProcessAt(due)); err != nil {
			logger.Error("NotificationService:NotifyBookingCreated:EnqueueReminder", err, "booking_id", payload.BookingID)
		}
	}

	logger.Info("NotificationService:NotifyBookingCreated:Enqueued",
		"booking_id", payload.BookingID, "host_id", payload.HostID)
}

// ===================== Worker handlers =====================

// HandleBookingCreatedTask persists the inbox entry for the booked host.
func (s *NotificationService) HandleBookingCreatedTask(ctx context.Context, task *asynq.Task) error {
	var payload BookingTaskPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal %s payload: %w", task.Type(), err)
	}

	hostID, err := uuid.Parse(payload.HostID)
	if err != nil {
		return fmt.Errorf("parse host id: %w", err)
	}

	notification := &entity.Notification{
		HostID:  hostID,
		Title:   "New booking",
		Message: fmt.Sprintf("%s booked %s", payload.InviteeName, payload.Start.UTC().Format(time.RFC3339)),
		Type:    entity.TypeBookingCreated,
		Data: entity.JSONB{
			"booking_id":     payload.BookingID,
			"reference_code": payload.ReferenceCode,
			"invitee_email":  payload.InviteeEmail,
		},
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return fmt.Errorf("persist notification: %w", err)
	}

	logger.Info("NotificationService:HandleBookingCreatedTask:Done", "booking_id", payload.BookingID)
	return nil
}

// HandleBookingReminderTask persists the reminder inbox entry when it fires.
func (s *NotificationService) HandleBookingReminderTask(ctx context.Context, task *asynq.Task) error {
	var payload BookingTaskPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal %s payload: %w", task.Type(), err)
	}

	hostID, err := uuid.Parse(payload.HostID)
	if err != nil {
		return fmt.Errorf("parse host id: %w", err)
	}

	notification := &entity.Notification{
		HostID:  hostID,
		Title:   "Upcoming meeting",
		Message: fmt.Sprintf("Meeting with %s starts at %s", payload.InviteeName, payload.Start.UTC().Format(time.RFC3339)),
		Type:    entity.TypeBookingReminder,
		Data: entity.JSONB{
			"booking_id":     payload.BookingID,
			"reference_code": payload.ReferenceCode,
		},
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return fmt.Errorf("persist reminder: %w", err)
	}
	return nil
}

// RegisterHandlers wires the worker handlers onto an asynq mux.
func (s *NotificationService) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TaskBookingCreated, s.HandleBookingCreatedTask)
	mux.HandleFunc(TaskBookingReminder, s.HandleBookingReminderTask)
}

// ===================== Inbox =====================

func (s *NotificationService) GetHostNotifications(ctx context.Context, hostID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedNotifications, *errors.AppError) {
	page, err := s.repo.GetByHostID(ctx, hostID, queryParams)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list notifications", err)
	}
	return page, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, hostID uuid.UUID, ids []string) *errors.AppError {
	if err := s.repo.MarkAsRead(ctx, hostID, ids); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "failed to mark notifications as read", err)
	}
	return nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, hostID uuid.UUID) *errors.AppError {
	if err := s.repo.MarkAllAsRead(ctx, hostID); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "failed to mark notifications as read", err)
	}
	return nil
}

func (s *NotificationService) CountUnread(ctx context.Context, hostID uuid.UUID) (int, *errors.AppError) {
	count, err := s.repo.CountUnread(ctx, hostID)
	if err != nil {
		return 0, errors.NewAppError(errors.ErrGetFailed, "failed to count unread notifications", err)
	}
	return count, nil
}
