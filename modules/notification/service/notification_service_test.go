package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	bookingEntity "team-schedule-api/modules/booking/entity"
	"team-schedule-api/core/params"
	"team-schedule-api/modules/notification/entity"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type enqueuerMock struct {
	tasks []*asynq.Task
	err   error
}

func (m *enqueuerMock) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.tasks = append(m.tasks, task)
	return &asynq.TaskInfo{}, nil
}

type notificationRepoMock struct {
	created []*entity.Notification
}

func (m *notificationRepoMock) Create(ctx context.Context, n *entity.Notification) error {
	m.created = append(m.created, n)
	return nil
}

func (m *notificationRepoMock) GetByHostID(ctx context.Context, hostID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedNotifications, error) {
	return &entity.PaginatedNotifications{}, nil
}

func (m *notificationRepoMock) MarkAsRead(ctx context.Context, hostID uuid.UUID, ids []string) error {
	return nil
}

func (m *notificationRepoMock) MarkAllAsRead(ctx context.Context, hostID uuid.UUID) error {
	return nil
}

func (m *notificationRepoMock) CountUnread(ctx context.Context, hostID uuid.UUID) (int, error) {
	return 0, nil
}

func sampleBooking(start time.Time) *bookingEntity.Booking {
	return &bookingEntity.Booking{
		ID:            uuid.New(),
		HostID:        uuid.New(),
		StartTime:     start,
		EndTime:       start.Add(30 * time.Minute),
		InviteeName:   "Alice",
		InviteeEmail:  "alice@example.com",
		ReferenceCode: "ref-123",
	}
}

func TestNotifyBookingCreated_EnqueuesCreatedAndReminder(t *testing.T) {
	t.Parallel()

	enqueuer := &enqueuerMock{}
	svc := NewNotificationService(&notificationRepoMock{}, enqueuer)

	// Two days out, so the 24h reminder still fires in the future.
	svc.NotifyBookingCreated(context.Background(), sampleBooking(time.Now().Add(48*time.Hour)))

	require.Len(t, enqueuer.tasks, 2)
	assert.Equal(t, TaskBookingCreated, enqueuer.tasks[0].Type())
	assert.Equal(t, TaskBookingReminder, enqueuer.tasks[1].Type())
}

func TestNotifyBookingCreated_SkipsPastReminder(t *testing.T) {
	t.Parallel()

	enqueuer := &enqueuerMock{}
	svc := NewNotificationService(&notificationRepoMock{}, enqueuer)

	// Meeting within the lead window: the reminder moment already passed.
	svc.NotifyBookingCreated(context.Background(), sampleBooking(time.Now().Add(2*time.Hour)))

	require.Len(t, enqueuer.tasks, 1)
	assert.Equal(t, TaskBookingCreated, enqueuer.tasks[0].Type())
}

func TestNotifyBookingCreated_SwallowsEnqueueFailure(t *testing.T) {
	t.Parallel()

	enqueuer := &enqueuerMock{err: errors.New("redis down")}
	svc := NewNotificationService(&notificationRepoMock{}, enqueuer)

	// Must not panic or surface the error.
	svc.NotifyBookingCreated(context.Background(), sampleBooking(time.Now().Add(48*time.Hour)))
	assert.Empty(t, enqueuer.tasks)
}

func TestHandleBookingCreatedTask_PersistsInboxEntry(t *testing.T) {
	t.Parallel()

	repo := &notificationRepoMock{}
	svc := NewNotificationService(repo, nil)

	hostID := uuid.New()
	payload := BookingTaskPayload{
		BookingID:     uuid.NewString(),
		HostID:        hostID.String(),
		ReferenceCode: "ref-456",
		InviteeName:   "Bob",
		Start:         time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	task := asynq.NewTask(TaskBookingCreated, data)
	require.NoError(t, svc.HandleBookingCreatedTask(context.Background(), task))

	require.Len(t, repo.created, 1)
	assert.Equal(t, hostID, repo.created[0].HostID)
	assert.Equal(t, entity.TypeBookingCreated, repo.created[0].Type)
	assert.Equal(t, "ref-456", repo.created[0].Data["reference_code"])
}

func TestHandleBookingCreatedTask_RejectsBadPayload(t *testing.T) {
	t.Parallel()

	svc := NewNotificationService(&notificationRepoMock{}, nil)
	task := asynq.NewTask(TaskBookingCreated, []byte("not json"))

	require.Error(t, svc.HandleBookingCreatedTask(context.Background(), task))
}
