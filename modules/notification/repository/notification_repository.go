package repository

import (
	"context"

	"team-schedule-api/core/database"
	"team-schedule-api/core/logger"
	"team-schedule-api/core/params"
	"team-schedule-api/modules/notification/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type NotificationRepository struct {
	db database.Database
}

func NewNotificationRepository(db database.Database) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// NotificationRepositoryInterface defines the repository contract
type NotificationRepositoryInterface interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByHostID(ctx context.Context, hostID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedNotifications, error)
	MarkAsRead(ctx context.Context, hostID uuid.UUID, ids []string) error
	MarkAllAsRead(ctx context.Context, hostID uuid.UUID) error
	CountUnread(ctx context.Context, hostID uuid.UUID) (int, error)
}

func (r *NotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	query := `
		INSERT INTO notifications (host_id, title, message, type, data, is_read, created_at, updated_at)
		VALUES (:host_id, :title, :message, :type, :data, :is_read, NOW(), NOW())
		RETURNING id
	`
	rows, err := r.db.NamedQueryContext(ctx, query, notification)
	if err != nil {
		logger.Error("NotificationRepository:Create:Error:", err)
		return err
	}
	defer rows.Close()

	if rows.Next() {
		return rows.Scan(&notification.ID)
	}
	return nil
}

func (r *NotificationRepository) GetByHostID(ctx context.Context, hostID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedNotifications, error) {
	queryParams.Normalize()

	baseQuery := `FROM notifications WHERE host_id = $1`

	var totalCount int
	err := r.db.GetContext(ctx, &totalCount, "SELECT COUNT(*) "+baseQuery, hostID)
	if err != nil {
		logger.Error("NotificationRepository:GetByHostID:Count:Error:", err)
		return nil, err
	}

	query := `
		SELECT * ` + baseQuery + `
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var notifications []entity.Notification
	err = r.db.SelectContext(ctx, &notifications, query, hostID, queryParams.PageSize, queryParams.Offset())
	if err != nil {
		logger.Error("NotificationRepository:GetByHostID:Select:Error:", err)
		return nil, err
	}

	return &entity.PaginatedNotifications{
		Notifications: notifications,
		TotalCount:    totalCount,
		PageNumber:    queryParams.PageNumber,
		PageSize:      queryParams.PageSize,
	}, nil
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, hostID uuid.UUID, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`UPDATE notifications SET is_read = true WHERE host_id = ? AND id IN (?)`, hostID, ids)
	if err != nil {
		return err
	}

	query = r.db.SQLx().Rebind(query)
	err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.Error("NotificationRepository:MarkAsRead:Error:", err)
		return err
	}
	return nil
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, hostID uuid.UUID) error {
	query := `UPDATE notifications SET is_read = true WHERE host_id = $1`
	err := r.db.ExecContext(ctx, query, hostID)
	if err != nil {
		logger.Error("NotificationRepository:MarkAllAsRead:Error:", err)
		return err
	}
	return nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, hostID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE host_id = $1 AND is_read = false`
	err := r.db.GetContext(ctx, &count, query, hostID)
	if err != nil {
		logger.Error("NotificationRepository:CountUnread:Error:", err)
		return 0, err
	}
	return count, nil
}
