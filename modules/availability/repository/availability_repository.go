package repository

import (
	"context"
	"database/sql"
	"time"

	"team-schedule-api/core/database"
	"team-schedule-api/core/logger"
	"team-schedule-api/modules/availability/entity"

	"github.com/google/uuid"
)

// AvailabilityRepository handles weekly_schedules and blocked_dates tables
type AvailabilityRepository struct {
	DB database.Database
}

// NewAvailabilityRepository creates a new repository instance
func NewAvailabilityRepository(db database.Database) *AvailabilityRepository {
	return &AvailabilityRepository{DB: db}
}

// AvailabilityRepositoryInterface defines the repository contract
type AvailabilityRepositoryInterface interface {
	ReplaceWeeklySchedule(ctx context.Context, hostID uuid.UUID, windows []entity.WeeklySchedule) ([]entity.WeeklySchedule, error)
	GetWeeklySchedule(ctx context.Context, hostID uuid.UUID) ([]entity.WeeklySchedule, error)

	CreateBlockedDate(ctx context.Context, block *entity.BlockedDate) (*entity.BlockedDate, error)
	GetBlockedDateByID(ctx context.Context, id uuid.UUID) (*entity.BlockedDate, error)
	ListBlockedDates(ctx context.Context, hostID uuid.UUID, from, to time.Time) ([]entity.BlockedDate, error)
	DeleteBlockedDate(ctx context.Context, id uuid.UUID) error
}

// ===================== Weekly schedule =====================

// ReplaceWeeklySchedule swaps the host's whole week in one transaction.
func (r *AvailabilityRepository) ReplaceWeeklySchedule(ctx context.Context, hostID uuid.UUID, windows []entity.WeeklySchedule) ([]entity.WeeklySchedule, error) {
	tx, err := r.DB.BeginTxx(ctx)
	if err != nil {
		logger.Error("AvailabilityRepository:ReplaceWeeklySchedule:Begin", err)
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM weekly_schedules WHERE host_id = $1`, hostID); err != nil {
		logger.Error("AvailabilityRepository:ReplaceWeeklySchedule:Delete", err)
		return nil, err
	}

	insertQuery := `
		INSERT INTO weekly_schedules (host_id, weekday, start_time, end_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id, host_id, weekday, start_time, end_time, created_at, updated_at
	`

	created := make([]entity.WeeklySchedule, 0, len(windows))
	for _, w := range windows {
		var row entity.WeeklySchedule
		if err := tx.GetContext(ctx, &row, insertQuery, hostID, w.Weekday, w.StartTime, w.EndTime); err != nil {
			logger.Error("AvailabilityRepository:ReplaceWeeklySchedule:Insert", err)
			return nil, err
		}
		created = append(created, row)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("AvailabilityRepository:ReplaceWeeklySchedule:Commit", err)
		return nil, err
	}

	return created, nil
}

func (r *AvailabilityRepository) GetWeeklySchedule(ctx context.Context, hostID uuid.UUID) ([]entity.WeeklySchedule, error) {
	query := `
		SELECT id, host_id, weekday, start_time, end_time, created_at, updated_at
		FROM weekly_schedules
		WHERE host_id = $1
		ORDER BY weekday, start_time
	`

	var windows []entity.WeeklySchedule
	err := r.DB.SelectContext(ctx, &windows, query, hostID)
	if err != nil {
		logger.Error("AvailabilityRepository:GetWeeklySchedule", err)
		return nil, err
	}

	return windows, nil
}

// ===================== Blocked dates =====================

func (r *AvailabilityRepository) CreateBlockedDate(ctx context.Context, block *entity.BlockedDate) (*entity.BlockedDate, error) {
	query := `
		INSERT INTO blocked_dates (host_id, start_date, end_date, all_day, start_time, end_time, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, host_id, start_date, end_date, all_day, start_time, end_time, reason, created_at, updated_at
	`

	var created entity.BlockedDate
	err := r.DB.GetContext(ctx, &created, query,
		block.HostID, block.StartDate, block.EndDate, block.AllDay,
		block.StartTime, block.EndTime, block.Reason)
	if err != nil {
		logger.Error("AvailabilityRepository:CreateBlockedDate", err)
		return nil, err
	}

	return &created, nil
}

func (r *AvailabilityRepository) GetBlockedDateByID(ctx context.Context, id uuid.UUID) (*entity.BlockedDate, error) {
	query := `
		SELECT id, host_id, start_date, end_date, all_day, start_time, end_time, reason, created_at, updated_at
		FROM blocked_dates WHERE id = $1
	`

	var block entity.BlockedDate
	err := r.DB.GetContext(ctx, &block, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AvailabilityRepository:GetBlockedDateByID", err)
		return nil, err
	}

	return &block, nil
}

// ListBlockedDates returns blocks whose range intersects [from, to].
func (r *AvailabilityRepository) ListBlockedDates(ctx context.Context, hostID uuid.UUID, from, to time.Time) ([]entity.BlockedDate, error) {
	query := `
		SELECT id, host_id, start_date, end_date, all_day, start_time, end_time, reason, created_at, updated_at
		FROM blocked_dates
		WHERE host_id = $1 AND start_date <= $3 AND end_date >= $2
		ORDER BY start_date
	`

	var blocks []entity.BlockedDate
	err := r.DB.SelectContext(ctx, &blocks, query, hostID, from, to)
	if err != nil {
		logger.Error("AvailabilityRepository:ListBlockedDates", err)
		return nil, err
	}

	return blocks, nil
}

func (r *AvailabilityRepository) DeleteBlockedDate(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM blocked_dates WHERE id = $1`
	if err := r.DB.ExecContext(ctx, query, id); err != nil {
		logger.Error("AvailabilityRepository:DeleteBlockedDate", err)
		return err
	}
	return nil
}
