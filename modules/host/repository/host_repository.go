package repository

import (
	"context"
	"database/sql"
	"fmt"

	"team-schedule-api/core/database"
	"team-schedule-api/core/logger"
	"team-schedule-api/core/params"
	"team-schedule-api/modules/host/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// HostRepository handles scheduling_users database operations
type HostRepository struct {
	DB database.Database
}

// NewHostRepository creates a new repository instance
func NewHostRepository(db database.Database) *HostRepository {
	return &HostRepository{DB: db}
}

// HostRepositoryInterface defines the repository contract
type HostRepositoryInterface interface {
	Create(ctx context.Context, host *entity.SchedulingUser) (*entity.SchedulingUser, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SchedulingUser, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.SchedulingUser, error)
	List(ctx context.Context, queryParams params.QueryParams) (*entity.PaginatedHosts, error)
	UpdateSettings(ctx context.Context, host *entity.SchedulingUser) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

const hostColumns = `id, name, email, timezone, is_active, minimum_notice_hours, booking_window_days,
	       buffer_before_minutes, buffer_after_minutes, daily_booking_limit, created_at, updated_at`

func (r *HostRepository) Create(ctx context.Context, host *entity.SchedulingUser) (*entity.SchedulingUser, error) {
	query := fmt.Sprintf(`
		INSERT INTO scheduling_users (name, email, timezone, is_active, minimum_notice_hours,
		                              booking_window_days, buffer_before_minutes, buffer_after_minutes, daily_booking_limit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s
	`, hostColumns)

	var created entity.SchedulingUser
	err := r.DB.GetContext(ctx, &created, query,
		host.Name, host.Email, host.Timezone, host.IsActive,
		host.MinimumNoticeHours, host.BookingWindowDays,
		host.BufferBeforeMinutes, host.BufferAfterMinutes, host.DailyBookingLimit)
	if err != nil {
		logger.Error("HostRepository:Create", err)
		return nil, err
	}

	return &created, nil
}

func (r *HostRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SchedulingUser, error) {
	query := fmt.Sprintf(`SELECT %s FROM scheduling_users WHERE id = $1`, hostColumns)

	var host entity.SchedulingUser
	err := r.DB.GetContext(ctx, &host, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("HostRepository:GetByID", err)
		return nil, err
	}

	return &host, nil
}

// GetByIDs returns the hosts that exist among ids; missing ids are simply
// absent from the result.
func (r *HostRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.SchedulingUser, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM scheduling_users WHERE id = ANY($1)`, hostColumns)

	var hosts []entity.SchedulingUser
	err := r.DB.SelectContext(ctx, &hosts, query, pq.Array(ids))
	if err != nil {
		logger.Error("HostRepository:GetByIDs", err)
		return nil, err
	}

	return hosts, nil
}

func (r *HostRepository) List(ctx context.Context, queryParams params.QueryParams) (*entity.PaginatedHosts, error) {
	queryParams.Normalize()

	search := "%" + queryParams.Search + "%"

	countQuery := `SELECT COUNT(*) FROM scheduling_users WHERE name ILIKE $1 OR email ILIKE $1`
	var total int
	if err := r.DB.GetContext(ctx, &total, countQuery, search); err != nil {
		logger.Error("HostRepository:List:Count", err)
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM scheduling_users
		WHERE name ILIKE $1 OR email ILIKE $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, hostColumns)

	var hosts []entity.SchedulingUser
	err := r.DB.SelectContext(ctx, &hosts, query, search, queryParams.PageSize, queryParams.Offset())
	if err != nil {
		logger.Error("HostRepository:List", err)
		return nil, err
	}

	return &entity.PaginatedHosts{
		Hosts:      hosts,
		TotalCount: total,
		PageNumber: queryParams.PageNumber,
		PageSize:   queryParams.PageSize,
	}, nil
}

func (r *HostRepository) UpdateSettings(ctx context.Context, host *entity.SchedulingUser) error {
	query := `
		UPDATE scheduling_users
		SET minimum_notice_hours = $2, booking_window_days = $3, buffer_before_minutes = $4,
		    buffer_after_minutes = $5, daily_booking_limit = $6, updated_at = NOW()
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query,
		host.ID, host.MinimumNoticeHours, host.BookingWindowDays,
		host.BufferBeforeMinutes, host.BufferAfterMinutes, host.DailyBookingLimit)
	if err != nil {
		logger.Error("HostRepository:UpdateSettings", err)
		return err
	}

	return nil
}

// Deactivate is a soft delete; bookings referencing the host stay intact.
func (r *HostRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE scheduling_users SET is_active = false, updated_at = NOW() WHERE id = $1`
	if err := r.DB.ExecContext(ctx, query, id); err != nil {
		logger.Error("HostRepository:Deactivate", err)
		return err
	}
	return nil
}
