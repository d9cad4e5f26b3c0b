package repository

import (
	"context"
	"database/sql"
	"fmt"

	"team-schedule-api/core/database"
	"team-schedule-api/core/logger"
	"team-schedule-api/core/params"
	"team-schedule-api/modules/teamevent/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// TeamEventRepository handles team_event_types, team_event_hosts and
// round_robin_counters tables
type TeamEventRepository struct {
	DB database.Database
}

// NewTeamEventRepository creates a new repository instance
func NewTeamEventRepository(db database.Database) *TeamEventRepository {
	return &TeamEventRepository{DB: db}
}

// TeamEventRepositoryInterface defines the repository contract
type TeamEventRepositoryInterface interface {
	Create(ctx context.Context, eventType *entity.TeamEventType) (*entity.TeamEventType, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.TeamEventType, error)
	List(ctx context.Context, queryParams params.QueryParams) (*entity.PaginatedTeamEventTypes, error)
	Update(ctx context.Context, eventType *entity.TeamEventType) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error

	GetCounter(ctx context.Context, teamEventTypeID uuid.UUID) (*entity.RoundRobinCounter, error)
	UpdateCounter(ctx context.Context, teamEventTypeID uuid.UUID, index int) error
}

const eventTypeColumns = `id, name, slug, duration_minutes, mode, is_active,
	       override_minimum_notice_hours, override_booking_window_days,
	       override_buffer_before_minutes, override_buffer_after_minutes,
	       override_daily_booking_limit, created_at, updated_at`

// Create inserts the event type, its ordered host list and its rotation
// counter (at 0) in one transaction.
func (r *TeamEventRepository) Create(ctx context.Context, eventType *entity.TeamEventType) (*entity.TeamEventType, error) {
	tx, err := r.DB.BeginTxx(ctx)
	if err != nil {
		logger.Error("TeamEventRepository:Create:Begin", err)
		return nil, err
	}
	defer tx.Rollback()

	insertQuery := fmt.Sprintf(`
		INSERT INTO team_event_types (name, slug, duration_minutes, mode, is_active,
		                              override_minimum_notice_hours, override_booking_window_days,
		                              override_buffer_before_minutes, override_buffer_after_minutes,
		                              override_daily_booking_limit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s
	`, eventTypeColumns)

	var created entity.TeamEventType
	err = tx.GetContext(ctx, &created, insertQuery,
		eventType.Name, eventType.Slug, eventType.DurationMinutes, eventType.Mode, eventType.IsActive,
		eventType.MinimumNoticeHours, eventType.BookingWindowDays,
		eventType.BufferBeforeMinutes, eventType.BufferAfterMinutes,
		eventType.DailyBookingLimit)
	if err != nil {
		logger.Error("TeamEventRepository:Create:Insert", err)
		return nil, err
	}

	if err := r.replaceHosts(ctx, tx, created.ID, eventType.HostIDs); err != nil {
		return nil, err
	}

	counterQuery := `INSERT INTO round_robin_counters (team_event_type_id, current_index) VALUES ($1, 0)`
	if _, err := tx.ExecContext(ctx, counterQuery, created.ID); err != nil {
		logger.Error("TeamEventRepository:Create:Counter", err)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("TeamEventRepository:Create:Commit", err)
		return nil, err
	}

	created.HostIDs = eventType.HostIDs
	return &created, nil
}

func (r *TeamEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.TeamEventType, error) {
	query := fmt.Sprintf(`SELECT %s FROM team_event_types WHERE id = $1`, eventTypeColumns)

	var eventType entity.TeamEventType
	err := r.DB.GetContext(ctx, &eventType, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("TeamEventRepository:GetByID", err)
		return nil, err
	}

	hostIDs, err := r.hostIDsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	eventType.HostIDs = hostIDs

	return &eventType, nil
}

func (r *TeamEventRepository) List(ctx context.Context, queryParams params.QueryParams) (*entity.PaginatedTeamEventTypes, error) {
	queryParams.Normalize()

	search := "%" + queryParams.Search + "%"

	var total int
	if err := r.DB.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM team_event_types WHERE name ILIKE $1`, search); err != nil {
		logger.Error("TeamEventRepository:List:Count", err)
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM team_event_types
		WHERE name ILIKE $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, eventTypeColumns)

	var eventTypes []entity.TeamEventType
	err := r.DB.SelectContext(ctx, &eventTypes, query, search, queryParams.PageSize, queryParams.Offset())
	if err != nil {
		logger.Error("TeamEventRepository:List", err)
		return nil, err
	}

	for i := range eventTypes {
		hostIDs, err := r.hostIDsFor(ctx, eventTypes[i].ID)
		if err != nil {
			return nil, err
		}
		eventTypes[i].HostIDs = hostIDs
	}

	return &entity.PaginatedTeamEventTypes{
		EventTypes: eventTypes,
		TotalCount: total,
		PageNumber: queryParams.PageNumber,
		PageSize:   queryParams.PageSize,
	}, nil
}

// Update rewrites the event type row and its host list, clamping the
// rotation counter back into range when the host list shrinks.
func (r *TeamEventRepository) Update(ctx context.Context, eventType *entity.TeamEventType) error {
	tx, err := r.DB.BeginTxx(ctx)
	if err != nil {
		logger.Error("TeamEventRepository:Update:Begin", err)
		return err
	}
	defer tx.Rollback()

	query := `
		UPDATE team_event_types
		SET name = $2, slug = $3, duration_minutes = $4, mode = $5,
		    override_minimum_notice_hours = $6, override_booking_window_days = $7,
		    override_buffer_before_minutes = $8, override_buffer_after_minutes = $9,
		    override_daily_booking_limit = $10, updated_at = NOW()
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, query,
		eventType.ID, eventType.Name, eventType.Slug, eventType.DurationMinutes, eventType.Mode,
		eventType.MinimumNoticeHours, eventType.BookingWindowDays,
		eventType.BufferBeforeMinutes, eventType.BufferAfterMinutes,
		eventType.DailyBookingLimit); err != nil {
		logger.Error("TeamEventRepository:Update", err)
		return err
	}

	if err := r.replaceHosts(ctx, tx, eventType.ID, eventType.HostIDs); err != nil {
		return err
	}

	if len(eventType.HostIDs) > 0 {
		clampQuery := `
			UPDATE round_robin_counters
			SET current_index = current_index % $2, updated_at = NOW()
			WHERE team_event_type_id = $1
		`
		if _, err := tx.ExecContext(ctx, clampQuery, eventType.ID, len(eventType.HostIDs)); err != nil {
			logger.Error("TeamEventRepository:Update:ClampCounter", err)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("TeamEventRepository:Update:Commit", err)
		return err
	}

	return nil
}

// Delete removes the event type, its host rows and its counter together.
func (r *TeamEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.DB.BeginTxx(ctx)
	if err != nil {
		logger.Error("TeamEventRepository:Delete:Begin", err)
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM round_robin_counters WHERE team_event_type_id = $1`, id); err != nil {
		logger.Error("TeamEventRepository:Delete:Counter", err)
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM team_event_hosts WHERE team_event_type_id = $1`, id); err != nil {
		logger.Error("TeamEventRepository:Delete:Hosts", err)
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM team_event_types WHERE id = $1`, id); err != nil {
		logger.Error("TeamEventRepository:Delete", err)
		return err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("TeamEventRepository:Delete:Commit", err)
		return err
	}

	return nil
}

func (r *TeamEventRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE team_event_types SET is_active = $2, updated_at = NOW() WHERE id = $1`
	if err := r.DB.ExecContext(ctx, query, id, active); err != nil {
		logger.Error("TeamEventRepository:SetActive", err)
		return err
	}
	return nil
}

// ===================== Round-robin counter =====================

func (r *TeamEventRepository) GetCounter(ctx context.Context, teamEventTypeID uuid.UUID) (*entity.RoundRobinCounter, error) {
	query := `
		SELECT team_event_type_id, current_index, created_at, updated_at
		FROM round_robin_counters WHERE team_event_type_id = $1
	`

	var counter entity.RoundRobinCounter
	err := r.DB.GetContext(ctx, &counter, query, teamEventTypeID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("TeamEventRepository:GetCounter", err)
		return nil, err
	}

	return &counter, nil
}

func (r *TeamEventRepository) UpdateCounter(ctx context.Context, teamEventTypeID uuid.UUID, index int) error {
	query := `
		UPDATE round_robin_counters
		SET current_index = $2, updated_at = NOW()
		WHERE team_event_type_id = $1
	`
	if err := r.DB.ExecContext(ctx, query, teamEventTypeID, index); err != nil {
		logger.Error("TeamEventRepository:UpdateCounter", err)
		return err
	}
	return nil
}

// ===================== internal =====================

func (r *TeamEventRepository) replaceHosts(ctx context.Context, tx *sqlx.Tx, eventTypeID uuid.UUID, hostIDs []uuid.UUID) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM team_event_hosts WHERE team_event_type_id = $1`, eventTypeID); err != nil {
		logger.Error("TeamEventRepository:ReplaceHosts:Delete", err)
		return err
	}
	for position, hostID := range hostIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO team_event_hosts (team_event_type_id, host_id, position) VALUES ($1, $2, $3)`,
			eventTypeID, hostID, position); err != nil {
			logger.Error("TeamEventRepository:ReplaceHosts:Insert", err)
			return err
		}
	}
	return nil
}

func (r *TeamEventRepository) hostIDsFor(ctx context.Context, eventTypeID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT host_id FROM team_event_hosts
		WHERE team_event_type_id = $1
		ORDER BY position
	`

	var hostIDs []uuid.UUID
	err := r.DB.SelectContext(ctx, &hostIDs, query, eventTypeID)
	if err != nil {
		logger.Error("TeamEventRepository:HostIDsFor", err)
		return nil, err
	}

	return hostIDs, nil
}
