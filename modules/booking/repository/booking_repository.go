package repository

import (
	"context"
	"database/sql"
	"time"

	"team-schedule-api/core/database"
	"team-schedule-api/core/logger"
	"team-schedule-api/modules/booking/entity"

	"github.com/google/uuid"
)

// BookingRepository handles bookings database operations
type BookingRepository struct {
	DB database.Database
}

// NewBookingRepository creates a new repository instance
func NewBookingRepository(db database.Database) *BookingRepository {
	return &BookingRepository{DB: db}
}

// BookingRepositoryInterface defines the repository contract
type BookingRepositoryInterface interface {
	Create(ctx context.Context, booking *entity.Booking) (*entity.Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	GetByReference(ctx context.Context, code string) (*entity.Booking, error)
	ListForHost(ctx context.Context, hostID uuid.UUID, from, to time.Time) ([]entity.Booking, error)
	ListBlockingForHostInRange(ctx context.Context, hostID uuid.UUID, from, to time.Time) ([]entity.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error
	Reschedule(ctx context.Context, id uuid.UUID, start, end time.Time) error
}

const bookingColumns = `id, host_id, team_event_type_id, start_time, end_time, status,
	       invitee_name, invitee_email, reference_code, created_at, updated_at`

func (r *BookingRepository) Create(ctx context.Context, booking *entity.Booking) (*entity.Booking, error) {
	query := `
		INSERT INTO bookings (host_id, team_event_type_id, start_time, end_time, status,
		                      invitee_name, invitee_email, reference_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + bookingColumns

	var created entity.Booking
	err := r.DB.GetContext(ctx, &created, query,
		booking.HostID, booking.TeamEventTypeID, booking.StartTime.UTC(), booking.EndTime.UTC(),
		booking.Status, booking.InviteeName, booking.InviteeEmail, booking.ReferenceCode)
	if err != nil {
		logger.Error("BookingRepository:Create", err)
		return nil, err
	}

	return &created, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking entity.Booking
	err := r.DB.GetContext(ctx, &booking, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("BookingRepository:GetByID", err)
		return nil, err
	}

	return &booking, nil
}

func (r *BookingRepository) GetByReference(ctx context.Context, code string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE reference_code = $1`

	var booking entity.Booking
	err := r.DB.GetContext(ctx, &booking, query, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("BookingRepository:GetByReference", err)
		return nil, err
	}

	return &booking, nil
}

func (r *BookingRepository) ListForHost(ctx context.Context, hostID uuid.UUID, from, to time.Time) ([]entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE host_id = $1 AND start_time < $3 AND end_time > $2
		ORDER BY start_time
	`

	var bookings []entity.Booking
	err := r.DB.SelectContext(ctx, &bookings, query, hostID, from.UTC(), to.UTC())
	if err != nil {
		logger.Error("BookingRepository:ListForHost", err)
		return nil, err
	}

	return bookings, nil
}

// ListBlockingForHostInRange returns only confirmed/rescheduled bookings,
// the ones that occupy the host's calendar.
func (r *BookingRepository) ListBlockingForHostInRange(ctx context.Context, hostID uuid.UUID, from, to time.Time) ([]entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE host_id = $1 AND status IN ('confirmed', 'rescheduled')
		  AND start_time < $3 AND end_time > $2
		ORDER BY start_time
	`

	var bookings []entity.Booking
	err := r.DB.SelectContext(ctx, &bookings, query, hostID, from.UTC(), to.UTC())
	if err != nil {
		logger.Error("BookingRepository:ListBlockingForHostInRange", err)
		return nil, err
	}

	return bookings, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`
	if err := r.DB.ExecContext(ctx, query, id, status); err != nil {
		logger.Error("BookingRepository:UpdateStatus", err)
		return err
	}
	return nil
}

func (r *BookingRepository) Reschedule(ctx context.Context, id uuid.UUID, start, end time.Time) error {
	query := `
		UPDATE bookings
		SET start_time = $2, end_time = $3, status = 'rescheduled', updated_at = NOW()
		WHERE id = $1
	`
	if err := r.DB.ExecContext(ctx, query, id, start.UTC(), end.UTC()); err != nil {
		logger.Error("BookingRepository:Reschedule", err)
		return err
	}
	return nil
}
