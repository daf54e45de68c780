package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/models"
)

// ShiftRepository defines the shift database operations. Shifts are never
// deleted; after creation only the car allowance may change.
type ShiftRepository interface {
	CreateShift(executor SQLExecutor, shift *models.Shift) (*models.Shift, error)
	GetShiftByID(id int64) (*models.Shift, error)
	GetShiftsByUserID(userID int64) ([]models.Shift, error)
	UpdateShiftAllowance(executor SQLExecutor, id int64, allowance float64) error
}

type shiftRepository struct {
	db *sql.DB
}

// NewShiftRepository creates a new ShiftRepository backed by the given pool.
func NewShiftRepository(db *sql.DB) ShiftRepository {
	return &shiftRepository{db: db}
}

func (r *shiftRepository) CreateShift(executor SQLExecutor, shift *models.Shift) (*models.Shift, error) {
	query := `INSERT INTO shifts (user_id, date, time_in, time_out, car_used, car_allowance, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id, created_at, updated_at`

	now := time.Now()
	err := executor.QueryRow(query,
		shift.UserID, shift.Date, shift.TimeIn, shift.TimeOut,
		shift.CarUsed, shift.CarAllowance, now, now,
	).Scan(&shift.ID, &shift.CreatedAt, &shift.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return nil, fmt.Errorf("%w: user with ID %d not found", ErrNotFound, shift.UserID)
		}
		return nil, fmt.Errorf("%w: creating shift: %v", ErrDatabaseError, err)
	}
	return shift, nil
}

const shiftColumns = `id, user_id, date, time_in, time_out, car_used, car_allowance, created_at, updated_at`

func scanShift(row scanner, shift *models.Shift) error {
	return row.Scan(
		&shift.ID, &shift.UserID, &shift.Date, &shift.TimeIn, &shift.TimeOut,
		&shift.CarUsed, &shift.CarAllowance, &shift.CreatedAt, &shift.UpdatedAt,
	)
}

func (r *shiftRepository) GetShiftByID(id int64) (*models.Shift, error) {
	shift := &models.Shift{}
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE id = $1`
	err := scanShift(r.db.QueryRow(query, id), shift)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding shift by ID %d: %v", ErrDatabaseError, id, err)
	}
	return shift, nil
}

// GetShiftsByUserID returns all of a worker's shifts, most recent date first.
// Reports rely on this order and never re-sort.
func (r *shiftRepository) GetShiftsByUserID(userID int64) ([]models.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE user_id = $1 ORDER BY date DESC, id DESC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing shifts for user %d: %v", ErrDatabaseError, userID, err)
	}
	defer rows.Close()

	shifts := []models.Shift{}
	for rows.Next() {
		var shift models.Shift
		if err := scanShift(rows, &shift); err != nil {
			return nil, fmt.Errorf("%w: scanning shift: %v", ErrDatabaseError, err)
		}
		shifts = append(shifts, shift)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listing shifts for user %d: %v", ErrDatabaseError, userID, err)
	}
	return shifts, nil
}

func (r *shiftRepository) UpdateShiftAllowance(executor SQLExecutor, id int64, allowance float64) error {
	result, err := executor.Exec(
		`UPDATE shifts SET car_allowance = $1, updated_at = $2 WHERE id = $3`,
		allowance, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("%w: updating allowance for shift %d: %v", ErrDatabaseError, id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: updating allowance for shift %d: %v", ErrDatabaseError, id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
