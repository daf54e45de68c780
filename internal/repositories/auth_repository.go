package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/models"
)

// AuthRepository defines the user-account database operations.
type AuthRepository interface {
	CreateUser(executor SQLExecutor, user *models.User, hashedPassword string) (int64, error)
	FindUserByUsername(username string) (*models.User, string, error) // user, password hash
	FindUserByID(userID int64) (*models.User, error)
	GetWorkers() ([]models.User, error)
	ManagerExists() (bool, error)
}

type authRepository struct {
	db *sql.DB
}

// NewAuthRepository creates a new AuthRepository backed by the given pool.
func NewAuthRepository(db *sql.DB) AuthRepository {
	return &authRepository{db: db}
}

func (r *authRepository) CreateUser(executor SQLExecutor, user *models.User, hashedPassword string) (int64, error) {
	query := `INSERT INTO users (username, password_hash, role, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	now := time.Now()
	role := user.Role
	if role == "" {
		role = models.RoleWorker
	}

	var userID int64
	err := executor.QueryRow(query, user.Username, hashedPassword, role, true, now, now).Scan(&userID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating user: %v", ErrDatabaseError, err)
	}
	return userID, nil
}

func scanUser(row scanner, user *models.User, hashedPassword *string) error {
	return row.Scan(
		&user.ID, &user.Username, hashedPassword, &user.Role,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
}

const userColumns = `id, username, password_hash, role, is_active, created_at, updated_at`

func (r *authRepository) FindUserByUsername(username string) (*models.User, string, error) {
	user := &models.User{}
	var hashedPassword string

	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	err := scanUser(r.db.QueryRow(query, username), user, &hashedPassword)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("%w: finding user by username %s: %v", ErrDatabaseError, username, err)
	}
	return user, hashedPassword, nil
}

func (r *authRepository) FindUserByID(userID int64) (*models.User, error) {
	user := &models.User{}
	var hashedPassword string // selected but not exposed on the model

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	err := scanUser(r.db.QueryRow(query, userID), user, &hashedPassword)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding user by ID %d: %v", ErrDatabaseError, userID, err)
	}
	return user, nil
}

// GetWorkers returns every active worker account, ordered by username, for
// the full payroll report.
func (r *authRepository) GetWorkers() ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 AND is_active ORDER BY username`
	rows, err := r.db.Query(query, models.RoleWorker)
	if err != nil {
		return nil, fmt.Errorf("%w: listing workers: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	workers := []models.User{}
	for rows.Next() {
		var user models.User
		var hashedPassword string
		if err := scanUser(rows, &user, &hashedPassword); err != nil {
			return nil, fmt.Errorf("%w: scanning worker: %v", ErrDatabaseError, err)
		}
		workers = append(workers, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listing workers: %v", ErrDatabaseError, err)
	}
	return workers, nil
}

func (r *authRepository) ManagerExists() (bool, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM users WHERE role = $1`, models.RoleManager).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("%w: counting managers: %v", ErrDatabaseError, err)
	}
	return count > 0, nil
}
