package models

import "time"

// Roles recognised by the system. Workers submit shifts and see their own
// payroll; managers see everyone's payroll and may correct car allowances.
const (
	RoleManager = "manager"
	RoleWorker  = "worker"
)

// User represents a login account, either a waiter or the manager.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"` // never serialized
	Role         string    `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Credentials for login requests.
type Credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
