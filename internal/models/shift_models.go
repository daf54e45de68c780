package models

import "time"

// Shift is one recorded work session. Date carries the calendar day only;
// TimeIn and TimeOut are wall-clock "HH:MM" strings with no date component.
// TimeOut earlier than TimeIn means the shift ended the following day.
//
// Shifts are append-only from the worker's side. Only CarAllowance is mutable
// after creation, by a manager, and only when CarUsed is true.
type Shift struct {
	ID           int64     `json:"id" db:"id"`
	UserID       int64     `json:"user_id" db:"user_id"`
	Date         time.Time `json:"date" db:"date"`
	TimeIn       string    `json:"time_in" db:"time_in"`
	TimeOut      string    `json:"time_out" db:"time_out"`
	CarUsed      bool      `json:"car_used" db:"car_used"`
	CarAllowance float64   `json:"car_allowance" db:"car_allowance"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
	Worker       *User     `json:"worker,omitempty"` // populated on joined reads
}
