package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/models"
	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/payroll"
	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/repositories"
	"github.com/fdepaulajodaracuna-max/CamarerosHoras/pkg/utils"
	"github.com/fdepaulajodaracuna-max/CamarerosHoras/pkg/workerpool"
)

var (
	ErrInvalidTimeInput       = errors.New("invalid date or time input, use YYYY-MM-DD and HH:MM")
	ErrNegativeAllowance      = errors.New("car allowance cannot be negative")
	ErrAllowanceNotApplicable = errors.New("car was not used for this shift, allowance cannot be changed")
	ErrShiftNotFound          = errors.New("shift not found")
)

// RecordShiftRequest is the payload for a worker submitting a shift.
type RecordShiftRequest struct {
	Date    string `json:"date" binding:"required"`
	TimeIn  string `json:"time_in" binding:"required"`
	TimeOut string `json:"time_out" binding:"required"`
	CarUsed bool   `json:"car_used"`
}

// Notifier is informed when a new shift is recorded. Implementations are
// invoked off the request path; their errors are logged, never propagated.
type Notifier interface {
	NotifyNewShift(workerName, date, timeIn, timeOut string, carUsed bool) error
}

// ShiftService handles shift recording, listing and allowance corrections.
type ShiftService interface {
	RecordShift(userID int64, req RecordShiftRequest) (*models.Shift, error)
	GetShiftsForWorker(userID int64) ([]models.Shift, error)
	UpdateAllowance(shiftID int64, newAllowance float64) (*models.Shift, error)
}

type shiftService struct {
	shiftRepo        repositories.ShiftRepository
	authRepo         repositories.AuthRepository
	db               *sql.DB
	defaultAllowance float64
	notifier         Notifier
	pool             *workerpool.Pool
}

// NewShiftService creates a new ShiftService.
func NewShiftService(
	shiftRepo repositories.ShiftRepository,
	authRepo repositories.AuthRepository,
	db *sql.DB,
	defaultAllowance float64,
	notifier Notifier,
	pool *workerpool.Pool,
) ShiftService {
	return &shiftService{
		shiftRepo:        shiftRepo,
		authRepo:         authRepo,
		db:               db,
		defaultAllowance: defaultAllowance,
		notifier:         notifier,
		pool:             pool,
	}
}

// RecordShift validates and stores a submitted shift, then enqueues the
// manager notification. A full queue or a failing notifier never affects the
// stored shift.
func (s *shiftService) RecordShift(userID int64, req RecordShiftRequest) (*models.Shift, error) {
	date, err := payroll.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q", ErrInvalidTimeInput, req.Date)
	}
	if _, err := payroll.ParseClock(req.TimeIn); err != nil {
		return nil, fmt.Errorf("%w: time_in %q", ErrInvalidTimeInput, req.TimeIn)
	}
	if _, err := payroll.ParseClock(req.TimeOut); err != nil {
		return nil, fmt.Errorf("%w: time_out %q", ErrInvalidTimeInput, req.TimeOut)
	}

	worker, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve submitting worker: %w", err)
	}

	allowance := 0.0
	if req.CarUsed {
		allowance = s.defaultAllowance
	}

	shift := &models.Shift{
		UserID:       userID,
		Date:         date,
		TimeIn:       req.TimeIn,
		TimeOut:      req.TimeOut,
		CarUsed:      req.CarUsed,
		CarAllowance: allowance,
	}

	created, err := s.shiftRepo.CreateShift(s.db, shift)
	if err != nil {
		return nil, fmt.Errorf("failed to create shift in repository: %w", err)
	}

	s.enqueueNotification(worker.Username, created)
	return created, nil
}

func (s *shiftService) enqueueNotification(workerName string, shift *models.Shift) {
	date := shift.Date.Format(payroll.DateLayout)
	timeIn, timeOut, carUsed := shift.TimeIn, shift.TimeOut, shift.CarUsed

	submitted := s.pool.Submit(func() {
		if err := s.notifier.NotifyNewShift(workerName, date, timeIn, timeOut, carUsed); err != nil {
			utils.LogError(err, "Shift notification failed")
		}
	})
	if !submitted {
		utils.LogWarn("Notification queue full, dropping shift notification", map[string]interface{}{
			"worker": workerName,
			"date":   date,
		})
	}
}

func (s *shiftService) GetShiftsForWorker(userID int64) ([]models.Shift, error) {
	shifts, err := s.shiftRepo.GetShiftsByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shifts: %w", err)
	}
	return shifts, nil
}

// UpdateAllowance corrects the car allowance on a recorded shift. The update
// is rejected, leaving the stored value untouched, when the new value is
// negative or the shift was recorded without car use.
func (s *shiftService) UpdateAllowance(shiftID int64, newAllowance float64) (*models.Shift, error) {
	if newAllowance < 0 {
		return nil, ErrNegativeAllowance
	}

	shift, err := s.shiftRepo.GetShiftByID(shiftID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, fmt.Errorf("failed to find shift for allowance update: %w", err)
	}
	if !shift.CarUsed {
		return nil, ErrAllowanceNotApplicable
	}

	if err := s.shiftRepo.UpdateShiftAllowance(s.db, shiftID, newAllowance); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, fmt.Errorf("failed to update allowance: %w", err)
	}
	return s.shiftRepo.GetShiftByID(shiftID)
}
