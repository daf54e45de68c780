package services

import (
	"errors"
	"fmt"

	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/payroll"
	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/repositories"
)

// WorkerPayroll is the report for one worker: every recorded shift grouped
// by year then month. Regenerated from the shift store on every request.
type WorkerPayroll struct {
	UserID   int64                                   `json:"user_id"`
	Username string                                  `json:"username"`
	Years    map[int]map[int]*payroll.MonthlySummary `json:"years"`
}

// PayrollService produces payroll reports.
type PayrollService interface {
	GetWorkerPayroll(userID int64) (*WorkerPayroll, error)
	GetAllPayrolls() ([]WorkerPayroll, error)
}

type payrollService struct {
	shiftRepo repositories.ShiftRepository
	authRepo  repositories.AuthRepository
	cfg       payroll.Config
}

// NewPayrollService creates a new PayrollService with the injected pay
// configuration.
func NewPayrollService(shiftRepo repositories.ShiftRepository, authRepo repositories.AuthRepository, cfg payroll.Config) PayrollService {
	return &payrollService{shiftRepo: shiftRepo, authRepo: authRepo, cfg: cfg}
}

// GetWorkerPayroll builds the report for a single worker. A worker with no
// shifts gets an empty (not nil) years structure.
func (s *payrollService) GetWorkerPayroll(userID int64) (*WorkerPayroll, error) {
	worker, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to resolve worker for payroll: %w", err)
	}

	shifts, err := s.shiftRepo.GetShiftsByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shifts for payroll: %w", err)
	}

	years, err := payroll.Summarize(s.cfg, shifts)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize shifts for user %d: %w", userID, err)
	}

	return &WorkerPayroll{
		UserID:   worker.ID,
		Username: worker.Username,
		Years:    years,
	}, nil
}

// GetAllPayrolls builds the report for every active worker.
func (s *payrollService) GetAllPayrolls() ([]WorkerPayroll, error) {
	workers, err := s.authRepo.GetWorkers()
	if err != nil {
		return nil, fmt.Errorf("failed to list workers for payroll: %w", err)
	}

	reports := []WorkerPayroll{}
	for _, worker := range workers {
		shifts, err := s.shiftRepo.GetShiftsByUserID(worker.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load shifts for worker %d: %w", worker.ID, err)
		}
		years, err := payroll.Summarize(s.cfg, shifts)
		if err != nil {
			return nil, fmt.Errorf("failed to summarize shifts for worker %d: %w", worker.ID, err)
		}
		reports = append(reports, WorkerPayroll{
			UserID:   worker.ID,
			Username: worker.Username,
			Years:    years,
		})
	}
	return reports, nil
}
