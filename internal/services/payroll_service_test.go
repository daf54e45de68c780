package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/models"
	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/payroll"
	"github.com/fdepaulajodaracuna-max/CamarerosHoras/pkg/workerpool"
)

func payrollServiceSetup(t *testing.T) (PayrollService, ShiftService, *workerpool.Pool) {
	t.Helper()
	shiftRepo := newFakeShiftRepo()
	authRepo := newFakeAuthRepo(
		models.User{ID: 1, Username: "maria", Role: models.RoleWorker, IsActive: true},
		models.User{ID: 2, Username: "pablo", Role: models.RoleWorker, IsActive: true},
		models.User{ID: 3, Username: "admin", Role: models.RoleManager, IsActive: true},
	)
	pool := workerpool.New(1, 8)
	cfg := payroll.Config{HourlyRate: 9.00, DefaultCarAllowance: 5.00}
	shiftSvc := NewShiftService(shiftRepo, authRepo, nil, cfg.DefaultCarAllowance, &fakeNotifier{}, pool)
	payrollSvc := NewPayrollService(shiftRepo, authRepo, cfg)
	return payrollSvc, shiftSvc, pool
}

func TestGetWorkerPayroll_EmptyIsNotAnError(t *testing.T) {
	payrollSvc, _, pool := payrollServiceSetup(t)
	defer pool.Close()

	report, err := payrollSvc.GetWorkerPayroll(1)
	require.NoError(t, err)
	assert.Equal(t, "maria", report.Username)
	assert.Empty(t, report.Years)
}

func TestGetWorkerPayroll_UnknownWorker(t *testing.T) {
	payrollSvc, _, pool := payrollServiceSetup(t)
	defer pool.Close()

	_, err := payrollSvc.GetWorkerPayroll(42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetWorkerPayroll_MonthlyBuckets(t *testing.T) {
	payrollSvc, shiftSvc, pool := payrollServiceSetup(t)
	defer pool.Close()

	// Two January shifts (5h, 3h) and one in February (4h).
	for _, req := range []RecordShiftRequest{
		{Date: "2024-01-10", TimeIn: "10:00", TimeOut: "15:00"},
		{Date: "2024-01-20", TimeIn: "18:00", TimeOut: "21:00"},
		{Date: "2024-02-05", TimeIn: "09:00", TimeOut: "13:00"},
	} {
		_, err := shiftSvc.RecordShift(1, req)
		require.NoError(t, err)
	}

	report, err := payrollSvc.GetWorkerPayroll(1)
	require.NoError(t, err)
	require.Len(t, report.Years[2024], 2)
	assert.Equal(t, "08h 00m", report.Years[2024][1].TotalHours)
	assert.Equal(t, "04h 00m", report.Years[2024][2].TotalHours)
}

func TestGetAllPayrolls_CoversEveryWorker(t *testing.T) {
	payrollSvc, shiftSvc, pool := payrollServiceSetup(t)
	defer pool.Close()

	_, err := shiftSvc.RecordShift(1, RecordShiftRequest{Date: "2024-03-10", TimeIn: "22:00", TimeOut: "06:00", CarUsed: true})
	require.NoError(t, err)

	reports, err := payrollSvc.GetAllPayrolls()
	require.NoError(t, err)
	require.Len(t, reports, 2) // the manager is not part of payroll

	assert.Equal(t, "maria", reports[0].Username)
	bucket := reports[0].Years[2024][3]
	require.NotNil(t, bucket)
	assert.InDelta(t, 77.00, bucket.TotalPay, 1e-9)

	assert.Equal(t, "pablo", reports[1].Username)
	assert.Empty(t, reports[1].Years)
}
