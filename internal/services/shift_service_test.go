package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/models"
	"github.com/fdepaulajodaracuna-max/CamarerosHoras/pkg/workerpool"
)

const testDefaultAllowance = 5.00

func shiftServiceSetup(t *testing.T) (ShiftService, *fakeShiftRepo, *fakeNotifier, *workerpool.Pool) {
	t.Helper()
	shiftRepo := newFakeShiftRepo()
	authRepo := newFakeAuthRepo(
		models.User{ID: 1, Username: "maria", Role: models.RoleWorker, IsActive: true},
		models.User{ID: 2, Username: "admin", Role: models.RoleManager, IsActive: true},
	)
	notifier := &fakeNotifier{}
	pool := workerpool.New(1, 8)
	svc := NewShiftService(shiftRepo, authRepo, nil, testDefaultAllowance, notifier, pool)
	return svc, shiftRepo, notifier, pool
}

func TestRecordShift_AppliesDefaultAllowanceWhenCarUsed(t *testing.T) {
	svc, _, _, pool := shiftServiceSetup(t)
	defer pool.Close()

	shift, err := svc.RecordShift(1, RecordShiftRequest{
		Date: "2024-03-10", TimeIn: "22:00", TimeOut: "06:00", CarUsed: true,
	})
	require.NoError(t, err)
	assert.Equal(t, testDefaultAllowance, shift.CarAllowance)
	assert.True(t, shift.CarUsed)
}

func TestRecordShift_NoAllowanceWithoutCar(t *testing.T) {
	svc, _, _, pool := shiftServiceSetup(t)
	defer pool.Close()

	shift, err := svc.RecordShift(1, RecordShiftRequest{
		Date: "2024-03-10", TimeIn: "09:00", TimeOut: "17:00",
	})
	require.NoError(t, err)
	assert.Zero(t, shift.CarAllowance)
}

func TestRecordShift_RejectsMalformedInput(t *testing.T) {
	svc, repo, _, pool := shiftServiceSetup(t)
	defer pool.Close()

	cases := []RecordShiftRequest{
		{Date: "10-03-2024", TimeIn: "09:00", TimeOut: "17:00"},
		{Date: "2024-03-10", TimeIn: "9am", TimeOut: "17:00"},
		{Date: "2024-03-10", TimeIn: "09:00", TimeOut: "25:00"},
	}
	for _, req := range cases {
		_, err := svc.RecordShift(1, req)
		assert.ErrorIs(t, err, ErrInvalidTimeInput)
	}
	// Nothing was stored.
	shifts, err := repo.GetShiftsByUserID(1)
	require.NoError(t, err)
	assert.Empty(t, shifts)
}

func TestRecordShift_NotifiesManager(t *testing.T) {
	svc, _, notifier, pool := shiftServiceSetup(t)

	_, err := svc.RecordShift(1, RecordShiftRequest{
		Date: "2024-03-10", TimeIn: "09:00", TimeOut: "17:00",
	})
	require.NoError(t, err)

	pool.Close() // flush queued notification jobs
	assert.Equal(t, 1, notifier.callCount())
}

func TestRecordShift_NotifierFailureDoesNotBlockRecording(t *testing.T) {
	svc, repo, notifier, pool := shiftServiceSetup(t)
	notifier.fail = true

	shift, err := svc.RecordShift(1, RecordShiftRequest{
		Date: "2024-03-10", TimeIn: "09:00", TimeOut: "17:00",
	})
	require.NoError(t, err)

	pool.Close()
	// The shift survived the failed notification.
	stored, err := repo.GetShiftByID(shift.ID)
	require.NoError(t, err)
	assert.Equal(t, shift.ID, stored.ID)
	assert.Equal(t, 1, notifier.callCount())
}

func TestUpdateAllowance_RejectsNegative(t *testing.T) {
	svc, repo, _, pool := shiftServiceSetup(t)
	defer pool.Close()

	shift, err := svc.RecordShift(1, RecordShiftRequest{
		Date: "2024-03-10", TimeIn: "09:00", TimeOut: "17:00", CarUsed: true,
	})
	require.NoError(t, err)

	_, err = svc.UpdateAllowance(shift.ID, -1.00)
	assert.ErrorIs(t, err, ErrNegativeAllowance)

	stored, err := repo.GetShiftByID(shift.ID)
	require.NoError(t, err)
	assert.Equal(t, testDefaultAllowance, stored.CarAllowance)
}

func TestUpdateAllowance_RejectedWhenCarNotUsed(t *testing.T) {
	svc, repo, _, pool := shiftServiceSetup(t)
	defer pool.Close()

	shift, err := svc.RecordShift(1, RecordShiftRequest{
		Date: "2024-03-10", TimeIn: "09:00", TimeOut: "17:00", CarUsed: false,
	})
	require.NoError(t, err)

	_, err = svc.UpdateAllowance(shift.ID, 10.00)
	assert.ErrorIs(t, err, ErrAllowanceNotApplicable)

	stored, err := repo.GetShiftByID(shift.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.CarAllowance)
}

func TestUpdateAllowance_Success(t *testing.T) {
	svc, _, _, pool := shiftServiceSetup(t)
	defer pool.Close()

	shift, err := svc.RecordShift(1, RecordShiftRequest{
		Date: "2024-03-10", TimeIn: "09:00", TimeOut: "17:00", CarUsed: true,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateAllowance(shift.ID, 7.25)
	require.NoError(t, err)
	assert.Equal(t, 7.25, updated.CarAllowance)
}

func TestUpdateAllowance_ZeroIsValid(t *testing.T) {
	svc, _, _, pool := shiftServiceSetup(t)
	defer pool.Close()

	shift, err := svc.RecordShift(1, RecordShiftRequest{
		Date: "2024-03-10", TimeIn: "09:00", TimeOut: "17:00", CarUsed: true,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateAllowance(shift.ID, 0)
	require.NoError(t, err)
	assert.Zero(t, updated.CarAllowance)
}

func TestUpdateAllowance_NotFound(t *testing.T) {
	svc, _, _, pool := shiftServiceSetup(t)
	defer pool.Close()

	_, err := svc.UpdateAllowance(99, 5.00)
	assert.ErrorIs(t, err, ErrShiftNotFound)
}
