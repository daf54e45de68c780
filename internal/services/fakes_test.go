package services

import (
	"errors"
	"sync"

	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/models"
	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/repositories"
)

// fakeShiftRepo is an in-memory ShiftRepository for service tests.
type fakeShiftRepo struct {
	mu     sync.Mutex
	nextID int64
	shifts map[int64]models.Shift
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{nextID: 1, shifts: map[int64]models.Shift{}}
}

func (r *fakeShiftRepo) CreateShift(_ repositories.SQLExecutor, shift *models.Shift) (*models.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	shift.ID = r.nextID
	r.nextID++
	r.shifts[shift.ID] = *shift
	return shift, nil
}

func (r *fakeShiftRepo) GetShiftByID(id int64) (*models.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	shift, ok := r.shifts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &shift, nil
}

func (r *fakeShiftRepo) GetShiftsByUserID(userID int64) ([]models.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	shifts := []models.Shift{}
	// Mirrors the store contract: most recent first. IDs are assigned in
	// insertion order, so walk them backwards.
	for id := r.nextID - 1; id >= 1; id-- {
		if shift, ok := r.shifts[id]; ok && shift.UserID == userID {
			shifts = append(shifts, shift)
		}
	}
	return shifts, nil
}

func (r *fakeShiftRepo) UpdateShiftAllowance(_ repositories.SQLExecutor, id int64, allowance float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	shift, ok := r.shifts[id]
	if !ok {
		return repositories.ErrNotFound
	}
	shift.CarAllowance = allowance
	r.shifts[id] = shift
	return nil
}

// fakeAuthRepo is an in-memory AuthRepository with unique usernames.
type fakeAuthRepo struct {
	nextID int64
	users  map[int64]models.User
	hashes map[int64]string
}

func newFakeAuthRepo(users ...models.User) *fakeAuthRepo {
	repo := &fakeAuthRepo{nextID: 1, users: map[int64]models.User{}, hashes: map[int64]string{}}
	for _, user := range users {
		repo.users[user.ID] = user
		if user.ID >= repo.nextID {
			repo.nextID = user.ID + 1
		}
	}
	return repo
}

func (r *fakeAuthRepo) CreateUser(_ repositories.SQLExecutor, user *models.User, hashedPassword string) (int64, error) {
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return 0, repositories.ErrDuplicateKey
		}
	}
	user.ID = r.nextID
	r.nextID++
	user.IsActive = true
	r.users[user.ID] = *user
	r.hashes[user.ID] = hashedPassword
	return user.ID, nil
}

func (r *fakeAuthRepo) FindUserByUsername(username string) (*models.User, string, error) {
	for id, user := range r.users {
		if user.Username == username {
			return &user, r.hashes[id], nil
		}
	}
	return nil, "", repositories.ErrNotFound
}

func (r *fakeAuthRepo) FindUserByID(userID int64) (*models.User, error) {
	user, ok := r.users[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &user, nil
}

func (r *fakeAuthRepo) GetWorkers() ([]models.User, error) {
	workers := []models.User{}
	for id := int64(1); id < r.nextID; id++ {
		if user, ok := r.users[id]; ok && user.Role == models.RoleWorker {
			workers = append(workers, user)
		}
	}
	return workers, nil
}

func (r *fakeAuthRepo) ManagerExists() (bool, error) {
	for _, user := range r.users {
		if user.Role == models.RoleManager {
			return true, nil
		}
	}
	return false, nil
}

// fakeNotifier records notifications and can be told to fail.
type fakeNotifier struct {
	mu    sync.Mutex
	fail  bool
	calls []string
}

func (n *fakeNotifier) NotifyNewShift(workerName, date, timeIn, timeOut string, carUsed bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, workerName+" "+date+" "+timeIn+"-"+timeOut)
	if n.fail {
		return errors.New("smtp unreachable")
	}
	return nil
}

func (n *fakeNotifier) callCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}
