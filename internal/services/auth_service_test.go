package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/models"
	"github.com/fdepaulajodaracuna-max/CamarerosHoras/pkg/utils"
)

func authServiceSetup(t *testing.T) (AuthService, *fakeAuthRepo) {
	t.Helper()
	utils.InitJWT("test-secret", time.Hour)
	repo := newFakeAuthRepo()
	return NewAuthService(repo, nil), repo
}

func TestRegisterUser_CreatesWorker(t *testing.T) {
	svc, _ := authServiceSetup(t)

	user, err := svc.RegisterUser(RegisterUserRequest{Username: "maria", Password: "secret-pass"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleWorker, user.Role)
	assert.Empty(t, user.PasswordHash)
}

func TestRegisterUser_DuplicateUsername(t *testing.T) {
	svc, _ := authServiceSetup(t)

	_, err := svc.RegisterUser(RegisterUserRequest{Username: "maria", Password: "secret-pass"})
	require.NoError(t, err)

	_, err = svc.RegisterUser(RegisterUserRequest{Username: "maria", Password: "another-pass"})
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestLoginUser_RoundTrip(t *testing.T) {
	svc, _ := authServiceSetup(t)

	_, err := svc.RegisterUser(RegisterUserRequest{Username: "maria", Password: "secret-pass"})
	require.NoError(t, err)

	resp, err := svc.LoginUser(LoginRequest{Username: "maria", Password: "secret-pass"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)

	claims, err := utils.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "maria", claims.Username)
	assert.Equal(t, models.RoleWorker, claims.Role)
}

func TestLoginUser_WrongPassword(t *testing.T) {
	svc, _ := authServiceSetup(t)

	_, err := svc.RegisterUser(RegisterUserRequest{Username: "maria", Password: "secret-pass"})
	require.NoError(t, err)

	_, err = svc.LoginUser(LoginRequest{Username: "maria", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUser_UnknownUser(t *testing.T) {
	svc, _ := authServiceSetup(t)

	_, err := svc.LoginUser(LoginRequest{Username: "ghost", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestEnsureDefaultManager_SeedsOnce(t *testing.T) {
	svc, repo := authServiceSetup(t)

	require.NoError(t, svc.EnsureDefaultManager("admin", "boss-secret"))

	exists, err := repo.ManagerExists()
	require.NoError(t, err)
	assert.True(t, exists)

	// Second call is a no-op, not a duplicate.
	require.NoError(t, svc.EnsureDefaultManager("admin", "boss-secret"))
	count := 0
	for _, user := range repo.users {
		if user.Role == models.RoleManager {
			count++
		}
	}
	assert.Equal(t, 1, count)

	// The seeded manager can log in.
	resp, err := svc.LoginUser(LoginRequest{Username: "admin", Password: "boss-secret"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleManager, resp.User.Role)
}

func TestEnsureDefaultManager_SkipsWithoutPassword(t *testing.T) {
	svc, repo := authServiceSetup(t)

	require.NoError(t, svc.EnsureDefaultManager("admin", ""))
	exists, err := repo.ManagerExists()
	require.NoError(t, err)
	assert.False(t, exists)
}
