package services

import (
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/models"
	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/repositories"
	"github.com/fdepaulajodaracuna-max/CamarerosHoras/pkg/utils"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameExists     = errors.New("username already exists")
	ErrTokenGeneration    = errors.New("failed to generate token")
)

// RegisterUserRequest is the payload for worker self-registration. New
// accounts are always workers; the manager account is seeded from config.
type RegisterUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the payload for login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned on successful login.
type AuthResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
}

// AuthService handles registration, login and profile lookups.
type AuthService interface {
	RegisterUser(req RegisterUserRequest) (*models.User, error)
	LoginUser(req LoginRequest) (*AuthResponse, error)
	GetUserProfile(userID int64) (*models.User, error)
	EnsureDefaultManager(username, password string) error
}

type authService struct {
	authRepo repositories.AuthRepository
	db       *sql.DB
}

// NewAuthService creates a new AuthService.
func NewAuthService(authRepo repositories.AuthRepository, db *sql.DB) AuthService {
	return &authService{authRepo: authRepo, db: db}
}

func (s *authService) RegisterUser(req RegisterUserRequest) (*models.User, error) {
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username: req.Username,
		Role:     models.RoleWorker,
	}

	userID, err := s.authRepo.CreateUser(s.db, &user, string(hashedPasswordBytes))
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrUsernameExists
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	registered, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		// The account exists but the read back failed; return what we know.
		user.ID = userID
		return &user, fmt.Errorf("user registered but failed to retrieve details: %w", err)
	}
	return registered, nil
}

func (s *authService) LoginUser(req LoginRequest) (*AuthResponse, error) {
	user, storedHash, err := s.authRepo.FindUserByUsername(req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}

	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := utils.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	return &AuthResponse{User: user, AccessToken: accessToken}, nil
}

func (s *authService) GetUserProfile(userID int64) (*models.User, error) {
	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to retrieve user profile: %w", err)
	}
	return user, nil
}

// EnsureDefaultManager creates the manager account on first startup so the
// system is usable out of the box. It does nothing when a manager already
// exists or when no default password is configured.
func (s *authService) EnsureDefaultManager(username, password string) error {
	exists, err := s.authRepo.ManagerExists()
	if err != nil {
		return fmt.Errorf("failed to check for existing manager: %w", err)
	}
	if exists {
		return nil
	}
	if password == "" {
		utils.LogWarn("No manager account exists and DEFAULT_MANAGER_PASSWORD is not set; skipping seed")
		return nil
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash manager password: %w", err)
	}

	manager := models.User{Username: username, Role: models.RoleManager}
	if _, err := s.authRepo.CreateUser(s.db, &manager, string(hashedPasswordBytes)); err != nil {
		return fmt.Errorf("failed to seed manager account: %w", err)
	}
	utils.LogInfo("Default manager account created", map[string]interface{}{"username": username})
	return nil
}
