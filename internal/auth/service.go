package auth

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/reader/internal/config"
	"github.com/mrlokans/reader/internal/entities"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserExists         = errors.New("user already exists")
	ErrAccountLocked      = errors.New("account is temporarily locked")
	ErrInvalidUsername    = errors.New("username must be 3-100 characters of letters, digits, dots, dashes or underscores")
	ErrInvalidEmail       = errors.New("invalid email address")
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9._-]{3,100}$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// MaxFailedLogins is the number of consecutive failed attempts before
// an account is locked for the configured lockout duration.
const MaxFailedLogins = 5

type Service struct {
	db  *gorm.DB
	cfg config.Auth
}

func NewService(db *gorm.DB, cfg config.Auth) *Service {
	return &Service{db: db, cfg: cfg}
}

// IsEnabled reports whether requests must be authenticated.
func (s *Service) IsEnabled() bool {
	return s.cfg.Mode == config.AuthModeLocal
}

// HasUsers reports whether any account exists. Used to decide whether
// the initial setup endpoint is still open.
func (s *Service) HasUsers() (bool, error) {
	var count int64
	if err := s.db.Model(&entities.User{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	return count > 0, nil
}

func (s *Service) CreateUser(username, email, password string, role entities.UserRole) (*entities.User, error) {
	if !usernameRe.MatchString(username) {
		return nil, ErrInvalidUsername
	}
	if !emailRe.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	hash, err := HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		var existing entities.User
		if s.db.Where("username = ? OR email = ?", username, email).First(&existing).Error == nil {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate verifies credentials and maintains the lockout counter.
// A locked account fails fast without touching the password hash.
func (s *Service) Authenticate(username, password string) (*entities.User, error) {
	var user entities.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Equalize timing with the found-user path.
			CheckPassword(password, "$2a$12$000000000000000000000uGyEkuRTJ7gmUmqUXzLM5qsP1Kz5a6W")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	now := time.Now()
	if user.LockedUntil != nil && user.LockedUntil.After(now) {
		return nil, ErrAccountLocked
	}

	if !CheckPassword(password, user.PasswordHash) {
		updates := map[string]any{"failed_login_count": user.FailedLoginCount + 1}
		if user.FailedLoginCount+1 >= MaxFailedLogins {
			lockedUntil := now.Add(s.cfg.LockoutDuration)
			updates["locked_until"] = lockedUntil
			updates["failed_login_count"] = 0
		}
		s.db.Model(&user).Updates(updates)
		return nil, ErrInvalidCredentials
	}

	s.db.Model(&user).Updates(map[string]any{
		"failed_login_count": 0,
		"locked_until":       nil,
		"last_login_at":      now,
	})
	return &user, nil
}

func (s *Service) GetUserByID(id uint) (*entities.User, error) {
	var user entities.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return &user, nil
}
