package auth

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/reader/internal/config"
	"github.com/mrlokans/reader/internal/entities"
)

func setupTestService(t *testing.T) *Service {
	t.Helper()
	dbPath := "./test_auth_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.User{}))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		os.Remove(dbPath)
	})

	cfg := config.Auth{
		Mode:            config.AuthModeLocal,
		BcryptCost:      4,
		LockoutDuration: 30 * time.Minute,
	}
	return NewService(db, cfg)
}

func TestService_CreateUser(t *testing.T) {
	t.Run("creates a valid user", func(t *testing.T) {
		svc := setupTestService(t)

		user, err := svc.CreateUser("alice", "alice@example.com", "correct-horse-battery", entities.UserRoleReader)
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.Equal(t, "alice", user.Username)
		assert.NotEqual(t, "correct-horse-battery", user.PasswordHash)
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		svc := setupTestService(t)

		_, err := svc.CreateUser("alice", "alice@example.com", "correct-horse-battery", entities.UserRoleReader)
		require.NoError(t, err)

		_, err = svc.CreateUser("alice", "other@example.com", "correct-horse-battery", entities.UserRoleReader)
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("rejects invalid username", func(t *testing.T) {
		svc := setupTestService(t)

		_, err := svc.CreateUser("a!", "alice@example.com", "correct-horse-battery", entities.UserRoleReader)
		assert.ErrorIs(t, err, ErrInvalidUsername)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		svc := setupTestService(t)

		_, err := svc.CreateUser("alice", "not-an-email", "correct-horse-battery", entities.UserRoleReader)
		assert.ErrorIs(t, err, ErrInvalidEmail)
	})

	t.Run("rejects short password", func(t *testing.T) {
		svc := setupTestService(t)

		_, err := svc.CreateUser("alice", "alice@example.com", "short", entities.UserRoleReader)
		assert.Error(t, err)
	})
}

func TestService_Authenticate(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		svc := setupTestService(t)
		_, err := svc.CreateUser("alice", "alice@example.com", "correct-horse-battery", entities.UserRoleReader)
		require.NoError(t, err)

		user, err := svc.Authenticate("alice", "correct-horse-battery")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := setupTestService(t)
		_, err := svc.CreateUser("alice", "alice@example.com", "correct-horse-battery", entities.UserRoleReader)
		require.NoError(t, err)

		_, err = svc.Authenticate("alice", "wrong-password-here")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := setupTestService(t)

		_, err := svc.Authenticate("nobody", "correct-horse-battery")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("locks account after repeated failures", func(t *testing.T) {
		svc := setupTestService(t)
		_, err := svc.CreateUser("alice", "alice@example.com", "correct-horse-battery", entities.UserRoleReader)
		require.NoError(t, err)

		for i := 0; i < MaxFailedLogins; i++ {
			_, err = svc.Authenticate("alice", "wrong-password-here")
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		}

		_, err = svc.Authenticate("alice", "correct-horse-battery")
		assert.ErrorIs(t, err, ErrAccountLocked)
	})

	t.Run("success resets the failure counter", func(t *testing.T) {
		svc := setupTestService(t)
		created, err := svc.CreateUser("alice", "alice@example.com", "correct-horse-battery", entities.UserRoleReader)
		require.NoError(t, err)

		_, err = svc.Authenticate("alice", "wrong-password-here")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = svc.Authenticate("alice", "correct-horse-battery")
		require.NoError(t, err)

		user, err := svc.GetUserByID(created.ID)
		require.NoError(t, err)
		assert.Zero(t, user.FailedLoginCount)
		assert.NotNil(t, user.LastLoginAt)
	})
}

func TestService_HasUsers(t *testing.T) {
	svc := setupTestService(t)

	has, err := svc.HasUsers()
	require.NoError(t, err)
	assert.False(t, has)

	_, err = svc.CreateUser("alice", "alice@example.com", "correct-horse-battery", entities.UserRoleAdmin)
	require.NoError(t, err)

	has, err = svc.HasUsers()
	require.NoError(t, err)
	assert.True(t, has)
}
