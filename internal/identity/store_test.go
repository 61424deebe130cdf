package identity

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/devsp0007/restaurant-management/internal/models"
	"github.com/devsp0007/restaurant-management/internal/session"
)

func newTestStore(t *testing.T) *Store {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return &Store{DB: db}
}

func TestCreateUser(t *testing.T) {
	s := newTestStore(t)

	user, err := s.CreateUser("alice@example.com", "9990001111", "secret", session.RoleCustomer)
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, session.RoleCustomer, user.Role)
	require.NotEqual(t, "secret", user.PasswordHash, "plaintext must never be stored")

	_, err = s.CreateUser("", "123", "pw", session.RoleCustomer)
	require.ErrorIs(t, err, ErrInvalidUser)

	_, err = s.CreateUser("x@example.com", "123", "pw", "waiter")
	require.ErrorIs(t, err, ErrInvalidUser)
}

func TestCreateUserDuplicateIdentity(t *testing.T) {
	s := newTestStore(t)

	first, err := s.CreateUser("alice@example.com", "9990001111", "secret", session.RoleCustomer)
	require.NoError(t, err)

	// Same email, different mobile.
	_, err = s.CreateUser("alice@example.com", "8880002222", "other", session.RoleCustomer)
	require.ErrorIs(t, err, ErrDuplicateIdentity)

	// Same mobile, different email.
	_, err = s.CreateUser("alice2@example.com", "9990001111", "other", session.RoleCustomer)
	require.ErrorIs(t, err, ErrDuplicateIdentity)

	// The existing record is untouched.
	var stored models.User
	require.NoError(t, s.DB.First(&stored, first.ID).Error)
	require.Equal(t, first.Email, stored.Email)
	require.Equal(t, first.PasswordHash, stored.PasswordHash)

	var count int64
	s.DB.Model(&models.User{}).Count(&count)
	require.Equal(t, int64(1), count)
}

func TestAuthenticate(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateUser("alice@example.com", "9990001111", "secret", session.RoleAdmin)
	require.NoError(t, err)

	byEmail, err := s.Authenticate("alice@example.com", "secret")
	require.NoError(t, err)
	require.Equal(t, session.RoleAdmin, byEmail.Role)

	byMobile, err := s.Authenticate("9990001111", "secret")
	require.NoError(t, err)
	require.Equal(t, byEmail.ID, byMobile.ID)

	// Unknown identifier and wrong password fail the same way.
	_, wrongPw := s.Authenticate("alice@example.com", "nope")
	_, unknown := s.Authenticate("nobody@example.com", "secret")
	require.ErrorIs(t, wrongPw, ErrAuthFailure)
	require.ErrorIs(t, unknown, ErrAuthFailure)
	require.Equal(t, wrongPw, unknown)
}
