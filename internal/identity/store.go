package identity

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/devsp0007/restaurant-management/internal/hash"
	"github.com/devsp0007/restaurant-management/internal/models"
	"github.com/devsp0007/restaurant-management/internal/session"
)

var (
	ErrDuplicateIdentity = errors.New("email or mobile already registered")
	// ErrAuthFailure deliberately covers both an unknown identifier and a
	// wrong password, so callers cannot enumerate registered identities.
	ErrAuthFailure = errors.New("invalid credentials")
	ErrInvalidUser = errors.New("email, mobile and password are required")
)

type Store struct {
	DB *gorm.DB
}

func (s *Store) CreateUser(email, mobile, password, role string) (models.User, error) {
	if email == "" || mobile == "" || password == "" {
		return models.User{}, ErrInvalidUser
	}
	if !session.ValidRole(role) {
		return models.User{}, fmt.Errorf("%w: unknown role %q", ErrInvalidUser, role)
	}

	var existing models.User
	err := s.DB.Where("email = ? OR mobile = ?", email, mobile).First(&existing).Error
	if err == nil {
		return models.User{}, ErrDuplicateIdentity
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, err
	}

	digest, err := hash.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Email:        email,
		Mobile:       mobile,
		PasswordHash: digest,
		Role:         role,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Authenticate looks the user up by email or mobile and verifies the digest.
func (s *Store) Authenticate(identifier, password string) (models.User, error) {
	var user models.User
	if err := s.DB.Where("email = ? OR mobile = ?", identifier, identifier).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrAuthFailure
		}
		return models.User{}, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return models.User{}, ErrAuthFailure
	}
	return user, nil
}
