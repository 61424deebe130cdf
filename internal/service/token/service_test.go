package token

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/devsp0007/restaurant-management/internal/models"
)

func newTestService(t *testing.T) *TokenService {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.RefreshToken{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return &TokenService{
		DB:            db,
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}
}

func TestSignAccessToken(t *testing.T) {
	ts := newTestService(t)

	raw, err := SignAccessToken(7, "alice@example.com", "customer", ts.JWTSecret)
	require.NoError(t, err)

	parsed, err := jwt.Parse(raw, func(j *jwt.Token) (interface{}, error) { return ts.JWTSecret, nil })
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims := parsed.Claims.(jwt.MapClaims)
	require.Equal(t, float64(7), claims["sub"])
	require.Equal(t, "alice@example.com", claims["email"])
	require.Equal(t, "customer", claims["role"])
}

func TestRotateToken(t *testing.T) {
	ts := newTestService(t)

	refresh, err := SignRefreshToken(7, "alice@example.com", "customer", ts.RefreshSecret)
	require.NoError(t, err)
	require.NoError(t, SaveRefreshToken(ts.DB, refresh, 7))

	newAccess, newRefresh, err := ts.RotateToken(refresh)
	require.NoError(t, err)
	require.NotEmpty(t, newAccess)
	require.NotEmpty(t, newRefresh)
	require.NotEqual(t, refresh, newRefresh)

	// The old refresh token is revoked and cannot rotate again.
	var old models.RefreshToken
	require.NoError(t, ts.DB.Where("token = ?", refresh).First(&old).Error)
	require.True(t, old.Revoked)

	_, _, err = ts.RotateToken(refresh)
	require.Error(t, err)

	// The replacement still works.
	_, _, err = ts.RotateToken(newRefresh)
	require.NoError(t, err)
}

func TestRotateRejectsAccessToken(t *testing.T) {
	ts := newTestService(t)

	access, err := SignAccessToken(7, "alice@example.com", "customer", ts.RefreshSecret)
	require.NoError(t, err)

	_, _, err = ts.RotateToken(access)
	require.Error(t, err, "access tokens must not pass refresh validation")
}
