package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/pkozlowski/bookstore/pkg/errors"
)

func TestManager_GenerateAndParse(t *testing.T) {
	m := NewManager("test-secret", 2*time.Hour, 7*24*time.Hour)

	pair, err := m.GenerateToken(201, "admin@example.com", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(7200), pair.ExpiresIn)

	claims, err := m.ParseToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(201), claims.StaffID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Nickname)
	assert.Equal(t, "bookstore", claims.Issuer)
}

func TestManager_ParseExpiredToken(t *testing.T) {
	m := NewManager("test-secret", -time.Minute, 7*24*time.Hour)

	pair, err := m.GenerateToken(201, "admin@example.com", "admin")
	require.NoError(t, err)

	_, err = m.ParseToken(pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestManager_ParseWrongSecret(t *testing.T) {
	m := NewManager("test-secret", 2*time.Hour, 7*24*time.Hour)
	other := NewManager("other-secret", 2*time.Hour, 7*24*time.Hour)

	pair, err := m.GenerateToken(201, "admin@example.com", "admin")
	require.NoError(t, err)

	_, err = other.ParseToken(pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestManager_ParseGarbage(t *testing.T) {
	m := NewManager("test-secret", 2*time.Hour, 7*24*time.Hour)

	_, err := m.ParseToken("not.a.token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestManager_RefreshAccessToken(t *testing.T) {
	m := NewManager("test-secret", 2*time.Hour, 7*24*time.Hour)

	pair, err := m.GenerateToken(201, "admin@example.com", "admin")
	require.NoError(t, err)

	access, err := m.RefreshAccessToken(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := m.ParseToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint(201), claims.StaffID)
}
