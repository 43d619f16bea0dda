package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syncura360/api/internal/config"
	"github.com/syncura360/api/internal/domain"
)

func newTestManager(accessTTL time.Duration) *TokenManager {
	return NewTokenManager(config.JWTConfig{
		Secret:          "test-secret-that-is-long-enough",
		Issuer:          "syncura-test",
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: 24 * time.Hour,
	})
}

func TestGenerateAndVerify(t *testing.T) {
	m := newTestManager(15 * time.Minute)

	pair, err := m.GeneratePair("doc1", 7, domain.RoleDoctor)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)

	claims, err := m.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "doc1", claims.Username)
	assert.Equal(t, uint(7), claims.HospitalID)
	assert.Equal(t, domain.RoleDoctor, claims.Role)

	claims, err = m.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "doc1", claims.Username)
}

func TestScopeIsEnforced(t *testing.T) {
	m := newTestManager(15 * time.Minute)

	pair, err := m.GeneratePair("doc1", 7, domain.RoleDoctor)
	require.NoError(t, err)

	_, err = m.VerifyAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrWrongScope)

	_, err = m.VerifyRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrWrongScope)
}

func TestExpiredToken(t *testing.T) {
	m := newTestManager(-time.Minute)

	pair, err := m.GeneratePair("doc1", 7, domain.RoleDoctor)
	require.NoError(t, err)

	_, err = m.VerifyAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestForeignSignature(t *testing.T) {
	m := newTestManager(15 * time.Minute)
	other := NewTokenManager(config.JWTConfig{
		Secret:          "a-completely-different-secret!!",
		Issuer:          "syncura-test",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})

	pair, err := other.GeneratePair("doc1", 7, domain.RoleDoctor)
	require.NoError(t, err)

	_, err = m.VerifyAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestWrongIssuer(t *testing.T) {
	m := newTestManager(15 * time.Minute)
	other := NewTokenManager(config.JWTConfig{
		Secret:          "test-secret-that-is-long-enough",
		Issuer:          "someone-else",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})

	pair, err := other.GeneratePair("doc1", 7, domain.RoleDoctor)
	require.NoError(t, err)

	_, err = m.VerifyAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGarbageToken(t *testing.T) {
	m := newTestManager(15 * time.Minute)

	_, err := m.VerifyAccess("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
