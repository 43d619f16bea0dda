package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/syncura360/api/internal/config"
	"github.com/syncura360/api/internal/domain"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrWrongScope   = errors.New("token used outside its scope")
)

type tokenScope string

const (
	scopeAccess  tokenScope = "access"
	scopeRefresh tokenScope = "refresh"
)

type jwtClaims struct {
	HospitalID uint        `json:"hospital_id"`
	Role       domain.Role `json:"role"`
	Scope      tokenScope  `json:"scope"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies signed JWT pairs. Access tokens carry the
// caller's hospital and role so handlers never re-read them from storage.
type TokenManager struct {
	secret          []byte
	issuer          string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

func NewTokenManager(cfg config.JWTConfig) *TokenManager {
	return &TokenManager{
		secret:          []byte(cfg.Secret),
		issuer:          cfg.Issuer,
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
	}
}

func (m *TokenManager) GeneratePair(username string, hospitalID uint, role domain.Role) (*domain.TokenPair, error) {
	access, err := m.generate(username, hospitalID, role, scopeAccess, m.accessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("generating access token: %w", err)
	}

	refresh, err := m.generate(username, hospitalID, role, scopeRefresh, m.refreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("generating refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().UTC().Add(m.accessTokenTTL),
		TokenType:    "Bearer",
	}, nil
}

func (m *TokenManager) generate(username string, hospitalID uint, role domain.Role, scope tokenScope, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwtClaims{
		HospitalID: hospitalID,
		Role:       role,
		Scope:      scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// VerifyAccess validates an access token and returns its claims.
func (m *TokenManager) VerifyAccess(tokenString string) (*domain.Claims, error) {
	return m.verify(tokenString, scopeAccess)
}

// VerifyRefresh validates a refresh token and returns its claims.
func (m *TokenManager) VerifyRefresh(tokenString string) (*domain.Claims, error) {
	return m.verify(tokenString, scopeRefresh)
}

func (m *TokenManager) verify(tokenString string, want tokenScope) (*domain.Claims, error) {
	var claims jwtClaims

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithExpirationRequired())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Scope != want {
		return nil, ErrWrongScope
	}

	return &domain.Claims{
		Username:   claims.Subject,
		HospitalID: claims.HospitalID,
		Role:       claims.Role,
	}, nil
}
