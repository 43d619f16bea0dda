package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/syncura360/api/internal/domain"
	"github.com/syncura360/api/internal/domain/staff"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountLocked      = errors.New("account temporarily locked after repeated failures")
)

const (
	maxLoginFailures = 5
	lockoutDuration  = 15 * time.Minute
)

type tokenIssuer interface {
	GeneratePair(username string, hospitalID uint, role domain.Role) (*domain.TokenPair, error)
	VerifyRefresh(token string) (*domain.Claims, error)
}

type loginFailures struct {
	count       int
	lockedUntil time.Time
}

// AuthService verifies credentials and issues token pairs. Lockout state is
// in-memory per instance; it throttles online guessing, it is not a
// distributed ban list.
type AuthService struct {
	staff   staff.Repository
	tokens  tokenIssuer
	audit   *AuditService
	log     *zap.Logger
	metrics loginMetrics

	mu       sync.Mutex
	failures map[string]*loginFailures
}

type loginMetrics interface {
	LoginOutcome(outcome string)
}

func NewAuthService(staffRepo staff.Repository, tokens tokenIssuer, audit *AuditService, log *zap.Logger, m loginMetrics) *AuthService {
	return &AuthService{
		staff:    staffRepo,
		tokens:   tokens,
		audit:    audit,
		log:      log,
		metrics:  m,
		failures: make(map[string]*loginFailures),
	}
}

func (s *AuthService) Login(ctx context.Context, username, password, ip string) (*domain.TokenPair, error) {
	if s.isLocked(username) {
		s.metrics.LoginOutcome("locked")
		return nil, ErrAccountLocked
	}

	member, err := s.staff.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, staff.ErrStaffNotFound) {
			// Burn a comparison so unknown usernames cost the same as bad
			// passwords.
			_ = bcrypt.CompareHashAndPassword(
				[]byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"),
				[]byte(password),
			)
			s.recordFailure(username)
			s.metrics.LoginOutcome("failure")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)); err != nil {
		s.recordFailure(username)
		s.metrics.LoginOutcome("failure")
		s.audit.Record(domain.AuditLog{
			Username:     username,
			HospitalID:   member.HospitalID,
			UserRole:     member.Role,
			IPAddress:    ip,
			Action:       domain.ActionLogin,
			ResourceType: "session",
			Changes:      `{"outcome":"failure"}`,
		})
		return nil, ErrInvalidCredentials
	}

	s.clearFailures(username)

	pair, err := s.tokens.GeneratePair(member.Username, member.HospitalID, member.Role)
	if err != nil {
		return nil, err
	}

	s.metrics.LoginOutcome("success")
	s.audit.Record(domain.AuditLog{
		Username:     username,
		HospitalID:   member.HospitalID,
		UserRole:     member.Role,
		IPAddress:    ip,
		Action:       domain.ActionLogin,
		ResourceType: "session",
		Changes:      `{"outcome":"success"}`,
	})
	s.log.Info("login", zap.String("username", username), zap.Uint("hospital_id", member.HospitalID))
	return pair, nil
}

// Refresh exchanges a valid refresh token for a fresh pair. The staff record
// is re-read so a deleted or demoted account cannot keep minting tokens.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	member, err := s.staff.GetByUsername(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, staff.ErrStaffNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return s.tokens.GeneratePair(member.Username, member.HospitalID, member.Role)
}

func (s *AuthService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return &ValidationError{Fields: map[string]string{"newPassword": "must be at least 8 characters"}}
	}

	member, err := s.staff.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.staff.UpdatePassword(ctx, username, string(hash)); err != nil {
		return err
	}

	s.log.Info("password changed", zap.String("username", username))
	return nil
}

func (s *AuthService) isLocked(username string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.failures[username]
	if !ok {
		return false
	}
	if f.lockedUntil.IsZero() {
		return false
	}
	if timeNow().After(f.lockedUntil) {
		delete(s.failures, username)
		return false
	}
	return true
}

func (s *AuthService) recordFailure(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.failures[username]
	if !ok {
		f = &loginFailures{}
		s.failures[username] = f
	}
	f.count++
	if f.count >= maxLoginFailures {
		f.lockedUntil = timeNow().Add(lockoutDuration)
		s.log.Warn("account locked",
			zap.String("username", username),
			zap.Time("until", f.lockedUntil),
		)
	}
}

func (s *AuthService) clearFailures(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, username)
}
