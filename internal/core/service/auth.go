// Package service provides domain services for authgate.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/authgate-io/authgate/internal/core/domain"
	"github.com/authgate-io/authgate/internal/telemetry/logger"
	"github.com/authgate-io/authgate/internal/telemetry/metric"
)

// TokenRepository defines the storage interface for token operations.
type TokenRepository interface {
	// Get retrieves a token record by hash.
	Get(ctx context.Context, hash string) (*domain.Token, error)

	// Create stores a new token record.
	Create(ctx context.Context, tok *domain.Token) error

	// Update replaces an existing record if the stored version matches
	// expectedVersion.
	Update(ctx context.Context, tok *domain.Token, expectedVersion uint64) error

	// Delete removes a token record by hash.
	Delete(ctx context.Context, hash string) error

	// Count returns the number of records currently held.
	Count() int

	// DeleteExpired removes records whose renewal window has closed.
	DeleteExpired(ctx context.Context, now time.Time, window time.Duration) int
}

// Config holds configuration for AuthService.
type Config struct {
	// TokenTTL is the validity period of issued tokens.
	TokenTTL time.Duration

	// RenewWindow is the renewal window, measured from the current
	// issuance time of a token. Expired tokens presented inside the
	// window are renewed; outside it they are removed.
	RenewWindow time.Duration

	// MaxRenewals caps how many times a token may be renewed.
	// Zero means unlimited.
	MaxRenewals int

	// LoginRate is the sustained per-username login attempt rate.
	LoginRate rate.Limit

	// LoginBurst is the per-username login attempt burst.
	LoginBurst int

	// Clock overrides the time source, mainly for tests.
	Clock func() time.Time
}

// DefaultConfig returns default AuthService configuration.
func DefaultConfig() Config {
	return Config{
		TokenTTL:    domain.DefaultTokenTTL,
		RenewWindow: domain.DefaultRenewWindow,
		LoginRate:   rate.Limit(1),
		LoginBurst:  5,
	}
}

// AuthService issues and validates bearer tokens.
type AuthService struct {
	creds         *domain.CredentialStore
	tokens        TokenRepository
	ttl           time.Duration
	renewWindow   time.Duration
	maxRenewals   int
	loginLimiters *RateLimiterRegistry
	loginRate     rate.Limit
	loginBurst    int
	now           func() time.Time
	metrics       *metric.Registry
	log           logger.Logger

	// decoyHash is verified for unknown usernames so that lookup
	// misses cost the same as password mismatches.
	decoyHash string
}

// NewAuthService creates a new AuthService.
func NewAuthService(creds *domain.CredentialStore, tokens TokenRepository, cfg Config, metrics *metric.Registry, log logger.Logger) (*AuthService, error) {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = domain.DefaultTokenTTL
	}
	if cfg.RenewWindow <= 0 {
		cfg.RenewWindow = domain.DefaultRenewWindow
	}
	if cfg.LoginRate <= 0 {
		cfg.LoginRate = rate.Limit(1)
	}
	if cfg.LoginBurst <= 0 {
		cfg.LoginBurst = 5
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if log == nil {
		log = logger.Default()
	}

	decoy, err := domain.HashPassword("authgate-decoy-password")
	if err != nil {
		return nil, domain.ErrInternalServer.WithCause(err)
	}

	return &AuthService{
		creds:         creds,
		tokens:        tokens,
		ttl:           cfg.TokenTTL,
		renewWindow:   cfg.RenewWindow,
		maxRenewals:   cfg.MaxRenewals,
		loginLimiters: NewRateLimiterRegistry(),
		loginRate:     cfg.LoginRate,
		loginBurst:    cfg.LoginBurst,
		now:           cfg.Clock,
		metrics:       metrics,
		log:           log,
		decoyHash:     decoy,
	}, nil
}

// LoginResult contains the outcome of a successful login.
type LoginResult struct {
	// Token is the plaintext bearer token, returned to the client once.
	Token string

	// ExpiresAt is the token expiry as a Unix timestamp in seconds.
	ExpiresAt int64

	// Roles is the role set snapshotted at issuance.
	Roles []string
}

// Login verifies a username/password pair and issues a fresh token.
//
// Failures are indistinguishable to the caller: unknown usernames and
// wrong passwords both return ErrInvalidCredentials, and unknown
// usernames still pay for an argon2 verification.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	limiter := s.loginLimiters.GetOrCreate(username, s.loginRate, s.loginBurst)
	if !limiter.Allow() {
		s.log.WithContext(ctx).Warn("login throttled", "username", username)
		return nil, domain.ErrRateLimited
	}

	cred, ok := s.creds.Lookup(username)
	if !ok {
		domain.VerifyPassword(password, s.decoyHash)
		s.metrics.ObserveLogin(false)
		s.log.WithContext(ctx).Info("login failed", "username", username)
		return nil, domain.ErrInvalidCredentials
	}

	if !domain.VerifyPassword(password, cred.PasswordHash) {
		s.metrics.ObserveLogin(false)
		s.log.WithContext(ctx).Info("login failed", "username", username)
		return nil, domain.ErrInvalidCredentials
	}

	roles := cred.RoleSnapshot()
	plaintext, rec, err := domain.NewToken(username, roles, s.now(), s.ttl)
	if err != nil {
		return nil, domain.ErrInternalServer.WithCause(err)
	}

	if err := s.tokens.Create(ctx, rec); err != nil {
		// A hash collision on 256 random bits means the generator
		// misbehaved; one retry covers the theoretical duplicate.
		if !errors.Is(err, domain.ErrTokenConflict) {
			return nil, err
		}
		plaintext, rec, err = domain.NewToken(username, roles, s.now(), s.ttl)
		if err != nil {
			return nil, domain.ErrInternalServer.WithCause(err)
		}
		if err := s.tokens.Create(ctx, rec); err != nil {
			return nil, err
		}
	}

	s.metrics.ObserveLogin(true)
	s.log.WithContext(ctx).Info("login succeeded",
		"username", username,
		"roles", strings.Join(roles, ","),
		"expires_at", rec.ExpiresAt,
	)

	return &LoginResult{
		Token:     plaintext,
		ExpiresAt: rec.ExpiresAt,
		Roles:     roles,
	}, nil
}

// ValidateResult contains the outcome of a successful token validation.
type ValidateResult struct {
	// Username is the identity bound to the token.
	Username string

	// Roles is the role set snapshotted at issuance.
	Roles []string

	// Renewed reports whether this validation renewed the token.
	Renewed bool

	// ExpiresAt is the current expiry as a Unix timestamp in seconds.
	ExpiresAt int64
}

// Validate authenticates an Authorization header value.
//
// An expired token presented inside the renewal window is renewed in
// place: same plaintext, new validity period anchored at the current
// time. Past the window the record is removed and the caller must log
// in again.
func (s *AuthService) Validate(ctx context.Context, authorization string) (*ValidateResult, error) {
	if authorization == "" {
		s.metrics.ObserveValidation(metric.ResultMissing)
		return nil, domain.ErrMissingToken
	}

	// A header not matching the "Bearer <token>" pattern counts as a
	// missing token; ErrInvalidToken is reserved for well-formed tokens
	// the store does not recognize.
	plaintext, ok := strings.CutPrefix(authorization, "Bearer ")
	if !ok || plaintext == "" {
		s.metrics.ObserveValidation(metric.ResultMissing)
		return nil, domain.ErrMissingToken
	}

	if !domain.ValidateTokenFormat(plaintext) {
		s.metrics.ObserveValidation(metric.ResultInvalid)
		return nil, domain.ErrInvalidToken
	}

	hash := domain.HashToken(plaintext)
	now := s.now()

	// One retry absorbs a lost renewal race: the competitor's renewal
	// bumps the version, and the re-read sees an active token.
	for attempt := 0; attempt < 2; attempt++ {
		rec, err := s.tokens.Get(ctx, hash)
		if err != nil {
			s.metrics.ObserveValidation(metric.ResultInvalid)
			return nil, domain.ErrInvalidToken
		}

		if rec.Active(now) {
			s.metrics.ObserveValidation(metric.ResultValid)
			return &ValidateResult{
				Username:  rec.Username,
				Roles:     rec.Roles,
				ExpiresAt: rec.ExpiresAt,
			}, nil
		}

		renewable := rec.Renewable(now, s.renewWindow) &&
			(s.maxRenewals == 0 || rec.Renewals < s.maxRenewals)
		if !renewable {
			if err := s.tokens.Delete(ctx, hash); err != nil && !errors.Is(err, domain.ErrInvalidToken) {
				s.log.WithContext(ctx).Warn("expired token cleanup failed", "error", err)
			}
			s.metrics.ObserveValidation(metric.ResultExpired)
			s.log.WithContext(ctx).Info("token expired past renewal window",
				"username", rec.Username,
				"token", domain.MaskToken(plaintext),
			)
			return nil, domain.ErrTokenExpired
		}

		expected := rec.Version
		rec.Renew(now, s.ttl)
		err = s.tokens.Update(ctx, rec, expected)
		if errors.Is(err, domain.ErrTokenVersionConflict) && attempt == 0 {
			continue
		}
		if err != nil {
			s.metrics.ObserveValidation(metric.ResultInvalid)
			return nil, domain.ErrInvalidToken
		}

		s.metrics.ObserveValidation(metric.ResultRenewed)
		s.log.WithContext(ctx).Info("token renewed",
			"username", rec.Username,
			"token", domain.MaskToken(plaintext),
			"renewals", rec.Renewals,
			"expires_at", rec.ExpiresAt,
		)
		return &ValidateResult{
			Username:  rec.Username,
			Roles:     rec.Roles,
			Renewed:   true,
			ExpiresAt: rec.ExpiresAt,
		}, nil
	}

	s.metrics.ObserveValidation(metric.ResultInvalid)
	return nil, domain.ErrInvalidToken
}

// ActiveTokens returns the number of token records currently held,
// including expired-but-renewable ones.
func (s *AuthService) ActiveTokens() int {
	return s.tokens.Count()
}

// Sweep removes token records whose renewal window has closed and
// returns the number removed.
func (s *AuthService) Sweep(ctx context.Context) int {
	removed := s.tokens.DeleteExpired(ctx, s.now(), s.renewWindow)
	if removed > 0 {
		s.metrics.ObserveSweep(removed)
		s.log.WithContext(ctx).Debug("swept stale tokens", "removed", removed)
	}
	return removed
}
