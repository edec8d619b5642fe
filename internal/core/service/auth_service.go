package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/nexaa/auth-service/internal/api/metrics"
	"github.com/nexaa/auth-service/internal/core/domain"
	"github.com/nexaa/auth-service/internal/core/ports"
)

const defaultMinPasswordLen = 6

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// SignInThrottle limits repeated failed sign-ins per email. Throttle errors
// fail open: an unavailable throttle store must not lock everyone out.
type SignInThrottle interface {
	Allow(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuditSink receives auth events for asynchronous persistence.
type AuditSink interface {
	Enqueue(event domain.AuthEvent)
}

// AuthService implements sign-up, sign-in, and stateless token validation.
// Each request is independent; the service holds no mutable state.
type AuthService struct {
	repo        ports.UserRepository
	tokens      ports.TokenIssuer
	throttle    SignInThrottle // optional
	audit       AuditSink      // optional
	minPassword int
	log         zerolog.Logger
}

// Option configures optional AuthService collaborators.
type Option func(*AuthService)

// WithThrottle wires a failed-sign-in throttle.
func WithThrottle(t SignInThrottle) Option {
	return func(s *AuthService) { s.throttle = t }
}

// WithAuditSink wires an audit event sink.
func WithAuditSink(a AuditSink) Option {
	return func(s *AuthService) { s.audit = a }
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenIssuer, minPasswordLen int, log zerolog.Logger, opts ...Option) *AuthService {
	if minPasswordLen <= 0 {
		minPasswordLen = defaultMinPasswordLen
	}
	s := &AuthService{
		repo:        repo,
		tokens:      tokens,
		minPassword: minPasswordLen,
		log:         log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignUp validates input, checks uniqueness, hashes the password, and persists
// the new user with the default USER role. No token is issued; registration
// does not authenticate.
func (s *AuthService) SignUp(ctx context.Context, username, email, password string) (*domain.User, error) {
	if err := validateSignUp(username, email, password, s.minPassword); err != nil {
		metrics.SignupsTotal.WithLabelValues("rejected_validation").Inc()
		return nil, err
	}

	// Pre-checks give the caller a precise error; the unique indexes are the
	// authority under concurrent sign-ups.
	if taken, err := s.repo.ExistsByEmail(ctx, email); err != nil {
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return nil, err
	} else if taken {
		metrics.SignupsTotal.WithLabelValues("rejected_duplicate").Inc()
		return nil, domain.ErrEmailTaken
	}
	if taken, err := s.repo.ExistsByUsername(ctx, username); err != nil {
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return nil, err
	} else if taken {
		metrics.SignupsTotal.WithLabelValues("rejected_duplicate").Inc()
		return nil, domain.ErrUsernameTaken
	}

	start := time.Now()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	metrics.PasswordHashDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Roles:        []string{domain.RoleUser},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) || errors.Is(err, domain.ErrEmailTaken) {
			// Lost the race against a concurrent sign-up; the index verdict
			// is authoritative.
			metrics.SignupsTotal.WithLabelValues("rejected_duplicate").Inc()
			return nil, err
		}
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.SignupsTotal.WithLabelValues("created").Inc()
	s.record(domain.AuthEventSignUp, created.ID, created.Email)
	s.log.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user registered")

	return created, nil
}

// SignIn authenticates by email and password and issues a bearer token.
// An unknown email and a wrong password produce the identical rejection so
// account existence is not revealed.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*ports.SignInResult, error) {
	if email == "" || password == "" {
		metrics.SigninsTotal.WithLabelValues("denied").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("throttle check failed, allowing sign-in")
		} else if !allowed {
			metrics.SigninsTotal.WithLabelValues("throttled").Inc()
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, s.deny(ctx, email)
		}
		metrics.SigninsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	start := time.Now()
	mismatch := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	metrics.PasswordHashDuration.Observe(time.Since(start).Seconds())
	if mismatch != nil {
		return nil, s.deny(ctx, email)
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("throttle reset failed")
		}
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Username, user.Roles)
	if err != nil {
		metrics.SigninsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("issue token: %w", err)
	}

	metrics.SigninsTotal.WithLabelValues("ok").Inc()
	s.record(domain.AuthEventSignIn, user.ID, user.Email)
	s.log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("user signed in")

	return &ports.SignInResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Validate delegates to the token verifier. It never touches the credential
// store, so a deleted user's token stays valid until natural expiry.
func (s *AuthService) Validate(token string) (*domain.Claims, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}
	metrics.TokenValidationsTotal.WithLabelValues("valid").Inc()
	return claims, nil
}

// CurrentUser returns the stored record for an authenticated principal.
// Unlike Validate this hits the store, so /auth/me reflects deletions and
// role changes immediately.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// deny records a failed attempt and returns the generic rejection.
func (s *AuthService) deny(ctx context.Context, email string) error {
	if s.throttle != nil {
		if err := s.throttle.RecordFailure(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("throttle record failed")
		}
	}
	metrics.SigninsTotal.WithLabelValues("denied").Inc()
	s.record(domain.AuthEventSignInDenied, "", email)
	return domain.ErrInvalidCredentials
}

func (s *AuthService) record(kind domain.AuthEventKind, userID, email string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(domain.AuthEvent{
		Kind:      kind,
		UserID:    userID,
		Email:     email,
		Timestamp: time.Now().UTC(),
	})
}

func validateSignUp(username, email, password string, minPassword int) error {
	// Length is counted in runes to match the handler-level validation.
	if l := utf8.RuneCountInString(username); l < domain.UsernameMinLen || l > domain.UsernameMaxLen {
		return fmt.Errorf("%w: username must be %d-%d characters", domain.ErrInvalidInput, domain.UsernameMinLen, domain.UsernameMaxLen)
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: email must be a valid address", domain.ErrInvalidInput)
	}
	if len(password) < minPassword {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPassword)
	}
	return nil
}
