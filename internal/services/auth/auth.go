// Package auth holds the per-context authentication state: registration,
// login, logout and profile edits of the single logged-in account.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf16"

	"github.com/AMULYA007-hub/campus-hire/internal/durable"
	"github.com/AMULYA007-hub/campus-hire/internal/lib/sl"
	"github.com/AMULYA007-hub/campus-hire/internal/lib/password"
	"github.com/AMULYA007-hub/campus-hire/internal/metrics"
	"github.com/AMULYA007-hub/campus-hire/internal/models"
	"github.com/AMULYA007-hub/campus-hire/internal/storage"
)

// ValidationError is a registration input error. Its message is shown to the
// user as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	ErrMissingFields     = &ValidationError{Message: "all fields are required"}
	ErrInvalidEmail      = &ValidationError{Message: "invalid email format"}
	ErrPasswordTooShort  = &ValidationError{Message: "password must be at least 6 characters"}
	ErrPasswordTooLong   = &ValidationError{Message: "password must be at most 72 bytes"}
	ErrPasswordsMismatch = &ValidationError{Message: "passwords do not match"}

	ErrDuplicateEmail     = storage.ErrDuplicateEmail
	ErrInvalidCredentials = errors.New("invalid email, password, or role")
	ErrNoSession          = errors.New("no active session")
)

const (
	minPasswordLen = 6
	maxPasswordLen = 72 // bcrypt input limit
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AccountStore is the identity store the service registers into and
// authenticates against.
type AccountStore interface {
	FindByCredentials(ctx context.Context, email, pass string, role models.Role) (*models.Account, error)
	Register(ctx context.Context, acc models.Account) (*models.Account, error)
}

// RegisteredHook is called after every successful registration.
type RegisteredHook func(ctx context.Context, profile models.Profile)

// RegisterInput is the sign up form.
type RegisterInput struct {
	Email           string      `json:"email"`
	Password        string      `json:"password"`
	ConfirmPassword string      `json:"confirmPassword"`
	Role            models.Role `json:"role"`
	FullName        string      `json:"fullName"`
	Phone           string      `json:"phone"`
}

// ProfileUpdate lists the profile fields a user may change. Nil fields are
// left as they are.
type ProfileUpdate struct {
	Name        *string         `json:"name,omitempty"`
	Email       *string         `json:"email,omitempty"`
	Phone       *string         `json:"phone,omitempty"`
	RoleProfile json.RawMessage `json:"roleProfile,omitempty"`
}

// Service is the auth state of one client context.
type Service struct {
	log      *slog.Logger
	accounts AccountStore
	store    durable.Store
	latency  time.Duration
	hooks    []RegisteredHook

	mu      sync.Mutex
	session *models.Profile
	lastErr error
	pending atomic.Int32
}

// Option configures a Service.
type Option func(*Service)

// WithLatency delays register and login by d.
func WithLatency(d time.Duration) Option {
	return func(s *Service) { s.latency = d }
}

// WithRegisteredHook adds fn to the hooks run after registration.
func WithRegisteredHook(fn RegisteredHook) Option {
	return func(s *Service) { s.hooks = append(s.hooks, fn) }
}

// New creates a Service and restores the session persisted in store, if any.
// A session that cannot be decoded is dropped.
func New(ctx context.Context, log *slog.Logger, accounts AccountStore, store durable.Store, opts ...Option) *Service {
	const op = "auth.New"

	s := &Service{
		log:      log,
		accounts: accounts,
		store:    store,
	}
	for _, opt := range opts {
		opt(s)
	}

	var profile models.Profile
	ok, err := store.Get(ctx, durable.KeySession, &profile)
	switch {
	case err != nil:
		log.Warn("failed to restore session", slog.String("op", op), sl.Err(err))
		if err := store.Delete(ctx, durable.KeySession); err != nil {
			log.Warn("failed to drop session", slog.String("op", op), sl.Err(err))
		}
	case ok:
		s.session = &profile
	}
	return s
}

// Register validates in and creates a new account. It does not log in.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.Profile, error) {
	const op = "auth.Register"

	s.pending.Add(1)
	defer s.pending.Add(-1)

	profile, err := s.register(ctx, in)
	s.setLastError(err)

	log := s.log.With(slog.String("op", op), slog.String("role", string(in.Role)))
	var verr *ValidationError
	switch {
	case err == nil:
		metrics.AuthAttempts.WithLabelValues("register", metrics.OutcomeSuccess).Inc()
		log.Info("account registered", slog.String("id", profile.ID))
		for _, hook := range s.hooks {
			hook(ctx, *profile)
		}
	case errors.As(err, &verr), errors.Is(err, ErrDuplicateEmail):
		metrics.AuthAttempts.WithLabelValues("register", metrics.OutcomeFailure).Inc()
		log.Debug("registration rejected", sl.Err(err))
	default:
		metrics.AuthAttempts.WithLabelValues("register", metrics.OutcomeError).Inc()
		log.Error("registration failed", sl.Err(err))
	}
	return profile, err
}

func (s *Service) register(ctx context.Context, in RegisterInput) (*models.Profile, error) {
	const op = "auth.register"

	if err := s.wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := validateRegister(in); err != nil {
		return nil, err
	}

	hash, err := password.GetHash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	acc, err := s.accounts.Register(ctx, models.Account{
		Name:         in.FullName,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
		Role:         in.Role,
		RoleProfile:  models.DefaultRoleProfile(in.Role, in.Email),
	})
	if errors.Is(err, storage.ErrDuplicateEmail) {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	profile := acc.Public()
	return &profile, nil
}

// passwordLength counts UTF-16 code units, so characters outside the basic
// multilingual plane count twice.
func passwordLength(pass string) int {
	n := 0
	for _, r := range pass {
		if utf16.RuneLen(r) == 2 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

func validateRegister(in RegisterInput) error {
	if in.Email == "" || in.Password == "" || in.ConfirmPassword == "" ||
		in.FullName == "" || in.Phone == "" || !in.Role.Valid() {
		return ErrMissingFields
	}
	if !emailPattern.MatchString(in.Email) {
		return ErrInvalidEmail
	}
	if passwordLength(in.Password) < minPasswordLen {
		return ErrPasswordTooShort
	}
	if len(in.Password) > maxPasswordLen {
		return ErrPasswordTooLong
	}
	if in.Password != in.ConfirmPassword {
		return ErrPasswordsMismatch
	}
	return nil
}

// Login authenticates the account and makes it the session. On failure the
// previous session, if any, is kept.
func (s *Service) Login(ctx context.Context, email, pass string, role models.Role) (*models.Profile, error) {
	const op = "auth.Login"

	s.pending.Add(1)
	defer s.pending.Add(-1)

	profile, err := s.login(ctx, email, pass, role)
	s.setLastError(err)

	log := s.log.With(slog.String("op", op), slog.String("role", string(role)))
	switch {
	case err == nil:
		metrics.AuthAttempts.WithLabelValues("login", metrics.OutcomeSuccess).Inc()
		log.Info("logged in", slog.String("id", profile.ID))
	case errors.Is(err, ErrInvalidCredentials):
		metrics.AuthAttempts.WithLabelValues("login", metrics.OutcomeFailure).Inc()
		log.Debug("login rejected")
	default:
		metrics.AuthAttempts.WithLabelValues("login", metrics.OutcomeError).Inc()
		log.Error("login failed", sl.Err(err))
	}
	return profile, err
}

func (s *Service) login(ctx context.Context, email, pass string, role models.Role) (*models.Profile, error) {
	const op = "auth.login"

	if err := s.wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	acc, err := s.accounts.FindByCredentials(ctx, email, pass, role)
	if errors.Is(err, storage.ErrAccountNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	profile := acc.Public()
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Set(ctx, durable.KeySession, profile); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.session = &profile
	out := clone(profile)
	return &out, nil
}

// Logout clears the session. It is safe to call without one.
func (s *Service) Logout(ctx context.Context) error {
	const op = "auth.Logout"

	s.mu.Lock()
	defer s.mu.Unlock()

	had := s.session != nil
	s.session = nil
	s.lastErr = nil
	if err := s.store.Delete(ctx, durable.KeySession); err != nil {
		metrics.AuthAttempts.WithLabelValues("logout", metrics.OutcomeError).Inc()
		return fmt.Errorf("%s: %w", op, err)
	}
	if had {
		metrics.AuthAttempts.WithLabelValues("logout", metrics.OutcomeSuccess).Inc()
	}
	return nil
}

// UpdateProfile merges upd into the session and persists it. The id and the
// role never change and only the sub-profile of the session role is merged.
func (s *Service) UpdateProfile(ctx context.Context, upd ProfileUpdate) (*models.Profile, error) {
	const op = "auth.UpdateProfile"

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, ErrNoSession
	}
	next := clone(*s.session)
	if upd.Name != nil {
		next.Name = *upd.Name
	}
	if upd.Email != nil {
		next.Email = *upd.Email
	}
	if upd.Phone != nil {
		next.Phone = *upd.Phone
	}
	if len(upd.RoleProfile) > 0 {
		if err := json.Unmarshal(upd.RoleProfile, &next.RoleProfile); err != nil {
			return nil, fmt.Errorf("%s: %w", op, &ValidationError{Message: "invalid role profile"})
		}
		next.RoleProfile = next.RoleProfile.Only(next.Role)
	}

	if err := s.store.Set(ctx, durable.KeySession, next); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.session = &next
	out := clone(next)
	return &out, nil
}

// Current returns a copy of the session profile or nil when logged out.
func (s *Service) Current() *models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	out := clone(*s.session)
	return &out
}

// LastError returns the error of the last register or login call.
func (s *Service) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Pending reports whether a register or login call is in flight.
func (s *Service) Pending() bool {
	return s.pending.Load() > 0
}

func (s *Service) setLastError(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

func (s *Service) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func clone(p models.Profile) models.Profile {
	p.RoleProfile = p.RoleProfile.Clone()
	return p
}
