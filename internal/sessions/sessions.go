// Package sessions maps client context ids to their auth services and expires
// contexts that stay idle for too long.
package sessions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/AMULYA007-hub/campus-hire/internal/durable"
	"github.com/AMULYA007-hub/campus-hire/internal/lib/sl"
	"github.com/AMULYA007-hub/campus-hire/internal/metrics"
	"github.com/AMULYA007-hub/campus-hire/internal/models"
	"github.com/AMULYA007-hub/campus-hire/internal/services/auth"
)

// ErrSessionExpired is returned by Touch for a context idle longer than the
// inactivity timeout. The context is logged out when it is reported.
var ErrSessionExpired = errors.New("session expired")

type entry struct {
	svc      *auth.Service
	lastSeen time.Time
}

// Registry holds one auth.Service per client context.
type Registry struct {
	log      *slog.Logger
	accounts auth.AccountStore
	store    durable.Store
	timeout  time.Duration
	opts     []auth.Option
	now      func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
}

// New creates a Registry. Every service it builds gets opts.
func New(log *slog.Logger, accounts auth.AccountStore, store durable.Store, timeout time.Duration, opts ...auth.Option) *Registry {
	return &Registry{
		log:      log,
		accounts: accounts,
		store:    store,
		timeout:  timeout,
		opts:     opts,
		now:      time.Now,
		entries:  make(map[string]*entry),
	}
}

// SetClock replaces the time source.
func (r *Registry) SetClock(now func() time.Time) {
	r.mu.Lock()
	r.now = now
	r.mu.Unlock()
}

// Open returns the service of context id, restoring it from durable storage
// when it is not in memory. It does not check for expiry.
func (r *Registry) Open(ctx context.Context, id string) *auth.Service {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.open(ctx, id).svc
}

func (r *Registry) open(ctx context.Context, id string) *entry {
	e, ok := r.entries[id]
	if !ok {
		svc := auth.New(ctx, r.log.With(slog.String("context_id", id)), r.accounts,
			durable.Prefixed(r.store, durable.ContextPrefix(id)), r.opts...)
		e = &entry{svc: svc}
		r.entries[id] = e
		metrics.ActiveSessions.Set(float64(len(r.entries)))
	}
	e.lastSeen = r.now()
	return e
}

// Touch marks context id as active and returns its service. A context idle
// longer than the timeout is logged out and ErrSessionExpired returned.
func (r *Registry) Touch(ctx context.Context, id string) (*auth.Service, error) {
	const op = "sessions.Touch"

	r.mu.Lock()
	if e, ok := r.entries[id]; ok && r.expired(e) {
		delete(r.entries, id)
		metrics.ActiveSessions.Set(float64(len(r.entries)))
		r.mu.Unlock()

		r.logout(ctx, id, e.svc)
		return nil, fmt.Errorf("%s: %w", op, ErrSessionExpired)
	}
	e := r.open(ctx, id)
	r.mu.Unlock()
	return e.svc, nil
}

// Close logs out context id and forgets it.
func (r *Registry) Close(ctx context.Context, id string) error {
	const op = "sessions.Close"

	r.mu.Lock()
	e := r.open(ctx, id)
	delete(r.entries, id)
	metrics.ActiveSessions.Set(float64(len(r.entries)))
	r.mu.Unlock()

	if err := e.svc.Logout(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Sweep logs out and drops every expired context. It returns how many were dropped.
func (r *Registry) Sweep(ctx context.Context) int {
	r.mu.Lock()
	expired := make(map[string]*entry)
	for id, e := range r.entries {
		if r.expired(e) {
			expired[id] = e
			delete(r.entries, id)
		}
	}
	metrics.ActiveSessions.Set(float64(len(r.entries)))
	r.mu.Unlock()

	for id, e := range expired {
		r.logout(ctx, id, e.svc)
	}
	return len(expired)
}

// Login opens context id and logs it in. A context that fails to log in is
// forgotten again unless it already held a session.
func (r *Registry) Login(ctx context.Context, id, email, pass string, role models.Role) (*models.Profile, error) {
	const op = "sessions.Login"

	svc := r.Open(ctx, id)
	profile, err := svc.Login(ctx, email, pass, role)
	if err != nil {
		if svc.Current() == nil {
			r.forget(id)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return profile, nil
}

// Session touches context id and returns its logged in profile.
func (r *Registry) Session(ctx context.Context, id string) (*models.Profile, error) {
	const op = "sessions.Session"

	svc, err := r.Touch(ctx, id)
	if err != nil {
		return nil, err
	}
	profile := svc.Current()
	if profile == nil {
		r.forget(id)
		return nil, fmt.Errorf("%s: %w", op, auth.ErrNoSession)
	}
	return profile, nil
}

// UpdateProfile edits the session profile of context id.
func (r *Registry) UpdateProfile(ctx context.Context, id string, upd auth.ProfileUpdate) (*models.Profile, error) {
	const op = "sessions.UpdateProfile"

	profile, err := r.Open(ctx, id).UpdateProfile(ctx, upd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return profile, nil
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(ctx); n > 0 {
				r.log.Info("expired idle sessions", slog.Int("count", n))
			}
		}
	}
}

// Len returns the number of contexts held in memory.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry) forget(id string) {
	r.mu.Lock()
	delete(r.entries, id)
	metrics.ActiveSessions.Set(float64(len(r.entries)))
	r.mu.Unlock()
}

func (r *Registry) expired(e *entry) bool {
	return r.timeout > 0 && r.now().Sub(e.lastSeen) > r.timeout
}

func (r *Registry) logout(ctx context.Context, id string, svc *auth.Service) {
	if err := svc.Logout(ctx); err != nil {
		r.log.Error("failed to log out expired session", slog.String("context_id", id), sl.Err(err))
	}
}
