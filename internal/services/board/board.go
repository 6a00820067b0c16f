// Package board is the shared placement board: jobs, applications,
// placements and the user directory. It wraps a storage backend with search,
// notifications, metrics and the configurable store delay.
package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/AMULYA007-hub/campus-hire/internal/events"
	"github.com/AMULYA007-hub/campus-hire/internal/lib/sl"
	"github.com/AMULYA007-hub/campus-hire/internal/metrics"
	"github.com/AMULYA007-hub/campus-hire/internal/models"
	"github.com/AMULYA007-hub/campus-hire/internal/storage"
)

// Repository is the storage backend. memory.Store and postgresql.Storage
// implement it.
type Repository interface {
	AddJob(ctx context.Context, in models.JobInput) (models.Job, error)
	UpdateJob(ctx context.Context, id int64, patch models.JobPatch) (models.Job, error)
	DeleteJob(ctx context.Context, id int64) error
	Job(ctx context.Context, id int64) (models.Job, error)
	Jobs(ctx context.Context) ([]models.Job, error)

	ApplyJob(ctx context.Context, jobID int64, info models.StudentInfo) (models.Application, error)
	UpdateApplicationStatus(ctx context.Context, id int64, status models.ApplicationStatus) (models.Application, error)
	Application(ctx context.Context, id int64) (models.Application, error)
	Applications(ctx context.Context) ([]models.Application, error)

	AddPlacement(ctx context.Context, in models.PlacementInput) (models.Placement, error)
	Placements(ctx context.Context) ([]models.Placement, error)

	AddUser(ctx context.Context, in models.UserInput) (models.User, error)
	DeleteUser(ctx context.Context, id int64) error
	Users(ctx context.Context) ([]models.User, error)
}

// Service is the board used by the HTTP handlers.
type Service struct {
	log       *slog.Logger
	repo      Repository
	publisher events.Publisher
	latency   time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithLatency delays ApplyJob and AddPlacement by d.
func WithLatency(d time.Duration) Option {
	return func(s *Service) { s.latency = d }
}

// New creates a Service. A nil publisher drops events.
func New(log *slog.Logger, repo Repository, publisher events.Publisher, opts ...Option) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	s := &Service{
		log:       log,
		repo:      repo,
		publisher: publisher,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var domainErrors = []error{
	storage.ErrJobNotFound,
	storage.ErrApplicationNotFound,
	storage.ErrUserNotFound,
	storage.ErrAlreadyApplied,
	storage.ErrInvalidStatus,
}

func (s *Service) observe(ctx context.Context, op string, err error) {
	switch {
	case err == nil:
		metrics.BoardOperations.WithLabelValues(op, metrics.OutcomeSuccess).Inc()
	case slices.ContainsFunc(domainErrors, func(target error) bool { return errors.Is(err, target) }):
		metrics.BoardOperations.WithLabelValues(op, metrics.OutcomeFailure).Inc()
	default:
		metrics.BoardOperations.WithLabelValues(op, metrics.OutcomeError).Inc()
		s.log.ErrorContext(ctx, "board operation failed", slog.String("op", op), sl.Err(err))
	}
}

func (s *Service) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
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

// ===== JOBS =====

// AddJob creates a job and publishes a job-created event.
func (s *Service) AddJob(ctx context.Context, in models.JobInput) (models.Job, error) {
	const op = "board.AddJob"
	job, err := s.repo.AddJob(ctx, in)
	s.observe(ctx, op, err)
	if err != nil {
		return models.Job{}, fmt.Errorf("%s: %w", op, err)
	}
	s.publisher.Publish(ctx, events.JobCreated, job)
	return job, nil
}

// UpdateJob patches a job.
func (s *Service) UpdateJob(ctx context.Context, id int64, patch models.JobPatch) (models.Job, error) {
	const op = "board.UpdateJob"
	job, err := s.repo.UpdateJob(ctx, id, patch)
	s.observe(ctx, op, err)
	if err != nil {
		return models.Job{}, fmt.Errorf("%s: %w", op, err)
	}
	return job, nil
}

// DeleteJob removes a job.
func (s *Service) DeleteJob(ctx context.Context, id int64) error {
	const op = "board.DeleteJob"
	err := s.repo.DeleteJob(ctx, id)
	s.observe(ctx, op, err)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Job returns a single job.
func (s *Service) Job(ctx context.Context, id int64) (models.Job, error) {
	const op = "board.Job"
	job, err := s.repo.Job(ctx, id)
	if err != nil {
		return models.Job{}, fmt.Errorf("%s: %w", op, err)
	}
	return job, nil
}

// Jobs lists every job.
func (s *Service) Jobs(ctx context.Context) ([]models.Job, error) {
	return s.SearchJobs(ctx, models.JobFilter{})
}

// SearchJobs returns the jobs matching f in store order. Query matches title,
// company and description case-insensitively; every skill in f must be listed
// on the job.
func (s *Service) SearchJobs(ctx context.Context, f models.JobFilter) ([]models.Job, error) {
	const op = "board.SearchJobs"
	jobs, err := s.repo.Jobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return slices.DeleteFunc(jobs, func(j models.Job) bool { return !matches(j, f) }), nil
}

func matches(j models.Job, f models.JobFilter) bool {
	if f.Status != "" && j.Status != f.Status {
		return false
	}
	if f.Location != "" && !containsFold(j.Location, f.Location) {
		return false
	}
	if q := strings.TrimSpace(f.Query); q != "" &&
		!containsFold(j.Title, q) && !containsFold(j.Company, q) && !containsFold(j.Description, q) {
		return false
	}
	for _, want := range f.Skills {
		if !slices.ContainsFunc(j.Skills, func(have string) bool { return strings.EqualFold(have, want) }) {
			return false
		}
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// ===== APPLICATIONS =====

// ApplyJob files an application for a student after the configured latency.
func (s *Service) ApplyJob(ctx context.Context, jobID int64, info models.StudentInfo) (models.Application, error) {
	const op = "board.ApplyJob"
	if err := s.wait(ctx); err != nil {
		return models.Application{}, fmt.Errorf("%s: %w", op, err)
	}
	app, err := s.repo.ApplyJob(ctx, jobID, info)
	s.observe(ctx, op, err)
	if err != nil {
		return models.Application{}, fmt.Errorf("%s: %w", op, err)
	}
	s.publisher.Publish(ctx, events.ApplicationCreated, app)
	return app, nil
}

// UpdateApplicationStatus moves an application to a new status.
func (s *Service) UpdateApplicationStatus(ctx context.Context, id int64, status models.ApplicationStatus) (models.Application, error) {
	const op = "board.UpdateApplicationStatus"
	app, err := s.repo.UpdateApplicationStatus(ctx, id, status)
	s.observe(ctx, op, err)
	if err != nil {
		return models.Application{}, fmt.Errorf("%s: %w", op, err)
	}
	s.publisher.Publish(ctx, events.ApplicationStatusChanged, app)
	return app, nil
}

// Application returns a single application.
func (s *Service) Application(ctx context.Context, id int64) (models.Application, error) {
	const op = "board.Application"
	app, err := s.repo.Application(ctx, id)
	if err != nil {
		return models.Application{}, fmt.Errorf("%s: %w", op, err)
	}
	return app, nil
}

// Applications returns every application, or only those of studentID when it
// is not empty.
func (s *Service) Applications(ctx context.Context, studentID string) ([]models.Application, error) {
	const op = "board.Applications"
	apps, err := s.repo.Applications(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if studentID == "" {
		return apps, nil
	}
	return slices.DeleteFunc(apps, func(a models.Application) bool { return a.StudentID != studentID }), nil
}

// ===== PLACEMENTS =====

// AddPlacement records a placement.
func (s *Service) AddPlacement(ctx context.Context, in models.PlacementInput) (models.Placement, error) {
	const op = "board.AddPlacement"
	if err := s.wait(ctx); err != nil {
		return models.Placement{}, fmt.Errorf("%s: %w", op, err)
	}
	p, err := s.repo.AddPlacement(ctx, in)
	s.observe(ctx, op, err)
	if err != nil {
		return models.Placement{}, fmt.Errorf("%s: %w", op, err)
	}
	s.publisher.Publish(ctx, events.PlacementCreated, p)
	return p, nil
}

// Placements lists every placement.
func (s *Service) Placements(ctx context.Context) ([]models.Placement, error) {
	const op = "board.Placements"
	ps, err := s.repo.Placements(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

// ===== USERS =====

// AddUser creates a user from the admin console.
func (s *Service) AddUser(ctx context.Context, in models.UserInput) (models.User, error) {
	const op = "board.AddUser"
	u, err := s.repo.AddUser(ctx, in)
	s.observe(ctx, op, err)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// DeleteUser removes a user.
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	const op = "board.DeleteUser"
	err := s.repo.DeleteUser(ctx, id)
	s.observe(ctx, op, err)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Users lists every user.
func (s *Service) Users(ctx context.Context) ([]models.User, error) {
	const op = "board.Users"
	users, err := s.repo.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// LinkAccount adds a directory entry for a newly registered account and
// announces the registration. Failures are logged only.
func (s *Service) LinkAccount(ctx context.Context, p models.Profile) {
	const op = "board.LinkAccount"
	user, err := s.AddUser(ctx, models.UserInput{Name: p.Name, Email: p.Email, Role: p.Role})
	if err != nil {
		s.log.ErrorContext(ctx, "failed to add directory user", slog.String("op", op), sl.Err(err))
		return
	}
	s.publisher.Publish(ctx, events.AccountRegistered, struct {
		AccountID string      `json:"accountId"`
		UserID    int64       `json:"userId"`
		Email     string      `json:"email"`
		Role      models.Role `json:"role"`
	}{p.ID, user.ID, p.Email, p.Role})
}
