// Package memory is the in-process data store of jobs, applications,
// placements and the user directory. One mutex guards all four collections so
// that ApplyJob inserts the application and bumps the job counter atomically.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/AMULYA007-hub/campus-hire/internal/models"
	"github.com/AMULYA007-hub/campus-hire/internal/storage"
)

type counters struct {
	job, application, placement, user int64
}

// Store keeps recency feeds (jobs, applications, placements) newest first and
// the user roster in insertion order.
type Store struct {
	mu           sync.RWMutex
	jobs         []models.Job
	applications []models.Application
	placements   []models.Placement
	users        []models.User
	last         counters
	now          func() time.Time
}

type Option func(*Store)

// WithClock overrides the source of "today".
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithSeed loads d and moves every id counter past the seeded ids.
func WithSeed(d Seed) Option {
	return func(s *Store) {
		s.jobs = slices.Clone(d.Jobs)
		s.applications = slices.Clone(d.Applications)
		s.placements = slices.Clone(d.Placements)
		s.users = slices.Clone(d.Users)
		for _, j := range d.Jobs {
			s.last.job = max(s.last.job, j.ID)
		}
		for _, a := range d.Applications {
			s.last.application = max(s.last.application, a.ID)
		}
		for _, p := range d.Placements {
			s.last.placement = max(s.last.placement, p.ID)
		}
		for _, u := range d.Users {
			s.last.user = max(s.last.user, u.ID)
		}
	}
}

// New returns an empty store; WithSeed preloads it.
func New(opts ...Option) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) today() string {
	return models.Today(s.now())
}

func checkCtx(ctx context.Context, op string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
		return nil
	}
}

// cloneJob copies the skills; a job never carries nil skills.
func cloneJob(j models.Job) models.Job {
	j.Skills = append([]string{}, j.Skills...)
	return j
}

// ===== JOBS =====

// AddJob stores a new active job with no applicants.
func (s *Store) AddJob(ctx context.Context, in models.JobInput) (models.Job, error) {
	const op = "memory.AddJob"
	if err := checkCtx(ctx, op); err != nil {
		return models.Job{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.last.job++
	job := models.Job{
		ID:          s.last.job,
		Title:       in.Title,
		Company:     in.Company,
		Salary:      in.Salary,
		Location:    in.Location,
		Description: in.Description,
		Skills:      append([]string{}, in.Skills...),
		Posted:      s.today(),
		Deadline:    in.Deadline,
		Applicants:  0,
		Status:      models.JobActive,
	}
	s.jobs = slices.Insert(s.jobs, 0, job)
	return cloneJob(job), nil
}

// UpdateJob applies the non-nil fields of patch to the job.
func (s *Store) UpdateJob(ctx context.Context, id int64, patch models.JobPatch) (models.Job, error) {
	const op = "memory.UpdateJob"
	if err := checkCtx(ctx, op); err != nil {
		return models.Job{}, err
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return models.Job{}, fmt.Errorf("%s: %w", op, storage.ErrInvalidStatus)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.jobIndex(id)
	if idx < 0 {
		return models.Job{}, fmt.Errorf("%s: %w", op, storage.ErrJobNotFound)
	}
	patch.Apply(&s.jobs[idx])
	return cloneJob(s.jobs[idx]), nil
}

// DeleteJob removes the job; its applications stay.
func (s *Store) DeleteJob(ctx context.Context, id int64) error {
	const op = "memory.DeleteJob"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.jobIndex(id)
	if idx < 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrJobNotFound)
	}
	s.jobs = slices.Delete(s.jobs, idx, idx+1)
	return nil
}

// Job returns a copy of the job with the given id.
func (s *Store) Job(ctx context.Context, id int64) (models.Job, error) {
	const op = "memory.Job"
	if err := checkCtx(ctx, op); err != nil {
		return models.Job{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.jobIndex(id)
	if idx < 0 {
		return models.Job{}, fmt.Errorf("%s: %w", op, storage.ErrJobNotFound)
	}
	return cloneJob(s.jobs[idx]), nil
}

// Jobs returns all jobs, newest first.
func (s *Store) Jobs(ctx context.Context) ([]models.Job, error) {
	const op = "memory.Jobs"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Job, len(s.jobs))
	for i, j := range s.jobs {
		out[i] = cloneJob(j)
	}
	return out, nil
}

func (s *Store) jobIndex(id int64) int {
	return slices.IndexFunc(s.jobs, func(j models.Job) bool { return j.ID == id })
}

// ===== APPLICATIONS =====

// ApplyJob records the application and increments the job's applicant count
// under one lock.
func (s *Store) ApplyJob(ctx context.Context, jobID int64, info models.StudentInfo) (models.Application, error) {
	const op = "memory.ApplyJob"
	if err := checkCtx(ctx, op); err != nil {
		return models.Application{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.jobIndex(jobID)
	if idx < 0 {
		return models.Application{}, fmt.Errorf("%s: %w", op, storage.ErrJobNotFound)
	}
	if slices.ContainsFunc(s.applications, func(a models.Application) bool {
		return a.JobID == jobID && a.StudentID == info.StudentID
	}) {
		return models.Application{}, fmt.Errorf("%s: %w", op, storage.ErrAlreadyApplied)
	}

	s.last.application++
	app := models.Application{
		ID:        s.last.application,
		StudentID: info.StudentID,
		JobID:     jobID,
		Status:    models.StatusApplied,
		Date:      s.today(),
		Resume:    info.Resume,
	}
	s.applications = slices.Insert(s.applications, 0, app)
	s.jobs[idx].Applicants++
	return app, nil
}

// UpdateApplicationStatus overwrites the status without checking the transition.
func (s *Store) UpdateApplicationStatus(ctx context.Context, id int64, status models.ApplicationStatus) (models.Application, error) {
	const op = "memory.UpdateApplicationStatus"
	if err := checkCtx(ctx, op); err != nil {
		return models.Application{}, err
	}
	if !status.Valid() {
		return models.Application{}, fmt.Errorf("%s: %w", op, storage.ErrInvalidStatus)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.applicationIndex(id)
	if idx < 0 {
		return models.Application{}, fmt.Errorf("%s: %w", op, storage.ErrApplicationNotFound)
	}
	s.applications[idx].Status = status
	return s.applications[idx], nil
}

// Application returns a copy of the application with the given id.
func (s *Store) Application(ctx context.Context, id int64) (models.Application, error) {
	const op = "memory.Application"
	if err := checkCtx(ctx, op); err != nil {
		return models.Application{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.applicationIndex(id)
	if idx < 0 {
		return models.Application{}, fmt.Errorf("%s: %w", op, storage.ErrApplicationNotFound)
	}
	return s.applications[idx], nil
}

// Applications returns all applications, newest first.
func (s *Store) Applications(ctx context.Context) ([]models.Application, error) {
	const op = "memory.Applications"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.applications), nil
}

func (s *Store) applicationIndex(id int64) int {
	return slices.IndexFunc(s.applications, func(a models.Application) bool { return a.ID == id })
}

// ===== PLACEMENTS =====

// AddPlacement records a new placement.
func (s *Store) AddPlacement(ctx context.Context, in models.PlacementInput) (models.Placement, error) {
	const op = "memory.AddPlacement"
	if err := checkCtx(ctx, op); err != nil {
		return models.Placement{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.last.placement++
	p := models.Placement{
		ID:          s.last.placement,
		StudentName: in.StudentName,
		CompanyName: in.CompanyName,
		Position:    in.Position,
		Salary:      in.Salary,
		Date:        s.today(),
	}
	s.placements = slices.Insert(s.placements, 0, p)
	return p, nil
}

// Placements returns all placements, newest first.
func (s *Store) Placements(ctx context.Context) ([]models.Placement, error) {
	const op = "memory.Placements"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.placements), nil
}

// ===== USERS =====

// AddUser stores a new active user.
func (s *Store) AddUser(ctx context.Context, in models.UserInput) (models.User, error) {
	const op = "memory.AddUser"
	if err := checkCtx(ctx, op); err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.last.user++
	u := models.User{
		ID:       s.last.user,
		Name:     in.Name,
		Email:    in.Email,
		Role:     in.Role,
		Status:   models.UserActive,
		JoinDate: s.today(),
	}
	s.users = append(s.users, u)
	return u, nil
}

// DeleteUser removes the user with the given id.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	const op = "memory.DeleteUser"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.users, func(u models.User) bool { return u.ID == id })
	if idx < 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}
	s.users = slices.Delete(s.users, idx, idx+1)
	return nil
}

// Users returns all users in insertion order.
func (s *Store) Users(ctx context.Context) ([]models.User, error) {
	const op = "memory.Users"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.users), nil
}
