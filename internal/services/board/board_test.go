package board_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/AMULYA007-hub/campus-hire/internal/events"
	"github.com/AMULYA007-hub/campus-hire/internal/metrics"
	"github.com/AMULYA007-hub/campus-hire/internal/models"
	"github.com/AMULYA007-hub/campus-hire/internal/services/board"
	"github.com/AMULYA007-hub/campus-hire/internal/storage"
	"github.com/AMULYA007-hub/campus-hire/internal/storage/memory"
)

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(ctx context.Context, key string, data any) {
	m.Called(ctx, key, data)
}

func noopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newBoard(t *testing.T, opts ...board.Option) (*board.Service, *PublisherMock) {
	t.Helper()
	pub := new(PublisherMock)
	store := memory.New(memory.WithSeed(memory.DemoSeed()))
	return board.New(noopLogger(), store, pub, opts...), pub
}

func ids(jobs []models.Job) []int64 {
	out := make([]int64, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func TestService_SearchJobs(t *testing.T) {
	svc, _ := newBoard(t)

	tests := []struct {
		name   string
		filter models.JobFilter
		want   []int64
	}{
		{name: "no filter", filter: models.JobFilter{}, want: []int64{1, 2, 3, 4, 5}},
		{name: "query matches company and description", filter: models.JobFilter{Query: "CLOUD"}, want: []int64{2, 4}},
		{name: "query matches title", filter: models.JobFilter{Query: "developer"}, want: []int64{1, 2, 3}},
		{name: "all skills required", filter: models.JobFilter{Skills: []string{"python", "Docker"}}, want: []int64{3}},
		{name: "location", filter: models.JobFilter{Location: "bangalore"}, want: []int64{1, 5}},
		{name: "combined", filter: models.JobFilter{Query: "developer", Location: "Pune"}, want: []int64{2}},
		{name: "status", filter: models.JobFilter{Status: models.JobClosed}, want: []int64{}},
		{name: "no match", filter: models.JobFilter{Query: "astronaut"}, want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs, err := svc.SearchJobs(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(jobs))
		})
	}
}

func TestService_AddJobPublishes(t *testing.T) {
	svc, pub := newBoard(t)
	pub.On("Publish", mock.Anything, events.JobCreated, mock.MatchedBy(func(j models.Job) bool {
		return j.ID == 6 && j.Title == "SRE"
	})).Once()

	before := testutil.ToFloat64(metrics.BoardOperations.WithLabelValues("board.AddJob", metrics.OutcomeSuccess))
	job, err := svc.AddJob(context.Background(), models.JobInput{Title: "SRE", Company: "Ops Inc"})
	require.NoError(t, err)
	assert.Equal(t, int64(6), job.ID)
	pub.AssertExpectations(t)

	after := testutil.ToFloat64(metrics.BoardOperations.WithLabelValues("board.AddJob", metrics.OutcomeSuccess))
	assert.InDelta(t, 1, after-before, 0)

	jobs, err := svc.Jobs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{6, 1, 2, 3, 4, 5}, ids(jobs))
}

func TestService_ApplyJob(t *testing.T) {
	ctx := context.Background()
	svc, pub := newBoard(t)
	pub.On("Publish", mock.Anything, events.ApplicationCreated, mock.AnythingOfType("models.Application")).Once()

	app, err := svc.ApplyJob(ctx, 4, models.StudentInfo{StudentID: "s-1", Resume: "cv.pdf"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusApplied, app.Status)

	job, err := svc.Job(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, 19, job.Applicants)

	before := testutil.ToFloat64(metrics.BoardOperations.WithLabelValues("board.ApplyJob", metrics.OutcomeFailure))
	_, err = svc.ApplyJob(ctx, 4, models.StudentInfo{StudentID: "s-1"})
	assert.ErrorIs(t, err, storage.ErrAlreadyApplied)
	_, err = svc.ApplyJob(ctx, 99, models.StudentInfo{StudentID: "s-1"})
	assert.ErrorIs(t, err, storage.ErrJobNotFound)
	after := testutil.ToFloat64(metrics.BoardOperations.WithLabelValues("board.ApplyJob", metrics.OutcomeFailure))
	assert.InDelta(t, 2, after-before, 0)

	pub.AssertExpectations(t)
}

func TestService_Latency(t *testing.T) {
	svc, pub := newBoard(t, board.WithLatency(time.Hour))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := svc.AddPlacement(ctx, models.PlacementInput{StudentName: "A", CompanyName: "B", Position: "C"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	_, err = svc.ApplyJob(ctx, 1, models.StudentInfo{StudentID: "s-1"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	placements, err := svc.Placements(context.Background())
	require.NoError(t, err)
	assert.Len(t, placements, 2)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_ApplicationsByStudent(t *testing.T) {
	ctx := context.Background()
	svc, pub := newBoard(t)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything)

	_, err := svc.ApplyJob(ctx, 5, models.StudentInfo{StudentID: "other"})
	require.NoError(t, err)

	all, err := svc.Applications(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	mine, err := svc.Applications(ctx, "2")
	require.NoError(t, err)
	assert.Len(t, mine, 3)
	for _, a := range mine {
		assert.Equal(t, "2", a.StudentID)
	}
}

func TestService_UpdateApplicationStatus(t *testing.T) {
	ctx := context.Background()
	svc, pub := newBoard(t)
	pub.On("Publish", mock.Anything, events.ApplicationStatusChanged, mock.MatchedBy(func(a models.Application) bool {
		return a.ID == 1 && a.Status == models.StatusShortlisted
	})).Once()

	app, err := svc.UpdateApplicationStatus(ctx, 1, models.StatusShortlisted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusShortlisted, app.Status)

	_, err = svc.UpdateApplicationStatus(ctx, 1, "pending")
	assert.ErrorIs(t, err, storage.ErrInvalidStatus)
	_, err = svc.UpdateApplicationStatus(ctx, 42, models.StatusHired)
	assert.ErrorIs(t, err, storage.ErrApplicationNotFound)
	pub.AssertExpectations(t)
}

func TestService_LinkAccount(t *testing.T) {
	ctx := context.Background()
	svc, pub := newBoard(t)
	pub.On("Publish", mock.Anything, events.AccountRegistered, mock.Anything).Once()

	svc.LinkAccount(ctx, models.Profile{ID: "acc-1", Name: "Ann", Email: "a@b.co", Role: models.RoleOfficer})

	users, err := svc.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 5)
	last := users[4]
	assert.Equal(t, "Ann", last.Name)
	assert.Equal(t, models.RoleOfficer, last.Role)
	assert.Equal(t, models.UserActive, last.Status)
	pub.AssertExpectations(t)
}

type RepositoryMock struct {
	board.Repository
	mock.Mock
}

func (m *RepositoryMock) Jobs(ctx context.Context) ([]models.Job, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Job), args.Error(1)
}

func (m *RepositoryMock) DeleteUser(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestService_RepositoryErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset")
	repo := new(RepositoryMock)
	repo.On("Jobs", mock.Anything).Return(nil, boom).Once()
	repo.On("DeleteUser", mock.Anything, int64(3)).Return(boom).Once()

	svc := board.New(noopLogger(), repo, nil)

	_, err := svc.SearchJobs(ctx, models.JobFilter{Query: "x"})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "board.SearchJobs")

	before := testutil.ToFloat64(metrics.BoardOperations.WithLabelValues("board.DeleteUser", metrics.OutcomeError))
	err = svc.DeleteUser(ctx, 3)
	assert.ErrorIs(t, err, boom)
	after := testutil.ToFloat64(metrics.BoardOperations.WithLabelValues("board.DeleteUser", metrics.OutcomeError))
	assert.InDelta(t, 1, after-before, 0)

	repo.AssertExpectations(t)
}
