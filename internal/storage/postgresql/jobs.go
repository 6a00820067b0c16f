package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AMULYA007-hub/campus-hire/internal/models"
	"github.com/AMULYA007-hub/campus-hire/internal/storage"
)

const jobColumns = `id, title, company, salary, location, description, skills, posted, deadline, applicants, status`

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner) (models.Job, error) {
	var (
		job    models.Job
		skills []byte
		posted time.Time
		status string
	)
	if err := row.Scan(&job.ID, &job.Title, &job.Company, &job.Salary, &job.Location, &job.Description,
		&skills, &posted, &job.Deadline, &job.Applicants, &status); err != nil {
		return models.Job{}, err
	}
	if err := json.Unmarshal(skills, &job.Skills); err != nil {
		return models.Job{}, err
	}
	job.Posted = posted.Format(models.DateLayout)
	job.Status = models.JobStatus(status)
	return job, nil
}

func marshalSkills(skills []string) ([]byte, error) {
	if skills == nil {
		skills = []string{}
	}
	return json.Marshal(skills)
}

// AddJob inserts an active job with no applicants.
func (s *Storage) AddJob(ctx context.Context, in models.JobInput) (models.Job, error) {
	const op = "postgresql.AddJob"
	if err := checkCtx(ctx, op); err != nil {
		return models.Job{}, err
	}

	skills, err := marshalSkills(in.Skills)
	if err != nil {
		return models.Job{}, fmt.Errorf("%s: %w", op, err)
	}
	query := `INSERT INTO jobs (title, company, salary, location, description, skills, posted, deadline, applicants, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7::date, $8, 0, 'active')
			  RETURNING ` + jobColumns
	job, err := scanJob(s.DB.QueryRowContext(ctx, query,
		in.Title, in.Company, in.Salary, in.Location, in.Description, skills, s.today(), in.Deadline))
	if err != nil {
		return models.Job{}, fmt.Errorf("%s: %w", op, err)
	}
	return job, nil
}

// UpdateJob reads, merges and writes the row inside one transaction.
func (s *Storage) UpdateJob(ctx context.Context, id int64, patch models.JobPatch) (models.Job, error) {
	const op = "postgresql.UpdateJob"
	if err := checkCtx(ctx, op); err != nil {
		return models.Job{}, err
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return models.Job{}, fmt.Errorf("%s: %w", op, storage.ErrInvalidStatus)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Job{}, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	job, err := scanJob(tx.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Job{}, fmt.Errorf("%s: %w", op, storage.ErrJobNotFound)
	}
	if err != nil {
		return models.Job{}, fmt.Errorf("%s: %w", op, err)
	}

	patch.Apply(&job)
	skills, err := marshalSkills(job.Skills)
	if err != nil {
		return models.Job{}, fmt.Errorf("%s: %w", op, err)
	}
	query := `UPDATE jobs SET title = $2, company = $3, salary = $4, location = $5, description = $6,
			  skills = $7, deadline = $8, status = $9
			  WHERE id = $1`
	if _, err := tx.ExecContext(ctx, query, id, job.Title, job.Company, job.Salary, job.Location,
		job.Description, skills, job.Deadline, string(job.Status)); err != nil {
		return models.Job{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := tx.Commit(); err != nil {
		return models.Job{}, fmt.Errorf("%s: %w", op, err)
	}
	return job, nil
}

// DeleteJob deletes the job with the given id.
func (s *Storage) DeleteJob(ctx context.Context, id int64) error {
	const op = "postgresql.DeleteJob"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrJobNotFound)
	}
	return nil
}

// Job returns the job with the given id.
func (s *Storage) Job(ctx context.Context, id int64) (models.Job, error) {
	const op = "postgresql.Job"
	if err := checkCtx(ctx, op); err != nil {
		return models.Job{}, err
	}

	job, err := scanJob(s.DB.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Job{}, fmt.Errorf("%s: %w", op, storage.ErrJobNotFound)
	}
	if err != nil {
		return models.Job{}, fmt.Errorf("%s: %w", op, err)
	}
	return job, nil
}

// Jobs returns all jobs, newest first.
func (s *Storage) Jobs(ctx context.Context) ([]models.Job, error) {
	const op = "postgresql.Jobs"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	jobs := []models.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return jobs, nil
}
