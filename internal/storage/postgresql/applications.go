package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AMULYA007-hub/campus-hire/internal/models"
	"github.com/AMULYA007-hub/campus-hire/internal/storage"
)

const applicationColumns = `id, student_id, job_id, status, date, resume`

func scanApplication(row scanner) (models.Application, error) {
	var (
		app    models.Application
		status string
		date   time.Time
	)
	if err := row.Scan(&app.ID, &app.StudentID, &app.JobID, &status, &date, &app.Resume); err != nil {
		return models.Application{}, err
	}
	app.Status = models.ApplicationStatus(status)
	app.Date = date.Format(models.DateLayout)
	return app, nil
}

// ApplyJob bumps the job counter and inserts the application in one
// transaction. The UPDATE takes the job row lock first, so concurrent applies
// to one job serialize on it.
func (s *Storage) ApplyJob(ctx context.Context, jobID int64, info models.StudentInfo) (models.Application, error) {
	const op = "postgresql.ApplyJob"
	if err := checkCtx(ctx, op); err != nil {
		return models.Application{}, err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Application{}, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `UPDATE jobs SET applicants = applicants + 1 WHERE id = $1`, jobID)
	if err != nil {
		return models.Application{}, fmt.Errorf("%s: %w", op, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return models.Application{}, fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return models.Application{}, fmt.Errorf("%s: %w", op, storage.ErrJobNotFound)
	}

	query := `INSERT INTO applications (student_id, job_id, status, date, resume)
			  VALUES ($1, $2, 'applied', $3::date, $4)
			  RETURNING ` + applicationColumns
	app, err := scanApplication(tx.QueryRowContext(ctx, query, info.StudentID, jobID, s.today(), info.Resume))
	if isUniqueViolation(err) {
		return models.Application{}, fmt.Errorf("%s: %w", op, storage.ErrAlreadyApplied)
	}
	if err != nil {
		return models.Application{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return models.Application{}, fmt.Errorf("%s: %w", op, err)
	}
	return app, nil
}

// UpdateApplicationStatus sets the status of an application.
func (s *Storage) UpdateApplicationStatus(ctx context.Context, id int64, status models.ApplicationStatus) (models.Application, error) {
	const op = "postgresql.UpdateApplicationStatus"
	if err := checkCtx(ctx, op); err != nil {
		return models.Application{}, err
	}
	if !status.Valid() {
		return models.Application{}, fmt.Errorf("%s: %w", op, storage.ErrInvalidStatus)
	}

	query := `UPDATE applications SET status = $2 WHERE id = $1 RETURNING ` + applicationColumns
	app, err := scanApplication(s.DB.QueryRowContext(ctx, query, id, string(status)))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Application{}, fmt.Errorf("%s: %w", op, storage.ErrApplicationNotFound)
	}
	if err != nil {
		return models.Application{}, fmt.Errorf("%s: %w", op, err)
	}
	return app, nil
}

// Application returns the application with the given id.
func (s *Storage) Application(ctx context.Context, id int64) (models.Application, error) {
	const op = "postgresql.Application"
	if err := checkCtx(ctx, op); err != nil {
		return models.Application{}, err
	}

	app, err := scanApplication(s.DB.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Application{}, fmt.Errorf("%s: %w", op, storage.ErrApplicationNotFound)
	}
	if err != nil {
		return models.Application{}, fmt.Errorf("%s: %w", op, err)
	}
	return app, nil
}

// Applications returns all applications, newest first.
func (s *Storage) Applications(ctx context.Context) ([]models.Application, error) {
	const op = "postgresql.Applications"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT `+applicationColumns+` FROM applications ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return apps, nil
}
