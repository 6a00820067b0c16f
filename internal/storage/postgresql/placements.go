package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/AMULYA007-hub/campus-hire/internal/models"
)

// AddPlacement inserts a placement.
func (s *Storage) AddPlacement(ctx context.Context, in models.PlacementInput) (models.Placement, error) {
	const op = "postgresql.AddPlacement"
	if err := checkCtx(ctx, op); err != nil {
		return models.Placement{}, err
	}

	p := models.Placement{
		StudentName: in.StudentName,
		CompanyName: in.CompanyName,
		Position:    in.Position,
		Salary:      in.Salary,
		Date:        s.today(),
	}
	query := `INSERT INTO placements (student_name, company_name, position, salary, date)
			  VALUES ($1, $2, $3, $4, $5::date)
			  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query, p.StudentName, p.CompanyName, p.Position, p.Salary, p.Date).
		Scan(&p.ID); err != nil {
		return models.Placement{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// Placements returns all placements, newest first.
func (s *Storage) Placements(ctx context.Context) ([]models.Placement, error) {
	const op = "postgresql.Placements"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, student_name, company_name, position, salary, date FROM placements ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	placements := []models.Placement{}
	for rows.Next() {
		var (
			p    models.Placement
			date time.Time
		)
		if err := rows.Scan(&p.ID, &p.StudentName, &p.CompanyName, &p.Position, &p.Salary, &date); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		p.Date = date.Format(models.DateLayout)
		placements = append(placements, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return placements, nil
}
