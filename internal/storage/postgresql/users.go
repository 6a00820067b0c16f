package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/AMULYA007-hub/campus-hire/internal/models"
	"github.com/AMULYA007-hub/campus-hire/internal/storage"
)

// AddUser inserts an active user.
func (s *Storage) AddUser(ctx context.Context, in models.UserInput) (models.User, error) {
	const op = "postgresql.AddUser"
	if err := checkCtx(ctx, op); err != nil {
		return models.User{}, err
	}

	u := models.User{
		Name:     in.Name,
		Email:    in.Email,
		Role:     in.Role,
		Status:   models.UserActive,
		JoinDate: s.today(),
	}
	query := `INSERT INTO directory_users (name, email, role, status, join_date)
			  VALUES ($1, $2, $3, $4, $5::date)
			  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query, u.Name, u.Email, string(u.Role), string(u.Status), u.JoinDate).
		Scan(&u.ID); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// DeleteUser deletes the user with the given id.
func (s *Storage) DeleteUser(ctx context.Context, id int64) error {
	const op = "postgresql.DeleteUser"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM directory_users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}
	return nil
}

// Users lists the directory in roster order.
func (s *Storage) Users(ctx context.Context) ([]models.User, error) {
	const op = "postgresql.Users"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, name, email, role, status, join_date FROM directory_users ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var (
			u            models.User
			role, status string
			joined       time.Time
		)
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &role, &status, &joined); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		u.Role = models.Role(role)
		u.Status = models.UserStatus(status)
		u.JoinDate = joined.Format(models.DateLayout)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}
