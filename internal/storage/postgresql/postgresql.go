// Package postgresql implements the identity store and the data store on
// PostgreSQL through database/sql and the pgx driver.
package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	// Registers the pgx driver with database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/AMULYA007-hub/campus-hire/internal/lib/password"
	"github.com/AMULYA007-hub/campus-hire/internal/models"
	"github.com/AMULYA007-hub/campus-hire/internal/storage"
)

// Storage wraps the connection pool.
type Storage struct {
	DB  *sql.DB
	now func() time.Time
}

// New opens a pool and pings the server.
func New(ctx context.Context, connectionString string) (*Storage, error) {
	const op = "postgresql.New"

	db, err := sql.Open("pgx", connectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Storage{DB: db, now: time.Now}, nil
}

// burnCompare evens out the cost of a lookup for an unknown email.
var burnCompare = password.BurnCompare

// Close closes the connection pool.
func (s *Storage) Close() error {
	return s.DB.Close()
}

func (s *Storage) today() string {
	return models.Today(s.now())
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func checkCtx(ctx context.Context, op string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
		return nil
	}
}

// ===== ACCOUNTS =====

// Register inserts acc; the unique email index turns a duplicate into storage.ErrDuplicateEmail.
func (s *Storage) Register(ctx context.Context, acc models.Account) (*models.Account, error) {
	const op = "postgresql.Register"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	profile, err := json.Marshal(acc.RoleProfile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	acc.ID = uuid.NewString()
	if acc.CreatedAt.IsZero() {
		acc.CreatedAt = s.now().UTC()
	}

	query := `INSERT INTO accounts (id, name, email, phone, password_hash, role, role_profile, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = s.DB.ExecContext(ctx, query,
		acc.ID, acc.Name, acc.Email, acc.Phone, acc.PasswordHash, string(acc.Role), profile, acc.CreatedAt)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrDuplicateEmail)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &acc, nil
}

// FindByCredentials returns storage.ErrAccountNotFound for any mismatch.
func (s *Storage) FindByCredentials(ctx context.Context, email, pass string, role models.Role) (*models.Account, error) {
	const op = "postgresql.FindByCredentials"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT id, name, email, phone, password_hash, role, role_profile, created_at
			  FROM accounts WHERE email = $1`
	var (
		acc     models.Account
		roleStr string
		profile []byte
	)
	err := s.DB.QueryRowContext(ctx, query, email).Scan(
		&acc.ID, &acc.Name, &acc.Email, &acc.Phone, &acc.PasswordHash, &roleStr, &profile, &acc.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		burnCompare(pass)
		return nil, fmt.Errorf("%s: %w", op, storage.ErrAccountNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	acc.Role = models.Role(roleStr)

	if err := password.CompareHash(acc.PasswordHash, pass); err != nil || acc.Role != role {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrAccountNotFound)
	}
	if err := json.Unmarshal(profile, &acc.RoleProfile); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &acc, nil
}
