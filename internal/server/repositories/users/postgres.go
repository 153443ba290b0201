package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/easygoapi/easygo/internal/common"
	"github.com/easygoapi/easygo/internal/dbx"
	"github.com/easygoapi/easygo/internal/server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error classes we translate to sentinel errors.
const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user with a generated id and returns the stored row.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (id, name, email, mobile)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	user.ID = uuid.NewString()
	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Name, user.Email, user.Mobile).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				return nil, common.ErrorAlreadyExists
			case pgCheckViolation:
				return nil, common.ErrorInvalidData
			}
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

// GetByMobile returns the user registered with the given mobile number.
func (r *PostgresRepository) GetByMobile(ctx context.Context, mobile string) (*models.User, error) {
	query := `
		SELECT id, name, email, mobile, created_at, updated_at
		FROM users
		WHERE mobile = $1
	`
	return r.getOne(ctx, query, mobile)
}

// GetByID returns the user with the given id.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, name, email, mobile, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Name, &user.Email, &user.Mobile, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}
