package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/easygoapi/easygo/internal/common"
	"github.com/easygoapi/easygo/internal/dbx"
	"github.com/easygoapi/easygo/internal/server/models"
	"github.com/google/uuid"
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

// Upsert inserts a record for userID or keeps the existing one. The unique
// index on user_id makes concurrent upserts converge on a single row; the
// RETURNING clause yields the surviving record's id either way.
func (r *PostgresRepository) Upsert(ctx context.Context, userID string) (string, error) {
	query := `
		INSERT INTO refresh_tokens (id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET user_id = excluded.user_id
		RETURNING id
	`
	var id string
	if err := r.db.QueryRowContext(ctx, query, uuid.NewString(), userID).Scan(&id); err != nil {
		return "", fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

// Find returns the record with the given id owned by userID.
func (r *PostgresRepository) Find(ctx context.Context, id string, userID string) (*models.RefreshToken, error) {
	query := `
		SELECT id, user_id, created_at
		FROM refresh_tokens
		WHERE id = $1 AND user_id = $2
	`
	token := &models.RefreshToken{}
	if err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&token.ID, &token.UserID, &token.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return token, nil
}

// Delete removes a record by id.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM refresh_tokens
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
