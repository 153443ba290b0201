// Package refreshtokens declares the server-side repository contract for
// the refresh-token records backing issued refresh tokens.
package refreshtokens

import (
	"context"

	"github.com/easygoapi/easygo/internal/server/models"
)

// Repository manages the at-most-one live refresh-token record per user.
type Repository interface {
	// Upsert ensures a record exists for userID and returns its id.
	// If a record already exists its id is kept; otherwise a new one is
	// created. The operation is atomic per user.
	Upsert(ctx context.Context, userID string) (string, error)

	// Find returns the record matching both id and owning user, or
	// common.ErrorNotFound.
	Find(ctx context.Context, id string, userID string) (*models.RefreshToken, error)

	// Delete removes a record by id. Deleting a non-existent record is not
	// an error.
	Delete(ctx context.Context, id string) error
}
