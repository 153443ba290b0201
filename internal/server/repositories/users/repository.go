// Package users declares the server-side repository contract for identity
// records.
package users

import (
	"context"

	"github.com/easygoapi/easygo/internal/server/models"
)

// Repository defines persistence operations for user identities. The backing
// store enforces uniqueness of email and mobile.
type Repository interface {
	// Create stores a new user and returns it with generated id and
	// timestamps. A duplicate email or mobile yields common.ErrorAlreadyExists;
	// a schema/check violation yields common.ErrorInvalidData.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByMobile returns the user owning the given mobile number, or
	// common.ErrorNotFound.
	GetByMobile(ctx context.Context, mobile string) (*models.User, error)

	// GetByID returns the user with the given id, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)
}
