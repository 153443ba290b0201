// Package bookings declares the server-side repository contract for the
// booking resource.
package bookings

import (
	"context"

	"github.com/easygoapi/easygo/internal/server/models"
)

// Repository defines persistence operations for bookings.
type Repository interface {
	// Create stores a new booking and returns it with generated id and
	// timestamps.
	Create(ctx context.Context, booking *models.Booking) (*models.Booking, error)

	// List returns the bookings owned by userID, newest first, applying
	// limit/offset when limit is positive.
	List(ctx context.Context, userID string, limit, offset int64) ([]*models.Booking, error)

	// Get returns the booking with the given id, or common.ErrorNotFound.
	Get(ctx context.Context, id string) (*models.Booking, error)

	// Update overwrites the stored booking's mutable fields and returns the
	// updated row, or common.ErrorNotFound.
	Update(ctx context.Context, booking *models.Booking) (*models.Booking, error)

	// Delete removes a booking by id, or returns common.ErrorNotFound.
	Delete(ctx context.Context, id string) error
}
