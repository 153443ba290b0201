package bookings

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

// PostgresRepository implements Repository over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const bookingColumns = `id, user_id, booking_id, property_id, property_name, property_image_url,
		arrival_date, departure_date, total_guests, total_bill, currency, address,
		beds, baths, rooms, created_at, updated_at`

// Create inserts a new booking with a generated id and returns the stored row.
func (r *PostgresRepository) Create(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	query := `
		INSERT INTO bookings (id, user_id, booking_id, property_id, property_name, property_image_url,
			arrival_date, departure_date, total_guests, total_bill, currency, address, beds, baths, rooms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at
	`
	booking.ID = uuid.NewString()
	err := r.db.QueryRowContext(ctx, query,
		booking.ID, booking.UserID, booking.BookingID, booking.PropertyID,
		booking.PropertyName, booking.PropertyImageURL,
		booking.ArrivalDate, booking.DepartureDate,
		booking.TotalGuests, booking.TotalBill, booking.Currency, booking.Address,
		booking.Beds, booking.Baths, booking.Rooms,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return booking, nil
}

// List returns userID's bookings, newest first.
func (r *PostgresRepository) List(ctx context.Context, userID string, limit, offset int64) ([]*models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Get returns the booking with the given id.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, query, id)
	booking, err := scanBooking(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	return booking, nil
}

// Update overwrites the booking's mutable fields.
func (r *PostgresRepository) Update(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	query := `
		UPDATE bookings
		SET booking_id = $2, property_id = $3, property_name = $4, property_image_url = $5,
			arrival_date = $6, departure_date = $7, total_guests = $8, total_bill = $9,
			currency = $10, address = $11, beds = $12, baths = $13, rooms = $14,
			updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		booking.ID, booking.BookingID, booking.PropertyID,
		booking.PropertyName, booking.PropertyImageURL,
		booking.ArrivalDate, booking.DepartureDate,
		booking.TotalGuests, booking.TotalBill, booking.Currency, booking.Address,
		booking.Beds, booking.Baths, booking.Rooms,
	).Scan(&booking.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return booking, nil
}

// Delete removes a booking by id.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM bookings
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func scanBooking(scan func(dest ...any) error) (*models.Booking, error) {
	booking := &models.Booking{}
	err := scan(
		&booking.ID, &booking.UserID, &booking.BookingID, &booking.PropertyID,
		&booking.PropertyName, &booking.PropertyImageURL,
		&booking.ArrivalDate, &booking.DepartureDate,
		&booking.TotalGuests, &booking.TotalBill, &booking.Currency, &booking.Address,
		&booking.Beds, &booking.Baths, &booking.Rooms,
		&booking.CreatedAt, &booking.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return booking, nil
}
