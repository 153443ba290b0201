package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/easygoapi/easygo/internal/common"
	"github.com/easygoapi/easygo/internal/server/models"
	"github.com/easygoapi/easygo/internal/server/repositories/repomanager"
)

// BookingPatch carries the optional fields of a partial booking update.
// Nil fields keep the stored value.
type BookingPatch struct {
	BookingID        *int64
	PropertyID       *int64
	PropertyName     *string
	PropertyImageURL *string
	ArrivalDate      *time.Time
	DepartureDate    *time.Time
	TotalGuests      *int64
	TotalBill        *float64
	Currency         *string
	Address          *string
	Beds             *int64
	Baths            *int64
	Rooms            *int64
}

// BookingService wraps booking persistence. It has no protocol content of
// its own; authorization happens in the HTTP layer before any call lands
// here.
type BookingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewBookingService constructs a BookingService.
func NewBookingService(db *sql.DB, m repomanager.RepositoryManager) *BookingService {
	return &BookingService{db: db, repomanager: m}
}

// Create stores a new booking owned by userID.
func (s *BookingService) Create(ctx context.Context, booking *models.Booking, userID string) (*models.Booking, error) {
	booking.UserID = userID
	if booking.Currency == "" {
		booking.Currency = models.CurrencyAED
	}
	created, err := s.repomanager.Bookings(s.db).Create(ctx, booking)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidData) {
			return nil, common.ErrorInvalidRequest
		}
		return nil, common.ErrorServiceUnavailable
	}
	return created, nil
}

// List returns userID's bookings, newest first.
func (s *BookingService) List(ctx context.Context, userID string, limit, offset int64) ([]*models.Booking, error) {
	result, err := s.repomanager.Bookings(s.db).List(ctx, userID, limit, offset)
	if err != nil {
		return nil, common.ErrorServiceUnavailable
	}
	return result, nil
}

// Get returns a booking by id, or common.ErrorNotFound.
func (s *BookingService) Get(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.repomanager.Bookings(s.db).Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorServiceUnavailable
	}
	return booking, nil
}

// Update applies a partial patch to an existing booking.
func (s *BookingService) Update(ctx context.Context, id string, patch *BookingPatch) (*models.Booking, error) {
	booking, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	applyPatch(booking, patch)

	updated, err := s.repomanager.Bookings(s.db).Update(ctx, booking)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		if errors.Is(err, common.ErrorInvalidData) {
			return nil, common.ErrorInvalidRequest
		}
		return nil, common.ErrorServiceUnavailable
	}
	return updated, nil
}

// Delete removes a booking by id.
func (s *BookingService) Delete(ctx context.Context, id string) error {
	if err := s.repomanager.Bookings(s.db).Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorServiceUnavailable
	}
	return nil
}

func applyPatch(booking *models.Booking, patch *BookingPatch) {
	if patch == nil {
		return
	}
	if patch.BookingID != nil {
		booking.BookingID = *patch.BookingID
	}
	if patch.PropertyID != nil {
		booking.PropertyID = *patch.PropertyID
	}
	if patch.PropertyName != nil {
		booking.PropertyName = *patch.PropertyName
	}
	if patch.PropertyImageURL != nil {
		booking.PropertyImageURL = *patch.PropertyImageURL
	}
	if patch.ArrivalDate != nil {
		booking.ArrivalDate = *patch.ArrivalDate
	}
	if patch.DepartureDate != nil {
		booking.DepartureDate = *patch.DepartureDate
	}
	if patch.TotalGuests != nil {
		booking.TotalGuests = *patch.TotalGuests
	}
	if patch.TotalBill != nil {
		booking.TotalBill = *patch.TotalBill
	}
	if patch.Currency != nil {
		booking.Currency = *patch.Currency
	}
	if patch.Address != nil {
		booking.Address = *patch.Address
	}
	if patch.Beds != nil {
		booking.Beds = *patch.Beds
	}
	if patch.Baths != nil {
		booking.Baths = *patch.Baths
	}
	if patch.Rooms != nil {
		booking.Rooms = *patch.Rooms
	}
}
