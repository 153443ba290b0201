package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/easygoapi/easygo/internal/common"
	"github.com/easygoapi/easygo/internal/server/models"
	"github.com/easygoapi/easygo/internal/server/services"
	"github.com/easygoapi/easygo/internal/server/validation"
	"github.com/gorilla/mux"
)

type createBookingRequest struct {
	BookingID        int64     `json:"bookingId"`
	PropertyID       int64     `json:"propertyId"`
	PropertyName     string    `json:"propertyName"`
	PropertyImageURL string    `json:"propertyImageUrl"`
	ArrivalDate      time.Time `json:"arrivalDate"`
	DepartureDate    time.Time `json:"departureDate"`
	TotalGuests      int64     `json:"totalGuests"`
	TotalBill        float64   `json:"totalBill"`
	Currency         string    `json:"currency"`
	Address          string    `json:"address"`
	Beds             int64     `json:"beds"`
	Baths            int64     `json:"baths"`
	Rooms            int64     `json:"rooms"`
}

type updateBookingRequest struct {
	BookingID        *int64     `json:"bookingId"`
	PropertyID       *int64     `json:"propertyId"`
	PropertyName     *string    `json:"propertyName"`
	PropertyImageURL *string    `json:"propertyImageUrl"`
	ArrivalDate      *time.Time `json:"arrivalDate"`
	DepartureDate    *time.Time `json:"departureDate"`
	TotalGuests      *int64     `json:"totalGuests"`
	TotalBill        *float64   `json:"totalBill"`
	Currency         *string    `json:"currency"`
	Address          *string    `json:"address"`
	Beds             *int64     `json:"beds"`
	Baths            *int64     `json:"baths"`
	Rooms            *int64     `json:"rooms"`
}

func validateCreateBooking(req *createBookingRequest) error {
	if err := validation.NotEmpty("propertyName", req.PropertyName); err != nil {
		return err
	}
	if err := validation.NotEmpty("address", req.Address); err != nil {
		return err
	}
	if err := validation.DateRange(req.ArrivalDate, req.DepartureDate); err != nil {
		return err
	}
	if err := validation.Positive("totalGuests", float64(req.TotalGuests)); err != nil {
		return err
	}
	return validation.Positive("totalBill", req.TotalBill)
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := ActiveUserID(r.Context())
	if !ok {
		s.writeError(w, r, common.ErrorUnauthorized)
		return
	}

	var req createBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := validateCreateBooking(&req); err != nil {
		s.writeError(w, r, err)
		return
	}

	booking := &models.Booking{
		BookingID:        req.BookingID,
		PropertyID:       req.PropertyID,
		PropertyName:     req.PropertyName,
		PropertyImageURL: req.PropertyImageURL,
		ArrivalDate:      req.ArrivalDate,
		DepartureDate:    req.DepartureDate,
		TotalGuests:      req.TotalGuests,
		TotalBill:        req.TotalBill,
		Currency:         req.Currency,
		Address:          req.Address,
		Beds:             req.Beds,
		Baths:            req.Baths,
		Rooms:            req.Rooms,
	}

	created, err := s.bookings.Create(r.Context(), booking, userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := ActiveUserID(r.Context())
	if !ok {
		s.writeError(w, r, common.ErrorUnauthorized)
		return
	}

	limit, err := queryInt(r, "limit", 20)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.bookings.List(r.Context(), userID, limit, offset)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if result == nil {
		result = []*models.Booking{}
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := s.ownedBooking(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *Server) handleUpdateBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := s.ownedBooking(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req updateBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.ArrivalDate != nil || req.DepartureDate != nil {
		arrival := booking.ArrivalDate
		departure := booking.DepartureDate
		if req.ArrivalDate != nil {
			arrival = *req.ArrivalDate
		}
		if req.DepartureDate != nil {
			departure = *req.DepartureDate
		}
		if err := validation.DateRange(arrival, departure); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	patch := &services.BookingPatch{
		BookingID:        req.BookingID,
		PropertyID:       req.PropertyID,
		PropertyName:     req.PropertyName,
		PropertyImageURL: req.PropertyImageURL,
		ArrivalDate:      req.ArrivalDate,
		DepartureDate:    req.DepartureDate,
		TotalGuests:      req.TotalGuests,
		TotalBill:        req.TotalBill,
		Currency:         req.Currency,
		Address:          req.Address,
		Beds:             req.Beds,
		Baths:            req.Baths,
		Rooms:            req.Rooms,
	}

	updated, err := s.bookings.Update(r.Context(), booking.ID, patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := s.ownedBooking(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.bookings.Delete(r.Context(), booking.ID); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Booking has been deleted"})
}

// ownedBooking loads the booking addressed by the route and checks it
// belongs to the active user. A foreign booking is reported as not found,
// not as forbidden.
func (s *Server) ownedBooking(r *http.Request) (*models.Booking, error) {
	userID, ok := ActiveUserID(r.Context())
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	id := mux.Vars(r)["id"]
	booking, err := s.bookings.Get(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return booking, nil
}

func queryInt(r *http.Request, name string, def int64) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, &validation.FieldError{Field: name, Message: "must be a non-negative integer"}
	}
	return v, nil
}
