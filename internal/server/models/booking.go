package models

import "time"

// Currency codes accepted for a booking bill.
const (
	CurrencyAED = "AED"
	CurrencyUSD = "USD"
)

// Booking is a property booking owned by a user. It is a plain persistence
// record; all operations on it require an authenticated owner.
type Booking struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	BookingID        int64     `json:"bookingId,omitempty"`
	PropertyID       int64     `json:"propertyId,omitempty"`
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
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
