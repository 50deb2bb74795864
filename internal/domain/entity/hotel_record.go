package entity

import (
	"time"
)

// HotelRecord is a persisted hotel stay extracted from a travel document.
// CheckinDate is the minimum required field.
type HotelRecord struct {
	ID           string
	Waid         string
	HotelName    string
	City         string
	CheckinDate  string // YYYY-MM-DD
	CheckoutDate string // defaults to CheckinDate for display when empty
	Address      string
	SourceDocID  string
	RawExcerpt   string
	CreatedAt    time.Time
}

// CheckoutOrCheckin returns the checkout date, falling back to check-in.
func (h *HotelRecord) CheckoutOrCheckin() string {
	if h.CheckoutDate != "" {
		return h.CheckoutDate
	}
	return h.CheckinDate
}
