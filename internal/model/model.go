package model

import "time"

// Source families. Record ids are only unique within a family, so anything
// merging families must key by Family + ID, never ID alone.
const (
	FamilyBooking = "booking"
	FamilyService = "service"
	FamilyCO2     = "co2"
)

// Canonical type tags. Legacy raw tags from the request table are remapped
// to these at normalization time; unknown raw tags pass through unchanged.
const (
	TypeFlightBooking = "flight_booking"
	TypeJets          = "jets"
	TypeEmptyLeg      = "emptyleg"
	TypeHelicopter    = "helicopter"
	TypeCars          = "cars"
	TypeAdventures    = "adventures"
	TypeFixedOffers   = "fixedoffers"
	TypeCO2           = "co2"
	TypeNFTDiscount   = "nftdiscount"
	TypeNFTFlight     = "nftflight"
	TypeSPV           = "spv"
	TypeTokenization  = "tokenization"
)

// UnifiedRequest is the normalized representation for all source families.
type UnifiedRequest struct {
	ID           string         `json:"id"`
	Family       string         `json:"family"` // booking | service | co2
	Type         string         `json:"type"`
	Status       string         `json:"status"` // free-form: pending/processing/completed/...
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	ContactName  string         `json:"contact_name,omitempty"`
	ContactEmail string         `json:"contact_email,omitempty"`
	ContactPhone string         `json:"contact_phone,omitempty"`
	Origin       string         `json:"origin,omitempty"`      // IATA
	Destination  string         `json:"destination,omitempty"` // IATA
	DepartureAt  time.Time      `json:"departure_at"`
	Passengers   int            `json:"passengers,omitempty"`
	Price        float64        `json:"price,omitempty"`
	Currency     string         `json:"currency,omitempty"`
	ServiceType  string         `json:"service_type,omitempty"` // CO2 requests only
	Data         map[string]any `json:"data,omitempty"`         // raw payload, preserved verbatim
}

// Key returns the cross-family unique key for a request.
func (r UnifiedRequest) Key() string {
	return r.Family + "::" + r.ID
}
