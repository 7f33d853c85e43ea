package model

// Payload is the typed view over a service request's open data blob.
// Sub-types we don't recognize decode to OpaquePayload.
type Payload interface {
	Kind() string
}

type AdventurePayload struct {
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Travelers   int    `json:"travelers"`
}

func (AdventurePayload) Kind() string { return TypeAdventures }

type NFTDiscountPayload struct {
	FlightID    string  `json:"flight_id"`
	TokenID     string  `json:"token_id"`
	DiscountPct float64 `json:"discount_pct"`
}

func (NFTDiscountPayload) Kind() string { return TypeNFTDiscount }

type NFTFlightPayload struct {
	FlightID string `json:"flight_id"`
	TokenID  string `json:"token_id"`
}

func (NFTFlightPayload) Kind() string { return TypeNFTFlight }

type SPVPayload struct {
	CompanyName  string `json:"company_name"`
	Jurisdiction string `json:"jurisdiction"`
}

func (SPVPayload) Kind() string { return TypeSPV }

type TokenizationPayload struct {
	AssetType      string  `json:"asset_type"`
	EstimatedValue float64 `json:"estimated_value"`
}

func (TokenizationPayload) Kind() string { return TypeTokenization }

type OpaquePayload struct {
	Data map[string]any `json:"data"`
}

func (OpaquePayload) Kind() string { return "opaque" }
