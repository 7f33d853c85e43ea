package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jetdash/internal/model"
)

func TestCanonicalType(t *testing.T) {
	cases := map[string]string{
		"private_jet_charter":    model.TypeJets,
		"empty_leg":              model.TypeEmptyLeg,
		"helicopter_charter":     model.TypeHelicopter,
		"luxury_car_rental":      model.TypeCars,
		"fixed_offer":            model.TypeFixedOffers,
		"adventure_package":      model.TypeAdventures,
		"nft_discount_empty_leg": model.TypeNFTDiscount,
		"spv_formation":          model.TypeSPV,
		// not in the table: passes through unchanged
		"jets":           "jets",
		"submarine_tour": "submarine_tour",
		"":               "",
	}
	for raw, want := range cases {
		assert.Equal(t, want, CanonicalType(raw), "raw=%q", raw)
	}
}

func TestBooking(t *testing.T) {
	row := map[string]any{
		"id":             "bk-17",
		"status":         "pending",
		"contact_name":   "Alice",
		"contact_email":  "alice@example.com",
		"contact_phone":  "+41 79 000 00 00",
		"origin":         "GVA",
		"destination":    "IBZ",
		"departure_date": "2025-04-01",
		"passengers":     float64(4),
		"price":          12400.0,
		"currency":       "EUR",
		"created_at":     "2025-03-01T09:30:00Z",
	}
	r := Booking(row)

	assert.Equal(t, model.FamilyBooking, r.Family)
	assert.Equal(t, model.TypeFlightBooking, r.Type)
	assert.Equal(t, "bk-17", r.ID)
	assert.Equal(t, "Alice", r.ContactName)
	assert.Equal(t, "GVA", r.Origin)
	assert.Equal(t, "IBZ", r.Destination)
	assert.Equal(t, 4, r.Passengers)
	assert.Equal(t, 12400.0, r.Price)
	assert.Equal(t, time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC), r.CreatedAt)
}

func TestServiceRequestRemapsAndPreservesData(t *testing.T) {
	data := map[string]any{"origin": "TEB", "note": "red-eye ok", "guests": float64(2)}
	row := map[string]any{
		"id":           "sr-9",
		"type":         "empty_leg",
		"status":       "processing",
		"client_name":  "Bob",
		"client_email": "bob@example.com",
		"data":         data,
		"created_at":   "2025-03-05T10:00:00Z",
	}
	r := ServiceRequest(row)

	assert.Equal(t, model.FamilyService, r.Family)
	assert.Equal(t, model.TypeEmptyLeg, r.Type)
	assert.Equal(t, "Bob", r.ContactName)
	// the open blob is preserved verbatim
	assert.Equal(t, data, r.Data)
}

func TestCO2Request(t *testing.T) {
	row := map[string]any{
		"id":           "co2-3",
		"service_type": "certificate",
		"status":       "completed",
		"price":        "250.50",
		"currency":     "CHF",
		"created_at":   "2025-02-20T08:00:00Z",
	}
	r := CO2Request(row)

	assert.Equal(t, model.FamilyCO2, r.Family)
	assert.Equal(t, model.TypeCO2, r.Type)
	assert.Equal(t, "certificate", r.ServiceType)
	assert.Equal(t, 250.50, r.Price)
}

// Malformed rows never panic and never get rejected; missing fields just
// come through as zero values.
func TestNormalizationTotality(t *testing.T) {
	rows := []map[string]any{
		nil,
		{},
		{"id": 42, "price": true, "created_at": "not a date", "passengers": "many"},
		{"type": nil, "data": "not a map", "status": 7},
	}
	for _, row := range rows {
		require.NotPanics(t, func() {
			Booking(row)
			ServiceRequest(row)
			CO2Request(row)
		})
	}

	// numeric id renders as a string
	r := Booking(map[string]any{"id": float64(42)})
	assert.Equal(t, "42", r.ID)

	// a row with nothing but created_at still sorts
	r = ServiceRequest(map[string]any{"created_at": "2025-01-01T00:00:00Z"})
	assert.False(t, r.CreatedAt.IsZero())
}

func TestDecodePayload(t *testing.T) {
	p := DecodePayload(model.TypeAdventures, map[string]any{
		"destination": "Patagonia",
		"start_date":  "2025-11-02",
		"travelers":   float64(3),
	})
	adv, ok := p.(model.AdventurePayload)
	require.True(t, ok)
	assert.Equal(t, "Patagonia", adv.Destination)
	assert.Equal(t, 3, adv.Travelers)

	p = DecodePayload(model.TypeNFTDiscount, map[string]any{
		"flight_id":    "el-201",
		"token_id":     float64(812),
		"discount_pct": float64(25),
	})
	nft, ok := p.(model.NFTDiscountPayload)
	require.True(t, ok)
	assert.Equal(t, "812", nft.TokenID)
	assert.Equal(t, 25.0, nft.DiscountPct)

	// unknown sub-types fall back to the opaque variant
	p = DecodePayload("submarine_tour", map[string]any{"depth": "30m"})
	op, ok := p.(model.OpaquePayload)
	require.True(t, ok)
	assert.Equal(t, "30m", op.Data["depth"])

	// nil data stays decodable
	require.NotPanics(t, func() { DecodePayload(model.TypeSPV, nil) })
}
