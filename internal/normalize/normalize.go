// Package normalize maps raw rows from the three source families into the
// unified request shape. All mappings are total: malformed or partially-null
// rows come through with zero values, nothing is rejected here.
package normalize

import (
	"jetdash/internal/model"
)

// legacyTypes remaps raw request-table type tags to canonical tags.
// Tags not in the table pass through unchanged.
var legacyTypes = map[string]string{
	"private_jet_charter":    model.TypeJets,
	"empty_leg":              model.TypeEmptyLeg,
	"helicopter_charter":     model.TypeHelicopter,
	"luxury_car_rental":      model.TypeCars,
	"fixed_offer":            model.TypeFixedOffers,
	"adventure_package":      model.TypeAdventures,
	"co2_certificate":        model.TypeCO2,
	"nft_discount_empty_leg": model.TypeNFTDiscount,
	"nft_free_flight":        model.TypeNFTFlight,
	"spv_formation":          model.TypeSPV,
	"tokenization_request":   model.TypeTokenization,
}

// CanonicalType resolves a raw type tag to its canonical form.
func CanonicalType(raw string) string {
	if mapped, ok := legacyTypes[raw]; ok {
		return mapped
	}
	return raw
}

// Booking maps a flight-booking row. All booking fields copy through; the
// type is always flight_booking.
func Booking(row map[string]any) model.UnifiedRequest {
	return model.UnifiedRequest{
		ID:           stringID(row, "id"),
		Family:       model.FamilyBooking,
		Type:         model.TypeFlightBooking,
		Status:       pickStr(row, "status"),
		CreatedAt:    pickTime(row, "created_at"),
		UpdatedAt:    pickTime(row, "updated_at"),
		ContactName:  pickStr(row, "contact_name", "full_name", "name"),
		ContactEmail: pickStr(row, "contact_email", "email"),
		ContactPhone: pickStr(row, "contact_phone", "phone"),
		Origin:       pickStr(row, "origin", "departure_airport", "from_airport"),
		Destination:  pickStr(row, "destination", "arrival_airport", "to_airport"),
		DepartureAt:  pickTime(row, "departure_date", "departure_at"),
		Passengers:   pickInt(row, "passengers", "pax"),
		Price:        pickFloat(row, "price", "total_price"),
		Currency:     pickStr(row, "currency"),
	}
}

// ServiceRequest maps a generic request-table row. The raw type tag goes
// through the legacy remap; the open data blob is preserved verbatim for
// detail rendering and search.
func ServiceRequest(row map[string]any) model.UnifiedRequest {
	var data map[string]any
	if d, ok := row["data"].(map[string]any); ok {
		data = d
	}
	return model.UnifiedRequest{
		ID:           stringID(row, "id"),
		Family:       model.FamilyService,
		Type:         CanonicalType(pickStr(row, "type")),
		Status:       pickStr(row, "status"),
		CreatedAt:    pickTime(row, "created_at"),
		UpdatedAt:    pickTime(row, "updated_at"),
		ContactName:  pickStr(row, "client_name"),
		ContactEmail: pickStr(row, "client_email"),
		ContactPhone: pickStr(row, "client_phone"),
		Data:         data,
	}
}

// CO2Request maps a certificate-request row.
func CO2Request(row map[string]any) model.UnifiedRequest {
	return model.UnifiedRequest{
		ID:           stringID(row, "id"),
		Family:       model.FamilyCO2,
		Type:         model.TypeCO2,
		Status:       pickStr(row, "status"),
		CreatedAt:    pickTime(row, "created_at"),
		UpdatedAt:    pickTime(row, "updated_at"),
		ContactName:  pickStr(row, "contact_name", "client_name"),
		ContactEmail: pickStr(row, "contact_email", "client_email"),
		ServiceType:  pickStr(row, "service_type"),
		Price:        pickFloat(row, "price", "total_price"),
		Currency:     pickStr(row, "currency"),
	}
}

// DecodePayload gives the detail consumer a typed view over a service
// request's data blob. Unknown sub-types fall back to the opaque variant.
func DecodePayload(typeTag string, data map[string]any) model.Payload {
	if data == nil {
		data = map[string]any{}
	}
	switch typeTag {
	case model.TypeAdventures:
		return model.AdventurePayload{
			Destination: pickStr(data, "destination"),
			StartDate:   pickStr(data, "start_date", "startDate"),
			EndDate:     pickStr(data, "end_date", "endDate"),
			Travelers:   pickInt(data, "travelers", "guests"),
		}
	case model.TypeNFTDiscount:
		return model.NFTDiscountPayload{
			FlightID:    stringID(data, "flight_id", "flightId"),
			TokenID:     stringID(data, "token_id", "tokenId"),
			DiscountPct: pickFloat(data, "discount_pct", "discount"),
		}
	case model.TypeNFTFlight:
		return model.NFTFlightPayload{
			FlightID: stringID(data, "flight_id", "flightId"),
			TokenID:  stringID(data, "token_id", "tokenId"),
		}
	case model.TypeSPV:
		return model.SPVPayload{
			CompanyName:  pickStr(data, "company_name", "companyName"),
			Jurisdiction: pickStr(data, "jurisdiction"),
		}
	case model.TypeTokenization:
		return model.TokenizationPayload{
			AssetType:      pickStr(data, "asset_type", "assetType"),
			EstimatedValue: pickFloat(data, "estimated_value", "estimatedValue"),
		}
	default:
		return model.OpaquePayload{Data: data}
	}
}
