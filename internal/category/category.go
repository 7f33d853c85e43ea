// Package category maps canonical type tags to display metadata.
package category

import "jetdash/internal/model"

type Category struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// generic is the fallback for any tag we don't know.
var generic = Category{Name: "Request", Color: "gray", Icon: "file"}

// Resolve is total: any unrecognized type tag, including an unknown CO2
// service_type, yields the generic category. Never panics.
func Resolve(typeTag, serviceType string) Category {
	switch typeTag {
	case model.TypeFlightBooking:
		return Category{Name: "Flight Booking", Color: "blue", Icon: "plane"}
	case model.TypeJets:
		return Category{Name: "Private Jet Charter", Color: "navy", Icon: "jet"}
	case model.TypeEmptyLeg:
		return Category{Name: "Empty Leg", Color: "sky", Icon: "plane-departure"}
	case model.TypeHelicopter:
		return Category{Name: "Helicopter Charter", Color: "slate", Icon: "helicopter"}
	case model.TypeCars:
		return Category{Name: "Luxury Car Rental", Color: "amber", Icon: "car"}
	case model.TypeAdventures:
		return Category{Name: "Adventure Package", Color: "emerald", Icon: "mountain"}
	case model.TypeFixedOffers:
		return Category{Name: "Fixed Offer", Color: "violet", Icon: "tag"}
	case model.TypeNFTDiscount:
		return Category{Name: "NFT Empty Leg Discount", Color: "purple", Icon: "ticket"}
	case model.TypeNFTFlight:
		return Category{Name: "NFT Free Flight", Color: "purple", Icon: "gift"}
	case model.TypeSPV:
		return Category{Name: "SPV Formation", Color: "stone", Icon: "building"}
	case model.TypeTokenization:
		return Category{Name: "Tokenization", Color: "indigo", Icon: "coins"}
	case model.TypeCO2:
		switch serviceType {
		case "", "certificate", "co2_certificate":
			return Category{Name: "CO2 Certificate", Color: "green", Icon: "leaf"}
		case "offset", "co2_offset":
			return Category{Name: "CO2 Offset", Color: "green", Icon: "leaf"}
		default:
			return generic
		}
	default:
		return generic
	}
}
