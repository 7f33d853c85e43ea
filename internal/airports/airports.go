// Package airports is a static, offline IATA lookup used to enrich route
// display and search. No network dependency.
package airports

import "strings"

type Airport struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// Airports the charter fleet actually flies. Business-aviation fields
// (Teterboro, Le Bourget, Farnborough) matter more here than the big hubs.
var byCode = map[string]Airport{
	"TEB": {"TEB", "Teterboro Airport", "Teterboro", "United States"},
	"VNY": {"VNY", "Van Nuys Airport", "Los Angeles", "United States"},
	"HPN": {"HPN", "Westchester County Airport", "White Plains", "United States"},
	"OPF": {"OPF", "Miami-Opa Locka Executive Airport", "Miami", "United States"},
	"ASE": {"ASE", "Aspen/Pitkin County Airport", "Aspen", "United States"},
	"EGE": {"EGE", "Eagle County Regional Airport", "Vail", "United States"},
	"SJU": {"SJU", "Luis Munoz Marin International Airport", "San Juan", "Puerto Rico"},
	"SBH": {"SBH", "Gustaf III Airport", "St. Barthelemy", "Saint Barthelemy"},
	"MIA": {"MIA", "Miami International Airport", "Miami", "United States"},
	"JFK": {"JFK", "John F. Kennedy International Airport", "New York", "United States"},
	"LAX": {"LAX", "Los Angeles International Airport", "Los Angeles", "United States"},
	"LAS": {"LAS", "Harry Reid International Airport", "Las Vegas", "United States"},
	"LTN": {"LTN", "London Luton Airport", "London", "United Kingdom"},
	"FAB": {"FAB", "Farnborough Airport", "Farnborough", "United Kingdom"},
	"BQH": {"BQH", "London Biggin Hill Airport", "London", "United Kingdom"},
	"LBG": {"LBG", "Paris-Le Bourget Airport", "Paris", "France"},
	"NCE": {"NCE", "Nice Cote d'Azur Airport", "Nice", "France"},
	"CEQ": {"CEQ", "Cannes-Mandelieu Airport", "Cannes", "France"},
	"GVA": {"GVA", "Geneva Airport", "Geneva", "Switzerland"},
	"ZRH": {"ZRH", "Zurich Airport", "Zurich", "Switzerland"},
	"SIR": {"SIR", "Sion Airport", "Sion", "Switzerland"},
	"SZG": {"SZG", "Salzburg Airport", "Salzburg", "Austria"},
	"IBZ": {"IBZ", "Ibiza Airport", "Ibiza", "Spain"},
	"PMI": {"PMI", "Palma de Mallorca Airport", "Palma", "Spain"},
	"MAD": {"MAD", "Adolfo Suarez Madrid-Barajas Airport", "Madrid", "Spain"},
	"OLB": {"OLB", "Olbia Costa Smeralda Airport", "Olbia", "Italy"},
	"LIN": {"LIN", "Milan Linate Airport", "Milan", "Italy"},
	"CIA": {"CIA", "Rome Ciampino Airport", "Rome", "Italy"},
	"JMK": {"JMK", "Mykonos Airport", "Mykonos", "Greece"},
	"ATH": {"ATH", "Athens International Airport", "Athens", "Greece"},
	"DXB": {"DXB", "Dubai International Airport", "Dubai", "United Arab Emirates"},
	"DWC": {"DWC", "Al Maktoum International Airport", "Dubai", "United Arab Emirates"},
	"RUH": {"RUH", "King Khalid International Airport", "Riyadh", "Saudi Arabia"},
	"SSH": {"SSH", "Sharm El Sheikh International Airport", "Sharm El Sheikh", "Egypt"},
	"MLE": {"MLE", "Velana International Airport", "Male", "Maldives"},
	"SEZ": {"SEZ", "Seychelles International Airport", "Mahe", "Seychelles"},
}

// ByCode looks up an airport by IATA code, case-insensitively.
func ByCode(iata string) (Airport, bool) {
	a, ok := byCode[strings.ToUpper(strings.TrimSpace(iata))]
	return a, ok
}
