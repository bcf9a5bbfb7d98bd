package quote

import "github.com/vyrodovalexey/parcelgw/internal/carrier"

// HeavyParcelKg is the weight above which fallback prices are surcharged.
const HeavyParcelKg = 30

// HeavySurcharge multiplies every fallback price for heavy parcels.
const HeavySurcharge = 1.05

// HomeCountry is the only origin with domestic fallback data.
const HomeCountry = "GB"

// offer is a fallback service priced as a share of the baseline.
type offer struct {
	carrier    string
	service    string
	multiplier float64
	transit    string
}

var domesticOffers = []offer{
	{carrier: "Royal Mail", service: "Special Delivery Guaranteed by 1pm", multiplier: 0.92, transit: "Next working day by 1pm"},
	{carrier: "DPD", service: "Next Day", multiplier: 0.90, transit: "Next working day by 12pm"},
	{carrier: "ParcelForce", service: "Express24", multiplier: 0.93, transit: "Next working day"},
	{carrier: "UPS", service: "Express", multiplier: 0.94, transit: "Next working day"},
	{carrier: "Hermes", service: "Next Day", multiplier: 0.88, transit: "1-2 working days"},
}

var internationalOffers = []offer{
	{carrier: "DHL Express", service: "Express Worldwide", multiplier: 0.95, transit: "2-4 business days"},
	{carrier: "FedEx", service: "International Priority", multiplier: 0.96, transit: "2-4 business days"},
	{carrier: "UPS", service: "Worldwide Express", multiplier: 0.97, transit: "2-5 business days"},
	{carrier: "ParcelForce", service: "Global Priority", multiplier: 0.94, transit: "3-5 business days"},
	{carrier: "Royal Mail", service: "International Tracked", multiplier: 0.93, transit: "5-7 business days"},
}

// Fallback returns synthetic rates for a lane, sorted by price.
//
// GB to GB gets the domestic list and any cross-border lane gets the
// international list. Domestic lanes outside GB have no data and return an
// empty, non-nil slice. Parcels over HeavyParcelKg are surcharged.
func Fallback(origin, destination string, weight Weight, baseline float64) []carrier.Rate {
	var offers []offer
	switch {
	case origin != destination:
		offers = internationalOffers
	case origin == HomeCountry:
		offers = domesticOffers
	}

	factor := 1.0
	if kg, ok := weight.Kilograms(); ok && kg > HeavyParcelKg {
		factor = HeavySurcharge
	}

	rates := make([]carrier.Rate, 0, len(offers))
	for _, o := range offers {
		rates = append(rates, carrier.Rate{
			Carrier: o.carrier,
			Service: o.service,
			Price:   baseline * o.multiplier * factor,
			Transit: o.transit,
		})
	}

	carrier.SortRates(rates)
	return rates
}
