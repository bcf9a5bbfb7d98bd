package lookup

// DefaultCode is the table key used when a country code is not listed.
const DefaultCode = "DEFAULT"

// DefaultAddress is the street line used for every country.
const DefaultAddress = "123 Main Street"

// CountryDefaults is the synthetic contact block for a country.
type CountryDefaults struct {
	Phone   string
	City    string
	Address string
	Region  string
}

// E.164 phone numbers.
var phones = map[string]string{
	"GB":        "+447911123456",
	"US":        "+12125551234",
	"FR":        "+33612345678",
	"DE":        "+491701234567",
	"ES":        "+34612345678",
	"IT":        "+393123456789",
	"CA":        "+14165551234",
	"AU":        "+61412345678",
	"JP":        "+819012345678",
	"CN":        "+8613812345678",
	"NL":        "+31612345678",
	"BE":        "+32470123456",
	"CH":        "+41791234567",
	"SE":        "+46701234567",
	"NO":        "+4712345678",
	"DK":        "+4512345678",
	"PL":        "+48123456789",
	"BR":        "+5511987654321",
	"MX":        "+521234567890",
	"IN":        "+919876543210",
	DefaultCode: "+12125551234",
}

var cities = map[string]string{
	"GB":        "London",
	"US":        "New York",
	"FR":        "Paris",
	"DE":        "Berlin",
	"ES":        "Madrid",
	"IT":        "Rome",
	"CA":        "Toronto",
	"AU":        "Sydney",
	"JP":        "Tokyo",
	"CN":        "Beijing",
	"NL":        "Amsterdam",
	"BE":        "Brussels",
	"CH":        "Zurich",
	"SE":        "Stockholm",
	"NO":        "Oslo",
	"DK":        "Copenhagen",
	"PL":        "Warsaw",
	"CZ":        "Prague",
	"AT":        "Vienna",
	"PT":        "Lisbon",
	"GR":        "Athens",
	"IE":        "Dublin",
	"FI":        "Helsinki",
	"IN":        "New Delhi",
	"BR":        "São Paulo",
	"MX":        "Mexico City",
	"AR":        "Buenos Aires",
	"ZA":        "Johannesburg",
	"EG":        "Cairo",
	"TR":        "Istanbul",
	"RU":        "Moscow",
	"KR":        "Seoul",
	"TH":        "Bangkok",
	"MY":        "Kuala Lumpur",
	"SG":        "Singapore",
	"ID":        "Jakarta",
	"PH":        "Manila",
	"NZ":        "Auckland",
	"IL":        "Tel Aviv",
	"AE":        "Dubai",
	"SA":        "Riyadh",
	"HK":        "Hong Kong",
	"TW":        "Taipei",
	DefaultCode: "Capital City",
}

// County, state or region names.
var regions = map[string]string{
	"US":        "NY",
	"CA":        "ON",
	"AU":        "NSW",
	"GB":        "Greater London",
	DefaultCode: "Region",
}

// Defaults resolves the contact block for code. Each field is looked up in
// its own table, so a code may have a city of its own but the default
// phone. Codes are matched exactly as given.
func Defaults(code string) CountryDefaults {
	return CountryDefaults{
		Phone:   resolve(phones, code),
		City:    resolve(cities, code),
		Address: DefaultAddress,
		Region:  resolve(regions, code),
	}
}

// knownCountries returns every code with at least one table entry. The
// result is a fresh slice in no particular order.
func knownCountries() []string {
	seen := make(map[string]struct{}, len(cities)+len(postcodes))
	for _, table := range []map[string]string{phones, cities, regions, postcodes} {
		for code := range table {
			if code != DefaultCode {
				seen[code] = struct{}{}
			}
		}
	}

	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	return codes
}

func resolve(table map[string]string, code string) string {
	if v, ok := table[code]; ok && v != "" {
		return v
	}
	return table[DefaultCode]
}
