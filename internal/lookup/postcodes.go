package lookup

// Postcodes treated as "not supplied".
const (
	placeholderUSPostcode = "10001"
	placeholderGBPostcode = "SW1A 1AA"
)

var postcodes = map[string]string{
	"GB":        "SW1A 1AA",
	"US":        "10001",
	"CA":        "M5V 3A8",
	"FR":        "75001",
	"DE":        "10115",
	"ES":        "28001",
	"IT":        "00100",
	"AU":        "2000",
	"JP":        "100-0001",
	"CN":        "100000",
	"NL":        "1011 AB",
	"BE":        "1000",
	"CH":        "8001",
	"SE":        "111 21",
	"NO":        "0001",
	"DK":        "1000",
	"PL":        "00-001",
	"CZ":        "110 00",
	"AT":        "1010",
	"PT":        "1000-001",
	"GR":        "105 57",
	"IE":        "D01 F5P2",
	"FI":        "00100",
	"IN":        "110001",
	"BR":        "01000-000",
	"MX":        "01000",
	"AR":        "C1002",
	"ZA":        "2001",
	"EG":        "11511",
	"TR":        "34000",
	"RU":        "101000",
	"KR":        "04524",
	"TH":        "10200",
	"MY":        "50450",
	"SG":        "018956",
	"ID":        "10110",
	"PH":        "1000",
	"NZ":        "1010",
	"IL":        "6100000",
	"AE":        "00000",
	"SA":        "11564",
	"HK":        "999077",
	"TW":        "100",
	DefaultCode: "12345",
}

// Postcode returns provided unless it is empty or one of the two
// placeholder values, in which case the table entry for code (or the
// default) is returned. Placeholder matching is exact.
func Postcode(code, provided string) string {
	if provided != "" && provided != placeholderUSPostcode && provided != placeholderGBPostcode {
		return provided
	}
	return resolve(postcodes, code)
}
