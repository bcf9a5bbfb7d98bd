package carrier

import (
	"bytes"
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// upstreamQuote is one element of the GetQuote response. Fields stay raw
// because the API mixes strings, numbers and nulls.
type upstreamQuote struct {
	Carrier            json.RawMessage `json:"carrier"`
	Service            json.RawMessage `json:"service"`
	ServiceName        json.RawMessage `json:"service_name"`
	ServiceDescription json.RawMessage `json:"service_description"`
	ShippingPriceNet   json.RawMessage `json:"shipping_price_net"`
	TotalPriceNet      json.RawMessage `json:"total_price_net"`
}

// decodeQuotes parses a GetQuote body. An empty or null body decodes to no
// quotes; anything other than a JSON array is ErrUnexpectedResponse.
func decodeQuotes(body []byte) ([]upstreamQuote, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] != '[' {
		return nil, ErrUnexpectedResponse
	}

	var quotes []upstreamQuote
	if err := json.Unmarshal(trimmed, &quotes); err != nil {
		return nil, ErrUnexpectedResponse
	}
	return quotes, nil
}

// toRates maps upstream quotes to rates sorted ascending by price. Quotes
// whose price cannot be parsed are dropped; skipped reports how many.
func toRates(quotes []upstreamQuote) (rates []Rate, skipped int) {
	rates = make([]Rate, 0, len(quotes))
	for _, q := range quotes {
		price, ok := parsePrice(firstTruthy(q.ShippingPriceNet, q.TotalPriceNet))
		if !ok {
			skipped++
			continue
		}

		transit := text(firstTruthy(q.ServiceDescription))
		if transit == "" {
			transit = DefaultTransit
		}

		rates = append(rates, Rate{
			Carrier: text(firstTruthy(q.Carrier, q.Service)),
			Service: text(firstTruthy(q.ServiceName, q.Service)),
			Price:   price,
			Transit: transit,
		})
	}

	SortRates(rates)
	return rates, skipped
}

// SortRates orders rates by ascending price, keeping input order for ties.
func SortRates(rates []Rate) {
	sort.SliceStable(rates, func(i, j int) bool {
		return rates[i].Price < rates[j].Price
	})
}

// firstTruthy returns the first value that is present and not empty: not
// null, false, 0 or "". If none qualifies the last candidate is returned.
func firstTruthy(values ...json.RawMessage) json.RawMessage {
	for _, v := range values {
		if truthy(v) {
			return v
		}
	}
	if len(values) == 0 {
		return nil
	}
	return values[len(values)-1]
}

func truthy(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	if len(v) == 0 {
		return false
	}

	switch v[0] {
	case 'n', 'f':
		return false
	case '"':
		return len(v) > 2
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		f, err := strconv.ParseFloat(string(v), 64)
		return err == nil && f != 0
	default:
		return true
	}
}

// text renders a raw scalar as a string. Strings are unquoted, numbers and
// booleans keep their literal form, everything else is empty.
func text(raw json.RawMessage) string {
	v := bytes.TrimSpace(raw)
	if len(v) == 0 {
		return ""
	}

	switch v[0] {
	case '"':
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return ""
		}
		return s
	case 't', 'f', '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return string(v)
	default:
		return ""
	}
}

// numericPrefix matches the longest leading decimal literal.
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// parsePrice reads a JSON number, or the leading decimal of a string such
// as "12.50 GBP". ok is false when no number can be read.
func parsePrice(raw json.RawMessage) (float64, bool) {
	v := bytes.TrimSpace(raw)
	if len(v) == 0 {
		return 0, false
	}

	s := string(v)
	if v[0] == '"' {
		if err := json.Unmarshal(v, &s); err != nil {
			return 0, false
		}
		s = strings.TrimLeft(s, " \t\n\r\v\f")
	}

	match := numericPrefix.FindString(s)
	if match == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
