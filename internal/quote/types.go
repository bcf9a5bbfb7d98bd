package quote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vyrodovalexey/parcelgw/internal/carrier"
)

// Request is the inbound rate request.
type Request struct {
	CollectionCountry  Text   `json:"collection_country"`
	DeliveryCountry    Text   `json:"delivery_country"`
	Weight             Weight `json:"weight"`
	CollectionPostcode Text   `json:"collection_postcode"`
	DeliveryPostcode   Text   `json:"delivery_postcode"`
}

// Undefined stands in for a blank country in the rendered route.
const Undefined = "undefined"

// Route renders "<origin> → <destination>".
func (r Request) Route() string {
	return fmt.Sprintf("%s → %s", r.CollectionCountry.orUndefined(), r.DeliveryCountry.orUndefined())
}

// Envelope is the quote endpoint response body.
type Envelope struct {
	Success bool           `json:"success"`
	Error   string         `json:"error,omitempty"`
	Rates   []carrier.Rate `json:"rates"`
	Route   string         `json:"route"`
	Weight  Weight         `json:"weight"`
}

// Text is a string field that accepts any JSON value. Numbers and
// booleans keep their literal form, arrays and objects their compact JSON
// text, and null decodes as blank.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(b []byte) error {
	v := bytes.TrimSpace(b)
	switch {
	case len(v) == 0 || bytes.Equal(v, []byte("null")):
		*t = ""
	case v[0] == '"':
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return err
		}
		*t = Text(s)
	case v[0] == '[' || v[0] == '{':
		var buf bytes.Buffer
		if err := json.Compact(&buf, v); err != nil {
			return err
		}
		*t = Text(buf.String())
	default:
		*t = Text(v)
	}
	return nil
}

// String implements fmt.Stringer.
func (t Text) String() string {
	return string(t)
}

func (t Text) orUndefined() string {
	if t == "" {
		return Undefined
	}
	return string(t)
}

// Weight is the caller's parcel weight in kilograms. It accepts any JSON
// value and is echoed back exactly as received. Only finite numbers and
// numeric strings count as numeric.
type Weight struct {
	raw     json.RawMessage
	value   float64
	numeric bool
}

// NewWeight returns a numeric Weight.
func NewWeight(kg float64) Weight {
	return Weight{
		raw:     json.RawMessage(strconv.FormatFloat(kg, 'f', -1, 64)),
		value:   kg,
		numeric: true,
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (w *Weight) UnmarshalJSON(b []byte) error {
	v := bytes.TrimSpace(b)
	*w = Weight{}
	if len(v) == 0 || bytes.Equal(v, []byte("null")) {
		return nil
	}

	w.raw = append(json.RawMessage(nil), v...)

	switch {
	case v[0] == '"':
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return err
		}
		w.value, w.numeric = parseKilograms(strings.TrimSpace(s))
	case isNumberLiteral(v):
		w.value, w.numeric = parseKilograms(string(v))
	}
	return nil
}

func parseKilograms(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// MarshalJSON echoes the value as received, or null.
func (w Weight) MarshalJSON() ([]byte, error) {
	if len(w.raw) == 0 {
		return []byte("null"), nil
	}
	return w.raw, nil
}

// Present reports whether a non-null weight was supplied.
func (w Weight) Present() bool {
	return len(w.raw) > 0
}

// Raw returns the weight as received, or nil when absent.
func (w Weight) Raw() json.RawMessage {
	return w.raw
}

// Kilograms returns the numeric value and whether one could be read.
func (w Weight) Kilograms() (float64, bool) {
	return w.value, w.numeric
}

// blank reports whether the weight counts as not supplied: absent, zero,
// false or an empty string.
func (w Weight) blank() bool {
	if !w.Present() {
		return true
	}
	if w.numeric {
		return w.value == 0
	}
	switch string(w.raw) {
	case `""`, "false":
		return true
	}
	return false
}

// String renders the weight for logs.
func (w Weight) String() string {
	if !w.Present() {
		return "null"
	}
	return string(w.raw)
}

func isNumberLiteral(v []byte) bool {
	if len(v) == 0 {
		return false
	}
	c := v[0]
	return c == '-' || (c >= '0' && c <= '9')
}
