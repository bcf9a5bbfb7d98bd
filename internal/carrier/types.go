package carrier

import "encoding/json"

// Fixed parcel dimensions and declared value sent with every quote.
const (
	BoxLength       = 30
	BoxWidth        = 25
	BoxHeight       = 20
	GoodsValue      = 100
	DefaultWeightKg = 1
)

// Synthetic contact identities.
const (
	SenderName     = "Test Sender"
	SenderEmail    = "sender@example.com"
	RecipientName  = "Test Recipient"
	RecipientEmail = "recipient@example.com"
)

// DefaultTransit is used when a quote has no service description.
const DefaultTransit = "Standard delivery"

// QuoteRequest is the GetQuote request body.
type QuoteRequest struct {
	Origin         string  `json:"origin"`
	Destination    string  `json:"destination"`
	Boxes          []Box   `json:"boxes"`
	GoodsValue     float64 `json:"goods_value"`
	CollectionDate string  `json:"collection_date"`
	Sender         Contact `json:"sender"`
	Recipient      Contact `json:"recipient"`
}

// Box is one parcel in a quote request. Dimensions are centimetres.
// Weight is the caller's JSON value, passed through unchanged.
type Box struct {
	Weight json.RawMessage `json:"weight"`
	Length int             `json:"length"`
	Width  int             `json:"width"`
	Height int             `json:"height"`
}

// Contact is a sender or recipient block.
type Contact struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address1 string `json:"address1"`
	Town     string `json:"town"`
	County   string `json:"county"`
	Postcode string `json:"postcode"`
}

// Rate is a normalized carrier offer.
type Rate struct {
	Carrier string  `json:"carrier"`
	Service string  `json:"service"`
	Price   float64 `json:"price"`
	Transit string  `json:"transit"`
}
