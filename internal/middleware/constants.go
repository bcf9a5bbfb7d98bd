package middleware

// HTTP header names.
const (
	HeaderOrigin                     = "Origin"
	HeaderXRequestID                 = "X-Request-ID"
	HeaderAccessControlRequestHeader = "Access-Control-Request-Headers"
	HeaderVary                       = "Vary"
)

// Context keys stored on *gin.Context.
const (
	// RequestIDKey holds the request ID string.
	RequestIDKey = "requestID"
	// SpanKey holds the server span.
	SpanKey = "otel-span"
)

// unknownRoute labels requests that matched no registered route.
const unknownRoute = "unmatched"

// ErrorResponse is the JSON body of every non-quote error answer.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}
