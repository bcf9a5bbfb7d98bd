package carrier

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Client.GetQuote.
var (
	// ErrNoQuotes means the upstream answered but offered nothing usable.
	ErrNoQuotes = errors.New("no quotes received from ParcelMonkey")

	// ErrUnexpectedResponse means the body was not a list of quotes.
	ErrUnexpectedResponse = errors.New("unexpected response from ParcelMonkey")
)

// maxErrorBodyExcerpt bounds the body text kept in StatusError.
const maxErrorBodyExcerpt = 256

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	StatusCode int
	Body       string
}

// NewStatusError builds a StatusError, truncating body.
func NewStatusError(code int, body []byte) *StatusError {
	excerpt := string(body)
	if len(excerpt) > maxErrorBodyExcerpt {
		excerpt = excerpt[:maxErrorBodyExcerpt] + "..."
	}
	return &StatusError{StatusCode: code, Body: excerpt}
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("request failed with status code %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed with status code %d: %s", e.StatusCode, e.Body)
}

// Is matches any *StatusError with the same status code, or any
// *StatusError when target's code is zero.
func (e *StatusError) Is(target error) bool {
	t, ok := target.(*StatusError)
	if !ok {
		return false
	}
	return t.StatusCode == 0 || t.StatusCode == e.StatusCode
}
