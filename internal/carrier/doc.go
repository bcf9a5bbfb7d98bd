// Package carrier is the HTTP client for the ParcelMonkey GetQuote API.
//
// It encodes quote requests, sends them with the account headers
// (apiversion, userid, token), and maps the returned quote objects into
// Rate values sorted by price. Calls optionally run through a circuit
// breaker and are traced and measured.
package carrier
