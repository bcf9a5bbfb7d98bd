// Package server wires the gin engine that serves the parcelgw API:
// POST /api/shipping-rates and GET /api/health.
package server
