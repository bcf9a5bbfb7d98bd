// Package quote assembles shipping-rate quotes.
//
// Service.Quote turns an inbound rate request into a carrier request using
// the lookup tables and the collection-date calendar, asks the carrier for
// rates, and on any failure substitutes the synthetic list produced by
// Fallback. The result is always an Envelope; callers branch on Success.
package quote
