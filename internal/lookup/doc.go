// Package lookup holds the static per-country tables used to fill carrier
// quote requests: sender and recipient contact defaults and postcodes.
//
// The tables are package-level and never mutated; callers only reach them
// through Defaults and Postcode.
package lookup
