// Package parsers provides the transaction parser registry and the built-in
// parser families. Each family knows how to turn the HTML list export of
// one SAP transaction into a table.
//
// Families are registered with the Registry at startup; there is no
// fallback parser, so an unregistered transaction code is an error.
package parsers
