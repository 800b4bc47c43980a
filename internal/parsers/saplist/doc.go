// Package saplist scrapes the HTML "list" export SAP GUI writes for report
// transactions (Save list in file... > HTML format).
//
// The export is a sequence of <table class="list"> elements. The first ones
// carry report metadata. In the first data table, the first <tbody> holds
// the column headers; every later <tbody> holds data rows. Each following
// table repeats the header in its first <tbody>, which is skipped. Every
// cell wraps its text in <nobr> elements; the leading cell of a data row
// carries two extra icon labels before the value.
package saplist
