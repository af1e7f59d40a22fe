// Package dataset loads the prepared teacher-training outcomes file into an
// immutable in-memory Dataset.
//
// Two formats are accepted, chosen by file extension:
//
//	.csv   header row, comma-delimited (encoding/csv)
//	.xlsx  first sheet whose first row carries the required header (excelize)
//
// Every value is checked at load time. Category cells must name a known
// course level, QTS status or employment status; period cells must be six
// digit codes (a trailing ".0" from spreadsheet exports is dropped); numeric
// cells may be empty or a suppression marker, both of which load as NaN.
// Percentages outside [0,100] are rejected. Errors carry the 1-based row
// number of the offending record.
//
// The resulting Dataset also exposes the rows as a go-gg table so that the
// series package can filter and group without touching the row slice.
package dataset
