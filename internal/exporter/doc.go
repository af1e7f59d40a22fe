// Package exporter turns dashboard views into downloads.
//
// Every view is first laid out as a Table. WriteCSV streams a table as CSV,
// optionally with a UTF-8 BOM so spreadsheet tools detect the encoding.
// WriteWorkbook writes several tables as an XLSX workbook with one sheet
// per table and a native chart next to each.
//
// Example usage:
//
//	exp := exporter.New(exporter.WriteOptions{BOMPrefix: true}, metrics, logger)
//	name, err := exp.CSV(ctx, w, totalsView)
//
//	err = exp.Workbook(ctx, w, totalsView, ageView, comparisonView)
package exporter
