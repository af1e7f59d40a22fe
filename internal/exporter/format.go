package exporter

import (
	"fmt"

	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts/domain"
)

// formatFloat formats a float64 value for CSV output with exactly 2 decimal places
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatCell renders a table cell for CSV. Missing measures are empty.
func formatCell(v interface{}) string {
	switch v := v.(type) {
	case domain.Measure:
		if !v.Valid() {
			return ""
		}
		return formatFloat(float64(v))
	case string:
		return v
	}
	return fmt.Sprint(v)
}

// sheetCell converts a table cell for a worksheet. Missing measures
// become blank cells.
func sheetCell(v interface{}) interface{} {
	if m, ok := v.(domain.Measure); ok {
		if !m.Valid() {
			return nil
		}
		return float64(m)
	}
	return v
}
