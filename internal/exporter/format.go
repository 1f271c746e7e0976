package exporter

import (
	"fmt"
	"math"
)

// formatFloat formats a float64 value for CSV output with exactly 2 decimal places
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatOptional formats a nullable amount; nil, NaN and infinities are blank
func formatOptional(f *float64) string {
	if f == nil || !finite(*f) {
		return ""
	}
	return formatFloat(*f)
}

// cellNumber returns a workbook cell value; non-finite numbers become blank cells
func cellNumber(f float64) interface{} {
	if !finite(f) {
		return nil
	}
	return f
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
