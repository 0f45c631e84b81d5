package exporter

import "fmt"

// formatValue renders a nullable numeric for a spreadsheet cell. Nil
// exports as an empty string so sparse data stays visibly sparse.
func formatValue(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *v)
}

// formatPtr returns the cell value for excelize: the float itself when
// known, an empty string otherwise.
func formatPtr(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
