// Package habitat derives user-facing habitat labels from the grid header and
// tracks which relevé columns the user selected for analysis.
package habitat

import (
	"fmt"
	"strings"
)

// Label returns the display label of column index j for header cell value.
// Blank headers fall back to "Relevé {j+1}".
func Label(j int, cell string) string {
	if s := strings.TrimSpace(cell); s != "" {
		return s
	}
	return fmt.Sprintf("Relevé %d", j+1)
}

// DeriveLabels maps a header row to one label per column. It has no side
// effects and runs on every header keystroke.
func DeriveLabels(header []string) []string {
	labels := make([]string, len(header))
	for j, cell := range header {
		labels[j] = Label(j, cell)
	}
	return labels
}
