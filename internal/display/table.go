package display

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Row is one line of a table. Highlight marks the row that should stand out
// (the next prayer, or the city closest to iftar).
type Row struct {
	Cells     []string
	Highlight bool
}

// Table renders aligned columnar output with an optional header row.
// Cell widths are computed over the plain text, so styling is applied after
// layout and never skews alignment.
type Table struct {
	Headers []string
	Rows    []Row

	// AccentHex styles highlighted rows with a 24-bit theme color.
	// When empty, highlighted rows use the default accent.
	AccentHex string
}

// Render produces the table as a string, one line per row.
func (t *Table) Render() string {
	widths := t.columnWidths()

	var b strings.Builder

	if len(t.Headers) > 0 {
		b.WriteString(Dim(t.formatRow(t.Headers, widths)))
		b.WriteByte('\n')
	}

	for _, row := range t.Rows {
		line := t.formatRow(row.Cells, widths)
		if row.Highlight {
			if t.AccentHex != "" {
				line = HexBold(t.AccentHex, line)
			} else {
				line = Accent(line)
			}
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	return b.String()
}

// columnWidths returns the widest cell per column across headers and rows.
func (t *Table) columnWidths() []int {
	n := len(t.Headers)
	for _, row := range t.Rows {
		if len(row.Cells) > n {
			n = len(row.Cells)
		}
	}

	widths := make([]int, n)
	measure := func(cells []string) {
		for i, cell := range cells {
			if w := utf8.RuneCountInString(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(t.Headers)
	for _, row := range t.Rows {
		measure(row.Cells)
	}

	return widths
}

// formatRow pads each cell to its column width, two spaces between columns.
// The last column is left unpadded to avoid trailing whitespace.
func (t *Table) formatRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		if i == len(cells)-1 {
			parts[i] = cell
			continue
		}
		parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
	}
	return strings.Join(parts, "  ")
}

// ProgressBar renders a fixed-width bar like "[████████░░░░] 52%".
// percent is clamped to [0, 100].
func ProgressBar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %.0f%%", bar, percent)
}
