// Package matrix holds the relevé grid: a rectangular table of raw text cells
// where row 0 carries one habitat header per column.
package matrix

import (
	"fmt"

	"github.com/KaramelBytes/releve-cli/internal/logging"
)

// Grid is the single source of truth for entered data. Every row always has
// exactly Cols() cells.
type Grid struct {
	cells [][]string
	rows  int
	cols  int
}

// New returns an all-empty rows x cols grid. Negative sizes are treated as 0.
func New(rows, cols int) *Grid {
	g := &Grid{}
	g.Resize(rows, cols)
	return g
}

// FromRows adopts a persisted grid. Ragged rows are padded with empty cells
// up to the widest row so the rectangular invariant holds.
func FromRows(rows [][]string) *Grid {
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	g := New(len(rows), width)
	for i, r := range rows {
		copy(g.cells[i], r)
	}
	return g
}

// Rows returns the row count, header row included.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the column count.
func (g *Grid) Cols() int { return g.cols }

// Resize grows the grid to at least rows x cols. Shrinking is not supported:
// a dimension smaller than the current one keeps its current size. Existing
// cells keep their values at the same coordinates; new cells are empty.
func (g *Grid) Resize(rows, cols int) {
	if rows < g.rows {
		rows = g.rows
	}
	if cols < g.cols {
		cols = g.cols
	}
	if rows == g.rows && cols == g.cols {
		return
	}
	if cols > g.cols {
		for i := range g.cells {
			g.cells[i] = append(g.cells[i], make([]string, cols-g.cols)...)
		}
	}
	for len(g.cells) < rows {
		g.cells = append(g.cells, make([]string, cols))
	}
	logging.Logger().Debug("grid resized",
		"from", fmt.Sprintf("%dx%d", g.rows, g.cols),
		"to", fmt.Sprintf("%dx%d", rows, cols))
	g.rows, g.cols = rows, cols
}

// AddRow appends one empty data row.
func (g *Grid) AddRow() { g.Resize(g.rows+1, g.cols) }

// AddColumn appends one empty column (a new relevé).
func (g *Grid) AddColumn() { g.Resize(g.rows, g.cols+1) }

// ReadAll returns a copy of the grid in row-major order, header row first.
func (g *Grid) ReadAll() [][]string {
	out := make([][]string, g.rows)
	for i, r := range g.cells {
		out[i] = append([]string(nil), r...)
	}
	return out
}

// Header returns a copy of row 0, or nil for an empty grid.
func (g *Grid) Header() []string {
	if g.rows == 0 {
		return nil
	}
	return append([]string(nil), g.cells[0]...)
}

// InBounds reports whether (row, col) addresses an existing cell.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < g.rows && col < g.cols
}

// SetCell writes value at (row, col). Out-of-bounds writes are ignored and
// report false.
func (g *Grid) SetCell(row, col int, value string) bool {
	if !g.InBounds(row, col) {
		return false
	}
	g.cells[row][col] = value
	return true
}

// GetCell returns the cell at (row, col), or "" when out of bounds.
func (g *Grid) GetCell(row, col int) string {
	if !g.InBounds(row, col) {
		return ""
	}
	return g.cells[row][col]
}
