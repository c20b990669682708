// Package sheet is the editing surface over a relevé grid. It routes every
// input event to the grid and decides when the habitat controls need to be
// re-derived from the header row.
package sheet

import (
	"github.com/KaramelBytes/releve-cli/internal/habitat"
	"github.com/KaramelBytes/releve-cli/internal/matrix"
)

// Sheet owns one grid and its habitat selection.
type Sheet struct {
	grid     *matrix.Grid
	bridge   *habitat.Bridge
	rebuilds int
}

// New returns an empty rows x cols sheet.
func New(rows, cols int) *Sheet {
	return wrap(matrix.New(rows, cols))
}

// Restore rebuilds a sheet from persisted cells and selection. Selected
// indices that no longer have a column are dropped.
func Restore(rows [][]string, selected []int) *Sheet {
	s := wrap(matrix.FromRows(rows))
	seen := map[int]bool{}
	for _, i := range selected {
		if seen[i] {
			continue
		}
		seen[i] = true
		_ = s.bridge.Toggle(i)
	}
	return s
}

func wrap(g *matrix.Grid) *Sheet {
	s := &Sheet{grid: g, bridge: habitat.NewBridge(nil)}
	s.rederive()
	return s
}

func (s *Sheet) rederive() {
	s.bridge.Rebuild(habitat.DeriveLabels(s.grid.Header()))
	s.rebuilds++
}

// Rows returns the row count, header included.
func (s *Sheet) Rows() int { return s.grid.Rows() }

// Cols returns the column count.
func (s *Sheet) Cols() int { return s.grid.Cols() }

// ReadAll returns a copy of the cells, header row first.
func (s *Sheet) ReadAll() [][]string { return s.grid.ReadAll() }

// GetCell returns one cell, "" when out of bounds.
func (s *Sheet) GetCell(row, col int) string { return s.grid.GetCell(row, col) }

// SetCell writes one cell. Header edits re-derive the habitat controls; body
// edits do not.
func (s *Sheet) SetCell(row, col int, value string) bool {
	if !s.grid.SetCell(row, col, value) {
		return false
	}
	if row == 0 {
		s.rederive()
	}
	return true
}

// Paste applies a clipboard payload at the anchor, then re-derives labels.
func (s *Sheet) Paste(text string, row, col int) matrix.PasteStats {
	st := s.grid.Paste(text, row, col)
	s.rederive()
	return st
}

// PasteBlock is Paste for an already split block.
func (s *Sheet) PasteBlock(block [][]string, row, col int) matrix.PasteStats {
	st := s.grid.PasteBlock(block, row, col)
	s.rederive()
	return st
}

// AddRow grows the sheet by one data row.
func (s *Sheet) AddRow() {
	s.grid.AddRow()
	s.rederive()
}

// AddColumn grows the sheet by one relevé column.
func (s *Sheet) AddColumn() {
	s.grid.AddColumn()
	s.rederive()
}

// Resize grows the sheet to at least rows x cols.
func (s *Sheet) Resize(rows, cols int) {
	s.grid.Resize(rows, cols)
	s.rederive()
}

// Labels returns the derived habitat labels, one per column.
func (s *Sheet) Labels() []string { return habitat.DeriveLabels(s.grid.Header()) }

// Controls returns the habitat control set.
func (s *Sheet) Controls() []habitat.Control { return s.bridge.Controls() }

// Toggle flips selection of the habitat at column index.
func (s *Sheet) Toggle(index int) error { return s.bridge.Toggle(index) }

// ClearSelection deselects every habitat.
func (s *Sheet) ClearSelection() { s.bridge.Clear() }

// Selected returns the selected column indices, ascending.
func (s *Sheet) Selected() []int { return s.bridge.Selected() }

// Rebuilds counts how many times the habitat controls were re-derived.
func (s *Sheet) Rebuilds() int { return s.rebuilds }
