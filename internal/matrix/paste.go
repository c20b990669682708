package matrix

import (
	"regexp"
	"strings"

	"github.com/KaramelBytes/releve-cli/internal/logging"
)

var lineBreak = regexp.MustCompile(`\r?\n`)

// PasteStats reports what a paste did to the grid.
type PasteStats struct {
	Written int
	Clipped int
}

// SplitBlock turns a tab/newline-delimited clipboard payload into rows of
// cells. Both "\n" and "\r\n" separate rows. The single trailing line break
// spreadsheets append to every copy does not produce an extra row.
func SplitBlock(text string) [][]string {
	if text == "" {
		return nil
	}
	lines := lineBreak.Split(text, -1)
	if n := len(lines); n > 1 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	block := make([][]string, len(lines))
	for i, line := range lines {
		block[i] = strings.Split(line, "\t")
	}
	return block
}

// Paste writes a clipboard payload anchored at (startRow, startCol).
func (g *Grid) Paste(text string, startRow, startCol int) PasteStats {
	return g.PasteBlock(SplitBlock(text), startRow, startCol)
}

// PasteBlock overwrites the sub-rectangle anchored at (startRow, startCol)
// with block. Cells that would land outside the grid are skipped; the grid
// never grows during a paste.
func (g *Grid) PasteBlock(block [][]string, startRow, startCol int) PasteStats {
	var st PasteStats
	for i, row := range block {
		for j, v := range row {
			if g.SetCell(startRow+i, startCol+j, v) {
				st.Written++
			} else {
				st.Clipped++
			}
		}
	}
	if st.Clipped > 0 {
		logging.Logger().Debug("paste clipped to grid bounds",
			"anchor_row", startRow, "anchor_col", startCol,
			"written", st.Written, "clipped", st.Clipped)
	}
	return st
}
