package matrix

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitBlock(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want [][]string
	}{
		{"empty", "", nil},
		{"single cell", "Carex", [][]string{{"Carex"}}},
		{"tabs", "a\tb\tc", [][]string{{"a", "b", "c"}}},
		{"lf", "a\tb\nc\td", [][]string{{"a", "b"}, {"c", "d"}}},
		{"crlf", "a\tb\r\nc\td", [][]string{{"a", "b"}, {"c", "d"}}},
		{"trailing newline", "a\tb\r\nc\td\r\n", [][]string{{"a", "b"}, {"c", "d"}}},
		{"empty cells kept", "a\t\tc\n\t", [][]string{{"a", "", "c"}, {"", ""}}},
		{"blank line inside", "a\n\nb", [][]string{{"a"}, {""}, {"b"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitBlock(tt.in))
		})
	}
}

func TestPasteClipsToBounds(t *testing.T) {
	g := New(11, 5)
	rows := make([]string, 3)
	for i := range rows {
		rows[i] = strings.Join([]string{"c0", "c1", "c2", "c3", "c4", "c5", "c6"}, "\t")
	}

	st := g.Paste(strings.Join(rows, "\n"), 0, 0)

	assert.Equal(t, PasteStats{Written: 15, Clipped: 6}, st)
	assert.Equal(t, 5, g.Cols(), "paste must not grow the grid")
	for r := 0; r < 3; r++ {
		assert.Equal(t, []string{"c0", "c1", "c2", "c3", "c4"}, g.ReadAll()[r])
	}
	for r := 3; r < 11; r++ {
		for c := 0; c < 5; c++ {
			assert.Empty(t, g.GetCell(r, c))
		}
	}
}

func TestPasteAnchoredInside(t *testing.T) {
	g := filled(4, 4)
	st := g.Paste("A\tB\tC\nD\tE\tF\nG\tH\tI", 2, 2)

	assert.Equal(t, 4, st.Written)
	assert.Equal(t, 5, st.Clipped)
	assert.Equal(t, "A", g.GetCell(2, 2))
	assert.Equal(t, "B", g.GetCell(2, 3))
	assert.Equal(t, "D", g.GetCell(3, 2))
	assert.Equal(t, "E", g.GetCell(3, 3))
	// untouched
	assert.Equal(t, "1:1", g.GetCell(1, 1))
	assert.Equal(t, "2:1", g.GetCell(2, 1))
}

func TestPasteEdgeCases(t *testing.T) {
	t.Run("empty blob", func(t *testing.T) {
		g := filled(2, 2)
		before := g.ReadAll()
		assert.Equal(t, PasteStats{}, g.Paste("", 0, 0))
		assert.Equal(t, before, g.ReadAll())
	})
	t.Run("single cell", func(t *testing.T) {
		g := New(3, 3)
		st := g.Paste("Juncus effusus", 1, 2)
		assert.Equal(t, PasteStats{Written: 1}, st)
		assert.Equal(t, "Juncus effusus", g.GetCell(1, 2))
	})
	t.Run("anchor outside", func(t *testing.T) {
		g := filled(2, 2)
		before := g.ReadAll()
		st := g.Paste("a\tb\nc\td", 2, 0)
		assert.Equal(t, 0, st.Written)
		assert.Equal(t, 4, st.Clipped)
		st = g.Paste("a", 0, 5)
		assert.Equal(t, 0, st.Written)
		assert.Equal(t, before, g.ReadAll())
	})
}
