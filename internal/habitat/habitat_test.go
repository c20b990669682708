package habitat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveLabels(t *testing.T) {
	header := []string{"Prairie", "  ", "", " Mégaphorbiaie "}
	want := []string{"Prairie", "Relevé 2", "Relevé 3", "Mégaphorbiaie"}

	assert.Equal(t, want, DeriveLabels(header))
	assert.Equal(t, want, DeriveLabels(header), "derivation must be deterministic")
	assert.Equal(t, []string{"Prairie", "  ", "", " Mégaphorbiaie "}, header, "input must not be touched")
	assert.Empty(t, DeriveLabels(nil))
}

func TestSelectionToggleIsIdempotentUnderDoubleToggle(t *testing.T) {
	s := Selection{}
	s.Toggle(3)
	s.Toggle(1)
	assert.Equal(t, []int{1, 3}, s.Indices())
	s.Toggle(3)
	s.Toggle(3)
	assert.Equal(t, []int{1, 3}, s.Indices())
	s.Toggle(1)
	assert.Equal(t, []int{3}, s.Indices())
}

func TestBridgeRebuildResetsSelection(t *testing.T) {
	b := NewBridge([]string{"A", "B", "C"})
	require.NoError(t, b.Toggle(0))
	require.NoError(t, b.Toggle(2))
	assert.Equal(t, []int{0, 2}, b.Selected())

	b.Rebuild([]string{"A", "B", "C", "Relevé 4"})

	assert.Empty(t, b.Selected())
	ctrls := b.Controls()
	require.Len(t, ctrls, 4)
	for i, c := range ctrls {
		assert.Equal(t, i, c.Index)
		assert.False(t, c.Selected)
	}
	assert.Equal(t, "Relevé 4", ctrls[3].Label)
}

func TestBridgeToggleUnknownIndex(t *testing.T) {
	b := NewBridge([]string{"A"})
	assert.ErrorIs(t, b.Toggle(1), ErrUnknownHabitat)
	assert.ErrorIs(t, b.Toggle(-1), ErrUnknownHabitat)
	assert.Empty(t, b.Selected())

	require.NoError(t, b.Toggle(0))
	assert.True(t, b.Controls()[0].Selected)
	b.Clear()
	assert.Empty(t, b.Selected())
}
