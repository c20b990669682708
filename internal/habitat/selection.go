package habitat

import (
	"errors"
	"sort"
)

// ErrUnknownHabitat is returned when toggling an index that has no control.
var ErrUnknownHabitat = errors.New("no habitat at that column index")

// Selection is a set of selected column indices.
type Selection map[int]struct{}

// Toggle flips membership of i.
func (s Selection) Toggle(i int) {
	if _, ok := s[i]; ok {
		delete(s, i)
		return
	}
	s[i] = struct{}{}
}

// Has reports whether i is selected.
func (s Selection) Has(i int) bool {
	_, ok := s[i]
	return ok
}

// Indices returns the selected indices in ascending order.
func (s Selection) Indices() []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Control is one selectable habitat button.
type Control struct {
	Index    int
	Label    string
	Selected bool
}

// Bridge keeps the selectable control set in step with the grid header.
type Bridge struct {
	labels []string
	sel    Selection
}

// NewBridge returns a bridge with controls for labels and nothing selected.
func NewBridge(labels []string) *Bridge {
	b := &Bridge{}
	b.Rebuild(labels)
	return b
}

// Rebuild replaces the control set 1:1 with labels and empties the selection,
// since old indices may no longer point at the same habitat.
func (b *Bridge) Rebuild(labels []string) {
	b.labels = append([]string(nil), labels...)
	b.sel = Selection{}
}

// Toggle flips the selection state of the control at index.
func (b *Bridge) Toggle(index int) error {
	if index < 0 || index >= len(b.labels) {
		return ErrUnknownHabitat
	}
	b.sel.Toggle(index)
	return nil
}

// Clear deselects every control.
func (b *Bridge) Clear() { b.sel = Selection{} }

// Selected returns the selected column indices, ascending.
func (b *Bridge) Selected() []int { return b.sel.Indices() }

// Labels returns the current control labels.
func (b *Bridge) Labels() []string { return append([]string(nil), b.labels...) }

// Controls returns the control set in column order.
func (b *Bridge) Controls() []Control {
	out := make([]Control, len(b.labels))
	for i, l := range b.labels {
		out[i] = Control{Index: i, Label: l, Selected: b.sel.Has(i)}
	}
	return out
}
