package projection

import "github.com/KaramelBytes/releve-cli/internal/analysis"

// Point is one plotted species.
type Point struct {
	X, Y    float64
	Name    string
	Ecology string
}

// Group is the set of points originating from one habitat.
type Group struct {
	Habitat string
	Points  []Point
}

// Join overlays each species record with the coordinate record at the same
// position. Coordinates win on key clash; a missing coordinate record leaves
// the species record as is.
func Join(species, coords []analysis.Record) []analysis.Record {
	out := make([]analysis.Record, len(species))
	for i, sp := range species {
		m := make(analysis.Record, len(sp))
		for k, v := range sp {
			m[k] = v
		}
		if i < len(coords) {
			for k, v := range coords[i] {
				m[k] = v
			}
		}
		out[i] = m
	}
	return out
}

// Partition groups records by habitat of origin in first-seen order. An axis
// value that is missing or not numeric counts as 0.
func Partition(records []analysis.Record, xVar, yVar string) []Group {
	var groups []Group
	index := map[string]int{}
	for _, r := range records {
		h := r.Habitat()
		gi, ok := index[h]
		if !ok {
			gi = len(groups)
			index[h] = gi
			groups = append(groups, Group{Habitat: h})
		}
		x, _ := r.Float(xVar)
		y, _ := r.Float(yVar)
		groups[gi].Points = append(groups[gi].Points, Point{X: x, Y: y, Name: r.Name(), Ecology: r.Ecology()})
	}
	return groups
}

// Centroid returns the arithmetic mean of the group's coordinates. ok is false
// for an empty group.
func Centroid(points []Point) (x, y float64, ok bool) {
	if len(points) == 0 {
		return 0, 0, false
	}
	for _, p := range points {
		x += p.X
		y += p.Y
	}
	n := float64(len(points))
	return x / n, y / n, true
}
