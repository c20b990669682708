package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KaramelBytes/releve-cli/internal/projection"
)

func num(f float64) string { return strconv.FormatFloat(f, 'f', 3, 64) }

// Projection summarizes a rendered plot: one line per habitat group with its
// point count and centroid.
func Projection(p projection.Plot) string {
	if p.Empty() {
		return placeholderStyle.Render(p.Placeholder)
	}
	centroids := p.Centroids()
	lines := []string{titleStyle.Render(p.Title)}
	for _, s := range p.Series {
		if s.Kind != projection.KindPoints {
			continue
		}
		line := fmt.Sprintf("%s: %d espèce(s)", headerStyle.Render(s.Group), len(s.X))
		if c, ok := centroids[s.Group]; ok {
			line += fmt.Sprintf(", centroïde (%s, %s)", num(c[0]), num(c[1]))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
