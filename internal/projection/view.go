// Package projection turns an analysis response into a scatter plot of
// species grouped by habitat, on two user-chosen variables.
package projection

import (
	"errors"
	"fmt"
	"slices"

	"github.com/KaramelBytes/releve-cli/internal/analysis"
)

// State of a View.
type State int

const (
	Uninitialized State = iota
	AxesUnset
	Ready
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case AxesUnset:
		return "axes-unset"
	case Ready:
		return "ready"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Placeholder texts shown instead of a plot.
const (
	PlaceholderNoResponse    = "Run an analysis to see the projection."
	PlaceholderNoCommunality = "Aucune donnée de communalité à afficher."
	PlaceholderChooseAxes    = "Veuillez sélectionner les axes X et Y."
	centroidPrefix           = "Centroïde "
)

// ErrUnknownVariable is returned when an axis is set to a variable absent from
// the communality list.
var ErrUnknownVariable = errors.New("unknown variable")

// RenderPreconditionError explains why a View cannot plot yet. It is not meant
// for the error banner: callers show Plot.Placeholder instead.
type RenderPreconditionError struct {
	State State
}

func (e *RenderPreconditionError) Error() string {
	return "projection not ready: " + e.State.String()
}

// SeriesKind tells point series from centroid markers.
type SeriesKind string

const (
	KindPoints   SeriesKind = "points"
	KindCentroid SeriesKind = "centroid"
)

// Series is one scatter trace.
type Series struct {
	Name    string
	Kind    SeriesKind
	Group   string
	X, Y    []float64
	Text    []string
	Ecology []string
}

// Plot is the full render output.
type Plot struct {
	Title       string
	XTitle      string
	YTitle      string
	Series      []Series
	Placeholder string
}

// Empty reports whether the plot carries a placeholder instead of series.
func (p Plot) Empty() bool { return p.Placeholder != "" }

// View holds the current response and the axis choice. Nothing else survives
// between renders.
type View struct {
	resp *analysis.Response
	x, y string
}

// Load replaces the response wholesale and resets the axes to the first and
// second communality variables.
func (v *View) Load(resp *analysis.Response) {
	v.resp = resp
	v.x, v.y = "", ""
	if resp == nil {
		return
	}
	if n := len(resp.Communalities); n > 0 {
		v.x = resp.Communalities[0].Variable
		if n > 1 {
			v.y = resp.Communalities[1].Variable
		}
	}
}

// Response returns the loaded response, or nil.
func (v *View) Response() *analysis.Response { return v.resp }

// Axes returns the current X and Y variable names.
func (v *View) Axes() (x, y string) { return v.x, v.y }

// SetX picks the X variable and re-renders.
func (v *View) SetX(name string) (Plot, error) {
	if err := v.check(name); err != nil {
		return Plot{}, err
	}
	v.x = name
	return v.Render(), nil
}

// SetY picks the Y variable and re-renders.
func (v *View) SetY(name string) (Plot, error) {
	if err := v.check(name); err != nil {
		return Plot{}, err
	}
	v.y = name
	return v.Render(), nil
}

func (v *View) check(name string) error {
	if v.resp == nil {
		return &RenderPreconditionError{State: Uninitialized}
	}
	if !slices.Contains(v.resp.Variables(), name) {
		return fmt.Errorf("%w: %q", ErrUnknownVariable, name)
	}
	return nil
}

// State reports where the view stands.
func (v *View) State() State {
	switch {
	case v.resp == nil:
		return Uninitialized
	case v.x == "" || v.y == "":
		return AxesUnset
	}
	return Ready
}

// Ready returns a RenderPreconditionError unless both axes are set.
func (v *View) Ready() error {
	if s := v.State(); s != Ready {
		return &RenderPreconditionError{State: s}
	}
	return nil
}

// Render recomputes the whole plot from the response and the axis choice.
func (v *View) Render() Plot {
	switch v.State() {
	case Uninitialized:
		return Plot{Placeholder: PlaceholderNoResponse}
	case AxesUnset:
		if len(v.resp.Communalities) == 0 {
			return Plot{Placeholder: PlaceholderNoCommunality}
		}
		return Plot{Placeholder: PlaceholderChooseAxes}
	}

	records := Join(v.resp.Species, v.resp.PCACoords)
	plot := Plot{
		Title:  fmt.Sprintf("%s vs. %s", v.y, v.x),
		XTitle: v.x,
		YTitle: v.y,
	}
	for _, g := range Partition(records, v.x, v.y) {
		s := Series{Name: g.Habitat, Kind: KindPoints, Group: g.Habitat}
		for _, p := range g.Points {
			s.X = append(s.X, p.X)
			s.Y = append(s.Y, p.Y)
			s.Text = append(s.Text, p.Name)
			s.Ecology = append(s.Ecology, p.Ecology)
		}
		plot.Series = append(plot.Series, s)
		if cx, cy, ok := Centroid(g.Points); ok {
			plot.Series = append(plot.Series, Series{
				Name:  centroidPrefix + g.Habitat,
				Kind:  KindCentroid,
				Group: g.Habitat,
				X:     []float64{cx},
				Y:     []float64{cy},
			})
		}
	}
	return plot
}

// Centroids returns the centroid of every group keyed by habitat.
func (p Plot) Centroids() map[string][2]float64 {
	out := map[string][2]float64{}
	for _, s := range p.Series {
		if s.Kind == KindCentroid && len(s.X) == 1 {
			out[s.Group] = [2]float64{s.X[0], s.Y[0]}
		}
	}
	return out
}
