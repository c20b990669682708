package projection

import (
	"encoding/json"
	"html/template"
	"io"
)

type plotlyMarker struct {
	Size   int    `json:"size"`
	Symbol string `json:"symbol,omitempty"`
	Color  string `json:"color,omitempty"`
}

type plotlyTrace struct {
	X             []float64    `json:"x"`
	Y             []float64    `json:"y"`
	Mode          string       `json:"mode"`
	Type          string       `json:"type"`
	Name          string       `json:"name"`
	Text          []string     `json:"text,omitempty"`
	CustomData    []string     `json:"customdata,omitempty"`
	HoverTemplate string       `json:"hovertemplate,omitempty"`
	HoverInfo     string       `json:"hoverinfo,omitempty"`
	Marker        plotlyMarker `json:"marker"`
}

type plotlyAxis struct {
	Title         string `json:"title"`
	ZeroLine      bool   `json:"zeroline"`
	ZeroLineWidth int    `json:"zerolinewidth"`
	ZeroLineColor string `json:"zerolinecolor"`
}

type plotlyLayout struct {
	Title  string         `json:"title"`
	XAxis  plotlyAxis     `json:"xaxis"`
	YAxis  plotlyAxis     `json:"yaxis"`
	Legend map[string]any `json:"legend"`
}

// PlotlyFigure is a plot in the shape Plotly.newPlot expects.
type PlotlyFigure struct {
	Data   []plotlyTrace `json:"data"`
	Layout plotlyLayout  `json:"layout"`
}

// ToPlotly converts a rendered plot into Plotly traces and layout.
func ToPlotly(p Plot) PlotlyFigure {
	fig := PlotlyFigure{
		Data: make([]plotlyTrace, 0, len(p.Series)),
		Layout: plotlyLayout{
			Title:  p.Title,
			XAxis:  plotlyAxis{Title: p.XTitle, ZeroLine: true, ZeroLineWidth: 1, ZeroLineColor: "grey"},
			YAxis:  plotlyAxis{Title: p.YTitle, ZeroLine: true, ZeroLineWidth: 1, ZeroLineColor: "grey"},
			Legend: map[string]any{"orientation": "h", "y": -0.2},
		},
	}
	for _, s := range p.Series {
		tr := plotlyTrace{X: s.X, Y: s.Y, Mode: "markers", Type: "scatter", Name: s.Name}
		if s.Kind == KindCentroid {
			tr.Marker = plotlyMarker{Size: 15, Symbol: "cross", Color: "white"}
			tr.HoverInfo = "skip"
		} else {
			tr.Marker = plotlyMarker{Size: 8}
			tr.Text = s.Text
			tr.CustomData = s.Ecology
			tr.HoverTemplate = "<b>%{text}</b><br>%{customdata}<extra></extra>"
		}
		fig.Data = append(fig.Data, tr)
	}
	return fig
}

// PlotlyJSON marshals the Plotly figure for p.
func PlotlyJSON(p Plot) ([]byte, error) {
	return json.MarshalIndent(ToPlotly(p), "", "  ")
}

var pageTmpl = template.Must(template.New("projection").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{if .Title}}{{.Title}}{{else}}Projection{{end}}</title>
<script src="https://cdn.plot.ly/plotly-2.35.2.min.js"></script>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; margin: 20px; background: #1e1e1e; color: #ddd; }
#interactive-plot { width: 100%; height: 80vh; }
.placeholder { color: #aaa; font-style: italic; }
</style>
</head>
<body>
{{if .Placeholder}}<p class="placeholder">{{.Placeholder}}</p>{{else}}<div id="interactive-plot"></div>
<script>
const fig = {{.Figure}};
fig.layout.paper_bgcolor = "#2a2a2a";
fig.layout.plot_bgcolor = "#1e1e1e";
fig.layout.font = { color: "#ddd" };
Plotly.newPlot("interactive-plot", fig.data, fig.layout, { responsive: true });
</script>{{end}}
</body>
</html>
`))

// WriteHTML writes a standalone page showing p, or its placeholder.
func WriteHTML(w io.Writer, p Plot) error {
	return pageTmpl.Execute(w, struct {
		Title       string
		Placeholder string
		Figure      PlotlyFigure
	}{p.Title, p.Placeholder, ToPlotly(p)})
}
