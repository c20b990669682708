package analysis

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Response field names of per-species records.
const (
	FieldHabitat = "Source_Habitat"
	FieldSpecies = "Espece_User_Input_Raw"
	FieldEcology = "Ecologie"
)

// Source is anything that can hand over the full relevé grid, header first.
type Source interface {
	ReadAll() [][]string
}

// Request is the body posted to the analysis service.
type Request struct {
	RelevesData     [][]string `json:"releves_data"`
	SelectedIndices []int      `json:"selected_indices"`
}

// Communality is the share of a variable's variance explained by the
// extracted components.
type Communality struct {
	Variable string  `json:"Variable"`
	Percent  float64 `json:"Communalité (%)"`
}

// Syntaxon is a reference plant community matched against the submitted
// species.
type Syntaxon struct {
	ID            string   `json:"id,omitempty"`
	NameLatin     string   `json:"name_latin"`
	Score         float64  `json:"score"`
	CommonSpecies []string `json:"common_species"`
	AbsentSpecies []string `json:"absent_species"`
}

// Record is one open-ended JSON object: a species row or a coordinate row.
type Record map[string]any

// Habitat returns the originating habitat name.
func (r Record) Habitat() string { return r.String(FieldHabitat) }

// Name returns the species name as typed by the user.
func (r Record) Name() string { return r.String(FieldSpecies) }

// Ecology returns the ecology annotation.
func (r Record) Ecology() string { return r.String(FieldEcology) }

// String returns key as text; numbers are formatted, anything else is "".
func (r Record) String(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case json.Number:
		return v.String()
	}
	return ""
}

// Float returns key as a number. Missing, null and non-numeric values report
// ok=false.
func (r Record) Float(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

// Response is the decoded analysis service reply.
type Response struct {
	Communalities []Communality   `json:"communalities"`
	Species       []Record        `json:"species_data"`
	PCACoords     []Record        `json:"pca_coords,omitempty"`
	TopSyntaxons  []Syntaxon      `json:"top_syntaxons"`
	Error         json.RawMessage `json:"error,omitempty"`
	Message       string          `json:"message,omitempty"`

	RequestID string `json:"-"`
}

// Variables returns the communality variable names in service order.
func (r *Response) Variables() []string {
	out := make([]string, len(r.Communalities))
	for i, c := range r.Communalities {
		out[i] = c.Variable
	}
	return out
}

// errorText extracts a readable message from an `error` field that may be a
// plain string or an object carrying `message`.
func errorText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err == nil {
		if msg, ok := obj["message"].(string); ok {
			return msg
		}
	}
	return strings.TrimSpace(string(raw))
}
