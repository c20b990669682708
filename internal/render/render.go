// Package render draws workbook state for the terminal.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/KaramelBytes/releve-cli/internal/analysis"
	"github.com/KaramelBytes/releve-cli/internal/habitat"
)

const maxCellWidth = 22

var (
	headerStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("178"))
	placeholderStyle = lipgloss.NewStyle().Faint(true).Italic(true)
	indexStyle       = lipgloss.NewStyle().Faint(true)
	selectedStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	titleStyle       = lipgloss.NewStyle().Bold(true).Underline(true)
	cardStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	presentStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	absentStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}

// Grid draws the cells with row and column indices. Blank header cells show
// the "Habitat {j+1}" placeholder.
func Grid(rows [][]string) string {
	if len(rows) == 0 {
		return placeholderStyle.Render("(empty grid)")
	}
	cols := len(rows[0])
	widths := make([]int, cols)
	for j := 0; j < cols; j++ {
		widths[j] = lipgloss.Width(fmt.Sprintf("Habitat %d", j+1))
		for _, r := range rows {
			if w := lipgloss.Width(truncate(r[j], maxCellWidth)); w > widths[j] {
				widths[j] = w
			}
		}
	}
	rowLabelW := len(strconv.Itoa(len(rows) - 1))

	var lines []string
	head := []string{indexStyle.Width(rowLabelW).Render("")}
	for j := 0; j < cols; j++ {
		head = append(head, indexStyle.Width(widths[j]).Render(strconv.Itoa(j)))
	}
	lines = append(lines, strings.Join(head, "  "))
	for i, r := range rows {
		cells := []string{indexStyle.Width(rowLabelW).Render(strconv.Itoa(i))}
		for j, v := range r {
			st := lipgloss.NewStyle().Width(widths[j])
			text := truncate(v, maxCellWidth)
			switch {
			case i == 0 && strings.TrimSpace(v) == "":
				st = placeholderStyle.Width(widths[j])
				text = fmt.Sprintf("Habitat %d", j+1)
			case i == 0:
				st = headerStyle.Width(widths[j])
			}
			cells = append(cells, st.Render(text))
		}
		lines = append(lines, strings.Join(cells, "  "))
	}
	return strings.Join(lines, "\n")
}

// Habitats draws the selectable habitat controls.
func Habitats(ctrls []habitat.Control) string {
	if len(ctrls) == 0 {
		return placeholderStyle.Render("(no habitats)")
	}
	parts := make([]string, len(ctrls))
	for i, c := range ctrls {
		label := fmt.Sprintf("[ ] %d %s", c.Index, c.Label)
		if c.Selected {
			label = selectedStyle.Render(fmt.Sprintf("[x] %d %s", c.Index, c.Label))
		}
		parts[i] = label
	}
	return strings.Join(parts, "\n")
}

// Communalities draws the variable table with the current axis markers.
func Communalities(cs []analysis.Communality, x, y string) string {
	if len(cs) == 0 {
		return placeholderStyle.Render("Aucune donnée de communalité à afficher.")
	}
	nameW := lipgloss.Width("Variable")
	for _, c := range cs {
		if w := lipgloss.Width(c.Variable); w > nameW {
			nameW = w
		}
	}
	row := func(a, b, c, d string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(nameW+2).Render(a),
			lipgloss.NewStyle().Width(18).Render(b),
			lipgloss.NewStyle().Width(7).Render(c),
			d)
	}
	lines := []string{titleStyle.Render(row("Variable", "Communalité (%)", "Axe X", "Axe Y"))}
	mark := func(on bool) string {
		if on {
			return "(•)"
		}
		return "( )"
	}
	for _, c := range cs {
		pct := strconv.FormatFloat(c.Percent, 'f', -1, 64) + "%"
		lines = append(lines, row(c.Variable, pct, mark(c.Variable == x), mark(c.Variable == y)))
	}
	return strings.Join(lines, "\n")
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Syntaxons draws one card per matched syntaxon.
func Syntaxons(list []analysis.Syntaxon) string {
	if len(list) == 0 {
		return placeholderStyle.Render("Aucun syntaxon correspondant trouvé.")
	}
	cards := make([]string, len(list))
	for i, s := range list {
		var b strings.Builder
		b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%s)", s.NameLatin, strconv.FormatFloat(s.Score, 'f', -1, 64))))
		b.WriteString("\nPrésents:")
		for _, sp := range s.CommonSpecies {
			b.WriteString("\n  " + presentStyle.Render("+ "+Capitalize(sp)))
		}
		b.WriteString("\nAbsents:")
		for _, sp := range s.AbsentSpecies {
			b.WriteString("\n  " + absentStyle.Render("- "+Capitalize(sp)))
		}
		cards[i] = cardStyle.Render(b.String())
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}
