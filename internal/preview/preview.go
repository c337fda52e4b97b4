// Package preview renders an accent scale and its contrast checks for the terminal.
package preview

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/jmylchreest/contrastcraft/internal/colour"
)

// Options control how the report is rendered.
type Options struct {
	// Colour enables truecolour swatches. When false the table is plain text.
	Colour bool

	// MinLevel marks steps where no text colour reaches this level.
	// An empty level disables marking.
	MinLevel colour.Level
}

// IsTerminal reports whether w is a terminal file descriptor.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// DefaultOptions enables colour when w is a terminal.
func DefaultOptions(w io.Writer) Options {
	return Options{Colour: IsTerminal(w)}
}

// Render writes the report table for td to w.
func Render(w io.Writer, td *colour.ThemeData, opts Options) error {
	_, err := io.WriteString(w, Table(w, td, opts)+"\n")
	return err
}

// Table renders the report table as a string, styled for w.
func Table(w io.Writer, td *colour.ThemeData, opts Options) string {
	r := lipgloss.NewRenderer(w)
	if opts.Colour {
		r.SetColorProfile(termenv.TrueColor)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	order := checkOrder(td)

	headers := []string{"STEP", "SWATCH", "TOKEN", "HEX", "H / S / L"}
	for _, idx := range order {
		headers = append(headers, "ON "+td.Report.Texts[idx])
	}

	rows := make([][]string, 0, len(td.Report.Steps))
	for _, sr := range td.Report.Steps {
		step := sr.Step
		label := fmt.Sprintf("%d", step.Index)
		if opts.MinLevel != "" && !sr.Meets(opts.MinLevel) {
			label += " !"
		}
		row := []string{
			label,
			" Aa ",
			td.TokenName(step.Index),
			step.Hex,
			fmt.Sprintf("%d / %d%% / %d%%", step.H, step.S, step.L),
		}
		for _, idx := range order {
			row = append(row, BadgeLabel(sr.Checks[idx]))
		}
		rows = append(rows, row)
	}

	base := r.NewStyle().Padding(0, 1)
	header := base.Bold(true)
	fail := base.Foreground(lipgloss.Color("#EF4444"))

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if row < 0 || row >= len(td.Report.Steps) {
				return base
			}
			sr := td.Report.Steps[row]
			switch {
			case col == 1:
				return base.
					Background(lipgloss.Color(sr.Step.Hex)).
					Foreground(lipgloss.Color(sr.Best.Text))
			case col >= 5 && col-5 < len(order):
				if !sr.Checks[order[col-5]].Badge.Pass {
					return fail
				}
			}
			return base
		})

	return t.String()
}

// BadgeLabel formats a check the way the swatches show it (e.g., "AA · 5.12").
func BadgeLabel(c colour.Check) string {
	return fmt.Sprintf("%s · %s", c.Badge.Level, colour.FormatRatio(c.Ratio))
}

// Plain renders the report as aligned plain text without table borders.
func Plain(td *colour.ThemeData) string {
	var b strings.Builder
	order := checkOrder(td)
	for _, sr := range td.Report.Steps {
		step := sr.Step
		line := fmt.Sprintf("%-4d %-12s %s  %3d / %3d%% / %3d%%",
			step.Index, td.TokenName(step.Index), step.Hex, step.H, step.S, step.L)
		for _, idx := range order {
			c := sr.Checks[idx]
			line += fmt.Sprintf("  %s %-14s", c.Text, BadgeLabel(c))
		}
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteString("\n")
	}
	return b.String()
}

// Summary renders one line per text colour counting the steps at each level.
func Summary(td *colour.ThemeData) string {
	counts := td.Report.Summary()
	levels := []colour.Level{colour.LevelAAA, colour.LevelAA, colour.LevelAALarge, colour.LevelFail}

	var b strings.Builder
	for _, idx := range checkOrder(td) {
		text := td.Report.Texts[idx]
		fmt.Fprintf(&b, "%s on steps:", text)
		for _, level := range levels {
			fmt.Fprintf(&b, "  %s %d", level, counts[text][level])
		}
		b.WriteString("\n")
	}
	return b.String()
}

// checkOrder lists the page foreground first: dark text in light mode,
// light text in dark mode.
func checkOrder(td *colour.ThemeData) []int {
	n := len(td.Report.Texts)
	order := make([]int, 0, n)
	for i := 0; i < n; i++ {
		order = append(order, i)
	}
	if td.Theme == colour.ThemeLight && n == 2 {
		order[0], order[1] = 1, 0
	}
	return order
}
