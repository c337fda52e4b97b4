package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
)

// Table collects rows for a borderless listing with aligned columns.
type Table struct {
	headers   []string
	rows      [][]string
	maxWidths map[int]int // 0 = no limit
}

// NewTable creates a new table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{
		headers:   headers,
		maxWidths: make(map[int]int),
	}
}

// SetColumnMaxWidth caps a column's width. Longer cells wrap.
func (t *Table) SetColumnMaxWidth(col, width int) {
	t.maxWidths[col] = width
}

// AddRow adds a row, padding or truncating it to the header count.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render formats the table as plain text: a header line, a dashed separator
// and one line per row.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	cell := r.NewStyle().PaddingRight(2)

	border := lipgloss.Border{Top: "-", Bottom: "-"}

	return table.New().
		Border(border).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderHeader(true).
		Headers(t.headers...).
		Rows(t.rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if w := t.maxWidths[col]; w > 0 {
				return cell.Width(w + 2)
			}
			return cell
		}).
		String() + "\n"
}
