// Package render draws task views as terminal tables.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nibzard/todo-go/internal/todo"
)

// Options controls how a view is presented.
type Options struct {
	// ShowIndex adds a "No." column with each row's 1-based view position.
	ShowIndex bool
}

// Presenter displays a titled list of rows. Implementations must not mutate
// the tasks behind the rows.
type Presenter interface {
	Present(title string, rows []todo.Row, opts Options) error
}

// Styles holds the lipgloss styles used for tables.
type Styles struct {
	Title       lipgloss.Style
	Header      lipgloss.Style
	Border      lipgloss.Style
	Index       lipgloss.Style
	Description lipgloss.Style
	Due         lipgloss.Style
	Status      map[todo.Status]lipgloss.Style
}

// DefaultStyles mirrors the classic palette: cyan text, magenta dates and a
// status column colored by status.
func DefaultStyles() Styles {
	cell := lipgloss.NewStyle().Padding(0, 1)
	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Italic(true),
		Header:      cell.Bold(true),
		Border:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Index:       cell.Foreground(lipgloss.Color("6")).Align(lipgloss.Right),
		Description: cell.Foreground(lipgloss.Color("6")),
		Due:         cell.Foreground(lipgloss.Color("5")),
		Status: map[todo.Status]lipgloss.Style{
			todo.StatusPending: cell.Foreground(lipgloss.Color("3")),
			todo.StatusOverdue: cell.Foreground(lipgloss.Color("1")).Bold(true),
			todo.StatusDone:    cell.Foreground(lipgloss.Color("2")),
		},
	}
}

// Table presents rows as a bordered table written to w.
type Table struct {
	w      io.Writer
	styles Styles
}

// NewTable returns a table presenter writing to w with default styles.
func NewTable(w io.Writer) *Table {
	return &Table{w: w, styles: DefaultStyles()}
}

// WithStyles returns a copy of the presenter using styles.
func (t *Table) WithStyles(styles Styles) *Table {
	return &Table{w: t.w, styles: styles}
}

// Present writes the rendered table followed by a newline.
func (t *Table) Present(title string, rows []todo.Row, opts Options) error {
	_, err := fmt.Fprintln(t.w, Render(t.styles, title, rows, opts))
	return err
}

// Render returns the table as a string. The title is centered above it.
func Render(styles Styles, title string, rows []todo.Row, opts Options) string {
	headers := []string{"Description", "Due Date", "Status"}
	if opts.ShowIndex {
		headers = append([]string{"No."}, headers...)
	}

	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		line := []string{r.Description, r.Due, string(r.Status)}
		if opts.ShowIndex {
			line = append([]string{strconv.Itoa(r.Index)}, line...)
		}
		cells = append(cells, line)
	}

	offset := 0
	if opts.ShowIndex {
		offset = 1
	}
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.Border).
		Headers(headers...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Header
			}
			switch col - offset {
			case -1:
				return styles.Index
			case 0:
				return styles.Description
			case 1:
				return styles.Due
			default:
				if row >= 0 && row < len(rows) {
					if s, ok := styles.Status[rows[row].Status]; ok {
						return s
					}
				}
				return styles.Description
			}
		})

	body := tbl.Render()
	width := lipgloss.Width(body)
	var b strings.Builder
	if title != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, styles.Title.Render(title)))
		b.WriteString("\n")
	}
	b.WriteString(body)
	return b.String()
}
