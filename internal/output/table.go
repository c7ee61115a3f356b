package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Table is a titled grid of string cells. Data, when set, replaces the
// cells in JSON and TOON output.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
	Footer  []string
	Data    any
}

// NewTable starts an empty table with the given columns.
func NewTable(title string, columns ...string) *Table {
	return &Table{Title: title, Columns: columns}
}

// Add appends one row.
func (t *Table) Add(cells ...string) *Table {
	t.Rows = append(t.Rows, cells)
	return t
}

// WithFooter sets the summary row printed under the grid.
func (t *Table) WithFooter(cells ...string) *Table {
	t.Footer = cells
	return t
}

// WithData sets the value encoded for JSON and TOON.
func (t *Table) WithData(data any) *Table {
	t.Data = data
	return t
}

func (t *Table) RenderData() any {
	if t.Data != nil {
		return t.Data
	}
	out := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		m := make(map[string]string, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(row) {
				m[col] = row[i]
			}
		}
		out = append(out, m)
	}
	return out
}

func (t *Table) RenderText(w io.Writer, colored bool) error {
	writeTitle(w, t.Title, colored)
	return writeGrid(w, t.Columns, t.Rows, t.Footer)
}

func (t *Table) RenderMarkdown(w io.Writer) error {
	if t.Title != "" {
		fmt.Fprintf(w, "## %s\n\n", t.Title)
	}
	writePipeTable(w, t.Columns, t.Rows, t.Footer)
	return nil
}

func writeTitle(w io.Writer, title string, colored bool) {
	if title == "" {
		return
	}
	if colored {
		color.New(color.Bold).Fprintln(w, title)
	} else {
		fmt.Fprintln(w, title)
	}
	fmt.Fprintln(w)
}

// writeGrid prints a borderless left-aligned grid. Leading spaces in cells
// are kept so node listings can indent by depth.
func writeGrid(w io.Writer, columns []string, rows [][]string, footer []string) error {
	left := tw.CellAlignment{Global: tw.AlignLeft}
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Alignment:  left,
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
			},
			Row:      tw.CellConfig{Alignment: left},
			Footer:   tw.CellConfig{Alignment: left},
			Behavior: tw.Behavior{TrimSpace: tw.Off},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders:  tw.Border{Left: tw.Off, Right: tw.Off, Top: tw.Off, Bottom: tw.Off},
			Settings: tw.Settings{
				Separators: tw.Separators{BetweenColumns: tw.Off},
			},
		}),
	)

	table.Header(columns)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	if len(footer) > 0 {
		cells := make([]any, len(footer))
		for i, c := range footer {
			cells[i] = c
		}
		table.Footer(cells...)
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

// writePipeTable prints a markdown table. Pipes inside cells are escaped
// since pseudocode uses them for bitwise and logical or.
func writePipeTable(w io.Writer, columns []string, rows [][]string, footer []string) {
	line := func(cells []string) {
		escaped := make([]string, len(cells))
		for i, c := range cells {
			escaped[i] = strings.ReplaceAll(c, "|", `\|`)
		}
		fmt.Fprintf(w, "| %s |\n", strings.Join(escaped, " | "))
	}

	line(columns)
	fmt.Fprintf(w, "|%s\n", strings.Repeat(" --- |", len(columns)))
	for _, row := range rows {
		line(row)
	}
	if len(footer) > 0 {
		line(footer)
	}
	fmt.Fprintln(w)
}
