package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// NodeRow describes one tree node in a listing.
type NodeRow struct {
	Addr  string `json:"addr" toon:"addr"`
	Kind  string `json:"kind" toon:"kind"`
	Depth int    `json:"depth" toon:"depth"`
	Text  string `json:"text" toon:"text"`
}

// NodeList renders tree nodes. With Indent set the text of each node is
// indented by its depth and markdown output becomes a nested list, which
// suits a pre-order dump of a whole function. Otherwise nodes print as a
// flat table.
type NodeList struct {
	Title  string
	Label  string // heading of the text column, "Node" when empty
	Rows   []NodeRow
	Indent bool
	Total  bool // print a count under the table
}

func (l *NodeList) RenderData() any {
	if l.Rows == nil {
		return []NodeRow{}
	}
	return l.Rows
}

func (l *NodeList) columns() []string {
	label := l.Label
	if label == "" {
		label = "Node"
	}
	return []string{"Addr", "Kind", "Depth", label}
}

func (l *NodeList) cells(indent string) [][]string {
	rows := make([][]string, len(l.Rows))
	for i, r := range l.Rows {
		text := r.Text
		if l.Indent {
			text = strings.Repeat(indent, r.Depth) + text
		}
		rows[i] = []string{r.Addr, r.Kind, strconv.Itoa(r.Depth), text}
	}
	return rows
}

func (l *NodeList) footer() []string {
	if !l.Total {
		return nil
	}
	return []string{"Total", "", "", strconv.Itoa(len(l.Rows))}
}

func (l *NodeList) RenderText(w io.Writer, colored bool) error {
	writeTitle(w, l.Title, colored)
	return writeGrid(w, l.columns(), l.cells("  "), l.footer())
}

func (l *NodeList) RenderMarkdown(w io.Writer) error {
	if l.Title != "" {
		fmt.Fprintf(w, "## %s\n\n", l.Title)
	}
	if !l.Indent {
		writePipeTable(w, l.columns(), l.cells(""), l.footer())
		return nil
	}
	for _, r := range l.Rows {
		fmt.Fprintf(w, "%s- `%s` %s: `%s`\n", strings.Repeat("  ", r.Depth), r.Addr, r.Kind, r.Text)
	}
	fmt.Fprintln(w)
	return nil
}
