package markdown

import (
	"bytes"
	"strings"

	"github.com/mattn/go-runewidth"

	"git.home.luguber.info/inful/confdocs/internal/table"
)

// minColumnWidth keeps the delimiter row valid GFM (":--" needs three characters).
const minColumnWidth = 3

var cellReplacer = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ", "\r", " ")

// EscapeCell makes s safe to place inside a pipe-table cell.
func EscapeCell(s string) string {
	return cellReplacer.Replace(s)
}

// RenderTable renders t as a left-aligned GFM pipe table padded to display width.
// The output always ends with a newline and depends only on t.
func RenderTable(t *table.Table) []byte {
	header := make([]string, len(t.Header))
	for i, h := range t.Header {
		header[i] = EscapeCell(h)
	}
	rows := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		rows[r] = make([]string, len(row))
		for c, cell := range row {
			rows[r][c] = EscapeCell(cell)
		}
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = max(minColumnWidth, runewidth.StringWidth(h))
	}
	for _, row := range rows {
		for c, cell := range row {
			widths[c] = max(widths[c], runewidth.StringWidth(cell))
		}
	}

	var buf bytes.Buffer
	writeRow(&buf, header, widths)

	buf.WriteByte('|')
	for _, w := range widths {
		buf.WriteByte(':')
		buf.WriteString(strings.Repeat("-", w+1))
		buf.WriteByte('|')
	}
	buf.WriteByte('\n')

	for _, row := range rows {
		writeRow(&buf, row, widths)
	}
	return buf.Bytes()
}

func writeRow(buf *bytes.Buffer, cells []string, widths []int) {
	buf.WriteByte('|')
	for i, cell := range cells {
		buf.WriteByte(' ')
		buf.WriteString(cell)
		buf.WriteString(strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell)))
		buf.WriteString(" |")
	}
	buf.WriteByte('\n')
}

// Document is a generated page: a prose preamble, an optional heading and one table.
type Document struct {
	Preamble string
	Heading  string // rendered as a level-two heading when non-empty
	Table    *table.Table
}

// Render serialises the document. Blocks are separated by one blank line.
func (d Document) Render() []byte {
	var buf bytes.Buffer
	if p := strings.TrimSpace(d.Preamble); p != "" {
		buf.WriteString(p)
		buf.WriteString("\n\n")
	}
	if h := strings.TrimSpace(d.Heading); h != "" {
		buf.WriteString("## ")
		buf.WriteString(h)
		buf.WriteString("\n\n")
	}
	buf.Write(RenderTable(d.Table))
	return buf.Bytes()
}
