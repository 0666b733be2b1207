package html

import (
	"strconv"
	"strings"

	"github.com/fwojciec/dartdoc"
)

// Ensure TableParser implements dartdoc.TableParser at compile time.
var _ dartdoc.TableParser = (*TableParser)(nil)

// TableParser reads rows and cells of a table with the tokenizer. Cell
// text is taken from the raw markup between a cell's start and end tags,
// so markup the HTML parser would rearrange is kept in place. Rows and
// cells need closing tags, and a cell left open is replaced by the next
// cell start in its row. Rows and cells of nested tables are part of the
// enclosing cell's text.
type TableParser struct{}

// NewTableParser creates a TableParser.
func NewTableParser() *TableParser {
	return &TableParser{}
}

// ParseTable returns the grid of markup, which should hold one table
// element. Markup without complete rows yields an empty table.
func (p *TableParser) ParseTable(markup string) (dartdoc.Table, error) {
	return dartdoc.BuildTable(ParseRows(markup)), nil
}

// ParseRows returns the cells of each row of the outermost table in
// markup, or of markup itself when it holds bare rows.
func ParseRows(markup string) [][]dartdoc.Cell {
	var (
		rows  [][]dartdoc.Cell
		row   []dartdoc.Cell
		inRow bool
		cell  *tag
		level int
		base  = -1
	)

	for _, t := range scanTags(markup, "table", "tr", "td", "th") {
		if t.selfClosing {
			continue
		}
		if base < 0 {
			base = 0
			if t.name == "table" && !t.end {
				base = 1
			}
		}
		if t.name == "table" {
			if t.end {
				level = max(level-1, 0)
			} else {
				level++
			}
			continue
		}
		if level != base {
			continue
		}

		switch {
		case t.name == "tr" && !t.end:
			row, inRow, cell = nil, true, nil
		case t.name == "tr":
			if inRow {
				rows = append(rows, row)
			}
			row, inRow, cell = nil, false, nil
		case !inRow:
		case !t.end:
			c := t
			cell = &c
		case cell != nil:
			row = append(row, dartdoc.Cell{
				Text:    dartdoc.Normalize(markup[cell.stop:t.start]),
				ColSpan: spanAttr(cell.attrs, "colspan"),
				RowSpan: spanAttr(cell.attrs, "rowspan"),
			})
			cell = nil
		}
	}
	return rows
}

func spanAttr(attrs map[string]string, key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(attrs[key]))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
