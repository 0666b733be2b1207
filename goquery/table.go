// Package goquery implements dartdoc.TableParser on a parsed HTML DOM.
package goquery

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/dartdoc"
)

// Ensure TableParser implements dartdoc.TableParser at compile time.
var _ dartdoc.TableParser = (*TableParser)(nil)

// TableParser reads a table from the DOM built by the HTML5 parser. Missing
// closing tags are repaired by the parser; content the parser moves out
// of the table, such as unknown elements between rows, is lost.
type TableParser struct{}

// NewTableParser creates a TableParser.
func NewTableParser() *TableParser {
	return &TableParser{}
}

// ParseTable returns the grid of the first table in markup.
func (p *TableParser) ParseTable(markup string) (dartdoc.Table, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, dartdoc.Errorf(dartdoc.EINVALID, "failed to parse table: %v", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return dartdoc.Table{}, nil
	}

	var rows [][]dartdoc.Cell
	table.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return tr.Closest("table").IsSelection(table)
	}).Each(func(_ int, tr *goquery.Selection) {
		var row []dartdoc.Cell
		tr.ChildrenFiltered("td, th").Each(func(_ int, td *goquery.Selection) {
			inner, err := td.Html()
			if err != nil {
				inner = td.Text()
			}
			row = append(row, dartdoc.Cell{
				Text:    dartdoc.Normalize(inner),
				ColSpan: spanAttr(td, "colspan"),
				RowSpan: spanAttr(td, "rowspan"),
			})
		})
		rows = append(rows, row)
	})
	return dartdoc.BuildTable(rows), nil
}

func spanAttr(s *goquery.Selection, name string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s.AttrOr(name, "")))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
