package html

import (
	"fmt"
	"strings"

	"github.com/fwojciec/dartdoc"
)

// Ensure Extractor implements dartdoc.Extractor at compile time.
var _ dartdoc.Extractor = (*Extractor)(nil)

// Extractor splits filing markup into sections delimited by TITLE
// elements. Tables inside a section are handed to a TableParser.
type Extractor struct {
	tables dartdoc.TableParser
}

// NewExtractor creates an Extractor. A nil parser selects TableParser.
func NewExtractor(tables dartdoc.TableParser) *Extractor {
	if tables == nil {
		tables = NewTableParser()
	}
	return &Extractor{tables: tables}
}

// Extract builds the document tree. Titles need a closing tag; a title
// that is empty after normalization contributes no section, and a later
// section with the same key replaces an earlier one.
func (e *Extractor) Extract(text string) (*dartdoc.DocumentTree, error) {
	titles := titleRegions(scanTags(text, "title"))
	if len(titles) == 0 {
		return nil, nil
	}

	tree := dartdoc.NewDocumentTree()
	for i, r := range titles {
		title := dartdoc.Normalize(text[r.inner:r.close])
		if title == "" {
			continue
		}
		end := len(text)
		if i+1 < len(titles) {
			end = titles[i+1].start
		}
		content, err := e.SplitTexts(strings.TrimSpace(text[r.stop:end]))
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", title, err)
		}
		tree.Set(dartdoc.SectionKey(title), content)
	}
	return tree, nil
}

// SplitTexts separates a section body into paragraphs and tables. Text
// around table elements is split into paragraphs; a table without a
// closing tag is read as text. Tables without rows are dropped.
func (e *Extractor) SplitTexts(body string) (*dartdoc.SectionContent, error) {
	content := &dartdoc.SectionContent{
		Paragraphs: []dartdoc.Paragraph{},
		Tables:     []dartdoc.Table{},
	}

	last := 0
	for _, r := range pairRegions(scanTags(body, "table"), "table") {
		content.Paragraphs = append(content.Paragraphs, dartdoc.SplitParagraphs(body[last:r.start])...)

		table, err := e.tables.ParseTable(body[r.start:r.stop])
		if err != nil {
			return nil, fmt.Errorf("parse table: %w", err)
		}
		if len(table) > 0 {
			content.Tables = append(content.Tables, table)
		}
		last = r.stop
	}
	content.Paragraphs = append(content.Paragraphs, dartdoc.SplitParagraphs(body[last:])...)
	return content, nil
}

// titleRegions pairs every title start tag with the next title end tag.
// Titles do not nest: a start tag seen while a title is open is part of
// its text.
func titleRegions(tags []tag) []region {
	var regions []region
	var open *tag
	for i := range tags {
		t := &tags[i]
		switch {
		case t.selfClosing:
		case !t.end && open == nil:
			open = t
		case t.end && open != nil:
			regions = append(regions, region{start: open.start, inner: open.stop, close: t.start, stop: t.stop})
			open = nil
		}
	}
	return regions
}
