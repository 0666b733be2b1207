package mock

import "github.com/fwojciec/dartdoc"

var _ dartdoc.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of dartdoc.Extractor.
type Extractor struct {
	ExtractFn func(text string) (*dartdoc.DocumentTree, error)
}

func (e *Extractor) Extract(text string) (*dartdoc.DocumentTree, error) {
	return e.ExtractFn(text)
}

var _ dartdoc.TableParser = (*TableParser)(nil)

// TableParser is a mock implementation of dartdoc.TableParser.
type TableParser struct {
	ParseTableFn func(markup string) (dartdoc.Table, error)
}

func (p *TableParser) ParseTable(markup string) (dartdoc.Table, error) {
	return p.ParseTableFn(markup)
}
