package dartdoc

// Extractor builds a document tree from the decoded text of a filing.
type Extractor interface {
	// Extract splits text into titled sections. A text without any title
	// markers yields a nil tree and a nil error.
	Extract(text string) (*DocumentTree, error)
}

// TableParser reconstructs a rectangular grid from the markup of one table.
type TableParser interface {
	// ParseTable returns the grid for markup. Markup without any cells
	// yields an empty table.
	ParseTable(markup string) (Table, error)
}
