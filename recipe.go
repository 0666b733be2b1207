package dartdoc

// LookupKind selects how a table found by a recipe is addressed.
type LookupKind string

// LookupKind constants for Lookup.
const (
	LookupByColumn LookupKind = "column"
	LookupByRow    LookupKind = "row"
	LookupByCell   LookupKind = "cell"
)

// Query selects sentences or tables by keyword.
type Query struct {
	Include []string `yaml:"include" json:"include,omitempty"`
	Exclude []string `yaml:"exclude" json:"exclude,omitempty"`
	Exact   bool     `yaml:"exact" json:"exact,omitempty"`

	// Require further restricts matched sentences to those that also
	// contain one of these keywords. Ignored for tables.
	Require []string `yaml:"require" json:"require,omitempty"`
}

// MatchConfig returns the include and exclude part of q.
func (q *Query) MatchConfig() MatchConfig {
	return MatchConfig{Include: q.Include, Exclude: q.Exclude, Exact: q.Exact}
}

// Lookup addresses a table found by a recipe. For LookupByCell, Keys are
// matched against row labels and ColumnKeys against the header row.
type Lookup struct {
	Kind        LookupKind `yaml:"kind" json:"kind"`
	Keys        []string   `yaml:"keys" json:"keys"`
	ColumnKeys  []string   `yaml:"columnKeys" json:"columnKeys,omitempty"`
	Exact       bool       `yaml:"exact" json:"exact,omitempty"`
	ColumnExact bool       `yaml:"columnExact" json:"columnExact,omitempty"`
}

// Recipe is a named extraction from a document tree: either the sentences
// matching Text or a value looked up in the table matching Tables, within
// the sections matching Sections.
type Recipe struct {
	Name       string   `yaml:"name" json:"name"`
	Sections   []string `yaml:"sections" json:"sections,omitempty"`
	Text       *Query   `yaml:"text" json:"text,omitempty"`
	Tables     *Query   `yaml:"tables" json:"tables,omitempty"`
	TableIndex int      `yaml:"tableIndex" json:"tableIndex,omitempty"`
	Lookup     *Lookup  `yaml:"lookup" json:"lookup,omitempty"`
	Format     string   `yaml:"format" json:"format,omitempty"`
}

// Validate returns an error if the recipe contains invalid fields.
func (r *Recipe) Validate() error {
	if r.Name == "" {
		return Errorf(EINVALID, "recipe name required")
	}
	if (r.Text == nil) == (r.Tables == nil) {
		return Errorf(EINVALID, "recipe %q must set exactly one of text or tables", r.Name)
	}
	if r.Text != nil && r.Lookup != nil {
		return Errorf(EINVALID, "recipe %q: lookup requires tables", r.Name)
	}
	if r.TableIndex < 0 {
		return Errorf(EINVALID, "recipe %q: negative table index", r.Name)
	}
	if r.Lookup != nil {
		switch r.Lookup.Kind {
		case LookupByColumn, LookupByRow:
		case LookupByCell:
			if len(r.Lookup.ColumnKeys) == 0 {
				return Errorf(EINVALID, "recipe %q: cell lookup requires column keys", r.Name)
			}
		default:
			return Errorf(EINVALID, "recipe %q: unknown lookup kind %q", r.Name, r.Lookup.Kind)
		}
		if len(r.Lookup.Keys) == 0 {
			return Errorf(EINVALID, "recipe %q: lookup keys required", r.Name)
		}
	}
	if _, err := ParseFormat(r.Format); err != nil {
		return Errorf(EINVALID, "recipe %q: %s", r.Name, ErrorMessage(err))
	}
	return nil
}

// Apply evaluates the recipe against tree. Text recipes yield a Sequence
// of sentences. Table recipes yield the lookup result, or the whole table
// without a Lookup, and nil when no table matches.
func (r *Recipe) Apply(tree *DocumentTree) (Node, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	format, _ := ParseFormat(r.Format)
	sections := SectionNodes(SearchSections(tree, MatchConfig{Include: r.Sections}))

	if r.Text != nil {
		require := MatchConfig{Include: r.Text.Require}
		texts := Sequence{}
		for _, section := range sections {
			for _, n := range Search(section, 0, r.Text.MatchConfig()) {
				leaf, ok := n.(Leaf)
				if ok && require.Match(string(leaf)) {
					texts = append(texts, leaf)
				}
			}
		}
		return format.Apply(texts), nil
	}

	found := SearchTables(sections, 2, r.Tables.MatchConfig())
	if r.TableIndex >= len(found) {
		return nil, nil
	}
	table, ok := AsTable(found[r.TableIndex])
	if !ok {
		return nil, nil
	}
	if r.Lookup == nil {
		return format.Apply(table.Node()), nil
	}

	var result Node
	switch r.Lookup.Kind {
	case LookupByColumn:
		result = LookupColumn(table, r.Lookup.Keys, r.Lookup.Exact)
	case LookupByRow:
		result = LookupRow(table, r.Lookup.Keys, r.Lookup.Exact)
	case LookupByCell:
		result = LookupCell(table, r.Lookup.Keys, r.Lookup.ColumnKeys, r.Lookup.Exact, r.Lookup.ColumnExact)
	}
	if result == nil {
		return nil, nil
	}
	return format.Apply(result), nil
}
