package dartdoc

import (
	"encoding/json"
	"strings"
)

// Paragraph is an ordered list of sentences.
type Paragraph []string

// Row is one row of table cells.
type Row []string

// Table is a rectangular grid of cell texts. Row 0 is the header row and
// column 0 holds the row labels.
type Table []Row

// SectionContent holds the free text and tables found under one title.
type SectionContent struct {
	Paragraphs []Paragraph `json:"paragraphs"`
	Tables     []Table     `json:"tables"`
}

// DocumentTree maps section keys to their content in document order.
// It is built once by an Extractor and treated as read-only afterwards.
type DocumentTree struct {
	keys     []string
	sections map[string]*SectionContent
}

// NewDocumentTree returns an empty tree.
func NewDocumentTree() *DocumentTree {
	return &DocumentTree{sections: make(map[string]*SectionContent)}
}

// SectionKey turns a section title into its tree key by removing all
// white space.
func SectionKey(title string) string {
	return strings.Join(strings.Fields(title), "")
}

// Set stores content under key. A repeated key replaces the earlier
// content and keeps its original position.
func (t *DocumentTree) Set(key string, content *SectionContent) {
	if t.sections == nil {
		t.sections = make(map[string]*SectionContent)
	}
	if _, ok := t.sections[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.sections[key] = content
}

// Section returns the content stored under key.
func (t *DocumentTree) Section(key string) (*SectionContent, bool) {
	if t == nil {
		return nil, false
	}
	s, ok := t.sections[key]
	return s, ok
}

// Keys returns section keys in document order.
func (t *DocumentTree) Keys() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.keys...)
}

// Len returns the number of sections.
func (t *DocumentTree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// TableCount returns the number of tables across all sections.
func (t *DocumentTree) TableCount() int {
	var n int
	for _, k := range t.Keys() {
		n += len(t.sections[k].Tables)
	}
	return n
}

// Node converts the tree into a generic node.
func (t *DocumentTree) Node() *Mapping {
	m := NewMapping()
	for _, k := range t.Keys() {
		m.Set(k, t.sections[k].Node())
	}
	return m
}

// MarshalJSON encodes the tree as a JSON object in document order.
func (t *DocumentTree) MarshalJSON() ([]byte, error) {
	return t.Node().MarshalJSON()
}

// UnmarshalJSON decodes a JSON object of sections, preserving their order.
func (t *DocumentTree) UnmarshalJSON(data []byte) error {
	var m Mapping
	if err := m.UnmarshalJSON(data); err != nil {
		return err
	}
	tree := NewDocumentTree()
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		content, ok := AsSection(v)
		if !ok {
			return Errorf(EINVALID, "section %q is not an object", k)
		}
		tree.Set(k, content)
	}
	*t = *tree
	return nil
}

// Node converts the section into a mapping with "paragraphs" and "tables".
func (s *SectionContent) Node() *Mapping {
	m := NewMapping()
	if s == nil {
		return m
	}
	paragraphs := make(Sequence, 0, len(s.Paragraphs))
	for _, p := range s.Paragraphs {
		paragraphs = append(paragraphs, p.Node())
	}
	tables := make(Sequence, 0, len(s.Tables))
	for _, t := range s.Tables {
		tables = append(tables, t.Node())
	}
	m.Set("paragraphs", paragraphs)
	m.Set("tables", tables)
	return m
}

// Node converts the paragraph into a sequence of leaves.
func (p Paragraph) Node() Sequence {
	return stringsNode(p)
}

// Node converts the table into a sequence of row sequences.
func (t Table) Node() Sequence {
	seq := make(Sequence, 0, len(t))
	for _, row := range t {
		seq = append(seq, stringsNode(row))
	}
	return seq
}

// Width returns the number of columns of the widest row.
func (t Table) Width() int {
	var w int
	for _, row := range t {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// cell returns the text at (row, col) or "" when out of range.
func (t Table) cell(row, col int) string {
	if row < 0 || row >= len(t) || col < 0 || col >= len(t[row]) {
		return ""
	}
	return t[row][col]
}

// MarshalJSON keeps an empty table as [] rather than null.
func (t Table) MarshalJSON() ([]byte, error) {
	rows := make([][]string, 0, len(t))
	for _, row := range t {
		rows = append(rows, append([]string{}, row...))
	}
	return json.Marshal(rows)
}

func stringsNode(ss []string) Sequence {
	seq := make(Sequence, 0, len(ss))
	for _, s := range ss {
		seq = append(seq, Leaf(s))
	}
	return seq
}

// AsTable converts a node back into a table. The node must be a sequence
// of sequences of leaves.
func AsTable(n Node) (Table, bool) {
	seq, ok := n.(Sequence)
	if !ok {
		return nil, false
	}
	table := make(Table, 0, len(seq))
	for _, r := range seq {
		row, ok := asStrings(r)
		if !ok {
			return nil, false
		}
		table = append(table, row)
	}
	return table, true
}

// AsSection converts a node back into section content. Missing
// "paragraphs" or "tables" entries are treated as empty.
func AsSection(n Node) (*SectionContent, bool) {
	m, ok := n.(*Mapping)
	if !ok {
		return nil, false
	}
	content := &SectionContent{Paragraphs: []Paragraph{}, Tables: []Table{}}
	if v, ok := m.Get("paragraphs"); ok {
		seq, ok := v.(Sequence)
		if !ok {
			return nil, false
		}
		for _, p := range seq {
			ss, ok := asStrings(p)
			if !ok {
				return nil, false
			}
			content.Paragraphs = append(content.Paragraphs, Paragraph(ss))
		}
	}
	if v, ok := m.Get("tables"); ok {
		seq, ok := v.(Sequence)
		if !ok {
			return nil, false
		}
		for _, tn := range seq {
			table, ok := AsTable(tn)
			if !ok {
				return nil, false
			}
			content.Tables = append(content.Tables, table)
		}
	}
	return content, true
}

// Strings flattens a node into the texts of its leaves in pre-order.
// Mapping keys are not included.
func Strings(n Node) []string {
	var out []string
	var walk func(Node)
	walk = func(n Node) {
		switch v := n.(type) {
		case Leaf:
			out = append(out, string(v))
		case Sequence:
			for _, item := range v {
				walk(item)
			}
		case *Mapping:
			v.Each(func(_ string, value Node) { walk(value) })
		}
	}
	walk(n)
	return out
}

func asStrings(n Node) ([]string, bool) {
	seq, ok := n.(Sequence)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(seq))
	for _, item := range seq {
		leaf, ok := item.(Leaf)
		if !ok {
			return nil, false
		}
		out = append(out, string(leaf))
	}
	return out, true
}
