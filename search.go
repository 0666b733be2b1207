package dartdoc

// ancestry is an immutable stack of the nodes enclosing the current one,
// nearest first. Extending it never affects other branches of a traversal.
type ancestry struct {
	node   Node
	parent *ancestry
	depth  int
}

func (a *ancestry) push(n Node) *ancestry {
	return &ancestry{node: n, parent: a, depth: a.len() + 1}
}

func (a *ancestry) len() int {
	if a == nil {
		return 0
	}
	return a.depth
}

// up returns the node k levels above the top of the stack; up(1) is the
// nearest ancestor.
func (a *ancestry) up(k int) (Node, bool) {
	if k < 1 || k > a.len() {
		return nil, false
	}
	for ; k > 1; k-- {
		a = a.parent
	}
	return a.node, true
}

// Search walks node in pre-order and returns every match. Mapping keys and
// leaf texts are tested against cfg; sequences never match themselves.
//
// With parentCount 0 the matched value is returned: the value under a
// matching key or the matching leaf. With parentCount k the node k levels
// above the match is returned instead, and a match with fewer than k
// ancestors is dropped. A negative parentCount is treated as 0.
func Search(node Node, parentCount int, cfg MatchConfig) []Node {
	s := searcher{parentCount: max(parentCount, 0), cfg: cfg}
	s.walk(node, nil)
	return s.results
}

type searcher struct {
	parentCount int
	cfg         MatchConfig
	results     []Node
}

func (s *searcher) walk(n Node, anc *ancestry) {
	switch v := n.(type) {
	case *Mapping:
		inner := anc.push(v)
		v.Each(func(key string, value Node) {
			if s.cfg.Match(key) {
				s.record(value, inner)
			}
			s.walk(value, inner)
		})
	case Sequence:
		inner := anc.push(v)
		for _, item := range v {
			s.walk(item, inner)
		}
	case Leaf:
		if s.cfg.Match(string(v)) {
			s.record(v, anc)
		}
	}
}

func (s *searcher) record(payload Node, anc *ancestry) {
	if s.parentCount == 0 {
		s.results = append(s.results, payload)
		return
	}
	if n, ok := anc.up(s.parentCount); ok {
		s.results = append(s.results, n)
	}
}

// SearchTables runs Search over the tables of each section. A mapping
// contributes each entry of its "tables" sequence; a bare sequence is
// searched as a whole. Leaves are ignored.
func SearchTables(sections []Node, parentCount int, cfg MatchConfig) []Node {
	var results []Node
	for _, section := range sections {
		switch v := section.(type) {
		case *Mapping:
			tables, ok := v.Get("tables")
			if !ok {
				continue
			}
			seq, ok := tables.(Sequence)
			if !ok {
				results = append(results, Search(tables, parentCount, cfg)...)
				continue
			}
			for _, table := range seq {
				results = append(results, Search(table, parentCount, cfg)...)
			}
		case Sequence:
			results = append(results, Search(v, parentCount, cfg)...)
		}
	}
	return results
}

// SearchSections returns the sections whose keys match cfg, in document
// order. Section content is not searched.
func SearchSections(tree *DocumentTree, cfg MatchConfig) []*SectionContent {
	if tree == nil {
		return nil
	}
	var sections []*SectionContent
	for _, key := range tree.Keys() {
		if cfg.Match(key) {
			s, _ := tree.Section(key)
			sections = append(sections, s)
		}
	}
	return sections
}

// SectionNodes converts sections into nodes for use with Search and
// SearchTables.
func SectionNodes(sections []*SectionContent) []Node {
	nodes := make([]Node, 0, len(sections))
	for _, s := range sections {
		nodes = append(nodes, s.Node())
	}
	return nodes
}
