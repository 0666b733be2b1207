package dartdoc

// LookupColumn returns the values below every header cell matching keys.
// Each matching column contributes rows 1..end as one group; groups are
// collapsed as described on Collapse. No match yields an empty Sequence.
func LookupColumn(table Table, keys []string, exact bool) Node {
	cfg := Keywords(exact, keys...)
	var groups []Sequence
	for col := 0; col < table.Width(); col++ {
		if !cfg.Match(table.cell(0, col)) {
			continue
		}
		group := Sequence{}
		for row := 1; row < len(table); row++ {
			group = append(group, Leaf(table.cell(row, col)))
		}
		groups = append(groups, group)
	}
	if len(groups) == 0 {
		return Sequence{}
	}
	return Collapse(groups)
}

// LookupRow returns the values right of every row label matching keys.
// Row labels are read from column 0 of every row, the header row included.
// No match yields an empty Sequence.
func LookupRow(table Table, keys []string, exact bool) Node {
	cfg := Keywords(exact, keys...)
	width := table.Width()
	var groups []Sequence
	for row := range table {
		if !cfg.Match(table.cell(row, 0)) {
			continue
		}
		group := Sequence{}
		for col := 1; col < width; col++ {
			group = append(group, Leaf(table.cell(row, col)))
		}
		groups = append(groups, group)
	}
	if len(groups) == 0 {
		return Sequence{}
	}
	return Collapse(groups)
}

// LookupCell returns the cells where body rows labelled by rowKeys cross
// body columns headed by colKeys, grouped by row. It returns nil when
// either axis has no match.
func LookupCell(table Table, rowKeys, colKeys []string, rowExact, colExact bool) Node {
	rowCfg := Keywords(rowExact, rowKeys...)
	colCfg := Keywords(colExact, colKeys...)

	var rows, cols []int
	for row := 1; row < len(table); row++ {
		if rowCfg.Match(table.cell(row, 0)) {
			rows = append(rows, row)
		}
	}
	for col := 1; col < table.Width(); col++ {
		if colCfg.Match(table.cell(0, col)) {
			cols = append(cols, col)
		}
	}
	if len(rows) == 0 || len(cols) == 0 {
		return nil
	}

	groups := make([]Sequence, 0, len(rows))
	for _, row := range rows {
		group := make(Sequence, 0, len(cols))
		for _, col := range cols {
			group = append(group, Leaf(table.cell(row, col)))
		}
		groups = append(groups, group)
	}
	return Collapse(groups)
}

// Collapse reduces lookup groups: a single group holding a single value
// becomes that value, a single group becomes a flat Sequence and several
// groups become a Sequence of Sequences.
func Collapse(groups []Sequence) Node {
	switch {
	case len(groups) == 1 && len(groups[0]) == 1:
		return groups[0][0]
	case len(groups) == 1:
		return groups[0]
	}
	out := make(Sequence, 0, len(groups))
	for _, g := range groups {
		out = append(out, g)
	}
	return out
}
