package dartdoc

// Span limits follow the HTML table model.
const (
	MaxColSpan = 1000
	MaxRowSpan = 65534
)

// Cell is one cell element of a table row as read from markup.
// A span below 1 is treated as 1.
type Cell struct {
	Text    string
	ColSpan int
	RowSpan int
}

type pendingSpan struct {
	remaining int
	text      string
}

// BuildTable lays out rows of cells on a grid, expanding row and column
// spans. Columns held by row spans from earlier rows are filled before a
// row's own cells are placed, so a row without cells still consumes them.
// A row left empty after that is skipped. Spans are clamped to
// MaxColSpan and MaxRowSpan as in the HTML table model. Every row of the
// result is padded to the same length.
func BuildTable(rows [][]Cell) Table {
	var pending []pendingSpan
	table := Table{}
	for _, cells := range rows {
		var row Row
		filled := make(map[int]bool)

		for col := range pending {
			if pending[col].remaining == 0 {
				continue
			}
			row = setCell(row, col, pending[col].text)
			filled[col] = true
			pending[col].remaining--
			if pending[col].remaining == 0 {
				pending[col].text = ""
			}
		}

		cursor := 0
		for _, cell := range cells {
			for filled[cursor] {
				cursor++
			}
			colspan := clampSpan(cell.ColSpan, MaxColSpan)
			rowspan := clampSpan(cell.RowSpan, MaxRowSpan)
			for col := cursor; col < cursor+colspan; col++ {
				row = setCell(row, col, cell.Text)
				if rowspan > 1 {
					for len(pending) <= col {
						pending = append(pending, pendingSpan{})
					}
					pending[col] = pendingSpan{remaining: rowspan - 1, text: cell.Text}
				}
			}
			cursor += colspan
		}

		for len(pending) > 0 && pending[len(pending)-1].remaining == 0 {
			pending = pending[:len(pending)-1]
		}
		if len(row) == 0 {
			continue
		}
		table = append(table, row)
	}

	width := table.Width()
	for i, row := range table {
		for len(row) < width {
			row = append(row, "")
		}
		table[i] = row
	}
	return table
}

func setCell(row Row, col int, text string) Row {
	for len(row) <= col {
		row = append(row, "")
	}
	row[col] = text
	return row
}

func clampSpan(n, limit int) int {
	if n < 1 {
		return 1
	}
	if n > limit {
		return limit
	}
	return n
}
