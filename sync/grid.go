package sync

import (
	"github.com/joeybream/supasheets/supabase"
)

// Grid is the full sync payload for one run - a header row derived from the
// first record, followed by one column-aligned row per record. Every row has
// exactly as many cells as the header.
type Grid struct {
	rows [][]any
}

// Transform reshapes a record set into a rectangular grid. The first
// record's field set is authoritative for the whole grid: extra fields on
// later records are dropped and missing fields become empty-string cells.
// An empty record set yields an empty grid, which the caller must treat as
// 'nothing to write'.
func Transform(records []supabase.Record) Grid {
	if len(records) == 0 {
		return Grid{}
	}

	fields := records[0].Fields()
	rows := make([][]any, 0, len(records)+1)

	header := make([]any, len(fields))
	for i, field := range fields {
		header[i] = field
	}

	rows = append(rows, header)

	for _, record := range records {
		row := make([]any, len(fields))
		for i, field := range fields {
			// null cells are written as empty strings - a nil in a value
			// range means 'leave the cell as-is', not 'blank'
			if value, ok := record.Get(field); ok && value != nil {
				row[i] = value
			} else {
				row[i] = ""
			}
		}

		rows = append(rows, row)
	}

	return Grid{
		rows: rows,
	}
}

// Rows returns all grid rows, header first.
func (g Grid) Rows() [][]any {
	return g.rows
}

// Columns returns the header width.
func (g Grid) Columns() int {
	if len(g.rows) == 0 {
		return 0
	}

	return len(g.rows[0])
}

func (g Grid) Empty() bool {
	return len(g.rows) == 0
}

// Batches splits the grid (header included) into contiguous slices of at
// most size rows, preserving row order and never splitting mid-row.
func (g Grid) Batches(size int) [][][]any {
	if size < 1 {
		size = 1
	}

	batches := [][][]any{}
	for start := 0; start < len(g.rows); start += size {
		end := min(start+size, len(g.rows))
		batches = append(batches, g.rows[start:end])
	}

	return batches
}
