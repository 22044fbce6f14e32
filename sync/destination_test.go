package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/joeybream/supasheets/supabase"
)

// In-memory Destination for the refresh protocol tests.
type fakeDestination struct {
	sheets []*fakeSheet
	nextID int64

	writes     []writeOp
	clears     []clearOp
	resizes    []resizeOp
	attempts   int
	failOn     int // 1-based WriteRows call to start failing on (0 = never)
	afterWrite func()
}

type fakeSheet struct {
	id      int64
	title   string
	hidden  bool
	rows    int64
	columns int64
	cells   [][]any
}

type writeOp struct {
	sheet string
	row   int64
	count int
}

type clearOp struct {
	sheet   string
	from    int64
	to      int64
	columns int64
}

type resizeOp struct {
	id      int64
	rows    int64
	columns int64
}

func (d *fakeDestination) SheetByName(ctx context.Context, name string) (Sheet, bool, error) {
	if sheet := d.byName(name); sheet != nil {
		return d.describe(sheet), true, nil
	}

	return Sheet{}, false, nil
}

func (d *fakeDestination) AddSheet(ctx context.Context, name string, hidden bool) (Sheet, error) {
	if d.byName(name) != nil {
		return Sheet{}, fmt.Errorf("a sheet named '%s' already exists", name)
	}

	d.nextID++
	sheet := &fakeSheet{
		id:      d.nextID,
		title:   name,
		hidden:  hidden,
		rows:    1000,
		columns: 26,
	}

	d.sheets = append(d.sheets, sheet)

	return d.describe(sheet), nil
}

func (d *fakeDestination) DeleteSheet(ctx context.Context, id int64) error {
	for i, sheet := range d.sheets {
		if sheet.id == id {
			d.sheets = append(d.sheets[:i], d.sheets[i+1:]...)
			return nil
		}
	}

	return fmt.Errorf("no sheet with ID %v", id)
}

func (d *fakeDestination) RenameSheet(ctx context.Context, id int64, title string) error {
	sheet := d.byID(id)
	if sheet == nil {
		return fmt.Errorf("no sheet with ID %v", id)
	}

	if other := d.byName(title); other != nil && other.id != id {
		return fmt.Errorf("a sheet named '%s' already exists", title)
	}

	sheet.title = title
	sheet.hidden = false

	return nil
}

func (d *fakeDestination) SetHidden(ctx context.Context, id int64, hidden bool) error {
	sheet := d.byID(id)
	if sheet == nil {
		return fmt.Errorf("no sheet with ID %v", id)
	}

	sheet.hidden = hidden

	return nil
}

func (d *fakeDestination) Resize(ctx context.Context, id int64, rows, columns int64) error {
	sheet := d.byID(id)
	if sheet == nil {
		return fmt.Errorf("no sheet with ID %v", id)
	}

	sheet.rows = rows
	sheet.columns = columns

	if int64(len(sheet.cells)) > rows {
		sheet.cells = sheet.cells[:rows]
	}

	for i, row := range sheet.cells {
		if int64(len(row)) > columns {
			sheet.cells[i] = row[:columns]
		}
	}

	d.resizes = append(d.resizes, resizeOp{id: id, rows: rows, columns: columns})

	return nil
}

func (d *fakeDestination) UsedExtent(ctx context.Context, name string) (int64, int64, error) {
	sheet := d.byName(name)
	if sheet == nil {
		return 0, 0, fmt.Errorf("no sheet named '%s'", name)
	}

	rows := int64(len(sheet.cells))
	columns := int64(0)

	for _, row := range sheet.cells {
		if int64(len(row)) > columns {
			columns = int64(len(row))
		}
	}

	return rows, columns, nil
}

func (d *fakeDestination) ClearRows(ctx context.Context, name string, from, to, columns int64) error {
	sheet := d.byName(name)
	if sheet == nil {
		return fmt.Errorf("no sheet named '%s'", name)
	}

	for row := from; row <= to && row <= int64(len(sheet.cells)); row++ {
		cells := sheet.cells[row-1]
		for column := int64(0); column < columns && column < int64(len(cells)); column++ {
			cells[column] = ""
		}
	}

	sheet.trim()

	d.clears = append(d.clears, clearOp{sheet: name, from: from, to: to, columns: columns})

	return nil
}

func (d *fakeDestination) WriteRows(ctx context.Context, name string, row int64, rows [][]any) error {
	d.attempts++
	if d.failOn != 0 && d.attempts >= d.failOn {
		return fmt.Errorf("quota exceeded")
	}

	sheet := d.byName(name)
	if sheet == nil {
		return fmt.Errorf("no sheet named '%s'", name)
	}

	// overlays the existing cells - a range write only touches the cells it
	// covers
	for i, values := range rows {
		ix := int(row) - 1 + i
		for len(sheet.cells) <= ix {
			sheet.cells = append(sheet.cells, []any{})
		}

		line := sheet.cells[ix]
		for j, value := range values {
			for len(line) <= j {
				line = append(line, "")
			}

			line[j] = value
		}

		sheet.cells[ix] = line
	}

	d.writes = append(d.writes, writeOp{sheet: name, row: row, count: len(rows)})

	if d.afterWrite != nil {
		d.afterWrite()
	}

	return nil
}

func (d *fakeDestination) byName(name string) *fakeSheet {
	for _, sheet := range d.sheets {
		if sheet.title == name {
			return sheet
		}
	}

	return nil
}

func (d *fakeDestination) byID(id int64) *fakeSheet {
	for _, sheet := range d.sheets {
		if sheet.id == id {
			return sheet
		}
	}

	return nil
}

func (d *fakeDestination) describe(sheet *fakeSheet) Sheet {
	return Sheet{
		ID:      sheet.id,
		Title:   sheet.title,
		Rows:    sheet.rows,
		Columns: sheet.columns,
		Hidden:  sheet.hidden,
	}
}

// trim drops trailing empty cells and rows so that the used extent shrinks
// the way a real sheet's does after a clear.
func (s *fakeSheet) trim() {
	for i, row := range s.cells {
		for len(row) > 0 && (row[len(row)-1] == "" || row[len(row)-1] == nil) {
			row = row[:len(row)-1]
		}

		s.cells[i] = row
	}

	for len(s.cells) > 0 && len(s.cells[len(s.cells)-1]) == 0 {
		s.cells = s.cells[:len(s.cells)-1]
	}
}

type fakeSource struct {
	records []supabase.Record
	err     error
}

func (s *fakeSource) Fetch(ctx context.Context, table string) ([]supabase.Record, error) {
	return s.records, s.err
}

func makeRecords(t *testing.T, blob string) []supabase.Record {
	t.Helper()

	records := []supabase.Record{}
	if err := json.Unmarshal([]byte(blob), &records); err != nil {
		t.Fatalf("Unexpected error decoding test records (%v)", err)
	}

	return records
}
