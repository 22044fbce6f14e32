package sync

import (
	"context"
)

// Sheet describes a single worksheet within the destination document. Sheets
// are identified by name - at most one sheet holds a given name at a time.
type Sheet struct {
	ID      int64
	Title   string
	Rows    int64
	Columns int64
	Hidden  bool
}

// Destination is the grid-management contract the refresh protocol needs
// from a spreadsheet-like store. Every operation applies immediately - there
// is no transaction or rollback - so the staging/swap strategy is the only
// concession to atomicity and only for the final delete/rename pair.
type Destination interface {
	// SheetByName returns the sheet with the given title, with ok false when
	// no sheet holds that name.
	SheetByName(ctx context.Context, name string) (Sheet, bool, error)

	// AddSheet creates a new empty sheet, optionally hidden from normal view.
	AddSheet(ctx context.Context, name string, hidden bool) (Sheet, error)

	// DeleteSheet removes a sheet from the document.
	DeleteSheet(ctx context.Context, id int64) error

	// RenameSheet retitles a sheet and unhides it in the same operation, so
	// that a staged sheet becomes live in one discrete step.
	RenameSheet(ctx context.Context, id int64, title string) error

	// SetHidden toggles a sheet's visibility.
	SetHidden(ctx context.Context, id int64, hidden bool) error

	// Resize sets the sheet's grid to exactly rows x columns.
	Resize(ctx context.Context, id int64, rows, columns int64) error

	// UsedExtent returns the used row and column counts for a sheet.
	UsedExtent(ctx context.Context, name string) (rows, columns int64, err error)

	// ClearRows clears the cell range spanning rows from..to (1-based,
	// inclusive) across the first columns columns.
	ClearRows(ctx context.Context, name string, from, to, columns int64) error

	// WriteRows writes a rectangular block of values starting at column A of
	// the given 1-based row, letting the destination interpret value types.
	WriteRows(ctx context.Context, name string, row int64, rows [][]any) error
}
