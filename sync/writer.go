package sync

import (
	"context"
)

// MaxRowsPerBatch is the default bound on the number of rows written per
// bulk range-write call. Bulk write APIs cap payload sizes or degrade badly
// above a threshold - fixed-size sequential batches keep every call well
// under it without dynamic sizing or backoff.
const MaxRowsPerBatch = 1000

// Writer writes a grid into a destination sheet in bounded, strictly
// ordered batches.
type Writer struct {
	batchSize int64
	logf      func(format string, args ...any)
}

func NewWriter(batchSize int64, logf func(format string, args ...any)) *Writer {
	if batchSize < 1 {
		batchSize = MaxRowsPerBatch
	}

	if logf == nil {
		logf = func(string, ...any) {}
	}

	return &Writer{
		batchSize: batchSize,
		logf:      logf,
	}
}

// Write resizes the sheet grid to the data's exact dimensions and then
// writes the grid from row 1 down, one batch per destination call, strictly
// in order. A failed batch aborts the remaining batches. Writing an empty
// grid is a no-op.
func (w *Writer) Write(ctx context.Context, dest Destination, sheet Sheet, grid Grid) error {
	if grid.Empty() {
		return nil
	}

	if err := dest.Resize(ctx, sheet.ID, int64(len(grid.Rows())), int64(grid.Columns())); err != nil {
		return err
	}

	row := int64(1)
	for i, batch := range grid.Batches(int(w.batchSize)) {
		if err := dest.WriteRows(ctx, sheet.Title, row, batch); err != nil {
			return &WriteError{
				Batch: i + 1,
				Err:   err,
			}
		}

		w.logf("wrote batch %v (%v rows) to worksheet '%s'", i+1, len(batch), sheet.Title)

		row += int64(len(batch))
	}

	return nil
}
