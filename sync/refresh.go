package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/joeybream/supasheets/supabase"
)

const (
	// ClearBatchSize is the default bound on the number of rows cleared per
	// destination call in the clear-in-place strategy.
	ClearBatchSize = 1000

	// StagingSuffix is appended to the target sheet name to derive the name
	// of the hidden staging sheet.
	StagingSuffix = "_tmp"
)

// Source is the read-all contract the refresh needs from the remote table.
type Source interface {
	Fetch(ctx context.Context, table string) ([]supabase.Record, error)
}

// Config collects the settings for a Refresher.
type Config struct {
	// Table is the source table name.
	Table string

	// Sheet is the destination worksheet name.
	Sheet string

	// Staged selects the staging/swap strategy: the grid is written to a
	// hidden '<sheet>_tmp' worksheet which is swapped in only after the
	// write completes, so a failed run leaves the live worksheet untouched.
	// When unset the live worksheet is cleared and rewritten in place.
	Staged bool

	// WriteBatchSize is the maximum rows per bulk write call. Defaults to
	// MaxRowsPerBatch.
	WriteBatchSize int64

	// ClearBatchSize is the maximum rows cleared per call. Defaults to
	// ClearBatchSize.
	ClearBatchSize int64

	// Logf receives progress reporting. Defaults to discarding it.
	Logf func(format string, args ...any)
}

// Refresher runs the end-to-end refresh - fetch the full table, reshape it
// into a grid and replace the destination sheet's contents with it.
//
// A refresher provides no locking or run deduplication: overlapping runs
// against the same destination sheet race on the document's sheet namespace
// and can corrupt the result.
type Refresher struct {
	config Config
	source Source
	dest   Destination
	writer *Writer
	logf   func(format string, args ...any)
}

func NewRefresher(config Config, source Source, dest Destination) *Refresher {
	if config.WriteBatchSize < 1 {
		config.WriteBatchSize = MaxRowsPerBatch
	}

	if config.ClearBatchSize < 1 {
		config.ClearBatchSize = ClearBatchSize
	}

	logf := config.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	return &Refresher{
		config: config,
		source: source,
		dest:   dest,
		writer: NewWriter(config.WriteBatchSize, logf),
		logf:   logf,
	}
}

// Run executes one refresh. Errors are never retried internally - any
// failure aborts the run immediately. A fetch failure leaves the destination
// untouched in both strategies; a write failure leaves the live worksheet
// untouched only in the staged strategy.
func (r *Refresher) Run(ctx context.Context) error {
	started := time.Now()
	run := uuid.New()

	r.logf("run %v  refreshing worksheet '%s' from table '%s'", run, r.config.Sheet, r.config.Table)

	var staging Sheet
	var err error

	if r.config.Staged {
		if staging, err = r.prepareStaging(ctx); err != nil {
			return err
		}
	}

	records, err := r.source.Fetch(ctx, r.config.Table)
	if err != nil {
		return err
	}

	r.logf("run %v  retrieved %v records from table '%s'", run, len(records), r.config.Table)

	if len(records) == 0 {
		if err := r.markEmpty(ctx); err != nil {
			return err
		}

		r.logf("run %v  no data - done in %v", run, time.Since(started).Round(time.Millisecond))

		return nil
	}

	grid := Transform(records)

	if r.config.Staged {
		err = r.refreshStaged(ctx, staging, grid)
	} else {
		err = r.refreshInPlace(ctx, run, grid)
	}

	if err != nil {
		return err
	}

	r.logf("run %v  wrote %v rows x %v columns to worksheet '%s' in %v",
		run,
		len(grid.Rows()),
		grid.Columns(),
		r.config.Sheet,
		time.Since(started).Round(time.Millisecond))

	return nil
}

// prepareStaging locates or creates the hidden staging sheet, clearing out
// any leftover content from a previous (failed) run. The live worksheet is
// never touched here.
func (r *Refresher) prepareStaging(ctx context.Context) (Sheet, error) {
	name := r.config.Sheet + StagingSuffix

	staging, ok, err := r.dest.SheetByName(ctx, name)
	if err != nil {
		return Sheet{}, err
	}

	if !ok {
		return r.dest.AddSheet(ctx, name, true)
	}

	if !staging.Hidden {
		if err := r.dest.SetHidden(ctx, staging.ID, true); err != nil {
			return Sheet{}, err
		}
	}

	if err := r.clear(ctx, staging); err != nil {
		return Sheet{}, err
	}

	return staging, nil
}

func (r *Refresher) refreshInPlace(ctx context.Context, run uuid.UUID, grid Grid) error {
	target, err := r.ensureSheet(ctx, r.config.Sheet)
	if err != nil {
		return err
	}

	r.logf("run %v  clearing worksheet '%s'", run, target.Title)

	if err := r.clear(ctx, target); err != nil {
		return err
	}

	return r.writer.Write(ctx, r.dest, target, grid)
}

func (r *Refresher) refreshStaged(ctx context.Context, staging Sheet, grid Grid) error {
	if err := r.writer.Write(ctx, r.dest, staging, grid); err != nil {
		return err
	}

	return r.swap(ctx)
}

// swap makes the staged data live: delete the existing sheet of the target
// name (if any), then rename and unhide the staging sheet to the target
// name. The rename is the single operation readers observe - they never see
// a half-written destination.
func (r *Refresher) swap(ctx context.Context) error {
	name := r.config.Sheet + StagingSuffix

	staging, ok, err := r.dest.SheetByName(ctx, name)
	if err != nil {
		return err
	}

	if !ok {
		return &SwapError{Sheet: name}
	}

	if live, ok, err := r.dest.SheetByName(ctx, r.config.Sheet); err != nil {
		return err
	} else if ok {
		if err := r.dest.DeleteSheet(ctx, live.ID); err != nil {
			return err
		}
	}

	return r.dest.RenameSheet(ctx, staging.ID, r.config.Sheet)
}

// clear removes all content from a sheet in row chunks bounded by the used
// extent. An already empty sheet is a no-op.
func (r *Refresher) clear(ctx context.Context, sheet Sheet) error {
	rows, columns, err := r.dest.UsedExtent(ctx, sheet.Title)
	if err != nil {
		return err
	}

	if rows == 0 || columns == 0 {
		return nil
	}

	for from := int64(1); from <= rows; from += r.config.ClearBatchSize {
		to := min(from+r.config.ClearBatchSize-1, rows)
		if err := r.dest.ClearRows(ctx, sheet.Title, from, to, columns); err != nil {
			return err
		}
	}

	return nil
}

// markEmpty writes a timestamped marker into the live worksheet's first
// cell so that an operator can tell 'ran successfully but the source was
// empty' from 'never ran'. No other cell is touched.
func (r *Refresher) markEmpty(ctx context.Context) error {
	target, err := r.ensureSheet(ctx, r.config.Sheet)
	if err != nil {
		return err
	}

	marker := fmt.Sprintf("No new data - %s", time.Now().Format("2006-01-02 15:04:05"))

	return r.dest.WriteRows(ctx, target.Title, 1, [][]any{{marker}})
}

func (r *Refresher) ensureSheet(ctx context.Context, name string) (Sheet, error) {
	sheet, ok, err := r.dest.SheetByName(ctx, name)
	if err != nil {
		return Sheet{}, err
	}

	if !ok {
		return r.dest.AddSheet(ctx, name, false)
	}

	return sheet, nil
}
