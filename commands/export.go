package commands

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joeybream/supasheets/supabase"
	"github.com/joeybream/supasheets/sync"
)

var ExportCmd = Export{
	sheet: "Data",
	file:  time.Now().Format("2006-01-02T150405.xlsx"),
}

// Export is the offline variant of the sync - same fetch and transform, but
// the grid is written to a local workbook instead of the destination
// spreadsheet.
type Export struct {
	source string
	key    string
	table  string
	sheet  string
	file   string
	debug  bool
}

func (cmd *Export) Name() string {
	return "export"
}

func (cmd *Export) Description() string {
	return "Fetches the Supabase table and writes it to a local .xlsx workbook"
}

func (cmd *Export) Usage() string {
	return "--table <table> --file <file>"
}

func (cmd *Export) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] export [options] --table <table> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Fetches all rows from the Supabase table and writes them to a local .xlsx workbook")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    supasheets export --source "https://xyzcompany.supabase.co" --table "orders" --file "orders.xlsx"`)
	fmt.Println()
}

func (cmd *Export) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("export", flag.ExitOnError)

	flagset.StringVar(&cmd.source, "source", envOrDefault("SUPABASE_URL", cmd.source), "Supabase project base URL. Defaults to SUPABASE_URL")
	flagset.StringVar(&cmd.key, "key", envOrDefault("SUPABASE_KEY", cmd.key), "Supabase API key. Defaults to SUPABASE_KEY")
	flagset.StringVar(&cmd.table, "table", envOrDefault("SUPABASE_TABLE", cmd.table), "Source table name. Defaults to SUPABASE_TABLE")
	flagset.StringVar(&cmd.sheet, "sheet", cmd.sheet, fmt.Sprintf("Workbook sheet name. Defaults to '%s'", cmd.sheet))
	flagset.StringVar(&cmd.file, "file", cmd.file, "Workbook file name. Defaults to '<yyyy-mm-ddTHHmmss>.xlsx'")

	return flagset
}

func (cmd *Export) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	if strings.TrimSpace(cmd.source) == "" {
		return fmt.Errorf("--source is a required option (or set SUPABASE_URL)")
	}

	if strings.TrimSpace(cmd.key) == "" {
		return fmt.Errorf("--key is a required option (or set SUPABASE_KEY)")
	}

	if strings.TrimSpace(cmd.table) == "" {
		return fmt.Errorf("--table is a required option (or set SUPABASE_TABLE)")
	}

	if cmd.debug {
		debugf("export - source:%s  table:%s  file:%s", cmd.source, cmd.table, cmd.file)
	}

	ctx := context.Background()
	client := supabase.NewClient(cmd.source, cmd.key)

	records, err := client.Fetch(ctx, cmd.table)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		warnf("table '%s' is empty - nothing to export", cmd.table)
		return nil
	}

	grid := sync.Transform(records)

	if err := writeWorkbook(cmd.file, cmd.sheet, grid); err != nil {
		return err
	}

	infof("exported %v records from table '%s' to %s", len(records), cmd.table, cmd.file)

	return nil
}

func writeWorkbook(file, sheet string, grid sync.Grid) error {
	f := excelize.NewFile()

	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	for i, row := range grid.Rows() {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}

		values := make([]any, len(row))
		for j, value := range row {
			values[j] = cellValue(value)
		}

		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		if end, err := excelize.CoordinatesToCellName(grid.Columns(), 1); err == nil {
			f.SetCellStyle(sheet, "A1", end, style)
		}
	}

	return f.SaveAs(file)
}

// cellValue maps decoded JSON values onto types excelize stores natively -
// json.Number would otherwise land in the workbook as text.
func cellValue(v any) any {
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return i
		}

		if f, err := n.Float64(); err == nil {
			return f
		}

		return n.String()
	}

	return v
}
