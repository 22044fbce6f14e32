package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/joeybream/supasheets/supabase"
	"github.com/joeybream/supasheets/sync"
)

var SyncCmd = Sync{
	command: command{
		workdir:     DEFAULT_WORKDIR,
		credentials: DEFAULT_CREDENTIALS,
	},

	sheet:      "Data",
	inplace:    false,
	writeBatch: sync.MaxRowsPerBatch,
	clearBatch: sync.ClearBatchSize,
}

type Sync struct {
	command

	source string
	key    string
	table  string
	sheet  string

	inplace    bool
	writeBatch int64
	clearBatch int64
}

func (cmd *Sync) Name() string {
	return "sync"
}

func (cmd *Sync) Description() string {
	return "Replaces the contents of a Google Sheets worksheet with the current contents of a Supabase table"
}

func (cmd *Sync) Usage() string {
	return "--credentials <file> --url <url> --table <table>"
}

func (cmd *Sync) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] sync [options] --url <URL> --table <table> --sheet <worksheet>\n", APP)
	fmt.Println()
	fmt.Println("  Fetches all rows from the Supabase table and rewrites the destination worksheet with them. By default the")
	fmt.Println("  data is written to a hidden staging worksheet which is swapped in once the write completes, so that a")
	fmt.Println("  failed run leaves the previous data visible - use --in-place to clear and rewrite the live worksheet")
	fmt.Println("  instead.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    supasheets sync --credentials "credentials.json" \`)
	fmt.Println(`                    --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`)
	fmt.Println(`                    --source "https://xyzcompany.supabase.co" --table "orders" --sheet "Orders"`)
	fmt.Println()
}

func (cmd *Sync) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("sync")

	cmd.flags(flagset)

	return flagset
}

// flags registers the sync options, shared with the watch command.
func (cmd *Sync) flags(flagset *flag.FlagSet) {
	flagset.StringVar(&cmd.source, "source", envOrDefault("SUPABASE_URL", cmd.source), "Supabase project base URL. Defaults to SUPABASE_URL")
	flagset.StringVar(&cmd.key, "key", envOrDefault("SUPABASE_KEY", cmd.key), "Supabase API key. Defaults to SUPABASE_KEY")
	flagset.StringVar(&cmd.table, "table", envOrDefault("SUPABASE_TABLE", cmd.table), "Source table name. Defaults to SUPABASE_TABLE")
	flagset.StringVar(&cmd.sheet, "sheet", cmd.sheet, fmt.Sprintf("Destination worksheet name. Defaults to '%s'", cmd.sheet))
	flagset.BoolVar(&cmd.inplace, "in-place", cmd.inplace, "Clears and rewrites the live worksheet instead of staging a hidden replacement")
	flagset.Int64Var(&cmd.writeBatch, "write-batch", cmd.writeBatch, fmt.Sprintf("Maximum rows per bulk write. Defaults to %v", cmd.writeBatch))
	flagset.Int64Var(&cmd.clearBatch, "clear-batch", cmd.clearBatch, fmt.Sprintf("Maximum rows cleared per call. Defaults to %v", cmd.clearBatch))
}

func (cmd *Sync) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	if err := cmd.validate(); err != nil {
		return err
	}

	ctx := context.Background()

	service, id, err := cmd.newSheets(ctx)
	if err != nil {
		return err
	}

	return cmd.sync(ctx, newGoogleDestination(service, id))
}

func (cmd *Sync) validate() error {
	if err := cmd.command.validate(); err != nil {
		return err
	}

	if strings.TrimSpace(cmd.source) == "" {
		return fmt.Errorf("--source is a required option (or set SUPABASE_URL)")
	}

	if strings.TrimSpace(cmd.key) == "" {
		return fmt.Errorf("--key is a required option (or set SUPABASE_KEY)")
	}

	if strings.TrimSpace(cmd.table) == "" {
		return fmt.Errorf("--table is a required option (or set SUPABASE_TABLE)")
	}

	if strings.TrimSpace(cmd.sheet) == "" {
		return fmt.Errorf("--sheet is a required option")
	}

	return nil
}

func (cmd *Sync) sync(ctx context.Context, dest sync.Destination) error {
	client := supabase.NewClient(cmd.source, cmd.key)

	refresher := sync.NewRefresher(sync.Config{
		Table:          cmd.table,
		Sheet:          cmd.sheet,
		Staged:         !cmd.inplace,
		WriteBatchSize: cmd.writeBatch,
		ClearBatchSize: cmd.clearBatch,
		Logf:           infof,
	}, client, dest)

	return refresher.Run(ctx)
}
