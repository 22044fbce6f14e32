package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var GetCmd = Get{
	command: command{
		workdir:     DEFAULT_WORKDIR,
		credentials: DEFAULT_CREDENTIALS,
	},

	sheet: "Data",
	file:  time.Now().Format("2006-01-02T150405.tsv"),
}

type Get struct {
	command
	sheet string
	file  string
}

func (cmd *Get) Name() string {
	return "get"
}

func (cmd *Get) Description() string {
	return "Downloads the destination worksheet to a TSV file"
}

func (cmd *Get) Usage() string {
	return "--credentials <file> --url <url> --file <file>"
}

func (cmd *Get) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] get [options] --url <URL> --sheet <worksheet> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Downloads a Google Sheets worksheet to a TSV file")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    supasheets --debug get --credentials "credentials.json" \`)
	fmt.Println(`                           --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`)
	fmt.Println(`                           --sheet "Orders" \`)
	fmt.Println(`                           --file "orders.tsv"`)
	fmt.Println()
}

func (cmd *Get) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("get")

	flagset.StringVar(&cmd.sheet, "sheet", cmd.sheet, fmt.Sprintf("Worksheet name. Defaults to '%s'", cmd.sheet))
	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV file name. Defaults to '<yyyy-mm-ddTHHmmss>.tsv'")

	return flagset
}

func (cmd *Get) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	if err := cmd.validate(); err != nil {
		return err
	}

	if strings.TrimSpace(cmd.sheet) == "" {
		return fmt.Errorf("--sheet is a required option")
	}

	ctx := context.Background()

	service, id, err := cmd.newSheets(ctx)
	if err != nil {
		return err
	}

	area := fmt.Sprintf("'%s'", cmd.sheet)

	response, err := service.Spreadsheets.Values.Get(id, area).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to retrieve data from worksheet (%v)", err)
	}

	if len(response.Values) == 0 {
		return fmt.Errorf("no data in worksheet '%s'", cmd.sheet)
	}

	tmp, err := os.CreateTemp(os.TempDir(), "supasheets")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := sheetToTSV(tmp, response); err != nil {
		return fmt.Errorf("error creating TSV file (%v)", err)
	}

	tmp.Close()

	dir := filepath.Dir(cmd.file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), cmd.file); err != nil {
		return err
	}

	infof("retrieved worksheet '%s' to file %s", cmd.sheet, cmd.file)

	return nil
}
