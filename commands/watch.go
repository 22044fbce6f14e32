package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/robfig/cron"
)

var WatchCmd = Watch{
	Sync:     SyncCmd,
	schedule: "@every 15m",
}

// Watch runs the sync on a cron schedule until interrupted. There is no
// run-overlap guard: a refresh that outlasts the schedule interval races the
// next tick on the destination's sheet namespace, so pick an interval longer
// than the slowest expected run.
type Watch struct {
	Sync
	schedule string
}

func (cmd *Watch) Name() string {
	return "watch"
}

func (cmd *Watch) Description() string {
	return "Runs the sync on a cron schedule until interrupted"
}

func (cmd *Watch) Usage() string {
	return "--credentials <file> --url <url> --table <table> --schedule <schedule>"
}

func (cmd *Watch) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] watch [options] --url <URL> --table <table> --schedule <schedule>\n", APP)
	fmt.Println()
	fmt.Println("  Runs an initial sync and then repeats it on the cron schedule until interrupted")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    supasheets watch --credentials "credentials.json" \`)
	fmt.Println(`                     --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`)
	fmt.Println(`                     --table "orders" --sheet "Orders" --schedule "@hourly"`)
	fmt.Println()
}

func (cmd *Watch) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("watch")

	cmd.flags(flagset)
	flagset.StringVar(&cmd.schedule, "schedule", cmd.schedule, fmt.Sprintf("Cron schedule expression. Defaults to '%s'", cmd.schedule))

	return flagset
}

func (cmd *Watch) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	if err := cmd.validate(); err != nil {
		return err
	}

	if strings.TrimSpace(cmd.schedule) == "" {
		return fmt.Errorf("--schedule is a required option")
	}

	ctx := context.Background()

	service, id, err := cmd.newSheets(ctx)
	if err != nil {
		return err
	}

	dest := newGoogleDestination(service, id)

	refresh := func() {
		if err := cmd.sync(ctx, dest); err != nil {
			errorf("%v", err)
		}
	}

	c := cron.New()
	if err := c.AddFunc(cmd.schedule, refresh); err != nil {
		return fmt.Errorf("invalid --schedule '%s' (%v)", cmd.schedule, err)
	}

	infof("refreshing worksheet '%s' on schedule '%s'", cmd.sheet, cmd.schedule)

	refresh()
	c.Start()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	<-interrupt

	c.Stop()
	infof("interrupted - exiting")

	return nil
}
