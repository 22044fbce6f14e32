package commands

import (
	"flag"
	"fmt"
)

var AuthoriseCmd = Authorise{
	command: command{
		workdir:     DEFAULT_WORKDIR,
		credentials: DEFAULT_CREDENTIALS,
	},
}

// Authorise runs the interactive OAuth2 flow for the Sheets and Drive
// scopes, caching the tokens under the workdir so that subsequent (cron'd)
// runs are non-interactive.
type Authorise struct {
	command
}

func (cmd *Authorise) Name() string {
	return "authorise"
}

func (cmd *Authorise) Description() string {
	return "Authorises supasheets to access the destination spreadsheet"
}

func (cmd *Authorise) Usage() string {
	return "--credentials <file> --url <url>"
}

func (cmd *Authorise) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] authorise [options] --url <URL>\n", APP)
	fmt.Println()
	fmt.Println("  Authorises supasheets to access a Google Sheets spreadsheet and caches the access tokens")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    supasheets authorise --credentials "credentials.json" --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"`)
	fmt.Println()
}

func (cmd *Authorise) FlagSet() *flag.FlagSet {
	return cmd.flagset("authorise")
}

func (cmd *Authorise) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	if err := cmd.validate(); err != nil {
		return err
	}

	if _, err := spreadsheetId(cmd.url); err != nil {
		return err
	}

	for _, scope := range []string{SHEETS, DRIVE} {
		if _, err := authorize(cmd.credentials, scope, cmd.tokdir()); err != nil {
			return fmt.Errorf("authorisation error (%v)", err)
		}
	}

	infof("authorised - tokens cached in %s", cmd.tokdir())

	return nil
}
