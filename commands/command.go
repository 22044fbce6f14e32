package commands

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const APP = "supasheets"
const VERSION = "v0.3.1"

const SHEETS = "https://www.googleapis.com/auth/spreadsheets"
const DRIVE = "https://www.googleapis.com/auth/drive.metadata.readonly"

// Options are the global command line options shared by every command.
type Options struct {
	Debug bool
}

// command holds the options common to every command that talks to the
// destination spreadsheet.
type command struct {
	workdir     string
	credentials string
	tokens      string
	url         string
	debug       bool
}

func (c *command) flagset(name string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ExitOnError)

	flagset.StringVar(&c.workdir, "workdir", c.workdir, "Directory for working files (tokens, etc)")
	flagset.StringVar(&c.credentials, "credentials", c.credentials, "Path for the 'credentials.json' file")
	flagset.StringVar(&c.tokens, "tokens", c.tokens, "Directory for cached access tokens. Defaults to <workdir>/.google")
	flagset.StringVar(&c.url, "url", c.url, "Destination spreadsheet URL")

	return flagset
}

func (c *command) validate() error {
	if strings.TrimSpace(c.credentials) == "" {
		return fmt.Errorf("--credentials is a required option")
	}

	if strings.TrimSpace(c.url) == "" {
		return fmt.Errorf("--url is a required option")
	}

	return nil
}

func (c *command) tokdir() string {
	if strings.TrimSpace(c.tokens) != "" {
		return c.tokens
	}

	return filepath.Join(c.workdir, ".google")
}

// newSheets authorizes against the Sheets API and returns a service along
// with the spreadsheet ID extracted from the command URL.
func (c *command) newSheets(ctx context.Context) (*sheets.Service, string, error) {
	id, err := spreadsheetId(c.url)
	if err != nil {
		return nil, "", err
	}

	if c.debug {
		debugf("spreadsheet - ID:%s", id)
	}

	client, err := authorize(c.credentials, SHEETS, c.tokdir())
	if err != nil {
		return nil, "", fmt.Errorf("authentication/authorization error (%v)", err)
	}

	service, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, "", fmt.Errorf("unable to create new Sheets client (%v)", err)
	}

	return service, id, nil
}

func spreadsheetId(url string) (string, error) {
	match := regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`).FindStringSubmatch(strings.TrimSpace(url))
	if len(match) < 2 {
		return "", fmt.Errorf("invalid spreadsheet URL - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'")
	}

	return match[1], nil
}

// envOrDefault is used for flag defaults that can come from the environment
// (or a .env file loaded by main).
func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

func helpOptions(flagset *flag.FlagSet) {
	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
	})
}

func debugf(format string, args ...any) {
	log.Printf("%-5s %s", "DEBUG", fmt.Sprintf(format, args...))
}

func infof(format string, args ...any) {
	log.Printf("%-5s %s", "INFO", fmt.Sprintf(format, args...))
}

func warnf(format string, args ...any) {
	log.Printf("%-5s %s", "WARN", fmt.Sprintf(format, args...))
}

func errorf(format string, args ...any) {
	log.Printf("%-5s %s", "ERROR", fmt.Sprintf(format, args...))
}
