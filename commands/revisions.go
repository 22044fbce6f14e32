package commands

import (
	"context"
	"flag"
	"fmt"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

var RevisionsCmd = Revisions{
	command: command{
		workdir:     DEFAULT_WORKDIR,
		credentials: DEFAULT_CREDENTIALS,
	},
}

// Revisions reports the destination document's latest revision - a quick
// operator check that a sync actually landed.
type Revisions struct {
	command
}

type revision struct {
	id       string
	modified time.Time
}

func (cmd *Revisions) Name() string {
	return "revisions"
}

func (cmd *Revisions) Description() string {
	return "Displays the latest revision of the destination spreadsheet"
}

func (cmd *Revisions) Usage() string {
	return "--credentials <file> --url <url>"
}

func (cmd *Revisions) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] revisions [options] --url <URL>\n", APP)
	fmt.Println()
	fmt.Println("  Displays the ID and timestamp of the destination spreadsheet's most recent revision")
	fmt.Println()

	helpOptions(cmd.FlagSet())
	fmt.Println()
}

func (cmd *Revisions) FlagSet() *flag.FlagSet {
	return cmd.flagset("revisions")
}

func (cmd *Revisions) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	if err := cmd.validate(); err != nil {
		return err
	}

	id, err := spreadsheetId(cmd.url)
	if err != nil {
		return err
	}

	ctx := context.Background()

	client, err := authorize(cmd.credentials, DRIVE, cmd.tokdir())
	if err != nil {
		return fmt.Errorf("authentication/authorization error (%v)", err)
	}

	gdrive, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return fmt.Errorf("unable to create new Drive client (%v)", err)
	}

	latest, err := latestRevision(ctx, gdrive, id)
	if err != nil {
		return err
	}

	infof("latest revision %s, modified %s", latest.id, latest.modified.Format("2006-01-02 15:04:05"))

	return nil
}

// latestRevision walks the document's revision list (paged) and returns the
// most recently modified revision.
func latestRevision(ctx context.Context, gdrive *drive.Service, fileId string) (*revision, error) {
	page := ""
	latest := revision{
		id:       "",
		modified: time.Time{},
	}

	for {
		call := drive.NewRevisionsService(gdrive).List(fileId).Context(ctx)
		if page != "" {
			call = call.PageToken(page)
		}

		revisions, err := call.Do()
		if err != nil {
			return nil, err
		}

		for _, r := range revisions.Revisions {
			modified, err := time.Parse("2006-01-02T15:04:05.999Z", r.ModifiedTime)
			if err != nil {
				return nil, err
			}

			if latest.modified.Before(modified) {
				latest.id = r.Id
				latest.modified = modified
			}
		}

		if page = revisions.NextPageToken; page == "" {
			break
		}
	}

	if latest.modified.IsZero() {
		return nil, fmt.Errorf("unable to identify latest revision for file ID %s", fileId)
	}

	return &latest, nil
}
