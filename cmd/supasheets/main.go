package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/joeybream/supasheets/commands"
)

type command interface {
	Name() string
	Description() string
	Usage() string
	Help()
	FlagSet() *flag.FlagSet
	Execute(args ...any) error
}

var cli = []command{
	&commands.SyncCmd,
	&commands.WatchCmd,
	&commands.GetCmd,
	&commands.ExportCmd,
	&commands.RevisionsCmd,
	&commands.AuthoriseCmd,
	&commands.VersionCmd,
}

var options = commands.Options{
	Debug: false,
}

func main() {
	// .env (if any) feeds the SUPABASE_* flag defaults
	godotenv.Load()

	flag.BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	if args[0] == "help" {
		help(args[1:])
		return
	}

	for _, cmd := range cli {
		if cmd.Name() == args[0] {
			flagset := cmd.FlagSet()
			if err := flagset.Parse(args[1:]); err != nil {
				fmt.Printf("\nERROR: %v\n\n", err)
				os.Exit(1)
			}

			if err := cmd.Execute(&options); err != nil {
				fmt.Printf("\nERROR: %v\n\n", err)
				os.Exit(1)
			}

			return
		}
	}

	fmt.Printf("\nERROR: invalid command '%s'\n\n", args[0])
	usage()
	os.Exit(1)
}

func usage() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] <command> [options]\n", commands.APP)
	fmt.Println()
	fmt.Println("  Commands:")
	fmt.Println()

	for _, cmd := range cli {
		fmt.Printf("    %-13s %s\n", cmd.Name(), cmd.Description())
	}

	fmt.Println()
	fmt.Println("    help          Displays the help information for a command")
	fmt.Println()
}

func help(args []string) {
	if len(args) > 0 {
		for _, cmd := range cli {
			if cmd.Name() == args[0] {
				cmd.Help()
				return
			}
		}

		fmt.Printf("\nERROR: invalid command '%s'\n\n", args[0])
	}

	usage()
}
