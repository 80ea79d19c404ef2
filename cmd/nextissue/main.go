// Command nextissue prints the next available local issue ID, zero-padded
// to 3 digits, by scanning the open/ and closed/ subdirectories of an issues
// directory for filenames with a leading digit run.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/mcncl/jstool/internal/config"
	"github.com/mcncl/jstool/internal/errors"
	"github.com/mcncl/jstool/internal/issues"
)

// CLI defines the command-line interface
var CLI struct {
	Dir string `arg:"" optional:"" help:"Path to the issues directory (default: .issues, or issues_dir from .jstool.yml)." type:"path"`
}

func main() {
	kongParser := kong.Must(&CLI,
		kong.Name("nextissue"),
		kong.Description("Print the next available local issue ID"),
		kong.UsageOnError(),
	)
	if _, err := kongParser.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	dir := CLI.Dir
	if dir == "" {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
			os.Exit(1)
		}
		dir = cfg.IssuesDir
	}

	id, err := issues.NextID(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}
	fmt.Println(id)
}
