// Command jstool is a JSON flat view and edit tool: it renders a document as
// `path type value` rows, infers schemas, and applies targeted edits with a
// preview-by-default workflow.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lmittmann/tint"

	"github.com/mcncl/jstool/internal/config"
	"github.com/mcncl/jstool/internal/errors"
	"github.com/mcncl/jstool/internal/models"
	"github.com/mcncl/jstool/internal/parser"
	"github.com/mcncl/jstool/internal/preview"
	"github.com/mcncl/jstool/internal/suggest"
)

// CLI defines the command-line interface
var CLI struct {
	Debug bool `help:"Enable debug logging." short:"d"`

	View    ViewCmd    `cmd:"" help:"Flat view of a JSON document."`
	Schema  SchemaCmd  `cmd:"" help:"Infer a draft-07 JSON Schema for a document."`
	Set     SetCmd     `cmd:"" help:"Set the value at a path."`
	Before  BeforeCmd  `cmd:"" help:"Insert a value before an array element."`
	After   AfterCmd   `cmd:"" help:"Insert a value after an array element."`
	Del     DelCmd     `cmd:"" help:"Delete a key or array element."`
	SetNull SetNullCmd `cmd:"" name:"set-null" help:"Set the value at a path to null."`
	Copy    CopyCmd    `cmd:"" help:"Deep-copy the value at one path to another."`
	Merge   MergeCmd   `cmd:"" help:"Deep-merge a JSON patch file into a path."`
}

// Context holds the runtime context shared by all commands
type Context struct {
	Config *config.Config
}

func main() {
	args := rewriteArgs(os.Args[1:])

	// Unknown first tokens get ranked suggestions instead of kong's generic
	// parse error.
	if cmd, unknown := unknownCommand(args); unknown {
		fmt.Fprintf(os.Stderr, "Unknown command: %q\n", cmd)
		if suggestions := suggest.Suggest(cmd); len(suggestions) > 0 {
			fmt.Fprintf(os.Stderr, "  Did you mean: %s\n", strings.Join(suggestions, "  |  "))
		} else {
			fmt.Fprintf(os.Stderr, "  Run jstool --help to see available commands.\n")
		}
		os.Exit(1)
	}

	kongParser := kong.Must(&CLI,
		kong.Name("jstool"),
		kong.Description("JSON flat view and edit tool"),
		kong.UsageOnError(),
	)

	ctx, err := kongParser.Parse(args)
	if err != nil {
		// kong.UsageOnError() has already shown usage
		os.Exit(1)
	}

	setupLogging(CLI.Debug)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}
	slog.Debug("configuration resolved",
		"preview_context", cfg.PreviewContext,
		"schema_sample_limit", cfg.SchemaSampleLimit)

	if err := ctx.Run(&Context{Config: cfg}); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jstool --help\n")
		os.Exit(1)
	}
}

func setupLogging(debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level})))
}

// rewriteArgs handles the two dispatch sugars: `jstool help` becomes
// `jstool --help`, and the B-style assignment `jstool <path> = <value> ...`
// becomes `jstool set <path> <value> ...`.
func rewriteArgs(args []string) []string {
	if len(args) > 0 && args[0] == "help" {
		return []string{"--help"}
	}
	if isBStyle(args) {
		out := []string{"set", args[0]}
		return append(out, args[2:]...)
	}
	return args
}

// isBStyle reports whether args look like `<path> = <value> ...`.
func isBStyle(args []string) bool {
	if len(args) < 2 || args[1] != "=" {
		return false
	}
	for _, c := range suggest.Commands {
		if args[0] == c {
			return false
		}
	}
	return true
}

// unknownCommand reports whether the first token is neither a flag nor a
// known command.
func unknownCommand(args []string) (string, bool) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return "", false
	}
	for _, c := range suggest.Commands {
		if args[0] == c {
			return "", false
		}
	}
	return args[0], true
}

// readDocument parses the JSON document from a file argument or stdin. The
// returned path is "" for stdin input.
func readDocument(fileArg string) (*models.Value, string, error) {
	if fileArg != "" {
		doc, err := parser.ParseFile(fileArg)
		return doc, fileArg, err
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return nil, "", errors.NewInputError("failed to access stdin", err)
	}
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		return nil, "", errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	jsonData, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, "", errors.NewInputError("failed to read from stdin", err)
	}
	if len(jsonData) == 0 {
		return nil, "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	doc, err := parser.ParseString(string(jsonData))
	return doc, "", err
}

// emitResult writes the mutated document back to its file, or to stdout for
// stdin input. Only called on forced edits.
func emitResult(doc *models.Value, filePath string) error {
	if filePath != "" {
		if err := os.WriteFile(filePath, []byte(doc.PrettyJSON()), 0644); err != nil {
			return errors.NewOutputError(
				fmt.Sprintf("failed to write to file '%s'", filePath), err)
		}
		fmt.Printf("Written to %s\n", filePath)
		return nil
	}
	fmt.Print(doc.PrettyJSON())
	return nil
}

func newRenderer(app *Context) *preview.Renderer {
	return preview.New(os.Stdout, app.Config.PreviewContext)
}
