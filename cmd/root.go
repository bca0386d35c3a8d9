// Package cmd implements the CLI command structure for mywork.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/nibzard/mywork/internal/config"
	"github.com/nibzard/mywork/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// app carries the process streams so commands can be exercised in tests.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	// interactive reports whether stdout is a terminal.
	interactive bool
	// clock drives deletion timers; nil uses the wall clock.
	clock clockwork.Clock
}

// Run executes the mywork CLI.
func Run(ctx context.Context, args []string) error {
	a := &app{
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		interactive: ui.IsTTY(os.Stdout),
	}
	return a.run(ctx, args)
}

func (a *app) run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("mywork", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		a.printUsage(fs, a.stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		a.printUsage(fs, a.stdout)
		return nil
	}
	if *showVersion {
		return a.versionCommand()
	}

	// Without a command, open the list interactively or print it.
	subcommand := "ls"
	if a.interactive {
		subcommand = "tui"
	}
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	cfg := cws.Config
	switch subcommand {
	case "tui":
		return a.tuiCommand(ctx, cfg, remainingArgs)
	case "add":
		return a.addCommand(cfg, remainingArgs)
	case "ls", "list":
		return a.lsCommand(cfg, remainingArgs)
	case "done", "complete":
		return a.doneCommand(ctx, cfg, remainingArgs)
	case "rm", "remove":
		return a.rmCommand(cfg, remainingArgs)
	case "log":
		return a.logCommand(ctx, cfg, remainingArgs)
	case "doctor":
		return a.doctorCommand(cws, remainingArgs)
	case "config":
		fmt.Fprint(a.stdout, config.ExampleConfig())
		return nil
	case "version":
		return a.versionCommand()
	case "help":
		a.printUsage(fs, a.stdout)
		return nil
	default:
		fmt.Fprintf(a.stderr, "Unknown command: %s\n", subcommand)
		a.printUsage(fs, a.stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

func (a *app) versionCommand() error {
	fmt.Fprintf(a.stdout, "mywork version %s\n", Version)
	return nil
}

func (a *app) printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "mywork - a personal task list with undoable completion")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  mywork [global options] [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui                 Launch terminal UI (default on a terminal)")
	fmt.Fprintln(w, "  add <title...>      Add a task")
	fmt.Fprintln(w, "  ls                  List tasks (default when not on a terminal)")
	fmt.Fprintln(w, "  done <id>           Complete a task, then wait for undo")
	fmt.Fprintln(w, "  rm <id>             Remove a task immediately")
	fmt.Fprintln(w, "  log                 Tail the latest activity journal")
	fmt.Fprintln(w, "  doctor              Check config, storage and saved tasks")
	fmt.Fprintln(w, "  config              Print an example config file")
	fmt.Fprintln(w, "  version             Show version information")
	fmt.Fprintln(w, "  help                Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ids may be abbreviated to any unique prefix.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fs.SetOutput(a.stderr)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Add Options:")
	fmt.Fprintln(w, "  -context string")
	fmt.Fprintln(w, "        Context tag")
	fmt.Fprintln(w, "  -due string")
	fmt.Fprintln(w, "        Due date (free text)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options:")
	fmt.Fprintln(w, "  -format string")
	fmt.Fprintln(w, "        Output format: text, json or yaml (default text)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Done Options:")
	fmt.Fprintln(w, "  -no-wait")
	fmt.Fprintln(w, "        Exit right away; the task stays completed until a later session removes it")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Log Options:")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the journal (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
}
