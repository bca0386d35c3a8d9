package cmd

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/nibzard/mywork/internal/config"
	"github.com/nibzard/mywork/internal/datadir"
	"github.com/nibzard/mywork/internal/logging"
	"github.com/nibzard/mywork/internal/storage"
	"github.com/nibzard/mywork/internal/todo"
)

// doctorCommand reports config sources and the health of saved tasks.
func (a *app) doctorCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("mywork doctor", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := cws.Config
	layout := datadir.New(cfg.DataDir, cfg.StorageKey)
	w := a.stdout

	fmt.Fprintln(w, "mywork doctor")
	fmt.Fprintln(w, "=============")
	fmt.Fprintln(w)

	allOK := true

	// Config
	if file := cws.ConfigFile(); file != "" {
		fmt.Fprintf(w, "Config file: %s\n", file)
	} else {
		fmt.Fprintln(w, "Config file: (none, using defaults)")
	}
	if *verbose {
		fields := make([]string, 0, len(cws.Sources))
		for field := range cws.Sources {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			fmt.Fprintf(w, "  %-20s %s\n", field, cws.Sources[field])
		}
	}
	fmt.Fprintf(w, "  Undo delay: %s\n", cfg.UndoDelay())
	fmt.Fprintf(w, "  Fade: %s\n", cfg.FadeDuration())
	fmt.Fprintln(w)

	// Data directory
	fmt.Fprintf(w, "Data directory: %s\n", layout.Root)
	if info, err := os.Stat(layout.Root); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(w, "  ⚠️  Not found (will be created on first save)")
		} else {
			fmt.Fprintf(w, "  ❌ Error: %v\n", err)
			allOK = false
		}
	} else if !info.IsDir() {
		fmt.Fprintln(w, "  ❌ Error: path is not a directory")
		allOK = false
	} else {
		fmt.Fprintln(w, "  ✅ OK")
	}
	fmt.Fprintln(w)

	// Storage
	kind, err := cfg.BackendKind()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Storage: %s (key %s)\n", kind, cfg.StorageKey)
	if path := layout.StorePath(kind); path != "" {
		fmt.Fprintf(w, "  Path: %s\n", path)
	}
	if !a.checkSnapshot(kind, cfg, *verbose) {
		allOK = false
	}
	fmt.Fprintln(w)

	// Journal
	fmt.Fprintf(w, "Journal: %s\n", layout.JournalPath())
	if !cfg.Journal {
		fmt.Fprintln(w, "  Disabled")
	} else if latest, err := logging.FindLatestJournal(layout.JournalPath()); err != nil {
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		allOK = false
	} else if latest == "" {
		fmt.Fprintln(w, "  ⚠️  No journals yet")
	} else {
		fmt.Fprintf(w, "  ✅ Latest: %s\n", latest)
	}
	fmt.Fprintln(w)

	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed. Saved tasks may not load.")
	return fmt.Errorf("doctor checks failed")
}

// checkSnapshot reads the raw blob and validates it without the fail-soft
// recovery the store applies.
func (a *app) checkSnapshot(kind storage.Kind, cfg *config.Config, verbose bool) bool {
	w := a.stdout
	if kind == storage.KindMemory {
		fmt.Fprintln(w, "  ⚠️  Memory backend: tasks are not persisted")
		return true
	}
	if _, err := os.Stat(cfg.DataDir); os.IsNotExist(err) {
		fmt.Fprintln(w, "  ⚠️  Nothing saved yet")
		return true
	}

	backend, err := storage.Open(kind, cfg.DataDir, cfg.StorageKey)
	if err != nil {
		fmt.Fprintf(w, "  ❌ Open error: %v\n", err)
		return false
	}
	defer backend.Close()

	blob, err := backend.Load()
	if err != nil {
		fmt.Fprintf(w, "  ❌ Read error: %v\n", err)
		return false
	}
	if len(blob) == 0 {
		fmt.Fprintln(w, "  ⚠️  Nothing saved yet")
		return true
	}

	tasks, err := todo.DecodeSnapshot(blob)
	if err != nil {
		fmt.Fprintln(w, "  ❌ Saved tasks are corrupt and will load as an empty list:")
		fmt.Fprintf(w, "     - %v\n", err)
		return false
	}
	fmt.Fprintln(w, "  ✅ Valid")

	ok := true
	if _, dropped := todo.Dedupe(tasks); len(dropped) > 0 {
		fmt.Fprintf(w, "  ❌ Duplicate ids (later copies are dropped on load): %v\n", dropped)
		ok = false
	}
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	fmt.Fprintf(w, "  Tasks: %d (%d completed, removed when the TUI next opens)\n", len(tasks), completed)
	if verbose {
		for _, t := range tasks {
			fmt.Fprint(w, "    ")
			printTask(w, t)
		}
	}
	return ok
}
