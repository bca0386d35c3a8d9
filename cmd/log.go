package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/nibzard/mywork/internal/config"
	"github.com/nibzard/mywork/internal/datadir"
	"github.com/nibzard/mywork/internal/logging"
)

// logCommand tails the most recent activity journal.
func (a *app) logCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("mywork log", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	follow := fs.Bool("f", false, "Follow the journal (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the journal (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dir := datadir.New(cfg.DataDir, cfg.StorageKey).JournalPath()
	path, err := logging.FindLatestJournal(dir)
	if err != nil {
		return fmt.Errorf("finding latest journal: %w", err)
	}
	if path == "" {
		fmt.Fprintln(a.stdout, "No journal files found.")
		return nil
	}

	fmt.Fprintf(a.stderr, "Tailing: %s\n", path)
	if *follow {
		fmt.Fprintln(a.stderr, "(Ctrl+C to stop)")
	}
	return logging.TailJournal(ctx, a.stdout, path, *n, *follow)
}
