package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/nibzard/mywork/internal/config"
	"github.com/nibzard/mywork/internal/datadir"
	"github.com/nibzard/mywork/internal/ui"
)

// tuiCommand launches the interactive task list.
func (a *app) tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("mywork tui", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if !a.interactive {
		return fmt.Errorf("tui requires a TTY")
	}

	logFile, err := openTUILog(datadir.New(cfg.DataDir, cfg.StorageKey))
	if err != nil {
		return err
	}
	defer logFile.Close()

	s, err := a.openSession(cfg, sessionOptions{logTo: logFile, events: true})
	if err != nil {
		return err
	}
	defer s.Close()

	return ui.RunTUI(ctx, s.ctrl, ui.Options{
		Fade:   cfg.FadeDuration(),
		Events: s.events,
	})
}
