package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/nibzard/mywork/internal/config"
	"github.com/nibzard/mywork/internal/datadir"
	"github.com/nibzard/mywork/internal/lifecycle"
	"github.com/nibzard/mywork/internal/logging"
	"github.com/nibzard/mywork/internal/storage"
	"github.com/nibzard/mywork/internal/todo"
)

// tuiLogFile receives console logs while the TUI owns the terminal.
const tuiLogFile = "tui.log"

// session wires storage, the store, the controller and the journal for one command.
type session struct {
	cfg     *config.Config
	layout  datadir.Layout
	logger  *log.Logger
	backend storage.Backend
	store   *todo.Store
	ctrl    *lifecycle.Controller
	journal *logging.Journal
	events  chan lifecycle.Event

	closers []io.Closer
}

type sessionOptions struct {
	// logTo overrides the console log destination.
	logTo io.Writer
	// events buffers controller events for the caller.
	events bool
}

func (a *app) openSession(cfg *config.Config, opts sessionOptions) (*session, error) {
	s := &session{
		cfg:    cfg,
		layout: datadir.New(cfg.DataDir, cfg.StorageKey),
	}

	logTo := opts.logTo
	if logTo == nil {
		logTo = a.stderr
	}
	s.logger = logging.NewFromConfig(logTo, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)

	kind, err := cfg.BackendKind()
	if err != nil {
		return nil, err
	}
	if kind != storage.KindMemory || cfg.Journal {
		if err := s.layout.Ensure(); err != nil {
			return nil, err
		}
	}

	backend, err := storage.Open(kind, cfg.DataDir, cfg.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("opening %s storage: %w", kind, err)
	}
	s.backend = backend
	s.closers = append(s.closers, backend)

	s.store = todo.NewStore(backend, s.logger)
	s.store.Load()

	if cfg.Journal {
		j, err := logging.NewJournal(s.layout.JournalPath())
		if err != nil {
			s.logger.Warn("Activity journal disabled", "err", err)
		} else {
			s.journal = j
			s.closers = append(s.closers, j)
		}
	}

	ctrlOpts := []lifecycle.Option{
		lifecycle.WithClock(a.clock),
		lifecycle.WithUndoDelay(cfg.UndoDelay()),
		lifecycle.WithLogger(s.logger),
		lifecycle.WithObserver(s.record),
	}
	if opts.events {
		s.events = make(chan lifecycle.Event, 64)
		ctrlOpts = append(ctrlOpts, lifecycle.WithObserver(s.forward))
	}
	s.ctrl = lifecycle.New(s.store, ctrlOpts...)
	return s, nil
}

// record writes e to the activity journal.
func (s *session) record(e lifecycle.Event) {
	if s.journal == nil {
		return
	}
	entry := logging.Entry{
		Event:  e.Kind.String(),
		TaskID: e.Task.ID,
		Title:  e.Task.Title,
	}
	if e.Displaced != nil {
		entry.Detail = "displaced undo for " + e.Displaced.ID
	}
	if err := s.journal.Record(entry); err != nil {
		s.logger.Warn("Writing journal failed", "err", err)
	}
}

// forward hands e to the events channel without blocking the controller.
func (s *session) forward(e lifecycle.Event) {
	select {
	case s.events <- e:
	default:
		s.logger.Debug("Dropped controller event", "event", e.Kind)
	}
}

// Close stops pending timers and releases storage and the journal.
func (s *session) Close() error {
	s.ctrl.Close()
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// openTUILog opens the file console logs go to while the TUI runs.
func openTUILog(layout datadir.Layout) (*os.File, error) {
	if err := os.MkdirAll(layout.Root, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return os.OpenFile(filepath.Join(layout.Root, tuiLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}
