package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nibzard/mywork/internal/config"
	"github.com/nibzard/mywork/internal/lifecycle"
	"github.com/nibzard/mywork/internal/todo"
)

// addCommand adds one task.
func (a *app) addCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("mywork add", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	tag := fs.String("context", "", "Context tag")
	due := fs.String("due", "", "Due date (free text)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	title := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("usage: mywork add [-context c] [-due d] <title...>")
	}

	s, err := a.openSession(cfg, sessionOptions{})
	if err != nil {
		return err
	}
	defer s.Close()

	task, ok := s.ctrl.Add(title, strings.TrimSpace(*tag), strings.TrimSpace(*due))
	if !ok {
		return fmt.Errorf("task title is empty")
	}
	fmt.Fprintf(a.stdout, "Added %s: %s\n", task.ID, task.Title)
	return nil
}

// lsCommand lists tasks in collection order.
func (a *app) lsCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("mywork ls", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	format := fs.String("format", "text", "Output format: text, json or yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	s, err := a.openSession(cfg, sessionOptions{})
	if err != nil {
		return err
	}
	defer s.Close()

	return writeTasks(a.stdout, s.ctrl.Tasks(), *format)
}

func writeTasks(w io.Writer, tasks []todo.Task, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		printTaskList(w, tasks)
		return nil
	case "json":
		if tasks == nil {
			tasks = []todo.Task{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tasks); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}

func printTaskList(w io.Writer, tasks []todo.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}
	for _, t := range tasks {
		printTask(w, t)
	}
}

func printTask(w io.Writer, t todo.Task) {
	check := " "
	if t.Completed {
		check = "x"
	}
	line := fmt.Sprintf("%s [%s] %s", t.ID, check, t.Title)
	if t.Context != "" {
		line += " @" + t.Context
	}
	if t.DueDate != "" {
		line += " (due " + t.DueDate + ")"
	}
	if t.Overdue {
		line += " OVERDUE"
	}
	fmt.Fprintln(w, line)
}

// doneCommand completes a task and keeps the process alive for the undo window.
func (a *app) doneCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("mywork done", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	noWait := fs.Bool("no-wait", false, "Exit without waiting for the undo window")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: mywork done [-no-wait] <id>")
	}

	s, err := a.openSession(cfg, sessionOptions{events: true})
	if err != nil {
		return err
	}
	defer s.Close()

	task, err := resolveTask(s.ctrl.Tasks(), fs.Arg(0))
	if err != nil {
		return err
	}
	if !s.ctrl.Complete(task.ID) {
		return fmt.Errorf("task %s not found", task.ID)
	}

	if *noWait {
		fmt.Fprintf(a.stdout, "Completed %q\n", task.Title)
		return nil
	}
	fmt.Fprintf(a.stdout, "Completed %q. Type u and press Enter within %s to undo.\n", task.Title, s.ctrl.UndoDelay())
	return a.waitForUndo(ctx, s, task)
}

// waitForUndo blocks until the deletion timer fires, the user undoes, or ctx
// ends. Cancellation returns ctx.Err() with the task left completed.
func (a *app) waitForUndo(ctx context.Context, s *session, task todo.Task) error {
	done := make(chan struct{})
	defer close(done)
	// Wake the reader goroutine out of Scan when stdin supports deadlines.
	if f, ok := a.stdin.(interface{ SetReadDeadline(time.Time) error }); ok {
		defer f.SetReadDeadline(time.Now())
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(a.stdin)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintf(a.stdout, "Left %q completed.\n", task.Title)
			return ctx.Err()
		case e := <-s.events:
			if e.Kind == lifecycle.EventExpired && e.Task.ID == task.ID {
				fmt.Fprintf(a.stdout, "Deleted %q\n", task.Title)
				return nil
			}
		case line, ok := <-lines:
			if !ok {
				// Input closed; keep waiting for the timer.
				lines = nil
				continue
			}
			if strings.EqualFold(strings.TrimSpace(line), "u") {
				if s.ctrl.Undo() {
					fmt.Fprintf(a.stdout, "Restored %q\n", task.Title)
				}
				return nil
			}
		}
	}
}

// rmCommand removes a task immediately.
func (a *app) rmCommand(cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: mywork rm <id>")
	}
	s, err := a.openSession(cfg, sessionOptions{})
	if err != nil {
		return err
	}
	defer s.Close()

	task, err := resolveTask(s.ctrl.Tasks(), args[0])
	if err != nil {
		return err
	}
	s.ctrl.RemoveImmediately(task.ID)
	fmt.Fprintf(a.stdout, "Removed %q\n", task.Title)
	return nil
}

// resolveTask finds the task whose id equals ref or uniquely starts with it.
func resolveTask(tasks []todo.Task, ref string) (todo.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return todo.Task{}, fmt.Errorf("task id is empty")
	}
	var matches []todo.Task
	for _, t := range tasks {
		if t.ID == ref {
			return t, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return todo.Task{}, fmt.Errorf("no task with id %q", ref)
	case 1:
		return matches[0], nil
	default:
		return todo.Task{}, fmt.Errorf("id %q is ambiguous (%d matches)", ref, len(matches))
	}
}
