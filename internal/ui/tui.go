// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/mywork/internal/lifecycle"
	"github.com/nibzard/mywork/internal/todo"
)

// DefaultFade is how long a completed task stays visible before the UI removes it.
const DefaultFade = 400 * time.Millisecond

// Controller is the lifecycle surface the TUI drives.
type Controller interface {
	Tasks() []todo.Task
	Pending() (todo.Task, bool)
	UndoDeadline() (time.Time, bool)
	Add(title, context, dueDate string) (todo.Task, bool)
	Complete(id string) bool
	Undo() bool
	RemoveImmediately(id string) bool
}

// Options configures the TUI.
type Options struct {
	// Fade is the delay between completing a task and removing it from the list.
	Fade time.Duration
	// Events delivers controller events raised outside the UI, such as timer expiry.
	Events <-chan lifecycle.Event
	// Now is used for the undo countdown. Defaults to time.Now.
	Now func() time.Time
}

// RunTUI starts the TUI and blocks until the user quits or ctx is done.
func RunTUI(ctx context.Context, ctrl Controller, opts Options) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	model := NewModel(ctrl, opts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type mode int

const (
	modeList mode = iota
	modeAdd
	modeHelp
)

const (
	fieldTitle = iota
	fieldContext
	fieldDue
	fieldCount
)

// Model is the Bubble Tea model for the task list.
type Model struct {
	ctrl   Controller
	fade   time.Duration
	events <-chan lifecycle.Event
	now    func() time.Time

	tasks  []todo.Task
	cursor int
	mode   mode
	fading map[string]bool
	status string

	inputs [fieldCount]textinput.Model
	focus  int
}

type fadeDoneMsg struct {
	id string
}

type eventMsg struct {
	event lifecycle.Event
}

type eventsClosedMsg struct{}

type countdownMsg time.Time

// NewModel returns a model over ctrl.
func NewModel(ctrl Controller, opts Options) *Model {
	if opts.Fade < 0 {
		opts.Fade = 0
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	m := &Model{
		ctrl:   ctrl,
		fade:   opts.Fade,
		events: opts.Events,
		now:    opts.Now,
		fading: make(map[string]bool),
	}

	placeholders := [fieldCount]string{"Task title", "Context (optional)", "Due date (optional)"}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 256
		ti.Width = 40
		m.inputs[i] = ti
	}
	m.refresh()
	return m
}

func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	// Tasks saved in the completed state finish their exit on startup.
	for _, task := range m.tasks {
		if task.Completed {
			cmds = append(cmds, m.startFade(task.ID))
		}
	}
	if m.events != nil {
		cmds = append(cmds, waitForEvent(m.events))
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeHelp:
			m.mode = modeList
			return m, nil
		default:
			return m.updateList(msg)
		}
	case tea.WindowSizeMsg:
		for i := range m.inputs {
			m.inputs[i].Width = max(msg.Width-16, 10)
		}
	case fadeDoneMsg:
		// Undo or d may have ended the fade before its tick arrived.
		if !m.fading[msg.id] {
			return m, nil
		}
		delete(m.fading, msg.id)
		m.ctrl.RemoveImmediately(msg.id)
		m.refresh()
	case eventMsg:
		m.refresh()
		if msg.event.Kind == lifecycle.EventExpired {
			m.status = fmt.Sprintf("Deleted %q", msg.event.Task.Title)
		}
		return m, waitForEvent(m.events)
	case eventsClosedMsg:
		m.events = nil
	case countdownMsg:
		if _, ok := m.ctrl.Pending(); ok {
			return m, countdownCmd()
		}
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?", "h":
		m.mode = modeHelp
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case "a":
		m.openForm()
		return m, textinput.Blink
	case "enter", " ", "x":
		task, ok := m.selected()
		if !ok || m.fading[task.ID] {
			return m, nil
		}
		if !m.ctrl.Complete(task.ID) {
			return m, nil
		}
		m.refresh()
		m.status = ""
		return m, tea.Batch(m.startFade(task.ID), countdownCmd())
	case "u":
		if pending, ok := m.ctrl.Pending(); ok && m.ctrl.Undo() {
			delete(m.fading, pending.ID)
			m.status = fmt.Sprintf("Restored %q", pending.Title)
			m.refresh()
		} else {
			m.status = "Nothing to undo"
		}
	case "d", "delete":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.ctrl.RemoveImmediately(task.ID)
		delete(m.fading, task.ID)
		m.status = fmt.Sprintf("Removed %q", task.Title)
		m.refresh()
	}
	return m, nil
}

func (m *Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm()
		m.status = "Cancelled"
		return m, nil
	case "tab", "down":
		m.focusField((m.focus + 1) % fieldCount)
		return m, nil
	case "shift+tab", "up":
		m.focusField((m.focus + fieldCount - 1) % fieldCount)
		return m, nil
	case "enter":
		title := m.inputs[fieldTitle].Value()
		tag := strings.TrimSpace(m.inputs[fieldContext].Value())
		due := strings.TrimSpace(m.inputs[fieldDue].Value())
		task, ok := m.ctrl.Add(title, tag, due)
		if !ok {
			m.status = "Title cannot be empty"
			m.focusField(fieldTitle)
			return m, nil
		}
		m.closeForm()
		m.refresh()
		m.cursor = 0
		m.status = fmt.Sprintf("Added %q", task.Title)
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) openForm() {
	m.mode = modeAdd
	m.status = ""
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.focusField(fieldTitle)
}

func (m *Model) closeForm() {
	m.mode = modeList
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
}

func (m *Model) focusField(i int) {
	m.focus = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

func (m *Model) startFade(id string) tea.Cmd {
	m.fading[id] = true
	return tea.Tick(m.fade, func(time.Time) tea.Msg {
		return fadeDoneMsg{id: id}
	})
}

func (m *Model) selected() (todo.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return todo.Task{}, false
	}
	return m.tasks[m.cursor], true
}

func (m *Model) refresh() {
	m.tasks = m.ctrl.Tasks()
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func waitForEvent(ch <-chan lifecycle.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg{event: e}
	}
}

func countdownCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return countdownMsg(t)
	})
}

func (m *Model) View() string {
	var b strings.Builder
	writeTitle(&b, len(m.tasks))

	switch m.mode {
	case modeHelp:
		writeHelp(&b)
		return b.String()
	case modeAdd:
		m.writeForm(&b)
	default:
		m.writeList(&b)
	}

	m.writeSnackbar(&b)
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status) + "\n")
	}
	writeFooter(&b, m.mode)
	return b.String()
}

func writeTitle(b *strings.Builder, count int) {
	b.WriteString(titleStyle.Render("My Work"))
	b.WriteString(dueStyle.Render(fmt.Sprintf("  %d task%s", count, plural(count))))
	b.WriteString("\n\n")
}

func (m *Model) writeList(b *strings.Builder) {
	if len(m.tasks) == 0 {
		b.WriteString("  Nothing to do. Press a to add a task.\n\n")
		return
	}
	for i, task := range m.tasks {
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		b.WriteString(prefix + formatTask(task, m.fading[task.ID]) + "\n")
	}
	b.WriteString("\n")
}

func (m *Model) writeForm(b *strings.Builder) {
	labels := [fieldCount]string{"Title", "Context", "Due"}
	var form strings.Builder
	form.WriteString("New task\n\n")
	for i := range m.inputs {
		form.WriteString(labelStyle.Render(labels[i]) + m.inputs[i].View() + "\n")
	}
	b.WriteString(formStyle.Render(strings.TrimRight(form.String(), "\n")))
	b.WriteString("\n\n")
}

func (m *Model) writeSnackbar(b *strings.Builder) {
	pending, ok := m.ctrl.Pending()
	if !ok {
		return
	}
	msg := fmt.Sprintf("Completed %q. Press u to undo", pending.Title)
	if deadline, ok := m.ctrl.UndoDeadline(); ok {
		left := deadline.Sub(m.now()).Round(time.Second)
		if left > 0 {
			msg += fmt.Sprintf(" (%s)", left)
		}
	}
	b.WriteString(snackbarStyle.Render(msg) + "\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  up/k, down/j       Move\n")
	b.WriteString("  a                  Add a task\n")
	b.WriteString("  enter, space, x    Complete the selected task\n")
	b.WriteString("  u                  Undo the last completion\n")
	b.WriteString("  d                  Remove the selected task now\n")
	b.WriteString("  ?, h               Toggle this help screen\n")
	b.WriteString("  q, ctrl+c          Quit\n\n")
	b.WriteString(helpStyle.Render("Press any key to return") + "\n")
}

func writeFooter(b *strings.Builder, m mode) {
	if m == modeAdd {
		b.WriteString(helpStyle.Render("tab next field | enter save | esc cancel") + "\n")
		return
	}
	b.WriteString(helpStyle.Render("a add | enter complete | u undo | d delete | ? help | q quit") + "\n")
}

func formatTask(t todo.Task, fading bool) string {
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}

	title := t.Title
	switch {
	case fading:
		title = fadingStyle.Render(title)
	case t.Completed:
		title = completedStyle.Render(title)
	}

	parts := []string{check, title}
	if t.Context != "" {
		parts = append(parts, contextStyle.Render("@"+t.Context))
	}
	if t.DueDate != "" {
		if t.Overdue {
			parts = append(parts, overdueStyle.Render("due "+t.DueDate+" Overdue"))
		} else {
			parts = append(parts, dueStyle.Render("due "+t.DueDate))
		}
	} else if t.Overdue {
		parts = append(parts, overdueStyle.Render("Overdue"))
	}
	return strings.Join(parts, " ")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
