// Package ui provides the full-screen terminal shell for the task list.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/taskpad/internal/todo"
)

const (
	title       = "MANAGE YOUR TASKS"
	placeholder = "What is the task?..."
	emptyState  = "No tasks."

	// Lines used by everything except the task rows.
	chromeLines = 10
)

// RunTUI starts the shell over store and blocks until the user quits.
func RunTUI(ctx context.Context, store *todo.Store, logger *log.Logger) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	m := newModel(ctx, store, logger)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type model struct {
	ctx    context.Context
	store  *todo.Store
	logger *log.Logger
	styles styles

	input  textinput.Model
	tasks  []todo.Task
	cursor int
	notice string
	loaded bool
	height int
}

// loadedMsg reports the startup load. Load errors are already logged by the store.
type loadedMsg struct {
	err error
}

// opDoneMsg reports a finished write. text is the submitted input for OpAdd.
type opDoneMsg struct {
	op   todo.Op
	text string
	err  error
}

func newModel(ctx context.Context, store *todo.Store, logger *log.Logger) *model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "│ "
	ti.Width = 48
	ti.Focus()

	return &model{
		ctx:    ctx,
		store:  store,
		logger: logger,
		styles: defaultStyles(),
		input:  ti,
		tasks:  store.Tasks(),
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadCmd())
}

func (m *model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: m.store.Load(m.ctx)}
	}
}

// persistCmd writes a mutation the model already shows.
func (m *model) persistCmd(p *todo.Pending, text string) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{op: p.Op(), text: text, err: p.Persist(m.ctx)}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		if w := msg.Width - 4; w > 10 {
			m.input.Width = w
		}
		return m, nil

	case loadedMsg:
		m.loaded = true
		m.refresh()
		if msg.err != nil {
			m.logger.Debug("Startup load failed, starting with current list", "err", msg.err)
		}
		return m, nil

	case opDoneMsg:
		m.refresh()
		if msg.err != nil {
			m.notice = todo.Notice(msg.err)
			return m, nil
		}
		// Keep anything typed while the write was in flight.
		if msg.op == todo.OpAdd && m.input.Value() == msg.text {
			m.input.Reset()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		// A notice blocks input until dismissed.
		if m.notice != "" {
			m.notice = ""
			return m, nil
		}
		switch msg.Type {
		case tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			text := m.input.Value()
			p, err := m.store.StageAdd(text)
			if err != nil {
				m.notice = todo.Notice(err)
				return m, nil
			}
			m.refresh()
			return m, m.persistCmd(p, text)
		case tea.KeyCtrlD:
			p := m.store.StageDeleteAll()
			m.refresh()
			return m, m.persistCmd(p, "")
		case tea.KeyUp:
			m.moveCursor(-1)
			return m, nil
		case tea.KeyDown:
			m.moveCursor(1)
			return m, nil
		case tea.KeyCtrlX, tea.KeyDelete:
			if len(m.tasks) == 0 {
				return m, nil
			}
			p := m.store.StageDelete(m.tasks[m.cursor].ID)
			m.refresh()
			return m, m.persistCmd(p, "")
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// refresh copies the store's list and keeps the cursor in range.
func (m *model) refresh() {
	m.tasks = m.store.Tasks()
	m.moveCursor(0)
}

func (m *model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.styles.input.Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.styles.button.Render("[enter] save task"))
	b.WriteString("  ")
	b.WriteString(m.styles.button.Render("[ctrl+d] delete all tasks"))
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(m.styles.notice.Render(m.notice + "\n\n(press any key)"))
		b.WriteString("\n")
		return b.String()
	}

	m.writeList(&b)
	b.WriteString("\n")
	b.WriteString(m.styles.help.Render("↑/↓ select • ctrl+x remove • esc quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *model) writeList(b *strings.Builder) {
	if !m.loaded {
		b.WriteString(m.styles.empty.Render("Loading..."))
		b.WriteString("\n")
		return
	}
	if len(m.tasks) == 0 {
		b.WriteString(m.styles.empty.Render(emptyState))
		b.WriteString("\n")
		return
	}

	start, end := visibleRange(len(m.tasks), m.cursor, m.height-chromeLines)
	for i := start; i < end; i++ {
		task := m.tasks[i]
		if i == m.cursor {
			b.WriteString(m.styles.selected.Render("> " + task.Value))
			b.WriteString(m.styles.remove.Render("  [ctrl+x] remove"))
		} else {
			b.WriteString(m.styles.row.Render("  " + task.Value))
		}
		b.WriteString("\n")
	}
	if start > 0 || end < len(m.tasks) {
		b.WriteString(m.styles.help.Render(fmt.Sprintf("  %d-%d of %d", start+1, end, len(m.tasks))))
		b.WriteString("\n")
	}
}

// visibleRange returns the window [start, end) of n rows that keeps cursor
// visible when at most limit rows fit. A non-positive limit shows every row.
func visibleRange(n, cursor, limit int) (int, int) {
	if limit <= 0 || n <= limit {
		return 0, n
	}
	start := cursor - limit/2
	if start < 0 {
		start = 0
	}
	if start+limit > n {
		start = n - limit
	}
	return start, start + limit
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
