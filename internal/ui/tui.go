// Package ui provides the terminal front-ends for a todo session: a
// bubbletea menu and a plain line console.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/todo-go/internal/render"
	"github.com/nibzard/todo-go/internal/session"
	"github.com/nibzard/todo-go/internal/todo"
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

type tuiConfig struct {
	altScreen bool
	input     io.Reader
	output    io.Writer
}

// WithAltScreen runs the TUI in the terminal's alternate screen.
func WithAltScreen(enabled bool) TUIOption {
	return func(c *tuiConfig) {
		c.altScreen = enabled
	}
}

// WithIO sets the program's input and output.
func WithIO(in io.Reader, out io.Writer) TUIOption {
	return func(c *tuiConfig) {
		c.input = in
		c.output = out
	}
}

// RunTUI runs the interactive menu until the user exits or ctx is done.
func RunTUI(ctx context.Context, sess *session.Session, opts ...TUIOption) error {
	program := tea.NewProgram(newTUIModel(sess), newTUIConfig(opts...).programOptions(ctx)...)
	if _, err := program.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}

func newTUIConfig(opts ...TUIOption) *tuiConfig {
	c := &tuiConfig{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *tuiConfig) programOptions(ctx context.Context) []tea.ProgramOption {
	var programOpts []tea.ProgramOption
	programOpts = append(programOpts, tea.WithContext(ctx))
	if c.altScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if c.input != nil {
		programOpts = append(programOpts, tea.WithInput(c.input))
	}
	if c.output != nil {
		programOpts = append(programOpts, tea.WithOutput(c.output))
	}
	return programOpts
}

type mode int

const (
	modeMenu mode = iota
	modeDescription
	modeDue
	modeView
	modeSelect
)

const (
	descriptionPrompt = "Enter the task description: "
	selectPrompt      = "Enter the number of the to-do to mark as done (or 0 to cancel): "
)

type tuiModel struct {
	sess        *session.Session
	styles      Styles
	menu        []session.MenuItem
	cursor      int
	mode        mode
	input       textinput.Model
	pendingDesc string
	view        *todo.View
	notice      session.Notice
	quitting    bool
}

func newTUIModel(sess *session.Session) *tuiModel {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50

	return &tuiModel{
		sess:   sess,
		styles: DefaultStyles(),
		menu:   session.Menu(),
		input:  ti,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.mode {
		case modeMenu:
			return m.updateMenu(msg)
		case modeView:
			m.backToMenu()
			return m, nil
		default:
			return m.updatePrompt(msg)
		}
	case tea.WindowSizeMsg:
		if w := msg.Width - len(selectPrompt) - 2; w > 10 {
			m.input.Width = w
		}
	}
	return m, nil
}

func (m *tuiModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "esc":
		return m.dispatch(session.CmdExit)
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.menu)-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		return m.dispatch(m.menu[m.cursor].Command)
	}

	if msg.Type != tea.KeyRunes {
		return m, nil
	}
	cmd, ok := session.ParseCommand(key)
	if !ok {
		m.notice = m.sess.InvalidChoice(key)
		return m, nil
	}
	return m.dispatch(cmd)
}

func (m *tuiModel) dispatch(cmd session.Command) (tea.Model, tea.Cmd) {
	m.notice = session.Notice{}
	for i, item := range m.menu {
		if item.Command == cmd {
			m.cursor = i
		}
	}

	switch cmd {
	case session.CmdAdd:
		m.pendingDesc = ""
		return m, m.prompt(modeDescription, descriptionPrompt, "Task description")
	case session.CmdComplete:
		view, notice, ok := m.sess.CompletionView()
		if !ok {
			m.notice = notice
			return m, nil
		}
		m.view = view
		return m, m.prompt(modeSelect, selectPrompt, "0")
	case session.CmdExit:
		m.notice = m.sess.Goodbye()
		m.quitting = true
		return m, tea.Quit
	default:
		view, ok := m.sess.View(cmd)
		if !ok {
			return m, nil
		}
		m.view = view
		m.mode = modeView
		return m, nil
	}
}

func (m *tuiModel) prompt(next mode, label, placeholder string) tea.Cmd {
	m.mode = next
	m.input.Reset()
	m.input.Prompt = label
	m.input.Placeholder = placeholder
	return m.input.Focus()
}

func (m *tuiModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.mode == modeSelect {
			m.notice = m.sess.Complete(m.view, "0")
		} else {
			m.notice = session.Notice{Level: session.LevelWarn, Text: session.MsgCancelled}
		}
		m.backToMenu()
		return m, nil
	case "enter":
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *tuiModel) submit() (tea.Model, tea.Cmd) {
	value := m.input.Value()
	switch m.mode {
	case modeDescription:
		if strings.TrimSpace(value) == "" {
			m.notice = session.Notice{Level: session.LevelError, Text: session.MsgEmptyDescription}
			return m, nil
		}
		m.pendingDesc = value
		m.notice = session.Notice{}
		return m, m.prompt(modeDue, m.sess.DuePrompt()+": ", todo.LayoutHint(m.sess.Layout()))
	case modeDue:
		_, m.notice = m.sess.Add(m.pendingDesc, value)
	case modeSelect:
		m.notice = m.sess.Complete(m.view, value)
	}
	m.backToMenu()
	return m, nil
}

func (m *tuiModel) backToMenu() {
	m.mode = modeMenu
	m.view = nil
	m.pendingDesc = ""
	m.input.Blur()
	m.input.Reset()
}

func (m *tuiModel) View() string {
	if m.quitting {
		if m.notice.Text == "" {
			return ""
		}
		return m.styles.Notice(m.notice) + "\n"
	}

	var b strings.Builder
	writeTitle(&b, m.styles)
	writeCounts(&b, m.styles, m.sess.Counts())

	switch m.mode {
	case modeMenu:
		m.writeMenu(&b)
	case modeView:
		b.WriteString(render.Render(m.styles.Table, m.view.Title, m.view.Rows(m.sess.Layout()), render.Options{}))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Help.Render("Press any key to return to the menu."))
		b.WriteString("\n")
	case modeSelect:
		b.WriteString(render.Render(m.styles.Table, m.view.Title, m.view.Rows(m.sess.Layout()), render.Options{ShowIndex: true}))
		b.WriteString("\n\n")
		m.writePrompt(&b)
	default:
		m.writePrompt(&b)
	}
	return b.String()
}

func (m *tuiModel) writeMenu(b *strings.Builder) {
	for i, item := range m.menu {
		line := fmt.Sprintf("%d. %s", item.Command, item.Label)
		if i == m.cursor {
			b.WriteString(m.styles.Cursor.Render("> " + line))
		} else {
			b.WriteString(m.styles.Item.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	writeNotice(b, m.styles, m.notice)
	b.WriteString(m.styles.Help.Render("up/down move | enter select | 1-9 choose | q quit"))
	b.WriteString("\n")
}

func (m *tuiModel) writePrompt(b *strings.Builder) {
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	writeNotice(b, m.styles, m.notice)
	b.WriteString(m.styles.Help.Render("enter submit | esc cancel"))
	b.WriteString("\n")
}

func writeTitle(b *strings.Builder, styles Styles) {
	b.WriteString(styles.Title.Render(session.MenuTitle))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", len(session.MenuTitle)))
	b.WriteString("\n")
}

func writeCounts(b *strings.Builder, styles Styles, counts map[todo.Status]int) {
	line := fmt.Sprintf("Pending: %d  Overdue: %d  Done: %d",
		counts[todo.StatusPending],
		counts[todo.StatusOverdue],
		counts[todo.StatusDone],
	)
	b.WriteString(styles.Counts.Render(line))
	b.WriteString("\n\n")
}

func writeNotice(b *strings.Builder, styles Styles, n session.Notice) {
	if n.Text == "" {
		return
	}
	b.WriteString(styles.Notice(n))
	b.WriteString("\n\n")
}

// IsTTY returns true if f is a terminal.
func IsTTY(f any) bool {
	file, ok := f.(*os.File)
	if !ok {
		return false
	}
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
