// Package session runs menu commands against a task store. It knows nothing
// about terminals: every command returns a Notice for the front-end to show.
package session

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todo-go/internal/config"
	"github.com/nibzard/todo-go/internal/todo"
	"github.com/nibzard/todo-go/internal/utils"
)

// Level classifies a Notice for styling.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Notice is a one-line message for the user.
type Notice struct {
	Level Level
	Text  string
}

// User-facing messages.
const (
	MsgAdded            = "To-do item added successfully!"
	MsgEmptyDescription = "Task description cannot be empty."
	MsgCancelled        = "Operation cancelled."
	MsgInvalidSelection = "Invalid selection."
	MsgInvalidChoice    = "Invalid choice. Please try again."
	MsgNothingToMark    = "No pending to-dos available to mark as done."
	MsgGoodbye          = "Goodbye!"
)

// Session owns the store for one run.
type Session struct {
	store   *todo.Store
	layout  string
	windows config.WindowsConfig
	logger  *log.Logger
}

// New creates a session. A nil cfg uses the defaults and a nil logger
// discards events.
func New(store *todo.Store, cfg *config.Config, logger *log.Logger) *Session {
	if store == nil {
		store = todo.NewStore()
	}
	s := &Session{
		store:  store,
		layout: todo.DefaultLayout,
		windows: config.WindowsConfig{
			Today: config.DefaultTodayDays,
			Week:  config.DefaultWeekDays,
			Month: config.DefaultMonthDays,
		},
		logger: logger,
	}
	if cfg != nil {
		if cfg.DateFormat != "" {
			s.layout = cfg.DateFormat
		}
		s.windows = cfg.Windows
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s
}

// Store returns the underlying store.
func (s *Session) Store() *todo.Store {
	return s.store
}

// Layout returns the due date layout used for input and display.
func (s *Session) Layout() string {
	return s.layout
}

// DuePrompt returns the prompt shown when asking for a due date.
func (s *Session) DuePrompt() string {
	return fmt.Sprintf("Enter the due date (%s) or press Enter for today", todo.LayoutHint(s.layout))
}

// Add parses dueInput and appends a new task. The returned task is nil when
// the input was rejected. The description is checked before the due date,
// in prompt order.
func (s *Session) Add(description, dueInput string) (*todo.Task, Notice) {
	if err := todo.CheckDescription(description); err != nil {
		s.logger.Warn("task rejected", "err", err)
		return nil, Notice{Level: LevelError, Text: MsgEmptyDescription}
	}

	due, err := todo.ParseDue(dueInput, s.layout, s.store.Now())
	if err != nil {
		s.logger.Warn("invalid due date", "input", dueInput, "err", err)
		return nil, Notice{Level: LevelError, Text: "Invalid date format. Please use " + todo.LayoutHint(s.layout)}
	}

	task, err := todo.New(description, due)
	if err != nil {
		s.logger.Warn("task rejected", "err", err)
		if errors.Is(err, todo.ErrEmptyDescription) {
			return nil, Notice{Level: LevelError, Text: MsgEmptyDescription}
		}
		return nil, Notice{Level: LevelError, Text: err.Error()}
	}

	s.store.Add(task)
	s.logger.Info("task added", "id", task.ID(), "due", task.DueAt().Format(s.layout))
	return task, Notice{Level: LevelSuccess, Text: MsgAdded}
}

// View builds the view for a view command. ok is false for commands that do
// not show a list.
func (s *Session) View(cmd Command) (view *todo.View, ok bool) {
	switch cmd {
	case CmdPending:
		view = s.store.Filter(todo.TitlePending, todo.Pending)
	case CmdPast:
		view = s.store.Filter(todo.TitlePast, todo.Past)
	case CmdToday:
		view = s.store.Filter(todo.TitleToday, todo.Window(s.windows.Today))
	case CmdWeek:
		view = s.store.Filter(todo.TitleWeek, todo.Window(s.windows.Week))
	case CmdMonth:
		view = s.store.Filter(todo.TitleMonth, todo.Window(s.windows.Month))
	case CmdAll:
		view = s.store.Filter(todo.TitleAll, todo.All)
	default:
		return nil, false
	}
	s.logger.Debug("view shown", "title", view.Title, "count", view.Len())
	return view, true
}

// CompletionView lists the tasks that can be marked done. When the list is
// empty the returned notice explains why no selection will be asked for and
// ok is false.
func (s *Session) CompletionView() (view *todo.View, notice Notice, ok bool) {
	view = s.store.Filter(todo.TitleIncomplete, todo.Incomplete)
	s.logger.Debug("view shown", "title", view.Title, "count", view.Len())
	if view.Empty() {
		return view, Notice{Level: LevelWarn, Text: MsgNothingToMark}, false
	}
	return view, Notice{}, true
}

// Complete marks the task at the 1-based input index of view done.
func (s *Session) Complete(view *todo.View, input string) Notice {
	index, ok := utils.ParseChoice(input)
	if !ok {
		s.logger.Warn("invalid selection", "input", input, "size", view.Len())
		return Notice{Level: LevelError, Text: MsgInvalidSelection}
	}

	sel, err := s.store.CompleteByViewIndex(view, index)
	if err != nil {
		s.logger.Warn("invalid selection", "index", index, "size", view.Len())
		return Notice{Level: LevelError, Text: MsgInvalidSelection}
	}
	if sel.Outcome == todo.OutcomeCancelled {
		s.logger.Info("selection cancelled")
		return Notice{Level: LevelWarn, Text: MsgCancelled}
	}

	s.logger.Info("task completed", "id", sel.Task.ID())
	return Notice{Level: LevelSuccess, Text: fmt.Sprintf("To-do '%s' marked as done!", sel.Task.Description())}
}

// Counts returns the number of tasks per status right now.
func (s *Session) Counts() map[todo.Status]int {
	return s.store.Counts(s.store.Now())
}

// InvalidChoice is the notice for an unknown menu entry.
func (s *Session) InvalidChoice(input string) Notice {
	s.logger.Debug("invalid menu choice", "input", input)
	return Notice{Level: LevelError, Text: MsgInvalidChoice}
}

// Goodbye ends the session.
func (s *Session) Goodbye() Notice {
	s.logger.Info("session ended", "tasks", s.store.Len())
	return Notice{Level: LevelSuccess, Text: MsgGoodbye}
}
