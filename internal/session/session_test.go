package session

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todo-go/internal/config"
	"github.com/nibzard/todo-go/internal/todo"
)

var now = time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)

func newSession(t *testing.T) (*Session, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	store := todo.NewStore(todo.WithClock(func() time.Time { return now }))
	return New(store, nil, logger), &buf
}

func mustAdd(t *testing.T, s *Session, desc, due string) *todo.Task {
	t.Helper()
	task, notice := s.Add(desc, due)
	if task == nil {
		t.Fatalf("Add(%q, %q): %s", desc, due, notice.Text)
	}
	return task
}

func TestAdd(t *testing.T) {
	tests := []struct {
		name      string
		desc      string
		due       string
		wantAdded bool
		wantLevel Level
		wantText  string
	}{
		{"valid", "Buy milk", "2024-03-16 09:00", true, LevelSuccess, MsgAdded},
		{"empty due is now", "Call mom", "", true, LevelSuccess, MsgAdded},
		{"bad date", "Pay rent", "tomorrow", false, LevelError, "Invalid date format. Please use YYYY-MM-DD HH:MM"},
		{"empty description", "   ", "2024-03-16 09:00", false, LevelError, MsgEmptyDescription},
		{"empty description and bad date", "", "tomorrow", false, LevelError, MsgEmptyDescription},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newSession(t)
			task, notice := s.Add(tt.desc, tt.due)
			if (task != nil) != tt.wantAdded {
				t.Errorf("added: got %v, want %v", task != nil, tt.wantAdded)
			}
			if notice.Level != tt.wantLevel || notice.Text != tt.wantText {
				t.Errorf("notice: got %v %q, want %v %q", notice.Level, notice.Text, tt.wantLevel, tt.wantText)
			}
			wantLen := 0
			if tt.wantAdded {
				wantLen = 1
			}
			if s.Store().Len() != wantLen {
				t.Errorf("store len: got %d, want %d", s.Store().Len(), wantLen)
			}
		})
	}
}

func TestAddEmptyDueUsesNow(t *testing.T) {
	s, _ := newSession(t)
	task := mustAdd(t, s, "Call mom", "")
	if !task.DueAt().Equal(now) {
		t.Errorf("due: got %v, want %v", task.DueAt(), now)
	}
}

func TestAddLogsEvents(t *testing.T) {
	s, buf := newSession(t)
	task := mustAdd(t, s, "Buy milk", "2024-03-16 09:00")
	s.Add("Pay rent", "soon")

	out := buf.String()
	if !strings.Contains(out, "task added") || !strings.Contains(out, task.ID().String()) {
		t.Errorf("missing add event: %q", out)
	}
	if !strings.Contains(out, "invalid due date") {
		t.Errorf("missing invalid date event: %q", out)
	}
}

func TestViews(t *testing.T) {
	s, _ := newSession(t)
	mustAdd(t, s, "Past", "2024-03-14 12:00")
	mustAdd(t, s, "Soon", "2024-03-15 18:00")
	mustAdd(t, s, "Week", "2024-03-20 12:00")
	mustAdd(t, s, "Month", "2024-04-10 12:00")

	tests := []struct {
		cmd   Command
		title string
		want  []string
	}{
		{CmdPending, todo.TitlePending, []string{"Soon", "Week", "Month"}},
		{CmdPast, todo.TitlePast, []string{"Past"}},
		{CmdToday, todo.TitleToday, []string{"Soon"}},
		{CmdWeek, todo.TitleWeek, []string{"Soon", "Week"}},
		{CmdMonth, todo.TitleMonth, []string{"Soon", "Week", "Month"}},
		{CmdAll, todo.TitleAll, []string{"Past", "Soon", "Week", "Month"}},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			view, ok := s.View(tt.cmd)
			if !ok {
				t.Fatal("expected a view")
			}
			if view.Title != tt.title {
				t.Errorf("title: got %q, want %q", view.Title, tt.title)
			}
			var got []string
			for _, task := range view.Tasks {
				got = append(got, task.Description())
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("tasks: got %v, want %v", got, tt.want)
			}
		})
	}

	for _, cmd := range []Command{CmdAdd, CmdComplete, CmdExit} {
		if _, ok := s.View(cmd); ok {
			t.Errorf("View(%d) should not build a view", cmd)
		}
	}
}

func TestViewsUseConfiguredWindows(t *testing.T) {
	cfg := &config.Config{
		DateFormat: "02/01/2006 15:04",
		Windows:    config.WindowsConfig{Today: 1, Week: 3, Month: 30},
	}
	store := todo.NewStore(todo.WithClock(func() time.Time { return now }))
	s := New(store, cfg, nil)

	if _, notice := s.Add("Five days out", "20/03/2024 12:00"); notice.Level != LevelSuccess {
		t.Fatalf("add with custom layout: %s", notice.Text)
	}
	view, _ := s.View(CmdWeek)
	if !view.Empty() {
		t.Errorf("3-day week window should exclude a task 5 days out, got %d", view.Len())
	}
	if s.DuePrompt() != "Enter the due date (DD/MM/YYYY HH:MM) or press Enter for today" {
		t.Errorf("DuePrompt: got %q", s.DuePrompt())
	}
}

func TestCompletionFlow(t *testing.T) {
	s, _ := newSession(t)
	mustAdd(t, s, "Overdue", "2024-03-14 12:00")
	mustAdd(t, s, "Later", "2024-03-20 12:00")

	view, _, ok := s.CompletionView()
	if !ok || view.Len() != 2 {
		t.Fatalf("completion view: ok=%v len=%d", ok, view.Len())
	}
	if view.Title != todo.TitleIncomplete {
		t.Errorf("title: got %q", view.Title)
	}

	tests := []struct {
		input     string
		wantLevel Level
		wantText  string
	}{
		{"abc", LevelError, MsgInvalidSelection},
		{"3", LevelError, MsgInvalidSelection},
		{"-1", LevelError, MsgInvalidSelection},
		{"0", LevelWarn, MsgCancelled},
		{"2", LevelSuccess, "To-do 'Later' marked as done!"},
	}
	for _, tt := range tests {
		notice := s.Complete(view, tt.input)
		if notice.Level != tt.wantLevel || notice.Text != tt.wantText {
			t.Errorf("Complete(%q): got %v %q, want %v %q", tt.input, notice.Level, notice.Text, tt.wantLevel, tt.wantText)
		}
	}

	counts := s.Counts()
	if counts[todo.StatusDone] != 1 || counts[todo.StatusOverdue] != 1 {
		t.Errorf("counts: got %v", counts)
	}

	view, _, _ = s.CompletionView()
	if view.Len() != 1 || view.Tasks[0].Description() != "Overdue" {
		t.Errorf("completed task should leave the completion view")
	}
}

func TestCompletionViewEmpty(t *testing.T) {
	s, _ := newSession(t)
	mustAdd(t, s, "Done soon", "2024-03-20 12:00")
	view, _, _ := s.CompletionView()
	s.Complete(view, "1")

	view, notice, ok := s.CompletionView()
	if ok {
		t.Error("ok should be false when nothing can be completed")
	}
	if !view.Empty() {
		t.Errorf("view: got %d tasks", view.Len())
	}
	if notice.Level != LevelWarn || notice.Text != MsgNothingToMark {
		t.Errorf("notice: got %v %q", notice.Level, notice.Text)
	}
}

func TestInvalidChoiceAndGoodbye(t *testing.T) {
	s, buf := newSession(t)
	if n := s.InvalidChoice("42"); n.Text != MsgInvalidChoice || n.Level != LevelError {
		t.Errorf("InvalidChoice: got %+v", n)
	}
	if n := s.Goodbye(); n.Text != MsgGoodbye || n.Level != LevelSuccess {
		t.Errorf("Goodbye: got %+v", n)
	}
	if !strings.Contains(buf.String(), "session ended") {
		t.Errorf("missing session ended event: %q", buf.String())
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  Command
		ok    bool
	}{
		{"1", CmdAdd, true},
		{" 7 ", CmdComplete, true},
		{"8", CmdExit, true},
		{"9", CmdAll, true},
		{"0", 0, false},
		{"10", 0, false},
		{"x", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseCommand(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseCommand(%q): got (%d, %v), want (%d, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMenu(t *testing.T) {
	items := Menu()
	if len(items) != 9 {
		t.Fatalf("menu: got %d items, want 9", len(items))
	}
	for i, item := range items {
		if int(item.Command) != i+1 {
			t.Errorf("item %d: command %d out of order", i, item.Command)
		}
	}
	items[0].Label = "changed"
	if Menu()[0].Label == "changed" {
		t.Error("Menu should return a copy")
	}
}

func TestLevelString(t *testing.T) {
	if LevelWarn.String() != "warn" || Level(9).String() != "level(9)" {
		t.Errorf("Level.String: %q %q", LevelWarn.String(), Level(9).String())
	}
}
