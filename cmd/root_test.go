// Package cmd provides tests for CLI command handlers.
package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nibzard/todo-go/internal/config"
)

// isolate keeps the developer's own config and environment out of the test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, key := range []string{
		"TODO_DATE_FORMAT", "TODO_UI", "TODO_ALT_SCREEN", "TODO_WINDOW_TODAY", "TODO_WINDOW_WEEK",
		"TODO_WINDOW_MONTH", "TODO_LOG_DIR", "TODO_LOG_LEVEL", "TODO_LOG_FORMAT",
		"TODO_LOG_TIMESTAMPS", "TODO_LOG_CALLER",
	} {
		t.Setenv(key, "")
	}
	testChdir(t, t.TempDir())
	return home
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("todo-test", flag.ContinueOnError)
	fs.SetOutput(&bytes.Buffer{})
	return fs
}

func run(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := RunWithIO(context.Background(), args, Streams{
		In:  strings.NewReader(input),
		Out: &out,
		Err: &errOut,
	})
	return out.String(), errOut.String(), err
}

// TestRun tests the main dispatch.
func TestRun(t *testing.T) {
	isolate(t)

	t.Run("shows help with --help flag", func(t *testing.T) {
		out, _, err := run(t, "", "--help")
		if err != nil {
			t.Fatalf("expected no error with --help, got %v", err)
		}
		if !strings.Contains(out, "Usage:") || !strings.Contains(out, "-date-format") {
			t.Errorf("usage output: %q", out)
		}
	})

	t.Run("shows help with help command", func(t *testing.T) {
		out, _, err := run(t, "", "help")
		if err != nil || !strings.Contains(out, "Commands:") {
			t.Errorf("help: %v %q", err, out)
		}
	})

	t.Run("shows version", func(t *testing.T) {
		for _, arg := range []string{"--version", "-v", "version"} {
			out, _, err := run(t, "", arg)
			if err != nil {
				t.Fatalf("%s: %v", arg, err)
			}
			if out != "todo version dev\n" {
				t.Errorf("%s: got %q", arg, out)
			}
		}
	})

	t.Run("unknown command returns error", func(t *testing.T) {
		_, errOut, err := run(t, "", "unknown-command")
		if err == nil || !strings.Contains(err.Error(), "unknown command") {
			t.Errorf("expected 'unknown command' error, got %v", err)
		}
		if !strings.Contains(errOut, "Unknown command: unknown-command") {
			t.Errorf("stderr: %q", errOut)
		}
	})

	t.Run("invalid config is rejected", func(t *testing.T) {
		_, _, err := run(t, "", "--ui", "gui", "version")
		if err == nil || !strings.Contains(err.Error(), "loading config") {
			t.Errorf("expected config error, got %v", err)
		}
	})
}

func TestRunPlainSession(t *testing.T) {
	isolate(t)
	logDir := filepath.Join(t.TempDir(), "logs")
	script := "1\nBuy milk\n2099-01-01 10:00\n2\n7\n1\n8\n"

	out, _, err := run(t, script, "--log-dir", logDir, "run", "--plain")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{
		"To-Do List Menu",
		"To-do item added successfully!",
		"Pending To-Dos",
		"Buy milk",
		"To-do 'Buy milk' marked as done!",
		"Goodbye!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	logs, _, err := run(t, "", "--log-dir", logDir, "logs")
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	for _, want := range []string{"session started", "task added", "task completed", "session ended"} {
		if !strings.Contains(logs, want) {
			t.Errorf("session log missing %q:\n%s", want, logs)
		}
	}

	list, _, err := run(t, "", "--log-dir", logDir, "logs", "--list")
	if err != nil {
		t.Fatalf("logs --list: %v", err)
	}
	if strings.Count(strings.TrimSpace(list), "\n") != 0 {
		t.Errorf("expected one session listed, got %q", list)
	}
}

func TestRunAutoUsesPlainWithoutTerminal(t *testing.T) {
	isolate(t)
	out, _, err := run(t, "8\n", "--log-dir", "")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "Goodbye!") {
		t.Errorf("output: %q", out)
	}
}

func TestRunCommandFlags(t *testing.T) {
	isolate(t)

	_, _, err := run(t, "", "run", "--plain", "--tui")
	if err == nil || !strings.Contains(err.Error(), "mutually exclusive") {
		t.Errorf("expected exclusive flag error, got %v", err)
	}

	_, _, err = run(t, "", "run", "extra")
	if err == nil || !strings.Contains(err.Error(), "unexpected arguments") {
		t.Errorf("expected unexpected arguments error, got %v", err)
	}
}

func TestLogsCommand(t *testing.T) {
	isolate(t)

	t.Run("no logs", func(t *testing.T) {
		out, _, err := run(t, "", "--log-dir", t.TempDir(), "logs")
		if err != nil {
			t.Fatalf("logs: %v", err)
		}
		if !strings.Contains(out, "No log files found.") {
			t.Errorf("output: %q", out)
		}
	})

	t.Run("last lines", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "20240315-120000-1.log"), []byte("a\nb\nc\n"), 0644); err != nil {
			t.Fatal(err)
		}
		out, _, err := run(t, "", "--log-dir", dir, "logs", "-n", "2")
		if err != nil {
			t.Fatalf("logs: %v", err)
		}
		if !strings.HasSuffix(out, "\nb\nc\n") || strings.Contains(out, "\na\n") {
			t.Errorf("output: %q", out)
		}
	})

	t.Run("disabled log dir", func(t *testing.T) {
		_, _, err := run(t, "", "--log-dir", "", "logs")
		if err == nil {
			t.Error("expected error when log_dir is empty")
		}
	})
}

func TestConfigCommand(t *testing.T) {
	isolate(t)

	out, _, err := run(t, "", "config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if out != config.ExampleConfig() {
		t.Error("config should print the example config")
	}

	out, _, err = run(t, "", "--week-days", "10", "--alt-screen", "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{`date_format = "2006-01-02 15:04"`, "alt_screen = true", "[windows]", "week = 10"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q:\n%s", want, out)
		}
	}

	if _, _, err := run(t, "", "config", "bogus"); err == nil {
		t.Error("expected error for unknown config command")
	}
}

func TestDoctorCommand(t *testing.T) {
	isolate(t)
	logDir := filepath.Join(t.TempDir(), "logs")

	out, _, err := run(t, "", "--log-dir", logDir, "doctor")
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	for _, want := range []string{
		"(none, using defaults)",
		"(flag)",
		"(default)",
		"Config is valid",
		"ui=auto resolves to plain",
		"All checks passed.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("doctor output missing %q:\n%s", want, out)
		}
	}
	if _, err := os.Stat(logDir); err != nil {
		t.Errorf("doctor should create the log dir: %v", err)
	}

	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := run(t, "", "--log-dir", filepath.Join(blocker, "logs"), "doctor"); err == nil {
		t.Error("expected doctor failure for an unusable log dir")
	}
}

func TestFieldValueCoversAllFields(t *testing.T) {
	isolate(t)
	cws, err := config.LoadWithSources(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	for field := range cws.Sources {
		if fieldValue(cws.Config, field) == "?" {
			t.Errorf("fieldValue(%q) is not handled", field)
		}
	}
}

func TestResolveUI(t *testing.T) {
	streams := Streams{In: strings.NewReader(""), Out: &bytes.Buffer{}}
	tests := []struct {
		mode string
		want string
	}{
		{config.UIAuto, config.UIPlain},
		{config.UIPlain, config.UIPlain},
		{config.UITUI, config.UITUI},
	}
	for _, tt := range tests {
		if got := resolveUI(tt.mode, streams); got != tt.want {
			t.Errorf("resolveUI(%q): got %q, want %q", tt.mode, got, tt.want)
		}
	}
}

// testChdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir for older toolchains).
func testChdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
