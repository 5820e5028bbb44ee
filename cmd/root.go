// Package cmd implements the CLI command structure for todo.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/nibzard/todo-go/internal/config"
	"github.com/nibzard/todo-go/internal/logging"
	"github.com/nibzard/todo-go/internal/session"
	"github.com/nibzard/todo-go/internal/todo"
	"github.com/nibzard/todo-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Streams are the standard streams a command reads and writes.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Run executes the todo CLI on the process streams.
func Run(ctx context.Context, args []string) error {
	return RunWithIO(ctx, args, Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr})
}

// RunWithIO executes the todo CLI on the given streams.
func RunWithIO(ctx context.Context, args []string, streams Streams) error {
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.SetOutput(streams.Err)
	fs.Usage = func() {
		printUsage(fs, streams.Err)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, streams.Out)
		return nil
	}
	if *showVersion {
		return versionCommand(streams.Out)
	}

	// No args or a leading flag means "run".
	subcommand := "run"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "run":
		return runCommand(ctx, cws.Config, remainingArgs, streams)
	case "logs":
		return logsCommand(ctx, cws.Config, remainingArgs, streams)
	case "config":
		return configCommand(cws, remainingArgs, streams)
	case "doctor":
		return doctorCommand(cws, remainingArgs, streams)
	case "version":
		return versionCommand(streams.Out)
	case "help":
		printUsage(fs, streams.Out)
		return nil
	default:
		fmt.Fprintf(streams.Err, "Unknown command: %s\n", subcommand)
		printUsage(fs, streams.Err)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// runCommand starts an interactive session.
func runCommand(ctx context.Context, cfg *config.Config, args []string, streams Streams) error {
	fs := flag.NewFlagSet("todo run", flag.ContinueOnError)
	fs.SetOutput(streams.Err)
	plain := fs.Bool("plain", false, "Use the plain line console")
	tui := fs.Bool("tui", false, "Use the terminal UI")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if *plain && *tui {
		return fmt.Errorf("--plain and --tui are mutually exclusive")
	}

	mode := cfg.UI
	switch {
	case *plain:
		mode = config.UIPlain
	case *tui:
		mode = config.UITUI
	}
	mode = resolveUI(mode, streams)

	logger, closeLog := sessionLogger(cfg, mode, streams.Err)
	defer closeLog()

	sess := session.New(todo.NewStore(), cfg, logger)
	logger.Info("session started", "ui", mode, "version", Version)

	if mode == config.UITUI {
		return ui.RunTUI(ctx, sess, ui.WithIO(streams.In, streams.Out), ui.WithAltScreen(cfg.AltScreen))
	}
	console := ui.NewConsole(sess, streams.Out, nil)
	return console.Run(ctx, streams.In)
}

// resolveUI turns "auto" into a concrete front-end.
func resolveUI(mode string, streams Streams) string {
	if mode != config.UIAuto {
		return mode
	}
	if ui.IsTTY(streams.In) && ui.IsTTY(streams.Out) {
		return config.UITUI
	}
	return config.UIPlain
}

// sessionLogger opens the session log file. Without a log directory the TUI
// discards events and the plain console logs to stderr.
func sessionLogger(cfg *config.Config, mode string, stderr io.Writer) (*log.Logger, func()) {
	if cfg.LogDir != "" {
		sl, err := logging.OpenSessionLog(cfg.LogDir)
		if err == nil {
			logger := logging.NewFromConfig(sl.Writer(), cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
			logger.Debug("session log opened", "path", sl.LogPath)
			return logger, func() { _ = sl.Close() }
		}
		fmt.Fprintf(stderr, "Warning: session log disabled: %v\n", err)
	}
	if mode == config.UITUI {
		return logging.Discard(), func() {}
	}
	return logging.NewFromConfig(stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller), func() {}
}

// logsCommand prints, follows, or lists session logs.
func logsCommand(ctx context.Context, cfg *config.Config, args []string, streams Streams) error {
	fs := flag.NewFlagSet("todo logs", flag.ContinueOnError)
	fs.SetOutput(streams.Err)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	list := fs.Bool("l", false, "List session logs, newest first")
	fs.BoolVar(list, "list", false, "List session logs, newest first")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if cfg.LogDir == "" {
		return fmt.Errorf("log_dir is empty, session logs are disabled")
	}

	if *list {
		sessions, err := logging.ListSessions(cfg.LogDir)
		if err != nil {
			return fmt.Errorf("listing logs: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Fprintln(streams.Out, "No log files found.")
			return nil
		}
		for _, s := range sessions {
			fmt.Fprintf(streams.Out, "%s  %8d  %s\n", s.RunID, s.Size, s.ModTime.Format("2006-01-02 15:04:05"))
		}
		return nil
	}

	logPath, err := logging.FindLatestLog(cfg.LogDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(streams.Out, "No log files found.")
		return nil
	}

	fmt.Fprintf(streams.Out, "Showing: %s\n", logPath)
	if *follow {
		fmt.Fprintln(streams.Out, "(Ctrl+C to stop)")
	}
	fmt.Fprintln(streams.Out)

	return logging.TailLog(ctx, streams.Out, logPath, *n, *follow)
}

// configCommand prints the example config or the effective config.
func configCommand(cws *config.ConfigWithSources, args []string, streams Streams) error {
	if len(args) == 0 {
		fmt.Fprint(streams.Out, config.ExampleConfig())
		return nil
	}
	if len(args) > 1 {
		return fmt.Errorf("unexpected arguments: %v", args[1:])
	}
	switch args[0] {
	case "show":
		if err := toml.NewEncoder(streams.Out).Encode(cws.Config); err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		return nil
	case "example":
		fmt.Fprint(streams.Out, config.ExampleConfig())
		return nil
	default:
		return fmt.Errorf("unknown config command: %s", args[0])
	}
}

// doctorCommand reports where the configuration came from and checks that
// the session log directory is usable.
func doctorCommand(cws *config.ConfigWithSources, args []string, streams Streams) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	w := streams.Out
	cfg := cws.Config

	fmt.Fprintln(w, "todo doctor")
	fmt.Fprintln(w, "===========")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Config files:")
	if len(cfg.Files) == 0 {
		fmt.Fprintln(w, "  (none, using defaults)")
	}
	for _, f := range cfg.Files {
		fmt.Fprintf(w, "  %s\n", f)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Settings:")
	fields := make([]string, 0, len(cws.Sources))
	for field := range cws.Sources {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintf(w, "  %-15s %-20s (%s)\n", field, fieldValue(cfg, field), cws.Sources[field])
	}
	fmt.Fprintln(w, "  ✅ Config is valid")
	fmt.Fprintln(w)

	allOK := true
	fmt.Fprintln(w, "Session logs:")
	if cfg.LogDir == "" {
		fmt.Fprintln(w, "  ⚠️  Disabled (log_dir is empty)")
	} else if err := checkWritableDir(cfg.LogDir); err != nil {
		fmt.Fprintf(w, "  ❌ %s: %v\n", cfg.LogDir, err)
		allOK = false
	} else {
		fmt.Fprintf(w, "  ✅ %s\n", cfg.LogDir)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Terminal:")
	fmt.Fprintf(w, "  ui=%s resolves to %s\n", cfg.UI, resolveUI(cfg.UI, streams))
	fmt.Fprintln(w)

	if allOK {
		fmt.Fprintln(w, "✅ All checks passed.")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed.")
	return fmt.Errorf("doctor checks failed")
}

func fieldValue(cfg *config.Config, field string) string {
	switch field {
	case "date_format":
		return strconv.Quote(cfg.DateFormat)
	case "ui":
		return cfg.UI
	case "alt_screen":
		return strconv.FormatBool(cfg.AltScreen)
	case "windows.today":
		return strconv.Itoa(cfg.Windows.Today)
	case "windows.week":
		return strconv.Itoa(cfg.Windows.Week)
	case "windows.month":
		return strconv.Itoa(cfg.Windows.Month)
	case "log_dir":
		return strconv.Quote(cfg.LogDir)
	case "log_level":
		return cfg.LogLevel
	case "log_format":
		return cfg.LogFormat
	case "log_timestamps":
		return strconv.FormatBool(cfg.LogTimestamps)
	case "log_caller":
		return strconv.FormatBool(cfg.LogCaller)
	default:
		return "?"
	}
}

func checkWritableDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(filepath.Clean(name))
}

// versionCommand prints version information.
func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "todo version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "todo - an interactive to-do list for the terminal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  todo [options] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run           Start the interactive menu (default command)")
	fmt.Fprintln(w, "  logs          Show the latest session log")
	fmt.Fprintln(w, "  config [show] Print an example config, or the effective config")
	fmt.Fprintln(w, "  doctor        Check config sources and the log directory")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run Options (use with 'run' command):")
	fmt.Fprintln(w, "  -plain")
	fmt.Fprintln(w, "        Use the plain line console")
	fmt.Fprintln(w, "  -tui")
	fmt.Fprintln(w, "        Use the terminal UI")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logs Options (use with 'logs' command):")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
	fmt.Fprintln(w, "  -l, --list")
	fmt.Fprintln(w, "        List session logs, newest first")
}
