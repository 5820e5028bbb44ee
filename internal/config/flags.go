package config

import (
	"flag"
	"strings"
)

// flagToSource maps flag names to source field names.
var flagToSource = map[string]string{
	"date-format":    "date_format",
	"ui":             "ui",
	"alt-screen":     "alt_screen",
	"today-days":     "windows.today",
	"week-days":      "windows.week",
	"month-days":     "windows.month",
	"log-dir":        "log_dir",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// parseFlags defines and parses CLI flags. If sources is non-nil, flags that
// were set explicitly are recorded as SourceFlag.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("todo", flag.ContinueOnError)
	}

	// Dates and views
	fs.StringVar(&cfg.DateFormat, "date-format", cfg.DateFormat, "Due date layout (Go reference time, e.g. 2006-01-02 15:04)")
	fs.StringVar(&cfg.UI, "ui", cfg.UI, "Front-end (auto, tui, plain)")
	fs.BoolVar(&cfg.AltScreen, "alt-screen", cfg.AltScreen, "Run the TUI in the alternate screen")
	fs.IntVar(&cfg.Windows.Today, "today-days", cfg.Windows.Today, "Width of the today view in days")
	fs.IntVar(&cfg.Windows.Week, "week-days", cfg.Windows.Week, "Width of the week view in days")
	fs.IntVar(&cfg.Windows.Month, "month-days", cfg.Windows.Month, "Width of the month view in days")

	// Logging
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Session log directory (empty disables log files)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.UI = strings.ToLower(strings.TrimSpace(cfg.UI))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if field, ok := flagToSource[f.Name]; ok {
				sources[field] = SourceFlag
			}
		})
	}

	return nil
}
