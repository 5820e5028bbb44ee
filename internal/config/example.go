package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# todo configuration file
# Values can be overridden by TODO_* environment variables or CLI flags.

# Due date layout in Go reference time notation.
# "2006-01-02 15:04" reads as YYYY-MM-DD HH:MM.
date_format = "2006-01-02 15:04"

# Front-end: auto (TUI on a terminal, plain otherwise), tui, or plain
ui = "auto"

# Run the TUI in the terminal's alternate screen, restoring the scrollback on exit
alt_screen = false

# Session log directory (supports ~ expansion; empty disables log files)
log_dir = "~/.todo"

# Log level: debug, info, warn, error
log_level = "info"

# Log format: text, json, logfmt
log_format = "text"

log_timestamps = false
log_caller = false

# Rolling view widths in days, counted from the current instant
[windows]
today = 1
week = 7
month = 30
`
}
