package config

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceDotEnv   ConfigSource = ".env"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
}

// UI modes.
const (
	UIAuto  = "auto"
	UITUI   = "tui"
	UIPlain = "plain"
)

// Default values.
const (
	DefaultDateFormat = "2006-01-02 15:04"
	DefaultUI         = UIAuto
	DefaultLogDir     = "~/.todo"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
	DefaultTodayDays  = 1
	DefaultWeekDays   = 7
	DefaultMonthDays  = 30
)

// Config holds the full configuration for todo.
type Config struct {
	// Due date layout in Go reference time notation.
	DateFormat string `toml:"date_format" json:"date_format"`

	// Front-end: auto, tui or plain.
	UI string `toml:"ui" json:"ui"`

	// Run the TUI in the terminal's alternate screen.
	AltScreen bool `toml:"alt_screen" json:"alt_screen"`

	// Rolling view widths in days.
	Windows WindowsConfig `toml:"windows" json:"windows"`

	// Logging configuration
	LogDir        string `toml:"log_dir" json:"log_dir"`
	LogLevel      string `toml:"log_level" json:"log_level"`
	LogFormat     string `toml:"log_format" json:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps" json:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller" json:"log_caller"`

	// Working directory (computed)
	WorkDir string `toml:"-" json:"-"`

	// Config files that were read, lowest priority first (computed)
	Files []string `toml:"-" json:"-"`
}

// WindowsConfig holds the widths of the rolling date views.
type WindowsConfig struct {
	Today int `toml:"today" json:"today"`
	Week  int `toml:"week" json:"week"`
	Month int `toml:"month" json:"month"`
}
