package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/todo-go/internal/utils"
)

const schemaURL = "todo-config.schema.json"

// configSchema constrains the merged configuration.
const configSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["date_format", "ui", "windows", "log_level", "log_format"],
  "properties": {
    "date_format": {"type": "string", "minLength": 1},
    "ui": {"enum": ["auto", "tui", "plain"]},
    "alt_screen": {"type": "boolean"},
    "windows": {
      "type": "object",
      "required": ["today", "week", "month"],
      "properties": {
        "today": {"type": "integer", "minimum": 1, "maximum": 36500},
        "week": {"type": "integer", "minimum": 1, "maximum": 36500},
        "month": {"type": "integer", "minimum": 1, "maximum": 36500}
      }
    },
    "log_dir": {"type": "string"},
    "log_level": {"enum": ["debug", "info", "warn", "warning", "error"]},
    "log_format": {"enum": ["text", "json", "logfmt"]},
    "log_timestamps": {"type": "boolean"},
    "log_caller": {"type": "boolean"}
  }
}`

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // dotted path to the offending field
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks the config against the embedded schema and verifies that
// the date format can round-trip a date. All problems are joined.
func (c *Config) Validate() error {
	var errs []error

	schema, err := compileSchema()
	if err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config for validation: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshal config for validation: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		errs = append(errs, schemaErrors(err)...)
	}

	if err := checkDateFormat(c.DateFormat); err != nil {
		errs = append(errs, &ValidationError{Path: "date_format", Err: err})
	}

	return errors.Join(errs...)
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, strings.NewReader(configSchema)); err != nil {
		return nil, err
	}
	return compiler.Compile(schemaURL)
}

// checkDateFormat rejects layouts that lose the year, month or day.
func checkDateFormat(layout string) error {
	if layout == "" {
		return nil // reported by the schema
	}
	ref := time.Date(2031, time.November, 23, 17, 45, 0, 0, time.UTC)
	parsed, err := time.Parse(layout, ref.Format(layout))
	if err != nil {
		return fmt.Errorf("layout %q does not parse its own output: %w", layout, err)
	}
	if parsed.Year() != ref.Year() || parsed.Month() != ref.Month() || parsed.Day() != ref.Day() {
		return fmt.Errorf("layout %q must include year, month and day", layout)
	}
	return nil
}

func schemaErrors(err error) []error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []error{err}
	}
	var out []error
	collectSchemaErrors(&out, ve)
	return out
}

func collectSchemaErrors(out *[]error, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		*out = append(*out, &ValidationError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(out, cause)
	}
}
