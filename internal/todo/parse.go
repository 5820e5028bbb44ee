package todo

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultLayout is the due date layout, YYYY-MM-DD HH:MM.
const DefaultLayout = "2006-01-02 15:04"

// ErrInvalidDate is returned when a due date cannot be parsed.
var ErrInvalidDate = errors.New("invalid date format")

// DateError describes a due date that did not match the layout.
type DateError struct {
	Input  string
	Layout string
	Err    error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("%s: %q does not match %s", ErrInvalidDate, e.Input, LayoutHint(e.Layout))
}

// Unwrap lets errors.Is match both ErrInvalidDate and the parse error.
func (e *DateError) Unwrap() []error {
	return []error{ErrInvalidDate, e.Err}
}

// ParseDue parses a due date in the local zone of now. Empty input means now,
// truncated to the minute like a formatted default would be.
func ParseDue(input, layout string, now time.Time) (time.Time, error) {
	if layout == "" {
		layout = DefaultLayout
	}
	input = strings.TrimSpace(input)
	if input == "" {
		due, err := time.ParseInLocation(layout, now.Format(layout), now.Location())
		if err != nil {
			return time.Time{}, &DateError{Input: input, Layout: layout, Err: err}
		}
		return due, nil
	}
	due, err := time.ParseInLocation(layout, input, now.Location())
	if err != nil {
		return time.Time{}, &DateError{Input: input, Layout: layout, Err: err}
	}
	return due, nil
}

var hintReplacer = strings.NewReplacer(
	"2006", "YYYY",
	"01", "MM",
	"02", "DD",
	"15", "HH",
	"04", "MM",
	"05", "SS",
)

// LayoutHint turns a Go time layout into a user-facing pattern such as
// "YYYY-MM-DD HH:MM".
func LayoutHint(layout string) string {
	if layout == "" {
		layout = DefaultLayout
	}
	return hintReplacer.Replace(layout)
}
