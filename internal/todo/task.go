package todo

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the derived display status of a task.
type Status string

const (
	StatusPending Status = "Pending"
	StatusOverdue Status = "Overdue"
	StatusDone    Status = "Done"
)

var (
	// ErrEmptyDescription is returned when a task has no description text.
	ErrEmptyDescription = errors.New("task description is empty")
	// ErrZeroDue is returned when a task has no due timestamp.
	ErrZeroDue = errors.New("task due date is not set")
)

// Task is a single to-do entry.
type Task struct {
	id          uuid.UUID
	description string
	dueAt       time.Time
	done        bool
}

// CheckDescription returns ErrEmptyDescription when description has no
// text besides whitespace.
func CheckDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return ErrEmptyDescription
	}
	return nil
}

// New creates a task that is not done.
func New(description string, dueAt time.Time) (*Task, error) {
	if err := CheckDescription(description); err != nil {
		return nil, err
	}
	description = strings.TrimSpace(description)
	if dueAt.IsZero() {
		return nil, ErrZeroDue
	}
	return &Task{
		id:          uuid.New(),
		description: description,
		dueAt:       dueAt,
	}, nil
}

// ID returns the task's log correlation ID.
func (t *Task) ID() uuid.UUID {
	return t.id
}

// Description returns the task description.
func (t *Task) Description() string {
	return t.description
}

// DueAt returns the due timestamp.
func (t *Task) DueAt() time.Time {
	return t.dueAt
}

// Done reports whether the task was marked done.
func (t *Task) Done() bool {
	return t.done
}

// MarkDone marks the task done. Calling it again has no further effect.
func (t *Task) MarkDone() {
	t.done = true
}

// IsOverdue reports whether now is strictly after the due date and the task
// is not done.
func (t *Task) IsOverdue(now time.Time) bool {
	return !t.done && now.After(t.dueAt)
}

// StatusAt derives the task status at now.
func (t *Task) StatusAt(now time.Time) Status {
	switch {
	case t.done:
		return StatusDone
	case t.IsOverdue(now):
		return StatusOverdue
	default:
		return StatusPending
	}
}
