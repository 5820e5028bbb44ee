package todo

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSelection is returned when a completion index is outside the view.
var ErrInvalidSelection = errors.New("invalid selection")

// Outcome describes what a completion request did.
type Outcome int

const (
	// OutcomeCancelled means the user entered 0 and nothing changed.
	OutcomeCancelled Outcome = iota
	// OutcomeCompleted means the selected task is now done.
	OutcomeCompleted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeCompleted:
		return "completed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Selection is the result of CompleteByViewIndex.
type Selection struct {
	Outcome Outcome
	Task    *Task // set when Outcome is OutcomeCompleted
}

// Clock returns the current time.
type Clock func() time.Time

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock sets the clock used to capture now for each view.
func WithClock(clock Clock) StoreOption {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// Store is an ordered, append-only task list. It is not safe for concurrent
// use; the menu loop owns it.
type Store struct {
	tasks []*Task
	clock Clock
}

// NewStore returns an empty store that reads the wall clock.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{clock: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the store clock's current time.
func (s *Store) Now() time.Time {
	return s.clock()
}

// Add appends a task. Nil tasks are ignored.
func (s *Store) Add(task *Task) {
	if task == nil {
		return
	}
	s.tasks = append(s.tasks, task)
}

// Len returns the number of stored tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Tasks returns the tasks in insertion order. The slice is a copy; the tasks
// are shared.
func (s *Store) Tasks() []*Task {
	out := make([]*Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Filter builds a view of the tasks matching pred. The clock is read once and
// the same instant is used for every task.
func (s *Store) Filter(title string, pred Predicate) *View {
	return s.FilterAt(title, pred, s.clock())
}

// FilterAt builds a view evaluated at now.
func (s *Store) FilterAt(title string, pred Predicate, now time.Time) *View {
	if pred == nil {
		pred = All
	}
	view := &View{Title: title, Now: now}
	for _, t := range s.tasks {
		if pred(t, now) {
			view.Tasks = append(view.Tasks, t)
		}
	}
	return view
}

// Counts returns the number of tasks per derived status at now.
func (s *Store) Counts(now time.Time) map[Status]int {
	counts := map[Status]int{
		StatusPending: 0,
		StatusOverdue: 0,
		StatusDone:    0,
	}
	for _, t := range s.tasks {
		counts[t.StatusAt(now)]++
	}
	return counts
}

// CompleteByViewIndex marks the task at the 1-based index of view done.
// Index 0 cancels without error. Any other index outside the view returns
// ErrInvalidSelection and changes nothing.
func (s *Store) CompleteByViewIndex(view *View, index int) (Selection, error) {
	if index == 0 {
		return Selection{Outcome: OutcomeCancelled}, nil
	}
	size := view.Len()
	if index < 1 || index > size {
		return Selection{}, fmt.Errorf("%w: %d is not between 1 and %d", ErrInvalidSelection, index, size)
	}
	task := view.Tasks[index-1]
	task.MarkDone()
	return Selection{Outcome: OutcomeCompleted, Task: task}, nil
}
