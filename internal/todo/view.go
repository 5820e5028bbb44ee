package todo

import "time"

// Predicate decides whether a task belongs in a view at now.
type Predicate func(t *Task, now time.Time) bool

// View titles used by the menu.
const (
	TitleAll        = "All To-Dos"
	TitlePending    = "Pending To-Dos"
	TitlePast       = "Past To-Dos"
	TitleToday      = "Today's To-Dos"
	TitleWeek       = "This Week's To-Dos"
	TitleMonth      = "This Month's To-Dos"
	TitleIncomplete = "Mark a To-Do as Done"
)

// All matches every task.
func All(*Task, time.Time) bool {
	return true
}

// Pending matches tasks that are not done and due after now.
func Pending(t *Task, now time.Time) bool {
	return !t.done && t.dueAt.After(now)
}

// Past matches tasks due before now, including tasks already done.
func Past(t *Task, now time.Time) bool {
	return t.dueAt.Before(now)
}

// Incomplete matches tasks that are not done, overdue or not.
func Incomplete(t *Task, _ time.Time) bool {
	return !t.done
}

// MaxWindowDays is the widest rolling window. Wider requests are clamped so
// the span stays within time.Duration.
const MaxWindowDays = 36500

// Window matches tasks that are not done and due within the next days*24h,
// both ends inclusive.
func Window(days int) Predicate {
	days = min(days, MaxWindowDays)
	span := time.Duration(days) * 24 * time.Hour
	return func(t *Task, now time.Time) bool {
		if t.done {
			return false
		}
		end := now.Add(span)
		return !t.dueAt.Before(now) && !t.dueAt.After(end)
	}
}

// View is an ordered, point-in-time projection of a store.
type View struct {
	Title string
	Now   time.Time
	Tasks []*Task
}

// Len returns the number of tasks in the view. A nil view is empty.
func (v *View) Len() int {
	if v == nil {
		return 0
	}
	return len(v.Tasks)
}

// Empty reports whether the view has no tasks.
func (v *View) Empty() bool {
	return v.Len() == 0
}

// Row is the fixed display schema for one task in a view.
type Row struct {
	Index       int // 1-based position in the view
	Description string
	Due         string
	Status      Status
}

// Rows formats the view for presentation. Status is derived at the view's
// captured instant.
func (v *View) Rows(layout string) []Row {
	if v.Empty() {
		return nil
	}
	rows := make([]Row, 0, len(v.Tasks))
	for i, t := range v.Tasks {
		rows = append(rows, Row{
			Index:       i + 1,
			Description: t.description,
			Due:         t.dueAt.Format(layout),
			Status:      t.StatusAt(v.Now),
		})
	}
	return rows
}
