// Package todo holds the in-memory task list and its filtered views.
//
// A Task carries a description, a due timestamp and a completion flag. Its
// display status is derived on every read and never stored:
//
//	Done     the task was marked done
//	Overdue  not done and due strictly before now
//	Pending  anything else
//
// A Store keeps tasks in insertion order. Filtering produces a View, a
// point-in-time projection evaluated against a single captured instant so
// that one view never classifies tasks against two different clocks:
//
//	store := todo.NewStore()
//	task, _ := todo.New("Buy milk", due)
//	store.Add(task)
//	view := store.Filter(todo.TitlePending, todo.Pending)
//
// # Standard Predicates
//
//   - Pending: not done and due after now
//   - Past: due before now, done or not
//   - Window(days): not done and due within [now, now+days*24h]
//   - Incomplete: not done
//   - All: every task
//
// Windows roll from the current instant; "this week" is the next 7x24 hours,
// not Monday to Sunday.
//
// # Completion
//
// Tasks are completed through a view using the 1-based position shown to the
// user. Index 0 cancels. Views share task pointers with the store, so marking
// a task done through a view is visible in the store immediately.
package todo
