package model

// DisplayDateLayout is the Go layout for event display dates (dd/MM/yyyy).
const DisplayDateLayout = "02/01/2006"

// Event is a named bucket holding a pending and a completed task list.
// A task belongs to exactly one of the two lists at any time; list membership
// and Task.Completed are kept consistent by the store's toggle operation.
type Event struct {
	Name        string
	DisplayDate string
	Pending     []*Task
	Completed   []*Task
}

// Total returns the combined task count across both lists.
func (e *Event) Total() int {
	return len(e.Pending) + len(e.Completed)
}
