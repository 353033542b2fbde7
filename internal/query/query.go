// Package query builds read-only views over an event's task lists. Nothing
// here mutates the underlying slices; callers receive fresh display orderings.
package query

import (
	"strings"
	"time"

	"github.com/tanvirapon/eventdo/internal/model"
)

type Predicate string

const (
	PredicateAll          Predicate = "All"
	PredicateHighPriority Predicate = "High Priority"
	PredicateOverdue      Predicate = "Overdue"
	PredicateDueSoon      Predicate = "Due Soon"
	PredicateCompleted    Predicate = "Completed"
)

// Predicates lists the filter tags in the order the UI cycles through them.
func Predicates() []Predicate {
	return []Predicate{PredicateAll, PredicateHighPriority, PredicateOverdue, PredicateDueSoon, PredicateCompleted}
}

func ParsePredicate(raw string) (Predicate, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	for _, p := range Predicates() {
		if normalized == strings.ToLower(string(p)) ||
			normalized == strings.ReplaceAll(strings.ToLower(string(p)), " ", "") {
			return p, true
		}
	}
	return "", false
}

// Search matches the query case-insensitively against task text, category and
// priority display name. An empty query matches everything.
func Search(event *model.Event, queryText string) (pending, completed []*model.Task) {
	needle := strings.ToLower(strings.TrimSpace(queryText))
	pending = matchTasks(event.Pending, needle)
	completed = matchTasks(event.Completed, needle)
	return pending, completed
}

func matchTasks(tasks []*model.Task, needle string) []*model.Task {
	out := make([]*model.Task, 0, len(tasks))
	for _, task := range tasks {
		if needle == "" || matches(task, needle) {
			out = append(out, task)
		}
	}
	return out
}

func matches(task *model.Task, needle string) bool {
	return strings.Contains(strings.ToLower(task.Text), needle) ||
		strings.Contains(strings.ToLower(task.Category), needle) ||
		strings.Contains(strings.ToLower(string(task.Priority)), needle)
}

// Filter applies a predicate tag against the injected clock. Only the All and
// Completed tags surface completed tasks.
func Filter(event *model.Event, predicate Predicate, now time.Time) (pending, completed []*model.Task) {
	pending = make([]*model.Task, 0, len(event.Pending))
	for _, task := range event.Pending {
		var keep bool
		switch predicate {
		case PredicateAll:
			keep = true
		case PredicateHighPriority:
			keep = task.Priority == model.PriorityHigh || task.Priority == model.PriorityUrgent
		case PredicateOverdue:
			keep = task.IsOverdue(now)
		case PredicateDueSoon:
			keep = task.IsDueSoon(now)
		case PredicateCompleted:
			keep = false
		}
		if keep {
			pending = append(pending, task)
		}
	}

	completed = make([]*model.Task, 0, len(event.Completed))
	if predicate == PredicateAll || predicate == PredicateCompleted {
		completed = append(completed, event.Completed...)
	}
	return pending, completed
}
