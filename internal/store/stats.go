package store

import (
	"time"

	"github.com/tanvirapon/eventdo/internal/model"
)

// Stats summarizes the whole collection for the statistics panel.
type Stats struct {
	TotalEvents    int
	TotalTasks     int
	PendingTasks   int
	CompletedTasks int
	HighPriority   int
	Overdue        int
	CompletionRate float64
}

// Statistics walks every event. High-priority and overdue counts cover
// pending tasks only, matching the original summary dialog.
func (s *Store) Statistics(now time.Time) Stats {
	out := Stats{TotalEvents: len(s.order)}
	for _, name := range s.order {
		event := s.events[name]
		out.PendingTasks += len(event.Pending)
		out.CompletedTasks += len(event.Completed)
		for _, task := range event.Pending {
			if task.Priority == model.PriorityHigh || task.Priority == model.PriorityUrgent {
				out.HighPriority++
			}
			if task.IsOverdue(now) {
				out.Overdue++
			}
		}
	}
	out.TotalTasks = out.PendingTasks + out.CompletedTasks
	if out.TotalTasks > 0 {
		out.CompletionRate = float64(out.CompletedTasks) * 100 / float64(out.TotalTasks)
	}
	return out
}
