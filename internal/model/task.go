package model

import (
	"strings"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

// Color returns the fixed ANSI color used to render tasks at this level.
func (p Priority) Color() string {
	switch p {
	case PriorityLow:
		return "10"
	case PriorityHigh:
		return "208"
	case PriorityUrgent:
		return "9"
	default:
		return "12"
	}
}

// ParsePriority maps a display name to a Priority, case-insensitively.
// Unrecognized input falls back to Medium, matching import behavior.
func ParsePriority(raw string) Priority {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "low":
		return PriorityLow
	case "medium":
		return PriorityMedium
	case "high":
		return PriorityHigh
	case "urgent":
		return PriorityUrgent
	default:
		return PriorityMedium
	}
}

type Task struct {
	Text              string
	Completed         bool
	Priority          Priority
	DueDate           *time.Time
	Category          string
	Tags              []string
	TimeSpent         time.Duration
	CreatedAt         time.Time
	Recurring         bool
	RecurrencePattern string
}

// NewTask builds a task with default attributes: Medium priority, the
// "General" category, no deadline and no tags.
func NewTask(text string, now time.Time) *Task {
	return &Task{
		Text:      text,
		Priority:  PriorityMedium,
		Category:  "General",
		Tags:      []string{},
		CreatedAt: now,
	}
}

// IsOverdue reports whether the task has a deadline strictly in the past.
// Completed tasks are never overdue.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Completed {
		return false
	}
	return now.After(*t.DueDate)
}

// IsDueSoon reports whether the deadline falls within 24 hours of now,
// inclusive. There is no lower bound: an overdue task also reports due-soon,
// so renderers must check IsOverdue first.
func (t *Task) IsDueSoon(now time.Time) bool {
	if t.DueDate == nil || t.Completed {
		return false
	}
	return t.DueDate.Sub(now) <= 24*time.Hour
}
