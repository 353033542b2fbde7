package update

import (
	"testing"
	"time"

	"github.com/tanvirapon/eventdo/internal/model"
)

func TestParseTaskSpecPlainText(t *testing.T) {
	spec := parseTaskSpec("buy milk and eggs")
	if spec.Text != "buy milk and eggs" {
		t.Fatalf("unexpected text: %q", spec.Text)
	}
	if spec.hasAttributes() {
		t.Fatalf("expected no attributes, got %+v", spec)
	}
}

func TestParseTaskSpecAttributes(t *testing.T) {
	spec := parseTaskSpec("pack bags !high #errands @15/03/2026")
	if spec.Text != "pack bags" {
		t.Fatalf("unexpected text: %q", spec.Text)
	}
	if !spec.HasPriority || spec.Priority != model.PriorityHigh {
		t.Fatalf("unexpected priority: %+v", spec)
	}
	if spec.Category != "errands" {
		t.Fatalf("unexpected category: %q", spec.Category)
	}
	want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	if spec.Due == nil || !spec.Due.Equal(want) {
		t.Fatalf("unexpected due date: %v", spec.Due)
	}
}

func TestParseTaskSpecBadDateStaysInText(t *testing.T) {
	spec := parseTaskSpec("call @noon")
	if spec.Text != "call @noon" {
		t.Fatalf("unexpected text: %q", spec.Text)
	}
	if spec.Due != nil {
		t.Fatalf("expected no due date, got %v", spec.Due)
	}
}

func TestParseTaskSpecUnknownPriorityFallsBack(t *testing.T) {
	spec := parseTaskSpec("thing !critical")
	if !spec.HasPriority || spec.Priority != model.PriorityMedium {
		t.Fatalf("expected Medium fallback, got %+v", spec)
	}
}

func TestTaskSpecApply(t *testing.T) {
	task := model.NewTask("old", time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC))
	due := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	spec := taskSpec{Text: "new", Priority: model.PriorityUrgent, HasPriority: true, Due: &due, Category: "errands"}
	spec.apply(task)
	if task.Text != "new" || task.Priority != model.PriorityUrgent || task.Category != "errands" {
		t.Fatalf("unexpected task after apply: %+v", task)
	}
	if task.DueDate == nil || !task.DueDate.Equal(due) {
		t.Fatalf("unexpected due date: %v", task.DueDate)
	}

	// Empty fields leave the task untouched.
	keep := *task
	taskSpec{}.apply(task)
	if task.Text != keep.Text || task.Priority != keep.Priority {
		t.Fatalf("empty spec must not change the task: %+v", task)
	}
}
