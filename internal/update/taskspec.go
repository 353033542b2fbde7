package update

import (
	"strings"
	"time"

	"github.com/tanvirapon/eventdo/internal/model"
)

// taskSpec is the parsed form of a task input line. Attribute tokens may
// appear anywhere: "!high" sets priority, "#errands" sets category,
// "@15/03/2026" sets the due date. Everything else is task text.
type taskSpec struct {
	Text        string
	Priority    model.Priority
	HasPriority bool
	Due         *time.Time
	Category    string
}

func parseTaskSpec(raw string) taskSpec {
	var spec taskSpec
	var words []string
	for _, field := range strings.Fields(raw) {
		switch {
		case strings.HasPrefix(field, "!") && len(field) > 1:
			spec.Priority = model.ParsePriority(field[1:])
			spec.HasPriority = true
		case strings.HasPrefix(field, "#") && len(field) > 1:
			spec.Category = field[1:]
		case strings.HasPrefix(field, "@") && len(field) > 1:
			if due, err := time.Parse(model.DisplayDateLayout, field[1:]); err == nil {
				spec.Due = &due
				continue
			}
			// Unparseable date stays part of the text.
			words = append(words, field)
		default:
			words = append(words, field)
		}
	}
	spec.Text = strings.Join(words, " ")
	return spec
}

func (s taskSpec) apply(task *model.Task) {
	if s.Text != "" {
		task.Text = s.Text
	}
	if s.HasPriority {
		task.Priority = s.Priority
	}
	if s.Due != nil {
		task.DueDate = s.Due
	}
	if s.Category != "" {
		task.Category = s.Category
	}
}

func (s taskSpec) hasAttributes() bool {
	return s.HasPriority || s.Due != nil || s.Category != ""
}
