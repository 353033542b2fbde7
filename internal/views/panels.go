package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type EventItemData struct {
	Name        string
	DisplayDate string
	Pending     int
	Completed   int
}

type EventPanelData struct {
	ListView string
	Items    []EventItemData
	Cursor   int
	Focused  bool
}

type TaskItemData struct {
	Text          string
	Completed     bool
	Priority      string
	PriorityColor string
	Due           string
	Category      string
	Overdue       bool
	DueSoon       bool
}

type TaskPanelData struct {
	EventName   string
	DisplayDate string
	FilterTag   string
	SearchQuery string
	Pending     []TaskItemData
	Completed   []TaskItemData
	Cursor      int
	Focused     bool
}

type AlertData struct {
	Event    string
	TaskText string
	Due      string
}

type StatsData struct {
	TotalEvents    int
	TotalTasks     int
	PendingTasks   int
	CompletedTasks int
	HighPriority   int
	Overdue        int
	CompletionRate float64
}

type HelpPanelData struct {
	Pane     string
	Bindings []string
	HelpView string
}

func RenderEventPanel(data EventPanelData) string {
	var b strings.Builder
	b.WriteString("events:\n")
	b.WriteString("actions: [n]new [d]delete [j/k]move [tab]tasks\n")
	if data.ListView != "" {
		b.WriteString(data.ListView + "\n")
	}
	if len(data.Items) == 0 {
		b.WriteString("(no events yet, press n)")
		return strings.TrimSpace(b.String())
	}
	for i, item := range data.Items {
		cursor := " "
		if data.Focused && i == data.Cursor {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s", cursor, item.Name))
		if item.DisplayDate != "" {
			b.WriteString(" " + dimStyle.Render(item.DisplayDate))
		}
		b.WriteString(dimStyle.Render(fmt.Sprintf(" (%d/%d)", item.Completed, item.Pending+item.Completed)))
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderTaskPanel(data TaskPanelData) string {
	var b strings.Builder
	if data.EventName == "" {
		return "tasks:\n(select an event)"
	}
	b.WriteString(fmt.Sprintf("tasks: %s", data.EventName))
	if data.DisplayDate != "" {
		b.WriteString(" " + dimStyle.Render(data.DisplayDate))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("filter: %s", data.FilterTag))
	if data.SearchQuery != "" {
		b.WriteString(fmt.Sprintf(" | search: %s", data.SearchQuery))
	}
	b.WriteString("\n")
	b.WriteString("actions: [a]add [space]done [d]delete [e]edit [f]filter [u/r]undo/redo\n")

	b.WriteString("\npending:\n")
	if len(data.Pending) == 0 {
		b.WriteString("  (none)\n")
	}
	for i, item := range data.Pending {
		b.WriteString(renderTaskLine(item, data.Focused && i == data.Cursor))
	}

	b.WriteString("\ncompleted:\n")
	if len(data.Completed) == 0 {
		b.WriteString("  (none)\n")
	}
	for i, item := range data.Completed {
		b.WriteString(renderTaskLine(item, data.Focused && len(data.Pending)+i == data.Cursor))
	}
	return strings.TrimSpace(b.String())
}

func renderTaskLine(item TaskItemData, selected bool) string {
	cursor := " "
	if selected {
		cursor = ">"
	}
	box := "[ ]"
	if item.Completed {
		box = "[x]"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s", cursor, box))
	if badge := taskBadge(item); badge != "" {
		b.WriteString(" " + badge)
	}
	b.WriteString(" " + item.Text)
	b.WriteString(" " + lipgloss.NewStyle().Foreground(lipgloss.Color(item.PriorityColor)).Render(item.Priority))
	if item.Category != "" {
		b.WriteString(dimStyle.Render(" #" + item.Category))
	}
	if item.Due != "" {
		b.WriteString(dimStyle.Render(" due:" + item.Due))
	}
	b.WriteString("\n")
	return b.String()
}

// The overdue cue wins when both apply: an overdue task is also due soon.
func taskBadge(item TaskItemData) string {
	if item.Overdue {
		return overdueStyle.Render("[OVERDUE]")
	}
	if item.DueSoon {
		return dueSoonStyle.Render("[DUE SOON]")
	}
	return ""
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderConfirmPrompt(subject string) string {
	if strings.TrimSpace(subject) == "" {
		return ""
	}
	return fmt.Sprintf("confirm: delete %s? [y/n]", subject)
}

func RenderAlerts(alerts []AlertData) string {
	if len(alerts) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("due now:\n")
	for _, a := range alerts {
		b.WriteString(overdueStyle.Render(fmt.Sprintf("! %s: %s (due %s)", a.Event, a.TaskText, a.Due)) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// RenderStats builds the statistics summary as markdown and renders it
// through glamour, mirroring how markdown notes are displayed elsewhere.
func RenderStats(data StatsData) string {
	md := fmt.Sprintf(`# Statistics

| Metric | Value |
| --- | --- |
| Events | %d |
| Tasks | %d |
| Pending | %d |
| Completed | %d |
| High priority | %d |
| Overdue | %d |
| Completion | %.1f%% |
`,
		data.TotalEvents, data.TotalTasks, data.PendingTasks, data.CompletedTasks,
		data.HighPriority, data.Overdue, data.CompletionRate)
	if out := RenderMarkdown(md); out != "" {
		return out
	}
	return md
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s pane:\n%s\n%s",
		strings.ToLower(data.Pane),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
