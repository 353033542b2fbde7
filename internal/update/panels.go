package update

import (
	"github.com/tanvirapon/eventdo/internal/model"
	"github.com/tanvirapon/eventdo/internal/views"
)

func (m Model) renderEventPanel() string {
	events := m.Store.Events()
	items := make([]views.EventItemData, 0, len(events))
	for _, ev := range events {
		items = append(items, views.EventItemData{
			Name:        ev.Name,
			DisplayDate: ev.DisplayDate,
			Pending:     len(ev.Pending),
			Completed:   len(ev.Completed),
		})
	}
	return views.RenderEventPanel(views.EventPanelData{
		ListView: m.eventList.View(),
		Items:    items,
		Cursor:   m.EventCursor,
		Focused:  m.Pane == PaneEvents,
	})
}

func (m Model) renderTaskPanel() string {
	event, ok := m.currentEvent()
	if !ok {
		return views.RenderTaskPanel(views.TaskPanelData{})
	}
	return views.RenderTaskPanel(views.TaskPanelData{
		EventName:   event.Name,
		DisplayDate: event.DisplayDate,
		FilterTag:   string(m.Filter),
		SearchQuery: m.SearchQuery,
		Pending:     m.taskItems(m.visiblePending),
		Completed:   m.taskItems(m.visibleCompleted),
		Cursor:      m.TaskCursor,
		Focused:     m.Pane == PaneTasks,
	})
}

func (m Model) taskItems(tasks []*model.Task) []views.TaskItemData {
	now := m.clock()
	out := make([]views.TaskItemData, 0, len(tasks))
	for _, task := range tasks {
		due := ""
		if task.DueDate != nil {
			due = task.DueDate.Format(model.DisplayDateLayout)
		}
		out = append(out, views.TaskItemData{
			Text:          task.Text,
			Completed:     task.Completed,
			Priority:      string(task.Priority),
			PriorityColor: task.Priority.Color(),
			Due:           due,
			Category:      task.Category,
			Overdue:       task.IsOverdue(now),
			DueSoon:       task.IsDueSoon(now),
		})
	}
	return out
}

func (m Model) renderAlerts() string {
	if len(m.AlertLog) == 0 {
		return ""
	}
	items := make([]views.AlertData, 0, len(m.AlertLog))
	for _, alert := range m.AlertLog {
		items = append(items, views.AlertData{
			Event:    alert.Event,
			TaskText: alert.TaskText,
			Due:      alert.DueAt.Format("15:04"),
		})
	}
	return views.RenderAlerts(items)
}
