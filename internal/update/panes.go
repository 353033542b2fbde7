package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tanvirapon/eventdo/internal/model"
	"github.com/tanvirapon/eventdo/internal/query"
)

func (m Model) handleEventKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "j", "down":
		if m.EventCursor < m.Store.Len()-1 {
			m.EventCursor++
			m.TaskCursor = 0
			m.refreshVisible()
		}
	case "k", "up":
		if m.EventCursor > 0 {
			m.EventCursor--
			m.TaskCursor = 0
			m.refreshVisible()
		}
	case m.Keys.NewEvent:
		m.Mode = ModeNewEvent
		m.nameInput.SetValue("")
		m.nameInput.Focus()
	case m.Keys.Delete:
		if m.Store.Len() > 0 {
			m.Mode = ModeConfirmDeleteEvent
		}
	case "enter":
		if m.Store.Len() > 0 {
			m.Pane = PaneTasks
			m.refreshVisible()
		}
	}
	return m
}

func (m Model) handleTaskKey(msg tea.KeyMsg) Model {
	total := len(m.visiblePending) + len(m.visibleCompleted)
	switch msg.String() {
	case "j", "down":
		if m.TaskCursor < total-1 {
			m.TaskCursor++
		}
	case "k", "up":
		if m.TaskCursor > 0 {
			m.TaskCursor--
		}
	case m.Keys.AddTask:
		if _, ok := m.currentEvent(); ok {
			m.Mode = ModeNewTask
			m.taskInput.SetValue("")
			m.taskInput.Focus()
		}
	case m.Keys.Toggle, "enter":
		m.toggleCurrentTask()
	case m.Keys.Delete:
		if _, _, ok := m.currentTask(); ok {
			m.Mode = ModeConfirmDeleteTask
		}
	case m.Keys.Edit:
		if task, _, ok := m.currentTask(); ok {
			m.Mode = ModeEditTask
			m.taskInput.SetValue(task.Text)
			m.taskInput.Focus()
		}
	}
	return m
}

func (m *Model) createEvent(name string) {
	displayDate := m.clock().Format(model.DisplayDateLayout)
	if err := m.Store.CreateEvent(name, displayDate); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.EventCursor = m.Store.Len() - 1
	m.TaskCursor = 0
	m.Status = StatusBar{Text: fmt.Sprintf("event created: %s", name)}
	m.refreshVisible()
}

func (m *Model) deleteCurrentEvent() {
	event, ok := m.currentEvent()
	if !ok {
		return
	}
	if err := m.Store.DeleteEvent(event.Name); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	if m.EventCursor >= m.Store.Len() && m.EventCursor > 0 {
		m.EventCursor--
	}
	m.Status = StatusBar{Text: fmt.Sprintf("event deleted: %s", event.Name)}
	m.refreshVisible()
	m.armDueCheck()
}

func (m *Model) addTask(raw string) {
	event, ok := m.currentEvent()
	if !ok {
		m.Status = StatusBar{Text: "no event selected", IsError: true}
		return
	}
	spec := parseTaskSpec(raw)
	task, err := m.Store.AddTask(event.Name, spec.Text)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.refreshVisible()
		return
	}
	if spec.hasAttributes() {
		if err := m.Store.EditTask(event.Name, task, spec.apply); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			m.refreshVisible()
			m.armDueCheck()
			return
		}
	}
	m.Status = StatusBar{Text: fmt.Sprintf("task added: %s", task.Text)}
	m.refreshVisible()
	m.armDueCheck()
}

func (m *Model) toggleCurrentTask() {
	event, ok := m.currentEvent()
	if !ok {
		return
	}
	task, wasCompleted, ok := m.currentTask()
	if !ok {
		return
	}
	if err := m.Store.ToggleTaskCompletion(event.Name, task, wasCompleted); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else if task.Completed {
		m.Status = StatusBar{Text: fmt.Sprintf("task completed: %s", task.Text)}
	} else {
		m.Status = StatusBar{Text: fmt.Sprintf("task reopened: %s", task.Text)}
	}
	m.refreshVisible()
	m.armDueCheck()
}

func (m *Model) deleteCurrentTask() {
	event, ok := m.currentEvent()
	if !ok {
		return
	}
	task, fromCompleted, ok := m.currentTask()
	if !ok {
		return
	}
	if err := m.Store.DeleteTask(event.Name, task, fromCompleted); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: fmt.Sprintf("task deleted: %s", task.Text)}
	}
	m.refreshVisible()
	m.armDueCheck()
}

func (m *Model) editCurrentTask(raw string) {
	event, ok := m.currentEvent()
	if !ok {
		return
	}
	task, _, ok := m.currentTask()
	if !ok {
		return
	}
	spec := parseTaskSpec(raw)
	if err := m.Store.EditTask(event.Name, task, spec.apply); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: fmt.Sprintf("task updated: %s", task.Text)}
	}
	m.refreshVisible()
	m.armDueCheck()
}

func (m *Model) applyUndo() {
	entry, ok := m.Store.Undo()
	if !ok {
		m.Status = StatusBar{Text: "nothing to undo"}
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("undid %s on %s", entry.Kind, entry.Event)}
	m.refreshVisible()
	m.armDueCheck()
}

func (m *Model) applyRedo() {
	entry, ok := m.Store.Redo()
	if !ok {
		m.Status = StatusBar{Text: "nothing to redo"}
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("redid %s on %s", entry.Kind, entry.Event)}
	m.refreshVisible()
	m.armDueCheck()
}

func (m *Model) cycleFilter() {
	preds := query.Predicates()
	next := preds[0]
	for i, p := range preds {
		if p == m.Filter {
			next = preds[(i+1)%len(preds)]
			break
		}
	}
	m.Filter = next
	m.Status = StatusBar{Text: fmt.Sprintf("filter: %s", next)}
	m.refreshVisible()
}

func (m *Model) applySearch(queryText string) {
	m.SearchQuery = queryText
	if queryText == "" {
		m.Status = StatusBar{Text: "search cleared"}
	} else {
		m.Status = StatusBar{Text: fmt.Sprintf("search: %s", queryText)}
	}
	m.TaskCursor = 0
	m.refreshVisible()
}
