package update

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// handleInputKey drives the single-line input modes. Escape cancels, enter
// commits; everything else is forwarded to the focused textinput.
func (m Model) handleInputKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.resetInputs()
		m.Mode = ModeBrowse
		m.Status = StatusBar{Text: "cancelled"}
		return m
	case "enter":
		return m.commitInput()
	}

	switch m.Mode {
	case ModeNewEvent:
		m.nameInput, _ = m.nameInput.Update(msg)
	case ModeNewTask, ModeEditTask:
		m.taskInput, _ = m.taskInput.Update(msg)
	case ModeSearch:
		m.searchInput, _ = m.searchInput.Update(msg)
	}
	return m
}

func (m Model) commitInput() Model {
	switch m.Mode {
	case ModeNewEvent:
		m.createEvent(strings.TrimSpace(m.nameInput.Value()))
	case ModeNewTask:
		m.addTask(strings.TrimSpace(m.taskInput.Value()))
	case ModeEditTask:
		text := strings.TrimSpace(m.taskInput.Value())
		if text != "" {
			m.editCurrentTask(text)
		}
	case ModeSearch:
		m.applySearch(strings.TrimSpace(m.searchInput.Value()))
	}
	m.resetInputs()
	m.Mode = ModeBrowse
	return m
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "y", "Y":
		if m.Mode == ModeConfirmDeleteEvent {
			m.deleteCurrentEvent()
		} else {
			m.deleteCurrentTask()
		}
	case "n", "N", "esc":
		m.Status = StatusBar{Text: "delete cancelled"}
	default:
		return m
	}
	m.Mode = ModeBrowse
	return m
}

func (m *Model) resetInputs() {
	m.nameInput.SetValue("")
	m.nameInput.Blur()
	m.taskInput.SetValue("")
	m.taskInput.Blur()
	m.searchInput.Blur()
}
