package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tanvirapon/eventdo/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Engine != nil {
		return waitForAlertCmd(m.Engine.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case TaskDueMsg:
		m.AlertLog = append(m.AlertLog, typed.Alert)
		if len(m.AlertLog) > 5 {
			m.AlertLog = m.AlertLog[len(m.AlertLog)-5:]
		}
		m.Status = StatusBar{Text: fmt.Sprintf("due now: %s (%s)", typed.Alert.TaskText, typed.Alert.Event), IsError: false}
		m.refreshVisible()
		if m.Engine != nil {
			return m, waitForAlertCmd(m.Engine.C())
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Mode {
	case ModePalette:
		return m.handlePaletteKey(msg)
	case ModeNewEvent, ModeNewTask, ModeEditTask, ModeSearch:
		return m.handleInputKey(msg), nil
	case ModeConfirmDeleteEvent, ModeConfirmDeleteTask:
		return m.handleConfirmKey(msg), nil
	case ModeStats:
		// Any key dismisses the statistics panel.
		m.Mode = ModeBrowse
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case "/":
		m.Mode = ModePalette
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
		return m, nil
	case m.Keys.SwitchPane:
		if m.Pane == PaneEvents {
			m.Pane = PaneTasks
		} else {
			m.Pane = PaneEvents
		}
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case m.Keys.Undo:
		m.applyUndo()
		return m, nil
	case m.Keys.Redo:
		m.applyRedo()
		return m, nil
	case m.Keys.Filter:
		m.cycleFilter()
		return m, nil
	case m.Keys.Search:
		m.Mode = ModeSearch
		m.searchInput.SetValue(m.SearchQuery)
		m.searchInput.Focus()
		return m, nil
	case m.Keys.Stats:
		m.showStats()
		return m, nil
	case m.Keys.Archive:
		cmd := m.snapshotArchiveCmd()
		return m, cmd
	}

	if m.Pane == PaneEvents {
		return m.handleEventKey(msg), nil
	}
	return m.handleTaskKey(msg), nil
}

func (m Model) View() string {
	m.syncBubbleData()

	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	right := ""
	if m.Mode == ModeStats {
		right = m.statsView.View()
	} else {
		right = m.renderTaskPanel()
	}
	if m.HelpVisible {
		right = strings.TrimSpace(right + "\n\n" + m.renderHelpView())
	}

	overlay := ""
	switch m.Mode {
	case ModePalette:
		overlay = views.RenderCommandPalette(true, m.commandInput.Value())
	case ModeNewEvent:
		overlay = m.nameInput.View()
	case ModeNewTask, ModeEditTask:
		overlay = m.taskInput.View()
	case ModeSearch:
		overlay = m.searchInput.View()
	case ModeConfirmDeleteEvent:
		if event, ok := m.currentEvent(); ok {
			overlay = views.RenderConfirmPrompt("event " + event.Name)
		}
	case ModeConfirmDeleteTask:
		if task, _, ok := m.currentTask(); ok {
			overlay = views.RenderConfirmPrompt("task " + task.Text)
		}
	}

	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("eventdo | pane: %s | filter: %s", m.Pane, m.Filter),
		LeftPane:   m.renderEventPanel(),
		RightPane:  right,
		StatusLine: status,
		Alerts:     m.renderAlerts(),
		Overlay:    overlay,
		Footer: fmt.Sprintf("keys: %s pane | %s filter | %s search | %s/%s undo/redo | %s stats | / cmd | %s help | %s quit",
			m.Keys.SwitchPane, m.Keys.Filter, m.Keys.Search, m.Keys.Undo, m.Keys.Redo, m.Keys.Stats, m.Keys.Help, m.Keys.Quit),
	})
}
