package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tanvirapon/eventdo/internal/duecheck"
	"github.com/tanvirapon/eventdo/internal/views"
)

func waitForAlertCmd(ch <-chan duecheck.Alert) tea.Cmd {
	return func() tea.Msg {
		alert, ok := <-ch
		if !ok {
			return nil
		}
		return TaskDueMsg{Alert: alert}
	}
}

// armDueCheck re-arms the engine with every future deadline among the loaded
// pending tasks. Called after each mutation; already-passed deadlines show as
// overdue in the panel and need no alert.
func (m *Model) armDueCheck() {
	if m.Engine == nil {
		return
	}
	now := m.clock()
	var alerts []duecheck.Alert
	for _, event := range m.Store.Events() {
		for _, task := range event.Pending {
			if task.DueDate == nil || !task.DueDate.After(now) {
				continue
			}
			alerts = append(alerts, duecheck.Alert{
				Event:    event.Name,
				TaskText: task.Text,
				DueAt:    *task.DueDate,
			})
		}
	}
	if err := m.Engine.Arm(alerts); err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("due check: %v", err), IsError: true}
	}
}

func (m *Model) loadAllEvents() error {
	for _, name := range m.Store.Names() {
		if err := m.Store.EnsureLoaded(name); err != nil {
			return err
		}
	}
	return nil
}

func (m *Model) showStats() {
	if err := m.loadAllEvents(); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	stats := m.Store.Statistics(m.clock())
	m.statsView.SetContent(views.RenderStats(views.StatsData{
		TotalEvents:    stats.TotalEvents,
		TotalTasks:     stats.TotalTasks,
		PendingTasks:   stats.PendingTasks,
		CompletedTasks: stats.CompletedTasks,
		HighPriority:   stats.HighPriority,
		Overdue:        stats.Overdue,
		CompletionRate: stats.CompletionRate,
	}))
	m.Mode = ModeStats
	m.Status = StatusBar{Text: "statistics (any key to close)"}
}

// snapshotArchiveCmd copies the full in-memory state into the SQLite archive.
// The archive is write-mostly: it never feeds reloads, so a failed snapshot
// only surfaces as a status line.
func (m *Model) snapshotArchiveCmd() tea.Cmd {
	if m.Archive == nil {
		m.Status = StatusBar{Text: "archive disabled"}
		return nil
	}
	if err := m.loadAllEvents(); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return nil
	}
	archive := m.Archive
	events := m.Store.Events()
	return func() tea.Msg {
		if err := archive.Snapshot(context.Background(), events); err != nil {
			return AppErrorMsg{Err: fmt.Errorf("archive snapshot: %w", err)}
		}
		return SetStatusMsg{Text: fmt.Sprintf("archived %d event(s)", len(events))}
	}
}
