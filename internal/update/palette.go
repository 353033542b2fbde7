package update

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tanvirapon/eventdo/internal/commands"
	"github.com/tanvirapon/eventdo/internal/interchange"
	"github.com/tanvirapon/eventdo/internal/query"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Mode = ModeBrowse
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		return m.executePaletteCommand(), nil
	}
	m.commandInput, _ = m.commandInput.Update(msg)
	return m, nil
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.commandInput.Value())
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	m.Mode = ModeBrowse

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			if _, ok := m.currentEvent(); !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no event selected"}
			}
			m.addTask(a.Text)
			if m.Status.IsError {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: m.Status.Text}
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
		Search: func(s commands.SearchArgs) (commands.Result, error) {
			m.applySearch(s.Query)
			if s.Query == "" {
				return commands.Result{Message: "search cleared"}, nil
			}
			return commands.Result{Message: fmt.Sprintf("search: %s", s.Query)}, nil
		},
		Filter: func(f commands.FilterArgs) (commands.Result, error) {
			predicate, ok := query.ParsePredicate(f.Tag)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown filter tag: %s", f.Tag)}
			}
			m.Filter = predicate
			m.refreshVisible()
			return commands.Result{Message: fmt.Sprintf("filter: %s", predicate)}, nil
		},
		Export: func(e commands.ExportArgs) (commands.Result, error) {
			if err := m.loadAllEvents(); err != nil {
				return commands.Result{}, err
			}
			f, err := os.Create(e.Path)
			if err != nil {
				return commands.Result{}, err
			}
			defer f.Close()
			if err := interchange.ExportCSV(f, m.Store.Events()); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("exported to %s", e.Path)}, nil
		},
		Import: func(i commands.ImportArgs) (commands.Result, error) {
			f, err := os.Open(i.Path)
			if err != nil {
				return commands.Result{}, err
			}
			defer f.Close()
			count, err := interchange.ImportCSV(f, m.Store, m.clock())
			if err != nil {
				return commands.Result{}, err
			}
			m.refreshVisible()
			m.armDueCheck()
			return commands.Result{Message: fmt.Sprintf("imported %d task(s)", count)}, nil
		},
		Undo: func() (commands.Result, error) {
			m.applyUndo()
			return commands.Result{Message: m.Status.Text}, nil
		},
		Redo: func() (commands.Result, error) {
			m.applyRedo()
			return commands.Result{Message: m.Status.Text}, nil
		},
		Stats: func() (commands.Result, error) {
			m.showStats()
			return commands.Result{Message: "statistics ready"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: res.Message}
	}
	return m
}
