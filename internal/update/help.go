package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/tanvirapon/eventdo/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.paneBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Pane:     string(m.Pane),
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.SwitchPane, Action: "switch pane"},
		{Key: m.Keys.Filter, Action: "cycle filter tag"},
		{Key: m.Keys.Search, Action: "search tasks"},
		{Key: m.Keys.Undo, Action: "undo"},
		{Key: m.Keys.Redo, Action: "redo"},
		{Key: m.Keys.Stats, Action: "show statistics"},
		{Key: m.Keys.Archive, Action: "archive snapshot"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) paneBindings() []KeyBinding {
	switch m.Pane {
	case PaneEvents:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: m.Keys.NewEvent, Action: "new event"},
			{Key: m.Keys.Delete, Action: "delete event"},
			{Key: "enter", Action: "open tasks"},
		}
	case PaneTasks:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: m.Keys.AddTask, Action: "add task"},
			{Key: "space/enter", Action: "toggle done"},
			{Key: m.Keys.Delete, Action: "delete task"},
			{Key: m.Keys.Edit, Action: "edit task text"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.paneBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.paneBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
