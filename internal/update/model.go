package update

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/tanvirapon/eventdo/internal/duecheck"
	"github.com/tanvirapon/eventdo/internal/model"
	"github.com/tanvirapon/eventdo/internal/query"
	"github.com/tanvirapon/eventdo/internal/storage"
	"github.com/tanvirapon/eventdo/internal/store"
)

type Pane string

const (
	PaneEvents Pane = "Events"
	PaneTasks  Pane = "Tasks"
)

type Mode string

const (
	ModeBrowse             Mode = "browse"
	ModeNewEvent           Mode = "new_event"
	ModeNewTask            Mode = "new_task"
	ModeEditTask           Mode = "edit_task"
	ModeSearch             Mode = "search"
	ModeConfirmDeleteEvent Mode = "confirm_delete_event"
	ModeConfirmDeleteTask  Mode = "confirm_delete_task"
	ModePalette            Mode = "palette"
	ModeStats              Mode = "stats"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	SwitchPane string
	NewEvent   string
	AddTask    string
	Delete     string
	Edit       string
	Toggle     string
	Filter     string
	Search     string
	Undo       string
	Redo       string
	Stats      string
	Archive    string
	Help       string
	Quit       string
}

// Model is the single bubbletea model. It owns the store; no other goroutine
// touches it. The due-check engine runs concurrently but only communicates
// over its alert channel.
type Model struct {
	Store   *store.Store
	Engine  *duecheck.Engine
	Archive *storage.Archive

	Pane        Pane
	Mode        Mode
	EventCursor int
	TaskCursor  int
	Filter      query.Predicate
	SearchQuery string
	Status      StatusBar
	HelpVisible bool
	AlertLog    []duecheck.Alert
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error

	visiblePending   []*model.Task
	visibleCompleted []*model.Task

	clock store.Clock

	eventList    list.Model
	nameInput    textinput.Model
	taskInput    textinput.Model
	searchInput  textinput.Model
	commandInput textinput.Model
	helpModel    help.Model
	statsView    viewport.Model
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type TaskDueMsg struct {
	Alert duecheck.Alert
}

func NewModel(st *store.Store) Model {
	m := Model{
		Store:  st,
		Pane:   PaneEvents,
		Mode:   ModeBrowse,
		Filter: query.PredicateAll,
		clock:  time.Now,
		Keys: GlobalKeyMap{
			SwitchPane: "tab",
			NewEvent:   "n",
			AddTask:    "a",
			Delete:     "d",
			Edit:       "e",
			Toggle:     " ",
			Filter:     "f",
			Search:     "s",
			Undo:       "u",
			Redo:       "r",
			Stats:      "S",
			Archive:    "A",
			Help:       "?",
			Quit:       "q",
		},
	}
	m.initBubbleComponents()
	m.refreshVisible()
	return m
}

func NewModelWithRuntime(st *store.Store, engine *duecheck.Engine, archive *storage.Archive, clock store.Clock) Model {
	m := NewModel(st)
	m.Engine = engine
	m.Archive = archive
	if clock != nil {
		m.clock = clock
	}
	m.armDueCheck()
	return m
}

func (m *Model) initBubbleComponents() {
	m.eventList = list.New([]list.Item{}, list.NewDefaultDelegate(), 34, 10)
	m.eventList.Title = "Events"
	m.eventList.SetShowHelp(false)
	m.eventList.SetFilteringEnabled(false)

	m.nameInput = textinput.New()
	m.nameInput.Prompt = "event> "
	m.nameInput.CharLimit = 128
	m.nameInput.Width = 32

	m.taskInput = textinput.New()
	m.taskInput.Prompt = "task> "
	m.taskInput.CharLimit = 256
	m.taskInput.Width = 48

	m.searchInput = textinput.New()
	m.searchInput.Prompt = "search> "
	m.searchInput.CharLimit = 128
	m.searchInput.Width = 40

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
	m.statsView = viewport.New(70, 14)
}

func (m *Model) syncBubbleData() {
	events := m.Store.Events()
	items := make([]list.Item, 0, len(events))
	for _, ev := range events {
		items = append(items, listItem{
			title:       ev.Name,
			description: fmt.Sprintf("%s | %d task(s)", ev.DisplayDate, ev.Total()),
		})
	}
	m.eventList.SetItems(items)
	if len(items) > 0 && m.EventCursor < len(items) {
		m.eventList.Select(m.EventCursor)
	}
}

// currentEvent resolves the event under the cursor and lazily loads its tasks.
func (m *Model) currentEvent() (*model.Event, bool) {
	names := m.Store.Names()
	if len(names) == 0 {
		return nil, false
	}
	if m.EventCursor >= len(names) {
		m.EventCursor = len(names) - 1
	}
	name := names[m.EventCursor]
	if err := m.Store.EnsureLoaded(name); err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("load %s: %v", name, err), IsError: true}
	}
	event, ok := m.Store.Event(name)
	return event, ok
}

// refreshVisible recomputes the task panel contents: search narrows first,
// then the filter predicate is applied to what remains.
func (m *Model) refreshVisible() {
	m.visiblePending = nil
	m.visibleCompleted = nil
	event, ok := m.currentEvent()
	if !ok {
		m.TaskCursor = 0
		return
	}
	pending, completed := query.Search(event, m.SearchQuery)
	narrowed := &model.Event{Name: event.Name, Pending: pending, Completed: completed}
	m.visiblePending, m.visibleCompleted = query.Filter(narrowed, m.Filter, m.clock())
	m.clampTaskCursor()
}

func (m *Model) clampTaskCursor() {
	total := len(m.visiblePending) + len(m.visibleCompleted)
	if total == 0 {
		m.TaskCursor = 0
		return
	}
	if m.TaskCursor >= total {
		m.TaskCursor = total - 1
	}
	if m.TaskCursor < 0 {
		m.TaskCursor = 0
	}
}

// currentTask maps the combined cursor back onto the pending or completed
// half of the visible lists.
func (m *Model) currentTask() (*model.Task, bool, bool) {
	if m.TaskCursor < len(m.visiblePending) {
		return m.visiblePending[m.TaskCursor], false, true
	}
	idx := m.TaskCursor - len(m.visiblePending)
	if idx < len(m.visibleCompleted) {
		return m.visibleCompleted[idx], true, true
	}
	return nil, false, false
}
