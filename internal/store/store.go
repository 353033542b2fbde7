// Package store owns the in-memory event state. Every mutation flows through
// it: callers update state here, the store records undo entries and flushes
// the affected event to its backing files. Readers (query, interchange, the
// UI) re-fetch state after each call; the store pushes no notifications.
package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tanvirapon/eventdo/internal/history"
	"github.com/tanvirapon/eventdo/internal/model"
)

var (
	ErrEmptyName     = errors.New("store: event name is empty")
	ErrAlreadyExists = errors.New("store: event already exists")
	ErrNotFound      = errors.New("store: event not found")
	ErrEmptyText     = errors.New("store: task text is empty")
)

// Gateway is the persistence collaborator: the text-file pair per event.
type Gateway interface {
	Save(event string, pending, completed []*model.Task) error
	Load(event string, now time.Time) (pending, completed []*model.Task, err error)
	Remove(event string) error
}

type Clock func() time.Time

// Store maps event names to their task lists, in insertion order. It is not
// safe for concurrent use; exactly one goroutine (the UI loop) owns it.
type Store struct {
	gateway Gateway
	clock   Clock
	log     *history.Log
	events  map[string]*model.Event
	order   []string
	loaded  map[string]bool
}

func New(gateway Gateway, log *history.Log, clock Clock) *Store {
	if clock == nil {
		clock = time.Now
	}
	if log == nil {
		log = history.NewLog(history.DefaultCapacity)
	}
	return &Store{
		gateway: gateway,
		clock:   clock,
		log:     log,
		events:  make(map[string]*model.Event),
		loaded:  make(map[string]bool),
	}
}

// Seed registers discovered event names with empty task lists. Tasks are
// loaded lazily per event on first access, not eagerly for all events.
func (s *Store) Seed(names []string) {
	for _, name := range names {
		if _, exists := s.events[name]; exists {
			continue
		}
		s.events[name] = &model.Event{Name: name}
		s.order = append(s.order, name)
	}
}

// EnsureLoaded pulls an event's tasks from disk the first time it is needed.
func (s *Store) EnsureLoaded(name string) error {
	event, ok := s.events[name]
	if !ok {
		return ErrNotFound
	}
	if s.loaded[name] {
		return nil
	}
	pending, completed, err := s.gateway.Load(name, s.clock())
	if err != nil {
		return err
	}
	event.Pending = pending
	event.Completed = completed
	s.loaded[name] = true
	return nil
}

func (s *Store) CreateEvent(name, displayDate string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if _, exists := s.events[name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, name)
	}
	s.events[name] = &model.Event{Name: name, DisplayDate: displayDate}
	s.order = append(s.order, name)
	s.loaded[name] = true
	return nil
}

// DeleteEvent drops the event and both its backing files. Missing files are
// tolerated by the gateway.
func (s *Store) DeleteEvent(name string) error {
	if _, ok := s.events[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	delete(s.events, name)
	delete(s.loaded, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return s.gateway.Remove(name)
}

// AddTask appends a default-attribute task to the event's pending list,
// records an undo entry and flushes. The task is returned so the caller can
// collect follow-up edits; it is durably added regardless. A flush error is
// reported alongside the already-applied mutation, never rolled back.
func (s *Store) AddTask(eventName, text string) (*model.Task, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	event, ok := s.events[eventName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, eventName)
	}
	task := model.NewTask(text, s.clock())
	event.Pending = append(event.Pending, task)
	s.log.Record(history.Entry{Kind: history.KindAddTask, Event: eventName, Task: task})
	return task, s.flush(event)
}

// DeleteTask removes the task from the indicated list. A task that is not
// present is a silent no-op: no undo entry, no flush.
func (s *Store) DeleteTask(eventName string, task *model.Task, fromCompleted bool) error {
	event, ok := s.events[eventName]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, eventName)
	}
	var removed bool
	if fromCompleted {
		event.Completed, removed = removeTask(event.Completed, task)
	} else {
		event.Pending, removed = removeTask(event.Pending, task)
	}
	if !removed {
		return nil
	}
	s.log.Record(history.Entry{
		Kind:          history.KindDeleteTask,
		Event:         eventName,
		Task:          task,
		FromCompleted: fromCompleted,
	})
	return s.flush(event)
}

// ToggleTaskCompletion transfers the task between the pending and completed
// lists based on the new checked state (the opposite of wasCompleted) and
// keeps the Completed flag in step. This is the only code path that changes
// list membership together with the flag.
func (s *Store) ToggleTaskCompletion(eventName string, task *model.Task, wasCompleted bool) error {
	event, ok := s.events[eventName]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, eventName)
	}
	if !wasCompleted {
		var moved bool
		event.Pending, moved = removeTask(event.Pending, task)
		if moved {
			task.Completed = true
			event.Completed = append(event.Completed, task)
		}
	} else {
		var moved bool
		event.Completed, moved = removeTask(event.Completed, task)
		if moved {
			task.Completed = false
			event.Pending = append(event.Pending, task)
		}
	}
	return s.flush(event)
}

// EditTask applies caller-supplied field changes in place and flushes. It
// never alters list membership, and edits are not undoable.
func (s *Store) EditTask(eventName string, task *model.Task, mutator func(*model.Task)) error {
	event, ok := s.events[eventName]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, eventName)
	}
	if mutator != nil {
		mutator(task)
	}
	return s.flush(event)
}

// ImportTask is the interchange entry point: it appends without recording
// undo history and without flushing, matching the original importer. The
// imported data reaches disk on the next ordinary mutation of the event.
func (s *Store) ImportTask(eventName string, task *model.Task, completed bool) error {
	event, ok := s.events[eventName]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, eventName)
	}
	if completed {
		task.Completed = true
		event.Completed = append(event.Completed, task)
	} else {
		task.Completed = false
		event.Pending = append(event.Pending, task)
	}
	return nil
}

// Undo reverses the latest recorded mutation. It does not flush; in-memory
// and on-disk state may diverge until the next ordinary mutation.
func (s *Store) Undo() (history.Entry, bool) {
	entry, ok := s.log.Undo()
	if !ok {
		return history.Entry{}, false
	}
	event, exists := s.events[entry.Event]
	if !exists {
		return entry, true
	}
	switch entry.Kind {
	case history.KindAddTask:
		event.Pending, _ = removeTask(event.Pending, entry.Task)
	case history.KindDeleteTask:
		if entry.FromCompleted {
			event.Completed = append(event.Completed, entry.Task)
		} else {
			event.Pending = append(event.Pending, entry.Task)
		}
	}
	return entry, true
}

// Redo re-applies the latest undone mutation. Like Undo, it does not flush.
func (s *Store) Redo() (history.Entry, bool) {
	entry, ok := s.log.Redo()
	if !ok {
		return history.Entry{}, false
	}
	event, exists := s.events[entry.Event]
	if !exists {
		return entry, true
	}
	switch entry.Kind {
	case history.KindAddTask:
		event.Pending = append(event.Pending, entry.Task)
	case history.KindDeleteTask:
		if entry.FromCompleted {
			event.Completed, _ = removeTask(event.Completed, entry.Task)
		} else {
			event.Pending, _ = removeTask(event.Pending, entry.Task)
		}
	}
	return entry, true
}

func (s *Store) Event(name string) (*model.Event, bool) {
	event, ok := s.events[name]
	return event, ok
}

// Events returns the events in insertion order.
func (s *Store) Events() []*model.Event {
	out := make([]*model.Event, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.events[name])
	}
	return out
}

func (s *Store) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Store) Len() int { return len(s.order) }

func (s *Store) flush(event *model.Event) error {
	if err := s.gateway.Save(event.Name, event.Pending, event.Completed); err != nil {
		return fmt.Errorf("flush %s: %w", event.Name, err)
	}
	return nil
}

func removeTask(list []*model.Task, task *model.Task) ([]*model.Task, bool) {
	for i, t := range list {
		if t == task {
			return append(list[:i], list[i+1:]...), true
		}
	}
	return list, false
}
