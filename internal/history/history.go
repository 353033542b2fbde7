// Package history keeps a linear undo/redo log of invertible task mutations.
package history

import "github.com/tanvirapon/eventdo/internal/model"

type Kind string

const (
	KindAddTask    Kind = "add_task"
	KindDeleteTask Kind = "delete_task"
)

// Entry captures one reversible mutation: which event it touched, the task
// involved, and for deletions the list the task was removed from.
type Entry struct {
	Kind          Kind
	Event         string
	Task          *model.Task
	FromCompleted bool
}

const DefaultCapacity = 50

// Log is a strictly linear history: two stacks, oldest undo entries evicted
// past capacity, redo invalidated by every new record.
type Log struct {
	capacity int
	undo     []Entry
	redo     []Entry
}

func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{capacity: capacity}
}

// Record pushes a new entry and discards any redo history.
func (l *Log) Record(e Entry) {
	l.undo = append(l.undo, e)
	if len(l.undo) > l.capacity {
		l.undo = l.undo[len(l.undo)-l.capacity:]
	}
	l.redo = l.redo[:0]
}

// Undo pops the latest entry onto the redo stack and returns it. The caller
// applies the inverse effect.
func (l *Log) Undo() (Entry, bool) {
	if len(l.undo) == 0 {
		return Entry{}, false
	}
	e := l.undo[len(l.undo)-1]
	l.undo = l.undo[:len(l.undo)-1]
	l.redo = append(l.redo, e)
	return e, true
}

// Redo pops the latest undone entry back onto the undo stack and returns it.
// The caller re-applies the forward effect.
func (l *Log) Redo() (Entry, bool) {
	if len(l.redo) == 0 {
		return Entry{}, false
	}
	e := l.redo[len(l.redo)-1]
	l.redo = l.redo[:len(l.redo)-1]
	l.undo = append(l.undo, e)
	return e, true
}

func (l *Log) UndoLen() int { return len(l.undo) }

func (l *Log) RedoLen() int { return len(l.redo) }
