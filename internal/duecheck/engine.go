// Package duecheck watches pending-task deadlines and emits an alert when one
// passes. The engine runs its own goroutine but never touches the event
// store: alerts flow over a channel into the UI loop, which owns all state.
package duecheck

import (
	"errors"
	"sort"
	"sync"
	"time"
)

var ErrStopped = errors.New("duecheck: engine stopped")

// Alert describes one deadline that has just passed.
type Alert struct {
	Event    string
	TaskText string
	DueAt    time.Time
}

type Engine struct {
	mu      sync.Mutex
	pending []Alert // sorted by DueAt, soonest first
	out     chan Alert
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 16
	}
	return &Engine{
		out:    make(chan Alert, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

func (e *Engine) C() <-chan Alert {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

// Arm replaces the watched deadline set wholesale. The UI re-arms after every
// mutation with the current pending deadlines; already-passed deadlines are
// rendered directly and need no alert, so callers pass future ones only.
func (e *Engine) Arm(alerts []Alert) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}
	e.pending = make([]Alert, len(alerts))
	copy(e.pending, alerts)
	sort.Slice(e.pending, func(i, j int) bool {
		return e.pending[i].DueAt.Before(e.pending[j].DueAt)
	})
	e.signalWakeup()
	return nil
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := time.Until(next.DueAt)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			for _, alert := range e.popDue(time.Now()) {
				select {
				case e.out <- alert:
				default:
					// Full buffer: the UI is behind; drop rather than block.
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			if timer != nil {
				stopTimer(timer)
			}
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (Alert, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.pending) == 0 {
		return Alert{}, false
	}
	return e.pending[0], true
}

func (e *Engine) popDue(now time.Time) []Alert {
	e.mu.Lock()
	defer e.mu.Unlock()

	due := 0
	for due < len(e.pending) && !e.pending[due].DueAt.After(now) {
		due++
	}
	out := make([]Alert, due)
	copy(out, e.pending[:due])
	e.pending = e.pending[due:]
	return out
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
