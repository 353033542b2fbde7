package store

import (
	"errors"
	"testing"
	"time"

	"github.com/tanvirapon/eventdo/internal/history"
	"github.com/tanvirapon/eventdo/internal/model"
)

// memGateway records saves so tests can assert exactly which operations flush.
type memGateway struct {
	saves   int
	removes int
	saveErr error
	files   map[string][2][]*model.Task
}

func newMemGateway() *memGateway {
	return &memGateway{files: make(map[string][2][]*model.Task)}
}

func (g *memGateway) Save(event string, pending, completed []*model.Task) error {
	if g.saveErr != nil {
		return g.saveErr
	}
	g.saves++
	g.files[event] = [2][]*model.Task{append([]*model.Task(nil), pending...), append([]*model.Task(nil), completed...)}
	return nil
}

func (g *memGateway) Load(event string, now time.Time) ([]*model.Task, []*model.Task, error) {
	stored := g.files[event]
	return stored[0], stored[1], nil
}

func (g *memGateway) Remove(event string) error {
	g.removes++
	delete(g.files, event)
	return nil
}

func fixedClock() time.Time {
	return time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
}

func setup(t *testing.T) (*Store, *memGateway) {
	t.Helper()
	gw := newMemGateway()
	return New(gw, history.NewLog(0), fixedClock), gw
}

func TestCreateEventDuplicateFails(t *testing.T) {
	s, _ := setup(t)
	if err := s.CreateEvent("Trip", "09/02/2026"); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := s.CreateEvent("Trip", "10/02/2026")
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected exactly one event, got %d", s.Len())
	}
	if err := s.CreateEvent("  ", ""); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestAddTaskFlushesAndRecordsUndo(t *testing.T) {
	s, gw := setup(t)
	if err := s.CreateEvent("Trip", ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.AddTask("Trip", "  "); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
	if _, err := s.AddTask("Nope", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	task, err := s.AddTask("Trip", "pack bags")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if task.Completed || task.Priority != model.PriorityMedium {
		t.Fatalf("unexpected defaults: %+v", task)
	}
	if gw.saves != 1 {
		t.Fatalf("expected 1 flush, got %d", gw.saves)
	}

	event, _ := s.Event("Trip")
	if len(event.Pending) != 1 || event.Pending[0] != task {
		t.Fatalf("task not in pending list: %+v", event.Pending)
	}
}

func TestAddTaskKeepsMutationOnFlushFailure(t *testing.T) {
	s, gw := setup(t)
	_ = s.CreateEvent("Trip", "")
	gw.saveErr = errors.New("disk full")

	task, err := s.AddTask("Trip", "pack bags")
	if err == nil {
		t.Fatal("expected flush error")
	}
	if task == nil {
		t.Fatal("task must be returned despite flush failure")
	}
	event, _ := s.Event("Trip")
	if len(event.Pending) != 1 {
		t.Fatal("mutation must not be rolled back on flush failure")
	}
}

func TestDeleteTaskSilentNoOpWhenAbsent(t *testing.T) {
	s, gw := setup(t)
	_ = s.CreateEvent("Trip", "")
	stranger := model.NewTask("not mine", fixedClock())

	if err := s.DeleteTask("Trip", stranger, false); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
	if gw.saves != 0 {
		t.Fatal("no flush for a no-op delete")
	}
	if _, ok := s.Undo(); ok {
		t.Fatal("no undo entry for a no-op delete")
	}
}

func TestToggleTaskCompletionIsItsOwnInverse(t *testing.T) {
	s, _ := setup(t)
	_ = s.CreateEvent("Trip", "")
	task, _ := s.AddTask("Trip", "pack bags")
	task.Priority = model.PriorityHigh

	if err := s.ToggleTaskCompletion("Trip", task, false); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	event, _ := s.Event("Trip")
	if len(event.Pending) != 0 || len(event.Completed) != 1 {
		t.Fatalf("expected exclusive transfer to completed: %+v", event)
	}
	if !task.Completed {
		t.Fatal("flag must match the completed list")
	}

	if err := s.ToggleTaskCompletion("Trip", task, true); err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if len(event.Pending) != 1 || len(event.Completed) != 0 {
		t.Fatalf("expected transfer back to pending: %+v", event)
	}
	if task.Completed {
		t.Fatal("flag must match the pending list")
	}
	if task.Text != "pack bags" || task.Priority != model.PriorityHigh {
		t.Fatal("toggle must not touch task content")
	}
}

func TestCompletedFlagMatchesListMembership(t *testing.T) {
	s, _ := setup(t)
	_ = s.CreateEvent("Trip", "")
	a, _ := s.AddTask("Trip", "a")
	b, _ := s.AddTask("Trip", "b")
	_ = s.ToggleTaskCompletion("Trip", b, false)

	event, _ := s.Event("Trip")
	for _, task := range event.Pending {
		if task.Completed {
			t.Fatalf("pending task %q marked completed", task.Text)
		}
	}
	for _, task := range event.Completed {
		if !task.Completed {
			t.Fatalf("completed task %q not marked", task.Text)
		}
	}
	_ = a
}

func TestUndoRedoAddTask(t *testing.T) {
	s, gw := setup(t)
	_ = s.CreateEvent("Trip", "")
	task, _ := s.AddTask("Trip", "pack bags")
	savesAfterAdd := gw.saves

	entry, ok := s.Undo()
	if !ok || entry.Kind != history.KindAddTask {
		t.Fatalf("unexpected undo: %+v ok=%v", entry, ok)
	}
	event, _ := s.Event("Trip")
	if len(event.Pending) != 0 {
		t.Fatal("undo of add must remove the task from pending")
	}
	if gw.saves != savesAfterAdd {
		t.Fatal("undo must not flush")
	}

	if _, ok := s.Redo(); !ok {
		t.Fatal("expected redo")
	}
	if len(event.Pending) != 1 || event.Pending[0] != task {
		t.Fatal("redo must restore the exact task")
	}
	if gw.saves != savesAfterAdd {
		t.Fatal("redo must not flush")
	}
}

func TestUndoRedoDeleteTaskRestoresOriginList(t *testing.T) {
	s, _ := setup(t)
	_ = s.CreateEvent("Trip", "")
	task, _ := s.AddTask("Trip", "pack bags")
	_ = s.ToggleTaskCompletion("Trip", task, false)

	if err := s.DeleteTask("Trip", task, true); err != nil {
		t.Fatalf("delete: %v", err)
	}
	event, _ := s.Event("Trip")
	if len(event.Completed) != 0 {
		t.Fatal("delete must remove from completed")
	}

	entry, ok := s.Undo()
	if !ok || entry.Kind != history.KindDeleteTask || !entry.FromCompleted {
		t.Fatalf("unexpected undo entry: %+v", entry)
	}
	if len(event.Completed) != 1 || event.Completed[0] != task {
		t.Fatal("undo must reinsert into the list the task was removed from")
	}

	if _, ok := s.Redo(); !ok {
		t.Fatal("expected redo")
	}
	if len(event.Completed) != 0 {
		t.Fatal("redo must remove the task again")
	}
}

func TestDeleteEventRemovesFiles(t *testing.T) {
	s, gw := setup(t)
	_ = s.CreateEvent("Trip", "")
	if err := s.DeleteEvent("Trip"); err != nil {
		t.Fatalf("delete event: %v", err)
	}
	if gw.removes != 1 {
		t.Fatalf("expected file removal, got %d", gw.removes)
	}
	if err := s.DeleteEvent("Trip"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEditTaskFlushesWithoutUndo(t *testing.T) {
	s, gw := setup(t)
	_ = s.CreateEvent("Trip", "")
	task, _ := s.AddTask("Trip", "pack bags")
	saves := gw.saves
	undoDepth := 1 // the add

	err := s.EditTask("Trip", task, func(t *model.Task) {
		t.Priority = model.PriorityUrgent
		t.Category = "Travel"
		t.Tags = append(t.Tags, "luggage")
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if task.Priority != model.PriorityUrgent || task.Category != "Travel" {
		t.Fatalf("edit not applied: %+v", task)
	}
	if gw.saves != saves+1 {
		t.Fatal("edit must flush")
	}

	// Edits are not undoable: the only entry on the stack is the add.
	count := 0
	for {
		if _, ok := s.Undo(); !ok {
			break
		}
		count++
	}
	if count != undoDepth {
		t.Fatalf("expected %d undo entries, got %d", undoDepth, count)
	}
}

func TestImportTaskSkipsUndoAndFlush(t *testing.T) {
	s, gw := setup(t)
	_ = s.CreateEvent("Home", "")
	task := model.NewTask("Buy milk", fixedClock())

	if err := s.ImportTask("Home", task, false); err != nil {
		t.Fatalf("import: %v", err)
	}
	done := model.NewTask("Pay rent", fixedClock())
	if err := s.ImportTask("Home", done, true); err != nil {
		t.Fatalf("import completed: %v", err)
	}

	event, _ := s.Event("Home")
	if len(event.Pending) != 1 || len(event.Completed) != 1 {
		t.Fatalf("unexpected lists: %+v", event)
	}
	if !done.Completed {
		t.Fatal("imported completed task must carry the flag")
	}
	if gw.saves != 0 {
		t.Fatal("import must not flush")
	}
	if _, ok := s.Undo(); ok {
		t.Fatal("import must not record undo entries")
	}
}

func TestLazyLoadOnFirstAccess(t *testing.T) {
	gw := newMemGateway()
	gw.files["Trip"] = [2][]*model.Task{
		{model.NewTask("pack bags", fixedClock())},
		{func() *model.Task {
			t := model.NewTask("book flights", fixedClock())
			t.Completed = true
			return t
		}()},
	}
	s := New(gw, history.NewLog(0), fixedClock)
	s.Seed([]string{"Trip", "Home"})

	event, _ := s.Event("Trip")
	if len(event.Pending) != 0 {
		t.Fatal("seeded events start empty until first load")
	}
	if err := s.EnsureLoaded("Trip"); err != nil {
		t.Fatalf("ensure loaded: %v", err)
	}
	if len(event.Pending) != 1 || len(event.Completed) != 1 {
		t.Fatalf("unexpected loaded lists: %+v", event)
	}
}

func TestStatistics(t *testing.T) {
	now := fixedClock()
	s, _ := setup(t)
	_ = s.CreateEvent("Trip", "")
	_ = s.CreateEvent("Home", "")

	urgent, _ := s.AddTask("Trip", "book flights")
	urgent.Priority = model.PriorityUrgent
	yesterday := now.Add(-24 * time.Hour)
	late, _ := s.AddTask("Trip", "renew passport")
	late.DueDate = &yesterday
	done, _ := s.AddTask("Home", "pay rent")
	_ = s.ToggleTaskCompletion("Home", done, false)

	stats := s.Statistics(now)
	if stats.TotalEvents != 2 {
		t.Fatalf("events: %d", stats.TotalEvents)
	}
	if stats.TotalTasks != 3 || stats.PendingTasks != 2 || stats.CompletedTasks != 1 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.HighPriority != 1 {
		t.Fatalf("high priority: %d", stats.HighPriority)
	}
	if stats.Overdue != 1 {
		t.Fatalf("overdue: %d", stats.Overdue)
	}
	if stats.CompletionRate < 33.2 || stats.CompletionRate > 33.4 {
		t.Fatalf("completion rate: %v", stats.CompletionRate)
	}
}
