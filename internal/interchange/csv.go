// Package interchange translates the event/task collection to and from the
// tabular CSV exchange format.
package interchange

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tanvirapon/eventdo/internal/model"
	"github.com/tanvirapon/eventdo/internal/store"
)

const (
	csvHeader     = "Event,Task,Priority,Status,Due Date,Category"
	dueDateLayout = "2006-01-02"

	statusPending   = "Pending"
	statusCompleted = "Completed"
)

// ExportCSV writes one header row and one row per task across all events, in
// event insertion order, pending rows before completed rows. Every field is
// quoted with embedded quotes doubled — the fixed external format, stricter
// than encoding/csv's conditional quoting.
func ExportCSV(w io.Writer, events []*model.Event) error {
	if _, err := fmt.Fprintln(w, csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, event := range events {
		if err := writeRows(w, event.Name, event.Pending, statusPending); err != nil {
			return err
		}
		if err := writeRows(w, event.Name, event.Completed, statusCompleted); err != nil {
			return err
		}
	}
	return nil
}

func writeRows(w io.Writer, event string, tasks []*model.Task, status string) error {
	for _, task := range tasks {
		due := ""
		if task.DueDate != nil {
			due = task.DueDate.Format(dueDateLayout)
		}
		fields := []string{event, task.Text, string(task.Priority), status, due, task.Category}
		quoted := make([]string, len(fields))
		for i, f := range fields {
			quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
		}
		if _, err := fmt.Fprintln(w, strings.Join(quoted, ",")); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	return nil
}

// ImportCSV parses rows honoring quoted commas and loads them into the store:
// missing events are created with today's display date, unknown priorities
// fall back to Medium, rows shorter than four fields are skipped silently.
// Returns the number of rows imported.
func ImportCSV(r io.Reader, s *store.Store, now time.Time) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	// Header row.
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, fmt.Errorf("read csv header: %w", err)
	}

	imported := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Malformed row: skip, keep going.
			continue
		}
		if len(record) < 4 {
			continue
		}

		eventName := strings.TrimSpace(record[0])
		taskText := record[1]
		priority := record[2]
		status := strings.TrimSpace(record[3])
		if eventName == "" || strings.TrimSpace(taskText) == "" {
			continue
		}

		if _, ok := s.Event(eventName); !ok {
			if err := s.CreateEvent(eventName, now.Format(model.DisplayDateLayout)); err != nil {
				continue
			}
		}

		task := model.NewTask(taskText, now)
		task.Priority = model.ParsePriority(priority)
		if len(record) > 5 {
			task.Category = record[5]
		}
		if err := s.ImportTask(eventName, task, status == statusCompleted); err != nil {
			continue
		}
		imported++
	}
	return imported, nil
}
