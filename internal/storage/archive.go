package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tanvirapon/eventdo/internal/model"
)

var ErrNotFound = errors.New("storage: not found")

const (
	sqliteTimeLayout = time.RFC3339Nano
	tagSeparator     = "\n"
)

// Archive is the explicit, versioned rich serialization kept beside the lossy
// text files. It preserves every task attribute the text format drops. The
// archive is written on demand and never feeds ordinary reloads; the text
// files stay the source of truth.
type Archive struct {
	db *sql.DB
}

func OpenArchive(path string) (*Archive, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Archive{db: db}, nil
}

func NewArchive(db *sql.DB) (*Archive, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &Archive{db: db}, nil
}

func (a *Archive) Close() error {
	return a.db.Close()
}

// Snapshot replaces the archived copy with the full current state.
func (a *Archive) Snapshot(ctx context.Context, events []*model.Event) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM archive_tasks`); err != nil {
		return fmt.Errorf("clear archived tasks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM archive_events`); err != nil {
		return fmt.Errorf("clear archived events: %w", err)
	}

	for _, event := range events {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO archive_events (name, display_date) VALUES (?, ?)`,
			event.Name, event.DisplayDate,
		); err != nil {
			return fmt.Errorf("archive event %s: %w", event.Name, err)
		}
		if err := insertTasks(ctx, tx, event.Name, event.Pending); err != nil {
			return err
		}
		if err := insertTasks(ctx, tx, event.Name, event.Completed); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

func insertTasks(ctx context.Context, tx *sql.Tx, event string, tasks []*model.Task) error {
	for position, task := range tasks {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO archive_tasks
				(event_name, position, text, completed, priority, due_at, category, tags, time_spent_ms, created_at, recurring, recurrence_pattern)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			event, position, task.Text, boolInt(task.Completed), string(task.Priority),
			nullTime(task.DueDate), task.Category, strings.Join(task.Tags, tagSeparator),
			task.TimeSpent.Milliseconds(), mustTime(task.CreatedAt),
			boolInt(task.Recurring), task.RecurrencePattern,
		)
		if err != nil {
			return fmt.Errorf("archive task %q: %w", task.Text, err)
		}
	}
	return nil
}

// Event reads an archived event back in full fidelity.
func (a *Archive) Event(ctx context.Context, name string) (*model.Event, error) {
	row := a.db.QueryRowContext(ctx,
		`SELECT name, display_date FROM archive_events WHERE name = ?`, name)
	event := &model.Event{}
	if err := row.Scan(&event.Name, &event.DisplayDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rows, err := a.db.QueryContext(ctx, `
		SELECT text, completed, priority, due_at, category, tags, time_spent_ms, created_at, recurring, recurrence_pattern
		FROM archive_tasks WHERE event_name = ?
		ORDER BY completed ASC, position ASC`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	event.Pending = make([]*model.Task, 0)
	event.Completed = make([]*model.Task, 0)
	for rows.Next() {
		task, scanErr := scanArchivedTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		if task.Completed {
			event.Completed = append(event.Completed, task)
		} else {
			event.Pending = append(event.Pending, task)
		}
	}
	return event, rows.Err()
}

// EventNames lists the archived event names in archive order.
func (a *Archive) EventNames(ctx context.Context) ([]string, error) {
	rows, err := a.db.QueryContext(ctx, `SELECT name FROM archive_events ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArchivedTask(s scanner) (*model.Task, error) {
	var (
		task        model.Task
		completed   int
		priority    string
		due         sql.NullString
		tags        string
		timeSpentMS int64
		created     string
		recurring   int
	)
	if err := s.Scan(&task.Text, &completed, &priority, &due, &task.Category, &tags,
		&timeSpentMS, &created, &recurring, &task.RecurrencePattern); err != nil {
		return nil, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return nil, err
	}
	dueAt, err := parseNullableTime(due)
	if err != nil {
		return nil, err
	}
	task.Completed = completed == 1
	task.Priority = model.Priority(priority)
	task.DueDate = dueAt
	task.TimeSpent = time.Duration(timeSpentMS) * time.Millisecond
	task.CreatedAt = createdAt
	task.Recurring = recurring == 1
	if tags == "" {
		task.Tags = []string{}
	} else {
		task.Tags = strings.Split(tags, tagSeparator)
	}
	return &task, nil
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
