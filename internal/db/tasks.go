package db

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/chris/timely/internal/domain"
)

type Task struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Priority          string `json:"priority"`
	EstimatedDuration int    `json:"estimated_duration"`
	Category          string `json:"category"`
	Completed         bool   `json:"completed"`
	CreatedAt         string `json:"created_at"`
	CompletedAt       string `json:"completed_at,omitempty"`
}

// Item returns the task as the assistant sees it.
func (t Task) Item() domain.TaskItem {
	return domain.TaskItem{
		Title:             t.Title,
		Priority:          t.Priority,
		EstimatedDuration: t.EstimatedDuration,
		Category:          t.Category,
	}
}

// Items converts stored tasks for the assistant, keeping order.
func Items(tasks []Task) []domain.TaskItem {
	out := make([]domain.TaskItem, len(tasks))
	for i, t := range tasks {
		out[i] = t.Item()
	}
	return out
}

// CreateTask stores a normalized task under a new UUID.
func (d *DB) CreateTask(item domain.TaskItem) (*Task, error) {
	t := &Task{
		ID:                uuid.NewString(),
		Title:             item.Title,
		Priority:          item.Priority,
		EstimatedDuration: item.EstimatedDuration,
		Category:          item.Category,
		CreatedAt:         now(),
	}
	_, err := d.conn.Exec(
		`INSERT INTO tasks (id, title, priority, estimated_duration, category, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Priority, t.EstimatedDuration, t.Category, t.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	return t, nil
}

// ListOpenTasks returns incomplete tasks, oldest first.
func (d *DB) ListOpenTasks() ([]Task, error) {
	rows, err := d.conn.Query(
		`SELECT id, title, priority, estimated_duration, category, completed,
			created_at, COALESCE(completed_at,'')
		FROM tasks WHERE completed = 0 ORDER BY created_at, rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	tasks := []Task{}
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Priority, &t.EstimatedDuration, &t.Category,
			&t.Completed, &t.CreatedAt, &t.CompletedAt); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// RecentlyCompleted returns the titles of the last n completed tasks,
// oldest first.
func (d *DB) RecentlyCompleted(n int) ([]string, error) {
	rows, err := d.conn.Query(
		`SELECT title FROM (
			SELECT title, completed_at, rowid FROM tasks WHERE completed = 1
			ORDER BY completed_at DESC, rowid DESC LIMIT ?
		) ORDER BY completed_at, rowid`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("querying completed tasks: %w", err)
	}
	defer rows.Close()

	titles := []string{}
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("scanning task title: %w", err)
		}
		titles = append(titles, title)
	}
	return titles, rows.Err()
}

// CompleteTask marks the open task whose ID starts with prefix as done.
// The prefix must match exactly one open task.
func (d *DB) CompleteTask(prefix string) (*Task, error) {
	rows, err := d.conn.Query(
		`SELECT id, title, priority, estimated_duration, category, created_at
		FROM tasks WHERE completed = 0 AND id LIKE ? || '%' LIMIT 2`, prefix,
	)
	if err != nil {
		return nil, fmt.Errorf("looking up task: %w", err)
	}
	var matches []Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Priority, &t.EstimatedDuration, &t.Category, &t.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		matches = append(matches, t)
	}
	rows.Close()

	switch {
	case prefix == "" || len(matches) == 0:
		return nil, fmt.Errorf("task %q: %w", prefix, ErrNotFound)
	case len(matches) > 1:
		return nil, fmt.Errorf("task prefix %q is ambiguous", prefix)
	}

	t := matches[0]
	t.Completed = true
	t.CompletedAt = now()
	if _, err := d.conn.Exec(
		"UPDATE tasks SET completed = 1, completed_at = ? WHERE id = ?",
		t.CompletedAt, t.ID,
	); err != nil {
		return nil, fmt.Errorf("completing task: %w", err)
	}
	return &t, nil
}

// CountOpenTasks is used by the health endpoint.
func (d *DB) CountOpenTasks() (int, error) {
	var n int
	err := d.conn.QueryRow("SELECT COUNT(*) FROM tasks WHERE completed = 0").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting tasks: %w", err)
	}
	return n, nil
}
