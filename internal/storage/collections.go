package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"telos/internal/model"
)

// Index names a secondary index over the tasks collection.
type Index string

const (
	IndexByDate Index = "by-date"
	// IndexByGoal is sparse: tasks without a goal are not in it.
	IndexByGoal Index = "by-goal"
)

func (i Index) column() (string, error) {
	switch i {
	case IndexByDate:
		return "date", nil
	case IndexByGoal:
		return "goal_id", nil
	}
	return "", fmt.Errorf("unknown index %q", string(i))
}

type collections struct {
	q querier
}

const taskColumns = `id, title, completed, date, start_time, details, goal_id, sort_order`

// Tasks come back in display order: date, then order, then insertion.
const taskOrder = ` ORDER BY date, sort_order, rowid;`

func (c collections) PutTask(ctx context.Context, t model.Task) error {
	_, err := c.q.ExecContext(ctx, `
INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	title = excluded.title,
	completed = excluded.completed,
	date = excluded.date,
	start_time = excluded.start_time,
	details = excluded.details,
	goal_id = excluded.goal_id,
	sort_order = excluded.sort_order;`,
		t.ID, t.Title, boolToInt(t.Completed), t.Date,
		nullString(t.StartTime), nullString(t.Details), nullString(t.GoalID), t.Order)
	if err != nil {
		return fmt.Errorf("put task %s: %w", t.ID, err)
	}
	return nil
}

func (c collections) DeleteTask(ctx context.Context, id string) error {
	if _, err := c.q.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?;`, id); err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	return nil
}

func (c collections) Task(ctx context.Context, id string) (model.Task, error) {
	tasks, err := c.queryTasks(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?;`, id)
	if err != nil {
		return model.Task{}, err
	}
	if len(tasks) == 0 {
		return model.Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return tasks[0], nil
}

func (c collections) Tasks(ctx context.Context) ([]model.Task, error) {
	return c.queryTasks(ctx, `SELECT `+taskColumns+` FROM tasks`+taskOrder)
}

func (c collections) TasksByIndex(ctx context.Context, idx Index, value string) ([]model.Task, error) {
	col, err := idx.column()
	if err != nil {
		return nil, err
	}
	return c.queryTasks(ctx, `SELECT `+taskColumns+` FROM tasks WHERE `+col+` = ?`+taskOrder, value)
}

// TasksByDateRange scans the by-date index for lo <= date <= hi.
func (c collections) TasksByDateRange(ctx context.Context, lo, hi string) ([]model.Task, error) {
	return c.queryTasks(ctx, `SELECT `+taskColumns+` FROM tasks WHERE date >= ? AND date <= ?`+taskOrder, lo, hi)
}

func (c collections) queryTasks(ctx context.Context, query string, args ...any) ([]model.Task, error) {
	rows, err := c.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		var completed int
		var startTime, details, goalID sql.NullString
		if err := rows.Scan(&t.ID, &t.Title, &completed, &t.Date, &startTime, &details, &goalID, &t.Order); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t.Completed = completed == 1
		t.StartTime = startTime.String
		t.Details = details.String
		t.GoalID = goalID.String
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	return tasks, nil
}

const goalColumns = `id, title, type, target_count, current_count, deadline, color, last_update`

func (c collections) PutGoal(ctx context.Context, g model.Goal) error {
	lastUpdate := sql.NullString{}
	if !g.LastUpdate.IsZero() {
		lastUpdate = sql.NullString{String: g.LastUpdate.UTC().Format(time.RFC3339Nano), Valid: true}
	}
	_, err := c.q.ExecContext(ctx, `
INSERT INTO goals (`+goalColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	title = excluded.title,
	type = excluded.type,
	target_count = excluded.target_count,
	current_count = excluded.current_count,
	deadline = excluded.deadline,
	color = excluded.color,
	last_update = excluded.last_update;`,
		g.ID, g.Title, string(g.Type), g.TargetCount, g.CurrentCount,
		nullString(g.Deadline), g.Color, lastUpdate)
	if err != nil {
		return fmt.Errorf("put goal %s: %w", g.ID, err)
	}
	return nil
}

func (c collections) DeleteGoal(ctx context.Context, id string) error {
	if _, err := c.q.ExecContext(ctx, `DELETE FROM goals WHERE id = ?;`, id); err != nil {
		return fmt.Errorf("delete goal %s: %w", id, err)
	}
	return nil
}

func (c collections) Goal(ctx context.Context, id string) (model.Goal, error) {
	goals, err := c.queryGoals(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = ?;`, id)
	if err != nil {
		return model.Goal{}, err
	}
	if len(goals) == 0 {
		return model.Goal{}, fmt.Errorf("goal %s: %w", id, ErrNotFound)
	}
	return goals[0], nil
}

func (c collections) Goals(ctx context.Context) ([]model.Goal, error) {
	return c.queryGoals(ctx, `SELECT `+goalColumns+` FROM goals ORDER BY rowid;`)
}

func (c collections) queryGoals(ctx context.Context, query string, args ...any) ([]model.Goal, error) {
	rows, err := c.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query goals: %w", err)
	}
	defer rows.Close()

	goals := []model.Goal{}
	for rows.Next() {
		var g model.Goal
		var goalType string
		var deadline, lastUpdate sql.NullString
		if err := rows.Scan(&g.ID, &g.Title, &goalType, &g.TargetCount, &g.CurrentCount, &deadline, &g.Color, &lastUpdate); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		g.Type = model.GoalType(goalType)
		g.Deadline = deadline.String
		if lastUpdate.Valid {
			if parsed, err := time.Parse(time.RFC3339Nano, lastUpdate.String); err == nil {
				g.LastUpdate = parsed
			}
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query goals: %w", err)
	}
	return goals, nil
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
