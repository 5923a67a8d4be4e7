package repository

import (
	"context"
	"fmt"
	"time"

	"telos/internal/logger"
	"telos/internal/model"
	"telos/internal/storage"

	"go.uber.org/zap"
)

type Repository struct {
	store *storage.Store
}

func New(store *storage.Store) *Repository {
	return &Repository{store: store}
}

// GetTasks returns the tasks on date, or every task when date is empty.
func (r *Repository) GetTasks(ctx context.Context, date string) ([]model.Task, error) {
	if date == "" {
		return r.store.Tasks(ctx)
	}
	return r.store.TasksByIndex(ctx, storage.IndexByDate, date)
}

// GetTasksByDateRange returns tasks with start <= date <= end.
func (r *Repository) GetTasksByDateRange(ctx context.Context, start, end string) ([]model.Task, error) {
	if start > end {
		return []model.Task{}, nil
	}
	return r.store.TasksByDateRange(ctx, start, end)
}

func (r *Repository) GetTask(ctx context.Context, id string) (model.Task, error) {
	return r.store.Task(ctx, id)
}

func (r *Repository) AddTask(ctx context.Context, t model.Task) error {
	return r.store.PutTask(ctx, t)
}

func (r *Repository) UpdateTask(ctx context.Context, t model.Task) error {
	return r.store.PutTask(ctx, t)
}

func (r *Repository) DeleteTask(ctx context.Context, id string) error {
	return r.store.DeleteTask(ctx, id)
}

// UpdateTasksOrder writes every task in one transaction.
func (r *Repository) UpdateTasksOrder(ctx context.Context, tasks []model.Task) error {
	err := r.store.Update(ctx, func(tx *storage.Tx) error {
		for _, t := range tasks {
			if err := tx.PutTask(ctx, t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("update order of %d tasks: %w", len(tasks), err)
	}
	return nil
}

func (r *Repository) GetGoals(ctx context.Context) ([]model.Goal, error) {
	return r.store.Goals(ctx)
}

func (r *Repository) GetGoal(ctx context.Context, id string) (model.Goal, error) {
	return r.store.Goal(ctx, id)
}

func (r *Repository) AddGoal(ctx context.Context, g model.Goal) error {
	return r.store.PutGoal(ctx, g)
}

func (r *Repository) UpdateGoal(ctx context.Context, g model.Goal) error {
	return r.store.PutGoal(ctx, g)
}

// ToggleTaskCompletion flips the completed flag of task id. Completing a task
// linked to a goal also adds one unit of progress to that goal, stamped at;
// the task and the goal change in one transaction. A missing task is a no-op.
func (r *Repository) ToggleTaskCompletion(ctx context.Context, id string, at time.Time) error {
	err := r.store.Update(ctx, func(tx *storage.Tx) error {
		t, err := tx.Task(ctx, id)
		if storage.IsNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}
		t.Completed = !t.Completed
		if err := tx.PutTask(ctx, t); err != nil {
			return err
		}
		if t.Completed && t.HasGoal() {
			return incrementGoal(ctx, tx, t.GoalID, at)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("toggle task %s: %w", id, err)
	}
	return nil
}

// IncrementGoalCount adds one unit of progress to goal id unless it is
// missing or already at its target.
func (r *Repository) IncrementGoalCount(ctx context.Context, id string, at time.Time) error {
	err := r.store.Update(ctx, func(tx *storage.Tx) error {
		return incrementGoal(ctx, tx, id, at)
	})
	if err != nil {
		return fmt.Errorf("increment goal %s: %w", id, err)
	}
	return nil
}

func incrementGoal(ctx context.Context, tx *storage.Tx, id string, at time.Time) error {
	g, err := tx.Goal(ctx, id)
	if storage.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if g.Complete() {
		return nil
	}
	g.CurrentCount++
	g.LastUpdate = at
	return tx.PutGoal(ctx, g)
}

// DeleteGoal removes the goal and detaches every task that referenced it.
// Both collections change in one transaction.
func (r *Repository) DeleteGoal(ctx context.Context, id string) error {
	detached := 0
	err := r.store.Update(ctx, func(tx *storage.Tx) error {
		if err := tx.DeleteGoal(ctx, id); err != nil {
			return err
		}
		linked, err := tx.TasksByIndex(ctx, storage.IndexByGoal, id)
		if err != nil {
			return err
		}
		for _, t := range linked {
			t.GoalID = ""
			if err := tx.PutTask(ctx, t); err != nil {
				return err
			}
		}
		detached = len(linked)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete goal %s: %w", id, err)
	}
	logger.Info("Repository: goal deleted", zap.String("goal_id", id), zap.Int("tasks_detached", detached))
	return nil
}
