package state

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"telos/internal/logger"
	"telos/internal/model"
)

// Repository is the persistence surface the Manager needs.
type Repository interface {
	GetTasks(ctx context.Context, date string) ([]model.Task, error)
	GetTasksByDateRange(ctx context.Context, start, end string) ([]model.Task, error)
	AddTask(ctx context.Context, t model.Task) error
	UpdateTask(ctx context.Context, t model.Task) error
	DeleteTask(ctx context.Context, id string) error
	UpdateTasksOrder(ctx context.Context, tasks []model.Task) error
	GetGoals(ctx context.Context) ([]model.Goal, error)
	AddGoal(ctx context.Context, g model.Goal) error
	UpdateGoal(ctx context.Context, g model.Goal) error
	DeleteGoal(ctx context.Context, id string) error
	ToggleTaskCompletion(ctx context.Context, id string, at time.Time) error
	IncrementGoalCount(ctx context.Context, id string, at time.Time) error
}

// Manager owns the in-memory snapshot read by the view layer. Every command
// persists first and then reloads the snapshot from the store, so the
// snapshot never shows a state the store does not hold.
//
// Commands never return persistence errors to the caller: failures are
// logged, the snapshot keeps its last good value, and Err reports the
// failure until the next command succeeds.
type Manager struct {
	repo  Repository
	now   func() time.Time
	newID func() string

	// cmdMu serializes commands so a reload can never overwrite the
	// snapshot of a command issued after it.
	cmdMu sync.Mutex

	mu      sync.RWMutex
	snap    Snapshot
	lastErr error
}

type Option func(*Manager)

// WithClock replaces time.Now for date defaults and lastUpdate stamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(m *Manager) {
		m.newID = newID
	}
}

func WithView(view model.View) Option {
	return func(m *Manager) {
		if view.Valid() {
			m.snap.CurrentView = view
		}
	}
}

func New(repo Repository, opts ...Option) *Manager {
	m := &Manager{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
		snap: Snapshot{
			Tasks:       []model.Task{},
			Goals:       []model.Goal{},
			CurrentView: model.ViewDay,
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	m.snap.SelectedDate = model.TodayString(m.now())
	return m
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap.clone()
}

// Err returns the persistence failure of the last command, if any.
func (m *Manager) Err() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

// WeekRange returns the Monday-start week containing the selected date.
func (m *Manager) WeekRange() model.Range {
	return m.Snapshot().WeekRange()
}

// Load fills the snapshot from the store.
func (m *Manager) Load(ctx context.Context) {
	m.cmdMu.Lock()
	defer m.cmdMu.Unlock()
	m.finish("Load", m.reload(ctx))
}

func (m *Manager) AddTask(ctx context.Context, title, date string, opts ...model.TaskOption) {
	title = strings.TrimSpace(title)
	if title == "" || !model.ValidDate(date) {
		return
	}
	task := model.Task{Title: title, Date: date}
	model.Apply(&task, opts...)
	if task.StartTime != "" && !model.ValidStartTime(task.StartTime) {
		return
	}

	m.cmdMu.Lock()
	defer m.cmdMu.Unlock()

	err := func() error {
		onDate, err := m.repo.GetTasks(ctx, date)
		if err != nil {
			return err
		}
		task.ID = m.newID()
		task.Order = len(onDate)
		if err := m.repo.AddTask(ctx, task); err != nil {
			return err
		}
		logger.Info("State: task added", zap.String("task_id", task.ID), zap.String("date", date), zap.Int("order", task.Order))
		return m.reload(ctx)
	}()
	m.finish("AddTask", err, zap.String("date", date))
}

// UpdateTask replaces the stored record with t.
func (m *Manager) UpdateTask(ctx context.Context, t model.Task) {
	t.Title = strings.TrimSpace(t.Title)
	if t.ID == "" || !validTask(t) {
		return
	}

	m.cmdMu.Lock()
	defer m.cmdMu.Unlock()

	err := m.repo.UpdateTask(ctx, t)
	if err == nil {
		err = m.reload(ctx)
	}
	m.finish("UpdateTask", err, zap.String("task_id", t.ID))
}

func (m *Manager) DeleteTask(ctx context.Context, id string) {
	m.cmdMu.Lock()
	defer m.cmdMu.Unlock()

	err := m.repo.DeleteTask(ctx, id)
	if err == nil {
		err = m.reload(ctx)
	}
	m.finish("DeleteTask", err, zap.String("task_id", id))
}

// ToggleTaskCompletion flips the completed flag. Completing a task linked to
// a goal counts as one unit of progress on that goal; un-completing it does
// not take the unit back. The task and goal writes commit together.
func (m *Manager) ToggleTaskCompletion(ctx context.Context, id string) {
	m.cmdMu.Lock()
	defer m.cmdMu.Unlock()

	err := m.repo.ToggleTaskCompletion(ctx, id, m.now())
	if err == nil {
		err = m.reload(ctx)
	}
	m.finish("ToggleTaskCompletion", err, zap.String("task_id", id))
}

// UpdateTasksOrder persists the given tasks, carrying their new order
// values, as one batch.
func (m *Manager) UpdateTasksOrder(ctx context.Context, tasks []model.Task) {
	if len(tasks) == 0 {
		return
	}
	for _, t := range tasks {
		if t.ID == "" || !validTask(t) {
			return
		}
	}

	m.cmdMu.Lock()
	defer m.cmdMu.Unlock()

	err := m.repo.UpdateTasksOrder(ctx, tasks)
	if err == nil {
		err = m.reload(ctx)
	}
	m.finish("UpdateTasksOrder", err, zap.Int("tasks", len(tasks)))
}

// MoveTask moves the task at position from to position to within the
// display order of date and renumbers the whole day.
func (m *Manager) MoveTask(ctx context.Context, date string, from, to int) {
	if !model.ValidDate(date) || from == to || from < 0 || to < 0 {
		return
	}

	m.cmdMu.Lock()
	defer m.cmdMu.Unlock()

	err := func() error {
		day, err := m.repo.GetTasks(ctx, date)
		if err != nil {
			return err
		}
		if from >= len(day) || to >= len(day) {
			return nil
		}
		moved := day[from]
		day = append(day[:from], day[from+1:]...)
		day = append(day[:to], append([]model.Task{moved}, day[to:]...)...)
		for i := range day {
			day[i].Order = i
		}
		if err := m.repo.UpdateTasksOrder(ctx, day); err != nil {
			return err
		}
		return m.reload(ctx)
	}()
	m.finish("MoveTask", err, zap.String("date", date), zap.Int("from", from), zap.Int("to", to))
}

// AddGoal stores a new goal built from g. The ID is always generated.
func (m *Manager) AddGoal(ctx context.Context, g model.Goal) {
	g.Title = strings.TrimSpace(g.Title)
	if g.Title == "" {
		return
	}
	if g.Type == "" {
		g.Type = model.GoalCheckin
	}
	if !g.Type.Valid() || (g.Deadline != "" && !model.ValidDate(g.Deadline)) {
		return
	}
	if g.TargetCount < 1 {
		g.TargetCount = 1
	}
	if g.CurrentCount < 0 {
		g.CurrentCount = 0
	}
	if g.Color == "" {
		g.Color = model.DefaultGoalColor
	}

	m.cmdMu.Lock()
	defer m.cmdMu.Unlock()

	g.ID = m.newID()
	g.LastUpdate = m.now()
	err := m.repo.AddGoal(ctx, g)
	if err == nil {
		logger.Info("State: goal added", zap.String("goal_id", g.ID), zap.String("type", string(g.Type)))
		err = m.reload(ctx)
	}
	m.finish("AddGoal", err, zap.String("goal_id", g.ID))
}

// UpdateGoal replaces the stored record with g.
func (m *Manager) UpdateGoal(ctx context.Context, g model.Goal) {
	g.Title = strings.TrimSpace(g.Title)
	if g.ID == "" || g.Title == "" || !g.Type.Valid() || g.TargetCount < 1 || g.CurrentCount < 0 {
		return
	}
	if g.Deadline != "" && !model.ValidDate(g.Deadline) {
		return
	}

	m.cmdMu.Lock()
	defer m.cmdMu.Unlock()

	g.LastUpdate = m.now()
	err := m.repo.UpdateGoal(ctx, g)
	if err == nil {
		err = m.reload(ctx)
	}
	m.finish("UpdateGoal", err, zap.String("goal_id", g.ID))
}

// DeleteGoal removes the goal and detaches its tasks.
func (m *Manager) DeleteGoal(ctx context.Context, id string) {
	m.cmdMu.Lock()
	defer m.cmdMu.Unlock()

	err := m.repo.DeleteGoal(ctx, id)
	if err == nil {
		err = m.reload(ctx)
	}
	m.finish("DeleteGoal", err, zap.String("goal_id", id))
}

// IncrementGoalCount adds one unit of progress unless the goal is missing or
// already at its target.
func (m *Manager) IncrementGoalCount(ctx context.Context, id string) {
	m.cmdMu.Lock()
	defer m.cmdMu.Unlock()

	err := m.repo.IncrementGoalCount(ctx, id, m.now())
	if err == nil {
		err = m.reload(ctx)
	}
	m.finish("IncrementGoalCount", err, zap.String("goal_id", id))
}

func (m *Manager) SetView(ctx context.Context, view model.View) {
	if !view.Valid() {
		return
	}

	m.cmdMu.Lock()
	defer m.cmdMu.Unlock()

	err := m.reloadWith(ctx, func(next *Snapshot) {
		next.CurrentView = view
	})
	m.finish("SetView", err, zap.String("view", string(view)))
}

func (m *Manager) SetSelectedDate(ctx context.Context, date string) {
	if !model.ValidDate(date) {
		return
	}

	m.cmdMu.Lock()
	defer m.cmdMu.Unlock()

	err := m.reloadWith(ctx, func(next *Snapshot) {
		next.SelectedDate = date
	})
	m.finish("SetSelectedDate", err, zap.String("date", date))
}

// reload replaces goals and tasks with the store's current contents. Tasks
// are always the whole week of the selected date, whatever the view, so day
// and week views share one task set.
func (m *Manager) reload(ctx context.Context) error {
	return m.reloadWith(ctx, func(*Snapshot) {})
}

// reloadWith applies change to a copy of the snapshot, loads the data that
// copy needs and publishes it. On error the snapshot is untouched.
func (m *Manager) reloadWith(ctx context.Context, change func(*Snapshot)) error {
	m.mu.RLock()
	next := m.snap
	m.mu.RUnlock()
	change(&next)

	week := next.WeekRange()
	goals, err := m.repo.GetGoals(ctx)
	if err != nil {
		return err
	}
	tasks, err := m.repo.GetTasksByDateRange(ctx, week.Start, week.End)
	if err != nil {
		return err
	}
	next.Goals = goals
	next.Tasks = tasks

	m.mu.Lock()
	m.snap = next
	m.mu.Unlock()
	return nil
}

func (m *Manager) finish(command string, err error, fields ...zap.Field) {
	if err != nil {
		logger.Error("State: command failed", err, append(fields, zap.String("command", command))...)
	}
	m.mu.Lock()
	m.lastErr = err
	m.mu.Unlock()
}

func validTask(t model.Task) bool {
	if strings.TrimSpace(t.Title) == "" || !model.ValidDate(t.Date) {
		return false
	}
	return t.StartTime == "" || model.ValidStartTime(t.StartTime)
}
