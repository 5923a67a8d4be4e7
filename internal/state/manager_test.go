package state_test

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telos/internal/model"
	"telos/internal/repository"
	"telos/internal/state"
	"telos/internal/storage"
)

// Wednesday; its week runs 2024-06-03 .. 2024-06-09.
var fixedNow = time.Date(2024, 6, 5, 9, 0, 0, 0, time.UTC)

type fixture struct {
	path  string
	store *storage.Store
	repo  *repository.Repository
	m     *state.Manager
}

func newFixture(t *testing.T, opts ...state.Option) fixture {
	t.Helper()
	path := filepath.Join(t.TempDir(), "telos.db")
	s, err := storage.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	repo := repository.New(s)
	opts = append([]state.Option{state.WithClock(func() time.Time { return fixedNow })}, opts...)
	m := state.New(repo, opts...)
	m.Load(context.Background())
	require.NoError(t, m.Err())
	return fixture{path: path, store: s, repo: repo, m: m}
}

func findTask(t *testing.T, snap state.Snapshot, title string) model.Task {
	t.Helper()
	for _, task := range snap.Tasks {
		if task.Title == title {
			return task
		}
	}
	t.Fatalf("task %q not in snapshot", title)
	return model.Task{}
}

func findGoal(t *testing.T, snap state.Snapshot, title string) model.Goal {
	t.Helper()
	for _, g := range snap.Goals {
		if g.Title == title {
			return g
		}
	}
	t.Fatalf("goal %q not in snapshot", title)
	return model.Goal{}
}

func TestNew_Defaults(t *testing.T) {
	f := newFixture(t)
	snap := f.m.Snapshot()

	assert.Equal(t, "2024-06-05", snap.SelectedDate)
	assert.Equal(t, model.ViewDay, snap.CurrentView)
	assert.Empty(t, snap.Tasks)
	assert.Empty(t, snap.Goals)
	assert.Equal(t, model.Range{Start: "2024-06-03", End: "2024-06-09"}, f.m.WeekRange())
}

func TestNew_WithView(t *testing.T) {
	f := newFixture(t, state.WithView(model.ViewWeek))
	assert.Equal(t, model.ViewWeek, f.m.Snapshot().CurrentView)
}

func TestAddTask_OrderIsPreInsertionCount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for i, title := range []string{"first", "second", "third"} {
		before, err := f.repo.GetTasks(ctx, "2024-06-05")
		require.NoError(t, err)
		require.Len(t, before, i)

		f.m.AddTask(ctx, title, "2024-06-05")
		require.NoError(t, f.m.Err())

		after, err := f.repo.GetTasks(ctx, "2024-06-05")
		require.NoError(t, err)
		require.Len(t, after, i+1)
		assert.Equal(t, title, after[i].Title)
		assert.Equal(t, i, after[i].Order)
	}

	// Another date starts its own partition.
	f.m.AddTask(ctx, "other day", "2024-06-06")
	assert.Equal(t, 0, findTask(t, f.m.Snapshot(), "other day").Order)
}

func TestAddTask_Fields(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, state.WithIDGenerator(func() string { return "fixed-id" }))

	f.m.AddTask(ctx, "  Gym  ", "2024-06-04",
		model.WithGoal("g1"),
		model.WithStartTime("18:30"),
		model.WithDetails("leg day"),
	)
	require.NoError(t, f.m.Err())

	got := findTask(t, f.m.Snapshot(), "Gym")
	assert.Equal(t, model.Task{
		ID:        "fixed-id",
		Title:     "Gym",
		Date:      "2024-06-04",
		StartTime: "18:30",
		Details:   "leg day",
		GoalID:    "g1",
	}, got)
}

func TestAddTask_GeneratesUniqueIDs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.m.AddTask(ctx, "a", "2024-06-05")
	f.m.AddTask(ctx, "b", "2024-06-05")

	snap := f.m.Snapshot()
	require.Len(t, snap.Tasks, 2)
	assert.NotEmpty(t, snap.Tasks[0].ID)
	assert.NotEqual(t, snap.Tasks[0].ID, snap.Tasks[1].ID)
}

func TestAddTask_ValidationIsSilentNoop(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.m.AddTask(ctx, "   ", "2024-06-05")
	f.m.AddTask(ctx, "bad date", "06/05/2024")
	f.m.AddTask(ctx, "bad time", "2024-06-05", model.WithStartTime("25:99"))

	assert.NoError(t, f.m.Err())
	all, err := f.repo.GetTasks(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSnapshot_OnlySelectedWeek(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.m.AddTask(ctx, "last week", "2024-06-02")
	f.m.AddTask(ctx, "monday", "2024-06-03")
	f.m.AddTask(ctx, "sunday", "2024-06-09")
	f.m.AddTask(ctx, "next week", "2024-06-10")

	snap := f.m.Snapshot()
	titles := []string{}
	for _, task := range snap.Tasks {
		titles = append(titles, task.Title)
	}
	assert.ElementsMatch(t, []string{"monday", "sunday"}, titles)
}

func TestSnapshot_IsACopy(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.m.AddTask(ctx, "original", "2024-06-05")

	snap := f.m.Snapshot()
	snap.Tasks[0].Title = "mutated"

	assert.Equal(t, "original", f.m.Snapshot().Tasks[0].Title)
}

func TestUpdateTask(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.m.AddTask(ctx, "draft", "2024-06-05", model.WithDetails("old"))
	task := findTask(t, f.m.Snapshot(), "draft")

	task.Title = "final"
	task.Details = ""
	task.StartTime = "07:00"
	f.m.UpdateTask(ctx, task)
	require.NoError(t, f.m.Err())

	got, err := f.repo.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", got.Title)
	assert.Empty(t, got.Details)
	assert.Equal(t, "07:00", got.StartTime)

	// Empty title is rejected without touching the store.
	task.Title = ""
	f.m.UpdateTask(ctx, task)
	got, err = f.repo.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", got.Title)
}

func TestDeleteTask(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.m.AddTask(ctx, "doomed", "2024-06-05")
	task := findTask(t, f.m.Snapshot(), "doomed")

	f.m.DeleteTask(ctx, task.ID)
	require.NoError(t, f.m.Err())
	assert.Empty(t, f.m.Snapshot().Tasks)

	f.m.DeleteTask(ctx, task.ID)
	assert.NoError(t, f.m.Err())
}

func TestToggleTaskCompletion_IncrementsGoalOnlyOnCompletion(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.m.AddGoal(ctx, model.Goal{Title: "Run 3x", Type: model.GoalCheckin, TargetCount: 3})
	goal := findGoal(t, f.m.Snapshot(), "Run 3x")
	f.m.AddTask(ctx, "run", "2024-06-05", model.WithGoal(goal.ID))
	task := findTask(t, f.m.Snapshot(), "run")

	f.m.ToggleTaskCompletion(ctx, task.ID)
	require.NoError(t, f.m.Err())
	snap := f.m.Snapshot()
	assert.True(t, findTask(t, snap, "run").Completed)
	assert.Equal(t, 1, findGoal(t, snap, "Run 3x").CurrentCount)

	f.m.ToggleTaskCompletion(ctx, task.ID)
	snap = f.m.Snapshot()
	assert.False(t, findTask(t, snap, "run").Completed)
	assert.Equal(t, 1, findGoal(t, snap, "Run 3x").CurrentCount)

	// Completing again counts again.
	f.m.ToggleTaskCompletion(ctx, task.ID)
	assert.Equal(t, 2, findGoal(t, f.m.Snapshot(), "Run 3x").CurrentCount)
}

func TestToggleTaskCompletion_GoalWriteFailureKeepsTaskOpen(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.m.AddGoal(ctx, model.Goal{Title: "Run 3x", Type: model.GoalCheckin, TargetCount: 3})
	goal := findGoal(t, f.m.Snapshot(), "Run 3x")
	f.m.AddTask(ctx, "run", "2024-06-05", model.WithGoal(goal.ID))
	task := findTask(t, f.m.Snapshot(), "run")

	restore := rejectGoalWrites(t, f.path)
	f.m.ToggleTaskCompletion(ctx, task.ID)
	require.Error(t, f.m.Err())

	assert.False(t, findTask(t, f.m.Snapshot(), "run").Completed)
	stored, err := f.repo.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, stored.Completed)
	storedGoal, err := f.repo.GetGoal(ctx, goal.ID)
	require.NoError(t, err)
	assert.Zero(t, storedGoal.CurrentCount)

	// Retrying once the store accepts writes completes the task and counts it.
	restore()
	f.m.ToggleTaskCompletion(ctx, task.ID)
	require.NoError(t, f.m.Err())
	snap := f.m.Snapshot()
	assert.True(t, findTask(t, snap, "run").Completed)
	assert.Equal(t, 1, findGoal(t, snap, "Run 3x").CurrentCount)
}

func TestToggleTaskCompletion_WithoutGoal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.m.AddGoal(ctx, model.Goal{Title: "Read", TargetCount: 2})
	f.m.AddTask(ctx, "dishes", "2024-06-05")
	task := findTask(t, f.m.Snapshot(), "dishes")

	f.m.ToggleTaskCompletion(ctx, task.ID)
	snap := f.m.Snapshot()
	assert.True(t, findTask(t, snap, "dishes").Completed)
	assert.Zero(t, findGoal(t, snap, "Read").CurrentCount)
}

func TestToggleTaskCompletion_MissingTaskIsNoop(t *testing.T) {
	f := newFixture(t)
	f.m.ToggleTaskCompletion(context.Background(), "missing")
	assert.NoError(t, f.m.Err())
}

func TestToggleTaskCompletion_OutsideLoadedWeek(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.m.AddTask(ctx, "far away", "2024-07-01")
	far, err := f.repo.GetTasks(ctx, "2024-07-01")
	require.NoError(t, err)
	require.Len(t, far, 1)

	f.m.ToggleTaskCompletion(ctx, far[0].ID)

	got, err := f.repo.GetTask(ctx, far[0].ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)
}

func TestIncrementGoalCount_RoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.m.AddGoal(ctx, model.Goal{Title: "Run 3x", Type: model.GoalCheckin, TargetCount: 3, CurrentCount: 0})
	goal := findGoal(t, f.m.Snapshot(), "Run 3x")

	for i := 0; i < 3; i++ {
		f.m.IncrementGoalCount(ctx, goal.ID)
	}
	require.NoError(t, f.m.Err())

	got := findGoal(t, f.m.Snapshot(), "Run 3x")
	assert.Equal(t, 3, got.CurrentCount)
	assert.True(t, got.Complete())

	// At target: unchanged.
	f.m.IncrementGoalCount(ctx, goal.ID)
	stored, err := f.repo.GetGoal(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.CurrentCount)
}

func TestIncrementGoalCount_NeverOvershoots(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.m.AddGoal(ctx, model.Goal{Title: "Once", TargetCount: 1})
	goal := findGoal(t, f.m.Snapshot(), "Once")

	for i := 0; i < 5; i++ {
		f.m.IncrementGoalCount(ctx, goal.ID)
		assert.LessOrEqual(t, findGoal(t, f.m.Snapshot(), "Once").CurrentCount, goal.TargetCount)
	}
}

func TestIncrementGoalCount_StampsLastUpdate(t *testing.T) {
	ctx := context.Background()
	clock := fixedNow
	f := newFixture(t, state.WithClock(func() time.Time { return clock }))
	f.m.AddGoal(ctx, model.Goal{Title: "Stretch", TargetCount: 5})
	goal := findGoal(t, f.m.Snapshot(), "Stretch")

	clock = fixedNow.Add(time.Hour)
	f.m.IncrementGoalCount(ctx, goal.ID)

	got := findGoal(t, f.m.Snapshot(), "Stretch")
	assert.True(t, clock.Equal(got.LastUpdate))
}

func TestIncrementGoalCount_MissingGoal(t *testing.T) {
	f := newFixture(t)
	f.m.IncrementGoalCount(context.Background(), "missing")
	assert.NoError(t, f.m.Err())
	assert.Empty(t, f.m.Snapshot().Goals)
}

func TestAddGoal_Defaults(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.m.AddGoal(ctx, model.Goal{Title: "Trip", Type: model.GoalCustom, Deadline: "2024-07-01", CurrentCount: -4})
	got := findGoal(t, f.m.Snapshot(), "Trip")

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, model.GoalCustom, got.Type)
	assert.Equal(t, 1, got.TargetCount)
	assert.Zero(t, got.CurrentCount)
	assert.Equal(t, model.DefaultGoalColor, got.Color)
	assert.Equal(t, "2024-07-01", got.Deadline)

	f.m.AddGoal(ctx, model.Goal{Title: "Plain"})
	assert.Equal(t, model.GoalCheckin, findGoal(t, f.m.Snapshot(), "Plain").Type)
}

func TestAddGoal_ValidationIsSilentNoop(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.m.AddGoal(ctx, model.Goal{Title: " "})
	f.m.AddGoal(ctx, model.Goal{Title: "x", Type: "weekly"})
	f.m.AddGoal(ctx, model.Goal{Title: "x", Deadline: "soon"})

	assert.NoError(t, f.m.Err())
	assert.Empty(t, f.m.Snapshot().Goals)
}

func TestUpdateGoal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.m.AddGoal(ctx, model.Goal{Title: "Read", TargetCount: 10})
	goal := findGoal(t, f.m.Snapshot(), "Read")

	goal.Title = "Read more"
	goal.TargetCount = 20
	goal.Color = "#1CB0F6"
	f.m.UpdateGoal(ctx, goal)
	require.NoError(t, f.m.Err())

	got := findGoal(t, f.m.Snapshot(), "Read more")
	assert.Equal(t, 20, got.TargetCount)
	assert.Equal(t, "#1CB0F6", got.Color)
	assert.Len(t, f.m.Snapshot().Goals, 1)
}

func TestDeleteGoal_DetachesTasks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.m.AddGoal(ctx, model.Goal{Title: "Run", TargetCount: 3})
	goal := findGoal(t, f.m.Snapshot(), "Run")
	f.m.AddTask(ctx, "run mon", "2024-06-03", model.WithGoal(goal.ID))
	f.m.AddTask(ctx, "run far", "2024-08-01", model.WithGoal(goal.ID))
	f.m.AddTask(ctx, "unrelated", "2024-06-04")

	f.m.DeleteGoal(ctx, goal.ID)
	require.NoError(t, f.m.Err())

	snap := f.m.Snapshot()
	assert.Empty(t, snap.Goals)
	assert.Empty(t, findTask(t, snap, "run mon").GoalID)

	all, err := f.repo.GetTasks(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, task := range all {
		assert.NotEqual(t, goal.ID, task.GoalID)
	}
}

func TestUpdateTasksOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for _, title := range []string{"a", "b", "c"} {
		f.m.AddTask(ctx, title, "2024-06-05")
	}
	day := f.m.Snapshot().DayTasks("2024-06-05")
	require.Len(t, day, 3)

	reordered := []model.Task{day[2], day[0], day[1]}
	for i := range reordered {
		reordered[i].Order = i
	}
	f.m.UpdateTasksOrder(ctx, reordered)
	require.NoError(t, f.m.Err())

	got := f.m.Snapshot().DayTasks("2024-06-05")
	assert.Equal(t, []string{"c", "a", "b"}, titles(got))
	for i, task := range got {
		assert.Equal(t, i, task.Order)
	}
}

func TestMoveTask(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for _, title := range []string{"a", "b", "c", "d"} {
		f.m.AddTask(ctx, title, "2024-06-05")
	}

	f.m.MoveTask(ctx, "2024-06-05", 3, 1)
	require.NoError(t, f.m.Err())
	assert.Equal(t, []string{"a", "d", "b", "c"}, titles(f.m.Snapshot().DayTasks("2024-06-05")))

	f.m.MoveTask(ctx, "2024-06-05", 0, 3)
	day := f.m.Snapshot().DayTasks("2024-06-05")
	assert.Equal(t, []string{"d", "b", "c", "a"}, titles(day))
	for i, task := range day {
		assert.Equal(t, i, task.Order)
	}

	// Out of range positions are ignored.
	f.m.MoveTask(ctx, "2024-06-05", 0, 9)
	assert.Equal(t, []string{"d", "b", "c", "a"}, titles(f.m.Snapshot().DayTasks("2024-06-05")))
}

func TestMoveTask_InvalidDateIsNoop(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.m.AddTask(ctx, "a", "2024-06-03")
	f.m.AddTask(ctx, "b", "2024-06-04")
	f.m.AddTask(ctx, "c", "2024-06-05")

	for _, date := range []string{"", "not-a-date", "2024-6-5"} {
		f.m.MoveTask(ctx, date, 0, 2)
		assert.NoError(t, f.m.Err())
	}

	all, err := f.repo.GetTasks(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, task := range all {
		assert.Zero(t, task.Order, task.Title)
	}
}

func TestSnapshot_WeekRangeOfInvalidDate(t *testing.T) {
	snap := state.Snapshot{SelectedDate: "not-a-date"}
	assert.Equal(t, model.Range{}, snap.WeekRange())
	assert.Empty(t, snap.WeekDays())
}

func TestSetSelectedDate_ReloadsWeek(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.m.AddTask(ctx, "this week", "2024-06-05")
	f.m.AddTask(ctx, "month edge", "2024-05-31")

	f.m.SetSelectedDate(ctx, "2024-05-29")
	require.NoError(t, f.m.Err())

	snap := f.m.Snapshot()
	assert.Equal(t, "2024-05-29", snap.SelectedDate)
	assert.Equal(t, model.Range{Start: "2024-05-27", End: "2024-06-02"}, f.m.WeekRange())
	assert.Equal(t, []string{"month edge"}, titles(snap.Tasks))
	assert.Equal(t, []string{
		"2024-05-27", "2024-05-28", "2024-05-29", "2024-05-30",
		"2024-05-31", "2024-06-01", "2024-06-02",
	}, snap.WeekDays())

	f.m.SetSelectedDate(ctx, "not-a-date")
	assert.Equal(t, "2024-05-29", f.m.Snapshot().SelectedDate)
}

func TestSetView(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.m.AddTask(ctx, "monday", "2024-06-03")
	f.m.AddTask(ctx, "friday", "2024-06-07")

	f.m.SetView(ctx, model.ViewWeek)
	snap := f.m.Snapshot()
	assert.Equal(t, model.ViewWeek, snap.CurrentView)
	assert.Len(t, snap.Tasks, 2)

	// Day view keeps the whole week loaded.
	f.m.SetView(ctx, model.ViewDay)
	snap = f.m.Snapshot()
	assert.Equal(t, model.ViewDay, snap.CurrentView)
	assert.Len(t, snap.Tasks, 2)

	f.m.SetView(ctx, model.View("menu"))
	assert.Equal(t, model.ViewDay, f.m.Snapshot().CurrentView)
}

func TestPersistenceFailure_KeepsLastGoodSnapshot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.m.AddGoal(ctx, model.Goal{Title: "Run", TargetCount: 3})
	f.m.AddTask(ctx, "kept", "2024-06-05")
	before := f.m.Snapshot()
	task := findTask(t, before, "kept")
	goal := findGoal(t, before, "Run")

	require.NoError(t, f.store.Close())

	commands := map[string]func(){
		"AddTask":        func() { f.m.AddTask(ctx, "lost", "2024-06-05") },
		"UpdateTask":     func() { task.Title = "changed"; f.m.UpdateTask(ctx, task) },
		"DeleteTask":     func() { f.m.DeleteTask(ctx, task.ID) },
		"Toggle":         func() { f.m.ToggleTaskCompletion(ctx, task.ID) },
		"Order":          func() { f.m.UpdateTasksOrder(ctx, []model.Task{task}) },
		"AddGoal":        func() { f.m.AddGoal(ctx, model.Goal{Title: "lost"}) },
		"UpdateGoal":     func() { f.m.UpdateGoal(ctx, goal) },
		"DeleteGoal":     func() { f.m.DeleteGoal(ctx, goal.ID) },
		"Increment":      func() { f.m.IncrementGoalCount(ctx, goal.ID) },
		"SetSelectedDay": func() { f.m.SetSelectedDate(ctx, "2024-07-01") },
		"SetView":        func() { f.m.SetView(ctx, model.ViewWeek) },
	}
	for name, run := range commands {
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, run)
			assert.Error(t, f.m.Err())
			assert.Equal(t, before, f.m.Snapshot())
		})
	}
}

func TestErr_ClearedBySuccessfulCommand(t *testing.T) {
	ctx := context.Background()
	failing := &failingRepo{Repository: nil}
	m := state.New(failing, state.WithClock(func() time.Time { return fixedNow }))

	m.Load(ctx)
	assert.Error(t, m.Err())

	failing.ok = true
	m.Load(ctx)
	assert.NoError(t, m.Err())
}

func TestCommands_AreSerialized(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.m.AddTask(ctx, fmt.Sprintf("task %02d", i), "2024-06-05")
		}()
	}
	wg.Wait()
	require.NoError(t, f.m.Err())

	day := f.m.Snapshot().DayTasks("2024-06-05")
	require.Len(t, day, n)
	for i, task := range day {
		assert.Equal(t, i, task.Order)
	}
}

type failingRepo struct {
	state.Repository
	ok bool
}

func (r *failingRepo) GetGoals(context.Context) ([]model.Goal, error) {
	if !r.ok {
		return nil, fmt.Errorf("storage disabled")
	}
	return []model.Goal{}, nil
}

func (r *failingRepo) GetTasksByDateRange(context.Context, string, string) ([]model.Task, error) {
	return []model.Task{}, nil
}

// rejectGoalWrites makes every write to the goals table fail until the
// returned func is called.
func rejectGoalWrites(t *testing.T, path string) func() {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	for _, stmt := range []string{
		`CREATE TRIGGER reject_goal_insert BEFORE INSERT ON goals BEGIN SELECT RAISE(ABORT, 'write rejected'); END`,
		`CREATE TRIGGER reject_goal_update BEFORE UPDATE ON goals BEGIN SELECT RAISE(ABORT, 'write rejected'); END`,
	} {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return func() {
		_, err := db.Exec(`DROP TRIGGER reject_goal_insert`)
		require.NoError(t, err)
		_, err = db.Exec(`DROP TRIGGER reject_goal_update`)
		require.NoError(t, err)
	}
}

func titles(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}
