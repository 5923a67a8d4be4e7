package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"telos/internal/config"
	"telos/internal/model"
	"telos/internal/state"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeForm
)

type focus int

const (
	focusTasks focus = iota
	focusGoals
)

type pendingDelete struct {
	goal  bool
	id    string
	title string
}

type Model struct {
	state      *state.Manager
	cfg        config.Config
	snap       state.Snapshot
	cursor     int
	goalCursor int
	focus      focus
	mode       mode
	input      textinput.Model
	bar        progress.Model
	status     string
	confirmDel bool
	pendingDel *pendingDelete
	form       *formState
	now        func() time.Time
}

func New(manager *state.Manager, cfg config.Config) Model {
	ti := textinput.New()
	ti.Placeholder = "Task title"
	ti.CharLimit = 256
	ti.Width = 40

	return Model{
		state:  manager,
		cfg:    cfg,
		snap:   manager.Snapshot(),
		input:  ti,
		bar:    progress.New(progress.WithWidth(20), progress.WithoutPercentage()),
		mode:   modeList,
		status: "Press 'a' to add, space to toggle, 'd' to delete, 'v' to switch view.",
		now:    time.Now,
	}
}

func Run(manager *state.Manager, cfg config.Config, configPath string, firstLaunch bool) error {
	manager.Load(context.Background())
	if err := manager.Err(); err != nil {
		return err
	}
	m := New(manager, cfg)
	if firstLaunch {
		m.status = fmt.Sprintf("Created default config at %s", configPath)
	}
	program := tea.NewProgram(m)
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.form != nil {
			return m.updateFormMode(msg.String(), msg)
		}
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
		if w := msg.Width / 4; w > 10 {
			m.bar.Width = w
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if m.mode == modeAdd {
		return m.updateAddMode(key, msg)
	}
	return m.updateListMode(key)
}

// sync pulls the manager's snapshot after a command and reports the outcome.
func (m *Model) sync(action, success string) {
	m.snap = m.state.Snapshot()
	if err := m.state.Err(); err != nil {
		m.status = fmt.Sprintf("%s failed: %v", action, err)
	} else {
		m.status = success
	}
	m.cursor = clampCursor(m.cursor, len(m.visibleTasks()))
	m.goalCursor = clampCursor(m.goalCursor, len(m.snap.Goals))
}

func (m Model) updateAddMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm:
		title := strings.TrimSpace(m.input.Value())
		if title == "" {
			m.status = "Title cannot be empty"
			return m, nil
		}
		date := m.targetDate()
		m.state.AddTask(context.Background(), title, date)
		m.sync("save", "Added task")
		if m.state.Err() == nil {
			m.cursor = m.lastIndexOn(date)
		}
		m.input.SetValue("")
		m.input.Blur()
		m.mode = modeList
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	keys := m.cfg.Keys
	switch key {
	case "ctrl+c", keys.Quit:
		return m, tea.Quit
	case keys.Down, "down":
		if m.focus == focusGoals {
			m.goalCursor = clampCursor(m.goalCursor+1, len(m.snap.Goals))
		} else {
			m.cursor = clampCursor(m.cursor+1, len(m.visibleTasks()))
		}
	case keys.Up, "up":
		if m.focus == focusGoals {
			m.goalCursor = clampCursor(m.goalCursor-1, len(m.snap.Goals))
		} else {
			m.cursor = clampCursor(m.cursor-1, len(m.visibleTasks()))
		}
	case keys.FocusGoals:
		if m.focus == focusGoals {
			m.focus = focusTasks
			m.status = "Tasks"
		} else {
			m.focus = focusGoals
			m.status = "Goals"
		}
	case keys.Add:
		if m.focus == focusGoals {
			return m.startGoalForm(nil)
		}
		m.mode = modeAdd
		m.input.Placeholder = "Task title"
		m.input.Focus()
		m.status = fmt.Sprintf("Add task for %s: type a title and press Enter", m.targetDate())
	case keys.AddGoal:
		return m.startGoalForm(nil)
	case keys.Toggle:
		t, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		m.state.ToggleTaskCompletion(ctx, t.ID)
		m.sync("toggle", "Toggled task")
	case keys.IncrementGoal:
		g, ok := m.selectedGoal()
		if !ok {
			return m, nil
		}
		if g.Complete() {
			m.status = fmt.Sprintf("%q is already complete", g.Title)
			return m, nil
		}
		m.state.IncrementGoalCount(ctx, g.ID)
		m.sync("check-in", "Checked in")
	case keys.Delete:
		if m.focus == focusGoals {
			g, ok := m.selectedGoal()
			if !ok {
				return m, nil
			}
			m.pendingDel = &pendingDelete{goal: true, id: g.ID, title: g.Title}
		} else {
			t, ok := m.selectedTask()
			if !ok {
				return m, nil
			}
			m.pendingDel = &pendingDelete{id: t.ID, title: t.Title}
		}
		m.confirmDel = true
		m.status = fmt.Sprintf("Delete \"%s\"? y/n", m.pendingDel.title)
	case keys.Detail:
		m.status = m.detail()
	case keys.Edit:
		if m.focus == focusGoals {
			g, ok := m.selectedGoal()
			if !ok {
				m.status = "No goals to edit"
				return m, nil
			}
			return m.startGoalForm(&g)
		}
		t, ok := m.selectedTask()
		if !ok {
			m.status = "No tasks to edit"
			return m, nil
		}
		return m.startForm(newTaskForm(t, m.snap))
	case keys.MoveUp, keys.MoveDown:
		return m.moveSelected(key == keys.MoveDown)
	case keys.PrevDay, "left":
		return m.shiftDate(-1)
	case keys.NextDay, "right":
		return m.shiftDate(1)
	case keys.Today:
		m.state.SetSelectedDate(ctx, model.TodayString(m.now()))
		m.cursor = 0
		m.sync("reload", "Today")
	case keys.SwitchView:
		m.state.SetView(ctx, m.snap.CurrentView.Toggle())
		m.cursor = 0
		m.sync("reload", fmt.Sprintf("%s view", m.state.Snapshot().CurrentView))
	}
	return m, nil
}

func (m Model) moveSelected(down bool) (tea.Model, tea.Cmd) {
	if m.focus != focusTasks {
		return m, nil
	}
	if m.snap.CurrentView != model.ViewDay {
		m.status = "Reorder tasks from the day view"
		return m, nil
	}
	tasks := m.visibleTasks()
	if len(tasks) == 0 {
		return m, nil
	}
	to := m.cursor - 1
	if down {
		to = m.cursor + 1
	}
	if to < 0 || to >= len(tasks) {
		return m, nil
	}
	m.state.MoveTask(context.Background(), m.snap.SelectedDate, m.cursor, to)
	m.cursor = to
	m.sync("reorder", "Moved task")
	return m, nil
}

func (m Model) shiftDate(dir int) (tea.Model, tea.Cmd) {
	step := dir
	if m.snap.CurrentView == model.ViewWeek {
		step = 7 * dir
	}
	date, err := model.AddDays(m.snap.SelectedDate, step)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.state.SetSelectedDate(context.Background(), date)
	m.cursor = 0
	m.sync("reload", date)
	return m, nil
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", m.cfg.Keys.Cancel:
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		if m.pendingDel == nil {
			m.status = "Nothing to delete"
			m.confirmDel = false
			return m, nil
		}
		if m.pendingDel.goal {
			m.state.DeleteGoal(context.Background(), m.pendingDel.id)
			m.sync("delete", "Deleted goal")
		} else {
			m.state.DeleteTask(context.Background(), m.pendingDel.id)
			m.sync("delete", "Deleted task")
		}
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) startGoalForm(g *model.Goal) (tea.Model, tea.Cmd) {
	return m.startForm(newGoalForm(g))
}

func (m Model) startForm(f *formState) (tea.Model, tea.Cmd) {
	m.form = f
	m.input.SetValue(f.currentValue())
	m.input.Placeholder = f.currentLabel()
	m.input.Focus()
	m.mode = modeForm
	m.status = m.formPrompt()
	return m, nil
}

func (m Model) updateFormMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.form = nil
		m.mode = modeList
		m.input.Blur()
		m.status = "Edit cancelled"
		return m, nil
	case "tab", "down":
		m.form.setCurrentValue(m.input.Value())
		m.form.index = wrapIndex(m.form.index+1, len(m.form.labels))
		return m.showFormField()
	case "shift+tab", "up":
		m.form.setCurrentValue(m.input.Value())
		m.form.index = wrapIndex(m.form.index-1, len(m.form.labels))
		return m.showFormField()
	case m.cfg.Keys.Confirm, "enter":
		m.form.setCurrentValue(m.input.Value())
		if m.form.last() {
			return m.saveForm()
		}
		m.form.index++
		return m.showFormField()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) showFormField() (tea.Model, tea.Cmd) {
	m.input.SetValue(m.form.currentValue())
	m.input.Placeholder = m.form.currentLabel()
	m.status = m.formPrompt()
	return m, nil
}

func (m Model) saveForm() (tea.Model, tea.Cmd) {
	ctx := context.Background()
	f := m.form
	switch f.kind {
	case formEditTask:
		base, ok := m.snap.Task(f.id)
		if !ok {
			m.status = "Task no longer exists"
			return m.closeForm(), nil
		}
		t, err := taskFromForm(f, base, m.snap.Goals)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.state.UpdateTask(ctx, t)
		m = m.closeForm()
		m.sync("save", "Task saved")
	case formNewGoal:
		g, err := goalFromForm(f, model.Goal{})
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.state.AddGoal(ctx, g)
		m = m.closeForm()
		m.sync("save", "Added goal")
		if m.state.Err() == nil {
			m.focus = focusGoals
			m.goalCursor = clampCursor(len(m.snap.Goals)-1, len(m.snap.Goals))
		}
	case formEditGoal:
		base, ok := m.snap.Goal(f.id)
		if !ok {
			m.status = "Goal no longer exists"
			return m.closeForm(), nil
		}
		g, err := goalFromForm(f, base)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.state.UpdateGoal(ctx, g)
		m = m.closeForm()
		m.sync("save", "Goal saved")
	}
	return m, nil
}

func (m Model) closeForm() Model {
	m.form = nil
	m.mode = modeList
	m.input.SetValue("")
	m.input.Blur()
	return m
}

func (m Model) formPrompt() string {
	if m.form == nil {
		return ""
	}
	return fmt.Sprintf("Editing %s (field %d of %d). Enter to advance, tab/shift+tab to move, Esc to cancel.",
		m.form.currentLabel(), m.form.index+1, len(m.form.labels))
}

// visibleTasks lists the tasks shown in the current view, in display order.
func (m Model) visibleTasks() []model.Task {
	if m.snap.CurrentView == model.ViewWeek {
		var out []model.Task
		for _, day := range m.snap.WeekDays() {
			out = append(out, m.snap.DayTasks(day)...)
		}
		return out
	}
	return m.snap.DayTasks(m.snap.SelectedDate)
}

func (m Model) selectedTask() (model.Task, bool) {
	tasks := m.visibleTasks()
	if m.focus != focusTasks || len(tasks) == 0 {
		return model.Task{}, false
	}
	return tasks[clampCursor(m.cursor, len(tasks))], true
}

func (m Model) selectedGoal() (model.Goal, bool) {
	if len(m.snap.Goals) == 0 {
		return model.Goal{}, false
	}
	return m.snap.Goals[clampCursor(m.goalCursor, len(m.snap.Goals))], true
}

// targetDate is the date new tasks go to: the selected day, or in the week
// view the day of the highlighted task.
func (m Model) targetDate() string {
	if m.snap.CurrentView == model.ViewWeek {
		if t, ok := m.selectedTask(); ok {
			return t.Date
		}
	}
	return m.snap.SelectedDate
}

func (m Model) lastIndexOn(date string) int {
	idx := 0
	for i, t := range m.visibleTasks() {
		if t.Date == date {
			idx = i
		}
	}
	return idx
}

func (m Model) detail() string {
	if m.focus == focusGoals {
		g, ok := m.selectedGoal()
		if !ok {
			return "No goals"
		}
		info := fmt.Sprintf("Goal • %s • %s • %d/%d", g.Title, g.Type, g.CurrentCount, g.TargetCount)
		if days, ok := g.RemainingDays(m.now()); ok {
			info += fmt.Sprintf(" • %d days left", days)
		}
		if !g.LastUpdate.IsZero() {
			info += " • updated " + g.LastUpdate.Local().Format("2006-01-02 15:04")
		}
		return info
	}
	t, ok := m.selectedTask()
	if !ok {
		return "No tasks"
	}
	info := fmt.Sprintf("Task • %s • %s • %s", t.Title, t.Date, humanDone(t.Completed))
	if t.StartTime != "" {
		info += " • at " + t.StartTime
	}
	if g, ok := m.snap.Goal(t.GoalID); ok {
		info += " • goal:" + g.Title
	}
	if t.Details != "" {
		info += " • " + t.Details
	}
	return info
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

func humanDone(done bool) string {
	if done {
		return "done"
	}
	return "pending"
}
