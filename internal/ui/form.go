package ui

import (
	"fmt"
	"strconv"
	"strings"

	"telos/internal/model"
	"telos/internal/state"
)

type formKind int

const (
	formEditTask formKind = iota
	formNewGoal
	formEditGoal
)

// formState is a multi-field editor: one text input steps through the
// labelled values, and the whole form is saved on the last field.
type formState struct {
	kind   formKind
	id     string
	labels []string
	values []string
	index  int
}

const (
	taskFieldTitle = iota
	taskFieldDate
	taskFieldStart
	taskFieldDetails
	taskFieldGoal
)

func newTaskForm(t model.Task, snap state.Snapshot) *formState {
	goalTitle := ""
	if g, ok := snap.Goal(t.GoalID); ok {
		goalTitle = g.Title
	}
	return &formState{
		kind:   formEditTask,
		id:     t.ID,
		labels: []string{"title", "date (YYYY-MM-DD)", "start time (HH:MM)", "details", "goal (title, empty for none)"},
		values: []string{t.Title, t.Date, t.StartTime, t.Details, goalTitle},
	}
}

const (
	goalFieldTitle = iota
	goalFieldType
	goalFieldTarget
	goalFieldDeadline
	goalFieldColor
)

func newGoalForm(g *model.Goal) *formState {
	f := &formState{
		kind:   formNewGoal,
		labels: []string{"title", "type (checkin/custom)", "target count", "deadline (YYYY-MM-DD)", "color (#RRGGBB)"},
		values: []string{"", string(model.GoalCheckin), "1", "", model.DefaultGoalColor},
	}
	if g != nil {
		f.kind = formEditGoal
		f.id = g.ID
		f.values = []string{g.Title, string(g.Type), strconv.Itoa(g.TargetCount), g.Deadline, g.Color}
	}
	return f
}

func (f formState) currentLabel() string {
	return f.labels[f.index]
}

func (f formState) currentValue() string {
	return f.values[f.index]
}

func (f *formState) setCurrentValue(v string) {
	f.values[f.index] = v
}

func (f formState) last() bool {
	return f.index >= len(f.labels)-1
}

func (f formState) title() string {
	switch f.kind {
	case formNewGoal:
		return "New goal"
	case formEditGoal:
		return "Edit goal"
	}
	return "Edit task"
}

// taskFromForm applies the form values to base, the task being edited.
func taskFromForm(f *formState, base model.Task, goals []model.Goal) (model.Task, error) {
	t := base
	t.Title = strings.TrimSpace(f.values[taskFieldTitle])
	if t.Title == "" {
		return t, fmt.Errorf("title cannot be empty")
	}
	t.Date = strings.TrimSpace(f.values[taskFieldDate])
	if !model.ValidDate(t.Date) {
		return t, fmt.Errorf("date must be YYYY-MM-DD")
	}
	t.StartTime = strings.TrimSpace(f.values[taskFieldStart])
	if t.StartTime != "" && !model.ValidStartTime(t.StartTime) {
		return t, fmt.Errorf("start time must be HH:MM")
	}
	t.Details = strings.TrimSpace(f.values[taskFieldDetails])

	goalTitle := strings.TrimSpace(f.values[taskFieldGoal])
	t.GoalID = ""
	if goalTitle != "" {
		g, ok := goalByTitle(goals, goalTitle)
		if !ok {
			return t, fmt.Errorf("no goal named %q", goalTitle)
		}
		t.GoalID = g.ID
	}
	return t, nil
}

// goalFromForm builds a goal from the form values. base carries the fields
// the form does not edit.
func goalFromForm(f *formState, base model.Goal) (model.Goal, error) {
	g := base
	g.Title = strings.TrimSpace(f.values[goalFieldTitle])
	if g.Title == "" {
		return g, fmt.Errorf("title cannot be empty")
	}
	g.Type = parseGoalType(f.values[goalFieldType])
	if !g.Type.Valid() {
		return g, fmt.Errorf("type must be checkin or custom")
	}
	target, err := parseTarget(f.values[goalFieldTarget])
	if err != nil {
		return g, err
	}
	g.TargetCount = target
	g.Deadline = strings.TrimSpace(f.values[goalFieldDeadline])
	if g.Deadline != "" && !model.ValidDate(g.Deadline) {
		return g, fmt.Errorf("deadline must be YYYY-MM-DD")
	}
	g.Color = strings.TrimSpace(f.values[goalFieldColor])
	if g.Color == "" {
		g.Color = model.DefaultGoalColor
	}
	if g.CurrentCount > g.TargetCount {
		g.CurrentCount = g.TargetCount
	}
	return g, nil
}

func parseGoalType(v string) model.GoalType {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "checkin", "check-in":
		return model.GoalCheckin
	case "custom", "countdown":
		return model.GoalCustom
	}
	return model.GoalType(v)
}

func parseTarget(v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("target count must be a number")
	}
	if n < 1 {
		return 0, fmt.Errorf("target count must be at least 1")
	}
	return n, nil
}

func goalByTitle(goals []model.Goal, title string) (model.Goal, bool) {
	for _, g := range goals {
		if strings.EqualFold(g.Title, title) {
			return g, true
		}
	}
	return model.Goal{}, false
}
