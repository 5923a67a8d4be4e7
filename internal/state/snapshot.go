package state

import (
	"slices"

	"telos/internal/model"
)

// Snapshot is the state the view layer renders from.
type Snapshot struct {
	Tasks        []model.Task
	Goals        []model.Goal
	CurrentView  model.View
	SelectedDate string
}

func (s Snapshot) clone() Snapshot {
	s.Tasks = slices.Clone(s.Tasks)
	s.Goals = slices.Clone(s.Goals)
	return s
}

// WeekRange returns the Monday-start week containing SelectedDate, or the
// zero Range when SelectedDate is not a date. The Manager only ever
// publishes valid dates.
func (s Snapshot) WeekRange() model.Range {
	r, err := model.WeekRange(s.SelectedDate)
	if err != nil {
		return model.Range{}
	}
	return r
}

func (s Snapshot) WeekDays() []string {
	days, _ := model.WeekDays(s.WeekRange().Start)
	return days
}

// DayTasks returns the tasks on date in display order.
func (s Snapshot) DayTasks(date string) []model.Task {
	out := []model.Task{}
	for _, t := range s.Tasks {
		if t.Date == date {
			out = append(out, t)
		}
	}
	// Stable keeps insertion order for equal order values.
	slices.SortStableFunc(out, func(a, b model.Task) int {
		return a.Order - b.Order
	})
	return out
}

func (s Snapshot) Task(id string) (model.Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

func (s Snapshot) Goal(id string) (model.Goal, bool) {
	for _, g := range s.Goals {
		if g.ID == id {
			return g, true
		}
	}
	return model.Goal{}, false
}
