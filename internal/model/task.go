package model

type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Date      string `json:"date"`
	StartTime string `json:"startTime,omitempty"`
	Details   string `json:"details,omitempty"`
	// GoalID links the task to a goal without owning it. Empty means no goal.
	GoalID string `json:"goalId,omitempty"`
	Order  int    `json:"order"`
}

func (t Task) HasGoal() bool {
	return t.GoalID != ""
}

type View string

const (
	ViewDay  View = "day"
	ViewWeek View = "week"
)

func (v View) Valid() bool {
	return v == ViewDay || v == ViewWeek
}

// Toggle returns the other view mode.
func (v View) Toggle() View {
	if v == ViewWeek {
		return ViewDay
	}
	return ViewWeek
}
