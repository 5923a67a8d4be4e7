package model

import "time"

type GoalType string

const (
	GoalCheckin GoalType = "checkin"
	// GoalCustom goals are countdowns tracked by their deadline.
	GoalCustom GoalType = "custom"
)

const DefaultGoalColor = "#58CC02"

func (t GoalType) Valid() bool {
	return t == GoalCheckin || t == GoalCustom
}

type Goal struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Type         GoalType  `json:"type"`
	TargetCount  int       `json:"targetCount"`
	CurrentCount int       `json:"currentCount"`
	Deadline     string    `json:"deadline,omitempty"`
	Color        string    `json:"color"`
	LastUpdate   time.Time `json:"lastUpdate,omitzero"`
}

func (g Goal) Complete() bool {
	return g.CurrentCount >= g.TargetCount
}

// Progress returns the completion percentage in [0, 100].
func (g Goal) Progress() float64 {
	if g.TargetCount <= 0 {
		return 0
	}
	p := float64(g.CurrentCount) / float64(g.TargetCount) * 100
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// RemainingDays counts calendar days from now's date until the deadline,
// never going below zero. ok is false when the goal has no usable deadline.
func (g Goal) RemainingDays(now time.Time) (days int, ok bool) {
	if g.Deadline == "" {
		return 0, false
	}
	deadline, err := ParseDate(g.Deadline)
	if err != nil {
		return 0, false
	}
	days = DaysBetween(Today(now), deadline)
	if days < 0 {
		days = 0
	}
	return days, true
}

// Expired reports whether the deadline has been reached.
func (g Goal) Expired(now time.Time) bool {
	days, ok := g.RemainingDays(now)
	return ok && days == 0
}
