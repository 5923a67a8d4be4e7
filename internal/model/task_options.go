package model

import "strings"

type TaskOption func(*Task)

func WithGoal(goalID string) TaskOption {
	if goalID == "" {
		return nil
	}
	return func(t *Task) {
		t.GoalID = goalID
	}
}

func WithStartTime(startTime string) TaskOption {
	startTime = strings.TrimSpace(startTime)
	if startTime == "" {
		return nil
	}
	return func(t *Task) {
		t.StartTime = startTime
	}
}

func WithDetails(details string) TaskOption {
	if strings.TrimSpace(details) == "" {
		return nil
	}
	return func(t *Task) {
		t.Details = details
	}
}

// Apply runs every non-nil option against t.
func Apply(t *Task, opts ...TaskOption) {
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
}
