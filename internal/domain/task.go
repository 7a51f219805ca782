package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DeadlineLayout is the only accepted wire format for task deadlines.
const DeadlineLayout = "2006-01-02"

// MaxEstimatedTime is the largest estimate a 32-bit INT column can hold.
const MaxEstimatedTime = math.MaxInt32

// Well known values. Neither set is closed: the store accepts any non-empty
// string for both fields.
const (
	TaskStatusPending = "pending"
	TaskStatusDone    = "done"

	TaskPriorityHigh   = "high"
	TaskPriorityMedium = "medium"
	TaskPriorityLow    = "low"
)

// Task is a unit of work owned by an Account.
type Task struct {
	ID            int64
	UserID        int64
	Title         string
	Description   string
	Status        string
	Priority      string
	Deadline      time.Time // midnight UTC of the deadline date
	EstimatedTime int       // minutes
	CreatedAt     time.Time
}

// NewTaskInput carries the caller supplied fields of a task before it is
// validated and persisted.
type NewTaskInput struct {
	UserID        int64
	Title         string
	Description   string
	Status        string
	Priority      string
	Deadline      string
	EstimatedTime int
}

// ParseDeadline parses a YYYY-MM-DD calendar date. Dates that do not exist in
// the calendar, such as 2024-02-30, are rejected.
func ParseDeadline(value string) (time.Time, error) {
	if len(value) != len(DeadlineLayout) {
		return time.Time{}, &ParseError{Field: "deadline", Value: value, Layout: "YYYY-MM-DD"}
	}
	t, err := time.ParseInLocation(DeadlineLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, &ParseError{Field: "deadline", Value: value, Layout: "YYYY-MM-DD", Err: err}
	}
	return t, nil
}

// FormatDeadline renders a deadline back into its wire format.
func FormatDeadline(t time.Time) string {
	return t.UTC().Format(DeadlineLayout)
}

// Validate checks the invariants of a task that do not require the store.
func (in NewTaskInput) Validate() error {
	switch {
	case in.UserID <= 0:
		return fmt.Errorf("%w: user_id must be a positive integer", ErrValidation)
	case strings.TrimSpace(in.Title) == "":
		return fmt.Errorf("%w: title is required", ErrValidation)
	case strings.TrimSpace(in.Status) == "":
		return fmt.Errorf("%w: status is required", ErrValidation)
	case strings.TrimSpace(in.Priority) == "":
		return fmt.Errorf("%w: priority is required", ErrValidation)
	case in.EstimatedTime <= 0:
		return fmt.Errorf("%w: estimated_time must be a positive integer", ErrValidation)
	case in.EstimatedTime > MaxEstimatedTime:
		return fmt.Errorf("%w: estimated_time must be at most %d", ErrValidation, MaxEstimatedTime)
	}
	return nil
}
