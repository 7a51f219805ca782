package service

import (
	"cmp"
	"slices"
	"time"

	"taskpilot/internal/domain"
)

const day = 24 * time.Hour

// Priority tiers, lower is more urgent.
const (
	TierHigh   = 1
	TierMedium = 2
	TierLow    = 3
)

// RankedTask is a task placed in the total order produced by Prioritize.
type RankedTask struct {
	Task          domain.Task
	Position      int // 1-based
	Tier          int
	DaysRemaining int
}

// Rank returns the sort key: tier, days remaining, estimated time, id.
func (r RankedTask) Rank() [4]int64 {
	return [4]int64{int64(r.Tier), int64(r.DaysRemaining), int64(r.Task.EstimatedTime), r.Task.ID}
}

// Tier maps a priority label onto its tier. Matching is exact; unknown labels
// fall back to the lowest tier.
func Tier(priority string) int {
	switch priority {
	case domain.TaskPriorityHigh:
		return TierHigh
	case domain.TaskPriorityMedium:
		return TierMedium
	default:
		return TierLow
	}
}

// DaysRemaining returns whole days from now until deadline, rounded toward
// negative infinity, so a deadline earlier today yields -1.
func DaysRemaining(deadline, now time.Time) int {
	d := deadline.Sub(now)
	days := int(d / day)
	if d%day != 0 && d < 0 {
		days--
	}
	return days
}

// Prioritize orders tasks by tier, then soonest deadline, then shorter
// estimated time, then id. The input slice is not modified.
func Prioritize(tasks []domain.Task, now time.Time) []RankedTask {
	ranked := make([]RankedTask, len(tasks))
	for i, task := range tasks {
		ranked[i] = RankedTask{
			Task:          task,
			Tier:          Tier(task.Priority),
			DaysRemaining: DaysRemaining(task.Deadline, now),
		}
	}

	slices.SortFunc(ranked, func(a, b RankedTask) int {
		return cmp.Or(
			cmp.Compare(a.Tier, b.Tier),
			cmp.Compare(a.DaysRemaining, b.DaysRemaining),
			cmp.Compare(a.Task.EstimatedTime, b.Task.EstimatedTime),
			cmp.Compare(a.Task.ID, b.Task.ID),
		)
	})

	for i := range ranked {
		ranked[i].Position = i + 1
	}
	return ranked
}
