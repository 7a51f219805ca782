package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskpilot/internal/domain"
)

func TestTier(t *testing.T) {
	assert.Equal(t, 1, Tier("high"))
	assert.Equal(t, 2, Tier("medium"))
	assert.Equal(t, 3, Tier("low"))
	assert.Equal(t, 3, Tier("High"))
	assert.Equal(t, 3, Tier("urgent"))
	assert.Equal(t, 3, Tier(""))
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
	date := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }

	assert.Equal(t, 0, DaysRemaining(date(11), now))
	assert.Equal(t, 1, DaysRemaining(date(12), now))
	assert.Equal(t, -1, DaysRemaining(date(10), now))
	assert.Equal(t, -2, DaysRemaining(date(9), now))
	assert.Equal(t, 0, DaysRemaining(date(10), date(10)))
	assert.Equal(t, -1, DaysRemaining(date(9), date(10)))
}

func TestPrioritize_TierThenDeadlineThenEstimate(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	plusOne := now.Add(24 * time.Hour).Truncate(24 * time.Hour)
	minusOne := now.Add(-24 * time.Hour).Truncate(24 * time.Hour)

	tasks := []domain.Task{
		{ID: 1, Title: "A", Priority: "high", Deadline: plusOne, EstimatedTime: 30},
		{ID: 2, Title: "B", Priority: "high", Deadline: plusOne, EstimatedTime: 10},
		{ID: 3, Title: "C", Priority: "low", Deadline: minusOne, EstimatedTime: 5},
	}

	got := Prioritize(tasks, now)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"B", "A", "C"}, titles(got))
	assert.Equal(t, []int{1, 2, 3}, positions(got))
	assert.Equal(t, [4]int64{1, 0, 10, 2}, got[0].Rank())
	assert.Equal(t, [4]int64{3, -2, 5, 3}, got[2].Rank())

	// input order untouched
	assert.Equal(t, "A", tasks[0].Title)
}

func TestPrioritize_SoonerDeadlineWinsWithinTier(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	tasks := []domain.Task{
		{ID: 1, Title: "later", Priority: "medium", Deadline: now.AddDate(0, 0, 5), EstimatedTime: 1},
		{ID: 2, Title: "overdue", Priority: "medium", Deadline: now.AddDate(0, 0, -3), EstimatedTime: 100},
		{ID: 3, Title: "high later", Priority: "high", Deadline: now.AddDate(0, 1, 0), EstimatedTime: 100},
		{ID: 4, Title: "unknown", Priority: "someday", Deadline: now.AddDate(0, 0, -10), EstimatedTime: 1},
	}

	assert.Equal(t, []string{"high later", "overdue", "later", "unknown"}, titles(Prioritize(tasks, now)))
}

func TestPrioritize_IDBreaksFullTies(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	deadline := now.AddDate(0, 0, 2)
	tasks := []domain.Task{
		{ID: 9, Title: "nine", Priority: "low", Deadline: deadline, EstimatedTime: 20},
		{ID: 4, Title: "four", Priority: "low", Deadline: deadline, EstimatedTime: 20},
		{ID: 6, Title: "six", Priority: "low", Deadline: deadline, EstimatedTime: 20},
	}

	first := Prioritize(tasks, now)
	assert.Equal(t, []string{"four", "six", "nine"}, titles(first))
	assert.Equal(t, first, Prioritize(tasks, now))
}

func TestPrioritize_Empty(t *testing.T) {
	got := Prioritize(nil, time.Now())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func titles(ranked []RankedTask) []string {
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.Task.Title
	}
	return out
}

func positions(ranked []RankedTask) []int {
	out := make([]int, len(ranked))
	for i, r := range ranked {
		out[i] = r.Position
	}
	return out
}
