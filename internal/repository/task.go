package repository

import (
	"context"
	"time"

	"taskpilot/internal/domain"
)

// TaskRepository exposes persistence operations for Task records. Every list
// operation returns tasks in ascending id order and never returns nil.
type TaskRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, task *domain.Task) (int64, error)
	ListByOwner(ctx context.Context, userID int64) ([]domain.Task, error)
	// ListOverdue returns the owner's tasks whose deadline is strictly
	// before now.
	ListOverdue(ctx context.Context, userID int64, now time.Time) ([]domain.Task, error)
	ListByPriorityAndStatus(ctx context.Context, userID int64, priority, status string) ([]domain.Task, error)
}
