package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"taskpilot/internal/domain"
	"taskpilot/internal/repository"
)

const (
	maxTitleLength       = 150
	maxDescriptionLength = 500
	maxTagLength         = 50
)

// TaskService coordinates task level operations backed by repositories.
type TaskService interface {
	CreateTask(ctx context.Context, in domain.NewTaskInput) (*domain.Task, error)
	ListTasks(ctx context.Context, userID int64) ([]domain.Task, error)
	ListOverdue(ctx context.Context, userID int64) ([]domain.Task, error)
	ListByPriorityAndStatus(ctx context.Context, userID int64, priority, status string) ([]domain.Task, error)
	Prioritize(ctx context.Context, userID int64) ([]RankedTask, error)
}

type taskService struct {
	tasks    repository.TaskRepository
	accounts repository.AccountRepository
	now      func() time.Time
}

// NewTaskService builds a TaskService. A nil clock defaults to time.Now.
func NewTaskService(tasks repository.TaskRepository, accounts repository.AccountRepository, clock func() time.Time) TaskService {
	if clock == nil {
		clock = time.Now
	}
	return &taskService{
		tasks:    tasks,
		accounts: accounts,
		now:      clock,
	}
}

func (s *taskService) CreateTask(ctx context.Context, in domain.NewTaskInput) (*domain.Task, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := checkLengths(in); err != nil {
		return nil, err
	}

	deadline, err := domain.ParseDeadline(in.Deadline)
	if err != nil {
		return nil, err
	}

	if _, err := s.accounts.GetByID(ctx, in.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %d does not exist", domain.ErrValidation, in.UserID)
		}
		return nil, err
	}

	task := &domain.Task{
		UserID:        in.UserID,
		Title:         in.Title,
		Description:   in.Description,
		Status:        in.Status,
		Priority:      in.Priority,
		Deadline:      deadline,
		EstimatedTime: in.EstimatedTime,
	}
	if _, err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) ListTasks(ctx context.Context, userID int64) ([]domain.Task, error) {
	return s.tasks.ListByOwner(ctx, userID)
}

func (s *taskService) ListOverdue(ctx context.Context, userID int64) ([]domain.Task, error) {
	return s.tasks.ListOverdue(ctx, userID, s.now())
}

func (s *taskService) ListByPriorityAndStatus(ctx context.Context, userID int64, priority, status string) ([]domain.Task, error) {
	return s.tasks.ListByPriorityAndStatus(ctx, userID, priority, status)
}

func (s *taskService) Prioritize(ctx context.Context, userID int64) ([]RankedTask, error) {
	tasks, err := s.tasks.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Prioritize(tasks, s.now()), nil
}

func checkLengths(in domain.NewTaskInput) error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"title", in.Title, maxTitleLength},
		{"description", in.Description, maxDescriptionLength},
		{"status", in.Status, maxTagLength},
		{"priority", in.Priority, maxTagLength},
	}
	for _, f := range fields {
		if utf8.RuneCountInString(f.value) > f.max {
			return fmt.Errorf("%w: %s must be at most %d characters", domain.ErrValidation, f.name, f.max)
		}
	}
	return nil
}
