package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"taskpilot/internal/domain"
)

type accountRepositoryMock struct {
	mock.Mock
}

func (m *accountRepositoryMock) Init(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *accountRepositoryMock) Create(ctx context.Context, account *domain.Account) (int64, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(int64), args.Error(1)
}

func (m *accountRepositoryMock) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	args := m.Called(ctx, username)

	var account *domain.Account
	if value := args.Get(0); value != nil {
		account = value.(*domain.Account)
	}
	return account, args.Error(1)
}

func (m *accountRepositoryMock) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	args := m.Called(ctx, id)

	var account *domain.Account
	if value := args.Get(0); value != nil {
		account = value.(*domain.Account)
	}
	return account, args.Error(1)
}

type taskRepositoryMock struct {
	mock.Mock
}

func (m *taskRepositoryMock) Init(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *taskRepositoryMock) Create(ctx context.Context, task *domain.Task) (int64, error) {
	args := m.Called(ctx, task)
	return args.Get(0).(int64), args.Error(1)
}

func (m *taskRepositoryMock) ListByOwner(ctx context.Context, userID int64) ([]domain.Task, error) {
	args := m.Called(ctx, userID)
	return tasksArg(args), args.Error(1)
}

func (m *taskRepositoryMock) ListOverdue(ctx context.Context, userID int64, now time.Time) ([]domain.Task, error) {
	args := m.Called(ctx, userID, now)
	return tasksArg(args), args.Error(1)
}

func (m *taskRepositoryMock) ListByPriorityAndStatus(ctx context.Context, userID int64, priority, status string) ([]domain.Task, error) {
	args := m.Called(ctx, userID, priority, status)
	return tasksArg(args), args.Error(1)
}

func tasksArg(args mock.Arguments) []domain.Task {
	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks
}
