package http

import (
	"time"

	"taskpilot/internal/domain"
	"taskpilot/internal/service"
)

type registerRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Password string `json:"password" binding:"required"`
}

// Empty credentials are a failed login, not a malformed request.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type accountResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

type createTaskRequest struct {
	UserID        int64  `json:"user_id" binding:"required,gt=0"`
	Title         string `json:"title" binding:"required,max=150"`
	Description   string `json:"description" binding:"max=500"`
	Status        string `json:"status" binding:"required,max=50"`
	Priority      string `json:"priority" binding:"required,max=50"`
	Deadline      string `json:"deadline" binding:"required"`
	EstimatedTime int    `json:"estimated_time" binding:"required,gt=0,lte=2147483647"`
}

func (r createTaskRequest) toInput() domain.NewTaskInput {
	return domain.NewTaskInput{
		UserID:        r.UserID,
		Title:         r.Title,
		Description:   r.Description,
		Status:        r.Status,
		Priority:      r.Priority,
		Deadline:      r.Deadline,
		EstimatedTime: r.EstimatedTime,
	}
}

type createTaskResponse struct {
	Message string `json:"message"`
	TaskID  int64  `json:"task_id"`
}

type TaskResponse struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Status        string `json:"status"`
	Priority      string `json:"priority"`
	Deadline      string `json:"deadline"`
	EstimatedTime int    `json:"estimated_time"`
	CreatedAt     string `json:"created_at"`
}

type TaskBriefResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type RankedTaskResponse struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Priority      int      `json:"priority"`
	Rank          [4]int64 `json:"rank"`
	Tier          int      `json:"tier"`
	DaysRemaining int      `json:"days_remaining"`
	EstimatedTime int      `json:"estimated_time"`
}

type sentimentRequest struct {
	Description string `json:"description" binding:"required"`
}

type sentimentResult struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type sentimentResponse struct {
	Description string            `json:"description"`
	Sentiment   []sentimentResult `json:"sentiment"`
}

func taskToResponse(task domain.Task) TaskResponse {
	return TaskResponse{
		ID:            task.ID,
		Title:         task.Title,
		Description:   task.Description,
		Status:        task.Status,
		Priority:      task.Priority,
		Deadline:      domain.FormatDeadline(task.Deadline),
		EstimatedTime: task.EstimatedTime,
		CreatedAt:     task.CreatedAt.Format(time.RFC3339),
	}
}

func rankedToResponse(r service.RankedTask) RankedTaskResponse {
	return RankedTaskResponse{
		ID:            r.Task.ID,
		Title:         r.Task.Title,
		Priority:      r.Position,
		Rank:          r.Rank(),
		Tier:          r.Tier,
		DaysRemaining: r.DaysRemaining,
		EstimatedTime: r.Task.EstimatedTime,
	}
}
