package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"taskpilot/internal/domain"
	"taskpilot/internal/repository"
)

var createTasksTable = map[string][]string{
	DriverSQLite: {`
CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	priority TEXT NOT NULL,
	deadline TEXT NOT NULL,
	estimated_time INTEGER NOT NULL,
	created_at DATETIME NOT NULL,
	FOREIGN KEY(user_id) REFERENCES users(id)
);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks(user_id);`,
	},
	DriverMySQL: {`
CREATE TABLE IF NOT EXISTS tasks (
	id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
	user_id BIGINT NOT NULL,
	title VARCHAR(150) NOT NULL,
	description VARCHAR(500) NOT NULL DEFAULT '',
	status VARCHAR(50) COLLATE utf8mb4_bin NOT NULL,
	priority VARCHAR(50) COLLATE utf8mb4_bin NOT NULL,
	deadline DATE NOT NULL,
	estimated_time INT NOT NULL,
	created_at DATETIME(6) NOT NULL,
	INDEX idx_tasks_user_id (user_id),
	CONSTRAINT fk_tasks_user FOREIGN KEY (user_id) REFERENCES users(id)
) DEFAULT CHARSET = utf8mb4`},
}

const selectTaskColumns = `
SELECT id, user_id, title, description, status, priority, deadline, estimated_time, created_at
FROM tasks`

type taskRow struct {
	ID            int64     `db:"id"`
	UserID        int64     `db:"user_id"`
	Title         string    `db:"title"`
	Description   string    `db:"description"`
	Status        string    `db:"status"`
	Priority      string    `db:"priority"`
	Deadline      string    `db:"deadline"`
	EstimatedTime int       `db:"estimated_time"`
	CreatedAt     time.Time `db:"created_at"`
}

type TaskRepository struct {
	db *sqlx.DB
}

var _ repository.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Init(ctx context.Context) error {
	for _, stmt := range createTasksTable[r.db.DriverName()] {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create tasks table: %w", err)
		}
	}
	return nil
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (int64, error) {
	task.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO tasks (user_id, title, description, status, priority, deadline, estimated_time, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		task.UserID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		domain.FormatDeadline(task.Deadline),
		task.EstimatedTime,
		task.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: user %d does not exist", domain.ErrValidation, task.UserID)
		}
		return 0, fmt.Errorf("insert task: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id: %w", err)
	}
	task.ID = id
	return id, nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, userID int64) ([]domain.Task, error) {
	return r.list(ctx, selectTaskColumns+`
WHERE user_id = ?
ORDER BY id ASC`, userID)
}

func (r *TaskRepository) ListOverdue(ctx context.Context, userID int64, now time.Time) ([]domain.Task, error) {
	// A deadline stands for midnight UTC of its date, so midnight(d) < now
	// holds exactly when d is on or before the date of the instant just
	// before now.
	cutoff := domain.FormatDeadline(now.Add(-time.Nanosecond))
	return r.list(ctx, selectTaskColumns+`
WHERE user_id = ? AND deadline <= ?
ORDER BY id ASC`, userID, cutoff)
}

func (r *TaskRepository) ListByPriorityAndStatus(ctx context.Context, userID int64, priority, status string) ([]domain.Task, error) {
	return r.list(ctx, selectTaskColumns+`
WHERE user_id = ? AND priority = ? AND status = ?
ORDER BY id ASC`, userID, priority, status)
}

func (r *TaskRepository) list(ctx context.Context, query string, args ...any) ([]domain.Task, error) {
	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		task, err := mapTaskRow(row)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func mapTaskRow(row taskRow) (domain.Task, error) {
	deadline, err := parseStoredDate(row.Deadline)
	if err != nil {
		return domain.Task{}, fmt.Errorf("task %d: %w", row.ID, err)
	}
	return domain.Task{
		ID:            row.ID,
		UserID:        row.UserID,
		Title:         row.Title,
		Description:   row.Description,
		Status:        row.Status,
		Priority:      row.Priority,
		Deadline:      deadline,
		EstimatedTime: row.EstimatedTime,
		CreatedAt:     row.CreatedAt.UTC(),
	}, nil
}

// parseStoredDate accepts both the sqlite TEXT form (2006-01-02) and the
// RFC3339 rendering that database/sql produces for a MySQL DATE scanned into
// a string.
func parseStoredDate(value string) (time.Time, error) {
	if len(value) > len(domain.DeadlineLayout) {
		value = value[:len(domain.DeadlineLayout)]
	}
	return domain.ParseDeadline(value)
}
