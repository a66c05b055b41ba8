package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskloop/backend/domain"
	"github.com/taskloop/backend/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	const query = `
	SELECT id, title, description, due_date, priority, status, reminder_date, created_at, updated_at
	FROM tasks
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanTask(row)
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	const query = `
	SELECT id, title, description, due_date, priority, status, reminder_date, created_at, updated_at
	FROM tasks
	WHERE ($1 = '' OR status = $1)
	ORDER BY created_at DESC
	LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, filter.Status, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Count(ctx context.Context, status string) (int, error) {
	const query = `
	SELECT COUNT(*)
	FROM tasks
	WHERE ($1 = '' OR status = $1)
	`
	var total int
	if err := r.pool.QueryRow(ctx, query, status).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO tasks (id, title, description, due_date, priority, status, reminder_date)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING created_at, updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		nullTimePtr(task.DueDate),
		task.Priority,
		task.Status,
		nullTimePtr(task.ReminderDate),
	).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}

	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE tasks
	SET title = $2,
		description = $3,
		due_date = $4,
		priority = $5,
		status = $6,
		reminder_date = $7,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		nullTimePtr(task.DueDate),
		task.Priority,
		task.Status,
		nullTimePtr(task.ReminderDate),
	).Scan(&task.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return err
	}

	return nil
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id, status string) error {
	const query = `
	UPDATE tasks
	SET status = $2,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	var updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query, id, status).Scan(&updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return err
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) ListDueReminders(ctx context.Context, due time.Time, limit int) ([]domain.Task, error) {
	const query = `
	SELECT id, title, description, due_date, priority, status, reminder_date, created_at, updated_at
	FROM tasks
	WHERE reminder_date IS NOT NULL
	  AND reminder_date <= $1
	  AND status <> $2
	ORDER BY reminder_date ASC
	LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, due, domain.StatusDone, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	var (
		due      *time.Time
		reminder *time.Time
	)

	if err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&due,
		&task.Priority,
		&task.Status,
		&reminder,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	task.DueDate = due
	task.ReminderDate = reminder
	return &task, nil
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 100
	}
	return limit
}
