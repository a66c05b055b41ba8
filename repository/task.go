package repository

import (
	"context"
	"time"

	"github.com/taskloop/backend/domain"
)

// TaskFilter restricts listing and counting. An empty Status means no
// restriction; List and Count must be called with the same filter so a
// page and its total describe the same set.
type TaskFilter struct {
	Status string
	Limit  int
	Offset int
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Count(ctx context.Context, status string) (int, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	ListDueReminders(ctx context.Context, due time.Time, limit int) ([]domain.Task, error)
}
