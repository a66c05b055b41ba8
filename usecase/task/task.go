package task

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/taskloop/backend/domain"
	"github.com/taskloop/backend/repository"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

// ListPage fetches one page of tasks, newest first. The count query and
// the windowed select run concurrently against the same filter; if either
// fails the whole fetch fails. An out-of-range page yields no tasks but
// the true total and page count.
func (uc *UseCase) ListPage(ctx context.Context, page, pageSize int, status string) (*domain.TaskPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if status != "" && !domain.ValidTaskStatus(status) {
		return nil, domain.NewError(domain.ErrCodeInvalid, "invalid status filter")
	}

	filter := repository.TaskFilter{
		Status: status,
		Limit:  pageSize,
		Offset: domain.PageOffset(page, pageSize),
	}

	var (
		tasks []domain.Task
		total int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tasks, err = uc.tasks.List(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = uc.tasks.Count(gctx, filter.Status)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	window := domain.Paginate(total, page, pageSize)
	if tasks == nil {
		tasks = []domain.Task{}
	}

	return &domain.TaskPage{
		Tasks:      tasks,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: window.TotalPages,
	}, nil
}

func (uc *UseCase) Get(ctx context.Context, id string) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, id)
}

// Create validates enum invariants and inserts the task.
func (uc *UseCase) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}
	return uc.tasks.Create(ctx, task)
}

// Update replaces the full record, refreshing updated_at. Validation
// matches Create.
func (uc *UseCase) Update(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}
	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateStatus moves a task through the status enum.
func (uc *UseCase) UpdateStatus(ctx context.Context, id, status string) error {
	if !domain.ValidTaskStatus(status) {
		return domain.NewError(domain.ErrCodeInvalid, "invalid status")
	}
	return uc.tasks.UpdateStatus(ctx, id, status)
}

func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.tasks.Delete(ctx, id)
}

// DueReminders returns tasks whose reminder has elapsed and which are not
// done yet. Used by the background scanner.
func (uc *UseCase) DueReminders(ctx context.Context, due time.Time, limit int) ([]domain.Task, error) {
	return uc.tasks.ListDueReminders(ctx, due, limit)
}
