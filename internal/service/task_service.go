package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "tasktrack/internal/errors"
	"tasktrack/internal/model"
	"tasktrack/internal/repository"
)

// CreateTaskInput carries the caller-supplied fields of a new task. The
// owner always comes from the authenticated request, never the payload.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      model.TaskStatus
	Priority    int
}

// TaskService exposes owner-scoped task operations.
type TaskService interface {
	Create(ctx context.Context, ownerID uint, in CreateTaskInput) (*model.Task, error)
	List(ctx context.Context, q repository.TaskQuery) ([]model.Task, error)
	Search(ctx context.Context, ownerID uint, term string, offset, limit int) ([]model.Task, error)
	Get(ctx context.Context, id, ownerID uint) (*model.Task, error)
}

type taskService struct {
	repo repository.TaskRepository
}

// NewTaskService builds a TaskService.
func NewTaskService(repo repository.TaskRepository) TaskService {
	return &taskService{repo: repo}
}

// Create inserts a task for the owner. The composite (owner_id, title)
// index is the only duplicate check; two concurrent creates with the same
// title resolve at the database, not in application code.
func (s *taskService) Create(ctx context.Context, ownerID uint, in CreateTaskInput) (*model.Task, error) {
	status := in.Status
	if status == "" {
		status = model.TaskStatusPending
	}
	priority := in.Priority
	if priority == 0 {
		priority = model.PriorityMedium
	}

	task := &model.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		Priority:    priority,
		OwnerID:     ownerID,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateTitle
		}
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

func (s *taskService) List(ctx context.Context, q repository.TaskQuery) ([]model.Task, error) {
	return s.repo.List(ctx, q)
}

// Search returns matching tasks, or ErrNoSearchResults when nothing matches.
// An empty result is deliberately not a successful empty list; clients
// depend on the 404.
func (s *taskService) Search(ctx context.Context, ownerID uint, term string, offset, limit int) ([]model.Task, error) {
	tasks, err := s.repo.Search(ctx, ownerID, term, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("search tasks: %w", err)
	}
	if len(tasks) == 0 {
		return nil, apperrors.ErrNoSearchResults
	}
	return tasks, nil
}

// Get fetches a task by id scoped to the owner. A foreign-owned task is
// indistinguishable from a nonexistent one.
func (s *taskService) Get(ctx context.Context, id, ownerID uint) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}
