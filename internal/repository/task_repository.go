package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tasktrack/internal/model"
)

// DefaultListLimit caps result pages when the caller does not ask for one.
const DefaultListLimit = 100

// TaskQuery describes a filtered, paginated task listing. OwnerID is
// mandatory; every read path is scoped to the owner at the query level.
type TaskQuery struct {
	OwnerID       uint
	Status        model.TaskStatus
	Priority      int
	CreatedAfter  *time.Time // inclusive lower bound
	CreatedBefore *time.Time // whole-day cutoff: matches anything before the following day
	Offset        int
	Limit         int
}

// TaskRepository defines task persistence operations.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	List(ctx context.Context, q TaskQuery) ([]model.Task, error)
	Search(ctx context.Context, ownerID uint, term string, offset, limit int) ([]model.Task, error)
	FindByID(ctx context.Context, id, ownerID uint) (*model.Task, error)
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository builds a GORM-backed repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) List(ctx context.Context, q TaskQuery) ([]model.Task, error) {
	tx := r.db.WithContext(ctx).Where("owner_id = ?", q.OwnerID)

	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}
	if q.Priority != 0 {
		tx = tx.Where("priority = ?", q.Priority)
	}
	if q.CreatedAfter != nil {
		tx = tx.Where("created_at >= ?", *q.CreatedAfter)
	}
	if q.CreatedBefore != nil {
		// The bound names a day, so the cutoff is the start of the next one.
		tx = tx.Where("created_at < ?", q.CreatedBefore.AddDate(0, 0, 1))
	}

	var tasks []model.Task
	if err := tx.Order("created_at DESC").
		Offset(q.Offset).Limit(pageLimit(q.Limit)).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) Search(ctx context.Context, ownerID uint, term string, offset, limit int) ([]model.Task, error) {
	pattern := "%" + term + "%"
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern).
		Order("created_at DESC").
		Offset(offset).Limit(pageLimit(limit)).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) FindByID(ctx context.Context, id, ownerID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func pageLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
