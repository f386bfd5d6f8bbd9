package model

import "time"

// TaskStatus represents the completion state of a task.
type TaskStatus string

const (
	TaskStatusPending TaskStatus = "pending"
	TaskStatusDone    TaskStatus = "done"
)

// Valid reports whether s is a known status value.
func (s TaskStatus) Valid() bool {
	return s == TaskStatusPending || s == TaskStatusDone
}

// Task priorities are ordinal: lower value means more urgent.
const (
	PriorityHigh   = 1
	PriorityMedium = 2
	PriorityLow    = 3
)

// ValidPriority reports whether p is a known priority value.
func ValidPriority(p int) bool {
	return p >= PriorityHigh && p <= PriorityLow
}

// Task is a to-do item owned by exactly one user. Titles are unique per
// owner, not globally; the composite index is the authoritative check.
// Tasks are never mutated or deleted through the current API surface.
type Task struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"size:255;not null;uniqueIndex:idx_owner_title"`
	Description string     `json:"description" gorm:"size:1024"`
	Status      TaskStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	Priority    int        `json:"priority" gorm:"not null;default:2"`
	CreatedAt   time.Time  `json:"created_at" gorm:"index"`
	OwnerID     uint       `json:"owner_id" gorm:"not null;uniqueIndex:idx_owner_title;index"`

	Owner User `json:"-" gorm:"foreignKey:OwnerID"`
}
