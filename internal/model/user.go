package model

import "time"

// User represents a registered account. Users are immutable after
// registration; there is no update or delete surface.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Name         string    `json:"name" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`

	Tasks []Task `json:"-" gorm:"foreignKey:OwnerID"`
}
