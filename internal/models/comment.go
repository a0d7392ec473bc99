package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a reply bound to exactly one post. Comments are append-only:
// there is no update or delete path through the API.
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Content   string         `gorm:"not null" json:"content"`
	PostID    uint           `gorm:"not null;index" json:"post_id"`
	Author    string         `gorm:"not null" json:"author"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
