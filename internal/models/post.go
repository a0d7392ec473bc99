package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a blog entry. Author is the creating user's username and is never
// changed by updates; only title, content, tags and the image reference may
// be edited, and only by the author.
type Post struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	Title    string   `gorm:"not null" json:"title"`
	Content  string   `gorm:"not null" json:"content"`
	Tags     []string `gorm:"serializer:json" json:"tags,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
	Author   string   `gorm:"not null;index" json:"author"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->;-:migration" json:"comments_count"`
	// BookmarksCount is not persisted; computed at query time
	BookmarksCount int `gorm:"->;-:migration" json:"bookmarks_count"`
	// Bookmarked indicates whether the requesting user bookmarked this post (computed)
	Bookmarked bool           `gorm:"->;-:migration" json:"bookmarked"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
