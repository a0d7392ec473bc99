package models

import "time"

// Bookmark is one entry of a user's bookmark set: membership of post_id in
// the set keyed by username. The composite unique index makes the pair
// appear at most once, so add/remove compile down to a single atomic
// INSERT-or-ignore / DELETE instead of a read-modify-write on a set blob.
// Rows are hard-deleted; an empty set is simply the absence of rows.
type Bookmark struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"not null;index;uniqueIndex:idx_username_post" json:"username"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_username_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
