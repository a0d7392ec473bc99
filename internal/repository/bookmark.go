package repository

import (
	"context"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// BookmarkRepository defines persistence operations for per-user bookmark sets.
// Add and Remove report whether a row actually changed so callers can tell
// an effective mutation from an idempotent no-op.
type BookmarkRepository interface {
	Add(ctx context.Context, username string, postID uint) (bool, error)
	Remove(ctx context.Context, username string, postID uint) (bool, error)
	ListPostIDs(ctx context.Context, username string) ([]uint, error)
	Exists(ctx context.Context, username string, postID uint) (bool, error)
}

type bookmarkRepository struct {
	db *gorm.DB
}

// NewBookmarkRepository creates a new BookmarkRepository
func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

func (r *bookmarkRepository) Add(ctx context.Context, username string, postID uint) (bool, error) {
	// Use INSERT ... ON CONFLICT DO NOTHING to stay idempotent under
	// concurrent adds of the same pair
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO bookmarks (username, post_id, created_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (username, post_id) DO NOTHING`,
		username, postID,
	)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		cache.Invalidate(ctx, cache.PostKey(postID))
	}
	return result.RowsAffected > 0, nil
}

func (r *bookmarkRepository) Remove(ctx context.Context, username string, postID uint) (bool, error) {
	// Deleting an absent pair is a no-op, which keeps removal idempotent
	result := r.db.WithContext(ctx).
		Where("username = ? AND post_id = ?", username, postID).
		Delete(&models.Bookmark{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		cache.Invalidate(ctx, cache.PostKey(postID))
	}
	return result.RowsAffected > 0, nil
}

func (r *bookmarkRepository) ListPostIDs(ctx context.Context, username string) ([]uint, error) {
	var postIDs []uint
	err := r.db.WithContext(ctx).
		Model(&models.Bookmark{}).
		Where("username = ?", username).
		Order("created_at desc").
		Pluck("post_id", &postIDs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return postIDs, nil
}

func (r *bookmarkRepository) Exists(ctx context.Context, username string, postID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Bookmark{}).
		Where("username = ? AND post_id = ?", username, postID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
