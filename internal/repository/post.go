// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUser string) (*models.Post, error)
	List(ctx context.Context, limit, offset int, currentUser string) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, author string, limit, offset int, currentUser string) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePostsList(ctx)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUser string) (*models.Post, error) {
	var post models.Post

	fetch := func() error {
		err := r.applyPostDetails(r.db.WithContext(ctx), currentUser).
			First(&post, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Post", id)
		}
		if err != nil {
			return models.NewInternalError(err)
		}
		return nil
	}

	var err error
	if currentUser == "" {
		// Anonymous reads share one cache entry; per-user bookmarked state
		// can't be cached this way.
		err = cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int, currentUser string) ([]*models.Post, error) {
	var posts []*models.Post

	fetch := func() error {
		if err := r.applyPostDetails(r.db.WithContext(ctx), currentUser).
			Order("created_at DESC, id DESC").
			Limit(limit).
			Offset(offset).
			Find(&posts).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	}

	var err error
	if currentUser == "" && offset == 0 {
		err = cache.Aside(ctx, cache.PostsListKey(), &posts, cache.ListTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, author string, limit, offset int, currentUser string) ([]*models.Post, error) {
	var posts []*models.Post
	if err := r.applyPostDetails(r.db.WithContext(ctx), currentUser).
		Where("posts.author = ?", author).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// applyPostDetails adds subqueries to fetch counts and bookmarked status in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB, currentUser string) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) as comments_count, " +
		"(SELECT COUNT(*) FROM bookmarks WHERE bookmarks.post_id = posts.id) as bookmarks_count"

	if currentUser != "" {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM bookmarks WHERE bookmarks.post_id = posts.id AND bookmarks.username = ?) as bookmarked", currentUser)
	}

	return db.Select(selectQuery + ", false as bookmarked")
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.PostKey(post.ID))
	cache.InvalidatePostsList(ctx)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.PostKey(id))
	cache.InvalidatePostsList(ctx)
	return nil
}
