// Package service implements the application's business logic on top of the
// repository layer.
package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	Author   string
	Title    string
	Content  string
	Tags     []string
	ImageURL string
}

type ListPostsInput struct {
	Limit       int
	Offset      int
	CurrentUser string
}

// UpdatePostInput carries a partial update. Nil pointers mean "leave
// unchanged"; the author and id are never touched.
type UpdatePostInput struct {
	Username string
	PostID   uint
	Title    *string
	Content  *string
	Tags     *[]string
	ImageURL *string
}

type DeletePostInput struct {
	Username string
	PostID   uint
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

const (
	maxTitleLen   = 300
	maxContentLen = 50000
	maxTags       = 25
)

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}
	if len(in.Tags) > maxTags {
		return nil, models.NewValidationError("Too many tags (max 25)")
	}

	post := &models.Post{
		Title:    in.Title,
		Content:  in.Content,
		Tags:     normalizeTags(in.Tags),
		ImageURL: in.ImageURL,
		Author:   in.Author,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID, in.Author)
}

func (s *PostService) GetPost(ctx context.Context, id uint, currentUser string) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, currentUser)
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := in.Offset
	if offset < 0 {
		offset = 0
	}
	return s.postRepo.List(ctx, limit, offset, in.CurrentUser)
}

// ListByAuthor returns the author's posts newest first. An unknown author
// yields an empty list, not an error.
func (s *PostService) ListByAuthor(ctx context.Context, author string, in ListPostsInput) ([]*models.Post, error) {
	if strings.TrimSpace(author) == "" {
		return nil, models.NewValidationError("Author is required")
	}
	limit := in.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := in.Offset
	if offset < 0 {
		offset = 0
	}
	return s.postRepo.ListByAuthor(ctx, author, limit, offset, in.CurrentUser)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.Username)
	if err != nil {
		return nil, err
	}

	if post.Author != in.Username {
		return nil, models.NewForbiddenError("You can only update your own posts")
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, models.NewValidationError("Title cannot be empty")
		}
		if len(*in.Title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 300 characters)")
		}
		post.Title = *in.Title
	}
	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return nil, models.NewValidationError("Content cannot be empty")
		}
		if len(*in.Content) > maxContentLen {
			return nil, models.NewValidationError("Content too long (max 50000 characters)")
		}
		post.Content = *in.Content
	}
	if in.Tags != nil {
		if len(*in.Tags) > maxTags {
			return nil, models.NewValidationError("Too many tags (max 25)")
		}
		post.Tags = normalizeTags(*in.Tags)
	}
	if in.ImageURL != nil {
		post.ImageURL = *in.ImageURL
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, in.PostID, in.Username)
}

func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.Username)
	if err != nil {
		return err
	}

	if post.Author != in.Username {
		return models.NewForbiddenError("You can only delete your own posts")
	}

	return s.postRepo.Delete(ctx, in.PostID)
}

// normalizeTags trims whitespace and drops empty entries.
func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			out = append(out, tag)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
