package service

import (
	"context"
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
)

// BookmarkService manages the per-user bookmark set. A (user, post) pair is
// either absent or present; add and remove are idempotent and converge under
// concurrent toggles because the repository mutations are single atomic
// statements.
type BookmarkService struct {
	bookmarkRepo repository.BookmarkRepository
	postRepo     repository.PostRepository
}

func NewBookmarkService(
	bookmarkRepo repository.BookmarkRepository,
	postRepo repository.PostRepository,
) *BookmarkService {
	return &BookmarkService{
		bookmarkRepo: bookmarkRepo,
		postRepo:     postRepo,
	}
}

// Add inserts postID into the user's bookmark set. Re-adding a present pair
// is a silent success. The post must exist.
func (s *BookmarkService) Add(ctx context.Context, username string, postID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID, ""); err != nil {
		return err
	}

	added, err := s.bookmarkRepo.Add(ctx, username, postID)
	if err != nil {
		observability.BookmarkMutations.WithLabelValues("add", "error").Inc()
		return err
	}
	if added {
		observability.BookmarkMutations.WithLabelValues("add", "applied").Inc()
	} else {
		observability.BookmarkMutations.WithLabelValues("add", "noop").Inc()
	}
	return nil
}

// Remove deletes postID from the user's bookmark set. Removing an absent
// pair is a silent success, even when the post itself no longer exists.
func (s *BookmarkService) Remove(ctx context.Context, username string, postID uint) error {
	removed, err := s.bookmarkRepo.Remove(ctx, username, postID)
	if err != nil {
		observability.BookmarkMutations.WithLabelValues("remove", "error").Inc()
		return err
	}
	if removed {
		observability.BookmarkMutations.WithLabelValues("remove", "applied").Inc()
	} else {
		observability.BookmarkMutations.WithLabelValues("remove", "noop").Inc()
	}
	return nil
}

// ListIDs returns the user's current bookmark set, empty if none.
func (s *BookmarkService) ListIDs(ctx context.Context, username string) ([]uint, error) {
	ids, err := s.bookmarkRepo.ListPostIDs(ctx, username)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []uint{}
	}
	return ids, nil
}

// Resolve fetches the posts behind the user's bookmark set. Entries whose
// post has been deleted out of band are silently skipped.
func (s *BookmarkService) Resolve(ctx context.Context, username string) ([]*models.Post, error) {
	ids, err := s.bookmarkRepo.ListPostIDs(ctx, username)
	if err != nil {
		return nil, err
	}

	posts := make([]*models.Post, 0, len(ids))
	for _, id := range ids {
		post, err := s.postRepo.GetByID(ctx, id, username)
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// GetBookmarkedPost returns one post from the caller's bookmark set. A post
// that is not in the set, or whose target was deleted, reads as not found.
func (s *BookmarkService) GetBookmarkedPost(ctx context.Context, username string, postID uint) (*models.Post, error) {
	exists, err := s.bookmarkRepo.Exists(ctx, username, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Bookmark", postID)
	}
	return s.postRepo.GetByID(ctx, postID, username)
}

func isNotFound(err error) bool {
	var appErr *models.AppError
	return errors.As(err, &appErr) && appErr.Code == models.CodeNotFound
}
