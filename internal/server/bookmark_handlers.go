package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

type bookmarkRequest struct {
	PostID uint `json:"post_id"`
}

func parseBookmarkRequest(c *fiber.Ctx) (uint, error) {
	var req bookmarkRequest
	if err := c.BodyParser(&req); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
		return 0, errResponseWritten
	}
	if req.PostID == 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("post_id is required"))
		return 0, errResponseWritten
	}
	return req.PostID, nil
}

// AddBookmark handles POST /api/bookmarks/add
// @Summary Bookmark a post
// @Description Add a post to the caller's bookmark set. Re-adding is a silent success.
// @Tags bookmarks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{post_id=int} true "Post to bookmark"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /bookmarks/add [post]
func (s *Server) AddBookmark(c *fiber.Ctx) error {
	username := s.currentUsername(c)
	postID, err := parseBookmarkRequest(c)
	if err != nil {
		return nil
	}

	if err := s.bookmarkService.Add(c.Context(), username, postID); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Bookmarked"})
}

// RemoveBookmark handles DELETE /api/bookmarks/remove
// @Summary Remove a bookmark
// @Description Remove a post from the caller's bookmark set. Removing an absent entry is a silent success.
// @Tags bookmarks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{post_id=int} true "Post to remove"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Router /bookmarks/remove [delete]
func (s *Server) RemoveBookmark(c *fiber.Ctx) error {
	username := s.currentUsername(c)
	postID, err := parseBookmarkRequest(c)
	if err != nil {
		return nil
	}

	if err := s.bookmarkService.Remove(c.Context(), username, postID); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Bookmark removed"})
}

// GetBookmarkIDs handles GET /api/bookmarks/ids
// @Summary List bookmarked post IDs
// @Description Returns the caller's bookmark set. Never exposes another user's set.
// @Tags bookmarks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{post_ids=[]int}
// @Router /bookmarks/ids [get]
func (s *Server) GetBookmarkIDs(c *fiber.Ctx) error {
	username := s.currentUsername(c)

	ids, err := s.bookmarkService.ListIDs(c.Context(), username)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{"post_ids": ids})
}

// GetBookmarkedPosts handles GET /api/bookmarks/posts
// @Summary Resolve bookmarked posts
// @Description Fetch the posts behind the caller's bookmark set; dangling entries are skipped.
// @Tags bookmarks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Post
// @Router /bookmarks/posts [get]
func (s *Server) GetBookmarkedPosts(c *fiber.Ctx) error {
	username := s.currentUsername(c)

	posts, err := s.bookmarkService.Resolve(c.Context(), username)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(posts)
}

// GetBookmarkedPost handles GET /api/bookmarks/posts/:id
// @Summary Get one bookmarked post
// @Description Returns a post from the caller's bookmark set, or 404 if not bookmarked or gone.
// @Tags bookmarks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /bookmarks/posts/{id} [get]
func (s *Server) GetBookmarkedPost(c *fiber.Ctx) error {
	username := s.currentUsername(c)
	postID, err := s.parsePostID(c)
	if err != nil {
		return nil
	}

	post, err := s.bookmarkService.GetBookmarkedPost(c.Context(), username, postID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(post)
}
