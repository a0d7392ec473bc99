package server

import (
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
// @Summary Create a post
// @Description Create a new blog post authored by the caller
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{title=string,content=string,tags=[]string,image_url=string} true "Post fields"
// @Success 201 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	username := s.currentUsername(c)

	var req struct {
		Title    string   `json:"title"`
		Content  string   `json:"content"`
		Tags     []string `json:"tags"`
		ImageURL string   `json:"image_url,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		Author:   username,
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /api/posts
// @Summary List posts
// @Description List all posts, newest first
// @Tags posts
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.Post
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page := parsePagination(c, 20)
	currentUser, _ := middleware.OptionalIdentity(s.config, c)

	posts, err := s.postService.ListPosts(c.Context(), service.ListPostsInput{
		Limit:       page.Limit,
		Offset:      page.Offset,
		CurrentUser: currentUser,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parsePostID(c)
	if err != nil {
		return nil
	}
	currentUser, _ := middleware.OptionalIdentity(s.config, c)

	post, err := s.postService.GetPost(c.Context(), id, currentUser)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(post)
}

// GetPostsByAuthor handles GET /api/posts/by-author/:username
// @Summary List posts by author
// @Description List an author's posts, newest first. An author with no posts yields an empty list.
// @Tags posts
// @Produce json
// @Param username path string true "Author username"
// @Success 200 {array} models.Post
// @Router /posts/by-author/{username} [get]
func (s *Server) GetPostsByAuthor(c *fiber.Ctx) error {
	author := c.Params("username")
	page := parsePagination(c, 20)
	currentUser, _ := middleware.OptionalIdentity(s.config, c)

	posts, err := s.postService.ListByAuthor(c.Context(), author, service.ListPostsInput{
		Limit:       page.Limit,
		Offset:      page.Offset,
		CurrentUser: currentUser,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	return c.JSON(posts)
}

// UpdatePost handles PUT /api/posts/:id
// @Summary Update a post
// @Description Merge the provided fields into the caller's own post. Author and ID never change.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body object{title=string,content=string,tags=[]string,image_url=string} true "Fields to update"
// @Success 200 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [put]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	username := s.currentUsername(c)
	postID, err := s.parsePostID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Title    *string   `json:"title"`
		Content  *string   `json:"content"`
		Tags     *[]string `json:"tags"`
		ImageURL *string   `json:"image_url"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		Username: username,
		PostID:   postID,
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
// @Summary Delete a post
// @Description Delete the caller's own post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	username := s.currentUsername(c)
	postID, err := s.parsePostID(c)
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), service.DeletePostInput{
		Username: username,
		PostID:   postID,
	}); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Post deleted"})
}
