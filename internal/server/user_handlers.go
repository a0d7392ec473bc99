package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

const maxBioLength = 500

// Me handles GET /api/me
// @Summary Current profile
// @Description Returns the authenticated caller's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} models.ErrorResponse
// @Router /me [get]
func (s *Server) Me(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	if userID == 0 {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
	}

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(user)
}

// UpdateMe handles PUT /api/me
// @Summary Update profile
// @Description Update the authenticated caller's bio and avatar
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{bio=string,avatar=string} true "Profile fields"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /me [put]
func (s *Server) UpdateMe(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	if userID == 0 {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
	}

	var req struct {
		Bio    *string `json:"bio"`
		Avatar *string `json:"avatar"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Bio != nil && len(*req.Bio) > maxBioLength {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Bio must be at most 500 characters"))
	}

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}

	if err := s.userRepo.Update(c.Context(), user); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(user)
}
