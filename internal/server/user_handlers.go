package server

import (
	"craveconnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetTopChefs handles GET /api/users/top-chefs
// @Summary Chef leaderboard
// @Description Chefs and admins by weekly then total points
// @Tags users
// @Produce json
// @Success 200 {object} Response{data=[]models.User}
// @Router /users/top-chefs [get]
func (s *Server) GetTopChefs(c *fiber.Ctx) error {
	chefs, err := s.userService.TopChefs(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, chefs)
}

// GetUserProfile handles GET /api/users/:id
// @Summary User profile
// @Description Profile with follow counts and recent approved recipes
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} Response{data=service.Profile}
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [get]
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	profile, err := s.userService.GetProfile(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, profile)
}

// UpdateUserProfile handles PUT /api/users/:id
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body object{username=string,bio=string,avatar=string} true "Profile fields"
// @Success 200 {object} Response{data=models.User}
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /users/{id} [put]
func (s *Server) UpdateUserProfile(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req struct {
		Username *string `json:"username"`
		Bio      *string `json:"bio"`
		Avatar   *string `json:"avatar"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), actor(c), service.UpdateProfileInput{
		UserID:   id,
		Username: req.Username,
		Bio:      req.Bio,
		Avatar:   req.Avatar,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, user)
}

// FollowUser handles POST /api/users/:id/follow
// @Summary Toggle follow
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} Response{data=service.FollowResult}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/follow [post]
func (s *Server) FollowUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	res, err := s.userService.ToggleFollow(c.UserContext(), actor(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, res)
}

// ToggleBookmark handles POST /api/users/bookmark/:recipeId
// @Summary Toggle bookmark
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param recipeId path int true "Recipe ID"
// @Success 200 {object} Response{data=object{bookmarked=bool}}
// @Failure 404 {object} models.ErrorResponse
// @Router /users/bookmark/{recipeId} [post]
func (s *Server) ToggleBookmark(c *fiber.Ctx) error {
	recipeID, err := parseID(c, "recipeId")
	if err != nil {
		return nil
	}
	bookmarked, err := s.userService.ToggleBookmark(c.UserContext(), actor(c), recipeID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, fiber.Map{"bookmarked": bookmarked})
}

// GetBookmarks handles GET /api/users/:id/bookmarks
// @Summary Own bookmarks
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} Response{data=[]models.Recipe}
// @Failure 403 {object} models.ErrorResponse
// @Router /users/{id}/bookmarks [get]
func (s *Server) GetBookmarks(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	recipes, err := s.userService.Bookmarks(c.UserContext(), actor(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, recipes)
}
