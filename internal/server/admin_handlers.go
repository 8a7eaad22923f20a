package server

import (
	"strings"

	"craveconnect/internal/models"
	"craveconnect/internal/repository"
	"craveconnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	adminUserListLimit    = 20
	adminRecipeListLimit  = 20
	adminCommentListLimit = 20
)

// GetAdminStats handles GET /api/admin/stats
// @Summary Dashboard statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=service.AdminStats}
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/stats [get]
func (s *Server) GetAdminStats(c *fiber.Ctx) error {
	stats, err := s.adminService.Stats(c.UserContext(), actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, stats)
}

// GetAdminUsers handles GET /api/admin/users
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "Foodie, Chef or Admin"
// @Param search query string false "Substring of username or email"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} Response{data=[]models.User}
// @Router /admin/users [get]
func (s *Server) GetAdminUsers(c *fiber.Ctx) error {
	page := parsePagination(c, adminUserListLimit)
	users, total, err := s.adminService.ListUsers(c.UserContext(), actor(c), repository.UserListParams{
		Role:   models.Role(c.Query("role")),
		Search: strings.TrimSpace(c.Query("search")),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondPage(c, users, page, total)
}

// UpdateUserRole handles PUT /api/admin/users/:id/role
// @Summary Change a user's role
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body object{role=string} true "Role"
// @Success 200 {object} Response{data=models.User}
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/users/{id}/role [put]
func (s *Server) UpdateUserRole(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req struct {
		Role models.Role `json:"role"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	user, err := s.adminService.SetRole(c.UserContext(), actor(c), id, req.Role)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, user)
}

// DeleteUser handles DELETE /api/admin/users/:id
// @Summary Delete a user
// @Description Removes the account, its recipes and comments. Chat history is kept.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/users/{id} [delete]
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.adminService.DeleteUser(c.UserContext(), actor(c), id); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, "User deleted successfully")
}

// GetPendingRecipes handles GET /api/admin/recipes/pending
// @Summary Recipes awaiting approval
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} Response{data=[]models.Recipe}
// @Router /admin/recipes/pending [get]
func (s *Server) GetPendingRecipes(c *fiber.Ctx) error {
	page := parsePagination(c, adminRecipeListLimit)
	recipes, total, err := s.adminService.PendingRecipes(c.UserContext(), actor(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return respondPage(c, recipes, page, total)
}

// setRecipeFlag returns a handler for PUT /api/admin/recipes/:id/<flag> reading the named
// boolean from the body.
func (s *Server) setRecipeFlag(flag service.RecipeFlag, field string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return nil
		}
		var body map[string]interface{}
		if err := parseBody(c, &body); err != nil {
			return nil
		}
		value, ok := body[field].(bool)
		if !ok {
			return respondError(c, models.NewValidationError(field+" must be a boolean"))
		}
		recipe, err := s.adminService.SetRecipeFlag(c.UserContext(), actor(c), id, flag, value)
		if err != nil {
			return respondError(c, err)
		}
		return respondOK(c, recipe)
	}
}

// ApproveRecipe handles PUT /api/admin/recipes/:id/approve
// @Summary Approve or hide a recipe
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Param request body object{isApproved=bool} true "Approval"
// @Success 200 {object} Response{data=models.Recipe}
// @Router /admin/recipes/{id}/approve [put]
func (s *Server) ApproveRecipe(c *fiber.Ctx) error {
	return s.setRecipeFlag(service.FlagApproved, "isApproved")(c)
}

// FeatureRecipe handles PUT /api/admin/recipes/:id/feature
// @Summary Feature a recipe
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Param request body object{isFeatured=bool} true "Featured"
// @Success 200 {object} Response{data=models.Recipe}
// @Router /admin/recipes/{id}/feature [put]
func (s *Server) FeatureRecipe(c *fiber.Ctx) error {
	return s.setRecipeFlag(service.FlagFeatured, "isFeatured")(c)
}

// TrendRecipe handles PUT /api/admin/recipes/:id/trending
// @Summary Mark a recipe trending
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Param request body object{isTrending=bool} true "Trending"
// @Success 200 {object} Response{data=models.Recipe}
// @Router /admin/recipes/{id}/trending [put]
func (s *Server) TrendRecipe(c *fiber.Ctx) error {
	return s.setRecipeFlag(service.FlagTrending, "isTrending")(c)
}

// GetAdminComments handles GET /api/admin/comments
// @Summary List comments
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param pending query bool false "Only unapproved comments"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} Response{data=[]models.Comment}
// @Router /admin/comments [get]
func (s *Server) GetAdminComments(c *fiber.Ctx) error {
	page := parsePagination(c, adminCommentListLimit)
	comments, total, err := s.adminService.ListComments(c.UserContext(), actor(c), repository.CommentListParams{
		PendingOnly: c.QueryBool("pending", false),
		Limit:       page.Limit,
		Offset:      page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondPage(c, comments, page, total)
}

// ApproveComment handles PUT /api/admin/comments/:id/approve
// @Summary Approve or hide a comment
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Param request body object{isApproved=bool} false "Approval, defaults to true"
// @Success 200 {object} Response{data=models.Comment}
// @Router /admin/comments/{id}/approve [put]
func (s *Server) ApproveComment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	req := struct {
		IsApproved *bool `json:"isApproved"`
	}{}
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return nil
		}
	}
	approved := req.IsApproved == nil || *req.IsApproved

	comment, err := s.adminService.SetCommentApproved(c.UserContext(), actor(c), id, approved)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, comment)
}

// DeleteAdminComment handles DELETE /api/admin/comments/:id
// @Summary Delete any comment
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} Response
// @Router /admin/comments/{id} [delete]
func (s *Server) DeleteAdminComment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.adminService.DeleteComment(c.UserContext(), actor(c), id); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, "Comment deleted successfully")
}

// CreateCookOff handles POST /api/admin/cookoff
// @Summary Create a cook-off
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CookOffInput true "Cook-off"
// @Success 201 {object} Response{data=models.CookOff}
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/cookoff [post]
func (s *Server) CreateCookOff(c *fiber.Ctx) error {
	var in service.CookOffInput
	if err := parseBody(c, &in); err != nil {
		return nil
	}
	cookOff, err := s.adminService.CreateCookOff(c.UserContext(), actor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, cookOff)
}

// GetCookOffs handles GET /api/admin/cookoff
// @Summary List cook-offs
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.CookOff}
// @Router /admin/cookoff [get]
func (s *Server) GetCookOffs(c *fiber.Ctx) error {
	cookOffs, err := s.adminService.ListCookOffs(c.UserContext(), actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, cookOffs)
}

// AddCookOffParticipant handles POST /api/admin/cookoff/:id/participants
// @Summary Enter a recipe into a cook-off
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Cook-off ID"
// @Param request body object{recipeId=int} true "Recipe"
// @Success 200 {object} Response{data=models.CookOff}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /admin/cookoff/{id}/participants [post]
func (s *Server) AddCookOffParticipant(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req struct {
		RecipeID uint `json:"recipeId"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	if req.RecipeID == 0 {
		return respondError(c, models.NewValidationError("recipeId is required"))
	}
	cookOff, err := s.adminService.EnterCookOff(c.UserContext(), actor(c), id, req.RecipeID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, cookOff)
}

// DeclareCookOffWinner handles POST /api/admin/cookoff/:id/winner
// @Summary Close a cook-off with a winner
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Cook-off ID"
// @Param request body object{userId=int} true "Winning chef"
// @Success 200 {object} Response{data=models.CookOff}
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/cookoff/{id}/winner [post]
func (s *Server) DeclareCookOffWinner(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req struct {
		UserID uint `json:"userId"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	if req.UserID == 0 {
		return respondError(c, models.NewValidationError("userId is required"))
	}
	cookOff, err := s.adminService.DeclareWinner(c.UserContext(), actor(c), id, req.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, cookOff)
}

// ResetWeeklyPoints handles POST /api/admin/reset-weekly-points
// @Summary Reset weekly points
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=object{users=int}}
// @Router /admin/reset-weekly-points [post]
func (s *Server) ResetWeeklyPoints(c *fiber.Ctx) error {
	n, err := s.adminService.ResetWeeklyPoints(c.UserContext(), actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(Response{
		Success: true,
		Message: "Weekly points reset successfully",
		Data:    fiber.Map{"users": n},
	})
}
