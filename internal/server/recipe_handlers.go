package server

import (
	"craveconnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

// recipeListLimit is the default page size of the public recipe listing.
const recipeListLimit = 12

// GetRecipes handles GET /api/recipes
// @Summary List recipes
// @Description Approved recipes with filters, search and sorting
// @Tags recipes
// @Produce json
// @Param cuisine query string false "Cuisine"
// @Param category query string false "Category"
// @Param difficulty query string false "Difficulty"
// @Param chef query int false "Chef user ID"
// @Param search query string false "Substring of title, description or tags"
// @Param ingredient query string false "Substring of an ingredient name"
// @Param sort query string false "-createdAt, createdAt, -averageRating, -views, -likesCount or title"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} Response{data=[]models.Recipe}
// @Router /recipes [get]
func (s *Server) GetRecipes(c *fiber.Ctx) error {
	page := parsePagination(c, recipeListLimit)
	chefID := c.QueryInt("chef", 0)
	if chefID < 0 {
		chefID = 0
	}

	recipes, total, err := s.recipeService.ListRecipes(c.UserContext(), service.ListRecipesInput{
		Cuisine:    c.Query("cuisine"),
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
		ChefID:     uint(chefID),
		Search:     c.Query("search"),
		Ingredient: c.Query("ingredient"),
		Sort:       c.Query("sort"),
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondPage(c, recipes, page, total)
}

// GetTrendingRecipes handles GET /api/recipes/trending
// @Summary Trending recipes
// @Tags recipes
// @Produce json
// @Success 200 {object} Response{data=[]models.Recipe}
// @Router /recipes/trending [get]
func (s *Server) GetTrendingRecipes(c *fiber.Ctx) error {
	recipes, err := s.recipeService.Trending(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, recipes)
}

// GetFeaturedRecipes handles GET /api/recipes/featured
// @Summary Featured recipes
// @Tags recipes
// @Produce json
// @Success 200 {object} Response{data=[]models.Recipe}
// @Router /recipes/featured [get]
func (s *Server) GetFeaturedRecipes(c *fiber.Ctx) error {
	recipes, err := s.recipeService.Featured(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, recipes)
}

// GetRecipe handles GET /api/recipes/:id
// @Summary Recipe detail
// @Description Recipe with chef summary and ratings. Counts a view.
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} Response{data=models.Recipe}
// @Failure 404 {object} models.ErrorResponse
// @Router /recipes/{id} [get]
func (s *Server) GetRecipe(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	recipe, err := s.recipeService.GetRecipe(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, recipe)
}

// CreateRecipe handles POST /api/recipes
// @Summary Publish a recipe
// @Description Chefs and admins only. Awards 10 points to the chef.
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.RecipeInput true "Recipe"
// @Success 201 {object} Response{data=models.Recipe}
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /recipes [post]
func (s *Server) CreateRecipe(c *fiber.Ctx) error {
	var in service.RecipeInput
	if err := parseBody(c, &in); err != nil {
		return nil
	}
	recipe, err := s.recipeService.CreateRecipe(c.UserContext(), actor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, recipe)
}

// UpdateRecipe handles PUT /api/recipes/:id
// @Summary Update a recipe
// @Description Chef of the recipe or an admin
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Param request body service.RecipeInput true "Recipe"
// @Success 200 {object} Response{data=models.Recipe}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /recipes/{id} [put]
func (s *Server) UpdateRecipe(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var in service.RecipeInput
	if err := parseBody(c, &in); err != nil {
		return nil
	}
	recipe, err := s.recipeService.UpdateRecipe(c.UserContext(), actor(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, recipe)
}

// DeleteRecipe handles DELETE /api/recipes/:id
// @Summary Delete a recipe
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 200 {object} Response
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /recipes/{id} [delete]
func (s *Server) DeleteRecipe(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.recipeService.DeleteRecipe(c.UserContext(), actor(c), id); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, "Recipe deleted successfully")
}

// LikeRecipe handles POST /api/recipes/:id/like
// @Summary Toggle like
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 200 {object} Response{data=models.LikeResult}
// @Failure 404 {object} models.ErrorResponse
// @Router /recipes/{id}/like [post]
func (s *Server) LikeRecipe(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	res, err := s.recipeService.ToggleLike(c.UserContext(), actor(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, res)
}

// RateRecipe handles POST /api/recipes/:id/rate
// @Summary Rate a recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Param request body object{rating=int} true "Rating 1-5"
// @Success 200 {object} Response{data=models.RatingSummary}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /recipes/{id}/rate [post]
func (s *Server) RateRecipe(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req struct {
		Rating int `json:"rating"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	summary, err := s.recipeService.Rate(c.UserContext(), actor(c), id, req.Rating)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, summary)
}
