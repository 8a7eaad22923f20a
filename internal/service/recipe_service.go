package service

import (
	"context"
	"log/slog"
	"strings"

	"craveconnect/internal/middleware"
	"craveconnect/internal/models"
	"craveconnect/internal/observability"
	"craveconnect/internal/repository"
	"craveconnect/internal/validation"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/datatypes"
)

type RecipeService struct {
	recipeRepo  repository.RecipeRepository
	waker       Waker
	premoderate func(chefID uint) bool
}

// RecipeInput carries the user-editable recipe fields.
type RecipeInput struct {
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Image        string               `json:"image"`
	Cuisine      string               `json:"cuisine"`
	Category     string               `json:"category"`
	Ingredients  []models.Ingredient  `json:"ingredients"`
	Instructions []models.Instruction `json:"instructions"`
	PrepTime     int                  `json:"prepTime"`
	CookTime     int                  `json:"cookTime"`
	Servings     int                  `json:"servings"`
	Difficulty   string               `json:"difficulty"`
	Tags         []string             `json:"tags"`
}

// ListRecipesInput mirrors the public listing query string.
type ListRecipesInput struct {
	Cuisine    string
	Category   string
	Difficulty string
	ChefID     uint
	Search     string
	Ingredient string
	Sort       string
	Limit      int
	Offset     int
}

func NewRecipeService(recipeRepo repository.RecipeRepository, waker Waker) *RecipeService {
	return &RecipeService{recipeRepo: recipeRepo, waker: waker}
}

// SetPremoderation installs a check that holds new recipes of matching chefs for review.
func (s *RecipeService) SetPremoderation(fn func(chefID uint) bool) {
	s.premoderate = fn
}

func (s *RecipeService) approvedOnCreate(actor Actor) bool {
	if s.premoderate == nil || actor.Caps.Has(models.CapModerate) {
		return true
	}
	return !s.premoderate(actor.ID)
}

func (in RecipeInput) apply(r *models.Recipe) {
	r.Title = strings.TrimSpace(in.Title)
	r.Description = strings.TrimSpace(in.Description)
	r.Image = strings.TrimSpace(in.Image)
	r.Cuisine = in.Cuisine
	r.Category = in.Category
	r.Ingredients = datatypes.JSONSlice[models.Ingredient](in.Ingredients)
	r.Instructions = datatypes.JSONSlice[models.Instruction](numberSteps(in.Instructions))
	r.PrepTime = in.PrepTime
	r.CookTime = in.CookTime
	r.Servings = in.Servings
	r.Difficulty = in.Difficulty
	if r.Difficulty == "" {
		r.Difficulty = "Medium"
	}
	r.Tags = datatypes.JSONSlice[string](cleanTags(in.Tags))
}

// numberSteps fills missing step numbers from the list position.
func numberSteps(steps []models.Instruction) []models.Instruction {
	out := make([]models.Instruction, len(steps))
	for i, s := range steps {
		if s.Step <= 0 {
			s.Step = i + 1
		}
		out[i] = s
	}
	return out
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// CreateRecipe publishes a recipe for a chef and awards RecipePoints.
func (s *RecipeService) CreateRecipe(ctx context.Context, actor Actor, in RecipeInput) (*models.Recipe, error) {
	if !actor.Caps.Has(models.CapPublish) {
		return nil, models.NewForbiddenError("Only chefs can publish recipes")
	}

	recipe := &models.Recipe{ChefID: actor.ID, IsApproved: s.approvedOnCreate(actor)}
	in.apply(recipe)
	if err := validation.ValidateRecipe(recipe); err != nil {
		return nil, invalid(err)
	}

	if err := s.recipeRepo.Create(ctx, recipe, RecipePoints); err != nil {
		return nil, err
	}
	middleware.Logger.InfoContext(ctx, "recipe created",
		slog.Uint64("recipe_id", uint64(recipe.ID)),
		slog.Uint64("chef_id", uint64(actor.ID)),
		slog.Bool("approved", recipe.IsApproved),
	)
	return s.recipeRepo.GetDetail(ctx, recipe.ID)
}

// GetRecipe returns the recipe detail and counts the view.
func (s *RecipeService) GetRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	if err := s.recipeRepo.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	return s.recipeRepo.GetDetail(ctx, id)
}

// ListRecipes returns approved recipes matching the filter with the total match count.
func (s *RecipeService) ListRecipes(ctx context.Context, in ListRecipesInput) ([]models.Recipe, int64, error) {
	approved := true
	return s.recipeRepo.List(ctx, repository.RecipeFilter{
		Cuisine:    in.Cuisine,
		Category:   in.Category,
		Difficulty: in.Difficulty,
		ChefID:     in.ChefID,
		Search:     in.Search,
		Ingredient: in.Ingredient,
		Sort:       in.Sort,
		Limit:      in.Limit,
		Offset:     in.Offset,
		Approved:   &approved,
	})
}

func (s *RecipeService) Trending(ctx context.Context) ([]models.Recipe, error) {
	return s.recipeRepo.Trending(ctx)
}

func (s *RecipeService) Featured(ctx context.Context) ([]models.Recipe, error) {
	return s.recipeRepo.Featured(ctx)
}

// UpdateRecipe replaces the editable fields. Only the chef or a moderator may edit.
func (s *RecipeService) UpdateRecipe(ctx context.Context, actor Actor, id uint, in RecipeInput) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanActOn(recipe.ChefID) {
		return nil, models.NewForbiddenError("Not authorized to update this recipe")
	}

	in.apply(recipe)
	if err := validation.ValidateRecipe(recipe); err != nil {
		return nil, invalid(err)
	}

	if _, err := s.recipeRepo.Update(ctx, id, map[string]interface{}{
		"title":        recipe.Title,
		"description":  recipe.Description,
		"image":        recipe.Image,
		"cuisine":      recipe.Cuisine,
		"category":     recipe.Category,
		"ingredients":  recipe.Ingredients,
		"instructions": recipe.Instructions,
		"prep_time":    recipe.PrepTime,
		"cook_time":    recipe.CookTime,
		"servings":     recipe.Servings,
		"difficulty":   recipe.Difficulty,
		"tags":         recipe.Tags,
	}); err != nil {
		return nil, err
	}
	return s.recipeRepo.GetDetail(ctx, id)
}

// DeleteRecipe removes a recipe. Points awarded for it are kept.
func (s *RecipeService) DeleteRecipe(ctx context.Context, actor Actor, id uint) error {
	recipe, err := s.recipeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanActOn(recipe.ChefID) {
		return models.NewForbiddenError("Not authorized to delete this recipe")
	}
	return s.recipeRepo.Delete(ctx, id)
}

// ToggleLike flips the actor's like and notifies the chef of a new like.
func (s *RecipeService) ToggleLike(ctx context.Context, actor Actor, recipeID uint) (*models.LikeResult, error) {
	ctx, span := observability.StartSpan(ctx, "RecipeService.ToggleLike",
		attribute.Int64("recipe.id", int64(recipeID)))
	res, err := s.recipeRepo.ToggleLike(ctx, recipeID, actor.ID, likeNotification(actor))
	observability.EndSpan(span, err)
	if err != nil {
		return nil, err
	}
	if res.Liked {
		wake(s.waker)
	}
	return res, nil
}

// Rate records a 1-5 score. Only a first rating notifies the chef.
func (s *RecipeService) Rate(ctx context.Context, actor Actor, recipeID uint, value int) (*models.RatingSummary, error) {
	if err := validation.ValidateRating(value); err != nil {
		return nil, models.NewValidationError("Rating must be between 1 and 5")
	}

	ctx, span := observability.StartSpan(ctx, "RecipeService.Rate",
		attribute.Int64("recipe.id", int64(recipeID)))
	summary, err := s.recipeRepo.UpsertRating(ctx, recipeID, actor.ID, value, ratingNotification(actor, value))
	observability.EndSpan(span, err)
	if err != nil {
		return nil, err
	}
	wake(s.waker)
	return summary, nil
}
