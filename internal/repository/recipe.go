package repository

import (
	"context"
	"fmt"
	"math"
	"strings"

	"craveconnect/internal/cache"
	"craveconnect/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeFilter narrows the public recipe listing. Zero values mean "any".
type RecipeFilter struct {
	Cuisine    string
	Category   string
	Difficulty string
	ChefID     uint
	Search     string
	Ingredient string
	Sort       string
	Limit      int
	Offset     int
	// Approved restricts the listing to one approval state; nil lists both.
	Approved *bool
}

// Accepted values of RecipeFilter.Sort.
var recipeSorts = map[string]string{
	"-createdAt":     "created_at DESC",
	"createdAt":      "created_at ASC",
	"-averageRating": "average_rating DESC",
	"-views":         "views DESC",
	"-likesCount":    "likes_count DESC",
	"title":          "title ASC",
}

// DefaultRecipeSort is applied when the requested sort is empty or unknown.
const DefaultRecipeSort = "-createdAt"

const (
	trendingLimit = 10
	featuredLimit = 6
)

// RecipeRepository defines persistence operations for recipes, likes and ratings.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe, points int) error
	GetByID(ctx context.Context, id uint) (*models.Recipe, error)
	GetDetail(ctx context.Context, id uint) (*models.Recipe, error)
	IncrementViews(ctx context.Context, id uint) error
	List(ctx context.Context, filter RecipeFilter) ([]models.Recipe, int64, error)
	ListByChef(ctx context.Context, chefID uint, limit int) ([]models.Recipe, error)
	Trending(ctx context.Context) ([]models.Recipe, error)
	Featured(ctx context.Context) ([]models.Recipe, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.Recipe, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context, approved *bool) (int64, error)
	ToggleLike(ctx context.Context, recipeID, userID uint, notify OutboxBuilder) (*models.LikeResult, error)
	UpsertRating(ctx context.Context, recipeID, userID uint, value int, notify OutboxBuilder) (*models.RatingSummary, error)
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository returns a new RecipeRepository implementation.
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// Create inserts the recipe and awards points to its chef in the same transaction.
func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe, points int) error {
	approved := recipe.IsApproved
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		// A false is replaced by the column default on insert.
		if !approved {
			if err := tx.Model(recipe).UpdateColumn("is_approved", false).Error; err != nil {
				return err
			}
			recipe.IsApproved = false
		}
		if points == 0 {
			return nil
		}
		return tx.Model(&models.User{}).Where("id = ?", recipe.ChefID).UpdateColumns(map[string]interface{}{
			"weekly_points": gorm.Expr("weekly_points + ?", points),
			"total_points":  gorm.Expr("total_points + ?", points),
		}).Error
	})
	if err != nil {
		return translate(err, "Recipe", nil)
	}
	cache.InvalidateUser(ctx, recipe.ChefID)
	cache.InvalidateRecipeLists(ctx)
	cache.InvalidateLeaderboard(ctx)
	return nil
}

// GetByID loads the bare recipe row.
func (r *recipeRepository) GetByID(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.db.WithContext(ctx).First(&recipe, id).Error; err != nil {
		return nil, translate(err, "Recipe", nil)
	}
	return &recipe, nil
}

// GetDetail loads the recipe with its chef, ratings with raters, and liker IDs.
func (r *recipeRepository) GetDetail(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.WithContext(ctx).
		Preload("Chef").
		Preload("Ratings", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Ratings.User").
		First(&recipe, id).Error
	if err != nil {
		return nil, translate(err, "Recipe", nil)
	}

	recipe.ChefSummary = recipe.Chef.Summary()
	for i := range recipe.Ratings {
		recipe.Ratings[i].Rater = recipe.Ratings[i].User.Summary()
	}

	likes, err := likerIDs(r.db.WithContext(ctx), id)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	recipe.LikedBy = likes
	return &recipe, nil
}

// IncrementViews bumps the counter in place without touching updated_at.
func (r *recipeRepository) IncrementViews(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *recipeRepository) List(ctx context.Context, filter RecipeFilter) ([]models.Recipe, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Recipe{})

	if filter.Approved != nil {
		q = q.Where("is_approved = ?", *filter.Approved)
	}
	if filter.Cuisine != "" {
		q = q.Where("cuisine = ?", filter.Cuisine)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Difficulty != "" {
		q = q.Where("difficulty = ?", filter.Difficulty)
	}
	if filter.ChefID != 0 {
		q = q.Where("chef_id = ?", filter.ChefID)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(CAST(tags AS TEXT)) LIKE ?", like, like, like)
	}
	if s := strings.TrimSpace(filter.Ingredient); s != "" {
		q = q.Where(ingredientMatch(r.db.Dialector.Name()), "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	order, ok := recipeSorts[filter.Sort]
	if !ok {
		order = recipeSorts[DefaultRecipeSort]
	}

	var recipes []models.Recipe
	err := q.Preload("Chef").
		Order(order).Order("id DESC").
		Limit(clampLimit(filter.Limit, 12, 100)).Offset(filter.Offset).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	attachChefs(recipes)
	return recipes, total, nil
}

// ingredientMatch returns a predicate matching recipes with an ingredient whose
// lowercased name is LIKE the single bound argument.
func ingredientMatch(dialect string) string {
	if dialect == "postgres" {
		return "EXISTS (SELECT 1 FROM jsonb_array_elements(recipes.ingredients) AS ing WHERE LOWER(ing->>'name') LIKE ?)"
	}
	return "EXISTS (SELECT 1 FROM json_each(recipes.ingredients) AS ing WHERE LOWER(json_extract(ing.value, '$.name')) LIKE ?)"
}

func (r *recipeRepository) ListByChef(ctx context.Context, chefID uint, limit int) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := r.db.WithContext(ctx).
		Where("chef_id = ? AND is_approved = ?", chefID, true).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return recipes, nil
}

// Trending returns approved trending recipes by views then likes.
func (r *recipeRepository) Trending(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := cache.Aside(ctx, cache.TrendingRecipesKey, &recipes, cache.RecipeListTTL, func() error {
		err := r.db.WithContext(ctx).Preload("Chef").
			Where("is_trending = ? AND is_approved = ?", true, true).
			Order("views DESC").Order("likes_count DESC").Order("id DESC").
			Limit(trendingLimit).
			Find(&recipes).Error
		if err != nil {
			return models.NewInternalError(err)
		}
		attachChefs(recipes)
		return nil
	})
	return recipes, err
}

// Featured returns approved featured recipes by rating.
func (r *recipeRepository) Featured(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := cache.Aside(ctx, cache.FeaturedRecipesKey, &recipes, cache.RecipeListTTL, func() error {
		err := r.db.WithContext(ctx).Preload("Chef").
			Where("is_featured = ? AND is_approved = ?", true, true).
			Order("average_rating DESC").Order("id DESC").
			Limit(featuredLimit).
			Find(&recipes).Error
		if err != nil {
			return models.NewInternalError(err)
		}
		attachChefs(recipes)
		return nil
	})
	return recipes, err
}

// Update writes the named columns and returns the fresh row.
func (r *recipeRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.Recipe, error) {
	res := r.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Recipe", nil)
	}
	cache.InvalidateRecipeLists(ctx)
	return r.GetByID(ctx, id)
}

// Delete removes the recipe with its likes, ratings, comments, bookmarks and cook-off entries.
func (r *recipeRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Select("id").First(&recipe, id).Error; err != nil {
			return err
		}
		return deleteRecipes(tx, []uint{id})
	})
	if err != nil {
		return translate(err, "Recipe", nil)
	}
	cache.InvalidateRecipeLists(ctx)
	return nil
}

func (r *recipeRepository) Count(ctx context.Context, approved *bool) (int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Recipe{})
	if approved != nil {
		q = q.Where("is_approved = ?", *approved)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

// ToggleLike deletes the user's like if present, otherwise inserts it. likes_count is
// recomputed and, for a new like, the notify intent is enqueued, all in one transaction.
func (r *recipeRepository) ToggleLike(ctx context.Context, recipeID, userID uint, notify OutboxBuilder) (*models.LikeResult, error) {
	result := &models.LikeResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := lockRecipe(tx, recipeID)
		if err != nil {
			return err
		}

		res := tx.Where("recipe_id = ? AND user_id = ?", recipeID, userID).Delete(&models.RecipeLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			like := models.RecipeLike{RecipeID: recipeID, UserID: userID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
				return err
			}
			result.Liked = true
			if notify != nil {
				if err := enqueue(tx, notify(recipe)); err != nil {
					return err
				}
			}
		}

		if err := recomputeLikes(tx, recipeID); err != nil {
			return err
		}
		result.Likes, err = likerIDs(tx, recipeID)
		return err
	})
	if err != nil {
		return nil, translate(err, "Recipe", nil)
	}
	return result, nil
}

// UpsertRating stores the user's score, replacing an earlier one, and recomputes the
// recipe aggregate under a row lock. notify runs only for a first rating.
func (r *recipeRepository) UpsertRating(ctx context.Context, recipeID, userID uint, value int, notify OutboxBuilder) (*models.RatingSummary, error) {
	var summary *models.RatingSummary

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := lockRecipe(tx, recipeID)
		if err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.RecipeRating{}).
			Where("recipe_id = ? AND user_id = ?", recipeID, userID).
			Count(&existing).Error; err != nil {
			return err
		}

		rating := models.RecipeRating{RecipeID: recipeID, UserID: userID, Value: value}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "recipe_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Omit(clause.Associations).Create(&rating).Error; err != nil {
			return err
		}

		if existing == 0 && notify != nil {
			if err := enqueue(tx, notify(recipe)); err != nil {
				return err
			}
		}

		summary, err = recomputeRatings(tx, recipeID)
		return err
	})
	if err != nil {
		return nil, translate(err, "Recipe", nil)
	}
	cache.InvalidateRecipeLists(ctx)
	return summary, nil
}

// lockRecipe reads the columns notifications need and holds the row for the transaction.
// Databases without row locks (sqlite) serialize writers instead.
func lockRecipe(tx *gorm.DB, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "title", "chef_id").
		First(&recipe, id).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func likerIDs(db *gorm.DB, recipeID uint) ([]uint, error) {
	ids := []uint{}
	err := db.Model(&models.RecipeLike{}).
		Where("recipe_id = ?", recipeID).
		Order("created_at ASC").Order("user_id ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

func recomputeLikes(tx *gorm.DB, recipeID uint) error {
	return tx.Model(&models.Recipe{}).Where("id = ?", recipeID).
		UpdateColumn("likes_count", gorm.Expr("(SELECT COUNT(*) FROM recipe_likes WHERE recipe_id = ?)", recipeID)).Error
}

// recomputeRatings rewrites average_rating (one decimal) and total_ratings from the
// rating table.
func recomputeRatings(tx *gorm.DB, recipeID uint) (*models.RatingSummary, error) {
	var agg struct {
		Total     int64
		RatingSum int64
	}
	if err := tx.Model(&models.RecipeRating{}).
		Select("COUNT(*) AS total, COALESCE(SUM(value), 0) AS rating_sum").
		Where("recipe_id = ?", recipeID).
		Scan(&agg).Error; err != nil {
		return nil, err
	}

	summary := &models.RatingSummary{TotalRatings: int(agg.Total)}
	if agg.Total > 0 {
		summary.AverageRating = RoundRating(float64(agg.RatingSum) / float64(agg.Total))
	}

	err := tx.Model(&models.Recipe{}).Where("id = ?", recipeID).UpdateColumns(map[string]interface{}{
		"average_rating": summary.AverageRating,
		"total_ratings":  summary.TotalRatings,
	}).Error
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// RoundRating rounds a mean rating to one decimal place.
func RoundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}

// deleteRecipes removes recipes and every row that references them.
func deleteRecipes(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	steps := []struct {
		model interface{}
		where string
	}{
		{&models.CommentLike{}, "comment_id IN (SELECT id FROM comments WHERE recipe_id IN ?)"},
		{&models.Comment{}, "recipe_id IN ?"},
		{&models.RecipeLike{}, "recipe_id IN ?"},
		{&models.RecipeRating{}, "recipe_id IN ?"},
		{&models.Bookmark{}, "recipe_id IN ?"},
		{&models.CookOffParticipant{}, "recipe_id IN ?"},
		{&models.Recipe{}, "id IN ?"},
	}
	for _, s := range steps {
		if err := tx.Where(s.where, ids).Delete(s.model).Error; err != nil {
			return fmt.Errorf("delete %T: %w", s.model, err)
		}
	}
	return nil
}

// attachChefs copies preloaded chefs into their public summary.
func attachChefs(recipes []models.Recipe) {
	for i := range recipes {
		recipes[i].ChefSummary = recipes[i].Chef.Summary()
	}
}
