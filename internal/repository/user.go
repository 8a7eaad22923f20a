package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"craveconnect/internal/cache"
	"craveconnect/internal/database"
	"craveconnect/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserListParams filters the admin user listing.
type UserListParams struct {
	Role   models.Role
	Search string
	Limit  int
	Offset int
}

// UserRepository defines persistence operations for users and their social graph.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.User, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params UserListParams) ([]models.User, int64, error)
	Recent(ctx context.Context, limit int) ([]models.User, error)
	Count(ctx context.Context) (int64, error)
	TopChefs(ctx context.Context) ([]models.User, error)
	FollowCounts(ctx context.Context, id uint) (followers, following int64, err error)
	ToggleFollow(ctx context.Context, followerID, followeeID uint, intent *models.NotificationOutbox) (bool, int64, error)
	ToggleBookmark(ctx context.Context, userID, recipeID uint) (bool, error)
	ListBookmarks(ctx context.Context, userID uint) ([]models.Recipe, error)
	ResetWeeklyPoints(ctx context.Context) (int64, error)
}

// TopChefsLimit is the size of the chef leaderboard.
const TopChefsLimit = 20

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// GetByID is cache-aside on the user key. The cached copy never carries the password hash.
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := cache.Aside(ctx, cache.UserKey(id), &user, cache.UserTTL, func() error {
		err := r.db.WithContext(ctx).Preload("Badges").First(&user, id).Error
		return translate(err, "User", id)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail returns nil, nil when no user has the address.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// GetByUsername returns nil, nil when the username is free.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return models.NewConflictError("Username or email already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// Update writes only the named columns and returns the fresh row.
func (r *userRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.User, error) {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		if database.IsUniqueViolation(res.Error) {
			return nil, models.NewConflictError("Username or email already exists")
		}
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("User", id)
	}
	cache.InvalidateUser(ctx, id)
	return r.GetByID(ctx, id)
}

// Delete removes the user with their recipes (and everything hanging off them), comments,
// likes, ratings, follows, bookmarks, badges and notifications. Chat messages are kept.
// Aggregates on other users' recipes the user liked or rated are recomputed.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Select("id").First(&user, id).Error; err != nil {
			return translate(err, "User", id)
		}

		var ownRecipes []uint
		if err := tx.Model(&models.Recipe{}).Where("chef_id = ?", id).Pluck("id", &ownRecipes).Error; err != nil {
			return err
		}

		var touched []uint
		if err := tx.Raw(
			`SELECT recipe_id FROM recipe_likes WHERE user_id = ? UNION SELECT recipe_id FROM recipe_ratings WHERE user_id = ?`,
			id, id,
		).Scan(&touched).Error; err != nil {
			return err
		}

		if err := deleteRecipes(tx, ownRecipes); err != nil {
			return err
		}

		steps := []struct {
			model interface{}
			where string
			args  []interface{}
		}{
			{&models.CommentLike{}, "user_id = ? OR comment_id IN (SELECT id FROM comments WHERE user_id = ?)", []interface{}{id, id}},
			{&models.Comment{}, "user_id = ?", []interface{}{id}},
			{&models.RecipeLike{}, "user_id = ?", []interface{}{id}},
			{&models.RecipeRating{}, "user_id = ?", []interface{}{id}},
			{&models.Follow{}, "follower_id = ? OR followee_id = ?", []interface{}{id, id}},
			{&models.Bookmark{}, "user_id = ?", []interface{}{id}},
			{&models.Badge{}, "user_id = ?", []interface{}{id}},
			{&models.CookOffParticipant{}, "user_id = ?", []interface{}{id}},
			{&models.Notification{}, "recipient_id = ? OR sender_id = ?", []interface{}{id, id}},
			{&models.NotificationOutbox{}, "recipient_id = ? AND processed_at IS NULL", []interface{}{id}},
		}
		for _, s := range steps {
			if err := tx.Where(s.where, s.args...).Delete(s.model).Error; err != nil {
				return fmt.Errorf("delete %T: %w", s.model, err)
			}
		}

		for _, recipeID := range touched {
			if containsID(ownRecipes, recipeID) {
				continue
			}
			if err := recomputeLikes(tx, recipeID); err != nil {
				return err
			}
			if _, err := recomputeRatings(tx, recipeID); err != nil {
				return err
			}
		}

		return tx.Delete(&models.User{}, id).Error
	})
	if err != nil {
		return translate(err, "User", id)
	}
	cache.InvalidateUser(ctx, id)
	cache.InvalidateRecipeLists(ctx)
	cache.InvalidateLeaderboard(ctx)
	return nil
}

func (r *userRepository) List(ctx context.Context, params UserListParams) ([]models.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.User{})
	if params.Role != "" {
		q = q.Where("role = ?", params.Role)
	}
	if s := strings.TrimSpace(params.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var users []models.User
	err := q.Order("created_at DESC").Order("id DESC").
		Limit(clampLimit(params.Limit, 20, 100)).Offset(params.Offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return users, total, nil
}

func (r *userRepository) Recent(ctx context.Context, limit int) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Limit(limit).Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

// TopChefs ranks active chefs and admins by weekly then total points. Cached briefly.
func (r *userRepository) TopChefs(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := cache.Aside(ctx, cache.TopChefsKey, &users, cache.LeaderboardTTL, func() error {
		err := r.db.WithContext(ctx).
			Preload("Badges").
			Where("role IN ? AND is_active = ?", []models.Role{models.RoleChef, models.RoleAdmin}, true).
			Order("weekly_points DESC").Order("total_points DESC").Order("id ASC").
			Limit(TopChefsLimit).
			Find(&users).Error
		if err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) FollowCounts(ctx context.Context, id uint) (int64, int64, error) {
	var followers, following int64
	db := r.db.WithContext(ctx)
	if err := db.Model(&models.Follow{}).Where("followee_id = ?", id).Count(&followers).Error; err != nil {
		return 0, 0, models.NewInternalError(err)
	}
	if err := db.Model(&models.Follow{}).Where("follower_id = ?", id).Count(&following).Error; err != nil {
		return 0, 0, models.NewInternalError(err)
	}
	return followers, following, nil
}

// ToggleFollow removes the edge if present, otherwise inserts it and enqueues intent.
// It returns the new state and the followee's follower count.
func (r *userRepository) ToggleFollow(ctx context.Context, followerID, followeeID uint, intent *models.NotificationOutbox) (bool, int64, error) {
	var following bool
	var count int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target models.User
		if err := tx.Select("id").First(&target, followeeID).Error; err != nil {
			return translate(err, "User", nil)
		}

		res := tx.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).Delete(&models.Follow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			edge := models.Follow{FollowerID: followerID, FolloweeID: followeeID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error; err != nil {
				return err
			}
			following = true
			if err := enqueue(tx, intent); err != nil {
				return err
			}
		}

		return tx.Model(&models.Follow{}).Where("followee_id = ?", followeeID).Count(&count).Error
	})
	if err != nil {
		return false, 0, translate(err, "User", nil)
	}
	return following, count, nil
}

func (r *userRepository) ToggleBookmark(ctx context.Context, userID, recipeID uint) (bool, error) {
	var bookmarked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Select("id").First(&recipe, recipeID).Error; err != nil {
			return translate(err, "Recipe", nil)
		}

		res := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.Bookmark{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		bookmarked = true
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.Bookmark{UserID: userID, RecipeID: recipeID}).Error
	})
	if err != nil {
		return false, translate(err, "Recipe", nil)
	}
	return bookmarked, nil
}

func (r *userRepository) ListBookmarks(ctx context.Context, userID uint) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := r.db.WithContext(ctx).
		Preload("Chef").
		Joins("JOIN bookmarks ON bookmarks.recipe_id = recipes.id").
		Where("bookmarks.user_id = ?", userID).
		Order("bookmarks.created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	attachChefs(recipes)
	return recipes, nil
}

// ResetWeeklyPoints zeroes every user's weekly points and returns the rows touched.
func (r *userRepository) ResetWeeklyPoints(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("weekly_points <> ?", 0).
		UpdateColumn("weekly_points", 0)
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	cache.InvalidateLeaderboard(ctx)
	return res.RowsAffected, nil
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
