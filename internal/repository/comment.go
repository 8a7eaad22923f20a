package repository

import (
	"context"

	"craveconnect/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentListParams filters the moderation comment listing.
type CommentListParams struct {
	PendingOnly bool
	Limit       int
	Offset      int
}

// CommentRepository defines persistence operations for recipe comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment, notify OutboxBuilder) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByRecipe(ctx context.Context, recipeID uint) ([]models.Comment, error)
	List(ctx context.Context, params CommentListParams) ([]models.Comment, int64, error)
	SetApproved(ctx context.Context, id uint, approved bool) (*models.Comment, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context, pendingOnly bool) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts the comment on an existing recipe and enqueues notify's intent in the
// same transaction.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment, notify OutboxBuilder) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Select("id", "title", "chef_id").First(&recipe, comment.RecipeID).Error; err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(comment).Error; err != nil {
			return err
		}
		if notify == nil {
			return nil
		}
		return enqueue(tx, notify(&recipe))
	})
	if err != nil {
		return translate(err, "Recipe", nil)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		return nil, translate(err, "Comment", nil)
	}
	comment.Author = comment.User.Summary()
	return &comment, nil
}

// ListByRecipe returns approved comments, newest first, with authors.
func (r *commentRepository) ListByRecipe(ctx context.Context, recipeID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("recipe_id = ? AND is_approved = ?", recipeID, true).
		Order("created_at DESC").Order("id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	attachAuthors(comments)
	return comments, nil
}

// List pages over all comments for moderation, with author and recipe title.
func (r *commentRepository) List(ctx context.Context, params CommentListParams) ([]models.Comment, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Comment{})
	if params.PendingOnly {
		q = q.Where("comments.is_approved = ?", false)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var comments []models.Comment
	err := q.Preload("User").
		Select("comments.*, recipes.title AS recipe_title").
		Joins("LEFT JOIN recipes ON recipes.id = comments.recipe_id").
		Order("comments.created_at DESC").Order("comments.id DESC").
		Limit(clampLimit(params.Limit, 20, 100)).Offset(params.Offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	attachAuthors(comments)
	return comments, total, nil
}

func (r *commentRepository) SetApproved(ctx context.Context, id uint, approved bool) (*models.Comment, error) {
	res := r.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id).Update("is_approved", approved)
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Comment", nil)
	}
	return r.GetByID(ctx, id)
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", id).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Comment{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate(err, "Comment", nil)
}

func (r *commentRepository) Count(ctx context.Context, pendingOnly bool) (int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Comment{})
	if pendingOnly {
		q = q.Where("is_approved = ?", false)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

func attachAuthors(comments []models.Comment) {
	for i := range comments {
		comments[i].Author = comments[i].User.Summary()
	}
}
