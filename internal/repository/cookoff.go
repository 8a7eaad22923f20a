package repository

import (
	"context"

	"craveconnect/internal/database"
	"craveconnect/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CookOffRepository persists cook-off challenges and their entries.
type CookOffRepository interface {
	Create(ctx context.Context, cookOff *models.CookOff) error
	GetByID(ctx context.Context, id uint) (*models.CookOff, error)
	List(ctx context.Context) ([]models.CookOff, error)
	AddParticipant(ctx context.Context, cookOffID, recipeID uint) (*models.CookOffParticipant, error)
	SetWinner(ctx context.Context, cookOffID, userID uint) (*models.CookOff, error)
}

type cookOffRepository struct {
	db *gorm.DB
}

// NewCookOffRepository returns a gorm-backed CookOffRepository.
func NewCookOffRepository(db *gorm.DB) CookOffRepository {
	return &cookOffRepository{db: db}
}

func (r *cookOffRepository) Create(ctx context.Context, cookOff *models.CookOff) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(cookOff).Error; err != nil {
		return models.NewInternalError(err)
	}
	cookOff.Participants = []models.CookOffParticipant{}
	return nil
}

func (r *cookOffRepository) GetByID(ctx context.Context, id uint) (*models.CookOff, error) {
	var cookOff models.CookOff
	if err := r.db.WithContext(ctx).Preload("Participants").First(&cookOff, id).Error; err != nil {
		return nil, translate(err, "Cook-off", nil)
	}
	list := []models.CookOff{cookOff}
	if err := r.enrich(ctx, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

// List returns every cook-off, newest start first, with participant details.
func (r *cookOffRepository) List(ctx context.Context) ([]models.CookOff, error) {
	cookOffs := []models.CookOff{}
	err := r.db.WithContext(ctx).
		Preload("Participants", func(db *gorm.DB) *gorm.DB { return db.Order("votes DESC").Order("id ASC") }).
		Order("start_date DESC").Order("id DESC").
		Find(&cookOffs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.enrich(ctx, cookOffs); err != nil {
		return nil, err
	}
	return cookOffs, nil
}

// enrich fills winner and participant user summaries and recipe titles with two lookups.
func (r *cookOffRepository) enrich(ctx context.Context, cookOffs []models.CookOff) error {
	userIDs := map[uint]struct{}{}
	recipeIDs := map[uint]struct{}{}
	for _, c := range cookOffs {
		if c.WinnerID != nil {
			userIDs[*c.WinnerID] = struct{}{}
		}
		for _, p := range c.Participants {
			userIDs[p.UserID] = struct{}{}
			recipeIDs[p.RecipeID] = struct{}{}
		}
	}
	if len(userIDs) == 0 {
		return nil
	}

	var users []models.User
	if err := r.db.WithContext(ctx).Select("id", "username", "avatar", "role").Where("id IN ?", keys(userIDs)).Find(&users).Error; err != nil {
		return models.NewInternalError(err)
	}
	userByID := make(map[uint]*models.User, len(users))
	for i := range users {
		userByID[users[i].ID] = &users[i]
	}

	recipeByID := map[uint]*models.Recipe{}
	if len(recipeIDs) > 0 {
		var recipes []models.Recipe
		if err := r.db.WithContext(ctx).Select("id", "title", "image").Where("id IN ?", keys(recipeIDs)).Find(&recipes).Error; err != nil {
			return models.NewInternalError(err)
		}
		for i := range recipes {
			recipeByID[recipes[i].ID] = &recipes[i]
		}
	}

	for i := range cookOffs {
		if cookOffs[i].WinnerID != nil {
			cookOffs[i].Winner = userByID[*cookOffs[i].WinnerID].Summary()
		}
		for j := range cookOffs[i].Participants {
			p := &cookOffs[i].Participants[j]
			p.User = userByID[p.UserID].Summary()
			if recipe, ok := recipeByID[p.RecipeID]; ok {
				p.RecipeTitle = recipe.Title
				p.RecipeImage = recipe.Image
			}
		}
	}
	return nil
}

// AddParticipant enters the recipe's chef into the cook-off with that recipe.
func (r *cookOffRepository) AddParticipant(ctx context.Context, cookOffID, recipeID uint) (*models.CookOffParticipant, error) {
	var participant models.CookOffParticipant

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cookOff models.CookOff
		if err := tx.Select("id", "is_active").First(&cookOff, cookOffID).Error; err != nil {
			return translate(err, "Cook-off", nil)
		}
		if !cookOff.IsActive {
			return models.NewValidationError("Cook-off is closed")
		}

		var recipe models.Recipe
		if err := tx.Select("id", "chef_id", "title", "image").First(&recipe, recipeID).Error; err != nil {
			return translate(err, "Recipe", nil)
		}

		participant = models.CookOffParticipant{CookOffID: cookOffID, RecipeID: recipeID, UserID: recipe.ChefID}
		if err := tx.Create(&participant).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return models.NewConflictError("Recipe is already entered in this cook-off")
			}
			return err
		}
		participant.RecipeTitle = recipe.Title
		participant.RecipeImage = recipe.Image
		return nil
	})
	if err != nil {
		return nil, translate(err, "Cook-off", nil)
	}
	return &participant, nil
}

// SetWinner records the winner, who must be a participant, and closes the cook-off.
func (r *cookOffRepository) SetWinner(ctx context.Context, cookOffID, userID uint) (*models.CookOff, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cookOff models.CookOff
		if err := tx.Select("id").First(&cookOff, cookOffID).Error; err != nil {
			return translate(err, "Cook-off", nil)
		}

		var entries int64
		if err := tx.Model(&models.CookOffParticipant{}).
			Where("cook_off_id = ? AND user_id = ?", cookOffID, userID).
			Count(&entries).Error; err != nil {
			return err
		}
		if entries == 0 {
			return models.NewValidationError("Winner must be a participant")
		}

		return tx.Model(&models.CookOff{}).Where("id = ?", cookOffID).Updates(map[string]interface{}{
			"winner_id": userID,
			"is_active": false,
		}).Error
	})
	if err != nil {
		return nil, translate(err, "Cook-off", nil)
	}
	return r.GetByID(ctx, cookOffID)
}

func keys(set map[uint]struct{}) []uint {
	out := make([]uint, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}
