package service

import (
	"context"
	"strings"

	"craveconnect/internal/models"
	"craveconnect/internal/repository"
	"craveconnect/internal/validation"
)

// ProfileRecipeLimit bounds the recipes embedded in a profile.
const ProfileRecipeLimit = 12

type UserService struct {
	userRepo   repository.UserRepository
	recipeRepo repository.RecipeRepository
	waker      Waker
}

type UpdateProfileInput struct {
	UserID   uint
	Username *string
	Bio      *string
	Avatar   *string
}

// Profile is a user with their recent approved recipes.
type Profile struct {
	User    *models.User    `json:"user"`
	Recipes []models.Recipe `json:"recipes"`
}

// FollowResult is the outcome of a follow toggle.
type FollowResult struct {
	Following      bool  `json:"following"`
	FollowersCount int64 `json:"followersCount"`
}

func NewUserService(userRepo repository.UserRepository, recipeRepo repository.RecipeRepository, waker Waker) *UserService {
	return &UserService{userRepo: userRepo, recipeRepo: recipeRepo, waker: waker}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetProfile returns the user with follow counts and up to ProfileRecipeLimit recipes.
func (s *UserService) GetProfile(ctx context.Context, id uint) (*Profile, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	followers, following, err := s.userRepo.FollowCounts(ctx, id)
	if err != nil {
		return nil, err
	}
	user.FollowersCount = followers
	user.FollowingCount = following

	recipes, err := s.recipeRepo.ListByChef(ctx, id, ProfileRecipeLimit)
	if err != nil {
		return nil, err
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	return &Profile{User: user, Recipes: recipes}, nil
}

// UpdateProfile changes the caller's own username, bio or avatar. Nil fields are left alone.
func (s *UserService) UpdateProfile(ctx context.Context, actor Actor, in UpdateProfileInput) (*models.User, error) {
	if actor.ID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own profile")
	}

	fields := map[string]interface{}{}
	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if err := validation.ValidateUsername(username); err != nil {
			return nil, invalid(err)
		}
		fields["username"] = username
	}
	if in.Bio != nil {
		bio := strings.TrimSpace(*in.Bio)
		if err := validation.ValidateBio(bio); err != nil {
			return nil, invalid(err)
		}
		fields["bio"] = bio
	}
	if in.Avatar != nil {
		avatar := strings.TrimSpace(*in.Avatar)
		if avatar != "" {
			if err := validation.ValidateImageURL(avatar); err != nil {
				return nil, models.NewValidationError("Avatar must be an http or https URL")
			}
		}
		fields["avatar"] = avatar
	}
	if len(fields) == 0 {
		return s.userRepo.GetByID(ctx, in.UserID)
	}

	return s.userRepo.Update(ctx, in.UserID, fields)
}

// ToggleFollow follows or unfollows targetID. Only a new follow notifies the target.
func (s *UserService) ToggleFollow(ctx context.Context, actor Actor, targetID uint) (*FollowResult, error) {
	if actor.ID == targetID {
		return nil, models.NewValidationError("You cannot follow yourself")
	}

	following, followers, err := s.userRepo.ToggleFollow(ctx, actor.ID, targetID, followNotification(actor, targetID))
	if err != nil {
		return nil, err
	}
	if following {
		wake(s.waker)
	}
	return &FollowResult{Following: following, FollowersCount: followers}, nil
}

func (s *UserService) ToggleBookmark(ctx context.Context, actor Actor, recipeID uint) (bool, error) {
	return s.userRepo.ToggleBookmark(ctx, actor.ID, recipeID)
}

// Bookmarks lists the recipes a user saved. Only the owner may read them.
func (s *UserService) Bookmarks(ctx context.Context, actor Actor, userID uint) ([]models.Recipe, error) {
	if actor.ID != userID {
		return nil, models.NewForbiddenError("You can only view your own bookmarks")
	}
	return s.userRepo.ListBookmarks(ctx, userID)
}

func (s *UserService) TopChefs(ctx context.Context) ([]models.User, error) {
	return s.userRepo.TopChefs(ctx)
}
