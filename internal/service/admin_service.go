package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"craveconnect/internal/middleware"
	"craveconnect/internal/models"
	"craveconnect/internal/repository"
	"craveconnect/internal/validation"
)

// RecentUsersLimit is the number of newest accounts shown on the dashboard.
const RecentUsersLimit = 5

// RecipeFlag names a moderation flag on a recipe.
type RecipeFlag string

const (
	FlagApproved RecipeFlag = "is_approved"
	FlagFeatured RecipeFlag = "is_featured"
	FlagTrending RecipeFlag = "is_trending"
)

// AdminStats is the moderation dashboard summary.
type AdminStats struct {
	TotalUsers      int64         `json:"totalUsers"`
	TotalRecipes    int64         `json:"totalRecipes"`
	TotalComments   int64         `json:"totalComments"`
	TotalMessages   int64         `json:"totalMessages"`
	PendingRecipes  int64         `json:"pendingRecipes"`
	PendingComments int64         `json:"pendingComments"`
	RecentUsers     []models.User `json:"recentUsers"`
}

// CookOffInput carries the fields of a new cook-off.
type CookOffInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Theme       string    `json:"theme"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
}

// AdminService backs the moderation surface. Every operation requires CapModerate.
type AdminService struct {
	userRepo    repository.UserRepository
	recipeRepo  repository.RecipeRepository
	commentRepo repository.CommentRepository
	chatRepo    repository.ChatRepository
	cookOffRepo repository.CookOffRepository
	now         func() time.Time
}

func NewAdminService(
	userRepo repository.UserRepository,
	recipeRepo repository.RecipeRepository,
	commentRepo repository.CommentRepository,
	chatRepo repository.ChatRepository,
	cookOffRepo repository.CookOffRepository,
) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		recipeRepo:  recipeRepo,
		commentRepo: commentRepo,
		chatRepo:    chatRepo,
		cookOffRepo: cookOffRepo,
		now:         time.Now,
	}
}

func requireModerator(actor Actor) error {
	if !actor.Caps.Has(models.CapModerate) {
		return models.NewForbiddenError("Admin access required")
	}
	return nil
}

func (s *AdminService) Stats(ctx context.Context, actor Actor) (*AdminStats, error) {
	if err := requireModerator(actor); err != nil {
		return nil, err
	}

	var (
		stats AdminStats
		err   error
	)
	if stats.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalRecipes, err = s.recipeRepo.Count(ctx, nil); err != nil {
		return nil, err
	}
	pending := false
	if stats.PendingRecipes, err = s.recipeRepo.Count(ctx, &pending); err != nil {
		return nil, err
	}
	if stats.TotalComments, err = s.commentRepo.Count(ctx, false); err != nil {
		return nil, err
	}
	if stats.PendingComments, err = s.commentRepo.Count(ctx, true); err != nil {
		return nil, err
	}
	if stats.TotalMessages, err = s.chatRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.RecentUsers, err = s.userRepo.Recent(ctx, RecentUsersLimit); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *AdminService) ListUsers(ctx context.Context, actor Actor, params repository.UserListParams) ([]models.User, int64, error) {
	if err := requireModerator(actor); err != nil {
		return nil, 0, err
	}
	if params.Role != "" {
		if err := validation.ValidateRole(models.Role(params.Role)); err != nil {
			return nil, 0, invalid(err)
		}
	}
	return s.userRepo.List(ctx, params)
}

// SetRole changes a user's role. Admins cannot change their own role.
func (s *AdminService) SetRole(ctx context.Context, actor Actor, userID uint, role models.Role) (*models.User, error) {
	if err := requireModerator(actor); err != nil {
		return nil, err
	}
	if err := validation.ValidateRole(role); err != nil {
		return nil, models.NewValidationError("Role must be one of Foodie, Chef or Admin")
	}
	if userID == actor.ID {
		return nil, models.NewValidationError("You cannot change your own role")
	}

	user, err := s.userRepo.Update(ctx, userID, map[string]interface{}{"role": role})
	if err != nil {
		return nil, err
	}
	middleware.Logger.InfoContext(ctx, "user role changed",
		slog.Uint64("target_user_id", uint64(userID)),
		slog.String("role", string(role)),
		slog.Uint64("admin_id", uint64(actor.ID)),
	)
	return user, nil
}

// DeleteUser removes an account and everything it authored except chat history.
func (s *AdminService) DeleteUser(ctx context.Context, actor Actor, userID uint) error {
	if err := requireModerator(actor); err != nil {
		return err
	}
	if userID == actor.ID {
		return models.NewValidationError("You cannot delete your own account")
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}
	middleware.Logger.InfoContext(ctx, "user deleted",
		slog.Uint64("target_user_id", uint64(userID)),
		slog.Uint64("admin_id", uint64(actor.ID)),
	)
	return nil
}

func (s *AdminService) PendingRecipes(ctx context.Context, actor Actor, limit, offset int) ([]models.Recipe, int64, error) {
	if err := requireModerator(actor); err != nil {
		return nil, 0, err
	}
	approved := false
	return s.recipeRepo.List(ctx, repository.RecipeFilter{
		Approved: &approved,
		Sort:     repository.DefaultRecipeSort,
		Limit:    limit,
		Offset:   offset,
	})
}

// SetRecipeFlag sets one moderation flag on a recipe.
func (s *AdminService) SetRecipeFlag(ctx context.Context, actor Actor, recipeID uint, flag RecipeFlag, value bool) (*models.Recipe, error) {
	if err := requireModerator(actor); err != nil {
		return nil, err
	}
	switch flag {
	case FlagApproved, FlagFeatured, FlagTrending:
	default:
		return nil, models.NewValidationError("Unknown recipe flag")
	}
	return s.recipeRepo.Update(ctx, recipeID, map[string]interface{}{string(flag): value})
}

func (s *AdminService) ListComments(ctx context.Context, actor Actor, params repository.CommentListParams) ([]models.Comment, int64, error) {
	if err := requireModerator(actor); err != nil {
		return nil, 0, err
	}
	return s.commentRepo.List(ctx, params)
}

func (s *AdminService) SetCommentApproved(ctx context.Context, actor Actor, commentID uint, approved bool) (*models.Comment, error) {
	if err := requireModerator(actor); err != nil {
		return nil, err
	}
	return s.commentRepo.SetApproved(ctx, commentID, approved)
}

func (s *AdminService) DeleteComment(ctx context.Context, actor Actor, commentID uint) error {
	if err := requireModerator(actor); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, commentID)
}

func (s *AdminService) CreateCookOff(ctx context.Context, actor Actor, in CookOffInput) (*models.CookOff, error) {
	if err := requireModerator(actor); err != nil {
		return nil, err
	}
	cookOff := &models.CookOff{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Theme:       strings.TrimSpace(in.Theme),
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		IsActive:    true,
	}
	if err := validation.ValidateCookOff(cookOff); err != nil {
		return nil, invalid(err)
	}
	if err := s.cookOffRepo.Create(ctx, cookOff); err != nil {
		return nil, err
	}
	return cookOff, nil
}

func (s *AdminService) ListCookOffs(ctx context.Context, actor Actor) ([]models.CookOff, error) {
	if err := requireModerator(actor); err != nil {
		return nil, err
	}
	return s.cookOffRepo.List(ctx)
}

// EnterCookOff enters a recipe into an open cook-off on behalf of its chef.
func (s *AdminService) EnterCookOff(ctx context.Context, actor Actor, cookOffID, recipeID uint) (*models.CookOff, error) {
	if err := requireModerator(actor); err != nil {
		return nil, err
	}
	cookOff, err := s.cookOffRepo.GetByID(ctx, cookOffID)
	if err != nil {
		return nil, err
	}
	if !validation.CookOffOpen(cookOff, s.now()) {
		return nil, models.NewValidationError("Cook-off is closed")
	}
	if _, err := s.cookOffRepo.AddParticipant(ctx, cookOffID, recipeID); err != nil {
		return nil, err
	}
	return s.cookOffRepo.GetByID(ctx, cookOffID)
}

// DeclareWinner closes the cook-off with a participating chef as winner.
func (s *AdminService) DeclareWinner(ctx context.Context, actor Actor, cookOffID, userID uint) (*models.CookOff, error) {
	if err := requireModerator(actor); err != nil {
		return nil, err
	}
	return s.cookOffRepo.SetWinner(ctx, cookOffID, userID)
}

// ResetWeeklyPoints zeroes every user's weekly points.
func (s *AdminService) ResetWeeklyPoints(ctx context.Context, actor Actor) (int64, error) {
	if err := requireModerator(actor); err != nil {
		return 0, err
	}
	n, err := s.userRepo.ResetWeeklyPoints(ctx)
	if err != nil {
		return 0, err
	}
	middleware.Logger.InfoContext(ctx, "weekly points reset", slog.Int64("users", n))
	return n, nil
}
