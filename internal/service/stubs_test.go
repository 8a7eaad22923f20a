package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"craveconnect/internal/models"
	"craveconnect/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	foodie = Actor{ID: 1, Username: "foodie", Caps: models.RoleFoodie.Capabilities()}
	chef   = Actor{ID: 2, Username: "chef", Caps: models.RoleChef.Capabilities()}
	admin  = Actor{ID: 3, Username: "admin", Caps: models.RoleAdmin.Capabilities()}
)

// wakeCounter records Wake calls.
type wakeCounter struct{ n atomic.Int32 }

func (w *wakeCounter) Wake() { w.n.Add(1) }

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeValidation)
}

// assertForbiddenError asserts that err is an AppError with code FORBIDDEN.
func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeForbidden)
}

// recipeRepoStub is a stub for repository.RecipeRepository.
type recipeRepoStub struct {
	createFn         func(context.Context, *models.Recipe, int) error
	getByIDFn        func(context.Context, uint) (*models.Recipe, error)
	getDetailFn      func(context.Context, uint) (*models.Recipe, error)
	incrementViewsFn func(context.Context, uint) error
	listFn           func(context.Context, repository.RecipeFilter) ([]models.Recipe, int64, error)
	listByChefFn     func(context.Context, uint, int) ([]models.Recipe, error)
	updateFn         func(context.Context, uint, map[string]interface{}) (*models.Recipe, error)
	deleteFn         func(context.Context, uint) error
	countFn          func(context.Context, *bool) (int64, error)
	toggleLikeFn     func(context.Context, uint, uint, repository.OutboxBuilder) (*models.LikeResult, error)
	upsertRatingFn   func(context.Context, uint, uint, int, repository.OutboxBuilder) (*models.RatingSummary, error)
}

func (s *recipeRepoStub) Create(ctx context.Context, r *models.Recipe, points int) error {
	return s.createFn(ctx, r, points)
}
func (s *recipeRepoStub) GetByID(ctx context.Context, id uint) (*models.Recipe, error) {
	return s.getByIDFn(ctx, id)
}
func (s *recipeRepoStub) GetDetail(ctx context.Context, id uint) (*models.Recipe, error) {
	return s.getDetailFn(ctx, id)
}
func (s *recipeRepoStub) IncrementViews(ctx context.Context, id uint) error {
	return s.incrementViewsFn(ctx, id)
}
func (s *recipeRepoStub) List(ctx context.Context, f repository.RecipeFilter) ([]models.Recipe, int64, error) {
	return s.listFn(ctx, f)
}
func (s *recipeRepoStub) ListByChef(ctx context.Context, chefID uint, limit int) ([]models.Recipe, error) {
	return s.listByChefFn(ctx, chefID, limit)
}
func (s *recipeRepoStub) Trending(context.Context) ([]models.Recipe, error) { return nil, nil }
func (s *recipeRepoStub) Featured(context.Context) ([]models.Recipe, error) { return nil, nil }
func (s *recipeRepoStub) Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.Recipe, error) {
	return s.updateFn(ctx, id, fields)
}
func (s *recipeRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }
func (s *recipeRepoStub) Count(ctx context.Context, approved *bool) (int64, error) {
	return s.countFn(ctx, approved)
}
func (s *recipeRepoStub) ToggleLike(ctx context.Context, recipeID, userID uint, notify repository.OutboxBuilder) (*models.LikeResult, error) {
	return s.toggleLikeFn(ctx, recipeID, userID, notify)
}
func (s *recipeRepoStub) UpsertRating(ctx context.Context, recipeID, userID uint, value int, notify repository.OutboxBuilder) (*models.RatingSummary, error) {
	return s.upsertRatingFn(ctx, recipeID, userID, value, notify)
}

func noopRecipeRepo() *recipeRepoStub {
	return &recipeRepoStub{
		createFn: func(_ context.Context, r *models.Recipe, _ int) error {
			r.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Recipe, error) {
			return &models.Recipe{ID: id, ChefID: chef.ID, Title: "Soup"}, nil
		},
		getDetailFn: func(_ context.Context, id uint) (*models.Recipe, error) {
			return &models.Recipe{ID: id, ChefID: chef.ID, Title: "Soup"}, nil
		},
		incrementViewsFn: func(context.Context, uint) error { return nil },
		listFn: func(context.Context, repository.RecipeFilter) ([]models.Recipe, int64, error) {
			return []models.Recipe{}, 0, nil
		},
		listByChefFn: func(context.Context, uint, int) ([]models.Recipe, error) { return nil, nil },
		updateFn: func(_ context.Context, id uint, _ map[string]interface{}) (*models.Recipe, error) {
			return &models.Recipe{ID: id}, nil
		},
		deleteFn: func(context.Context, uint) error { return nil },
		countFn:  func(context.Context, *bool) (int64, error) { return 0, nil },
		toggleLikeFn: func(context.Context, uint, uint, repository.OutboxBuilder) (*models.LikeResult, error) {
			return &models.LikeResult{Liked: true, Likes: []uint{1}}, nil
		},
		upsertRatingFn: func(_ context.Context, _, _ uint, value int, _ repository.OutboxBuilder) (*models.RatingSummary, error) {
			return &models.RatingSummary{AverageRating: float64(value), TotalRatings: 1}, nil
		},
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn      func(context.Context, uint) (*models.User, error)
	updateFn       func(context.Context, uint, map[string]interface{}) (*models.User, error)
	deleteFn       func(context.Context, uint) error
	listFn         func(context.Context, repository.UserListParams) ([]models.User, int64, error)
	countFn        func(context.Context) (int64, error)
	followCountsFn func(context.Context, uint) (int64, int64, error)
	toggleFollowFn func(context.Context, uint, uint, *models.NotificationOutbox) (bool, int64, error)
	bookmarkFn     func(context.Context, uint, uint) (bool, error)
	resetWeeklyFn  func(context.Context) (int64, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(context.Context, string) (*models.User, error)    { return nil, nil }
func (s *userRepoStub) GetByUsername(context.Context, string) (*models.User, error) { return nil, nil }
func (s *userRepoStub) Create(context.Context, *models.User) error                  { return nil }
func (s *userRepoStub) Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.User, error) {
	return s.updateFn(ctx, id, fields)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }
func (s *userRepoStub) List(ctx context.Context, p repository.UserListParams) ([]models.User, int64, error) {
	return s.listFn(ctx, p)
}
func (s *userRepoStub) Recent(context.Context, int) ([]models.User, error) {
	return []models.User{}, nil
}
func (s *userRepoStub) Count(ctx context.Context) (int64, error)        { return s.countFn(ctx) }
func (s *userRepoStub) TopChefs(context.Context) ([]models.User, error) { return nil, nil }
func (s *userRepoStub) ListBookmarks(context.Context, uint) ([]models.Recipe, error) {
	return []models.Recipe{}, nil
}
func (s *userRepoStub) FollowCounts(ctx context.Context, id uint) (int64, int64, error) {
	return s.followCountsFn(ctx, id)
}
func (s *userRepoStub) ToggleFollow(ctx context.Context, followerID, followeeID uint, intent *models.NotificationOutbox) (bool, int64, error) {
	return s.toggleFollowFn(ctx, followerID, followeeID, intent)
}
func (s *userRepoStub) ToggleBookmark(ctx context.Context, userID, recipeID uint) (bool, error) {
	return s.bookmarkFn(ctx, userID, recipeID)
}
func (s *userRepoStub) ResetWeeklyPoints(ctx context.Context) (int64, error) {
	return s.resetWeeklyFn(ctx)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "user", Avatar: "https://example.com/a.png"}, nil
		},
		updateFn: func(_ context.Context, id uint, _ map[string]interface{}) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		deleteFn: func(context.Context, uint) error { return nil },
		listFn: func(context.Context, repository.UserListParams) ([]models.User, int64, error) {
			return []models.User{}, 0, nil
		},
		countFn:        func(context.Context) (int64, error) { return 0, nil },
		followCountsFn: func(context.Context, uint) (int64, int64, error) { return 0, 0, nil },
		toggleFollowFn: func(context.Context, uint, uint, *models.NotificationOutbox) (bool, int64, error) {
			return true, 1, nil
		},
		bookmarkFn:    func(context.Context, uint, uint) (bool, error) { return true, nil },
		resetWeeklyFn: func(context.Context) (int64, error) { return 0, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment, repository.OutboxBuilder) error
	getByIDFn     func(context.Context, uint) (*models.Comment, error)
	setApprovedFn func(context.Context, uint, bool) (*models.Comment, error)
	deleteFn      func(context.Context, uint) error
	countFn       func(context.Context, bool) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment, notify repository.OutboxBuilder) error {
	return s.createFn(ctx, c, notify)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByRecipe(context.Context, uint) ([]models.Comment, error) {
	return []models.Comment{}, nil
}
func (s *commentRepoStub) List(context.Context, repository.CommentListParams) ([]models.Comment, int64, error) {
	return []models.Comment{}, 0, nil
}
func (s *commentRepoStub) SetApproved(ctx context.Context, id uint, approved bool) (*models.Comment, error) {
	return s.setApprovedFn(ctx, id, approved)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }
func (s *commentRepoStub) Count(ctx context.Context, pendingOnly bool) (int64, error) {
	return s.countFn(ctx, pendingOnly)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, c *models.Comment, _ repository.OutboxBuilder) error {
			c.ID = 7
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, RecipeID: 1, UserID: foodie.ID, Text: "nice"}, nil
		},
		setApprovedFn: func(_ context.Context, id uint, approved bool) (*models.Comment, error) {
			return &models.Comment{ID: id, IsApproved: approved}, nil
		},
		deleteFn: func(context.Context, uint) error { return nil },
		countFn:  func(context.Context, bool) (int64, error) { return 0, nil },
	}
}

// chatRepoStub is a stub for repository.ChatRepository.
type chatRepoStub struct {
	createFn     func(context.Context, *models.ChatMessage) error
	getByIDFn    func(context.Context, uint) (*models.ChatMessage, error)
	listByRoomFn func(context.Context, string, int) ([]models.ChatMessage, error)
	softDeleteFn func(context.Context, uint) error
}

func (s *chatRepoStub) Create(ctx context.Context, m *models.ChatMessage) error {
	return s.createFn(ctx, m)
}
func (s *chatRepoStub) GetByID(ctx context.Context, id uint) (*models.ChatMessage, error) {
	return s.getByIDFn(ctx, id)
}
func (s *chatRepoStub) ListByRoom(ctx context.Context, room string, limit int) ([]models.ChatMessage, error) {
	return s.listByRoomFn(ctx, room, limit)
}
func (s *chatRepoStub) SoftDelete(ctx context.Context, id uint) error { return s.softDeleteFn(ctx, id) }
func (s *chatRepoStub) Count(context.Context) (int64, error) { return 0, nil }

func noopChatRepo() *chatRepoStub {
	return &chatRepoStub{
		createFn: func(_ context.Context, m *models.ChatMessage) error {
			m.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.ChatMessage, error) {
			return &models.ChatMessage{ID: id, UserID: foodie.ID}, nil
		},
		listByRoomFn: func(context.Context, string, int) ([]models.ChatMessage, error) {
			return []models.ChatMessage{}, nil
		},
		softDeleteFn: func(context.Context, uint) error { return nil },
	}
}

// notificationRepoStub is a stub for repository.NotificationRepository.
type notificationRepoStub struct {
	listFn    func(context.Context, uint, int) ([]models.Notification, error)
	getByIDFn func(context.Context, uint) (*models.Notification, error)
	markFn    func(context.Context, uint) (*models.Notification, error)
}

func (s *notificationRepoStub) ListForRecipient(ctx context.Context, id uint, limit int) ([]models.Notification, error) {
	return s.listFn(ctx, id, limit)
}
func (s *notificationRepoStub) CountUnread(context.Context, uint) (int64, error) { return 3, nil }
func (s *notificationRepoStub) GetByID(ctx context.Context, id uint) (*models.Notification, error) {
	return s.getByIDFn(ctx, id)
}
func (s *notificationRepoStub) MarkRead(ctx context.Context, id uint) (*models.Notification, error) {
	return s.markFn(ctx, id)
}
func (s *notificationRepoStub) PendingOutbox(context.Context, int) ([]models.NotificationOutbox, error) {
	return nil, nil
}
func (s *notificationRepoStub) DeliverOutbox(context.Context, *models.NotificationOutbox) (*models.Notification, error) {
	return nil, nil
}
func (s *notificationRepoStub) FailOutbox(context.Context, uint, error, bool) error { return nil }

func noopNotificationRepo() *notificationRepoStub {
	return &notificationRepoStub{
		listFn: func(context.Context, uint, int) ([]models.Notification, error) {
			return []models.Notification{}, nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Notification, error) {
			return &models.Notification{ID: id, RecipientID: foodie.ID}, nil
		},
		markFn: func(_ context.Context, id uint) (*models.Notification, error) {
			return &models.Notification{ID: id, RecipientID: foodie.ID, IsRead: true}, nil
		},
	}
}

// cookOffRepoStub is a stub for repository.CookOffRepository.
type cookOffRepoStub struct {
	createFn         func(context.Context, *models.CookOff) error
	getByIDFn        func(context.Context, uint) (*models.CookOff, error)
	addParticipantFn func(context.Context, uint, uint) (*models.CookOffParticipant, error)
	setWinnerFn      func(context.Context, uint, uint) (*models.CookOff, error)
}

func (s *cookOffRepoStub) Create(ctx context.Context, c *models.CookOff) error {
	return s.createFn(ctx, c)
}
func (s *cookOffRepoStub) GetByID(ctx context.Context, id uint) (*models.CookOff, error) {
	return s.getByIDFn(ctx, id)
}
func (s *cookOffRepoStub) List(context.Context) ([]models.CookOff, error) {
	return []models.CookOff{}, nil
}
func (s *cookOffRepoStub) AddParticipant(ctx context.Context, cookOffID, recipeID uint) (*models.CookOffParticipant, error) {
	return s.addParticipantFn(ctx, cookOffID, recipeID)
}
func (s *cookOffRepoStub) SetWinner(ctx context.Context, cookOffID, userID uint) (*models.CookOff, error) {
	return s.setWinnerFn(ctx, cookOffID, userID)
}

func noopCookOffRepo() *cookOffRepoStub {
	return &cookOffRepoStub{
		createFn: func(_ context.Context, c *models.CookOff) error {
			c.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.CookOff, error) {
			return &models.CookOff{ID: id, IsActive: true}, nil
		},
		addParticipantFn: func(_ context.Context, cookOffID, recipeID uint) (*models.CookOffParticipant, error) {
			return &models.CookOffParticipant{CookOffID: cookOffID, RecipeID: recipeID}, nil
		},
		setWinnerFn: func(_ context.Context, id, userID uint) (*models.CookOff, error) {
			return &models.CookOff{ID: id, WinnerID: &userID}, nil
		},
	}
}
