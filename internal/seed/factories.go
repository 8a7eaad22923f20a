// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"craveconnect/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword is the password of every generated account.
const DemoPassword = "password123"

// Options controls how much data the seeder writes and how.
type Options struct {
	NumUsers    int
	NumRecipes  int
	NumMessages int
	ShouldClean bool
	// SkipBcrypt stores a cheap hash for fast local runs.
	SkipBcrypt bool
	// DryRun builds entities with synthetic ids and writes nothing.
	DryRun bool
	// MaxDays spreads created_at over the last MaxDays days.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rnd  *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint

	password string
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:     db,
		opts:   opts,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404: acceptable for seeding
		nextID: 1000,
	}
}

func randomSecret() string {
	return gofakeit.Password(true, true, true, true, false, 32)
}

// passwordHash hashes DemoPassword once per factory.
func (f *Factory) passwordHash() string {
	if f.password != "" {
		return f.password
	}
	cost := bcrypt.DefaultCost
	if f.opts.SkipBcrypt {
		cost = bcrypt.MinCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), cost)
	if err != nil {
		log.Fatalf("hash demo password: %v", err)
	}
	f.password = string(hashed)
	return f.password
}

// createdAt returns a timestamp spread over the configured window.
func (f *Factory) createdAt() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	back := time.Duration(f.rnd.Intn(maxDays))*24*time.Hour +
		time.Duration(f.rnd.Intn(24))*time.Hour +
		time.Duration(f.rnd.Intn(60))*time.Minute
	return time.Now().Add(-back)
}

func (f *Factory) persist(value interface{}, id *uint, what string) error {
	if f.opts.DryRun {
		f.nextID++
		*id = f.nextID
		log.Printf("[dry-run] %s id=%d", what, *id)
		return nil
	}
	return f.db.Create(value).Error
}

// BuildUser constructs a sample user without saving it.
func (f *Factory) BuildUser(role models.Role, overrides ...func(*models.User)) *models.User {
	username := strings.ToLower(gofakeit.Username())
	if len(username) > 24 {
		username = username[:24]
	}
	username = fmt.Sprintf("%s%d", username, gofakeit.Number(100, 999))

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: f.passwordHash(),
		Role:     role,
		Bio:      gofakeit.Sentence(10),
		Avatar:   models.DefaultAvatar(username),
		IsActive: true,
	}
	user.CreatedAt = f.createdAt()
	for _, override := range overrides {
		override(user)
	}
	return user
}

// CreateUser constructs and persists a sample user.
func (f *Factory) CreateUser(role models.Role, overrides ...func(*models.User)) (*models.User, error) {
	user := f.BuildUser(role, overrides...)
	if err := f.persist(user, &user.ID, "CreateUser"); err != nil {
		return nil, err
	}
	return user, nil
}

// BuildRecipe constructs a plausible recipe for chef without saving it.
func (f *Factory) BuildRecipe(chef *models.User, overrides ...func(*models.Recipe)) *models.Recipe {
	ingredients := make([]models.Ingredient, 2+f.rnd.Intn(5))
	for i := range ingredients {
		ingredients[i] = models.Ingredient{
			Name:     gofakeit.Noun(),
			Quantity: fmt.Sprintf("%d%s", gofakeit.Number(1, 500), gofakeit.RandomString([]string{"g", "ml", " tbsp", " tsp", " cups"})),
		}
	}
	steps := make([]models.Instruction, 2+f.rnd.Intn(4))
	for i := range steps {
		steps[i] = models.Instruction{Step: i + 1, Description: gofakeit.Sentence(12)}
	}

	recipe := &models.Recipe{
		Title:        strings.TrimSuffix(gofakeit.Sentence(3), "."),
		Description:  gofakeit.Paragraph(1, 3, 10, " "),
		Image:        fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID()),
		Cuisine:      models.Cuisines[f.rnd.Intn(len(models.Cuisines))],
		Category:     models.Categories[f.rnd.Intn(len(models.Categories))],
		Difficulty:   models.Difficulties[f.rnd.Intn(len(models.Difficulties))],
		PrepTime:     5 * (1 + f.rnd.Intn(12)),
		CookTime:     5 * f.rnd.Intn(24),
		Servings:     1 + f.rnd.Intn(8),
		Ingredients:  ingredients,
		Instructions: steps,
		Tags:         []string{gofakeit.Adjective(), gofakeit.Adjective()},
		IsApproved:   true,
		ChefID:       chef.ID,
	}
	recipe.CreatedAt = f.createdAt()
	if len(recipe.Description) > 1000 {
		recipe.Description = recipe.Description[:1000]
	}
	for _, override := range overrides {
		override(recipe)
	}
	return recipe
}

// CreateRecipe constructs and persists a recipe and credits the chef's points.
func (f *Factory) CreateRecipe(chef *models.User, overrides ...func(*models.Recipe)) (*models.Recipe, error) {
	recipe := f.BuildRecipe(chef, overrides...)
	if err := f.persist(recipe, &recipe.ID, "CreateRecipe"); err != nil {
		return nil, err
	}
	if f.opts.DryRun {
		return recipe, nil
	}
	err := f.db.Model(&models.User{}).Where("id = ?", chef.ID).Updates(map[string]interface{}{
		"weekly_points": gorm.Expr("weekly_points + ?", 10),
		"total_points":  gorm.Expr("total_points + ?", 10),
	}).Error
	return recipe, err
}

// CreateComment persists a sample comment by user on recipe.
func (f *Factory) CreateComment(user *models.User, recipe *models.Recipe, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Text:       gofakeit.Sentence(8),
		UserID:     user.ID,
		RecipeID:   recipe.ID,
		IsApproved: true,
	}
	for _, override := range overrides {
		override(comment)
	}
	if err := f.persist(comment, &comment.ID, "CreateComment"); err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateChatMessage persists a sample chat line from user in room.
func (f *Factory) CreateChatMessage(user *models.User, room string) (*models.ChatMessage, error) {
	msg := &models.ChatMessage{
		UserID:   user.ID,
		Username: user.Username,
		Avatar:   user.Avatar,
		Message:  gofakeit.Sentence(6),
		Room:     room,
	}
	msg.CreatedAt = f.createdAt()
	if err := f.persist(msg, &msg.ID, "CreateChatMessage"); err != nil {
		return nil, err
	}
	return msg, nil
}

// Follow records that follower follows followee.
func (f *Factory) Follow(follower, followee *models.User) error {
	if f.opts.DryRun || follower.ID == followee.ID {
		return nil
	}
	return f.db.Create(&models.Follow{FollowerID: follower.ID, FolloweeID: followee.ID}).Error
}

// Like records a recipe like and keeps the cached count in step.
func (f *Factory) Like(user *models.User, recipe *models.Recipe) error {
	if f.opts.DryRun {
		return nil
	}
	return f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.RecipeLike{RecipeID: recipe.ID, UserID: user.ID}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Recipe{}).Where("id = ?", recipe.ID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error
	})
}
