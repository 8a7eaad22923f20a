package seed

import (
	"fmt"
	"log"

	"craveconnect/internal/models"

	"gorm.io/gorm"
)

// demoRooms are the chat rooms that get sample history.
var demoRooms = []string{models.DefaultChatRoom, "desserts", "weeknight-dinners"}

// Result counts what a Seed run wrote.
type Result struct {
	Users    int
	Recipes  int
	Comments int
	Messages int
	Follows  int
	Likes    int
}

// Seed populates the database with demo data: the built-in catalog, a mix of chefs and
// foodies, generated recipes with comments and likes, a follow graph and chat history.
func Seed(db *gorm.DB, opts Options) (*Result, error) {
	if opts.NumUsers < 2 {
		opts.NumUsers = 2
	}
	log.Printf("🌱 Seeding %d users and %d recipes...", opts.NumUsers, opts.NumRecipes)

	if opts.ShouldClean && !opts.DryRun {
		if err := clearData(db); err != nil {
			return nil, fmt.Errorf("clear data: %w", err)
		}
	}

	var res Result
	if !opts.DryRun {
		catalog, err := DefaultCatalog()
		if err != nil {
			return nil, err
		}
		added, err := BuiltIns(db, catalog)
		if err != nil {
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
		res.Recipes += added
	}

	f := NewFactory(db, opts)

	// Roughly one in three accounts is a chef.
	var chefs, everyone []*models.User
	for i := 0; i < opts.NumUsers; i++ {
		role := models.RoleFoodie
		if i%3 == 0 {
			role = models.RoleChef
		}
		user, err := f.CreateUser(role)
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		everyone = append(everyone, user)
		if role == models.RoleChef {
			chefs = append(chefs, user)
		}
	}
	res.Users = len(everyone)
	log.Printf("✓ %d users created (%d chefs)", len(everyone), len(chefs))

	var recipes []*models.Recipe
	for i := 0; i < opts.NumRecipes; i++ {
		chef := chefs[i%len(chefs)]
		recipe, err := f.CreateRecipe(chef)
		if err != nil {
			return nil, fmt.Errorf("create recipe: %w", err)
		}
		recipes = append(recipes, recipe)
	}
	res.Recipes += len(recipes)
	log.Printf("✓ %d recipes created", len(recipes))

	for _, recipe := range recipes {
		for _, user := range everyone {
			if user.ID == recipe.ChefID {
				continue
			}
			switch f.rnd.Intn(4) {
			case 0:
				if err := f.Like(user, recipe); err != nil {
					return nil, fmt.Errorf("like recipe: %w", err)
				}
				res.Likes++
			case 1:
				if _, err := f.CreateComment(user, recipe); err != nil {
					return nil, fmt.Errorf("create comment: %w", err)
				}
				res.Comments++
			}
		}
	}

	// Everyone follows a chef or two.
	for _, user := range everyone {
		for _, chef := range chefs {
			if user.ID == chef.ID || f.rnd.Intn(2) == 0 {
				continue
			}
			if err := f.Follow(user, chef); err != nil {
				return nil, fmt.Errorf("follow: %w", err)
			}
			res.Follows++
		}
	}

	for i := 0; i < opts.NumMessages; i++ {
		user := everyone[f.rnd.Intn(len(everyone))]
		if _, err := f.CreateChatMessage(user, demoRooms[i%len(demoRooms)]); err != nil {
			return nil, fmt.Errorf("create chat message: %w", err)
		}
		res.Messages++
	}

	log.Printf("🎉 Seeding complete: %+v", res)
	return &res, nil
}

// clearData removes every seeded row. Table order respects foreign keys.
func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	tables := []interface{}{
		&models.NotificationOutbox{},
		&models.Notification{},
		&models.CookOffParticipant{},
		&models.CookOff{},
		&models.CommentLike{},
		&models.Comment{},
		&models.RecipeLike{},
		&models.RecipeRating{},
		&models.Bookmark{},
		&models.Recipe{},
		&models.Follow{},
		&models.Badge{},
		&models.ChatMessage{},
		&models.User{},
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, t := range tables {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(t).Error; err != nil {
				return fmt.Errorf("clear %T: %w", t, err)
			}
		}
		return nil
	})
}
