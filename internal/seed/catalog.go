package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"craveconnect/internal/models"
	"craveconnect/internal/validation"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed catalog.yaml
var catalogYAML string

// CatalogRecipe is one built-in recipe as written in catalog.yaml.
type CatalogRecipe struct {
	Title        string              `yaml:"title"`
	Description  string              `yaml:"description"`
	Image        string              `yaml:"image"`
	Cuisine      string              `yaml:"cuisine"`
	Category     string              `yaml:"category"`
	Difficulty   string              `yaml:"difficulty"`
	PrepTime     int                 `yaml:"prep_time"`
	CookTime     int                 `yaml:"cook_time"`
	Servings     int                 `yaml:"servings"`
	Featured     bool                `yaml:"featured"`
	Trending     bool                `yaml:"trending"`
	Tags         []string            `yaml:"tags"`
	Ingredients  []models.Ingredient `yaml:"ingredients"`
	Instructions []string            `yaml:"instructions"`
}

// Catalog is the built-in recipe set and the house account that owns it.
type Catalog struct {
	HouseChef struct {
		Username string `yaml:"username"`
		Email    string `yaml:"email"`
		Bio      string `yaml:"bio"`
	} `yaml:"house_chef"`
	Recipes []CatalogRecipe `yaml:"recipes"`
}

// LoadCatalog decodes and validates a catalog document.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if c.HouseChef.Username == "" || c.HouseChef.Email == "" {
		return nil, errors.New("catalog needs a house chef username and email")
	}
	seen := make(map[string]struct{}, len(c.Recipes))
	for i := range c.Recipes {
		recipe := c.Recipes[i].Model(0)
		if err := validation.ValidateRecipe(recipe); err != nil {
			return nil, fmt.Errorf("catalog recipe %q: %w", c.Recipes[i].Title, err)
		}
		key := strings.ToLower(recipe.Title)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("catalog recipe %q is listed twice", recipe.Title)
		}
		seen[key] = struct{}{}
	}
	return &c, nil
}

// DefaultCatalog returns the catalog compiled into the binary.
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(strings.NewReader(catalogYAML))
}

// Model converts the entry into a recipe owned by chefID with numbered steps.
func (c CatalogRecipe) Model(chefID uint) *models.Recipe {
	steps := make([]models.Instruction, len(c.Instructions))
	for i, text := range c.Instructions {
		steps[i] = models.Instruction{Step: i + 1, Description: text}
	}
	return &models.Recipe{
		Title:        c.Title,
		Description:  c.Description,
		Image:        c.Image,
		Cuisine:      c.Cuisine,
		Category:     c.Category,
		Difficulty:   c.Difficulty,
		PrepTime:     c.PrepTime,
		CookTime:     c.CookTime,
		Servings:     c.Servings,
		Ingredients:  c.Ingredients,
		Instructions: steps,
		Tags:         c.Tags,
		IsFeatured:   c.Featured,
		IsTrending:   c.Trending,
		IsApproved:   true,
		ChefID:       chefID,
	}
}

// BuiltIns ensures the house chef and every catalog recipe exist. Recipes are matched by
// title under the house chef, so running it again only adds what is missing.
func BuiltIns(db *gorm.DB, catalog *Catalog) (int, error) {
	added := 0
	err := db.Transaction(func(tx *gorm.DB) error {
		chef, err := houseChef(tx, catalog)
		if err != nil {
			return err
		}

		for _, entry := range catalog.Recipes {
			var existing int64
			if err := tx.Model(&models.Recipe{}).
				Where("chef_id = ? AND title = ?", chef.ID, entry.Title).
				Count(&existing).Error; err != nil {
				return err
			}
			if existing > 0 {
				continue
			}
			if err := tx.Create(entry.Model(chef.ID)).Error; err != nil {
				return fmt.Errorf("seed catalog recipe %q: %w", entry.Title, err)
			}
			added++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if added > 0 {
		log.Printf("seeded %d catalog recipes", added)
	}
	return added, nil
}

// houseChef finds or creates the catalog owner. The account gets an unusable password.
func houseChef(tx *gorm.DB, catalog *Catalog) (*models.User, error) {
	var chef models.User
	err := tx.Where("username = ?", catalog.HouseChef.Username).First(&chef).Error
	if err == nil {
		return &chef, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(randomSecret()), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash house chef password: %w", err)
	}
	chef = models.User{
		Username: catalog.HouseChef.Username,
		Email:    validation.NormalizeEmail(catalog.HouseChef.Email),
		Password: string(hashed),
		Bio:      catalog.HouseChef.Bio,
		Role:     models.RoleChef,
		Avatar:   models.DefaultAvatar(catalog.HouseChef.Username),
		IsActive: true,
	}
	if err := tx.Create(&chef).Error; err != nil {
		return nil, fmt.Errorf("create house chef: %w", err)
	}
	return &chef, nil
}
