// Package bootstrap wires the process-wide runtime: database, redis and development data.
package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"craveconnect/internal/cache"
	"craveconnect/internal/config"
	"craveconnect/internal/database"
	"craveconnect/internal/middleware"
	"craveconnect/internal/models"
	"craveconnect/internal/seed"
	"craveconnect/internal/validation"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// devAdminUsername names the account created by DEV_BOOTSTRAP_ADMIN.
const devAdminUsername = "craveconnect_admin"

// Options control runtime initialization behavior.
type Options struct {
	// SeedCatalog loads the built-in recipe catalog.
	SeedCatalog bool
}

// InitRuntime connects to DB and Redis and optionally seeds the recipe catalog.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Nil when redis is unreachable.
	r := cache.InitRedis(cfg.RedisURL)

	if err := EnsureDevAdmin(cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap development admin: %w", err)
	}

	if opts.SeedCatalog {
		catalog, err := seed.DefaultCatalog()
		if err != nil {
			return nil, nil, err
		}
		if _, err := seed.BuiltIns(db, catalog); err != nil {
			return nil, nil, fmt.Errorf("failed to seed recipe catalog: %w", err)
		}
	}

	return db, r, nil
}

// EnsureDevAdmin creates or promotes the development admin account. It only runs in the
// development environment with DEV_BOOTSTRAP_ADMIN set.
func EnsureDevAdmin(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if cfg.Env != "development" || !cfg.DevBootstrapAdmin {
		return nil
	}

	email := validation.NormalizeEmail(cfg.DevAdminEmail)
	if err := validation.ValidateEmail(email); err != nil {
		return fmt.Errorf("DEV_ADMIN_EMAIL: %w", err)
	}
	password := cfg.DevAdminPassword
	if strings.TrimSpace(password) == "" {
		return errors.New("DEV_ADMIN_PASSWORD must be set when DEV_BOOTSTRAP_ADMIN is enabled")
	}
	if err := validation.ValidatePassword(password); err != nil {
		return fmt.Errorf("DEV_ADMIN_PASSWORD: %w", err)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var admin models.User
		findErr := tx.Where("email = ?", email).First(&admin).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash admin password: %w", err)
			}
			admin = models.User{
				Username: devAdminUsername,
				Email:    email,
				Password: string(hashed),
				Role:     models.RoleAdmin,
				Avatar:   models.DefaultAvatar(devAdminUsername),
				IsActive: true,
			}
			return tx.Create(&admin).Error
		case findErr != nil:
			return findErr
		default:
			return tx.Model(&models.User{}).Where("id = ?", admin.ID).Updates(map[string]interface{}{
				"role":      models.RoleAdmin,
				"is_active": true,
			}).Error
		}
	})
	if err != nil {
		return err
	}

	middleware.Logger.Info("development admin ensured", slog.String("email", email))
	return nil
}
