// Package main provides operator utilities for CraveConnect: role changes, account
// listing and the weekly points reset for cron.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"craveconnect/internal/config"
	"craveconnect/internal/database"
	"craveconnect/internal/models"
	"craveconnect/internal/repository"
	"craveconnect/internal/service"

	"gorm.io/gorm"
)

// operator is the actor for CLI calls. ID 0 never matches a real account, so the
// self-targeting guards do not apply.
var operator = service.Actor{Username: "cli", Caps: models.RoleAdmin.Capabilities()}

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/admin set-role <user_id> <Foodie|Chef|Admin>  - Change a user's role")
	fmt.Println("  go run ./cmd/admin list [role]                            - List users, optionally by role")
	fmt.Println("  go run ./cmd/admin reset-weekly-points                    - Zero every user's weekly points")
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	admin := newAdminService(db)
	ctx := context.Background()

	switch os.Args[1] {
	case "set-role":
		if len(os.Args) < 4 {
			usage()
		}
		id, err := strconv.ParseUint(os.Args[2], 10, 32)
		if err != nil {
			log.Fatalf("Invalid user id %q", os.Args[2])
		}
		user, err := admin.SetRole(ctx, operator, uint(id), models.Role(os.Args[3]))
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		fmt.Printf("✅ %s (ID: %d) is now %s\n", user.Username, user.ID, user.Role)

	case "list":
		var params repository.UserListParams
		if len(os.Args) > 2 {
			params.Role = models.Role(os.Args[2])
		}
		params.Limit = 100
		users, total, err := admin.ListUsers(ctx, operator, params)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		fmt.Printf("\n📋 %d users (showing %d):\n", total, len(users))
		fmt.Println("─────────────────────────────────────")
		for _, u := range users {
			fmt.Printf("ID: %d | %-6s | %s | %s | weekly=%d total=%d\n",
				u.ID, u.Role, u.Username, u.Email, u.WeeklyPoints, u.TotalPoints)
		}
		fmt.Println("─────────────────────────────────────")

	case "reset-weekly-points":
		n, err := admin.ResetWeeklyPoints(ctx, operator)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		fmt.Printf("✅ Weekly points reset for %d users\n", n)

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		usage()
	}
}

func newAdminService(db *gorm.DB) *service.AdminService {
	return service.NewAdminService(
		repository.NewUserRepository(db),
		repository.NewRecipeRepository(db),
		repository.NewCommentRepository(db),
		repository.NewChatRepository(db),
		repository.NewCookOffRepository(db),
	)
}
