// Command main runs the database seeder for CraveConnect.
package main

import (
	"flag"
	"log"

	"craveconnect/internal/config"
	"craveconnect/internal/database"
	"craveconnect/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 30, "Number of users to create")
	numRecipes := flag.Int("recipes", 60, "Number of generated recipes")
	numMessages := flag.Int("messages", 100, "Number of chat messages")
	shouldClean := flag.Bool("clean", false, "Delete existing data before seeding")
	fast := flag.Bool("fast", true, "Use the minimum bcrypt cost for demo passwords")
	dryRun := flag.Bool("dry-run", false, "Build entities without writing them")
	maxDays := flag.Int("days", 90, "Spread created_at over this many days")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d recipes, %d messages, clean=%v\n", *numUsers, *numRecipes, *numMessages, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("❌ Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	res, err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumRecipes:  *numRecipes,
		NumMessages: *numMessages,
		ShouldClean: *shouldClean,
		SkipBcrypt:  *fast,
		DryRun:      *dryRun,
		MaxDays:     *maxDays,
	})
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Printf("✅ Done. Every demo account uses the password %q", seed.DemoPassword)
	log.Printf("users=%d recipes=%d comments=%d likes=%d follows=%d messages=%d",
		res.Users, res.Recipes, res.Comments, res.Likes, res.Follows, res.Messages)
}
