// Seeds the database with demo accounts and fake community content for
// local development. Destructive only in the sense that it inserts on
// top of whatever is already there; run it against a fresh database.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/communitypulse/backend/internal/ai"
	"github.com/communitypulse/backend/internal/config"
	"github.com/communitypulse/backend/internal/credentials"
	"github.com/communitypulse/backend/internal/database"
	"github.com/communitypulse/backend/internal/logging"
	"github.com/communitypulse/backend/internal/models"
)

const (
	userCount = 20
	postCount = 60
	flagCount = 25
)

func main() {
	_ = godotenv.Load()
	logging.Setup()

	cfg := config.Load()
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	db := database.DB

	// Well-known accounts for manual testing. Password is the part of
	// the address before the @.
	staff := []struct {
		email string
		name  string
		role  string
	}{
		{"admin@communitypulse.dev", "Site Admin", models.RoleAdmin},
		{"moderator@communitypulse.dev", "Demo Moderator", models.RoleModerator},
		{"demo@communitypulse.dev", "Demo User", models.RoleUser},
	}

	users := make([]models.User, 0, userCount+len(staff))
	for _, s := range staff {
		hash, err := credentials.Hash(s.email[:len(s.email)-len("@communitypulse.dev")])
		if err != nil {
			slog.Error("hashing failed", "error", err)
			os.Exit(1)
		}
		users = append(users, models.User{
			ID:           uuid.New(),
			Email:        s.email,
			Name:         s.name,
			Role:         s.role,
			PasswordHash: hash,
		})
	}

	// bcrypt is slow on purpose; share one hash across the fake users.
	fakeHash, err := credentials.Hash(gofakeit.Password(true, true, true, true, false, 16))
	if err != nil {
		slog.Error("hashing failed", "error", err)
		os.Exit(1)
	}
	for i := 0; i < userCount; i++ {
		users = append(users, models.User{
			ID:              uuid.New(),
			Email:           gofakeit.Email(),
			Name:            gofakeit.Name(),
			Role:            models.RoleUser,
			PasswordHash:    fakeHash,
			ReputationScore: rand.Intn(50),
		})
	}
	if err := db.Create(&users).Error; err != nil {
		slog.Error("user seed failed", "error", err)
		os.Exit(1)
	}
	slog.Info("users seeded", "count", len(users))

	posts := make([]models.Post, 0, postCount)
	for i := 0; i < postCount; i++ {
		author := users[rand.Intn(len(users))]
		post := models.Post{
			ID:       uuid.New(),
			AuthorID: author.ID,
			Content:  gofakeit.Sentence(8 + rand.Intn(20)),
			Status:   models.PostActive,
		}
		if rand.Intn(5) == 0 {
			url := gofakeit.ImageURL(640, 480)
			post.MediaURL = &url
		}
		posts = append(posts, post)
	}
	if err := db.Create(&posts).Error; err != nil {
		slog.Error("post seed failed", "error", err)
		os.Exit(1)
	}
	slog.Info("posts seeded", "count", len(posts))

	analyses := make([]models.AIAnalysis, 0, len(posts))
	for _, post := range posts {
		a := ai.HeuristicText(post.Content)
		labels, _ := json.Marshal(a.Labels)
		scores, _ := json.Marshal(a.Scores)
		analyses = append(analyses, models.AIAnalysis{
			ID:          uuid.New(),
			PostID:      post.ID,
			Type:        models.AnalysisText,
			Labels:      labels,
			Scores:      scores,
			OverallRisk: a.OverallRisk,
			RawResponse: []byte(`{"seed":true}`),
		})
	}
	if err := db.Create(&analyses).Error; err != nil {
		slog.Error("analysis seed failed", "error", err)
		os.Exit(1)
	}
	slog.Info("analyses seeded", "count", len(analyses))

	flags := make([]models.Flag, 0, flagCount)
	seen := map[string]bool{}
	for len(flags) < flagCount {
		post := posts[rand.Intn(len(posts))]
		flagger := users[rand.Intn(len(users))]
		if flagger.ID == post.AuthorID {
			continue
		}
		key := post.ID.String() + flagger.ID.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		flags = append(flags, models.Flag{
			ID:             uuid.New(),
			PostID:         post.ID,
			FlaggedBy:      flagger.ID,
			ReasonCategory: models.FlagCategories[rand.Intn(len(models.FlagCategories))],
			ReasonText:     gofakeit.Sentence(6),
			Status:         models.FlagPending,
		})
	}
	if err := db.Create(&flags).Error; err != nil {
		slog.Error("flag seed failed", "error", err)
		os.Exit(1)
	}
	slog.Info("flags seeded", "count", len(flags))

	fmt.Println("Seed complete. Demo logins:")
	for _, s := range staff {
		fmt.Printf("  %-35s %s\n", s.email, s.role)
	}
}
