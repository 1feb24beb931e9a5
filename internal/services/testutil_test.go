package services

import (
	"path/filepath"
	"testing"

	"github.com/communitypulse/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Post{},
		&models.Flag{},
		&models.AIAnalysis{},
		&models.ModerationLog{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, role string, reputation int) *models.User {
	t.Helper()

	user := &models.User{
		ID:              uuid.New(),
		Email:           uuid.NewString() + "@example.com",
		Name:            "Test User",
		Role:            role,
		ReputationScore: reputation,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createPost(t *testing.T, db *gorm.DB, authorID uuid.UUID, content string) *models.Post {
	t.Helper()

	post := &models.Post{
		ID:       uuid.New(),
		AuthorID: authorID,
		Content:  content,
		Status:   models.PostActive,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func createPendingFlag(t *testing.T, db *gorm.DB, postID, flaggerID uuid.UUID) *models.Flag {
	t.Helper()

	flag := &models.Flag{
		ID:             uuid.New(),
		PostID:         postID,
		FlaggedBy:      flaggerID,
		ReasonCategory: "spam",
		ReasonText:     "looks like spam",
		Status:         models.FlagPending,
	}
	require.NoError(t, db.Create(flag).Error)
	return flag
}
