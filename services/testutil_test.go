package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shaymimran45/CTF-WAR-2/database"
	"github.com/shaymimran45/CTF-WAR-2/models"
)

// newTestDB 每个测试用独立的内存 sqlite；限制单连接，
// 避免连接池把 :memory: 拆成多个库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: "password123",
		Role:         models.RoleUser,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestChallenge(t *testing.T, db *gorm.DB, flag string, points, maxAttempts int, visible bool) *models.Challenge {
	t.Helper()

	competition := models.Competition{
		Name:      "Test Competition",
		StartTime: time.Now(),
		EndTime:   time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, db.Create(&competition).Error)

	challenge := models.Challenge{
		Title:         "test challenge " + flag,
		Description:   "desc",
		Category:      "misc",
		Difficulty:    models.DifficultyEasy,
		Points:        points,
		Flag:          flag,
		CompetitionID: competition.ID,
		IsVisible:     visible,
		MaxAttempts:   maxAttempts,
	}
	require.NoError(t, db.Create(&challenge).Error)
	return &challenge
}
