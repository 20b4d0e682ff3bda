package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"dsatracker/backend/models"
	"dsatracker/backend/repository"
)

// DB returns a migrated, private in-memory SQLite database closed at test cleanup.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := repository.Migrate(db); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	return db
}

// SeedUser creates a user with the given password and one zeroed topic per name.
func SeedUser(tb testing.TB, db *gorm.DB, username, password string, topics ...string) *models.User {
	tb.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		tb.Fatalf("hash password: %v", err)
	}
	user := &models.User{Username: username, PasswordHash: string(hash)}
	if err := db.Create(user).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	for _, name := range topics {
		topic := models.Topic{UserID: user.ID, Name: name}
		if err := db.Create(&topic).Error; err != nil {
			tb.Fatalf("seed topic %s: %v", name, err)
		}
		user.Topics = append(user.Topics, topic)
	}
	return user
}

// SetTopic overwrites a topic's metrics and progress directly.
func SetTopic(tb testing.TB, db *gorm.DB, userID uint, name string, learning, easy, medium, hard, progress int) {
	tb.Helper()
	err := db.Model(&models.Topic{}).
		Where("user_id = ? AND name = ?", userID, name).
		Updates(map[string]interface{}{
			"learning":        learning,
			"leetcode_easy":   easy,
			"leetcode_medium": medium,
			"leetcode_hard":   hard,
			"progress":        progress,
		}).Error
	if err != nil {
		tb.Fatalf("set topic %s: %v", name, err)
	}
}

func SetUserStats(tb testing.TB, db *gorm.DB, userID uint, streak, points int, lastActive *string) {
	tb.Helper()
	err := db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"streak":           streak,
			"points":           points,
			"last_active_date": lastActive,
		}).Error
	if err != nil {
		tb.Fatalf("set user stats: %v", err)
	}
}

func Ptr[T any](v T) *T {
	return &v
}
