package services

import (
	"testing"
	"time"

	"captionboard/internal/db"
	"captionboard/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the global db.DB at a fresh in-memory SQLite
// database for the duration of one test.
func setupTestDB(t *testing.T) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	// A second pool connection would see a different, empty in-memory
	// database.
	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(&models.Profile{}, &models.Image{}, &models.Caption{}, &models.CaptionVote{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	prev := db.DB
	db.DB = gdb
	t.Cleanup(func() {
		db.DB = prev
		sqlDB.Close()
	})
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func mustCreate(t *testing.T, value interface{}) {
	t.Helper()
	if err := db.DB.Create(value).Error; err != nil {
		t.Fatalf("create %T: %v", value, err)
	}
}

func createImage(t *testing.T, id string, url *string, description *string) {
	t.Helper()
	mustCreate(t, &models.Image{
		ID:                 id,
		URL:                url,
		ImageDescription:   description,
		CreatedDatetimeUTC: time.Now().UTC(),
	})
}

func createCaption(t *testing.T, id string, imageID *string, likeCount *int, createdAt time.Time) {
	t.Helper()
	mustCreate(t, &models.Caption{
		ID:                 id,
		ProfileID:          "author",
		Content:            strPtr("caption " + id),
		ImageID:            imageID,
		LikeCount:          likeCount,
		IsPublic:           true,
		CreatedDatetimeUTC: createdAt,
	})
}
