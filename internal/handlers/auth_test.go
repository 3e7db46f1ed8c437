package handlers

import (
	"testing"

	"captionboard/internal/db"
	"captionboard/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuthTestDB(t *testing.T) {
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
	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(&models.Profile{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	prev := db.DB
	db.DB = gdb
	t.Cleanup(func() {
		db.DB = prev
		sqlDB.Close()
	})
}

func TestFindOrCreateProfileFirstSignIn(t *testing.T) {
	setupAuthTestDB(t)

	info := &googleUserInfo{ID: "g-1", Email: "ada@example.com", GivenName: "Ada"}
	profile, err := findOrCreateProfile(info)
	if err != nil {
		t.Fatalf("first sign-in: %v", err)
	}
	if profile.Username != "Ada" || profile.GoogleID != "g-1" {
		t.Errorf("unexpected profile: %+v", profile)
	}

	// Same identity again resolves to the same profile.
	again, err := findOrCreateProfile(info)
	if err != nil {
		t.Fatalf("second sign-in: %v", err)
	}
	if again.ID != profile.ID {
		t.Errorf("expected the existing profile %s, got %s", profile.ID, again.ID)
	}
}

func TestFindOrCreateProfileUsernameFallsBackToEmail(t *testing.T) {
	setupAuthTestDB(t)

	profile, err := findOrCreateProfile(&googleUserInfo{ID: "g-1", Email: "grace@example.com"})
	if err != nil {
		t.Fatalf("findOrCreateProfile: %v", err)
	}
	if profile.Username != "grace" {
		t.Errorf("expected username from email local part, got %q", profile.Username)
	}
}

func TestFindOrCreateProfileBindsGoogleID(t *testing.T) {
	setupAuthTestDB(t)

	seed := models.Profile{ID: "p-1", Username: "ada", Email: "ada@example.com"}
	if err := db.DB.Create(&seed).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	profile, err := findOrCreateProfile(&googleUserInfo{ID: "g-1", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("findOrCreateProfile: %v", err)
	}
	if profile.ID != "p-1" {
		t.Fatalf("expected existing profile p-1, got %s", profile.ID)
	}

	var stored models.Profile
	if err := db.DB.First(&stored, "id = ?", "p-1").Error; err != nil {
		t.Fatalf("reload profile: %v", err)
	}
	if stored.GoogleID != "g-1" || stored.GoogleEmail != "ada@example.com" {
		t.Errorf("expected google identity bound, got %+v", stored)
	}
}

// Store failures must surface to the caller, not vanish.
func TestFindOrCreateProfileStoreError(t *testing.T) {
	setupAuthTestDB(t)

	if err := db.DB.Migrator().DropTable(&models.Profile{}); err != nil {
		t.Fatalf("drop profiles table: %v", err)
	}

	if _, err := findOrCreateProfile(&googleUserInfo{ID: "g-1", Email: "ada@example.com"}); err == nil {
		t.Fatal("expected an error from the unavailable store")
	}
}
