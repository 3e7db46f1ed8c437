package db

import (
	"log"
	"os"
	"time"

	"captionboard/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=captionboard port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	// Auto Migrate
	err = DB.AutoMigrate(
		&models.Profile{},
		&models.Image{},
		&models.Caption{},
		&models.CaptionVote{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	seedImages()
}

// seedImages gives a fresh install a few images for captions to attach
// to. Skipped whenever the table already has rows.
func seedImages() {
	var count int64
	DB.Model(&models.Image{}).Count(&count)
	if count > 0 {
		return
	}

	seeds := []struct {
		url         string
		description string
	}{
		{"https://images.unsplash.com/photo-1518791841217-8f162f1e1131", "A cat resting on a windowsill"},
		{"https://images.unsplash.com/photo-1425082661705-1834bfd09dca", "A hamster peeking out of a pocket"},
		{"https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d", "A man looking surprised at his phone"},
		{"https://images.unsplash.com/photo-1504208434309-cb69f4fe52b0", "An empty lecture hall"},
	}

	for _, seed := range seeds {
		url := seed.url
		description := seed.description
		image := models.Image{
			ID:                 uuid.NewString(),
			URL:                &url,
			ImageDescription:   &description,
			CreatedDatetimeUTC: time.Now().UTC(),
		}
		if err := DB.Create(&image).Error; err != nil {
			log.Printf("Failed to seed image %s: %v", seed.url, err)
		}
	}
	log.Println("Initial images created")
}
