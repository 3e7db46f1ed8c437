package services

import (
	"fmt"
	"testing"
	"time"

	"captionboard/internal/models"
)

func TestBuildRecentRowsDropsUnresolvedImages(t *testing.T) {
	setupTestDB(t)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	createImage(t, "img-broken", nil, strPtr("upload never finished"))
	createImage(t, "img-good", strPtr("https://cdn.example.com/good.png"), strPtr("A good image"))

	// c-new is the most recent caption but its image has no URL.
	createCaption(t, "c-new", strPtr("img-broken"), nil, base.Add(time.Hour))
	createCaption(t, "c-old", strPtr("img-good"), nil, base)

	result, err := BuildRecentRows("viewer", 1, 0)
	if err != nil {
		t.Fatalf("BuildRecentRows: %v", err)
	}
	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(result.Rows))
	}
	if result.Rows[0].ID != "c-old" {
		t.Errorf("expected c-old, got %s", result.Rows[0].ID)
	}
	if result.Rows[0].ImageStatus != ImageStatusOK {
		t.Errorf("expected status %q, got %q", ImageStatusOK, result.Rows[0].ImageStatus)
	}
	if !result.HasMore {
		t.Error("expected HasMore=true: the page filled before the source ended")
	}
	// Both source rows were consumed to fill a page of one.
	if result.NextOffset != 2 {
		t.Errorf("expected NextOffset=2, got %d", result.NextOffset)
	}
}

func TestBuildRecentRowsPaginationCursor(t *testing.T) {
	setupTestDB(t)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	createImage(t, "img-good", strPtr("https://cdn.example.com/good.png"), nil)
	createImage(t, "img-broken", nil, nil)

	// Every 2nd caption has an unresolvable image.
	for i := 0; i < 20; i++ {
		imageID := "img-good"
		if i%2 == 1 {
			imageID = "img-broken"
		}
		createCaption(t, fmt.Sprintf("c-%02d", i), strPtr(imageID), nil, base.Add(-time.Duration(i)*time.Minute))
	}

	first, err := BuildRecentRows("viewer", 5, 0)
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(first.Rows) != 5 {
		t.Fatalf("first page: expected 5 rows, got %d", len(first.Rows))
	}
	if !first.HasMore {
		t.Fatal("first page: expected HasMore=true")
	}

	second, err := BuildRecentRows("viewer", 5, first.NextOffset)
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(second.Rows) != 5 {
		t.Fatalf("second page: expected 5 rows, got %d", len(second.Rows))
	}

	// No duplicates, no gaps: the two pages are exactly the resolvable
	// captions in feed order.
	var got []string
	seen := make(map[string]bool)
	for _, row := range append(first.Rows, second.Rows...) {
		if seen[row.ID] {
			t.Fatalf("duplicate row %s across pages", row.ID)
		}
		seen[row.ID] = true
		got = append(got, row.ID)
	}
	for i, id := range got {
		want := fmt.Sprintf("c-%02d", i*2)
		if id != want {
			t.Errorf("row %d: expected %s, got %s", i, want, id)
		}
	}
}

func TestBuildRecentRowsShortBatchEndsFeed(t *testing.T) {
	setupTestDB(t)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	createImage(t, "img-good", strPtr("https://cdn.example.com/good.png"), nil)
	for i := 0; i < 3; i++ {
		createCaption(t, fmt.Sprintf("c-%d", i), strPtr("img-good"), nil, base.Add(-time.Duration(i)*time.Minute))
	}

	result, err := BuildRecentRows("viewer", 5, 0)
	if err != nil {
		t.Fatalf("BuildRecentRows: %v", err)
	}
	if len(result.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(result.Rows))
	}
	if result.HasMore {
		t.Error("expected HasMore=false after a short batch")
	}
	if result.NextOffset != 3 {
		t.Errorf("expected NextOffset=3, got %d", result.NextOffset)
	}
}

func TestBuildRecentRowsEmptyImageIDSet(t *testing.T) {
	setupTestDB(t)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	// No caption carries an image_id, so the image lookup must be
	// skipped outright rather than issued with an empty IN set.
	createCaption(t, "c-0", nil, nil, base)
	createCaption(t, "c-1", nil, nil, base.Add(-time.Minute))

	result, err := BuildRecentRows("viewer", 5, 0)
	if err != nil {
		t.Fatalf("BuildRecentRows: %v", err)
	}
	if len(result.Rows) != 0 {
		t.Errorf("expected 0 rows, got %d", len(result.Rows))
	}
	if result.HasMore {
		t.Error("expected HasMore=false")
	}
}

func TestBuildRecentRowsEnrichment(t *testing.T) {
	setupTestDB(t)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	createImage(t, "img-a", strPtr("https://cdn.example.com/a.png"), strPtr("  A dog on a skateboard  "))
	createImage(t, "img-b", strPtr("https://cdn.example.com/b.png"), strPtr("   "))

	createCaption(t, "c-a", strPtr("img-a"), intPtr(7), base)
	createCaption(t, "c-b", strPtr("img-b"), nil, base.Add(-time.Minute))

	mustCreate(t, &models.CaptionVote{
		ID: "v-1", CaptionID: "c-a", ProfileID: "viewer", VoteValue: 1,
		CreatedDatetimeUTC: base,
	})
	// Someone else's vote must not leak into the viewer's rows.
	mustCreate(t, &models.CaptionVote{
		ID: "v-2", CaptionID: "c-b", ProfileID: "someone-else", VoteValue: -1,
		CreatedDatetimeUTC: base,
	})

	result, err := BuildRecentRows("viewer", 10, 0)
	if err != nil {
		t.Fatalf("BuildRecentRows: %v", err)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(result.Rows))
	}

	a, b := result.Rows[0], result.Rows[1]
	if a.LikeCount != 7 {
		t.Errorf("c-a: expected likeCount 7, got %d", a.LikeCount)
	}
	if a.UserVote != 1 {
		t.Errorf("c-a: expected userVote 1, got %d", a.UserVote)
	}
	if a.ImageAlt != "A dog on a skateboard" {
		t.Errorf("c-a: expected trimmed alt, got %q", a.ImageAlt)
	}
	if b.LikeCount != 0 {
		t.Errorf("c-b: null like_count should read as 0, got %d", b.LikeCount)
	}
	if b.UserVote != 0 {
		t.Errorf("c-b: expected userVote 0, got %d", b.UserVote)
	}
	if b.ImageAlt != "Caption image" {
		t.Errorf("c-b: blank description should fall back, got %q", b.ImageAlt)
	}
}
