package service

import (
	"errors"
	"testing"

	"github.com/sitekit/internal/cache"
	"github.com/sitekit/internal/db"
)

func draftBlogPostInput() BlogPostInput {
	return BlogPostInput{
		Title:    "Monthly Report",
		Slug:     "Monthly Report (June)",
		Category: "tech",
		Status:   db.StatusDraft,
		Content:  "Some longer article body.",
		Tags:     []string{"go", " go ", "", "infra"},
	}
}

func TestCreateBlogPostNormalizesSlugAndTags(t *testing.T) {
	cleanup := setupContentTestDB(t)
	defer cleanup()

	svc := NewBlogPostService(db.DB, cache.New())
	created, err := svc.Create(draftBlogPostInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if created.Slug != "monthly-report-june" {
		t.Fatalf("expected slug 'monthly-report-june', got %q", created.Slug)
	}
	if len(created.Tags) != 2 || created.Tags[0] != "go" || created.Tags[1] != "infra" {
		t.Fatalf("expected deduplicated tags [go infra], got %v", created.Tags)
	}
}

func TestBlogPostSlugNamespaceIsIndependent(t *testing.T) {
	cleanup := setupContentTestDB(t)
	defer cleanup()

	store := cache.New()
	announcements := NewAnnouncementService(db.DB, store)
	posts := NewBlogPostService(db.DB, store)

	if _, err := announcements.Create(draftAnnouncementInput()); err != nil {
		t.Fatalf("seed announcement failed: %v", err)
	}

	input := draftBlogPostInput()
	input.Slug = "hi-there"
	if _, err := posts.Create(input); err != nil {
		t.Fatalf("expected same slug in a different content type to succeed, got %v", err)
	}

	if _, err := posts.Create(input); !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken within the same type, got %v", err)
	}
}

func TestBlogPostSymbolicSlugFallback(t *testing.T) {
	cleanup := setupContentTestDB(t)
	defer cleanup()

	svc := NewBlogPostService(db.DB, cache.New())
	input := draftBlogPostInput()
	input.Slug = "!!!"
	created, err := svc.Create(input)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if created.Slug == "" {
		t.Fatal("expected generated fallback slug")
	}
	if got := created.Slug[:5]; got != "post-" {
		t.Fatalf("expected fallback slug with post- prefix, got %q", created.Slug)
	}
}

func TestBlogPostSummaryBudget(t *testing.T) {
	cleanup := setupContentTestDB(t)
	defer cleanup()

	svc := NewBlogPostService(db.DB, cache.New())
	input := draftBlogPostInput()
	input.Content = ""
	for i := 0; i < 300; i++ {
		input.Content += "word "
	}

	created, err := svc.Create(input)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if got := len([]rune(created.Summary)); got != BlogPostSummaryLen {
		t.Fatalf("expected summary cut at %d characters, got %d", BlogPostSummaryLen, got)
	}
}
