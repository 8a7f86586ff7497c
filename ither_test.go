package ither

import (
	"context"
	"testing"

	"github.com/itherhq/ither/app/models"
	"github.com/itherhq/ither/app/services"
	"github.com/itherhq/ither/config"
)

func newMockConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	cfg.LocalState.Dir = t.TempDir()
	return cfg
}

func TestMockModeServesDemoData(t *testing.T) {
	app, err := New(context.Background(), newMockConfig(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer app.Close(context.Background())

	books, err := app.Booklist.ListBooks(context.Background(), services.BookFilter{})
	if err != nil {
		t.Fatalf("ListBooks: %v", err)
	}
	if len(books) == 0 {
		t.Error("expected demo books in mock mode")
	}

	posts, err := app.Forum.ListPosts(context.Background(), services.ForumFilter{Keyword: "vue"})
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(posts) == 0 {
		t.Error("expected a demo post matching 'vue'")
	}
}

func TestDemoDataCanBeDisabled(t *testing.T) {
	cfg := newMockConfig(t)
	cfg.App.DemoData = false

	app, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer app.Close(context.Background())

	books, err := app.Booklist.ListBooks(context.Background(), services.BookFilter{})
	if err != nil {
		t.Fatalf("ListBooks: %v", err)
	}
	if len(books) != 0 {
		t.Errorf("expected empty shelf, got %d books", len(books))
	}
}

func TestMirrorSurvivesRestart(t *testing.T) {
	cfg := newMockConfig(t)
	ctx := context.Background()

	app, err := New(ctx, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	app.Session.SignIn("u1")
	app.Session.SetProfile(&models.UserProfile{UserID: "u1", Nickname: "Amy", Role: "engineer"})

	post, err := app.Forum.CreatePost(ctx, models.ForumPostInput{
		Category: models.ForumCategoryTech,
		Title:    "persisted across restarts",
		Content:  "written before the restart",
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	app.Close(ctx)

	reopened, err := New(ctx, cfg)
	if err != nil {
		t.Fatalf("New after restart: %v", err)
	}
	defer reopened.Close(ctx)

	got, err := reopened.Forum.GetPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetPost after restart: %v", err)
	}
	if got.Title != "persisted across restarts" {
		t.Errorf("unexpected post: %+v", got)
	}
}

func TestGuestsCanReadButNotWrite(t *testing.T) {
	app, err := New(context.Background(), newMockConfig(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer app.Close(context.Background())
	ctx := context.Background()

	if _, err := app.Forum.ListPosts(ctx, services.ForumFilter{}); err != nil {
		t.Errorf("guest read failed: %v", err)
	}
	if _, err := app.Forum.CreatePost(ctx, models.ForumPostInput{Title: "x", Content: "y"}); err == nil {
		t.Error("expected guest write to fail")
	}
}
