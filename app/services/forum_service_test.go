package services

import (
	"context"
	"errors"
	"testing"

	"github.com/itherhq/ither/app/models"
	"github.com/itherhq/ither/pkg/apperrors"
	"github.com/itherhq/ither/session"
)

func newForumFixture(seeds []models.ForumPost) (ForumService, *session.Session) {
	sess := session.New()
	svc := NewForumService(
		memStore("forum-post", seeds),
		memStore[models.ForumComment]("forum-comment", nil),
		memStore[models.UserActivity]("activity", nil),
		sess, noLog(),
	)
	return svc, sess
}

func TestDeleteLocalPostSplicesIt(t *testing.T) {
	svc, sess := newForumFixture(nil)
	ctx := context.Background()
	signInAs(sess, "u1", "Amy")

	post, err := svc.CreatePost(ctx, models.ForumPostInput{
		Category: models.ForumCategoryTech,
		Title:    "hello",
		Content:  "world",
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	if err := svc.DeletePost(ctx, post.ID); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	posts, _ := svc.ListPosts(ctx, ForumFilter{})
	if len(posts) != 0 {
		t.Errorf("expected empty listing, got %d", len(posts))
	}
}

func TestDeleteRemotePostFlagsStatus(t *testing.T) {
	seeds := []models.ForumPost{{
		ID: "post-1", UserID: "u1", Title: "kept", Status: models.PostStatusActive,
	}}
	svc, sess := newForumFixture(seeds)
	ctx := context.Background()

	signInAs(sess, "u2", "Ben")
	if err := svc.DeletePost(ctx, "post-1"); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("non-owner delete: expected ErrPermissionDenied, got %v", err)
	}

	signInAs(sess, "u1", "Amy")
	if err := svc.DeletePost(ctx, "post-1"); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}

	// The document survives with removed status and leaves every read.
	if _, err := svc.GetPost(ctx, "post-1"); !errors.Is(err, apperrors.ErrRecordNotFound) {
		t.Errorf("GetPost after delete: expected ErrRecordNotFound, got %v", err)
	}
	posts, _ := svc.ListPosts(ctx, ForumFilter{})
	if len(posts) != 0 {
		t.Errorf("removed post still listed: %+v", posts)
	}
}

func TestTogglePostLike(t *testing.T) {
	seeds := []models.ForumPost{{ID: "post-1", UserID: "u1", Status: models.PostStatusActive, LikeCount: 2, LikedBy: []string{"u8", "u9"}}}
	svc, sess := newForumFixture(seeds)
	ctx := context.Background()
	signInAs(sess, "u2", "Ben")

	liked, err := svc.TogglePostLike(ctx, "post-1")
	if err != nil || !liked {
		t.Fatalf("toggle on: liked=%v err=%v", liked, err)
	}
	post, _ := svc.GetPost(ctx, "post-1")
	if post.LikeCount != 3 {
		t.Fatalf("likeCount = %d, want 3", post.LikeCount)
	}

	liked, err = svc.TogglePostLike(ctx, "post-1")
	if err != nil || liked {
		t.Fatalf("toggle off: liked=%v err=%v", liked, err)
	}
	post, _ = svc.GetPost(ctx, "post-1")
	if post.LikeCount != 2 || len(post.LikedBy) != 2 {
		t.Errorf("expected original state back, got count=%d set=%v", post.LikeCount, post.LikedBy)
	}
}

func TestAddCommentBumpsCountAndThreadsOldestFirst(t *testing.T) {
	seeds := []models.ForumPost{{ID: "post-1", UserID: "u1", Status: models.PostStatusActive}}
	svc, sess := newForumFixture(seeds)
	ctx := context.Background()
	signInAs(sess, "u2", "Ben")

	first, err := svc.AddComment(ctx, models.ForumCommentInput{PostID: "post-1", Content: "first"})
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if _, err := svc.AddComment(ctx, models.ForumCommentInput{PostID: "post-1", Content: "reply", ParentID: first.ID}); err != nil {
		t.Fatalf("AddComment reply: %v", err)
	}

	post, _ := svc.GetPost(ctx, "post-1")
	if post.CommentCount != 2 {
		t.Errorf("commentCount = %d, want 2", post.CommentCount)
	}

	comments, err := svc.ListComments(ctx, "post-1")
	if err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	if len(comments) != 2 || comments[0].Content != "first" {
		t.Fatalf("expected oldest-first thread, got %+v", comments)
	}
	if comments[1].ParentID != first.ID {
		t.Errorf("reply not threaded under %s: %+v", first.ID, comments[1])
	}
}

func TestCommentOnRemovedPostFails(t *testing.T) {
	seeds := []models.ForumPost{{ID: "post-1", UserID: "u1", Status: models.PostStatusRemoved}}
	svc, sess := newForumFixture(seeds)
	signInAs(sess, "u2", "Ben")

	_, err := svc.AddComment(context.Background(), models.ForumCommentInput{PostID: "post-1", Content: "hi"})
	if !errors.Is(err, apperrors.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestListPostsCategoryAndKeyword(t *testing.T) {
	seeds := []models.ForumPost{
		{ID: "p1", Status: models.PostStatusActive, Category: models.ForumCategoryTech, Title: "Vue structure"},
		{ID: "p2", Status: models.PostStatusActive, Category: models.ForumCategoryTech, Title: "Go generics"},
		{ID: "p3", Status: models.PostStatusActive, Category: models.ForumCategoryCareer, Title: "Vue job hunt"},
	}
	svc, _ := newForumFixture(seeds)

	got, err := svc.ListPosts(context.Background(), ForumFilter{
		Category: models.ForumCategoryTech,
		Keyword:  "vue",
	})
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(got) != 1 || got[0].ID != "p1" {
		t.Errorf("filtered listing = %+v", got)
	}
}
