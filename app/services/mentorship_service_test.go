package services

import (
	"context"
	"errors"
	"testing"

	"github.com/itherhq/ither/app/models"
	"github.com/itherhq/ither/pkg/apperrors"
	"github.com/itherhq/ither/session"
)

func newMentorshipFixture() (MentorshipService, *session.Session) {
	sess := session.New()
	svc := NewMentorshipService(
		memStore[models.MentorPost]("mentor-post", nil),
		memStore[models.Mentorship]("mentorship", nil),
		memStore[models.UserProfile]("profile", nil),
		sess, nil, noLog(),
	)
	return svc, sess
}

func TestMentorshipLifecycle(t *testing.T) {
	svc, sess := newMentorshipFixture()
	ctx := context.Background()

	signInAs(sess, "u-mentee", "Dan")
	m, err := svc.Request(ctx, models.MentorshipRequest{
		TargetUserID: "u-mentor",
		Areas:        []string{"backend"},
		Message:      "Would love guidance on my first role.",
	}, false)
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if m.Status != models.MentorshipPendingMentor {
		t.Fatalf("status = %q, want pending_mentor", m.Status)
	}
	if m.MentorID != "u-mentor" || m.MenteeID != "u-mentee" {
		t.Fatalf("parties wrong: %+v", m)
	}

	// The initiating mentee cannot answer their own request.
	if _, err := svc.Accept(ctx, m.ID); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("mentee accept: expected ErrPermissionDenied, got %v", err)
	}

	signInAs(sess, "u-mentor", "Amy")
	accepted, err := svc.Accept(ctx, m.ID)
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if accepted.Status != models.MentorshipActive {
		t.Fatalf("status = %q, want active", accepted.Status)
	}
	if accepted.AcceptedAt == nil {
		t.Error("expected acceptedAt set")
	}

	// Either party may complete an active pairing.
	signInAs(sess, "u-mentee", "Dan")
	completed, err := svc.Complete(ctx, m.ID)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if completed.Status != models.MentorshipCompleted || completed.CompletedAt == nil {
		t.Fatalf("unexpected completed record: %+v", completed)
	}

	// A terminal pairing cannot be rejected, and the failed attempt
	// leaves it untouched.
	if _, err := svc.Reject(ctx, m.ID, "changed my mind"); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("reject after complete: expected ErrInvalidTransition, got %v", err)
	}
	list, err := svc.MyMentorships(ctx)
	if err != nil {
		t.Fatalf("MyMentorships: %v", err)
	}
	if len(list) != 1 || list[0].Status != models.MentorshipCompleted {
		t.Fatalf("expected completed pairing to survive, got %+v", list)
	}
}

func TestMentorshipRejectKeepsReason(t *testing.T) {
	svc, sess := newMentorshipFixture()
	ctx := context.Background()

	signInAs(sess, "u-mentor", "Amy")
	m, err := svc.Request(ctx, models.MentorshipRequest{TargetUserID: "u-mentee"}, true)
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if m.Status != models.MentorshipPendingMentee {
		t.Fatalf("status = %q, want pending_mentee", m.Status)
	}

	signInAs(sess, "u-mentee", "Dan")
	rejected, err := svc.Reject(ctx, m.ID, "no capacity this quarter")
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if rejected.Status != models.MentorshipRejected {
		t.Errorf("status = %q, want rejected", rejected.Status)
	}
	if rejected.RejectionReason != "no capacity this quarter" {
		t.Errorf("reason = %q", rejected.RejectionReason)
	}

	// Rejected is terminal.
	signInAs(sess, "u-mentor", "Amy")
	if _, err := svc.Accept(ctx, m.ID); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Errorf("accept after reject: expected ErrInvalidTransition, got %v", err)
	}
}

func TestRequestValidation(t *testing.T) {
	svc, sess := newMentorshipFixture()
	ctx := context.Background()

	if _, err := svc.Request(ctx, models.MentorshipRequest{TargetUserID: "x"}, false); !errors.Is(err, apperrors.ErrNotSignedIn) {
		t.Errorf("guest request: expected ErrNotSignedIn, got %v", err)
	}

	sess.SignIn("u1")
	if _, err := svc.Request(ctx, models.MentorshipRequest{TargetUserID: "x"}, false); !errors.Is(err, apperrors.ErrProfileRequired) {
		t.Errorf("no profile: expected ErrProfileRequired, got %v", err)
	}

	signInAs(sess, "u1", "Amy")
	if _, err := svc.Request(ctx, models.MentorshipRequest{TargetUserID: "u1"}, false); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("self request: expected ErrValidationFailed, got %v", err)
	}
}

func TestPendingAndActiveViews(t *testing.T) {
	svc, sess := newMentorshipFixture()
	ctx := context.Background()

	signInAs(sess, "u-mentee", "Dan")
	first, err := svc.Request(ctx, models.MentorshipRequest{TargetUserID: "u-mentor"}, false)
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if _, err := svc.Request(ctx, models.MentorshipRequest{TargetUserID: "u-other"}, false); err != nil {
		t.Fatalf("Request: %v", err)
	}

	signInAs(sess, "u-mentor", "Amy")
	if _, err := svc.Accept(ctx, first.ID); err != nil {
		t.Fatalf("Accept: %v", err)
	}

	signInAs(sess, "u-mentee", "Dan")
	pending, err := svc.PendingMentorships(ctx)
	if err != nil {
		t.Fatalf("PendingMentorships: %v", err)
	}
	if len(pending) != 1 || pending[0].MentorID != "u-other" {
		t.Errorf("pending = %+v", pending)
	}

	active, err := svc.ActiveMentorships(ctx)
	if err != nil {
		t.Fatalf("ActiveMentorships: %v", err)
	}
	if len(active) != 1 || active[0].ID != first.ID {
		t.Errorf("active = %+v", active)
	}
}

func TestMentorPostOwnerDelete(t *testing.T) {
	svc, sess := newMentorshipFixture()
	ctx := context.Background()

	signInAs(sess, "u1", "Amy")
	post, err := svc.CreatePost(ctx, models.MentorPostInput{
		Type:  models.MentorPostOffer,
		Title: "Frontend mentoring",
		Areas: []string{"frontend"},
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	signInAs(sess, "u2", "Ben")
	if err := svc.DeletePost(ctx, post.ID); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("non-owner delete: expected ErrPermissionDenied, got %v", err)
	}

	signInAs(sess, "u1", "Amy")
	if err := svc.DeletePost(ctx, post.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	posts, err := svc.ListPosts(ctx, "")
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("expected post gone, got %d posts", len(posts))
	}
}

func TestListPostsFiltersByType(t *testing.T) {
	svc, sess := newMentorshipFixture()
	ctx := context.Background()
	signInAs(sess, "u1", "Amy")

	if _, err := svc.CreatePost(ctx, models.MentorPostInput{Type: models.MentorPostOffer, Title: "offer"}); err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if _, err := svc.CreatePost(ctx, models.MentorPostInput{Type: models.MentorPostRequest, Title: "request"}); err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	offers, err := svc.ListPosts(ctx, models.MentorPostOffer)
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(offers) != 1 || offers[0].Type != models.MentorPostOffer {
		t.Errorf("expected one offer, got %+v", offers)
	}

	both, err := svc.ListPosts(ctx, "")
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(both) != 2 {
		t.Errorf("expected both posts, got %d", len(both))
	}
}
