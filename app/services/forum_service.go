package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/itherhq/ither/app/models"
	"github.com/itherhq/ither/pkg/apperrors"
	"github.com/itherhq/ither/query"
	"github.com/itherhq/ither/session"
	"github.com/itherhq/ither/store"
)

// Forum sort orders.
const (
	ForumSortLatest = "latest"
	ForumSortHot    = "hot"
)

// ForumFilter narrows and orders a post listing.
type ForumFilter struct {
	Category models.ForumCategory
	Keyword  string
	Sort     string
}

// ForumService manages discussion posts, threaded comments and like
// reactions. Removed posts stay out of every listing.
type ForumService interface {
	// ListPosts returns visible posts matching the filter.
	ListPosts(ctx context.Context, filter ForumFilter) ([]models.ForumPost, error)
	// GetPost returns one visible post by id.
	GetPost(ctx context.Context, id string) (models.ForumPost, error)
	// CreatePost publishes a new post.
	CreatePost(ctx context.Context, input models.ForumPostInput) (models.ForumPost, error)
	// DeletePost removes the caller's own post from all listings.
	DeletePost(ctx context.Context, id string) error
	// TogglePostLike flips the caller's like on a post and reports the
	// resulting state.
	TogglePostLike(ctx context.Context, postID string) (bool, error)

	// ListComments returns a post's comments, oldest first so threads
	// read top-down.
	ListComments(ctx context.Context, postID string) ([]models.ForumComment, error)
	// AddComment stores a comment and bumps the post's comment counter.
	AddComment(ctx context.Context, input models.ForumCommentInput) (models.ForumComment, error)
	// ToggleCommentLike flips the caller's like on a comment and
	// reports the resulting state.
	ToggleCommentLike(ctx context.Context, commentID string) (bool, error)
}

type forumService struct {
	posts      store.Store[models.ForumPost]
	comments   store.Store[models.ForumComment]
	activities store.Store[models.UserActivity]
	session    *session.Session
	logger     zerolog.Logger
}

// NewForumService creates a new ForumService.
func NewForumService(
	posts store.Store[models.ForumPost],
	comments store.Store[models.ForumComment],
	activities store.Store[models.UserActivity],
	sess *session.Session,
	logger zerolog.Logger,
) ForumService {
	return &forumService{
		posts:      posts,
		comments:   comments,
		activities: activities,
		session:    sess,
		logger:     logger,
	}
}

func (s *forumService) ListPosts(ctx context.Context, filter ForumFilter) ([]models.ForumPost, error) {
	eq := map[string]string{"status": models.PostStatusActive}
	if filter.Category != "" {
		eq["category"] = string(filter.Category)
	}

	posts, err := s.posts.List(ctx, store.Query{Eq: eq})
	if err != nil {
		return nil, err
	}

	posts = query.Filter(posts, func(p models.ForumPost) bool {
		return query.MatchKeyword(filter.Keyword, p.Title, p.Content)
	})

	if filter.Sort == ForumSortHot {
		return query.SortByScore(posts, func(p models.ForumPost) float64 {
			return float64(p.LikeCount + p.CommentCount)
		}), nil
	}
	return query.SortByRecency(posts, func(p models.ForumPost) time.Time { return p.CreatedAt }), nil
}

func (s *forumService) GetPost(ctx context.Context, id string) (models.ForumPost, error) {
	post, ok, err := s.posts.Get(ctx, id)
	if err != nil {
		return models.ForumPost{}, err
	}
	if !ok || post.Status == models.PostStatusRemoved {
		return models.ForumPost{}, apperrors.NewNotFoundError(fmt.Sprintf("post %s not found", id))
	}
	return post, nil
}

func (s *forumService) CreatePost(ctx context.Context, input models.ForumPostInput) (models.ForumPost, error) {
	uid, profile, err := s.session.RequireProfile()
	if err != nil {
		return models.ForumPost{}, err
	}
	if input.Title == "" || input.Content == "" {
		return models.ForumPost{}, apperrors.NewValidationError("title and content are required")
	}

	post := models.ForumPost{
		UserID:   uid,
		UserName: profile.Nickname,
		UserRole: profile.Role,
		Category: input.Category,
		Title:    input.Title,
		Content:  input.Content,
		Tags:     input.Tags,
		Status:   models.PostStatusActive,
		LikedBy:  []string{},
	}

	id, err := s.posts.Create(ctx, post)
	if err != nil {
		return models.ForumPost{}, err
	}

	created, _, err := s.posts.Get(ctx, id)
	if err != nil {
		return models.ForumPost{}, err
	}

	recordActivity(ctx, s.activities, s.logger, models.UserActivity{
		UserID:      uid,
		Type:        ActivityForumPost,
		TargetID:    id,
		TargetTitle: input.Title,
		Preview:     preview(input.Content),
	})

	s.logger.Info().Str("postId", id).Str("category", string(input.Category)).Msg("Forum post created")
	return created, nil
}

// DeletePost removes a post from every listing. Mirror-local posts are
// spliced out of the mirror; anything else keeps its document and
// transitions to the removed status, so remote history survives.
func (s *forumService) DeletePost(ctx context.Context, id string) error {
	uid, err := s.session.Require()
	if err != nil {
		return err
	}

	post, ok, err := s.posts.Get(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("post %s not found", id))
	}
	if post.UserID != uid {
		return apperrors.NewForbiddenError("only the author can delete a post")
	}

	if store.IsLocalID(id) {
		return s.posts.Delete(ctx, id)
	}
	return s.posts.Update(ctx, id, map[string]interface{}{
		"status":    models.PostStatusRemoved,
		"updatedAt": time.Now(),
	})
}

func (s *forumService) TogglePostLike(ctx context.Context, postID string) (bool, error) {
	uid, err := s.session.Require()
	if err != nil {
		return false, err
	}
	return store.ToggleSetMember(ctx, s.posts, postID, "likedBy", "likeCount", uid)
}

func (s *forumService) ListComments(ctx context.Context, postID string) ([]models.ForumComment, error) {
	comments, err := s.comments.List(ctx, store.Query{
		Eq:      map[string]string{"postId": postID},
		OrderBy: "createdAt",
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *forumService) AddComment(ctx context.Context, input models.ForumCommentInput) (models.ForumComment, error) {
	uid, profile, err := s.session.RequireProfile()
	if err != nil {
		return models.ForumComment{}, err
	}
	if input.Content == "" {
		return models.ForumComment{}, apperrors.NewValidationError("comment content is required")
	}

	if _, err := s.GetPost(ctx, input.PostID); err != nil {
		return models.ForumComment{}, err
	}

	comment := models.ForumComment{
		PostID:   input.PostID,
		UserID:   uid,
		UserName: profile.Nickname,
		UserRole: profile.Role,
		Content:  input.Content,
		ParentID: input.ParentID,
		LikedBy:  []string{},
	}

	id, err := s.comments.Create(ctx, comment)
	if err != nil {
		return models.ForumComment{}, err
	}

	if err := s.posts.IncrField(ctx, input.PostID, "commentCount", 1); err != nil {
		return models.ForumComment{}, err
	}

	created, _, err := s.comments.Get(ctx, id)
	if err != nil {
		return models.ForumComment{}, err
	}
	return created, nil
}

func (s *forumService) ToggleCommentLike(ctx context.Context, commentID string) (bool, error) {
	uid, err := s.session.Require()
	if err != nil {
		return false, err
	}
	return store.ToggleSetMember(ctx, s.comments, commentID, "likedBy", "likeCount", uid)
}
