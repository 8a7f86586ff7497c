package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/itherhq/ither/app/models"
	"github.com/itherhq/ither/pkg/apperrors"
	"github.com/itherhq/ither/pkg/socialurl"
	"github.com/itherhq/ither/query"
	"github.com/itherhq/ither/session"
	"github.com/itherhq/ither/store"
)

// ProfileService manages the per-user profile document, its goals and
// social links, plus the derived activity feed and contribution stats.
type ProfileService interface {
	// LoadProfile returns a user's profile, or nil when none exists.
	LoadProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	// LoadMyProfile returns the caller's profile and attaches it to the
	// session, or nil when the caller has none yet.
	LoadMyProfile(ctx context.Context) (*models.UserProfile, error)
	// SaveProfile merges the input into the caller's profile document,
	// creating it on first save.
	SaveProfile(ctx context.Context, input models.UserProfileInput) (models.UserProfile, error)

	// AddGoal appends a goal to the caller's profile.
	AddGoal(ctx context.Context, title string) (models.UserGoal, error)
	// ToggleGoal flips a goal's completion state.
	ToggleGoal(ctx context.Context, goalID string) error
	// RemoveGoal deletes a goal from the caller's profile.
	RemoveGoal(ctx context.Context, goalID string) error

	// SetCurrentStatus updates the free-form status line on the
	// caller's profile.
	SetCurrentStatus(ctx context.Context, status string) error

	// SaveSocialLinks validates and stores the caller's social post
	// URLs. Each link must belong to its claimed platform.
	SaveSocialLinks(ctx context.Context, links models.SocialLinks) error

	// Activities returns a user's recent feed entries, newest first,
	// capped at limit (or a default when limit is 0).
	Activities(ctx context.Context, userID string, limit int) ([]models.UserActivity, error)
	// Stats aggregates a user's contributions across the features.
	Stats(ctx context.Context, userID string) (models.UserStats, error)
}

type profileService struct {
	profiles    store.Store[models.UserProfile]
	activities  store.Store[models.UserActivity]
	forumPosts  store.Store[models.ForumPost]
	comments    store.Store[models.ForumComment]
	mentorships store.Store[models.Mentorship]
	reviews     store.Store[models.BookReview]
	items       store.Store[models.MarketplaceItem]
	session     *session.Session
	logger      zerolog.Logger
}

// NewProfileService creates a new ProfileService.
func NewProfileService(
	profiles store.Store[models.UserProfile],
	activities store.Store[models.UserActivity],
	forumPosts store.Store[models.ForumPost],
	comments store.Store[models.ForumComment],
	mentorships store.Store[models.Mentorship],
	reviews store.Store[models.BookReview],
	items store.Store[models.MarketplaceItem],
	sess *session.Session,
	logger zerolog.Logger,
) ProfileService {
	return &profileService{
		profiles:    profiles,
		activities:  activities,
		forumPosts:  forumPosts,
		comments:    comments,
		mentorships: mentorships,
		reviews:     reviews,
		items:       items,
		session:     sess,
		logger:      logger,
	}
}

func (s *profileService) LoadProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	profile, ok, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &profile, nil
}

func (s *profileService) LoadMyProfile(ctx context.Context) (*models.UserProfile, error) {
	uid, err := s.session.Require()
	if err != nil {
		return nil, err
	}

	profile, err := s.LoadProfile(ctx, uid)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		s.session.SetProfile(profile)
	}
	return profile, nil
}

func (s *profileService) SaveProfile(ctx context.Context, input models.UserProfileInput) (models.UserProfile, error) {
	uid, err := s.session.Require()
	if err != nil {
		return models.UserProfile{}, err
	}
	if input.Nickname == "" {
		return models.UserProfile{}, apperrors.NewValidationError("nickname is required")
	}

	_, existed, err := s.profiles.Get(ctx, uid)
	if err != nil {
		return models.UserProfile{}, err
	}

	now := time.Now()
	fields := map[string]interface{}{
		"nickname":  input.Nickname,
		"role":      input.Role,
		"title":     input.Title,
		"bio":       input.Bio,
		"skills":    input.Skills,
		"updatedAt": now,
	}
	if !existed {
		fields["createdAt"] = now
	}

	if err := s.profiles.Put(ctx, uid, fields); err != nil {
		return models.UserProfile{}, err
	}

	saved, _, err := s.profiles.Get(ctx, uid)
	if err != nil {
		return models.UserProfile{}, err
	}
	s.session.SetProfile(&saved)

	s.logger.Info().Str("userId", uid).Msg("Profile saved")
	return saved, nil
}

func (s *profileService) AddGoal(ctx context.Context, title string) (models.UserGoal, error) {
	if title == "" {
		return models.UserGoal{}, apperrors.NewValidationError("goal title is required")
	}

	goal := models.UserGoal{
		ID:        "goal-" + uuid.New().String(),
		Title:     title,
		CreatedAt: time.Now(),
	}

	err := s.mutateGoals(ctx, func(goals []models.UserGoal) ([]models.UserGoal, error) {
		return append(goals, goal), nil
	})
	if err != nil {
		return models.UserGoal{}, err
	}
	return goal, nil
}

func (s *profileService) ToggleGoal(ctx context.Context, goalID string) error {
	return s.mutateGoals(ctx, func(goals []models.UserGoal) ([]models.UserGoal, error) {
		for i := range goals {
			if goals[i].ID == goalID {
				goals[i].IsCompleted = !goals[i].IsCompleted
				return goals, nil
			}
		}
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("goal %s not found", goalID))
	})
}

func (s *profileService) RemoveGoal(ctx context.Context, goalID string) error {
	return s.mutateGoals(ctx, func(goals []models.UserGoal) ([]models.UserGoal, error) {
		for i := range goals {
			if goals[i].ID == goalID {
				return append(goals[:i], goals[i+1:]...), nil
			}
		}
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("goal %s not found", goalID))
	})
}

// mutateGoals rewrites the goal list inside the caller's profile
// document through a read-modify-write of the currentGoals field.
func (s *profileService) mutateGoals(ctx context.Context, fn func([]models.UserGoal) ([]models.UserGoal, error)) error {
	uid, err := s.session.Require()
	if err != nil {
		return err
	}

	profile, ok, err := s.profiles.Get(ctx, uid)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrProfileRequired
	}

	goals, err := fn(profile.CurrentGoals)
	if err != nil {
		return err
	}

	if err := s.profiles.Update(ctx, uid, map[string]interface{}{
		"currentGoals": goals,
		"updatedAt":    time.Now(),
	}); err != nil {
		return err
	}

	profile.CurrentGoals = goals
	s.session.SetProfile(&profile)
	return nil
}

func (s *profileService) SetCurrentStatus(ctx context.Context, status string) error {
	uid, err := s.session.Require()
	if err != nil {
		return err
	}

	if err := s.profiles.Update(ctx, uid, map[string]interface{}{
		"currentStatus": status,
		"updatedAt":     time.Now(),
	}); err != nil {
		return err
	}

	if p := s.session.Profile(); p != nil {
		p.CurrentStatus = status
		s.session.SetProfile(p)
	}
	return nil
}

func (s *profileService) SaveSocialLinks(ctx context.Context, links models.SocialLinks) error {
	uid, err := s.session.Require()
	if err != nil {
		return err
	}

	checks := []struct {
		platform socialurl.Platform
		url      string
	}{
		{socialurl.Instagram, links.Instagram},
		{socialurl.Facebook, links.Facebook},
		{socialurl.Threads, links.Threads},
	}
	for _, c := range checks {
		if c.url == "" {
			continue
		}
		parsed, ok := socialurl.Parse(c.url)
		if !ok || parsed.Platform != c.platform {
			return apperrors.NewValidationError(
				fmt.Sprintf("not a valid %s post URL", socialurl.PlatformName(c.platform)))
		}
	}

	if err := s.profiles.Update(ctx, uid, map[string]interface{}{
		"socialLinks": links,
		"updatedAt":   time.Now(),
	}); err != nil {
		return err
	}

	if p := s.session.Profile(); p != nil {
		p.SocialLinks = &links
		s.session.SetProfile(p)
	}
	return nil
}

func (s *profileService) Activities(ctx context.Context, userID string, limit int) ([]models.UserActivity, error) {
	if limit <= 0 {
		limit = 10
	}

	acts, err := s.activities.List(ctx, store.Query{
		Eq:      map[string]string{"userId": userID},
		OrderBy: "createdAt",
		Desc:    true,
	})
	if err != nil {
		return nil, err
	}
	if len(acts) > limit {
		acts = acts[:limit]
	}
	return acts, nil
}

func (s *profileService) Stats(ctx context.Context, userID string) (models.UserStats, error) {
	var stats models.UserStats

	posts, err := s.forumPosts.List(ctx, store.Query{Eq: map[string]string{
		"userId": userID,
		"status": models.PostStatusActive,
	}})
	if err != nil {
		return stats, err
	}
	stats.ForumPosts = len(posts)

	comments, err := s.comments.List(ctx, store.Query{Eq: map[string]string{"userId": userID}})
	if err != nil {
		return stats, err
	}
	stats.ForumComments = len(comments)

	asMentor, err := s.mentorships.List(ctx, store.Query{Eq: map[string]string{
		"mentorId": userID,
		"status":   string(models.MentorshipActive),
	}})
	if err != nil {
		return stats, err
	}
	asMentee, err := s.mentorships.List(ctx, store.Query{Eq: map[string]string{
		"menteeId": userID,
		"status":   string(models.MentorshipActive),
	}})
	if err != nil {
		return stats, err
	}
	stats.MentorshipActive = len(query.MergeByID(asMentor, asMentee))

	reviews, err := s.reviews.List(ctx, store.Query{Eq: map[string]string{"userId": userID}})
	if err != nil {
		return stats, err
	}
	stats.BooksReviewed = len(reviews)

	listings, err := s.items.List(ctx, store.Query{Eq: map[string]string{"userId": userID}})
	if err != nil {
		return stats, err
	}
	stats.MarketplaceListings = len(listings)
	for _, item := range listings {
		if item.Status == models.ListingSold {
			stats.MarketplaceSold++
		}
	}

	return stats, nil
}
