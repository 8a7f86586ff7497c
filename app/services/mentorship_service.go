package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/itherhq/ither/app/models"
	"github.com/itherhq/ither/pkg/apperrors"
	"github.com/itherhq/ither/pkg/localstate"
	"github.com/itherhq/ither/query"
	"github.com/itherhq/ither/session"
	"github.com/itherhq/ither/store"
)

// Local state keys for the mentorship sub-profiles.
const (
	stateKeyMentorProfile = "ither-mentor-profile"
	stateKeyMenteeProfile = "ither-mentee-profile"
)

// MentorshipService manages mentor posts, mentor/mentee sub-profiles
// and the pairing lifecycle between two users.
type MentorshipService interface {
	// ListPosts returns active mentor posts, newest first. An empty
	// postType returns both offers and requests.
	ListPosts(ctx context.Context, postType models.MentorPostType) ([]models.MentorPost, error)
	// CreatePost publishes a mentor offer or mentee request.
	CreatePost(ctx context.Context, input models.MentorPostInput) (models.MentorPost, error)
	// DeletePost removes the caller's own post. Mentor posts are hard
	// deleted rather than status-flagged.
	DeletePost(ctx context.Context, id string) error

	// SaveMentorProfile stores the caller's mentor sub-profile.
	SaveMentorProfile(ctx context.Context, input models.MentorProfileInput) error
	// SaveMenteeProfile stores the caller's mentee sub-profile.
	SaveMenteeProfile(ctx context.Context, input models.MenteeProfileInput) error

	// Request creates a pairing request toward another user. asMentor
	// states which side the caller takes; the other side's answer is
	// what the new pairing waits on.
	Request(ctx context.Context, req models.MentorshipRequest, asMentor bool) (models.Mentorship, error)
	// MyMentorships returns every pairing the caller is a party of,
	// newest first.
	MyMentorships(ctx context.Context) ([]models.Mentorship, error)
	// PendingMentorships returns the caller's pairings still waiting on
	// an answer from either side.
	PendingMentorships(ctx context.Context) ([]models.Mentorship, error)
	// ActiveMentorships returns the caller's active pairings.
	ActiveMentorships(ctx context.Context) ([]models.Mentorship, error)
	// Accept moves a pending pairing to active. Only the party whose
	// answer is pending may accept.
	Accept(ctx context.Context, id string) (models.Mentorship, error)
	// Reject closes a pending pairing with a reason. Only the party
	// whose answer is pending may reject.
	Reject(ctx context.Context, id, reason string) (models.Mentorship, error)
	// Complete closes an active pairing. Either party may complete.
	Complete(ctx context.Context, id string) (models.Mentorship, error)
}

type mentorshipService struct {
	posts       store.Store[models.MentorPost]
	mentorships store.Store[models.Mentorship]
	profiles    store.Store[models.UserProfile]
	session     *session.Session
	state       *localstate.Store
	logger      zerolog.Logger
}

// NewMentorshipService creates a new MentorshipService. state may be
// nil outside mock mode; sub-profile snapshots are then skipped.
func NewMentorshipService(
	posts store.Store[models.MentorPost],
	mentorships store.Store[models.Mentorship],
	profiles store.Store[models.UserProfile],
	sess *session.Session,
	state *localstate.Store,
	logger zerolog.Logger,
) MentorshipService {
	return &mentorshipService{
		posts:       posts,
		mentorships: mentorships,
		profiles:    profiles,
		session:     sess,
		state:       state,
		logger:      logger,
	}
}

func (s *mentorshipService) ListPosts(ctx context.Context, postType models.MentorPostType) ([]models.MentorPost, error) {
	eq := map[string]string{"status": "active"}
	if postType != "" {
		eq["type"] = string(postType)
	}

	posts, err := s.posts.List(ctx, store.Query{Eq: eq, OrderBy: "createdAt", Desc: true})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *mentorshipService) CreatePost(ctx context.Context, input models.MentorPostInput) (models.MentorPost, error) {
	uid, profile, err := s.session.RequireProfile()
	if err != nil {
		return models.MentorPost{}, err
	}
	if input.Title == "" || input.Type == "" {
		return models.MentorPost{}, apperrors.NewValidationError("post type and title are required")
	}

	post := models.MentorPost{
		UserID:      uid,
		UserName:    profile.Nickname,
		UserRole:    profile.Role,
		Type:        input.Type,
		Title:       input.Title,
		Areas:       input.Areas,
		Description: input.Description,
		Status:      "active",
	}

	id, err := s.posts.Create(ctx, post)
	if err != nil {
		return models.MentorPost{}, err
	}

	created, _, err := s.posts.Get(ctx, id)
	if err != nil {
		return models.MentorPost{}, err
	}

	s.logger.Info().Str("postId", id).Str("type", string(input.Type)).Msg("Mentor post created")
	return created, nil
}

func (s *mentorshipService) DeletePost(ctx context.Context, id string) error {
	uid, err := s.session.Require()
	if err != nil {
		return err
	}

	post, ok, err := s.posts.Get(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("mentor post %s not found", id))
	}
	if post.UserID != uid {
		return apperrors.NewForbiddenError("only the author can delete a mentor post")
	}

	return s.posts.Delete(ctx, id)
}

func (s *mentorshipService) SaveMentorProfile(ctx context.Context, input models.MentorProfileInput) error {
	uid, err := s.session.Require()
	if err != nil {
		return err
	}
	if len(input.Areas) == 0 {
		return apperrors.NewValidationError("at least one mentoring area is required")
	}

	now := time.Now()
	sub := models.MentorProfile{
		Areas:        input.Areas,
		Experience:   input.Experience,
		Availability: input.Availability,
		Bio:          input.Bio,
		CreatedAt:    now,
		UpdatedAt:    &now,
	}

	if err := s.profiles.Put(ctx, uid, map[string]interface{}{"mentorProfile": sub, "updatedAt": now}); err != nil {
		return err
	}
	if p := s.session.Profile(); p != nil {
		p.MentorProfile = &sub
		s.session.SetProfile(p)
	}
	s.snapshot(stateKeyMentorProfile, sub)
	return nil
}

func (s *mentorshipService) SaveMenteeProfile(ctx context.Context, input models.MenteeProfileInput) error {
	uid, err := s.session.Require()
	if err != nil {
		return err
	}
	if len(input.Areas) == 0 {
		return apperrors.NewValidationError("at least one learning area is required")
	}

	now := time.Now()
	sub := models.MenteeProfile{
		Areas:     input.Areas,
		Goals:     input.Goals,
		Level:     input.Level,
		CreatedAt: now,
		UpdatedAt: &now,
	}

	if err := s.profiles.Put(ctx, uid, map[string]interface{}{"menteeProfile": sub, "updatedAt": now}); err != nil {
		return err
	}
	if p := s.session.Profile(); p != nil {
		p.MenteeProfile = &sub
		s.session.SetProfile(p)
	}
	s.snapshot(stateKeyMenteeProfile, sub)
	return nil
}

// snapshot mirrors a sub-profile to local state so a mock-mode restart
// keeps it. Failures are logged, never surfaced; the store already
// holds the authoritative copy.
func (s *mentorshipService) snapshot(key string, v interface{}) {
	if s.state == nil {
		return
	}
	if err := s.state.Save(key, v); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Sub-profile snapshot failed")
	}
}

func (s *mentorshipService) Request(ctx context.Context, req models.MentorshipRequest, asMentor bool) (models.Mentorship, error) {
	uid, profile, err := s.session.RequireProfile()
	if err != nil {
		return models.Mentorship{}, err
	}
	if req.TargetUserID == "" {
		return models.Mentorship{}, apperrors.NewValidationError("target user is required")
	}
	if req.TargetUserID == uid {
		return models.Mentorship{}, apperrors.NewValidationError("cannot request a mentorship with yourself")
	}

	m := models.Mentorship{
		Areas:   req.Areas,
		Message: req.Message,
	}
	if asMentor {
		m.MentorID = uid
		m.MentorName = profile.Nickname
		m.MenteeID = req.TargetUserID
		m.InitiatedBy = "mentor"
		m.Status = models.MentorshipPendingMentee
	} else {
		m.MenteeID = uid
		m.MenteeName = profile.Nickname
		m.MentorID = req.TargetUserID
		m.InitiatedBy = "mentee"
		m.Status = models.MentorshipPendingMentor
	}

	id, err := s.mentorships.Create(ctx, m)
	if err != nil {
		return models.Mentorship{}, err
	}

	created, _, err := s.mentorships.Get(ctx, id)
	if err != nil {
		return models.Mentorship{}, err
	}

	s.logger.Info().Str("mentorshipId", id).Str("status", string(created.Status)).Msg("Mentorship requested")
	return created, nil
}

func (s *mentorshipService) MyMentorships(ctx context.Context) ([]models.Mentorship, error) {
	uid, err := s.session.Require()
	if err != nil {
		return nil, err
	}

	asMentor, err := s.mentorships.List(ctx, store.Query{Eq: map[string]string{"mentorId": uid}})
	if err != nil {
		return nil, err
	}
	asMentee, err := s.mentorships.List(ctx, store.Query{Eq: map[string]string{"menteeId": uid}})
	if err != nil {
		return nil, err
	}

	merged := query.MergeByID(asMentor, asMentee)
	return query.SortByRecency(merged, func(m models.Mentorship) time.Time { return m.CreatedAt }), nil
}

func (s *mentorshipService) PendingMentorships(ctx context.Context) ([]models.Mentorship, error) {
	all, err := s.MyMentorships(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filter(all, func(m models.Mentorship) bool {
		return m.Status == models.MentorshipPendingMentor || m.Status == models.MentorshipPendingMentee
	}), nil
}

func (s *mentorshipService) ActiveMentorships(ctx context.Context) ([]models.Mentorship, error) {
	all, err := s.MyMentorships(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filter(all, func(m models.Mentorship) bool {
		return m.Status == models.MentorshipActive
	}), nil
}

func (s *mentorshipService) Accept(ctx context.Context, id string) (models.Mentorship, error) {
	return s.transition(ctx, id, func(m models.Mentorship, uid string) (map[string]interface{}, error) {
		if err := requirePendingParty(m, uid); err != nil {
			return nil, err
		}
		now := time.Now()
		return map[string]interface{}{
			"status":     models.MentorshipActive,
			"acceptedAt": now,
			"updatedAt":  now,
		}, nil
	})
}

func (s *mentorshipService) Reject(ctx context.Context, id, reason string) (models.Mentorship, error) {
	return s.transition(ctx, id, func(m models.Mentorship, uid string) (map[string]interface{}, error) {
		if err := requirePendingParty(m, uid); err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"status":          models.MentorshipRejected,
			"rejectionReason": reason,
			"updatedAt":       time.Now(),
		}, nil
	})
}

func (s *mentorshipService) Complete(ctx context.Context, id string) (models.Mentorship, error) {
	return s.transition(ctx, id, func(m models.Mentorship, uid string) (map[string]interface{}, error) {
		if m.Status != models.MentorshipActive {
			return nil, apperrors.NewTransitionError(fmt.Sprintf("cannot complete a %s mentorship", m.Status))
		}
		if m.MentorID != uid && m.MenteeID != uid {
			return nil, apperrors.NewForbiddenError("only a party of the mentorship can complete it")
		}
		now := time.Now()
		return map[string]interface{}{
			"status":      models.MentorshipCompleted,
			"completedAt": now,
			"updatedAt":   now,
		}, nil
	})
}

// transition loads the pairing, lets guard decide the field updates and
// applies them. A guard failure leaves the record untouched.
func (s *mentorshipService) transition(
	ctx context.Context,
	id string,
	guard func(m models.Mentorship, uid string) (map[string]interface{}, error),
) (models.Mentorship, error) {
	uid, err := s.session.Require()
	if err != nil {
		return models.Mentorship{}, err
	}

	m, ok, err := s.mentorships.Get(ctx, id)
	if err != nil {
		return models.Mentorship{}, err
	}
	if !ok {
		return models.Mentorship{}, apperrors.NewNotFoundError(fmt.Sprintf("mentorship %s not found", id))
	}

	fields, err := guard(m, uid)
	if err != nil {
		return models.Mentorship{}, err
	}

	if err := s.mentorships.Update(ctx, id, fields); err != nil {
		return models.Mentorship{}, err
	}

	updated, _, err := s.mentorships.Get(ctx, id)
	if err != nil {
		return models.Mentorship{}, err
	}

	s.logger.Info().Str("mentorshipId", id).Str("status", string(updated.Status)).Msg("Mentorship transitioned")
	return updated, nil
}

// requirePendingParty checks that m is pending and that uid is the
// party whose answer is awaited.
func requirePendingParty(m models.Mentorship, uid string) error {
	switch m.Status {
	case models.MentorshipPendingMentor:
		if m.MentorID != uid {
			return apperrors.NewForbiddenError("waiting on the mentor's answer")
		}
	case models.MentorshipPendingMentee:
		if m.MenteeID != uid {
			return apperrors.NewForbiddenError("waiting on the mentee's answer")
		}
	default:
		return apperrors.NewTransitionError(fmt.Sprintf("mentorship is already %s", m.Status))
	}
	return nil
}
