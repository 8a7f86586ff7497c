// Package session tracks the signed-in user for the lifetime of an App.
package session

import (
	"sync"

	"github.com/itherhq/ither/app/models"
	"github.com/itherhq/ither/pkg/apperrors"
)

// Session holds the current user identity and their loaded profile.
// All methods are safe for concurrent use.
type Session struct {
	mu      sync.RWMutex
	userID  string
	profile *models.UserProfile
}

func New() *Session {
	return &Session{}
}

// SignIn sets the current user. Any previously loaded profile is
// discarded since it belonged to the previous user.
func (s *Session) SignIn(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
	s.profile = nil
}

// SignOut clears the current user and profile.
func (s *Session) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = ""
	s.profile = nil
}

// SetProfile attaches the loaded profile to the session.
func (s *Session) SetProfile(p *models.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
}

// UserID returns the signed-in user's id, or "" when signed out.
func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// Profile returns the session profile, or nil when none is loaded.
func (s *Session) Profile() *models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Require returns the signed-in user's id, failing with ErrNotSignedIn
// for guests.
func (s *Session) Require() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.userID == "" {
		return "", apperrors.ErrNotSignedIn
	}
	return s.userID, nil
}

// RequireProfile returns the signed-in user's id and profile, failing
// when either is missing.
func (s *Session) RequireProfile() (string, *models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.userID == "" {
		return "", nil, apperrors.ErrNotSignedIn
	}
	if s.profile == nil {
		return "", nil, apperrors.ErrProfileRequired
	}
	return s.userID, s.profile, nil
}
