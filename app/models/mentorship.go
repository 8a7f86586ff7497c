package models

import "time"

// MentorPostType distinguishes mentor offers from mentee requests
type MentorPostType string

const (
	MentorPostOffer   MentorPostType = "offer"
	MentorPostRequest MentorPostType = "request"
)

// MentorshipStatus is the state of a mentorship pairing
type MentorshipStatus string

const (
	// MentorshipPendingMentor means the mentor side has not answered yet
	MentorshipPendingMentor MentorshipStatus = "pending_mentor"
	// MentorshipPendingMentee means the mentee side has not answered yet
	MentorshipPendingMentee MentorshipStatus = "pending_mentee"
	MentorshipActive        MentorshipStatus = "active"
	MentorshipCompleted     MentorshipStatus = "completed"
	MentorshipRejected      MentorshipStatus = "rejected"
)

// Terminal reports whether no further transition is legal from s.
func (s MentorshipStatus) Terminal() bool {
	return s == MentorshipCompleted || s == MentorshipRejected
}

// MentorPost is a published mentor offer or mentee request
type MentorPost struct {
	ID          string         `json:"id" bson:"_id"`
	UserID      string         `json:"userId" bson:"userId"`
	UserName    string         `json:"userName" bson:"userName"`
	UserRole    string         `json:"userRole" bson:"userRole"`
	Type        MentorPostType `json:"type" bson:"type"`
	Title       string         `json:"title" bson:"title"`
	Areas       []string       `json:"areas" bson:"areas"`
	Description string         `json:"description" bson:"description"`
	Status      string         `json:"status" bson:"status"`
	CreatedAt   time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt   *time.Time     `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

func (p MentorPost) RecordID() string { return p.ID }

// Mentorship is a two-party pairing record owned jointly by both parties
type Mentorship struct {
	ID              string           `json:"id" bson:"_id"`
	MentorID        string           `json:"mentorId" bson:"mentorId"`
	MenteeID        string           `json:"menteeId" bson:"menteeId"`
	Status          MentorshipStatus `json:"status" bson:"status"`
	InitiatedBy     string           `json:"initiatedBy" bson:"initiatedBy"`
	Areas           []string         `json:"areas" bson:"areas"`
	Message         string           `json:"message" bson:"message"`
	MentorName      string           `json:"mentorName,omitempty" bson:"mentorName,omitempty"`
	MenteeName      string           `json:"menteeName,omitempty" bson:"menteeName,omitempty"`
	RejectionReason string           `json:"rejectionReason,omitempty" bson:"rejectionReason,omitempty"`
	CreatedAt       time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt       *time.Time       `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
	AcceptedAt      *time.Time       `json:"acceptedAt,omitempty" bson:"acceptedAt,omitempty"`
	CompletedAt     *time.Time       `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
}

func (m Mentorship) RecordID() string { return m.ID }

// MentorPostInput is the caller-supplied part of a new mentor post
type MentorPostInput struct {
	Type        MentorPostType `json:"type"`
	Title       string         `json:"title"`
	Areas       []string       `json:"areas"`
	Description string         `json:"description"`
}

// MentorshipRequest is the caller-supplied part of a pairing request
type MentorshipRequest struct {
	TargetUserID string   `json:"targetUserId"`
	Areas        []string `json:"areas"`
	Message      string   `json:"message"`
}

// MentorProfile is the mentor-capability sub-profile nested in a user profile
type MentorProfile struct {
	Areas        []string   `json:"areas" bson:"areas"`
	Experience   string     `json:"experience" bson:"experience"`
	Availability string     `json:"availability" bson:"availability"`
	Bio          string     `json:"bio" bson:"bio"`
	CreatedAt    time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// MenteeProfile is the mentee-intent sub-profile nested in a user profile
type MenteeProfile struct {
	Areas     []string   `json:"areas" bson:"areas"`
	Goals     string     `json:"goals" bson:"goals"`
	Level     string     `json:"level" bson:"level"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// MentorProfileInput is the caller-supplied part of a mentor sub-profile
type MentorProfileInput struct {
	Areas        []string `json:"areas"`
	Experience   string   `json:"experience"`
	Availability string   `json:"availability"`
	Bio          string   `json:"bio"`
}

// MenteeProfileInput is the caller-supplied part of a mentee sub-profile
type MenteeProfileInput struct {
	Areas []string `json:"areas"`
	Goals string   `json:"goals"`
	Level string   `json:"level"`
}
