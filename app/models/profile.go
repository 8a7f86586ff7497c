package models

import "time"

// UserProfile is the per-user profile document, one per user id. The
// mentor/mentee sub-profiles are nested and updated by merge-style
// partial writes.
type UserProfile struct {
	UserID        string         `json:"userId" bson:"_id"`
	Nickname      string         `json:"nickname" bson:"nickname"`
	Role          string         `json:"role" bson:"role"`
	Title         string         `json:"title" bson:"title"`
	Bio           string         `json:"bio" bson:"bio"`
	Skills        []string       `json:"skills" bson:"skills"`
	CurrentStatus string         `json:"currentStatus,omitempty" bson:"currentStatus,omitempty"`
	CurrentGoals  []UserGoal     `json:"currentGoals,omitempty" bson:"currentGoals,omitempty"`
	SocialLinks   *SocialLinks   `json:"socialLinks,omitempty" bson:"socialLinks,omitempty"`
	MentorProfile *MentorProfile `json:"mentorProfile,omitempty" bson:"mentorProfile,omitempty"`
	MenteeProfile *MenteeProfile `json:"menteeProfile,omitempty" bson:"menteeProfile,omitempty"`
	CreatedAt     time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt     *time.Time     `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

func (p UserProfile) RecordID() string { return p.UserID }

// UserProfileInput is the caller-supplied part of a profile save
type UserProfileInput struct {
	Nickname string   `json:"nickname"`
	Role     string   `json:"role"`
	Title    string   `json:"title"`
	Bio      string   `json:"bio"`
	Skills   []string `json:"skills"`
}

// UserGoal is a free-form goal tracked inside the profile document
type UserGoal struct {
	ID          string    `json:"id" bson:"id"`
	Title       string    `json:"title" bson:"title"`
	IsCompleted bool      `json:"isCompleted" bson:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// SocialLinks holds the profile's social post URLs
type SocialLinks struct {
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty" bson:"facebook,omitempty"`
	Threads   string `json:"threads,omitempty" bson:"threads,omitempty"`
	Website   string `json:"website,omitempty" bson:"website,omitempty"`
}

// UserActivity is one entry in a user's recent activity feed
type UserActivity struct {
	ID          string    `json:"id" bson:"_id"`
	UserID      string    `json:"userId" bson:"userId"`
	Type        string    `json:"type" bson:"type"`
	TargetID    string    `json:"targetId" bson:"targetId"`
	TargetTitle string    `json:"targetTitle" bson:"targetTitle"`
	Preview     string    `json:"preview" bson:"preview"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

func (a UserActivity) RecordID() string { return a.ID }

// UserStats aggregates a user's contributions across the features
type UserStats struct {
	ForumPosts          int `json:"forumPosts"`
	ForumComments       int `json:"forumComments"`
	MentorshipActive    int `json:"mentorshipActive"`
	BooksReviewed       int `json:"booksReviewed"`
	MarketplaceListings int `json:"marketplaceListings"`
	MarketplaceSold     int `json:"marketplaceSold"`
}
