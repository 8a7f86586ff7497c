package models

import "time"

// ForumCategory classifies forum posts
type ForumCategory string

const (
	ForumCategoryTech     ForumCategory = "tech"
	ForumCategoryCareer   ForumCategory = "career"
	ForumCategoryLife     ForumCategory = "life"
	ForumCategoryLearning ForumCategory = "learning"
)

// Post visibility statuses. Posts are never hard-deleted remotely; a
// removal is a status transition.
const (
	PostStatusActive  = "active"
	PostStatusRemoved = "removed"
)

// ForumPost is a discussion post with denormalized view/like/comment
// counters.
type ForumPost struct {
	ID           string        `json:"id" bson:"_id"`
	UserID       string        `json:"userId" bson:"userId"`
	UserName     string        `json:"userName" bson:"userName"`
	UserRole     string        `json:"userRole" bson:"userRole"`
	Category     ForumCategory `json:"category" bson:"category"`
	Title        string        `json:"title" bson:"title"`
	Content      string        `json:"content" bson:"content"`
	Tags         []string      `json:"tags" bson:"tags"`
	Status       string        `json:"status" bson:"status"`
	ViewCount    int           `json:"viewCount" bson:"viewCount"`
	LikeCount    int           `json:"likeCount" bson:"likeCount"`
	CommentCount int           `json:"commentCount" bson:"commentCount"`
	LikedBy      []string      `json:"likedBy" bson:"likedBy"`
	CreatedAt    time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt    *time.Time    `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

func (p ForumPost) RecordID() string { return p.ID }

// ForumPostInput is the caller-supplied part of a new post
type ForumPostInput struct {
	Category ForumCategory `json:"category"`
	Title    string        `json:"title"`
	Content  string        `json:"content"`
	Tags     []string      `json:"tags"`
}

// ForumComment is a comment on a forum post. ParentID threads a reply
// under another comment.
type ForumComment struct {
	ID        string     `json:"id" bson:"_id"`
	PostID    string     `json:"postId" bson:"postId"`
	UserID    string     `json:"userId" bson:"userId"`
	UserName  string     `json:"userName" bson:"userName"`
	UserRole  string     `json:"userRole" bson:"userRole"`
	Content   string     `json:"content" bson:"content"`
	LikeCount int        `json:"likeCount" bson:"likeCount"`
	LikedBy   []string   `json:"likedBy" bson:"likedBy"`
	ParentID  string     `json:"parentId,omitempty" bson:"parentId,omitempty"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

func (c ForumComment) RecordID() string { return c.ID }

// ForumCommentInput is the caller-supplied part of a new comment
type ForumCommentInput struct {
	PostID   string `json:"postId"`
	Content  string `json:"content"`
	ParentID string `json:"parentId"`
}
