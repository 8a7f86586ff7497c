package models

import "time"

// BookCategory classifies books in the club
type BookCategory string

const (
	BookCategoryTech       BookCategory = "tech"
	BookCategorySelfGrowth BookCategory = "self-growth"
	BookCategoryCareer     BookCategory = "career"
	BookCategoryBusiness   BookCategory = "business"
	BookCategoryOther      BookCategory = "other"
)

// ReadingStatus is a user's progress state for one book
type ReadingStatus string

const (
	ReadingWantToRead ReadingStatus = "want-to-read"
	ReadingInProgress ReadingStatus = "reading"
	ReadingFinished   ReadingStatus = "finished"
)

// CounterField returns the denormalized book counter that tracks the
// number of readers in this state, or "" if the state has no counter.
func (s ReadingStatus) CounterField() string {
	switch s {
	case ReadingWantToRead:
		return "wantToReadCount"
	case ReadingInProgress:
		return "readingCount"
	case ReadingFinished:
		return "finishedCount"
	}
	return ""
}

// Book is a book recommended to the club. The counter fields are
// denormalized aggregates over reviews, progress records and shares.
type Book struct {
	ID              string       `json:"id" bson:"_id"`
	UserID          string       `json:"userId" bson:"userId"`
	UserName        string       `json:"userName" bson:"userName"`
	UserRole        string       `json:"userRole" bson:"userRole"`
	Title           string       `json:"title" bson:"title"`
	Author          string       `json:"author" bson:"author"`
	Category        BookCategory `json:"category" bson:"category"`
	CoverURL        string       `json:"coverUrl" bson:"coverUrl"`
	Description     string       `json:"description" bson:"description"`
	Tags            []string     `json:"tags" bson:"tags"`
	AvgRating       float64      `json:"avgRating" bson:"avgRating"`
	ReviewCount     int          `json:"reviewCount" bson:"reviewCount"`
	WantToReadCount int          `json:"wantToReadCount" bson:"wantToReadCount"`
	ReadingCount    int          `json:"readingCount" bson:"readingCount"`
	FinishedCount   int          `json:"finishedCount" bson:"finishedCount"`
	ShareCount      int          `json:"shareCount" bson:"shareCount"`
	CreatedAt       time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt       *time.Time   `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

func (b Book) RecordID() string { return b.ID }

// BookInput is the caller-supplied part of a new book
type BookInput struct {
	Title       string       `json:"title"`
	Author      string       `json:"author"`
	Category    BookCategory `json:"category"`
	CoverURL    string       `json:"coverUrl"`
	Description string       `json:"description"`
	Tags        []string     `json:"tags"`
}

// BookReview is a rated review of a book. Its rating contribution to
// the book's average is append-only.
type BookReview struct {
	ID            string        `json:"id" bson:"_id"`
	BookID        string        `json:"bookId" bson:"bookId"`
	UserID        string        `json:"userId" bson:"userId"`
	UserName      string        `json:"userName" bson:"userName"`
	UserRole      string        `json:"userRole" bson:"userRole"`
	Rating        int           `json:"rating" bson:"rating"`
	Content       string        `json:"content" bson:"content"`
	ReadingStatus ReadingStatus `json:"readingStatus" bson:"readingStatus"`
	LikeCount     int           `json:"likeCount" bson:"likeCount"`
	LikedBy       []string      `json:"likedBy" bson:"likedBy"`
	CreatedAt     time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt     *time.Time    `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

func (r BookReview) RecordID() string { return r.ID }

// BookReviewInput is the caller-supplied part of a new review
type BookReviewInput struct {
	BookID        string        `json:"bookId"`
	Rating        int           `json:"rating"`
	Content       string        `json:"content"`
	ReadingStatus ReadingStatus `json:"readingStatus"`
}

// BookShare records one share action of a book
type BookShare struct {
	ID        string    `json:"id" bson:"_id"`
	BookID    string    `json:"bookId" bson:"bookId"`
	UserID    string    `json:"userId" bson:"userId"`
	UserName  string    `json:"userName" bson:"userName"`
	Platform  string    `json:"platform" bson:"platform"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

func (s BookShare) RecordID() string { return s.ID }

// UserBookProgress tracks one user's reading state for one book.
// In remote mode its id is "<userID>_<bookID>" so repeat updates hit
// the same document.
type UserBookProgress struct {
	ID         string        `json:"id" bson:"_id"`
	UserID     string        `json:"userId" bson:"userId"`
	BookID     string        `json:"bookId" bson:"bookId"`
	Status     ReadingStatus `json:"status" bson:"status"`
	StartedAt  *time.Time    `json:"startedAt,omitempty" bson:"startedAt,omitempty"`
	FinishedAt *time.Time    `json:"finishedAt,omitempty" bson:"finishedAt,omitempty"`
	CreatedAt  time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt  *time.Time    `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

func (p UserBookProgress) RecordID() string { return p.ID }

// BookTopic is a discussion topic in the book club, optionally tied to
// one book.
type BookTopic struct {
	ID          string     `json:"id" bson:"_id"`
	UserID      string     `json:"userId" bson:"userId"`
	UserName    string     `json:"userName" bson:"userName"`
	UserRole    string     `json:"userRole" bson:"userRole"`
	BookID      string     `json:"bookId,omitempty" bson:"bookId,omitempty"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description" bson:"description"`
	Tags        []string   `json:"tags" bson:"tags"`
	Status      string     `json:"status" bson:"status"`
	LikeCount   int        `json:"likeCount" bson:"likeCount"`
	LikedBy     []string   `json:"likedBy" bson:"likedBy"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

func (t BookTopic) RecordID() string { return t.ID }

// BookTopicInput is the caller-supplied part of a new topic
type BookTopicInput struct {
	BookID      string   `json:"bookId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}
