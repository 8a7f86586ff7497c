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

// Book list sort orders.
const (
	BookSortLatest  = "latest"
	BookSortRating  = "rating"
	BookSortPopular = "popular"
)

// BookFilter narrows and orders a book listing.
type BookFilter struct {
	Category models.BookCategory
	Keyword  string
	Sort     string
}

// BooklistService manages the shared book shelf: recommendations,
// reviews with a folded average rating, per-user reading progress,
// shares and discussion topics.
type BooklistService interface {
	// ListBooks returns books matching the filter. Keyword matches
	// title, author and description case-insensitively.
	ListBooks(ctx context.Context, filter BookFilter) ([]models.Book, error)
	// GetBook returns one book by id.
	GetBook(ctx context.Context, id string) (models.Book, error)
	// AddBook recommends a new book to the club.
	AddBook(ctx context.Context, input models.BookInput) (models.Book, error)

	// ListReviews returns a book's reviews, newest first.
	ListReviews(ctx context.Context, bookID string) ([]models.BookReview, error)
	// AddReview stores a review and folds its rating into the book's
	// average. A rating contribution is never retracted.
	AddReview(ctx context.Context, input models.BookReviewInput) (models.BookReview, error)
	// ToggleReviewLike flips the caller's like on a review and reports
	// the resulting state.
	ToggleReviewLike(ctx context.Context, reviewID string) (bool, error)

	// SetProgress records the caller's reading state for a book and
	// moves the book's status counters accordingly.
	SetProgress(ctx context.Context, bookID string, status models.ReadingStatus) error
	// MyProgress returns the caller's progress records.
	MyProgress(ctx context.Context) ([]models.UserBookProgress, error)

	// ShareBook records a share action and bumps the book's share
	// counter.
	ShareBook(ctx context.Context, bookID, platform string) error

	// ListTopics returns club discussion topics, newest first.
	ListTopics(ctx context.Context) ([]models.BookTopic, error)
	// CreateTopic opens a discussion topic, optionally tied to a book.
	CreateTopic(ctx context.Context, input models.BookTopicInput) (models.BookTopic, error)
	// ToggleTopicLike flips the caller's like on a topic and reports
	// the resulting state.
	ToggleTopicLike(ctx context.Context, topicID string) (bool, error)
	// RemoveTopic takes the caller's own topic out of every listing.
	RemoveTopic(ctx context.Context, topicID string) error
}

type booklistService struct {
	books      store.Store[models.Book]
	reviews    store.Store[models.BookReview]
	progress   store.Store[models.UserBookProgress]
	shares     store.Store[models.BookShare]
	topics     store.Store[models.BookTopic]
	activities store.Store[models.UserActivity]
	session    *session.Session
	logger     zerolog.Logger
}

// NewBooklistService creates a new BooklistService.
func NewBooklistService(
	books store.Store[models.Book],
	reviews store.Store[models.BookReview],
	progress store.Store[models.UserBookProgress],
	shares store.Store[models.BookShare],
	topics store.Store[models.BookTopic],
	activities store.Store[models.UserActivity],
	sess *session.Session,
	logger zerolog.Logger,
) BooklistService {
	return &booklistService{
		books:      books,
		reviews:    reviews,
		progress:   progress,
		shares:     shares,
		topics:     topics,
		activities: activities,
		session:    sess,
		logger:     logger,
	}
}

func (s *booklistService) ListBooks(ctx context.Context, filter BookFilter) ([]models.Book, error) {
	eq := map[string]string{}
	if filter.Category != "" {
		eq["category"] = string(filter.Category)
	}

	books, err := s.books.List(ctx, store.Query{Eq: eq})
	if err != nil {
		return nil, err
	}

	books = query.Filter(books, func(b models.Book) bool {
		return query.MatchKeyword(filter.Keyword, b.Title, b.Author, b.Description)
	})

	switch filter.Sort {
	case BookSortRating:
		return query.SortByScore(books, func(b models.Book) float64 { return b.AvgRating }), nil
	case BookSortPopular:
		return query.SortByScore(books, func(b models.Book) float64 {
			return float64(b.FinishedCount + b.ReadingCount)
		}), nil
	default:
		return query.SortByRecency(books, func(b models.Book) time.Time { return b.CreatedAt }), nil
	}
}

func (s *booklistService) GetBook(ctx context.Context, id string) (models.Book, error) {
	book, ok, err := s.books.Get(ctx, id)
	if err != nil {
		return models.Book{}, err
	}
	if !ok {
		return models.Book{}, apperrors.NewNotFoundError(fmt.Sprintf("book %s not found", id))
	}
	return book, nil
}

func (s *booklistService) AddBook(ctx context.Context, input models.BookInput) (models.Book, error) {
	uid, profile, err := s.session.RequireProfile()
	if err != nil {
		return models.Book{}, err
	}
	if input.Title == "" || input.Author == "" {
		return models.Book{}, apperrors.NewValidationError("title and author are required")
	}

	book := models.Book{
		UserID:      uid,
		UserName:    profile.Nickname,
		UserRole:    profile.Role,
		Title:       input.Title,
		Author:      input.Author,
		Category:    input.Category,
		CoverURL:    input.CoverURL,
		Description: input.Description,
		Tags:        input.Tags,
	}

	id, err := s.books.Create(ctx, book)
	if err != nil {
		return models.Book{}, err
	}

	created, _, err := s.books.Get(ctx, id)
	if err != nil {
		return models.Book{}, err
	}

	s.logger.Info().Str("bookId", id).Str("title", input.Title).Msg("Book added")
	return created, nil
}

func (s *booklistService) ListReviews(ctx context.Context, bookID string) ([]models.BookReview, error) {
	reviews, err := s.reviews.List(ctx, store.Query{
		Eq:      map[string]string{"bookId": bookID},
		OrderBy: "createdAt",
		Desc:    true,
	})
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *booklistService) AddReview(ctx context.Context, input models.BookReviewInput) (models.BookReview, error) {
	uid, profile, err := s.session.RequireProfile()
	if err != nil {
		return models.BookReview{}, err
	}
	if input.Rating < 1 || input.Rating > 5 {
		return models.BookReview{}, apperrors.NewValidationError("rating must be between 1 and 5")
	}

	book, ok, err := s.books.Get(ctx, input.BookID)
	if err != nil {
		return models.BookReview{}, err
	}
	if !ok {
		return models.BookReview{}, apperrors.NewNotFoundError(fmt.Sprintf("book %s not found", input.BookID))
	}

	review := models.BookReview{
		BookID:        input.BookID,
		UserID:        uid,
		UserName:      profile.Nickname,
		UserRole:      profile.Role,
		Rating:        input.Rating,
		Content:       input.Content,
		ReadingStatus: input.ReadingStatus,
		LikedBy:       []string{},
	}

	id, err := s.reviews.Create(ctx, review)
	if err != nil {
		return models.BookReview{}, err
	}

	avg, _ := store.FoldRating(book.AvgRating, book.ReviewCount, input.Rating)
	if err := s.books.Update(ctx, book.ID, map[string]interface{}{
		"avgRating": avg,
	}); err != nil {
		return models.BookReview{}, err
	}
	if err := s.books.IncrField(ctx, book.ID, "reviewCount", 1); err != nil {
		return models.BookReview{}, err
	}

	created, _, err := s.reviews.Get(ctx, id)
	if err != nil {
		return models.BookReview{}, err
	}

	recordActivity(ctx, s.activities, s.logger, models.UserActivity{
		UserID:      uid,
		Type:        ActivityBookReview,
		TargetID:    book.ID,
		TargetTitle: book.Title,
		Preview:     preview(input.Content),
	})

	s.logger.Info().Str("reviewId", id).Str("bookId", book.ID).Int("rating", input.Rating).Msg("Review added")
	return created, nil
}

func (s *booklistService) ToggleReviewLike(ctx context.Context, reviewID string) (bool, error) {
	uid, err := s.session.Require()
	if err != nil {
		return false, err
	}
	return store.ToggleSetMember(ctx, s.reviews, reviewID, "likedBy", "likeCount", uid)
}

func (s *booklistService) SetProgress(ctx context.Context, bookID string, status models.ReadingStatus) error {
	uid, err := s.session.Require()
	if err != nil {
		return err
	}
	if status.CounterField() == "" {
		return apperrors.NewValidationError(fmt.Sprintf("unknown reading status %q", status))
	}

	if _, ok, err := s.books.Get(ctx, bookID); err != nil {
		return err
	} else if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("book %s not found", bookID))
	}

	// One progress record per (user, book) pair.
	progressID := uid + "_" + bookID
	prev, existed, err := s.progress.Get(ctx, progressID)
	if err != nil {
		return err
	}
	if existed && prev.Status == status {
		return nil
	}

	now := time.Now()
	fields := map[string]interface{}{
		"userId":    uid,
		"bookId":    bookID,
		"status":    status,
		"updatedAt": now,
	}
	if !existed {
		fields["createdAt"] = now
	}
	switch status {
	case models.ReadingInProgress:
		fields["startedAt"] = now
	case models.ReadingFinished:
		fields["finishedAt"] = now
	}

	if err := s.progress.Put(ctx, progressID, fields); err != nil {
		return err
	}

	var fromField string
	if existed {
		fromField = prev.Status.CounterField()
	}
	return store.ShiftStatusCounter(ctx, s.books, bookID, fromField, status.CounterField())
}

func (s *booklistService) MyProgress(ctx context.Context) ([]models.UserBookProgress, error) {
	uid, err := s.session.Require()
	if err != nil {
		return nil, err
	}
	return s.progress.List(ctx, store.Query{Eq: map[string]string{"userId": uid}})
}

func (s *booklistService) ShareBook(ctx context.Context, bookID, platform string) error {
	uid, profile, err := s.session.RequireProfile()
	if err != nil {
		return err
	}

	if _, ok, err := s.books.Get(ctx, bookID); err != nil {
		return err
	} else if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("book %s not found", bookID))
	}

	share := models.BookShare{
		BookID:   bookID,
		UserID:   uid,
		UserName: profile.Nickname,
		Platform: platform,
	}
	if _, err := s.shares.Create(ctx, share); err != nil {
		return err
	}
	return s.books.IncrField(ctx, bookID, "shareCount", 1)
}

func (s *booklistService) ListTopics(ctx context.Context) ([]models.BookTopic, error) {
	return s.topics.List(ctx, store.Query{
		Eq:      map[string]string{"status": "active"},
		OrderBy: "createdAt",
		Desc:    true,
	})
}

func (s *booklistService) CreateTopic(ctx context.Context, input models.BookTopicInput) (models.BookTopic, error) {
	uid, profile, err := s.session.RequireProfile()
	if err != nil {
		return models.BookTopic{}, err
	}
	if input.Title == "" {
		return models.BookTopic{}, apperrors.NewValidationError("topic title is required")
	}

	topic := models.BookTopic{
		UserID:      uid,
		UserName:    profile.Nickname,
		UserRole:    profile.Role,
		BookID:      input.BookID,
		Title:       input.Title,
		Description: input.Description,
		Tags:        input.Tags,
		Status:      "active",
		LikedBy:     []string{},
	}

	id, err := s.topics.Create(ctx, topic)
	if err != nil {
		return models.BookTopic{}, err
	}

	created, _, err := s.topics.Get(ctx, id)
	if err != nil {
		return models.BookTopic{}, err
	}
	return created, nil
}

func (s *booklistService) ToggleTopicLike(ctx context.Context, topicID string) (bool, error) {
	uid, err := s.session.Require()
	if err != nil {
		return false, err
	}
	return store.ToggleSetMember(ctx, s.topics, topicID, "likedBy", "likeCount", uid)
}

func (s *booklistService) RemoveTopic(ctx context.Context, topicID string) error {
	uid, err := s.session.Require()
	if err != nil {
		return err
	}

	topic, ok, err := s.topics.Get(ctx, topicID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("topic %s not found", topicID))
	}
	if topic.UserID != uid {
		return apperrors.NewForbiddenError("only the author can remove a topic")
	}

	if store.IsLocalID(topicID) {
		return s.topics.Delete(ctx, topicID)
	}
	return s.topics.Update(ctx, topicID, map[string]interface{}{
		"status":    "removed",
		"updatedAt": time.Now(),
	})
}
