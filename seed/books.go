package seed

import "github.com/itherhq/ither/app/models"

// Books returns the demo book shelf.
func Books() []models.Book {
	return []models.Book{
		{
			ID:              "seed-book-1",
			UserID:          "seed-user-amy",
			UserName:        "Amy",
			UserRole:        "engineer",
			Title:           "The Pragmatic Programmer",
			Author:          "Andrew Hunt, David Thomas",
			Category:        models.BookCategoryTech,
			Description:     "A practical guide to becoming a better programmer, from estimation to tooling.",
			Tags:            []string{"craft", "career"},
			AvgRating:       4.5,
			ReviewCount:     2,
			WantToReadCount: 3,
			ReadingCount:    1,
			FinishedCount:   2,
			ShareCount:      1,
			CreatedAt:       at(0),
		},
		{
			ID:              "seed-book-2",
			UserID:          "seed-user-ben",
			UserName:        "Ben",
			UserRole:        "designer",
			Title:           "Vue.js: Up and Running",
			Author:          "Callum Macrae",
			Category:        models.BookCategoryTech,
			Description:     "Building accessible and performant web apps with the Vue.js framework.",
			Tags:            []string{"frontend", "javascript"},
			AvgRating:       4.0,
			ReviewCount:     1,
			WantToReadCount: 1,
			CreatedAt:       at(2),
		},
		{
			ID:          "seed-book-3",
			UserID:      "seed-user-amy",
			UserName:    "Amy",
			UserRole:    "engineer",
			Title:       "Atomic Habits",
			Author:      "James Clear",
			Category:    models.BookCategorySelfGrowth,
			Description: "Small habits compound. A system for getting one percent better every day.",
			Tags:        []string{"habits"},
			AvgRating:   5.0,
			ReviewCount: 1,
			CreatedAt:   at(4),
		},
	}
}

// BookReviews returns the demo reviews matching Books.
func BookReviews() []models.BookReview {
	return []models.BookReview{
		{
			ID:            "seed-review-1",
			BookID:        "seed-book-1",
			UserID:        "seed-user-ben",
			UserName:      "Ben",
			UserRole:      "designer",
			Rating:        5,
			Content:       "Still the best book on the working habits of good engineers.",
			ReadingStatus: models.ReadingFinished,
			LikeCount:     1,
			LikedBy:       []string{"seed-user-amy"},
			CreatedAt:     at(1),
		},
		{
			ID:            "seed-review-2",
			BookID:        "seed-book-1",
			UserID:        "seed-user-cara",
			UserName:      "Cara",
			UserRole:      "pm",
			Rating:        4,
			Content:       "Some chapters aged better than others, but the core advice holds up.",
			ReadingStatus: models.ReadingFinished,
			CreatedAt:     at(3),
		},
		{
			ID:            "seed-review-3",
			BookID:        "seed-book-2",
			UserID:        "seed-user-amy",
			UserName:      "Amy",
			UserRole:      "engineer",
			Rating:        4,
			Content:       "A quick, clear introduction. Pair it with the official docs.",
			ReadingStatus: models.ReadingInProgress,
			CreatedAt:     at(5),
		},
	}
}

// BookTopics returns the demo club discussion topics.
func BookTopics() []models.BookTopic {
	return []models.BookTopic{
		{
			ID:          "seed-topic-1",
			UserID:      "seed-user-cara",
			UserName:    "Cara",
			UserRole:    "pm",
			BookID:      "seed-book-3",
			Title:       "April read-along: Atomic Habits",
			Description: "One chapter a day, notes in the thread every Friday.",
			Tags:        []string{"read-along"},
			Status:      "active",
			CreatedAt:   at(6),
		},
	}
}
