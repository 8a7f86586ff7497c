package seed

import "github.com/itherhq/ither/app/models"

// ForumPosts returns the demo forum threads.
func ForumPosts() []models.ForumPost {
	return []models.ForumPost{
		{
			ID:           "seed-post-1",
			UserID:       "seed-user-amy",
			UserName:     "Amy",
			UserRole:     "engineer",
			Category:     models.ForumCategoryTech,
			Title:        "How do you structure a growing Vue project?",
			Content:      "Our components folder is past a hundred files. Feature folders? Atomic design? What worked for you?",
			Tags:         []string{"vue", "architecture"},
			Status:       models.PostStatusActive,
			ViewCount:    42,
			LikeCount:    2,
			CommentCount: 2,
			LikedBy:      []string{"seed-user-ben", "seed-user-cara"},
			CreatedAt:    at(1),
		},
		{
			ID:        "seed-post-2",
			UserID:    "seed-user-cara",
			UserName:  "Cara",
			UserRole:  "pm",
			Category:  models.ForumCategoryCareer,
			Title:     "Negotiating a title change without a raise",
			Content:   "Was offered a senior title but the comp stays flat. Worth taking for the resume?",
			Tags:      []string{"negotiation"},
			Status:    models.PostStatusActive,
			ViewCount: 17,
			CreatedAt: at(3),
		},
		{
			ID:        "seed-post-3",
			UserID:    "seed-user-ben",
			UserName:  "Ben",
			UserRole:  "designer",
			Category:  models.ForumCategoryLife,
			Title:     "Standing desk recommendations under $300",
			Content:   "My back has opinions about my current setup.",
			Tags:      []string{"gear"},
			Status:    models.PostStatusActive,
			ViewCount: 8,
			CreatedAt: at(5),
		},
	}
}

// ForumComments returns the demo comments matching ForumPosts.
func ForumComments() []models.ForumComment {
	return []models.ForumComment{
		{
			ID:        "seed-comment-1",
			PostID:    "seed-post-1",
			UserID:    "seed-user-ben",
			UserName:  "Ben",
			UserRole:  "designer",
			Content:   "Feature folders saved us. Keep shared primitives in one flat ui/ folder and resist nesting.",
			LikeCount: 1,
			LikedBy:   []string{"seed-user-amy"},
			CreatedAt: at(2),
		},
		{
			ID:        "seed-comment-2",
			PostID:    "seed-post-1",
			UserID:    "seed-user-cara",
			UserName:  "Cara",
			UserRole:  "pm",
			Content:   "Whatever you pick, write the convention down. The structure matters less than everyone following it.",
			ParentID:  "seed-comment-1",
			CreatedAt: at(2),
		},
	}
}
