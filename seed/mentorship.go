package seed

import "github.com/itherhq/ither/app/models"

// MentorPosts returns the demo mentor offers and mentee requests.
func MentorPosts() []models.MentorPost {
	return []models.MentorPost{
		{
			ID:          "seed-mpost-1",
			UserID:      "seed-user-amy",
			UserName:    "Amy",
			UserRole:    "engineer",
			Type:        models.MentorPostOffer,
			Title:       "Frontend career mentoring, 2 slots",
			Areas:       []string{"frontend", "career"},
			Description: "Eight years in product teams. Happy to review portfolios and do mock interviews.",
			Status:      "active",
			CreatedAt:   at(0),
		},
		{
			ID:          "seed-mpost-2",
			UserID:      "seed-user-dan",
			UserName:    "Dan",
			UserRole:    "student",
			Type:        models.MentorPostRequest,
			Title:       "Looking for guidance on a first backend role",
			Areas:       []string{"backend"},
			Description: "Finishing a bootcamp in June, want help choosing what to build next.",
			Status:      "active",
			CreatedAt:   at(3),
		},
	}
}

// UserActivities returns the demo activity feed entries.
func UserActivities() []models.UserActivity {
	return []models.UserActivity{
		{
			ID:          "seed-activity-1",
			UserID:      "seed-user-amy",
			Type:        "forum_post",
			TargetID:    "seed-post-1",
			TargetTitle: "How do you structure a growing Vue project?",
			Preview:     "Our components folder is past a hundred files.",
			CreatedAt:   at(1),
		},
		{
			ID:          "seed-activity-2",
			UserID:      "seed-user-ben",
			Type:        "book_review",
			TargetID:    "seed-book-1",
			TargetTitle: "The Pragmatic Programmer",
			Preview:     "Still the best book on the working habits of good engineers.",
			CreatedAt:   at(1),
		},
	}
}
