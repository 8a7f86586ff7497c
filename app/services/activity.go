package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/itherhq/ither/app/models"
	"github.com/itherhq/ither/store"
)

// Activity feed entry types.
const (
	ActivityForumPost       = "forum_post"
	ActivityForumComment    = "forum_comment"
	ActivityBookReview      = "book_review"
	ActivityMarketplaceItem = "marketplace_item"
)

// recordActivity appends a feed entry. The feed is best-effort: a
// failed write is logged and the triggering action still succeeds.
func recordActivity(ctx context.Context, activities store.Store[models.UserActivity], logger zerolog.Logger, a models.UserActivity) {
	if _, err := activities.Create(ctx, a); err != nil {
		logger.Warn().Err(err).Str("type", a.Type).Str("targetId", a.TargetID).Msg("Activity record failed")
	}
}

// preview shortens content for the activity feed.
func preview(content string) string {
	const max = 80
	runes := []rune(content)
	if len(runes) <= max {
		return content
	}
	return string(runes[:max])
}
