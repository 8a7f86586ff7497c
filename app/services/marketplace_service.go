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

// Marketplace sort orders.
const (
	ItemSortLatest   = "latest"
	ItemSortPriceAsc = "price-asc"
	ItemSortPopular  = "popular"
)

// ItemFilter narrows and orders a listing search.
type ItemFilter struct {
	Category models.MarketplaceCategory
	Status   models.ListingStatus
	Keyword  string
	MaxPrice int
	Sort     string
}

// MarketplaceService manages secondhand listings, their lifecycle,
// wishlists and listing comments.
type MarketplaceService interface {
	// ListItems returns listings matching the filter. Keyword matches
	// title and description case-insensitively.
	ListItems(ctx context.Context, filter ItemFilter) ([]models.MarketplaceItem, error)
	// LoadItem returns one listing and counts the view.
	LoadItem(ctx context.Context, id string) (models.MarketplaceItem, error)
	// CreateItem publishes a new listing in the active state.
	CreateItem(ctx context.Context, input models.MarketplaceItemInput) (models.MarketplaceItem, error)
	// UpdateItem edits the caller's own listing.
	UpdateItem(ctx context.Context, id string, input models.MarketplaceItemInput) (models.MarketplaceItem, error)
	// ChangeStatus moves the caller's own listing along its lifecycle.
	// Legal moves are active to reserved, reserved to sold and active
	// to closed.
	ChangeStatus(ctx context.Context, id string, next models.ListingStatus) (models.MarketplaceItem, error)

	// MyListings returns the caller's own listings in every state,
	// newest first.
	MyListings(ctx context.Context) ([]models.MarketplaceItem, error)

	// ToggleWishlist flips the caller's wishlist mark on a listing and
	// reports the resulting state.
	ToggleWishlist(ctx context.Context, itemID string) (bool, error)
	// MyWishlist returns the listings the caller has marked, newest
	// mark first.
	MyWishlist(ctx context.Context) ([]models.MarketplaceItem, error)

	// ListComments returns a listing's comments, oldest first.
	ListComments(ctx context.Context, itemID string) ([]models.MarketplaceComment, error)
	// AddComment stores a comment and bumps the listing's comment
	// counter. Comments by the seller are flagged as seller replies.
	AddComment(ctx context.Context, input models.MarketplaceCommentInput) (models.MarketplaceComment, error)
}

type marketplaceService struct {
	items      store.Store[models.MarketplaceItem]
	comments   store.Store[models.MarketplaceComment]
	wishlist   store.Store[models.WishlistEntry]
	activities store.Store[models.UserActivity]
	session    *session.Session
	logger     zerolog.Logger
}

// NewMarketplaceService creates a new MarketplaceService.
func NewMarketplaceService(
	items store.Store[models.MarketplaceItem],
	comments store.Store[models.MarketplaceComment],
	wishlist store.Store[models.WishlistEntry],
	activities store.Store[models.UserActivity],
	sess *session.Session,
	logger zerolog.Logger,
) MarketplaceService {
	return &marketplaceService{
		items:      items,
		comments:   comments,
		wishlist:   wishlist,
		activities: activities,
		session:    sess,
		logger:     logger,
	}
}

func (s *marketplaceService) ListItems(ctx context.Context, filter ItemFilter) ([]models.MarketplaceItem, error) {
	eq := map[string]string{}
	if filter.Category != "" {
		eq["category"] = string(filter.Category)
	}
	if filter.Status != "" {
		eq["status"] = string(filter.Status)
	}

	items, err := s.items.List(ctx, store.Query{Eq: eq})
	if err != nil {
		return nil, err
	}

	items = query.Filter(items, func(i models.MarketplaceItem) bool {
		if !query.MatchKeyword(filter.Keyword, i.Title, i.Description) {
			return false
		}
		if filter.MaxPrice > 0 && i.Price > filter.MaxPrice {
			return false
		}
		return true
	})

	switch filter.Sort {
	case ItemSortPriceAsc:
		return query.SortByScore(items, func(i models.MarketplaceItem) float64 { return -float64(i.Price) }), nil
	case ItemSortPopular:
		return query.SortByScore(items, func(i models.MarketplaceItem) float64 {
			return float64(i.WishlistCount + i.ViewCount)
		}), nil
	default:
		return query.SortByRecency(items, func(i models.MarketplaceItem) time.Time { return i.CreatedAt }), nil
	}
}

// LoadItem is the detail-page read, so it is the one place a view is
// counted.
func (s *marketplaceService) LoadItem(ctx context.Context, id string) (models.MarketplaceItem, error) {
	item, ok, err := s.items.Get(ctx, id)
	if err != nil {
		return models.MarketplaceItem{}, err
	}
	if !ok {
		return models.MarketplaceItem{}, apperrors.NewNotFoundError(fmt.Sprintf("listing %s not found", id))
	}

	if err := s.items.IncrField(ctx, id, "viewCount", 1); err != nil {
		s.logger.Warn().Err(err).Str("itemId", id).Msg("View count update failed")
	} else {
		item.ViewCount++
	}
	return item, nil
}

func (s *marketplaceService) CreateItem(ctx context.Context, input models.MarketplaceItemInput) (models.MarketplaceItem, error) {
	uid, profile, err := s.session.RequireProfile()
	if err != nil {
		return models.MarketplaceItem{}, err
	}
	if input.Title == "" {
		return models.MarketplaceItem{}, apperrors.NewValidationError("listing title is required")
	}
	if input.Price < 0 {
		return models.MarketplaceItem{}, apperrors.NewValidationError("price must not be negative")
	}

	item := models.MarketplaceItem{
		UserID:        uid,
		UserName:      profile.Nickname,
		UserRole:      profile.Role,
		Title:         input.Title,
		Description:   input.Description,
		Category:      input.Category,
		Condition:     input.Condition,
		Price:         input.Price,
		OriginalPrice: input.OriginalPrice,
		Images:        input.Images,
		TradeLocation: input.TradeLocation,
		Status:        models.ListingActive,
	}

	id, err := s.items.Create(ctx, item)
	if err != nil {
		return models.MarketplaceItem{}, err
	}

	created, _, err := s.items.Get(ctx, id)
	if err != nil {
		return models.MarketplaceItem{}, err
	}

	recordActivity(ctx, s.activities, s.logger, models.UserActivity{
		UserID:      uid,
		Type:        ActivityMarketplaceItem,
		TargetID:    id,
		TargetTitle: input.Title,
		Preview:     preview(input.Description),
	})

	s.logger.Info().Str("itemId", id).Str("title", input.Title).Msg("Listing created")
	return created, nil
}

func (s *marketplaceService) UpdateItem(ctx context.Context, id string, input models.MarketplaceItemInput) (models.MarketplaceItem, error) {
	uid, err := s.session.Require()
	if err != nil {
		return models.MarketplaceItem{}, err
	}

	item, ok, err := s.items.Get(ctx, id)
	if err != nil {
		return models.MarketplaceItem{}, err
	}
	if !ok {
		return models.MarketplaceItem{}, apperrors.NewNotFoundError(fmt.Sprintf("listing %s not found", id))
	}
	if item.UserID != uid {
		return models.MarketplaceItem{}, apperrors.NewForbiddenError("only the seller can edit a listing")
	}

	if err := s.items.Update(ctx, id, map[string]interface{}{
		"title":         input.Title,
		"description":   input.Description,
		"category":      input.Category,
		"condition":     input.Condition,
		"price":         input.Price,
		"originalPrice": input.OriginalPrice,
		"images":        input.Images,
		"tradeLocation": input.TradeLocation,
		"updatedAt":     time.Now(),
	}); err != nil {
		return models.MarketplaceItem{}, err
	}

	updated, _, err := s.items.Get(ctx, id)
	if err != nil {
		return models.MarketplaceItem{}, err
	}
	return updated, nil
}

func (s *marketplaceService) ChangeStatus(ctx context.Context, id string, next models.ListingStatus) (models.MarketplaceItem, error) {
	uid, err := s.session.Require()
	if err != nil {
		return models.MarketplaceItem{}, err
	}

	item, ok, err := s.items.Get(ctx, id)
	if err != nil {
		return models.MarketplaceItem{}, err
	}
	if !ok {
		return models.MarketplaceItem{}, apperrors.NewNotFoundError(fmt.Sprintf("listing %s not found", id))
	}
	if item.UserID != uid {
		return models.MarketplaceItem{}, apperrors.NewForbiddenError("only the seller can change a listing's status")
	}
	if !legalListingMove(item.Status, next) {
		return models.MarketplaceItem{}, apperrors.NewTransitionError(
			fmt.Sprintf("cannot move listing from %s to %s", item.Status, next))
	}

	if err := s.items.Update(ctx, id, map[string]interface{}{
		"status":    next,
		"updatedAt": time.Now(),
	}); err != nil {
		return models.MarketplaceItem{}, err
	}

	updated, _, err := s.items.Get(ctx, id)
	if err != nil {
		return models.MarketplaceItem{}, err
	}

	s.logger.Info().Str("itemId", id).Str("status", string(next)).Msg("Listing status changed")
	return updated, nil
}

func legalListingMove(from, to models.ListingStatus) bool {
	switch from {
	case models.ListingActive:
		return to == models.ListingReserved || to == models.ListingClosed
	case models.ListingReserved:
		return to == models.ListingSold
	}
	return false
}

func (s *marketplaceService) MyListings(ctx context.Context) ([]models.MarketplaceItem, error) {
	uid, err := s.session.Require()
	if err != nil {
		return nil, err
	}

	items, err := s.items.List(ctx, store.Query{Eq: map[string]string{"userId": uid}})
	if err != nil {
		return nil, err
	}
	return query.SortByRecency(items, func(i models.MarketplaceItem) time.Time { return i.CreatedAt }), nil
}

// ToggleWishlist keys the entry by "<userID>_<itemID>" so the same pair
// always hits the same record, making the toggle idempotent per pair.
func (s *marketplaceService) ToggleWishlist(ctx context.Context, itemID string) (bool, error) {
	uid, err := s.session.Require()
	if err != nil {
		return false, err
	}

	if _, ok, err := s.items.Get(ctx, itemID); err != nil {
		return false, err
	} else if !ok {
		return false, apperrors.NewNotFoundError(fmt.Sprintf("listing %s not found", itemID))
	}

	entryID := uid + "_" + itemID
	_, exists, err := s.wishlist.Get(ctx, entryID)
	if err != nil {
		return false, err
	}

	if exists {
		if err := s.wishlist.Delete(ctx, entryID); err != nil {
			return false, err
		}
		if err := s.items.IncrField(ctx, itemID, "wishlistCount", -1); err != nil {
			return false, err
		}
		return false, nil
	}

	if err := s.wishlist.Put(ctx, entryID, map[string]interface{}{
		"userId":    uid,
		"itemId":    itemID,
		"createdAt": time.Now(),
	}); err != nil {
		return false, err
	}
	if err := s.items.IncrField(ctx, itemID, "wishlistCount", 1); err != nil {
		return false, err
	}
	return true, nil
}

func (s *marketplaceService) MyWishlist(ctx context.Context) ([]models.MarketplaceItem, error) {
	uid, err := s.session.Require()
	if err != nil {
		return nil, err
	}

	entries, err := s.wishlist.List(ctx, store.Query{
		Eq:      map[string]string{"userId": uid},
		OrderBy: "createdAt",
		Desc:    true,
	})
	if err != nil {
		return nil, err
	}

	var items []models.MarketplaceItem
	for _, e := range entries {
		item, ok, err := s.items.Get(ctx, e.ItemID)
		if err != nil {
			return nil, err
		}
		if ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *marketplaceService) ListComments(ctx context.Context, itemID string) ([]models.MarketplaceComment, error) {
	return s.comments.List(ctx, store.Query{
		Eq:      map[string]string{"itemId": itemID},
		OrderBy: "createdAt",
	})
}

func (s *marketplaceService) AddComment(ctx context.Context, input models.MarketplaceCommentInput) (models.MarketplaceComment, error) {
	uid, profile, err := s.session.RequireProfile()
	if err != nil {
		return models.MarketplaceComment{}, err
	}
	if input.Content == "" {
		return models.MarketplaceComment{}, apperrors.NewValidationError("comment content is required")
	}

	item, ok, err := s.items.Get(ctx, input.ItemID)
	if err != nil {
		return models.MarketplaceComment{}, err
	}
	if !ok {
		return models.MarketplaceComment{}, apperrors.NewNotFoundError(fmt.Sprintf("listing %s not found", input.ItemID))
	}

	comment := models.MarketplaceComment{
		ItemID:        input.ItemID,
		UserID:        uid,
		UserName:      profile.Nickname,
		UserRole:      profile.Role,
		Content:       input.Content,
		IsSellerReply: uid == item.UserID,
		ParentID:      input.ParentID,
	}

	id, err := s.comments.Create(ctx, comment)
	if err != nil {
		return models.MarketplaceComment{}, err
	}

	if err := s.items.IncrField(ctx, input.ItemID, "commentCount", 1); err != nil {
		return models.MarketplaceComment{}, err
	}

	created, _, err := s.comments.Get(ctx, id)
	if err != nil {
		return models.MarketplaceComment{}, err
	}
	return created, nil
}
