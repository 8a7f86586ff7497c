package models

import "time"

// MarketplaceCategory classifies secondhand listings
type MarketplaceCategory string

const (
	MarketplaceElectronics MarketplaceCategory = "electronics"
	MarketplaceFurniture   MarketplaceCategory = "furniture"
	MarketplaceBooks       MarketplaceCategory = "books"
	MarketplaceSports      MarketplaceCategory = "sports"
	MarketplaceOther       MarketplaceCategory = "other"
)

// ListingStatus is the lifecycle state of a marketplace listing.
// Transitions are explicit owner-only actions: active→reserved→sold,
// or active→closed.
type ListingStatus string

const (
	ListingActive   ListingStatus = "active"
	ListingReserved ListingStatus = "reserved"
	ListingSold     ListingStatus = "sold"
	ListingClosed   ListingStatus = "closed"
)

// ItemCondition describes the wear of a listed item
type ItemCondition string

const (
	ConditionNew     ItemCondition = "new"
	ConditionLikeNew ItemCondition = "like-new"
	ConditionGood    ItemCondition = "good"
	ConditionFair    ItemCondition = "fair"
)

// MarketplaceItem is a secondhand listing with denormalized
// view/wishlist/comment counters.
type MarketplaceItem struct {
	ID            string              `json:"id" bson:"_id"`
	UserID        string              `json:"userId" bson:"userId"`
	UserName      string              `json:"userName" bson:"userName"`
	UserRole      string              `json:"userRole" bson:"userRole"`
	Title         string              `json:"title" bson:"title"`
	Description   string              `json:"description" bson:"description"`
	Category      MarketplaceCategory `json:"category" bson:"category"`
	Condition     ItemCondition       `json:"condition" bson:"condition"`
	Price         int                 `json:"price" bson:"price"`
	OriginalPrice int                 `json:"originalPrice,omitempty" bson:"originalPrice,omitempty"`
	Images        []string            `json:"images" bson:"images"`
	TradeLocation string              `json:"tradeLocation" bson:"tradeLocation"`
	Status        ListingStatus       `json:"status" bson:"status"`
	ViewCount     int                 `json:"viewCount" bson:"viewCount"`
	WishlistCount int                 `json:"wishlistCount" bson:"wishlistCount"`
	CommentCount  int                 `json:"commentCount" bson:"commentCount"`
	CreatedAt     time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt     *time.Time          `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

func (i MarketplaceItem) RecordID() string { return i.ID }

// MarketplaceItemInput is the caller-supplied part of a new listing
type MarketplaceItemInput struct {
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Category      MarketplaceCategory `json:"category"`
	Condition     ItemCondition       `json:"condition"`
	Price         int                 `json:"price"`
	OriginalPrice int                 `json:"originalPrice"`
	Images        []string            `json:"images"`
	TradeLocation string              `json:"tradeLocation"`
}

// MarketplaceComment is a question or reply on a listing
type MarketplaceComment struct {
	ID            string    `json:"id" bson:"_id"`
	ItemID        string    `json:"itemId" bson:"itemId"`
	UserID        string    `json:"userId" bson:"userId"`
	UserName      string    `json:"userName" bson:"userName"`
	UserRole      string    `json:"userRole" bson:"userRole"`
	Content       string    `json:"content" bson:"content"`
	IsSellerReply bool      `json:"isSellerReply" bson:"isSellerReply"`
	ParentID      string    `json:"parentId,omitempty" bson:"parentId,omitempty"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

func (c MarketplaceComment) RecordID() string { return c.ID }

// MarketplaceCommentInput is the caller-supplied part of a new comment
type MarketplaceCommentInput struct {
	ItemID   string `json:"itemId"`
	Content  string `json:"content"`
	ParentID string `json:"parentId"`
}

// WishlistEntry marks one user's interest in one listing. In remote
// mode its id is "<userID>_<itemID>" so the toggle is idempotent per
// (user, item) pair.
type WishlistEntry struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"userId" bson:"userId"`
	ItemID    string    `json:"itemId" bson:"itemId"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

func (w WishlistEntry) RecordID() string { return w.ID }
