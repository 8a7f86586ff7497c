package seed

import "github.com/itherhq/ither/app/models"

// MarketplaceItems returns the demo secondhand listings.
func MarketplaceItems() []models.MarketplaceItem {
	return []models.MarketplaceItem{
		{
			ID:            "seed-item-1",
			UserID:        "seed-user-ben",
			UserName:      "Ben",
			UserRole:      "designer",
			Title:         "LG 27\" 4K monitor",
			Description:   "Two years old, no dead pixels. Selling because I moved to an ultrawide.",
			Category:      models.MarketplaceElectronics,
			Condition:     models.ConditionGood,
			Price:         180,
			OriginalPrice: 420,
			TradeLocation: "Downtown, weekday evenings",
			Status:        models.ListingActive,
			ViewCount:     25,
			WishlistCount: 2,
			CommentCount:  1,
			CreatedAt:     at(2),
		},
		{
			ID:            "seed-item-2",
			UserID:        "seed-user-amy",
			UserName:      "Amy",
			UserRole:      "engineer",
			Title:         "IKEA Markus office chair",
			Description:   "Solid chair, small scuff on the left armrest.",
			Category:      models.MarketplaceFurniture,
			Condition:     models.ConditionFair,
			Price:         60,
			TradeLocation: "Pickup only",
			Status:        models.ListingReserved,
			ViewCount:     11,
			CreatedAt:     at(4),
		},
		{
			ID:            "seed-item-3",
			UserID:        "seed-user-cara",
			UserName:      "Cara",
			UserRole:      "pm",
			Title:         "Clean Code (hardcover)",
			Description:   "Light highlighting in the first three chapters.",
			Category:      models.MarketplaceBooks,
			Condition:     models.ConditionLikeNew,
			Price:         15,
			TradeLocation: "Office lobby",
			Status:        models.ListingActive,
			ViewCount:     6,
			CreatedAt:     at(6),
		},
	}
}

// MarketplaceComments returns the demo listing comments.
func MarketplaceComments() []models.MarketplaceComment {
	return []models.MarketplaceComment{
		{
			ID:        "seed-mcomment-1",
			ItemID:    "seed-item-1",
			UserID:    "seed-user-cara",
			UserName:  "Cara",
			UserRole:  "pm",
			Content:   "Does it come with the original stand?",
			CreatedAt: at(3),
		},
	}
}
