package services

import (
	"context"
	"errors"
	"testing"

	"github.com/itherhq/ither/app/models"
	"github.com/itherhq/ither/pkg/apperrors"
	"github.com/itherhq/ither/session"
)

func newMarketplaceFixture(seeds []models.MarketplaceItem) (MarketplaceService, *session.Session) {
	sess := session.New()
	svc := NewMarketplaceService(
		memStore("marketplace-item", seeds),
		memStore[models.MarketplaceComment]("marketplace-comment", nil),
		memStore[models.WishlistEntry]("wishlist", nil),
		memStore[models.UserActivity]("activity", nil),
		sess, noLog(),
	)
	return svc, sess
}

func TestWishlistToggleConservesCount(t *testing.T) {
	seeds := []models.MarketplaceItem{{ID: "i1", UserID: "u1", Status: models.ListingActive, WishlistCount: 2}}
	svc, sess := newMarketplaceFixture(seeds)
	ctx := context.Background()
	signInAs(sess, "u2", "Ben")

	on, err := svc.ToggleWishlist(ctx, "i1")
	if err != nil || !on {
		t.Fatalf("toggle on: on=%v err=%v", on, err)
	}
	item, err := svc.LoadItem(ctx, "i1")
	if err != nil {
		t.Fatalf("LoadItem: %v", err)
	}
	if item.WishlistCount != 3 {
		t.Fatalf("wishlistCount = %d, want 3", item.WishlistCount)
	}

	mine, err := svc.MyWishlist(ctx)
	if err != nil {
		t.Fatalf("MyWishlist: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != "i1" {
		t.Fatalf("wishlist = %+v", mine)
	}

	on, err = svc.ToggleWishlist(ctx, "i1")
	if err != nil || on {
		t.Fatalf("toggle off: on=%v err=%v", on, err)
	}
	item, _ = svc.LoadItem(ctx, "i1")
	if item.WishlistCount != 2 {
		t.Errorf("wishlistCount = %d, want 2 after round trip", item.WishlistCount)
	}
	if mine, _ := svc.MyWishlist(ctx); len(mine) != 0 {
		t.Errorf("expected empty wishlist, got %+v", mine)
	}
}

func TestListingStatusTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("active to reserved to sold", func(t *testing.T) {
		svc, sess := newMarketplaceFixture([]models.MarketplaceItem{{ID: "i1", UserID: "u1", Status: models.ListingActive}})
		signInAs(sess, "u1", "Amy")

		item, err := svc.ChangeStatus(ctx, "i1", models.ListingReserved)
		if err != nil || item.Status != models.ListingReserved {
			t.Fatalf("reserve: status=%v err=%v", item.Status, err)
		}
		item, err = svc.ChangeStatus(ctx, "i1", models.ListingSold)
		if err != nil || item.Status != models.ListingSold {
			t.Fatalf("sell: status=%v err=%v", item.Status, err)
		}
		// Sold is terminal.
		if _, err := svc.ChangeStatus(ctx, "i1", models.ListingActive); !errors.Is(err, apperrors.ErrInvalidTransition) {
			t.Errorf("reopen sold: expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("active to closed", func(t *testing.T) {
		svc, sess := newMarketplaceFixture([]models.MarketplaceItem{{ID: "i1", UserID: "u1", Status: models.ListingActive}})
		signInAs(sess, "u1", "Amy")

		item, err := svc.ChangeStatus(ctx, "i1", models.ListingClosed)
		if err != nil || item.Status != models.ListingClosed {
			t.Fatalf("close: status=%v err=%v", item.Status, err)
		}
	})

	t.Run("reserved cannot close", func(t *testing.T) {
		svc, sess := newMarketplaceFixture([]models.MarketplaceItem{{ID: "i1", UserID: "u1", Status: models.ListingReserved}})
		signInAs(sess, "u1", "Amy")

		if _, err := svc.ChangeStatus(ctx, "i1", models.ListingClosed); !errors.Is(err, apperrors.ErrInvalidTransition) {
			t.Errorf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("only the seller", func(t *testing.T) {
		svc, sess := newMarketplaceFixture([]models.MarketplaceItem{{ID: "i1", UserID: "u1", Status: models.ListingActive}})
		signInAs(sess, "u2", "Ben")

		if _, err := svc.ChangeStatus(ctx, "i1", models.ListingReserved); !errors.Is(err, apperrors.ErrPermissionDenied) {
			t.Errorf("expected ErrPermissionDenied, got %v", err)
		}
	})
}

func TestLoadItemCountsView(t *testing.T) {
	svc, _ := newMarketplaceFixture([]models.MarketplaceItem{{ID: "i1", UserID: "u1", Status: models.ListingActive, ViewCount: 7}})
	ctx := context.Background()

	item, err := svc.LoadItem(ctx, "i1")
	if err != nil {
		t.Fatalf("LoadItem: %v", err)
	}
	if item.ViewCount != 8 {
		t.Errorf("viewCount = %d, want 8", item.ViewCount)
	}

	// Listing reads do not count views.
	items, err := svc.ListItems(ctx, ItemFilter{})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if items[0].ViewCount != 8 {
		t.Errorf("listing changed viewCount to %d", items[0].ViewCount)
	}
}

func TestAddCommentFlagsSellerReply(t *testing.T) {
	svc, sess := newMarketplaceFixture([]models.MarketplaceItem{{ID: "i1", UserID: "u1", Status: models.ListingActive}})
	ctx := context.Background()

	signInAs(sess, "u2", "Ben")
	question, err := svc.AddComment(ctx, models.MarketplaceCommentInput{ItemID: "i1", Content: "still available?"})
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if question.IsSellerReply {
		t.Error("buyer comment flagged as seller reply")
	}

	signInAs(sess, "u1", "Amy")
	reply, err := svc.AddComment(ctx, models.MarketplaceCommentInput{ItemID: "i1", Content: "yes", ParentID: question.ID})
	if err != nil {
		t.Fatalf("AddComment reply: %v", err)
	}
	if !reply.IsSellerReply {
		t.Error("seller comment not flagged")
	}

	item, _ := svc.LoadItem(ctx, "i1")
	if item.CommentCount != 2 {
		t.Errorf("commentCount = %d, want 2", item.CommentCount)
	}
}

func TestListItemsFilters(t *testing.T) {
	seeds := []models.MarketplaceItem{
		{ID: "i1", Status: models.ListingActive, Category: models.MarketplaceElectronics, Title: "4K monitor", Price: 180},
		{ID: "i2", Status: models.ListingSold, Category: models.MarketplaceElectronics, Title: "Mechanical keyboard", Price: 40},
		{ID: "i3", Status: models.ListingActive, Category: models.MarketplaceBooks, Title: "Clean Code", Price: 15},
	}
	svc, _ := newMarketplaceFixture(seeds)
	ctx := context.Background()

	active, err := svc.ListItems(ctx, ItemFilter{Status: models.ListingActive})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(active) != 2 {
		t.Errorf("expected 2 active, got %d", len(active))
	}

	cheap, err := svc.ListItems(ctx, ItemFilter{MaxPrice: 50})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(cheap) != 2 {
		t.Errorf("expected 2 under 50, got %+v", cheap)
	}

	byPrice, err := svc.ListItems(ctx, ItemFilter{Sort: ItemSortPriceAsc})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if byPrice[0].ID != "i3" || byPrice[2].ID != "i1" {
		t.Errorf("price sort = %v, %v, %v", byPrice[0].ID, byPrice[1].ID, byPrice[2].ID)
	}

	keyword, err := svc.ListItems(ctx, ItemFilter{Keyword: "monitor"})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(keyword) != 1 || keyword[0].ID != "i1" {
		t.Errorf("keyword search = %+v", keyword)
	}
}

func TestMyListingsIncludesEveryState(t *testing.T) {
	seeds := []models.MarketplaceItem{
		{ID: "i1", UserID: "u1", Status: models.ListingActive},
		{ID: "i2", UserID: "u1", Status: models.ListingSold},
		{ID: "i3", UserID: "u2", Status: models.ListingActive},
	}
	svc, sess := newMarketplaceFixture(seeds)
	signInAs(sess, "u1", "Amy")

	mine, err := svc.MyListings(context.Background())
	if err != nil {
		t.Fatalf("MyListings: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("expected 2 own listings, got %+v", mine)
	}
}

func TestCreateItemValidation(t *testing.T) {
	svc, sess := newMarketplaceFixture(nil)
	ctx := context.Background()
	signInAs(sess, "u1", "Amy")

	if _, err := svc.CreateItem(ctx, models.MarketplaceItemInput{Price: 10}); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("missing title: expected ErrValidationFailed, got %v", err)
	}
	if _, err := svc.CreateItem(ctx, models.MarketplaceItemInput{Title: "x", Price: -1}); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("negative price: expected ErrValidationFailed, got %v", err)
	}

	item, err := svc.CreateItem(ctx, models.MarketplaceItemInput{Title: "chair", Price: 60})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.Status != models.ListingActive {
		t.Errorf("new listing status = %q, want active", item.Status)
	}
}
