// Package ither is the data layer of the ither community app:
// mentorship matching, a book club, a discussion forum, a secondhand
// marketplace and user profiles, served from either a built-in mock
// backend or a remote MongoDB database. The backend is chosen once,
// here; everything above speaks the same store contract.
package ither

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/itherhq/ither/app/models"
	"github.com/itherhq/ither/app/services"
	"github.com/itherhq/ither/config"
	"github.com/itherhq/ither/pkg/localstate"
	"github.com/itherhq/ither/pkg/logger"
	"github.com/itherhq/ither/seed"
	"github.com/itherhq/ither/session"
	"github.com/itherhq/ither/store"
)

// App wires the session, the stores and the feature services for one
// deployment.
type App struct {
	Session     *session.Session
	Mentorship  services.MentorshipService
	Booklist    services.BooklistService
	Forum       services.ForumService
	Marketplace services.MarketplaceService
	Profile     services.ProfileService

	client *mongo.Client
	logger zerolog.Logger
}

// New builds an App from configuration. In mock mode the stores serve
// seeds plus a file-backed mirror; in remote mode they serve MongoDB
// collections namespaced by the app id.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Pretty,
	})
	log := logger.WithComponent("app")

	app := &App{
		Session: session.New(),
		logger:  log,
	}

	var st stores
	var state *localstate.Store
	var err error

	switch cfg.App.Mode {
	case config.ModeRemote:
		st, err = app.remoteStores(ctx, cfg)
	default:
		state, err = localstate.New(cfg.LocalState.Dir)
		if err != nil {
			return nil, fmt.Errorf("open local state: %w", err)
		}
		st = mockStores(cfg, state)
	}
	if err != nil {
		return nil, err
	}

	app.Mentorship = services.NewMentorshipService(
		st.mentorPosts, st.mentorships, st.profiles,
		app.Session, state, logger.WithComponent("mentorship"))
	app.Booklist = services.NewBooklistService(
		st.books, st.reviews, st.progress, st.shares, st.topics, st.activities,
		app.Session, logger.WithComponent("booklist"))
	app.Forum = services.NewForumService(
		st.forumPosts, st.forumComments, st.activities,
		app.Session, logger.WithComponent("forum"))
	app.Marketplace = services.NewMarketplaceService(
		st.items, st.itemComments, st.wishlist, st.activities,
		app.Session, logger.WithComponent("marketplace"))
	app.Profile = services.NewProfileService(
		st.profiles, st.activities, st.forumPosts, st.forumComments,
		st.mentorships, st.reviews, st.items,
		app.Session, logger.WithComponent("profile"))

	log.Info().Str("mode", cfg.App.Mode).Str("appId", cfg.App.ID).Msg("App initialized")
	return app, nil
}

// Close releases the remote connection, if any.
func (a *App) Close(ctx context.Context) error {
	if a.client == nil {
		return nil
	}
	if err := a.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect: %w", err)
	}
	return nil
}

// stores groups one store per entity collection, whichever backend
// produced them.
type stores struct {
	mentorPosts   store.Store[models.MentorPost]
	mentorships   store.Store[models.Mentorship]
	books         store.Store[models.Book]
	reviews       store.Store[models.BookReview]
	progress      store.Store[models.UserBookProgress]
	shares        store.Store[models.BookShare]
	topics        store.Store[models.BookTopic]
	forumPosts    store.Store[models.ForumPost]
	forumComments store.Store[models.ForumComment]
	items         store.Store[models.MarketplaceItem]
	itemComments  store.Store[models.MarketplaceComment]
	wishlist      store.Store[models.WishlistEntry]
	profiles      store.Store[models.UserProfile]
	activities    store.Store[models.UserActivity]
}

func mockStores(cfg *config.Config, state *localstate.Store) stores {
	log := logger.WithComponent("memstore")
	prefix := cfg.App.ID

	demo := cfg.App.DemoData

	return stores{
		mentorPosts: store.NewMemStore(store.MemConfig[models.MentorPost]{
			Kind: "mentor-post", Seeds: seedsIf(demo, seed.MentorPosts),
			State: state, StateKey: prefix + "-mirror-mentor-post", Logger: log,
		}),
		mentorships: store.NewMemStore(store.MemConfig[models.Mentorship]{
			Kind: "mentorship",
			// Pairings have no demo seeds; the mirror is the whole
			// collection in mock mode.
			State: state, StateKey: prefix + "-mentorships", Logger: log,
		}),
		books: store.NewMemStore(store.MemConfig[models.Book]{
			Kind: "book", Seeds: seedsIf(demo, seed.Books),
			State: state, StateKey: prefix + "-mirror-book", Logger: log,
		}),
		reviews: store.NewMemStore(store.MemConfig[models.BookReview]{
			Kind: "book-review", Seeds: seedsIf(demo, seed.BookReviews),
			State: state, StateKey: prefix + "-mirror-book-review", Logger: log,
		}),
		progress: store.NewMemStore(store.MemConfig[models.UserBookProgress]{
			Kind:  "book-progress",
			State: state, StateKey: prefix + "-mirror-book-progress", Logger: log,
		}),
		shares: store.NewMemStore(store.MemConfig[models.BookShare]{
			Kind:  "book-share",
			State: state, StateKey: prefix + "-mirror-book-share", Logger: log,
		}),
		topics: store.NewMemStore(store.MemConfig[models.BookTopic]{
			Kind: "book-topic", Seeds: seedsIf(demo, seed.BookTopics),
			State: state, StateKey: prefix + "-mirror-book-topic", Logger: log,
		}),
		forumPosts: store.NewMemStore(store.MemConfig[models.ForumPost]{
			Kind: "forum-post", Seeds: seedsIf(demo, seed.ForumPosts),
			State: state, StateKey: prefix + "-mirror-forum-post", Logger: log,
		}),
		forumComments: store.NewMemStore(store.MemConfig[models.ForumComment]{
			Kind: "forum-comment", Seeds: seedsIf(demo, seed.ForumComments),
			State: state, StateKey: prefix + "-mirror-forum-comment", Logger: log,
		}),
		items: store.NewMemStore(store.MemConfig[models.MarketplaceItem]{
			Kind: "marketplace-item", Seeds: seedsIf(demo, seed.MarketplaceItems),
			State: state, StateKey: prefix + "-mirror-marketplace-item", Logger: log,
		}),
		itemComments: store.NewMemStore(store.MemConfig[models.MarketplaceComment]{
			Kind: "marketplace-comment", Seeds: seedsIf(demo, seed.MarketplaceComments),
			State: state, StateKey: prefix + "-mirror-marketplace-comment", Logger: log,
		}),
		wishlist: store.NewMemStore(store.MemConfig[models.WishlistEntry]{
			Kind:  "wishlist",
			State: state, StateKey: prefix + "-mirror-wishlist", Logger: log,
		}),
		profiles: store.NewMemStore(store.MemConfig[models.UserProfile]{
			Kind: "profile", IDKey: "userId",
			State: state, StateKey: prefix + "-user-profile", Logger: log,
		}),
		activities: store.NewMemStore(store.MemConfig[models.UserActivity]{
			Kind: "activity", Seeds: seedsIf(demo, seed.UserActivities),
			State: state, StateKey: prefix + "-mirror-activity", Logger: log,
		}),
	}
}

func (a *App) remoteStores(ctx context.Context, cfg *config.Config) (stores, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return stores{}, fmt.Errorf("connect mongo: %w", err)
	}
	a.client = client

	db := client.Database(cfg.Mongo.Database)
	log := logger.WithComponent("mongostore")
	ns := cfg.App.ID

	return stores{
		mentorPosts:   store.NewMongoStore[models.MentorPost](db, store.MongoConfig{Namespace: ns, Name: "mentorPosts", Logger: log}),
		mentorships:   store.NewMongoStore[models.Mentorship](db, store.MongoConfig{Namespace: ns, Name: "mentorships", Logger: log}),
		books:         store.NewMongoStore[models.Book](db, store.MongoConfig{Namespace: ns, Name: "books", Logger: log}),
		reviews:       store.NewMongoStore[models.BookReview](db, store.MongoConfig{Namespace: ns, Name: "bookReviews", Logger: log}),
		progress:      store.NewMongoStore[models.UserBookProgress](db, store.MongoConfig{Namespace: ns, Name: "bookProgress", Logger: log}),
		shares:        store.NewMongoStore[models.BookShare](db, store.MongoConfig{Namespace: ns, Name: "bookShares", Logger: log}),
		topics:        store.NewMongoStore[models.BookTopic](db, store.MongoConfig{Namespace: ns, Name: "bookTopics", Logger: log}),
		forumPosts:    store.NewMongoStore[models.ForumPost](db, store.MongoConfig{Namespace: ns, Name: "forumPosts", Logger: log}),
		forumComments: store.NewMongoStore[models.ForumComment](db, store.MongoConfig{Namespace: ns, Name: "forumComments", Logger: log}),
		items:         store.NewMongoStore[models.MarketplaceItem](db, store.MongoConfig{Namespace: ns, Name: "marketItems", Logger: log}),
		itemComments:  store.NewMongoStore[models.MarketplaceComment](db, store.MongoConfig{Namespace: ns, Name: "marketComments", Logger: log}),
		wishlist:      store.NewMongoStore[models.WishlistEntry](db, store.MongoConfig{Namespace: ns, Name: "wishlists", Logger: log}),
		profiles:      store.NewMongoStore[models.UserProfile](db, store.MongoConfig{Namespace: ns, Name: "profiles", IDKey: "userId", Logger: log}),
		activities:    store.NewMongoStore[models.UserActivity](db, store.MongoConfig{Namespace: ns, Name: "activities", Logger: log}),
	}, nil
}

func seedsIf[T store.Record](enabled bool, fn func() []T) []T {
	if !enabled {
		return nil
	}
	return fn()
}
