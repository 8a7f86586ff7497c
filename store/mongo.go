package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/itherhq/ither/pkg/apperrors"
)

// MongoConfig configures one remote collection.
type MongoConfig struct {
	// Namespace is the per-deployment prefix; the collection is named
	// "<namespace>.<name>".
	Namespace string
	Name      string
	// IDKey is the document key of the id field; defaults to "id".
	// It only matters for stamping generated ids onto new records.
	IDKey  string
	Logger zerolog.Logger
}

// MongoStore is the remote-mode backend over one document collection.
// Every failure is logged here and returned as an error value; nothing
// panics past this boundary into a feature service.
type MongoStore[T Record] struct {
	coll   *mongo.Collection
	name   string
	idKey  string
	logger zerolog.Logger
}

// NewMongoStore creates a remote collection handle.
func NewMongoStore[T Record](db *mongo.Database, cfg MongoConfig) *MongoStore[T] {
	s := &MongoStore[T]{
		name:   cfg.Name,
		idKey:  cfg.IDKey,
		logger: cfg.Logger,
	}
	if s.idKey == "" {
		s.idKey = "id"
	}

	if db != nil {
		collName := cfg.Name
		if cfg.Namespace != "" {
			collName = cfg.Namespace + "." + cfg.Name
		}
		s.coll = db.Collection(collName)
	}

	return s
}

// List returns the records matching q, filtered and sorted server-side.
func (s *MongoStore[T]) List(ctx context.Context, q Query) ([]T, error) {
	if s.coll == nil {
		return nil, apperrors.ErrStoreUnavailable
	}

	filter := bson.M{}
	for k, v := range q.Eq {
		filter[k] = v
	}

	opts := options.Find()
	if q.OrderBy != "" {
		dir := 1
		if q.Desc {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: q.OrderBy, Value: dir}})
	}

	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		s.logger.Error().Err(err).Str("collection", s.name).Msg("List failed")
		return nil, fmt.Errorf("list %s: %w", s.name, err)
	}
	defer cur.Close(ctx)

	var recs []T
	if err := cur.All(ctx, &recs); err != nil {
		s.logger.Error().Err(err).Str("collection", s.name).Msg("List decode failed")
		return nil, fmt.Errorf("decode %s: %w", s.name, err)
	}
	return recs, nil
}

// Get returns the record with the given id, reporting presence.
func (s *MongoStore[T]) Get(ctx context.Context, id string) (T, bool, error) {
	var zero T
	if s.coll == nil {
		return zero, false, apperrors.ErrStoreUnavailable
	}

	var rec T
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, false, nil
		}
		s.logger.Error().Err(err).Str("collection", s.name).Str("id", id).Msg("Get failed")
		return zero, false, fmt.Errorf("get %s %s: %w", s.name, id, err)
	}
	return rec, true, nil
}

// Create inserts a record and stamps server-authoritative creation
// time. The generated id has no local prefix, keeping the remote id
// space disjoint from the mirror's.
func (s *MongoStore[T]) Create(ctx context.Context, rec T) (string, error) {
	if s.coll == nil {
		return "", apperrors.ErrStoreUnavailable
	}

	id := rec.RecordID()
	if id == "" {
		id = uuid.New().String()
	}

	rec, err := applyFields(rec, map[string]interface{}{s.idKey: id})
	if err != nil {
		return "", err
	}

	if _, err := s.coll.InsertOne(ctx, rec); err != nil {
		s.logger.Error().Err(err).Str("collection", s.name).Msg("Create failed")
		return "", fmt.Errorf("create %s: %w", s.name, err)
	}

	// Creation time is the server's clock, not the client's.
	if _, err := s.coll.UpdateByID(ctx, id, bson.M{"$currentDate": bson.M{"createdAt": true}}); err != nil {
		s.logger.Error().Err(err).Str("collection", s.name).Str("id", id).Msg("Creation timestamp failed")
		return "", fmt.Errorf("stamp %s %s: %w", s.name, id, err)
	}

	return id, nil
}

// Update merges fields into an existing record.
func (s *MongoStore[T]) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if s.coll == nil {
		return apperrors.ErrStoreUnavailable
	}

	res, err := s.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M(fields)})
	if err != nil {
		s.logger.Error().Err(err).Str("collection", s.name).Str("id", id).Msg("Update failed")
		return fmt.Errorf("update %s %s: %w", s.name, id, err)
	}
	if res.MatchedCount == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("%s %s not found", s.name, id))
	}
	return nil
}

// Put merges fields into the record with the given id, creating it when
// absent.
func (s *MongoStore[T]) Put(ctx context.Context, id string, fields map[string]interface{}) error {
	if s.coll == nil {
		return apperrors.ErrStoreUnavailable
	}

	opts := options.Update().SetUpsert(true)
	if _, err := s.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M(fields)}, opts); err != nil {
		s.logger.Error().Err(err).Str("collection", s.name).Str("id", id).Msg("Put failed")
		return fmt.Errorf("put %s %s: %w", s.name, id, err)
	}
	return nil
}

// Delete removes a record by id.
func (s *MongoStore[T]) Delete(ctx context.Context, id string) error {
	if s.coll == nil {
		return apperrors.ErrStoreUnavailable
	}

	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		s.logger.Error().Err(err).Str("collection", s.name).Str("id", id).Msg("Delete failed")
		return fmt.Errorf("delete %s %s: %w", s.name, id, err)
	}
	return nil
}

// IncrField adjusts a counter with an atomic pipeline update so that
// concurrent callers cannot lose increments, clamping the result at
// zero server-side.
func (s *MongoStore[T]) IncrField(ctx context.Context, id, field string, delta int) error {
	if s.coll == nil {
		return apperrors.ErrStoreUnavailable
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.M{
			field: bson.M{"$max": bson.A{
				0,
				bson.M{"$add": bson.A{bson.M{"$ifNull": bson.A{"$" + field, 0}}, delta}},
			}},
		}}},
	}

	res, err := s.coll.UpdateByID(ctx, id, pipeline)
	if err != nil {
		s.logger.Error().Err(err).Str("collection", s.name).Str("id", id).Str("field", field).Msg("Counter update failed")
		return fmt.Errorf("increment %s.%s on %s: %w", s.name, field, id, err)
	}
	if res.MatchedCount == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("%s %s not found", s.name, id))
	}
	return nil
}

// AddToSet adds member to a string-set field atomically.
func (s *MongoStore[T]) AddToSet(ctx context.Context, id, field, member string) error {
	if s.coll == nil {
		return apperrors.ErrStoreUnavailable
	}

	if _, err := s.coll.UpdateByID(ctx, id, bson.M{"$addToSet": bson.M{field: member}}); err != nil {
		s.logger.Error().Err(err).Str("collection", s.name).Str("id", id).Str("field", field).Msg("Set add failed")
		return fmt.Errorf("set add %s.%s on %s: %w", s.name, field, id, err)
	}
	return nil
}

// RemoveFromSet removes member from a string-set field atomically.
func (s *MongoStore[T]) RemoveFromSet(ctx context.Context, id, field, member string) error {
	if s.coll == nil {
		return apperrors.ErrStoreUnavailable
	}

	if _, err := s.coll.UpdateByID(ctx, id, bson.M{"$pull": bson.M{field: member}}); err != nil {
		s.logger.Error().Err(err).Str("collection", s.name).Str("id", id).Str("field", field).Msg("Set remove failed")
		return fmt.Errorf("set remove %s.%s on %s: %w", s.name, field, id, err)
	}
	return nil
}
