package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/itherhq/ither/pkg/apperrors"
	"github.com/itherhq/ither/pkg/localstate"
	"github.com/itherhq/ither/query"
)

// MemConfig configures one in-memory collection.
type MemConfig[T Record] struct {
	// Kind names the entity, e.g. "book"; generated mirror ids are
	// "local-<kind>-<uuid>".
	Kind string
	// IDKey is the document key of the id field; defaults to "id".
	IDKey string
	// Seeds are this session's demo records. The slice is owned by the
	// store: counter mutations on seed records happen in place here,
	// never on a shared package-level array.
	Seeds []T
	// State, when set, persists mirror records under StateKey and
	// reloads them at construction.
	State    *localstate.Store
	StateKey string
	Logger   zerolog.Logger
}

// MemStore is the mock-mode backend: seed records plus a mirror of
// locally created records, merged and de-duplicated for every read.
type MemStore[T Record] struct {
	mu       sync.Mutex
	kind     string
	idKey    string
	seeds    []T
	mirror   []T
	state    *localstate.Store
	stateKey string
	logger   zerolog.Logger
}

// NewMemStore creates an in-memory collection, reloading any persisted
// mirror records.
func NewMemStore[T Record](cfg MemConfig[T]) *MemStore[T] {
	s := &MemStore[T]{
		kind:     cfg.Kind,
		idKey:    cfg.IDKey,
		seeds:    cfg.Seeds,
		state:    cfg.State,
		stateKey: cfg.StateKey,
		logger:   cfg.Logger,
	}
	if s.idKey == "" {
		s.idKey = "id"
	}

	if s.state != nil && s.stateKey != "" {
		var mirror []T
		found, err := s.state.Load(s.stateKey, &mirror)
		if err != nil {
			s.logger.Error().Err(err).Str("kind", s.kind).Msg("Failed to reload mirror state")
		} else if found {
			s.mirror = mirror
		}
	}

	return s
}

// List returns the merged seed+mirror records matching q.
func (s *MemStore[T]) List(_ context.Context, q Query) ([]T, error) {
	s.mu.Lock()
	merged := query.MergeByID(s.seeds, s.mirror)
	s.mu.Unlock()

	var out []T
	for _, rec := range merged {
		doc, err := docOf(rec)
		if err != nil {
			return nil, err
		}
		if matchesEq(doc, q.Eq) {
			out = append(out, rec)
		}
	}

	if q.OrderBy != "" {
		sortDocs(out, q.OrderBy, q.Desc)
	}
	return out, nil
}

// Get returns the record with the given id from seeds or mirror.
func (s *MemStore[T]) Get(_ context.Context, id string) (T, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range query.MergeByID(s.seeds, s.mirror) {
		if rec.RecordID() == id {
			return rec, true, nil
		}
	}
	var zero T
	return zero, false, nil
}

// Create appends a record to the mirror, generating a prefixed local id
// when the record carries none, and stamps wall-clock creation time.
func (s *MemStore[T]) Create(_ context.Context, rec T) (string, error) {
	id := rec.RecordID()
	if id == "" {
		id = fmt.Sprintf("%s%s-%s", LocalIDPrefix, s.kind, uuid.New().String())
	}

	rec, err := applyFields(rec, map[string]interface{}{
		s.idKey:     id,
		"createdAt": time.Now().UTC(),
	})
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.mirror = append([]T{rec}, s.mirror...)
	s.persistLocked()
	return id, nil
}

// Update merges fields into an existing record. Seed records are
// mutated in place in this session's seed slice.
func (s *MemStore[T]) Update(_ context.Context, id string, fields map[string]interface{}) error {
	return s.mutate(id, func(doc map[string]interface{}) error {
		for k, v := range fields {
			doc[k] = normalizeValue(v)
		}
		return nil
	})
}

// Put merges fields into the record with the given id, creating a
// mirror record when absent.
func (s *MemStore[T]) Put(_ context.Context, id string, fields map[string]interface{}) error {
	err := s.mutate(id, func(doc map[string]interface{}) error {
		for k, v := range fields {
			doc[k] = normalizeValue(v)
		}
		return nil
	})
	if err == nil {
		return nil
	}
	if !apperrors.Is(err, apperrors.ErrRecordNotFound) {
		return err
	}

	doc := map[string]interface{}{s.idKey: id, "createdAt": time.Now().UTC()}
	for k, v := range fields {
		doc[k] = normalizeValue(v)
	}
	rec, err := fromDoc[T](doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.mirror = append([]T{rec}, s.mirror...)
	s.persistLocked()
	return nil
}

// Delete splices a record out of the mirror. Deleting a seed-only id is
// a no-op, matching mock-mode semantics where seeds are never removed.
func (s *MemStore[T]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, rec := range s.mirror {
		if rec.RecordID() == id {
			s.mirror = append(s.mirror[:i], s.mirror[i+1:]...)
			s.persistLocked()
			return nil
		}
	}

	s.logger.Debug().Str("kind", s.kind).Str("id", id).Msg("Delete of non-mirror record ignored")
	return nil
}

// IncrField adjusts an integer counter, clamping at zero. Mock mode is
// single-writer, so read-modify-write under the store lock suffices.
func (s *MemStore[T]) IncrField(_ context.Context, id, field string, delta int) error {
	return s.mutate(id, func(doc map[string]interface{}) error {
		n := docNumber(doc, field) + float64(delta)
		if n < 0 {
			n = 0
		}
		doc[field] = n
		return nil
	})
}

// AddToSet adds member to a string-set field if not already present.
func (s *MemStore[T]) AddToSet(_ context.Context, id, field, member string) error {
	return s.mutate(id, func(doc map[string]interface{}) error {
		set := docStringSet(doc, field)
		for _, m := range set {
			if m == member {
				return nil
			}
		}
		doc[field] = append(set, member)
		return nil
	})
}

// RemoveFromSet removes member from a string-set field.
func (s *MemStore[T]) RemoveFromSet(_ context.Context, id, field, member string) error {
	return s.mutate(id, func(doc map[string]interface{}) error {
		set := docStringSet(doc, field)
		out := make([]string, 0, len(set))
		for _, m := range set {
			if m != member {
				out = append(out, m)
			}
		}
		doc[field] = out
		return nil
	})
}

// mutate rewrites the record with the given id through its document
// form, persisting the mirror when a mirror record changed.
func (s *MemStore[T]) mutate(id string, fn func(map[string]interface{}) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rewrite := func(slice []T, i int, persist bool) error {
		doc, err := docOf(slice[i])
		if err != nil {
			return err
		}
		if err := fn(doc); err != nil {
			return err
		}
		rec, err := fromDoc[T](doc)
		if err != nil {
			return err
		}
		slice[i] = rec
		if persist {
			s.persistLocked()
		}
		return nil
	}

	for i, rec := range s.mirror {
		if rec.RecordID() == id {
			return rewrite(s.mirror, i, true)
		}
	}
	for i, rec := range s.seeds {
		if rec.RecordID() == id {
			return rewrite(s.seeds, i, false)
		}
	}

	return apperrors.NewNotFoundError(fmt.Sprintf("%s %s not found", s.kind, id))
}

// persistLocked writes the mirror through localstate. Seed records are
// session-local and never persisted. Callers hold the store lock.
func (s *MemStore[T]) persistLocked() {
	if s.state == nil || s.stateKey == "" {
		return
	}
	if err := s.state.Save(s.stateKey, s.mirror); err != nil {
		s.logger.Error().Err(err).Str("kind", s.kind).Msg("Failed to persist mirror state")
	}
}

// matchesEq applies AND-composed equality predicates, the client-side
// equivalent of the remote store's equality filters.
func matchesEq(doc map[string]interface{}, eq map[string]string) bool {
	for k, v := range eq {
		if docString(doc, k) != v {
			return false
		}
	}
	return true
}

// sortDocs orders records by a single document key, string or numeric.
// Timestamp strings are compared as instants, since RFC 3339 encoding
// trims fractional seconds and does not order lexicographically.
// The sort is stable.
func sortDocs[T Record](recs []T, key string, desc bool) {
	values := make(map[string]interface{}, len(recs))
	for _, rec := range recs {
		doc, err := docOf(rec)
		if err != nil {
			continue
		}
		values[rec.RecordID()] = doc[key]
	}

	less := func(a, b interface{}) bool {
		switch av := a.(type) {
		case string:
			bv, _ := b.(string)
			at, aerr := time.Parse(time.RFC3339Nano, av)
			bt, berr := time.Parse(time.RFC3339Nano, bv)
			if aerr == nil && berr == nil {
				return at.Before(bt)
			}
			return av < bv
		case float64:
			bv, _ := b.(float64)
			return av < bv
		}
		return false
	}

	sort.SliceStable(recs, func(i, j int) bool {
		a, b := values[recs[i].RecordID()], values[recs[j].RecordID()]
		if desc {
			return less(b, a)
		}
		return less(a, b)
	})
}

// IsLocalID reports whether id belongs to the mirror id space.
func IsLocalID(id string) bool {
	return strings.HasPrefix(id, LocalIDPrefix)
}
