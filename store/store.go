// Package store provides the dual-backend record store: every entity
// collection is accessed through the same Store interface, backed either
// by an in-memory mirror (mock mode) or by a remote document database.
// The backend is selected once at composition time; feature services
// never branch on the mode themselves.
package store

import "context"

// Record is a stored document. The id space of mirror records is
// disjoint from remote records: mirror ids carry a "local-" prefix.
type Record interface {
	RecordID() string
}

// Query describes a list read. Eq filters are AND-composed equality
// predicates on document keys and must produce identical result sets in
// both backends.
type Query struct {
	Eq      map[string]string
	OrderBy string
	Desc    bool
}

// Store is the uniform contract for one entity collection.
type Store[T Record] interface {
	// List returns records matching q. A failed remote read is logged
	// and surfaced as an error; it never panics past this boundary.
	List(ctx context.Context, q Query) ([]T, error)
	// Get returns the record with the given id, reporting presence.
	Get(ctx context.Context, id string) (T, bool, error)
	// Create stores a new record, generating an id when the record
	// carries none, and stamps the creation time. It returns the id.
	Create(ctx context.Context, rec T) (string, error)
	// Update merges the given fields into an existing record.
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	// Put merges the given fields into the record with the given id,
	// creating it when absent.
	Put(ctx context.Context, id string, fields map[string]interface{}) error
	// Delete removes a record. Only legal where hard deletes are:
	// reaction records and local-only mirror records.
	Delete(ctx context.Context, id string) error

	// IncrField atomically adjusts an integer counter field, clamping
	// the result at zero.
	IncrField(ctx context.Context, id, field string, delta int) error
	// AddToSet adds member to a string-set field if not present.
	AddToSet(ctx context.Context, id, field, member string) error
	// RemoveFromSet removes member from a string-set field.
	RemoveFromSet(ctx context.Context, id, field, member string) error
}

// LocalIDPrefix marks records created in the local mirror.
const LocalIDPrefix = "local-"
