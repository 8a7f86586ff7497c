package store

import (
	"context"
	"math"
)

// ToggleSetMember flips member's presence in a set field and keeps the
// paired counter in step with it. It reports whether the member is in
// the set after the call. Repeating the call with the same member
// reverses the previous one, so the counter can never drift from the
// set's size.
func ToggleSetMember[T Record](ctx context.Context, s Store[T], id, setField, countField, member string) (bool, error) {
	rec, ok, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	if ContainsMember(rec, setField, member) {
		if err := s.RemoveFromSet(ctx, id, setField, member); err != nil {
			return false, err
		}
		if err := s.IncrField(ctx, id, countField, -1); err != nil {
			return false, err
		}
		return false, nil
	}

	if err := s.AddToSet(ctx, id, setField, member); err != nil {
		return false, err
	}
	if err := s.IncrField(ctx, id, countField, 1); err != nil {
		return false, err
	}
	return true, nil
}

// ShiftStatusCounter moves one unit between two status counters on the
// same record, used when a record's member changes bucket. Either field
// may be empty when the member is entering or leaving the population.
func ShiftStatusCounter[T Record](ctx context.Context, s Store[T], id, fromField, toField string) error {
	if fromField == toField {
		return nil
	}
	if fromField != "" {
		if err := s.IncrField(ctx, id, fromField, -1); err != nil {
			return err
		}
	}
	if toField != "" {
		if err := s.IncrField(ctx, id, toField, 1); err != nil {
			return err
		}
	}
	return nil
}

// FoldRating folds one more rating into a running average, returning
// the new average rounded to one decimal place and the new count.
func FoldRating(avg float64, count int, rating int) (float64, int) {
	next := (avg*float64(count) + float64(rating)) / float64(count+1)
	return math.Round(next*10) / 10, count + 1
}
