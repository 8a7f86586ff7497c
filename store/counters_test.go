package store

import (
	"context"
	"testing"
)

func TestFoldRating(t *testing.T) {
	tests := []struct {
		name      string
		avg       float64
		count     int
		rating    int
		wantAvg   float64
		wantCount int
	}{
		{"first rating", 0, 0, 5, 5.0, 1},
		{"second rating", 5.0, 1, 4, 4.5, 2},
		{"rounds to one decimal", 4.5, 2, 4, 4.3, 3},
		{"low rating pulls down", 4.3, 3, 1, 3.5, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			avg, count := FoldRating(tt.avg, tt.count, tt.rating)
			if avg != tt.wantAvg || count != tt.wantCount {
				t.Errorf("FoldRating(%v, %d, %d) = (%v, %d), want (%v, %d)",
					tt.avg, tt.count, tt.rating, avg, count, tt.wantAvg, tt.wantCount)
			}
		})
	}
}

func TestToggleSetMemberRoundTrip(t *testing.T) {
	s := newNoteStore([]note{{ID: "n1", LikeCount: 3, LikedBy: []string{"u9"}}})
	ctx := context.Background()

	liked, err := ToggleSetMember(ctx, s, "n1", "likedBy", "likeCount", "u1")
	if err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if !liked {
		t.Error("expected member present after first toggle")
	}
	got, _, _ := s.Get(ctx, "n1")
	if got.LikeCount != 4 {
		t.Errorf("expected count 4, got %d", got.LikeCount)
	}

	liked, err = ToggleSetMember(ctx, s, "n1", "likedBy", "likeCount", "u1")
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if liked {
		t.Error("expected member absent after second toggle")
	}
	got, _, _ = s.Get(ctx, "n1")
	if got.LikeCount != 3 || len(got.LikedBy) != 1 {
		t.Errorf("expected original state back, got count=%d set=%v", got.LikeCount, got.LikedBy)
	}
}

func TestToggleSetMemberMissingRecord(t *testing.T) {
	s := newNoteStore(nil)

	liked, err := ToggleSetMember(context.Background(), s, "ghost", "likedBy", "likeCount", "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if liked {
		t.Error("expected no-op on missing record")
	}
}

type shelf struct {
	ID              string `json:"id"`
	WantToReadCount int    `json:"wantToReadCount"`
	ReadingCount    int    `json:"readingCount"`
}

func (b shelf) RecordID() string { return b.ID }

func TestShiftStatusCounter(t *testing.T) {
	ctx := context.Background()

	t.Run("entering the population", func(t *testing.T) {
		s := NewMemStore(MemConfig[shelf]{Kind: "shelf", Seeds: []shelf{{ID: "b1"}}})
		if err := ShiftStatusCounter[shelf](ctx, s, "b1", "", "wantToReadCount"); err != nil {
			t.Fatalf("shift: %v", err)
		}
		got, _, _ := s.Get(ctx, "b1")
		if got.WantToReadCount != 1 {
			t.Errorf("expected wantToReadCount 1, got %d", got.WantToReadCount)
		}
	})

	t.Run("moving between buckets conserves total", func(t *testing.T) {
		s := NewMemStore(MemConfig[shelf]{Kind: "shelf", Seeds: []shelf{{ID: "b1", WantToReadCount: 1}}})
		if err := ShiftStatusCounter[shelf](ctx, s, "b1", "wantToReadCount", "readingCount"); err != nil {
			t.Fatalf("shift: %v", err)
		}
		got, _, _ := s.Get(ctx, "b1")
		if got.WantToReadCount != 0 || got.ReadingCount != 1 {
			t.Errorf("expected 0/1, got %d/%d", got.WantToReadCount, got.ReadingCount)
		}
	})

	t.Run("same bucket is a no-op", func(t *testing.T) {
		s := NewMemStore(MemConfig[shelf]{Kind: "shelf", Seeds: []shelf{{ID: "b1", ReadingCount: 1}}})
		if err := ShiftStatusCounter[shelf](ctx, s, "b1", "readingCount", "readingCount"); err != nil {
			t.Fatalf("shift: %v", err)
		}
		got, _, _ := s.Get(ctx, "b1")
		if got.ReadingCount != 1 {
			t.Errorf("expected readingCount unchanged, got %d", got.ReadingCount)
		}
	})
}
