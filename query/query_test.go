package query

import (
	"testing"
	"time"
)

type rec struct {
	id      string
	created time.Time
	score   float64
}

func (r rec) RecordID() string { return r.id }

func TestMergeByID(t *testing.T) {
	seeds := []rec{{id: "a", score: 1}, {id: "b", score: 1}}
	mirror := []rec{{id: "b", score: 2}, {id: "c", score: 2}}

	merged := MergeByID(seeds, mirror)
	if len(merged) != 3 {
		t.Fatalf("expected 3 records, got %d", len(merged))
	}
	// The earlier source wins on duplicate ids.
	if merged[1].id != "b" || merged[1].score != 1 {
		t.Errorf("expected seed copy of b, got %+v", merged[1])
	}
	if merged[2].id != "c" {
		t.Errorf("expected c last, got %+v", merged[2])
	}
}

func TestMergeByIDEmptySources(t *testing.T) {
	if got := MergeByID[rec](nil, nil); len(got) != 0 {
		t.Errorf("expected empty merge, got %v", got)
	}
}

func TestSortByRecency(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }
	in := []rec{
		{id: "old", created: day(1)},
		{id: "new", created: day(3)},
		{id: "mid", created: day(2)},
	}

	out := SortByRecency(in, func(r rec) time.Time { return r.created })
	if out[0].id != "new" || out[1].id != "mid" || out[2].id != "old" {
		t.Errorf("unexpected order: %v %v %v", out[0].id, out[1].id, out[2].id)
	}
	// The input slice is left alone.
	if in[0].id != "old" {
		t.Error("input slice was mutated")
	}
}

func TestSortByScoreStable(t *testing.T) {
	in := []rec{
		{id: "a", score: 1},
		{id: "b", score: 2},
		{id: "c", score: 2},
	}

	out := SortByScore(in, func(r rec) float64 { return r.score })
	if out[0].id != "b" || out[1].id != "c" || out[2].id != "a" {
		t.Errorf("unexpected order: %v %v %v", out[0].id, out[1].id, out[2].id)
	}
}

func TestMatchKeyword(t *testing.T) {
	tests := []struct {
		name    string
		keyword string
		fields  []string
		want    bool
	}{
		{"empty keyword matches everything", "", []string{"anything"}, true},
		{"case-insensitive match", "VUE", []string{"How do you structure a growing Vue project?"}, true},
		{"matches any field", "clear", []string{"Atomic Habits", "James Clear"}, true},
		{"no match", "rust", []string{"Vue.js: Up and Running"}, false},
		{"whitespace trimmed", "  vue  ", []string{"vue tips"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchKeyword(tt.keyword, tt.fields...); got != tt.want {
				t.Errorf("MatchKeyword(%q, %v) = %v, want %v", tt.keyword, tt.fields, got, tt.want)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	in := []rec{{id: "a", score: 1}, {id: "b", score: 5}}
	out := Filter(in, func(r rec) bool { return r.score > 2 })
	if len(out) != 1 || out[0].id != "b" {
		t.Errorf("expected [b], got %v", out)
	}
}
