package chunker

import "testing"

func TestPageRangesSingleChunk(t *testing.T) {
	cfg := Config{MaxPages: 1000, OverlapPages: 1}
	ranges := pageRanges(42, cfg)
	if len(ranges) != 1 {
		t.Fatalf("expected 1 range, got %d", len(ranges))
	}
	if ranges[0].Start != 1 || ranges[0].End != 42 {
		t.Errorf("got %+v, want 1-42", ranges[0])
	}
}

func TestPageRangesOverlap(t *testing.T) {
	cfg := Config{MaxPages: 10, OverlapPages: 2}
	ranges := pageRanges(25, cfg)
	want := []PageRange{{1, 10}, {9, 20}, {19, 25}}
	if len(ranges) != len(want) {
		t.Fatalf("expected %d ranges, got %d: %+v", len(want), len(ranges), ranges)
	}
	for i, r := range ranges {
		if r != want[i] {
			t.Errorf("range %d: got %+v, want %+v", i, r, want[i])
		}
	}
}

func TestPageRangesExactMultiple(t *testing.T) {
	cfg := Config{MaxPages: 10, OverlapPages: 0}
	ranges := pageRanges(20, cfg)
	want := []PageRange{{1, 10}, {11, 20}}
	if len(ranges) != 2 {
		t.Fatalf("expected 2 ranges, got %d", len(ranges))
	}
	for i, r := range ranges {
		if r != want[i] {
			t.Errorf("range %d: got %+v, want %+v", i, r, want[i])
		}
	}
}

func TestPageRangesEmpty(t *testing.T) {
	if ranges := pageRanges(0, DefaultConfig()); ranges != nil {
		t.Errorf("expected nil for empty document, got %+v", ranges)
	}
}

func TestPageRangesOverlapClampedToFirstPage(t *testing.T) {
	cfg := Config{MaxPages: 2, OverlapPages: 5}
	ranges := pageRanges(5, cfg)
	for _, r := range ranges {
		if r.Start < 1 {
			t.Errorf("range start below 1: %+v", r)
		}
	}
}
