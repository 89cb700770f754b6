package model

import (
	"slices"
	"testing"
)

// TestTrackTypes tests the TrackTypes set operations.
func TestTrackTypes(t *testing.T) {
	t.Parallel()

	t.Run("NewTrackTypes deduplicates", func(t *testing.T) {
		t.Parallel()

		set := NewTrackTypes("line", "heatmap", "line")
		if len(set) != 2 {
			t.Errorf("expected 2 labels, got %d", len(set))
		}
	})

	t.Run("Has reports membership", func(t *testing.T) {
		t.Parallel()

		set := NewTrackTypes("heatmap")
		if !set.Has("heatmap") {
			t.Error("expected heatmap to be present")
		}
		if set.Has("line") {
			t.Error("expected line to be absent")
		}
	})

	t.Run("Merge unions two sets", func(t *testing.T) {
		t.Parallel()

		a := NewTrackTypes("heatmap")
		b := NewTrackTypes("line", "heatmap")
		a.Merge(b)

		got := a.Sorted()
		want := []string{"heatmap", "line"}
		if !slices.Equal(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("Sorted is byte-wise", func(t *testing.T) {
		t.Parallel()

		set := NewTrackTypes("top-axis", "Heatmap", "2d-rectangle-domains", "horizontal-line")
		got := set.Sorted()
		want := []string{"2d-rectangle-domains", "Heatmap", "horizontal-line", "top-axis"}
		if !slices.Equal(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("Sorted on empty set returns empty slice", func(t *testing.T) {
		t.Parallel()

		got := NewTrackTypes().Sorted()
		if got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", got)
		}
	})
}
