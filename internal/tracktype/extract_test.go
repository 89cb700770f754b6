package tracktype

import (
	"slices"
	"testing"

	"github.com/nao1215/vcindex/internal/model"
)

// TestExtract tests track type extraction from raw viewconf text.
func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		viewconf string
		want     []string
	}{
		{
			name:     "no type keys gives empty set",
			viewconf: `{"views": [{"uid": "aa", "tracks": {"top": []}}]}`,
			want:     []string{},
		},
		{
			name:     "empty text gives empty set",
			viewconf: "",
			want:     []string{},
		},
		{
			name:     "duplicates collapse",
			viewconf: `{"type": "heatmap"}, {"type": "line"}, {"type": "heatmap"}, {"type": "line"}`,
			want:     []string{"heatmap", "line"},
		},
		{
			name:     "order does not matter",
			viewconf: `{"type": "line"} {"type": "heatmap"}`,
			want:     []string{"heatmap", "line"},
		},
		{
			name:     "compact JSON matches",
			viewconf: `{"type":"heatmap"}`,
			want:     []string{"heatmap"},
		},
		{
			name: "indented JSON matches",
			viewconf: `{
  "tracks": {
    "center": [
      {
        "type": "combined",
        "contents": [
          {"type": "heatmap"},
          {"type": "2d-chromosome-grid"}
        ]
      }
    ]
  }
}`,
			want: []string{"2d-chromosome-grid", "combined", "heatmap"},
		},
		{
			name:     "non-string type values are ignored",
			viewconf: `{"type": 3, "other": {"type": null}}`,
			want:     []string{},
		},
		{
			name:     "empty type value is ignored",
			viewconf: `{"type": ""}`,
			want:     []string{},
		},
		{
			name:     "matches outside track definitions",
			viewconf: `{"layout": {"type": "grid"}, "note": "\"type\": \"line\""}`,
			want:     []string{"grid"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Extract(tt.viewconf).Sorted()
			if !slices.Equal(got, tt.want) {
				t.Errorf("Extract() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestUnion tests the union of track types over several examples.
func TestUnion(t *testing.T) {
	t.Parallel()

	examples := []model.Example{
		model.NewExample("/viewconfs/a", "a", `{"type": "heatmap"}`, model.SourceLocal),
		model.NewExample("/viewconfs/b", "b", `{"type": "line"} {"type": "heatmap"}`, model.SourceLocal),
		model.NewExample("http://x/api/v1/viewconfs/?d=c", "c", `{"type": "bar"}`, model.SourceRemote),
	}

	t.Run("equals union of independent extractions", func(t *testing.T) {
		t.Parallel()

		expected := model.NewTrackTypes()
		for _, e := range examples {
			expected.Merge(Extract(e.Viewconf))
		}

		got := Union(examples).Sorted()
		if !slices.Equal(got, expected.Sorted()) {
			t.Errorf("Union() = %v, want %v", got, expected.Sorted())
		}
		if !slices.Equal(got, []string{"bar", "heatmap", "line"}) {
			t.Errorf("unexpected union %v", got)
		}
	})

	t.Run("no examples gives empty set", func(t *testing.T) {
		t.Parallel()

		if got := Union(nil); len(got) != 0 {
			t.Errorf("expected empty set, got %v", got.Sorted())
		}
	})
}

// TestMatrix tests per-example membership against a header row.
func TestMatrix(t *testing.T) {
	t.Parallel()

	examples := []model.Example{
		model.NewExample("/viewconfs/a", "a", `{"type":"heatmap"}`, model.SourceLocal),
		model.NewExample("/viewconfs/b", "b", `{"type": "line"}`, model.SourceLocal),
	}
	types := []string{"heatmap", "line"}

	got := Matrix(examples, types)
	want := [][]bool{{true, false}, {false, true}}

	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got))
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Errorf("row %d: got %v, want %v", i, got[i], want[i])
		}
	}
}
