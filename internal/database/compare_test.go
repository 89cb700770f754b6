package database

import (
	"testing"
	"time"

	"github.com/nao1215/vcindex/internal/model"
)

func TestCompare(t *testing.T) {
	t.Parallel()

	previous := &Run{
		RunMetadata: RunMetadata{
			ID:         1,
			Timestamp:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			TrackTypes: []string{"bar", "heatmap"},
		},
		Examples: []ExampleRecord{
			{Href: "/viewconfs/a", Title: "a", Source: model.SourceLocal, Fingerprint: "aaa", TrackTypes: []string{"heatmap"}},
			{Href: "/viewconfs/b", Title: "b", Source: model.SourceLocal, Fingerprint: "bbb", TrackTypes: []string{"bar"}},
			{Href: "/viewconfs/c", Title: "c", Source: model.SourceLocal, Fingerprint: "ccc"},
		},
	}
	current := &Run{
		RunMetadata: RunMetadata{
			ID:         2,
			Timestamp:  time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
			TrackTypes: []string{"heatmap", "line"},
		},
		Examples: []ExampleRecord{
			{Href: "/viewconfs/a", Title: "a", Source: model.SourceLocal, Fingerprint: "aaa", TrackTypes: []string{"heatmap"}},
			{Href: "/viewconfs/c", Title: "c", Source: model.SourceLocal, Fingerprint: "ccc2", TrackTypes: []string{"line"}},
			{Href: "/viewconfs/d", Title: "d", Source: model.SourceLocal, Fingerprint: "ddd"},
		},
	}

	got := Compare(previous, current)

	if len(got.AddedTrackTypes) != 1 || got.AddedTrackTypes[0] != "line" {
		t.Errorf("AddedTrackTypes = %v, want [line]", got.AddedTrackTypes)
	}
	if len(got.RemovedTrackTypes) != 1 || got.RemovedTrackTypes[0] != "bar" {
		t.Errorf("RemovedTrackTypes = %v, want [bar]", got.RemovedTrackTypes)
	}
	if len(got.AddedExamples) != 1 || got.AddedExamples[0].Href != "/viewconfs/d" {
		t.Errorf("AddedExamples = %+v", got.AddedExamples)
	}
	if len(got.RemovedExamples) != 1 || got.RemovedExamples[0].Href != "/viewconfs/b" {
		t.Errorf("RemovedExamples = %+v", got.RemovedExamples)
	}
	if len(got.ChangedExamples) != 1 || got.ChangedExamples[0].Href != "/viewconfs/c" {
		t.Errorf("ChangedExamples = %+v", got.ChangedExamples)
	}
	if got.UnchangedCount != 1 {
		t.Errorf("UnchangedCount = %d, want 1", got.UnchangedCount)
	}
	if !got.HasChanges() {
		t.Error("HasChanges() = false, want true")
	}
	if got.Elapsed() != 24*time.Hour {
		t.Errorf("Elapsed() = %v, want 24h", got.Elapsed())
	}
}

func TestCompareIdenticalRuns(t *testing.T) {
	t.Parallel()

	run := &Run{
		RunMetadata: RunMetadata{TrackTypes: []string{"heatmap"}},
		Examples: []ExampleRecord{
			{Href: "/viewconfs/a", Fingerprint: "aaa"},
		},
	}

	got := Compare(run, run)
	if got.HasChanges() {
		t.Errorf("HasChanges() = true for identical runs: %+v", got)
	}
	if got.UnchangedCount != 1 {
		t.Errorf("UnchangedCount = %d, want 1", got.UnchangedCount)
	}
}
