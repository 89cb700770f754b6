package database

import (
	"sort"
	"time"
)

// ExampleChange describes an example whose viewconf changed between runs.
type ExampleChange struct {
	Href               string   `json:"href"`
	Title              string   `json:"title"`
	PreviousTrackTypes []string `json:"previous_track_types"`
	CurrentTrackTypes  []string `json:"current_track_types"`
}

// Comparison holds the differences between two runs.
type Comparison struct {
	// PreviousRun and CurrentRun describe the compared runs.
	PreviousRun RunMetadata `json:"previous_run"`
	CurrentRun  RunMetadata `json:"current_run"`

	// AddedTrackTypes and RemovedTrackTypes are sorted.
	AddedTrackTypes   []string `json:"added_track_types,omitempty"`
	RemovedTrackTypes []string `json:"removed_track_types,omitempty"`

	// AddedExamples and RemovedExamples follow collection order.
	AddedExamples   []ExampleRecord `json:"added_examples,omitempty"`
	RemovedExamples []ExampleRecord `json:"removed_examples,omitempty"`

	// ChangedExamples have the same href but a different viewconf fingerprint.
	ChangedExamples []ExampleChange `json:"changed_examples,omitempty"`

	// UnchangedCount is the number of examples present and identical in both runs.
	UnchangedCount int `json:"unchanged_count"`
}

// Elapsed returns the time between the two runs.
func (c *Comparison) Elapsed() time.Duration {
	return c.CurrentRun.Timestamp.Sub(c.PreviousRun.Timestamp)
}

// HasChanges reports whether anything differs between the runs.
func (c *Comparison) HasChanges() bool {
	return len(c.AddedTrackTypes) > 0 || len(c.RemovedTrackTypes) > 0 ||
		len(c.AddedExamples) > 0 || len(c.RemovedExamples) > 0 ||
		len(c.ChangedExamples) > 0
}

// Compare diffs two runs. Examples are matched by href.
func Compare(previous, current *Run) *Comparison {
	result := &Comparison{
		PreviousRun: previous.RunMetadata,
		CurrentRun:  current.RunMetadata,
	}

	result.AddedTrackTypes = difference(current.TrackTypes, previous.TrackTypes)
	result.RemovedTrackTypes = difference(previous.TrackTypes, current.TrackTypes)

	previousByHref := make(map[string]ExampleRecord, len(previous.Examples))
	for _, ex := range previous.Examples {
		previousByHref[ex.Href] = ex
	}
	currentByHref := make(map[string]ExampleRecord, len(current.Examples))
	for _, ex := range current.Examples {
		currentByHref[ex.Href] = ex
	}

	for _, ex := range current.Examples {
		old, ok := previousByHref[ex.Href]
		switch {
		case !ok:
			result.AddedExamples = append(result.AddedExamples, ex)
		case old.Fingerprint != ex.Fingerprint:
			result.ChangedExamples = append(result.ChangedExamples, ExampleChange{
				Href:               ex.Href,
				Title:              ex.Title,
				PreviousTrackTypes: old.TrackTypes,
				CurrentTrackTypes:  ex.TrackTypes,
			})
		default:
			result.UnchangedCount++
		}
	}

	for _, ex := range previous.Examples {
		if _, ok := currentByHref[ex.Href]; !ok {
			result.RemovedExamples = append(result.RemovedExamples, ex)
		}
	}

	return result
}

// difference returns the sorted elements of a that are not in b.
func difference(a, b []string) []string {
	inB := make(map[string]struct{}, len(b))
	for _, s := range b {
		inB[s] = struct{}{}
	}

	var out []string
	for _, s := range a {
		if _, ok := inB[s]; !ok {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
