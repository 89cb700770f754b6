package model

import "sort"

// TrackTypes is a set of track type labels.
type TrackTypes map[string]struct{}

// NewTrackTypes creates a set holding the given labels.
func NewTrackTypes(types ...string) TrackTypes {
	t := make(TrackTypes, len(types))
	for _, typ := range types {
		t.Add(typ)
	}
	return t
}

// Add inserts a label into the set.
func (t TrackTypes) Add(typ string) {
	t[typ] = struct{}{}
}

// Has reports whether the label is in the set.
func (t TrackTypes) Has(typ string) bool {
	_, ok := t[typ]
	return ok
}

// Merge adds every label of other to t.
func (t TrackTypes) Merge(other TrackTypes) {
	for typ := range other {
		t.Add(typ)
	}
}

// Sorted returns the labels in byte-wise ascending order.
func (t TrackTypes) Sorted() []string {
	out := make([]string, 0, len(t))
	for typ := range t {
		out = append(out, typ)
	}
	sort.Strings(out)
	return out
}
