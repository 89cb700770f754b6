package model

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Source tells where an example came from.
type Source string

const (
	// SourceLocal marks examples read from the viewconfs directory.
	SourceLocal Source = "local"

	// SourceRemote marks examples fetched from the curated remote list.
	SourceRemote Source = "remote"
)

// Example is one viewconf example rendered as a row of the index table.
// Href, Title and Viewconf are always set once an Example is constructed.
type Example struct {
	// Href is the link to the viewconf. For local examples it is
	// "/viewconfs/<file>", for remote ones the rewritten API URL.
	Href string `json:"href"`

	// Title is the display text of the row link.
	Title string `json:"title"`

	// Viewconf is the raw viewconf text. It is not parsed as JSON.
	Viewconf string `json:"viewconf"`

	// Source is where the example was collected from.
	Source Source `json:"source"`
}

// NewExample creates an Example.
func NewExample(href, title, viewconf string, source Source) Example {
	return Example{
		Href:     href,
		Title:    title,
		Viewconf: viewconf,
		Source:   source,
	}
}

// Fingerprint returns the hex encoded SHA3-256 digest of the viewconf text.
// Empty viewconfs produce an empty fingerprint.
func (e Example) Fingerprint() string {
	if e.Viewconf == "" {
		return ""
	}
	sum := sha3.Sum256([]byte(e.Viewconf))
	return hex.EncodeToString(sum[:])
}

// RemoteEntry is one element of the curated remote example list.
type RemoteEntry struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}
