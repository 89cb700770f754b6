package model

import "time"

// Screenshot records one captured example screenshot.
type Screenshot struct {
	// Href is the example href the screenshot was taken of.
	Href string `json:"href"`

	// Path is where the PNG was written.
	Path string `json:"path"`
}

// Catalog is everything collected during one run.
// Pipeline steps fill it in order; report writers render it.
type Catalog struct {
	// BaseDir is the directory holding apis/ and viewconfs/.
	BaseDir string `json:"base_dir"`

	// APIPages are the file names found in apis/, in directory order.
	APIPages []string `json:"api_pages"`

	// Local are the examples read from viewconfs/.
	Local []Example `json:"local"`

	// Remote are the examples fetched from the remote list.
	// Empty when remote collection is skipped.
	Remote []Example `json:"remote"`

	// TrackTypes is the sorted union of track types over all examples.
	TrackTypes []string `json:"track_types"`

	// Screenshots lists the screenshots captured during the run, if any.
	Screenshots []Screenshot `json:"screenshots,omitempty"`

	// GeneratedAt is when the catalog was created.
	GeneratedAt time.Time `json:"generated_at"`
}

// NewCatalog creates an empty catalog for the given base directory.
func NewCatalog(baseDir string) *Catalog {
	return &Catalog{
		BaseDir:     baseDir,
		APIPages:    make([]string, 0),
		Local:       make([]Example, 0),
		Remote:      make([]Example, 0),
		TrackTypes:  make([]string, 0),
		GeneratedAt: time.Now(),
	}
}

// All returns local examples followed by remote examples.
func (c *Catalog) All() []Example {
	all := make([]Example, 0, len(c.Local)+len(c.Remote))
	all = append(all, c.Local...)
	all = append(all, c.Remote...)
	return all
}

// Hrefs returns the hrefs of All, in the same order.
func (c *Catalog) Hrefs() []string {
	all := c.All()
	hrefs := make([]string, len(all))
	for i, e := range all {
		hrefs[i] = e.Href
	}
	return hrefs
}

// ExampleCount returns the number of local and remote examples.
func (c *Catalog) ExampleCount() int {
	return len(c.Local) + len(c.Remote)
}
