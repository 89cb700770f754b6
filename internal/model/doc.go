// Package model defines the data structures shared by the vcindex packages.
//
// This package contains the following main types:
//   - Example: One viewconf example (link, title, raw viewconf text)
//   - TrackTypes: A set of track type labels found in viewconfs
//   - Catalog: Everything collected during one run, ready for rendering
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The collector, pipeline, report and database packages all
// need these types, so centralizing them prevents import cycles.
//
// The models are serializable to JSON for the JSON report and for the
// history database.
package model
