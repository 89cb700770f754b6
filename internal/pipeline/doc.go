// Package pipeline runs the steps that build an example catalog.
//
// A run collects the API pages, the local examples and the remote examples,
// computes the track-type union and optionally captures screenshots. Each
// stage is a Step that receives the catalog built so far and adds to it.
//
// Design decision: the pipeline stops at the first failing step. A missing
// directory or a failed download means the index would be incomplete, and
// an incomplete index must never be written silently.
package pipeline
