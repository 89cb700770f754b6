// Package collector gathers the examples that make up the index.
//
// Local examples come from two directories under a base directory: apis/
// holds standalone pages that are linked verbatim, and viewconfs/ holds one
// viewconf per file. Remote examples come from a curated JSON list whose
// entries point at viewconfs served by the public viewer.
//
// Every failure is returned to the caller. Nothing is retried or skipped:
// a missing directory or a failed download aborts the run.
package collector
