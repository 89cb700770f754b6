// Package tracktype finds the track types a viewconf refers to.
//
// Extraction is a text scan for "type": "<value>" pairs, not a JSON parse.
// Any such pair anywhere in the viewconf counts, including ones outside
// track definitions (view or layout objects with a "type" key). This keeps
// the index stable: the same viewconf always lights up the same columns
// regardless of how the JSON is nested or whether it is even valid JSON.
package tracktype
