// Package main provides the entry point for the vcindex CLI.
//
// vcindex regenerates the index page of viewconf examples: it lists the
// local API pages and viewconfs, fetches the curated remote examples,
// cross-references every example against the track types it uses and
// optionally captures a screenshot of each one.
//
// Usage:
//
//	vcindex --stdout
//	vcindex --stdout --local
//	vcindex --screenshots
//
// See --help for all available options.
package main

// main is the entry point for vcindex.
func main() {
	Execute()
}
