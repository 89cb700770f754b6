package tracktype

import (
	"regexp"

	"github.com/nao1215/vcindex/internal/model"
)

// typePattern matches a "type" key with a string value.
// Whitespace around the colon is optional so compact JSON matches too.
var typePattern = regexp.MustCompile(`"type"\s*:\s*"([^"]+)"`)

// Extract returns the set of track types found in the viewconf text.
// It returns an empty set when nothing matches.
func Extract(viewconf string) model.TrackTypes {
	types := model.NewTrackTypes()
	for _, m := range typePattern.FindAllStringSubmatch(viewconf, -1) {
		types.Add(m[1])
	}
	return types
}

// Union returns the union of Extract over every example's viewconf.
// An empty list yields an empty set.
func Union(examples []model.Example) model.TrackTypes {
	all := model.NewTrackTypes()
	for _, e := range examples {
		all.Merge(Extract(e.Viewconf))
	}
	return all
}

// Matrix returns, for each example, which of the given track types it uses.
// The inner slices follow the order of types.
func Matrix(examples []model.Example, types []string) [][]bool {
	rows := make([][]bool, len(examples))
	for i, e := range examples {
		found := Extract(e.Viewconf)
		row := make([]bool, len(types))
		for j, typ := range types {
			row[j] = found.Has(typ)
		}
		rows[i] = row
	}
	return rows
}
