package collector

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/vcindex/internal/model"
)

const (
	// APIDir is the subdirectory holding standalone API example pages.
	APIDir = "apis"

	// ViewconfDir is the subdirectory holding local viewconf files.
	ViewconfDir = "viewconfs"
)

// APIPages returns the names of the entries in <baseDir>/apis, sorted by name.
func APIPages(baseDir string) ([]string, error) {
	dir := filepath.Join(baseDir, APIDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("collect api pages: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

// LocalExamples reads every entry of <baseDir>/viewconfs as a viewconf.
// The href of each example is "/viewconfs/<name>" and its title is the file name.
// A subdirectory inside viewconfs cannot be read and fails the collection.
func LocalExamples(baseDir string) ([]model.Example, error) {
	dir := filepath.Join(baseDir, ViewconfDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("collect viewconfs: %w", err)
	}

	examples := make([]model.Example, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		data, err := os.ReadFile(filepath.Join(dir, name)) //nolint:gosec // path is built from a directory listing
		if err != nil {
			return nil, fmt.Errorf("collect viewconfs: %w", err)
		}
		examples = append(examples, model.NewExample(
			"/"+ViewconfDir+"/"+name,
			name,
			string(data),
			model.SourceLocal,
		))
	}
	return examples, nil
}
