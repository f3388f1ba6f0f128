package assets

import (
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Spec pairs a filesystem glob with the architecture tag for its matches.
type Spec struct {
	// Pattern is the glob to expand; it may use doublestar (**) segments.
	Pattern string
	// Arch is assigned to every artifact the pattern matches.
	Arch string
}

// Discover expands the artifact patterns against the local filesystem.
// Every matched file becomes an Artifact tagged with its pattern's arch; a
// file matched by several patterns keeps the first tag seen. The second
// return lists patterns that matched nothing, expected when the build matrix
// skipped an artifact type. Only malformed patterns fail.
func Discover(specs []Spec) ([]Artifact, []string, error) {
	artifacts := make([]Artifact, 0, len(specs))
	seen := make(map[string]struct{})

	var unmatched []string

	for _, spec := range specs {
		matches, err := doublestar.FilepathGlob(filepath.Clean(spec.Pattern))
		if err != nil {
			return nil, nil, fmt.Errorf("expand pattern %q: %w", spec.Pattern, err)
		}

		if len(matches) == 0 {
			unmatched = append(unmatched, spec.Pattern)
			continue
		}

		for _, match := range matches {
			if _, ok := seen[match]; ok {
				continue
			}

			seen[match] = struct{}{}

			artifacts = append(artifacts, Artifact{
				Path: match,
				Arch: spec.Arch,
			})
		}
	}

	return artifacts, unmatched, nil
}
