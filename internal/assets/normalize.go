package assets

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	//nolint:gochecknoglobals // Fixed character table, safe to share.
	separatorReplacer = strings.NewReplacer(
		" ", ".",
		"(", ".",
		")", ".",
		"[", ".",
		"]", ".",
		"{", ".",
		"}", ".",
	)

	//nolint:gochecknoglobals // Fixed character table, safe to share.
	combiningMarks = &unicode.RangeTable{
		R16: []unicode.Range16{
			{Lo: 0x0300, Hi: 0x036f, Stride: 1},
		},
	}
)

// NormalizeName maps a local artifact path to the canonical name the hosting
// platform stores it under: base name, trimmed, with whitespace and bracket
// characters turned into dots, doubled dots collapsed in a single pass, then
// decomposed (NFD) with combining diacritical marks stripped.
func NormalizeName(path string) string {
	name := strings.TrimSpace(filepath.Base(path))
	name = separatorReplacer.Replace(name)
	name = strings.ReplaceAll(name, "..", ".")

	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(combiningMarks))), name)
	if err != nil {
		// Transform failures leave the separator-normalized name in place.
		return name
	}

	return stripped
}
