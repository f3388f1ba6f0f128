package assets

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestNormalizeName verifies separator replacement, dot collapsing and accent stripping.
func TestNormalizeName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"app.msi.zip.sig":               "app.msi.zip.sig",
		"dist/bundle/app_1.0.0_x64.msi": "app_1.0.0_x64.msi",
		"My App (beta).msi":             "My.App.beta.msi",
		"  padded name.exe  ":           "padded.name.exe",
		"version (1).exe":               "version.1.exe",
	}
	for path, want := range cases {
		require.Equal(t, want, NormalizeName(path), "path %q", path)
	}

	// "] {" yields three dots and the single collapse pass keeps one pair.
	require.Equal(t, "pkg.nightly..dev.AppImage", NormalizeName("pkg [nightly] {dev}.AppImage"))

	// Accents decompose and the combining marks are stripped.
	require.Equal(t, "cafe.sig", NormalizeName("café.sig"))
	require.Equal(t, "Unicode.dmg", NormalizeName("target/release/bundle/Ünïcode.dmg"))
	require.Equal(t, "носок.1.tar.gz", NormalizeName("target/release/носок (1).tar.gz"))
}

// TestNormalizeNameDropsForbiddenCharacters checks no separator character survives.
func TestNormalizeNameDropsForbiddenCharacters(t *testing.T) {
	t.Parallel()

	normalized := NormalizeName("odd ()[]{}name.msi")
	for _, forbidden := range []string{" ", "(", ")", "[", "]", "{", "}"} {
		require.NotContains(t, normalized, forbidden)
	}
}
