package assets

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func signatureSet() []MatchedAsset {
	return []MatchedAsset{
		{AssetName: "app.exe.sig", Path: "dist/app.exe.sig", DownloadURL: "https://example.com/app.exe.sig"},
		{AssetName: "app.msi.sig", Path: "dist/app.msi.sig", DownloadURL: "https://example.com/app.msi.sig"},
		{AssetName: "app.nsis.zip.sig", Path: "dist/app.nsis.zip.sig", DownloadURL: "https://example.com/app.nsis.zip.sig"},
		{AssetName: "app.msi", Path: "dist/app.msi", DownloadURL: "https://example.com/app.msi"},
	}
}

// TestSelectSignaturePrefersMsi verifies the MSI-first priority ordering.
func TestSelectSignaturePrefersMsi(t *testing.T) {
	t.Parallel()

	winner, ok := SelectSignature(signatureSet(), false)
	require.True(t, ok)
	require.Equal(t, "app.msi.sig", winner.AssetName)
}

// TestSelectSignaturePrefersNsis verifies the NSIS-first priority ordering.
func TestSelectSignaturePrefersNsis(t *testing.T) {
	t.Parallel()

	winner, ok := SelectSignature(signatureSet(), true)
	require.True(t, ok)
	require.Equal(t, "app.nsis.zip.sig", winner.AssetName)
}

// TestSelectSignatureEmpty ensures a set without signatures reports no winner.
func TestSelectSignatureEmpty(t *testing.T) {
	t.Parallel()

	_, ok := SelectSignature(nil, false)
	require.False(t, ok)

	// Plain installers without their signature do not count.
	_, ok = SelectSignature([]MatchedAsset{
		{AssetName: "app.msi", Path: "dist/app.msi"},
	}, false)
	require.False(t, ok)
}

// TestSelectSignatureStableOnTies checks input order decides between equal scores.
func TestSelectSignatureStableOnTies(t *testing.T) {
	t.Parallel()

	// Neither name carries a ranked installer suffix, both score zero.
	winner, ok := SelectSignature([]MatchedAsset{
		{AssetName: "app-aarch64.app.tar.gz.sig", Path: "bundle/app-aarch64.app.tar.gz.sig"},
		{AssetName: "app-x86_64.app.tar.gz.sig", Path: "bundle/app-x86_64.app.tar.gz.sig"},
	}, false)
	require.True(t, ok)
	require.Equal(t, "app-aarch64.app.tar.gz.sig", winner.AssetName)
}

// TestSelectSignatureRanksByLocalPath checks scoring reads the path, not the asset name.
func TestSelectSignatureRanksByLocalPath(t *testing.T) {
	t.Parallel()

	winner, ok := SelectSignature([]MatchedAsset{
		{AssetName: "first.sig", Path: "dist/first.renamed"},
		{AssetName: "second.sig", Path: "dist/second.exe.sig"},
	}, false)
	require.True(t, ok)
	require.Equal(t, "second.sig", winner.AssetName)
}
