package publish

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestIsPublishRunningNow covers the missing, fresh and stale marker cases.
func TestIsPublishRunningNow(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	ctx := context.Background()

	// No marker.
	require.False(t, IsPublishRunningNow(ctx))

	// Fresh marker means another run is in flight.
	require.NoError(t, os.WriteFile(MarkerFilename, nil, 0o600))
	require.True(t, IsPublishRunningNow(ctx))

	// A stale marker with no live publisher is cleaned up.
	past := time.Now().Add(-2 * markerLifetime)
	require.NoError(t, os.Chtimes(MarkerFilename, past, past))
	require.False(t, IsPublishRunningNow(ctx))

	_, err := os.Stat(MarkerFilename)
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestWriteMarker stores the run identifier in the marker file.
func TestWriteMarker(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, writeMarker("some-run-id"))

	contents, err := os.ReadFile(MarkerFilename)
	require.NoError(t, err)
	require.Equal(t, "some-run-id", string(contents))

	require.True(t, IsPublishRunningNow(context.Background()))
}

// TestIsProcessAlive ensures the current process is excluded from the scan.
func TestIsProcessAlive(t *testing.T) {
	t.Parallel()

	require.False(t, isProcessAlive("", os.Getpid()))
	require.False(t, isProcessAlive(executableName(), os.Getpid()))
}
