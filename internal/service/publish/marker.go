package publish

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/mateuszmigas/update-beacon/internal/config"
	"github.com/mateuszmigas/update-beacon/internal/logger"
)

const (
	// MarkerFilename marks that a publish run is in progress to avoid
	// concurrent manifest swaps on the same release.
	MarkerFilename = "update-beacon-marker.bin"

	// markerLifetime is the period after which a stale publish marker is
	// re-examined. Uploads can be slow, so it is generous.
	markerLifetime = 2 * time.Minute
)

// writeMarker drops the marker file holding the run identifier, so a blocked
// run can be traced back to the one owning the marker.
func writeMarker(runID string) error {
	return os.WriteFile(MarkerFilename, []byte(runID), config.DefaultFilePermissions)
}

// IsPublishRunningNow checks presence of a marker file and attempts recovery
// if it looks stale.
func IsPublishRunningNow(ctx context.Context) bool {
	logger.Info(ctx, "Checking for the presence of a publish marker")

	fileInfo, err := os.Stat(MarkerFilename)
	if err == nil {
		if time.Since(fileInfo.ModTime()) <= markerLifetime {
			if contents, readErr := os.ReadFile(MarkerFilename); readErr == nil && len(contents) > 0 {
				logger.Infof(ctx, "Publish run %s holds the marker", string(contents))
			}

			return true
		}

		logger.Info(ctx, "The publish marker is too old, checking for a live publisher")

		if isProcessAlive(executableName(), os.Getpid()) {
			return true
		}

		if err = os.Remove(MarkerFilename); err != nil {
			return true
		}

		return false
	}

	if errors.Is(err, os.ErrNotExist) {
		logger.Info(ctx, "Publish marker not found, continuing")
		return false
	}

	logger.Infof(ctx, "Unable to read publish marker: %v", err)

	return false
}

// isProcessAlive reports whether another live process carries the name.
// An empty name never matches.
func isProcessAlive(processName string, thisProcessID int) bool {
	if processName == "" {
		return false
	}

	processList, err := ps.Processes()
	if err != nil {
		return false
	}

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if process.Executable() == processName {
			return true
		}
	}

	return false
}

// executableName returns this binary's process name for liveness checks.
func executableName() string {
	executable, err := os.Executable()
	if err != nil {
		return ""
	}

	return filepath.Base(executable)
}
