package integration

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mateuszmigas/update-beacon/internal/config"
	"github.com/mateuszmigas/update-beacon/internal/domain/manifest"
	"github.com/mateuszmigas/update-beacon/internal/hosting/github"
	"github.com/mateuszmigas/update-beacon/internal/service/publish"
)

// TestPublish_Run_MergesAndSwapsManifest drives a full publish run against a fake hosting API and verifies the uploaded manifest.
//
//nolint:funlen // Integration test requires comprehensive setup and verification.
func TestPublish_Run_MergesAndSwapsManifest(t *testing.T) {
	// Setup test directory and change working directory.
	dir := t.TempDir()
	chdir(t, dir)

	// Prepare local build artifacts, the signature keeps its exact bytes.
	sigBody := "dGF1cmkgc2lnbmF0dXJl\n"
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dist"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dist", "My App_1.0.0_x64.msi"), []byte("installer"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dist", "My App_1.0.0_x64.msi.sig"), []byte(sigBody), 0o600))

	// Manifest already published on the release by an earlier linux run.
	published := `{
		"version": "0.9.0",
		"notes": "old notes",
		"pub_date": "2024-01-01T00:00:00Z",
		"platforms": {
			"linux-x86_64": {
				"signature": "bGludXgtc2ln",
				"url": "https://github.com/acme/beacon/releases/download/v0.9.0/app.AppImage"
			}
		}
	}`

	var (
		deletedPath  string
		uploadedName string
		uploadedBody []byte
	)

	// Fake the hosting API surface the run touches.
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/beacon/releases/tags/v1.0.0", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id": 7, "tag_name": "v1.0.0"}`))
	})
	mux.HandleFunc("/repos/acme/beacon/releases/7/assets", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			uploadedName = r.URL.Query().Get("name")
			uploadedBody, _ = io.ReadAll(r.Body)

			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id": 99}`))

			return
		}

		_, _ = w.Write([]byte(`[
			{"id": 1, "name": "My.App_1.0.0_x64.msi", "browser_download_url": "https://github.com/acme/beacon/releases/download/untagged-8f13c6/My.App_1.0.0_x64.msi"},
			{"id": 2, "name": "My.App_1.0.0_x64.msi.sig", "browser_download_url": "https://github.com/acme/beacon/releases/download/untagged-8f13c6/My.App_1.0.0_x64.msi.sig"},
			{"id": 3, "name": "latest.json", "browser_download_url": "https://github.com/acme/beacon/releases/download/untagged-8f13c6/latest.json"}
		]`))
	})
	mux.HandleFunc("/repos/acme/beacon/releases/assets/3", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deletedPath = r.URL.Path

			w.WriteHeader(http.StatusNoContent)

			return
		}

		_, _ = w.Write([]byte(published))
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()

	t.Setenv(github.TokenEnvVar, "test-token")
	t.Setenv(github.APIEndpointEnvVar, ts.URL)
	t.Setenv(github.UploadEndpointEnvVar, ts.URL)

	// Create configuration file with the artifact patterns of this build.
	cfgPath := filepath.Join(dir, config.DefaultConfigFilename)
	cfg := &config.Config{
		Owner:    "acme",
		Repo:     "beacon",
		Platform: "windows",
		Artifacts: []config.ArtifactSpec{
			{Pattern: "dist/*.msi", Arch: "x86_64"},
			{Pattern: "dist/*.msi.sig", Arch: "x86_64"},
		},
	}

	require.NoError(t, config.Save(cfgPath, cfg))

	publishOptions := &publish.Options{
		ConfigPath: cfgPath,
		TagName:    "v1.0.0",
		Version:    "1.0.0",
		Notes:      "Stable release",
	}

	require.NoError(t, publish.Run(context.Background(), publishOptions))

	// The previous manifest asset was deleted before the new upload.
	require.Equal(t, "/repos/acme/beacon/releases/assets/3", deletedPath)
	require.Equal(t, manifest.Filename, uploadedName)

	var result manifest.Manifest
	require.NoError(t, json.Unmarshal(uploadedBody, &result))
	require.Equal(t, "1.0.0", result.Version)
	require.Equal(t, "Stable release", result.Notes)

	_, err := time.Parse(time.RFC3339, result.PubDate)
	require.NoError(t, err)

	// The windows entry points at the tagged installer URL and carries the
	// signature file bytes unmodified.
	require.Equal(t, manifest.PlatformEntry{
		Signature: sigBody,
		URL:       "https://github.com/acme/beacon/releases/download/v1.0.0/My.App_1.0.0_x64.msi",
	}, result.Platforms["windows-x86_64"])

	// The linux entry from the earlier run is untouched.
	require.Equal(t, manifest.PlatformEntry{
		Signature: "bGludXgtc2ln",
		URL:       "https://github.com/acme/beacon/releases/download/v0.9.0/app.AppImage",
	}, result.Platforms["linux-x86_64"])
	require.Len(t, result.Platforms, 2)

	// The uploaded document is the local latest.json byte for byte.
	local, err := os.ReadFile(manifest.Filename)
	require.NoError(t, err)
	require.Equal(t, local, uploadedBody)
}
