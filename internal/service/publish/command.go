package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mateuszmigas/update-beacon/internal/assets"
	"github.com/mateuszmigas/update-beacon/internal/config"
	"github.com/mateuszmigas/update-beacon/internal/domain/manifest"
	"github.com/mateuszmigas/update-beacon/internal/hosting/github"
	"github.com/mateuszmigas/update-beacon/internal/logger"
	"github.com/mateuszmigas/update-beacon/internal/platform"
	"github.com/mateuszmigas/update-beacon/internal/repository/manifestfile"
)

var (
	errPublishAlreadyRunning = errors.New("a publish run is already in progress")
	errVersionRequired       = errors.New("version must be provided")
	errReleaseRequired       = errors.New("release id or tag must be provided")
	errPlatformRequired      = errors.New("target platform is not set")
)

// Options are inputs accepted by the publish entry point.
type Options struct {
	// ConfigPath is the optional path to the settings YAML file.
	ConfigPath string
	// Owner overrides the repository owner from the settings file.
	Owner string
	// Repo overrides the repository name from the settings file.
	Repo string
	// ReleaseID is the numeric release to reconcile. When zero, the release
	// is resolved from TagName.
	ReleaseID int64
	// TagName is the release tag; it also repairs untagged download URLs.
	TagName string
	// Version is the semantic version to advertise in the manifest.
	Version string
	// Notes carries the release notes to advertise.
	Notes string
}

// ReleaseHost is the hosting-platform surface a publish run needs. It is
// satisfied by the GitHub client and by test doubles.
type ReleaseHost interface {
	ReleaseByTag(ctx context.Context, owner, repo, tag string) (*github.Release, error)
	ListReleaseAssets(ctx context.Context, owner, repo string, releaseID int64) ([]assets.RemoteAsset, error)
	FetchAssetContent(ctx context.Context, owner, repo string, assetID int64) ([]byte, error)
	DeleteAsset(ctx context.Context, owner, repo string, assetID int64) error
	UploadAssets(ctx context.Context, owner, repo string, releaseID int64, artifacts []assets.Artifact) error
}

// runner holds the mutable state and helpers for a single publish execution.
// It is intentionally unexported—call Run(ctx, Options) from callers.
type runner struct {
	cfg        *config.Config          // Reconciliation configuration after flag overrides.
	opts       *Options                // Raw inputs from the CLI.
	host       ReleaseHost             // Hosting platform the release lives on.
	repository manifestfile.Repository // Local manifest persistence.
	releaseID  int64                   // Release being reconciled.
	tagName    string                  // Tag used to repair download URLs, may be empty.
}

// Run executes the manifest publication and is the public entry point for the CLI.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name and a run identifier for tracking.
	runID := uuid.NewString()
	ctx = logger.WithName(ctx, "beacon-publish")
	ctx = logger.WithKV(ctx, "run_id", runID)

	pub, err := newRunner(ctx, opts, runID)
	if err != nil {
		return err
	}

	defer pub.cleanup(ctx)

	if err = pub.Run(ctx); err != nil {
		logger.ErrorKV(ctx, "Publish run failed", "error", err)
		return err
	}

	logger.Info(ctx, "Publish completed")

	return nil
}

// newRunner prepares the run and writes a marker to avoid concurrent runs.
// The hosting token is checked before any other work.
func newRunner(ctx context.Context, opts *Options, runID string) (*runner, error) {
	r := &runner{opts: opts}

	token, err := github.TokenFromEnv()
	if err != nil {
		return r, err
	}

	if strings.TrimSpace(opts.Version) == "" {
		return r, errVersionRequired
	}

	if IsPublishRunningNow(ctx) {
		return r, errPublishAlreadyRunning
	}

	if err = writeMarker(runID); err != nil {
		return r, err
	}

	settings, err := loadSettings(opts.ConfigPath)
	if err != nil {
		return r, err
	}

	if opts.Owner != "" {
		settings.Owner = opts.Owner
	}

	if opts.Repo != "" {
		settings.Repo = opts.Repo
	}

	if err = config.Validate(settings); err != nil {
		return r, err
	}

	r.cfg = settings

	client, err := github.NewClient(ctx, token, github.WithTimeout(settings.Timeout))
	if err != nil {
		return r, err
	}

	r.host = client
	r.repository = manifestfile.NewFileRepository("")

	return r, nil
}

// loadSettings reads the settings file when it exists. A missing default
// file is not an error, repository coordinates may come entirely from flags.
func loadSettings(path string) (*config.Config, error) {
	if path == "" {
		path = config.DefaultConfigFilename
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return new(config.Config), nil
	}

	return config.Load(path)
}

// Run executes the reconciliation workflow for this runner instance:
// 1) Resolve the target release.
// 2) Expand local artifact patterns.
// 3) List uploaded assets and fetch any published manifest.
// 4) Match artifacts against uploads and pick the winning signature.
// 5) Derive platform keys and merge the new entries.
// 6) Write latest.json locally and swap it onto the release.
func (r *runner) Run(ctx context.Context) error {
	if err := r.resolveRelease(ctx); err != nil {
		return err
	}

	artifacts, err := r.discoverArtifacts(ctx)
	if err != nil {
		return err
	}

	remote, err := r.host.ListReleaseAssets(ctx, r.cfg.Owner, r.cfg.Repo, r.releaseID)
	if err != nil {
		return fmt.Errorf("list release assets: %w", err)
	}

	merged, priorAssetID, err := r.fetchPublishedManifest(ctx, remote)
	if err != nil {
		return err
	}

	remoteByName := assets.IndexByName(remote)

	matched := assets.Match(artifacts, remoteByName)
	logger.InfoKV(ctx, "Matched artifacts against uploaded assets",
		"artifacts", len(artifacts),
		"remote", len(remote),
		"matched", len(matched))

	winner, found := assets.SelectSignature(matched, r.cfg.PreferNsis)
	if !found {
		logger.Info(ctx, "No signature asset among the matches, nothing to publish")
		return nil
	}

	logger.InfoKV(ctx, "Selected signature asset", "asset", winner.AssetName, "arch", winner.Arch)

	entry, found, err := r.buildPlatformEntry(ctx, winner, remoteByName)
	if err != nil {
		return err
	}

	if !found {
		return nil
	}

	r.mergeManifest(ctx, merged, winner, entry)

	return r.publishManifest(ctx, merged, priorAssetID)
}

// resolveRelease determines the release identifier and the tag to rewrite
// download URLs with.
func (r *runner) resolveRelease(ctx context.Context) error {
	if r.opts.ReleaseID != 0 {
		r.releaseID = r.opts.ReleaseID
		r.tagName = r.opts.TagName

		return nil
	}

	if r.opts.TagName == "" {
		return errReleaseRequired
	}

	release, err := r.host.ReleaseByTag(ctx, r.cfg.Owner, r.cfg.Repo, r.opts.TagName)
	if err != nil {
		return fmt.Errorf("resolve release: %w", err)
	}

	r.releaseID = release.ID
	r.tagName = release.TagName

	logger.InfoKV(ctx, "Resolved release from tag", "release_id", r.releaseID, "tag", r.tagName)

	return nil
}

// discoverArtifacts expands the configured artifact patterns.
func (r *runner) discoverArtifacts(ctx context.Context) ([]assets.Artifact, error) {
	if strings.TrimSpace(r.cfg.Platform) == "" {
		return nil, errPlatformRequired
	}

	specs := make([]assets.Spec, 0, len(r.cfg.Artifacts))
	for _, spec := range r.cfg.Artifacts {
		specs = append(specs, assets.Spec{
			Pattern: spec.Pattern,
			Arch:    spec.Arch,
		})
	}

	artifacts, unmatched, err := assets.Discover(specs)
	if err != nil {
		return nil, fmt.Errorf("discover artifacts: %w", err)
	}

	for _, pattern := range unmatched {
		logger.InfoKV(ctx, "Artifact pattern matched nothing", "pattern", pattern)
	}

	logger.InfoKV(ctx, "Discovered local artifacts", "count", len(artifacts))

	return artifacts, nil
}

// fetchPublishedManifest loads the manifest already attached to the release,
// if any, and remembers its asset identifier for the final swap. A manifest
// that fails to parse aborts the run, silently starting over would drop
// every previously published platform.
func (r *runner) fetchPublishedManifest(
	ctx context.Context,
	remote []assets.RemoteAsset,
) (*manifest.Manifest, int64, error) {
	for _, asset := range remote {
		if asset.Name != manifest.Filename {
			continue
		}

		logger.InfoKV(ctx, "Fetching the published manifest", "asset_id", asset.ID)

		contents, err := r.host.FetchAssetContent(ctx, r.cfg.Owner, r.cfg.Repo, asset.ID)
		if err != nil {
			return nil, 0, fmt.Errorf("fetch published manifest: %w", err)
		}

		m, err := manifest.Decode(bytes.NewReader(contents))
		if err != nil {
			return nil, 0, fmt.Errorf("published manifest: %w", err)
		}

		return m, asset.ID, nil
	}

	logger.Info(ctx, "No published manifest on the release, starting fresh")

	return manifest.New(), 0, nil
}

// buildPlatformEntry reads the winning signature from disk and pairs it with
// its companion installer's download URL. A signature whose companion was
// never uploaded ends the run without publishing.
func (r *runner) buildPlatformEntry(
	ctx context.Context,
	winner assets.MatchedAsset,
	remoteByName map[string]assets.RemoteAsset,
) (manifest.PlatformEntry, bool, error) {
	signature, err := os.ReadFile(filepath.Clean(winner.Path))
	if err != nil {
		return manifest.PlatformEntry{}, false, fmt.Errorf("read signature file: %w", err)
	}

	companionName := strings.TrimSuffix(winner.AssetName, assets.SignatureSuffix)

	companion, found := remoteByName[companionName]
	if !found {
		logger.InfoKV(ctx, "No uploaded companion for the signature, nothing to publish",
			"companion", companionName)

		return manifest.PlatformEntry{}, false, nil
	}

	downloadURL := github.RewriteUntaggedURL(companion.DownloadURL, r.tagName)
	if downloadURL != companion.DownloadURL {
		logger.InfoKV(ctx, "Repaired untagged download URL", "url", downloadURL)
	}

	return manifest.PlatformEntry{
		Signature: string(signature),
		URL:       downloadURL,
	}, true, nil
}

// mergeManifest applies the planned platform writes and stamps the manifest
// metadata for this run.
func (r *runner) mergeManifest(
	ctx context.Context,
	m *manifest.Manifest,
	winner assets.MatchedAsset,
	entry manifest.PlatformEntry,
) {
	writes := platform.PlanWrites(r.cfg.Platform, winner.Arch, r.cfg.KeepUniversal)

	for _, write := range writes {
		switch write.Mode {
		case platform.InsertIfAbsent:
			if m.AddPlatformIfAbsent(write.Key, entry) {
				logger.InfoKV(ctx, "Added platform entry", "platform", write.Key)
			} else {
				logger.InfoKV(ctx, "Kept existing platform entry", "platform", write.Key)
			}
		case platform.InsertOrReplace:
			m.SetPlatform(write.Key, entry)
			logger.InfoKV(ctx, "Wrote platform entry", "platform", write.Key)
		}
	}

	m.Version = r.opts.Version
	m.Notes = r.opts.Notes
	m.PubDate = time.Now().UTC().Format(time.RFC3339)
}

// publishManifest validates the outgoing document, writes it to the working
// directory and swaps it onto the release. The delete and upload pair is not
// transactional, a failure in between leaves the release without a manifest
// until the next run.
func (r *runner) publishManifest(ctx context.Context, m *manifest.Manifest, priorAssetID int64) error {
	data, err := m.Encode()
	if err != nil {
		return err
	}

	if err = manifest.ValidateDocument(data); err != nil {
		return err
	}

	if err = r.repository.Save(ctx, m); err != nil {
		return err
	}

	if priorAssetID != 0 {
		logger.InfoKV(ctx, "Deleting the previous manifest asset", "asset_id", priorAssetID)

		if err = r.host.DeleteAsset(ctx, r.cfg.Owner, r.cfg.Repo, priorAssetID); err != nil {
			return fmt.Errorf("delete previous manifest: %w", err)
		}
	}

	logger.InfoKV(ctx, "Uploading the manifest", "platforms", len(m.Platforms))

	err = r.host.UploadAssets(ctx, r.cfg.Owner, r.cfg.Repo, r.releaseID, []assets.Artifact{
		{Path: manifest.Filename},
	})
	if err != nil {
		return fmt.Errorf("upload manifest: %w", err)
	}

	return nil
}

// cleanup removes the publish marker.
func (r *runner) cleanup(ctx context.Context) {
	if _, err := os.Stat(MarkerFilename); err == nil {
		_ = os.Remove(MarkerFilename)
	}

	logger.Info(ctx, "The publisher has been stopped")
}
