package show

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mateuszmigas/update-beacon/internal/assets"
	"github.com/mateuszmigas/update-beacon/internal/config"
	"github.com/mateuszmigas/update-beacon/internal/domain/manifest"
	"github.com/mateuszmigas/update-beacon/internal/hosting/github"
	"github.com/mateuszmigas/update-beacon/internal/logger"
)

var (
	errReleaseRequired = errors.New("release id or tag must be provided")
	errNoManifest      = errors.New("no manifest is published on the release")
)

// Options are inputs accepted by the show entry point.
type Options struct {
	// ConfigPath is the optional path to the settings YAML file.
	ConfigPath string
	// Owner overrides the repository owner from the settings file.
	Owner string
	// Repo overrides the repository name from the settings file.
	Repo string
	// ReleaseID is the numeric release to inspect. When zero, the release
	// is resolved from TagName.
	ReleaseID int64
	// TagName is the release tag to inspect.
	TagName string
	// Output receives the rendered manifest, os.Stdout when nil.
	Output io.Writer
}

// ReleaseReader is the hosting-platform surface a show run needs. It is
// satisfied by the GitHub client and by test doubles.
type ReleaseReader interface {
	ReleaseByTag(ctx context.Context, owner, repo, tag string) (*github.Release, error)
	ListReleaseAssets(ctx context.Context, owner, repo string, releaseID int64) ([]assets.RemoteAsset, error)
	FetchAssetContent(ctx context.Context, owner, repo string, assetID int64) ([]byte, error)
}

// runner holds the state for a single show execution.
// It is intentionally unexported—call Run(ctx, Options) from callers.
type runner struct {
	cfg    *config.Config // Repository coordinates after flag overrides.
	opts   *Options       // Raw inputs from the CLI.
	host   ReleaseReader  // Hosting platform the release lives on.
	output io.Writer      // Destination for the rendered manifest.
}

// Run fetches the published manifest and renders it, the public entry point
// for the CLI.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "beacon-show")

	token, err := github.TokenFromEnv()
	if err != nil {
		return err
	}

	settings, err := loadSettings(opts.ConfigPath)
	if err != nil {
		return err
	}

	if opts.Owner != "" {
		settings.Owner = opts.Owner
	}

	if opts.Repo != "" {
		settings.Repo = opts.Repo
	}

	if err = config.Validate(settings); err != nil {
		return err
	}

	client, err := github.NewClient(ctx, token, github.WithTimeout(settings.Timeout))
	if err != nil {
		return err
	}

	sh := &runner{
		cfg:    settings,
		opts:   opts,
		host:   client,
		output: opts.Output,
	}

	if sh.output == nil {
		sh.output = os.Stdout
	}

	return sh.Run(ctx)
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

// Run resolves the release, fetches its manifest and renders it.
func (s *runner) Run(ctx context.Context) error {
	releaseID, err := s.resolveReleaseID(ctx)
	if err != nil {
		return err
	}

	remote, err := s.host.ListReleaseAssets(ctx, s.cfg.Owner, s.cfg.Repo, releaseID)
	if err != nil {
		return fmt.Errorf("list release assets: %w", err)
	}

	m, err := s.fetchManifest(ctx, remote)
	if err != nil {
		return err
	}

	return render(s.output, m)
}

// resolveReleaseID determines the release to inspect.
func (s *runner) resolveReleaseID(ctx context.Context) (int64, error) {
	if s.opts.ReleaseID != 0 {
		return s.opts.ReleaseID, nil
	}

	if s.opts.TagName == "" {
		return 0, errReleaseRequired
	}

	release, err := s.host.ReleaseByTag(ctx, s.cfg.Owner, s.cfg.Repo, s.opts.TagName)
	if err != nil {
		return 0, fmt.Errorf("resolve release: %w", err)
	}

	return release.ID, nil
}

// fetchManifest finds and decodes the manifest asset.
func (s *runner) fetchManifest(ctx context.Context, remote []assets.RemoteAsset) (*manifest.Manifest, error) {
	for _, asset := range remote {
		if asset.Name != manifest.Filename {
			continue
		}

		contents, err := s.host.FetchAssetContent(ctx, s.cfg.Owner, s.cfg.Repo, asset.ID)
		if err != nil {
			return nil, fmt.Errorf("fetch manifest: %w", err)
		}

		m, err := manifest.Decode(bytes.NewReader(contents))
		if err != nil {
			return nil, fmt.Errorf("published manifest: %w", err)
		}

		return m, nil
	}

	return nil, errNoManifest
}
