package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ArtifactSpec declares one group of locally built artifacts to reconcile.
type ArtifactSpec struct {
	// Pattern is a glob matched against the working directory. The pattern
	// may use doublestar (**) segments.
	Pattern string `yaml:"pattern"`
	// Arch is the architecture tag attached to every file the pattern matches.
	Arch string `yaml:"arch"`
}

// Config holds repository coordinates and reconciliation toggles shared by
// the beacon binaries.
type Config struct {
	// Owner is the account owning the repository whose release is reconciled.
	Owner string `yaml:"owner"`
	// Repo is the repository name.
	Repo string `yaml:"repo"`
	// Platform is the operating system the artifacts were built for,
	// as reported by the build pipeline ("macos", "windows", "linux").
	Platform string `yaml:"platform"`
	// PreferNsis prioritizes NSIS installers over MSI when choosing which
	// Windows signature to advertise.
	PreferNsis bool `yaml:"prefer_nsis"`
	// KeepUniversal additionally publishes the literal darwin-universal key
	// next to the per-architecture keys synthesized for universal builds.
	KeepUniversal bool `yaml:"keep_universal"`
	// Artifacts lists the glob patterns producing this run's artifact set.
	Artifacts []ArtifactSpec `yaml:"artifacts"`
	// Timeout is the duration for hosting API calls and asset transfers.
	Timeout time.Duration `yaml:"timeout"`
}

const (
	// DefaultConfigFilename is the default filename for reconciliation settings.
	DefaultConfigFilename = "update-beacon-settings.yaml"

	// DefaultTimeout is the default duration for hosting API operations.
	// Asset uploads dominate, so it is looser than a plain API call needs.
	DefaultTimeout = 2 * time.Minute

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errOwnerRequired is returned when the repository owner is missing or malformed.
	errOwnerRequired = errors.New("repository owner must be provided")
	// errRepoRequired is returned when the repository name is missing or malformed.
	errRepoRequired = errors.New("repository name must be provided")
	// errArtifactPatternRequired is returned when an artifact entry has no glob pattern.
	errArtifactPatternRequired = errors.New("artifact pattern must be provided")
	// errArtifactArchRequired is returned when an artifact entry has no architecture tag.
	errArtifactArchRequired = errors.New("artifact arch must be provided")
)

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings for required fields and formatting.
// Operation preconditions beyond that (target platform, artifact set) are
// enforced by the service needing them.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if !isRepoComponent(settings.Owner) {
		return fmt.Errorf("%w, got %q", errOwnerRequired, settings.Owner)
	}

	if !isRepoComponent(settings.Repo) {
		return fmt.Errorf("%w, got %q", errRepoRequired, settings.Repo)
	}

	for i, spec := range settings.Artifacts {
		if strings.TrimSpace(spec.Pattern) == "" {
			return fmt.Errorf("artifact %d: %w", i, errArtifactPatternRequired)
		}

		if strings.TrimSpace(spec.Arch) == "" {
			return fmt.Errorf("artifact %d: %w", i, errArtifactArchRequired)
		}
	}

	// Set default timeout if not specified
	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	return nil
}

// isRepoComponent reports whether the value can stand as a single component
// of an owner/repo pair.
func isRepoComponent(value string) bool {
	value = strings.TrimSpace(value)

	return value != "" && !strings.ContainsAny(value, "/ \t")
}
