package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mateuszmigas/update-beacon/internal/config"
	"github.com/mateuszmigas/update-beacon/internal/logger"
	"github.com/mateuszmigas/update-beacon/internal/service/publish"
	"github.com/mateuszmigas/update-beacon/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// logLevel raises or lowers logging verbosity for this invocation.
	logLevel string
	// owner overrides the repository owner from the configuration file.
	owner string
	// repo overrides the repository name from the configuration file.
	repo string
	// releaseID targets a release directly, bypassing tag lookup.
	releaseID int64
	// tagName selects the release by tag and names the download path in asset URLs.
	tagName string
	// notes carry the release notes embedded into the manifest.
	notes string

	// rootCmd represents the base command for publishing the update manifest.
	rootCmd = &cobra.Command{
		Use:   "beacon-publish [version]",
		Short: "Publish the update manifest for a release",
		Long: `Reconcile and publish the latest.json update manifest on a GitHub release.

Scans local build artifacts, correlates them with the assets already uploaded
to the release, picks the best signature for the configured platform and merges
the resulting entry into the published manifest. Platforms published by earlier
runs for other targets are preserved. The run is idempotent, repeating it with
the same inputs converges to the same manifest.

The release is selected by --release-id or --tag. Repository coordinates and
artifact patterns come from the configuration file, --owner and --repo
override it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := applyLogLevel(); err != nil {
				return err
			}

			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &publish.Options{
				ConfigPath: configPath,
				Owner:      owner,
				Repo:       repo,
				ReleaseID:  releaseID,
				TagName:    tagName,
				Version:    args[0],
				Notes:      notes,
			}

			return publish.Run(ctx, options)
		},
	}
)

// Execute runs the beacon-publish CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// applyLogLevel raises the global verbosity when --log-level is set.
func applyLogLevel() error {
	if logLevel == "" {
		return nil
	}

	lvl, ok := logger.ParseLogLevel(logLevel)
	if !ok {
		return fmt.Errorf("unknown log level %q", logLevel)
	}

	logger.SetLevel(lvl)

	return nil
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVar(&owner, "owner", "", "repository owner, overrides the configuration file")
	rootCmd.Flags().StringVar(&repo, "repo", "", "repository name, overrides the configuration file")
	rootCmd.Flags().Int64Var(&releaseID, "release-id", 0, "numeric release identifier, takes precedence over --tag")
	rootCmd.Flags().StringVar(&tagName, "tag", "", "release tag to publish to")
	rootCmd.Flags().StringVar(&notes, "notes", "", "release notes to embed into the manifest")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}
