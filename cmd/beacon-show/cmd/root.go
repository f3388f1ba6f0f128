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
	"github.com/mateuszmigas/update-beacon/internal/service/show"
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
	// tagName selects the release by tag.
	tagName string

	// rootCmd represents the base command for inspecting the published manifest.
	rootCmd = &cobra.Command{
		Use:   "beacon-show",
		Short: "Show the update manifest published on a release",
		Long: `Fetch and display the latest.json update manifest of a GitHub release.

Renders a platform table when attached to a terminal and raw JSON otherwise,
so the output can be piped into other tools unchanged.

The release is selected by --release-id or --tag. Repository coordinates come
from the configuration file, --owner and --repo override it.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := applyLogLevel(); err != nil {
				return err
			}

			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &show.Options{
				ConfigPath: configPath,
				Owner:      owner,
				Repo:       repo,
				ReleaseID:  releaseID,
				TagName:    tagName,
			}

			return show.Run(ctx, options)
		},
	}
)

// Execute runs the beacon-show CLI and exits with non-zero status on error.
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
	rootCmd.Flags().StringVar(&tagName, "tag", "", "release tag to inspect")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}
