// Package cmd defines and implements the CLI commands for the tumblr-archiver executable.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tumblr-archiver",
		Short: "Archives the full post history of tumblr blogs into SQLite.",
		Long: `tumblr-archiver crawls the paginated tumblr API for one or more blogs
and preserves every post, tag, and reblog trail in a local SQLite database.
Blogs referenced by reblog trails are archived as placeholder records when
they are inaccessible, so cross-blog references always resolve.`,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (optional; settings also come from TUMBLR_ARCHIVER_* env vars)")

	cmd.AddCommand(newArchiveCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
