package cmd

import (
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var (
	configPath string
	verbose    bool
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var rootCmd = &cobra.Command{
	Use:   "nugetbump",
	Short: "NuGet package version updater for local project trees",
	Long: `A CLI tool that scans a directory tree for .NET project files
(*.csproj, *.vbproj and packages.config) and rewrites the version of a
named NuGet package reference to a target value.

Preview is the default mode: nothing is written until --apply is set.
Downgrades require --rollback. The tool works purely on local files —
it never contacts a package registry or resolves dependency graphs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to config file (default: auto-detect)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log every file visited, not just matches")
}
