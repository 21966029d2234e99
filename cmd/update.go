package cmd

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/nugetbump/config"
	"github.com/rios0rios0/nugetbump/domain"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var (
	packageName   string
	targetVersion string
	recurse       bool
	apply         bool
	rollback      bool
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var updateCmd = &cobra.Command{
	Use:   "update [path]",
	Short: "Update a package reference version across a project tree",
	Long: `Scan the given directory (default: current directory) for project
files declaring the named package and rewrite their version to the
target value.

Declarations older than the target are updated; equal ones are reported
as up-to-date; newer ones are skipped with a warning unless --rollback
is set. Without --apply the run only reports what it would change.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpdate,
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	updateCmd.Flags().StringVarP(&packageName, "package", "p", "",
		"NuGet package name to update (matched case-insensitively)")
	updateCmd.Flags().StringVar(&targetVersion, "version", "",
		"Target version, e.g. 2.4.93")
	updateCmd.Flags().BoolVarP(&recurse, "recurse", "r", false,
		"Recurse into subdirectories")
	updateCmd.Flags().BoolVar(&apply, "apply", false,
		"Persist changes (default is a dry preview)")
	updateCmd.Flags().BoolVar(&rollback, "rollback", false,
		"Allow downgrading declarations newer than the target")
	_ = updateCmd.MarkFlagRequired("package")
	_ = updateCmd.MarkFlagRequired("version")
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	cfg := loadConfig()
	if !cmd.Flags().Changed("recurse") {
		recurse = cfg.Defaults.Recurse
	}
	if !cmd.Flags().Changed("verbose") {
		verbose = cfg.Defaults.Verbose
	}

	req := &domain.UpdateRequest{
		PackageName:   packageName,
		TargetVersion: targetVersion,
		Rollback:      rollback,
		Preview:       !apply,
		Verbose:       verbose,
	}

	return injectService(cfg).Run(root, recurse, req)
}

// loadConfig resolves the optional config file. A missing file is not
// an error; an unreadable or invalid one is reported and the built-in
// defaults are used so the run can still proceed.
func loadConfig() *config.Config {
	path := configPath
	if path == "" {
		found, err := config.FindConfigFile()
		if err != nil {
			return config.Default()
		}
		path = found
	}

	cfg, err := config.Load(path)
	if err != nil {
		logger.Warnf("Ignoring config file %s: %v", path, err)
		return config.Default()
	}

	logger.Debugf("Using config file: %s", path)
	return cfg
}
