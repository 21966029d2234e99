package main

import (
	"errors"
	"os"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/nugetbump/application"
	"github.com/rios0rios0/nugetbump/cmd"
)

const (
	// exitScanFailed is returned when the tree was scanned but at least
	// one file or directory could not be processed.
	exitScanFailed = 1
	// exitUsage is returned for invalid arguments or configuration,
	// including a malformed target version.
	exitUsage = 2
)

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	if err := cmd.Execute(); err != nil {
		logger.Errorf("Error executing 'nugetbump': %s", err)
		if errors.Is(err, application.ErrScanFailed) {
			os.Exit(exitScanFailed)
		}
		os.Exit(exitUsage)
	}
}
