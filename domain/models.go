package domain

import "path/filepath"

// UpdateRequest is the validated configuration for one reconciliation
// run. It is immutable for the duration of the run and owned by the
// update service, which fills Target and BasePath before any file is
// touched.
type UpdateRequest struct {
	PackageName   string  // Dependency name, matched case-insensitively
	TargetVersion string  // Raw version string from the CLI
	Target        Version // Parsed once per run by the service
	Rollback      bool    // Allow downgrading newer declarations
	Preview       bool    // Compute and report, never persist
	Verbose       bool    // Log every file visited, not just matches
	BasePath      string  // Paths are rendered relative to this in logs
}

// DisplayPath renders a file path relative to the run's base path for
// log output, falling back to the given path when no base is set or
// the path cannot be made relative.
func (r *UpdateRequest) DisplayPath(path string) string {
	if r.BasePath == "" {
		return path
	}
	rel, err := filepath.Rel(r.BasePath, path)
	if err != nil {
		return path
	}
	return rel
}
