package application

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/nugetbump/domain"
	"github.com/rios0rios0/nugetbump/infrastructure/walker"
)

// ErrScanFailed reports that at least one file or directory could not
// be processed; the rest of the tree was still scanned.
var ErrScanFailed = errors.New("one or more files could not be processed")

// UpdateService owns one reconciliation run: it resolves the target
// version before any filesystem access, prepares the run-scoped
// progress state, and drives the walker across the whole tree.
type UpdateService struct {
	walker *walker.Walker
}

// NewUpdateService creates a new service around the given walker.
func NewUpdateService(w *walker.Walker) *UpdateService {
	return &UpdateService{walker: w}
}

// Run executes a full update pass starting at root. The request's
// target version string is parsed exactly once here; a malformed value
// fails the run before any file is touched.
func (s *UpdateService) Run(root string, recurse bool, req *domain.UpdateRequest) error {
	if req.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	target, err := domain.ParseVersion(req.TargetVersion)
	if err != nil {
		return fmt.Errorf("invalid target version %q: %w", req.TargetVersion, err)
	}
	req.Target = target

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve %q: %w", root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return fmt.Errorf("cannot access %q: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%q is not a directory", root)
	}

	// Log paths relative to the root's parent so the root directory
	// name itself stays visible. A filesystem root has no parent, in
	// which case paths are rendered as-is.
	if parent := filepath.Dir(absRoot); parent != absRoot {
		req.BasePath = parent
	}

	progress := domain.NewScanProgress(os.Stderr)
	restoreHooks := installProgressHook(progress)
	defer restoreHooks()

	mode := "preview"
	if !req.Preview {
		mode = "apply"
	}
	logger.Infof(
		"Scanning %s for %s references targeting version %s (%s mode)",
		absRoot, req.PackageName, req.Target, mode,
	)

	ok := s.walker.ScanDirectory(absRoot, recurse, req, progress)
	progress.FlushNewline()

	logger.Infof(
		"Scan complete: %d files visited, %d changed, %d failures",
		progress.FilesVisited, progress.FilesChanged, progress.Failures,
	)

	if !ok {
		return ErrScanFailed
	}
	return nil
}
