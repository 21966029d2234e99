package walker

import (
	"os"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/nugetbump/config"
	"github.com/rios0rios0/nugetbump/domain"
	"github.com/rios0rios0/nugetbump/infrastructure/patcher"
)

// manifestFileName is the secondary descriptor handled per directory.
const manifestFileName = "packages.config"

// projectFileSuffixes are the project-file patterns handled by the
// primary patcher entry point. Matched case-insensitively because the
// files originate on case-insensitive filesystems.
var projectFileSuffixes = []string{".csproj", ".vbproj"}

// Walker enumerates candidate files directory by directory and hands
// matches to the patcher. Traversal is strictly sequential and
// deterministic; a failure in one file or subdirectory never stops the
// remaining entries.
type Walker struct {
	patcher     *patcher.ProjectPatcher
	excludeDirs []string
}

// NewWalker creates a walker using the configured directory excludes.
func NewWalker(p *patcher.ProjectPatcher, cfg *config.Config) *Walker {
	return &Walker{patcher: p, excludeDirs: cfg.ExcludeDirs}
}

// ScanDirectory processes all matching files in dir and, when recurse
// is set, every subdirectory after them. It returns false when any file
// or directory under dir failed; siblings of a failed entry are still
// processed.
func (w *Walker) ScanDirectory(
	dir string,
	recurse bool,
	req *domain.UpdateRequest,
	progress *domain.ScanProgress,
) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warnf("Failed to read directory %s: %v", req.DisplayPath(dir), err)
		progress.Failures++
		return false
	}

	// Project files are handled before the directory's packages.config,
	// and all files before any subdirectory.
	var projects, manifests, subdirs []string
	for _, entry := range entries {
		name := entry.Name()
		switch {
		case entry.IsDir():
			if !w.excluded(name) {
				subdirs = append(subdirs, filepath.Join(dir, name))
			}
		case isProjectFile(name):
			projects = append(projects, filepath.Join(dir, name))
		case strings.EqualFold(name, manifestFileName):
			manifests = append(manifests, filepath.Join(dir, name))
		default:
			if req.Verbose {
				logger.Debugf("Skipping %s", req.DisplayPath(filepath.Join(dir, name)))
			}
		}
	}

	ok := true
	for _, path := range append(projects, manifests...) {
		if recurse {
			progress.Tick()
		}
		if !w.processFile(path, req, progress) {
			ok = false
		}
	}

	if recurse {
		for _, sub := range subdirs {
			progress.Tick()
			// A failed subtree was already logged where it failed; the
			// remaining siblings still run.
			if !w.ScanDirectory(sub, true, req, progress) {
				ok = false
			}
		}
	}

	return ok
}

// processFile routes one candidate file to the matching patcher entry
// point and folds the outcome into the progress totals.
func (w *Walker) processFile(
	path string,
	req *domain.UpdateRequest,
	progress *domain.ScanProgress,
) bool {
	if req.Verbose {
		logger.Debugf("Visiting %s", req.DisplayPath(path))
	}

	var changed, fileOK bool
	if isProjectFile(filepath.Base(path)) {
		changed, fileOK = w.patcher.UpdateProjectFile(path, req)
	} else {
		changed, fileOK = w.patcher.UpdatePackagesConfig(path, req)
	}

	progress.FilesVisited++
	if changed {
		progress.FilesChanged++
	}
	if !fileOK {
		progress.Failures++
	}
	return fileOK
}

func (w *Walker) excluded(name string) bool {
	for _, dir := range w.excludeDirs {
		if strings.EqualFold(name, dir) {
			return true
		}
	}
	return false
}

func isProjectFile(name string) bool {
	ext := filepath.Ext(name)
	for _, suffix := range projectFileSuffixes {
		if strings.EqualFold(ext, suffix) {
			return true
		}
	}
	return false
}
