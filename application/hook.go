package application

import (
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/nugetbump/domain"
)

// progressHook terminates a pending run of progress markers before any
// regular log line is written, so markers and log output never share a
// line.
type progressHook struct {
	progress *domain.ScanProgress
}

func (h *progressHook) Levels() []logger.Level {
	return logger.AllLevels
}

func (h *progressHook) Fire(_ *logger.Entry) error {
	h.progress.FlushNewline()
	return nil
}

// installProgressHook registers the hook on the standard logger for the
// duration of one run and returns a function restoring the previous
// hooks.
func installProgressHook(progress *domain.ScanProgress) func() {
	std := logger.StandardLogger()

	hooks := make(logger.LevelHooks)
	hooks.Add(&progressHook{progress: progress})
	previous := std.ReplaceHooks(hooks)

	return func() {
		std.ReplaceHooks(previous)
	}
}
