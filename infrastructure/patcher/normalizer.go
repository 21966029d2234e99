package patcher

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
)

// emptyPairPattern matches a line holding an open tag immediately
// followed by a close tag with nothing in between: leading whitespace,
// the open tag (possibly with attributes), then the close tag.
var emptyPairPattern = regexp.MustCompile(
	`^(\s*)<([A-Za-z_][A-Za-z0-9._-]*)((?:\s[^<>]*[^<>/])?)></([A-Za-z_][A-Za-z0-9._-]*)>\s*$`,
)

// expandEmptyTagPairs restores the two-line representation for paired
// empty tags that the serializer collapses onto one line. MSBuild's own
// tooling writes "<PropertyGroup>" and "</PropertyGroup>" on separate
// lines even when the element is empty, so the file is rewritten line
// by line into a temporary file that atomically replaces the original
// when at least one pair was expanded.
func expandEmptyTagPairs(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()

	expanded := 0
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		match := emptyPairPattern.FindStringSubmatch(line)
		if match == nil {
			out = append(out, line)
			continue
		}

		indent, openName, attrs, closeName := match[1], match[2], match[3], match[4]
		if openName != closeName {
			logger.Warnf(
				"mismatched tag pair %q in %s, leaving line untouched",
				strings.TrimSpace(line), path,
			)
			out = append(out, line)
			continue
		}

		out = append(out,
			indent+"<"+openName+attrs+">",
			indent+"</"+closeName+">",
		)
		expanded++
	}

	if _, err = tmp.WriteString(strings.Join(out, "\r\n")); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file for %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file for %s: %w", path, err)
	}

	if expanded == 0 {
		_ = os.Remove(tmpPath)
		return nil
	}

	if err = os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}
