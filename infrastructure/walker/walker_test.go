package walker //nolint:testpackage // tests unexported matching helpers too

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/nugetbump/config"
	"github.com/rios0rios0/nugetbump/domain"
	"github.com/rios0rios0/nugetbump/infrastructure/patcher"
)

const projectTemplate = `<Project Sdk="Microsoft.NET.Sdk">
  <ItemGroup>
    <PackageReference Include="Foo" Version="1.0.0" />
  </ItemGroup>
</Project>
`

const manifestTemplate = `<?xml version="1.0" encoding="utf-8"?>
<packages>
  <package id="Foo" version="1.0.0" targetFramework="net48" />
</packages>
`

func newWalker() *Walker {
	return NewWalker(patcher.NewProjectPatcher(), config.Default())
}

func newRequest(t *testing.T) *domain.UpdateRequest {
	t.Helper()

	target, err := domain.ParseVersion("1.2.0")
	require.NoError(t, err)

	return &domain.UpdateRequest{
		PackageName:   "Foo",
		TargetVersion: "1.2.0",
		Target:        target,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func fileContains(t *testing.T, path, needle string) bool {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Contains(string(content), needle)
}

func TestScanDirectory(t *testing.T) {
	t.Parallel()

	t.Run("should only process the given directory without recursion", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "App.csproj"), projectTemplate)
		writeFile(t, filepath.Join(root, "sub", "Lib.csproj"), projectTemplate)
		req := newRequest(t)
		progress := domain.NewScanProgress(io.Discard)

		// when
		ok := newWalker().ScanDirectory(root, false, req, progress)

		// then
		assert.True(t, ok)
		assert.Equal(t, 1, progress.FilesVisited)
		assert.True(t, fileContains(t, filepath.Join(root, "App.csproj"), "1.2.0"))
		assert.True(t, fileContains(t, filepath.Join(root, "sub", "Lib.csproj"), "1.0.0"))
	})

	t.Run("should process subdirectories with recursion", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "App.csproj"), projectTemplate)
		writeFile(t, filepath.Join(root, "sub", "Lib.csproj"), projectTemplate)
		req := newRequest(t)
		progress := domain.NewScanProgress(io.Discard)

		// when
		ok := newWalker().ScanDirectory(root, true, req, progress)

		// then
		assert.True(t, ok)
		assert.Equal(t, 2, progress.FilesVisited)
		assert.Equal(t, 2, progress.FilesChanged)
		assert.True(t, fileContains(t, filepath.Join(root, "sub", "Lib.csproj"), "1.2.0"))
	})

	t.Run("should process the secondary manifest after project files", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "packages.config"), manifestTemplate)
		req := newRequest(t)
		progress := domain.NewScanProgress(io.Discard)

		// when
		ok := newWalker().ScanDirectory(root, false, req, progress)

		// then
		assert.True(t, ok)
		assert.True(t, fileContains(t, filepath.Join(root, "packages.config"), "1.2.0"))
	})

	t.Run("should not descend into excluded directories", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "bin", "Cached.csproj"), projectTemplate)
		writeFile(t, filepath.Join(root, "obj", "Cached.csproj"), projectTemplate)
		req := newRequest(t)
		progress := domain.NewScanProgress(io.Discard)

		// when
		ok := newWalker().ScanDirectory(root, true, req, progress)

		// then
		assert.True(t, ok)
		assert.Equal(t, 0, progress.FilesVisited)
		assert.True(t, fileContains(t, filepath.Join(root, "bin", "Cached.csproj"), "1.0.0"))
	})

	t.Run("should ignore unrelated files", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "readme.md"), "# nothing to see")
		req := newRequest(t)
		progress := domain.NewScanProgress(io.Discard)

		// when
		ok := newWalker().ScanDirectory(root, false, req, progress)

		// then
		assert.True(t, ok)
		assert.Equal(t, 0, progress.FilesVisited)
	})

	t.Run("should report failure for an unreadable directory", func(t *testing.T) {
		t.Parallel()

		// given
		root := filepath.Join(t.TempDir(), "missing")
		req := newRequest(t)
		progress := domain.NewScanProgress(io.Discard)

		// when
		ok := newWalker().ScanDirectory(root, true, req, progress)

		// then
		assert.False(t, ok)
		assert.Equal(t, 1, progress.Failures)
	})

	t.Run("should keep processing siblings after a failing file", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "bad", "Broken.csproj"), "<Project><unclosed")
		writeFile(t, filepath.Join(root, "good", "App.csproj"), projectTemplate)
		req := newRequest(t)
		progress := domain.NewScanProgress(io.Discard)

		// when
		ok := newWalker().ScanDirectory(root, true, req, progress)

		// then
		assert.False(t, ok)
		assert.Equal(t, 1, progress.Failures)
		assert.True(t, fileContains(t, filepath.Join(root, "good", "App.csproj"), "1.2.0"))
	})
}

func TestIsProjectFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		file     string
		expected bool
	}{
		{name: "should match csproj", file: "App.csproj", expected: true},
		{name: "should match vbproj", file: "Legacy.vbproj", expected: true},
		{name: "should match case-insensitively", file: "APP.CSPROJ", expected: true},
		{name: "should not match fsproj", file: "Other.fsproj", expected: false},
		{name: "should not match plain xml", file: "data.xml", expected: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// when
			result := isProjectFile(tt.file)

			// then
			assert.Equal(t, tt.expected, result)
		})
	}
}
