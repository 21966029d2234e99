package patcher //nolint:testpackage // exercises the unexported normalization pass

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLines(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "App.csproj")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestExpandEmptyTagPairs(t *testing.T) {
	t.Parallel()

	t.Run("should split a collapsed empty pair onto two lines", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeLines(t, "<Project>\r\n  <PropertyGroup></PropertyGroup>\r\n</Project>\r\n")

		// when
		err := expandEmptyTagPairs(path)

		// then
		require.NoError(t, err)
		content, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t,
			"<Project>\r\n  <PropertyGroup>\r\n  </PropertyGroup>\r\n</Project>\r\n",
			string(content),
		)
	})

	t.Run("should retain attributes on the opening tag", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeLines(t, "  <ItemGroup Condition=\"'$(x)' == ''\"></ItemGroup>\r\n")

		// when
		err := expandEmptyTagPairs(path)

		// then
		require.NoError(t, err)
		content, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t,
			"  <ItemGroup Condition=\"'$(x)' == ''\">\r\n  </ItemGroup>\r\n",
			string(content),
		)
	})

	t.Run("should leave a mismatched pair untouched", func(t *testing.T) {
		t.Parallel()

		// given
		original := "  <Open></Close>\r\n"
		path := writeLines(t, original)

		// when
		err := expandEmptyTagPairs(path)

		// then
		require.NoError(t, err)
		content, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, original, string(content))
	})

	t.Run("should not rewrite a file without collapsed pairs", func(t *testing.T) {
		t.Parallel()

		// given
		original := "<Project>\r\n  <PackageReference Include=\"Foo\" Version=\"1.0.0\"/>\r\n</Project>\r\n"
		path := writeLines(t, original)
		info, err := os.Stat(path)
		require.NoError(t, err)

		// when
		normErr := expandEmptyTagPairs(path)

		// then
		require.NoError(t, normErr)
		content, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, original, string(content))
		after, statErr := os.Stat(path)
		require.NoError(t, statErr)
		assert.Equal(t, info.ModTime(), after.ModTime())
	})

	t.Run("should leave no temporary file behind", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeLines(t, "  <PropertyGroup></PropertyGroup>\r\n")

		// when
		err := expandEmptyTagPairs(path)

		// then
		require.NoError(t, err)
		entries, readErr := os.ReadDir(filepath.Dir(path))
		require.NoError(t, readErr)
		assert.Len(t, entries, 1)
	})

	t.Run("should not match a line with element content", func(t *testing.T) {
		t.Parallel()

		// given
		original := "  <Version>1.0.0</Version>\r\n"
		path := writeLines(t, original)

		// when
		err := expandEmptyTagPairs(path)

		// then
		require.NoError(t, err)
		content, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, original, string(content))
	})

	t.Run("should fail for a missing file", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "missing.csproj")

		// when
		err := expandEmptyTagPairs(path)

		// then
		require.Error(t, err)
	})
}
