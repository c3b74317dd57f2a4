package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))
}

func TestMainScript(t *testing.T) {
	t.Run("resolves main against the directory", func(t *testing.T) {
		dir := t.TempDir()
		writeManifest(t, dir, `{"name": "app", "main": "src/index.js"}`)

		script, ok := MainScript(dir)
		require.True(t, ok)
		assert.Equal(t, filepath.Join(dir, "src", "index.js"), script)
	})

	t.Run("absolute main is kept as-is", func(t *testing.T) {
		dir := t.TempDir()
		writeManifest(t, dir, `{"main": "/opt/app/index.js"}`)

		script, ok := MainScript(dir)
		require.True(t, ok)
		assert.Equal(t, "/opt/app/index.js", script)
	})

	t.Run("missing manifest", func(t *testing.T) {
		_, ok := MainScript(t.TempDir())
		assert.False(t, ok)
	})

	t.Run("invalid JSON is swallowed", func(t *testing.T) {
		dir := t.TempDir()
		writeManifest(t, dir, `{"main": `)

		_, ok := MainScript(dir)
		assert.False(t, ok)
	})

	t.Run("missing main field", func(t *testing.T) {
		dir := t.TempDir()
		writeManifest(t, dir, `{"name": "app"}`)

		_, ok := MainScript(dir)
		assert.False(t, ok)
	})

	t.Run("blank main field", func(t *testing.T) {
		dir := t.TempDir()
		writeManifest(t, dir, `{"main": "   "}`)

		_, ok := MainScript(dir)
		assert.False(t, ok)
	})

	t.Run("non-string main is swallowed", func(t *testing.T) {
		dir := t.TempDir()
		writeManifest(t, dir, `{"main": 42}`)

		// gjson stringifies the number; resolution yields a path the
		// launcher will reject as an unknown script type
		script, ok := MainScript(dir)
		assert.True(t, ok)
		assert.Equal(t, filepath.Join(dir, "42"), script)
	})
}
