package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		path := writeConfig(t, `
processes:
  - name: web
    script: ./server.js
    log: web.log
    args: ["--port", "8080"]
    env:
      NODE_ENV: production
  - name: worker
    dir: ./jobs
`)

		cfg, err := Load(path)
		require.NoError(t, err)
		require.Len(t, cfg.Processes, 2)

		web := cfg.Processes[0]
		assert.Equal(t, "web", web.Name)
		assert.Equal(t, "./server.js", web.Script)
		assert.Equal(t, "web.log", web.Log)
		assert.Equal(t, []string{"--port", "8080"}, web.Args)
		assert.Equal(t, "production", web.Env["NODE_ENV"])

		worker := cfg.Processes[1]
		assert.Equal(t, "worker", worker.Name)
		assert.Empty(t, worker.Script)
		assert.Equal(t, "./jobs", worker.Dir)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeConfig(t, "processes: [not closed")
		_, err := Load(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse")
	})

	t.Run("no processes", func(t *testing.T) {
		path := writeConfig(t, "processes: []")
		_, err := Load(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no processes defined")
	})

	t.Run("process without name", func(t *testing.T) {
		path := writeConfig(t, `
processes:
  - script: ./server.js
`)
		_, err := Load(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")
	})

	t.Run("process without script or dir", func(t *testing.T) {
		path := writeConfig(t, `
processes:
  - name: empty
`)
		_, err := Load(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "either script or dir is required")
	})
}

func TestProcessConfig_Options(t *testing.T) {
	p := ProcessConfig{
		Name:   "web",
		Script: "./server.js",
		Dir:    "/srv/app",
		Log:    "web.log",
		Args:   []string{"--verbose"},
		Env:    map[string]string{"PORT": "8080"},
	}

	opts := p.Options()
	assert.Equal(t, p.Name, opts.Name)
	assert.Equal(t, p.Script, opts.Script)
	assert.Equal(t, p.Dir, opts.Dir)
	assert.Equal(t, p.Log, opts.Log)
	assert.Equal(t, p.Args, opts.Args)
	assert.Equal(t, p.Env, opts.Env)
	assert.Nil(t, opts.OnExit)
}
