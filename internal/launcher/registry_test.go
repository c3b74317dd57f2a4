package launcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Register(t *testing.T) {
	tests := []struct {
		name        string
		ext         string
		strategy    Strategy
		wantErr     bool
		errContains string
	}{
		{
			name:     "valid registration",
			ext:      ".lua",
			strategy: NewInterpreterStrategy("lua"),
		},
		{
			name:     "without leading dot",
			ext:      "pl",
			strategy: NewInterpreterStrategy("perl"),
		},
		{
			name:        "empty extension",
			ext:         "",
			strategy:    NewInterpreterStrategy("x"),
			wantErr:     true,
			errContains: "cannot be empty",
		},
		{
			name:        "nil strategy",
			ext:         ".x",
			strategy:    nil,
			wantErr:     true,
			errContains: "cannot be nil",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			err := r.Register(tt.ext, tt.strategy)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(".py", NewInterpreterStrategy("python3")))

	err := r.Register("py", NewInterpreterStrategy("python2"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegistry_Lookup(t *testing.T) {
	r := Default()

	tests := []struct {
		name     string
		script   string
		wantBin  string
		wantOK   bool
	}{
		{name: "node script", script: "app/server.js", wantBin: "node", wantOK: true},
		{name: "es module", script: "main.mjs", wantBin: "node", wantOK: true},
		{name: "python script", script: "./worker.py", wantBin: "python3", wantOK: true},
		{name: "shell script", script: "run.sh", wantBin: "sh", wantOK: true},
		{name: "uppercase extension", script: "APP.JS", wantBin: "node", wantOK: true},
		{name: "unknown extension", script: "binary.exe", wantOK: false},
		{name: "no extension", script: "Makefile", wantOK: false},
		{name: "dotfile only", script: ".profile", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy, ok := r.Lookup(tt.script)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.NotNil(t, strategy)
				assert.Equal(t, tt.wantBin, strategy.Name())
			}
		})
	}
}

func TestRegistry_Extensions(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(".js", NewNodeStrategy("")))
	require.NoError(t, r.Register(".py", NewInterpreterStrategy("python3")))

	assert.ElementsMatch(t, []string{"js", "py"}, r.Extensions())
}
