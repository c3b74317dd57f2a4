// Package config provides loading of procmux process definitions.
package config

import "github.com/aki/procmux/internal/supervisor"

// DefaultFileName is the conventional configuration file name.
const DefaultFileName = "procmux.yaml"

// Config is the root of a procmux configuration file.
type Config struct {
	Processes []ProcessConfig `yaml:"processes"`
}

// ProcessConfig defines one supervised process.
type ProcessConfig struct {
	// Name addresses the process for stop/restart operations
	Name string `yaml:"name"`

	// Script is the path of the script to run. Optional when Dir holds
	// a manifest with an entry point.
	Script string `yaml:"script,omitempty"`

	// Dir is the working directory, also used for manifest resolution
	Dir string `yaml:"dir,omitempty"`

	// Log is a file path output is appended to; empty inherits the
	// supervisor's streams
	Log string `yaml:"log,omitempty"`

	Args []string          `yaml:"args,omitempty"`
	Env  map[string]string `yaml:"env,omitempty"`
}

// Options converts the definition into supervisor launch options.
func (p ProcessConfig) Options() supervisor.Options {
	return supervisor.Options{
		Name:   p.Name,
		Script: p.Script,
		Dir:    p.Dir,
		Log:    p.Log,
		Args:   p.Args,
		Env:    p.Env,
	}
}
