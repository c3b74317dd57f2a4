// Package manifest resolves a directory's primary entry-point script from
// its package.json, used only when a launch request carries no explicit
// script path.
package manifest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

// FileName is the manifest file expected at the root of a working directory.
const FileName = "package.json"

// MainScript returns the manifest's main entry point resolved against dir.
// Every failure mode — missing file, unreadable file, invalid JSON, absent
// or empty "main" field — reports "not found" rather than an error: the
// caller is expected to fall through to its own "no script given" handling.
func MainScript(dir string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		return "", false
	}

	if !gjson.ValidBytes(data) {
		return "", false
	}

	main := strings.TrimSpace(gjson.GetBytes(data, "main").String())
	if main == "" {
		return "", false
	}

	if filepath.IsAbs(main) {
		return main, true
	}
	return filepath.Join(dir, main), true
}
