package buildver

import (
	"bytes"
	"fmt"
	"os"
	"regexp"

	"github.com/google/renameio/v2"
)

var manifestVersionRe = regexp.MustCompile(`(?m)^(\s*version\s*=\s*)"[^"]*"`)

// spliceManifest replaces the value of the first version assignment in a
// TOML-style manifest, keeping every other byte intact. When no version
// field exists, one is prepended so the artifact still carries the stamp.
func spliceManifest(path, version string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	var next []byte
	if loc := manifestVersionRe.FindSubmatchIndex(content); loc != nil {
		next = append(next, content[:loc[3]]...)
		next = append(next, fmt.Sprintf("%q", version)...)
		next = append(next, content[loc[1]:]...)
	} else {
		next = append([]byte(fmt.Sprintf("version = %q\n", version)), content...)
	}

	if bytes.Equal(content, next) {
		return false, nil
	}
	if err := renameio.WriteFile(path, next, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
