package buildver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/google/renameio/v2"
)

var packageRe = regexp.MustCompile(`(?m)^package\s+(\w+)`)

// goSourcePackage returns the package name for the generated constant
// file: the declared package of the existing file when there is one,
// otherwise the configured fallback, otherwise "version".
func goSourcePackage(path, fallback string) string {
	if data, err := os.ReadFile(path); err == nil {
		if m := packageRe.FindSubmatch(data); m != nil {
			return string(m[1])
		}
	}
	if fallback != "" {
		return fallback
	}
	return "version"
}

// writeGoSource regenerates the version constant file wholesale. The
// file is created when absent, but its parent directory must already
// exist: the directory belongs to the source tree being versioned, and
// this writer never scaffolds one.
func writeGoSource(path, pkgFallback, version string) (bool, error) {
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, fmt.Errorf("directory %s: %w", dir, fs.ErrNotExist)
		}
		return false, err
	}

	content := fmt.Sprintf(`// Code generated by wfl-version. DO NOT EDIT.

package %s

// Version is the canonical WFL build version, in YEAR.BUILD form.
const Version = %q
`, goSourcePackage(path, pkgFallback), version)

	old, err := os.ReadFile(path)
	if err == nil && string(old) == content {
		return false, nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	if err := renameio.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, err
	}
	return true, nil
}
