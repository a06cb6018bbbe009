package buildver

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Kind selects the write strategy for a target.
type Kind string

const (
	// KindGoSource regenerates a Go constant file wholesale.
	KindGoSource Kind = "gosource"
	// KindManifest splices the value of the first `version = "..."`
	// assignment in a TOML-style manifest, prepending the line when the
	// field is absent.
	KindManifest Kind = "manifest"
	// KindDoc sets a single key in a structured JSON or YAML document,
	// leaving the rest of the document untouched.
	KindDoc Kind = "doc"
)

// Target declares one artifact that carries the version.
type Target struct {
	Name      string    `yaml:"name"`
	Kind      Kind      `yaml:"kind"`
	Path      string    `yaml:"path,omitempty"`
	Paths     []string  `yaml:"paths,omitempty"`
	Rendering Rendering `yaml:"rendering,omitempty"`
	Key       string    `yaml:"key,omitempty"`      // doc targets: key to set, default "version"
	Package   string    `yaml:"package,omitempty"`  // gosource targets: package name when the file is new
	Required  bool      `yaml:"required,omitempty"` // a missing artifact aborts instead of being skipped
	Core      bool      `yaml:"core,omitempty"`     // applied on every bump, not only with --update-all
}

// Apply stamps the version derived from st into every path the target
// names and records the files that actually changed. Missing optional
// artifacts are logged and skipped; missing required artifacts abort.
func (t Target) Apply(root string, st State, changes *Changes, logger zerolog.Logger) error {
	version, err := st.Render(t.Rendering)
	if err != nil {
		return fmt.Errorf("target %s: %w", t.Name, err)
	}

	for _, rel := range t.paths() {
		changed, err := t.applyOne(filepath.Join(root, rel), version)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				if t.Required {
					return fmt.Errorf("%w: %s: %s", ErrMissingRequiredTarget, t.Name, rel)
				}
				logger.Info().
					Str("target", t.Name).
					Str("path", rel).
					Msg("target missing, skipping")
				continue
			}
			return fmt.Errorf("target %s: %s: %w", t.Name, rel, err)
		}
		if changed {
			changes.Add(rel)
			logger.Debug().
				Str("target", t.Name).
				Str("path", rel).
				Str("version", version).
				Msg("target updated")
		} else {
			logger.Debug().
				Str("target", t.Name).
				Str("path", rel).
				Msg("target already current")
		}
	}
	return nil
}

func (t Target) applyOne(path, version string) (bool, error) {
	switch t.Kind {
	case KindGoSource:
		return writeGoSource(path, t.Package, version)
	case KindManifest:
		return spliceManifest(path, version)
	case KindDoc:
		return setDocKey(path, t.key(), version)
	default:
		return false, fmt.Errorf("unknown target kind %q", t.Kind)
	}
}

// paths returns the declared path list, folding the single-path form
// into a one-element slice.
func (t Target) paths() []string {
	if len(t.Paths) > 0 {
		return t.Paths
	}
	return []string{t.Path}
}

func (t Target) key() string {
	if t.Key != "" {
		return t.Key
	}
	return "version"
}

// validate checks a target declaration for the mistakes a hand-edited
// config is likely to contain.
func (t Target) validate() error {
	if t.Name == "" {
		return errors.New("target with empty name")
	}
	if t.Path == "" && len(t.Paths) == 0 {
		return fmt.Errorf("target %s: no path declared", t.Name)
	}
	if t.Path != "" && len(t.Paths) > 0 {
		return fmt.Errorf("target %s: declare path or paths, not both", t.Name)
	}
	switch t.Kind {
	case KindGoSource, KindManifest, KindDoc:
	default:
		return fmt.Errorf("target %s: unknown kind %q", t.Name, t.Kind)
	}
	switch t.Rendering {
	case RenderBare, RenderSemantic, RenderInstaller, "":
	default:
		return fmt.Errorf("target %s: unknown rendering %q", t.Name, t.Rendering)
	}
	return nil
}
