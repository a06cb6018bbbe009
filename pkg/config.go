package buildver

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the tool configuration file, looked up at the
// project root.
const ConfigFileName = ".wflrelease.yaml"

// GitIdentity is the committer identity for version commits. It is
// applied per invocation with `git -c`; the repository configuration is
// never modified.
type GitIdentity struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// BuildConfig drives the wfl-build launcher.
type BuildConfig struct {
	Command     []string `yaml:"command"`      // build subprocess, run from the project root
	TestCommand []string `yaml:"test_command"` // test subprocess, run before the build
	Artifact    string   `yaml:"artifact"`     // produced installer path, {version} expands to the bare version
	RequiresOS  string   `yaml:"requires_os"`  // GOOS the build is restricted to, empty for any
	DocsDir     string   `yaml:"docs_dir"`     // progress records land here
}

// Config is the tool configuration. Fields left out of the file keep
// their defaults.
type Config struct {
	Module    string      `yaml:"module"` // expected module path of the checkout, verified against go.mod
	StateFile string      `yaml:"state_file"`
	Git       GitIdentity `yaml:"git"`
	Targets   []Target    `yaml:"targets"`
	Build     BuildConfig `yaml:"build"`
}

// DefaultConfig returns the stock WFL configuration, used verbatim when
// no config file exists.
func DefaultConfig() Config {
	return Config{
		Module:    "github.com/logbie/wfl",
		StateFile: ".build_meta.json",
		Git: GitIdentity{
			Name:  "github-actions",
			Email: "github-actions@github.com",
		},
		Targets: []Target{
			{
				Name:      "gosrc",
				Kind:      KindGoSource,
				Path:      "internal/version/version.go",
				Rendering: RenderBare,
				Required:  true,
				Core:      true,
			},
			{
				Name:      "wix",
				Kind:      KindManifest,
				Path:      "wix.toml",
				Rendering: RenderInstaller,
			},
			{
				Name:      "nfpm",
				Kind:      KindDoc,
				Path:      "nfpm.yaml",
				Rendering: RenderSemantic,
			},
			{
				Name: "extensions",
				Kind: KindDoc,
				Paths: []string{
					"vscode-extension/package.json",
					"editors/vscode-wfl/package.json",
				},
				Rendering: RenderSemantic,
			},
		},
		Build: BuildConfig{
			Command:     []string{"make", "msi"},
			TestCommand: []string{"make", "test"},
			Artifact:    "dist/wfl-{version}.msi",
			RequiresOS:  "windows",
			DocsDir:     "Docs",
		},
	}
}

// LoadConfig reads the configuration at path, layering file values over
// the defaults. A missing file yields the defaults unchanged. Unknown
// keys are rejected so typos do not silently fall back to defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Target returns the named target declaration.
func (c Config) Target(name string) (Target, bool) {
	for _, t := range c.Targets {
		if t.Name == name {
			return t, true
		}
	}
	return Target{}, false
}

func (c Config) validate() error {
	if c.StateFile == "" {
		return errors.New("state_file must not be empty")
	}
	seen := make(map[string]struct{}, len(c.Targets))
	for _, t := range c.Targets {
		if err := t.validate(); err != nil {
			return err
		}
		if _, dup := seen[t.Name]; dup {
			return fmt.Errorf("duplicate target %s", t.Name)
		}
		seen[t.Name] = struct{}{}
	}
	return nil
}
