package buildver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/mod/modfile"

	"github.com/logbie/wfl/internal/log"
)

// Options configures a Run.
type Options struct {
	Root      string // project root; resolved with FindRoot when empty
	Config    Config
	Request   Request
	Targets   []string // named targets to apply; core targets are always included
	UpdateAll bool     // apply every configured target
	SkipGit   bool     // leave the commit gate closed
	DryRun    bool     // compute and report without writing anything

	// Now supplies the clock for year-change detection. Tests pin it;
	// nil means time.Now.
	Now func() time.Time
}

// Summary reports what a Run did, or for dry runs, would do.
type Summary struct {
	Old       State
	New       State
	Bumped    bool     // false when the request was Skip
	Updated   []string // root-relative paths written, in write order
	Committed bool
}

// Run executes the version pipeline: load the counter, compute its
// successor, persist it, stamp the dependent artifacts, and commit the
// modified files. A Skip request stops after the load unless targets
// are selected; with a selection the writers rerun with the unchanged
// version, realigning drifted artifacts. The sequence is strictly
// ordered; the lock on the state file keeps concurrent invocations
// from interleaving.
func Run(opts Options) (Summary, error) {
	var sum Summary
	logger := log.WithComponent("engine")

	root := opts.Root
	if root == "" {
		var err error
		root, err = FindRoot(".")
		if err != nil {
			return sum, err
		}
	}

	if err := verifyModule(root, opts.Config.Module); err != nil {
		return sum, err
	}

	store := NewStore(filepath.Join(root, opts.Config.StateFile))

	// Target selection turns a Skip into a restamp: the counter stays
	// put but the selected writers still run.
	restamp := opts.UpdateAll || len(opts.Targets) > 0

	readOnly := opts.DryRun || (opts.Request.Mode == Skip && !restamp)
	if !readOnly {
		release, err := store.Lock()
		if err != nil {
			return sum, err
		}
		defer release()
	}

	cur, err := store.Load()
	if err != nil {
		return sum, err
	}
	sum.Old = cur

	if opts.Request.Mode == Skip && !restamp {
		sum.New = cur
		logger.Debug().Str("version", cur.Bare()).Msg("skip requested, counter unchanged")
		return sum, nil
	}

	if !opts.SkipGit && !opts.DryRun {
		if err := checkGit(); err != nil {
			return sum, err
		}
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	next, err := Next(cur, now().Year(), opts.Request)
	if err != nil {
		return sum, err
	}
	sum.New = next
	sum.Bumped = opts.Request.Mode != Skip

	targets, err := selectTargets(opts.Config, opts)
	if err != nil {
		return sum, err
	}

	changes := NewChanges()

	if opts.DryRun {
		if opts.Request.Mode != Skip {
			changes.Add(opts.Config.StateFile)
		}
		for _, t := range targets {
			for _, rel := range t.paths() {
				if t.Kind == KindGoSource {
					changes.Add(rel)
					continue
				}
				if _, err := os.Stat(filepath.Join(root, rel)); err == nil {
					changes.Add(rel)
				}
			}
		}
		sum.Updated = changes.Paths()
		return sum, nil
	}

	changed, err := store.Save(next)
	if err != nil {
		return sum, err
	}
	if changed {
		changes.Add(opts.Config.StateFile)
	}

	for _, t := range targets {
		if err := t.Apply(root, next, changes, logger); err != nil {
			return sum, err
		}
	}
	sum.Updated = changes.Paths()

	if opts.SkipGit || changes.Len() == 0 {
		logger.Info().
			Str("version", next.Bare()).
			Int("files", changes.Len()).
			Bool("committed", false).
			Msg("version pipeline complete")
		return sum, nil
	}

	if err := gitCommit(root, changes.Paths(), next.Bare(), opts.Config.Git); err != nil {
		return sum, err
	}
	sum.Committed = true
	logger.Info().
		Str("version", next.Bare()).
		Int("files", changes.Len()).
		Bool("committed", true).
		Msg("version pipeline complete")
	return sum, nil
}

// CurrentVersion reports the counter's bare rendering without modifying
// anything.
func CurrentVersion(root string, cfg Config) (string, error) {
	return NewStore(filepath.Join(root, cfg.StateFile)).CurrentVersionText()
}

// selectTargets resolves the target set for this run: every configured
// target with UpdateAll, otherwise the named ones plus the core set.
// Core targets are stamped on every bump so the version constant can
// never drift from the counter. Config order is preserved.
func selectTargets(cfg Config, opts Options) ([]Target, error) {
	named := make(map[string]bool, len(opts.Targets))
	for _, name := range opts.Targets {
		if _, ok := cfg.Target(name); !ok {
			return nil, fmt.Errorf("unknown target %q", name)
		}
		named[name] = true
	}

	var out []Target
	for _, t := range cfg.Targets {
		if opts.UpdateAll || t.Core || named[t.Name] {
			out = append(out, t)
		}
	}
	return out, nil
}

// FindRoot walks up from startDir until it finds go.mod and returns the
// containing directory. The pipeline always runs relative to the module
// root so the root-relative target paths resolve.
func FindRoot(startDir string) (string, error) {
	d, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(d, "go.mod")); err == nil {
			return d, nil
		}
		parent := filepath.Dir(d)
		if parent == d {
			break
		}
		d = parent
	}
	return "", fmt.Errorf("no go.mod found above %s", startDir)
}

// verifyModule refuses to run against a checkout whose go.mod names a
// different module than the configuration expects. An empty expectation
// disables the check.
func verifyModule(root, want string) error {
	if want == "" {
		return nil
	}
	data, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err != nil {
		return fmt.Errorf("reading go.mod: %w", err)
	}
	f, err := modfile.Parse("go.mod", data, nil)
	if err != nil {
		return fmt.Errorf("parsing go.mod: %w", err)
	}
	if f.Module == nil {
		return errors.New("module directive not found in go.mod")
	}
	if f.Module.Mod.Path != want {
		return fmt.Errorf("go.mod module is %s, expected %s", f.Module.Mod.Path, want)
	}
	return nil
}
