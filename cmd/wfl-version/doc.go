// Package main implements the wfl-version CLI tool.
//
// wfl-version maintains the WFL build version, a YEAR.BUILD counter kept
// in the .build_meta.json state file at the project root. Each run
// advances the counter (same year: build+1, new year: 1), rewrites the
// artifacts that carry the version, and commits exactly the files it
// modified with the message "Bump version to <version> [skip ci]".
//
// Every artifact expects its own textual shape of the same counter:
//
//	internal/version/version.go  2026.34      (generated constant)
//	wix.toml                     2026.34.0.0  (installer metadata)
//	nfpm.yaml                    2026.34.0    (Linux packaging)
//	*/package.json               2026.34.0    (editor extensions)
//
// The target set, state file location and committer identity come from
// .wflrelease.yaml at the project root; without the file the stock WFL
// layout above is assumed.
//
// Command Usage:
//
//	wfl-version [flags]
//
// Flags:
//
//	--skip-bump:        Keep the current version. Alone this prints it
//	                    and exits without modifying anything; combined
//	                    with --update-all or --target the selected
//	                    artifacts are restamped with it.
//	--update-all:       Stamp every configured target, not only the core
//	                    set.
//	--target:           Stamp only the named target (plus the core set).
//	                    May be used multiple times.
//	--skip-git:         Leave the git commit step out. File edits still
//	                    happen.
//	--version-override: Set the counter to an explicit YEAR.BUILD pair
//	                    instead of incrementing. No monotonicity check is
//	                    applied.
//	--dry-run:          Report the files a run would touch without
//	                    writing anything.
//	--config:           Path to the tool configuration file.
//	--root:             Project root. Defaults to the nearest parent
//	                    directory containing go.mod.
//	--verbose:          Enable debug logging on stderr.
//	--version:          Print the current WFL version the tool was built
//	                    with and exit.
//
// Examples:
//
//	# Advance the counter and rewrite the core targets
//	wfl-version
//
//	# Advance the counter and stamp every artifact
//	wfl-version --update-all
//
//	# Stamp only the installer manifest, without committing
//	wfl-version --target wix --skip-git
//
//	# Force a specific version (e.g. after a botched release)
//	wfl-version --version-override 2026.12
//
//	# What is the current version?
//	wfl-version --skip-bump
//
//	# Rewrite drifted artifacts to the recorded version, no bump
//	wfl-version --skip-bump --update-all
//
// Exit status is 0 on success and 1 on any failure. A failure after
// files were written leaves those edits on disk; rerunning after the
// cause is fixed converges because every writer is idempotent.
package main
