// Package main implements the wfl-version CLI, the single entry point
// for advancing the WFL build version and stamping it into dependent
// artifacts.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/logbie/wfl/internal/log"
	"github.com/logbie/wfl/internal/version"
	buildver "github.com/logbie/wfl/pkg"
)

func usage() {
	msg := `Usage:
  wfl-version [options]

Advances the WFL build counter (YEAR.BUILD) and stamps the new version into
the configured artifacts. Within the same year the build number goes up by
one; a year change resets it to 1. The modified files are committed with
"Bump version to <version> [skip ci]" unless --skip-git is given.

By default only the version state file and the core targets are rewritten.
Use --update-all to stamp every configured artifact, or --target to pick
individual ones. Combined with --skip-bump the selected artifacts are
restamped with the current version instead.

Examples:
  wfl-version
  wfl-version --update-all
  wfl-version --target wix --skip-git
  wfl-version --version-override 2026.12
  wfl-version --skip-bump
  wfl-version --skip-bump --update-all

Options:
`
	fmt.Fprint(os.Stderr, msg)
	flag.PrintDefaults()
}

func main() {
	skipBump := flag.Bool("skip-bump", false, "Keep the current version; with --update-all or --target, restamp it into the selected artifacts")
	updateAll := flag.Bool("update-all", false, "Update every configured target")
	var targets []string
	flag.StringArrayVar(&targets, "target", nil, "Update only the named target. May be repeated.")
	skipGit := flag.Bool("skip-git", false, "Skip the git commit step")
	override := flag.String("version-override", "", "Set the version explicitly as YEAR.BUILD instead of incrementing")
	dryRun := flag.Bool("dry-run", false, "Report what would change without modifying any files")
	configPath := flag.String("config", "", "Path to the tool configuration (default <root>/"+buildver.ConfigFileName+")")
	rootDir := flag.String("root", "", "Project root (default: nearest parent directory containing go.mod)")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show the current WFL version and exit")
	help := flag.Bool("help", false, "Show help message and exit")

	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}
	if *showVersion {
		fmt.Println("wfl-version", version.Version)
		os.Exit(0)
	}

	level := "info"
	if *verbose {
		level = "debug"
	}
	log.Configure(log.Config{Level: level})

	if flag.NArg() > 0 {
		fmt.Fprintln(os.Stderr, "Error: unexpected positional arguments:", flag.Args())
		usage()
		os.Exit(1)
	}

	root := *rootDir
	if root == "" {
		var err error
		root, err = buildver.FindRoot(".")
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
	}

	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = filepath.Join(root, buildver.ConfigFileName)
	}
	cfg, err := buildver.LoadConfig(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	req := buildver.Request{Mode: buildver.Increment}
	if *skipBump {
		req = buildver.Request{Mode: buildver.Skip}
	}
	if *override != "" {
		req = buildver.Request{Mode: buildver.Override, Text: *override}
	}

	sum, err := buildver.Run(buildver.Options{
		Root:      root,
		Config:    cfg,
		Request:   req,
		Targets:   targets,
		UpdateAll: *updateAll,
		SkipGit:   *skipGit,
		DryRun:    *dryRun,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	if *skipBump && !*updateAll && len(targets) == 0 {
		fmt.Println(sum.New.Bare())
		return
	}

	// Summary
	if *dryRun {
		fmt.Println("Dry run complete. No files were modified.")
	} else if *skipBump {
		fmt.Printf("Version unchanged: %s\n", sum.New.Bare())
	} else {
		fmt.Println("Version bump successful!")
	}
	if !*skipBump {
		fmt.Printf("Old Version: %s\n", sum.Old.Bare())
		fmt.Printf("New Version: %s\n", sum.New.Bare())
	}

	if len(sum.Updated) > 0 {
		if *dryRun {
			fmt.Println("Files that would be updated:")
		} else {
			fmt.Println("Files updated:")
		}
		for _, f := range sum.Updated {
			fmt.Printf("  %s\n", f)
		}
	}

	if sum.Committed {
		fmt.Printf("Commit:      %s\n", buildver.CommitMessage(sum.New.Bare()))
	}
}
