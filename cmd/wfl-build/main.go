// Package main implements wfl-build, the release build launcher. It
// optionally advances the build version, runs the platform build, and
// appends a progress record for every attempt.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/logbie/wfl/internal/log"
	"github.com/logbie/wfl/internal/version"
	buildver "github.com/logbie/wfl/pkg"
)

func usage() {
	msg := `Usage:
  wfl-build [options]

Builds the WFL installer. With --bump-version the build counter is advanced
first and every versioned artifact is restamped (the commit is left to the
release workflow). Each attempt is recorded in the dated progress document
under the configured docs directory.

Examples:
  wfl-build
  wfl-build --bump-version
  wfl-build --version-override 2026.12 --skip-tests
  wfl-build --output-dir C:\releases

Options:
`
	fmt.Fprint(os.Stderr, msg)
	flag.PrintDefaults()
}

func main() {
	bumpVersion := flag.Bool("bump-version", false, "Advance the build version before building")
	override := flag.String("version-override", "", "Set the version explicitly as YEAR.BUILD (implies --bump-version)")
	outputDir := flag.String("output-dir", "", "Directory the installer artifact lands in (overrides the configured location)")
	skipTests := flag.Bool("skip-tests", false, "Skip the test run before building")
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
		fmt.Println("wfl-build", version.Version)
		os.Exit(0)
	}

	level := "info"
	if *verbose {
		level = "debug"
	}
	log.Configure(log.Config{Level: level})
	logger := log.WithComponent("launcher")

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

	if cfg.Build.RequiresOS != "" && runtime.GOOS != cfg.Build.RequiresOS {
		fmt.Fprintf(os.Stderr, "Error: this build requires %s, running on %s\n", cfg.Build.RequiresOS, runtime.GOOS)
		os.Exit(1)
	}

	// Bump first so the build embeds the new version. The commit is
	// deliberately skipped: the release workflow commits the whole
	// result, installer checksums included.
	if *bumpVersion || *override != "" {
		req := buildver.Request{Mode: buildver.Increment}
		if *override != "" {
			req = buildver.Request{Mode: buildver.Override, Text: *override}
		}
		sum, err := buildver.Run(buildver.Options{
			Root:      root,
			Config:    cfg,
			Request:   req,
			UpdateAll: true,
			SkipGit:   true,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		fmt.Printf("Version bumped: %s -> %s\n", sum.Old.Bare(), sum.New.Bare())
	}

	vers, err := buildver.CurrentVersion(root, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	artifact := strings.ReplaceAll(cfg.Build.Artifact, "{version}", vers)
	if *outputDir != "" {
		artifact = filepath.Join(*outputDir, filepath.Base(artifact))
	}

	env := append(os.Environ(),
		"WFL_VERSION="+vers,
		"WFL_ARTIFACT="+artifact,
	)

	if !*skipTests && len(cfg.Build.TestCommand) > 0 {
		logger.Info().Strs("command", cfg.Build.TestCommand).Msg("running tests")
		if err := runCommand(root, cfg.Build.TestCommand, env); err != nil {
			fmt.Fprintln(os.Stderr, "Error: tests failed:", err)
			os.Exit(1)
		}
	}

	if len(cfg.Build.Command) == 0 {
		fmt.Fprintln(os.Stderr, "Error: build.command is not configured")
		os.Exit(1)
	}

	logger.Info().Strs("command", cfg.Build.Command).Str("version", vers).Msg("running build")
	buildErr := runCommand(root, cfg.Build.Command, env)

	status := "SUCCESS"
	if buildErr != nil {
		status = "FAILED"
	}
	recordPath, recErr := appendProgressRecord(filepath.Join(root, cfg.Build.DocsDir), vers, status, artifact, time.Now())
	if recErr != nil {
		logger.Error().Err(recErr).Msg("writing progress record")
	}

	if buildErr != nil {
		fmt.Fprintln(os.Stderr, "Error: build failed:", buildErr)
		os.Exit(1)
	}

	fmt.Println("Build successful!")
	fmt.Printf("Version:  %s\n", vers)
	fmt.Printf("Artifact: %s\n", artifact)
	if recErr == nil {
		fmt.Printf("Progress: %s\n", relToRoot(root, recordPath))
	}
}

// runCommand runs argv from the project root, streaming output to the
// caller's terminal.
func runCommand(root string, argv []string, env []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = root
	cmd.Env = env
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// appendProgressRecord appends a build attempt to the dated progress
// document, creating the document with a title on first write. The
// artifact line is written only for successful builds. It returns the
// document path.
func appendProgressRecord(docsDir, version, status, artifact string, now time.Time) (string, error) {
	if err := os.MkdirAll(docsDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(docsDir, "implementation_progress_"+now.Format("2006-01-02")+".md")

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if fi, err := f.Stat(); err == nil && fi.Size() == 0 {
		if _, err := fmt.Fprintf(f, "# Implementation Progress: %s\n", now.Format("2006-01-02")); err != nil {
			return "", err
		}
	}
	if _, err := fmt.Fprintf(f, "\n## MSI Build - %s\n- Version: %s\n- Status: %s\n",
		now.Format("15:04:05"), version, status); err != nil {
		return "", err
	}
	if status == "SUCCESS" {
		if _, err := fmt.Fprintf(f, "- Output: `%s`\n", artifact); err != nil {
			return "", err
		}
	}
	return path, nil
}

func relToRoot(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}
