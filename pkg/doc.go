// Package buildver manages the WFL build version: a year.build counter
// persisted in a small JSON state file and stamped into every artifact
// that carries the version.
//
// It provides functionalities for:
//   - Loading and saving the persistent (year, build) counter.
//   - Computing the next counter value: incrementing within a year,
//     resetting to 1 on a year change, or adopting an explicit override.
//   - Deriving the textual renderings artifacts expect: "2026.34",
//     "2026.34.0" and "2026.34.0.0".
//   - Rewriting the artifacts themselves: a generated Go constant file,
//     TOML-style manifests and JSON/YAML documents, each edited in place
//     and only when the content actually changes.
//   - Committing exactly the modified files with a fixed, CI-safe
//     commit message.
//
// The package backs the wfl-version and wfl-build commands (in the cmd
// folder) and can be embedded programmatically:
//
//	import (
//	    "log"
//
//	    buildver "github.com/logbie/wfl/pkg"
//	)
//
//	func main() {
//	    sum, err := buildver.Run(buildver.Options{
//	        Config:  buildver.DefaultConfig(),
//	        Request: buildver.Request{Mode: buildver.Increment},
//	    })
//	    if err != nil {
//	        log.Fatalf("version bump failed: %v", err)
//	    }
//	    log.Printf("bumped to %s", sum.New.Bare())
//	}
package buildver
