package buildver

import "errors"

// Sentinel errors returned by the version pipeline. Callers match them
// with errors.Is; wrapped forms carry the offending path or input.
var (
	// ErrMissingState is returned when the version state file does not
	// exist. The state file is committed alongside the code it versions,
	// so an absent file means the tool is running in the wrong place.
	ErrMissingState = errors.New("version state file not found")

	// ErrCorruptState is returned when the state file exists but does
	// not parse into a non-negative year and build pair.
	ErrCorruptState = errors.New("version state file is corrupt")

	// ErrInvalidOverride is returned when an explicit version override
	// does not parse as two dot-separated non-negative integers.
	ErrInvalidOverride = errors.New("invalid version override")

	// ErrMissingRequiredTarget is returned when a required target
	// artifact cannot be found. Optional targets are skipped instead.
	ErrMissingRequiredTarget = errors.New("required version target missing")

	// ErrCommitFailed is returned when staging or committing the
	// modified files fails. File edits are not rolled back.
	ErrCommitFailed = errors.New("git commit failed")
)
