package buildver

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
)

// checkGit verifies that git is available on the system.
func checkGit() error {
	cmd := exec.Command("git", "--version")
	if err := cmd.Run(); err != nil {
		return errors.New("git is not available on the system")
	}
	return nil
}

// CommitMessage returns the fixed commit message for a version bump. The
// format is part of the tool's contract: release automation greps for it,
// and the [skip ci] marker keeps the commit from triggering another CI
// run. version is the bare rendering.
func CommitMessage(version string) string {
	return fmt.Sprintf("Bump version to %s [skip ci]", version)
}

// gitCommit stages exactly the given files and commits them. The
// identity is passed per invocation with -c so nothing is written to the
// repository configuration. Failures wrap ErrCommitFailed; the file
// edits made before the failure stay on disk.
func gitCommit(root string, files []string, version string, id GitIdentity) error {
	addArgs := append([]string{"add", "--"}, files...)
	addCmd := exec.Command("git", addArgs...)
	addCmd.Dir = root
	var stderr bytes.Buffer
	addCmd.Stderr = &stderr
	if err := addCmd.Run(); err != nil {
		return fmt.Errorf("%w: git add: %v, detail: %s", ErrCommitFailed, err, stderr.String())
	}

	commitArgs := []string{}
	if id.Name != "" {
		commitArgs = append(commitArgs, "-c", "user.name="+id.Name)
	}
	if id.Email != "" {
		commitArgs = append(commitArgs, "-c", "user.email="+id.Email)
	}
	commitArgs = append(commitArgs, "commit", "-m", CommitMessage(version))

	commitCmd := exec.Command("git", commitArgs...)
	commitCmd.Dir = root
	stderr.Reset()
	commitCmd.Stderr = &stderr
	if err := commitCmd.Run(); err != nil {
		return fmt.Errorf("%w: git commit: %v, detail: %s", ErrCommitFailed, err, stderr.String())
	}
	return nil
}
