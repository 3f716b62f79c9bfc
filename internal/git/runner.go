package git

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	gcerrors "github.com/mkrause/gitcoupling/internal/errors"
)

// run executes a git subcommand with repoPath as working directory and
// returns captured stdout. Arguments are always passed as a discrete list,
// never through a shell, so paths cannot be used for injection.
func run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	if err := validateRepoPath(repoPath); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = repoPath

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		diag := stderr.String()
		// git reports a missing or invalid repository on stderr with exit 128
		if strings.Contains(diag, "not a git repository") {
			return nil, gcerrors.NewRepository(repoPath, err)
		}
		return nil, gcerrors.NewCommand(args, diag, err)
	}
	return stdout.Bytes(), nil
}

// validateRepoPath checks the repository path exists, is a directory, and
// carries no control characters that could confuse the subprocess.
func validateRepoPath(repoPath string) error {
	if repoPath == "" || containsControlChars(repoPath) {
		return gcerrors.NewRepository(repoPath, nil)
	}
	info, err := os.Stat(repoPath)
	if err != nil {
		return gcerrors.NewRepository(repoPath, err)
	}
	if !info.IsDir() {
		return gcerrors.NewRepository(repoPath, nil)
	}
	return nil
}

func containsControlChars(s string) bool {
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return true
		}
	}
	return false
}
