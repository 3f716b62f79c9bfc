package git

import (
	"context"
	"strings"

	gcerrors "github.com/mkrause/gitcoupling/internal/errors"
)

// RemoteURL returns the repository's configured origin URL with any
// trailing ".git" suffix stripped. Fails when no remote is configured:
// git config exits non-zero for an unset key.
func RemoteURL(ctx context.Context, repoPath string) (string, error) {
	out, err := run(ctx, repoPath, "config", "--get", "remote.origin.url")
	if err != nil {
		return "", err
	}
	url := strings.TrimSpace(string(out))
	if url == "" {
		return "", gcerrors.NewCommand([]string{"config", "--get", "remote.origin.url"}, "", nil).
			WithContext("reason", "remote origin not configured")
	}
	return strings.TrimSuffix(url, ".git"), nil
}
