package git

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// initTestRepo creates a throwaway git repository under t.TempDir.
func initTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
	dir := t.TempDir()
	gitRun(t, dir, "", "init", "-q")
	gitRun(t, dir, "", "config", "user.name", "Test Author")
	gitRun(t, dir, "", "config", "user.email", "test@example.com")
	return dir
}

// gitRun executes git in dir, optionally pinning author and committer
// dates to the given ISO-8601 timestamp for deterministic histories.
func gitRun(t *testing.T, dir, isoDate string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = os.Environ()
	if isoDate != "" {
		cmd.Env = append(cmd.Env,
			"GIT_AUTHOR_DATE="+isoDate,
			"GIT_COMMITTER_DATE="+isoDate,
		)
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

var commitSeq int

// commitFiles bumps each file's content, stages exactly those paths and
// commits them with the given timestamp and message.
func commitFiles(t *testing.T, dir, isoDate, message string, paths ...string) {
	t.Helper()
	commitSeq++
	for _, p := range paths {
		full := filepath.Join(dir, p)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		content := fmt.Sprintf("revision %d of %s\n", commitSeq, p)
		f, err := os.OpenFile(full, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.WriteString(content); err != nil {
			t.Fatal(err)
		}
		f.Close()
	}
	gitRun(t, dir, "", append([]string{"add", "--"}, paths...)...)
	gitRun(t, dir, isoDate, "commit", "-q", "-m", message)
}
