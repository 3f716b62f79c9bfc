package coupling

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gcerrors "github.com/mkrause/gitcoupling/internal/errors"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func TestCountFileLines(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"terminated lines", "a\nb\nc\n", 3},
		{"no trailing newline", "a\nb\nc", 3},
		{"single unterminated line", "hello", 1},
		{"empty file counts as one", "", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeFile(t, dir, tt.name, tt.content)
			n, err := countFileLines(filepath.Join(dir, tt.name))
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestCountLinesPool(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.txt", "1\n")
	writeFile(t, dir, "sub/three.txt", "1\n2\n3\n")

	counts, anomalies := CountLines(context.Background(), dir,
		[]string{"one.txt", "sub/three.txt"}, 4)

	assert.Empty(t, anomalies)
	assert.Equal(t, map[string]int{"one.txt": 1, "sub/three.txt": 3}, counts)
}

func TestCountLinesMissingFileIsIsolated(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ok.txt", "1\n2\n")

	counts, anomalies := CountLines(context.Background(), dir,
		[]string{"ok.txt", "missing.txt"}, 2)

	// sibling unaffected, missing file degraded with sentinel
	assert.Equal(t, 2, counts["ok.txt"])
	assert.Equal(t, 1, counts["missing.txt"])
	require.Len(t, anomalies, 1)
	assert.Equal(t, "missing.txt", anomalies[0].Path)
	assert.True(t, gcerrors.IsFileAccess(anomalies[0].Err))
}

func TestCountLinesDefaultWorkerBound(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "x\n")

	counts, anomalies := CountLines(context.Background(), dir, []string{"a.txt"}, 0)
	assert.Empty(t, anomalies)
	assert.Equal(t, 1, counts["a.txt"])
}
