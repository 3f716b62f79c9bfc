package coupling

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	gcerrors "github.com/mkrause/gitcoupling/internal/errors"
)

// DefaultLOCWorkers bounds the line-counting pool when the caller does not
// configure one.
const DefaultLOCWorkers = 8

// Anomaly records a file whose lines could not be counted. Non-fatal: the
// file keeps a sentinel line count and the run continues.
type Anomaly struct {
	Path string
	Err  error
}

// CountLines streams every file under root and counts line terminators,
// fanning out across a bounded worker pool. An unreadable file yields a
// sentinel count of 1 so downstream sizing never degenerates, plus an
// Anomaly entry; sibling files are unaffected.
func CountLines(ctx context.Context, root string, paths []string, workers int) (map[string]int, []Anomaly) {
	if workers <= 0 {
		workers = DefaultLOCWorkers
	}

	counts := make(map[string]int, len(paths))
	var anomalies []Anomaly
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, p := range paths {
		p := p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return nil
			}
			n, err := countFileLines(filepath.Join(root, p))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				counts[p] = 1 // sentinel
				anomalies = append(anomalies, Anomaly{Path: p, Err: gcerrors.NewFileAccess(p, err)})
				return nil
			}
			counts[p] = n
			return nil
		})
	}
	g.Wait() // workers report anomalies instead of errors

	return counts, anomalies
}

// countFileLines counts newline terminators in path, charging one extra
// line for trailing content without a terminator. Empty readable files
// count as a single line to keep downstream sizing non-degenerate.
func countFileLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	lines := 0
	lastByte := byte('\n')
	buf := make([]byte, 32*1024)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			lines += bytes.Count(buf[:n], []byte{'\n'})
			lastByte = buf[n-1]
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
	}
	if lastByte != '\n' {
		lines++
	}
	if lines == 0 {
		lines = 1
	}
	return lines, nil
}
