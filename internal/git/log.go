package git

import (
	"bufio"
	"context"
	"strings"
	"time"
)

// Commit is one parsed git log record. Files holds the commit's surviving
// changed paths: added and modified entries only, deleted entries removed,
// and (when the history was filtered) only paths present in the caller's
// included set. Immutable once parsed.
type Commit struct {
	Hash      string
	Author    string
	Timestamp time.Time
	Message   string
	Files     []string
}

// logFormat asks for hash, author, ISO-8601 author date and subject per
// commit, NUL-separated: author names and subjects can contain any
// printable character, but never a NUL, so the header split stays
// unambiguous. The strict ISO date guarantees a timezone-safe parse into
// an absolute instant regardless of where the commits were made.
const logFormat = "%H%x00%an%x00%aI%x00%s"

const headerSep = "\x00"

// History returns every commit touching at least one of includedFiles,
// oldest first. An empty includedFiles returns an empty history without
// invoking git at all.
//
// Filtering policy: the full repository log is parsed once and each
// commit's changed files are intersected exactly against includedFiles.
// No --since is passed to git, so per-file histories and all-time
// contributor sets really cover all time; the recency window is applied
// later, in memory, by the aggregator.
func History(ctx context.Context, repoPath string, includedFiles []string) ([]Commit, error) {
	if len(includedFiles) == 0 {
		return nil, nil
	}

	out, err := run(ctx, repoPath, "log", "--name-status", "--pretty=format:"+logFormat)
	if err != nil {
		return nil, err
	}

	included := make(map[string]bool, len(includedFiles))
	for _, f := range includedFiles {
		included[f] = true
	}

	commits := parseLog(string(out), included)

	// git emits newest first; downstream consumers depend on index 0
	// being the oldest surviving commit.
	for i, j := 0, len(commits)-1; i < j; i, j = i+1, j-1 {
		commits[i], commits[j] = commits[j], commits[i]
	}
	return commits, nil
}

// parseLog converts raw --name-status log output into commit records,
// newest first as emitted. included may be nil to keep every path.
func parseLog(output string, included map[string]bool) []Commit {
	var commits []Commit
	var current *Commit
	seen := make(map[string]bool)

	flush := func() {
		// a commit survives only if at least one changed file survived
		// the deleted-status and included-set filters
		if current != nil && len(current.Files) > 0 {
			commits = append(commits, *current)
		}
		current = nil
	}

	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		if path, ok := parseStatusLine(line); ok {
			if current != nil && path != "" && !seen[path] {
				if included == nil || included[path] {
					current.Files = append(current.Files, path)
					seen[path] = true
				}
			}
			continue
		}

		parts := strings.SplitN(line, headerSep, 4)
		if len(parts) != 4 {
			continue // neither a status line nor a well-formed header
		}
		flush()
		seen = make(map[string]bool)

		ts, err := time.Parse(time.RFC3339, parts[2])
		if err != nil {
			continue // malformed timestamp, drop the whole record
		}
		current = &Commit{
			Hash:      parts[0],
			Author:    parts[1],
			Timestamp: ts,
			Message:   parts[3],
		}
	}
	flush()

	return commits
}

// parseStatusLine recognizes a --name-status entry ("M\tpath", "A\tpath",
// "R100\told\tnew", ...) and returns the surviving path. Deleted entries
// return ok with an empty path so the caller still treats the line as a
// status line and never mistakes it for a commit header.
//
// Paths come back C-quoted under git's default core.quotePath, exactly as
// in ls-files output; they are decoded here so the included-set match sees
// the same literal spelling the enumerator produced.
func parseStatusLine(line string) (path string, ok bool) {
	fields := strings.Split(line, "\t")
	if len(fields) < 2 || fields[0] == "" {
		return "", false
	}
	status := fields[0][0]
	switch status {
	case 'A', 'M', 'T':
		return unquotePath(fields[1]), true
	case 'R', 'C':
		// rename/copy lines carry "old\tnew"; the destination is the
		// path that still exists after the commit
		if len(fields) >= 3 {
			return unquotePath(fields[2]), true
		}
		return unquotePath(fields[1]), true
	case 'D', 'U', 'X', 'B':
		return "", true
	default:
		return "", false
	}
}
