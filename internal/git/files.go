package git

import (
	"bufio"
	"bytes"
	"context"
	"strings"
)

// TrackedFiles lists every path known to the git index under repoPath,
// in the order git ls-files reports them. A path is excluded when it
// contains any of excludeFilters as a plain substring, so a filter of
// "test" also drops "testament.txt".
//
// Paths containing non-ASCII bytes come back C-quoted from git
// ("\303\251" style octal escapes inside double quotes); these are decoded
// to literal UTF-8 before filtering so downstream matching sees the same
// spelling the log parser sees.
func TrackedFiles(ctx context.Context, repoPath string, excludeFilters []string) ([]string, error) {
	out, err := run(ctx, repoPath, "ls-files")
	if err != nil {
		return nil, err
	}

	var files []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		path := unquotePath(line)
		if excludedByFilter(path, excludeFilters) {
			continue
		}
		files = append(files, path)
	}
	return files, scanner.Err()
}

func excludedByFilter(path string, filters []string) bool {
	for _, f := range filters {
		if f != "" && strings.Contains(path, f) {
			return true
		}
	}
	return false
}

// unquotePath decodes git's C-style path quoting. git wraps paths with
// unusual bytes in double quotes and escapes each byte octally; the octal
// escapes encode raw UTF-8 bytes, so decoding byte-wise and reassembling
// restores the literal Unicode path. Unquoted input passes through as-is.
func unquotePath(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	body := s[1 : len(s)-1]
	buf := make([]byte, 0, len(body))

	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i == len(body)-1 {
			buf = append(buf, c)
			continue
		}
		i++
		switch e := body[i]; e {
		case 'a':
			buf = append(buf, '\a')
		case 'b':
			buf = append(buf, '\b')
		case 'f':
			buf = append(buf, '\f')
		case 'n':
			buf = append(buf, '\n')
		case 'r':
			buf = append(buf, '\r')
		case 't':
			buf = append(buf, '\t')
		case 'v':
			buf = append(buf, '\v')
		case '"', '\\':
			buf = append(buf, e)
		default:
			if e >= '0' && e <= '7' && i+2 < len(body) && isOctal(body[i+1]) && isOctal(body[i+2]) {
				b := (e-'0')<<6 | (body[i+1]-'0')<<3 | (body[i+2] - '0')
				buf = append(buf, b)
				i += 2
			} else {
				// unknown escape, keep it verbatim
				buf = append(buf, '\\', e)
			}
		}
	}
	return string(buf)
}

func isOctal(b byte) bool {
	return b >= '0' && b <= '7'
}
