package coupling

import (
	"sort"
	"time"

	"github.com/mkrause/gitcoupling/internal/git"
	"github.com/mkrause/gitcoupling/internal/risk"
)

// FileStats is the aggregated record for one tracked file. Produced fresh
// on every analysis run and never mutated afterwards.
type FileStats struct {
	Path      string
	LineCount int

	// History holds every surviving commit touching Path, oldest first.
	History []git.Commit

	// Contributors is the all-time author set; RecentContributors only
	// counts authors of commits after the recency cutoff.
	Contributors       map[string]struct{}
	RecentContributors map[string]struct{}

	// CoChangeCounts maps co-changed path -> number of recent commits in
	// which both files changed.
	CoChangeCounts map[string]int

	Tier risk.Tier
}

// PeakCoChange returns the largest co-change count, 0 when the file never
// co-changed with anything.
func (fs *FileStats) PeakCoChange() int {
	peak := 0
	for _, n := range fs.CoChangeCounts {
		if n > peak {
			peak = n
		}
	}
	return peak
}

// SortedContributors returns the all-time contributor set in stable order.
func (fs *FileStats) SortedContributors() []string {
	return sortedSet(fs.Contributors)
}

// SortedRecentContributors returns the recent contributor set in stable order.
func (fs *FileStats) SortedRecentContributors() []string {
	return sortedSet(fs.RecentContributors)
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Aggregate combines the tracked file list and the commit history into one
// FileStats per file, in a single pass over commits rather than a per-file
// scan of the whole history.
//
// For every commit and every changed file f in it: the commit is appended
// to f's history and its author joins f's all-time contributors. When the
// commit is newer than recencyCutoff, the author also joins f's recent
// contributors and every other changed file g in the same commit gets
// CoChangeCounts[g] incremented. A file never co-changes with itself.
//
// Only files present in the files argument own an accumulator. A co-changed
// path without an accumulator still counts toward a tracked file's map, so
// the relation is not guaranteed symmetric; that is expected, not a bug.
func Aggregate(files []string, commits []git.Commit, recencyCutoff time.Time) map[string]*FileStats {
	stats := make(map[string]*FileStats, len(files))
	for _, f := range files {
		stats[f] = &FileStats{
			Path:               f,
			Contributors:       make(map[string]struct{}),
			RecentContributors: make(map[string]struct{}),
			CoChangeCounts:     make(map[string]int),
			Tier:               risk.TierLow,
		}
	}

	for i := range commits {
		c := &commits[i]
		recent := c.Timestamp.After(recencyCutoff)
		for _, f := range c.Files {
			fs, tracked := stats[f]
			if !tracked {
				continue
			}
			fs.History = append(fs.History, *c)
			fs.Contributors[c.Author] = struct{}{}
			if !recent {
				continue
			}
			fs.RecentContributors[c.Author] = struct{}{}
			for _, g := range c.Files {
				if g != f {
					fs.CoChangeCounts[g]++
				}
			}
		}
	}

	return stats
}
