package analysis

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/mkrause/gitcoupling/internal/config"
	"github.com/mkrause/gitcoupling/internal/coupling"
	"github.com/mkrause/gitcoupling/internal/editor"
	"github.com/mkrause/gitcoupling/internal/git"
	"github.com/mkrause/gitcoupling/internal/risk"
	"github.com/mkrause/gitcoupling/internal/tree"
)

// Service runs complete coupling analyses. Every call recomputes from
// scratch: nothing is cached or shared between requests, and the passed
// context cancels any in-flight git subprocess when the caller goes away.
type Service struct {
	log *logrus.Logger
}

// New creates an analysis service.
func New(log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.New()
	}
	return &Service{log: log}
}

// Result is one analysis run's output: the nested structure plus any
// non-fatal per-file anomalies encountered while counting lines.
type Result struct {
	Structure NestedCodeStructure
	Anomalies []coupling.Anomaly
}

// RepoStats performs the full pipeline: enumerate tracked files, then read
// the commit history and count lines concurrently, aggregate, classify and
// build the tree. The file list must be known before the history is
// filtered by it, so enumeration runs first; a failure at either fatal
// stage aborts the request with no partial structure.
func (s *Service) RepoStats(ctx context.Context, cfg *config.Config) (*Result, error) {
	files, err := git.TrackedFiles(ctx, cfg.RepoPath, cfg.ExcludeFilters)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"repo":  cfg.RepoPath,
		"files": len(files),
	}).Debug("enumerated tracked files")

	var commits []git.Commit
	var counts map[string]int
	var anomalies []coupling.Anomaly

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		commits, err = git.History(gctx, cfg.RepoPath, files)
		return err
	})
	g.Go(func() error {
		counts, anomalies = coupling.CountLines(gctx, cfg.RepoPath, files, cfg.LOCWorkers)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	s.log.WithField("commits", len(commits)).Debug("parsed commit history")

	stats := coupling.Aggregate(files, commits, cfg.RecencyCutoff())
	thresholds := cfg.Thresholds()

	ordered := make([]*coupling.FileStats, 0, len(files))
	for _, f := range files {
		fs := stats[f]
		fs.LineCount = counts[f]
		fs.Tier = risk.Classify(fs.PeakCoChange(), len(fs.RecentContributors), thresholds)
		ordered = append(ordered, fs)
	}

	for _, a := range anomalies {
		s.log.WithError(a.Err).WithField("path", a.Path).
			Warn("line count degraded to sentinel")
	}

	return &Result{
		Structure: convertNodes(tree.Build(ordered)),
		Anomalies: anomalies,
	}, nil
}

// RepoURL derives the repository's browse URL from its origin remote.
func (s *Service) RepoURL(ctx context.Context, repoPath string) (string, error) {
	return git.RemoteURL(ctx, repoPath)
}

// OpenInEditor launches the configured editor on path without waiting for
// it. Failure is reported to the caller but never retried and never
// affects analysis results.
func (s *Service) OpenInEditor(cfg *config.Config, path string) error {
	return editor.Open(s.log, cfg.Editor, path)
}
