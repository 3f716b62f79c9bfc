package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "gitcoupling.yaml")
	content := `repo_path: /srv/repos/widgets
exclude_filters:
  - test
  - node_modules
recency_months: 6
risk:
  medium_co_change_threshold: 4
  high_co_change_threshold: 9
  medium_contributor_threshold: 2
  high_contributor_threshold: 5
server:
  addr: 127.0.0.1:9999
loc_workers: 2
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "/srv/repos/widgets", cfg.RepoPath)
	assert.Equal(t, []string{"test", "node_modules"}, cfg.ExcludeFilters)
	assert.Equal(t, 6, cfg.RecencyMonths)
	assert.Equal(t, 4, cfg.Risk.MediumCoChangeThreshold)
	assert.Equal(t, 9, cfg.Risk.HighCoChangeThreshold)
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	assert.Equal(t, 2, cfg.LOCWorkers)

	th := cfg.Thresholds()
	assert.Equal(t, 4, th.MediumCoChange)
	assert.Equal(t, 5, th.HighContributors)
}

func TestLoadRejectsInvalidThresholds(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bad.yaml")
	content := `repo_path: /tmp/x
risk:
  medium_co_change_threshold: 0
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))

	_, err := Load(cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "medium_co_change_threshold")
}

func TestValidate(t *testing.T) {
	t.Run("empty repo path", func(t *testing.T) {
		cfg := Default()
		cfg.RepoPath = ""
		assert.Error(t, cfg.Validate())
	})
	t.Run("negative recency", func(t *testing.T) {
		cfg := Default()
		cfg.RecencyMonths = -1
		assert.Error(t, cfg.Validate())
	})
	t.Run("negative cutoff", func(t *testing.T) {
		cfg := Default()
		cfg.RecencyCutoffMillis = -5
		assert.Error(t, cfg.Validate())
	})
}

func TestRecencyCutoff(t *testing.T) {
	cfg := Default()

	pin := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	cfg.RecencyCutoffMillis = pin.UnixMilli()
	assert.True(t, cfg.RecencyCutoff().Equal(pin))

	cfg.RecencyCutoffMillis = 0
	cfg.RecencyMonths = 3
	cutoff := cfg.RecencyCutoff()
	assert.WithinDuration(t, time.Now().AddDate(0, -3, 0), cutoff, time.Minute)
}
