package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mkrause/gitcoupling/internal/risk"
)

// Config holds all analysis settings. It is a plain value handed
// explicitly into every entry point; nothing in this package keeps
// process-global state between requests.
type Config struct {
	// RepoPath is the repository under analysis.
	RepoPath string `mapstructure:"repo_path" yaml:"repo_path"`

	// ExcludeFilters drop any tracked path containing one of them as a
	// plain substring.
	ExcludeFilters []string `mapstructure:"exclude_filters" yaml:"exclude_filters"`

	// RecencyMonths sets the recency window relative to now. Ignored when
	// RecencyCutoffMillis is set explicitly.
	RecencyMonths int `mapstructure:"recency_months" yaml:"recency_months"`

	// RecencyCutoffMillis pins the recency cutoff to an absolute epoch
	// instant (milliseconds). Zero means derive from RecencyMonths.
	RecencyCutoffMillis int64 `mapstructure:"recency_cutoff_millis" yaml:"recency_cutoff_millis,omitempty"`

	Risk   RiskConfig   `mapstructure:"risk" yaml:"risk"`
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Editor is the command used to open files; empty falls back to
	// $VISUAL / $EDITOR at launch time.
	Editor string `mapstructure:"editor" yaml:"editor,omitempty"`

	// LOCWorkers bounds the line-counting worker pool.
	LOCWorkers int `mapstructure:"loc_workers" yaml:"loc_workers"`
}

// RiskConfig carries the two independent threshold families.
type RiskConfig struct {
	MediumCoChangeThreshold    int `mapstructure:"medium_co_change_threshold" yaml:"medium_co_change_threshold"`
	HighCoChangeThreshold      int `mapstructure:"high_co_change_threshold" yaml:"high_co_change_threshold"`
	MediumContributorThreshold int `mapstructure:"medium_contributor_threshold" yaml:"medium_contributor_threshold"`
	HighContributorThreshold   int `mapstructure:"high_contributor_threshold" yaml:"high_contributor_threshold"`
}

// ServerConfig configures the HTTP boundary for the visualization layer.
type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		RepoPath:       ".",
		ExcludeFilters: []string{},
		RecencyMonths:  12,
		Risk: RiskConfig{
			MediumCoChangeThreshold:    3,
			HighCoChangeThreshold:      6,
			MediumContributorThreshold: 3,
			HighContributorThreshold:   6,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8090",
		},
		LOCWorkers: 8,
	}
}

// Load reads configuration from an optional YAML file, a .env file when
// present, and GITCOUPLING_* environment variables, layered over Default.
func Load(cfgFile string) (*Config, error) {
	// .env is optional; absence is not an error
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("GITCOUPLING")
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("repo_path", def.RepoPath)
	v.SetDefault("exclude_filters", def.ExcludeFilters)
	v.SetDefault("recency_months", def.RecencyMonths)
	v.SetDefault("risk.medium_co_change_threshold", def.Risk.MediumCoChangeThreshold)
	v.SetDefault("risk.high_co_change_threshold", def.Risk.HighCoChangeThreshold)
	v.SetDefault("risk.medium_contributor_threshold", def.Risk.MediumContributorThreshold)
	v.SetDefault("risk.high_contributor_threshold", def.Risk.HighContributorThreshold)
	v.SetDefault("server.addr", def.Server.Addr)
	v.SetDefault("loc_workers", def.LOCWorkers)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName("gitcoupling")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.gitcoupling")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the analysis cannot run with.
func (c *Config) Validate() error {
	if c.RepoPath == "" {
		return fmt.Errorf("repo_path must not be empty")
	}
	if c.RecencyMonths < 0 {
		return fmt.Errorf("recency_months must not be negative")
	}
	if c.RecencyCutoffMillis < 0 {
		return fmt.Errorf("recency_cutoff_millis must not be negative")
	}
	for name, val := range map[string]int{
		"medium_co_change_threshold":   c.Risk.MediumCoChangeThreshold,
		"high_co_change_threshold":     c.Risk.HighCoChangeThreshold,
		"medium_contributor_threshold": c.Risk.MediumContributorThreshold,
		"high_contributor_threshold":   c.Risk.HighContributorThreshold,
	} {
		// a zero threshold would promote every file, including ones with
		// no activity at all
		if val < 1 {
			return fmt.Errorf("%s must be at least 1, got %d", name, val)
		}
	}
	if c.LOCWorkers < 0 {
		return fmt.Errorf("loc_workers must not be negative")
	}
	return nil
}

// RecencyCutoff resolves the recency boundary: the explicit epoch-millis
// pin when set, otherwise now minus RecencyMonths.
func (c *Config) RecencyCutoff() time.Time {
	if c.RecencyCutoffMillis > 0 {
		return time.UnixMilli(c.RecencyCutoffMillis)
	}
	return time.Now().AddDate(0, -c.RecencyMonths, 0)
}

// Thresholds converts the risk section into classifier thresholds.
func (c *Config) Thresholds() risk.Thresholds {
	return risk.Thresholds{
		MediumCoChange:     c.Risk.MediumCoChangeThreshold,
		HighCoChange:       c.Risk.HighCoChangeThreshold,
		MediumContributors: c.Risk.MediumContributorThreshold,
		HighContributors:   c.Risk.HighContributorThreshold,
	}
}
