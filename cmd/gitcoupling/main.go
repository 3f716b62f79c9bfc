package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mkrause/gitcoupling/internal/config"
)

var (
	// Version information (set by build flags)
	Version   = "dev"
	GitCommit = "unknown"

	cfgFile  string
	repoFlag string
	verbose  bool
	logger   *logrus.Logger
	cfg      *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gitcoupling",
	Short: "Commit-coupling analysis for git repositories",
	Long: `gitcoupling mines a repository's commit history for files that tend to
change together and files touched by many recent contributors - both
signals of latent structural risk - and emits a nested directory/file
structure annotated with those statistics.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logrus.New()
		logger.SetOutput(os.Stderr)
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
		} else {
			logger.SetLevel(logrus.WarnLevel)
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		if repoFlag != "" {
			cfg.RepoPath = repoFlag
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./gitcoupling.yaml)")
	rootCmd.PersistentFlags().StringVarP(&repoFlag, "repo", "r", "", "repository path (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.SetVersionTemplate(fmt.Sprintf("gitcoupling %s (%s)\n", Version, GitCommit))
}
