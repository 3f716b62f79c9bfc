package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mkrause/gitcoupling/internal/analysis"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze commit coupling and print the nested structure as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := analysis.New(logger)
		res, err := svc.RepoStats(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		for _, a := range res.Anomalies {
			logger.WithError(a.Err).Warnf("degraded statistics for %s", a.Path)
		}

		enc := json.NewEncoder(os.Stdout)
		// indent for humans, compact when piped
		if term.IsTerminal(int(os.Stdout.Fd())) {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(res.Structure)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
