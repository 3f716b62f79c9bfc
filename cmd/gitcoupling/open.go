package main

import (
	"fmt"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/mkrause/gitcoupling/internal/analysis"
)

var openCmd = &cobra.Command{
	Use:   "open <path>",
	Short: "Open a repository file in the configured editor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := analysis.New(logger)
		return svc.OpenInEditor(cfg, args[0])
	},
}

var urlInBrowser bool

var urlCmd = &cobra.Command{
	Use:   "url",
	Short: "Print the repository's remote origin URL",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := analysis.New(logger)
		url, err := svc.RepoURL(cmd.Context(), cfg.RepoPath)
		if err != nil {
			return err
		}
		if urlInBrowser {
			return browser.OpenURL(url)
		}
		fmt.Println(url)
		return nil
	},
}

func init() {
	urlCmd.Flags().BoolVar(&urlInBrowser, "browser", false, "open the URL in the default browser")
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(urlCmd)
}
