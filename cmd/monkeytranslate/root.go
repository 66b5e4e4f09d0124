package main

import (
	"github.com/spf13/cobra"

	"github.com/monkeytranslate/monkeytranslate/internal/api"
	"github.com/monkeytranslate/monkeytranslate/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "monkeytranslate",
	Short: "Translate text inside images using AI vision models",
	Long: `MonkeyTranslate regenerates images with their embedded text translated.

Upload a page, extract its text regions with an AI vision model, translate
the text, then render a new image with the translations composited over the
original. Regions can be edited, removed, restored or deleted before
rendering.`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.monkeytranslate/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "monkeytranslate home directory (default: ~/.monkeytranslate)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
