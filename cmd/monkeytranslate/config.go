package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/monkeytranslate/monkeytranslate/internal/api"
	"github.com/monkeytranslate/monkeytranslate/internal/config"
	"github.com/monkeytranslate/monkeytranslate/internal/home"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	Long: `Write a default config.yaml to the monkeytranslate home directory.

API keys are referenced via ${ENV_VAR} syntax and resolved at load time,
so the file itself never holds secrets.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		path := h.ConfigPath()
		if h.ConfigExists() {
			return fmt.Errorf("config already exists at %s", path)
		}

		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Printf("Wrote default config to %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgMgr, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cfg := cfgMgr.Get()

		// Keys stay as ${ENV_VAR} references; note unresolved ones.
		if config.ResolveEnvVars(cfg.Gemini.APIKey) == "" {
			fmt.Fprintln(os.Stderr, "warning: gemini api key is not set")
		}

		return api.Output(cfg)
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
