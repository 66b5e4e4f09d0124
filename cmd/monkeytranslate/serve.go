package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/monkeytranslate/monkeytranslate/internal/config"
	"github.com/monkeytranslate/monkeytranslate/internal/home"
	"github.com/monkeytranslate/monkeytranslate/internal/server"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MonkeyTranslate server",
	Long: `Start the MonkeyTranslate HTTP server.

The server provides the page upload, extraction, translation and rendering
API plus the embedded web UI. Configuration is hot-reloaded when the config
file changes.

Examples:
  monkeytranslate serve                    # Start on default port 8080
  monkeytranslate serve --port 3000        # Start on custom port
  monkeytranslate serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Set up logger
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))

		// Get home directory
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		// Load config with hot-reload support
		cfgMgr, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cfgMgr.WatchConfig()

		host := serveHost
		port := servePort
		if !cmd.Flags().Changed("host") && cfgMgr.Get().Server.Host != "" {
			host = cfgMgr.Get().Server.Host
		}
		if !cmd.Flags().Changed("port") && cfgMgr.Get().Server.Port != "" {
			port = cfgMgr.Get().Server.Port
		}

		srv, err := server.New(server.Config{
			Host:          host,
			Port:          port,
			Home:          h,
			ConfigManager: cfgMgr,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to")
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "Port to listen on")

	rootCmd.AddCommand(serveCmd)
}
