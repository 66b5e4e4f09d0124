package main

import (
	"github.com/spf13/cobra"

	"github.com/monkeytranslate/monkeytranslate/internal/server/endpoints"
)

var serverURL string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Commands that call the running server",
	Long: `API commands call the running MonkeyTranslate server via HTTP.

These commands require a running server (monkeytranslate serve).
Use --server to specify a custom server URL.

Examples:
  monkeytranslate api health                    # Check server health
  monkeytranslate api pages list                # List all pages
  monkeytranslate api pages upload page.png     # Upload a page image
  monkeytranslate api pages extract <id>        # Extract text regions`,
}

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "Page management and pipeline commands",
}

// getServerURL returns the server URL at runtime (after flag parsing).
func getServerURL() string {
	return serverURL
}

func init() {
	// Add --server flag to api command (persistent so all subcommands inherit it)
	apiCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:8080", "Server URL",
	)

	// Health and swagger at top level of api
	apiCmd.AddCommand((&endpoints.HealthEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.SwaggerEndpoint{}).Command(getServerURL))

	// Pages as subcommand group
	pagesCmd.AddCommand((&endpoints.UploadPagesEndpoint{}).Command(getServerURL))
	pagesCmd.AddCommand((&endpoints.ListPagesEndpoint{}).Command(getServerURL))
	pagesCmd.AddCommand((&endpoints.GetPageEndpoint{}).Command(getServerURL))
	pagesCmd.AddCommand((&endpoints.DeletePageEndpoint{}).Command(getServerURL))
	pagesCmd.AddCommand((&endpoints.PageImageEndpoint{}).Command(getServerURL))
	pagesCmd.AddCommand((&endpoints.RenderedImageEndpoint{}).Command(getServerURL))
	pagesCmd.AddCommand((&endpoints.ExtractEndpoint{}).Command(getServerURL))
	pagesCmd.AddCommand((&endpoints.TranslateEndpoint{}).Command(getServerURL))
	pagesCmd.AddCommand((&endpoints.RenderEndpoint{}).Command(getServerURL))
	pagesCmd.AddCommand((&endpoints.EditRegionEndpoint{}).Command(getServerURL))
	pagesCmd.AddCommand((&endpoints.RemoveRegionEndpoint{}).Command(getServerURL))
	pagesCmd.AddCommand((&endpoints.UndoRegionEndpoint{}).Command(getServerURL))
	pagesCmd.AddCommand((&endpoints.DeleteRegionEndpoint{}).Command(getServerURL))

	apiCmd.AddCommand(pagesCmd)
	rootCmd.AddCommand(apiCmd)
}
