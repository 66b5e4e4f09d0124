package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/monkeytranslate/monkeytranslate/internal/api"
	"github.com/monkeytranslate/monkeytranslate/internal/store"
	"github.com/monkeytranslate/monkeytranslate/internal/svcctx"
)

// ListPagesResponse is the response for listing pages.
type ListPagesResponse struct {
	Pages []*store.Page `json:"pages"`
	Total int           `json:"total"`
}

// ListPagesEndpoint handles GET /api/pages.
type ListPagesEndpoint struct{}

var _ api.Endpoint = (*ListPagesEndpoint)(nil)

func (e *ListPagesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/pages", e.handler
}

func (e *ListPagesEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List pages
//	@Description	List all uploaded pages, newest first
//	@Tags			pages
//	@Produce		json
//	@Success		200	{object}	ListPagesResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/pages [get]
func (e *ListPagesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	pageStore := svcctx.StoreFrom(r.Context())
	if pageStore == nil {
		writeError(w, http.StatusServiceUnavailable, "page store not initialized")
		return
	}

	pages := pageStore.List()
	writeJSON(w, http.StatusOK, ListPagesResponse{Pages: pages, Total: len(pages)})
}

func (e *ListPagesEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp ListPagesResponse
			if err := client.Get(cmd.Context(), "/api/pages", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
