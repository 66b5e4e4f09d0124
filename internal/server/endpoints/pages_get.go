package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/monkeytranslate/monkeytranslate/internal/api"
	"github.com/monkeytranslate/monkeytranslate/internal/store"
	"github.com/monkeytranslate/monkeytranslate/internal/svcctx"
)

// GetPageEndpoint handles GET /api/pages/{id}.
type GetPageEndpoint struct{}

var _ api.Endpoint = (*GetPageEndpoint)(nil)

func (e *GetPageEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/pages/{id}", e.handler
}

func (e *GetPageEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Get page by ID
//	@Description	Get a page with its text regions
//	@Tags			pages
//	@Produce		json
//	@Param			id	path		string	true	"Page ID"
//	@Success		200	{object}	store.Page
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/pages/{id} [get]
func (e *GetPageEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "page id is required")
		return
	}

	pageStore := svcctx.StoreFrom(r.Context())
	if pageStore == nil {
		writeError(w, http.StatusServiceUnavailable, "page store not initialized")
		return
	}

	page, err := pageStore.Get(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (e *GetPageEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a page by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var page store.Page
			if err := client.Get(cmd.Context(), "/api/pages/"+args[0], &page); err != nil {
				return err
			}
			return api.Output(page)
		},
	}
}
