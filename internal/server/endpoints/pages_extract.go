package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/monkeytranslate/monkeytranslate/internal/api"
	"github.com/monkeytranslate/monkeytranslate/internal/store"
	"github.com/monkeytranslate/monkeytranslate/internal/svcctx"
)

// ExtractEndpoint handles POST /api/pages/{id}/extract.
type ExtractEndpoint struct{}

var _ api.Endpoint = (*ExtractEndpoint)(nil)

func (e *ExtractEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/pages/{id}/extract", e.handler
}

func (e *ExtractEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Extract text regions
//	@Description	Run vision extraction on the page, replacing its region set
//	@Tags			pipeline
//	@Produce		json
//	@Param			id	path		string	true	"Page ID"
//	@Success		200	{object}	store.Page
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/pages/{id}/extract [post]
func (e *ExtractEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "page id is required")
		return
	}

	orchestrator := svcctx.OrchestratorFrom(r.Context())
	if orchestrator == nil {
		writeError(w, http.StatusServiceUnavailable, "pipeline not initialized")
		return
	}

	page, err := orchestrator.Extract(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (e *ExtractEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <id>",
		Short: "Extract text regions from a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var page store.Page
			if err := client.Post(cmd.Context(), "/api/pages/"+args[0]+"/extract", nil, &page); err != nil {
				return err
			}
			return api.Output(page)
		},
	}
}
