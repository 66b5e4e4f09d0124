package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/monkeytranslate/monkeytranslate/internal/api"
	"github.com/monkeytranslate/monkeytranslate/internal/store"
	"github.com/monkeytranslate/monkeytranslate/internal/svcctx"
)

// RenderEndpoint handles POST /api/pages/{id}/render.
type RenderEndpoint struct{}

var _ api.Endpoint = (*RenderEndpoint)(nil)

func (e *RenderEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/pages/{id}/render", e.handler
}

func (e *RenderEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Render translated page
//	@Description	Generate a new page image with translated text composited over the original
//	@Tags			pipeline
//	@Produce		json
//	@Param			id	path		string	true	"Page ID"
//	@Success		200	{object}	store.Page
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Failure		413	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Failure		502	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/pages/{id}/render [post]
func (e *RenderEndpoint) handler(w http.ResponseWriter, r *http.Request) {
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

	page, err := orchestrator.Render(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (e *RenderEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "render <id>",
		Short: "Render the translated page image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var page store.Page
			if err := client.Post(cmd.Context(), "/api/pages/"+args[0]+"/render", nil, &page); err != nil {
				return err
			}
			return api.Output(page)
		},
	}
}
