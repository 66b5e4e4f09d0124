package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/monkeytranslate/monkeytranslate/internal/api"
	"github.com/monkeytranslate/monkeytranslate/internal/store"
	"github.com/monkeytranslate/monkeytranslate/internal/svcctx"
)

// TranslateRequest is the request body for page translation.
type TranslateRequest struct {
	TargetLanguage string `json:"target_language"`
}

// TranslateEndpoint handles POST /api/pages/{id}/translate.
type TranslateEndpoint struct{}

var _ api.Endpoint = (*TranslateEndpoint)(nil)

func (e *TranslateEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/pages/{id}/translate", e.handler
}

func (e *TranslateEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Translate page regions
//	@Description	Translate all active regions into the target language
//	@Tags			pipeline
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Page ID"
//	@Param			request	body		TranslateRequest	false	"Target language (falls back to the configured default)"
//	@Success		200		{object}	store.Page
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/api/pages/{id}/translate [post]
func (e *TranslateEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "page id is required")
		return
	}

	var req TranslateRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	if req.TargetLanguage == "" {
		if cfgMgr := svcctx.ConfigFrom(r.Context()); cfgMgr != nil {
			req.TargetLanguage = cfgMgr.Get().Defaults.TargetLanguage
		}
	}

	orchestrator := svcctx.OrchestratorFrom(r.Context())
	if orchestrator == nil {
		writeError(w, http.StatusServiceUnavailable, "pipeline not initialized")
		return
	}

	page, err := orchestrator.Translate(r.Context(), id, req.TargetLanguage)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (e *TranslateEndpoint) Command(getServerURL func() string) *cobra.Command {
	var targetLanguage string
	cmd := &cobra.Command{
		Use:   "translate <id>",
		Short: "Translate a page's text regions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var page store.Page
			req := TranslateRequest{TargetLanguage: targetLanguage}
			if err := client.Post(cmd.Context(), "/api/pages/"+args[0]+"/translate", req, &page); err != nil {
				return err
			}
			return api.Output(page)
		},
	}
	cmd.Flags().StringVarP(&targetLanguage, "language", "l", "", "Target language (server default when omitted)")
	return cmd
}
