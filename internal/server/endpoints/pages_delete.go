package endpoints

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/monkeytranslate/monkeytranslate/internal/api"
	"github.com/monkeytranslate/monkeytranslate/internal/svcctx"
)

// DeletePageResponse confirms a page deletion.
type DeletePageResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// DeletePageEndpoint handles DELETE /api/pages/{id}.
type DeletePageEndpoint struct{}

var _ api.Endpoint = (*DeletePageEndpoint)(nil)

func (e *DeletePageEndpoint) Route() (string, string, http.HandlerFunc) {
	return "DELETE", "/api/pages/{id}", e.handler
}

func (e *DeletePageEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Delete a page
//	@Description	Delete a page, its stored image files, and any open edit session
//	@Tags			pages
//	@Produce		json
//	@Param			id	path		string	true	"Page ID"
//	@Success		200	{object}	DeletePageResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/pages/{id} [delete]
func (e *DeletePageEndpoint) handler(w http.ResponseWriter, r *http.Request) {
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

	page, err := pageStore.Delete(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if edits := svcctx.EditsFrom(r.Context()); edits != nil {
		edits.Drop(id)
	}

	logger := svcctx.LoggerFrom(r.Context())
	for _, path := range []string{page.ImagePath, page.RenderedPath} {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) && logger != nil {
			logger.Warn("failed to remove page file", "page_id", id, "path", path, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, DeletePageResponse{ID: id, Deleted: true})
}

func (e *DeletePageEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			if err := client.Delete(cmd.Context(), "/api/pages/"+args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted page %s\n", args[0])
			return nil
		},
	}
}
