package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/monkeytranslate/monkeytranslate/internal/api"
	"github.com/monkeytranslate/monkeytranslate/internal/region"
	"github.com/monkeytranslate/monkeytranslate/internal/store"
	"github.com/monkeytranslate/monkeytranslate/internal/svcctx"
)

// EditRegionRequest is the request body for editing a region's translation.
type EditRegionRequest struct {
	Translated string `json:"translated"`
}

// EditRegionEndpoint handles PATCH /api/pages/{id}/regions/{rid}.
// The write goes through the page's edit session so it participates in the
// one-open-edit rule.
type EditRegionEndpoint struct{}

var _ api.Endpoint = (*EditRegionEndpoint)(nil)

func (e *EditRegionEndpoint) Route() (string, string, http.HandlerFunc) {
	return "PATCH", "/api/pages/{id}/regions/{rid}", e.handler
}

func (e *EditRegionEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Edit a region's translation
//	@Description	Set the translated text of a region
//	@Tags			regions
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Page ID"
//	@Param			rid		path		string				true	"Region ID"
//	@Param			request	body		EditRegionRequest	true	"New translated text"
//	@Success		200		{object}	store.Page
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/api/pages/{id}/regions/{rid} [patch]
func (e *EditRegionEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	pageID := r.PathValue("id")
	regionID := r.PathValue("rid")
	if pageID == "" || regionID == "" {
		writeError(w, http.StatusBadRequest, "page id and region id are required")
		return
	}

	var req EditRegionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pageStore := svcctx.StoreFrom(r.Context())
	edits := svcctx.EditsFrom(r.Context())
	if pageStore == nil || edits == nil {
		writeError(w, http.StatusServiceUnavailable, "server not fully initialized")
		return
	}

	session := edits.ForPage(pageID)
	if err := beginEdit(session, pageStore, pageID, regionID, req.Translated); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := session.Commit(); err != nil {
		writeDomainError(w, err)
		return
	}

	page, err := pageStore.Get(pageID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (e *EditRegionEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "edit-region <page-id> <region-id> <text>",
		Short: "Set a region's translated text",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var page store.Page
			req := EditRegionRequest{Translated: args[2]}
			path := "/api/pages/" + args[0] + "/regions/" + args[1]
			if err := client.Patch(cmd.Context(), path, req, &page); err != nil {
				return err
			}
			return api.Output(page)
		},
	}
}

// RemoveRegionEndpoint handles POST /api/pages/{id}/regions/{rid}/remove.
type RemoveRegionEndpoint struct{}

var _ api.Endpoint = (*RemoveRegionEndpoint)(nil)

func (e *RemoveRegionEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/pages/{id}/regions/{rid}/remove", e.handler
}

func (e *RemoveRegionEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Remove a region
//	@Description	Move an active region to the removed state; it no longer participates in translation or rendering
//	@Tags			regions
//	@Produce		json
//	@Param			id	path		string	true	"Page ID"
//	@Param			rid	path		string	true	"Region ID"
//	@Success		200	{object}	store.Page
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/pages/{id}/regions/{rid}/remove [post]
func (e *RemoveRegionEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	updateRegions(w, r, func(p *store.Page, regionID string) error {
		return region.Remove(p.Regions, regionID)
	})
}

func (e *RemoveRegionEndpoint) Command(getServerURL func() string) *cobra.Command {
	return regionActionCommand(getServerURL, "remove-region", "Remove a region from the page", "/remove")
}

// UndoRegionEndpoint handles POST /api/pages/{id}/regions/{rid}/undo.
type UndoRegionEndpoint struct{}

var _ api.Endpoint = (*UndoRegionEndpoint)(nil)

func (e *UndoRegionEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/pages/{id}/regions/{rid}/undo", e.handler
}

func (e *UndoRegionEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Restore a removed region
//	@Description	Move a removed region back to the active state with its text intact
//	@Tags			regions
//	@Produce		json
//	@Param			id	path		string	true	"Page ID"
//	@Param			rid	path		string	true	"Region ID"
//	@Success		200	{object}	store.Page
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/pages/{id}/regions/{rid}/undo [post]
func (e *UndoRegionEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	updateRegions(w, r, func(p *store.Page, regionID string) error {
		return region.Undo(p.Regions, regionID)
	})
}

func (e *UndoRegionEndpoint) Command(getServerURL func() string) *cobra.Command {
	return regionActionCommand(getServerURL, "undo-region", "Restore a removed region", "/undo")
}

// DeleteRegionEndpoint handles DELETE /api/pages/{id}/regions/{rid}.
// Only removed regions may be permanently deleted.
type DeleteRegionEndpoint struct{}

var _ api.Endpoint = (*DeleteRegionEndpoint)(nil)

func (e *DeleteRegionEndpoint) Route() (string, string, http.HandlerFunc) {
	return "DELETE", "/api/pages/{id}/regions/{rid}", e.handler
}

func (e *DeleteRegionEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Permanently delete a region
//	@Description	Delete a removed region for good; active regions must be removed first
//	@Tags			regions
//	@Produce		json
//	@Param			id	path		string	true	"Page ID"
//	@Param			rid	path		string	true	"Region ID"
//	@Success		200	{object}	store.Page
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/pages/{id}/regions/{rid} [delete]
func (e *DeleteRegionEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	updateRegions(w, r, func(p *store.Page, regionID string) error {
		remaining, err := region.PermanentDelete(p.Regions, regionID)
		if err != nil {
			return err
		}
		p.Regions = remaining
		return nil
	})
}

func (e *DeleteRegionEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-region <page-id> <region-id>",
		Short: "Permanently delete a removed region",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			path := "/api/pages/" + args[0] + "/regions/" + args[1]
			if err := client.Delete(cmd.Context(), path); err != nil {
				return err
			}
			var page store.Page
			if err := client.Get(cmd.Context(), "/api/pages/"+args[0], &page); err != nil {
				return err
			}
			return api.Output(page)
		},
	}
}

// updateRegions applies a region mutation inside a store update and writes
// the updated page.
func updateRegions(w http.ResponseWriter, r *http.Request, fn func(*store.Page, string) error) {
	pageID := r.PathValue("id")
	regionID := r.PathValue("rid")
	if pageID == "" || regionID == "" {
		writeError(w, http.StatusBadRequest, "page id and region id are required")
		return
	}

	pageStore := svcctx.StoreFrom(r.Context())
	if pageStore == nil {
		writeError(w, http.StatusServiceUnavailable, "page store not initialized")
		return
	}

	page, err := pageStore.Update(pageID, func(p *store.Page) error {
		return fn(p, regionID)
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func regionActionCommand(getServerURL func() string, use, short, suffix string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <page-id> <region-id>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			path := "/api/pages/" + args[0] + "/regions/" + args[1] + suffix
			var page store.Page
			if err := client.Post(cmd.Context(), path, nil, &page); err != nil {
				return err
			}
			return api.Output(page)
		},
	}
}
