package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/monkeytranslate/monkeytranslate/internal/api"
	"github.com/monkeytranslate/monkeytranslate/internal/edit"
	"github.com/monkeytranslate/monkeytranslate/internal/region"
	"github.com/monkeytranslate/monkeytranslate/internal/store"
	"github.com/monkeytranslate/monkeytranslate/internal/svcctx"
)

// BeginEditRequest opens an inline edit for a region.
type BeginEditRequest struct {
	RegionID string `json:"region_id"`
	Value    string `json:"value"`
}

// UpdateEditRequest replaces the pending value of the open edit.
type UpdateEditRequest struct {
	Value string `json:"value"`
}

// EditStateResponse describes the page's edit session.
type EditStateResponse struct {
	RegionID string `json:"region_id,omitempty"`
	Pending  string `json:"pending,omitempty"`
	Open     bool   `json:"open"`
}

// beginEdit opens the session's edit with a commit function that writes the
// pending value through to the region's translated text.
func beginEdit(session *edit.Session, pageStore store.Store, pageID, regionID, initial string) error {
	return session.Begin(regionID, initial, func(value string) error {
		_, err := pageStore.Update(pageID, func(p *store.Page) error {
			return region.SetTranslated(p.Regions, regionID, value)
		})
		return err
	})
}

// BeginEditEndpoint handles POST /api/pages/{id}/edits.
type BeginEditEndpoint struct{}

var _ api.Endpoint = (*BeginEditEndpoint)(nil)

func (e *BeginEditEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/pages/{id}/edits", e.handler
}

func (e *BeginEditEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Begin an inline edit
//	@Description	Open an edit for a region; a different region's open edit is committed first
//	@Tags			edits
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Page ID"
//	@Param			request	body		BeginEditRequest	true	"Region and initial value"
//	@Success		200		{object}	EditStateResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/api/pages/{id}/edits [post]
func (e *BeginEditEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	pageID := r.PathValue("id")
	if pageID == "" {
		writeError(w, http.StatusBadRequest, "page id is required")
		return
	}

	var req BeginEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RegionID == "" {
		writeError(w, http.StatusBadRequest, "region_id is required")
		return
	}

	pageStore := svcctx.StoreFrom(r.Context())
	edits := svcctx.EditsFrom(r.Context())
	if pageStore == nil || edits == nil {
		writeError(w, http.StatusServiceUnavailable, "server not fully initialized")
		return
	}

	// The page must exist; the region is checked at commit time.
	if _, err := pageStore.Get(pageID); err != nil {
		writeDomainError(w, err)
		return
	}

	session := edits.ForPage(pageID)
	if err := beginEdit(session, pageStore, pageID, req.RegionID, req.Value); err != nil {
		writeDomainError(w, err)
		return
	}

	regionID, pending, open := session.Current()
	writeJSON(w, http.StatusOK, EditStateResponse{RegionID: regionID, Pending: pending, Open: open})
}

func (e *BeginEditEndpoint) Command(_ func() string) *cobra.Command {
	return nil
}

// UpdateEditEndpoint handles PUT /api/pages/{id}/edits.
type UpdateEditEndpoint struct{}

var _ api.Endpoint = (*UpdateEditEndpoint)(nil)

func (e *UpdateEditEndpoint) Route() (string, string, http.HandlerFunc) {
	return "PUT", "/api/pages/{id}/edits", e.handler
}

func (e *UpdateEditEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Update the open edit
//	@Description	Replace the pending value of the page's open edit
//	@Tags			edits
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Page ID"
//	@Param			request	body		UpdateEditRequest	true	"New pending value"
//	@Success		200		{object}	EditStateResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/api/pages/{id}/edits [put]
func (e *UpdateEditEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	pageID := r.PathValue("id")
	if pageID == "" {
		writeError(w, http.StatusBadRequest, "page id is required")
		return
	}

	var req UpdateEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	edits := svcctx.EditsFrom(r.Context())
	if edits == nil {
		writeError(w, http.StatusServiceUnavailable, "server not fully initialized")
		return
	}

	session := edits.ForPage(pageID)
	if err := session.Update(req.Value); err != nil {
		writeDomainError(w, err)
		return
	}

	regionID, pending, open := session.Current()
	writeJSON(w, http.StatusOK, EditStateResponse{RegionID: regionID, Pending: pending, Open: open})
}

func (e *UpdateEditEndpoint) Command(_ func() string) *cobra.Command {
	return nil
}

// CommitEditEndpoint handles POST /api/pages/{id}/edits/commit.
type CommitEditEndpoint struct{}

var _ api.Endpoint = (*CommitEditEndpoint)(nil)

func (e *CommitEditEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/pages/{id}/edits/commit", e.handler
}

func (e *CommitEditEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Commit the open edit
//	@Description	Write the pending value to the region and close the edit; a no-op when nothing is open
//	@Tags			edits
//	@Produce		json
//	@Param			id	path		string	true	"Page ID"
//	@Success		200	{object}	store.Page
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/pages/{id}/edits/commit [post]
func (e *CommitEditEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	pageID := r.PathValue("id")
	if pageID == "" {
		writeError(w, http.StatusBadRequest, "page id is required")
		return
	}

	pageStore := svcctx.StoreFrom(r.Context())
	edits := svcctx.EditsFrom(r.Context())
	if pageStore == nil || edits == nil {
		writeError(w, http.StatusServiceUnavailable, "server not fully initialized")
		return
	}

	if err := edits.ForPage(pageID).Commit(); err != nil {
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

func (e *CommitEditEndpoint) Command(_ func() string) *cobra.Command {
	return nil
}

// CancelEditEndpoint handles DELETE /api/pages/{id}/edits.
type CancelEditEndpoint struct{}

var _ api.Endpoint = (*CancelEditEndpoint)(nil)

func (e *CancelEditEndpoint) Route() (string, string, http.HandlerFunc) {
	return "DELETE", "/api/pages/{id}/edits", e.handler
}

func (e *CancelEditEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Cancel the open edit
//	@Description	Discard the pending value without writing it; a no-op when nothing is open
//	@Tags			edits
//	@Produce		json
//	@Param			id	path		string	true	"Page ID"
//	@Success		200	{object}	EditStateResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/pages/{id}/edits [delete]
func (e *CancelEditEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	pageID := r.PathValue("id")
	if pageID == "" {
		writeError(w, http.StatusBadRequest, "page id is required")
		return
	}

	edits := svcctx.EditsFrom(r.Context())
	if edits == nil {
		writeError(w, http.StatusServiceUnavailable, "server not fully initialized")
		return
	}

	edits.ForPage(pageID).Cancel()
	writeJSON(w, http.StatusOK, EditStateResponse{Open: false})
}

func (e *CancelEditEndpoint) Command(_ func() string) *cobra.Command {
	return nil
}
