package endpoints

import (
	"errors"
	"net/http"

	"github.com/monkeytranslate/monkeytranslate/internal/edit"
	"github.com/monkeytranslate/monkeytranslate/internal/pipeline"
	"github.com/monkeytranslate/monkeytranslate/internal/region"
	"github.com/monkeytranslate/monkeytranslate/internal/store"
)

// writeDomainError maps store, region, edit and pipeline errors onto HTTP
// status codes and writes the JSON error response.
func writeDomainError(w http.ResponseWriter, err error) {
	var validationErr *pipeline.ValidationError
	var renderErr *pipeline.RenderError

	switch {
	case errors.Is(err, store.ErrPageNotFound), errors.Is(err, region.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, pipeline.ErrStageBusy), errors.Is(err, pipeline.ErrSuperseded):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, region.ErrNotActive), errors.Is(err, region.ErrNotRemoved),
		errors.Is(err, edit.ErrNoOpenEdit):
		writeError(w, http.StatusConflict, err.Error())
	case errors.As(err, &validationErr):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &renderErr):
		switch renderErr.Kind {
		case pipeline.RenderTooLarge:
			writeError(w, http.StatusRequestEntityTooLarge, err.Error())
		case pipeline.RenderNetwork:
			writeError(w, http.StatusBadGateway, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
