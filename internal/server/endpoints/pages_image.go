package endpoints

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/monkeytranslate/monkeytranslate/internal/api"
	"github.com/monkeytranslate/monkeytranslate/internal/store"
	"github.com/monkeytranslate/monkeytranslate/internal/svcctx"
)

// PageImageEndpoint handles GET /api/pages/{id}/image.
// It serves the translated rendition when one exists, otherwise the original.
type PageImageEndpoint struct{}

var _ api.Endpoint = (*PageImageEndpoint)(nil)

func (e *PageImageEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/pages/{id}/image", e.handler
}

func (e *PageImageEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Get page image
//	@Description	Get the page image, preferring the translated rendition when available
//	@Tags			pages
//	@Produce		image/*
//	@Param			id	path		string	true	"Page ID"
//	@Success		200	{file}		binary
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/pages/{id}/image [get]
func (e *PageImageEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	servePageImage(w, r, true)
}

func (e *PageImageEndpoint) Command(getServerURL func() string) *cobra.Command {
	return imageDownloadCommand(getServerURL, "image", "Download the page image (translated when available)", "/image")
}

// RenderedImageEndpoint handles GET /api/pages/{id}/rendered-image.
// Unlike the image endpoint it never falls back to the original.
type RenderedImageEndpoint struct{}

var _ api.Endpoint = (*RenderedImageEndpoint)(nil)

func (e *RenderedImageEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/pages/{id}/rendered-image", e.handler
}

func (e *RenderedImageEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Get rendered page image
//	@Description	Get the translated rendition only; 404 when the page has not been rendered
//	@Tags			pages
//	@Produce		image/*
//	@Param			id	path		string	true	"Page ID"
//	@Success		200	{file}		binary
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/pages/{id}/rendered-image [get]
func (e *RenderedImageEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	servePageImage(w, r, false)
}

func (e *RenderedImageEndpoint) Command(getServerURL func() string) *cobra.Command {
	return imageDownloadCommand(getServerURL, "rendered-image", "Download the translated rendition", "/rendered-image")
}

func servePageImage(w http.ResponseWriter, r *http.Request, fallbackToOriginal bool) {
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

	imagePath := page.RenderedPath
	if imagePath == "" {
		if !fallbackToOriginal {
			writeError(w, http.StatusNotFound, "page has not been rendered")
			return
		}
		imagePath = page.ImagePath
	}

	file, err := os.Open(imagePath)
	if err != nil {
		if os.IsNotExist(err) {
			writeError(w, http.StatusNotFound, "image file not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", page.MimeType)
	http.ServeContent(w, r, filepath.Base(imagePath), fileInfo.ModTime(), file)
}

func imageDownloadCommand(getServerURL func() string, use, short, suffix string) *cobra.Command {
	var outputFile string
	cmd := &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())

			out := outputFile
			if out == "" {
				var page store.Page
				if err := client.Get(cmd.Context(), "/api/pages/"+args[0], &page); err != nil {
					return err
				}
				out = page.Filename
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := client.Download(cmd.Context(), "/api/pages/"+args[0]+suffix, f); err != nil {
				return err
			}
			cmd.Println("Saved to", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path")
	return cmd
}
