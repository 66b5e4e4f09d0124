package endpoints

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/monkeytranslate/monkeytranslate/internal/api"
	"github.com/monkeytranslate/monkeytranslate/internal/imgops"
	"github.com/monkeytranslate/monkeytranslate/internal/store"
	"github.com/monkeytranslate/monkeytranslate/internal/svcctx"
)

const (
	maxUploadFiles    = 10
	maxUploadFileSize = 10 << 20 // 10MB per image
)

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadResponse is the response for page uploads.
type UploadResponse struct {
	Pages []*store.Page `json:"pages"`
}

// UploadPagesEndpoint handles POST /api/pages with multipart image upload.
type UploadPagesEndpoint struct{}

var _ api.Endpoint = (*UploadPagesEndpoint)(nil)

func (e *UploadPagesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/pages", e.handler
}

func (e *UploadPagesEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Upload page images
//	@Description	Upload up to 10 images (jpeg, png, gif, webp; 10MB each), creating one page per file
//	@Tags			pages
//	@Accept			mpfd
//	@Produce		json
//	@Param			images	formData	file	true	"Image files"
//	@Success		201		{object}	UploadResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/api/pages [post]
func (e *UploadPagesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	const maxMemory = 32 << 20
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "no images uploaded")
		return
	}
	if len(files) > maxUploadFiles {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("too many files: limit is %d per upload", maxUploadFiles))
		return
	}

	// Validate before writing anything to disk
	for _, fh := range files {
		if fh.Size > maxUploadFileSize {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("file %s exceeds the 10MB limit", fh.Filename))
			return
		}
		if !allowedImageExt[strings.ToLower(filepath.Ext(fh.Filename))] {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("file %s is not a supported image type", fh.Filename))
			return
		}
	}

	pageStore := svcctx.StoreFrom(r.Context())
	homeDir := svcctx.HomeFrom(r.Context())
	logger := svcctx.LoggerFrom(r.Context())
	if pageStore == nil || homeDir == nil {
		writeError(w, http.StatusServiceUnavailable, "server not fully initialized")
		return
	}

	var pages []*store.Page
	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to open uploaded file: %v", err))
			return
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read %s: %v", fh.Filename, err))
			return
		}

		width, height, err := imgops.Dimensions(data)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("file %s is not a decodable image: %v", fh.Filename, err))
			return
		}

		pageID := uuid.New().String()
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		imagePath := homeDir.UploadPath(pageID, ext)
		if err := os.WriteFile(imagePath, data, 0o644); err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to store %s: %v", fh.Filename, err))
			return
		}

		page := &store.Page{
			ID:         pageID,
			Filename:   fh.Filename,
			ImagePath:  imagePath,
			MimeType:   imgops.MimeType(fh.Filename),
			Width:      width,
			Height:     height,
			UploadedAt: time.Now().UTC(),
		}
		if err := pageStore.Put(page); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		pages = append(pages, page)

		if logger != nil {
			logger.Info("page uploaded", "page_id", pageID, "filename", fh.Filename, "width", width, "height", height)
		}
	}

	writeJSON(w, http.StatusCreated, UploadResponse{Pages: pages})
}

func (e *UploadPagesEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <image>...",
		Short: "Upload page images",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp UploadResponse
			if err := client.Upload(cmd.Context(), "/api/pages", args, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
