package uploads

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"slices"

	"github.com/google/uuid"

	"github.com/mytheresa/interior-catalog/app/api"
	"github.com/mytheresa/interior-catalog/app/imageproc"
	"github.com/mytheresa/interior-catalog/app/logger"
	"github.com/mytheresa/interior-catalog/app/middleware"
	"github.com/mytheresa/interior-catalog/app/storage"
)

// Kinds are the folders an upload may be filed under.
var Kinds = []string{"materials", "textures", "styles", "categories", "rooms"}

const defaultKind = "styles"

type ObjectStore interface {
	Save(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}

type ImageProcessor interface {
	Process(r io.Reader, size imageproc.Size, format string) (imageproc.Result, error)
}

type Response struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
}

type UploadHandler struct {
	store   ObjectStore
	images  ImageProcessor
	maxSize int64
}

func NewUploadHandler(s ObjectStore, p ImageProcessor, maxSize int64) *UploadHandler {
	if maxSize <= 0 {
		maxSize = 10 << 20
	}
	return &UploadHandler{store: s, images: p, maxSize: maxSize}
}

// HandleUpload accepts a multipart "file" part, stores a full size and a
// thumbnail rendition and returns both URLs.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize)
	if err := r.ParseMultipartForm(h.maxSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.WriteError(w, r, api.NewError(api.CodeBadRequest, "File too large", http.StatusRequestEntityTooLarge))
			return
		}
		api.WriteError(w, r, api.BadRequest("Invalid multipart body"))
		return
	}

	kind := r.FormValue("kind")
	if kind == "" {
		kind = defaultKind
	}
	if !slices.Contains(Kinds, kind) {
		api.WriteError(w, r, api.BadRequest("Invalid kind"))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		api.WriteError(w, r, api.BadRequest("Missing file"))
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		api.WriteError(w, r, api.BadRequest("Invalid multipart body"))
		return
	}

	resp, err := h.save(r.Context(), raw, tenantID, kind)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("image uploaded", "kind", kind, "url", resp.URL, "bytes", len(raw))
	api.CreatedResponse(w, resp)
}

func (h *UploadHandler) save(ctx context.Context, raw []byte, tenantID uuid.UUID, kind string) (*Response, error) {
	full, err := h.images.Process(bytes.NewReader(raw), imageproc.SizeFull, "")
	if err != nil {
		return nil, imageError(err)
	}
	thumb, err := h.images.Process(bytes.NewReader(raw), imageproc.SizeThumbnail, "")
	if err != nil {
		return nil, imageError(err)
	}

	dir := tenantID.String()
	fullURL, err := h.store.Save(ctx, storage.ObjectKey(dir, kind, full.Ext()), bytes.NewReader(full.Data), full.ContentType)
	if err != nil {
		return nil, err
	}
	thumbURL, err := h.store.Save(ctx, storage.ObjectKey(dir, kind+"/thumbnails", thumb.Ext()), bytes.NewReader(thumb.Data), thumb.ContentType)
	if err != nil {
		return nil, err
	}

	return &Response{URL: fullURL, ThumbnailURL: thumbURL, Width: full.Width, Height: full.Height}, nil
}

func imageError(err error) error {
	if errors.Is(err, imageproc.ErrTooManyPixels) {
		return api.Wrap(err, api.CodeBadRequest, "Image dimensions too large", http.StatusRequestEntityTooLarge)
	}
	return api.Wrap(err, api.CodeBadRequest, "File is not a supported image", http.StatusBadRequest)
}
