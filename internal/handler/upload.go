package handler

import (
	"io"
	"net/http"

	"github.com/sirajstore/commerce-api/internal/upload"
)

// maxUploadBytes bounds one multipart upload request.
const maxUploadBytes = 32 << 20

// UploadImages accepts a multipart form with one or more "images" parts and
// stores them, returning the public URLs in part order.
func (h *Handler) UploadImages(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	parts := r.MultipartForm.File["images"]
	if len(parts) == 0 {
		respondError(w, http.StatusBadRequest, "No images provided")
		return
	}

	files := make([]upload.File, 0, len(parts))
	for _, part := range parts {
		f, err := part.Open()
		if err != nil {
			respondInternal(w, r, "Error reading uploaded file", err)
			return
		}
		content, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			respondInternal(w, r, "Error reading uploaded file", err)
			return
		}
		files = append(files, upload.File{Name: part.Filename, Content: content})
	}

	urls, err := h.uploader.Upload(r.Context(), files)
	if err != nil {
		respondInternal(w, r, "Error storing uploaded files", err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"urls": urls})
}
