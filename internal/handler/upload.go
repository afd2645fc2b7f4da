package handler

import (
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/sakif/recipe-tracker/internal/apperror"
	"github.com/sakif/recipe-tracker/internal/blob"
)

// maxUploadBytes caps a multipart image upload at 10 MiB.
const maxUploadBytes = 10 << 20

// UploadHandler accepts a recipe image and hands it to the blob store.
type UploadHandler struct {
	store  blob.Store
	logger *slog.Logger
}

func NewUploadHandler(store blob.Store, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{store: store, logger: logger}
}

// uploadResponse carries the URL the client should store on the recipe.
type uploadResponse struct {
	ImageURL string `json:"imageUrl"`
}

// HandleUpload reads the "image" part of a multipart form and saves it.
//
// HTTP: POST /upload
// Failure: 400 {"error":"No file uploaded"} when the part is missing.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if _, ok := ownerEmail(w, r); !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, apperror.ValidationFailed("image", "No file uploaded"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, apperror.ValidationFailed("image", "No file uploaded"))
		return
	}
	defer file.Close()

	ext := filepath.Ext(header.Filename)
	contentType := header.Header.Get("Content-Type")

	url, err := h.store.Save(r.Context(), ext, contentType, file)
	if err != nil {
		h.logger.Error("image upload failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	h.logger.Info("image uploaded",
		slog.String("url", url),
		slog.Int64("bytes", header.Size),
	)

	writeJSON(w, http.StatusOK, uploadResponse{ImageURL: url})
}
