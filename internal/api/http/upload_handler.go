package http

import (
	"io"
	"net/http"
	"path/filepath"

	"homywork-server/internal/service"
	"homywork-server/internal/storage"
)

// UploadHandler issues upload tickets and, when the mock storage backend is
// active, serves the upload and download endpoints the mock presigned URLs
// point at.
type UploadHandler struct {
	imageSvc    service.ImageStorageService
	mockStorage *storage.MockStorageService
}

func NewUploadHandler(imageSvc service.ImageStorageService, mockStorage *storage.MockStorageService) *UploadHandler {
	return &UploadHandler{
		imageSvc:    imageSvc,
		mockStorage: mockStorage,
	}
}

type issueUploadRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// HandleIssueUploadURL returns a ticket with the URL to PUT the image to and
// the public URL it will be served from.
func (h *UploadHandler) HandleIssueUploadURL(w http.ResponseWriter, r *http.Request) {
	var req issueUploadRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	ticket, err := h.imageSvc.IssueUploadURL(r.Context(), userFrom(r).ID, req.Filename, req.ContentType)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ticket)
}

// HandleMockUpload handles HTTP PUT requests to mock presigned URLs.
func (h *UploadHandler) HandleMockUpload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "Missing key parameter", http.StatusBadRequest)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" && contentType != "image/webp" {
		http.Error(w, "Invalid content type", http.StatusBadRequest)
		return
	}

	if err := h.mockStorage.SaveFile(key, r.Body); err != nil {
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return
	}

	// Mimic an S3-style response.
	w.Header().Set("ETag", `"mock-etag-success"`)
	w.WriteHeader(http.StatusOK)
}

// HandleMockDownload serves a stored image back.
func (h *UploadHandler) HandleMockDownload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "Missing key parameter", http.StatusBadRequest)
		return
	}

	file, err := h.mockStorage.ReadFile(key)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".webp":
		contentType = "image/webp"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	io.Copy(w, file)
}
