package http

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"recruiting-portal-backend/internal/logger"
	"recruiting-portal-backend/internal/storage"

	"github.com/gorilla/mux"
)

var resumeContentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// ResumeUploadHandler serves the presigned URLs handed out by mock storage
type ResumeUploadHandler struct {
	store    storage.ObjectStore
	maxBytes int64
}

// NewResumeUploadHandler creates a new upload handler. Bodies larger than
// maxBytes are rejected.
func NewResumeUploadHandler(store storage.ObjectStore, maxBytes int64) *ResumeUploadHandler {
	return &ResumeUploadHandler{
		store:    store,
		maxBytes: maxBytes,
	}
}

// HandleUpload handles HTTP PUT requests to mock presigned URLs
func (h *ResumeUploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "Missing key parameter", http.StatusBadRequest)
		return
	}
	if !strings.HasPrefix(key, "resumes/") {
		http.Error(w, "Invalid key", http.StatusBadRequest)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if !resumeContentTypes[contentType] {
		http.Error(w, "Invalid content type", http.StatusBadRequest)
		return
	}

	body := http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := h.store.SaveFile(key, body); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			http.Error(w, "File too large", http.StatusRequestEntityTooLarge)
		case errors.Is(err, storage.ErrInvalidKey):
			http.Error(w, "Invalid key", http.StatusBadRequest)
		default:
			logger.Error("Failed to save upload", "key", key, "error", err)
			http.Error(w, "Failed to save file", http.StatusInternalServerError)
		}
		return
	}

	// Return success (mimic S3 response)
	w.Header().Set("ETag", `"mock-etag-success"`)
	w.WriteHeader(http.StatusOK)
}

// HandleDownload handles HTTP GET requests to download resumes
func (h *ResumeUploadHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "Missing key parameter", http.StatusBadRequest)
		return
	}

	file, err := h.store.ReadFile(key)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch strings.ToLower(filepath.Ext(key)) {
	case ".pdf":
		contentType = "application/pdf"
	case ".doc":
		contentType = "application/msword"
	case ".docx":
		contentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename=\""+filepath.Base(key)+"\"")
	w.Header().Set("Cache-Control", "private, max-age=3600")

	if _, err := io.Copy(w, file); err != nil {
		logger.Warn("Download interrupted", "key", key, "error", err)
	}
}

// RegisterMockStorageRoutes registers the mock storage HTTP endpoints
func RegisterMockStorageRoutes(router *mux.Router, store storage.ObjectStore, maxBytes int64) {
	handler := NewResumeUploadHandler(store, maxBytes)
	router.HandleFunc("/api/v1/upload/{token}", handler.HandleUpload).Methods(http.MethodPut, http.MethodPost)
	router.HandleFunc("/api/v1/download/{hash}", handler.HandleDownload).Methods(http.MethodGet)
}
