package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"recruiting-portal-backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func newTestRouter(t *testing.T, db Pinger) http.Handler {
	t.Helper()
	store, err := storage.NewMockStorageService("http://localhost:8080", t.TempDir())
	require.NoError(t, err)
	return NewRouter(db, store, 16)
}

func TestUploadThenDownload(t *testing.T) {
	router := newTestRouter(t, fakePinger{})

	req := httptest.NewRequest(http.MethodPut, "/api/v1/upload/abc?key=resumes/7/cv.pdf", strings.NewReader("%PDF-1.4"))
	req.Header.Set("Content-Type", "application/pdf")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("ETag"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/download/h?key=resumes/7/cv.pdf", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	body, _ := io.ReadAll(rec.Body)
	assert.Equal(t, "%PDF-1.4", string(body))
}

func TestUpload_Rejections(t *testing.T) {
	router := newTestRouter(t, fakePinger{})

	tests := []struct {
		name        string
		url         string
		contentType string
		body        string
		code        int
	}{
		{"missing key", "/api/v1/upload/abc", "application/pdf", "x", http.StatusBadRequest},
		{"outside resumes", "/api/v1/upload/abc?key=avatars/1.pdf", "application/pdf", "x", http.StatusBadRequest},
		{"escaping key", "/api/v1/upload/abc?key=resumes/../../etc/passwd", "application/pdf", "x", http.StatusBadRequest},
		{"image", "/api/v1/upload/abc?key=resumes/7/a.png", "image/png", "x", http.StatusBadRequest},
		{"too large", "/api/v1/upload/abc?key=resumes/7/big.pdf", "application/pdf", strings.Repeat("x", 64), http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, tt.url, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestDownload_Missing(t *testing.T) {
	router := newTestRouter(t, fakePinger{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/download/h?key=resumes/7/none.pdf", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t, fakePinger{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	newTestRouter(t, fakePinger{err: errors.New("connection refused")}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t, fakePinger{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
