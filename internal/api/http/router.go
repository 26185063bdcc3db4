package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"recruiting-portal-backend/internal/storage"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger is satisfied by the postgres store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter builds the HTTP side of the server: mock storage routes, a health
// check and the Prometheus scrape endpoint.
func NewRouter(db Pinger, store storage.ObjectStore, maxUploadBytes int64) *mux.Router {
	router := mux.NewRouter()
	RegisterMockStorageRoutes(router, store, maxUploadBytes)
	router.HandleFunc("/healthz", healthHandler(db)).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return router
}

func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := db.Ping(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "unavailable", "database": err.Error()})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}
