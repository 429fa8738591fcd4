package server

import (
	"net/http"

	"github.com/rgehrsitz/ngtax/internal/compare"
)

// NewRouter registers every route on a fresh mux
func NewRouter(svc *compare.Service) *http.ServeMux {
	mux := http.NewServeMux()
	h := NewCompareHandler(svc)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// HTML form flow
	mux.HandleFunc("GET /", WithLogging(h.Index))
	mux.HandleFunc("POST /{$}", WithLogging(h.CompareForm))
	mux.HandleFunc("POST /compare", WithLogging(h.CompareForm))
	mux.HandleFunc("POST /download_pdf", WithLogging(h.DownloadPDF))

	// JSON API
	mux.HandleFunc("POST /api/compare", WithLogging(h.CompareAPI))
	mux.HandleFunc("GET /api/records", WithLogging(h.ListRecords))
	mux.HandleFunc("GET /api/records/{id}", WithLogging(h.GetRecord))
	mux.HandleFunc("GET /api/records/{id}/pdf", WithLogging(h.RecordPDF))

	return mux
}

// NewHandler wraps the router with CORS and rate limiting
func NewHandler(svc *compare.Service, limiter *RateLimiter) http.Handler {
	var next http.Handler = NewRouter(svc)
	if limiter != nil {
		next = RateLimitMiddleware(limiter, next)
	}
	return CORS(next)
}
