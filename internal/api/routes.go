package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// SetupRoutes configures all API routes. metrics may be nil.
func SetupRoutes(handler *Handler, metrics http.Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(requestLogger(handler.logger))

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods("GET")
	if metrics != nil {
		r.Handle("/metrics", metrics).Methods("GET")
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Transcript routes
	api.HandleFunc("/transcripts/analyze", handler.AnalyzeTranscript).Methods("POST")
	api.HandleFunc("/transcripts/validate", handler.ValidateTranscript).Methods("POST")
	api.HandleFunc("/directions/classify", handler.ClassifyDirection).Methods("POST")

	// Analysis history
	api.HandleFunc("/analyses", handler.ListAnalyses).Methods("GET")
	api.HandleFunc("/analyses/{id}", handler.GetAnalysis).Methods("GET")

	// Correction review routes
	api.HandleFunc("/corrections", handler.ListCorrections).Methods("GET")
	api.HandleFunc("/corrections/summary", handler.GetCorrectionSummary).Methods("GET")
	api.HandleFunc("/corrections/{id:[0-9]+}/review", handler.ReviewCorrection).Methods("POST")

	return r
}

// requestLogger logs each request's method, path, address and duration
func requestLogger(logger *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request",
				zap.String("method", r.Method),
				zap.String("uri", r.URL.RequestURI()),
				zap.String("addr", r.RemoteAddr),
				zap.Duration("duration", time.Since(start)))
		})
	}
}
