package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/perceptlab/insight-api/internal/handlers"
	"github.com/perceptlab/insight-api/internal/middleware"
	"github.com/perceptlab/insight-api/internal/services"
	"github.com/perceptlab/insight-api/internal/utils"
)

func NewRouter(service services.AnalysisService, logger *utils.Logger, maxFileSize int64) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))

	analysisHandler := handlers.NewAnalysisHandler(service, logger, maxFileSize)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)

	api.HandleFunc("/transcribe-audio", analysisHandler.TranscribeAudio).Methods(http.MethodPost)
	api.HandleFunc("/describe-image", analysisHandler.DescribeImage).Methods(http.MethodPost)
	api.HandleFunc("/summarize", analysisHandler.Summarize).Methods(http.MethodPost)
	api.HandleFunc("/summarize/upload", analysisHandler.SummarizeUpload).Methods(http.MethodPost)

	// CORS sits outside the router so OPTIONS preflights are answered
	// before route matching.
	return middleware.CORS(r)
}
