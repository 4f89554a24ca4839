package api

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/claralima1/Planner/internal/api/recovery"
	"github.com/claralima1/Planner/internal/services"
)

// NewRouter wires the study resource, health and metrics routes.
// isHealthy reports the aggregated service health; nil means always healthy.
func NewRouter(svc *services.StudyService, isHealthy func() bool, log zerolog.Logger) *mux.Router {
	router := mux.NewRouter()

	// Global middlewares
	router.Use(recovery.Middleware)
	router.Use(requestID)
	router.Use(accessLog(log))
	router.Use(instrument)

	healthHandler := NewHealthHandler(isHealthy)
	studyHandler := NewStudyHandler(svc)

	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	router.HandleFunc("/api/estudos", studyHandler.CreateStudy).Methods("POST")
	router.HandleFunc("/api/estudos", studyHandler.ListStudies).Methods("GET")
	router.HandleFunc("/api/estudos", studyHandler.UpdateStudy).Methods("PUT")
	router.HandleFunc("/api/estudos", studyHandler.DeleteStudy).Methods("DELETE")

	return router
}
