package api

import (
	"github.com/gorilla/mux"
)

// SetupRoutes registers all HTTP routes.
func SetupRoutes(router *mux.Router, handlers *Handlers) {
	router.HandleFunc("/", handlers.Home).Methods("GET")
	router.HandleFunc("/analyze", handlers.AnalyzeNetwork).Methods("GET")
	router.HandleFunc("/visualize", handlers.VisualizeNetwork).Methods("GET")
	router.HandleFunc("/health", handlers.HealthCheck).Methods("GET")
}
