package api

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"mobility-network-backend/models"
	"mobility-network-backend/pkg/analysis"
	"mobility-network-backend/pkg/graph"
	"mobility-network-backend/service"
	"mobility-network-backend/utils"
)

// Handlers contains HTTP request handlers.
type Handlers struct {
	networkService *service.NetworkService
}

// NewHandlers creates new API handlers.
func NewHandlers(networkService *service.NetworkService) *Handlers {
	return &Handlers{networkService: networkService}
}

// Home returns a greeting so a browser hit confirms the service is up.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Mobility Network API is running. Use /analyze or /visualize.",
	})
}

// HealthCheck reports service liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccessResponse(w, "ok", nil)
}

// AnalyzeNetwork runs community detection on the loaded network and
// returns the quality summary.
func (h *Handlers) AnalyzeNetwork(w http.ResponseWriter, r *http.Request) {
	result, err := h.networkService.Analyze(r.Context())
	if err != nil {
		writeAnalysisError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, models.AnalysisResponse{
		Status:    "success",
		Algorithm: analysis.AlgorithmName,
		Results: models.AnalysisResult{
			ModularityScore:          result.Modularity,
			TotalCommunitiesDetected: result.Communities,
			TotalNodes:               result.Nodes,
		},
	})
}

// VisualizeNetwork renders the network with community colors as a PNG.
func (h *Handlers) VisualizeNetwork(w http.ResponseWriter, r *http.Request) {
	img, err := h.networkService.RenderPNG(r.Context())
	if err != nil {
		writeAnalysisError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(img); err != nil {
		log.Error().Err(err).Msg("Failed to write PNG response")
	}
}

// writeAnalysisError maps the error taxonomy onto HTTP statuses: absent or
// invalid data is 503 (data unavailable), everything else is 500.
func writeAnalysisError(w http.ResponseWriter, err error) {
	var dataErr *graph.DataError
	switch {
	case errors.Is(err, service.ErrGraphNotLoaded):
		utils.WriteErrorResponse(w, http.StatusServiceUnavailable, "Graph data not available", err)
	case errors.As(err, &dataErr):
		utils.WriteErrorResponse(w, http.StatusServiceUnavailable, "Graph data invalid", err)
	default:
		log.Error().Err(err).Msg("Analysis request failed")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Analysis failed", err)
	}
}
