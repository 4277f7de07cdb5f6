package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"mobility-network-backend/models"
	"mobility-network-backend/pkg/analysis"
	"mobility-network-backend/pkg/loader"
	"mobility-network-backend/pkg/louvain"
	"mobility-network-backend/service"
)

func newTestRouter(t *testing.T, svc *service.NetworkService) *mux.Router {
	t.Helper()
	router := mux.NewRouter()
	SetupRoutes(router, NewHandlers(svc))
	return router
}

func quietAnalyzer() *analysis.Analyzer {
	cfg := louvain.NewConfig()
	cfg.Set("logging.level", "error")
	cfg.Set("logging.enable_progress", false)
	return analysis.NewAnalyzer(cfg)
}

func loadedService(t *testing.T) *service.NetworkService {
	t.Helper()
	csv := "departure_id,return_id\n" +
		"1,2\n2,3\n3,1\n" +
		"4,5\n5,6\n6,4\n" +
		"3,4\n"
	path := filepath.Join(t.TempDir(), "trips.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	svc := service.NewNetworkService(quietAnalyzer())
	require.NoError(t, svc.Load(path, loader.DefaultOptions()))
	return svc
}

func TestAnalyzeEndpoint(t *testing.T) {
	router := newTestRouter(t, loadedService(t))

	req := httptest.NewRequest(http.MethodGet, "/analyze", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp models.AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Equal(t, "success", resp.Status)
	require.Equal(t, "Louvain", resp.Algorithm)
	require.Equal(t, 6, resp.Results.TotalNodes)
	require.Equal(t, 2, resp.Results.TotalCommunitiesDetected)
	require.Greater(t, resp.Results.ModularityScore, 0.3)
}

func TestAnalyzeEndpointGraphNotLoaded(t *testing.T) {
	svc := service.NewNetworkService(quietAnalyzer())
	router := newTestRouter(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/analyze", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp models.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Success)
}

func TestVisualizeEndpoint(t *testing.T) {
	router := newTestRouter(t, loadedService(t))

	req := httptest.NewRequest(http.MethodGet, "/visualize", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	require.Greater(t, rec.Body.Len(), 8)
	// PNG signature
	require.Equal(t, []byte{0x89, 'P', 'N', 'G'}, rec.Body.Bytes()[:4])
}

func TestVisualizeEndpointGraphNotLoaded(t *testing.T) {
	svc := service.NewNetworkService(quietAnalyzer())
	router := newTestRouter(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/visualize", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHomeEndpoint(t *testing.T) {
	router := newTestRouter(t, service.NewNetworkService(quietAnalyzer()))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body["message"], "Mobility Network API is running")
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, service.NewNetworkService(quietAnalyzer()))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
