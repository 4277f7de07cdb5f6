package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"mobility-network-backend/pkg/analysis"
	"mobility-network-backend/pkg/graph"
	"mobility-network-backend/pkg/loader"
	"mobility-network-backend/pkg/viz"
)

// ErrGraphNotLoaded is returned when an operation needs the network graph
// before it has been loaded (or after it was cleared).
var ErrGraphNotLoaded = errors.New("graph data not loaded")

// NetworkService owns the mobility network graph for the lifetime of the
// process. The graph is loaded once at startup, is immutable afterwards,
// and is handed explicitly to each analysis run; there is no package-level
// graph state.
type NetworkService struct {
	analyzer *analysis.Analyzer

	mu    sync.RWMutex
	graph *graph.Graph
}

// NewNetworkService creates a network service around the given analyzer.
func NewNetworkService(analyzer *analysis.Analyzer) *NetworkService {
	return &NetworkService{analyzer: analyzer}
}

// Load reads the trip CSV at path and builds the network graph.
func (s *NetworkService) Load(path string, opts loader.Options) error {
	records, err := loader.LoadEdgeRecords(path, opts)
	if err != nil {
		return err
	}

	g, err := graph.Build(records)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.graph = g
	s.mu.Unlock()

	log.Info().
		Str("path", path).
		Int("nodes", g.NumNodes()).
		Int("edges", g.NumEdges()).
		Float64("total_weight", g.TotalWeight()).
		Msg("Network graph loaded")

	return nil
}

// Graph returns the loaded graph.
func (s *NetworkService) Graph() (*graph.Graph, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.graph == nil {
		return nil, ErrGraphNotLoaded
	}
	return s.graph, nil
}

// Clear drops the loaded graph. Called on shutdown.
func (s *NetworkService) Clear() {
	s.mu.Lock()
	s.graph = nil
	s.mu.Unlock()
	log.Info().Msg("Network graph cleared")
}

// Analyze runs community detection on the loaded graph.
func (s *NetworkService) Analyze(ctx context.Context) (*analysis.Result, error) {
	g, err := s.Graph()
	if err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	log.Info().Str("run_id", runID).Int("nodes", g.NumNodes()).Msg("Starting network analysis")

	result, err := s.analyzer.Analyze(ctx, g)
	if err != nil {
		log.Error().Str("run_id", runID).Err(err).Msg("Network analysis failed")
		return nil, err
	}

	log.Info().
		Str("run_id", runID).
		Float64("modularity", result.Modularity).
		Int("communities", result.Communities).
		Msg("Network analysis completed")

	return result, nil
}

// RenderPNG analyzes the loaded graph and renders it as a PNG colored by
// community.
func (s *NetworkService) RenderPNG(ctx context.Context) ([]byte, error) {
	g, err := s.Graph()
	if err != nil {
		return nil, err
	}

	result, err := s.analyzer.Analyze(ctx, g)
	if err != nil {
		return nil, err
	}

	return viz.Render(g, result.Partition, viz.DefaultRenderOptions())
}
