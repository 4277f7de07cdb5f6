package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"mobility-network-backend/pkg/graph"
	"mobility-network-backend/pkg/louvain"
)

// spyDetector records whether the optimizer was invoked.
type spyDetector struct {
	invoked bool
	inner   Detector
}

func (s *spyDetector) Detect(ctx context.Context, g *graph.Graph) (*louvain.Result, error) {
	s.invoked = true
	return s.inner.Detect(ctx, g)
}

func quietConfig() *louvain.Config {
	cfg := louvain.NewConfig()
	cfg.Set("logging.level", "error")
	cfg.Set("logging.enable_progress", false)
	return cfg
}

func TestAnalyzeEmptyGraphShortCircuits(t *testing.T) {
	spy := &spyDetector{inner: &louvainDetector{cfg: quietConfig()}}
	a := newAnalyzerWithDetector(spy)

	res, err := a.Analyze(context.Background(), nil)
	require.NoError(t, err)

	require.Equal(t, 0.0, res.Modularity)
	require.Equal(t, 0, res.Communities)
	require.Equal(t, 0, res.Nodes)
	require.Empty(t, res.Partition)
	require.False(t, spy.invoked, "optimizer must not run for an empty graph")
}

func TestAnalyzeTriangle(t *testing.T) {
	g, err := graph.Build([]graph.EdgeRecord{
		{From: "1", To: "2"},
		{From: "2", To: "3"},
		{From: "3", To: "1"},
	})
	require.NoError(t, err)

	a := NewAnalyzer(quietConfig())
	res, err := a.Analyze(context.Background(), g)
	require.NoError(t, err)

	require.Equal(t, 3, res.Nodes)
	require.GreaterOrEqual(t, res.Communities, 1)
	require.GreaterOrEqual(t, res.Modularity, 0.0)
}

func TestAnalyzePartitionTotality(t *testing.T) {
	g, err := graph.Build([]graph.EdgeRecord{
		{From: "1", To: "2"}, {From: "2", To: "3"}, {From: "3", To: "1"},
		{From: "4", To: "5"}, {From: "5", To: "6"}, {From: "6", To: "4"},
		{From: "3", To: "4"},
	})
	require.NoError(t, err)

	a := NewAnalyzer(quietConfig())
	res, err := a.Analyze(context.Background(), g)
	require.NoError(t, err)

	require.Len(t, res.Partition, g.NumNodes())
	for _, id := range g.IDs() {
		require.Contains(t, res.Partition, id)
	}
	require.Equal(t, 2, res.Communities)
	require.Greater(t, res.Modularity, 0.3)
}

func TestAnalyzeDeterministic(t *testing.T) {
	g, err := graph.Build([]graph.EdgeRecord{
		{From: "1", To: "2"}, {From: "2", To: "3"}, {From: "3", To: "1"},
		{From: "4", To: "5"}, {From: "5", To: "6"}, {From: "6", To: "4"},
		{From: "3", To: "4"},
	})
	require.NoError(t, err)

	a := NewAnalyzer(quietConfig())
	first, err := a.Analyze(context.Background(), g)
	require.NoError(t, err)
	second, err := a.Analyze(context.Background(), g)
	require.NoError(t, err)

	require.Equal(t, first.Partition, second.Partition)
	require.Equal(t, first.Modularity, second.Modularity)
}

func TestAnalyzeCountsDistinctCommunityIDs(t *testing.T) {
	// Community ids out of the detector need not be contiguous; the
	// facade counts distinct ids actually used.
	g, err := graph.Build([]graph.EdgeRecord{{From: "a", To: "b"}, {From: "c", To: "d"}})
	require.NoError(t, err)

	a := newAnalyzerWithDetector(detectorFunc(func(ctx context.Context, g *graph.Graph) (*louvain.Result, error) {
		return &louvain.Result{Membership: []int{7, 7, 42, 42}}, nil
	}))

	res, err := a.Analyze(context.Background(), g)
	require.NoError(t, err)
	require.Equal(t, 2, res.Communities)
}

type detectorFunc func(ctx context.Context, g *graph.Graph) (*louvain.Result, error)

func (f detectorFunc) Detect(ctx context.Context, g *graph.Graph) (*louvain.Result, error) {
	return f(ctx, g)
}
