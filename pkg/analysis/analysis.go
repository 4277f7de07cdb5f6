// Package analysis composes the graph store, the Louvain optimizer and the
// modularity evaluator into the single operation the service layer consumes.
package analysis

import (
	"context"

	"github.com/rs/zerolog/log"

	"mobility-network-backend/pkg/graph"
	"mobility-network-backend/pkg/louvain"
)

// AlgorithmName is the fixed label reported to API consumers.
const AlgorithmName = "Louvain"

// Detector runs community detection over a graph. It exists as an
// interface so tests can verify the empty-graph short-circuit never
// reaches the optimizer.
type Detector interface {
	Detect(ctx context.Context, g *graph.Graph) (*louvain.Result, error)
}

type louvainDetector struct {
	cfg *louvain.Config
}

func (d *louvainDetector) Detect(ctx context.Context, g *graph.Graph) (*louvain.Result, error) {
	return louvain.Run(ctx, g, d.cfg)
}

// Result is the facade output: the quality score, the community and node
// counts, and the full partition over original node identifiers.
type Result struct {
	Modularity  float64
	Communities int
	Nodes       int
	Partition   map[string]int
}

// Analyzer is the analysis facade. It is stateless apart from its
// configuration; concurrent Analyze calls on distinct graphs are safe.
type Analyzer struct {
	detector Detector
}

// NewAnalyzer creates an analyzer backed by the Louvain optimizer.
func NewAnalyzer(cfg *louvain.Config) *Analyzer {
	if cfg == nil {
		cfg = louvain.NewConfig()
	}
	return &Analyzer{detector: &louvainDetector{cfg: cfg}}
}

// newAnalyzerWithDetector is the test seam.
func newAnalyzerWithDetector(d Detector) *Analyzer {
	return &Analyzer{detector: d}
}

// Analyze partitions the graph into communities and scores the partition.
// A nil or empty graph short-circuits to a zero result without invoking
// the optimizer. The returned partition covers every node in the graph
// exactly once.
func (a *Analyzer) Analyze(ctx context.Context, g *graph.Graph) (*Result, error) {
	if g.NumNodes() == 0 {
		return &Result{Partition: map[string]int{}}, nil
	}

	res, err := a.detector.Detect(ctx, g)
	if err != nil {
		return nil, err
	}

	partition := make(map[string]int, g.NumNodes())
	communities := make(map[int]struct{})
	for i, id := range g.IDs() {
		cm := res.Membership[i]
		partition[id] = cm
		communities[cm] = struct{}{}
	}

	modularity, err := louvain.Modularity(g, partition)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Int("nodes", g.NumNodes()).
		Int("communities", len(communities)).
		Float64("modularity", modularity).
		Msg("Analysis completed")

	return &Result{
		Modularity:  modularity,
		Communities: len(communities),
		Nodes:       g.NumNodes(),
		Partition:   partition,
	}, nil
}
