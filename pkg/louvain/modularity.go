package louvain

import (
	"sort"

	"mobility-network-backend/pkg/graph"
)

// Modularity computes Newman's modularity of a partition over a graph:
//
//	Q = (1/2m) * sum_ij [ A_ij - k_i k_j / 2m ] * delta(c_i, c_j)
//
// evaluated in the community-aggregate form, summing internal weight and
// total degree per community. The score lies in (-0.5, 1.0]. An empty or
// nil graph scores 0. The partition must assign a community to every node;
// a missing assignment is a ComputationError.
func Modularity(g *graph.Graph, partition map[string]int) (float64, error) {
	if g.NumNodes() == 0 {
		return 0, nil
	}
	m := g.TotalWeight()
	if m <= 0 {
		return 0, graph.NewComputationError("graph has non-positive total weight %f", m)
	}

	internal := make(map[int]float64)
	totalDeg := make(map[int]float64)

	for i, id := range g.IDs() {
		cm, ok := partition[id]
		if !ok {
			return 0, graph.NewComputationError("partition has no community for node %q", id)
		}
		totalDeg[cm] += g.Degree(i)

		adj, wts := g.Neighbors(i)
		for j, n := range adj {
			// Count each intra-community edge once.
			if n <= i {
				continue
			}
			if nc, ok := partition[g.ID(n)]; ok && nc == cm {
				internal[cm] += wts[j]
			}
		}
	}

	// Sum in community-id order so the float evaluation order, and with
	// it the score, is identical on every call.
	comms := make([]int, 0, len(totalDeg))
	for cm := range totalDeg {
		comms = append(comms, cm)
	}
	sort.Ints(comms)

	q := 0.0
	for _, cm := range comms {
		frac := totalDeg[cm] / (2 * m)
		q += internal[cm]/m - frac*frac
	}
	return q, nil
}
