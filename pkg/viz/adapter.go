// Package viz renders a node-link diagram of an analyzed network, colored
// by community. Layout comes from classical MDS over hop distances; node
// sizing from PageRank. The core only guarantees that the partition covers
// every node; everything visual lives here.
package viz

import (
	"gonum.org/v1/gonum/graph/simple"

	"mobility-network-backend/pkg/graph"
)

// toGonumDirected converts the analysis graph into a gonum weighted
// directed graph, mirroring every undirected edge in both directions,
// which is what PageRank expects. Dense node indices become gonum node IDs.
func toGonumDirected(g *graph.Graph) *simple.WeightedDirectedGraph {
	dg := simple.NewWeightedDirectedGraph(0, 0)
	for i := 0; i < g.NumNodes(); i++ {
		dg.AddNode(simple.Node(int64(i)))
	}
	for i := 0; i < g.NumNodes(); i++ {
		adj, wts := g.Neighbors(i)
		for j, u := range adj {
			if u == i {
				continue
			}
			dg.SetWeightedEdge(dg.NewWeightedEdge(simple.Node(int64(i)), simple.Node(int64(u)), wts[j]))
		}
	}
	return dg
}
