package louvain

import (
	"sort"

	"mobility-network-backend/pkg/graph"
)

// levelGraph is the working graph for one optimization level. The first
// level mirrors the input graph; later levels are aggregates whose
// super-nodes carry self-loops holding the collapsed intra-community
// weight. Self-loops contribute twice to a node's degree and once to the
// total weight, matching the adjacency-matrix convention the modularity
// formula assumes.
type levelGraph struct {
	numNodes    int
	adjacency   [][]int     // proper neighbors only, self excluded
	weights     [][]float64 // weights[i][j] pairs with adjacency[i][j]
	loops       []float64   // self-loop weight per node
	degrees     []float64   // weighted degree, loops counted twice
	totalWeight float64     // every edge once, loops once
}

func newLevelGraph(numNodes int) *levelGraph {
	return &levelGraph{
		numNodes:  numNodes,
		adjacency: make([][]int, numNodes),
		weights:   make([][]float64, numNodes),
		loops:     make([]float64, numNodes),
		degrees:   make([]float64, numNodes),
	}
}

// fromGraph builds the level-0 working graph from the immutable input
// graph. Input graphs are simple, so no loops appear here.
func fromGraph(g *graph.Graph) *levelGraph {
	n := g.NumNodes()
	lg := newLevelGraph(n)
	for i := 0; i < n; i++ {
		adj, wts := g.Neighbors(i)
		lg.adjacency[i] = adj
		lg.weights[i] = wts
		lg.degrees[i] = g.Degree(i)
	}
	lg.totalWeight = g.TotalWeight()
	return lg
}

// addEdge adds an undirected edge between distinct nodes.
func (lg *levelGraph) addEdge(u, v int, w float64) {
	lg.adjacency[u] = append(lg.adjacency[u], v)
	lg.weights[u] = append(lg.weights[u], w)
	lg.adjacency[v] = append(lg.adjacency[v], u)
	lg.weights[v] = append(lg.weights[v], w)
	lg.degrees[u] += w
	lg.degrees[v] += w
	lg.totalWeight += w
}

// addLoop adds self-loop weight to a node.
func (lg *levelGraph) addLoop(v int, w float64) {
	lg.loops[v] += w
	lg.degrees[v] += 2 * w
	lg.totalWeight += w
}

// sortAdjacency orders every adjacency list by neighbor index so node
// visitation inside a pass sees neighbors in a fixed order.
func (lg *levelGraph) sortAdjacency() {
	for i := range lg.adjacency {
		adj, wts := lg.adjacency[i], lg.weights[i]
		idx := make([]int, len(adj))
		for j := range idx {
			idx[j] = j
		}
		sort.Slice(idx, func(a, b int) bool { return adj[idx[a]] < adj[idx[b]] })
		sortedAdj := make([]int, len(adj))
		sortedWts := make([]float64, len(wts))
		for j, k := range idx {
			sortedAdj[j] = adj[k]
			sortedWts[j] = wts[k]
		}
		lg.adjacency[i] = sortedAdj
		lg.weights[i] = sortedWts
	}
}
