// Package graph provides the immutable weighted undirected graph the
// community detection pipeline operates on. A graph is built once from
// edge records and never mutated afterwards; repeated edges between the
// same station pair accumulate weight instead of creating parallel edges.
package graph

import "sort"

// DefaultEdgeWeight is used for edge records that carry no weight value.
const DefaultEdgeWeight = 1.0

// EdgeRecord is a single trip record handed over by the input collaborator.
// A Weight of zero means "no weight column present" and is substituted with
// DefaultEdgeWeight during Build.
type EdgeRecord struct {
	From   string
	To     string
	Weight float64
}

// Graph is an undirected, simple, weighted graph over string node IDs.
// Nodes are addressed internally by dense indices assigned in ascending
// ID order, which keeps every downstream iteration deterministic.
type Graph struct {
	ids         []string
	index       map[string]int
	adjacency   [][]int
	weights     [][]float64
	degrees     []float64
	totalWeight float64
	numEdges    int
}

// Build constructs a graph from a sequence of edge records.
//
// Self-loop records (From == To) are silently dropped rather than rejected,
// matching common edge-list semantics; this is a deliberate, tested choice.
// Build fails with a DataError if the sequence is empty, if a record has a
// blank endpoint or a negative weight, or if every record was a self-loop.
func Build(records []EdgeRecord) (*Graph, error) {
	if len(records) == 0 {
		return nil, NewDataError("no edge records provided")
	}

	type pair struct{ u, v string }
	accumulated := make(map[pair]float64)

	for _, rec := range records {
		if rec.From == "" || rec.To == "" {
			return nil, NewDataError("edge record has a blank endpoint")
		}
		if rec.Weight < 0 {
			return nil, NewDataError("edge weight must be positive, got %f", rec.Weight)
		}
		if rec.From == rec.To {
			// Self-loop: dropped by design.
			continue
		}

		w := rec.Weight
		if w == 0 {
			w = DefaultEdgeWeight
		}

		p := pair{rec.From, rec.To}
		if p.v < p.u {
			p.u, p.v = p.v, p.u
		}
		accumulated[p] += w
	}

	if len(accumulated) == 0 {
		return nil, NewDataError("no usable edges after dropping self-loops")
	}

	idSet := make(map[string]struct{})
	for p := range accumulated {
		idSet[p.u] = struct{}{}
		idSet[p.v] = struct{}{}
	}

	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	g := &Graph{
		ids:       ids,
		index:     make(map[string]int, len(ids)),
		adjacency: make([][]int, len(ids)),
		weights:   make([][]float64, len(ids)),
		degrees:   make([]float64, len(ids)),
	}
	for i, id := range ids {
		g.index[id] = i
	}

	pairs := make([]pair, 0, len(accumulated))
	for p := range accumulated {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].u != pairs[j].u {
			return pairs[i].u < pairs[j].u
		}
		return pairs[i].v < pairs[j].v
	})

	for _, p := range pairs {
		w := accumulated[p]
		u := g.index[p.u]
		v := g.index[p.v]
		g.adjacency[u] = append(g.adjacency[u], v)
		g.weights[u] = append(g.weights[u], w)
		g.adjacency[v] = append(g.adjacency[v], u)
		g.weights[v] = append(g.weights[v], w)
		g.degrees[u] += w
		g.degrees[v] += w
		g.totalWeight += w
		g.numEdges++
	}

	// Sort each adjacency list by neighbor index so traversal order does
	// not depend on map iteration.
	for i := range g.adjacency {
		idx := make([]int, len(g.adjacency[i]))
		for j := range idx {
			idx[j] = j
		}
		adj, wts := g.adjacency[i], g.weights[i]
		sort.Slice(idx, func(a, b int) bool { return adj[idx[a]] < adj[idx[b]] })
		sortedAdj := make([]int, len(adj))
		sortedWts := make([]float64, len(wts))
		for j, k := range idx {
			sortedAdj[j] = adj[k]
			sortedWts[j] = wts[k]
		}
		g.adjacency[i] = sortedAdj
		g.weights[i] = sortedWts
	}

	return g, nil
}

// NumNodes returns the number of nodes.
func (g *Graph) NumNodes() int {
	if g == nil {
		return 0
	}
	return len(g.ids)
}

// NumEdges returns the number of distinct edges.
func (g *Graph) NumEdges() int { return g.numEdges }

// IDs returns the node identifiers in ascending order. The returned slice
// is the graph's backing storage and must not be modified.
func (g *Graph) IDs() []string { return g.ids }

// ID returns the node identifier for a dense index.
func (g *Graph) ID(i int) string { return g.ids[i] }

// Index returns the dense index for a node identifier.
func (g *Graph) Index(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// Neighbors returns the neighbor indices and corresponding edge weights of
// node i. Both slices are backing storage and must not be modified.
func (g *Graph) Neighbors(i int) ([]int, []float64) {
	return g.adjacency[i], g.weights[i]
}

// NeighborWeights returns the neighbors of a node keyed by identifier.
func (g *Graph) NeighborWeights(id string) (map[string]float64, bool) {
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	out := make(map[string]float64, len(g.adjacency[i]))
	for j, n := range g.adjacency[i] {
		out[g.ids[n]] = g.weights[i][j]
	}
	return out, true
}

// Degree returns the weighted degree of node i.
func (g *Graph) Degree(i int) float64 { return g.degrees[i] }

// TotalWeight returns the sum of all edge weights, each edge counted once.
func (g *Graph) TotalWeight() float64 {
	if g == nil {
		return 0
	}
	return g.totalWeight
}

// EdgeWeight returns the weight of the edge between u and v, or 0 if the
// nodes are not adjacent.
func (g *Graph) EdgeWeight(u, v int) float64 {
	for j, n := range g.adjacency[u] {
		if n == v {
			return g.weights[u][j]
		}
	}
	return 0
}
