package viz

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/mds"

	"mobility-network-backend/pkg/graph"
)

// Position is a 2D coordinate in layout space.
type Position struct {
	X, Y float64
}

// layout holds per-node positions and PageRank-derived importance scores.
type layout struct {
	positions []Position
	scores    []float64
	minX, maxX, minY, maxY float64
	minScore, maxScore     float64
}

const unreachableDistance = 10.0

// computeLayout produces deterministic 2D coordinates for every node using
// classical MDS (Torgerson scaling) over BFS hop distances, plus PageRank
// scores for node sizing. Disconnected components sit at a fixed pseudo
// distance from each other so they end up in separate regions.
func computeLayout(g *graph.Graph) (*layout, error) {
	n := g.NumNodes()
	if n == 0 {
		return nil, graph.NewDataError("cannot lay out an empty graph")
	}

	l := &layout{
		positions: make([]Position, n),
		scores:    make([]float64, n),
	}

	if n == 1 {
		l.scores[0] = 1
		l.minScore, l.maxScore = 1, 1
		return l, nil
	}

	dist := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		row := bfsDistances(g, i)
		for j := i + 1; j < n; j++ {
			d := row[j]
			if d < 0 {
				d = unreachableDistance
			}
			dist.SetSym(i, j, d)
		}
	}

	var coords mat.Dense
	k, err := mds.TorgersonScaling(&coords, nil, dist)
	if err != nil {
		return nil, fmt.Errorf("MDS scaling failed: %v", err)
	}
	if k == 0 {
		return nil, fmt.Errorf("no positive eigenvalues found in MDS")
	}

	_, cols := coords.Dims()
	for i := 0; i < n; i++ {
		x := coords.At(i, 0)
		y := 0.0
		if cols > 1 {
			y = coords.At(i, 1)
		}
		l.positions[i] = Position{X: x, Y: y}
		if i == 0 {
			l.minX, l.maxX = x, x
			l.minY, l.maxY = y, y
		} else {
			if x < l.minX {
				l.minX = x
			}
			if x > l.maxX {
				l.maxX = x
			}
			if y < l.minY {
				l.minY = y
			}
			if y > l.maxY {
				l.maxY = y
			}
		}
	}

	if err := l.computeScores(g); err != nil {
		return nil, err
	}
	return l, nil
}

// computeScores fills in PageRank scores with the standard damping factor.
func (l *layout) computeScores(g *graph.Graph) error {
	scores := network.PageRank(toGonumDirected(g), 0.85, 1e-6)
	if len(scores) == 0 {
		return fmt.Errorf("PageRank returned no scores")
	}

	ids := make([]int64, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	first := true
	for _, id := range ids {
		s := scores[id]
		l.scores[int(id)] = s
		if first {
			l.minScore, l.maxScore = s, s
			first = false
		} else {
			if s < l.minScore {
				l.minScore = s
			}
			if s > l.maxScore {
				l.maxScore = s
			}
		}
	}
	return nil
}

// bfsDistances returns hop distances from source to every node, -1 for
// unreachable ones.
func bfsDistances(g *graph.Graph, source int) []float64 {
	n := g.NumNodes()
	dist := make([]float64, n)
	for i := range dist {
		dist[i] = -1
	}
	dist[source] = 0

	queue := []int{source}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		adj, _ := g.Neighbors(v)
		for _, u := range adj {
			if dist[u] < 0 {
				dist[u] = dist[v] + 1
				queue = append(queue, u)
			}
		}
	}
	return dist
}
