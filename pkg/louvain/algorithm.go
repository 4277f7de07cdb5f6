// Package louvain implements the Louvain community detection method:
// greedy modularity optimization alternating a local node-moving phase with
// hierarchical graph aggregation. The implementation is fully deterministic:
// nodes are visited in ascending index order and gain ties are broken by the
// lowest community id, so the same graph always yields the same partition.
package louvain

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"mobility-network-backend/pkg/graph"
)

// Result represents the algorithm output.
type Result struct {
	Membership     []int        `json:"membership"` // original node index -> community id
	Modularity     float64      `json:"modularity"`
	NumCommunities int          `json:"num_communities"`
	NumLevels      int          `json:"num_levels"`
	Levels         []LevelStats `json:"levels"`
	RuntimeMS      int64        `json:"runtime_ms"`
}

// LevelStats contains per-level statistics.
type LevelStats struct {
	Level             int     `json:"level"`
	Nodes             int     `json:"nodes"`
	Communities       int     `json:"communities"`
	Passes            int     `json:"passes"`
	Moves             int     `json:"moves"`
	InitialModularity float64 `json:"initial_modularity"`
	FinalModularity   float64 `json:"final_modularity"`
	RuntimeMS         int64   `json:"runtime_ms"`
}

// Run executes the complete Louvain algorithm on the given graph.
// It fails with a DataError when the graph has no nodes; the facade is
// expected to short-circuit that case before reaching the optimizer.
func Run(ctx context.Context, g *graph.Graph, cfg *Config) (*Result, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	start := time.Now()
	logger := cfg.CreateLogger()

	n := g.NumNodes()
	if n == 0 {
		return nil, graph.NewDataError("cannot detect communities on an empty graph")
	}
	if g.TotalWeight() <= 0 {
		return nil, graph.NewComputationError("graph has non-positive total weight %f", g.TotalWeight())
	}

	logger.Info().
		Int("nodes", n).
		Float64("total_weight", g.TotalWeight()).
		Msg("Starting Louvain algorithm")

	// membership[i] is the working-graph node that original node i
	// currently belongs to, composed across levels.
	membership := make([]int, n)
	for i := range membership {
		membership[i] = i
	}

	result := &Result{}
	lg := fromGraph(g)

	for level := 0; level < cfg.MaxLevels(); level++ {
		levelStart := time.Now()
		comm := newCommunity(lg)
		initialQ := comm.modularity(lg)

		// Phase 1: local moving.
		improved, moves, passes := oneLevel(lg, comm, cfg, logger)
		finalQ := comm.modularity(lg)

		numCommunities := 0
		for cm := range comm.size {
			if comm.size[cm] > 0 {
				numCommunities++
			}
		}

		result.Levels = append(result.Levels, LevelStats{
			Level:             level,
			Nodes:             lg.numNodes,
			Communities:       numCommunities,
			Passes:            passes,
			Moves:             moves,
			InitialModularity: initialQ,
			FinalModularity:   finalQ,
			RuntimeMS:         time.Since(levelStart).Milliseconds(),
		})
		result.Modularity = finalQ

		logger.Info().
			Int("level", level).
			Int("nodes", lg.numNodes).
			Int("communities", numCommunities).
			Int("moves", moves).
			Float64("modularity", finalQ).
			Msg("Level completed")

		if !improved {
			// The previous level's partition was already a local
			// optimum; membership is unchanged.
			logger.Info().Int("level", level).Msg("No improvement, stopping")
			break
		}

		// Phase 2: aggregation.
		super, nodeToSuper := aggregate(lg, comm)
		for i := range membership {
			membership[i] = nodeToSuper[membership[i]]
		}

		if super.numNodes >= lg.numNodes {
			logger.Info().Int("level", level).Msg("No compression achieved, stopping")
			lg = super
			break
		}
		lg = super

		if lg.numNodes == 1 {
			logger.Info().Int("level", level).Msg("Single community remaining, stopping")
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
	}

	result.Membership = membership
	result.NumLevels = len(result.Levels)
	result.NumCommunities = lg.numNodes
	result.RuntimeMS = time.Since(start).Milliseconds()

	logger.Info().
		Int("levels", result.NumLevels).
		Int("communities", result.NumCommunities).
		Float64("final_modularity", result.Modularity).
		Int64("runtime_ms", result.RuntimeMS).
		Msg("Louvain algorithm completed")

	return result, nil
}

// oneLevel performs the local moving phase on the working graph. Each node
// is removed from its community and reinserted into the adjacent community
// with the greatest gain; the current community wins gain ties against
// other candidates, and ties between other candidates go to the lowest
// community id. Passes repeat until one makes no move or the configured
// pass cap is hit.
func oneLevel(lg *levelGraph, comm *community, cfg *Config, logger zerolog.Logger) (improved bool, totalMoves, passes int) {
	minGain := cfg.MinModularityGain()
	maxPasses := cfg.MaxPasses()

	for pass := 0; pass < maxPasses; pass++ {
		passes = pass + 1
		passMoves := 0

		for v := 0; v < lg.numNodes; v++ {
			cur := comm.nodeToComm[v]

			// Edge weight from v into each adjacent community.
			adj, wts := lg.adjacency[v], lg.weights[v]
			neigh := make(map[int]float64, len(adj))
			for j, u := range adj {
				neigh[comm.nodeToComm[u]] += wts[j]
			}

			wCur := neigh[cur]
			comm.remove(lg, v, cur, wCur)

			stayGain := comm.gain(lg, v, cur, wCur)
			best, bestGain := cur, stayGain
			for cm, w := range neigh {
				if cm == cur {
					continue
				}
				gn := comm.gain(lg, v, cm, w)
				if gn > bestGain || (gn == bestGain && best != cur && cm < best) {
					best, bestGain = cm, gn
				}
			}

			// A move must beat staying by strictly more than the
			// configured gain threshold.
			if best != cur && bestGain-stayGain <= minGain {
				best = cur
			}

			comm.insert(lg, v, best, neigh[best])
			if best != cur {
				passMoves++
				improved = true
			}
		}

		totalMoves += passMoves

		if cfg.EnableProgress() && pass%10 == 0 {
			logger.Debug().
				Int("pass", pass+1).
				Int("moves", passMoves).
				Float64("modularity", comm.modularity(lg)).
				Msg("Local optimization progress")
		}

		if passMoves == 0 {
			break
		}
	}

	return improved, totalMoves, passes
}

// aggregate collapses each surviving community into a super-node.
// Inter-community weights are summed onto super-edges; intra-community
// weight becomes the super-node's self-loop. The returned slice maps each
// working-graph node to its super-node index.
func aggregate(lg *levelGraph, comm *community) (*levelGraph, []int) {
	commToSuper := make([]int, lg.numNodes)
	numSuper := 0
	for cm := 0; cm < lg.numNodes; cm++ {
		if comm.size[cm] > 0 {
			commToSuper[cm] = numSuper
			numSuper++
		} else {
			commToSuper[cm] = -1
		}
	}

	super := newLevelGraph(numSuper)
	for cm, s := range commToSuper {
		if s >= 0 && comm.internal[cm] > 0 {
			super.addLoop(s, comm.internal[cm])
		}
	}

	edges := make(map[[2]int]float64)
	for v := 0; v < lg.numNodes; v++ {
		sv := commToSuper[comm.nodeToComm[v]]
		for j, u := range lg.adjacency[v] {
			if u <= v {
				continue
			}
			su := commToSuper[comm.nodeToComm[u]]
			if su == sv {
				continue
			}
			key := [2]int{sv, su}
			if key[1] < key[0] {
				key[0], key[1] = key[1], key[0]
			}
			edges[key] += lg.weights[v][j]
		}
	}
	// Insert super-edges in sorted order so weight accumulation happens
	// in the same float order on every run.
	keys := make([][2]int, 0, len(edges))
	for e := range edges {
		keys = append(keys, e)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})
	for _, e := range keys {
		super.addEdge(e[0], e[1], edges[e])
	}
	super.sortAdjacency()

	nodeToSuper := make([]int, lg.numNodes)
	for v := range nodeToSuper {
		nodeToSuper[v] = commToSuper[comm.nodeToComm[v]]
	}
	return super, nodeToSuper
}
