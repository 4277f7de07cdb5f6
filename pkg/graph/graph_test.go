package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildEmptyInput(t *testing.T) {
	g, err := Build(nil)
	require.Nil(t, g)

	var dataErr *DataError
	require.ErrorAs(t, err, &dataErr)
}

func TestBuildBasicGraph(t *testing.T) {
	g, err := Build([]EdgeRecord{
		{From: "a", To: "b", Weight: 2},
		{From: "b", To: "c", Weight: 1},
	})
	require.NoError(t, err)

	require.Equal(t, 3, g.NumNodes())
	require.Equal(t, 2, g.NumEdges())
	require.Equal(t, []string{"a", "b", "c"}, g.IDs())
	require.InDelta(t, 3.0, g.TotalWeight(), 1e-12)

	b, ok := g.Index("b")
	require.True(t, ok)
	require.InDelta(t, 3.0, g.Degree(b), 1e-12)

	neighbors, ok := g.NeighborWeights("b")
	require.True(t, ok)
	require.Equal(t, map[string]float64{"a": 2, "c": 1}, neighbors)
}

func TestBuildDefaultWeight(t *testing.T) {
	g, err := Build([]EdgeRecord{{From: "x", To: "y"}})
	require.NoError(t, err)
	require.InDelta(t, DefaultEdgeWeight, g.TotalWeight(), 1e-12)
}

func TestBuildAccumulatesParallelEdges(t *testing.T) {
	// Repeated trips between the same pair accumulate weight, in either
	// direction, instead of creating parallel edges.
	g, err := Build([]EdgeRecord{
		{From: "a", To: "b"},
		{From: "b", To: "a"},
		{From: "a", To: "b", Weight: 3},
	})
	require.NoError(t, err)

	require.Equal(t, 2, g.NumNodes())
	require.Equal(t, 1, g.NumEdges())
	require.InDelta(t, 5.0, g.TotalWeight(), 1e-12)

	a, _ := g.Index("a")
	b, _ := g.Index("b")
	require.InDelta(t, 5.0, g.EdgeWeight(a, b), 1e-12)
}

func TestBuildDropsSelfLoops(t *testing.T) {
	g, err := Build([]EdgeRecord{
		{From: "a", To: "a"},
		{From: "a", To: "b"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, g.NumNodes())
	require.Equal(t, 1, g.NumEdges())

	_, ok := g.Index("a")
	require.True(t, ok)
}

func TestBuildOnlySelfLoops(t *testing.T) {
	g, err := Build([]EdgeRecord{
		{From: "a", To: "a"},
		{From: "b", To: "b"},
	})
	require.Nil(t, g)

	var dataErr *DataError
	require.ErrorAs(t, err, &dataErr)
}

func TestBuildRejectsBadRecords(t *testing.T) {
	tests := []struct {
		name    string
		records []EdgeRecord
	}{
		{"blank_endpoint", []EdgeRecord{{From: "", To: "b"}}},
		{"negative_weight", []EdgeRecord{{From: "a", To: "b", Weight: -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.records)
			var dataErr *DataError
			require.ErrorAs(t, err, &dataErr)
		})
	}
}

func TestNeighborsSortedByIndex(t *testing.T) {
	g, err := Build([]EdgeRecord{
		{From: "d", To: "a"},
		{From: "d", To: "c"},
		{From: "d", To: "b"},
	})
	require.NoError(t, err)

	d, _ := g.Index("d")
	adj, wts := g.Neighbors(d)
	require.Len(t, wts, 3)
	for i := 1; i < len(adj); i++ {
		require.Less(t, adj[i-1], adj[i])
	}
}

func TestNilGraphAccessors(t *testing.T) {
	var g *Graph
	require.Equal(t, 0, g.NumNodes())
	require.Equal(t, 0.0, g.TotalWeight())
}
