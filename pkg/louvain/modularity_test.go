package louvain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mobility-network-backend/pkg/graph"
)

func buildGraph(t *testing.T, records []graph.EdgeRecord) *graph.Graph {
	t.Helper()
	g, err := graph.Build(records)
	require.NoError(t, err)
	return g
}

func triangle(t *testing.T) *graph.Graph {
	return buildGraph(t, []graph.EdgeRecord{
		{From: "1", To: "2"},
		{From: "2", To: "3"},
		{From: "3", To: "1"},
	})
}

func TestModularitySingleCommunityIsZero(t *testing.T) {
	g := triangle(t)
	q, err := Modularity(g, map[string]int{"1": 0, "2": 0, "3": 0})
	require.NoError(t, err)
	require.InDelta(t, 0.0, q, 1e-12)
}

func TestModularitySingletonsNonPositive(t *testing.T) {
	g := triangle(t)
	q, err := Modularity(g, map[string]int{"1": 0, "2": 1, "3": 2})
	require.NoError(t, err)
	require.LessOrEqual(t, q, 0.0)
	// Each singleton contributes -(k/2m)^2 = -(2/6)^2.
	require.InDelta(t, -1.0/3.0, q, 1e-12)
}

func TestModularityTwoTriangles(t *testing.T) {
	g := buildGraph(t, []graph.EdgeRecord{
		{From: "1", To: "2"}, {From: "2", To: "3"}, {From: "3", To: "1"},
		{From: "4", To: "5"}, {From: "5", To: "6"}, {From: "6", To: "4"},
		{From: "3", To: "4"},
	})
	partition := map[string]int{
		"1": 0, "2": 0, "3": 0,
		"4": 1, "5": 1, "6": 1,
	}
	q, err := Modularity(g, partition)
	require.NoError(t, err)
	// m = 7, each triangle: internal 3, degree 7.
	want := 2 * (3.0/7.0 - 0.25)
	require.InDelta(t, want, q, 1e-12)
	require.Greater(t, q, 0.3)
}

func TestModularityBounds(t *testing.T) {
	g := buildGraph(t, []graph.EdgeRecord{
		{From: "a", To: "b", Weight: 4},
		{From: "b", To: "c"},
		{From: "c", To: "d", Weight: 2},
		{From: "d", To: "a"},
	})
	partitions := []map[string]int{
		{"a": 0, "b": 0, "c": 0, "d": 0},
		{"a": 0, "b": 0, "c": 1, "d": 1},
		{"a": 0, "b": 1, "c": 2, "d": 3},
		{"a": 5, "b": 9, "c": 5, "d": 9},
	}
	for _, p := range partitions {
		q, err := Modularity(g, p)
		require.NoError(t, err)
		require.Greater(t, q, -0.5)
		require.LessOrEqual(t, q, 1.0)
	}
}

func TestModularityEmptyGraphIsZero(t *testing.T) {
	q, err := Modularity(nil, map[string]int{})
	require.NoError(t, err)
	require.Equal(t, 0.0, q)
}

func TestModularityMissingAssignment(t *testing.T) {
	g := triangle(t)
	_, err := Modularity(g, map[string]int{"1": 0, "2": 0})

	var compErr *graph.ComputationError
	require.ErrorAs(t, err, &compErr)
}
