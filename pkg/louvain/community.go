package louvain

// community tracks the per-community aggregates needed by the local moving
// phase: membership, node counts, total degree and internal weight.
// Internal weight counts each intra-community edge once and self-loops once
// at full weight.
type community struct {
	nodeToComm []int
	size       []int
	totalDeg   []float64
	internal   []float64
}

// newCommunity places every node of the working graph in its own community.
func newCommunity(lg *levelGraph) *community {
	n := lg.numNodes
	c := &community{
		nodeToComm: make([]int, n),
		size:       make([]int, n),
		totalDeg:   make([]float64, n),
		internal:   make([]float64, n),
	}
	for i := 0; i < n; i++ {
		c.nodeToComm[i] = i
		c.size[i] = 1
		c.totalDeg[i] = lg.degrees[i]
		c.internal[i] = lg.loops[i]
	}
	return c
}

// remove takes node v out of community cm. wToComm is the summed weight of
// v's edges into cm, excluding v's own self-loop.
func (c *community) remove(lg *levelGraph, v, cm int, wToComm float64) {
	c.totalDeg[cm] -= lg.degrees[v]
	c.internal[cm] -= wToComm + lg.loops[v]
	c.size[cm]--
	c.nodeToComm[v] = -1
}

// insert puts node v into community cm. wToComm is the summed weight of
// v's edges into cm.
func (c *community) insert(lg *levelGraph, v, cm int, wToComm float64) {
	c.totalDeg[cm] += lg.degrees[v]
	c.internal[cm] += wToComm + lg.loops[v]
	c.size[cm]++
	c.nodeToComm[v] = cm
}

// gain is the modularity gain of inserting the currently removed node v
// into community cm, relative to leaving v isolated:
//
//	dQ(v -> cm) = w(v, cm)/m - degree(v) * totalDeg(cm) / (2 m^2)
func (c *community) gain(lg *levelGraph, v, cm int, wToComm float64) float64 {
	m := lg.totalWeight
	return wToComm/m - lg.degrees[v]*c.totalDeg[cm]/(2*m*m)
}

// modularity computes the quality score of the current community state via
// the community-aggregate form:
//
//	Q = sum_c [ internal(c)/m - (totalDeg(c)/(2m))^2 ]
func (c *community) modularity(lg *levelGraph) float64 {
	m := lg.totalWeight
	if m == 0 {
		return 0
	}
	q := 0.0
	for cm := range c.size {
		if c.size[cm] == 0 {
			continue
		}
		frac := c.totalDeg[cm] / (2 * m)
		q += c.internal[cm]/m - frac*frac
	}
	return q
}
