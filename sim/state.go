package sim

// CapacityEpsilon absorbs floating-point drift from repeated subtraction
// when comparing a node's demand against the remaining capacity.
const CapacityEpsilon = 1e-5

// TrajectoryState is the dynamic state of one (instance, trajectory) cell.
//
// Lifecycle: created for every cell at Reset, mutated exactly once per Step,
// discarded at the next Reset. A cell never reads another cell's state.
type TrajectoryState struct {
	CurrentNode       int     // NoNode until the first step
	RemainingCapacity float64 // starts at Capacity, refilled at the depot
	Path              []int   // append-only, one entry per step
	Finished          bool    // monotonic

	// visited is the exclusion set over all P+1 nodes. Customer entries are
	// monotonic. The depot entry is set only on the step the depot is
	// selected and cleared on the next step that leaves it.
	visited []bool
	// mask is visited plus capacity exclusions plus the finished override.
	mask []bool
}

func newTrajectoryState(nodes int) TrajectoryState {
	return TrajectoryState{
		CurrentNode:       NoNode,
		RemainingCapacity: Capacity,
		visited:           make([]bool, nodes),
		mask:              make([]bool, nodes),
	}
}

// Visited reports whether node is in the exclusion set.
func (ts *TrajectoryState) Visited(node int) bool { return ts.visited[node] }

// advance applies one selection. Order matters: the depot unlock must follow
// the visitation mark, and the finished override must follow the capacity
// mask, or the completing step publishes the wrong depot flag.
func (ts *TrajectoryState) advance(selected int, demand []float64) {
	ts.CurrentNode = selected
	ts.Path = append(ts.Path, selected)

	atDepot := selected == Depot
	ts.RemainingCapacity -= demand[selected]
	if atDepot {
		ts.RemainingCapacity = Capacity
	}

	ts.visited[selected] = true
	if !atDepot {
		ts.visited[Depot] = false
	}

	copy(ts.mask, ts.visited)
	for i, d := range demand {
		if ts.RemainingCapacity+CapacityEpsilon < d {
			ts.mask[i] = true
		}
	}

	// The depot flag counts: a trajectory finishes on the step it returns
	// to the depot with every customer served, which closes the tour.
	allVisited := true
	for _, v := range ts.visited {
		if !v {
			allVisited = false
			break
		}
	}
	ts.Finished = ts.Finished || allVisited

	if ts.Finished {
		ts.mask[Depot] = false
	}
}

// routeLength sums dist over consecutive path pairs, treating the path as
// cyclic so the last node connects back to the first.
func (ts *TrajectoryState) routeLength(dist [][]float64) float64 {
	n := len(ts.Path)
	total := 0.0
	for t := 0; t < n; t++ {
		total += dist[ts.Path[t]][ts.Path[(t+1)%n]]
	}
	return total
}
