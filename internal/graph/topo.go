package graph

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

type Topo struct {
	Order   []VertexID   // dependencies-first linearization
	Batches [][]VertexID // waves of vertices with all dependencies met
	Cyclic  bool
	Cycles  []VertexID // vertices left inside a cycle, ascending
}

// Toposort runs Kahn's algorithm over the reversed edge relation: an
// edge from -> to means "to must be emitted at or before from", so the
// in-degree of a vertex is its number of unmet dependencies and the
// order comes out dependencies-first.
//
// Tie-break policy, part of the contract: ready vertices are collected
// in waves, and each wave is processed in vertex insertion order. Two
// runs over the same insertion and edge sequence produce the same
// order.
//
// On a cyclic graph every vertex still trapped in a cycle is reported
// in Cycles; the order is left truncated and Cyclic is set. Callers
// must treat that as an error, never as output.
func Toposort[T any](g *Graph[T]) *Topo {
	n := g.Len()
	indeg := make([]int, n)
	dependents := make([][]VertexID, n)
	for from := range n {
		for _, to := range g.edges[from] {
			indeg[from]++
			dependents[to] = append(dependents[to], vertexID(from))
		}
	}

	topo := &Topo{Order: make([]VertexID, 0, n)}

	current := make([]VertexID, 0, n)
	for i := range n {
		if indeg[i] == 0 {
			current = append(current, vertexID(i))
		}
	}

	visited := 0
	for len(current) > 0 {
		batch := make([]VertexID, len(current))
		copy(batch, current)
		topo.Batches = append(topo.Batches, batch)

		next := make([]VertexID, 0)
		for _, id := range batch {
			topo.Order = append(topo.Order, id)
			visited++
			for _, dep := range dependents[id] {
				indeg[dep]--
				if indeg[dep] == 0 {
					next = append(next, dep)
				}
			}
		}
		slices.Sort(next)
		current = next
	}

	if visited != n {
		topo.Cyclic = true
		for i := range n {
			if indeg[i] > 0 {
				topo.Cycles = append(topo.Cycles, vertexID(i))
			}
		}
		slices.Sort(topo.Cycles)
	}

	return topo
}

func vertexID(i int) VertexID {
	id, err := safecast.Conv[VertexID](i)
	if err != nil {
		panic(fmt.Errorf("vertex id overflow: %w", err))
	}
	return id
}
