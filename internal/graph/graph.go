// Package graph is a small arena-backed digraph used to order rule
// emission. Vertices are dense uint32 handles into a value slice; the
// caller keeps the name-to-handle map, so identity is resolved in
// exactly one place.
package graph

import (
	"fmt"

	"fortio.org/safecast"
)

type VertexID uint32

type Graph[T any] struct {
	values []T
	edges  [][]VertexID // edges[from] = []to, "from depends on to"
}

func New[T any](capHint uint) *Graph[T] {
	return &Graph[T]{
		values: make([]T, 0, capHint),
		edges:  make([][]VertexID, 0, capHint),
	}
}

// AddVertex stores value and returns its handle. Handles are assigned
// in insertion order, which is what the toposort tie-break relies on.
func (g *Graph[T]) AddVertex(value T) VertexID {
	id, err := safecast.Conv[VertexID](len(g.values))
	if err != nil {
		panic(fmt.Errorf("vertex id overflow: %w", err))
	}
	g.values = append(g.values, value)
	g.edges = append(g.edges, nil)
	return id
}

func (g *Graph[T]) AddEdge(from, to VertexID) {
	g.edges[from] = append(g.edges[from], to)
}

func (g *Graph[T]) OutEdges(id VertexID) []VertexID {
	return g.edges[id]
}

func (g *Graph[T]) Len() int {
	return len(g.values)
}

// Value returns a pointer into the arena; callers may update the
// payload in place.
func (g *Graph[T]) Value(id VertexID) *T {
	return &g.values[id]
}
