package graph

import (
	"reflect"
	"testing"
)

// position maps each value to its index in the order.
func position[T comparable](g *Graph[T], order []VertexID) map[T]int {
	pos := make(map[T]int, len(order))
	for i, id := range order {
		pos[*g.Value(id)] = i
	}
	return pos
}

func TestToposortDependenciesFirst(t *testing.T) {
	// expr depends on num and op; op depends on num
	g := New[string](4)
	expr := g.AddVertex("expr")
	num := g.AddVertex("num")
	op := g.AddVertex("op")
	g.AddEdge(expr, num)
	g.AddEdge(expr, op)
	g.AddEdge(op, num)

	topo := Toposort(g)
	if topo.Cyclic {
		t.Fatalf("unexpected cycle: %v", topo.Cycles)
	}
	if len(topo.Order) != 3 {
		t.Fatalf("order = %v, want 3 vertices", topo.Order)
	}
	pos := position(g, topo.Order)
	if pos["num"] > pos["op"] || pos["op"] > pos["expr"] {
		t.Fatalf("dependency order violated: %v", topo.Order)
	}
}

func TestToposortWaveTieBreakIsInsertionOrder(t *testing.T) {
	// three independent vertices: the wave must come out in insertion order
	g := New[string](3)
	g.AddVertex("c")
	g.AddVertex("a")
	g.AddVertex("b")

	topo := Toposort(g)
	if len(topo.Batches) != 1 {
		t.Fatalf("batches = %v, want a single wave", topo.Batches)
	}
	got := make([]string, len(topo.Order))
	for i, id := range topo.Order {
		got[i] = *g.Value(id)
	}
	if !reflect.DeepEqual(got, []string{"c", "a", "b"}) {
		t.Fatalf("order = %v, want insertion order [c a b]", got)
	}
}

func TestToposortIsDeterministic(t *testing.T) {
	build := func() *Graph[string] {
		g := New[string](6)
		ids := make(map[string]VertexID)
		for _, name := range []string{"f", "e", "d", "c", "b", "a"} {
			ids[name] = g.AddVertex(name)
		}
		g.AddEdge(ids["a"], ids["f"])
		g.AddEdge(ids["b"], ids["a"])
		g.AddEdge(ids["d"], ids["b"])
		g.AddEdge(ids["d"], ids["c"])
		g.AddEdge(ids["e"], ids["c"])
		g.AddEdge(ids["e"], ids["f"])
		return g
	}

	first := Toposort(build())
	for range 10 {
		again := Toposort(build())
		if !reflect.DeepEqual(first.Order, again.Order) {
			t.Fatalf("order differs between runs: %v vs %v", first.Order, again.Order)
		}
		if !reflect.DeepEqual(first.Batches, again.Batches) {
			t.Fatalf("batches differ between runs")
		}
	}
}

func TestToposortDuplicateEdges(t *testing.T) {
	// a seq referencing the same rule twice registers two edges; both
	// must be accounted for or the in-degrees never reach zero
	g := New[string](2)
	a := g.AddVertex("a")
	b := g.AddVertex("b")
	g.AddEdge(a, b)
	g.AddEdge(a, b)

	topo := Toposort(g)
	if topo.Cyclic {
		t.Fatalf("unexpected cycle")
	}
	if len(topo.Order) != 2 || topo.Order[0] != b || topo.Order[1] != a {
		t.Fatalf("order = %v, want [b a]", topo.Order)
	}
}

func TestToposortReportsCycle(t *testing.T) {
	g := New[string](3)
	a := g.AddVertex("a")
	b := g.AddVertex("b")
	free := g.AddVertex("free")
	g.AddEdge(a, b)
	g.AddEdge(b, a)

	topo := Toposort(g)
	if !topo.Cyclic {
		t.Fatalf("cycle not detected")
	}
	if !reflect.DeepEqual(topo.Cycles, []VertexID{a, b}) {
		t.Fatalf("cycles = %v, want [%v %v]", topo.Cycles, a, b)
	}
	// the acyclic part is still linearized
	if len(topo.Order) != 1 || topo.Order[0] != free {
		t.Fatalf("order = %v, want [free]", topo.Order)
	}
}

func TestToposortEmptyGraph(t *testing.T) {
	topo := Toposort(New[string](0))
	if topo.Cyclic || len(topo.Order) != 0 || len(topo.Batches) != 0 {
		t.Fatalf("empty graph: %+v", topo)
	}
}

func TestToposortBatchesAreWaves(t *testing.T) {
	// diamond: d depends on b and c, both depend on a
	g := New[string](4)
	d := g.AddVertex("d")
	b := g.AddVertex("b")
	c := g.AddVertex("c")
	a := g.AddVertex("a")
	g.AddEdge(d, b)
	g.AddEdge(d, c)
	g.AddEdge(b, a)
	g.AddEdge(c, a)

	topo := Toposort(g)
	want := [][]VertexID{{a}, {b, c}, {d}}
	if !reflect.DeepEqual(topo.Batches, want) {
		t.Fatalf("batches = %v, want %v", topo.Batches, want)
	}
}
