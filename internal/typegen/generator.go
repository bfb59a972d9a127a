// Package typegen drives normalization and type derivation for one
// grammar: rules are hoisted, their references become graph edges, and
// generation walks the dependency order. A Generator is single-use;
// build a fresh one per run so names and edges never leak between runs.
package typegen

import (
	"errors"
	"fmt"
	"strings"

	"astgen/internal/asttype"
	"astgen/internal/grammar"
	"astgen/internal/graph"
	"astgen/internal/names"
)

var (
	// ErrCyclicDependency means rules reference each other in a cycle
	// that cannot be linearized into the declared type block.
	ErrCyclicDependency = errors.New("cyclic rule dependency")
	// ErrDanglingReference means a body names a rule that was never
	// registered.
	ErrDanglingReference = errors.New("dangling rule reference")
)

type vertex struct {
	name     string
	terminal bool
}

type Generator struct {
	graph  *graph.Graph[vertex]
	verts  map[string]graph.VertexID
	rules  map[string]grammar.Body
	extras []string // extra rule names, encounter order
	gen    *names.Gen
}

func New() *Generator {
	return &Generator{
		graph: graph.New[vertex](16),
		verts: make(map[string]graph.VertexID),
		rules: make(map[string]grammar.Body),
		gen:   names.NewGen(),
	}
}

// NewFor returns a generator with every rule name of g reserved up
// front, so a synthetic name can never shadow a rule that merely
// happens to be added later.
func NewFor(g *grammar.Grammar) *Generator {
	gen := New()
	for _, r := range g.Rules {
		gen.gen.Reserve(r.Name)
	}
	return gen
}

// Run generates the ordered type sequence for a whole grammar.
func Run(g *grammar.Grammar) ([]asttype.Type, error) {
	gen := NewFor(g)
	for _, r := range g.Rules {
		if err := gen.AddRule(r); err != nil {
			return nil, err
		}
	}
	return gen.Generate()
}

// AddRule normalizes one rule and records it. Hoisted sub-expressions
// are queued and processed breadth-first until the rule is fully
// flattened; each flattened pair either lands in the dependency graph
// or, for extra rules, in the side list that bypasses ordering.
func (g *Generator) AddRule(r grammar.Rule) error {
	g.gen.Reserve(r.Name)

	queue := []grammar.Pending{{Name: r.Name, Body: r.Body}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		body, subs, err := grammar.Hoist(r.Name, p.Body, grammar.IsChoice, g.gen)
		if err != nil {
			return fmt.Errorf("rule %q: %w", r.Name, err)
		}
		queue = append(queue, subs...)

		if r.IsExtra {
			g.extras = append(g.extras, p.Name)
			if id, ok := g.verts[p.Name]; ok {
				g.graph.Value(id).terminal = grammar.IsTerminal(body)
			}
		} else {
			g.connect(r.Name, p.Name, body)
		}
		g.rules[p.Name] = body
	}
	return nil
}

// connect registers the vertex for name and one edge per referenced
// nonterminal. References back to the owning rule are skipped: a
// self-recursive rule is a legitimate recursive type, not a cycle.
func (g *Generator) connect(owner, name string, body grammar.Body) {
	uid := g.vertexFor(name)
	g.graph.Value(uid).terminal = grammar.IsTerminal(body)

	seen := make(map[graph.VertexID]struct{})
	for _, dep := range grammar.Nonterminals(body) {
		if dep == owner {
			continue
		}
		vid := g.vertexFor(dep)
		if _, dup := seen[vid]; dup {
			continue
		}
		seen[vid] = struct{}{}
		g.graph.AddEdge(uid, vid)
	}
}

func (g *Generator) vertexFor(name string) graph.VertexID {
	if id, ok := g.verts[name]; ok {
		return id
	}
	v := vertex{name: name}
	if body, ok := g.rules[name]; ok {
		// already registered through the extras path
		v.terminal = grammar.IsTerminal(body)
	}
	id := g.graph.AddVertex(v)
	g.verts[name] = id
	return id
}

// OrderedRule is one entry of the final emission order.
type OrderedRule struct {
	Name     string
	Body     grammar.Body
	Terminal bool
	Extra    bool
}

// Ordered returns every flattened rule in emission order: the
// topological order of the dependency graph first, then the extras in
// their original relative order. Extras that were pulled into the
// graph by a reference from an ordered rule are emitted once, in their
// topological position.
func (g *Generator) Ordered() ([]OrderedRule, error) {
	topo := graph.Toposort(g.graph)
	if topo.Cyclic {
		cycleNames := make([]string, len(topo.Cycles))
		for i, id := range topo.Cycles {
			cycleNames[i] = g.graph.Value(id).name
		}
		return nil, fmt.Errorf("%w: %s", ErrCyclicDependency, strings.Join(cycleNames, ", "))
	}

	out := make([]OrderedRule, 0, len(g.rules))
	emitted := make(map[string]struct{}, len(g.rules))
	for _, id := range topo.Order {
		v := g.graph.Value(id)
		body, ok := g.rules[v.name]
		if !ok {
			return nil, fmt.Errorf("%w: rule %q is referenced but never defined", ErrDanglingReference, v.name)
		}
		out = append(out, OrderedRule{Name: v.name, Body: body, Terminal: v.terminal})
		emitted[v.name] = struct{}{}
	}
	for _, name := range g.extras {
		if _, done := emitted[name]; done {
			continue
		}
		emitted[name] = struct{}{}
		out = append(out, OrderedRule{
			Name:     name,
			Body:     g.rules[name],
			Terminal: grammar.IsTerminal(g.rules[name]),
			Extra:    true,
		})
	}
	return out, nil
}

// Generate maps the emission order through type synthesis. It either
// returns the complete ordered sequence or fails with no output.
func (g *Generator) Generate() ([]asttype.Type, error) {
	ordered, err := g.Ordered()
	if err != nil {
		return nil, err
	}
	types := make([]asttype.Type, len(ordered))
	for i, r := range ordered {
		types[i] = asttype.Synthesize(r.Name, r.Body)
	}
	return types, nil
}
