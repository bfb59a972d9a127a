package grammar

import (
	"astgen/internal/names"
)

// Pending is a freshly named sub-expression extracted by hoisting,
// waiting for its own normalization pass.
type Pending struct {
	Name string
	Body Body
}

// IsChoice is the hoisting predicate used during normalization: the
// target type system has exactly one sum type per rule, so every
// nested choice needs its own named rule.
func IsChoice(b Body) bool {
	_, ok := b.(Choice)
	return ok
}

type hoisted struct {
	subs []Pending
	err  error
}

// Hoist rewrites body so that every sub-expression matching pred, at
// any depth below the top level, is replaced by a Symbol referencing a
// fresh rule named after owner; the extracted sub-expressions are
// returned for re-enqueueing, unexamined — their own insides are
// normalized on their turn through the queue. A node matching pred at
// the top level is not hoisted, only its children are. Precedence
// wrappers are transparent for the predicate and erased in the result.
func Hoist(owner string, body Body, pred func(Body) bool, gen *names.Gen) (Body, []Pending, error) {
	rewritten, side := MapChildren(body, func(children []Body) ([]Body, hoisted) {
		var h hoisted
		out := make([]Body, len(children))
		for i, c := range children {
			if h.err != nil {
				out[i] = c
				continue
			}
			target := stripPrec(c)
			if pred(target) {
				fresh, err := gen.Fresh(owner)
				if err != nil {
					h.err = err
					out[i] = c
					continue
				}
				h.subs = append(h.subs, Pending{Name: fresh, Body: target})
				out[i] = Symbol{Name: fresh}
				continue
			}
			// composite child: keep digging so no match survives in a
			// nested position (leaves come back unchanged)
			sub, subs, err := Hoist(owner, c, pred, gen)
			if err != nil {
				h.err = err
				out[i] = c
				continue
			}
			h.subs = append(h.subs, subs...)
			out[i] = sub
		}
		return out, h
	})
	if side.err != nil {
		return nil, nil, side.err
	}
	return rewritten, side.subs, nil
}

// stripPrec unwraps precedence markers; they carry no type information.
func stripPrec(b Body) Body {
	for {
		switch n := b.(type) {
		case PrecLeft:
			b = n.Content
		case PrecRight:
			b = n.Content
		default:
			return b
		}
	}
}
