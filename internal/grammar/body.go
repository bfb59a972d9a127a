package grammar

import (
	"strconv"
	"strings"
)

// Body is one node of a rule body: a tagged tree of composites
// (Repeat, Choice, Seq, PrecLeft, PrecRight) over leaves
// (Symbol, String, Pattern).
type Body interface {
	isBody()
	String() string
}

// Repeat matches zero or more occurrences of Content.
type Repeat struct {
	Content Body
}

// Choice matches exactly one of Members, in order of preference.
type Choice struct {
	Members []Body
}

// Seq matches all of Members in order.
type Seq struct {
	Members []Body
}

// PrecLeft marks Content as left-associative. Precedence carries no
// type information and is erased during normalization.
type PrecLeft struct {
	Content Body
}

// PrecRight marks Content as right-associative.
type PrecRight struct {
	Content Body
}

// Symbol references another rule by name.
type Symbol struct {
	Name string
}

// String matches a literal.
type String struct {
	Value string
}

// Pattern matches a regular expression.
type Pattern struct {
	Value string
}

func (Repeat) isBody()    {}
func (Choice) isBody()    {}
func (Seq) isBody()       {}
func (PrecLeft) isBody()  {}
func (PrecRight) isBody() {}
func (Symbol) isBody()    {}
func (String) isBody()    {}
func (Pattern) isBody()   {}

// IsTerminal reports whether b is a leaf for hoisting purposes.
func IsTerminal(b Body) bool {
	switch b.(type) {
	case Symbol, String, Pattern:
		return true
	}
	return false
}

// Nonterminals returns the rule names b directly references: a bare
// Symbol body, the single child of Repeat/PrecLeft/PrecRight, or
// Symbol members of Choice/Seq. It does not recurse into nested
// composites; those are reached only after hoisting replaces them with
// Symbol references.
func Nonterminals(b Body) []string {
	switch n := b.(type) {
	case Symbol:
		return []string{n.Name}
	case Repeat:
		if s, ok := n.Content.(Symbol); ok {
			return []string{s.Name}
		}
	case PrecLeft:
		if s, ok := n.Content.(Symbol); ok {
			return []string{s.Name}
		}
	case PrecRight:
		if s, ok := n.Content.(Symbol); ok {
			return []string{s.Name}
		}
	case Choice:
		return memberSymbols(n.Members)
	case Seq:
		return memberSymbols(n.Members)
	}
	return nil
}

func memberSymbols(members []Body) []string {
	var out []string
	for _, m := range members {
		if s, ok := m.(Symbol); ok {
			out = append(out, s.Name)
		}
	}
	return out
}

// MapChildren rewrites the immediate children of body through fn and
// rebuilds the node around the result. Repeat passes its single child
// as a one-element slice; Choice and Seq pass their member lists.
// PrecLeft and PrecRight are transparent: the fold descends into the
// child and the precedence wrapper is dropped. Leaves are returned
// unchanged with the zero side value.
func MapChildren[T any](body Body, fn func([]Body) ([]Body, T)) (Body, T) {
	switch n := body.(type) {
	case Repeat:
		kids, data := fn([]Body{n.Content})
		return Repeat{Content: kids[0]}, data
	case Choice:
		members, data := fn(n.Members)
		return Choice{Members: members}, data
	case Seq:
		members, data := fn(n.Members)
		return Seq{Members: members}, data
	case PrecLeft:
		return MapChildren(n.Content, fn)
	case PrecRight:
		return MapChildren(n.Content, fn)
	}
	var zero T
	return body, zero
}

func (b Repeat) String() string    { return "repeat(" + b.Content.String() + ")" }
func (b PrecLeft) String() string  { return "prec_left(" + b.Content.String() + ")" }
func (b PrecRight) String() string { return "prec_right(" + b.Content.String() + ")" }
func (b Symbol) String() string    { return b.Name }
func (b String) String() string    { return strconv.Quote(b.Value) }
func (b Pattern) String() string   { return "/" + b.Value + "/" }

func (b Choice) String() string { return "choice(" + joinBodies(b.Members, " | ") + ")" }
func (b Seq) String() string    { return "seq(" + joinBodies(b.Members, " ") + ")" }

func joinBodies(members []Body, sep string) string {
	var sb strings.Builder
	for i, m := range members {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(m.String())
	}
	return sb.String()
}
