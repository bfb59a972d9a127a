// Package asttype maps normalized rule bodies to algebraic type
// descriptions: one sum, product, constructor application or name
// reference per emitted rule.
package asttype

import (
	"strconv"
	"strings"

	"astgen/internal/grammar"
)

// Type is the named algebraic type derived from one rule.
type Type struct {
	Name string
	Repr Repr
}

// Repr is the shape of a type: Sum, Product, Ctor or Name.
type Repr interface {
	isRepr()
}

// Alt is one tagged alternative of a sum type.
type Alt struct {
	Tag  string
	Repr Repr
}

type Sum struct {
	Alts []Alt
}

// Field is one member of a product type. Name is empty for positional
// fields; sequence members are always positional.
type Field struct {
	Name string
	Repr Repr
}

type Product struct {
	Fields []Field
}

// Ctor is a type constructor application, e.g. list(expr).
type Ctor struct {
	Name string
	Args []Repr
}

// Name references another type, or the primitive "string".
type Name struct {
	Ref string
}

func (Sum) isRepr()     {}
func (Product) isRepr() {}
func (Ctor) isRepr()    {}
func (Name) isRepr()    {}

// Synthesize derives the algebraic type of a rule. The body must be
// normalized: nested choices have already been hoisted into rules of
// their own, so a Choice can only occur at the top level here.
func Synthesize(name string, body grammar.Body) Type {
	return Type{Name: name, Repr: reprOf(name, body)}
}

func reprOf(name string, body grammar.Body) Repr {
	switch b := body.(type) {
	case grammar.Repeat:
		return Ctor{Name: "list", Args: []Repr{reprOf(name, b.Content)}}
	case grammar.Choice:
		alts := make([]Alt, len(b.Members))
		for i, m := range b.Members {
			alts[i] = Alt{Tag: altTag(name, i), Repr: reprOf(name, m)}
		}
		return Sum{Alts: alts}
	case grammar.Seq:
		fields := make([]Field, len(b.Members))
		for i, m := range b.Members {
			fields[i] = Field{Repr: reprOf(name, m)}
		}
		return Product{Fields: fields}
	case grammar.PrecLeft:
		return reprOf(name, b.Content)
	case grammar.PrecRight:
		return reprOf(name, b.Content)
	case grammar.Symbol:
		return Name{Ref: b.Name}
	}
	// String and Pattern: all lexical content collapses to string.
	return Name{Ref: "string"}
}

// altTag derives the constructor tag of alternative i of rule name.
// The tag is part of the canonical output and must stay stable.
func altTag(name string, i int) string {
	return strings.ToUpper(name) + "_CTOR_" + strconv.Itoa(i)
}
