package asttype

import (
	"strings"
)

// String renders "name = repr". Sum alternatives start on their own
// line, so a sum-typed rule reads
//
//	expr =
//	 | EXPR_CTOR_0 (num)
//	 | EXPR_CTOR_1 ((expr, string, expr))
func (t Type) String() string {
	var sb strings.Builder
	sb.WriteString(t.Name)
	sb.WriteString(" = ")
	writeRepr(&sb, t.Repr)
	return sb.String()
}

// RenderBlock renders the ordered types as one mutually-recursive type
// block: the first declaration prefixed with "type", the rest with
// "and", terminated by ";". An empty sequence renders empty.
func RenderBlock(types []Type) string {
	if len(types) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, t := range types {
		if i == 0 {
			sb.WriteString("type ")
		} else {
			sb.WriteString("and ")
		}
		sb.WriteString(t.String())
		sb.WriteByte('\n')
	}
	sb.WriteString(";\n")
	return sb.String()
}

func writeRepr(sb *strings.Builder, r Repr) {
	switch v := r.(type) {
	case Sum:
		for _, alt := range v.Alts {
			sb.WriteString("\n | ")
			sb.WriteString(alt.Tag)
			sb.WriteString(" (")
			writeRepr(sb, alt.Repr)
			sb.WriteByte(')')
		}
	case Product:
		sb.WriteByte('(')
		for i, f := range v.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeRepr(sb, f.Repr)
		}
		sb.WriteByte(')')
	case Ctor:
		sb.WriteString(v.Name)
		sb.WriteByte('(')
		for i, arg := range v.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeRepr(sb, arg)
		}
		sb.WriteByte(')')
	case Name:
		sb.WriteString(v.Ref)
	}
}
