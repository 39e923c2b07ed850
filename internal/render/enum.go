package render

import "github.com/toba/protoc-gen-rescript/internal/ir"

// Enum renders an open polymorphic variant type with one constructor per
// value, a total toInt, and a partial fromInt. Value order is source
// order; numbers pass through unchanged.
func Enum(p *Printer, e *ir.EnumInfo) {
	renderDocComment(p, e.Doc)
	p.P("module ", e.Name, " = {")
	p.In()

	p.P("type t = [")
	p.In()
	for _, v := range e.Values {
		p.P("| #", v.Name)
	}
	p.Out()
	p.P("]")
	p.P()

	p.P("let toInt = (v: t): int =>")
	p.P("  switch v {")
	for _, v := range e.Values {
		p.P("  | #", v.Name, " => ", v.Number)
	}
	p.P("  }")
	p.P()

	p.P("let fromInt = (n: int): option<t> =>")
	p.P("  switch n {")
	for _, v := range e.Values {
		p.P("  | ", v.Number, " => Some(#", v.Name, ")")
	}
	p.P("  | _ => None")
	p.P("  }")

	p.Out()
	p.P("}")
}
