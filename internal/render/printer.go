// Package render turns the internal/ir descriptor model into ReScript
// source text. Each of the three template families (enum, message,
// service) is one file in this package; all of them build output the
// same way: direct string concatenation through a small indenting
// printer.
package render

import (
	"fmt"
	"strconv"
	"strings"
)

// Printer accumulates indented source text one line at a time: a
// Generator.P/In/Out trio.
type Printer struct {
	buf    strings.Builder
	indent string
}

// P writes one line, prefixed with the current indent. Arguments are
// concatenated with fmt.Sprint semantics before the line is written.
func (p *Printer) P(args ...interface{}) {
	p.buf.WriteString(p.indent)
	for _, a := range args {
		fmt.Fprint(&p.buf, a)
	}
	p.buf.WriteByte('\n')
}

// In indents subsequent lines by one more level.
func (p *Printer) In() { p.indent += "  " }

// Out un-indents subsequent lines by one level.
func (p *Printer) Out() {
	if len(p.indent) >= 2 {
		p.indent = p.indent[:len(p.indent)-2]
	}
}

// String returns the accumulated text.
func (p *Printer) String() string { return p.buf.String() }

// quote renders a Go string as a double-quoted ReScript string literal.
func quote(s string) string { return strconv.Quote(s) }

// renderDocComment prints one "//" line per line of a .proto source
// comment, or nothing when doc is empty — the same leading-comment
// carry-through a proto-to-TypeScript generator's PrintComments would
// perform, adapted here from proto SourceCodeInfo paths to protogen's
// Comments.Leading.
func renderDocComment(p *Printer, doc string) {
	if doc == "" {
		return
	}
	for _, line := range strings.Split(doc, "\n") {
		p.P("// ", line)
	}
}
