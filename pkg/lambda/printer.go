package lambda

import "strings"

// PrettyPrint renders t in the surface syntax with minimal parentheses.
// The output always parses back to a term alpha-equivalent to t, though
// not necessarily byte-identical to the source it came from.
func PrettyPrint(t Term) string {
	var b strings.Builder
	writeTerm(&b, t)
	return b.String()
}

func writeTerm(b *strings.Builder, t Term) {
	switch v := t.(type) {
	case Var:
		b.WriteString(v.Name)
	case Abs:
		b.WriteString("λ")
		b.WriteString(v.Param)
		b.WriteByte('.')
		writeTerm(b, v.Body)
	case App:
		writeFun(b, v.Fun)
		b.WriteByte(' ')
		writeArg(b, v.Arg)
	default:
		unknownTerm(t)
	}
}

// writeFun parenthesizes abstractions in function position: the binder
// body would otherwise swallow the argument.
func writeFun(b *strings.Builder, t Term) {
	if _, ok := t.(Abs); ok {
		writeParens(b, t)
		return
	}
	writeTerm(b, t)
}

// writeArg parenthesizes applications in argument position to preserve
// left associativity. Abstractions extend to the end of the term, so a
// trailing abstraction argument needs no parens, but printing is context
// free and parenthesizing is always safe.
func writeArg(b *strings.Builder, t Term) {
	switch t.(type) {
	case App, Abs:
		writeParens(b, t)
	default:
		writeTerm(b, t)
	}
}

func writeParens(b *strings.Builder, t Term) {
	b.WriteByte('(')
	writeTerm(b, t)
	b.WriteByte(')')
}
