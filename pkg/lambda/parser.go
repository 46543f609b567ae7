package lambda

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenIdent
	tokenLambda
	tokenDot
	tokenEqual
	tokenSemicolon
	tokenLParen
	tokenRParen
	tokenLet
	tokenIn
)

type token struct {
	typ tokenType
	lit string
	off int // byte offset of the token start
}

// Parser is a recursive-descent parser over the surface syntax.
type Parser struct {
	input   string
	pos     int
	current token
}

func NewParser(input string) *Parser {
	p := &Parser{input: input}
	p.next()
	return p
}

// reservedRune reports whether r can never be part of an identifier.
func reservedRune(r rune) bool {
	switch r {
	case 'λ', '\\', '.', '(', ')', ';', '=':
		return true
	}
	return false
}

func (p *Parser) next() {
	p.skipWhitespace()
	start := p.pos
	if p.pos >= len(p.input) {
		p.current = token{typ: tokenEOF, off: start}
		return
	}

	r, size := utf8.DecodeRuneInString(p.input[p.pos:])
	switch {
	case r == 'λ' || r == '\\':
		p.pos += size
		p.current = token{typ: tokenLambda, lit: p.input[start:p.pos], off: start}
	case r == '.':
		p.pos += size
		p.current = token{typ: tokenDot, lit: ".", off: start}
	case r == '=':
		p.pos += size
		p.current = token{typ: tokenEqual, lit: "=", off: start}
	case r == ';':
		p.pos += size
		p.current = token{typ: tokenSemicolon, lit: ";", off: start}
	case r == '(':
		p.pos += size
		p.current = token{typ: tokenLParen, lit: "(", off: start}
	case r == ')':
		p.pos += size
		p.current = token{typ: tokenRParen, lit: ")", off: start}
	default:
		// Identifiers are maximal runs of non-whitespace, non-reserved runes.
		for p.pos < len(p.input) {
			r, size := utf8.DecodeRuneInString(p.input[p.pos:])
			if unicode.IsSpace(r) || reservedRune(r) {
				break
			}
			p.pos += size
		}
		lit := p.input[start:p.pos]
		switch lit {
		case "let":
			p.current = token{typ: tokenLet, lit: lit, off: start}
		case "in":
			p.current = token{typ: tokenIn, lit: lit, off: start}
		default:
			p.current = token{typ: tokenIdent, lit: lit, off: start}
		}
	}
}

func (p *Parser) skipWhitespace() {
	for p.pos < len(p.input) {
		r, size := utf8.DecodeRuneInString(p.input[p.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		p.pos += size
	}
}

func (p *Parser) errf(off int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Offset: off, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) Parse() (Term, error) {
	if p.current.typ == tokenEOF {
		return nil, p.errf(p.current.off, "empty input")
	}
	term, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if p.current.typ != tokenEOF {
		return nil, p.errf(p.current.off, "unexpected %q after term", p.current.lit)
	}
	return term, nil
}

// Term ::= Abs | Let | App
func (p *Parser) parseTerm() (Term, error) {
	switch p.current.typ {
	case tokenLambda:
		return p.parseAbs()
	case tokenLet:
		return p.parseLet()
	default:
		return p.parseApp()
	}
}

// Abs ::= LambdaGlyph Ident+ "." Term
//
// Multiple binders are sugar: λx y.M parses as λx.λy.M.
func (p *Parser) parseAbs() (Term, error) {
	p.next() // consume the binder glyph

	var params []string
	for p.current.typ == tokenIdent {
		params = append(params, p.current.lit)
		p.next()
	}
	if len(params) == 0 {
		return nil, p.errf(p.current.off, "expected binder name after λ, got %q", p.current.lit)
	}
	if p.current.typ != tokenDot {
		return nil, p.errf(p.current.off, "expected '.' after binder, got %q", p.current.lit)
	}
	p.next() // consume '.'

	body, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for i := len(params) - 1; i >= 0; i-- {
		body = Abs{Param: params[i], Body: body}
	}
	return body, nil
}

// App ::= Atom Atom* — left-associative juxtaposition. An abstraction or
// let in argument position extends as far right as possible and ends the
// chain: `f λx.x y` parses as (f λx.(x y)).
func (p *Parser) parseApp() (Term, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	for {
		switch p.current.typ {
		case tokenEOF, tokenRParen, tokenSemicolon, tokenIn:
			return left, nil
		case tokenLambda, tokenLet:
			arg, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			return App{Fun: left, Arg: arg}, nil
		case tokenIdent, tokenLParen:
			arg, err := p.parseAtom()
			if err != nil {
				return nil, err
			}
			left = App{Fun: left, Arg: arg}
		default:
			return nil, p.errf(p.current.off, "unexpected %q in application", p.current.lit)
		}
	}
}

// Atom ::= Ident | "(" Term ")"
func (p *Parser) parseAtom() (Term, error) {
	switch p.current.typ {
	case tokenIdent:
		name := p.current.lit
		p.next()
		return Var{Name: name}, nil
	case tokenLParen:
		open := p.current.off
		p.next()
		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if p.current.typ != tokenRParen {
			return nil, p.errf(open, "unmatched '('")
		}
		p.next()
		return term, nil
	case tokenEOF:
		return nil, p.errf(p.current.off, "unexpected end of input")
	default:
		return nil, p.errf(p.current.off, "unexpected %q", p.current.lit)
	}
}

// Let ::= "let" Ident "=" Term (";" Ident "=" Term)* "in" Term
//
// Pure sugar: let x = M; y = N in B desugars to ((λx.(λy.B) N) M).
func (p *Parser) parseLet() (Term, error) {
	p.next() // consume 'let'

	type binding struct {
		name string
		val  Term
	}
	var bindings []binding

	for {
		if p.current.typ != tokenIdent {
			return nil, p.errf(p.current.off, "expected identifier in let binding, got %q", p.current.lit)
		}
		name := p.current.lit
		p.next()

		if p.current.typ != tokenEqual {
			return nil, p.errf(p.current.off, "expected '=' in let binding, got %q", p.current.lit)
		}
		p.next()

		val, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, binding{name, val})

		switch p.current.typ {
		case tokenSemicolon:
			p.next()
			if p.current.typ == tokenIn {
				p.next()
				goto body
			}
		case tokenIn:
			p.next()
			goto body
		default:
			return nil, p.errf(p.current.off, "expected ';' or 'in', got %q", p.current.lit)
		}
	}

body:
	body, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	term := body
	for i := len(bindings) - 1; i >= 0; i-- {
		b := bindings[i]
		term = App{
			Fun: Abs{Param: b.name, Body: term},
			Arg: b.val,
		}
	}
	return term, nil
}

// Parse parses a lambda term from a string.
//
// The binder glyph is either the Unicode λ or the ASCII backslash; both
// spellings parse to the same Term and the pretty-printer always emits λ.
// `let` and `in` are the only reserved identifiers, used by the let sugar.
func Parse(input string) (Term, error) {
	p := NewParser(input)
	return p.Parse()
}
