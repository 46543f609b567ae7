// Package lambda implements the lambda-calculus term model: parsing,
// pretty-printing, capture-avoiding substitution and alpha-equivalence.
package lambda

import "fmt"

// Term represents a lambda calculus term. It is a closed sum type:
// the only implementations are Var, Abs and App. Terms are immutable;
// every transformation builds a new tree and shares unaffected subtrees.
type Term interface {
	String() string
	term()
}

// Var represents a variable usage, bound or free.
type Var struct {
	Name string
}

func (Var) term() {}

func (v Var) String() string {
	return v.Name
}

// Abs represents an abstraction. Param is bound within Body.
type Abs struct {
	Param string
	Body  Term
}

func (Abs) term() {}

func (a Abs) String() string {
	return fmt.Sprintf("(λ%s.%s)", a.Param, a.Body)
}

// App represents an application of Fun to Arg.
type App struct {
	Fun Term
	Arg Term
}

func (App) term() {}

func (a App) String() string {
	return fmt.Sprintf("(%s %s)", a.Fun, a.Arg)
}

// unknownTerm panics on a Term outside the closed sum. Reaching it means
// a programming defect, not bad input, so it must not be recovered into
// a SyntaxError.
func unknownTerm(t Term) string {
	panic(fmt.Sprintf("lambda: unknown term variant %T", t))
}
