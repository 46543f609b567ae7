// Package reducer normalizes lambda terms by normal-order (leftmost-
// outermost) beta-reduction under an explicit step budget.
package reducer

import (
	"fmt"

	"github.com/vic/lamcalc/pkg/lambda"
)

// StepLimitError reports that reduction did not reach a normal form
// within the step budget. Partial holds the term as reduced so far, so
// callers can inspect progress. It is an expected, recoverable condition:
// a diverging term is a property of the input, not a crash.
type StepLimitError struct {
	Steps   uint64
	Partial lambda.Term
}

func (e *StepLimitError) Error() string {
	return fmt.Sprintf("step limit exceeded after %d reductions", e.Steps)
}

// Stats counts the work performed by the last Normalize call.
type Stats struct {
	BetaSteps uint64 // redexes fired
	Renames   uint64 // binders alpha-renamed during substitution
	PeakSize  int    // largest intermediate term observed, in nodes
}

// Engine reduces terms. It carries no state between Normalize calls
// beyond the stats and trace of the most recent one; reduction itself is
// purely functional and never mutates the input term.
type Engine struct {
	steps uint64
	stats Stats

	traceBuf []TraceEvent
	traceCap uint64
	traceIdx uint64
	traceOn  uint32
}

func New() *Engine {
	return &Engine{}
}

// Steps returns the number of beta steps taken by the last Normalize
// call, whether or not it reached a normal form.
func (e *Engine) Steps() uint64 {
	return e.steps
}

// GetStats returns the stats of the last Normalize call.
func (e *Engine) GetStats() Stats {
	return e.stats
}

// Normalize reduces t to normal form, firing at most limit redexes.
// If the budget runs out with a redex remaining it returns a
// *StepLimitError carrying the partially reduced term.
func (e *Engine) Normalize(t lambda.Term, limit uint64) (lambda.Term, error) {
	e.steps = 0
	e.stats = Stats{}
	e.observe(t)

	for e.steps < limit {
		next, ok := e.step(t)
		if !ok {
			return t, nil
		}
		e.steps++
		e.stats.BetaSteps = e.steps
		e.observe(next)
		t = next
	}
	if !hasRedex(t) {
		return t, nil
	}
	return t, &StepLimitError{Steps: e.steps, Partial: t}
}

// step fires the leftmost-outermost redex in t. The second result is
// false when t is already in normal form.
func (e *Engine) step(t lambda.Term) (lambda.Term, bool) {
	switch v := t.(type) {
	case lambda.Var:
		return t, false
	case lambda.Abs:
		body, ok := e.step(v.Body)
		if !ok {
			return t, false
		}
		return lambda.Abs{Param: v.Param, Body: body}, true
	case lambda.App:
		if fun, ok := v.Fun.(lambda.Abs); ok {
			result, renamed := lambda.SubstCount(fun.Body, fun.Param, v.Arg)
			e.stats.Renames += uint64(renamed)
			e.recordTrace(fun.Param, v, result)
			return result, true
		}
		if fun, ok := e.step(v.Fun); ok {
			return lambda.App{Fun: fun, Arg: v.Arg}, true
		}
		if arg, ok := e.step(v.Arg); ok {
			return lambda.App{Fun: v.Fun, Arg: arg}, true
		}
		return t, false
	default:
		panic(fmt.Sprintf("reducer: unknown term variant %T", t))
	}
}

func (e *Engine) observe(t lambda.Term) {
	if size := lambda.Size(t); size > e.stats.PeakSize {
		e.stats.PeakSize = size
	}
}

func hasRedex(t lambda.Term) bool {
	switch v := t.(type) {
	case lambda.Var:
		return false
	case lambda.Abs:
		return hasRedex(v.Body)
	case lambda.App:
		if _, ok := v.Fun.(lambda.Abs); ok {
			return true
		}
		return hasRedex(v.Fun) || hasRedex(v.Arg)
	default:
		panic(fmt.Sprintf("reducer: unknown term variant %T", t))
	}
}

// NormalForm reduces t with a fresh Engine and reports the steps taken.
func NormalForm(t lambda.Term, limit uint64) (lambda.Term, uint64, error) {
	e := New()
	res, err := e.Normalize(t, limit)
	return res, e.Steps(), err
}
