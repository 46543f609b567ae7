package equiv

import (
	"github.com/samber/lo"

	"github.com/vic/lamcalc/pkg/lambda"
)

// Rule rewrites subterms matching Pattern into Replacement. The free
// variables of Pattern act as metavariables and bind arbitrary subterms;
// its bound variables match literally up to alpha-renaming.
type Rule struct {
	Name          string
	Pattern       lambda.Term
	Replacement   lambda.Term
	Justification string
}

// Rewrite applies the first matching rule at the lowest matching subterm,
// bottom-up, at most rounds times. It returns the rewritten term and the
// number of rewrites performed.
func Rewrite(t lambda.Term, rules []Rule, rounds int) (lambda.Term, int) {
	applied := 0
	for i := 0; i < rounds; i++ {
		next, ok := rewriteOnce(t, rules)
		if !ok {
			break
		}
		t = next
		applied++
	}
	return t, applied
}

func rewriteOnce(t lambda.Term, rules []Rule) (lambda.Term, bool) {
	switch v := t.(type) {
	case lambda.Abs:
		if body, ok := rewriteOnce(v.Body, rules); ok {
			return lambda.Abs{Param: v.Param, Body: body}, true
		}
	case lambda.App:
		if fun, ok := rewriteOnce(v.Fun, rules); ok {
			return lambda.App{Fun: fun, Arg: v.Arg}, true
		}
		if arg, ok := rewriteOnce(v.Arg, rules); ok {
			return lambda.App{Fun: v.Fun, Arg: arg}, true
		}
	}
	for _, r := range rules {
		m := newMatcher(r.Pattern)
		if m.match(r.Pattern, t, nil, nil, 0) {
			return m.instantiate(r.Replacement), true
		}
	}
	return t, false
}

// matcher binds the metavariables of one pattern against one subterm.
type matcher struct {
	meta    map[string]struct{}    // free vars of the pattern
	binding map[string]lambda.Term // metavariable -> matched subterm
}

func newMatcher(pattern lambda.Term) *matcher {
	return &matcher{
		meta:    lambda.FreeVars(pattern),
		binding: make(map[string]lambda.Term),
	}
}

// match compares the pattern against t the way alphaEq compares two
// terms: each side carries a map from bound name to binder depth, so a
// pattern binder only ever matches the variable bound at the same depth
// on the term side. A free variable of the term never matches a pattern
// binder, even when the names coincide.
func (m *matcher) match(pattern, t lambda.Term, envP, envT map[string]int, depth int) bool {
	switch p := pattern.(type) {
	case lambda.Var:
		if dp, bound := envP[p.Name]; bound {
			v, ok := t.(lambda.Var)
			if !ok {
				return false
			}
			dt, boundT := envT[v.Name]
			return boundT && dt == dp
		}
		if _, isMeta := m.meta[p.Name]; isMeta {
			return m.bind(p.Name, t, envT)
		}
		v, ok := t.(lambda.Var)
		if !ok {
			return false
		}
		if _, boundT := envT[v.Name]; boundT {
			return false
		}
		return v.Name == p.Name
	case lambda.Abs:
		v, ok := t.(lambda.Abs)
		if !ok {
			return false
		}
		nextP := lo.Assign(envP, map[string]int{p.Param: depth})
		nextT := lo.Assign(envT, map[string]int{v.Param: depth})
		return m.match(p.Body, v.Body, nextP, nextT, depth+1)
	case lambda.App:
		v, ok := t.(lambda.App)
		if !ok {
			return false
		}
		return m.match(p.Fun, v.Fun, envP, envT, depth) &&
			m.match(p.Arg, v.Arg, envP, envT, depth)
	}
	return false
}

// bind records a metavariable match. A subterm mentioning a term-side
// binder free cannot be bound: the replacement would move it out of
// scope (this is the side condition that keeps rules like eta sound).
func (m *matcher) bind(name string, t lambda.Term, envT map[string]int) bool {
	for free := range lambda.FreeVars(t) {
		if _, inScope := envT[free]; inScope {
			return false
		}
	}
	if prev, ok := m.binding[name]; ok {
		return lambda.AlphaEquivalent(prev, t)
	}
	m.binding[name] = t
	return true
}

// instantiate substitutes every metavariable binding into the
// replacement in one simultaneous pass. Substituting one binding at a
// time would be wrong: a bound subterm mentioning another metavariable's
// name free would get rewritten by the later substitution.
func (m *matcher) instantiate(replacement lambda.Term) lambda.Term {
	return instantiate(replacement, m.binding)
}

func instantiate(t lambda.Term, binding map[string]lambda.Term) lambda.Term {
	switch v := t.(type) {
	case lambda.Var:
		if sub, ok := binding[v.Name]; ok {
			return sub
		}
		return v
	case lambda.Abs:
		inner := binding
		if _, shadowed := binding[v.Param]; shadowed {
			inner = lo.OmitByKeys(binding, []string{v.Param})
		}
		if len(inner) == 0 {
			return v
		}
		param, body := v.Param, v.Body
		bodyFree := lambda.FreeVars(body)
		incoming := make(map[string]struct{})
		for name, sub := range inner {
			if _, occurs := bodyFree[name]; occurs {
				incoming = lo.Assign(incoming, lambda.FreeVars(sub))
			}
		}
		if _, captures := incoming[param]; captures {
			fresh := lambda.FreshName(param, incoming, bodyFree)
			body = lambda.Subst(body, param, lambda.Var{Name: fresh})
			param = fresh
		}
		return lambda.Abs{Param: param, Body: instantiate(body, inner)}
	case lambda.App:
		return lambda.App{
			Fun: instantiate(v.Fun, binding),
			Arg: instantiate(v.Arg, binding),
		}
	}
	return t
}
