package lambda

import (
	"fmt"

	"github.com/samber/lo"
)

// FreeVars returns the set of names occurring free in t.
func FreeVars(t Term) map[string]struct{} {
	free := make(map[string]struct{})
	var walk func(t Term, bound []string)
	walk = func(t Term, bound []string) {
		switch v := t.(type) {
		case Var:
			if !lo.Contains(bound, v.Name) {
				free[v.Name] = struct{}{}
			}
		case Abs:
			walk(v.Body, append(bound, v.Param))
		case App:
			walk(v.Fun, bound)
			walk(v.Arg, bound)
		default:
			unknownTerm(t)
		}
	}
	walk(t, nil)
	return free
}

// Closed reports whether t has no free variables.
func Closed(t Term) bool {
	return len(FreeVars(t)) == 0
}

// FreshName derives a name from base that is absent from every avoid set,
// by appending a numeric suffix and re-checking.
func FreshName(base string, avoid ...map[string]struct{}) string {
	taken := func(name string) bool {
		return lo.SomeBy(avoid, func(set map[string]struct{}) bool {
			_, ok := set[name]
			return ok
		})
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s%d", base, i)
		if !taken(candidate) {
			return candidate
		}
	}
}

// Subst replaces every free occurrence of name in t with repl, renaming
// binders in t whose parameter would otherwise capture a free variable
// of repl. The input trees are never mutated.
func Subst(t Term, name string, repl Term) Term {
	out, _ := subst(t, name, repl)
	return out
}

// SubstCount is Subst plus the number of binders that had to be renamed.
func SubstCount(t Term, name string, repl Term) (Term, int) {
	return subst(t, name, repl)
}

func subst(t Term, name string, repl Term) (Term, int) {
	switch v := t.(type) {
	case Var:
		if v.Name == name {
			return repl, 0
		}
		return v, 0
	case Abs:
		if v.Param == name {
			// name is shadowed below this binder
			return v, 0
		}
		bodyFree := FreeVars(v.Body)
		if _, occurs := bodyFree[name]; !occurs {
			return v, 0
		}
		replFree := FreeVars(repl)
		if _, captures := replFree[v.Param]; captures {
			fresh := FreshName(v.Param, replFree, bodyFree)
			renamed := Subst(v.Body, v.Param, Var{Name: fresh})
			body, n := subst(renamed, name, repl)
			return Abs{Param: fresh, Body: body}, n + 1
		}
		body, n := subst(v.Body, name, repl)
		return Abs{Param: v.Param, Body: body}, n
	case App:
		fun, nf := subst(v.Fun, name, repl)
		arg, na := subst(v.Arg, name, repl)
		return App{Fun: fun, Arg: arg}, nf + na
	default:
		unknownTerm(t)
		return nil, 0
	}
}

// Size returns the number of nodes in t.
func Size(t Term) int {
	switch v := t.(type) {
	case Var:
		return 1
	case Abs:
		return 1 + Size(v.Body)
	case App:
		return 1 + Size(v.Fun) + Size(v.Arg)
	default:
		unknownTerm(t)
		return 0
	}
}
