// Package equiv decides term equivalence in layers: alpha-comparison,
// step-limited normalization, expansion of registered definitions, and
// rewriting with a table of algebraic identities. Each layer is bounded,
// so the checker terminates even on diverging inputs; when a bound is the
// reason no answer was found the verdict is Inconclusive, never Distinct.
package equiv

import (
	"sort"

	"github.com/samber/lo"
	"github.com/vic/lamcalc/pkg/lambda"
)

// Defs maps names to their registered definitions. The table is supplied
// by the caller and treated as immutable; there is no ambient registry.
type Defs map[string]lambda.Term

// Expand replaces free occurrences of defined names in t by their
// definitions. Every name is expanded at most once (a visited set guards
// against mutually recursive definitions) and at most budget replacements
// are performed in total. Names are picked in sorted order so expansion
// is deterministic.
func Expand(t lambda.Term, defs Defs, budget int) lambda.Term {
	visited := make(map[string]bool)
	for i := 0; i < budget; i++ {
		name, ok := nextExpandable(t, defs, visited)
		if !ok {
			break
		}
		visited[name] = true
		t = lambda.Subst(t, name, defs[name])
	}
	return t
}

func nextExpandable(t lambda.Term, defs Defs, visited map[string]bool) (string, bool) {
	names := lo.Keys(lambda.FreeVars(t))
	sort.Strings(names)
	for _, name := range names {
		if visited[name] {
			continue
		}
		if _, ok := defs[name]; ok {
			return name, true
		}
	}
	return "", false
}
