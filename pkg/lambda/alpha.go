package lambda

import "github.com/samber/lo"

// AlphaEquivalent reports whether a and b are identical up to consistent
// renaming of bound variables. It never reduces either term, so it is
// total even on divergent terms such as Ω.
func AlphaEquivalent(a, b Term) bool {
	return alphaEq(a, b, nil, nil, 0)
}

// alphaEq compares structurally, carrying for each side a map from bound
// name to the depth of the binder that introduced it. Two bound variables
// match when they were bound at the same depth; two free variables match
// when their names are equal.
func alphaEq(a, b Term, envA, envB map[string]int, depth int) bool {
	switch av := a.(type) {
	case Var:
		bv, ok := b.(Var)
		if !ok {
			return false
		}
		da, boundA := envA[av.Name]
		db, boundB := envB[bv.Name]
		if boundA != boundB {
			return false
		}
		if boundA {
			return da == db
		}
		return av.Name == bv.Name
	case Abs:
		bv, ok := b.(Abs)
		if !ok {
			return false
		}
		nextA := lo.Assign(envA, map[string]int{av.Param: depth})
		nextB := lo.Assign(envB, map[string]int{bv.Param: depth})
		return alphaEq(av.Body, bv.Body, nextA, nextB, depth+1)
	case App:
		bv, ok := b.(App)
		if !ok {
			return false
		}
		return alphaEq(av.Fun, bv.Fun, envA, envB, depth) &&
			alphaEq(av.Arg, bv.Arg, envA, envB, depth)
	default:
		unknownTerm(a)
		return false
	}
}
