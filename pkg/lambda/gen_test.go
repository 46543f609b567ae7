package lambda

import "math/rand"

// genTerm builds a random term for property tests. Variables and binders
// share one small name pool so shadowing, capture hazards and open terms
// all actually occur in the samples.
var binderPool = []string{"a", "b", "f", "g", "x", "y", "z"}

func genTerm(r *rand.Rand, depth int) Term {
	if depth <= 0 {
		return Var{Name: binderPool[r.Intn(len(binderPool))]}
	}
	switch r.Intn(4) {
	case 0:
		return Var{Name: binderPool[r.Intn(len(binderPool))]}
	case 1, 2:
		return Abs{
			Param: binderPool[r.Intn(len(binderPool))],
			Body:  genTerm(r, depth-1),
		}
	default:
		return App{
			Fun: genTerm(r, depth-1),
			Arg: genTerm(r, depth-1),
		}
	}
}
