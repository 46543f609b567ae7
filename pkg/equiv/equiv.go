package equiv

import (
	"github.com/vic/lamcalc/pkg/lambda"
	"github.com/vic/lamcalc/pkg/reducer"
)

// Verdict is the outcome of an equivalence check.
type Verdict int

const (
	// Distinct means no layer could equate the terms and every layer ran
	// to completion within its bound.
	Distinct Verdict = iota
	// Equivalent means some layer proved the terms equal.
	Equivalent
	// Inconclusive means a step or rewrite budget ran out before an
	// answer was found. Callers must not read it as non-equivalence.
	Inconclusive
)

func (v Verdict) String() string {
	switch v {
	case Distinct:
		return "distinct"
	case Equivalent:
		return "equivalent"
	case Inconclusive:
		return "inconclusive"
	}
	return "unknown"
}

const (
	DefaultStepLimit    = 10000
	DefaultExpandBudget = 32
	DefaultRewriteDepth = 8
)

// Checker decides whether two terms denote the same function. Zero-value
// bounds fall back to the package defaults; an empty Defs or Rules table
// simply skips the corresponding layer.
type Checker struct {
	Defs         Defs
	Rules        []Rule
	StepLimit    uint64
	ExpandBudget int
	RewriteDepth int
}

// Equivalent runs the layers in order until one of them equates a and b.
func (c *Checker) Equivalent(a, b lambda.Term) Verdict {
	inconclusive := false

	if c.compare(a, b, &inconclusive) {
		return Equivalent
	}

	ea, eb := a, b
	if len(c.Defs) > 0 {
		ea = Expand(a, c.Defs, c.expandBudget())
		eb = Expand(b, c.Defs, c.expandBudget())
		expanded := !lambda.AlphaEquivalent(ea, a) || !lambda.AlphaEquivalent(eb, b)
		if expanded && c.compare(ea, eb, &inconclusive) {
			return Equivalent
		}
	}

	if len(c.Rules) > 0 {
		ra, rb := ea, eb
		for i := 0; i < c.rewriteDepth(); i++ {
			next, okA := rewriteOnce(ra, c.Rules)
			ra = next
			next, okB := rewriteOnce(rb, c.Rules)
			rb = next
			if !okA && !okB {
				break
			}
			if c.compare(ra, rb, &inconclusive) {
				return Equivalent
			}
		}
		// The rule table may have further rewrites the depth bound cut off.
		if more, ok := rewriteOnce(ra, c.Rules); ok && !lambda.AlphaEquivalent(more, ra) {
			inconclusive = true
		}
	}

	if inconclusive {
		return Inconclusive
	}
	return Distinct
}

// compare equates terms syntactically or by normalize-and-compare.
// A step-limit failure on either side marks the whole check
// inconclusive; the partial forms are not evidence either way.
func (c *Checker) compare(a, b lambda.Term, inconclusive *bool) bool {
	if lambda.AlphaEquivalent(a, b) {
		return true
	}
	na, _, errA := reducer.NormalForm(a, c.stepLimit())
	nb, _, errB := reducer.NormalForm(b, c.stepLimit())
	if errA != nil || errB != nil {
		*inconclusive = true
		return false
	}
	return lambda.AlphaEquivalent(na, nb)
}

func (c *Checker) stepLimit() uint64 {
	if c.StepLimit == 0 {
		return DefaultStepLimit
	}
	return c.StepLimit
}

func (c *Checker) expandBudget() int {
	if c.ExpandBudget == 0 {
		return DefaultExpandBudget
	}
	return c.ExpandBudget
}

func (c *Checker) rewriteDepth() int {
	if c.RewriteDepth == 0 {
		return DefaultRewriteDepth
	}
	return c.RewriteDepth
}
