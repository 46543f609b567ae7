package equiv

import (
	"testing"

	"github.com/vic/lamcalc/pkg/lambda"
)

func mustParse(t *testing.T, src string) lambda.Term {
	t.Helper()
	term, err := lambda.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return term
}

func testDefs(t *testing.T) Defs {
	t.Helper()
	defs := Defs{}
	for name, src := range map[string]string{
		"I":    `λa.a`,
		"K":    `λa.λb.a`,
		"T":    `λa.λb.a`,
		"F":    `λa.λb.b`,
		"not":  `λp.p F T`,
		"and":  `λa.λb.a b a`,
		"zero": `λf.λx.x`,
		"succ": `λn.λf.λx.f (n f x)`,
		"one":  `succ zero`,
	} {
		defs[name] = mustParse(t, src)
	}
	return defs
}

func TestCheckerAlphaLayer(t *testing.T) {
	c := &Checker{}
	if got := c.Equivalent(mustParse(t, `λx.x`), mustParse(t, `λy.y`)); got != Equivalent {
		t.Errorf("verdict = %v, want equivalent", got)
	}
	if got := c.Equivalent(mustParse(t, `λx.x`), mustParse(t, `λx.λy.x y`)); got != Distinct {
		t.Errorf("verdict = %v, want distinct", got)
	}
}

func TestCheckerNormalizeLayer(t *testing.T) {
	c := &Checker{StepLimit: 100}
	// Not alpha-equivalent, but both normalize to the identity.
	a := mustParse(t, `(λx.x) (λy.y)`)
	b := mustParse(t, `λz.z`)
	if got := c.Equivalent(a, b); got != Equivalent {
		t.Errorf("verdict = %v, want equivalent", got)
	}
}

func TestCheckerExpansionLayer(t *testing.T) {
	c := &Checker{Defs: testDefs(t), StepLimit: 500}
	tests := []struct {
		name string
		a, b string
		want Verdict
	}{
		{"not true is false", `not T`, `F`, Equivalent},
		{"and true true", `and T T`, `T`, Equivalent},
		{"nested defs", `one`, `λf.λx.f x`, Equivalent},
		{"not true is not true", `not T`, `T`, Distinct},
		{"unknown names stay free", `mystery`, `λa.a`, Distinct},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Equivalent(mustParse(t, tt.a), mustParse(t, tt.b)); got != tt.want {
				t.Errorf("Equivalent(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCheckerInconclusiveOnDivergence(t *testing.T) {
	c := &Checker{StepLimit: 50}
	// Ω and the Y combinator applied to f both diverge; no layer can
	// equate or separate them inside the budget.
	omega := mustParse(t, `(λx.x x) (λx.x x)`)
	yf := mustParse(t, `(λf.(λx.f (x x)) (λx.f (x x))) g`)
	if got := c.Equivalent(omega, yf); got != Inconclusive {
		t.Errorf("verdict = %v, want inconclusive", got)
	}
}

func TestCheckerDivergentButAlphaEquivalent(t *testing.T) {
	c := &Checker{StepLimit: 50}
	// The alpha layer answers before any reduction is attempted.
	a := mustParse(t, `(λx.x x) (λx.x x)`)
	b := mustParse(t, `(λy.y y) (λz.z z)`)
	if got := c.Equivalent(a, b); got != Equivalent {
		t.Errorf("verdict = %v, want equivalent", got)
	}
}

func TestExpandVisitedSetStopsRecursion(t *testing.T) {
	defs := Defs{
		"loop": mustParse(t, `λx.loop x`),
	}
	// A self-referential definition expands exactly once.
	got := Expand(mustParse(t, `loop`), defs, 100)
	want := mustParse(t, `λx.loop x`)
	if !lambda.AlphaEquivalent(got, want) {
		t.Errorf("Expand(loop) = %s, want %s", got, want)
	}
}

func TestExpandBudget(t *testing.T) {
	defs := Defs{
		"a": mustParse(t, `b`),
		"b": mustParse(t, `c`),
		"c": mustParse(t, `d`),
	}
	got := Expand(mustParse(t, `a`), defs, 2)
	if want := mustParse(t, `c`); !lambda.AlphaEquivalent(got, want) {
		t.Errorf("Expand(a, budget 2) = %s, want c", got)
	}
}

func TestExpandLeavesBoundNamesAlone(t *testing.T) {
	defs := Defs{"x": mustParse(t, `λa.a`)}
	got := Expand(mustParse(t, `λx.x`), defs, 10)
	if want := mustParse(t, `λx.x`); !lambda.AlphaEquivalent(got, want) {
		t.Errorf("bound x was expanded: %s", got)
	}
}
