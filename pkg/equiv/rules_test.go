package equiv

import (
	"testing"

	"github.com/vic/lamcalc/pkg/lambda"
)

func etaRule(t *testing.T) Rule {
	t.Helper()
	return Rule{
		Name:          "eta",
		Pattern:       mustParse(t, `λx.f x`),
		Replacement:   mustParse(t, `f`),
		Justification: "eta: λx.f x = f when x is not free in f",
	}
}

func TestRewriteEta(t *testing.T) {
	rules := []Rule{etaRule(t)}

	got, n := Rewrite(mustParse(t, `λy.g y`), rules, 10)
	if n != 1 {
		t.Fatalf("rewrites = %d, want 1", n)
	}
	if want := mustParse(t, `g`); !lambda.AlphaEquivalent(got, want) {
		t.Errorf("eta rewrite = %s, want g", got)
	}
}

// λx.x x matches the eta pattern shape but binds the metavariable to the
// bound x itself; the side condition must reject it, since rewriting to
// a bare x would move it out of scope.
func TestRewriteEtaSideCondition(t *testing.T) {
	rules := []Rule{etaRule(t)}
	input := mustParse(t, `λx.x x`)
	got, n := Rewrite(input, rules, 10)
	if n != 0 {
		t.Fatalf("unsound eta rewrite fired %d times, producing %s", n, got)
	}
}

func TestRewriteBottomUp(t *testing.T) {
	rules := []Rule{etaRule(t)}
	// Both the inner and the outer subterm are eta-redexes; bounded
	// rounds rewrite them one per round, innermost first.
	input := mustParse(t, `λa.(λb.g b) a`)
	got, n := Rewrite(input, rules, 10)
	if n != 2 {
		t.Fatalf("rewrites = %d, want 2", n)
	}
	if want := mustParse(t, `g`); !lambda.AlphaEquivalent(got, want) {
		t.Errorf("rewrite = %s, want g", got)
	}
}

func TestRewriteRoundsBound(t *testing.T) {
	rules := []Rule{etaRule(t)}
	input := mustParse(t, `λa.(λb.g b) a`)
	got, n := Rewrite(input, rules, 1)
	if n != 1 {
		t.Fatalf("rewrites = %d, want exactly 1 under round bound", n)
	}
	if want := mustParse(t, `λa.g a`); !lambda.AlphaEquivalent(got, want) {
		t.Errorf("after one round: %s, want λa.g a", got)
	}
}

func TestRewriteMetavariableConsistency(t *testing.T) {
	// idem: f f → f, only when both operands are the same subterm.
	rule := Rule{
		Name:        "idem",
		Pattern:     mustParse(t, `f f`),
		Replacement: mustParse(t, `f`),
	}
	got, n := Rewrite(mustParse(t, `(λa.a) (λb.b)`), []Rule{rule}, 5)
	if n != 1 {
		t.Fatalf("rewrites = %d, want 1 (operands alpha-equivalent)", n)
	}
	if want := mustParse(t, `λa.a`); !lambda.AlphaEquivalent(got, want) {
		t.Errorf("rewrite = %s", got)
	}

	_, n = Rewrite(mustParse(t, `(λa.a) (λb.c)`), []Rule{rule}, 5)
	if n != 0 {
		t.Errorf("rewrites = %d, want 0 (operands differ)", n)
	}
}

// A pattern binder must not match a free variable of the term that
// happens to share its name: λx.x is the identity, λy.x is a constant
// function, and rewriting the latter would equate distinct terms.
func TestRewritePatternBinderIgnoresFreeName(t *testing.T) {
	rule := Rule{
		Name:        "id",
		Pattern:     mustParse(t, `λx.x`),
		Replacement: mustParse(t, `i`),
	}
	input := mustParse(t, `λy.x`)
	got, n := Rewrite(input, []Rule{rule}, 10)
	if n != 0 {
		t.Fatalf("pattern λx.x fired %d times on λy.x, producing %s", n, got)
	}
	if !lambda.AlphaEquivalent(got, input) {
		t.Errorf("non-matching term changed: %s", got)
	}

	// The genuinely alpha-equivalent term still rewrites.
	got, n = Rewrite(mustParse(t, `λy.y`), []Rule{rule}, 10)
	if n != 1 {
		t.Errorf("rewrites on λy.y = %d, want 1", n)
	}
	if want := mustParse(t, `i`); !lambda.AlphaEquivalent(got, want) {
		t.Errorf("rewrite on λy.y = %s, want i", got)
	}
}

// swap: a b → b a. When one operand's subterm mentions the other
// metavariable's name free, the bindings must go in simultaneously;
// substituting them one after another would rewrite inside the subterm
// that was already put in place.
func TestRewriteInstantiatesSimultaneously(t *testing.T) {
	rule := Rule{
		Name:        "swap",
		Pattern:     mustParse(t, `a b`),
		Replacement: mustParse(t, `b a`),
	}
	got, n := Rewrite(mustParse(t, `b x`), []Rule{rule}, 1)
	if n != 1 {
		t.Fatalf("rewrites = %d, want 1", n)
	}
	if want := mustParse(t, `x b`); !lambda.AlphaEquivalent(got, want) {
		t.Errorf("swap produced %s, want x b", got)
	}
}

// A binder in the replacement must not capture a free variable of a
// bound subterm; the instantiation renames it the way Subst would.
func TestRewriteInstantiateAvoidsCapture(t *testing.T) {
	rule := Rule{
		Name:        "wrap",
		Pattern:     mustParse(t, `a`),
		Replacement: mustParse(t, `λx.a`),
	}
	got, n := Rewrite(mustParse(t, `x`), []Rule{rule}, 1)
	if n != 1 {
		t.Fatalf("rewrites = %d, want 1", n)
	}
	if want := mustParse(t, `λz.x`); !lambda.AlphaEquivalent(got, want) {
		t.Errorf("wrap produced %s, want a constant function returning the free x", got)
	}
}

func TestCheckerRewriteLayer(t *testing.T) {
	c := &Checker{
		Rules:     []Rule{etaRule(t)},
		StepLimit: 100,
	}
	// g and λx.g x are not beta-equivalent; only the eta rule equates them.
	if got := c.Equivalent(mustParse(t, `λx.g x`), mustParse(t, `g`)); got != Equivalent {
		t.Errorf("verdict = %v, want equivalent via eta", got)
	}
}

func TestRuleJustificationCarried(t *testing.T) {
	r := etaRule(t)
	if r.Justification == "" {
		t.Error("rule should carry its justification")
	}
}
