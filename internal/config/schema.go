package config

import "github.com/hashicorp/hcl/v2"

// workspaceSchema mirrors the layout of a lamcalc.hcl workspace file.
// Scalar attributes stay as expressions so translation can report precise
// diagnostics and apply defaults.
type workspaceSchema struct {
	StepLimit hcl.Expression `hcl:"step_limit,optional"`
	Trace     hcl.Expression `hcl:"trace,optional"`
	Defs      []*defSchema   `hcl:"def,block"`
	Rules     []*ruleSchema  `hcl:"rule,block"`
}

// defSchema is a `def "name" { body = "..." }` block registering a named
// definition for the equivalence checker and the REPL.
type defSchema struct {
	Name string `hcl:"name,label"`
	Body string `hcl:"body"`
}

// ruleSchema is a `rule "name" { ... }` block registering an algebraic
// identity as a pattern/replacement pair.
type ruleSchema struct {
	Name          string `hcl:"name,label"`
	Pattern       string `hcl:"pattern"`
	Replacement   string `hcl:"replacement"`
	Justification string `hcl:"justification,optional"`
}
