// Package config loads the optional lamcalc.hcl workspace file: the
// default step limit, trace capacity, and the def/rule blocks feeding
// the equivalence checker.
package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vic/lamcalc/pkg/equiv"
	"github.com/vic/lamcalc/pkg/lambda"
	"github.com/zclconf/go-cty/cty/gocty"
)

// DefaultStepLimit applies when no workspace file sets one.
const DefaultStepLimit = 10000

// Model is the decoded workspace configuration. Definition and rule
// bodies are compiled to Terms at load time so a malformed workspace
// fails up front, not mid-session.
type Model struct {
	StepLimit uint64
	TraceCap  int
	Defs      equiv.Defs
	Rules     []equiv.Rule
}

// Default returns the configuration used when no workspace file exists.
func Default() *Model {
	return &Model{
		StepLimit: DefaultStepLimit,
		Defs:      equiv.Defs{},
	}
}

// Load reads and compiles a workspace file from disk.
func Load(path string) (*Model, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, diags
	}
	return translate(file)
}

// Parse compiles workspace source held in memory. Tests use it directly.
func Parse(filename string, src []byte) (*Model, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	return translate(file)
}

func translate(file *hcl.File) (*Model, error) {
	var ws workspaceSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &ws); diags.HasErrors() {
		return nil, diags
	}

	m := Default()

	if ws.StepLimit != nil {
		val, diags := ws.StepLimit.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		if !val.IsNull() {
			if err := gocty.FromCtyValue(val, &m.StepLimit); err != nil {
				return nil, fmt.Errorf("step_limit: %w", err)
			}
		}
	}
	if ws.Trace != nil {
		val, diags := ws.Trace.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		if !val.IsNull() {
			if err := gocty.FromCtyValue(val, &m.TraceCap); err != nil {
				return nil, fmt.Errorf("trace: %w", err)
			}
		}
	}

	for _, def := range ws.Defs {
		body, err := lambda.Parse(def.Body)
		if err != nil {
			return nil, fmt.Errorf("def %q: %w", def.Name, err)
		}
		m.Defs[def.Name] = body
	}

	for _, rule := range ws.Rules {
		pattern, err := lambda.Parse(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %q pattern: %w", rule.Name, err)
		}
		replacement, err := lambda.Parse(rule.Replacement)
		if err != nil {
			return nil, fmt.Errorf("rule %q replacement: %w", rule.Name, err)
		}
		m.Rules = append(m.Rules, equiv.Rule{
			Name:          rule.Name,
			Pattern:       pattern,
			Replacement:   replacement,
			Justification: rule.Justification,
		})
	}

	return m, nil
}
