package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/samber/lo"
	"github.com/vic/lamcalc/internal/config"
	"github.com/vic/lamcalc/pkg/equiv"
	"github.com/vic/lamcalc/pkg/lambda"
	"github.com/vic/lamcalc/pkg/reducer"
)

// prelude is preloaded into the REPL definition table. Workspace defs
// with the same name win.
var prelude = []struct{ name, src string }{
	{"I", `λa.a`},
	{"K", `λa.λb.a`},
	{"S", `λa.λb.λc.a c (b c)`},
	{"T", `λa.λb.a`},
	{"F", `λa.λb.b`},
	{"not", `λp.p F T`},
	{"and", `λa.λb.a b a`},
	{"or", `λa.λb.a a b`},
	{"pair", `λa.λb.λf.f a b`},
	{"fst", `λp.p T`},
	{"snd", `λp.p F`},
	{"zero", `λf.λx.x`},
	{"succ", `λn.λf.λx.f (n f x)`},
	{"plus", `λa.λb.a succ b`},
	{"mult", `λa.λb.λf.a (b f)`},
}

type session struct {
	out   io.Writer
	defs  equiv.Defs
	rules []equiv.Rule
	limit uint64
}

func runREPL(outW io.Writer, model *config.Model, limit uint64) error {
	s := &session{
		out:   outW,
		defs:  make(equiv.Defs, len(prelude)+len(model.Defs)),
		rules: model.Rules,
		limit: limit,
	}
	for _, def := range prelude {
		term, err := lambda.Parse(def.src)
		if err != nil {
			panic(fmt.Sprintf("bad prelude entry %q: %v", def.name, err))
		}
		s.defs[def.name] = term
	}
	for name, term := range model.Defs {
		s.defs[name] = term
	}

	var historyFile string
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".lamcalc_history")
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "λ> ",
		HistoryFile: historyFile,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil { // Ctrl-C or Ctrl-D
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ":quit" || line == ":q" {
			return nil
		}
		if err := s.eval(line); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
}

func (s *session) eval(line string) error {
	switch {
	case strings.HasPrefix(line, ":def "):
		return s.evalDef(strings.TrimPrefix(line, ":def "))
	case line == ":defs":
		s.listDefs()
		return nil
	case strings.HasPrefix(line, ":eq "):
		return s.evalEq(strings.TrimPrefix(line, ":eq "))
	case strings.HasPrefix(line, ":limit "):
		return s.evalLimit(strings.TrimPrefix(line, ":limit "))
	case strings.HasPrefix(line, ":"):
		return fmt.Errorf("unknown command %q (have :def, :defs, :eq, :limit, :quit)", line)
	}
	return s.reduce(line)
}

func (s *session) reduce(src string) error {
	term, err := lambda.Parse(src)
	if err != nil {
		return err
	}
	term = equiv.Expand(term, s.defs, equiv.DefaultExpandBudget)

	result, steps, err := reducer.NormalForm(term, s.limit)
	var stepErr *reducer.StepLimitError
	if errors.As(err, &stepErr) {
		fmt.Fprintf(s.out, "step limit exceeded after %d steps\n", stepErr.Steps)
		fmt.Fprintf(s.out, "partial: %s\n", lambda.PrettyPrint(stepErr.Partial))
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s  [%d steps]\n", lambda.PrettyPrint(result), steps)
	return nil
}

// evalDef handles `:def name = TERM`.
func (s *session) evalDef(rest string) error {
	name, src, found := strings.Cut(rest, "=")
	name = strings.TrimSpace(name)
	if !found || name == "" {
		return fmt.Errorf("usage: :def name = TERM")
	}
	term, err := lambda.Parse(src)
	if err != nil {
		return err
	}
	s.defs[name] = term
	fmt.Fprintf(s.out, "%s = %s\n", name, lambda.PrettyPrint(term))
	return nil
}

func (s *session) listDefs() {
	names := lo.Keys(s.defs)
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(s.out, "%-8s = %s\n", name, lambda.PrettyPrint(s.defs[name]))
	}
}

// evalEq handles `:eq TERM == TERM`. The separator cannot occur inside a
// term because '=' is a reserved rune in the surface syntax.
func (s *session) evalEq(rest string) error {
	srcA, srcB, found := strings.Cut(rest, "==")
	if !found {
		return fmt.Errorf("usage: :eq TERM == TERM")
	}
	a, err := lambda.Parse(srcA)
	if err != nil {
		return fmt.Errorf("left term: %w", err)
	}
	b, err := lambda.Parse(srcB)
	if err != nil {
		return fmt.Errorf("right term: %w", err)
	}
	checker := &equiv.Checker{
		Defs:      s.defs,
		Rules:     s.rules,
		StepLimit: s.limit,
	}
	fmt.Fprintln(s.out, checker.Equivalent(a, b))
	return nil
}

func (s *session) evalLimit(rest string) error {
	var limit uint64
	if _, err := fmt.Sscanf(strings.TrimSpace(rest), "%d", &limit); err != nil || limit == 0 {
		return fmt.Errorf("usage: :limit N (N > 0)")
	}
	s.limit = limit
	fmt.Fprintf(s.out, "step limit set to %d\n", limit)
	return nil
}
