// Command lamcalc parses a lambda term, reduces it to normal form under
// a step budget, and prints the result. It can also compare two terms
// for equivalence, or run an interactive session.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/vic/lamcalc/internal/config"
	"github.com/vic/lamcalc/internal/logs"
	"github.com/vic/lamcalc/pkg/equiv"
	"github.com/vic/lamcalc/pkg/lambda"
	"github.com/vic/lamcalc/pkg/reducer"
)

var (
	limitFlag  = flag.Uint64("limit", 0, "reduction step limit (overrides the workspace file)")
	configFlag = flag.String("config", "", "path to a workspace file (default: lamcalc.hcl if present)")
	traceFlag  = flag.Bool("trace", false, "print each reduction step to stderr")
	eqFlag     = flag.Bool("eq", false, "compare two terms instead of reducing one")
	replFlag   = flag.Bool("repl", false, "start an interactive session")
	debugFlag  = flag.Bool("log-debug", false, "set log level to debug")
)

func usage() {
	fmt.Fprint(os.Stderr, "usage: lamcalc [flags] [file]\n")
	fmt.Fprint(os.Stderr, "       lamcalc -eq TERM TERM\n")
	fmt.Fprint(os.Stderr, "       lamcalc -repl\n\n")
	fmt.Fprint(os.Stderr, "Reads a lambda term from file or stdin and prints its normal form.\n\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *debugFlag {
		logs.Level.Set(slog.LevelDebug)
	}
	slog.SetDefault(logs.New(os.Stderr))

	if err := run(os.Stdout, flag.Args()); err != nil {
		var stepErr *reducer.StepLimitError
		if errors.As(err, &stepErr) {
			fmt.Fprintf(os.Stderr, "step limit exceeded after %d steps\n", stepErr.Steps)
			fmt.Fprintf(os.Stderr, "partial term: %s\n", lambda.PrettyPrint(stepErr.Partial))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func run(outW io.Writer, args []string) error {
	model, err := loadWorkspace()
	if err != nil {
		return err
	}
	limit := model.StepLimit
	if *limitFlag > 0 {
		limit = *limitFlag
	}

	switch {
	case *replFlag:
		return runREPL(outW, model, limit)
	case *eqFlag:
		if len(args) != 2 {
			usage()
		}
		return runEq(outW, model, limit, args[0], args[1])
	default:
		return runReduce(outW, args, model, limit)
	}
}

func loadWorkspace() (*config.Model, error) {
	path := *configFlag
	if path == "" {
		if _, err := os.Stat("lamcalc.hcl"); err != nil {
			return config.Default(), nil
		}
		path = "lamcalc.hcl"
	}
	model, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("workspace %s: %w", path, err)
	}
	slog.Debug("workspace loaded", "path", path, "defs", len(model.Defs), "rules", len(model.Rules))
	return model, nil
}

func runReduce(outW io.Writer, args []string, model *config.Model, limit uint64) error {
	var input []byte
	var err error
	switch len(args) {
	case 0:
		input, err = io.ReadAll(os.Stdin)
	case 1:
		input, err = os.ReadFile(args[0])
	default:
		usage()
	}
	if err != nil {
		return err
	}

	term, err := lambda.Parse(string(input))
	if err != nil {
		return err
	}
	term = equiv.Expand(term, model.Defs, equiv.DefaultExpandBudget)

	engine := reducer.New()
	if *traceFlag || model.TraceCap > 0 {
		capacity := model.TraceCap
		if capacity <= 0 {
			capacity = int(min(limit, 1<<16))
		}
		engine.EnableTrace(capacity)
	}

	start := time.Now()
	result, redErr := engine.Normalize(term, limit)
	elapsed := time.Since(start)

	for _, ev := range engine.TraceSnapshot() {
		fmt.Fprintf(os.Stderr, "step %d: %s → %s\n", ev.Step, ev.Redex, ev.Result)
	}
	if redErr != nil {
		return redErr
	}

	fmt.Fprintln(outW, lambda.PrettyPrint(result))
	printStats(engine.GetStats(), elapsed)
	return nil
}

func printStats(stats reducer.Stats, elapsed time.Duration) {
	fmt.Fprintf(os.Stderr, "\nStats:\n")
	fmt.Fprintf(os.Stderr, "Time:           %v\n", elapsed)
	fmt.Fprintf(os.Stderr, "Beta steps:     %6d", stats.BetaSteps)
	if seconds := elapsed.Seconds(); seconds > 0 && stats.BetaSteps > 0 {
		fmt.Fprintf(os.Stderr, " (%.2f steps/sec)", float64(stats.BetaSteps)/seconds)
	}
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "Alpha renames:  %6d\n", stats.Renames)
	fmt.Fprintf(os.Stderr, "Peak term size: %6d\n", stats.PeakSize)
}

func runEq(outW io.Writer, model *config.Model, limit uint64, srcA, srcB string) error {
	a, err := lambda.Parse(srcA)
	if err != nil {
		return fmt.Errorf("left term: %w", err)
	}
	b, err := lambda.Parse(srcB)
	if err != nil {
		return fmt.Errorf("right term: %w", err)
	}

	checker := &equiv.Checker{
		Defs:      model.Defs,
		Rules:     model.Rules,
		StepLimit: limit,
	}
	verdict := checker.Equivalent(a, b)
	fmt.Fprintln(outW, verdict)
	if verdict == equiv.Inconclusive {
		fmt.Fprintln(os.Stderr, "a step budget ran out; retry with a larger -limit")
	}
	return nil
}
