// Package pipeline wires every analysis stage together: parallel file
// parsing, Decorator, Binder, the flow-graph builder plus native model and
// module linker, the chosen inter-procedural strategy, and extraction. It
// also owns per-stage timing (`--time`) and diagnostics accumulation.
package pipeline

import (
	"fmt"
	"os"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/1homsi/fieldcg/internal/ast"
	"github.com/1homsi/fieldcg/internal/binder"
	"github.com/1homsi/fieldcg/internal/callgraph"
	"github.com/1homsi/fieldcg/internal/config"
	"github.com/1homsi/fieldcg/internal/decorator"
	"github.com/1homsi/fieldcg/internal/diagnostics"
	"github.com/1homsi/fieldcg/internal/filter"
	"github.com/1homsi/fieldcg/internal/flow"
	"github.com/1homsi/fieldcg/internal/parser"
)

// Result is the full output of one pipeline run.
type Result struct {
	Graph       *flow.Graph
	CallGraph   *callgraph.Result
	Context     *decorator.Context
	Diagnostics *diagnostics.Sink
	Timings     []Timing
}

// Timing is one stage's wall-clock duration, recorded when cfg.Time is set.
type Timing struct {
	Stage    string
	Duration time.Duration
}

// Run executes the full pipeline over the given source files. Returns a
// non-nil error only for fatal conditions (a filter that does not compile,
// empty input after filtering, unknown strategy, no file parsed
// successfully); everything else, including a file that cannot be read,
// degrades to a diagnostic and a partial result.
func Run(cfg *config.Config, files []string, diag *diagnostics.Sink) (*Result, error) {
	rules, err := filter.Compile(cfg.Filter)
	if err != nil {
		return nil, diag.Fatal("config", "%v", err)
	}
	files = filter.Apply(files, rules)
	if len(files) == 0 {
		return nil, diag.Fatal("pipeline", "no input files after filtering")
	}

	strategy, ok := flow.ParseStrategy(cfg.Strategy)
	if !ok {
		return nil, diag.Fatal("config", "unknown strategy %q", cfg.Strategy)
	}

	res := &Result{Diagnostics: diag}
	timed := func(stage string, fn func()) {
		start := time.Now()
		fn()
		if cfg.Time {
			res.Timings = append(res.Timings, Timing{Stage: stage, Duration: time.Since(start)})
		}
	}

	var asts []*ast.Node
	timed("parse", func() {
		asts = parseAll(files, diag)
	})
	if len(asts) == 0 {
		return nil, diag.Fatal("pipeline", "no file parsed successfully")
	}

	var ctx *decorator.Context
	timed("decorate", func() {
		ctx = decorator.Run(diag, asts)
	})

	timed("bind", func() {
		binder.Run(diag, asts)
	})

	g := flow.NewGraph()
	timed("build", func() {
		flow.BuildIntraprocedural(g, asts)
		flow.ApplyNatives(g, ctx.Calls)
		flow.LinkModules(g, diag, asts)
	})

	timed("strategy", func() {
		flow.ApplyStrategy(g, strategy, ctx.Functions, ctx.Calls)
	})

	var cg *callgraph.Result
	timed("extract", func() {
		cg = callgraph.Extract(g, ctx.Functions, ctx.Calls)
	})

	res.Graph = g
	res.CallGraph = cg
	res.Context = ctx
	return res, nil
}

// parseAll parses every file concurrently with an errgroup, then merges
// results strictly in file-list order so determinism does not depend on
// goroutine scheduling. A file that fails to parse is dropped with a
// warning rather than aborting the whole run.
func parseAll(files []string, diag *diagnostics.Sink) []*ast.Node {
	type parsed struct {
		idx  int
		node *ast.Node
		err  error
	}
	out := make([]parsed, len(files))

	var g errgroup.Group
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			source, err := os.ReadFile(f)
			if err != nil {
				out[i] = parsed{idx: i, err: err}
				return nil
			}
			node, err := parser.ParseFile(f, source)
			out[i] = parsed{idx: i, node: node, err: err}
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(out, func(i, j int) bool { return out[i].idx < out[j].idx })

	var asts []*ast.Node
	for _, p := range out {
		if p.err != nil {
			diag.Warn("parse", files[p.idx], "%v", p.err)
			continue
		}
		asts = append(asts, p.node)
	}
	return asts
}

// FormatTimings renders timing records for console output.
func FormatTimings(timings []Timing) string {
	out := ""
	for _, t := range timings {
		out += fmt.Sprintf("[TIME] %-10s %s\n", t.Stage, t.Duration)
	}
	return out
}
