package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/1homsi/fieldcg/internal/callgraph"
	"github.com/1homsi/fieldcg/internal/config"
	"github.com/1homsi/fieldcg/internal/diagnostics"
	"github.com/1homsi/fieldcg/internal/pipeline"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 1 && args[0] == "version" {
		fmt.Println(version)
		return 0
	}

	cfg, files, err := config.Parse(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
		return 2
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "no input files given")
		usage()
		return 2
	}

	diag := diagnostics.NewSink()
	diag.SetVerbose(cfg.Verbose)

	if err := analyzeOnce(cfg, files, diag); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if !cfg.Watch {
		return 0
	}
	return watchAndRerun(cfg, files, diag)
}

func analyzeOnce(cfg *config.Config, files []string, diag *diagnostics.Sink) error {
	res, err := pipeline.Run(cfg, files, diag)
	if err != nil {
		return err
	}

	switch {
	case cfg.FlowGraph:
		data, err := dumpFlowGraph(res)
		if err != nil {
			return fmt.Errorf("dumping flow graph: %w", err)
		}
		return writeBytes(cfg.Output, data)
	case cfg.CountCB:
		return writeJSON(cfg.Output, pipelineCallbackStats(res))
	case cfg.RequireJS:
		return writeJSON(cfg.Output, pipelineAMDGraph(res))
	default:
		projection, ok := callgraph.ParseProjection(cfg.AnalyzerType)
		if !ok {
			return diag.Fatal("config", "unknown analyzertype %q", cfg.AnalyzerType)
		}
		data, err := callgraph.Render(res.CallGraph, projection)
		if err != nil {
			return fmt.Errorf("rendering output: %w", err)
		}
		if err := writeBytes(cfg.Output, data); err != nil {
			return err
		}
	}

	if cfg.Time {
		fmt.Fprint(os.Stderr, pipeline.FormatTimings(res.Timings))
	}
	return nil
}

func watchAndRerun(cfg *config.Config, files []string, diag *diagnostics.Sink) int {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintln(os.Stderr, "watch:", err)
		return 1
	}
	defer watcher.Close()

	dirs := map[string]bool{}
	for _, f := range files {
		dirs[filepath.Dir(f)] = true
	}
	for d := range dirs {
		if err := watcher.Add(d); err != nil {
			fmt.Fprintln(os.Stderr, "watch:", err)
			return 1
		}
	}

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return 0
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			fmt.Fprintf(os.Stderr, "[WATCH] %s changed, re-running\n", ev.Name)
			if err := analyzeOnce(cfg, files, diag); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return 0
			}
			fmt.Fprintln(os.Stderr, "watch:", err)
		}
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `fieldcg — approximate call-graph analyzer for JavaScript/TypeScript

Usage:
  fieldcg [flags] <file.js> [file.js ...]
  fieldcg version

Flags:
  -strategy NONE|ONESHOT|DEMAND|FULL
  -filter +pattern|-pattern   (repeatable)
  -output path
  -fg
  -countCB
  -reqJs
  -analyzertype default|static|nativecalls|acg
  -time
  -verbose
  -watch
  -config path.yaml`)
}
