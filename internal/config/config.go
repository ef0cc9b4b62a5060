// Package config implements the command-line configuration surface: flags
// parsed with the standard library flag package, with an optional YAML
// overlay file.
package config

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the merged configuration for one analysis run.
type Config struct {
	Strategy     string   `yaml:"strategy"`
	Filter       []string `yaml:"filter"`
	Output       string   `yaml:"output"`
	FlowGraph    bool     `yaml:"fg"`
	CountCB      bool     `yaml:"countCB"`
	RequireJS    bool     `yaml:"reqJs"`
	AnalyzerType string   `yaml:"analyzertype"`
	Time         bool     `yaml:"time"`
	Verbose      bool     `yaml:"verbose"`
	Watch        bool     `yaml:"watch"`
}

func defaults() Config {
	return Config{
		Strategy:     "ONESHOT",
		AnalyzerType: "default",
	}
}

// Parse builds a Config from command-line args, merging an optional
// --config YAML file underneath them: flags win over the file, the file
// wins over defaults.
func Parse(args []string) (*Config, []string, error) {
	fs := flag.NewFlagSet("fieldcg", flag.ContinueOnError)

	cfg := defaults()
	var configPath string
	var filterFlags stringList

	fs.StringVar(&configPath, "config", "", "path to a YAML config file merged underneath flags")
	fs.StringVar(&cfg.Strategy, "strategy", "", "inter-procedural strategy: NONE, ONESHOT, DEMAND, FULL")
	fs.Var(&filterFlags, "filter", "repeatable +pattern/-pattern file filter rule")
	fs.StringVar(&cfg.Output, "output", "", "output path for the edge list (stdout if empty)")
	fs.BoolVar(&cfg.FlowGraph, "fg", false, "serialize the flow graph for debugging")
	fs.BoolVar(&cfg.CountCB, "countCB", false, "emit callback statistics instead of the edge list")
	fs.BoolVar(&cfg.RequireJS, "reqJs", false, "emit an AMD/RequireJS dependency graph instead of the edge list")
	fs.StringVar(&cfg.AnalyzerType, "analyzertype", cfg.AnalyzerType, "edge-extraction projection: default, static, nativecalls, acg")
	fs.BoolVar(&cfg.Time, "time", false, "emit per-stage timings")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "enable debug/info logging")
	fs.BoolVar(&cfg.Watch, "watch", false, "re-run on file-system change")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	explicit := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	if configPath != "" {
		overlay, err := loadYAML(configPath)
		if err != nil {
			return nil, nil, fmt.Errorf("loading --config: %w", err)
		}
		mergeUnderneath(&cfg, overlay, explicit)
	}
	if len(filterFlags) > 0 {
		cfg.Filter = []string(filterFlags)
	}

	strategy, ok := normalizeStrategy(cfg.Strategy)
	if !ok {
		return nil, nil, fmt.Errorf("unknown strategy %q", cfg.Strategy)
	}
	cfg.Strategy = strategy

	return &cfg, fs.Args(), nil
}

// normalizeStrategy applies the FULL->DEMAND aliasing and validates the
// name, returning the canonical uppercase form.
func normalizeStrategy(s string) (string, bool) {
	switch s {
	case "", "ONESHOT", "oneshot":
		return "ONESHOT", true
	case "NONE", "none":
		return "NONE", true
	case "DEMAND", "demand":
		return "DEMAND", true
	case "FULL", "full":
		fmt.Fprintln(os.Stderr, "[WARN] strategy FULL is an alias for DEMAND")
		return "DEMAND", true
	default:
		return s, false
	}
}

func loadYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// mergeUnderneath copies every field of overlay into cfg that was not set
// explicitly on the command line, i.e. file values fill in only what the
// user didn't type as a flag.
func mergeUnderneath(cfg *Config, overlay *Config, explicit map[string]bool) {
	if !explicit["strategy"] && overlay.Strategy != "" {
		cfg.Strategy = overlay.Strategy
	}
	if !explicit["filter"] && len(overlay.Filter) > 0 {
		cfg.Filter = overlay.Filter
	}
	if !explicit["output"] && overlay.Output != "" {
		cfg.Output = overlay.Output
	}
	if !explicit["fg"] && overlay.FlowGraph {
		cfg.FlowGraph = true
	}
	if !explicit["countCB"] && overlay.CountCB {
		cfg.CountCB = true
	}
	if !explicit["reqJs"] && overlay.RequireJS {
		cfg.RequireJS = true
	}
	if !explicit["analyzertype"] && overlay.AnalyzerType != "" {
		cfg.AnalyzerType = overlay.AnalyzerType
	}
	if !explicit["time"] && overlay.Time {
		cfg.Time = true
	}
	if !explicit["verbose"] && overlay.Verbose {
		cfg.Verbose = true
	}
	if !explicit["watch"] && overlay.Watch {
		cfg.Watch = true
	}
}

// stringList implements flag.Value for a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return fmt.Sprintf("%v", *s) }
func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}
