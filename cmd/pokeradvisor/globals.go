package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/pokeradvisor/advisor"
	"github.com/lox/pokeradvisor/equity"
	"github.com/lox/pokeradvisor/internal/config"
	"github.com/lox/pokeradvisor/internal/display"
	"github.com/lox/pokeradvisor/internal/randutil"
	"github.com/lox/pokeradvisor/poker"
)

// Globals are flags shared by every command.
type Globals struct {
	Config    string `short:"c" default:"pokeradvisor.hcl" help:"Path to HCL configuration file"`
	LogLevel  string `short:"l" help:"Log level (overrides config)"`
	LogFormat string `enum:"text,json,logfmt" default:"text" help:"Log output format"`
	NoColor   bool   `help:"Disable colored output"`
}

// env bundles what commands need after the configuration is resolved.
type env struct {
	cfg     *config.Config
	logger  *log.Logger
	printer *display.Printer
}

func (g *Globals) setup() (*env, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.Server.LogLevel = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := newLogger(cfg.Server.LogLevel, g.LogFormat)
	if err != nil {
		return nil, err
	}

	var popts []display.Option
	if g.NoColor {
		popts = append(popts, display.WithColor(false))
	}
	return &env{cfg: cfg, logger: logger, printer: display.New(os.Stdout, popts...)}, nil
}

func newLogger(level, format string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	opts := log.Options{Level: lvl, ReportTimestamp: true}
	switch format {
	case "json":
		opts.Formatter = log.JSONFormatter
	case "logfmt":
		opts.Formatter = log.LogfmtFormatter
	default:
		opts.Formatter = log.TextFormatter
	}
	return log.NewWithOptions(os.Stderr, opts), nil
}

// seed prefers an explicit flag, then the configured seed, then the time.
func (e *env) seed(flag *int64) int64 {
	switch {
	case flag != nil:
		return *flag
	case e.cfg.Advisor.Seed != 0:
		return e.cfg.Advisor.Seed
	default:
		return time.Now().UnixNano()
	}
}

func (e *env) calculator() *equity.Calculator {
	return equity.NewCalculator(poker.NewEvaluator(),
		equity.WithWorkers(e.cfg.Advisor.Workers),
		equity.WithLogger(e.logger))
}

// loadChart resolves the chart from the flag or config. A missing chart
// is only worth a warning when one was asked for.
func (e *env) loadChart(path string) advisor.ChartResult {
	if path == "" {
		path = e.cfg.Advisor.Chart
	}
	res := advisor.LoadChart(path)
	switch {
	case res.Err == nil:
		e.logger.Debug("Loaded range chart", "path", res.Path, "positions", len(res.Chart.Positions))
	case path == "":
		e.logger.Debug("Using default range chart")
	default:
		e.logger.Warn("Falling back to default range chart", "path", path, "error", res.Err)
	}
	return res
}

func (e *env) advisorOptions(chart advisor.Chart, calc *equity.Calculator) []advisor.Option {
	return []advisor.Option{
		advisor.WithChart(chart),
		advisor.WithCalculator(calc),
		advisor.WithSizing(e.cfg.AdvisorSizing()),
		advisor.WithIterations(e.cfg.Advisor.Iterations),
		advisor.WithLogger(e.logger),
	}
}

func (e *env) newAdvisor(chart advisor.Chart, seed int64) *advisor.Advisor {
	opts := e.advisorOptions(chart, e.calculator())
	return advisor.New(append(opts, advisor.WithRand(randutil.New(seed)))...)
}
