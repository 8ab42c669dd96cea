// Command simplify rewrites a medical note for a patient audience from the
// terminal and prints the readability metrics of the result.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"medsimplify/internal/config"
	"medsimplify/internal/core"
	"medsimplify/internal/db"
	"medsimplify/internal/llm"
	"medsimplify/internal/logging"
	"medsimplify/internal/metrics"
	"medsimplify/internal/report"
	"medsimplify/pkg"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "simplify: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	file        string
	sample      int
	audience    string
	strategy    string
	model       string
	temperature float64
	exportPath  string
}

func parseFlags(args []string, cfg config.Config) (options, error) {
	var o options
	fs := flag.NewFlagSet("simplify", flag.ContinueOnError)
	fs.StringVar(&o.file, "file", "", `read the note from this file ("-" for stdin)`)
	fs.IntVar(&o.sample, "sample", 0, "use bundled sample note N (1-based)")
	fs.StringVar(&o.audience, "audience", string(pkg.AudienceGeneral), "general, elderly, low_literacy or esl")
	fs.StringVar(&o.strategy, "strategy", string(pkg.StrategyZeroShot), `zero_shot, few_shot, chain_of_thought, tree_of_thoughts or "all"`)
	fs.StringVar(&o.model, "model", cfg.OpenAIModel, "model name")
	fs.Float64Var(&o.temperature, "temperature", cfg.DefaultTemperature, "sampling temperature in [0, 2]")
	fs.StringVar(&o.exportPath, "export", "", "write the session history as CSV to this file")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if o.file != "" && o.sample != 0 {
		return options{}, errors.New("-file and -sample are mutually exclusive")
	}
	if o.temperature < 0 || o.temperature > 2 {
		return options{}, fmt.Errorf("temperature must be within [0, 2], got %v", o.temperature)
	}
	return o, nil
}

func readNote(o options, stdin io.Reader) (string, error) {
	switch {
	case o.file == "-":
		b, err := io.ReadAll(stdin)
		return string(b), err
	case o.file != "":
		b, err := os.ReadFile(o.file)
		return string(b), err
	case o.sample != 0:
		s, ok := core.SampleByIndex(o.sample)
		if !ok {
			return "", fmt.Errorf("no sample %d; there are %d", o.sample, len(core.Samples()))
		}
		return s.Note, nil
	default:
		return core.DefaultNote, nil
	}
}

func strategies(raw string) ([]pkg.Strategy, error) {
	if strings.EqualFold(raw, "all") {
		return pkg.Strategies(), nil
	}
	st, err := pkg.ParseStrategy(raw)
	if err != nil {
		return nil, err
	}
	return []pkg.Strategy{st}, nil
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	o, err := parseFlags(args, cfg)
	if err != nil {
		return err
	}
	audience, err := pkg.ParseAudience(o.audience)
	if err != nil {
		return err
	}
	selected, err := strategies(o.strategy)
	if err != nil {
		return err
	}
	note, err := readNote(o, stdin)
	if err != nil {
		return fmt.Errorf("read note: %w", err)
	}
	if strings.TrimSpace(note) == "" {
		return errors.New("note is empty")
	}

	logger := logging.InitWriter(os.Stderr, "medsimplify-cli", cfg.AppEnv, cfg.LogLevel)
	history := db.NewMemoryStore()
	simplifier := core.NewSimplifier(llm.NewOpenAIClient(llm.Options{
		APIKey:            cfg.OpenAIAPIKey,
		BaseURL:           cfg.OpenAIBaseURL,
		DefaultModel:      cfg.OpenAIModel,
		RequestsPerMinute: cfg.OpenAIRequestsPerMinute,
	}), metrics.NewEvaluator(nil), history, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return simplifyAll(ctx, stdout, simplifier, history, note, audience, selected, o)
}

func simplifyAll(ctx context.Context, stdout io.Writer, simplifier *core.Simplifier, history *db.MemoryStore, note string, audience pkg.Audience, selected []pkg.Strategy, o options) error {
	results := simplifier.Compare(ctx, note, audience, o.model, o.temperature, selected...)
	failed := 0
	for _, c := range results {
		fmt.Fprintf(stdout, "== %s (%s) ==\n", c.Strategy.Label(), audience.Label())
		if c.Err != nil {
			failed++
			fmt.Fprintf(stdout, "error: %v\n\n", c.Err)
			continue
		}
		fmt.Fprintln(stdout, c.Outcome.Simplified)
		fmt.Fprintln(stdout)
		report.WriteMetricsTable(stdout, c.Outcome.Metrics)
		fmt.Fprintf(stdout, "%s\n\n", c.Outcome.Suggestion)
	}

	if len(results) > 1 {
		summary, err := history.SummaryByStrategy(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, "== Summary ==")
		report.WriteSummaryTable(stdout, summary)
	}
	if o.exportPath != "" {
		if err := exportHistory(ctx, history, o.exportPath); err != nil {
			return err
		}
	}
	if failed == len(results) {
		return fmt.Errorf("all %d simplifications failed", failed)
	}
	return nil
}

func exportHistory(ctx context.Context, history *db.MemoryStore, path string) error {
	entries, err := history.List(ctx, 0, 0)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteCSV(f, entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
