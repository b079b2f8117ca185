// Command perturb applies a document-level perturbation to a multi-document
// summarization dataset stored as JSON Lines.
//
//	perturb -perturbation deletion -strategy random -frac 0.1 -seed 42 \
//	    -dataset multi_news -input test.jsonl -output test.deletion.jsonl
//
// Locations may be local paths or s3://bucket/key when OPEN_MDS_OBJECT_STORE is set.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/open-mds/pkg/database"
	"github.com/Aleph-Alpha/open-mds/pkg/dataset"
	"github.com/Aleph-Alpha/open-mds/pkg/perturb"
	"github.com/Aleph-Alpha/open-mds/pkg/runs"
)

const (
	startTimeout = 30 * time.Second
	stopTimeout  = 15 * time.Second
)

type options struct {
	perturbation string
	strategy     string
	frac         float64
	seed         int64
	sep          string
	datasetName  string
	input        string
	output       string
	documents    string
	useTargets   bool
	configPath   string
	envFile      string

	// set holds the names of flags given on the command line.
	set map[string]bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "perturb:", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var o options
	fset := flag.NewFlagSet("perturb", flag.ContinueOnError)
	fset.SetOutput(output)

	fset.StringVar(&o.perturbation, "perturbation", "", "one of sorting, duplication, addition, deletion, replacement, backtranslation")
	fset.StringVar(&o.strategy, "strategy", "", "random, best-case or worst-case (default random)")
	fset.Float64Var(&o.frac, "frac", 0, "fraction of documents to perturb per example, in [0, 1]")
	fset.Int64Var(&o.seed, "seed", 0, "seed for the random source; drawn at startup when omitted")
	fset.StringVar(&o.sep, "sep", "", "document separator token; overrides -dataset")
	fset.StringVar(&o.datasetName, "dataset", "", "dataset preset for the separator: multi_news, multi_x_science_sum, ms2")
	fset.StringVar(&o.input, "input", "", "input JSONL location")
	fset.StringVar(&o.output, "output", "", "output JSONL location")
	fset.StringVar(&o.documents, "documents", "", "optional JSONL location whose documents join the candidate pool")
	fset.BoolVar(&o.useTargets, "use-targets", true, "use reference summaries as targets for non-random strategies")
	fset.StringVar(&o.configPath, "config", "", "optional YAML config file")
	fset.StringVar(&o.envFile, "env", ".env", "dotenv file loaded before reading the environment")

	if err := fset.Parse(args); err != nil {
		return o, err
	}

	o.set = map[string]bool{}
	fset.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	if o.input == "" || o.output == "" {
		return o, errors.New("-input and -output are required")
	}
	return o, nil
}

// applyFlags lets command-line flags override the file and environment configuration.
func applyFlags(cfg *appConfig, o options) error {
	if o.set["perturbation"] {
		cfg.Perturb.Perturbation = perturb.Perturbation(o.perturbation)
	}
	if o.set["strategy"] {
		cfg.Perturb.Strategy = perturb.Strategy(o.strategy)
	}
	if cfg.Perturb.Strategy == "" {
		cfg.Perturb.Strategy = perturb.Random
	}
	if o.set["seed"] {
		seed := o.seed
		cfg.Perturb.Seed = &seed
	}

	switch {
	case o.set["sep"]:
		cfg.Perturb.DocSepToken = o.sep
	case o.datasetName != "":
		sep, ok := perturb.DocSepTokens[o.datasetName]
		if !ok {
			return fmt.Errorf("unknown dataset preset %q", o.datasetName)
		}
		cfg.Perturb.DocSepToken = sep
	}

	if err := cfg.Perturb.Validate(); err != nil {
		return err
	}
	if err := cfg.Features.validate(); err != nil {
		return err
	}
	if cfg.Perturb.Perturbation != perturb.Sorting && !o.set["frac"] {
		return fmt.Errorf("-frac is required for %s", cfg.Perturb.Perturbation)
	}
	return nil
}

func loadEnvFile(o options) error {
	err := godotenv.Load(o.envFile)
	if err == nil {
		return nil
	}
	// A missing default .env is normal; a missing explicit one is not.
	if errors.Is(err, fs.ErrNotExist) && !o.set["env"] {
		return nil
	}
	return fmt.Errorf("loading %s: %w", o.envFile, err)
}

func run(ctx context.Context, args []string, output io.Writer) error {
	o, err := parseFlags(args, output)
	if err != nil {
		return err
	}
	if err := loadEnvFile(o); err != nil {
		return err
	}

	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return err
	}
	if err := applyFlags(&cfg, o); err != nil {
		return err
	}

	var c components
	app := fx.New(appOptions(cfg, &c)...)
	if err := app.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(ctx, startTimeout)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		defer cancel()
		if err := app.Stop(stopCtx); err != nil {
			fmt.Fprintln(output, "perturb: shutdown:", err)
		}
	}()

	started := time.Now()
	n, runErr := execute(ctx, c, o)
	report(ctx, c, o, n, started, runErr)
	return runErr
}

// execute loads the dataset, perturbs every example and writes the result.
func execute(ctx context.Context, c components, o options) (int, error) {
	examples, err := c.Sources.Load(ctx, o.input)
	if err != nil {
		return 0, err
	}

	req := perturb.Request{PerturbedFrac: o.frac}
	if o.documents != "" {
		extra, err := c.Sources.Load(ctx, o.documents)
		if err != nil {
			return 0, err
		}
		req.Documents = dataset.Inputs(extra)
	}
	if o.useTargets && c.Perturber.Strategy() != perturb.Random {
		req.Targets = dataset.Targets(examples)
	}

	c.Logger.Info("perturbing dataset", nil, map[string]interface{}{
		"perturbation": string(c.Perturber.Perturbation()),
		"strategy":     string(c.Perturber.Strategy()),
		"frac":         o.frac,
		"seed":         c.Perturber.Seed(),
		"examples":     len(examples),
		"input":        o.input,
	})

	perturbed, err := c.Perturber.Perturb(ctx, dataset.Inputs(examples), req)
	if err != nil {
		return len(examples), err
	}
	out, err := dataset.WithInputs(examples, perturbed)
	if err != nil {
		return len(examples), err
	}
	if err := c.Sources.Save(ctx, o.output, out); err != nil {
		return len(examples), err
	}

	c.Logger.Info("wrote perturbed dataset", nil, map[string]interface{}{
		"output":   o.output,
		"examples": len(out),
	})
	return len(examples), nil
}

// report records the run in the ledger and announces it on the event bus,
// whichever of the two is configured. Failures are logged, not returned.
func report(ctx context.Context, c components, o options, examples int, started time.Time, runErr error) {
	ctx = context.WithoutCancel(ctx)
	run := &database.Run{
		Perturbation:  string(c.Perturber.Perturbation()),
		Strategy:      string(c.Perturber.Strategy()),
		PerturbedFrac: o.frac,
		Seed:          int64(c.Perturber.Seed()),
		Examples:      examples,
		Input:         o.input,
		Output:        o.output,
		StartedAt:     started,
		FinishedAt:    time.Now(),
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}

	if c.Ledger != nil {
		if err := c.Ledger.RecordRun(ctx, run); err != nil {
			c.Logger.Error("failed to record run", err, map[string]interface{}{"input": o.input})
		}
	}

	event := runs.Event{
		RunID:         run.ID,
		Perturbation:  run.Perturbation,
		Strategy:      run.Strategy,
		PerturbedFrac: run.PerturbedFrac,
		Seed:          c.Perturber.Seed(),
		Examples:      run.Examples,
		Input:         run.Input,
		Output:        run.Output,
		FinishedAt:    run.FinishedAt,
		Error:         run.Error,
	}
	for _, p := range c.Publishers {
		if err := p.PublishRun(ctx, event); err != nil {
			c.Logger.Error("failed to publish run event", err, map[string]interface{}{"input": o.input})
		}
	}
}
