// Command sievego runs lattice sieves against random Ajtai lattices.
//
// Usage:
//
//	sievego -n N -r R -q Q [-seed S] [-log-level L] <command> [flags]
//
// Commands:
//
//	nv      -N count -gamma g
//	gauss   -c collisions
//	double  [-N count] -gamma g [-strategy randomized|exhaustive|parallel] [-workers k]
//	sample  -N count -out name [-compression c] [-codec c]
//
// Sieve commands also accept -max-generations, -store, -in, -report and -json.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hupe1980/sievego"
	"github.com/hupe1980/sievego/blobstore"
	"github.com/hupe1980/sievego/codec"
	"github.com/hupe1980/sievego/lattice"
	"github.com/hupe1980/sievego/report"
	"github.com/hupe1980/sievego/resource"
	"github.com/hupe1980/sievego/sampler"
	"github.com/hupe1980/sievego/snapshot"
)

// progressPerSecond throttles per-generation log lines.
const progressPerSecond = 4

var errUsage = errors.New("usage")

type globalFlags struct {
	params   lattice.Params
	seed     uint64
	logLevel slog.Level
}

type commandFlags struct {
	count          int
	gamma          float64
	collisions     int
	strategy       string
	workers        int
	maxGenerations int
	memoryLimit    int64
	store          string
	in             string
	out            string
	htmlReport     string
	jsonReport     string
	compression    string
	codec          string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	g, cmd, rest, err := parseGlobal(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	cf, err := parseCommand(cmd, rest, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if cmd == "sample" {
		err = runSample(ctx, g, cf, stdout)
	} else {
		err = runSieve(ctx, g, cmd, cf, stdout)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseGlobal(args []string, stderr io.Writer) (globalFlags, string, []string, error) {
	var (
		g     globalFlags
		level string
	)

	fs := flag.NewFlagSet("sievego", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&g.params.N, "n", 10, "lattice parameter n")
	fs.IntVar(&g.params.R, "r", 5, "lattice parameter r")
	fs.IntVar(&g.params.Q, "q", 97, "modulus q")
	fs.Uint64Var(&g.seed, "seed", 1, "random seed")
	fs.StringVar(&level, "log-level", "info", "log level: debug|info|warn|error")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: sievego [flags] <nv|gauss|double|sample> [command flags]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return g, "", nil, err
	}
	if err := g.logLevel.UnmarshalText([]byte(level)); err != nil {
		return g, "", nil, fmt.Errorf("log-level: %w", err)
	}
	if err := g.params.Validate(); err != nil {
		return g, "", nil, err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return g, "", nil, fmt.Errorf("%w: missing command", errUsage)
	}
	return g, fs.Arg(0), fs.Args()[1:], nil
}

func parseCommand(cmd string, args []string, stderr io.Writer) (commandFlags, error) {
	var cf commandFlags

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)

	switch cmd {
	case "nv":
		fs.IntVar(&cf.count, "N", 0, "initial generation size")
		fs.Float64Var(&cf.gamma, "gamma", 0.9, "shrink factor in (0,1)")
	case "gauss":
		fs.IntVar(&cf.collisions, "c", 10, "collision threshold")
	case "double":
		fs.IntVar(&cf.count, "N", 0, "initial generation size (default 2^(0.208d))")
		fs.Float64Var(&cf.gamma, "gamma", 0.9, "shrink factor in (0,1)")
		fs.StringVar(&cf.strategy, "strategy", "randomized", "step strategy: randomized|exhaustive|parallel")
		fs.IntVar(&cf.workers, "workers", 0, "parallel workers (default min(16, GOMAXPROCS))")
		fs.Int64Var(&cf.memoryLimit, "memory-limit", 0, "candidate buffer limit in bytes")
	case "sample":
		fs.IntVar(&cf.count, "N", 0, "number of vectors")
		fs.StringVar(&cf.out, "out", "", "snapshot name")
		fs.StringVar(&cf.store, "store", ".", "artifact store: dir, s3://bucket/prefix or minio://host/bucket")
		fs.StringVar(&cf.compression, "compression", "zstd", "snapshot compression: none|lz4|zstd")
		fs.StringVar(&cf.codec, "codec", codec.Default.Name(), "snapshot header codec: "+strings.Join(codec.Names(), "|"))
	default:
		return cf, fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}

	if cmd != "sample" {
		fs.IntVar(&cf.maxGenerations, "max-generations", 0, "generation cap (0 = none)")
		fs.StringVar(&cf.store, "store", ".", "artifact store: dir, s3://bucket/prefix or minio://host/bucket")
		fs.StringVar(&cf.in, "in", "", "snapshot with the initial generation")
		fs.StringVar(&cf.htmlReport, "report", "", "write an HTML norm chart to this file")
		fs.StringVar(&cf.jsonReport, "json", "", "write the JSON report to this file")
	}

	if err := fs.Parse(args); err != nil {
		return cf, err
	}
	if fs.NArg() > 0 {
		return cf, fmt.Errorf("%w: unexpected arguments %v", errUsage, fs.Args())
	}

	switch {
	case cmd == "nv" && cf.count <= 0 && cf.in == "":
		return cf, fmt.Errorf("%w: nv requires -N or -in", errUsage)
	case cmd == "sample" && (cf.count <= 0 || cf.out == ""):
		return cf, fmt.Errorf("%w: sample requires -N and -out", errUsage)
	}
	return cf, nil
}

func runSample(ctx context.Context, g globalFlags, cf commandFlags, stdout io.Writer) error {
	comp, err := snapshot.ParseCompression(cf.compression)
	if err != nil {
		return err
	}
	hc, ok := codec.ByName(cf.codec)
	if !ok {
		return fmt.Errorf("%w: unknown codec %q", errUsage, cf.codec)
	}
	store, err := openStore(ctx, cf.store)
	if err != nil {
		return err
	}

	// Draw order matches sievego.Solve, so a sample and a run with the same
	// seed use the same lattice.
	rng, err := sampler.NewRand(g.seed)
	if err != nil {
		return err
	}
	basis, w, err := lattice.NewAjtai(g.params, rng)
	if err != nil {
		return err
	}
	vecs, err := sampler.NewGaussian(basis, rng).Sample(ctx, cf.count)
	if err != nil {
		return err
	}

	meta := map[string]string{
		"params": g.params.String(),
		"seed":   fmt.Sprint(g.seed),
	}
	withOpts := func(o *snapshot.Options) {
		o.Compression = comp
		o.Codec = hc
		o.Meta = meta
	}
	if err := snapshot.SaveVectors(ctx, store, cf.out, vecs, withOpts); err != nil {
		return fmt.Errorf("save vectors: %w", err)
	}
	if err := snapshot.SaveBasis(ctx, store, basisName(cf.out), basis, withOpts); err != nil {
		return fmt.Errorf("save basis: %w", err)
	}

	_, short := lattice.MinNorm(vecs)
	fmt.Fprintf(stdout, "sampled %d vectors of dimension %d (shortest %.3f, planted %.3f) into %s\n",
		len(vecs), g.params.Dim(), short.Norm(), w.Norm(), cf.out)
	return nil
}

func runSieve(ctx context.Context, g globalFlags, cmd string, cf commandFlags, stdout io.Writer) error {
	engine, err := sievego.ParseEngine(cmd)
	if err != nil {
		return err
	}

	cfg := sievego.Config{
		Engine:      engine,
		Params:      g.params,
		SampleCount: cf.count,
		Gamma:       cf.gamma,
		Strategy:    cf.strategy,
		Workers:     cf.workers,
		Collisions:  cf.collisions,
		Seed:        g.seed,
	}

	if cf.in != "" {
		store, err := openStore(ctx, cf.store)
		if err != nil {
			return err
		}
		cfg.Initial, _, err = snapshot.LoadVectors(ctx, store, cf.in)
		if err != nil {
			return fmt.Errorf("load %s: %w", cf.in, err)
		}
		basis, _, err := snapshot.LoadBasis(ctx, store, basisName(cf.in))
		switch {
		case err == nil:
			cfg.Basis = basis
		case !errors.Is(err, blobstore.ErrNotFound):
			return fmt.Errorf("load basis: %w", err)
		}
	}

	metrics := &sievego.BasicMetricsCollector{}
	rc := resource.NewController(resource.Config{
		MemoryLimitBytes:  cf.memoryLimit,
		MaxWorkers:        cf.workers,
		ProgressPerSecond: progressPerSecond,
	})

	rep, err := sievego.Solve(ctx, cfg,
		sievego.WithLogLevel(g.logLevel),
		sievego.WithMetricsCollector(metrics),
		sievego.WithMaxGenerations(cf.maxGenerations),
		sievego.WithResources(rc),
	)

	// Reports are written for failed runs too; they carry the error.
	if werr := writeReports(rep, cf); werr != nil {
		return errors.Join(err, werr)
	}
	if err != nil {
		return err
	}

	stats := metrics.GetStats()
	fmt.Fprintf(stdout, "%s: status=%s norm=%.4f bound=%.4f generations=%d candidates=%d elapsed=%s\n",
		engine, rep.Result.Status, rep.Result.Norm, rep.Bound, rep.Result.Generations, stats.Candidates, rep.Elapsed)
	fmt.Fprintf(stdout, "vector: %v\n", rep.Result.Vector)
	return nil
}

func writeReports(rep sievego.Report, cf commandFlags) error {
	write := func(path string, render func(io.Writer) error) error {
		if path == "" {
			return nil
		}
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := render(f); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	}

	if err := write(cf.jsonReport, func(w io.Writer) error { return report.WriteJSON(w, rep, nil) }); err != nil {
		return fmt.Errorf("json report: %w", err)
	}
	if err := write(cf.htmlReport, func(w io.Writer) error { return report.RenderHTML(w, rep) }); err != nil {
		return fmt.Errorf("html report: %w", err)
	}
	return nil
}

func basisName(name string) string {
	return name + ".basis"
}
