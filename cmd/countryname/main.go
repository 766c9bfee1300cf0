package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"countryname/pkg/batch"
	"countryname/pkg/config"
	"countryname/pkg/iso3166"
	"countryname/pkg/logging"
	"countryname/pkg/probe"
	"countryname/pkg/request"
	"countryname/pkg/resolver"
	"countryname/pkg/tracker"
	"countryname/pkg/version"
	"countryname/pkg/wikidata"
)

const defaultConfigPath = "configs/countryname.yaml"

var (
	configPath   = flag.String("config", defaultConfigPath, "Path to the config file")
	outputPath   = flag.String("output", "", "Result file (overrides output.path)")
	initConfig   = flag.Bool("init-config", false, "Generate default config file and exit")
	printVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *printVersion {
		fmt.Println("countryname", version.Version)
		return
	}

	if *initConfig {
		if err := config.GenerateDefault(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config file generated: %s\n", *configPath)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath, *outputPath, os.Stdin, os.Stdout); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "CRITICAL ERROR: Application failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfgPath, outOverride string, in io.Reader, out io.Writer) error {
	appCfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if outOverride != "" {
		appCfg.Output.Path = outOverride
	}

	cleanupLogs, err := logging.Init(&appCfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer cleanupLogs()

	logger := slog.Default().With("run_id", uuid.NewString())
	logger.Info("countryname started", "version", version.Version, "config", cfgPath)

	pipeline, catalog, tr, err := build(appCfg, out, logger)
	if err != nil {
		return err
	}

	results := probe.Run(ctx, []probe.Probe{
		{Name: "ISO 3166 catalog", Check: probe.NotEmpty(catalog), Critical: true},
		{Name: "Output directory", Check: probe.OutputDir(pipeline.OutputPath()), Critical: true},
	})
	if err := probe.AnalyzeResults(logger, results); err != nil {
		return fmt.Errorf("startup checks failed: %w", err)
	}
	defer tr.LogSummary(logger)

	start := time.Now()
	if err := pipeline.RunInteractive(ctx, in); err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}
	logger.Info("countryname finished", "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

// build wires the resolver chain from configuration.
func build(cfg *config.Config, out io.Writer, logger *slog.Logger) (*batch.Pipeline, *iso3166.Catalog, *tracker.Tracker, error) {
	tr := tracker.New()

	reqClient := request.New(tr, request.Options{
		Timeout:   time.Duration(cfg.Request.Timeout),
		Retries:   cfg.Request.Retries,
		UserAgent: cfg.Request.UserAgent,
		BaseDelay: time.Duration(cfg.Request.Backoff.BaseDelay),
		MaxDelay:  time.Duration(cfg.Request.Backoff.MaxDelay),
	})

	wd := wikidata.NewClient(reqClient, cfg.Wikidata.Endpoint, logger.With("component", "wikidata"))
	wd.Language = cfg.Wikidata.Language

	catalog, err := iso3166.LoadEmbedded(iso3166.WithMinSimilarity(float64(cfg.Standards.MinSimilarity)))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load ISO 3166 catalog: %w", err)
	}
	logger.Debug("ISO 3166 catalog loaded", "version", catalog.Version(), "entries", catalog.Len())

	res := resolver.New(wd, catalog, tr, logger.With("component", "resolver"))
	return batch.New(res, out, cfg.Output.Path, logger.With("component", "batch")), catalog, tr, nil
}
