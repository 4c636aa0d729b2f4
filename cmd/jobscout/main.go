package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"jobscout/internal/common"
	"jobscout/internal/fetch"
	"jobscout/internal/llm"
	"jobscout/internal/llm/gemini"
	"jobscout/internal/pipeline"
	"jobscout/internal/report"
	"jobscout/internal/reviews"
	"jobscout/internal/source"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		input       = flag.String("input", "", "URL list file, .txt or .xlsx (overrides config)")
		out         = flag.String("out", "", "output XLSX file path (defaults to timestamped name)")
		maxInFlight = flag.Int("max-inflight", 0, "max concurrent URL pipelines (overrides config)")
	)
	flag.Parse()

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// .env is optional; real env always wins
	_ = godotenv.Load()

	// Load configuration and apply flag overrides
	cfg := common.LoadConfig()
	if *input != "" {
		cfg.Input.Path = *input
	}
	if *out != "" {
		cfg.Output.Path = *out
	}
	if *maxInFlight > 0 {
		cfg.Fetch.MaxInFlight = *maxInFlight
	}
	if err := cfg.Validate(); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Output.Path == "" {
		cfg.Output.Path = "jobs_" + time.Now().Format("20060102_150405") + ".xlsx"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Read the URL list. A missing file aborts; an empty one still
	// produces a (blank) report.
	sources, err := source.Read(cfg.Input.Path, logger)
	if err != nil {
		if errors.Is(err, common.ErrEmptySource) {
			logger.Warn("no valid URLs in input, writing empty report", "input", cfg.Input.Path)
		} else {
			logger.Error("failed to read input", "input", cfg.Input.Path, "error", err)
			os.Exit(1)
		}
	}

	// Wire the fetcher
	limiter := fetch.NewHostLimiter(cfg.Fetch.HostRPS, cfg.Fetch.HostBurst)
	fetcher := fetch.New(fetch.Config{
		Timeout:      cfg.Fetch.Timeout,
		UserAgent:    cfg.Fetch.UserAgent,
		MaxBodyBytes: cfg.Fetch.MaxBodyBytes,
	}, limiter, logger)

	// Setup Gemini client
	client := gemini.NewClient(gemini.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)
	logger.Info("model client initialized", "model", cfg.LLM.Model)

	// Wire review sources and aggregator
	srcs := make([]reviews.Source, 0, len(cfg.Reviews.Sources))
	for _, sc := range cfg.Reviews.Sources {
		srcs = append(srcs, reviews.NewSearchSource(sc.Name, sc.ScaleMax, client, logger))
	}
	aggregator := reviews.NewAggregator(srcs, cfg.Reviews.MaxInFlight, cfg.Reviews.TopComments, logger)

	// Setup processor
	processor := pipeline.NewProcessor(logger, fetcher, client, aggregator, cfg.Fetch.MaxInFlight, llm.MatchProfile{
		PreferredLocations:  cfg.Match.PreferredLocations,
		PreferredExperience: cfg.Match.PreferredExperience,
		PreferredSkills:     cfg.Match.PreferredSkills,
		JobType:             cfg.Match.JobType,
	})

	logger.Info("starting run", "input", cfg.Input.Path, "urls", len(sources))
	records, aggregates := processor.Run(ctx, sources)

	// Build and write the report
	rep := report.Build(records, aggregates, time.Now().UTC())
	xlsxBytes, err := report.WriteXLSX(rep)
	if err != nil {
		logger.Error("failed to render report", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(cfg.Output.Path, xlsxBytes, 0644); err != nil {
		logger.Error("failed to write output file", "output", cfg.Output.Path, "error", err)
		os.Exit(1)
	}

	extracted := 0
	for _, r := range records {
		if r.ExtractionStatus.OK {
			extracted++
		}
	}
	logger.Info("run complete",
		"urls", len(records),
		"extracted", extracted,
		"failures", len(records)-extracted,
		"companies", len(aggregates),
		"output_file", cfg.Output.Path)

	fmt.Printf("Run complete!\n")
	fmt.Printf("- URLs processed: %d\n", len(records))
	fmt.Printf("- Jobs extracted: %d\n", extracted)
	fmt.Printf("- Failures: %d\n", len(records)-extracted)
	fmt.Printf("- Companies reviewed: %d\n", len(aggregates))
	fmt.Printf("- Output: %s\n", cfg.Output.Path)
}
