package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"jobscout/internal/common"
	"jobscout/internal/llm/gemini"
	"jobscout/internal/pagefinder"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		input = flag.String("input", "companies.txt", "file with one company name per line")
		out   = flag.String("out", "career_pages.txt", "output file path")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	cfg := common.LoadConfig()
	if cfg.LLM.APIKey == "" {
		printError("Error: GEMINI_API_KEY is required\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	companies, err := pagefinder.ReadCompanies(*input)
	if err != nil {
		logger.Error("failed to read company list", "input", *input, "error", err)
		os.Exit(1)
	}

	client := gemini.NewClient(gemini.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)

	finder := pagefinder.New(client, cfg.Fetch.MaxInFlight, logger)

	logger.Info("starting lookup", "input", *input, "companies", len(companies))
	results := finder.Run(ctx, companies)

	if err := pagefinder.WriteResults(*out, results); err != nil {
		logger.Error("failed to write results", "output", *out, "error", err)
		os.Exit(1)
	}

	found := 0
	for _, r := range results {
		if r.URL != pagefinder.NotFound && !strings.HasPrefix(r.URL, "ERROR:") {
			found++
		}
	}
	logger.Info("lookup complete",
		"companies", len(companies),
		"found", found,
		"output_file", *out)

	fmt.Printf("Lookup complete!\n")
	fmt.Printf("- Companies: %d\n", len(companies))
	fmt.Printf("- Pages found: %d\n", found)
	fmt.Printf("- Output: %s\n", *out)
}
