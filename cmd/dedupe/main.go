package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"dedupe/internal/adapter"
	"dedupe/internal/blocker"
	"dedupe/internal/config"
	"dedupe/internal/dataset"
	"dedupe/internal/export"
	"dedupe/internal/matching"
	"dedupe/internal/record"
	"dedupe/internal/runner"
)

func main() {
	inputPath := flag.String("input", "", "Path to the input CSV or XLSX file")
	outputPath := flag.String("output", "matches.csv", "Path to write the match-pair CSV to")
	confidenceThreshold := flag.Int("confidence-threshold", 0, "Override the default confidence cutoff (0 keeps the config default)")
	usePhonetic := flag.Bool("use-phonetic", true, "Enable the phonetic fallback match type")
	useParallel := flag.Bool("use-parallel", true, "Run the block runner's worker pool instead of a sequential scan")
	flag.Parse()

	if *inputPath == "" {
		log.Fatal("missing required -input flag")
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.LoadConfigFromEnv()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if *confidenceThreshold > 0 {
		cfg.ConfidenceThreshold = *confidenceThreshold
	}
	cfg.UsePhonetic = *usePhonetic
	cfg.UseParallel = *useParallel

	raw, err := readInput(*inputPath)
	if err != nil {
		log.Fatalf("failed to read input: %v", err)
	}
	slog.Info("loaded input records", "count", len(raw))

	ds := dataset.Build(raw)
	blocks := blocker.Build(ds.Records, cfg.MaxBlockSize)
	slog.Info("built blocks", "count", len(blocks))

	opts := runner.Options{
		Matching: matching.Options{
			FuzzyThreshold:      cfg.FuzzyThreshold,
			PhoneticFallbackLow: cfg.PhoneticFallbackLow,
			UsePhonetic:         cfg.UsePhonetic,
			YearPolicy:          cfg.AmbiguousYearPolicy,
		},
		ConfidenceThreshold: cfg.ConfidenceThreshold,
		UseParallel:         cfg.UseParallel,
		Workers:             cfg.Workers,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	start := time.Now()
	matches, stats := runner.Run(ctx, blocks, ds, opts)
	slog.Info("run complete",
		"duration", time.Since(start),
		"total_blocks", stats.TotalBlocks,
		"processed_blocks", stats.ProcessedBlocks,
		"failed_blocks", stats.FailedBlocks,
		"matches_kept", stats.MatchesKept,
		"incomplete", stats.Incomplete)

	if err := writeOutput(*outputPath, matches, ds); err != nil {
		log.Fatalf("failed to write output: %v", err)
	}
	fmt.Printf("wrote %d matches to %s\n", len(matches), *outputPath)
}

func readInput(path string) ([]record.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return adapter.FromXLSX(f)
	}
	return adapter.FromCSV(f)
}

func writeOutput(path string, matches []record.Match, ds *dataset.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return export.ToCSV(f, matches, ds)
}
