// Package runner implements the block runner: it fans out the
// two-stage matcher across blocks, merges the resulting matches,
// applies the final confidence cutoff, and reports what happened.
package runner

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"dedupe/internal/dataset"
	"dedupe/internal/matching"
	"dedupe/internal/record"
)

// sequentialThreshold is the block count at or below which running a
// worker pool isn't worth its setup cost.
const sequentialThreshold = 10

// Options configures a single run.
type Options struct {
	Matching            matching.Options
	ConfidenceThreshold int
	UseParallel         bool
	Workers             int // 0 derives cores-1, floor 1
}

// RunStats summarizes what happened during a run: how many blocks
// were processed, how many failed, and whether the run returned early
// because its context was cancelled.
type RunStats struct {
	RunID           string
	TotalBlocks     int
	ProcessedBlocks int
	FailedBlocks    int
	MatchesFound    int
	MatchesKept     int
	Duration        time.Duration
	Incomplete      bool
}

// Run processes every block and returns the deduplicated, confidence-
// filtered matches found across all of them, alongside run statistics.
// Cancelling ctx stops the run between blocks rather than mid-block;
// Run never returns an error for cancellation, it returns whatever
// partial results were gathered with Incomplete set.
func Run(ctx context.Context, blocks []record.Block, ds *dataset.Dataset, opts Options) ([]record.Match, RunStats) {
	start := time.Now()
	runID := uuid.New().String()
	logger := slog.Default().With("component", "block_runner", "run_id", runID)
	stats := RunStats{RunID: runID, TotalBlocks: len(blocks)}

	var results []record.Match
	if !opts.UseParallel || len(blocks) <= sequentialThreshold {
		results, stats = runSequential(ctx, blocks, ds, opts, stats, logger)
	} else {
		results, stats = runParallel(ctx, blocks, ds, opts, stats, logger)
	}

	merged := mergeWithPrecedence(results)
	kept := applyConfidenceThreshold(merged, opts.ConfidenceThreshold)

	stats.MatchesFound = len(merged)
	stats.MatchesKept = len(kept)
	stats.Duration = time.Since(start)
	return kept, stats
}

func runSequential(ctx context.Context, blocks []record.Block, ds *dataset.Dataset, opts Options, stats RunStats, logger *slog.Logger) ([]record.Match, RunStats) {
	var all []record.Match
	for _, block := range blocks {
		if err := ctx.Err(); err != nil {
			stats.Incomplete = true
			logger.Warn("run cancelled", "processed_blocks", stats.ProcessedBlocks, "total_blocks", stats.TotalBlocks)
			break
		}
		matches, failed := processBlockSafely(block, ds, opts, logger)
		if failed {
			stats.FailedBlocks++
			continue
		}
		stats.ProcessedBlocks++
		all = append(all, matches...)
	}
	return all, stats
}

func runParallel(ctx context.Context, blocks []record.Block, ds *dataset.Dataset, opts Options, stats RunStats, logger *slog.Logger) ([]record.Match, RunStats) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU() - 1
	}
	if workers < 1 {
		workers = 1
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	var all []record.Match

	for _, block := range blocks {
		block := block
		if ctx.Err() != nil {
			stats.Incomplete = true
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			matches, failed := processBlockSafely(block, ds, opts, logger)

			mu.Lock()
			defer mu.Unlock()
			if failed {
				stats.FailedBlocks++
			} else {
				stats.ProcessedBlocks++
				all = append(all, matches...)
			}
			return nil
		})
	}

	// g.Go never returns a non-nil error; Wait only blocks for completion.
	_ = g.Wait()

	if stats.ProcessedBlocks+stats.FailedBlocks < stats.TotalBlocks {
		stats.Incomplete = true
	}
	if stats.Incomplete {
		logger.Warn("run cancelled", "processed_blocks", stats.ProcessedBlocks, "total_blocks", stats.TotalBlocks)
	}
	return all, stats
}

// processBlockSafely runs the matcher over a single block, recovering
// from any panic so one pathological block degrades the run rather
// than crashing it.
func processBlockSafely(block record.Block, ds *dataset.Dataset, opts Options, logger *slog.Logger) (matches []record.Match, failed bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("block worker panicked, skipping block", "block_key", block.Key, "panic", r)
			failed = true
		}
	}()

	recs := make([]record.NormalizedRecord, 0, len(block.IDs))
	for _, id := range block.IDs {
		if nr, ok := ds.ByID(id); ok {
			recs = append(recs, nr)
		}
	}
	matches = matching.ProcessBlock(recs, opts.Matching)
	if len(matches) == 0 {
		logger.Debug("block produced no candidates", "block_key", block.Key)
	}
	return matches, false
}

// mergeWithPrecedence deduplicates matches that share a pair key,
// keeping the one whose type outranks the others; ties on rank keep
// the higher confidence.
func mergeWithPrecedence(matches []record.Match) []record.Match {
	best := make(map[record.PairKey]record.Match, len(matches))
	for _, m := range matches {
		key := m.Key()
		current, seen := best[key]
		if !seen || m.Type.Outranks(current.Type) ||
			(m.Type == current.Type && m.Confidence > current.Confidence) {
			best[key] = m
		}
	}
	out := make([]record.Match, 0, len(best))
	for _, m := range best {
		out = append(out, m)
	}
	return out
}

func applyConfidenceThreshold(matches []record.Match, threshold int) []record.Match {
	out := make([]record.Match, 0, len(matches))
	for _, m := range matches {
		if m.Confidence >= threshold {
			out = append(out, m)
		}
	}
	return out
}
