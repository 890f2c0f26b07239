package scan

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/GriffinCanCode/phash/internal/trace"
	"github.com/GriffinCanCode/phash/pkg/hashing"
)

// Result is the outcome of hashing one file. Exactly one of Fingerprint and
// Err is set.
type Result struct {
	Path        string
	Fingerprint *hashing.Fingerprint
	Err         error
}

// Scanner hashes files concurrently with a shared engine.
type Scanner struct {
	engine  *hashing.Engine
	workers int
}

// NewScanner creates a scanner. workers < 1 means one worker.
func NewScanner(engine *hashing.Engine, workers int) *Scanner {
	if workers < 1 {
		workers = 1
	}
	return &Scanner{engine: engine, workers: workers}
}

// HashFiles hashes paths and returns one Result per path, in input order.
// Per-file failures are recorded in the Result. Cancelling ctx stops
// scheduling; files never started carry ctx's error and HashFiles returns it.
func (s *Scanner) HashFiles(ctx context.Context, paths []string) ([]Result, error) {
	ctx, span := trace.StartSpan(ctx, SpanScan)
	defer span.End()

	// Lock before fan-out so every worker sees the same frozen configuration.
	id := s.engine.AlgorithmID()

	results := make([]Result, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, p := range paths {
		if err := gctx.Err(); err != nil {
			for j := i; j < len(paths); j++ {
				results[j] = Result{Path: paths[j], Err: err}
			}
			break
		}
		i, p := i, p
		g.Go(func() error {
			results[i] = s.hashFile(gctx, p)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	span.SetAttr("files", len(paths))
	span.SetAttr("failed", failed)
	trace.Logger(ctx).Info("scan complete",
		"algorithm_id", id, "files", len(paths), "failed", failed, "duration", time.Since(span.StartTime))
	return results, ctx.Err()
}

func (s *Scanner) hashFile(ctx context.Context, path string) Result {
	if err := ctx.Err(); err != nil {
		return Result{Path: path, Err: err}
	}
	ctx, span := trace.StartSpan(ctx, SpanHashFile)
	defer span.End()
	log := trace.Logger(ctx)

	img, err := Decode(path)
	if err != nil {
		log.Debug("skipping file", "path", path, "error", err)
		return Result{Path: path, Err: err}
	}
	fp, err := s.engine.Hash(img)
	if err != nil {
		log.Debug("hash failed", "path", path, "error", err)
		return Result{Path: path, Err: err}
	}
	if log.Enabled(ctx, slog.LevelDebug) {
		log.Debug("hashed file", "path", path, "hash", fp.Hex())
	}
	return Result{Path: path, Fingerprint: fp}
}
