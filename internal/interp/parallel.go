package interp

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/kolkov/ulox/internal/types"
)

// BatchConfig holds configuration for parallel evaluation of source units.
type BatchConfig struct {
	// NumWorkers is the number of worker goroutines.
	// Default: runtime.NumCPU()
	NumWorkers int

	// MaxBuffered limits how many units wait in the queue.
	// Default: NumWorkers * 2
	MaxBuffered int
}

// DefaultBatchConfig returns defaults for parallel evaluation.
func DefaultBatchConfig() BatchConfig {
	numCPU := runtime.NumCPU()
	return BatchConfig{
		NumWorkers:  numCPU,
		MaxBuffered: numCPU * 2,
	}
}

// Unit is one source text to evaluate, such as the contents of a file.
type Unit struct {
	Name   string
	Source string
}

// UnitResult is the outcome of evaluating one Unit.
type UnitResult struct {
	ID      int // Index of the unit in the batch
	Name    string
	Value   types.Value
	Err     error // Scan, parse or runtime error
	Elapsed time.Duration
}

type job struct {
	id   int
	unit Unit
}

// RunBatch evaluates every unit and returns the results in input order.
// A source unit is the only unit of work: each one is scanned, parsed and
// evaluated by a single worker. Per-unit failures are reported in
// UnitResult.Err; the returned error is set only if ctx is cancelled.
func RunBatch(ctx context.Context, units []Unit, config BatchConfig) ([]UnitResult, error) {
	if config.NumWorkers <= 0 {
		config.NumWorkers = runtime.NumCPU()
	}
	if config.NumWorkers > len(units) {
		config.NumWorkers = len(units)
	}
	if config.MaxBuffered <= 0 {
		config.MaxBuffered = config.NumWorkers * 2
	}

	jobs := make(chan job, config.MaxBuffered)
	results := make(chan UnitResult, config.MaxBuffered)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(ctx, jobs, results)
		}()
	}

	// Feed units
	feedDone := make(chan error, 1)
	go func() {
		defer close(jobs)
		for i, u := range units {
			select {
			case jobs <- job{id: i, unit: u}:
			case <-ctx.Done():
				feedDone <- ctx.Err()
				return
			}
		}
		feedDone <- nil
	}()

	// Close results once every worker is done
	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]UnitResult, len(units))
	for r := range results {
		out[r.ID] = r
	}

	if err := <-feedDone; err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// worker evaluates units until jobs is closed or ctx is done.
func worker(ctx context.Context, jobs <-chan job, results chan<- UnitResult) {
	for j := range jobs {
		if ctx.Err() != nil {
			// drain so the feeder can finish
			continue
		}
		start := time.Now()
		val, err := EvalSource(j.unit.Source)
		results <- UnitResult{
			ID:      j.id,
			Name:    j.unit.Name,
			Value:   val,
			Err:     err,
			Elapsed: time.Since(start),
		}
	}
}
