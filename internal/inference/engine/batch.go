package engine

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// BatchInfer runs one inference per concept with bounded concurrency.
// Per-concept failures never abort the batch; results are keyed by concept
// name so completion order is irrelevant. On cancellation the completed
// results are returned as a partial batch.
func (e *Engine) BatchInfer(ctx context.Context, concepts []string, targetPlatform, version string) BatchInferenceResult {
	started := time.Now()

	out := BatchInferenceResult{
		Success:        true,
		ConceptPaths:   map[string]InferenceResult{},
		FailedConcepts: []FailedConcept{},
		BatchMetadata: BatchMetadata{
			TotalConcepts: len(concepts),
			Concurrency:   e.cfg.BatchConcurrency,
		},
	}
	if len(concepts) == 0 {
		out.BatchMetadata.DurationMS = time.Since(started).Milliseconds()
		return out
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.BatchConcurrency)

	for _, concept := range concepts {
		concept := strings.TrimSpace(concept)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				mu.Lock()
				out.FailedConcepts = append(out.FailedConcepts, FailedConcept{
					Concept:   concept,
					Error:     "batch cancelled before this concept ran",
					ErrorKind: FailureCancelled,
				})
				out.BatchMetadata.Cancelled = true
				mu.Unlock()
				return nil
			}
			res := e.Infer(gctx, concept, targetPlatform, version, nil)
			mu.Lock()
			defer mu.Unlock()
			if res.Success {
				out.ConceptPaths[concept] = res
			} else {
				out.FailedConcepts = append(out.FailedConcepts, FailedConcept{
					Concept:     concept,
					Error:       res.Error,
					ErrorKind:   res.ErrorKind,
					Suggestions: res.Suggestions,
				})
			}
			return nil
		})
	}
	_ = g.Wait()

	out.BatchMetadata.Succeeded = len(out.ConceptPaths)
	out.BatchMetadata.Failed = len(out.FailedConcepts)
	out.BatchMetadata.DurationMS = time.Since(started).Milliseconds()
	if ctx.Err() != nil {
		out.BatchMetadata.Cancelled = true
	}
	return out
}
