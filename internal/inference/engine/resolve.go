package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/modbridge/modbridge-backend/internal/domain"
	pkgerrors "github.com/modbridge/modbridge-backend/internal/pkg/errors"
)

// resolveConcept looks up (name, platform, version) against the relational
// store. A miss is (nil, nil); only store failures return an error.
func (e *Engine) resolveConcept(ctx context.Context, name, platform, version string) (*domain.ConceptNode, error) {
	if e.deps.Concepts == nil {
		return nil, fmt.Errorf("concept store missing: %w", pkgerrors.ErrStoreUnavailable)
	}
	node, err := e.deps.Concepts.GetByNamePlatformVersion(ctx, name, platform, version)
	if err != nil {
		return nil, fmt.Errorf("resolve concept %q: %w", name, err)
	}
	return node, nil
}

// SuggestSimilar ranks known concept names for the platform by similarity to
// the query. Never returns an error to the caller: a degraded store yields an
// empty (non-nil) slice.
func (e *Engine) SuggestSimilar(ctx context.Context, name, platform string) []string {
	suggestions := []string{}
	if e.deps.Concepts == nil {
		return suggestions
	}
	names, err := e.deps.Concepts.ListNamesByPlatform(ctx, platform)
	if err != nil {
		e.log.Warn("similar-concept lookup degraded", "concept", name, "platform", platform, "error", err)
		return suggestions
	}

	type scored struct {
		name  string
		score float64
	}
	candidates := make([]scored, 0, len(names))
	for _, candidate := range names {
		if normalizeConceptName(candidate) == normalizeConceptName(name) {
			continue
		}
		score := conceptSimilarity(name, candidate)
		if score >= e.cfg.MinSimilarity {
			candidates = append(candidates, scored{name: candidate, score: score})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].name < candidates[j].name
	})
	for i, c := range candidates {
		if i >= e.cfg.MaxSuggestions {
			break
		}
		suggestions = append(suggestions, c.name)
	}
	return suggestions
}
