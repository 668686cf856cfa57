package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// baseStepCostMS is the planning cost assumed per conversion hop. Estimates
// are best-effort relative numbers for scheduling, not promises.
const baseStepCostMS = 500

// OptimizeSequence plans a multi-concept conversion job: it finds hops shared
// between concepts so they run once, groups coupled concepts for reuse, and
// estimates the wall-clock saving versus naive sequential processing.
// Optimization failure is always reported as success=false so callers can
// fall back to sequential processing.
func (e *Engine) OptimizeSequence(ctx context.Context, steps []SequenceStep, targetPlatform, version string) (out OptimizationResult) {
	defer func() {
		if rec := recover(); rec != nil {
			e.log.Error("sequence optimization panicked", "panic", rec)
			out = OptimizationResult{Success: false, Error: fmt.Sprintf("optimization failed: %v", rec)}
		}
	}()

	out = OptimizationResult{
		ProcessingGroups: []ProcessingGroup{},
		SharedSteps:      []SharedStep{},
	}
	if len(steps) == 0 {
		out.Error = "empty conversion sequence"
		return out
	}

	concepts := make([]string, 0, len(steps))
	seen := map[string]bool{}
	for _, s := range steps {
		name := strings.TrimSpace(s.Concept)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		concepts = append(concepts, name)
	}
	if len(concepts) == 0 {
		out.Error = "no usable concepts in sequence"
		return out
	}

	batch := e.BatchInfer(ctx, concepts, targetPlatform, version)
	conceptSteps := map[string][]PathStep{}
	for _, name := range concepts {
		res, ok := batch.ConceptPaths[name]
		if !ok || res.PrimaryPath == nil {
			out.UnresolvedConcepts = append(out.UnresolvedConcepts, name)
			continue
		}
		conceptSteps[name] = res.PrimaryPath.Steps
	}
	if len(conceptSteps) == 0 {
		out.Error = "no resolvable concepts in sequence"
		return out
	}

	shared := identifySharedSteps(conceptSteps)
	groups := groupByShared(concepts, conceptSteps, shared)

	totalSteps := 0
	for _, s := range conceptSteps {
		totalSteps += len(s)
	}
	out.TotalSteps = totalSteps
	out.SharedSteps = shared
	out.ProcessingGroups = groups

	out.SequentialEstimateMS = int64(totalSteps) * baseStepCostMS
	out.OptimizedEstimateMS = estimateBatchTime(groups)
	out.SavingsMS = out.SequentialEstimateMS - out.OptimizedEstimateMS
	if out.SavingsMS < 0 {
		out.SavingsMS = 0
		out.OptimizedEstimateMS = out.SequentialEstimateMS
	}
	if out.SequentialEstimateMS > 0 {
		out.SavingsPercent = float64(out.SavingsMS) / float64(out.SequentialEstimateMS) * 100
	}
	out.Success = true
	return out
}

func stepSignature(s PathStep) string {
	return s.SourceConcept + "->" + s.TargetConcept + "#" + s.RelationshipType
}

// identifySharedSteps finds hops appearing in the routes of two or more
// concepts; each is worth computing once and reusing.
func identifySharedSteps(conceptSteps map[string][]PathStep) []SharedStep {
	bySig := map[string]*SharedStep{}
	sigConcepts := map[string]map[string]bool{}

	names := make([]string, 0, len(conceptSteps))
	for name := range conceptSteps {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, step := range conceptSteps[name] {
			sig := stepSignature(step)
			if bySig[sig] == nil {
				bySig[sig] = &SharedStep{Step: step}
				sigConcepts[sig] = map[string]bool{}
			}
			bySig[sig].Occurrences++
			if !sigConcepts[sig][name] {
				sigConcepts[sig][name] = true
				bySig[sig].Concepts = append(bySig[sig].Concepts, name)
			}
		}
	}

	shared := []SharedStep{}
	for sig, s := range bySig {
		if len(sigConcepts[sig]) >= 2 {
			shared = append(shared, *s)
		}
	}
	sort.Slice(shared, func(i, j int) bool {
		if shared[i].Occurrences != shared[j].Occurrences {
			return shared[i].Occurrences > shared[j].Occurrences
		}
		return stepSignature(shared[i].Step) < stepSignature(shared[j].Step)
	})
	return shared
}

// groupByShared clusters concepts that share at least one hop into one group
// (so the shared hop runs once), leaving independent concepts in their own
// groups for parallel execution.
func groupByShared(order []string, conceptSteps map[string][]PathStep, shared []SharedStep) []ProcessingGroup {
	parent := map[string]string{}
	var find func(string) string
	find = func(x string) string {
		if parent[x] == x {
			return x
		}
		parent[x] = find(parent[x])
		return parent[x]
	}
	union := func(a, b string) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[rb] = ra
		}
	}

	for name := range conceptSteps {
		parent[name] = name
	}
	for _, s := range shared {
		for i := 1; i < len(s.Concepts); i++ {
			union(s.Concepts[0], s.Concepts[i])
		}
	}

	members := map[string][]string{}
	for _, name := range order {
		if _, ok := conceptSteps[name]; !ok {
			continue
		}
		root := find(name)
		members[root] = append(members[root], name)
	}

	sharedSigsByConcept := map[string]map[string]bool{}
	for _, s := range shared {
		sig := stepSignature(s.Step)
		for _, c := range s.Concepts {
			if sharedSigsByConcept[c] == nil {
				sharedSigsByConcept[c] = map[string]bool{}
			}
			sharedSigsByConcept[c][sig] = true
		}
	}

	groups := []ProcessingGroup{}
	used := map[string]bool{}
	for _, name := range order {
		root := find(name)
		if used[root] || len(members[root]) == 0 {
			continue
		}
		used[root] = true

		uniqueSigs := map[string]bool{}
		totalSteps := 0
		sharedCount := map[string]bool{}
		for _, member := range members[root] {
			for _, step := range conceptSteps[member] {
				sig := stepSignature(step)
				uniqueSigs[sig] = true
				totalSteps++
				if sharedSigsByConcept[member][sig] {
					sharedCount[sig] = true
				}
			}
		}
		groups = append(groups, ProcessingGroup{
			Concepts:    members[root],
			TotalSteps:  totalSteps,
			SharedSteps: len(sharedCount),
			// Shared hops execute once per group.
			EstimatedMS: int64(len(uniqueSigs)) * baseStepCostMS,
		})
	}
	return groups
}

// estimateBatchTime assumes groups are independent and run in parallel, so
// the batch takes as long as its slowest group.
func estimateBatchTime(groups []ProcessingGroup) int64 {
	var max int64
	for _, g := range groups {
		if g.EstimatedMS > max {
			max = g.EstimatedMS
		}
	}
	return max
}
