package engine

import (
	"context"
	"errors"
	"testing"
)

func TestConceptSimilarityOrdering(t *testing.T) {
	typo := conceptSimilarity("java_blok", "java_block")
	reordered := conceptSimilarity("block_java", "java_block")
	unrelated := conceptSimilarity("redstone_torch", "java_block")

	if typo <= unrelated || reordered <= unrelated {
		t.Fatalf("near-misses must outrank unrelated names: typo=%v reordered=%v unrelated=%v",
			typo, reordered, unrelated)
	}
	if got := conceptSimilarity("java_block", "java_block"); got != 1 {
		t.Fatalf("identical names = %v, want 1", got)
	}
	if got := conceptSimilarity("Java Block", "java_block"); got != 1 {
		t.Fatalf("normalization should equate spaced/cased forms, got %v", got)
	}
	if got := conceptSimilarity("", "java_block"); got != 0 {
		t.Fatalf("empty query = %v, want 0", got)
	}
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"java_blok", "java_block", 1},
		{"same", "same", 0},
	}
	for _, tc := range cases {
		if got := levenshtein(tc.a, tc.b); got != tc.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestSuggestSimilarRankingAndCap(t *testing.T) {
	concepts := &fakeConceptStore{}
	for _, name := range []string{
		"java_block", "java_block_entity", "java_block_state",
		"java_blockish", "java_blocky", "java_blocking",
		"totally_unrelated",
	} {
		concepts.add(name, PlatformJava, "1.19.3")
	}

	e := newTestEngine(Deps{Concepts: concepts})
	got := e.SuggestSimilar(context.Background(), "java_blok", PlatformJava)

	if len(got) == 0 {
		t.Fatal("expected suggestions for a near-miss")
	}
	if len(got) > DefaultConfig().MaxSuggestions {
		t.Fatalf("suggestions exceed cap: %d", len(got))
	}
	if got[0] != "java_block" {
		t.Fatalf("best match = %q, want java_block (%v)", got[0], got)
	}
	for _, s := range got {
		if s == "totally_unrelated" {
			t.Fatal("unrelated name passed the similarity floor")
		}
	}
}

func TestSuggestSimilarExcludesExactAndDegradesSafely(t *testing.T) {
	concepts := &fakeConceptStore{}
	concepts.add("java_block", PlatformJava, "1.19.3")

	e := newTestEngine(Deps{Concepts: concepts})
	for _, s := range e.SuggestSimilar(context.Background(), "java_block", PlatformJava) {
		if s == "java_block" {
			t.Fatal("the queried name itself must not be suggested")
		}
	}

	e = newTestEngine(Deps{Concepts: &fakeConceptStore{err: errors.New("pg down")}})
	if got := e.SuggestSimilar(context.Background(), "java_block", PlatformJava); got == nil || len(got) != 0 {
		t.Fatalf("degraded store must yield empty non-nil slice, got %v", got)
	}

	e = newTestEngine(Deps{})
	if got := e.SuggestSimilar(context.Background(), "java_block", PlatformJava); got == nil {
		t.Fatal("nil store must yield empty non-nil slice")
	}
}
