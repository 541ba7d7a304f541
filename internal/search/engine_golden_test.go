package search

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// GoldenSearch is the on-disk structure of a reference candidate set
// produced by cmd/generate-golden.
type GoldenSearch struct {
	MaxBase uint32      `json:"max_base"`
	MaxPow  uint32      `json:"max_pow"`
	Primes  [2]uint32   `json:"primes"`
	Results [][4]uint32 `json:"results"`
}

// TestEngineAgainstGoldenFile compares the union of SearchPartition over the
// full base range against a precomputed reference set. The comparison is a
// set comparison: no ordering across partitions is guaranteed or required.
func TestEngineAgainstGoldenFile(t *testing.T) {
	goldenPath := filepath.Join("testdata", "search_golden.json")
	file, err := os.Open(goldenPath)
	if err != nil {
		t.Skipf("golden file not found (%v); generate it with 'go run ./cmd/generate-golden'", err)
	}
	defer file.Close()

	var golden GoldenSearch
	if err := json.NewDecoder(file).Decode(&golden); err != nil {
		t.Fatalf("Failed to decode golden file: %v", err)
	}

	eng, err := NewEngine(Config{
		MaxBase: golden.MaxBase,
		MaxPow:  golden.MaxPow,
		Primes:  golden.Primes,
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	got := make(map[Quad]struct{})
	ctx := context.Background()
	for a := uint32(1); a <= golden.MaxBase; a++ {
		quads, err := eng.SearchPartition(ctx, a)
		if err != nil {
			t.Fatalf("SearchPartition(%d): %v", a, err)
		}
		for _, q := range quads {
			got[q] = struct{}{}
		}
	}

	want := make(map[Quad]struct{}, len(golden.Results))
	for _, r := range golden.Results {
		want[Quad{A: r[0], X: r[1], B: r[2], Y: r[3]}] = struct{}{}
	}

	for q := range want {
		if _, ok := got[q]; !ok {
			t.Errorf("candidate %v in golden set but not emitted", q)
		}
	}
	for q := range got {
		if _, ok := want[q]; !ok {
			t.Errorf("engine emitted %v, absent from golden set", q)
		}
	}
}
