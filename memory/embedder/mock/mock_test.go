package mock

import (
	"context"
	"math"
	"testing"
)

func TestEmbedDeterministic(t *testing.T) {
	e := New()

	a, err := e.Embed(context.Background(), []string{"hello"})
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	b, _ := e.Embed(context.Background(), []string{"hello"})

	if len(a[0]) != e.Dimensions() {
		t.Fatalf("vector length = %d, want %d", len(a[0]), e.Dimensions())
	}
	for i := range a[0] {
		if a[0][i] != b[0][i] {
			t.Fatal("identical text embedded differently")
		}
	}
}

func TestEmbedDistinctTexts(t *testing.T) {
	e := NewWithDimensions(16)
	vecs, err := e.Embed(context.Background(), []string{"alpha", "beta"})
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(vecs) != 2 {
		t.Fatalf("got %d vectors, want 2", len(vecs))
	}
	same := true
	for i := range vecs[0] {
		if vecs[0][i] != vecs[1][i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different texts embedded identically")
	}
}

func TestEmbedUnitNorm(t *testing.T) {
	e := NewWithDimensions(32)
	vecs, _ := e.Embed(context.Background(), []string{"norm check"})

	var norm float64
	for _, v := range vecs[0] {
		norm += float64(v) * float64(v)
	}
	if math.Abs(math.Sqrt(norm)-1) > 1e-4 {
		t.Errorf("vector norm = %v, want ~1", math.Sqrt(norm))
	}
}
