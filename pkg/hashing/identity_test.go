package hashing

import (
	"testing"

	"github.com/GriffinCanCode/phash/pkg/filter"
)

func engineID(t *testing.T, kind Kind, res int, fs ...filter.Filter) ID {
	t.Helper()
	enc, err := EncoderFor(kind)
	if err != nil {
		t.Fatal(err)
	}
	e, err := NewEngine(enc, res)
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range fs {
		if err := e.AddFilter(f); err != nil {
			t.Fatal(err)
		}
	}
	return e.AlgorithmID()
}

func TestIDStableAcrossInstances(t *testing.T) {
	box, _ := filter.Box(3, 3)
	a := engineID(t, KindAverage, 64, filter.Sharpen(), box)
	b := engineID(t, KindAverage, 64, filter.Sharpen(), box)
	if a != b {
		t.Errorf("AlgorithmID() = %s and %s for identical configurations", a, b)
	}
}

func TestIDCachedAtLock(t *testing.T) {
	e, _ := NewAverageHash(64)
	first := e.AlgorithmID()
	for i := 0; i < 3; i++ {
		if got := e.AlgorithmID(); got != first {
			t.Fatalf("AlgorithmID() = %s, want %s", got, first)
		}
	}
}

func TestIDDependsOnResolution(t *testing.T) {
	seen := map[ID]int{}
	for _, res := range []int{15, 40, 60} {
		id := engineID(t, KindAverage, res)
		if prev, ok := seen[id]; ok {
			t.Errorf("resolutions %d and %d share id %s", prev, res, id)
		}
		seen[id] = res
	}
}

func TestIDDependsOnKind(t *testing.T) {
	seen := map[ID]Kind{}
	for _, kind := range []Kind{KindAverage, KindDifference, KindPerception} {
		id := engineID(t, kind, 64)
		if prev, ok := seen[id]; ok {
			t.Errorf("kinds %s and %s share id %s", prev, kind, id)
		}
		seen[id] = kind
	}
}

func TestIDDependsOnFilters(t *testing.T) {
	box, _ := filter.Box(3, 3)
	base := engineID(t, KindAverage, 64)

	extra := engineID(t, KindAverage, 64, filter.Identity())
	if extra == base {
		t.Error("an extra filter should change the id")
	}

	ab := engineID(t, KindAverage, 64, filter.Sharpen(), box)
	ba := engineID(t, KindAverage, 64, box, filter.Sharpen())
	if ab == ba {
		t.Error("filter order should change the id")
	}

	g1, _ := filter.Gaussian(5, 5, 1.0)
	g2, _ := filter.Gaussian(5, 5, 1.5)
	if engineID(t, KindAverage, 64, g1) == engineID(t, KindAverage, 64, g2) {
		t.Error("filter weights should change the id")
	}
}

func TestIDValueEqualFilters(t *testing.T) {
	// Two separately built identity kernels contribute the same parameters.
	a := engineID(t, KindAverage, 64, filter.Identity())
	b := engineID(t, KindAverage, 64, filter.Identity())
	if a != b {
		t.Errorf("value-equal filters gave ids %s and %s", a, b)
	}

	two := engineID(t, KindAverage, 64, filter.Identity(), filter.Identity())
	if two == a {
		t.Error("a repeated filter should still change the id")
	}
}

func TestIDStringRoundTrip(t *testing.T) {
	id := engineID(t, KindDifference, 100, filter.Grayscale())

	s := id.String()
	if len(s) != 16 {
		t.Errorf("String() = %q, want 16 hex digits", s)
	}
	got, err := ParseID(s)
	if err != nil {
		t.Fatalf("ParseID(%q): %v", s, err)
	}
	if got != id {
		t.Errorf("ParseID(%q) = %s, want %s", s, got, id)
	}

	if _, err := ParseID("not-hex"); err == nil {
		t.Error("ParseID should reject non-hex input")
	}
}
