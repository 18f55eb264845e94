package passfilter

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"testing"
)

func mustNew(t *testing.T, size, numHashes int) *Filter {
	t.Helper()
	f, err := New(size, numHashes)
	if err != nil {
		t.Fatalf("New(%d, %d) failed: %v", size, numHashes, err)
	}
	return f
}

func TestFilterBasic(t *testing.T) {
	f := mustNew(t, 1000, 3)

	f.Add("hello")
	f.Add("world")

	if !f.MightContain("hello") {
		t.Error("expected hello to be present")
	}
	if !f.MightContain("world") {
		t.Error("expected world to be present")
	}

	// This should definitely not be present (with high probability)
	if f.MightContain("notpresent") {
		t.Log("warning: false positive for 'notpresent'")
	}
}

func TestConstructionGuard(t *testing.T) {
	tests := []struct {
		name      string
		size      int
		numHashes int
	}{
		{"zero size", 0, 3},
		{"negative size", -1, 3},
		{"zero hashes", 1000, 0},
		{"negative hashes", 1000, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(tt.size, tt.numHashes)
			if err == nil {
				t.Fatalf("New(%d, %d) succeeded, want error", tt.size, tt.numHashes)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error = %v, want ErrInvalidConfig", err)
			}
			if f != nil {
				t.Error("expected nil filter on configuration error")
			}
		})
	}
}

func TestConstructionUnknownHash(t *testing.T) {
	if _, err := NewWithHash(1000, 3, Hash(42)); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestNoFalseNegatives(t *testing.T) {
	for _, hash := range []Hash{XXH3, Murmur3} {
		for _, size := range []int{1, 64, 1000, 100_000} {
			f, err := NewWithHash(size, 3, hash)
			if err != nil {
				t.Fatalf("NewWithHash(%d, 3, %d) failed: %v", size, hash, err)
			}

			for i := 0; i < 500; i++ {
				f.Add(fmt.Sprintf("item-%d", i))
			}

			var missing int
			for i := 0; i < 500; i++ {
				if !f.MightContain(fmt.Sprintf("item-%d", i)) {
					missing++
				}
			}
			if missing > 0 {
				t.Errorf("hash=%d size=%d: %d added items reported absent", hash, size, missing)
			}
		}
	}
}

func TestAddIdempotent(t *testing.T) {
	f := mustNew(t, 1000, 3)

	f.Add("password123")
	once := slices.Clone(f.words)

	f.Add("password123")
	if !slices.Equal(f.words, once) {
		t.Error("second Add of the same item changed the bit array")
	}
}

func TestMightContainDeterministic(t *testing.T) {
	f := mustNew(t, 1000, 3)
	f.Add("present")

	for _, item := range []string{"present", "absent", "also absent"} {
		first := f.MightContain(item)
		for i := 0; i < 10; i++ {
			if f.MightContain(item) != first {
				t.Fatalf("MightContain(%q) changed without intervening Add", item)
			}
		}
	}
}

func TestSetBitsMonotonic(t *testing.T) {
	f := mustNew(t, 1000, 3)

	var prev uint64
	for i := 0; i < 200; i++ {
		f.Add(fmt.Sprintf("item-%d", i))
		f.MightContain("whatever")

		set := f.SetBits()
		if set < prev {
			t.Fatalf("set bit count decreased: %d -> %d", prev, set)
		}
		prev = set
	}

	if prev == 0 {
		t.Error("expected some bits to be set")
	}
	if prev > f.Size() {
		t.Errorf("set bits %d exceeds size %d", prev, f.Size())
	}
}

func TestFalsePositiveRateMatchesFormula(t *testing.T) {
	const (
		size      = 10_000
		numHashes = 3
		inserted  = 1000
		samples   = 20_000
	)

	f := mustNew(t, size, numHashes)
	for i := 0; i < inserted; i++ {
		f.Add(fmt.Sprintf("member-%d", i))
	}

	var falsePositives int
	for i := 0; i < samples; i++ {
		if f.MightContain(fmt.Sprintf("stranger-%d", i)) {
			falsePositives++
		}
	}

	actual := float64(falsePositives) / float64(samples)
	expected := EstimateFalsePositiveRate(size, numHashes, inserted)

	// Allow 2x margin for statistical variance
	if actual > expected*2 || actual < expected/2 {
		t.Errorf("empirical FP rate %.4f outside [%.4f, %.4f]", actual, expected/2, expected*2)
	}
	t.Logf("FP rate: %.4f (theoretical: %.4f)", actual, expected)
}

func TestTestAndAdd(t *testing.T) {
	f := mustNew(t, 1000, 3)

	if f.TestAndAdd("test") {
		t.Error("expected TestAndAdd to return false for new item")
	}
	if !f.TestAndAdd("test") {
		t.Error("expected TestAndAdd to return true for existing item")
	}
	if f.Count() != 1 {
		t.Errorf("expected count 1 after re-test, got %d", f.Count())
	}
}

func TestHashFamiliesDiffer(t *testing.T) {
	a, err := NewWithHash(1000, 3, XXH3)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewWithHash(1000, 3, Murmur3)
	if err != nil {
		t.Fatal(err)
	}

	a.Add("password123")
	b.Add("password123")

	// Same item, different families: bit patterns should not coincide
	if slices.Equal(a.words, b.words) {
		t.Error("xxh3 and murmur3 set identical bit patterns")
	}
}

func TestNewWithEstimates(t *testing.T) {
	f := NewWithEstimates(10_000, 0.01)

	if f.Size() == 0 {
		t.Fatal("expected non-zero size")
	}
	if f.NumHashes() == 0 {
		t.Fatal("expected non-zero hash count")
	}

	for i := 0; i < 10_000; i++ {
		f.Add(fmt.Sprintf("item-%d", i))
	}

	var falsePositives int
	for i := 0; i < 10_000; i++ {
		if f.MightContain(fmt.Sprintf("notitem-%d", i)) {
			falsePositives++
		}
	}
	actual := float64(falsePositives) / 10_000
	if actual > 0.02 {
		t.Errorf("FP rate %.4f exceeds 2x the 0.01 target", actual)
	}
	t.Logf("FP rate at capacity: %.4f (size=%d, k=%d)", actual, f.Size(), f.NumHashes())
}

func TestFillRatio(t *testing.T) {
	f := mustNew(t, 1000, 3)

	if f.FillRatio() != 0 {
		t.Errorf("expected 0 fill ratio for empty filter, got %f", f.FillRatio())
	}

	for i := 0; i < 100; i++ {
		f.Add(fmt.Sprintf("item-%d", i))
	}

	ratio := f.FillRatio()
	if ratio <= 0 || ratio >= 1 {
		t.Errorf("expected fill ratio between 0 and 1, got %f", ratio)
	}
}

func TestEstimatedFalsePositiveRate(t *testing.T) {
	f := mustNew(t, 1000, 3)

	if f.EstimatedFalsePositiveRate() != 0 {
		t.Error("expected 0 FP rate for empty filter")
	}

	for i := 0; i < 500; i++ {
		f.Add(fmt.Sprintf("item-%d", i))
	}

	rate := f.EstimatedFalsePositiveRate()
	if rate <= 0 || rate >= 1 {
		t.Errorf("expected FP rate between 0 and 1, got %f", rate)
	}

	expected := math.Pow(1-math.Exp(-3*500.0/1000), 3)
	if math.Abs(rate-expected) > 0.0001 {
		t.Errorf("estimated=%f, expected=%f", rate, expected)
	}
}

func TestAccessors(t *testing.T) {
	f, err := NewWithHash(1000, 3, Murmur3)
	if err != nil {
		t.Fatal(err)
	}

	if f.Size() != 1000 {
		t.Errorf("Size() = %d, want 1000", f.Size())
	}
	if f.NumHashes() != 3 {
		t.Errorf("NumHashes() = %d, want 3", f.NumHashes())
	}
	if f.Hash() != Murmur3 {
		t.Errorf("Hash() = %d, want Murmur3", f.Hash())
	}
	if f.Count() != 0 {
		t.Errorf("Count() = %d, want 0", f.Count())
	}

	f.Add("one")
	f.Add("two")
	if f.Count() != 2 {
		t.Errorf("Count() = %d, want 2", f.Count())
	}
}

func BenchmarkAdd(b *testing.B) {
	f, _ := New(1_000_000, 7)
	keys := make([]string, 1000)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%d", i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Add(keys[i%len(keys)])
	}
}

func BenchmarkMightContain(b *testing.B) {
	f, _ := New(1_000_000, 7)
	keys := make([]string, 1000)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%d", i)
		f.Add(keys[i])
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.MightContain(keys[i%len(keys)])
	}
}
