package passfilter

import "math"

const (
	// ln2 is the natural logarithm of 2.
	ln2 = 0.6931471805599453
	// ln2Squared is ln(2)^2.
	ln2Squared = 0.4804530139182014
)

// OptimalParams calculates filter parameters for an expected item count and
// target false positive rate. Returns the bit-array size, the number of hash
// probes, and the bits spent per item.
//
// The standard sizing formulas apply: m = -n*ln(p)/ln(2)^2 bits and
// k = (m/n)*ln(2) probes. These are guidance only; the spec's illustrative
// defaults (size=1000, numHashes=3) are not a validated production sizing.
func OptimalParams(expectedItems uint64, fpRate float64) (size uint64, numHashes uint32, bitsPerItem float64) {
	if expectedItems == 0 {
		expectedItems = 1
	}
	if fpRate <= 0 {
		fpRate = 0.0001 // default to 0.01%
	}
	if fpRate >= 1 {
		fpRate = 0.99
	}

	// Optimal bits per item: -ln(fpRate) / ln(2)^2
	bitsPerItem = -math.Log(fpRate) / ln2Squared

	size = uint64(math.Ceil(float64(expectedItems) * bitsPerItem))
	if size == 0 {
		size = 1
	}

	// Optimal probe count: (m/n) * ln(2)
	k := math.Round(float64(size) / float64(expectedItems) * ln2)
	if k < 1 {
		k = 1
	}
	numHashes = uint32(k)

	return size, numHashes, bitsPerItem
}

// EstimateFalsePositiveRate estimates the false positive rate of a filter of
// the given size after itemsAdded insertions.
// Formula: (1 - e^(-kn/m))^k
func EstimateFalsePositiveRate(size uint64, numHashes uint32, itemsAdded uint64) float64 {
	m := float64(size)
	n := float64(itemsAdded)
	k := float64(numHashes)

	if m == 0 || n == 0 {
		return 0
	}

	return math.Pow(1-math.Exp(-k*n/m), k)
}
