// Package passfilter flags previously-seen passwords using a bloom filter:
// a space-efficient probabilistic set membership structure with no false
// negatives and a tunable false-positive rate.
//
// # Filter
//
// [Filter] owns a fixed-size bit array. Each key is hashed numHashes times
// with distinct seeds (the seed is part of the hash input, not derived by
// double-hashing) and each hash is reduced modulo the bit-array size to a
// bit position. [Filter.Add] sets the positions; [Filter.MightContain]
// reports true only when every position is set.
//
// If MightContain returns false the key was definitely never added. If it
// returns true the key is probably present; the false positive probability
// after n distinct insertions is approximately
//
//	(1 - e^(-numHashes*n/size))^numHashes
//
// Use [New] for explicit parameters, or [NewWithEstimates] to size the
// filter from an expected item count and a target false positive rate via
// [OptimalParams].
//
// Two seeded hash families are available: [XXH3] (default) and [Murmur3]
// (compatible with mmh3-based filters).
//
// # Classification
//
// [Classify] folds a batch of candidate passwords through a filter in input
// order. Each candidate is reported [Unique], [AlreadyUsed] or [Invalid];
// unique candidates are added to the filter immediately, so duplicates
// later in the same batch are detected. The filter passed to Classify is
// mutated by the call.
//
// # Serialization
//
// [Filter.MarshalBinary] and [UnmarshalBinary] round-trip a filter through
// a versioned little-endian byte format, including the hash family, so a
// seeded filter can be persisted and reloaded.
//
// # Thread safety
//
// [Filter] is NOT thread-safe. The classification check-then-set sequence
// must be atomic per candidate, so concurrent users must serialize all
// access to a filter instance with a single lock.
package passfilter
