package passfilter

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"
)

// Filter is a non-thread-safe bloom filter over string keys.
//
// The bit array is stored as uint64 words. Each key is mapped to numHashes
// bit positions by hashing (key, seed) for seed in 0..numHashes-1 and
// reducing modulo the bit-array size. Bits are only ever set, never cleared;
// the filter supports insertion and membership testing only.
type Filter struct {
	words     []uint64 // Bit array, size bits rounded up to whole words
	size      uint64   // Bit array length in bits
	numHashes uint32   // Number of seeded hash probes per key
	hash      Hash     // Seeded hash family
	count     uint64   // Number of Add calls (approximate item count)
}

var (
	// ErrInvalidConfig is returned when a filter is constructed with a
	// non-positive size or hash count.
	ErrInvalidConfig = errors.New("passfilter: invalid filter configuration")

	// ErrInvalidData is returned when serialized data is invalid or corrupted.
	ErrInvalidData = errors.New("passfilter: invalid serialized data")

	// ErrUnsupportedVersion is returned when the serialization version is not supported.
	ErrUnsupportedVersion = errors.New("passfilter: unsupported serialization version")
)

// New creates a filter with an explicit bit-array size and hash count,
// using the default XXH3 hash family.
//
// Both parameters must be positive; invalid values fail with
// ErrInvalidConfig rather than being clamped.
func New(size, numHashes int) (*Filter, error) {
	return NewWithHash(size, numHashes, XXH3)
}

// NewWithHash creates a filter with an explicit bit-array size, hash count
// and hash family.
func NewWithHash(size, numHashes int, hash Hash) (*Filter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size must be positive, got %d", ErrInvalidConfig, size)
	}
	if numHashes <= 0 {
		return nil, fmt.Errorf("%w: numHashes must be positive, got %d", ErrInvalidConfig, numHashes)
	}
	if !hash.valid() {
		return nil, fmt.Errorf("%w: unknown hash family %d", ErrInvalidConfig, hash)
	}

	return &Filter{
		words:     make([]uint64, (uint64(size)+63)/64),
		size:      uint64(size),
		numHashes: uint32(numHashes),
		hash:      hash,
	}, nil
}

// NewWithEstimates creates a filter sized for the expected number of items
// and desired false positive rate. See OptimalParams for the math.
func NewWithEstimates(expectedItems uint64, fpRate float64) *Filter {
	size, numHashes, _ := OptimalParams(expectedItems, fpRate)
	f, err := New(int(size), int(numHashes))
	if err != nil {
		// OptimalParams always yields positive parameters
		panic(err)
	}
	return f
}

// Add inserts item into the filter by setting its numHashes bit positions.
// Adding the same item again leaves the bit array unchanged.
func (f *Filter) Add(item string) {
	for seed := uint32(0); seed < f.numHashes; seed++ {
		pos := f.hash.position(item, seed, f.size)
		f.words[pos/64] |= 1 << (pos % 64)
	}
	f.count++
}

// MightContain reports whether item might be in the filter.
// A false return is definitive: the item was never added. A true return may
// be a false positive, with probability approximately
// (1 - e^(-numHashes*n/size))^numHashes after n distinct insertions.
func (f *Filter) MightContain(item string) bool {
	for seed := uint32(0); seed < f.numHashes; seed++ {
		pos := f.hash.position(item, seed, f.size)
		if f.words[pos/64]&(1<<(pos%64)) == 0 {
			return false
		}
	}
	return true
}

// TestAndAdd reports whether item was already present, inserting it when it
// was not. Items that test positive are not re-inserted.
func (f *Filter) TestAndAdd(item string) bool {
	if f.MightContain(item) {
		return true
	}
	f.Add(item)
	return false
}

// Size returns the bit-array length in bits.
func (f *Filter) Size() uint64 {
	return f.size
}

// NumHashes returns the number of seeded hash probes per key.
func (f *Filter) NumHashes() uint32 {
	return f.numHashes
}

// Hash returns the hash family the filter was constructed with.
func (f *Filter) Hash() Hash {
	return f.hash
}

// Count returns the approximate number of items added to the filter.
// Re-adding an item counts again.
func (f *Filter) Count() uint64 {
	return f.count
}

// SetBits returns the number of bits currently set to 1.
func (f *Filter) SetBits() uint64 {
	var set uint64
	for _, word := range f.words {
		set += uint64(bits.OnesCount64(word))
	}
	return set
}

// FillRatio returns the proportion of bits that are set.
func (f *Filter) FillRatio() float64 {
	return float64(f.SetBits()) / float64(f.size)
}

// EstimatedFalsePositiveRate estimates the current false positive rate
// based on the number of items added.
func (f *Filter) EstimatedFalsePositiveRate() float64 {
	return EstimateFalsePositiveRate(f.size, f.numHashes, f.count)
}

// Serialization constants.
const (
	// serializeVersion is the current serialization format version.
	serializeVersion byte = 1

	// headerSize is the size of the serialization header in bytes.
	// Version (1) + Hash (1) + NumHashes (4) + Size (8) + Count (8) = 22 bytes
	headerSize = 22
)

// MarshalBinary serializes the filter to a byte slice. The format is:
//   - Version (1 byte): serialization format version
//   - Hash (1 byte): hash family
//   - NumHashes (4 bytes): hash probes per key (little-endian uint32)
//   - Size (8 bytes): bit-array length in bits (little-endian uint64)
//   - Count (8 bytes): number of items added (little-endian uint64)
//   - Words (8 bytes each): the bit array (little-endian uint64s)
func (f *Filter) MarshalBinary() ([]byte, error) {
	buf := make([]byte, headerSize+len(f.words)*8)

	buf[0] = serializeVersion
	buf[1] = byte(f.hash)
	binary.LittleEndian.PutUint32(buf[2:6], f.numHashes)
	binary.LittleEndian.PutUint64(buf[6:14], f.size)
	binary.LittleEndian.PutUint64(buf[14:22], f.count)

	offset := headerSize
	for _, word := range f.words {
		binary.LittleEndian.PutUint64(buf[offset:offset+8], word)
		offset += 8
	}

	return buf, nil
}

// UnmarshalBinary deserializes a filter from a byte slice.
// Returns an error if the data is invalid or corrupted.
func UnmarshalBinary(data []byte) (*Filter, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: data too short (got %d bytes, need at least %d)", ErrInvalidData, len(data), headerSize)
	}

	version := data[0]
	if version != serializeVersion {
		return nil, fmt.Errorf("%w: got version %d, expected %d", ErrUnsupportedVersion, version, serializeVersion)
	}

	hash := Hash(data[1])
	if !hash.valid() {
		return nil, fmt.Errorf("%w: unknown hash family %d", ErrInvalidData, hash)
	}

	numHashes := binary.LittleEndian.Uint32(data[2:6])
	size := binary.LittleEndian.Uint64(data[6:14])
	count := binary.LittleEndian.Uint64(data[14:22])

	if numHashes == 0 {
		return nil, fmt.Errorf("%w: numHashes cannot be zero", ErrInvalidData)
	}

	// Bound size so the word count below cannot overflow an int.
	const maxSize = uint64(1) << 40 // 128 GiB of bits, more than enough
	if size == 0 {
		return nil, fmt.Errorf("%w: size cannot be zero", ErrInvalidData)
	}
	if size > maxSize {
		return nil, fmt.Errorf("%w: size too large (%d)", ErrInvalidData, size)
	}

	numWords := (size + 63) / 64
	expectedLen := uint64(headerSize) + numWords*8
	if uint64(len(data)) != expectedLen {
		return nil, fmt.Errorf("%w: data length mismatch (got %d bytes, expected %d)", ErrInvalidData, len(data), expectedLen)
	}

	words := make([]uint64, numWords)
	offset := headerSize
	for i := range words {
		words[i] = binary.LittleEndian.Uint64(data[offset : offset+8])
		offset += 8
	}

	return &Filter{
		words:     words,
		size:      size,
		numHashes: numHashes,
		hash:      hash,
		count:     count,
	}, nil
}
