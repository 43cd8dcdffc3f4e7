// Package bloom provides Bloom filter prefilters for the identifier blocklists.
package bloom

import (
	"math"

	bitsbloom "github.com/bits-and-blooms/bloom/v3"

	"github.com/suiet/guardians/internal/guard/services/guard"
)

// DefaultFPRate is used when the requested rate is outside (0, 1).
const DefaultFPRate = 0.01

// Params returns the bit count m and hash count k for n keys at false-positive
// rate p:
//
//	m = -(n * ln p) / (ln 2)^2
//	k = (m / n) * ln 2
//
// Both are at least 1.
func Params(n uint64, p float64) (m uint64, k uint) {
	if n == 0 {
		n = 1
	}
	if !(p > 0 && p < 1) {
		p = DefaultFPRate
	}
	m = uint64(math.Ceil(-float64(n) * math.Log(p) / (math.Ln2 * math.Ln2)))
	if m == 0 {
		m = 1
	}
	k = uint(math.Max(1, math.Round(float64(m)/float64(n)*math.Ln2)))
	return m, k
}

type factory struct{}

// NewFactory returns a guard.BloomFactory backed by bits-and-blooms filters.
func NewFactory() guard.BloomFactory { return factory{} }

// Build sizes a filter for keys and adds them all. The result is never
// written again, so concurrent lookups need no locking.
func (factory) Build(keys []string, fpRate float64) guard.BloomFilter {
	m, k := Params(uint64(len(keys)), fpRate)
	bf := bitsbloom.New(uint(m), k)
	for _, key := range keys {
		bf.AddString(key)
	}
	return filter{bf: bf}
}

type filter struct {
	bf *bitsbloom.BloomFilter
}

func (f filter) MightContain(key []byte) bool { return f.bf.Test(key) }
