package guard

import (
	"context"

	"github.com/suiet/guardians/internal/guard/domain"
	"github.com/suiet/guardians/internal/guard/gateways/feed"
)

// Fetcher retrieves the four published lists. A nil result means the list
// could not be obtained; the failure goes to onError.
type Fetcher interface {
	FetchDomainBlocklist(ctx context.Context, onError feed.ErrorFunc) *domain.DomainBlocklist
	FetchPackageBlocklist(ctx context.Context, onError feed.ErrorFunc) *domain.PackageBlocklist
	FetchObjectBlocklist(ctx context.Context, onError feed.ErrorFunc) *domain.ObjectBlocklist
	FetchCoinBlocklist(ctx context.Context, onError feed.ErrorFunc) *domain.CoinBlocklist
}

// BloomFilter is a read-only membership prefilter. False positives are
// allowed, false negatives are not.
type BloomFilter interface {
	MightContain(key []byte) bool
}

// BloomFactory builds a filter holding keys at the target false-positive rate.
type BloomFactory interface {
	Build(keys []string, fpRate float64) BloomFilter
}

// VerdictCache caches verdicts by list kind and normalized key with basic metrics.
type VerdictCache interface {
	Get(kind domain.ListKind, key string) (domain.Verdict, bool)
	Put(kind domain.ListKind, key string, v domain.Verdict)
	Len() int
	Purge()
	Stats() (hits, misses, evictions uint64)
}

// SnapshotStore persists the last published snapshot.
// Load reports false when nothing has been stored yet.
type SnapshotStore interface {
	Save(s *domain.Snapshot) error
	Load() (*domain.Snapshot, bool, error)
	Close() error
}

// Stats exposes guard-level counters.
type Stats struct {
	Hits        uint64
	Misses      uint64
	Evictions   uint64
	BloomSkips  uint64 // identifier checks answered by a negative Bloom lookup
	Version     uint64
	UpdatedUnix int64 // seconds since epoch, 0 if never refreshed
}
