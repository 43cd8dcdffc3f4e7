// Package guard holds the latest published lists and screens inputs against
// them. Lists are refreshed in the background; a list that fails to download
// keeps its last good copy.
package guard

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/suiet/guardians/internal/guard/common/clock"
	"github.com/suiet/guardians/internal/guard/common/log"
	"github.com/suiet/guardians/internal/guard/domain"
	"github.com/suiet/guardians/internal/guard/services/scanner"
)

// DefaultInterval is the refresh period used when Options.Interval is unset.
const DefaultInterval = 5 * time.Minute

// ErrNoFetcher is returned by New when Options.Fetcher is nil.
var ErrNoFetcher = errors.New("guard: fetcher is required")

// Options wires a Service. Only Fetcher is required.
type Options struct {
	Fetcher      Fetcher
	Scanner      *scanner.Scanner        // nil uses the default brand table
	Store        SnapshotStore           // nil disables persistence
	Cache        VerdictCache            // nil disables caching
	BloomFactory BloomFactory            // nil disables prefilters
	FPRate       float64                 // target false-positive rate for prefilters
	Local        *domain.DomainBlocklist // operator overrides merged into the domain list
	Interval     time.Duration
	Clock        clock.Clock
	Logger       log.Logger
}

// state is one published generation: the snapshot scanned against and the
// prefilters built from it.
type state struct {
	snap    *domain.Snapshot
	filters map[domain.ListKind]BloomFilter
}

// Service screens inputs against the latest snapshot. Checks are safe for
// concurrent use and never block on a refresh.
type Service struct {
	fetcher  Fetcher
	scanner  *scanner.Scanner
	store    SnapshotStore
	cache    VerdictCache
	factory  BloomFactory
	fpRate   float64
	local    *domain.DomainBlocklist
	interval time.Duration
	clock    clock.Clock
	logger   log.Logger

	// mu orders cache writes against publication so a verdict computed on an
	// old generation never lands in the cache after the purge.
	mu    sync.RWMutex
	state atomic.Pointer[state]

	// refreshMu serializes Restore and Refresh; remote is guarded by it.
	refreshMu sync.Mutex
	remote    *domain.Snapshot

	bloomSkips uint64
}

// New builds a Service. The service starts with no lists; call Restore and/or
// Refresh before relying on verdicts.
func New(opts Options) (*Service, error) {
	if opts.Fetcher == nil {
		return nil, ErrNoFetcher
	}
	if opts.Scanner == nil {
		opts.Scanner = scanner.Default()
	}
	if opts.Cache == nil {
		opts.Cache = noCache{}
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	s := &Service{
		fetcher:  opts.Fetcher,
		scanner:  opts.Scanner,
		store:    opts.Store,
		cache:    opts.Cache,
		factory:  opts.BloomFactory,
		fpRate:   opts.FPRate,
		local:    opts.Local,
		interval: opts.Interval,
		clock:    opts.Clock,
		logger:   log.OrNoop(opts.Logger),
		remote:   &domain.Snapshot{},
	}
	s.publish(s.merged(s.remote))
	return s, nil
}

// Snapshot returns the currently published snapshot. Callers must not modify it.
func (s *Service) Snapshot() *domain.Snapshot {
	return s.state.Load().snap
}

// Stats returns cache counters, prefilter skips and the published version.
func (s *Service) Stats() Stats {
	hits, misses, evictions := s.cache.Stats()
	snap := s.Snapshot()
	st := Stats{
		Hits:       hits,
		Misses:     misses,
		Evictions:  evictions,
		BloomSkips: atomic.LoadUint64(&s.bloomSkips),
		Version:    snap.Version,
	}
	if !snap.UpdatedAt.IsZero() {
		st.UpdatedUnix = snap.UpdatedAt.Unix()
	}
	return st
}

// Close releases the snapshot store, if any.
func (s *Service) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}

// merged overlays the local overrides on the remote domain list.
func (s *Service) merged(remote *domain.Snapshot) *domain.Snapshot {
	out := *remote
	out.Domains = remote.Domains.Merge(s.local)
	return &out
}

// publish swaps in a new generation and purges the verdict cache.
func (s *Service) publish(snap *domain.Snapshot) {
	next := &state{snap: snap, filters: s.buildFilters(snap)}
	s.mu.Lock()
	s.state.Store(next)
	s.cache.Purge()
	s.mu.Unlock()
}

// buildFilters builds one prefilter per identifier list. Object allowlist
// entries are included so an allow-listed object still reaches the scanner.
func (s *Service) buildFilters(snap *domain.Snapshot) map[domain.ListKind]BloomFilter {
	if s.factory == nil {
		return nil
	}
	filters := make(map[domain.ListKind]BloomFilter, 3)
	add := func(kind domain.ListKind, sets ...domain.IdentifierSet) {
		var keys []string
		for _, set := range sets {
			for id := range set {
				keys = append(keys, id)
			}
		}
		filters[kind] = s.factory.Build(keys, s.fpRate)
	}
	if snap.Packages != nil {
		add(domain.KindPackage, snap.Packages.Blocklist)
	}
	if snap.Objects != nil {
		add(domain.KindObject, snap.Objects.Allowlist, snap.Objects.Blocklist)
	}
	if snap.Coins != nil {
		add(domain.KindCoin, snap.Coins.Blocklist)
	}
	return filters
}

// noCache is used when no VerdictCache is configured.
type noCache struct{}

func (noCache) Get(domain.ListKind, string) (domain.Verdict, bool) { return domain.Verdict{}, false }
func (noCache) Put(domain.ListKind, string, domain.Verdict)        {}
func (noCache) Len() int                                           { return 0 }
func (noCache) Purge()                                             {}
func (noCache) Stats() (uint64, uint64, uint64)                    { return 0, 0, 0 }
