package guard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/stretchr/testify/mock"

	"github.com/suiet/guardians/internal/guard/domain"
	"github.com/suiet/guardians/internal/guard/gateways/feed"
)

var errFetch = errors.New("fetch failed")

// fakeFetcher serves whatever lists are set; a nil list reports errFetch.
type fakeFetcher struct {
	mu       sync.Mutex
	domains  *domain.DomainBlocklist
	packages *domain.PackageBlocklist
	objects  *domain.ObjectBlocklist
	coins    *domain.CoinBlocklist
	calls    int32
}

func (f *fakeFetcher) set(fn func(f *fakeFetcher)) {
	f.mu.Lock()
	fn(f)
	f.mu.Unlock()
}

func fetched[T any](f *fakeFetcher, v *T, onError feed.ErrorFunc) *T {
	atomic.AddInt32(&f.calls, 1)
	if v == nil && onError != nil {
		onError(errFetch)
	}
	return v
}

func (f *fakeFetcher) FetchDomainBlocklist(_ context.Context, onError feed.ErrorFunc) *domain.DomainBlocklist {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fetched(f, f.domains, onError)
}

func (f *fakeFetcher) FetchPackageBlocklist(_ context.Context, onError feed.ErrorFunc) *domain.PackageBlocklist {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fetched(f, f.packages, onError)
}

func (f *fakeFetcher) FetchObjectBlocklist(_ context.Context, onError feed.ErrorFunc) *domain.ObjectBlocklist {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fetched(f, f.objects, onError)
}

func (f *fakeFetcher) FetchCoinBlocklist(_ context.Context, onError feed.ErrorFunc) *domain.CoinBlocklist {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fetched(f, f.coins, onError)
}

type fakeStore struct {
	mu        sync.Mutex
	saved     *domain.Snapshot
	saveCalls int
	saveErr   error
	loadErr   error
	closed    bool
}

func (s *fakeStore) Save(snap *domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveCalls++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = snap
	return nil
}

func (s *fakeStore) Load() (*domain.Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, false, s.loadErr
	}
	return s.saved, s.saved != nil, nil
}

func (s *fakeStore) Close() error { s.closed = true; return nil }

type cacheKey struct {
	kind domain.ListKind
	key  string
}

type fakeCache struct {
	mu         sync.Mutex
	m          map[cacheKey]domain.Verdict
	hits       uint64
	misses     uint64
	purgeCalls int
}

func newFakeCache() *fakeCache { return &fakeCache{m: make(map[cacheKey]domain.Verdict)} }

func (c *fakeCache) Get(kind domain.ListKind, key string) (domain.Verdict, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.m[cacheKey{kind, key}]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return v, ok
}

func (c *fakeCache) Put(kind domain.ListKind, key string, v domain.Verdict) {
	c.mu.Lock()
	c.m[cacheKey{kind, key}] = v
	c.mu.Unlock()
}

func (c *fakeCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}

func (c *fakeCache) Purge() {
	c.mu.Lock()
	c.m = make(map[cacheKey]domain.Verdict)
	c.purgeCalls++
	c.mu.Unlock()
}

func (c *fakeCache) Stats() (uint64, uint64, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, 0
}

// exactFilter is a Bloom stand-in with no false positives.
type exactFilter map[string]struct{}

func (f exactFilter) MightContain(key []byte) bool {
	_, ok := f[string(key)]
	return ok
}

type exactFactory struct{ built int32 }

func (x *exactFactory) Build(keys []string, _ float64) BloomFilter {
	atomic.AddInt32(&x.built, 1)
	f := make(exactFilter, len(keys))
	for _, k := range keys {
		f[k] = struct{}{}
	}
	return f
}

// mockStore is a testify mock of SnapshotStore for call-level assertions.
type mockStore struct {
	mock.Mock
}

func (m *mockStore) Save(snap *domain.Snapshot) error {
	return m.Called(snap).Error(0)
}

func (m *mockStore) Load() (*domain.Snapshot, bool, error) {
	args := m.Called()
	snap, _ := args.Get(0).(*domain.Snapshot)
	return snap, args.Bool(1), args.Error(2)
}

func (m *mockStore) Close() error {
	return m.Called().Error(0)
}
