package verdictcache

import (
	"testing"

	"github.com/suiet/guardians/internal/guard/domain"
)

func blockVerdict(matched string) domain.Verdict {
	return domain.Verdict{Action: domain.ActionBlock, Reason: domain.ReasonBlocklist, Matched: matched}
}

func TestVerdictCache_HitMissAndPut(t *testing.T) {
	c, err := New(2)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if _, ok := c.Get(domain.KindDomain, "example.com"); ok {
		t.Fatalf("expected miss before put")
	}
	c.Put(domain.KindDomain, "example.com", blockVerdict("example.com"))

	got, ok := c.Get(domain.KindDomain, "example.com")
	if !ok || !got.IsBlocked() || got.Matched != "example.com" {
		t.Fatalf("unexpected get: ok=%v got=%+v", ok, got)
	}

	hits, misses, _ := c.Stats()
	if hits != 1 || misses != 1 {
		t.Fatalf("stats hits=%d misses=%d; want 1/1", hits, misses)
	}
}

func TestVerdictCache_KindsAreSeparate(t *testing.T) {
	c, err := New(4)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	c.Put(domain.KindPackage, "0xabc", blockVerdict("0xabc"))

	if _, ok := c.Get(domain.KindCoin, "0xabc"); ok {
		t.Fatalf("entry leaked across list kinds")
	}
	if _, ok := c.Get(domain.KindPackage, "0xabc"); !ok {
		t.Fatalf("expected hit for the stored kind")
	}
}

func TestVerdictCache_EvictionAndLen(t *testing.T) {
	c, err := New(2)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	c.Put(domain.KindDomain, "a.com", blockVerdict("a.com"))
	c.Put(domain.KindDomain, "b.com", blockVerdict("b.com"))
	if got := c.Len(); got != 2 {
		t.Fatalf("len=%d want=2", got)
	}
	c.Put(domain.KindDomain, "c.com", blockVerdict("c.com"))
	if got := c.Len(); got != 2 {
		t.Fatalf("len=%d want=2 after eviction", got)
	}
	if _, ok := c.Get(domain.KindDomain, "a.com"); ok {
		t.Fatalf("expected least recently used entry to be evicted")
	}
	if _, _, ev := c.Stats(); ev != 1 {
		t.Fatalf("evictions=%d want=1", ev)
	}
}

func TestVerdictCache_PurgeCountsEvictions(t *testing.T) {
	c, err := New(3)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	c.Put(domain.KindDomain, "a.com", blockVerdict("a.com"))
	c.Put(domain.KindDomain, "b.com", blockVerdict("b.com"))
	c.Put(domain.KindDomain, "c.com", blockVerdict("c.com"))

	c.Purge()
	if got := c.Len(); got != 0 {
		t.Fatalf("len=%d want=0 after purge", got)
	}
	if _, _, ev := c.Stats(); ev != 3 {
		t.Fatalf("evictions=%d want=3 after purge", ev)
	}
}

func TestVerdictCache_Disabled(t *testing.T) {
	c, err := New(0)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if _, ok := c.Get(domain.KindDomain, "x.com"); ok {
		t.Fatalf("expected miss in disabled cache")
	}
	c.Put(domain.KindDomain, "x.com", blockVerdict("x.com"))
	if got := c.Len(); got != 0 {
		t.Fatalf("len=%d want=0 for disabled", got)
	}
	c.Purge()
	if h, m, e := c.Stats(); h != 0 || m != 0 || e != 0 {
		t.Fatalf("disabled cache should track nothing, got %d/%d/%d", h, m, e)
	}
}
